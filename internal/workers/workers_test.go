// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/mock"
	"github.com/cenkalti/backoff/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWorkers_StartStopOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	w1 := mock.NewMockWorker(ctrl)
	w2 := mock.NewMockWorker(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		w1.EXPECT().Start(ctx),
		w2.EXPECT().Start(ctx),
		w2.EXPECT().Stop(),
		w1.EXPECT().Stop(),
	)

	ws := NewWorkers(logger.Nop(), w1, nil, w2)
	ws.Start(ctx)
	ws.Stop()
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers(logger.Nop())

	assert.NotPanics(t, func() {
		ws.Start(context.Background())
		ws.Stop()
	})
}

type countingSaver struct {
	calls atomic.Int32
	err   error
}

func (s *countingSaver) Save(context.Context) error {
	s.calls.Add(1)
	return s.err
}

func TestAutosaveJob_SavesOnEveryTick(t *testing.T) {
	saver := &countingSaver{err: errors.New("offline")}
	job := NewAutosaveJob(saver, 5*time.Millisecond, logger.Nop())

	job.Start(context.Background())
	require.Eventually(t, func() bool { return saver.calls.Load() >= 3 }, time.Second, time.Millisecond)
	job.Stop()

	stopped := saver.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, saver.calls.Load(), "no saves after Stop")
}

func TestAutosaveJob_StopsWithContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	saver := mock.NewMockSaver(ctrl)
	saver.EXPECT().Save(gomock.Any()).Return(nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	job := NewAutosaveJob(saver, time.Millisecond, logger.Nop())
	job.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return after the context was cancelled")
	}
}

func TestAutosaveJob_DefaultInterval(t *testing.T) {
	job := NewAutosaveJob(&countingSaver{}, 0, logger.Nop()).(*autosaveJob)

	assert.Equal(t, DefaultAutosaveInterval, job.interval)
	job.Stop()
}

// scriptedPinger answers with the queued results, then repeats the last one.
type scriptedPinger struct {
	mu      sync.Mutex
	results []bool
	calls   int
}

func (p *scriptedPinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	i := min(p.calls, len(p.results)-1)
	p.calls++
	if p.results[i] {
		return nil
	}
	return errors.New("connection refused")
}

type eventLog struct {
	mu     sync.Mutex
	events []bool
}

func (l *eventLog) add(reachable bool) {
	l.mu.Lock()
	l.events = append(l.events, reachable)
	l.mu.Unlock()
}

func (l *eventLog) snapshot() []bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]bool(nil), l.events...)
}

func newFastProbe(pinger Pinger) *ConnectivityProbe {
	p := NewConnectivityProbe(pinger, time.Millisecond, 2*time.Millisecond, logger.Nop())
	p.newBackOff = func() backoff.BackOff { return backoff.NewConstantBackOff(time.Millisecond) }
	return p
}

func TestConnectivityProbe_DeliversTransitionsOnly(t *testing.T) {
	pinger := &scriptedPinger{results: []bool{false, false, true, true, true, false, true}}
	probe := newFastProbe(pinger)

	var log eventLog
	probe.Subscribe(log.add)

	probe.Start(context.Background())
	require.Eventually(t, func() bool {
		pinger.mu.Lock()
		defer pinger.mu.Unlock()
		return pinger.calls >= 10
	}, time.Second, time.Millisecond)
	probe.Stop()

	assert.Equal(t, []bool{false, true, false, true}, log.snapshot())
}

func TestConnectivityProbe_Unsubscribe(t *testing.T) {
	pinger := &scriptedPinger{results: []bool{true, false, true, false, true}}
	probe := newFastProbe(pinger)

	var first, second eventLog
	unsubscribe := probe.Subscribe(func(reachable bool) {
		first.add(reachable)
	})
	probe.Subscribe(second.add)
	unsubscribe()
	unsubscribe()

	probe.Start(context.Background())
	require.Eventually(t, func() bool { return len(second.snapshot()) >= 3 }, time.Second, time.Millisecond)
	probe.Stop()

	assert.Empty(t, first.snapshot())
}

func TestConnectivityProbe_LateSubscriberReceivesCurrentState(t *testing.T) {
	ctrl := gomock.NewController(t)
	pinger := mock.NewMockPinger(ctrl)
	pinger.EXPECT().Ping(gomock.Any()).Return(nil).AnyTimes()

	probe := newFastProbe(pinger)
	var early eventLog
	probe.Subscribe(early.add)
	probe.Start(context.Background())
	require.Eventually(t, func() bool { return len(early.snapshot()) == 1 }, time.Second, time.Millisecond)

	var late eventLog
	probe.Subscribe(late.add)
	require.Eventually(t, func() bool { return len(late.snapshot()) == 1 }, time.Second, time.Millisecond)
	probe.Stop()

	assert.Equal(t, []bool{true}, early.snapshot())
	assert.Equal(t, []bool{true}, late.snapshot())
}

func TestConnectivityProbe_Defaults(t *testing.T) {
	probe := NewConnectivityProbe(&scriptedPinger{results: []bool{true}}, 0, 0, logger.Nop())

	assert.Equal(t, DefaultProbeInterval, probe.interval)
	assert.Equal(t, DefaultProbeMaxInterval, probe.maxInterval)
}

func TestConnectivityProbe_StopIdle(t *testing.T) {
	probe := NewConnectivityProbe(&scriptedPinger{results: []bool{true}}, time.Second, time.Minute, logger.Nop())

	assert.NotPanics(t, probe.Stop)
}
