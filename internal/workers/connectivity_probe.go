// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/cenkalti/backoff/v5"
)

// Probe timing defaults used when the configuration leaves them unset.
const (
	DefaultProbeInterval    = 10 * time.Second
	DefaultProbeMaxInterval = 2 * time.Minute
)

type subscriber struct {
	fn        func(reachable bool)
	delivered bool
	last      bool
}

// ConnectivityProbe pings the remote container and delivers reachability
// transitions to its subscribers. While the remote is reachable it probes
// every interval; while unreachable the delay grows exponentially up to
// maxInterval.
//
// Each subscriber first receives the state of the next completed probe and
// afterwards only changes of it.
type ConnectivityProbe struct {
	pinger      Pinger
	interval    time.Duration
	maxInterval time.Duration
	newBackOff  func() backoff.BackOff

	subMu       sync.Mutex
	subscribers map[int]*subscriber
	nextID      int

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

var (
	_ Worker              = (*ConnectivityProbe)(nil)
	_ ConnectivityMonitor = (*ConnectivityProbe)(nil)
)

// NewConnectivityProbe creates an idle probe. Non-positive intervals fall
// back to the package defaults.
func NewConnectivityProbe(pinger Pinger, interval, maxInterval time.Duration, logger *logger.Logger) *ConnectivityProbe {
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if maxInterval < interval {
		maxInterval = max(interval, DefaultProbeMaxInterval)
	}

	p := &ConnectivityProbe{
		pinger:      pinger,
		interval:    interval,
		maxInterval: maxInterval,
		subscribers: make(map[int]*subscriber),
		logger:      logger,
	}
	p.newBackOff = func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = p.interval
		b.MaxInterval = p.maxInterval
		return b
	}
	return p
}

// Subscribe implements [ConnectivityMonitor].
func (p *ConnectivityProbe) Subscribe(fn func(reachable bool)) func() {
	p.subMu.Lock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = &subscriber{fn: fn}
	p.subMu.Unlock()

	return func() {
		p.subMu.Lock()
		delete(p.subscribers, id)
		p.subMu.Unlock()
	}
}

// Start launches the probe loop. The first probe runs immediately.
func (p *ConnectivityProbe) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	probeCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.wg.Add(1)
	p.mu.Unlock()

	go func() {
		defer p.wg.Done()
		p.run(probeCtx)
	}()
}

// Stop cancels the probe loop and waits for it to exit.
func (p *ConnectivityProbe) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	p.wg.Wait()
}

func (p *ConnectivityProbe) run(ctx context.Context) {
	bo := p.newBackOff()
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		reachable := p.probe(ctx)
		if ctx.Err() != nil {
			return
		}
		p.deliver(reachable)

		delay := p.interval
		if reachable {
			bo.Reset()
		} else if next := bo.NextBackOff(); next >= 0 {
			delay = min(next, p.maxInterval)
		} else {
			delay = p.maxInterval
		}
		timer.Reset(delay)
	}
}

func (p *ConnectivityProbe) probe(ctx context.Context) bool {
	pingCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	if err := p.pinger.Ping(pingCtx); err != nil {
		p.logger.Debug().Err(err).Str("func", "ConnectivityProbe.probe").Msg("remote container did not answer")
		return false
	}
	return true
}

// deliver calls every subscriber whose last seen state differs from
// reachable. Callbacks run outside the subscriber lock so they may
// unsubscribe.
func (p *ConnectivityProbe) deliver(reachable bool) {
	p.subMu.Lock()
	var due []func(bool)
	for _, s := range p.subscribers {
		if s.delivered && s.last == reachable {
			continue
		}
		s.delivered = true
		s.last = reachable
		due = append(due, s.fn)
	}
	p.subMu.Unlock()

	if len(due) > 0 {
		p.logger.Info().Str("func", "ConnectivityProbe.deliver").
			Bool("reachable", reachable).
			Int("subscribers", len(due)).
			Msg("connectivity changed")
	}
	for _, fn := range due {
		fn(reachable)
	}
}
