// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// DefaultAutosaveInterval is used when the configured interval is not
// positive.
const DefaultAutosaveInterval = time.Minute

type autosaveJob struct {
	saver    Saver
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// NewAutosaveJob creates a worker that calls saver.Save every interval. The
// job is idle until Start is called.
func NewAutosaveJob(saver Saver, interval time.Duration, logger *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &autosaveJob{saver: saver, interval: interval, logger: logger}
}

// Start stops any previously running job, then launches a goroutine that saves
// on every tick until ctx is cancelled or Stop is called.
func (j *autosaveJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.saver.Save(jobCtx); err != nil {
					j.logger.Err(err).Str("func", "autosaveJob.Start").Msg("autosave failed")
				}
			}
		}
	}()
}

// Stop cancels the job and blocks until its goroutine has exited. Safe to
// call when the job is not running.
func (j *autosaveJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
