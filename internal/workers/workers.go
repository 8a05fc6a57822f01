// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// Workers starts and stops a set of workers as a unit.
type Workers struct {
	workers []Worker

	logger *logger.Logger
}

// NewWorkers groups workers. Nil entries are skipped.
func NewWorkers(logger *logger.Logger, workers ...Worker) *Workers {
	ws := &Workers{logger: logger}
	for _, w := range workers {
		if w != nil {
			ws.workers = append(ws.workers, w)
		}
	}
	return ws
}

// Start starts every worker in order.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
	w.logger.Info().Str("func", "Workers.Start").Int("workers", len(w.workers)).Msg("workers started")
}

// Stop stops the workers in reverse start order and waits for each of them.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
	w.logger.Info().Str("func", "Workers.Stop").Msg("workers stopped")
}
