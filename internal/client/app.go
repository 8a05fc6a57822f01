// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/workers"
)

var ErrMissingDependency = errors.New("client dependency is missing")

type App struct {
	orchestrator service.SyncOrchestrator
	workers      *workers.Workers
	ui           UI

	logger *logger.Logger
}

var _ Client = (*App)(nil)

// NewApp takes ownership of orchestrator: Run closes it on exit.
func NewApp(orchestrator service.SyncOrchestrator, ws *workers.Workers, ui UI, logger *logger.Logger) (*App, error) {
	if orchestrator == nil || ui == nil {
		return nil, ErrMissingDependency
	}
	if ws == nil {
		ws = workers.NewWorkers(logger)
	}

	return &App{
		orchestrator: orchestrator,
		workers:      ws,
		ui:           ui,
		logger:       logger.WithComponent("client"),
	}, nil
}

// Run starts the workers and blocks in the UI. On exit the workers stop
// before the orchestrator closes.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.workers.Start(ctx)
	a.logger.Info().Msg("client started")

	runErr := a.ui.Run(ctx)
	if runErr != nil {
		runErr = fmt.Errorf("ui: %w", runErr)
	}

	cancel()
	a.workers.Stop()

	if err := a.orchestrator.Close(); err != nil {
		a.logger.Err(err).Str("func", "App.Run").Msg("error closing orchestrator")
		runErr = errors.Join(runErr, fmt.Errorf("close orchestrator: %w", err))
	}

	a.logger.Info().Msg("client stopped")
	return runErr
}
