// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui implements the terminal status console of the client. It shows
// the synchronization status and maps single-key commands onto the
// orchestrator operations.
package tui

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/models"
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	orchestrator service.SyncOrchestrator
	notifier     *Notifier
	cfg          models.StoreConfiguration
	buildInfo    models.BuildInfo

	logger *logger.Logger
}

// New returns [ErrNoModels] when cfg has no model to stage notes into.
func New(orchestrator service.SyncOrchestrator, notifier *Notifier, cfg models.StoreConfiguration, buildInfo models.BuildInfo, logger *logger.Logger) (*TUI, error) {
	if len(cfg.Models) == 0 {
		return nil, ErrNoModels
	}
	if notifier == nil {
		notifier = NewNotifier()
	}

	return &TUI{
		orchestrator: orchestrator,
		notifier:     notifier,
		cfg:          cfg,
		buildInfo:    buildInfo,
		logger:       logger,
	}, nil
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context) error {
	model := newStatusModel(ctx, t.orchestrator, t.notifier.ch, t.cfg, t.buildInfo)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	if err != nil {
		t.logger.Err(err).Str("func", "TUI.Run").Msg("status console stopped")
	}
	return err
}
