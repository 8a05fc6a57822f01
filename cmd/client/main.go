// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/client"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/internal/tui"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/internal/workers"
	"github.com/MKhiriev/go-sync-keeper/models"
)

const role = "go-sync-client"

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewBuildInfo(buildVersion, buildDate, buildCommit)

	cfg, err := config.GetClientConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting configs: %v\n", err)
		logger.NewClientLogger(role, "").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewClientLogger(role, cfg.LogFile)
	log.Info().
		Str("version", buildInfo.Version).
		Str("container", cfg.Store.Container).
		Stringer("sync_mode", cfg.Store.SyncMode).
		Stringer("merge_policy", cfg.Store.MergePolicy).
		Msg("starting client")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	remote, err := adapter.NewHTTPRemoteContainer(cfg.Adapter, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create remote container adapter")
	}

	storages, err := store.NewClientStorages(cfg.Storage, remote, utils.NewUUIDGenerator(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("create client storages")
	}

	probe := workers.NewConnectivityProbe(remote, cfg.Workers.ProbeInterval, cfg.Workers.ProbeMaxInterval, log)
	notifier := tui.NewNotifier()

	orchestrator, err := service.NewOrchestrator(ctx, cfg.Store, service.OrchestratorDeps{
		Opener:   storages.Opener,
		Flags:    storages.Flags,
		Monitor:  probe,
		Notifier: service.NewMultiNotifier(service.NewLogNotifier(log), notifier),
	}, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open store: %v\n", err)
		log.Fatal().Err(err).Msg("create orchestrator")
	}

	background := []workers.Worker{probe}
	if cfg.Store.SyncMode == models.SyncModeAutomatic {
		background = append(background, workers.NewAutosaveJob(orchestrator, cfg.Workers.SyncInterval, log))
	}

	ui, err := tui.New(orchestrator, notifier, cfg.Store, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating ui")
	}

	app, err := client.NewApp(orchestrator, workers.NewWorkers(log, background...), ui, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}
