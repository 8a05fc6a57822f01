// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

// ClientApp holds client-side application settings.
type ClientApp struct {
	// HashKey is the HMAC key used to sign pushed change sets.
	HashKey string
	// Version is the client version string.
	Version string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the container server address.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client storage settings.
type ClientStorage struct {
	// LocalPath is the SQLite store file.
	LocalPath string
	// FlagsPath is the JSON flag file.
	FlagsPath string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the autosave worker runs.
	SyncInterval time.Duration
	// ProbeInterval defines how often connectivity is probed.
	ProbeInterval time.Duration
	// ProbeMaxInterval caps the probe back-off while unreachable.
	ProbeMaxInterval time.Duration
}

// ClientConfig is the client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Workers ClientWorkers
	// Store is the parsed store configuration handed to the orchestrator.
	Store models.StoreConfiguration
	// LogFile is the client log destination.
	LogFile string
}

// GetClientConfig builds and validates the client view of the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return newClientConfig(cfg)
}

func newClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	syncMode, err := models.ParseSyncMode(cfg.Store.SyncMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStoreConfigs, err)
	}
	mergePolicy, err := models.ParseMergePolicy(cfg.Store.MergePolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStoreConfigs, err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
			Version: cfg.App.Version,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			LocalPath: cfg.Storage.Local.Path,
			FlagsPath: cfg.Storage.Flags.Path,
		},
		Workers: ClientWorkers{
			SyncInterval:     cfg.Workers.SyncInterval,
			ProbeInterval:    cfg.Workers.ProbeInterval,
			ProbeMaxInterval: cfg.Workers.ProbeMaxInterval,
		},
		Store: models.StoreConfiguration{
			Models:      cfg.Store.Models,
			Container:   cfg.Store.Container,
			SyncMode:    syncMode,
			MergePolicy: mergePolicy,
		},
		LogFile: cfg.Log.FilePath,
	}

	return clientCfg, clientCfg.validate()
}
