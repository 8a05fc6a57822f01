// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"

	"github.com/MKhiriev/go-sync-keeper/models"
)

// validate checks the merged [StructuredConfig] for values that are invalid
// for every binary. Binary-specific requirements live on [ClientConfig] and
// [ServerConfig].
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.RequestTimeout < 0 || cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Workers.SyncInterval < 0 || cfg.Workers.ProbeInterval < 0 || cfg.Workers.ProbeMaxInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.LocalPath == "" || strings.Contains(cfg.Storage.LocalPath, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Storage.FlagsPath == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Store.SyncMode == models.SyncModeAutomatic && cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Workers.ProbeInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Workers.ProbeMaxInterval != 0 && cfg.Workers.ProbeMaxInterval < cfg.Workers.ProbeInterval {
		return ErrInvalidWorkerConfigs
	}

	if cfg.App.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	if len(cfg.Store.Models) == 0 || cfg.Store.Container == "" {
		return ErrInvalidStoreConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	if cfg.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.HashKey == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}
