// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

// ServerConfig is the container server view of [StructuredConfig].
type ServerConfig struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	DSN            string
	HashKey        string
	Version        string
}

// GetServerConfig builds and validates the server view of the merged
// structured configuration.
func GetServerConfig() (*ServerConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress:    cfg.Server.HTTPAddress,
		RequestTimeout: cfg.Server.RequestTimeout,
		DSN:            cfg.Storage.DB.DSN,
		HashKey:        cfg.App.HashKey,
		Version:        cfg.App.Version,
	}

	return serverCfg, serverCfg.validate()
}
