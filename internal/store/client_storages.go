// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// ClientStorages groups the client-side storage collaborators handed to the
// orchestrator: the opener of the local store and the durable flag store.
type ClientStorages struct {
	// Opener opens the SQLite store configured in cfg.LocalPath.
	Opener Opener
	// Flags is the JSON flag file configured in cfg.FlagsPath.
	Flags FlagStore
}

// NewClientStorages loads the flag file and prepares the local store opener.
// The store itself is opened later by the orchestrator.
func NewClientStorages(cfg config.ClientStorage, remote adapter.RemoteContainer, ids IDGenerator, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	flags, err := NewFileFlagStore(cfg.FlagsPath)
	if err != nil {
		return nil, fmt.Errorf("flag store error: %w", err)
	}

	return &ClientStorages{
		Opener: NewLocalOpener(cfg.LocalPath, remote, ids, logger),
		Flags:  flags,
	}, nil
}
