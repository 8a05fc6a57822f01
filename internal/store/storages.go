// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// Storages groups the server-side repositories.
type Storages struct {
	ContainerRepository ContainerRepository

	db *DB
}

// NewStorages connects to PostgreSQL at dsn, applies pending migrations and
// wires the repositories.
func NewStorages(ctx context.Context, dsn string, logger *logger.Logger) (*Storages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		ContainerRepository: NewContainerRepository(db, logger),
		db:                  db,
	}, nil
}

// Close closes the database connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}
