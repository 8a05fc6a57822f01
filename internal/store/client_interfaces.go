// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// StoreHandle is an open local store. The first five methods are the contract
// the orchestrator relies on; the rest let the UI stage and read records.
type StoreHandle interface {
	// HasPendingChanges reports whether staged changes await a commit.
	HasPendingChanges(ctx context.Context) (bool, error)
	// Commit pushes staged changes to the remote container, applies the
	// merged result locally and, in automatic mode, pulls remote changes.
	Commit(ctx context.Context) error
	// DiscardChanges drops every staged change without touching the remote.
	DiscardChanges(ctx context.Context) error
	// Destroy deletes the remote container (absent counts as success) and
	// then empties the local store. The handle stays usable.
	Destroy(ctx context.Context) error

	// Put stages an upsert of fields on the record model/id.
	Put(ctx context.Context, model, id string, fields map[string]any) (models.Change, error)
	// Delete stages a deletion of a visible record.
	Delete(ctx context.Context, model, id string) (models.Change, error)
	// Get returns a record with staged changes applied.
	Get(ctx context.Context, model, id string) (models.Record, error)
	// List returns the visible records of model ordered by id.
	List(ctx context.Context, model string) ([]models.Record, error)
	// PendingCount returns the number of staged changes.
	PendingCount(ctx context.Context) (int, error)

	// Close releases the database and the process lock. Idempotent.
	Close() error
}

// Opener opens the store described by cfg.
type Opener func(ctx context.Context, cfg models.StoreConfiguration) (StoreHandle, error)

// FlagStore is a durable boolean key/value store. Absent keys read as false.
type FlagStore interface {
	GetFlag(key string) (bool, error)
	SetFlag(key string, value bool) error
}

// IDGenerator produces unique change identifiers.
type IDGenerator interface {
	Generate() string
}
