// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// Notifier delivers a user-facing message. Delivery is fire-and-forget:
// implementations must not block the caller for long and never fail it.
type Notifier interface {
	Notify(message string)
}

// SyncOrchestrator coordinates the local store with its remote container.
// It is the contract consumed by the status console and the autosave worker.
type SyncOrchestrator interface {
	// Save commits pending changes. A call made while another save is in
	// flight returns nil immediately without committing.
	Save(ctx context.Context) error
	// ResolveConflict keeps the local change set (preferLocal) by saving it,
	// or drops it and keeps the remote state.
	ResolveConflict(ctx context.Context, preferLocal bool) error
	// DeleteRemoteData destroys the remote container and empties the store.
	DeleteRemoteData(ctx context.Context) error
	// HandleFirstLaunch deletes remote data once per installation.
	HandleFirstLaunch(ctx context.Context) error
	// ConfigureForAutomaticDeletion makes the next HandleFirstLaunch delete
	// remote data again.
	ConfigureForAutomaticDeletion(ctx context.Context) error
	// Status returns a snapshot for display.
	Status() models.StatusReport
	// Store gives access to the open store for staging and reading records.
	Store() store.StoreHandle
	// Close cancels the connectivity subscription and closes the store.
	Close() error
}
