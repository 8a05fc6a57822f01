// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
)

// ConflictResolver chooses between committing and discarding the whole
// pending change set. Field-level precedence is left to the merge policy the
// remote applies on commit.
type ConflictResolver struct {
	save func(ctx context.Context) error

	logger *logger.Logger
}

// NewConflictResolver returns a resolver that keeps local changes through
// save, the orchestrator's serialized save path.
func NewConflictResolver(save func(ctx context.Context) error, logger *logger.Logger) *ConflictResolver {
	return &ConflictResolver{
		save:   save,
		logger: logger,
	}
}

// Resolve commits pending changes when preferLocal is set and discards them
// otherwise. Neither path touches the sync status directly.
func (r *ConflictResolver) Resolve(ctx context.Context, preferLocal bool, handle store.StoreHandle) error {
	if preferLocal {
		r.logger.Info().Str("func", "ConflictResolver.Resolve").Msg("keeping local changes")
		return r.save(ctx)
	}

	if err := handle.DiscardChanges(ctx); err != nil {
		r.logger.Err(err).Str("func", "ConflictResolver.Resolve").Msg("failed to discard local changes")
		return fmt.Errorf("%w: %w", ErrDiscard, err)
	}

	r.logger.Info().Str("func", "ConflictResolver.Resolve").Msg("local changes discarded, keeping remote state")
	return nil
}
