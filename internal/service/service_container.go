// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/store"
	"github.com/MKhiriev/go-sync-keeper/models"
)

type containerService struct {
	containerRepository store.ContainerRepository
	now                 func() time.Time

	logger *logger.Logger
}

// NewContainerService constructs the merging [ContainerService] on top of
// containerRepository.
func NewContainerService(containerRepository store.ContainerRepository, logger *logger.Logger) ContainerService {
	return &containerService{
		containerRepository: containerRepository,
		now:                 time.Now,
		logger:              logger,
	}
}

func (c *containerService) Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	keys := uniqueKeys(req.Changes)

	// final is rebuilt on every attempt of the repository transaction.
	var final []models.Record
	merge := func(existing map[models.RecordKey]models.Record) ([]models.Record, error) {
		var toWrite []models.Record
		toWrite, final = MergeChanges(existing, req.Changes, req.MergePolicy, c.now().UTC())
		return toWrite, nil
	}

	_, cursor, err := c.containerRepository.ApplyChanges(ctx, req.Container, keys, merge)
	if err != nil {
		log.Err(err).Str("func", "containerService.Push").
			Str("container", req.Container).
			Int("changes", len(req.Changes)).
			Msg("failed to apply change set")
		return models.PushResponse{}, err
	}

	log.Debug().Str("func", "containerService.Push").
		Str("container", req.Container).
		Str("policy", req.MergePolicy.String()).
		Int("changes", len(req.Changes)).
		Int("records", len(final)).
		Int64("cursor", cursor).
		Msg("change set merged")

	return models.PushResponse{Records: final, Cursor: cursor}, nil
}

func (c *containerService) Pull(ctx context.Context, container string, since int64) (models.PullResponse, error) {
	records, cursor, err := c.containerRepository.GetChangedSince(ctx, container, since)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "containerService.Pull").
			Str("container", container).
			Int64("since", since).
			Msg("failed to read changed records")
		return models.PullResponse{}, err
	}

	return models.PullResponse{Records: records, Cursor: cursor, Length: len(records)}, nil
}

func (c *containerService) DeleteContainer(ctx context.Context, container string) error {
	err := c.containerRepository.DeleteContainer(ctx, container)
	if errors.Is(err, store.ErrContainerNotFound) {
		return fmt.Errorf("%w: %w", ErrContainerNotFound, err)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "containerService.DeleteContainer").
			Str("container", container).
			Msg("failed to delete container")
		return err
	}

	logger.FromContext(ctx).Info().Str("func", "containerService.DeleteContainer").
		Str("container", container).
		Msg("container deleted")
	return nil
}

// uniqueKeys lists the record keys changes touch in first-seen order.
func uniqueKeys(changes []models.Change) []models.RecordKey {
	seen := make(map[models.RecordKey]struct{}, len(changes))
	keys := make([]models.RecordKey, 0, len(changes))
	for _, change := range changes {
		key := change.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// MergeChanges folds changes, in order, into the existing records. It returns
// the records to write and the final state of every touched record that
// exists, both in first-seen key order. Changes after the first one on the
// same key never conflict with each other.
func MergeChanges(existing map[models.RecordKey]models.Record, changes []models.Change, policy models.MergePolicy, now time.Time) (toWrite, final []models.Record) {
	current := make(map[models.RecordKey]models.Record, len(existing))
	maps.Copy(current, existing)

	touched := make(map[models.RecordKey]bool, len(changes))
	written := make(map[models.RecordKey]bool, len(changes))
	order := make([]models.RecordKey, 0, len(changes))

	for _, change := range changes {
		key := change.Key()
		if _, ok := touched[key]; !ok {
			touched[key] = false
			order = append(order, key)
		}

		var prev *models.Record
		if record, ok := current[key]; ok {
			prev = &record
		}

		merged, write := MergeRecord(prev, change, policy, written[key], now)
		if !write {
			continue
		}
		current[key] = merged
		written[key] = true
	}

	for _, key := range order {
		record, ok := current[key]
		if !ok {
			continue
		}
		final = append(final, record)
		if written[key] {
			toWrite = append(toWrite, record)
		}
	}

	return toWrite, final
}

// MergeRecord applies one change to the stored record existing (nil when the
// container has none). touched reports that the record was already written
// earlier in the same change set. The second result is false when the
// change leaves the record as it is.
//
// A change conflicts when its base version differs from the stored version.
// Under [models.MergePolicyLocalWins] a conflicting change is applied like any
// other: upserted fields overwrite stored ones and deletes win. Under
// [models.MergePolicyRemoteWins] a conflicting upsert only fills fields the
// stored record lacks and a conflicting delete is dropped.
func MergeRecord(existing *models.Record, change models.Change, policy models.MergePolicy, touched bool, now time.Time) (models.Record, bool) {
	if existing == nil {
		if change.Op != models.ChangeOpUpsert {
			return models.Record{}, false
		}
		return models.Record{
			Model:     change.Model,
			ID:        change.RecordID,
			Fields:    maps.Clone(change.Fields),
			Version:   1,
			UpdatedAt: now,
		}, true
	}

	conflict := !touched && change.BaseVersion != existing.Version
	if conflict && policy == models.MergePolicyRemoteWins {
		return mergeRemoteWins(*existing, change, now)
	}

	next := *existing
	switch change.Op {
	case models.ChangeOpUpsert:
		if existing.Deleted || existing.Fields == nil {
			next.Fields = make(map[string]any, len(change.Fields))
		} else {
			next.Fields = maps.Clone(existing.Fields)
		}
		maps.Copy(next.Fields, change.Fields)
		next.Deleted = false
	case models.ChangeOpDelete:
		if existing.Deleted {
			return *existing, false
		}
		next.Fields = nil
		next.Deleted = true
	default:
		return *existing, false
	}

	next.Version = existing.Version + 1
	next.UpdatedAt = now
	return next, true
}

func mergeRemoteWins(existing models.Record, change models.Change, now time.Time) (models.Record, bool) {
	if change.Op != models.ChangeOpUpsert || existing.Deleted {
		return existing, false
	}

	fields := maps.Clone(existing.Fields)
	if fields == nil {
		fields = make(map[string]any, len(change.Fields))
	}

	added := false
	for name, value := range change.Fields {
		if _, ok := fields[name]; ok {
			continue
		}
		fields[name] = value
		added = true
	}
	if !added {
		return existing, false
	}

	next := existing
	next.Fields = fields
	next.Version = existing.Version + 1
	next.UpdatedAt = now
	return next, true
}
