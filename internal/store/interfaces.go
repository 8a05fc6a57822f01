// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// MergeFunc receives the current state of the records a push touches, keyed
// by identity, and returns the records to write. Version must already be
// assigned by the caller.
type MergeFunc func(existing map[models.RecordKey]models.Record) ([]models.Record, error)

// ContainerRepository persists remote containers on the server.
type ContainerRepository interface {
	// ApplyChanges locks container (creating it when absent), loads the
	// records identified by keys, runs merge and writes its result. It
	// returns the written records and the cursor after the write.
	ApplyChanges(ctx context.Context, container string, keys []models.RecordKey, merge MergeFunc) ([]models.Record, int64, error)
	// GetChangedSince returns records of container written after cursor
	// since, in write order, and the cursor of the last one (or since when
	// nothing changed). An absent container has no changes.
	GetChangedSince(ctx context.Context, container string, since int64) ([]models.Record, int64, error)
	// DeleteContainer removes container and all of its records. Returns
	// [ErrContainerNotFound] when it does not exist.
	DeleteContainer(ctx context.Context, container string) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
