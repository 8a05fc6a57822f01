// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// ContainerService is the server side of the remote container: it merges
// pushed change sets into stored records and serves pulls.
type ContainerService interface {
	// Push merges req.Changes into req.Container under req.MergePolicy and
	// returns the final state of every touched record.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)
	// Pull returns the records of container changed after cursor since.
	Pull(ctx context.Context, container string, since int64) (models.PullResponse, error)
	// DeleteContainer removes container with all of its records.
	DeleteContainer(ctx context.Context, container string) error
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
