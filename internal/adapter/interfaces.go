// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the remote container server.
//
// The primary abstraction is [RemoteContainer], which decouples the local
// store and the connectivity probe from the underlying protocol. The package
// ships an HTTP/REST implementation ([NewHTTPRemoteContainer]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrNotFound] for 404, [ErrUnreachable] for transport failures).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/remote_container_mock.go -package=mock

// RemoteContainer defines transport-agnostic communication with the remote
// container server. Implementations are responsible for serialisation,
// integrity hashing and mapping transport-level errors to the sentinel values
// defined in this package.
type RemoteContainer interface {
	// Ping checks that the server answers. Returns [ErrUnreachable] (wrapped)
	// when no response could be obtained at all.
	Ping(ctx context.Context) error

	// Push sends staged changes of container to the server, which merges them
	// with its copy according to policy. The response carries the merged
	// records of every record the change set touched.
	Push(ctx context.Context, container string, policy models.MergePolicy, changes []models.Change) (models.PushResponse, error)

	// Pull returns the records of container changed after cursor since,
	// together with the cursor to use next time.
	Pull(ctx context.Context, container string, since int64) (models.PullResponse, error)

	// DeleteContainer destroys the remote copy of container. Returns
	// [ErrNotFound] (wrapped) when the server has no such container.
	DeleteContainer(ctx context.Context, container string) error
}
