// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides the background workers of the client: the
// connectivity probe that watches the remote container and the autosave job
// that periodically persists staged changes. The Workers aggregate starts and
// stops them as a unit.
package workers

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker's goroutine and returns immediately; the worker
// runs until ctx is cancelled or Stop is called. Stop blocks until the
// goroutine has exited and is safe to call on a worker that is not running.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// ConnectivityMonitor delivers reachability transitions of the remote
// container.
type ConnectivityMonitor interface {
	// Subscribe registers fn for every transition. fn runs on the monitor's
	// delivery goroutine, one event at a time. The returned function cancels
	// the subscription and may be called more than once.
	Subscribe(fn func(reachable bool)) (unsubscribe func())
}

// Pinger checks whether the remote container answers.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Saver persists staged changes. Concurrent calls coalesce.
type Saver interface {
	Save(ctx context.Context) error
}
