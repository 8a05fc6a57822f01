// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// Orchestrator error taxonomy. Callers match them with errors.Is; the cause
// is always wrapped alongside.
var (
	// ErrConfiguration is returned by NewOrchestrator when the store
	// configuration is unusable or the store cannot be opened. It is fatal.
	ErrConfiguration = errors.New("configuration error")

	// ErrCommit is returned by an explicit Save whose commit failed. The
	// status becomes SyncFailed and the next save retries.
	ErrCommit = errors.New("commit error")

	// ErrDeletion is returned when the remote container could not be
	// destroyed. On the first-launch path the launch flag stays unset.
	ErrDeletion = errors.New("deletion error")

	// ErrDiscard is returned when staged changes could not be dropped. It is
	// never retried automatically.
	ErrDiscard = errors.New("discard error")

	// ErrOrchestratorClosed is returned by every operation after Close.
	ErrOrchestratorClosed = errors.New("orchestrator is closed")
)

// Container service errors.
var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrHashMismatch      = errors.New("change set hash does not match")
	ErrContainerNotFound = errors.New("container not found")
)
