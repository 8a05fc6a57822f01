// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by the local store, the flag store and the
// container repository to signal well-known failure conditions. Callers should
// use [errors.Is] to match against these values.
var (
	// ErrStoreLocked is returned by [OpenLocalStore] when another process
	// already owns the store file.
	ErrStoreLocked = errors.New("local store is locked by another process")

	// ErrNoModels is returned when a store is opened with an empty model list.
	ErrNoModels = errors.New("store configuration lists no models")

	// ErrUnknownModel is returned when a change targets a model that is not
	// part of the store configuration.
	ErrUnknownModel = errors.New("model is not part of the store configuration")

	// ErrEmptyRecordID is returned when a change targets a record without an
	// identifier.
	ErrEmptyRecordID = errors.New("record id is empty")

	// ErrRecordNotFound is returned when a record is absent or deleted once
	// pending changes are applied.
	ErrRecordNotFound = errors.New("record was not found")

	// ErrStoreClosed is returned by every [StoreHandle] method after Close.
	ErrStoreClosed = errors.New("local store is closed")

	// ErrPushingChanges wraps a failed push of pending changes to the remote.
	ErrPushingChanges = errors.New("failed to push pending changes")

	// ErrPullingChanges wraps a failed pull of remote changes.
	ErrPullingChanges = errors.New("failed to pull remote changes")

	// ErrDestroyingRemote wraps a failed remote container deletion.
	ErrDestroyingRemote = errors.New("failed to destroy remote container")

	// ErrContainerNotFound is returned by the container repository when the
	// requested container does not exist.
	ErrContainerNotFound = errors.New("container was not found")

	// ErrFlagStore wraps read and write failures of the flag file.
	ErrFlagStore = errors.New("flag store failure")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan record row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan record rows")

	// ErrEncodingPayload is returned when record fields cannot be converted
	// to or from their JSON column representation.
	ErrEncodingPayload = errors.New("failed to encode record payload")
)
