// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] and
// [ServerConfig.validate] when required configuration groups are incomplete
// or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid client adapter settings
	// (for example, missing HTTP address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, empty store path or unsupported in-memory store).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, missing hash key).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, zero probe interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidStoreConfigs indicates an unusable store description
	// (no models, no container, or an unknown sync mode or merge policy).
	ErrInvalidStoreConfigs = errors.New("invalid store configuration")
	// ErrInvalidEnv wraps a variable that could not be parsed into its field.
	ErrInvalidEnv = errors.New("invalid environment variable")
	// ErrInvalidServerConfigs indicates invalid server listener settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
