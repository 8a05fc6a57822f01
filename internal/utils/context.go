// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, hashing,
// HTTP response writing, HTTP client initialization, identifier generation
// and other common operations.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// ContainerCtxKey is the key used to store the container identifier taken
// from the request path.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.ContainerCtxKey, "box-1")
var ContainerCtxKey = contextKey("container")

// GetContainerFromContext returns the container identifier stored by the
// container middleware. ok is false when the value is missing or empty.
func GetContainerFromContext(ctx context.Context) (string, bool) {
	container, ok := ctx.Value(ContainerCtxKey).(string)
	return container, ok && container != ""
}
