// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request errors detected by the handlers before the service layer is called.
var (
	// ErrContainerMismatch is returned when the container named in a push
	// body differs from the one in the request path.
	ErrContainerMismatch = errors.New("container in body does not match path")

	// ErrInvalidSinceParam is returned when the since query parameter is not
	// a decimal integer.
	ErrInvalidSinceParam = errors.New("invalid since query parameter")
)
