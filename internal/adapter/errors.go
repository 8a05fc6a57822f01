// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors returned by [RemoteContainer] implementations. HTTP status
// codes are mapped onto them by mapHTTPError.
var (
	// ErrBadRequest is returned on HTTP 400, including a failed integrity check.
	ErrBadRequest = errors.New("bad request")
	// ErrNotFound is returned on HTTP 404.
	ErrNotFound = errors.New("not found")
	// ErrBadGateway is returned on HTTP 502, 503 and 504.
	ErrBadGateway = errors.New("bad gateway")
	// ErrInternalServerError is returned on HTTP 500.
	ErrInternalServerError = errors.New("internal server error")
	// ErrUnreachable is returned when the container server did not answer:
	// no HTTP response at all, or a gateway failure in front of it.
	ErrUnreachable = errors.New("remote container server is unreachable")
)
