// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport of the remote container server.
//
// It wires the chi router, the container handlers and the middleware that
// handles request tracing, access logging, response compression and the
// change set integrity check before requests reach the service layer.
package http
