// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

// Server defines the lifecycle of a transport server.
//
// RunServer blocks until shutdown is requested; Shutdown releases resources.
type Server interface {
	RunServer()
	Shutdown()
}
