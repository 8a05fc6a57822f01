// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-sync-keeper/internal/adapter"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
)

// ErrNoModels is returned by [New] when the store configuration lists no
// model to stage notes into.
var ErrNoModels = errors.New("store configuration lists no models")

func humanizeError(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, adapter.ErrUnreachable):
		return "Remote container is unreachable, changes stay pending"
	case errors.Is(err, service.ErrOrchestratorClosed):
		return "Synchronization is shut down"
	case errors.Is(err, adapter.ErrBadRequest):
		return "Remote container rejected the change set: " + err.Error()
	}

	s := strings.ToLower(err.Error())
	if strings.Contains(s, "connection refused") ||
		strings.Contains(s, "no such host") ||
		strings.Contains(s, "network is unreachable") ||
		strings.Contains(s, "context deadline exceeded") {
		return "Network is down or the server is unavailable"
	}

	return err.Error()
}
