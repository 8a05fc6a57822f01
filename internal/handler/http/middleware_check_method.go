// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
)

// methodNotAllowed is registered as the router's MethodNotAllowed handler. It
// answers 404 instead of 405 so that unsupported methods do not reveal which
// paths exist. chi hands it down to mounted sub-routers as well.
func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	logger.FromRequest(r).Debug().
		Str("func", "methodNotAllowed").
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("method is not registered for path")
	http.NotFound(w, r)
}
