// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const containerParam = "container"

// withContainer copies the {container} path parameter into the request
// context under [utils.ContainerCtxKey] and tags the request logger with it.
func withContainer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		container := chi.URLParam(r, containerParam)

		l := logger.FromRequest(r).GetChildLogger()
		l.UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("container", container)
		})

		ctx := context.WithValue(r.Context(), utils.ContainerCtxKey, container)
		next.ServeHTTP(w, r.WithContext(l.WithContext(ctx)))
	})
}
