// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	router.Use(middleware.Compress(5, "application/json"))

	router.Get("/api/ping", h.ping)
	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/containers/{container}", func(r chi.Router) {
		r.Use(withContainer)

		r.With(h.pushHashing).Post("/changes", h.pushChanges)
		r.Get("/changes", h.pullChanges)
		r.Delete("/", h.deleteContainer)
	})

	router.MethodNotAllowed(methodNotAllowed)

	return router
}
