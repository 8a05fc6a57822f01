// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
)

func (h *Handler) ping(w http.ResponseWriter, r *http.Request) {
	utils.WriteText(w, "pong", http.StatusOK)
}

func (h *Handler) pushChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	container, _ := utils.GetContainerFromContext(ctx)

	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.pushChanges").Msg("invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if req.Container == "" {
		req.Container = container
	}
	if req.Container != container {
		err := fmt.Errorf("%w: %q != %q", ErrContainerMismatch, req.Container, container)
		log.Err(err).Str("func", "*Handler.pushChanges").Msg("container mismatch")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	resp, err := h.services.ContainerService.Push(ctx, req)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pushChanges").Msg("error pushing change set")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) pullChanges(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	container, _ := utils.GetContainerFromContext(ctx)

	var since int64
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrInvalidSinceParam, err)
			log.Err(err).Str("func", "*Handler.pullChanges").Msg("bad cursor")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
		since = parsed
	}

	resp, err := h.services.ContainerService.Pull(ctx, container, since)
	if err != nil {
		log.Err(err).Str("func", "*Handler.pullChanges").Msg("error pulling changes")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) deleteContainer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)
	container, _ := utils.GetContainerFromContext(ctx)

	if err := h.services.ContainerService.DeleteContainer(ctx, container); err != nil {
		log.Err(err).Str("func", "*Handler.deleteContainer").Msg("error deleting container")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
