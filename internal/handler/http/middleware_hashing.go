// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"crypto/hmac"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
)

// pushHashing verifies the hash of a pushed change set. The HMAC is computed
// over the changes exactly as they appear in the body, so the check does not
// depend on how the server would re-encode them.
func (h *Handler) pushHashing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		var req struct {
			Changes json.RawMessage `json:"changes"`
			Hash    string          `json:"hash"`
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Err(err).Str("func", "*Handler.pushHashing").Msg("failed to read request body")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		if err = json.Unmarshal(body, &req); err != nil {
			log.Err(err).Str("func", "*Handler.pushHashing").Msg("failed to decode JSON")
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		want, err := hex.DecodeString(req.Hash)
		if err != nil || !hmac.Equal(want, utils.Hash(req.Changes)) {
			log.Error().Str("func", "*Handler.pushHashing").
				Str("hash from request", req.Hash).
				Msg("hashes are not equal")
			http.Error(w, service.ErrHashMismatch.Error(), statusFromError(service.ErrHashMismatch))
			return
		}

		next.ServeHTTP(w, r)
	})
}
