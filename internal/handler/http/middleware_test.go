// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "test-hash-key"

func newTestHandler() *Handler {
	return &Handler{logger: logger.Nop()}
}

func signedPush(t *testing.T, req models.PushRequest) []byte {
	t.Helper()

	utils.InitHasherPool(testHashKey)
	changes, err := json.Marshal(req.Changes)
	require.NoError(t, err)
	req.Hash = hex.EncodeToString(utils.Hash(changes))
	req.Length = len(req.Changes)

	body, err := json.Marshal(req)
	require.NoError(t, err)
	return body
}

func TestWithTraceID(t *testing.T) {
	tests := []struct {
		name          string
		requestHeader string
		wantSame      bool
	}{
		{name: "trace id from request is reused", requestHeader: "trace-42", wantSame: true},
		{name: "trace id is generated", requestHeader: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			h := &Handler{logger: &logger.Logger{Logger: zerolog.New(&buf)}}

			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logger.FromRequest(r).Info().Msg("inside")
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
			if tt.requestHeader != "" {
				req.Header.Set(traceIDHeader, tt.requestHeader)
			}
			rec := httptest.NewRecorder()
			h.withTraceID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(traceIDHeader)
			if tt.wantSame {
				assert.Equal(t, tt.requestHeader, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
			assert.Contains(t, buf.String(), `"trace_id":"`+got+`"`)
		})
	}
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler()

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/containers/box/changes", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
	rec := httptest.NewRecorder()
	h.withLogging(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	for _, want := range []string{`"method":"POST"`, `"uri":"/api/containers/box/changes"`, `"status":201`, `"size":7`, `"duration":`} {
		assert.Contains(t, buf.String(), want)
	}
}

func TestResponseWriter(t *testing.T) {
	t.Run("implicit status on write", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}

		n, err := rw.Write([]byte("hello"))
		require.NoError(t, err)
		_, _ = rw.Write([]byte("!"))

		assert.Equal(t, 5, n)
		assert.Equal(t, http.StatusOK, rw.status)
		assert.Equal(t, 6, rw.size)
	})

	t.Run("header is written once", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec}

		rw.WriteHeader(http.StatusTeapot)
		rw.WriteHeader(http.StatusOK)

		assert.Equal(t, http.StatusTeapot, rw.status)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

func TestPushHashing(t *testing.T) {
	valid := signedPush(t, models.PushRequest{
		Container: "box",
		Changes: []models.Change{{
			ChangeID: "c1", Model: "note", RecordID: "1", Op: models.ChangeOpUpsert,
			Fields: map[string]any{"title": "<b>hello</b>"},
		}},
	})

	tampered := bytes.Replace(valid, []byte("hello"), []byte("HELLO"), 1)

	tests := []struct {
		name       string
		body       []byte
		wantStatus int
		wantNext   bool
	}{
		{name: "matching hash", body: valid, wantStatus: http.StatusOK, wantNext: true},
		{name: "tampered changes", body: tampered, wantStatus: http.StatusBadRequest},
		{name: "hash is not hex", body: []byte(`{"changes":[],"hash":"zz"}`), wantStatus: http.StatusBadRequest},
		{name: "invalid JSON", body: []byte(`{"changes":`), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var nextBody []byte
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				nextBody, _ = io.ReadAll(r.Body)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/containers/box/changes", bytes.NewReader(tt.body))
			rec := httptest.NewRecorder()
			newTestHandler().pushHashing(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, called)
			if tt.wantNext {
				assert.Equal(t, tt.body, nextBody, "body must be restored for the handler")
			}
		})
	}
}

func TestWithContainer(t *testing.T) {
	var buf bytes.Buffer
	var got string
	router := chi.NewRouter()
	router.With(withContainer).Get("/c/{container}", func(w http.ResponseWriter, r *http.Request) {
		got, _ = utils.GetContainerFromContext(r.Context())
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodGet, "/c/box-1", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "box-1", got)
	assert.Contains(t, buf.String(), `"container":"box-1"`)
}

func TestAccessLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, accessLevel(http.StatusNoContent))
	assert.Equal(t, zerolog.WarnLevel, accessLevel(http.StatusNotFound))
	assert.Equal(t, zerolog.ErrorLevel, accessLevel(http.StatusInternalServerError))
}

func TestMethodNotAllowed_Returns404(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/ping"},
		{http.MethodPut, "/api/containers/box/changes"},
		{http.MethodPatch, "/api/containers/box"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(""))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
	}
}
