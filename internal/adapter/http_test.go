// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/config"
	"github.com/MKhiriev/go-sync-keeper/internal/logger"
	"github.com/MKhiriev/go-sync-keeper/internal/utils"
	"github.com/MKhiriev/go-sync-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHashKey = "testhashkey"

// newTestAdapter builds an httpRemoteContainer pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpRemoteContainer {
	t.Helper()
	adapterCfg := config.ClientAdapter{HTTPAddress: serverURL, RequestTimeout: 2 * time.Second}
	appCfg := config.ClientApp{HashKey: testHashKey}

	a, err := NewHTTPRemoteContainer(adapterCfg, appCfg, logger.Nop())
	require.NoError(t, err)
	return a.(*httpRemoteContainer)
}

// ── constructor ─────────────────────────────────────────────────────────────

func TestNewHTTPRemoteContainer_InvalidAddress(t *testing.T) {
	_, err := NewHTTPRemoteContainer(config.ClientAdapter{HTTPAddress: "  "}, config.ClientApp{}, logger.Nop())
	require.Error(t, err)
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "adds scheme", raw: "localhost:8080", want: "http://localhost:8080"},
		{name: "keeps https", raw: "https://sync.example.com/", want: "https://sync.example.com"},
		{name: "empty", raw: "", wantErr: true},
		{name: "scheme only", raw: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── Ping ────────────────────────────────────────────────────────────────────

func TestPing_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/ping", r.URL.Path)
		_, _ = w.Write([]byte("pong"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	a := newTestAdapter(t, srv.URL)
	srv.Close()

	err := a.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestPing_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Ping(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInternalServerError)
	assert.NotErrorIs(t, err, ErrUnreachable)
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPush_SendsSignedChangeSet(t *testing.T) {
	changes := []models.Change{
		{
			ChangeID:    "c1",
			Model:       "notes",
			RecordID:    "n1",
			Op:          models.ChangeOpUpsert,
			Fields:      map[string]any{"title": "hello"},
			BaseVersion: 2,
		},
	}
	want := models.PushResponse{
		Records: []models.Record{{Model: "notes", ID: "n1", Fields: map[string]any{"title": "hello"}, Version: 3}},
		Cursor:  17,
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/containers/box-1/changes", r.URL.Path)

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "box-1", req.Container)
		assert.Equal(t, models.MergePolicyRemoteWins, req.MergePolicy)
		assert.Equal(t, 1, req.Length)

		payload, err := json.Marshal(req.Changes)
		require.NoError(t, err)
		assert.Equal(t, utils.HashString(string(payload), testHashKey), req.Hash)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Push(context.Background(), "box-1", models.MergePolicyRemoteWins, changes)

	require.NoError(t, err)
	assert.Equal(t, want.Cursor, got.Cursor)
	require.Len(t, got.Records, 1)
	assert.Equal(t, int64(3), got.Records[0].Version)
}

func TestPush_IntegrityFailureMapsToBadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Integrity check failed", http.StatusBadRequest)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Push(context.Background(), "box-1", models.MergePolicyLocalWins, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "Integrity check failed")
}

// ── Pull ────────────────────────────────────────────────────────────────────

func TestPull_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/containers/box-1/changes", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("since"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.PullResponse{
			Records: []models.Record{{Model: "notes", ID: "n9", Version: 1}},
			Cursor:  50,
			Length:  1,
		})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.Pull(context.Background(), "box-1", 42)

	require.NoError(t, err)
	assert.Equal(t, int64(50), got.Cursor)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "n9", got.Records[0].ID)
}

func TestPull_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.Pull(context.Background(), "box-1", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode pull response")
}

// ── DeleteContainer ─────────────────────────────────────────────────────────

func TestDeleteContainer(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "deleted", status: http.StatusNoContent},
		{name: "absent", status: http.StatusNotFound, wantErr: ErrNotFound},
		{name: "server failure", status: http.StatusBadGateway, wantErr: ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/api/containers/box-1", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			err := a.DeleteContainer(context.Background(), "box-1")
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestComputeTransportHash_MatchesPool(t *testing.T) {
	utils.InitHasherPool(testHashKey)
	changes := []models.Change{{ChangeID: "c1", Model: "notes", RecordID: "n1", Op: models.ChangeOpDelete}}

	payload, err := json.Marshal(changes)
	require.NoError(t, err)

	assert.Equal(t, hex.EncodeToString(utils.Hash(payload)), computeTransportHash(changes))
}

func TestMapHTTPError_GatewayFailureIsUnreachable(t *testing.T) {
	for _, status := range []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		err := newTestAdapter(t, srv.URL).Ping(context.Background())
		srv.Close()

		assert.ErrorIs(t, err, ErrUnreachable, status)
		assert.ErrorIs(t, err, ErrBadGateway, status)
	}
}

func TestMapHTTPError_UnmappedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Ping(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "http 418: I'm a teapot")
	assert.NotErrorIs(t, err, ErrUnreachable)
}
