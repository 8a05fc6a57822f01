// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, data []byte) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	return entry
}

func TestNewWithWriter_Fields(t *testing.T) {
	setupGlobals()
	var buf bytes.Buffer

	newWithWriter("go-sync-server", &buf).Info().Msg("listening")

	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "go-sync-server", entry["role"])
	assert.Equal(t, "listening", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewWithWriter_Fields")
}

func TestNewLogger_Globals(t *testing.T) {
	require.NotNil(t, NewLogger("go-sync-server"))

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger(t *testing.T) {
	t.Run("appends to the configured file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "client", "sync.log")

		NewClientLogger("go-sync-client", path).Info().Msg("first")
		NewClientLogger("go-sync-client", path).Info().Msg("second")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := bytes.Split(bytes.TrimSpace(data), []byte("\n"))
		require.Len(t, lines, 2)
		assert.Equal(t, "first", decodeEntry(t, lines[0])["message"])
		assert.Equal(t, "go-sync-client", decodeEntry(t, lines[1])["role"])
	})

	t.Run("unopenable path discards output", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, nil, 0o600))

		l := NewClientLogger("go-sync-client", filepath.Join(blocker, "sync.log"))

		assert.NotPanics(t, func() { l.Info().Msg("lost") })
	})
}

func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("discarded")

	assert.Empty(t, buf.String())
}

func TestChildLoggers(t *testing.T) {
	var buf bytes.Buffer
	parent := newWithWriter("go-sync-client", &buf)

	child := parent.GetChildLogger()
	assert.NotSame(t, parent, child)
	child.Info().Msg("child")
	assert.Equal(t, "go-sync-client", decodeEntry(t, buf.Bytes())["role"])

	buf.Reset()
	parent.WithComponent("orchestrator").Info().Msg("tagged")
	entry := decodeEntry(t, buf.Bytes())
	assert.Equal(t, "orchestrator", entry["component"])
	assert.Equal(t, "go-sync-client", entry["role"])

	buf.Reset()
	parent.Info().Msg("untagged")
	assert.NotContains(t, decodeEntry(t, buf.Bytes()), "component")
}

func TestFromContext(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger()

	FromContext(zl.WithContext(context.Background())).Info().Msg("from context")

	assert.Equal(t, "t-1", decodeEntry(t, buf.Bytes())["trace_id"])
}

func TestFromRequest(t *testing.T) {
	require.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/api/ping", nil)))

	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "t-2").Logger()
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req = req.WithContext(zl.WithContext(req.Context()))

	FromRequest(req).Info().Msg("from request")

	assert.Equal(t, "t-2", decodeEntry(t, buf.Bytes())["trace_id"])
}
