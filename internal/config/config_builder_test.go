// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestBuild_MergePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		sources []*StructuredConfig
		check   func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "no sources",
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
		{
			name: "disjoint fields are combined",
			sources: []*StructuredConfig{
				{App: App{Version: "1.0.0"}},
				{App: App{HashKey: "key"}, Store: Store{Models: []string{"notes"}}},
			},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "1.0.0", cfg.App.Version)
				assert.Equal(t, "key", cfg.App.HashKey)
				assert.Equal(t, []string{"notes"}, cfg.Store.Models)
			},
		},
		{
			name: "earlier source wins",
			sources: []*StructuredConfig{
				{Store: Store{Container: "env-container", SyncMode: "manual"}},
				{Store: Store{Container: "json-container", SyncMode: "automatic", MergePolicy: "remote-wins"}},
			},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "env-container", cfg.Store.Container)
				assert.Equal(t, "manual", cfg.Store.SyncMode)
				assert.Equal(t, "remote-wins", cfg.Store.MergePolicy)
			},
		},
		{
			name: "durations fill in from later sources",
			sources: []*StructuredConfig{
				{Workers: Workers{ProbeInterval: 2 * time.Second}},
				{Workers: Workers{ProbeInterval: time.Minute, ProbeMaxInterval: 5 * time.Minute}},
			},
			check: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, 2*time.Second, cfg.Workers.ProbeInterval)
				assert.Equal(t, 5*time.Minute, cfg.Workers.ProbeMaxInterval)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			b.configs = append(b.configs, tt.sources...)

			cfg, err := b.build()
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Run("collected source error", func(t *testing.T) {
		b := newConfigBuilder()
		b.err = assert.AnError

		cfg, err := b.build()
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("negative probe interval", func(t *testing.T) {
		b := newConfigBuilder()
		b.configs = append(b.configs, &StructuredConfig{Workers: Workers{ProbeInterval: -time.Second}})

		_, err := b.build()
		assert.ErrorIs(t, err, ErrInvalidWorkerConfigs)
	})
}

func TestWithEnv(t *testing.T) {
	setEnvVars(t, map[string]string{
		"APP_VERSION":     "env-version",
		"STORE_MODELS":    "notes,tasks",
		"STORE_CONTAINER": "box",
	})

	b := newConfigBuilder()
	require.Same(t, b, b.withEnv())

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-version", b.configs[0].App.Version)
	assert.Equal(t, []string{"notes", "tasks"}, b.configs[0].Store.Models)
	assert.Equal(t, "box", b.configs[0].Store.Container)
}

func TestWithEnv_InvalidValue(t *testing.T) {
	setEnvVars(t, map[string]string{"ADAPTER_REQUEST_TIMEOUT": "soon"})

	b := newConfigBuilder().withEnv()

	assert.ErrorIs(t, b.err, ErrInvalidEnv)
	assert.Empty(t, b.configs)
}

func TestWithJSON(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.Version = "json-version"
	payload.Store.Container = "json-container"
	valid := writeTempJSONConfig(t, payload)

	malformed := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(malformed, []byte("{not valid json"), 0o600))

	tests := []struct {
		name      string
		paths     []string
		wantErr   bool
		wantAdded bool
	}{
		{name: "no path configured", paths: []string{""}},
		{name: "valid file", paths: []string{valid}, wantAdded: true},
		{name: "last non-empty path wins", paths: []string{"/nonexistent/first.json", valid, ""}, wantAdded: true},
		{name: "missing file", paths: []string{"/nonexistent/config.json"}, wantErr: true},
		{name: "malformed file", paths: []string{malformed}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newConfigBuilder()
			for _, p := range tt.paths {
				b.configs = append(b.configs, &StructuredConfig{JSONFilePath: p})
			}

			require.Same(t, b, b.withJSON())

			if tt.wantErr {
				assert.Error(t, b.err)
				return
			}
			require.NoError(t, b.err)
			if !tt.wantAdded {
				assert.Len(t, b.configs, len(tt.paths))
				return
			}
			require.Len(t, b.configs, len(tt.paths)+1)
			last := b.configs[len(b.configs)-1]
			assert.Equal(t, "json-version", last.App.Version)
			assert.Equal(t, "json-container", last.Store.Container)
		})
	}
}
