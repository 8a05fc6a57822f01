// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileFlagStore_AbsentKeyReadsFalse(t *testing.T) {
	s, err := NewFileFlagStore(filepath.Join(t.TempDir(), "flags.json"))
	require.NoError(t, err)

	v, err := s.GetFlag("hasLaunchedBefore")
	require.NoError(t, err)
	assert.False(t, v)
}

func TestFileFlagStore_PersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "flags.json")

	s, err := NewFileFlagStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetFlag("hasLaunchedBefore", true))
	require.NoError(t, s.SetFlag("other", false))

	reopened, err := NewFileFlagStore(path)
	require.NoError(t, err)

	v, err := reopened.GetFlag("hasLaunchedBefore")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = reopened.GetFlag("other")
	require.NoError(t, err)
	assert.False(t, v)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"flags":{"hasLaunchedBefore":true,"other":false}}`, string(data))
}

func TestFileFlagStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileFlagStore(filepath.Join(dir, "flags.json"))
	require.NoError(t, err)

	for range 5 {
		require.NoError(t, s.SetFlag("k", true))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "flags.json", entries[0].Name())
}

func TestFileFlagStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flags.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := NewFileFlagStore(path)

	require.ErrorIs(t, err, ErrFlagStore)
}

func TestFileFlagStore_FailedWriteKeepsPreviousValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flags.json")

	s, err := NewFileFlagStore(path)
	require.NoError(t, err)
	require.NoError(t, s.SetFlag("hasLaunchedBefore", false))

	// a directory in place of the flag file makes the rename fail
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), nil, 0o600))

	err = s.SetFlag("hasLaunchedBefore", true)
	require.ErrorIs(t, err, ErrFlagStore)

	v, err := s.GetFlag("hasLaunchedBefore")
	require.NoError(t, err)
	assert.False(t, v)

	err = s.SetFlag("fresh", true)
	require.ErrorIs(t, err, ErrFlagStore)
	v, err = s.GetFlag("fresh")
	require.NoError(t, err)
	assert.False(t, v)
}
