// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileFlagStore is a [FlagStore] persisted as a small JSON object. Every
// SetFlag rewrites the file through a temporary file and a rename, so a crash
// leaves either the old or the new content.
type fileFlagStore struct {
	path string

	mu    sync.RWMutex
	flags map[string]bool
}

type flagFileState struct {
	Flags map[string]bool `json:"flags"`
}

// NewFileFlagStore loads the flag file at path. A missing file is an empty
// store; it is created on the first SetFlag.
func NewFileFlagStore(path string) (FlagStore, error) {
	s := &fileFlagStore{
		path:  path,
		flags: make(map[string]bool),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// GetFlag implements [FlagStore]. Absent keys read as false.
func (s *fileFlagStore) GetFlag(key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.flags[key], nil
}

// SetFlag implements [FlagStore]. The in-memory value only changes when the
// file was written successfully.
func (s *fileFlagStore) SetFlag(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.flags[key]
	s.flags[key] = value

	if err := s.persist(); err != nil {
		if existed {
			s.flags[key] = previous
		} else {
			delete(s.flags, key)
		}
		return err
	}

	return nil
}

func (s *fileFlagStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: read flag file: %w", ErrFlagStore, err)
	}

	var st flagFileState
	if err = json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("%w: decode flag file: %w", ErrFlagStore, err)
	}

	if st.Flags != nil {
		s.flags = st.Flags
	}

	return nil
}

func (s *fileFlagStore) persist() error {
	dir := filepath.Dir(s.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create flag dir: %w", ErrFlagStore, err)
		}
	}

	payload, err := json.MarshalIndent(flagFileState{Flags: s.flags}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode flags: %w", ErrFlagStore, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp flag file: %w", ErrFlagStore, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(payload); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: write flag file: %w", ErrFlagStore, err)
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("%w: replace flag file: %w", ErrFlagStore, err)
	}

	return nil
}
