// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"slices"
	"strings"
)

// SyncMode selects how the local store exchanges data with the remote
// container.
type SyncMode int

const (
	// SyncModeAutomatic pushes pending changes and pulls remote changes on
	// every commit; the autosave worker runs in this mode.
	SyncModeAutomatic SyncMode = iota
	// SyncModeManual only pushes pending changes when a save is requested.
	SyncModeManual
)

func (m SyncMode) String() string {
	if m == SyncModeManual {
		return "manual"
	}
	return "automatic"
}

// ParseSyncMode converts a configuration string into a [SyncMode]. The empty
// string selects [SyncModeAutomatic].
func ParseSyncMode(s string) (SyncMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "automatic", "auto":
		return SyncModeAutomatic, nil
	case "manual":
		return SyncModeManual, nil
	default:
		return SyncModeAutomatic, fmt.Errorf("unknown sync mode %q", s)
	}
}

// MergePolicy decides which side wins a field-level conflict between a local
// change and a remote record that moved since the change was staged.
type MergePolicy int

const (
	// MergePolicyLocalWins lets local field values trump conflicting remote
	// values. Remote fields the local change does not mention are kept.
	MergePolicyLocalWins MergePolicy = iota
	// MergePolicyRemoteWins keeps remote field values on conflict and only
	// fills fields the remote record does not have.
	MergePolicyRemoteWins
)

func (p MergePolicy) String() string {
	if p == MergePolicyRemoteWins {
		return "remote-wins"
	}
	return "local-wins"
}

// ParseMergePolicy converts a configuration string into a [MergePolicy]. The
// empty string selects [MergePolicyLocalWins].
func ParseMergePolicy(s string) (MergePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local-wins", "local":
		return MergePolicyLocalWins, nil
	case "remote-wins", "remote":
		return MergePolicyRemoteWins, nil
	default:
		return MergePolicyLocalWins, fmt.Errorf("unknown merge policy %q", s)
	}
}

// StoreConfiguration describes the store the orchestrator opens. It is
// consumed once at construction and never mutated afterwards.
type StoreConfiguration struct {
	// Models lists the logical model identifiers the store accepts. At least
	// one is required.
	Models []string
	// Container identifies the remote container that mirrors the store.
	Container string
	// SyncMode selects automatic or manual synchronization.
	SyncMode SyncMode
	// MergePolicy is forwarded to the remote on every push.
	MergePolicy MergePolicy
}

// HasModel reports whether model is one of the configured identifiers.
func (c StoreConfiguration) HasModel(model string) bool {
	return slices.Contains(c.Models, model)
}

// MarshalText encodes the policy by name on the wire.
func (p MergePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText accepts the names understood by [ParseMergePolicy].
func (p *MergePolicy) UnmarshalText(text []byte) error {
	parsed, err := ParseMergePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
