// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// SyncStatus is the outcome of the most recently completed save attempt.
type SyncStatus int

const (
	// SyncStatusNotSynced is held only until the first save attempt completes.
	SyncStatusNotSynced SyncStatus = iota
	// SyncStatusSyncedSuccessfully means the last commit succeeded.
	SyncStatusSyncedSuccessfully
	// SyncStatusSyncFailed means the last commit returned an error.
	SyncStatusSyncFailed
)

// String returns the human-readable label shown in the status console.
func (s SyncStatus) String() string {
	switch s {
	case SyncStatusNotSynced:
		return "Not Synced"
	case SyncStatusSyncedSuccessfully:
		return "Synced Successfully"
	case SyncStatusSyncFailed:
		return "Sync Failed"
	default:
		return "Unknown"
	}
}

// StatusReport is a read-only snapshot of the orchestrator state intended for
// UI consumers.
type StatusReport struct {
	Status      SyncStatus `json:"status"`
	LastSync    time.Time  `json:"last_sync,omitempty"`
	HasLastSync bool       `json:"has_last_sync"`
	Reachable   bool       `json:"reachable"`
	Pending     int        `json:"pending"`
}
