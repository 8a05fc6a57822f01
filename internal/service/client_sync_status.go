// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
)

// SyncStatusTracker holds the outcome of the most recently completed save
// attempt. It has no locking of its own; the orchestrator guards it.
type SyncStatusTracker struct {
	status  models.SyncStatus
	last    time.Time
	hasLast bool

	now func() time.Time
}

// NewSyncStatusTracker returns a tracker in the NotSynced state. A nil now
// selects time.Now.
func NewSyncStatusTracker(now func() time.Time) *SyncStatusTracker {
	if now == nil {
		now = time.Now
	}
	return &SyncStatusTracker{
		status: models.SyncStatusNotSynced,
		now:    now,
	}
}

// RecordAttempt stamps a completed save attempt. The timestamp never moves
// backwards, even if the wall clock does.
func (t *SyncStatusTracker) RecordAttempt(success bool) {
	ts := t.now()
	if t.hasLast && ts.Before(t.last) {
		ts = t.last
	}
	t.last = ts
	t.hasLast = true

	if success {
		t.status = models.SyncStatusSyncedSuccessfully
	} else {
		t.status = models.SyncStatusSyncFailed
	}
}

// Current returns the status, the time of the last attempt and whether an
// attempt has been recorded at all.
func (t *SyncStatusTracker) Current() (models.SyncStatus, time.Time, bool) {
	return t.status, t.last, t.hasLast
}
