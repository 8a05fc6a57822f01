// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ChangeOp is the kind of a staged change.
type ChangeOp string

const (
	ChangeOpUpsert ChangeOp = "upsert"
	ChangeOpDelete ChangeOp = "delete"
)

// RecordKey identifies a record within a store or a container.
type RecordKey struct {
	Model string
	ID    string
}

// Record is a committed object of one of the configured models.
type Record struct {
	Model     string         `json:"model"`
	ID        string         `json:"id"`
	Fields    map[string]any `json:"fields,omitempty"`
	Version   int64          `json:"version"`
	UpdatedAt time.Time      `json:"updated_at"`
	Deleted   bool           `json:"deleted"`
}

// Change is a staged, not yet committed modification of a record.
//
// BaseVersion is the committed version the change was made against; the
// remote uses it to detect that the record moved in the meantime.
type Change struct {
	ChangeID    string         `json:"change_id"`
	Model       string         `json:"model"`
	RecordID    string         `json:"record_id"`
	Op          ChangeOp       `json:"op"`
	Fields      map[string]any `json:"fields,omitempty"`
	BaseVersion int64          `json:"base_version"`
	CreatedAt   time.Time      `json:"created_at"`
}

// Key returns the identity of the record.
func (r Record) Key() RecordKey {
	return RecordKey{Model: r.Model, ID: r.ID}
}

// Key returns the identity of the record the change targets.
func (c Change) Key() RecordKey {
	return RecordKey{Model: c.Model, ID: c.RecordID}
}
