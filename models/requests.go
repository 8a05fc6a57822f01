// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// PushRequest carries a change set to the remote container.
//
// Hash is the hex HMAC-SHA256 of the JSON-encoded Changes; the server rejects
// the request when it does not match.
type PushRequest struct {
	Container   string      `json:"container"`
	MergePolicy MergePolicy `json:"merge_policy"`
	Changes     []Change    `json:"changes"`
	Hash        string      `json:"hash"`
	Length      int         `json:"length"`
}

// PushResponse returns the records as merged by the remote together with the
// container cursor after the push.
type PushResponse struct {
	Records []Record `json:"records"`
	Cursor  int64    `json:"cursor"`
}

// PullResponse lists records changed after the requested cursor.
type PullResponse struct {
	Records []Record `json:"records"`
	Cursor  int64    `json:"cursor"`
	Length  int      `json:"length"`
}
