// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/MKhiriev/go-sync-keeper/models"

type statusMsg struct {
	report models.StatusReport
}

type opDoneMsg struct {
	op  string
	err error
}

type notificationMsg struct {
	text string
}

type refreshTickMsg struct{}

type copiedMsg struct{}

type clearToastMsg struct{}
