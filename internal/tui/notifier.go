// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"github.com/MKhiriev/go-sync-keeper/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

const notificationBuffer = 16

// Notifier shows orchestrator notifications as a toast line in the status
// console. Messages that arrive while the buffer is full are dropped.
type Notifier struct {
	ch chan string
}

var _ service.Notifier = (*Notifier)(nil)

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan string, notificationBuffer)}
}

func (n *Notifier) Notify(message string) {
	select {
	case n.ch <- message:
	default:
	}
}

func waitForNotification(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return notificationMsg{text: <-ch}
	}
}
