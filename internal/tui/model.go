// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-sync-keeper/internal/service"
	"github.com/MKhiriev/go-sync-keeper/models"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

const (
	refreshInterval = time.Second
	toastLifetime   = 3 * time.Second
)

type screen int

const (
	screenStatus screen = iota
	screenNote
	screenConfirmDelete
	screenBuildInfo
)

type statusModel struct {
	ctx           context.Context
	orchestrator  service.SyncOrchestrator
	notifications <-chan string
	cfg           models.StoreConfiguration
	buildInfo     models.BuildInfo

	newID           func() string
	copyToClipboard func(string) error

	screen    screen
	report    models.StatusReport
	busy      string
	spinner   spinner.Model
	noteInput textinput.Model
	toast     string
	errMsg    string
}

func newStatusModel(ctx context.Context, orchestrator service.SyncOrchestrator, notifications <-chan string, cfg models.StoreConfiguration, buildInfo models.BuildInfo) statusModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot

	in := textinput.New()
	in.Placeholder = "note text"
	in.CharLimit = 512

	return statusModel{
		ctx:             ctx,
		orchestrator:    orchestrator,
		notifications:   notifications,
		cfg:             cfg,
		buildInfo:       buildInfo,
		newID:           uuid.NewString,
		copyToClipboard: clipboard.WriteAll,
		spinner:         s,
		noteInput:       in,
		report:          orchestrator.Status(),
	}
}

func (m statusModel) Init() tea.Cmd {
	return tea.Batch(m.cmdRefresh(), waitForNotification(m.notifications), cmdRefreshTick())
}

func (m statusModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case statusMsg:
		m.report = msg.report
		return m, nil
	case refreshTickMsg:
		return m, tea.Batch(m.cmdRefresh(), cmdRefreshTick())
	case notificationMsg:
		m.toast = msg.text
		return m, tea.Batch(waitForNotification(m.notifications), m.cmdRefresh(), cmdClearToast())
	case opDoneMsg:
		if msg.op == m.busy {
			m.busy = ""
		}
		if msg.err != nil {
			m.errMsg = humanizeError(msg.err)
		} else {
			m.errMsg = ""
			m.toast = msg.op + ": done"
		}
		return m, tea.Batch(m.cmdRefresh(), cmdClearToast())
	case copiedMsg:
		m.toast = "Status report copied to clipboard"
		return m, cmdClearToast()
	case clearToastMsg:
		m.toast = ""
		return m, nil
	case spinner.TickMsg:
		if m.busy == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.screen {
	case screenNote:
		return m.updateNote(msg)
	case screenConfirmDelete:
		return m.updateConfirm(msg)
	case screenBuildInfo:
		return m.updateBuildInfo(msg)
	default:
		return m.updateStatus(msg)
	}
}

func (m statusModel) updateStatus(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if key.Matches(keyMsg, keys.quit) {
		return m, tea.Quit
	}
	if key.Matches(keyMsg, keys.buildInfo) {
		m.screen = screenBuildInfo
		return m, nil
	}
	if key.Matches(keyMsg, keys.copy) {
		return m, m.cmdCopy()
	}
	if m.busy != "" {
		return m, nil
	}

	o := m.orchestrator
	switch {
	case key.Matches(keyMsg, keys.save):
		return m.runOp("Save", o.Save)
	case key.Matches(keyMsg, keys.keepLocal):
		return m.runOp("Keep local", func(ctx context.Context) error { return o.ResolveConflict(ctx, true) })
	case key.Matches(keyMsg, keys.keepRemote):
		return m.runOp("Keep remote", func(ctx context.Context) error { return o.ResolveConflict(ctx, false) })
	case key.Matches(keyMsg, keys.firstLaunch):
		return m.runOp("First launch", o.HandleFirstLaunch)
	case key.Matches(keyMsg, keys.arm):
		return m.runOp("Arm deletion", o.ConfigureForAutomaticDeletion)
	case key.Matches(keyMsg, keys.deleteAll):
		m.screen = screenConfirmDelete
	case key.Matches(keyMsg, keys.note):
		m.screen = screenNote
		m.noteInput.Reset()
		return m, m.noteInput.Focus()
	}

	return m, nil
}

func (m statusModel) updateNote(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			m.screen = screenStatus
			m.noteInput.Blur()
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			text := strings.TrimSpace(m.noteInput.Value())
			m.screen = screenStatus
			m.noteInput.Blur()
			if text == "" {
				return m, nil
			}
			model, id := m.cfg.Models[0], m.newID()
			return m.runOp("Stage note", func(ctx context.Context) error {
				_, err := m.orchestrator.Store().Put(ctx, model, id, map[string]any{"text": text})
				return err
			})
		}
	}

	var cmd tea.Cmd
	m.noteInput, cmd = m.noteInput.Update(msg)
	return m, cmd
}

func (m statusModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.yes):
		m.screen = screenStatus
		return m.runOp("Delete remote data", m.orchestrator.DeleteRemoteData)
	case key.Matches(keyMsg, keys.no), key.Matches(keyMsg, keys.esc):
		m.screen = screenStatus
	}
	return m, nil
}

func (m statusModel) updateBuildInfo(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.quit):
			return m, tea.Quit
		case key.Matches(keyMsg, keys.esc), key.Matches(keyMsg, keys.buildInfo):
			m.screen = screenStatus
		}
	}
	return m, nil
}

// runOp marks the model busy and runs op off the UI goroutine.
func (m statusModel) runOp(name string, op func(context.Context) error) (tea.Model, tea.Cmd) {
	m.busy = name
	m.errMsg = ""
	ctx := m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return opDoneMsg{op: name, err: op(ctx)}
	})
}

func (m statusModel) cmdRefresh() tea.Cmd {
	ctx := m.ctx
	o := m.orchestrator
	return func() tea.Msg {
		report := o.Status()
		if handle := o.Store(); handle != nil {
			if pending, err := handle.PendingCount(ctx); err == nil {
				report.Pending = pending
			}
		}
		return statusMsg{report: report}
	}
}

func (m statusModel) cmdCopy() tea.Cmd {
	text := renderReport(m.cfg.Container, m.report)
	write := m.copyToClipboard
	return func() tea.Msg {
		if err := write(text); err != nil {
			return opDoneMsg{op: "Copy", err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdRefreshTick() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return refreshTickMsg{} })
}

func cmdClearToast() tea.Cmd {
	return tea.Tick(toastLifetime, func(time.Time) tea.Msg { return clearToastMsg{} })
}

func (m statusModel) View() string {
	switch m.screen {
	case screenBuildInfo:
		return appStyle.Render(renderBuildInfoWindow(m.buildInfo))
	case screenConfirmDelete:
		return appStyle.Render(renderConfirmDelete(m.cfg.Container))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Container: %s (%s, %s)\n", m.cfg.Container, m.cfg.SyncMode, m.cfg.MergePolicy)
	status := m.report.Status.String()
	if m.report.Status == models.SyncStatusSyncedSuccessfully {
		status = okStyle.Render(status)
	} else if m.report.Status == models.SyncStatusSyncFailed {
		status = errorStyle.Render(status)
	}
	fmt.Fprintf(&b, "Status: %s\n", status)
	fmt.Fprintf(&b, "Last sync: %s\n", formatLastSync(m.report))
	fmt.Fprintf(&b, "Remote: %s\n", formatReachability(m.report.Reachable))
	fmt.Fprintf(&b, "Pending changes: %d", m.report.Pending)

	if m.screen == screenNote {
		b.WriteString("\n\nNew note: ")
		b.WriteString(m.noteInput.View())
	}
	if m.busy != "" {
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.busy)
		b.WriteString("...")
	}
	if m.toast != "" {
		b.WriteString("\n\n")
		b.WriteString(toastStyle.Render(m.toast))
	}
	if m.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(renderError(m.errMsg))
	}

	hotKeys := renderHelp(statusHelp())
	if m.screen == screenNote {
		hotKeys = "enter: stage  esc: cancel"
	}
	return appStyle.Render(renderPage("SYNC STATUS", b.String(), hotKeys))
}
