// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-sync-keeper/models"
	"github.com/charmbracelet/bubbles/key"
)

const uiDivider = "──────────────────────────────────────────────────────"

func renderPage(title, data, hotKeys string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n  ")
	b.WriteString(uiDivider)
	b.WriteString("\n\n")

	if strings.TrimSpace(data) != "" {
		for _, line := range strings.Split(data, "\n") {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	} else {
		b.WriteString("  -\n")
	}

	b.WriteString("\n  ")
	b.WriteString(uiDivider)
	b.WriteString("\n")

	if strings.TrimSpace(hotKeys) != "" {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(hotKeys))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("  ctrl+c: quit"))

	return b.String()
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

func formatLastSync(report models.StatusReport) string {
	if !report.HasLastSync {
		return "never"
	}
	return report.LastSync.Local().Format(time.DateTime)
}

func formatReachability(reachable bool) string {
	if reachable {
		return "reachable"
	}
	return "unreachable"
}

// renderReport is the plain text copied to the clipboard.
func renderReport(container string, report models.StatusReport) string {
	return fmt.Sprintf(
		"container: %s\nstatus: %s\nlast sync: %s\nremote: %s\npending changes: %d",
		container,
		report.Status,
		formatLastSync(report),
		formatReachability(report.Reachable),
		report.Pending,
	)
}
