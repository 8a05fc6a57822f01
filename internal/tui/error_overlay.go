// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

func renderError(message string) string {
	return errorStyle.Render("Error: " + message)
}
