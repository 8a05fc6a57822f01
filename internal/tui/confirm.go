// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

func renderConfirmDelete(container string) string {
	content := "Delete remote container \"" + container + "\" and every local record?\n\n"
	content += "y yes    n no"
	return overlayBoxStyle.Render(content)
}
