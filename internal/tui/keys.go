// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	save        key.Binding
	keepLocal   key.Binding
	keepRemote  key.Binding
	note        key.Binding
	firstLaunch key.Binding
	arm         key.Binding
	deleteAll   key.Binding
	copy        key.Binding
	buildInfo   key.Binding
	quit        key.Binding
	enter       key.Binding
	esc         key.Binding
	yes         key.Binding
	no          key.Binding
}

var keys = keyMap{
	save:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	keepLocal:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "keep local")),
	keepRemote:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "keep remote")),
	note:        key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "stage note")),
	firstLaunch: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "first launch")),
	arm:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "arm deletion")),
	deleteAll:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete remote")),
	copy:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy report")),
	buildInfo:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "build info")),
	quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	enter:       key.NewBinding(key.WithKeys("enter")),
	esc:         key.NewBinding(key.WithKeys("esc")),
	yes:         key.NewBinding(key.WithKeys("y")),
	no:          key.NewBinding(key.WithKeys("n")),
}

// statusHelp lists the bindings of the status screen in display order.
func statusHelp() []key.Binding {
	return []key.Binding{
		keys.save, keys.keepLocal, keys.keepRemote, keys.note, keys.firstLaunch,
		keys.arm, keys.deleteAll, keys.copy, keys.buildInfo, keys.quit,
	}
}
