// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of the viewer. Movement keys move
// between links while a link is selected.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Top          key.Binding
	Bottom       key.Binding

	// Link selection.
	SelectLink key.Binding
	Follow     key.Binding
	Hover      key.Binding // Show the selected link's target.

	// Search.
	Search         key.Binding
	SearchNext     key.Binding
	SearchPrevious key.Binding

	Back   key.Binding // Return to the previous file.
	Edit   key.Binding // Open the file in the editor.
	Escape key.Binding // Close a box, deselect, or clear search results.
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style navigation
// (j/k) alongside the arrow keys.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	HalfPageUp: key.NewBinding(
		key.WithKeys("u", "ctrl+u"),
		key.WithHelp("u", "half page up"),
	),
	HalfPageDown: key.NewBinding(
		key.WithKeys("d", "ctrl+d"),
		key.WithHelp("d", "half page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "left"),
		key.WithHelp("PgUp", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "right", " "),
		key.WithHelp("PgDn", "page down"),
	),
	Top: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	Bottom: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	SelectLink: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "select link"),
	),
	Follow: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "follow link"),
	),
	Hover: key.NewBinding(
		key.WithKeys("K"),
		key.WithHelp("K", "link target"),
	),
	Search: key.NewBinding(
		key.WithKeys("/", "f"),
		key.WithHelp("/", "search"),
	),
	SearchNext: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "next match"),
	),
	SearchPrevious: key.NewBinding(
		key.WithKeys("N"),
		key.WithHelp("N", "prev match"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "backspace"),
		key.WithHelp("b", "back"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "close"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// actions names each binding the way configuration refers to it.
func (keys *KeyMap) actions() map[string]*key.Binding {
	return map[string]*key.Binding{
		"up":              &keys.Up,
		"down":            &keys.Down,
		"half_page_up":    &keys.HalfPageUp,
		"half_page_down":  &keys.HalfPageDown,
		"page_up":         &keys.PageUp,
		"page_down":       &keys.PageDown,
		"top":             &keys.Top,
		"bottom":          &keys.Bottom,
		"select_link":     &keys.SelectLink,
		"follow":          &keys.Follow,
		"hover":           &keys.Hover,
		"search":          &keys.Search,
		"search_next":     &keys.SearchNext,
		"search_previous": &keys.SearchPrevious,
		"back":            &keys.Back,
		"edit":            &keys.Edit,
		"escape":          &keys.Escape,
		"help":            &keys.Help,
		"quit":            &keys.Quit,
	}
}

// Apply replaces the keys of the named actions. The help text shows
// the first key given. Unknown action names and empty key lists are
// errors, and nothing is changed when any override is bad.
func (keys *KeyMap) Apply(overrides map[string][]string) error {
	actions := keys.actions()

	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if _, ok := actions[name]; !ok {
			return fmt.Errorf("unknown key action %q", name)
		}
		if len(overrides[name]) == 0 {
			return fmt.Errorf("key action %q has no keys", name)
		}
	}
	for _, name := range names {
		binding := actions[name]
		bound := normalizeKeys(overrides[name])
		binding.SetKeys(bound...)
		binding.SetHelp(bound[0], binding.Help().Desc)
	}
	return nil
}

// normalizeKeys accepts the "C-x" spelling of control keys and "space"
// alongside bubbletea's own names.
func normalizeKeys(keys []string) []string {
	normalized := make([]string, 0, len(keys))
	for _, name := range keys {
		name = strings.TrimSpace(name)
		switch {
		case strings.EqualFold(name, "space"):
			name = " "
		case len(name) > 2 && strings.EqualFold(name[:2], "c-"):
			name = "ctrl+" + strings.ToLower(name[2:])
		}
		normalized = append(normalized, name)
	}
	return normalized
}

// ShortHelp implements help.KeyMap for the one-line help menu.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Down, keys.Up, keys.SelectLink, keys.Search, keys.Back, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap for the help box.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.HalfPageUp, keys.HalfPageDown, keys.PageUp, keys.PageDown, keys.Top, keys.Bottom},
		{keys.SelectLink, keys.Follow, keys.Hover, keys.Back, keys.Edit},
		{keys.Search, keys.SearchNext, keys.SearchPrevious, keys.Escape, keys.Help, keys.Quit},
	}
}
