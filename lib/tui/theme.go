// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/mdview/lib/document"
)

// Theme is the color palette of the markdown viewer. All colors are
// lipgloss ANSI 256-color codes.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Headings, indexed by level minus one.
	HeadingColors [6]lipgloss.Color

	// Selected link and search results.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	LinkForeground     lipgloss.Color
	FootnoteForeground lipgloss.Color

	// Inline code and code blocks. Highlighted code keeps its own
	// foreground.
	CodeForeground      lipgloss.Color
	CodeBackground      lipgloss.Color
	CodeBlockBackground lipgloss.Color

	ListMarker lipgloss.Color
	QuoteBar   lipgloss.Color

	// Alert quotes, by kind.
	NoteColor      lipgloss.Color
	TipColor       lipgloss.Color
	ImportantColor lipgloss.Color
	WarningColor   lipgloss.Color
	CautionColor   lipgloss.Color

	TaskOpen   lipgloss.Color
	TaskClosed lipgloss.Color

	// UI chrome.
	BorderColor    lipgloss.Color
	ScrollbarThumb lipgloss.Color
	HelpText       lipgloss.Color

	// Message box overlay.
	MessageForeground lipgloss.Color
	MessageBackground lipgloss.Color
	MessageBorder     lipgloss.Color
	ErrorForeground   lipgloss.Color
}

// HeadingColor returns the color for a heading level (1-6). Other
// levels get NormalText.
func (theme Theme) HeadingColor(level int) lipgloss.Color {
	if level < 1 || level > len(theme.HeadingColors) {
		return theme.NormalText
	}
	return theme.HeadingColors[level-1]
}

// AdmonitionColor returns the accent of an alert kind, or QuoteBar for
// anything that is not one.
func (theme Theme) AdmonitionColor(kind document.MetaKind) lipgloss.Color {
	switch kind {
	case document.MetaNote:
		return theme.NoteColor
	case document.MetaTip:
		return theme.TipColor
	case document.MetaImportant:
		return theme.ImportantColor
	case document.MetaWarning:
		return theme.WarningColor
	case document.MetaCaution:
		return theme.CautionColor
	default:
		return theme.QuoteBar
	}
}

// DefaultTheme is the built-in scheme for 256-color terminals with a
// dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	HeadingColors: [6]lipgloss.Color{
		lipgloss.Color("213"), // pink
		lipgloss.Color("75"),  // blue
		lipgloss.Color("114"), // green
		lipgloss.Color("220"), // amber
		lipgloss.Color("141"), // light purple
		lipgloss.Color("245"), // gray
	},

	SelectedBackground: lipgloss.Color("100"),
	SelectedForeground: lipgloss.Color("255"),

	LinkForeground:     lipgloss.Color("75"),
	FootnoteForeground: lipgloss.Color("141"),

	CodeForeground:      lipgloss.Color("216"),
	CodeBackground:      lipgloss.Color("236"),
	CodeBlockBackground: lipgloss.Color("235"),

	ListMarker: lipgloss.Color("208"),
	QuoteBar:   lipgloss.Color("240"),

	NoteColor:      lipgloss.Color("75"),
	TipColor:       lipgloss.Color("114"),
	ImportantColor: lipgloss.Color("141"),
	WarningColor:   lipgloss.Color("220"),
	CautionColor:   lipgloss.Color("196"),

	TaskOpen:   lipgloss.Color("245"),
	TaskClosed: lipgloss.Color("114"),

	BorderColor:    lipgloss.Color("240"),
	ScrollbarThumb: lipgloss.Color("220"),
	HelpText:       lipgloss.Color("241"),

	MessageForeground: lipgloss.Color("252"),
	MessageBackground: lipgloss.Color("237"),
	MessageBorder:     lipgloss.Color("75"),
	ErrorForeground:   lipgloss.Color("196"),
}
