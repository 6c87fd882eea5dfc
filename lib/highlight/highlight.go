// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package highlight turns code-block source into a stream of color
// region events. The document layer never sees a lexer: it receives
// byte ranges over the source it handed in, interleaved with start and
// end markers that name an entry in the shared [Palette].
//
// [Chroma] is the production implementation. Tests and callers that
// want plain code blocks can pass any [Highlighter], or nil.
package highlight

import "github.com/charmbracelet/lipgloss"

// EventKind discriminates the three event shapes.
type EventKind uint8

const (
	// EventSource covers the byte range [Start, End) of the source
	// under the currently active color.
	EventSource EventKind = iota
	// EventStart activates the palette entry at Index.
	EventStart
	// EventEnd deactivates the most recently started entry.
	EventEnd
)

// Event is one element of a highlight stream.
type Event struct {
	Kind  EventKind
	Start int
	End   int
	Index int
}

// Source returns a source-range event.
func Source(start, end int) Event {
	return Event{Kind: EventSource, Start: start, End: end}
}

// Start returns a highlight-start event for the given palette index.
func Start(index int) Event {
	return Event{Kind: EventStart, Index: index}
}

// End returns a highlight-end event.
func End() Event {
	return Event{Kind: EventEnd}
}

// Highlighter produces highlight events for a code block. The boolean
// result is false when the block should be rendered unhighlighted
// (unknown or empty language, lexer failure); the event slice is nil
// in that case.
type Highlighter interface {
	Highlight(language string, source []byte) ([]Event, bool)
}

// Highlight indexes into Palette and Names. The order is the palette's
// contract with every Highlighter.
const (
	Keyword = iota
	String
	Comment
	Number
	Function
	Type
	Operator
	Punctuation
	Constant
	Tag
	Attribute
	Variable
	Builtin
	Heading
)

// Names lists the highlight names in palette order.
var Names = [...]string{
	Keyword:     "keyword",
	String:      "string",
	Comment:     "comment",
	Number:      "number",
	Function:    "function",
	Type:        "type",
	Operator:    "operator",
	Punctuation: "punctuation",
	Constant:    "constant",
	Tag:         "tag",
	Attribute:   "attribute",
	Variable:    "variable",
	Builtin:     "builtin",
	Heading:     "heading",
}

// Palette maps highlight indexes to ANSI 256-color codes, tuned for a
// dark background like the rest of the theme.
var Palette = [len(Names)]lipgloss.Color{
	Keyword:     lipgloss.Color("204"), // pink
	String:      lipgloss.Color("114"), // green
	Comment:     lipgloss.Color("243"), // gray
	Number:      lipgloss.Color("215"), // orange
	Function:    lipgloss.Color("75"),  // blue
	Type:        lipgloss.Color("180"), // tan
	Operator:    lipgloss.Color("252"),
	Punctuation: lipgloss.Color("248"),
	Constant:    lipgloss.Color("173"),
	Tag:         lipgloss.Color("168"),
	Attribute:   lipgloss.Color("179"),
	Variable:    lipgloss.Color("254"),
	Builtin:     lipgloss.Color("81"), // cyan
	Heading:     lipgloss.Color("220"),
}

// Color resolves a palette index. Out-of-range indexes resolve to the
// empty color, which renders as the terminal default.
func Color(index int) lipgloss.Color {
	if index < 0 || index >= len(Palette) {
		return ""
	}
	return Palette[index]
}
