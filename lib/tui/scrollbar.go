// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar produces a one-column scrollbar height rows tall for
// a document of totalRows rows seen through a window of visibleRows
// starting at scroll.
//
// The thumb spans the whole track when the document fits. It is drawn
// in the accent color while a link or search result is focused.
func RenderScrollbar(theme Theme, height, totalRows, visibleRows, scroll int, focused bool) string {
	if height <= 0 {
		return ""
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.ScrollbarThumb
	}
	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(thumbColor)

	thumbStart, thumbSize := scrollbarThumb(height, totalRows, visibleRows, scroll)

	lines := make([]string, height)
	for index := range lines {
		if index >= thumbStart && index < thumbStart+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}
	return strings.Join(lines, "\n")
}

// scrollbarThumb returns the first row and size of the thumb.
func scrollbarThumb(height, totalRows, visibleRows, scroll int) (start, size int) {
	if totalRows <= visibleRows || totalRows <= 0 {
		return 0, height
	}

	size = max(height*visibleRows/totalRows, 1)

	scrollable := totalRows - visibleRows
	track := height - size
	if track > 0 {
		start = min(max(scroll, 0), scrollable) * track / scrollable
	}
	if start+size > height {
		start = height - size
	}
	return start, size
}
