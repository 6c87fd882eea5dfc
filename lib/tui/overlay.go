// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay paints overlay lines over a rendered view with the top
// left corner at (anchorX, anchorY). The view is cut with ANSI-aware
// truncation, so styling on both sides of the overlay survives. View
// rows shorter than anchorX are padded with spaces first.
func SpliceOverlay(view string, overlay []string, anchorX, anchorY int) string {
	if len(overlay) == 0 {
		return view
	}
	anchorX = max(anchorX, 0)

	rows := strings.Split(view, "\n")
	for index, overlayLine := range overlay {
		rowIndex := anchorY + index
		if rowIndex < 0 || rowIndex >= len(rows) {
			continue
		}
		row := rows[rowIndex]
		rowWidth := ansi.StringWidth(row)

		var spliced strings.Builder
		if rowWidth < anchorX {
			spliced.WriteString(row)
			spliced.WriteString(strings.Repeat(" ", anchorX-rowWidth))
		} else {
			spliced.WriteString(ansi.Truncate(row, anchorX, ""))
		}
		spliced.WriteString("\x1b[0m")
		spliced.WriteString(overlayLine)
		spliced.WriteString("\x1b[0m")

		if end := anchorX + ansi.StringWidth(overlayLine); end < rowWidth {
			spliced.WriteString(ansi.TruncateLeft(row, end, ""))
		}
		rows[rowIndex] = spliced.String()
	}
	return strings.Join(rows, "\n")
}

// CenterOverlay splices overlay into the middle of a view of the given
// size.
func CenterOverlay(view string, overlay []string, width, height int) string {
	if len(overlay) == 0 {
		return view
	}
	overlayWidth := 0
	for _, line := range overlay {
		overlayWidth = max(overlayWidth, ansi.StringWidth(line))
	}
	anchorX := max((width-overlayWidth)/2, 0)
	anchorY := max((height-len(overlay))/2, 0)
	return SpliceOverlay(view, overlay, anchorX, anchorY)
}

// messageBoxMinWidth keeps very short messages from collapsing into a
// box narrower than its title.
const messageBoxMinWidth = 20

// MessageBox renders a bordered box holding a bold title and body text
// wrapped to fit in maxWidth cells, border included. Error boxes color
// the title with ErrorForeground. Every returned line has the same
// display width.
func (renderer *Renderer) MessageBox(title, body string, isError bool, maxWidth int) []string {
	theme := renderer.theme
	// Border and padding take two cells on each side.
	inner := max(maxWidth-4, 1)

	natural := ansi.StringWidth(title)
	for _, line := range strings.Split(body, "\n") {
		natural = max(natural, ansi.StringWidth(line))
	}
	inner = min(inner, max(natural, messageBoxMinWidth))

	titleColor := theme.MessageBorder
	if isError {
		titleColor = theme.ErrorForeground
	}
	titleStyle := renderer.NewStyle().
		Foreground(titleColor).
		Background(theme.MessageBackground).
		Bold(true)

	var content []string
	if title != "" {
		content = append(content, titleStyle.Render(ansi.Truncate(title, inner, "…")))
	}
	if body != "" {
		content = append(content, ansi.Wrap(body, inner, ""))
	}

	box := renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.MessageBorder).
		BorderBackground(theme.MessageBackground).
		Foreground(theme.MessageForeground).
		Background(theme.MessageBackground).
		Padding(0, 1).
		Width(inner + 2)
	return strings.Split(box.Render(strings.Join(content, "\n")), "\n")
}
