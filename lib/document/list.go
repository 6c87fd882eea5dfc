// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"strings"
)

// Bullet is the marker unordered items render with.
const Bullet = "• "

// orderedMarkerWidth is the width of the narrowest ordinal label, "1. ".
const orderedMarkerWidth = 3

// listLevel is one entry of the nesting stack: the indent width that
// opened the level and its ordered-item counter.
type listLevel struct {
	indent  int
	counter int
}

// layoutList lays out a list block's items. Each item starts at a list
// marker word and is paired positionally with the next indent marker
// (a whitespace-only meta word) and list-type marker in meta. Ordered
// markers are renumbered per nesting level, and words that overflow the
// width continue on a new line indented past the marker.
//
// A second pass right-aligns ordinal labels so that siblings such as
// "9. " and "10. " start their text in the same column.
func layoutList(content [][]Word, meta []Word, width int) [][]Word {
	type itemMarker struct {
		indent  int
		ordered bool
	}
	var indents []int
	var types []bool
	for index := range meta {
		word := &meta[index]
		if strings.TrimSpace(word.content) == "" {
			indents = append(indents, DisplayWidth(word.content))
		}
		if word.wordType.Kind == KindMeta {
			switch word.wordType.Meta {
			case MetaOrderedList:
				types = append(types, true)
			case MetaUnorderedList:
				types = append(types, false)
			}
		}
	}
	var markers []itemMarker
	for index := range min(len(indents), len(types)) {
		markers = append(markers, itemMarker{indent: indents[index], ordered: types[index]})
	}

	stack := []listLevel{{}}
	nextMarker := 0
	indent := 0
	extraIndent := 0

	var lines [][]Word
	var line []Word
	lineWidth := 0
	for _, word := range unwrap(content) {
		wordWidth := DisplayWidth(word.content)
		if word.wordType.Kind != KindListMarker && lineWidth+wordWidth < width {
			line = append(line, word)
			lineWidth += wordWidth
			continue
		}

		var lead Word
		if word.wordType.Kind == KindListMarker {
			indent = 0
			if nextMarker < len(markers) {
				marker := markers[nextMarker]
				nextMarker++
				stack = enterLevel(stack, marker.indent)
				if marker.ordered {
					top := &stack[len(stack)-1]
					top.counter++
					word.content = fmt.Sprintf("%d. ", top.counter)
					extraIndent = 1
				} else {
					extraIndent = 0
				}
				indent = marker.indent
			}
			lead = filler(indent)
		} else {
			lead = filler(indent + 2 + extraIndent)
		}

		lines = append(lines, line)
		word = trimLeading(word)
		line = []Word{lead, word}
		lineWidth = DisplayWidth(word.content) + DisplayWidth(lead.content)
	}
	lines = append(lines, line)

	kept := lines[:0]
	for _, candidate := range lines {
		for index := range candidate {
			if candidate[index].content != "" {
				kept = append(kept, candidate)
				break
			}
		}
	}
	alignOrdinals(kept)
	return kept
}

// enterLevel adjusts the nesting stack for an item at indent. Deeper
// items open a fresh level with its own counter; shallower items close
// every level deeper than their indent.
func enterLevel(stack []listLevel, indent int) []listLevel {
	top := stack[len(stack)-1]
	switch {
	case indent > top.indent:
		return append(stack, listLevel{indent: indent})
	case indent < top.indent:
		for len(stack) > 1 && stack[len(stack)-1].indent > indent {
			stack = stack[:len(stack)-1]
		}
		if stack[len(stack)-1].indent < indent {
			stack = append(stack, listLevel{indent: indent})
		}
	}
	return stack
}

// isOrdinal reports whether a marker reads "<n>. ".
func isOrdinal(marker string) bool {
	if marker == "" || marker[0] < '1' || marker[0] > '9' || !strings.HasSuffix(marker, ". ") {
		return false
	}
	for _, character := range marker[1 : len(marker)-2] {
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}

// alignOrdinals re-pads the lead filler of ordered items and their
// continuation lines so labels at the same indent right-align on the
// widest label used there. Unordered items and their continuations are
// already aligned and are left alone.
func alignOrdinals(lines [][]Word) {
	widest := make(map[int]int)
	for _, line := range lines {
		if len(line) < 2 || !isOrdinal(line[1].content) {
			continue
		}
		indent := DisplayWidth(line[0].content)
		widest[indent] = max(widest[indent], DisplayWidth(line[1].content))
	}

	skip := true
	level := 0
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		ordinal := line[1].wordType.Kind == KindListMarker && isOrdinal(line[1].content)
		if ordinal {
			skip = false
		}
		if line[1].wordType.Kind == KindListMarker && line[1].content == Bullet {
			skip = true
		}
		if skip {
			continue
		}

		lead := DisplayWidth(line[0].content)
		var amount int
		if ordinal {
			level = lead
			amount = widest[level] - DisplayWidth(line[1].content) + lead
		} else {
			amount = max(widest[level]+lead-orderedMarkerWidth, 0)
		}
		line[0].content = strings.Repeat(" ", amount)
	}
}
