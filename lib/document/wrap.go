// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"strings"

	"github.com/rivo/uniseg"
)

// minimumFragment is the narrowest space, in cells, worth starting a
// split word fragment in. Narrower remainders flush the line first.
const minimumFragment = 4

// DisplayWidth returns the number of terminal cells text occupies.
// Combining marks are zero width and most East Asian wide characters
// take two cells.
func DisplayWidth(text string) int {
	return uniseg.StringWidth(text)
}

// SplitByWidth splits text at the byte offset where the accumulated
// display width first reaches maxWidth. Grapheme clusters are never
// divided. When the first cluster alone is wider than maxWidth it is
// still taken, so the head is never empty for a positive maxWidth and
// non-empty text. A maxWidth of 0 returns ("", text).
func SplitByWidth(text string, maxWidth int) (head, tail string) {
	if maxWidth <= 0 {
		return "", text
	}

	width := 0
	split := 0
	state := -1
	rest := text
	for len(rest) > 0 {
		cluster, next, clusterWidth, newState := uniseg.FirstGraphemeClusterInString(rest, state)
		if width+clusterWidth > maxWidth {
			if split == 0 {
				split = len(cluster)
			}
			break
		}
		width += clusterWidth
		split += len(cluster)
		rest = next
		state = newState
		if width == maxWidth {
			break
		}
	}
	return text[:split], text[split:]
}

// WrapWords lays words out in lines no wider than width cells.
//
// Words are kept whole where possible. A word that does not fit on the
// current line starts the next one with its leading whitespace trimmed.
// A word wider than the whole line is split by display width across as
// many lines as it needs; with hyphenate set and a width above four
// cells, each split point gets a trailing hyphen unless the text being
// split already ends in one. A word whose content begins with a newline
// is a hard line break.
//
// Every layout edit is recorded on the affected word, so [unwrap] can
// recover the original sequence and a block can be laid out again at a
// different width.
func WrapWords(words []Word, width int, hyphenate bool) [][]Word {
	width = max(width, 1)
	hyphenate = hyphenate && width > minimumFragment

	var lines [][]Word
	var line []Word
	lineWidth := 0

	for _, word := range words {
		if strings.HasPrefix(word.content, "\n") {
			lines = append(lines, line)
			line = nil
			lineWidth = 0
			// The break is kept on the word, even an empty one, so that
			// unwrap can restore it.
			trimmed := strings.TrimLeft(word.content, "\n")
			broken := word.withContent(trimmed)
			broken.layout.breakPrefix = word.content[:len(word.content)-len(trimmed)]
			line = append(line, broken)
			lineWidth = DisplayWidth(trimmed)
			continue
		}

		wordWidth := DisplayWidth(word.content)
		if lineWidth+wordWidth <= width {
			line = append(line, word)
			lineWidth += wordWidth
			continue
		}

		if wordWidth <= width {
			lines = append(lines, line)
			moved := trimLeading(word)
			line = []Word{moved}
			lineWidth = DisplayWidth(moved.content)
			continue
		}

		// The word is wider than a whole line and has to be split.
		if width-lineWidth < minimumFragment && len(line) > 0 {
			lines = append(lines, line)
			line = nil
			lineWidth = 0
		}

		head, rest := splitFragment(word, width-lineWidth, hyphenate)
		line = append(line, head)
		lines = append(lines, line)

		for DisplayWidth(rest.content) > width {
			head, rest = splitFragment(rest, width, hyphenate)
			lines = append(lines, []Word{head})
		}

		if rest.content == "" {
			line = nil
			lineWidth = 0
		} else {
			line = []Word{rest}
			lineWidth = DisplayWidth(rest.content)
		}
	}

	if len(line) > 0 && !isBareBreak(line) {
		lines = append(lines, line)
	}
	return lines
}

// isBareBreak reports whether line holds only the empty remainder of a
// hard line break.
func isBareBreak(line []Word) bool {
	return len(line) == 1 && line[0].content == "" && line[0].layout.breakPrefix != ""
}

// splitFragment cuts the head of word that fits in available cells.
// The head is marked as continuing into the tail when there is one.
func splitFragment(word Word, available int, hyphenate bool) (head, tail Word) {
	reserve := hyphenate && !strings.HasSuffix(word.content, "-")
	limit := available
	if reserve {
		limit--
	}

	headText, tailText := SplitByWidth(word.content, limit)
	head = word.withContent(headText)
	tail = word.withContent(tailText)
	tail.layout.breakPrefix = ""
	tail.layout.trimmed = ""

	// A cluster wider than the limit can leave nothing behind.
	head.layout.continued = tailText != ""
	if reserve && headText != "" && tailText != "" && !strings.HasSuffix(headText, "-") {
		head.content += "-"
		head.layout.hyphen = true
	}
	return head, tail
}

// trimLeading strips the leading whitespace of a word that starts a
// line, remembering what was removed.
func trimLeading(word Word) Word {
	trimmed := strings.TrimLeft(word.content, " \t")
	if len(trimmed) == len(word.content) {
		return word
	}
	word.layout.trimmed += word.content[:len(word.content)-len(trimmed)]
	word.content = trimmed
	return word
}

// filler returns a layout-only word of n spaces.
func filler(n int) Word {
	word := NewWord(strings.Repeat(" ", max(n, 0)), Normal)
	word.layout.filler = true
	return word
}

// unwrap reverses every layout edit in lines: fillers are dropped,
// trimmed whitespace and hard-break newlines are restored, and split
// fragments are joined back into one word carrying the types of the
// first fragment.
func unwrap(lines [][]Word) []Word {
	var words []Word
	joining := false
	for _, line := range lines {
		for _, word := range line {
			if word.layout.filler {
				continue
			}
			content := word.layout.breakPrefix + word.layout.trimmed + word.content
			continued := word.layout.continued
			if word.layout.hyphen {
				content = strings.TrimSuffix(content, "-")
			}
			word.content = content
			word.layout = layout{}

			if joining && len(words) > 0 {
				words[len(words)-1].content += content
			} else {
				words = append(words, word)
			}
			joining = continued
		}
	}
	return words
}
