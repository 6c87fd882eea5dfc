// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/mdview/lib/highlight"
)

// Language returns the code block's language tag: the content of its
// first meta word, or "".
func (block *Block) Language() string {
	if len(block.meta) == 0 {
		return ""
	}
	return block.meta[0].content
}

func (block *Block) transformCodeBlock(highlighter highlight.Highlighter) {
	if block.codeLines == nil {
		block.codeLines = block.content
	}

	language := block.Language()
	source := []byte(joinLines(block.codeLines))

	var events []highlight.Event
	highlighted := false
	if highlighter != nil {
		events, highlighted = highlighter.Highlight(language, source)
	}

	var lines [][]Word
	if highlighted {
		lines = colorSpans(source, events)
	} else {
		lines = make([][]Word, 0, len(block.codeLines)+1)
		if language == "" {
			lines = append(lines, []Word{NewWord("", CodeBlock(""))})
		}
		for _, line := range block.codeLines {
			lines = append(lines, append([]Word(nil), line...))
		}
	}

	block.content = lines
	block.height = len(lines)
}

func joinLines(lines [][]Word) string {
	var builder strings.Builder
	for _, line := range lines {
		builder.WriteString(joinContent(line))
	}
	return builder.String()
}

// colorSpans turns a highlight event stream into lines of colored code
// words. Source ranges take the color on top of the start/end stack;
// ranges that cross newlines are split there. The final line ends with
// an empty word in the color active at the end of the stream.
func colorSpans(source []byte, events []highlight.Event) [][]Word {
	var colors []lipgloss.Color
	current := func() lipgloss.Color {
		if len(colors) == 0 {
			return ""
		}
		return colors[len(colors)-1]
	}

	var lines [][]Word
	var line []Word
	for _, event := range events {
		switch event.Kind {
		case highlight.EventStart:
			colors = append(colors, highlight.Color(event.Index))
		case highlight.EventEnd:
			if len(colors) > 0 {
				colors = colors[:len(colors)-1]
			}
		case highlight.EventSource:
			start := min(max(event.Start, 0), len(source))
			end := min(max(event.End, start), len(source))
			wordType := CodeBlock(current())
			text := string(source[start:end])
			for {
				before, after, found := strings.Cut(text, "\n")
				if before != "" {
					line = append(line, NewWord(before, wordType))
				}
				if !found {
					break
				}
				lines = append(lines, line)
				line = nil
				text = after
			}
		}
	}
	line = append(line, NewWord("", CodeBlock(current())))
	return append(lines, line)
}
