// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/bureau-foundation/mdview/lib/highlight"
)

// HeadingMatcher reports whether a heading block's lines match a link
// slug (the link target with its leading '#' removed).
type HeadingMatcher func(slug string, lines [][]Word) bool

// MarkFunc marks the words matching query, re-tagging them with
// SetKind(Selected).
type MarkFunc func(query string, words []*Word)

// RootOptions configures a document.
type RootOptions struct {
	// Highlighter colors code blocks. If nil, code blocks are shown
	// unhighlighted.
	Highlighter highlight.Highlighter

	// HeadingMatcher resolves heading links. If nil, headings match
	// when their text, lowercased with spaces replaced by '-', equals
	// the slug.
	HeadingMatcher HeadingMatcher

	// Logger receives layout diagnostics. If nil, a no-op logger is
	// used.
	Logger *slog.Logger
}

// Root is the document aggregate: the ordered components of one open
// file plus scroll and selection state.
//
// Root is not safe for concurrent use. Reloading a file should build a
// new Root and swap it in whole.
type Root struct {
	fileName   string
	components []Component
	focused    bool

	// blocks are the text components in order and linkEnds[i] the
	// number of links in blocks[:i+1].
	blocks   []*Block
	linkEnds []int

	options RootOptions
	logger  *slog.Logger
}

// NewRoot builds a document from parser output. fileName may be empty.
func NewRoot(fileName string, components []Component, options RootOptions) *Root {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	root := &Root{
		fileName:   fileName,
		components: components,
		options:    options,
		logger:     logger,
	}
	root.index()
	return root
}

// index rebuilds the text block list and link prefix sums. It must run
// whenever the component list changes.
func (root *Root) index() {
	root.blocks = root.blocks[:0]
	root.linkEnds = root.linkEnds[:0]
	total := 0
	for _, component := range root.components {
		block, ok := component.(*Block)
		if !ok {
			continue
		}
		total += block.NumLinks()
		root.blocks = append(root.blocks, block)
		root.linkEnds = append(root.linkEnds, total)
	}
}

func (root *Root) FileName() string {
	return root.fileName
}

// Children returns every component, text and media, in order.
func (root *Root) Children() []Component {
	return root.components
}

// Components returns the text blocks in order.
func (root *Root) Components() []*Block {
	return root.blocks
}

// IsFocused reports whether a link is selected.
func (root *Root) IsFocused() bool {
	return root.focused
}

// Words returns every content word of every text block.
func (root *Root) Words() []*Word {
	var words []*Word
	for _, block := range root.blocks {
		words = append(words, block.Words()...)
	}
	return words
}

// Content returns the text of every line of every text block.
func (root *Root) Content() []string {
	var lines []string
	for _, block := range root.blocks {
		lines = append(lines, block.ContentAsLines()...)
	}
	return lines
}

// Height is the total number of rows the document occupies.
func (root *Root) Height() int {
	height := 0
	for _, component := range root.components {
		height += component.Height()
	}
	return height
}

// NumLinks is the number of selectable links in the document.
func (root *Root) NumLinks() int {
	if len(root.linkEnds) == 0 {
		return 0
	}
	return root.linkEnds[len(root.linkEnds)-1]
}

// Transform lays every text block out for width. SetScroll must run
// afterwards before offsets are meaningful.
func (root *Root) Transform(width int) {
	for _, block := range root.blocks {
		block.Transform(width, root.options.Highlighter)
		if block.malformed {
			root.logger.Debug("table cells do not fill whole rows, rendering on one line",
				"file", root.fileName,
				"cells", len(block.content),
				"width", width,
			)
		}
	}
}

// SetScroll assigns every component its row offset within the document
// and the current scroll position.
func (root *Root) SetScroll(scroll int) {
	offset := 0
	for _, component := range root.components {
		component.SetYOffset(offset)
		component.SetScrollOffset(scroll)
		offset += component.Height()
	}
}

// Select deselects everything, then selects the link with the given
// document-wide index and returns the row offset of its block.
func (root *Root) Select(index int) (int, error) {
	root.Deselect()

	total := root.NumLinks()
	if index < 0 || index >= total {
		return 0, &BoundsError{Index: index, Count: total}
	}

	position := sort.SearchInts(root.linkEnds, index+1)
	start := 0
	if position > 0 {
		start = root.linkEnds[position-1]
	}
	block := root.blocks[position]
	if err := block.VisuallySelect(index - start); err != nil {
		return 0, err
	}
	root.focused = true
	return block.yOffset, nil
}

// Deselect clears focus and restores every selected word in the
// document, search results included.
func (root *Root) Deselect() {
	root.focused = false
	for _, block := range root.blocks {
		block.Deselect()
	}
}

func (root *Root) focusedBlock() *Block {
	for _, block := range root.blocks {
		if block.focused {
			return block
		}
	}
	return nil
}

// Selected returns the target of the selected link.
func (root *Root) Selected() (string, error) {
	block := root.focusedBlock()
	if block == nil {
		return "", ErrNoSelection
	}
	return block.HighlightLink()
}

// SelectedUnderlyingType returns the type the selected link had
// before it was selected.
func (root *Root) SelectedUnderlyingType() (WordType, error) {
	block := root.focusedBlock()
	if block == nil {
		return WordType{}, ErrNoSelection
	}
	run := block.focusedRun()
	if len(run) == 0 {
		return WordType{}, ErrNoSelection
	}
	return run[0].PreviousType(), nil
}

// LinkPosition places one link word on screen.
type LinkPosition struct {
	Index int
	Row   int
}

// LinkIndexAndHeight lists every link, footnote reference and selected
// word in document order with its absolute row. A link spanning several
// words has one entry per word; use [Root.LinkRows] to place whole
// links in selection order.
func (root *Root) LinkIndexAndHeight() []LinkPosition {
	var positions []LinkPosition
	for _, block := range root.blocks {
		for row, line := range block.content {
			for index := range line {
				switch line[index].wordType.Kind {
				case KindLink, KindSelected, KindFootnoteInline:
					positions = append(positions, LinkPosition{Index: len(positions), Row: block.yOffset + row})
				}
			}
		}
	}
	return positions
}

// LinkRows returns the absolute row of the first word of every link,
// indexed like [Root.Select]. A selected link keeps its place.
func (root *Root) LinkRows() []int {
	var rows []int
	for _, block := range root.blocks {
		inRun := false
		for row, line := range block.content {
			for index := range line {
				linkLike := line[index].wasLinkLike()
				if linkLike && !inRun {
					rows = append(rows, block.yOffset+row)
				}
				inRun = linkLike
			}
		}
	}
	return rows
}

// SearchResultsHeights returns the absolute rows of every line holding
// a selected word.
func (root *Root) SearchResultsHeights() []int {
	var rows []int
	for _, block := range root.blocks {
		for _, row := range block.SelectedHeights() {
			rows = append(rows, row+block.yOffset)
		}
	}
	return rows
}

// FindAndMark hands every content word to mark for the query.
func (root *Root) FindAndMark(query string, mark MarkFunc) {
	mark(query, root.Words())
}

// FindFootnote returns the body of the footnote with the given id, or
// FootnoteNotFound.
func (root *Root) FindFootnote(id string) string {
	var builder strings.Builder
	for _, block := range root.blocks {
		builder.WriteString(block.Footnote(id))
	}
	if builder.Len() == 0 {
		return FootnoteNotFound
	}
	return builder.String()
}

// HeadingOffset returns the row at which the heading a link points to
// starts. The link's leading '#' is removed before matching.
func (root *Root) HeadingOffset(link string) (int, error) {
	slug := strings.TrimPrefix(link, "#")
	matcher := root.options.HeadingMatcher
	if matcher == nil {
		matcher = matchHeading
	}

	offset := 0
	for _, component := range root.components {
		if block, ok := component.(*Block); ok && block.kind == NodeHeading && matcher(slug, block.content) {
			return offset, nil
		}
		offset += component.Height()
	}
	return 0, &HeadingNotFoundError{Heading: link}
}

func matchHeading(slug string, lines [][]Word) bool {
	var text strings.Builder
	for _, line := range lines {
		text.WriteString(joinContent(line))
	}
	heading := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(text.String())), " ", "-")
	return strings.EqualFold(heading, slug)
}

// AddMissingComponents returns a document with an empty line break
// between every two adjacent components where neither is one. A task
// followed by its indented sub-list is left joined.
func (root *Root) AddMissingComponents() *Root {
	components := make([]Component, 0, len(root.components)*2)
	for index, component := range root.components {
		components = append(components, component)
		if index+1 == len(root.components) {
			break
		}
		next := root.components[index+1]
		if component.Kind() == NodeLineBreak || next.Kind() == NodeLineBreak {
			continue
		}
		if component.Kind() == NodeTask {
			if block, ok := next.(*Block); ok && block.IsIndentedList() {
				continue
			}
		}
		components = append(components, NewBlock(NodeLineBreak, nil))
	}

	result := NewRoot(root.fileName, components, root.options)
	result.focused = root.focused
	return result
}

// Clear empties the document.
func (root *Root) Clear() {
	root.fileName = ""
	root.components = nil
	root.focused = false
	root.index()
}
