// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/mdview/lib/highlight"
)

// NodeKind is the structural kind of a block.
type NodeKind uint8

const (
	NodeImage NodeKind = iota
	NodeParagraph
	NodeLineBreak
	NodeHeading
	NodeTask
	NodeList
	NodeFootnote
	NodeTable
	NodeCodeBlock
	NodeQuote
	NodeHorizontalSeparator

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	NodeImage:               "Image",
	NodeParagraph:           "Paragraph",
	NodeLineBreak:           "LineBreak",
	NodeHeading:             "Heading",
	NodeTask:                "Task",
	NodeList:                "List",
	NodeFootnote:            "Footnote",
	NodeTable:               "Table",
	NodeCodeBlock:           "CodeBlock",
	NodeQuote:               "Quote",
	NodeHorizontalSeparator: "HorizontalSeparator",
}

func (kind NodeKind) String() string {
	if kind < nodeKindCount {
		return nodeKindNames[kind]
	}
	return fmt.Sprintf("NodeKind(%d)", uint8(kind))
}

// Block is one text block of a document: its rendered lines of words,
// the non-rendered meta words the parser attached to it, and the layout
// state the document aggregate maintains.
//
// Content holds only renderable words and meta only the rest, except
// that footnote reference markers appear in both. Height is valid once
// Transform has run for the current width.
//
// For tables each content line is one cell, header row first, and
// ColumnWidths and RowHeights describe the layout chosen by the last
// transform.
type Block struct {
	kind    NodeKind
	content [][]Word
	meta    []Word

	columnWidths []int
	rowHeights   []int
	malformed    bool

	// codeLines is the untransformed content of a code block.
	codeLines [][]Word

	height       int
	yOffset      int
	scrollOffset int

	focused          bool
	focusedLinkIndex int
}

// NewBlock builds a block from a flat word list. All renderable words
// go on one line; the block needs a transform before its height is
// meaningful.
func NewBlock(kind NodeKind, words []Word) *Block {
	block := &Block{kind: kind}
	line := make([]Word, 0, len(words))
	for _, word := range words {
		if word.isSideChannel() {
			block.meta = append(block.meta, word)
		}
		if word.IsRenderable() {
			line = append(line, word)
		}
	}
	block.content = [][]Word{line}
	return block
}

// NewFormattedBlock builds a block from input the parser has already
// split into lines. Lines left with no renderable word are dropped, and
// the height is the number of remaining lines.
func NewFormattedBlock(kind NodeKind, lines [][]Word) *Block {
	block := &Block{kind: kind}
	for _, input := range lines {
		var line []Word
		for _, word := range input {
			if word.isSideChannel() {
				block.meta = append(block.meta, word)
			}
			if word.IsRenderable() {
				line = append(line, word)
			}
		}
		if len(line) > 0 {
			block.content = append(block.content, line)
		}
	}
	block.height = len(block.content)
	return block
}

// isSideChannel reports whether the word belongs in a block's meta.
func (word *Word) isSideChannel() bool {
	return !word.IsRenderable() || word.wordType.Kind == KindFootnoteInline
}

func (block *Block) Kind() NodeKind {
	return block.kind
}

// Content returns the block's lines. The slices are the block's own
// storage.
func (block *Block) Content() [][]Word {
	return block.content
}

func (block *Block) Meta() []Word {
	return block.meta
}

func (block *Block) Height() int {
	return block.height
}

func (block *Block) YOffset() int {
	return block.yOffset
}

func (block *Block) ScrollOffset() int {
	return block.scrollOffset
}

func (block *Block) SetYOffset(offset int) {
	block.yOffset = offset
}

func (block *Block) SetScrollOffset(offset int) {
	block.scrollOffset = offset
}

// ColumnWidths returns the per-column widths of a table, or nil for
// other kinds and malformed tables.
func (block *Block) ColumnWidths() []int {
	return block.columnWidths
}

// RowHeights returns the per-row heights of a table, or nil.
func (block *Block) RowHeights() []int {
	return block.rowHeights
}

// IsIndentedList reports whether the block is a list whose meta holds
// a whitespace-only indent marker, which marks it as nested under the
// item before it.
func (block *Block) IsIndentedList() bool {
	if block.kind != NodeList {
		return false
	}
	for index := range block.meta {
		content := block.meta[index].content
		if content != "" && strings.TrimSpace(content) == "" {
			return true
		}
	}
	return false
}

// ContentAsLines returns each line's text. Table rows are rebuilt from
// their cells, joined by a single space.
func (block *Block) ContentAsLines() []string {
	if block.kind == NodeTable {
		columns := len(block.columnWidths)
		if columns == 0 {
			return nil
		}
		var lines []string
		for row := 0; row*columns < len(block.content); row++ {
			end := min((row+1)*columns, len(block.content))
			cells := make([]string, 0, columns)
			for _, cell := range block.content[row*columns : end] {
				cells = append(cells, joinContent(cell))
			}
			lines = append(lines, strings.Join(cells, " "))
		}
		return lines
	}

	lines := make([]string, 0, len(block.content))
	for _, line := range block.content {
		lines = append(lines, joinContent(line))
	}
	return lines
}

// ContentAsBytes returns the block's text. Code block lines already end
// in newlines and are joined directly; other kinds are joined with one.
func (block *Block) ContentAsBytes() []byte {
	separator := "\n"
	if block.kind == NodeCodeBlock {
		separator = ""
	}
	return []byte(strings.Join(block.ContentAsLines(), separator))
}

func joinContent(words []Word) string {
	var builder strings.Builder
	for index := range words {
		builder.WriteString(words[index].content)
	}
	return builder.String()
}

// Words returns every content word of the block in order. Callers may
// re-tag them; the pointers are invalidated by the next Transform.
func (block *Block) Words() []*Word {
	var words []*Word
	for line := range block.content {
		for index := range block.content[line] {
			words = append(words, &block.content[line][index])
		}
	}
	return words
}

// NumLinks counts the link targets and footnote references in meta.
func (block *Block) NumLinks() int {
	count := 0
	for index := range block.meta {
		if block.meta[index].isLinkTarget() {
			count++
		}
	}
	return count
}

func (block *Block) IsFocused() bool {
	return block.focused
}

func (block *Block) FocusedLinkIndex() int {
	return block.focusedLinkIndex
}

// linkRuns groups content words into maximal runs of link and footnote
// reference words, in document order. A run may span lines.
func (block *Block) linkRuns() [][]*Word {
	return block.runs((*Word).isLinkLike)
}

// selectableRuns is linkRuns with selected link words counted, so the
// run indexes match linkRuns from before the selection.
func (block *Block) selectableRuns() [][]*Word {
	return block.runs((*Word).wasLinkLike)
}

func (block *Block) runs(member func(*Word) bool) [][]*Word {
	var runs [][]*Word
	var run []*Word
	for line := range block.content {
		for index := range block.content[line] {
			word := &block.content[line][index]
			if member(word) {
				run = append(run, word)
				continue
			}
			if len(run) > 0 {
				runs = append(runs, run)
				run = nil
			}
		}
	}
	if len(run) > 0 {
		runs = append(runs, run)
	}
	return runs
}

// focusedRun returns the words of the focused link, or nil.
func (block *Block) focusedRun() []*Word {
	if !block.focused {
		return nil
	}
	runs := block.selectableRuns()
	if block.focusedLinkIndex >= len(runs) {
		return nil
	}
	return runs[block.focusedLinkIndex]
}

// VisuallySelect focuses the block and re-tags every word of the
// index-th link run as selected.
func (block *Block) VisuallySelect(index int) error {
	links := block.NumLinks()
	if index < 0 || index >= links {
		return &BoundsError{Index: index, Count: links}
	}
	runs := block.linkRuns()
	if index >= len(runs) {
		return &BoundsError{Index: index, Count: len(runs)}
	}

	block.focused = true
	block.focusedLinkIndex = index
	for _, word := range runs[index] {
		word.SetKind(Selected)
	}
	return nil
}

// Deselect clears focus and restores every selected word.
func (block *Block) Deselect() {
	block.focused = false
	block.focusedLinkIndex = 0
	for line := range block.content {
		for index := range block.content[line] {
			word := &block.content[line][index]
			if word.wordType.Kind == KindSelected {
				word.ClearKind()
			}
		}
	}
}

// HighlightLink returns the target of the focused link: the content of
// the focused-index-th link target or footnote reference in meta.
func (block *Block) HighlightLink() (string, error) {
	seen := 0
	for index := range block.meta {
		word := &block.meta[index]
		if !word.isLinkTarget() {
			continue
		}
		if seen == block.focusedLinkIndex {
			return word.content, nil
		}
		seen++
	}
	return "", &BoundsError{Index: block.focusedLinkIndex, Count: seen}
}

// Footnote returns the body of this footnote block when its id
// matches, or "" otherwise.
func (block *Block) Footnote(id string) string {
	if block.kind != NodeFootnote || len(block.meta) == 0 || block.meta[0].content != id {
		return ""
	}
	var builder strings.Builder
	for line := range block.content {
		for index := range block.content[line] {
			word := &block.content[line][index]
			if word.wordType.Kind == KindFootnote {
				builder.WriteString(word.content)
			}
		}
	}
	return builder.String()
}

// SelectedHeights returns the indexes of lines holding a selected word.
// For tables the index is the first line of the row, counted with the
// row heights of the last transform.
func (block *Block) SelectedHeights() []int {
	var heights []int
	if block.kind == NodeTable {
		columns := len(block.columnWidths)
		if columns == 0 {
			return nil
		}
		offset := 0
		for row := 0; row*columns < len(block.content); row++ {
			end := min((row+1)*columns, len(block.content))
			for _, cell := range block.content[row*columns : end] {
				if hasSelected(cell) {
					heights = append(heights, offset)
					break
				}
			}
			if row < len(block.rowHeights) {
				offset += block.rowHeights[row]
			} else {
				offset++
			}
		}
		return heights
	}

	for index, line := range block.content {
		if hasSelected(line) {
			heights = append(heights, index)
		}
	}
	return heights
}

func hasSelected(words []Word) bool {
	for index := range words {
		if words[index].wordType.Kind == KindSelected {
			return true
		}
	}
	return false
}

// Transform lays the block out for a display width. Highlighter may be
// nil, leaving code blocks unhighlighted. Transforming an image is a
// programming error and panics.
func (block *Block) Transform(width int, highlighter highlight.Highlighter) {
	switch block.kind {
	case NodeList:
		block.content = layoutList(block.content, block.meta, width)
		block.height = len(block.content)
	case NodeCodeBlock:
		block.transformCodeBlock(highlighter)
	case NodeParagraph, NodeTask, NodeQuote:
		block.transformParagraph(width)
	case NodeLineBreak, NodeHeading, NodeHorizontalSeparator:
		block.height = 1
	case NodeTable:
		block.transformTable(width)
	case NodeFootnote:
		block.height = 0
	case NodeImage:
		panic("document: image blocks are media and are never transformed")
	default:
		panic(fmt.Sprintf("document: transform has no layout for %s", block.kind))
	}
}

// Admonition returns the alert kind of a quote block, if it has one.
func (block *Block) Admonition() (MetaKind, bool) {
	if block.kind != NodeQuote {
		return MetaOther, false
	}
	for index := range block.meta {
		wordType := block.meta[index].wordType
		if wordType.Kind == KindMeta && wordType.Meta >= MetaImportant && wordType.Meta <= MetaCaution {
			return wordType.Meta, true
		}
	}
	return MetaOther, false
}

// Paragraph-family wrap widths leave room for the renderer's margins:
// one cell for paragraphs, the checkbox for tasks, the bar and space
// for quotes.
const (
	paragraphMargin = 1
	taskMargin      = 4
	quoteMargin     = 2
)

func (block *Block) transformParagraph(width int) {
	switch block.kind {
	case NodeParagraph:
		width -= paragraphMargin
	case NodeTask:
		width -= taskMargin
	case NodeQuote:
		width -= quoteMargin
	}

	lines := WrapWords(unwrap(block.content), width, true)

	if block.kind == NodeQuote {
		// Admonition quotes carry their marker in meta and render a
		// title in place of the first line's prefix.
		skip := 0
		if _, ok := block.Admonition(); ok {
			skip = 1
		}
		for index := skip; index < len(lines); index++ {
			lines[index] = append([]Word{filler(1)}, lines[index]...)
		}
	}

	block.content = lines
	block.height = len(lines)
}
