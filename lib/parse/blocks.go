// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"bytes"
	"log/slog"
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"

	"github.com/bureau-foundation/mdview/lib/document"
)

// builder turns top-level markdown blocks into components.
type builder struct {
	source []byte
	flavor Flavor
	logger *slog.Logger

	components []document.Component

	// listLines accumulates the items of the list being built. Task
	// items interrupt a list, so it is flushed before they are added.
	listLines [][]document.Word
}

func (builder *builder) newCollector() *inlineCollector {
	return &inlineCollector{source: builder.source, flavor: builder.flavor}
}

func (builder *builder) add(component document.Component) {
	builder.components = append(builder.components, component)
}

func (builder *builder) block(node ast.Node) {
	switch node.Kind() {
	case ast.KindParagraph, ast.KindTextBlock:
		builder.paragraph(node)

	case ast.KindHeading:
		heading := node.(*ast.Heading)
		collector := builder.newCollector()
		collector.flatten = true
		collector.walkChildren(heading)
		words := append(collector.words, document.NewWord("", document.HeadingLevel(heading.Level)))
		builder.add(document.NewBlock(document.NodeHeading, words))

	case ast.KindFencedCodeBlock:
		fenced := node.(*ast.FencedCodeBlock)
		builder.codeBlock(node, string(fenced.Language(builder.source)), document.TokenCodeBlockText)

	case ast.KindCodeBlock:
		builder.codeBlock(node, "", document.TokenCodeBlockTextIndented)

	case ast.KindBlockquote:
		builder.quote(node.(*ast.Blockquote))

	case ast.KindList:
		builder.list(node.(*ast.List), 0)
		builder.flushList()

	case ast.KindThematicBreak:
		separator := document.Token{Kind: document.TokenHorizontalSeparator, Content: "---"}.Word()
		builder.add(document.NewBlock(document.NodeHorizontalSeparator, []document.Word{separator}))

	case ast.KindHTMLBlock:
		stripped := strings.TrimSpace(stripHTMLTags(nodeText(node, builder.source)))
		if stripped == "" {
			return
		}
		collector := builder.newCollector()
		collector.emit(strings.Join(strings.Fields(stripped), " "), document.TokenParagraph)
		builder.add(document.NewBlock(document.NodeParagraph, collector.words))

	case extast.KindTable:
		builder.table(node.(*extast.Table))

	case extast.KindFootnoteList:
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if footnote, ok := child.(*extast.Footnote); ok {
				builder.footnote(footnote)
			}
		}

	default:
		builder.logger.Debug("skipping unsupported markdown block", "kind", node.Kind().String())
	}
}

func (builder *builder) paragraph(node ast.Node) {
	if image, ok := node.FirstChild().(*ast.Image); ok && node.ChildCount() == 1 {
		builder.add(document.NewMedia(string(image.Destination), plainText(image, builder.source)))
		return
	}

	collector := builder.newCollector()
	collector.walkChildren(node)
	if len(collector.words) == 0 {
		return
	}
	builder.add(document.NewBlock(document.NodeParagraph, collector.words))
}

// codeBlock emits one line per source line, each ending in a newline,
// with the language tag in front of the first.
func (builder *builder) codeBlock(node ast.Node, language string, kind document.TokenKind) {
	lines := node.Lines()
	formatted := make([][]document.Word, 0, lines.Len())
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		line := string(segment.Value(builder.source))
		if !strings.HasSuffix(line, "\n") {
			line += "\n"
		}
		formatted = append(formatted, []document.Word{document.Token{Kind: kind, Content: line}.Word()})
	}
	if language != "" {
		tag := document.Token{Kind: document.TokenLanguage, Content: language}.Word()
		if len(formatted) == 0 {
			formatted = append(formatted, nil)
		}
		formatted[0] = append([]document.Word{tag}, formatted[0]...)
	}
	builder.add(document.NewFormattedBlock(document.NodeCodeBlock, formatted))
}

// alerts maps GitHub alert markers to their meta tokens and titles.
var alerts = map[string]struct {
	kind  document.TokenKind
	title string
}{
	"[!NOTE]":      {document.TokenNote, "Note"},
	"[!TIP]":       {document.TokenTip, "Tip"},
	"[!IMPORTANT]": {document.TokenImportant, "Important"},
	"[!WARNING]":   {document.TokenWarning, "Warning"},
	"[!CAUTION]":   {document.TokenCaution, "Caution"},
}

// quote flattens a blockquote's content into one Quote block. Nested
// paragraphs are separated by hard breaks. An alert marker on the
// first line is replaced by its meta word and a title line.
func (builder *builder) quote(node *ast.Blockquote) {
	collector := builder.newCollector()
	var words []document.Word

	if first, ok := node.FirstChild().(*ast.Paragraph); ok && first.Lines().Len() > 0 {
		segment := first.Lines().At(0)
		marker := strings.ToUpper(string(bytes.TrimSpace(segment.Value(builder.source))))
		if alert, ok := alerts[marker]; ok {
			words = append(words,
				document.Token{Kind: alert.kind}.Word(),
				document.Token{Kind: document.TokenQuote, Content: alert.title}.Word(),
			)
			collector.skipLine = true
			collector.words = words
			collector.lineBreak(true)
		}
	}

	collector.walkChildren(node)
	if len(collector.words) == 0 {
		return
	}
	builder.add(document.NewBlock(document.NodeQuote, collector.words))
}

// list appends one line per item to the pending list. Nested lists
// follow their parent item with a deeper indent.
func (builder *builder) list(list *ast.List, depth int) {
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		if checked, ok := taskItem(item); ok {
			builder.task(item, checked, depth)
			continue
		}

		collector := builder.newCollector()
		collector.flatten = true
		var nested []*ast.List
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if sublist, ok := child.(*ast.List); ok {
				nested = append(nested, sublist)
				continue
			}
			_ = ast.Walk(child, collector.walk)
		}

		indent := document.Token{Kind: document.TokenIndent, Content: strings.Repeat("  ", depth)}.Word()
		marker := document.Token{Kind: document.TokenDigit, Content: document.Bullet}.Word()
		listType := document.NewWord("X", document.Meta(document.MetaUnorderedList))
		if list.IsOrdered() {
			marker = document.Token{Kind: document.TokenDigit, Content: "X. "}.Word()
			listType = document.NewWord("X", document.Meta(document.MetaOrderedList))
		}

		line := []document.Word{indent, marker}
		line = append(line, trimFirst(collector.words)...)
		line = append(line, listType)
		builder.listLines = append(builder.listLines, line)

		for _, sublist := range nested {
			builder.list(sublist, depth+1)
		}
	}
}

func (builder *builder) flushList() {
	if len(builder.listLines) == 0 {
		return
	}
	builder.add(document.NewFormattedBlock(document.NodeList, builder.listLines))
	builder.listLines = nil
}

// taskItem reports whether a list item starts with a GFM checkbox.
func taskItem(item ast.Node) (checked bool, ok bool) {
	first := item.FirstChild()
	if first == nil {
		return false, false
	}
	box, ok := first.FirstChild().(*extast.TaskCheckBox)
	if !ok {
		return false, false
	}
	return box.IsChecked, true
}

// task interrupts the pending list with a Task block. Lists nested in
// the task become an indented List block right after it.
func (builder *builder) task(item ast.Node, checked bool, depth int) {
	builder.flushList()

	collector := builder.newCollector()
	collector.flatten = true
	collector.dropCheckBox = true
	var nested []*ast.List
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		if sublist, ok := child.(*ast.List); ok {
			nested = append(nested, sublist)
			continue
		}
		_ = ast.Walk(child, collector.walk)
	}

	box := document.Token{Kind: document.TokenTaskOpen, Content: "- [ ]"}.Word()
	if checked {
		box = document.Token{Kind: document.TokenTaskClosed, Content: "- [x]"}.Word()
	}
	builder.add(document.NewBlock(document.NodeTask, append([]document.Word{box}, trimFirst(collector.words)...)))

	for _, sublist := range nested {
		builder.list(sublist, depth+1)
		builder.flushList()
	}
}

// table emits the header cells, one column-count marker per column and
// the body cells, one line per cell. Empty cells keep an empty word so
// the cell count stays a multiple of the column count.
func (builder *builder) table(table *extast.Table) {
	var cells [][]document.Word
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		columns := 0
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			if cell.Kind() != extast.KindTableCell {
				continue
			}
			collector := builder.newCollector()
			collector.flatten = true
			collector.walkChildren(cell)
			words := trimFirst(collector.words)
			if len(words) == 0 {
				words = []document.Word{document.Token{Kind: document.TokenWord}.Word()}
			}
			cells = append(cells, words)
			columns++
		}
		if row.Kind() == extast.KindTableHeader {
			for range columns {
				cells = append(cells, []document.Word{document.NewWord("", document.Meta(document.MetaColumnCount))})
			}
		}
	}
	builder.add(document.NewFormattedBlock(document.NodeTable, cells))
}

func (builder *builder) footnote(footnote *extast.Footnote) {
	collector := builder.newCollector()
	collector.flatten = true
	collector.footnote = true
	collector.walkChildren(footnote)

	words := []document.Word{document.NewWord(strconv.Itoa(footnote.Index), document.FootnoteData)}
	words = append(words, trimFirst(collector.words)...)
	builder.add(document.NewBlock(document.NodeFootnote, words))
}
