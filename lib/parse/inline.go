// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/bureau-foundation/mdview/lib/document"
)

// inlineCollector walks inline content and accumulates classified
// words. Text is split at spaces with each space kept as the leading
// byte of the word after it, so joining word contents gives back the
// text and the wrap engine can break before any word.
//
// Nested block content (paragraphs inside quotes or list items, code
// inside list items) is flattened into the same word stream, separated
// by hard breaks, or by spaces when flatten is set.
type inlineCollector struct {
	source []byte
	flavor Flavor

	words []document.Word

	// Style counters: incremented entering, decremented leaving, so
	// nested emphasis resolves correctly.
	boldCount          int
	italicCount        int
	strikethroughCount int
	linkDepth          int

	// pendingBreak is put in front of the next emitted word: " " for a
	// soft break, "\n" for a hard one.
	pendingBreak string

	// flatten turns every line break into a space. Lists and table
	// cells are laid out on their own terms and take no hard breaks.
	flatten bool

	// footnote tags every word as footnote body and drops link targets.
	footnote bool

	// dropCheckBox drops task check boxes; a Task block carries its box
	// in meta.
	dropCheckBox bool

	// skipLine drops inline content up to the first line break; it is
	// how an alert quote's [!NOTE] marker line is consumed.
	skipLine bool
}

func (collector *inlineCollector) walkChildren(node ast.Node) {
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		_ = ast.Walk(child, collector.walk)
	}
}

func (collector *inlineCollector) walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	if collector.skipLine {
		if entering && node.Kind() == ast.KindText {
			textNode := node.(*ast.Text)
			if textNode.SoftLineBreak() || textNode.HardLineBreak() {
				collector.skipLine = false
			}
		}
		if entering && node.Type() == ast.TypeInline {
			return ast.WalkSkipChildren, nil
		}
		if !entering && (node.Kind() == ast.KindParagraph || node.Kind() == ast.KindTextBlock) {
			collector.skipLine = false
		}
		return ast.WalkContinue, nil
	}

	switch node.Kind() {

	// Block nodes reached while flattening.
	case ast.KindParagraph, ast.KindTextBlock, ast.KindHeading, ast.KindListItem:
		if !entering {
			collector.lineBreak(true)
		}

	case ast.KindFencedCodeBlock, ast.KindCodeBlock:
		if entering {
			for _, line := range strings.SplitAfter(nodeText(node, collector.source), "\n") {
				if line = strings.TrimRight(line, "\n"); line != "" {
					collector.emit(line, document.TokenCode)
				}
				collector.lineBreak(true)
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindHTMLBlock:
		if entering {
			if stripped := strings.TrimSpace(stripHTMLTags(nodeText(node, collector.source))); stripped != "" {
				collector.emit(stripped, document.TokenWord)
				collector.lineBreak(true)
			}
			return ast.WalkSkipChildren, nil
		}

	case ast.KindThematicBreak:
		if entering {
			collector.lineBreak(true)
		}

	// Inline nodes.
	case ast.KindText:
		if entering {
			collector.text(node.(*ast.Text))
		}

	case ast.KindString:
		if entering {
			collector.emit(resolve(node.(*ast.String).Value), collector.textKind())
		}

	case ast.KindEmphasis:
		emphasis := node.(*ast.Emphasis)
		delta := 1
		if !entering {
			delta = -1
		}
		if emphasis.Level >= 2 {
			collector.boldCount += delta
		} else {
			collector.italicCount += delta
		}

	case ast.KindCodeSpan:
		if entering {
			collector.codeSpan(node)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindLink:
		link := node.(*ast.Link)
		if entering {
			collector.linkDepth++
			return ast.WalkContinue, nil
		}
		collector.linkDepth--
		collector.linkTarget(string(link.Destination), link)

	case ast.KindAutoLink:
		if entering {
			autoLink := node.(*ast.AutoLink)
			collector.emit(string(autoLink.Label(collector.source)), document.TokenInlineLink)
			collector.target(string(autoLink.URL(collector.source)))
		}

	case KindWikiLink:
		if entering {
			wikiLink := node.(*WikiLink)
			collector.emit(string(wikiLink.DisplayText()), document.TokenWikiLink)
			collector.target(string(wikiLink.Target))
		}

	case ast.KindImage:
		if entering {
			image := node.(*ast.Image)
			collector.emit("["+plainText(image, collector.source)+"]", document.TokenAltText)
			return ast.WalkSkipChildren, nil
		}

	case ast.KindRawHTML:
		if entering {
			collector.rawHTML(node.(*ast.RawHTML))
		}

	// GFM extension nodes.
	case extast.KindStrikethrough:
		if entering {
			collector.strikethroughCount++
		} else {
			collector.strikethroughCount--
		}

	case extast.KindTaskCheckBox:
		// Tasks are recognized by the block builder. Inside flattened
		// content the box is shown as text.
		if entering && collector.flatten && !collector.dropCheckBox {
			box := "[ ]"
			if node.(*extast.TaskCheckBox).IsChecked {
				box = "[x]"
			}
			collector.emit(box, document.TokenWord)
		}

	case extast.KindFootnoteLink:
		if entering {
			reference := "[" + strconv.Itoa(node.(*extast.FootnoteLink).Index) + "]"
			collector.emitWhole(reference, document.TokenFootnoteRef)
		}

	case extast.KindFootnoteBacklink:
		return ast.WalkSkipChildren, nil
	}

	return ast.WalkContinue, nil
}

// textKind is the token kind for text at the current style state.
func (collector *inlineCollector) textKind() document.TokenKind {
	switch {
	case collector.linkDepth > 0:
		return document.TokenLink
	case collector.boldCount > 0 && collector.italicCount > 0:
		return document.TokenBoldItalic
	case collector.boldCount > 0:
		return document.TokenBold
	case collector.italicCount > 0:
		return document.TokenItalic
	case collector.strikethroughCount > 0:
		return document.TokenStrikethrough
	}
	return document.TokenWord
}

func (collector *inlineCollector) text(node *ast.Text) {
	value := resolve(node.Segment.Value(collector.source))
	if node.SoftLineBreak() || node.HardLineBreak() {
		value = strings.TrimRight(value, " \t")
	}
	collector.emit(value, collector.textKind())
	switch {
	case node.HardLineBreak():
		collector.lineBreak(true)
	case node.SoftLineBreak():
		collector.lineBreak(collector.flavor == Claude)
	}
}

func (collector *inlineCollector) codeSpan(node ast.Node) {
	var code strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch child := child.(type) {
		case *ast.Text:
			code.Write(child.Segment.Value(collector.source))
		case *ast.String:
			code.Write(child.Value)
		}
	}
	collector.emit(code.String(), document.TokenCode)
}

func (collector *inlineCollector) rawHTML(node *ast.RawHTML) {
	var html strings.Builder
	for index := 0; index < node.Segments.Len(); index++ {
		segment := node.Segments.At(index)
		html.Write(segment.Value(collector.source))
	}
	if stripped := stripHTMLTags(html.String()); stripped != "" {
		collector.emit(stripped, collector.textKind())
	}
}

// linkTarget closes a link: a link without visible text shows its
// destination, and one without a destination is plain text.
func (collector *inlineCollector) linkTarget(destination string, link ast.Node) {
	if destination == "" {
		return
	}
	if link.ChildCount() == 0 {
		collector.emit(destination, document.TokenLink)
	}
	collector.target(destination)
}

func (collector *inlineCollector) target(destination string) {
	if collector.footnote || destination == "" {
		return
	}
	collector.words = append(collector.words, document.Token{Kind: document.TokenLinkData, Content: destination}.Word())
}

// lineBreak records a break before the next word. A hard break is a
// newline unless the collector flattens.
func (collector *inlineCollector) lineBreak(hard bool) {
	if len(collector.words) == 0 {
		return
	}
	if hard && !collector.flatten {
		collector.pendingBreak = "\n"
	} else if collector.pendingBreak == "" {
		collector.pendingBreak = " "
	}
}

// emit splits text into words and appends them.
func (collector *inlineCollector) emit(content string, kind document.TokenKind) {
	for _, piece := range splitWords(content) {
		collector.emitWhole(piece, kind)
	}
}

// emitWhole appends content as one word.
func (collector *inlineCollector) emitWhole(content string, kind document.TokenKind) {
	if content == "" {
		return
	}
	switch collector.pendingBreak {
	case "\n":
		content = "\n" + strings.TrimLeft(content, " ")
	case " ":
		if !strings.HasPrefix(content, " ") {
			content = " " + content
		}
	}
	collector.pendingBreak = ""

	if collector.footnote {
		collector.words = append(collector.words, document.NewWord(content, document.Footnote))
		return
	}
	collector.words = append(collector.words, document.Token{Kind: kind, Content: content}.Word())
}

// splitWords cuts text before every space after the first byte.
func splitWords(text string) []string {
	var words []string
	start := 0
	for index := 1; index < len(text); index++ {
		if text[index] == ' ' {
			words = append(words, text[start:index])
			start = index
		}
	}
	if start < len(text) {
		words = append(words, text[start:])
	}
	return words
}

// resolve applies backslash escapes and character references.
func resolve(value []byte) string {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	value = util.ResolveEntityNames(value)
	return string(value)
}

// plainText returns the unstyled text of a node's inline descendants.
func plainText(node ast.Node, source []byte) string {
	var builder strings.Builder
	_ = ast.Walk(node, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch child := child.(type) {
		case *ast.Text:
			builder.WriteString(resolve(child.Segment.Value(source)))
			if child.SoftLineBreak() || child.HardLineBreak() {
				builder.WriteByte(' ')
			}
		case *ast.String:
			builder.Write(child.Value)
		}
		return ast.WalkContinue, nil
	})
	return builder.String()
}

// trimFirst removes leading spaces from the first word.
func trimFirst(words []document.Word) []document.Word {
	for index := range words {
		if !words[index].IsRenderable() {
			continue
		}
		words[index].SetContent(strings.TrimLeft(words[index].Content(), " "))
		break
	}
	return words
}
