// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewBlockSeparatesMeta(t *testing.T) {
	block := NewBlock(NodeParagraph, []Word{
		word("hello", Normal),
		word(" ", Normal),
		word("world", Bold),
		word("http://x.com", LinkData),
		word("fn1", FootnoteData),
		word("[1]", FootnoteInline),
		word("go", Meta(MetaLanguage)),
	})

	if diff := cmp.Diff([]string{"hello", " ", "world", "[1]"}, contents(block.Content()[0])); diff != "" {
		t.Errorf("content mismatch (-want +got):\n%s", diff)
	}
	var metaTypes []WordType
	for _, meta := range block.Meta() {
		metaTypes = append(metaTypes, meta.Type())
	}
	want := []WordType{LinkData, FootnoteData, FootnoteInline, Meta(MetaLanguage)}
	if diff := cmp.Diff(want, metaTypes); diff != "" {
		t.Errorf("meta mismatch (-want +got):\n%s", diff)
	}
	if block.Height() != 0 {
		t.Errorf("untransformed flat block height = %d, want 0", block.Height())
	}
}

func TestNewFormattedBlockHeight(t *testing.T) {
	block := NewFormattedBlock(NodeParagraph, [][]Word{
		normal("one"),
		{word("meta only", Meta(MetaOther))},
		normal("two"),
		normal("three"),
	})
	if block.Height() != 3 {
		t.Errorf("height = %d, want 3 (meta-only line dropped)", block.Height())
	}
	if len(block.Meta()) != 1 {
		t.Errorf("meta = %d words, want 1", len(block.Meta()))
	}
}

func TestNewFormattedBlockDuplicatesFootnoteReferences(t *testing.T) {
	block := NewFormattedBlock(NodeParagraph, [][]Word{{word("see", Normal), word("[1]", FootnoteInline)}})
	if len(block.Meta()) != 1 || block.Meta()[0].Type() != FootnoteInline {
		t.Fatalf("footnote reference not copied into meta: %v", block.Meta())
	}
	if got := lineTexts(block.Content()); got[0] != "see[1]" {
		t.Errorf("footnote reference not rendered: %q", got)
	}
}

func TestContentAsLines(t *testing.T) {
	block := NewFormattedBlock(NodeParagraph, [][]Word{
		normal("Hello", " world"),
		normal("second"),
	})
	if diff := cmp.Diff([]string{"Hello world", "second"}, block.ContentAsLines()); diff != "" {
		t.Errorf("ContentAsLines mismatch (-want +got):\n%s", diff)
	}
	if got := string(block.ContentAsBytes()); got != "Hello world\nsecond" {
		t.Errorf("ContentAsBytes = %q", got)
	}
}

func TestContentAsBytesCodeBlock(t *testing.T) {
	block := NewFormattedBlock(NodeCodeBlock, [][]Word{
		{word("a := 1\n", CodeBlock(""))},
		{word("b := 2\n", CodeBlock(""))},
	})
	if got := string(block.ContentAsBytes()); got != "a := 1\nb := 2\n" {
		t.Errorf("ContentAsBytes = %q", got)
	}
}

func TestNumLinks(t *testing.T) {
	block := NewBlock(NodeParagraph, []Word{
		word("a", Link), word("x", LinkData),
		word(" b", Link), word("y", LinkData),
		word("[1]", FootnoteInline),
		word("1", FootnoteData),
	})
	if block.NumLinks() != 3 {
		t.Errorf("NumLinks = %d, want 3", block.NumLinks())
	}
	if NewBlock(NodeParagraph, normal("plain")).NumLinks() != 0 {
		t.Error("block without links should count 0")
	}
}

func linkBlock() *Block {
	return NewBlock(NodeParagraph, []Word{
		word("see", Normal),
		word(" click", Link),
		word(" here", Link),
		word("https://a.example", LinkData),
		word(" and", Normal),
		word(" there", Link),
		word("https://b.example", LinkData),
	})
}

func TestVisuallySelectAndDeselect(t *testing.T) {
	block := linkBlock()
	if err := block.VisuallySelect(0); err != nil {
		t.Fatalf("VisuallySelect(0): %v", err)
	}
	if !block.IsFocused() || block.FocusedLinkIndex() != 0 {
		t.Error("block should be focused on link 0")
	}

	var selected []string
	for _, w := range block.Words() {
		if w.Type() == Selected {
			selected = append(selected, w.Content())
		}
	}
	if diff := cmp.Diff([]string{" click", " here"}, selected); diff != "" {
		t.Errorf("selected words mismatch (-want +got):\n%s", diff)
	}

	target, err := block.HighlightLink()
	if err != nil || target != "https://a.example" {
		t.Errorf("HighlightLink = (%q, %v), want https://a.example", target, err)
	}

	block.Deselect()
	if block.IsFocused() {
		t.Error("Deselect should clear focus")
	}
	want := []WordType{Normal, Link, Link, Normal, Link}
	if diff := cmp.Diff(want, types(block.Words())); diff != "" {
		t.Errorf("types after Deselect (-want +got):\n%s", diff)
	}
}

func TestVisuallySelectSecondRun(t *testing.T) {
	block := linkBlock()
	if err := block.VisuallySelect(1); err != nil {
		t.Fatalf("VisuallySelect(1): %v", err)
	}
	target, err := block.HighlightLink()
	if err != nil || target != "https://b.example" {
		t.Errorf("HighlightLink = (%q, %v), want https://b.example", target, err)
	}
}

func TestVisuallySelectOutOfBounds(t *testing.T) {
	for _, block := range []*Block{linkBlock(), NewBlock(NodeParagraph, normal("none"))} {
		err := block.VisuallySelect(5)
		var bounds *BoundsError
		if !errors.As(err, &bounds) {
			t.Fatalf("VisuallySelect(5) error = %v, want *BoundsError", err)
		}
		if bounds.Index != 5 || bounds.Count != block.NumLinks() {
			t.Errorf("BoundsError = %+v, want index 5 count %d", bounds, block.NumLinks())
		}
		if block.IsFocused() {
			t.Error("failed selection should not focus the block")
		}
	}
}

func TestIsIndentedList(t *testing.T) {
	indented := NewFormattedBlock(NodeList, [][]Word{{
		word("  ", Meta(MetaOther)), word("X. ", ListMarker), word("sub", Normal), word("X", Meta(MetaOrderedList)),
	}})
	if !indented.IsIndentedList() {
		t.Error("list with whitespace indent marker should be indented")
	}

	flat := NewFormattedBlock(NodeList, [][]Word{{
		word("", Meta(MetaOther)), word("• ", ListMarker), word("top", Normal), word("X", Meta(MetaUnorderedList)),
	}})
	if flat.IsIndentedList() {
		t.Error("list with an empty indent marker is not indented")
	}

	if NewBlock(NodeParagraph, []Word{word("  ", Meta(MetaOther))}).IsIndentedList() {
		t.Error("only lists can be indented lists")
	}
}

func TestTransformParagraph(t *testing.T) {
	block := NewBlock(NodeParagraph, normal("Hello", " wonderful", " world"))
	block.Transform(12, nil)
	if diff := cmp.Diff([]string{"Hello", "wonderful", "world"}, lineTexts(block.Content())); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
	if block.Height() != 3 {
		t.Errorf("height = %d, want 3", block.Height())
	}

	// Widening restores the trimmed spaces.
	block.Transform(80, nil)
	if diff := cmp.Diff([]string{"Hello wonderful world"}, lineTexts(block.Content())); diff != "" {
		t.Errorf("re-transform mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformNarrowKeepsLinks(t *testing.T) {
	block := NewBlock(NodeParagraph, []Word{
		word("好", Normal),
		word(" site", Link),
		word("https://a.example", LinkData),
	})
	block.Transform(2, nil)
	block.Transform(80, nil)

	if diff := cmp.Diff([]WordType{Normal, Link}, types(block.Words())); diff != "" {
		t.Errorf("types after re-transform (-want +got):\n%s", diff)
	}
	if err := block.VisuallySelect(0); err != nil {
		t.Fatalf("VisuallySelect(0) after re-transform: %v", err)
	}
}

func TestTransformQuotePrefix(t *testing.T) {
	block := NewBlock(NodeQuote, normal("alpha", " beta", " gamma", " delta"))
	block.Transform(12, nil)
	if block.Height() < 2 {
		t.Fatalf("quote should wrap, height=%d", block.Height())
	}
	for index, line := range block.Content() {
		if line[0].Content() != " " || line[0].Type() != Normal {
			t.Errorf("line %d does not start with the quote prefix: %q", index, joinContent(line))
		}
	}

	// Transforming again must not stack prefixes.
	block.Transform(12, nil)
	for index, line := range block.Content() {
		if len(line) > 1 && line[1].Content() == " " {
			t.Errorf("line %d has a doubled prefix: %q", index, joinContent(line))
		}
	}
}

func TestTransformAdmonitionSkipsFirstPrefix(t *testing.T) {
	block := NewBlock(NodeQuote, append([]Word{word("", Meta(MetaNote))}, normal("alpha", " beta", " gamma", " delta")...))
	block.Transform(12, nil)
	lines := block.Content()
	if len(lines) < 2 {
		t.Fatalf("quote should wrap, height=%d", len(lines))
	}
	if lines[0][0].Content() == " " {
		t.Errorf("first admonition line should not be prefixed: %q", joinContent(lines[0]))
	}
	if lines[1][0].Content() != " " {
		t.Errorf("second admonition line should be prefixed: %q", joinContent(lines[1]))
	}
}

func TestTransformTaskWrapsNarrower(t *testing.T) {
	words := normal("one", " two", " three", " four", " five")
	paragraph := NewBlock(NodeParagraph, words)
	task := NewBlock(NodeTask, words)
	paragraph.Transform(16, nil)
	task.Transform(16, nil)
	if task.Height() <= paragraph.Height() {
		t.Errorf("task (wrap width 12) height %d should exceed paragraph (wrap width 15) height %d",
			task.Height(), paragraph.Height())
	}
}

func TestTransformFixedHeights(t *testing.T) {
	tests := []struct {
		kind   NodeKind
		height int
	}{
		{NodeHeading, 1},
		{NodeLineBreak, 1},
		{NodeHorizontalSeparator, 1},
		{NodeFootnote, 0},
	}
	for _, test := range tests {
		block := NewBlock(test.kind, normal("text"))
		block.Transform(40, nil)
		if block.Height() != test.height {
			t.Errorf("%s height = %d, want %d", test.kind, block.Height(), test.height)
		}
	}
}

// Every block kind has a transform; adding a kind without one fails
// here rather than falling through at runtime.
func TestTransformCoversEveryKind(t *testing.T) {
	for kind := NodeKind(0); kind < nodeKindCount; kind++ {
		if nodeKindNames[kind] == "" {
			t.Errorf("node kind %d has no name", kind)
		}
		panicked := func() (panicked bool) {
			defer func() { panicked = recover() != nil }()
			NewBlock(kind, normal("text")).Transform(40, nil)
			return false
		}()
		if kind == NodeImage && !panicked {
			t.Error("transforming an image should panic")
		}
		if kind != NodeImage && panicked {
			t.Errorf("transforming %s panicked", kind)
		}
	}
}

func TestBlockFootnote(t *testing.T) {
	block := NewBlock(NodeFootnote, []Word{word("1", FootnoteData), word("The", Footnote), word(" note", Footnote)})
	if got := block.Footnote("1"); got != "The note" {
		t.Errorf("Footnote(1) = %q, want %q", got, "The note")
	}
	if got := block.Footnote("2"); got != "" {
		t.Errorf("Footnote(2) = %q, want empty", got)
	}
}

func TestTransformQuoteWithLinkKeepsFirstPrefix(t *testing.T) {
	block := NewBlock(NodeQuote, []Word{word("see", Normal), word(" docs", Link), word("https://x.example", LinkData)})
	block.Transform(40, nil)
	if _, ok := block.Admonition(); ok {
		t.Fatal("a quote with a link is not an admonition")
	}
	if first := block.Content()[0][0]; first.Content() != " " {
		t.Errorf("first line should carry the quote prefix: %q", joinContent(block.Content()[0]))
	}
}

func TestAdmonition(t *testing.T) {
	block := NewBlock(NodeQuote, []Word{word("", Meta(MetaWarning)), word("careful", Normal)})
	if kind, ok := block.Admonition(); !ok || kind != MetaWarning {
		t.Errorf("Admonition = (%v, %v), want (MetaWarning, true)", kind, ok)
	}
	if _, ok := NewBlock(NodeParagraph, []Word{word("", Meta(MetaWarning))}).Admonition(); ok {
		t.Error("only quotes are admonitions")
	}
}
