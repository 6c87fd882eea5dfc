// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Kind is the semantic category of a word.
type Kind uint8

const (
	KindBold Kind = iota
	KindBoldItalic
	KindCode
	// KindCodeBlock words carry the highlight color in WordType.Color.
	KindCodeBlock
	// KindFootnote is footnote body text.
	KindFootnote
	// KindFootnoteData is a footnote definition id. Not rendered.
	KindFootnoteData
	// KindFootnoteInline is a footnote reference marker in running
	// text. Rendered, and also copied into the block's meta.
	KindFootnoteInline
	KindItalic
	KindLink
	// KindLinkData is a link target. Not rendered.
	KindLinkData
	KindListMarker
	// KindMeta words carry structural data in WordType.Meta. Not
	// rendered.
	KindMeta
	KindNormal
	// KindSelected is the transient highlight re-tag for selection and
	// search results.
	KindSelected
	KindStrikethrough
	KindWhite

	kindCount
)

var kindNames = [kindCount]string{
	KindBold:           "Bold",
	KindBoldItalic:     "BoldItalic",
	KindCode:           "Code",
	KindCodeBlock:      "CodeBlock",
	KindFootnote:       "Footnote",
	KindFootnoteData:   "FootnoteData",
	KindFootnoteInline: "FootnoteInline",
	KindItalic:         "Italic",
	KindLink:           "Link",
	KindLinkData:       "LinkData",
	KindListMarker:     "ListMarker",
	KindMeta:           "Meta",
	KindNormal:         "Normal",
	KindSelected:       "Selected",
	KindStrikethrough:  "Strikethrough",
	KindWhite:          "White",
}

func (kind Kind) String() string {
	if kind < kindCount {
		return kindNames[kind]
	}
	return fmt.Sprintf("Kind(%d)", uint8(kind))
}

// MetaKind is the payload of a KindMeta word.
type MetaKind uint8

const (
	MetaOther MetaKind = iota
	MetaUnorderedList
	MetaOrderedList
	MetaLanguage
	MetaColumnCount
	MetaImportant
	MetaNote
	MetaTip
	MetaWarning
	MetaCaution
	// MetaHeadingLevel carries the level in WordType.Level.
	MetaHeadingLevel
)

// WordType is a word's kind together with its payload. It is
// comparable: two word types are equal when kind and payload match.
// Build values with the package-level variables and constructors so
// that payload fields stay zero for kinds that carry none.
type WordType struct {
	Kind  Kind
	Meta  MetaKind
	Level uint8
	Color lipgloss.Color
}

var (
	Bold           = WordType{Kind: KindBold}
	BoldItalic     = WordType{Kind: KindBoldItalic}
	Code           = WordType{Kind: KindCode}
	Footnote       = WordType{Kind: KindFootnote}
	FootnoteData   = WordType{Kind: KindFootnoteData}
	FootnoteInline = WordType{Kind: KindFootnoteInline}
	Italic         = WordType{Kind: KindItalic}
	Link           = WordType{Kind: KindLink}
	LinkData       = WordType{Kind: KindLinkData}
	ListMarker     = WordType{Kind: KindListMarker}
	Normal         = WordType{Kind: KindNormal}
	Selected       = WordType{Kind: KindSelected}
	Strikethrough  = WordType{Kind: KindStrikethrough}
	White          = WordType{Kind: KindWhite}
)

// Meta returns the word type of a metadata word.
func Meta(meta MetaKind) WordType {
	return WordType{Kind: KindMeta, Meta: meta}
}

// HeadingLevel returns the metadata word type recording a heading's
// level.
func HeadingLevel(level int) WordType {
	return WordType{Kind: KindMeta, Meta: MetaHeadingLevel, Level: uint8(level)}
}

// CodeBlock returns the word type of code-block text in the given
// color. The empty color is the terminal default.
func CodeBlock(color lipgloss.Color) WordType {
	return WordType{Kind: KindCodeBlock, Color: color}
}

// IsRenderable reports whether words of this type are painted.
// Link targets, footnote definition ids and metadata are side-channel
// data; everything else, footnote references included, is rendered.
func (wordType WordType) IsRenderable() bool {
	switch wordType.Kind {
	case KindMeta, KindLinkData, KindFootnoteData:
		return false
	}
	return true
}

func (wordType WordType) String() string {
	switch wordType.Kind {
	case KindMeta:
		if wordType.Meta == MetaHeadingLevel {
			return fmt.Sprintf("Meta(HeadingLevel(%d))", wordType.Level)
		}
		return fmt.Sprintf("Meta(%d)", wordType.Meta)
	case KindCodeBlock:
		return fmt.Sprintf("CodeBlock(%q)", string(wordType.Color))
	}
	return wordType.Kind.String()
}

// Word is an atomic span of text with a semantic type.
//
// A word remembers at most one previous type. SetKind saves the current
// type and ClearKind restores it, which is how selection and search
// highlighting are undone. The slot holds a single value: calling
// SetKind twice before ClearKind overwrites the saved type with the
// intermediate one, and the original is gone. Only use SetKind for
// transient highlighting.
type Word struct {
	content     string
	wordType    WordType
	previous    WordType
	hasPrevious bool
	layout      layout
}

// layout records the edits line wrapping made to a word.
type layout struct {
	// filler words are indentation inserted by a transform.
	filler bool
	// continued words are split fragments joined to the next word.
	continued bool
	// hyphen is set when a trailing '-' was appended to a fragment.
	hyphen bool
	// trimmed holds whitespace removed from the start of a line.
	trimmed string
	// breakPrefix holds the newlines of a hard line break.
	breakPrefix string
}

// NewWord returns a word with no saved previous type.
func NewWord(content string, wordType WordType) Word {
	return Word{content: content, wordType: wordType}
}

func (word *Word) Content() string {
	return word.content
}

func (word *Word) SetContent(content string) {
	word.content = content
}

// Type returns the current word type.
func (word *Word) Type() WordType {
	return word.wordType
}

// Kind returns the current word kind.
func (word *Word) Kind() Kind {
	return word.wordType.Kind
}

// PreviousType returns the saved type, or the current type when
// nothing is saved.
func (word *Word) PreviousType() WordType {
	if word.hasPrevious {
		return word.previous
	}
	return word.wordType
}

// HasPrevious reports whether a type is saved.
func (word *Word) HasPrevious() bool {
	return word.hasPrevious
}

// SetKind re-tags the word, saving the current type in the
// single-slot undo.
func (word *Word) SetKind(wordType WordType) {
	word.previous = word.wordType
	word.hasPrevious = true
	word.wordType = wordType
}

// ClearKind restores the saved type and empties the slot. It is a
// no-op when nothing is saved.
func (word *Word) ClearKind() {
	if word.hasPrevious {
		word.wordType = word.previous
	}
	word.previous = WordType{}
	word.hasPrevious = false
}

// IsRenderable reports whether the word belongs in a block's content.
func (word *Word) IsRenderable() bool {
	return word.wordType.IsRenderable()
}

// SplitOff truncates the word to content[:at] and returns a word
// holding content[at:] with the same current and saved types.
func (word *Word) SplitOff(at int) Word {
	tail := *word
	tail.content = word.content[at:]
	word.content = word.content[:at]
	return tail
}

// withContent returns a copy of the word carrying different text.
func (word Word) withContent(content string) Word {
	word.content = content
	return word
}

// isLinkLike reports whether the word is part of a selectable link
// run in rendered content.
func (word *Word) isLinkLike() bool {
	switch word.wordType.Kind {
	case KindLink, KindFootnoteInline:
		return true
	}
	return false
}

// isLinkTarget reports whether a meta word names something a link
// selection can resolve to.
func (word *Word) isLinkTarget() bool {
	switch word.wordType.Kind {
	case KindLinkData, KindFootnoteInline:
		return true
	}
	return false
}

// wasLinkLike reports whether the word is link-like, or was before
// being selected.
func (word *Word) wasLinkLike() bool {
	return word.isLinkLike() || (word.wordType.Kind == KindSelected && word.previousIsLinkLike())
}

// previousIsLinkLike reports whether the saved type is a link or a
// footnote reference.
func (word *Word) previousIsLinkLike() bool {
	if !word.hasPrevious {
		return false
	}
	switch word.previous.Kind {
	case KindLink, KindFootnoteInline:
		return true
	}
	return false
}
