// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import "fmt"

// TokenKind is the closed vocabulary a parser front-end emits. Leaf
// kinds map onto word types through [TypeOf]. Container kinds only
// exist while the parser is still grouping tokens: it must resolve
// them into leaves before handing anything to this package.
type TokenKind uint8

const (
	TokenWord TokenKind = iota
	TokenSentence
	TokenParagraph
	TokenQuote
	TokenAltText
	TokenBold
	TokenItalic
	TokenBoldItalic
	TokenStrikethrough
	TokenCode
	TokenLink
	TokenInlineLink
	TokenWikiLink
	TokenLinkData
	TokenFootnoteRef
	TokenDigit
	TokenLanguage
	TokenBlockSeparator
	TokenTaskOpen
	TokenTaskClosed
	TokenIndent
	TokenHorizontalSeparator
	TokenImportant
	TokenNote
	TokenTip
	TokenWarning
	TokenCaution
	TokenCodeBlockText
	TokenCodeBlockTextIndented

	// Container kinds.

	TokenHeading
	TokenBoldStr
	TokenItalicStr
	TokenBoldItalicStr
	TokenStrikethroughStr
	TokenCodeStr
	TokenCodeBlock
	TokenImage
	TokenListContainer
	TokenOrderedList
	TokenUnorderedList
	TokenFootnote
	TokenTable
	TokenTableCell
	TokenTableSeparator
	TokenTask

	tokenKindCount
)

var tokenKindNames = [tokenKindCount]string{
	TokenWord:                  "Word",
	TokenSentence:              "Sentence",
	TokenParagraph:             "Paragraph",
	TokenQuote:                 "Quote",
	TokenAltText:               "AltText",
	TokenBold:                  "Bold",
	TokenItalic:                "Italic",
	TokenBoldItalic:            "BoldItalic",
	TokenStrikethrough:         "Strikethrough",
	TokenCode:                  "Code",
	TokenLink:                  "Link",
	TokenInlineLink:            "InlineLink",
	TokenWikiLink:              "WikiLink",
	TokenLinkData:              "LinkData",
	TokenFootnoteRef:           "FootnoteRef",
	TokenDigit:                 "Digit",
	TokenLanguage:              "Language",
	TokenBlockSeparator:        "BlockSeparator",
	TokenTaskOpen:              "TaskOpen",
	TokenTaskClosed:            "TaskClosed",
	TokenIndent:                "Indent",
	TokenHorizontalSeparator:   "HorizontalSeparator",
	TokenImportant:             "Important",
	TokenNote:                  "Note",
	TokenTip:                   "Tip",
	TokenWarning:               "Warning",
	TokenCaution:               "Caution",
	TokenCodeBlockText:         "CodeBlockText",
	TokenCodeBlockTextIndented: "CodeBlockTextIndented",
	TokenHeading:               "Heading",
	TokenBoldStr:               "BoldStr",
	TokenItalicStr:             "ItalicStr",
	TokenBoldItalicStr:         "BoldItalicStr",
	TokenStrikethroughStr:      "StrikethroughStr",
	TokenCodeStr:               "CodeStr",
	TokenCodeBlock:             "CodeBlock",
	TokenImage:                 "Image",
	TokenListContainer:         "ListContainer",
	TokenOrderedList:           "OrderedList",
	TokenUnorderedList:         "UnorderedList",
	TokenFootnote:              "Footnote",
	TokenTable:                 "Table",
	TokenTableCell:             "TableCell",
	TokenTableSeparator:        "TableSeparator",
	TokenTask:                  "Task",
}

func (kind TokenKind) String() string {
	if kind < tokenKindCount {
		return tokenKindNames[kind]
	}
	return fmt.Sprintf("TokenKind(%d)", uint8(kind))
}

// IsContainer reports whether the kind groups other tokens and so has
// no word type of its own.
func (kind TokenKind) IsContainer() bool {
	return kind >= TokenHeading && kind < tokenKindCount
}

// TypeOf maps a leaf token kind to its word type. A container kind
// reaching this function means the parser front-end is broken; TypeOf
// panics naming the kind.
func TypeOf(kind TokenKind) WordType {
	switch kind {
	case TokenWord, TokenSentence, TokenParagraph, TokenQuote, TokenAltText:
		return Normal
	case TokenBold:
		return Bold
	case TokenItalic:
		return Italic
	case TokenBoldItalic:
		return BoldItalic
	case TokenStrikethrough:
		return Strikethrough
	case TokenCode:
		return Code
	case TokenLink, TokenInlineLink, TokenWikiLink:
		return Link
	case TokenLinkData:
		return LinkData
	case TokenFootnoteRef:
		return FootnoteInline
	case TokenDigit:
		return ListMarker
	case TokenLanguage:
		return Meta(MetaLanguage)
	case TokenBlockSeparator, TokenTaskOpen, TokenTaskClosed, TokenIndent, TokenHorizontalSeparator:
		return Meta(MetaOther)
	case TokenImportant:
		return Meta(MetaImportant)
	case TokenNote:
		return Meta(MetaNote)
	case TokenTip:
		return Meta(MetaTip)
	case TokenWarning:
		return Meta(MetaWarning)
	case TokenCaution:
		return Meta(MetaCaution)
	case TokenCodeBlockText, TokenCodeBlockTextIndented:
		return CodeBlock("")
	}
	panic(fmt.Sprintf("document: token kind %s has no word type; the parser must resolve it before building blocks", kind))
}

// Token is one parser output element: a leaf kind and its text.
type Token struct {
	Kind    TokenKind
	Content string
}

// Word converts the token into a word.
func (token Token) Word() Word {
	return NewWord(token.Content, TypeOf(token.Kind))
}

// WordsFromTokens converts a token list into words, panicking on the
// first container kind.
func WordsFromTokens(tokens []Token) []Word {
	words := make([]Word, 0, len(tokens))
	for _, token := range tokens {
		words = append(words, token.Word())
	}
	return words
}
