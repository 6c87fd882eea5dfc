// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package highlight

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Chroma highlights code with chroma's lexers. The zero value is ready
// to use and safe for concurrent use; resolved lexers are cached per
// language tag for the lifetime of the value.
type Chroma struct {
	mutex   sync.RWMutex
	lexers  map[string]chroma.Lexer
	missing map[string]bool
}

// NewChroma returns a ready highlighter.
func NewChroma() *Chroma {
	return &Chroma{}
}

// Highlight tokenises source with the lexer for language. Token values
// are laid end to end, so each token's byte range is the running sum of
// the preceding values. Ranges are clamped to len(source) because some
// lexers append a trailing newline the source never had.
func (highlighter *Chroma) Highlight(language string, source []byte) ([]Event, bool) {
	if language == "" {
		return nil, false
	}
	lexer := highlighter.lexer(language)
	if lexer == nil {
		return nil, false
	}

	iterator, err := lexer.Tokenise(&chroma.TokeniseOptions{State: "root"}, string(source))
	if err != nil {
		return nil, false
	}

	var events []Event
	offset := 0
	for _, token := range iterator.Tokens() {
		if token.Value == "" {
			continue
		}
		start := min(offset, len(source))
		end := min(offset+len(token.Value), len(source))
		offset += len(token.Value)
		if start == end {
			continue
		}

		index, colored := paletteIndex(token.Type)
		if colored {
			events = append(events, Start(index), Source(start, end), End())
		} else {
			events = append(events, Source(start, end))
		}
	}
	return events, true
}

func (highlighter *Chroma) lexer(language string) chroma.Lexer {
	highlighter.mutex.RLock()
	lexer, cached := highlighter.lexers[language]
	known := highlighter.missing[language]
	highlighter.mutex.RUnlock()
	if cached {
		return lexer
	}
	if known {
		return nil
	}

	lexer = lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Match("file." + language)
	}

	highlighter.mutex.Lock()
	defer highlighter.mutex.Unlock()
	if lexer == nil {
		if highlighter.missing == nil {
			highlighter.missing = make(map[string]bool)
		}
		highlighter.missing[language] = true
		return nil
	}
	lexer = chroma.Coalesce(lexer)
	if highlighter.lexers == nil {
		highlighter.lexers = make(map[string]chroma.Lexer)
	}
	highlighter.lexers[language] = lexer
	return lexer
}

// paletteIndex maps a chroma token type to a highlight index. Exact
// name types are checked first since they all share the Name category.
func paletteIndex(tokenType chroma.TokenType) (int, bool) {
	switch tokenType {
	case chroma.KeywordType, chroma.NameClass:
		return Type, true
	case chroma.KeywordConstant, chroma.NameConstant:
		return Constant, true
	case chroma.NameFunction, chroma.NameFunctionMagic:
		return Function, true
	case chroma.NameBuiltin, chroma.NameBuiltinPseudo:
		return Builtin, true
	case chroma.NameTag:
		return Tag, true
	case chroma.NameAttribute, chroma.NameDecorator:
		return Attribute, true
	case chroma.NameVariable:
		return Variable, true
	case chroma.GenericHeading, chroma.GenericSubheading:
		return Heading, true
	}

	switch tokenType.Category() {
	case chroma.Keyword:
		return Keyword, true
	case chroma.Comment:
		return Comment, true
	case chroma.Operator:
		return Operator, true
	case chroma.Punctuation:
		return Punctuation, true
	case chroma.Literal:
		if tokenType.InSubCategory(chroma.LiteralString) {
			return String, true
		}
		if tokenType.InSubCategory(chroma.LiteralNumber) {
			return Number, true
		}
	}
	return 0, false
}
