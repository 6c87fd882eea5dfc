// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
	"golang.org/x/text/cases"

	"github.com/bureau-foundation/mdview/lib/document"
)

// Style selects how a query is matched against words.
type Style uint8

const (
	// Flex matches a substring of a single word, or a run of whole
	// words for a multi-word query.
	Flex Style = iota

	// Word matches whole words, ignoring surrounding punctuation.
	Word

	// Fuzz matches words containing the query's characters in order.
	Fuzz
)

var styleNames = [...]string{
	Flex: "flex",
	Word: "word",
	Fuzz: "fuzz",
}

func (style Style) String() string {
	if int(style) < len(styleNames) {
		return styleNames[style]
	}
	return fmt.Sprintf("Style(%d)", style)
}

// ParseStyle parses a style name as written in configuration.
func ParseStyle(name string) (Style, error) {
	for style, styleName := range styleNames {
		if strings.EqualFold(name, styleName) {
			return Style(style), nil
		}
	}
	return Flex, fmt.Errorf("unknown search style %q (want flex, word or fuzz)", name)
}

// fuzzScorePerRune is the minimum fzf score per query rune for a fuzzy
// match. A contiguous match scores at least 16 per rune, so gaps and
// missing boundary bonuses eat into the margin.
const fuzzScorePerRune = 10

// Marker returns a mark function for the style.
func Marker(style Style) document.MarkFunc {
	return func(query string, words []*document.Word) {
		FindAndMark(style, query, words)
	}
}

// FindAndMark re-tags every word matching query as Selected and
// returns how many words it marked. Words already selected are left
// alone so their saved type survives.
func FindAndMark(style Style, query string, words []*document.Word) int {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0
	}

	folder := cases.Fold()
	var matched []*document.Word
	switch style {
	case Word:
		matched = matchWords(folder, query, words)
	case Fuzz:
		matched = matchFuzzy(folder, query, words)
	default:
		matched = matchFlex(folder, query, words)
	}

	marked := 0
	for _, word := range matched {
		if word.Kind() == document.KindSelected {
			continue
		}
		word.SetKind(document.Selected)
		marked++
	}
	return marked
}

// normalize trims whitespace and surrounding punctuation and folds case.
func normalize(folder cases.Caser, text string) string {
	text = strings.TrimFunc(text, func(r rune) bool {
		return unicode.IsSpace(r) || unicode.IsPunct(r)
	})
	return folder.String(text)
}

func matchWords(folder cases.Caser, query string, words []*document.Word) []*document.Word {
	want := normalize(folder, query)
	var matched []*document.Word
	for _, word := range words {
		if normalize(folder, word.Content()) == want {
			matched = append(matched, word)
		}
	}
	return matched
}

func matchFlex(folder cases.Caser, query string, words []*document.Word) []*document.Word {
	fields := strings.Fields(query)
	if len(fields) == 1 {
		want := folder.String(fields[0])
		var matched []*document.Word
		for _, word := range words {
			if strings.Contains(folder.String(word.Content()), want) {
				matched = append(matched, word)
			}
		}
		return matched
	}

	for index, field := range fields {
		fields[index] = normalize(folder, field)
	}

	// Blank words are layout padding or wrapped spaces; a phrase can
	// run across them.
	var candidates []*document.Word
	var folded []string
	for _, word := range words {
		if strings.TrimSpace(word.Content()) == "" {
			continue
		}
		candidates = append(candidates, word)
		folded = append(folded, normalize(folder, word.Content()))
	}

	var matched []*document.Word
	for start := 0; start+len(fields) <= len(candidates); start++ {
		run := true
		for offset, field := range fields {
			if folded[start+offset] != field {
				run = false
				break
			}
		}
		if run {
			matched = append(matched, candidates[start:start+len(fields)]...)
			start += len(fields) - 1
		}
	}
	return matched
}

func matchFuzzy(folder cases.Caser, query string, words []*document.Word) []*document.Word {
	pattern := []rune(folder.String(strings.Join(strings.Fields(query), "")))
	threshold := fuzzScorePerRune * len(pattern)
	slab := util.MakeSlab(100*1024, 2048)

	var matched []*document.Word
	for _, word := range words {
		text := folder.String(strings.TrimSpace(word.Content()))
		if text == "" {
			continue
		}
		chars := util.ToChars([]byte(text))
		result, _ := algo.FuzzyMatchV2(false, true, true, &chars, pattern, false, slab)
		if result.Start >= 0 && result.Score >= threshold {
			matched = append(matched, word)
		}
	}
	return matched
}
