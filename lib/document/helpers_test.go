// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import "strings"

func word(content string, wordType WordType) Word {
	return NewWord(content, wordType)
}

// normal returns one Normal word per argument.
func normal(contents ...string) []Word {
	words := make([]Word, 0, len(contents))
	for _, content := range contents {
		words = append(words, word(content, Normal))
	}
	return words
}

// lineTexts joins the words of each line.
func lineTexts(lines [][]Word) []string {
	texts := make([]string, 0, len(lines))
	for _, line := range lines {
		texts = append(texts, joinContent(line))
	}
	return texts
}

// contents lists word contents in order.
func contents(words []Word) []string {
	result := make([]string, 0, len(words))
	for index := range words {
		result = append(result, words[index].Content())
	}
	return result
}

// types lists word types in order.
func types(words []*Word) []WordType {
	result := make([]WordType, 0, len(words))
	for _, word := range words {
		result = append(result, word.Type())
	}
	return result
}

// markExact is a minimal search marker: it selects words whose trimmed
// content equals the query.
func markExact(query string, words []*Word) {
	for _, word := range words {
		if strings.TrimSpace(word.Content()) == query {
			word.SetKind(Selected)
		}
	}
}
