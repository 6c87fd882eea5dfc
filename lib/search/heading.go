// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/bureau-foundation/mdview/lib/document"
)

// CompareHeading reports whether a heading's lines produce the anchor
// slug. The slug is derived the way GitHub derives heading anchors:
// the text is lowercased, characters other than letters, digits,
// spaces, '-' and '_' are dropped, and spaces become '-'.
func CompareHeading(slug string, lines [][]document.Word) bool {
	var text strings.Builder
	for _, line := range lines {
		for index := range line {
			text.WriteString(line[index].Content())
		}
	}
	return Slug(text.String()) == cases.Lower(language.Und).String(slug)
}

// Slug returns the anchor slug of heading text.
func Slug(heading string) string {
	lowered := cases.Lower(language.Und).String(strings.TrimSpace(heading))
	var slug strings.Builder
	for _, r := range lowered {
		switch {
		case r == ' ':
			slug.WriteByte('-')
		case r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			slug.WriteRune(r)
		}
	}
	return slug.String()
}
