// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package parse turns markdown source into document components.
//
// Source is parsed with goldmark (GFM, footnotes and a [[wiki link]]
// inline extension) and the AST is walked directly, flattening inline
// content into classified words. Each top-level markdown block becomes
// one [document.Block] or [document.Media]:
//
//	paragraph   -> Paragraph (an image alone in a paragraph -> Media)
//	heading     -> Heading with a heading-level meta word
//	code        -> CodeBlock, one line per source line
//	blockquote  -> Quote, GitHub alerts consumed into meta
//	list        -> List, one line per item, nesting as indent meta
//	task item   -> Task, nested lists split into an indented List
//	table       -> Table, header cells, column markers, body cells
//	footnote    -> Footnote (definitions); references become [n] words
//	rule        -> HorizontalSeparator
//
// The caller wraps the result with document.NewRoot and
// AddMissingComponents.
package parse
