// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package document is the layout and navigation core of the markdown
// viewer. It turns the parser's classified words into blocks of
// width-fitted lines and keeps the document-level state the viewer
// drives: row offsets, link selection, search marks, and heading and
// footnote lookup.
//
// A [Word] is a span of text with a [WordType]. Words that only carry
// structure (link targets, language tags, list and table markers) are
// kept out of a block's rendered content in its meta. A [Block] is one
// paragraph, list, table, code block and so on; [Block.Transform] lays
// it out for a width. [Root] owns a file's ordered [Component] list.
//
// Data flow:
//
//	[parse] -> []Component -> NewRoot -> AddMissingComponents
//	    Transform(width) -> SetScroll(scroll)
//	        |
//	  [tui renderer] reads Content, Height, YOffset
//
// Everything here is synchronous and single-threaded. Transform
// rebuilds block content, so word pointers taken from Words or during
// selection are invalid after it runs.
package document
