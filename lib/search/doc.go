// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package search finds query matches among a document's words and
// resolves heading links.
//
// A [Style] selects how a query is compared with word text. [Marker]
// turns a style into a [document.MarkFunc] for [document.Root.FindAndMark];
// matched words are re-tagged [document.Selected] so the renderer and
// [document.Root.SearchResultsHeights] can find them. [CompareHeading]
// is a [document.HeadingMatcher] that compares a heading with a
// GitHub-style anchor slug.
//
// All comparisons are case-insensitive using Unicode case folding.
package search
