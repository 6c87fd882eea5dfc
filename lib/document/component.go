// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

// Component is anything a document lays out vertically. Text blocks are
// [*Block]; non-text blocks such as images implement the same contract
// and are otherwise opaque to this package.
type Component interface {
	Kind() NodeKind
	Height() int
	YOffset() int
	SetYOffset(offset int)
	SetScrollOffset(offset int)
}

// Media is an image block. It is never transformed; its height is
// whatever the renderer decides it needs.
type Media struct {
	Source  string
	AltText string

	height       int
	yOffset      int
	scrollOffset int
}

// NewMedia returns an image block one row tall.
func NewMedia(source, altText string) *Media {
	return &Media{Source: source, AltText: altText, height: 1}
}

func (media *Media) Kind() NodeKind {
	return NodeImage
}

func (media *Media) Height() int {
	return media.height
}

// SetHeight changes the rows reserved for the image. Callers must run
// the document's SetScroll afterwards.
func (media *Media) SetHeight(height int) {
	media.height = max(height, 0)
}

func (media *Media) YOffset() int {
	return media.yOffset
}

func (media *Media) ScrollOffset() int {
	return media.scrollOffset
}

func (media *Media) SetYOffset(offset int) {
	media.yOffset = offset
}

func (media *Media) SetScrollOffset(offset int) {
	media.scrollOffset = offset
}
