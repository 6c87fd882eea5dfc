// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"errors"
	"fmt"
)

// FootnoteNotFound is the text FindFootnote returns for an unknown id.
// A missing footnote is shown to the reader as ordinary content rather
// than reported as an error.
const FootnoteNotFound = "Footnote not found"

// ErrNoSelection is returned by the selection queries when no block is
// focused.
var ErrNoSelection = errors.New("no link is selected")

// BoundsError reports a link index past the number of links available.
type BoundsError struct {
	Index int
	Count int
}

func (err *BoundsError) Error() string {
	return fmt.Sprintf("index out of bounds: %d >= %d", err.Index, err.Count)
}

// HeadingNotFoundError reports a heading link with no matching heading.
type HeadingNotFoundError struct {
	Heading string
}

func (err *HeadingNotFoundError) Error() string {
	return fmt.Sprintf("heading not found: %s", err.Heading)
}
