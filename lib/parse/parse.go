// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/bureau-foundation/mdview/lib/document"
)

// Flavor selects how soft line breaks inside a paragraph are treated.
type Flavor uint8

const (
	// CommonMark joins soft-broken lines with a space so paragraphs
	// reflow to the display width.
	CommonMark Flavor = iota

	// Claude keeps every source line break, as chat transcripts and
	// model output expect.
	Claude
)

var flavorNames = [...]string{
	CommonMark: "commonmark",
	Claude:     "claude",
}

func (flavor Flavor) String() string {
	if int(flavor) < len(flavorNames) {
		return flavorNames[flavor]
	}
	return fmt.Sprintf("Flavor(%d)", flavor)
}

// ParseFlavor parses a flavor name as written in configuration.
func ParseFlavor(name string) (Flavor, error) {
	for flavor, flavorName := range flavorNames {
		if strings.EqualFold(name, flavorName) {
			return Flavor(flavor), nil
		}
	}
	return CommonMark, fmt.Errorf("unknown markdown flavor %q (want commonmark or claude)", name)
}

// Options configures parsing.
type Options struct {
	Flavor Flavor

	// Logger receives diagnostics about skipped markdown constructs.
	// If nil, a no-op logger is used.
	Logger *slog.Logger
}

// The parser configuration never changes and a goldmark Markdown is
// safe to share; every Parse call creates its own state.
var (
	markdownParserInstance goldmark.Markdown
	markdownParserOnce     sync.Once
)

func markdownParser() goldmark.Markdown {
	markdownParserOnce.Do(func() {
		markdownParserInstance = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Footnote,
				WikiLinks,
			),
		)
	})
	return markdownParserInstance
}

// Parse converts markdown source into the document's components in
// reading order. Footnote definitions come last.
func Parse(source []byte, options Options) []document.Component {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	root := markdownParser().Parser().Parse(text.NewReader(source))
	builder := &builder{
		source: source,
		flavor: options.Flavor,
		logger: logger,
	}
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		builder.block(child)
	}
	logger.Debug("parsed markdown", "bytes", len(source), "components", len(builder.components))
	return builder.components
}

// File reads and parses a markdown file.
func File(path string, options Options) ([]document.Component, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading markdown file: %w", err)
	}
	return Parse(source, options), nil
}

// Root parses source into a document ready for layout: line breaks are
// inserted between blocks the way the renderer expects.
func Root(fileName string, source []byte, options Options, rootOptions document.RootOptions) *document.Root {
	if rootOptions.Logger == nil {
		rootOptions.Logger = options.Logger
	}
	return document.NewRoot(fileName, Parse(source, options), rootOptions).AddMissingComponents()
}

// nodeText returns the raw source text of a block node's lines.
func nodeText(node ast.Node, source []byte) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(source))
	}
	return builder.String()
}
