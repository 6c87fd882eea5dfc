// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/mdview/lib/config"
	"github.com/bureau-foundation/mdview/lib/document"
	"github.com/bureau-foundation/mdview/lib/highlight"
	"github.com/bureau-foundation/mdview/lib/parse"
	"github.com/bureau-foundation/mdview/lib/search"
	"github.com/bureau-foundation/mdview/lib/tui"
)

// defaultPrintWidth is the content width when output is not a terminal
// and the configuration asks for the full terminal width.
const defaultPrintWidth = 80

type printOptions struct {
	Config      *config.Config
	Highlighter highlight.Highlighter
	Logger      *slog.Logger

	// TerminalWidth is the width of the output terminal, or 0 when the
	// output is not one.
	TerminalWidth int

	// Color keeps the styling escapes. Without it the output is plain
	// text.
	Color bool
}

// printDocument renders the whole file at path into writer.
func printDocument(writer io.Writer, path string, options printOptions) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading markdown file: %w", err)
	}
	flavor, err := options.Config.MarkdownFlavor()
	if err != nil {
		return err
	}

	width := options.Config.Width
	margin := 0
	if options.TerminalWidth > 0 {
		margin = options.Config.ContentX(options.TerminalWidth)
		width = min(options.Config.ContentWidth(options.TerminalWidth), options.TerminalWidth-margin)
	}
	if width <= 0 {
		width = defaultPrintWidth
	}

	root := parse.Root(filepath.Base(path), source,
		parse.Options{Flavor: flavor, Logger: options.Logger},
		document.RootOptions{
			Highlighter:    options.Highlighter,
			HeadingMatcher: search.CompareHeading,
			Logger:         options.Logger,
		})
	root.Transform(width)

	renderer := tui.NewRenderer(tui.DefaultTheme, width, margin)
	output := renderer.RenderAll(root)
	if !options.Color {
		output = ansi.Strip(output)
	}
	if _, err := io.WriteString(writer, output+"\n"); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}
