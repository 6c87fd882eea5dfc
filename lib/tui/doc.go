// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui paints laid-out markdown documents for the terminal.
//
// The [Renderer] turns the blocks of a [document.Root] into styled
// rows: words are colored by their type, headings get their level
// prefix, quotes their bar, tasks their checkbox and tables their
// column rules. Only rows inside the current viewport are painted, so
// the cost of a frame does not depend on document length.
//
// The package also carries the viewer chrome that is independent of
// bubbletea: the [Theme], the scrollbar and the message box overlay.
// Output always uses the ANSI 256-color profile, whatever the
// environment says, so rendering is deterministic in tests.
package tui
