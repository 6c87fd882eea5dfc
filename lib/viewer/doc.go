// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewer implements the interactive markdown viewer. Built on
// bubbletea (Elm architecture), a [Model] holds one open document and
// routes keys by the focused [Box]: the search input, a message box,
// or the document itself.
//
// In the document, keys scroll or enter link mode. In link mode the
// movement keys step between links and enter follows the selected
// one: heading links scroll to the heading, footnote references show the
// footnote, markdown file links open the file and push the current
// position onto the [JumpHistory], and anything else is shown as an
// external target.
//
// Data flow:
//
//	[markdown file]
//	    | parse.Root
//	[document.Root] <- Transform on every resize
//	    | tui.Renderer
//	[Model.View] <- bubbletea event loop
package viewer
