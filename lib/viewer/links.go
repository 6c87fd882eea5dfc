// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"os"
	"path/filepath"
	"strings"
)

// LinkType classifies a link target by what following it does.
type LinkType int

const (
	// LinkInternal targets a heading in the open document: "#slug".
	LinkInternal LinkType = iota
	// LinkMarkdownFile targets another markdown file: a path ending in
	// "md", or with no extension at all.
	LinkMarkdownFile
	// LinkExternal is everything else: URLs and non-markdown files.
	LinkExternal
)

func (linkType LinkType) String() string {
	switch linkType {
	case LinkInternal:
		return "internal"
	case LinkMarkdownFile:
		return "markdown file"
	case LinkExternal:
		return "external"
	default:
		return "unknown"
	}
}

// ClassifyLink returns the type of a link target.
func ClassifyLink(target string) LinkType {
	if strings.HasPrefix(target, "#") {
		return LinkInternal
	}
	path, _, _ := strings.Cut(target, "#")
	if strings.HasSuffix(path, "md") || !strings.Contains(path, ".") {
		return LinkMarkdownFile
	}
	return LinkExternal
}

// resolveMarkdownLink turns a markdown file link into a path relative
// to the file it appears in, and the heading fragment after '#', if any.
// A target without an extension that does not exist as written gets
// ".md" appended when that file exists.
func resolveMarkdownLink(current, target string) (path, fragment string) {
	path, fragment, _ = strings.Cut(target, "#")
	if fragment != "" {
		fragment = "#" + fragment
	}
	if path == "" {
		return current, fragment
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(current), path)
	}
	if filepath.Ext(path) == "" {
		if _, err := os.Stat(path); err != nil {
			if _, err := os.Stat(path + ".md"); err == nil {
				path += ".md"
			}
		}
	}
	return path, fragment
}

// JumpKind says where a jump returns to.
type JumpKind int

const (
	// JumpFileTree is the start of the history: there is nothing
	// further back to return to.
	JumpFileTree JumpKind = iota
	// JumpFile returns to a file at a scroll position.
	JumpFile
)

// Jump is one entry of the navigation history.
type Jump struct {
	Kind   JumpKind
	Path   string
	Scroll int
}

// JumpHistory is the stack of places left by following file links.
type JumpHistory struct {
	jumps []Jump
}

func (history *JumpHistory) Push(jump Jump) {
	history.jumps = append(history.jumps, jump)
}

// Pop removes and returns the most recent jump. An empty history pops
// a JumpFileTree entry, as often as it is asked.
func (history *JumpHistory) Pop() Jump {
	if len(history.jumps) == 0 {
		return Jump{Kind: JumpFileTree}
	}
	last := history.jumps[len(history.jumps)-1]
	history.jumps = history.jumps[:len(history.jumps)-1]
	return last
}

func (history *JumpHistory) Len() int {
	return len(history.jumps)
}
