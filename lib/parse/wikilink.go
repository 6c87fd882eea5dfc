// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package parse

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindWikiLink is the node kind of a [[wiki link]].
var KindWikiLink = ast.NewNodeKind("WikiLink")

// WikiLink is an inline [[target]] or [[target|label]] link.
type WikiLink struct {
	ast.BaseInline

	Target []byte
	Label  []byte
}

func (link *WikiLink) Kind() ast.NodeKind {
	return KindWikiLink
}

func (link *WikiLink) Dump(source []byte, level int) {
	ast.DumpHelper(link, source, level, map[string]string{
		"Target": string(link.Target),
		"Label":  string(link.Label),
	}, nil)
}

// DisplayText is the label when one is given, otherwise the target.
func (link *WikiLink) DisplayText() []byte {
	if len(link.Label) > 0 {
		return link.Label
	}
	return link.Target
}

// WikiLinks is a goldmark extension that parses [[wiki links]].
var WikiLinks goldmark.Extender = wikiLinkExtension{}

type wikiLinkExtension struct{}

func (wikiLinkExtension) Extend(markdown goldmark.Markdown) {
	// Runs before the standard link parser, which shares the trigger.
	markdown.Parser().AddOptions(parser.WithInlineParsers(
		util.Prioritized(wikiLinkParser{}, 199),
	))
}

type wikiLinkParser struct{}

func (wikiLinkParser) Trigger() []byte {
	return []byte{'['}
}

func (wikiLinkParser) Parse(parent ast.Node, block text.Reader, context parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if !bytes.HasPrefix(line, []byte("[[")) {
		return nil
	}
	end := bytes.Index(line[2:], []byte("]]"))
	if end < 0 {
		return nil
	}
	inner := line[2 : 2+end]
	if bytes.ContainsAny(inner, "[]") {
		return nil
	}
	target, label, _ := bytes.Cut(inner, []byte("|"))
	target = bytes.TrimSpace(target)
	if len(target) == 0 {
		return nil
	}
	block.Advance(end + 4)
	return &WikiLink{
		Target: bytes.Clone(target),
		Label:  bytes.Clone(bytes.TrimSpace(label)),
	}
}
