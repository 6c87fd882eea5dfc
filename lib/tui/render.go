// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"

	"github.com/bureau-foundation/mdview/lib/document"
)

// Renderer paints a transformed document into terminal rows. Width is
// the content width the document was transformed for and margin the
// number of blank cells in front of every row.
type Renderer struct {
	theme       Theme
	lipRenderer *lipgloss.Renderer
	width       int
	margin      int

	styles map[document.Kind]lipgloss.Style
}

// NewRenderer returns a renderer for theme. The color profile is
// forced to ANSI256: output is always for terminal display, and
// auto-detection would produce uncolored output without a TTY.
func NewRenderer(theme Theme, width, margin int) *Renderer {
	// SetColorProfile is needed as well: lipgloss.Renderer re-detects
	// the profile from the environment unless one is set explicitly.
	lipRenderer := lipgloss.NewRenderer(os.Stderr, termenv.WithProfile(termenv.ANSI256))
	lipRenderer.SetColorProfile(termenv.ANSI256)

	renderer := &Renderer{
		theme:       theme,
		lipRenderer: lipRenderer,
	}
	renderer.SetLayout(width, margin)
	renderer.styles = renderer.wordStyles()
	return renderer
}

// SetLayout changes the content width and left margin.
func (renderer *Renderer) SetLayout(width, margin int) {
	renderer.width = max(width, 1)
	renderer.margin = max(margin, 0)
}

func (renderer *Renderer) Width() int {
	return renderer.width
}

func (renderer *Renderer) Margin() int {
	return renderer.margin
}

func (renderer *Renderer) Theme() Theme {
	return renderer.theme
}

// NewStyle returns a style bound to the renderer's color profile.
func (renderer *Renderer) NewStyle() lipgloss.Style {
	return renderer.lipRenderer.NewStyle()
}

func (renderer *Renderer) wordStyles() map[document.Kind]lipgloss.Style {
	theme := renderer.theme
	normal := renderer.NewStyle().Foreground(theme.NormalText)
	return map[document.Kind]lipgloss.Style{
		document.KindNormal:         normal,
		document.KindWhite:          renderer.NewStyle(),
		document.KindBold:           normal.Bold(true),
		document.KindItalic:         normal.Italic(true),
		document.KindBoldItalic:     normal.Bold(true).Italic(true),
		document.KindStrikethrough:  normal.Strikethrough(true),
		document.KindCode:           renderer.NewStyle().Foreground(theme.CodeForeground).Background(theme.CodeBackground),
		document.KindCodeBlock:      renderer.NewStyle().Foreground(theme.NormalText).Background(theme.CodeBlockBackground),
		document.KindLink:           renderer.NewStyle().Foreground(theme.LinkForeground).Underline(true),
		document.KindFootnoteInline: renderer.NewStyle().Foreground(theme.FootnoteForeground),
		document.KindFootnote:       renderer.NewStyle().Foreground(theme.FaintText),
		document.KindListMarker:     renderer.NewStyle().Foreground(theme.ListMarker).Bold(true),
		document.KindSelected: renderer.NewStyle().
			Foreground(theme.SelectedForeground).
			Background(theme.SelectedBackground).
			Bold(true),
	}
}

// wordStyle returns the style of a word type. Plain text takes base,
// so block kinds such as headings can restyle their running text.
func (renderer *Renderer) wordStyle(wordType document.WordType, base lipgloss.Style) lipgloss.Style {
	switch wordType.Kind {
	case document.KindNormal:
		return base
	case document.KindBold:
		return base.Bold(true)
	case document.KindItalic:
		return base.Italic(true)
	case document.KindBoldItalic:
		return base.Bold(true).Italic(true)
	case document.KindStrikethrough:
		return base.Strikethrough(true)
	case document.KindCodeBlock:
		style := renderer.styles[document.KindCodeBlock]
		if wordType.Color != "" {
			style = style.Foreground(wordType.Color)
		}
		return style
	}
	if style, ok := renderer.styles[wordType.Kind]; ok {
		return style
	}
	return base
}

// paintWords styles one line of words. Runs of words with the same type
// are rendered together to keep escape sequences down; newlines left
// from hard breaks are dropped.
func (renderer *Renderer) paintWords(words []document.Word, base lipgloss.Style) string {
	var line, run strings.Builder
	var runType document.WordType
	flush := func() {
		if run.Len() == 0 {
			return
		}
		line.WriteString(renderer.wordStyle(runType, base).Render(run.String()))
		run.Reset()
	}
	for index := range words {
		word := &words[index]
		if !word.IsRenderable() {
			continue
		}
		content := strings.ReplaceAll(word.Content(), "\n", "")
		if content == "" {
			continue
		}
		if word.Type() != runType {
			flush()
			runType = word.Type()
		}
		run.WriteString(content)
	}
	flush()
	return line.String()
}

type scrolled interface {
	ScrollOffset() int
}

// Render paints the rows of root in [scroll, scroll+viewportHeight),
// where scroll is the offset last given to root.SetScroll. Blocks that
// are partly visible are clipped line by line. The result always has
// viewportHeight rows, none wider than margin plus width cells.
func (renderer *Renderer) Render(root *document.Root, viewportHeight int) string {
	if viewportHeight <= 0 {
		return ""
	}
	children := root.Children()
	scroll := 0
	if len(children) > 0 {
		if component, ok := children[0].(scrolled); ok {
			scroll = component.ScrollOffset()
		}
	}
	bottom := scroll + viewportHeight

	rows := make([]string, 0, viewportHeight)
	for _, component := range children {
		top := component.YOffset()
		height := component.Height()
		if height == 0 || top+height <= scroll || top >= bottom {
			continue
		}
		lines := fitLines(renderer.component(component), height)
		lines = lines[max(scroll-top, 0):min(height, bottom-top)]
		for _, line := range lines {
			rows = append(rows, renderer.finishRow(line))
		}
	}
	for len(rows) < viewportHeight {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// RenderAll paints every row of root from the top.
func (renderer *Renderer) RenderAll(root *document.Root) string {
	root.SetScroll(0)
	return renderer.Render(root, root.Height())
}

func (renderer *Renderer) finishRow(line string) string {
	line = ansi.Truncate(line, renderer.width, "")
	if line == "" {
		return ""
	}
	return strings.Repeat(" ", renderer.margin) + line
}

// fitLines pads or cuts lines to exactly height rows, so rendering never
// disagrees with the offsets the document computed.
func fitLines(lines []string, height int) []string {
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

// component paints all rows of one component.
func (renderer *Renderer) component(component document.Component) []string {
	if media, ok := component.(*document.Media); ok {
		return renderer.media(media)
	}
	block, ok := component.(*document.Block)
	if !ok {
		return nil
	}

	normal := renderer.styles[document.KindNormal]
	switch block.Kind() {
	case document.NodeHeading:
		return renderer.heading(block)
	case document.NodeCodeBlock:
		return renderer.codeBlock(block)
	case document.NodeQuote:
		return renderer.quote(block)
	case document.NodeTask:
		return renderer.task(block)
	case document.NodeTable:
		return renderer.table(block)
	case document.NodeHorizontalSeparator:
		rule := renderer.NewStyle().Foreground(renderer.theme.BorderColor)
		return []string{rule.Render(strings.Repeat("─", renderer.width))}
	case document.NodeLineBreak, document.NodeFootnote:
		return nil
	}
	return renderer.lines(block.Content(), normal)
}

func (renderer *Renderer) lines(content [][]document.Word, base lipgloss.Style) []string {
	lines := make([]string, 0, len(content))
	for _, line := range content {
		lines = append(lines, renderer.paintWords(line, base))
	}
	return lines
}

func headingLevel(block *document.Block) int {
	for _, word := range block.Meta() {
		if wordType := word.Type(); wordType.Kind == document.KindMeta && wordType.Meta == document.MetaHeadingLevel {
			return int(wordType.Level)
		}
	}
	return 1
}

// heading paints a heading on one row. Levels below the first get their
// markdown prefix in front.
func (renderer *Renderer) heading(block *document.Block) []string {
	level := headingLevel(block)
	style := renderer.NewStyle().Foreground(renderer.theme.HeadingColor(level)).Bold(true)
	if level == 1 {
		style = style.Underline(true)
	}

	var words []document.Word
	for _, line := range block.Content() {
		words = append(words, line...)
	}
	prefix := ""
	if level > 1 {
		prefix = style.UnsetBold().Render(strings.Repeat("#", level) + " ")
	}
	return []string{prefix + renderer.paintWords(words, style)}
}

// codeBlock paints code on the block background, padded to the full
// width.
func (renderer *Renderer) codeBlock(block *document.Block) []string {
	background := renderer.NewStyle().Background(renderer.theme.CodeBlockBackground)
	lines := make([]string, 0, block.Height())
	for _, line := range block.Content() {
		painted := background.Render(" ") + renderer.paintWords(line, renderer.styles[document.KindCodeBlock])
		if pad := renderer.width - ansi.StringWidth(painted); pad > 0 {
			painted += background.Render(strings.Repeat(" ", pad))
		}
		lines = append(lines, painted)
	}
	return lines
}

// quote paints a bar in front of every row. Alert quotes color the bar
// by kind and show their title on the first row.
func (renderer *Renderer) quote(block *document.Block) []string {
	kind, admonition := block.Admonition()
	barColor := renderer.theme.QuoteBar
	if admonition {
		barColor = renderer.theme.AdmonitionColor(kind)
	}
	bar := renderer.NewStyle().Foreground(barColor).Render("│")
	text := renderer.styles[document.KindNormal].Italic(true)

	content := block.Content()
	lines := make([]string, 0, len(content))
	for index, line := range content {
		if index == 0 && admonition {
			title := renderer.NewStyle().Foreground(barColor).Bold(true)
			lines = append(lines, bar+" "+renderer.paintWords(line, title))
			continue
		}
		lines = append(lines, bar+renderer.paintWords(line, text))
	}
	return lines
}

// taskChecked reports whether a task block's box is ticked.
func taskChecked(block *document.Block) bool {
	meta := block.Meta()
	return len(meta) > 0 && strings.Contains(meta[0].Content(), "[x]")
}

func (renderer *Renderer) task(block *document.Block) []string {
	checked := taskChecked(block)
	box := renderer.NewStyle().Foreground(renderer.theme.TaskOpen).Render("[ ] ")
	text := renderer.styles[document.KindNormal]
	if checked {
		box = renderer.NewStyle().Foreground(renderer.theme.TaskClosed).Render("[x] ")
		text = renderer.NewStyle().Foreground(renderer.theme.FaintText).Strikethrough(true)
	}

	content := block.Content()
	lines := make([]string, 0, len(content))
	for index, line := range content {
		prefix := "    "
		if index == 0 {
			prefix = box
		}
		lines = append(lines, prefix+renderer.paintWords(line, text))
	}
	return lines
}

// table paints each row of cells padded to its column width, columns
// separated by a rule. The header row is bold. Malformed tables come
// out as their cells on one row.
func (renderer *Renderer) table(block *document.Block) []string {
	normal := renderer.styles[document.KindNormal]
	widths := block.ColumnWidths()
	cells := block.Content()
	columns := len(widths)
	if columns == 0 {
		var words []document.Word
		for index, cell := range cells {
			if index > 0 {
				words = append(words, document.NewWord(" ", document.Normal))
			}
			words = append(words, cell...)
		}
		return []string{renderer.paintWords(words, normal)}
	}

	rule := renderer.NewStyle().Foreground(renderer.theme.BorderColor).Render("│")
	header := normal.Bold(true)

	var lines []string
	for row, height := range block.RowHeights() {
		base := normal
		if row == 0 {
			base = header
		}
		rowLines := make([]strings.Builder, height)
		for column := range columns {
			index := row*columns + column
			cellLines := block.CellLines(index)
			for line := range rowLines {
				var painted string
				if line < len(cellLines) {
					painted = renderer.paintWords(cellLines[line], base)
				}
				if pad := widths[column] - ansi.StringWidth(painted); pad > 0 {
					painted += strings.Repeat(" ", pad)
				}
				if column > 0 {
					rowLines[line].WriteString(rule)
				}
				rowLines[line].WriteString(painted)
			}
		}
		for line := range rowLines {
			lines = append(lines, rowLines[line].String())
		}
	}
	return lines
}

// media paints an image as its alt text in brackets.
func (renderer *Renderer) media(media *document.Media) []string {
	label := media.AltText
	if label == "" {
		label = "image"
	}
	style := renderer.NewStyle().Foreground(renderer.theme.FaintText).Italic(true)
	return []string{style.Render("[" + label + "]")}
}
