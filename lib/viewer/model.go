// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/mdview/lib/config"
	"github.com/bureau-foundation/mdview/lib/document"
	"github.com/bureau-foundation/mdview/lib/highlight"
	"github.com/bureau-foundation/mdview/lib/parse"
	"github.com/bureau-foundation/mdview/lib/search"
	"github.com/bureau-foundation/mdview/lib/tui"
)

// Box identifies the overlay that has keyboard focus, if any.
type Box int

const (
	// BoxNone: keys scroll the document or move between links.
	BoxNone Box = iota
	// BoxSearch: keys edit the search query.
	BoxSearch
	// BoxMessage shows a footnote, an external link, or an error.
	BoxMessage
	// BoxLinkPreview shows the target of the selected link.
	BoxLinkPreview
	// BoxHelp lists every key binding.
	BoxHelp
)

// messageBoxMaxWidth caps the width of message boxes on wide terminals.
const messageBoxMaxWidth = 60

// searchCharLimit bounds the search query length.
const searchCharLimit = 256

// editorFinishedMsg is sent when the editor started by the edit key
// exits.
type editorFinishedMsg struct {
	err error
}

// message is the content of the message box.
type message struct {
	title   string
	body    string
	isError bool
}

// Options configures a Model.
type Options struct {
	// Config supplies layout, flavor, search style, editor, and key
	// overrides. If nil, config.Default() is used.
	Config *config.Config

	// Theme colors the document. If nil, tui.DefaultTheme is used.
	Theme *tui.Theme

	// Highlighter colors code blocks. If nil, code blocks are plain.
	Highlighter highlight.Highlighter

	// Logger receives navigation and layout diagnostics. If nil, a
	// no-op logger is used.
	Logger *slog.Logger

	// ReadFile loads markdown files. If nil, os.ReadFile is used.
	ReadFile func(path string) ([]byte, error)
}

// Model is the bubbletea model of the viewer: one open document, its
// scroll position, link selection, and search state.
type Model struct {
	keys        KeyMap
	config      *config.Config
	theme       tui.Theme
	renderer    *tui.Renderer
	highlighter highlight.Highlighter
	logger      *slog.Logger
	readFile    func(string) ([]byte, error)
	flavor      parse.Flavor
	searchStyle search.Style

	// The open document.
	path    string
	root    *document.Root
	history JumpHistory

	// Terminal dimensions (set by WindowSizeMsg).
	width  int
	height int
	ready  bool

	scroll int

	// Link selection. selectIndex is meaningful while selected.
	selected    bool
	selectIndex int

	// query is the confirmed search; results are the rows holding
	// its matches and resultIndex the one last jumped to.
	query       string
	results     []int
	resultIndex int
	searchInput textinput.Model

	box     Box
	message message
	help    help.Model

	// notice is the latest log record, shown on the status line until
	// it fades.
	notice      string
	noticeLevel slog.Level
	noticeSeq   int
}

// NewModel opens the markdown file at path. The document is laid out
// once the first WindowSizeMsg arrives.
func NewModel(path string, options Options) (Model, error) {
	cfg := options.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := tui.DefaultTheme
	if options.Theme != nil {
		theme = *options.Theme
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	readFile := options.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	flavor, err := cfg.MarkdownFlavor()
	if err != nil {
		return Model{}, err
	}
	searchStyle, err := cfg.Search()
	if err != nil {
		return Model{}, err
	}
	keys := DefaultKeyMap
	if err := keys.Apply(cfg.Keys); err != nil {
		return Model{}, fmt.Errorf("applying key configuration: %w", err)
	}

	renderer := tui.NewRenderer(theme, cfg.ContentWidth(80), cfg.ContentX(80))

	searchInput := textinput.New()
	searchInput.Prompt = "/"
	searchInput.Placeholder = "search"
	searchInput.CharLimit = searchCharLimit
	searchInput.PromptStyle = renderer.NewStyle().Foreground(theme.LinkForeground)

	helpModel := help.New()
	helpModel.Styles.ShortKey = renderer.NewStyle().Foreground(theme.NormalText)
	helpModel.Styles.ShortDesc = renderer.NewStyle().Foreground(theme.HelpText)
	helpModel.Styles.ShortSeparator = renderer.NewStyle().Foreground(theme.BorderColor)
	helpModel.Styles.FullKey = renderer.NewStyle().Foreground(theme.MessageForeground).Bold(true)
	helpModel.Styles.FullDesc = renderer.NewStyle().Foreground(theme.MessageForeground)
	helpModel.Styles.FullSeparator = renderer.NewStyle().Foreground(theme.MessageBorder)

	model := Model{
		keys:        keys,
		config:      cfg,
		theme:       theme,
		renderer:    renderer,
		highlighter: options.Highlighter,
		logger:      logger,
		readFile:    readFile,
		flavor:      flavor,
		searchStyle: searchStyle,
		searchInput: searchInput,
		help:        helpModel,
	}
	if err := model.open(path); err != nil {
		return Model{}, err
	}
	return model, nil
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return nil
}

// Path returns the path of the open file.
func (model Model) Path() string {
	return model.path
}

// open replaces the document with the file at path. Selection and
// search are reset; the caller sets the scroll position.
func (model *Model) open(path string) error {
	source, err := model.readFile(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	model.root = parse.Root(filepath.Base(path), source,
		parse.Options{Flavor: model.flavor, Logger: model.logger},
		document.RootOptions{
			Highlighter:    model.highlighter,
			HeadingMatcher: search.CompareHeading,
			Logger:         model.logger,
		})
	model.path = path
	model.selected = false
	model.selectIndex = 0
	model.clearSearch()
	model.scroll = 0
	model.logger.Debug("opened file", "path", path, "links", model.root.NumLinks())
	if model.ready {
		model.layout()
	}
	return nil
}

// layout lays the document out for the current terminal size and
// restores the search marks or link selection, which Transform drops.
func (model *Model) layout() {
	margin := model.config.ContentX(model.width)
	// One column for the scrollbar and one of space before it.
	width := max(min(model.config.ContentWidth(model.width), model.width-margin-2), 1)
	model.renderer.SetLayout(width, margin)
	model.help.Width = model.width
	model.searchInput.Width = max(model.width-2, 1)

	model.root.Transform(width)
	model.root.SetScroll(model.scroll)
	switch {
	case model.selected:
		if _, err := model.root.Select(model.selectIndex); err != nil {
			model.selected = false
		}
	case model.query != "":
		model.root.FindAndMark(model.query, search.Marker(model.searchStyle))
		model.results = model.root.SearchResultsHeights()
		model.resultIndex = min(model.resultIndex, max(len(model.results)-1, 0))
	}
	model.setScroll(model.scroll)
}

func (model Model) viewportHeight() int {
	return max(model.height-1, 1)
}

// maxScroll lets the last row reach the middle of the viewport.
func (model Model) maxScroll() int {
	return max(model.root.Height()-model.viewportHeight()/2, 0)
}

func (model *Model) setScroll(scroll int) {
	model.scroll = min(max(scroll, 0), model.maxScroll())
	model.root.SetScroll(model.scroll)
}

// ensureVisible scrolls the least distance that brings row on screen.
func (model *Model) ensureVisible(row int) {
	height := model.viewportHeight()
	switch {
	case row < model.scroll:
		model.setScroll(row)
	case row >= model.scroll+height:
		model.setScroll(row - height + 1)
	}
}

func (model *Model) showMessage(title, body string) {
	model.box = BoxMessage
	model.message = message{title: title, body: body}
}

func (model *Model) showError(err error) {
	model.logger.Debug("viewer error", "path", model.path, "error", err)
	model.box = BoxMessage
	model.message = message{title: "Error", body: err.Error(), isError: true}
}

func (model *Model) clearSearch() {
	model.query = ""
	model.results = nil
	model.resultIndex = 0
}

// Update implements tea.Model. Keys go to the focused box first, then
// to link navigation while a link is selected.
func (model Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch model.box {
		case BoxSearch:
			return model.handleSearchKeys(msg)
		case BoxMessage, BoxLinkPreview, BoxHelp:
			return model.handleBoxKeys(msg)
		}
		if model.selected {
			if handled, cmd := model.handleLinkKeys(msg); handled {
				return model, cmd
			}
		}
		return model.handleViewKeys(msg)

	case tea.WindowSizeMsg:
		model.width = msg.Width
		model.height = msg.Height
		model.ready = true
		model.layout()

	case noticeMsg:
		model.notice = msg.Summary
		model.noticeLevel = msg.Level
		model.noticeSeq++
		seq := model.noticeSeq
		return model, tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
			return noticeFadeMsg{seq: seq}
		})

	case noticeFadeMsg:
		if msg.seq == model.noticeSeq {
			model.notice = ""
		}

	case editorFinishedMsg:
		if msg.err != nil {
			model.showError(fmt.Errorf("running editor: %w", msg.err))
			return model, nil
		}
		scroll := model.scroll
		if err := model.open(model.path); err != nil {
			model.showError(err)
			return model, nil
		}
		model.setScroll(scroll)
	}
	return model, nil
}

func (model Model) handleViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	height := model.viewportHeight()

	switch {
	case key.Matches(msg, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(msg, model.keys.Down):
		model.setScroll(model.scroll + 1)
	case key.Matches(msg, model.keys.Up):
		model.setScroll(model.scroll - 1)
	case key.Matches(msg, model.keys.HalfPageDown):
		model.setScroll(model.scroll + height/2)
	case key.Matches(msg, model.keys.HalfPageUp):
		model.setScroll(model.scroll - height/2)
	case key.Matches(msg, model.keys.PageDown):
		model.setScroll(model.scroll + height)
	case key.Matches(msg, model.keys.PageUp):
		model.setScroll(model.scroll - height)
	case key.Matches(msg, model.keys.Top):
		model.setScroll(0)
	case key.Matches(msg, model.keys.Bottom):
		model.setScroll(model.maxScroll())

	case key.Matches(msg, model.keys.SelectLink):
		model.selectFirstVisibleLink()

	case key.Matches(msg, model.keys.Search):
		model.box = BoxSearch
		model.searchInput.Reset()
		cmd := model.searchInput.Focus()
		return model, cmd

	case key.Matches(msg, model.keys.SearchNext):
		model.cycleResult(1)
	case key.Matches(msg, model.keys.SearchPrevious):
		model.cycleResult(-1)

	case key.Matches(msg, model.keys.Back):
		model.back()

	case key.Matches(msg, model.keys.Edit):
		cmd := model.edit()
		return model, cmd

	case key.Matches(msg, model.keys.Help):
		model.box = BoxHelp

	case key.Matches(msg, model.keys.Escape):
		if model.query != "" {
			model.root.Deselect()
			model.clearSearch()
		}
	}
	return model, nil
}

// handleLinkKeys handles the keys that act on the selected link.
// Unhandled keys fall through to document navigation.
func (model *Model) handleLinkKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, model.keys.Down):
		model.selectLink(model.selectIndex + 1)
	case key.Matches(msg, model.keys.Up):
		model.selectLink(model.selectIndex - 1)
	case key.Matches(msg, model.keys.Follow):
		model.follow()
	case key.Matches(msg, model.keys.Hover):
		target, err := model.root.Selected()
		if err != nil {
			model.showError(err)
			break
		}
		model.box = BoxLinkPreview
		model.message = message{title: ClassifyLink(target).String() + " link", body: target}
	case key.Matches(msg, model.keys.Escape):
		model.deselect()
	case key.Matches(msg, model.keys.Search):
		// Selecting a link cleared the search marks; start over.
		model.deselect()
		return false, nil
	default:
		return false, nil
	}
	return true, nil
}

func (model Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return model, tea.Quit

	case tea.KeyEsc:
		model.closeSearch()
		return model, nil

	case tea.KeyEnter:
		query := strings.TrimSpace(model.searchInput.Value())
		model.closeSearch()
		if query == "" {
			return model, nil
		}
		model.runSearch(query)
		return model, nil
	}

	var cmd tea.Cmd
	model.searchInput, cmd = model.searchInput.Update(msg)
	return model, cmd
}

func (model *Model) closeSearch() {
	model.box = BoxNone
	model.searchInput.Reset()
	model.searchInput.Blur()
}

// runSearch marks every match of query and jumps to the first one at
// or below the current scroll position.
func (model *Model) runSearch(query string) {
	model.deselect()
	model.root.Deselect()
	model.clearSearch()

	model.root.FindAndMark(query, search.Marker(model.searchStyle))
	results := model.root.SearchResultsHeights()
	model.logger.Debug("search", "query", query, "style", model.searchStyle, "rows", len(results))
	if len(results) == 0 {
		model.box = BoxMessage
		model.message = message{title: "Search", body: fmt.Sprintf("No results for %q", query), isError: true}
		return
	}

	model.query = query
	model.results = results
	model.resultIndex = 0
	for index, row := range results {
		if row >= model.scroll {
			model.resultIndex = index
			break
		}
	}
	model.setScroll(model.results[model.resultIndex])
}

// cycleResult jumps to the next (direction 1) or previous (-1) search
// result, wrapping at the ends.
func (model *Model) cycleResult(direction int) {
	if len(model.results) == 0 {
		return
	}
	count := len(model.results)
	model.resultIndex = ((model.resultIndex+direction)%count + count) % count
	model.setScroll(model.results[model.resultIndex])
}

func (model Model) handleBoxKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return model, tea.Quit
	case model.box == BoxLinkPreview && key.Matches(msg, model.keys.Follow):
		model.box = BoxNone
		model.follow()
	case key.Matches(msg, model.keys.Escape),
		key.Matches(msg, model.keys.Follow),
		key.Matches(msg, model.keys.Quit),
		model.box == BoxHelp && key.Matches(msg, model.keys.Help):
		model.box = BoxNone
	}
	return model, nil
}

// selectFirstVisibleLink enters link mode on the first link at or
// below the top of the viewport, or the first link of the document.
func (model *Model) selectFirstVisibleLink() {
	rows := model.root.LinkRows()
	if len(rows) == 0 {
		model.showMessage("Links", "This document has no links")
		return
	}
	index := 0
	for link, row := range rows {
		if row >= model.scroll {
			index = link
			break
		}
	}
	model.clearSearch()
	model.selectLink(index)
}

// selectLink selects the link with the given index, clamped to the
// document's links, and scrolls it into view.
func (model *Model) selectLink(index int) {
	rows := model.root.LinkRows()
	if len(rows) == 0 {
		model.deselect()
		return
	}
	index = min(max(index, 0), len(rows)-1)
	if _, err := model.root.Select(index); err != nil {
		model.showError(err)
		return
	}
	model.selected = true
	model.selectIndex = index
	model.ensureVisible(rows[index])
}

func (model *Model) deselect() {
	if model.selected {
		model.root.Deselect()
	}
	model.selected = false
	model.selectIndex = 0
}

// follow acts on the selected link.
func (model *Model) follow() {
	target, err := model.root.Selected()
	if err != nil {
		model.showError(err)
		return
	}
	if underlying, err := model.root.SelectedUnderlyingType(); err == nil && underlying.Kind == document.KindFootnoteInline {
		id := strings.TrimSuffix(strings.TrimPrefix(target, "["), "]")
		model.showMessage("Footnote "+target, model.root.FindFootnote(id))
		return
	}

	switch ClassifyLink(target) {
	case LinkInternal:
		row, err := model.root.HeadingOffset(target)
		if err != nil {
			model.showError(err)
			return
		}
		model.deselect()
		model.setScroll(row)

	case LinkMarkdownFile:
		model.followFile(target)

	case LinkExternal:
		model.showMessage("External link", target)
	}
}

// followFile opens a markdown file link and records where it was
// followed from.
func (model *Model) followFile(target string) {
	path, fragment := resolveMarkdownLink(model.path, target)
	from := Jump{Kind: JumpFile, Path: model.path, Scroll: model.scroll}

	if path != model.path {
		if err := model.open(path); err != nil {
			model.showError(err)
			return
		}
		model.history.Push(from)
		model.logger.Debug("followed link", "from", from.Path, "to", path)
	} else {
		model.deselect()
	}

	if fragment == "" {
		model.setScroll(0)
		return
	}
	row, err := model.root.HeadingOffset(fragment)
	if err != nil {
		model.showError(err)
		return
	}
	model.setScroll(row)
}

// back returns to the file the last followed link was in.
func (model *Model) back() {
	jump := model.history.Pop()
	if jump.Kind == JumpFileTree {
		model.showMessage("Back", "No previous file")
		return
	}
	if err := model.open(jump.Path); err != nil {
		model.showError(err)
		return
	}
	model.setScroll(jump.Scroll)
}

// edit runs the configured editor on the open file. The file is
// reloaded when the editor exits.
func (model *Model) edit() tea.Cmd {
	fields := strings.Fields(model.config.Editor)
	if len(fields) == 0 {
		model.showError(errors.New("no editor configured"))
		return nil
	}
	command := exec.Command(fields[0], append(fields[1:], model.path)...)
	return tea.ExecProcess(command, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return "Loading..."
	}
	height := model.viewportHeight()

	rows := strings.Split(model.renderer.Render(model.root, height), "\n")
	scrollbar := strings.Split(tui.RenderScrollbar(model.theme, height,
		model.root.Height(), height, model.scroll, model.selected || model.query != ""), "\n")

	contentWidth := max(model.width-1, 0)
	for index := range rows {
		padding := max(contentWidth-ansi.StringWidth(rows[index]), 0)
		rows[index] += strings.Repeat(" ", padding)
		if index < len(scrollbar) {
			rows[index] += scrollbar[index]
		}
	}
	rows = append(rows, model.renderStatus())
	output := strings.Join(rows, "\n")

	if lines := model.renderBox(); lines != nil {
		output = tui.CenterOverlay(output, lines, model.width, model.height)
	}
	return output
}

// renderStatus renders the bottom line: the search input while
// searching, otherwise the help menu and the scroll position.
func (model Model) renderStatus() string {
	if model.box == BoxSearch {
		return ansi.Truncate(model.searchInput.View(), model.width, "")
	}

	style := model.renderer.NewStyle().Foreground(model.theme.HelpText)
	position := style.Render(model.positionLabel())
	positionWidth := ansi.StringWidth(position)

	left := ""
	switch {
	case model.notice != "":
		color := model.theme.MessageBorder
		if model.noticeLevel >= slog.LevelError {
			color = model.theme.ErrorForeground
		}
		left = " " + model.renderer.NewStyle().Foreground(color).Render(model.notice)
	case model.config.HelpMenu:
		model.help.Width = max(model.width-positionWidth-2, 0)
		left = " " + model.help.ShortHelpView(model.keys.ShortHelp())
	}
	left = ansi.Truncate(left, max(model.width-positionWidth-1, 0), "")
	padding := max(model.width-ansi.StringWidth(left)-positionWidth, 0)
	return left + strings.Repeat(" ", padding) + position
}

// positionLabel names the file and where the viewport is in it.
func (model Model) positionLabel() string {
	label := filepath.Base(model.path)
	switch {
	case model.query != "" && len(model.results) > 0:
		label += fmt.Sprintf("  %q %d/%d", model.query, model.resultIndex+1, len(model.results))
	case model.selected:
		label += fmt.Sprintf("  link %d/%d", model.selectIndex+1, model.root.NumLinks())
	}

	if model.root.Height() <= model.viewportHeight() {
		return label + "  [all] "
	}
	switch model.scroll {
	case 0:
		return label + "  [top] "
	case model.maxScroll():
		return label + "  [bottom] "
	}
	return fmt.Sprintf("%s  [%d%%] ", label, model.scroll*100/model.maxScroll())
}

func (model Model) renderBox() []string {
	maxWidth := min(model.width-4, messageBoxMaxWidth)
	switch model.box {
	case BoxMessage, BoxLinkPreview:
		return model.renderer.MessageBox(model.message.title, model.message.body, model.message.isError, maxWidth)
	case BoxHelp:
		body := model.help.FullHelpView(model.keys.FullHelp())
		return model.renderer.MessageBox("Keys", body, false, max(model.width-4, 1))
	}
	return nil
}
