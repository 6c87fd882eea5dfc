// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/mdview/lib/document"
	"github.com/bureau-foundation/mdview/lib/parse"
)

func layout(t *testing.T, source string, width int) *document.Root {
	t.Helper()
	root := parse.Root("test.md", []byte(source), parse.Options{}, document.RootOptions{})
	root.Transform(width)
	root.SetScroll(0)
	return root
}

// rows renders the whole document and returns the ANSI-stripped rows.
func rows(t *testing.T, source string, width int) []string {
	t.Helper()
	root := layout(t, source, width)
	renderer := NewRenderer(DefaultTheme, width, 0)
	return strings.Split(ansi.Strip(renderer.RenderAll(root)), "\n")
}

func TestRenderParagraph(t *testing.T) {
	got := rows(t, "hello world", 40)
	if diff := cmp.Diff([]string{"hello world"}, got); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
}

func TestRenderPadsViewport(t *testing.T) {
	root := layout(t, "hello", 40)
	renderer := NewRenderer(DefaultTheme, 40, 2)
	got := strings.Split(ansi.Strip(renderer.Render(root, 3)), "\n")
	if diff := cmp.Diff([]string{"  hello", "", ""}, got); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if renderer.Render(root, 0) != "" {
		t.Error("zero-height viewport rendered rows")
	}
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"heading level one", "# Title", []string{"Title"}},
		{"heading prefix", "### Deeper", []string{"### Deeper"}},
		{"quote", "> quoted", []string{"│ quoted"}},
		{"alert", "> [!NOTE]\n> body", []string{"│ Note", "│ body"}},
		{"open task", "- [ ] todo", []string{"[ ] todo"}},
		{"closed task", "- [x] done", []string{"[x] done"}},
		{"bullet list", "- one\n- two", []string{"• one", "• two"}},
		{"ordered list", "1. one\n2. two", []string{"1. one", "2. two"}},
		{"table", "| a | b |\n|---|---|\n| 1 | 22 |", []string{"a│b ", "1│22"}},
		{"image", "![diagram](d.png)", []string{"[diagram]"}},
		{"separator", "---", []string{strings.Repeat("─", 12)}},
		{"blocks separated", "one\n\ntwo", []string{"one", "", "two"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, rows(t, test.source, 12)); diff != "" {
				t.Errorf("rows (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRenderCodeBlockFillsWidth(t *testing.T) {
	got := rows(t, "```\nx := 1\n```", 20)
	if len(got) != 2 {
		t.Fatalf("rows = %q, want the blank lead line and the code", got)
	}
	for _, row := range got {
		if width := ansi.StringWidth(row); width != 20 {
			t.Errorf("code row %q is %d cells, want 20", row, width)
		}
	}
	if strings.TrimSpace(got[1]) != "x := 1" {
		t.Errorf("code row = %q", got[1])
	}
}

func TestRenderWrappedTable(t *testing.T) {
	source := "| Name | Description |\n|---|---|\n| x | a description long enough to wrap |"
	root := layout(t, source, 24)
	table := root.Components()[0]
	got := strings.Split(ansi.Strip(NewRenderer(DefaultTheme, 24, 0).RenderAll(root)), "\n")
	if len(got) != table.Height() {
		t.Fatalf("rendered %d rows, table is %d tall", len(got), table.Height())
	}
	widths := table.ColumnWidths()
	for _, row := range got {
		if ansi.StringWidth(row) > 24 {
			t.Errorf("row %q is wider than 24 cells", row)
		}
		if left, _, ok := strings.Cut(row, "│"); !ok || ansi.StringWidth(left) != widths[0] {
			t.Errorf("row %q does not rule the first column at %d", row, widths[0])
		}
	}
}

const sample = `# Sample

A paragraph with **bold**, *italic* and a [link](#sample) that runs on long enough to wrap.

- item one
- item two

> [!WARNING]
> Careful now.

| k | v |
|---|---|
| a | b |

` + "```go\nfunc main() {}\n```" + `

- [x] finished

---

Closing words.
`

func TestRenderViewportMatchesFullRender(t *testing.T) {
	const width = 30
	root := layout(t, sample, width)
	renderer := NewRenderer(DefaultTheme, width, 0)
	all := strings.Split(renderer.RenderAll(root), "\n")
	if len(all) != root.Height() {
		t.Fatalf("full render has %d rows, document is %d tall", len(all), root.Height())
	}

	random := rand.New(rand.NewPCG(7, 11))
	for range 50 {
		scroll := random.IntN(root.Height())
		height := 1 + random.IntN(8)
		root.SetScroll(scroll)
		got := strings.Split(renderer.Render(root, height), "\n")

		want := append([]string(nil), all[scroll:min(scroll+height, len(all))]...)
		for len(want) < height {
			want = append(want, "")
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("scroll %d height %d (-want +got):\n%s", scroll, height, diff)
		}
	}
}

func TestRenderRowsFitWidth(t *testing.T) {
	for _, width := range []int{8, 20, 45, 100} {
		root := layout(t, sample, width)
		renderer := NewRenderer(DefaultTheme, width, 3)
		for index, row := range strings.Split(renderer.RenderAll(root), "\n") {
			if got := ansi.StringWidth(row); got > width+3 {
				t.Errorf("width %d: row %d is %d cells: %q", width, index, got, ansi.Strip(row))
			}
		}
	}
}

func TestRenderSelectionChangesStyling(t *testing.T) {
	root := layout(t, "see [here](#x) now", 40)
	renderer := NewRenderer(DefaultTheme, 40, 0)
	plain := renderer.RenderAll(root)

	if _, err := root.Select(0); err != nil {
		t.Fatalf("Select: %v", err)
	}
	selected := renderer.RenderAll(root)
	if selected == plain {
		t.Error("selecting a link did not change the rendered styling")
	}
	if ansi.Strip(selected) != ansi.Strip(plain) {
		t.Errorf("selection changed the text: %q vs %q", ansi.Strip(selected), ansi.Strip(plain))
	}
	if !strings.Contains(plain, "\x1b[") {
		t.Error("expected ANSI styling in output with the forced color profile")
	}
}
