// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/google/go-cmp/cmp"
)

func TestSpliceOverlay(t *testing.T) {
	tests := []struct {
		name    string
		view    string
		overlay []string
		x, y    int
		want    string
	}{
		{"middle", "aaaaaa\nbbbbbb", []string{"XY"}, 2, 1, "aaaaaa\nbbXYbb"},
		{"short row padded", "a\nb", []string{"XY"}, 3, 0, "a  XY\nb"},
		{"clipped below", "aaa", []string{"X", "Y"}, 0, 0, "Xaa"},
		{"nothing", "aaa", nil, 0, 0, "aaa"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ansi.Strip(SpliceOverlay(test.view, test.overlay, test.x, test.y))
			if got != test.want {
				t.Errorf("SpliceOverlay = %q, want %q", got, test.want)
			}
		})
	}
}

func TestSpliceOverlayKeepsStyling(t *testing.T) {
	renderer := NewRenderer(DefaultTheme, 20, 0)
	styled := renderer.NewStyle().Foreground(DefaultTheme.LinkForeground).Render("abcdef")
	got := SpliceOverlay(styled, []string{"X"}, 2, 0)
	if ansi.Strip(got) != "abXdef" {
		t.Errorf("stripped = %q", ansi.Strip(got))
	}
	if strings.Count(got, "\x1b[") < 3 {
		t.Errorf("styling lost around overlay: %q", got)
	}
}

func TestCenterOverlay(t *testing.T) {
	view := strings.Repeat("......\n", 4) + "......"
	got := strings.Split(ansi.Strip(CenterOverlay(view, []string{"XX"}, 6, 5)), "\n")
	want := []string{"......", "......", "..XX..", "......", "......"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("centered (-want +got):\n%s", diff)
	}
}

func TestMessageBox(t *testing.T) {
	renderer := NewRenderer(DefaultTheme, 80, 0)
	body := "This footnote body is long enough that it has to wrap inside the box."
	lines := renderer.MessageBox("Footnote 1", body, false, 40)

	if len(lines) < 5 {
		t.Fatalf("box has %d lines, want borders around a title and wrapped body", len(lines))
	}
	width := ansi.StringWidth(lines[0])
	if width > 40 {
		t.Errorf("box is %d cells wide, limit 40", width)
	}
	for index, line := range lines {
		if got := ansi.StringWidth(line); got != width {
			t.Errorf("line %d is %d cells, first is %d", index, got, width)
		}
	}

	text := ansi.Strip(strings.Join(lines, "\n"))
	if !strings.Contains(text, "Footnote 1") {
		t.Errorf("title missing:\n%s", text)
	}
	if !strings.Contains(text, "wrap inside") {
		t.Errorf("body missing:\n%s", text)
	}
	if !strings.HasPrefix(ansi.Strip(lines[0]), "╭") {
		t.Errorf("expected a rounded border, got %q", ansi.Strip(lines[0]))
	}
}

func TestMessageBoxShortMessage(t *testing.T) {
	renderer := NewRenderer(DefaultTheme, 80, 0)
	lines := renderer.MessageBox("", "ok", true, 60)
	// Minimum inner width plus padding and border.
	if got := ansi.StringWidth(lines[0]); got != messageBoxMinWidth+4 {
		t.Errorf("short box is %d cells, want %d", got, messageBoxMinWidth+4)
	}
	if len(lines) != 3 {
		t.Errorf("short box has %d lines, want 3", len(lines))
	}
}
