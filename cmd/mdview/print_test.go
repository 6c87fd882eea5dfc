// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/term"

	"github.com/bureau-foundation/mdview/lib/config"
	"github.com/bureau-foundation/mdview/lib/highlight"
)

func writeMarkdown(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write markdown: %v", err)
	}
	return path
}

func TestPrintDocumentPlain(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 20
	path := writeMarkdown(t, "# Title\n\nOne two three four five six seven eight.\n")

	var output bytes.Buffer
	err := printDocument(&output, path, printOptions{Config: cfg})
	if err != nil {
		t.Fatalf("printDocument failed: %v", err)
	}

	text := output.String()
	if text != ansi.Strip(text) {
		t.Error("plain output carries escape sequences")
	}
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if lines[0] != "Title" {
		t.Errorf("first line = %q, want Title", lines[0])
	}
	for index, line := range lines {
		if width := ansi.StringWidth(line); width > 20 {
			t.Errorf("line %d is %d cells wide: %q", index, width, line)
		}
	}
	if !strings.Contains(text, "eight.") {
		t.Errorf("paragraph missing:\n%s", text)
	}
}

func TestPrintDocumentColorAndMargin(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 40
	cfg.Alignment = config.Center
	path := writeMarkdown(t, "```go\nfunc main() {}\n```\n")

	var output bytes.Buffer
	err := printDocument(&output, path, printOptions{
		Config:        cfg,
		Highlighter:   highlight.NewChroma(),
		TerminalWidth: 100,
		Color:         true,
	})
	if err != nil {
		t.Fatalf("printDocument failed: %v", err)
	}
	text := output.String()
	if text == ansi.Strip(text) {
		t.Error("colored output has no escape sequences")
	}
	first := strings.Split(ansi.Strip(text), "\n")[0]
	if !strings.HasPrefix(first, strings.Repeat(" ", cfg.ContentX(100))) {
		t.Errorf("centered output not indented by %d: %q", cfg.ContentX(100), first)
	}
}

func TestPrintDocumentFullWidthWithoutTerminal(t *testing.T) {
	cfg := config.Default()
	cfg.Width = 0
	path := writeMarkdown(t, strings.Repeat("word ", 60)+"\n")

	var output bytes.Buffer
	if err := printDocument(&output, path, printOptions{Config: cfg}); err != nil {
		t.Fatalf("printDocument failed: %v", err)
	}
	for _, line := range strings.Split(output.String(), "\n") {
		if ansi.StringWidth(line) > defaultPrintWidth {
			t.Errorf("line wider than %d: %q", defaultPrintWidth, line)
		}
	}
}

func TestPrintDocumentMissingFile(t *testing.T) {
	var output bytes.Buffer
	err := printDocument(&output, filepath.Join(t.TempDir(), "nope.md"), printOptions{Config: config.Default()})
	if err == nil || !strings.Contains(err.Error(), "reading markdown file") {
		t.Errorf("got %v", err)
	}
}

func TestRunUsageErrors(t *testing.T) {
	tests := []struct {
		args     []string
		fragment string
	}{
		{nil, "no markdown file"},
		{[]string{"a.md", "b.md"}, "unexpected argument: b.md"},
		{[]string{"--bogus"}, "unknown flag"},
	}
	for _, test := range tests {
		err := run(test.args)
		if err == nil || !strings.Contains(err.Error(), test.fragment) {
			t.Errorf("run(%q) = %v, want %q", test.args, err, test.fragment)
			continue
		}
		var usage *usageError
		if !errors.As(err, &usage) || usage.ExitCode() != 2 {
			t.Errorf("run(%q) error %T is not a usage error", test.args, err)
		}
	}
}

func TestRunPrintsWhenNotATerminal(t *testing.T) {
	t.Setenv("MDVIEW_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal; run would start the interactive viewer")
	}
	path := writeMarkdown(t, "# Piped\n")

	if err := run([]string{"--width", "30", path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestRunRejectsInvalidConfiguration(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("alignment: diagonal\n"), 0644); err != nil {
		t.Fatal(err)
	}
	err := run([]string{"--config", configPath, writeMarkdown(t, "text\n")})
	if err == nil || !strings.Contains(err.Error(), "alignment") {
		t.Errorf("got %v, want alignment error", err)
	}
}
