// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/bureau-foundation/mdview/lib/parse"
	"github.com/bureau-foundation/mdview/lib/search"
)

// clearEnvironment unsets every variable the loader reads.
func clearEnvironment(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"MDVIEW_CONFIG", "MDVIEW_WIDTH", "MDVIEW_ALIGNMENT", "MDVIEW_HELP_MENU",
		"MDVIEW_FLAVOR", "MDVIEW_SEARCH_STYLE", "MDVIEW_EDITOR", "VISUAL", "EDITOR",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Width != 100 {
		t.Errorf("expected width=100, got %d", cfg.Width)
	}
	if cfg.Alignment != Left {
		t.Errorf("expected alignment=left, got %s", cfg.Alignment)
	}
	if !cfg.HelpMenu {
		t.Error("expected help_menu=true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default configuration is invalid: %v", err)
	}
	if flavor, _ := cfg.MarkdownFlavor(); flavor != parse.CommonMark {
		t.Errorf("expected commonmark flavor, got %s", flavor)
	}
	if style, _ := cfg.Search(); style != search.Flex {
		t.Errorf("expected flex search, got %s", style)
	}
}

func TestLoadFileYAML(t *testing.T) {
	clearEnvironment(t)
	path := writeFile(t, "config.yaml", `
width: 80
alignment: center
help_menu: false
flavor: claude
search_style: fuzz
keys:
  down: [j, ctrl+n]
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	want := &Config{
		Width:       80,
		Alignment:   Center,
		HelpMenu:    false,
		Flavor:      "claude",
		SearchStyle: "fuzz",
		Editor:      "vi",
		Keys:        map[string][]string{"down": {"j", "ctrl+n"}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestLoadFileKeepsUnsetDefaults(t *testing.T) {
	clearEnvironment(t)
	cfg, err := LoadFile(writeFile(t, "config.yaml", "width: 60\n"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Width != 60 {
		t.Errorf("width = %d, want 60", cfg.Width)
	}
	if !cfg.HelpMenu || cfg.SearchStyle != "flex" || cfg.Alignment != Left {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestLoadFileJSONC(t *testing.T) {
	clearEnvironment(t)
	path := writeFile(t, "config.jsonc", `{
	// Narrow column on the right.
	"width": 72,
	"alignment": "right",
	/* trailing commas are fine */
	"search_style": "word",
}`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Width != 72 || cfg.Alignment != Right || cfg.SearchStyle != "word" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadFileErrors(t *testing.T) {
	clearEnvironment(t)

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("missing file: got %v, want fs.ErrNotExist", err)
	}

	_, err = LoadFile(writeFile(t, "bad.yaml", "width: [1, 2\n"))
	if err == nil || !strings.Contains(err.Error(), "parsing") {
		t.Errorf("malformed YAML: got %v", err)
	}
}

func TestLoadUsesMDViewConfig(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("MDVIEW_CONFIG", writeFile(t, "mine.yaml", "width: 42\n"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 42 {
		t.Errorf("width = %d, want 42", cfg.Width)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("MDVIEW_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("got %v, want fs.ErrNotExist", err)
	}
}

func TestLoadMissingDefaultFileUsesDefaults(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("MDVIEW_WIDTH", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Width != 0 {
		t.Errorf("environment override not applied without a file: width=%d", cfg.Width)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}
	if path != filepath.Join("/xdg", "mdview", "config.yaml") {
		t.Errorf("DefaultPath = %q", path)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/reader")
	path, err = DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath failed: %v", err)
	}
	if path != filepath.Join("/home/reader", ".config", "mdview", "config.yaml") {
		t.Errorf("DefaultPath without XDG_CONFIG_HOME = %q", path)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	clearEnvironment(t)
	t.Setenv("MDVIEW_WIDTH", "64")
	t.Setenv("MDVIEW_ALIGNMENT", "Right")
	t.Setenv("MDVIEW_HELP_MENU", "false")
	t.Setenv("MDVIEW_FLAVOR", "claude")
	t.Setenv("MDVIEW_SEARCH_STYLE", "word")

	cfg, err := LoadFile(writeFile(t, "config.yaml", "width: 80\nhelp_menu: true\n"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Width != 64 || cfg.Alignment != Right || cfg.HelpMenu || cfg.Flavor != "claude" || cfg.SearchStyle != "word" {
		t.Errorf("environment did not override the file: %+v", cfg)
	}
}

func TestEnvironmentOverridesReportEveryError(t *testing.T) {
	environment := map[string]string{
		"MDVIEW_WIDTH":     "wide",
		"MDVIEW_HELP_MENU": "sometimes",
	}
	lookup := func(name string) (string, bool) {
		value, ok := environment[name]
		return value, ok
	}

	err := Default().applyEnvironment(lookup)
	if err == nil {
		t.Fatal("expected an error")
	}
	for _, name := range []string{"MDVIEW_WIDTH", "MDVIEW_HELP_MENU"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not mention %s", err, name)
		}
	}
}

func TestExpandVars(t *testing.T) {
	environment := map[string]string{"EDITOR": "nvim", "EMPTY": ""}
	lookup := func(name string) (string, bool) {
		value, ok := environment[name]
		return value, ok
	}

	tests := []struct {
		input string
		want  string
	}{
		{"${EDITOR}", "nvim"},
		{"${MISSING}", ""},
		{"${MISSING:-vi}", "vi"},
		{"${EMPTY:-nano}", "nano"},
		{"${VISUAL:-${EDITOR:-vi}}", "nvim"},
		{"${VISUAL:-${NOPE:-vi}} -R", "vi -R"},
		{"plain", "plain"},
	}
	for _, test := range tests {
		if got := expandVars(test.input, lookup); got != test.want {
			t.Errorf("expandVars(%q) = %q, want %q", test.input, got, test.want)
		}
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Width = -1
	cfg.Alignment = "diagonal"
	cfg.Flavor = "gfm"
	cfg.SearchStyle = "regex"
	cfg.Keys = map[string][]string{"up": nil}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, fragment := range []string{"width", "alignment", "flavor", "search style", "keys.up"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error does not mention %q:\n%v", fragment, err)
		}
	}
}

func TestContentWidth(t *testing.T) {
	cfg := Default()
	cfg.Width = 80
	if got := cfg.ContentWidth(120); got != 80 {
		t.Errorf("ContentWidth(120) = %d, want 80", got)
	}
	if got := cfg.ContentWidth(50); got != 50 {
		t.Errorf("ContentWidth(50) = %d, want 50", got)
	}
	cfg.Width = 0
	if got := cfg.ContentWidth(137); got != 137 {
		t.Errorf("full-width ContentWidth(137) = %d", got)
	}
}

func TestContentX(t *testing.T) {
	tests := []struct {
		alignment Alignment
		terminal  int
		want      int
	}{
		{Left, 120, 2},
		{Left, 40, 2},
		{Center, 120, 20},
		{Center, 80, 2},
		{Center, 40, 2},
		{Right, 120, 38},
		{Right, 82, 2},
		{Right, 40, 2},
	}
	for _, test := range tests {
		cfg := Default()
		cfg.Width = 80
		cfg.Alignment = test.alignment
		if got := cfg.ContentX(test.terminal); got != test.want {
			t.Errorf("%s ContentX(%d) = %d, want %d", test.alignment, test.terminal, got, test.want)
		}
	}
}
