// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/mdview/lib/parse"
	"github.com/bureau-foundation/mdview/lib/search"
)

// Alignment places the content column inside a wider terminal.
type Alignment string

const (
	Left   Alignment = "left"
	Center Alignment = "center"
	Right  Alignment = "right"
)

// minimumMargin is the left margin of the content column, whatever the
// alignment.
const minimumMargin = 2

// EnvironmentPrefix prefixes the variables that override file values,
// as in MDVIEW_WIDTH=80.
const EnvironmentPrefix = "MDVIEW_"

// Config is the viewer configuration.
type Config struct {
	// Width is the widest the content column gets. 0 uses the full
	// terminal width.
	Width int `yaml:"width" json:"width"`

	// Alignment is left, center or right.
	Alignment Alignment `yaml:"alignment" json:"alignment"`

	// HelpMenu shows the key help line under the document.
	HelpMenu bool `yaml:"help_menu" json:"help_menu"`

	// Flavor selects soft line break handling: commonmark or claude.
	Flavor string `yaml:"flavor" json:"flavor"`

	// SearchStyle is word, flex or fuzz.
	SearchStyle string `yaml:"search_style" json:"search_style"`

	// Editor is the command the edit key runs on the open file.
	// ${VAR} and ${VAR:-default} are expanded.
	Editor string `yaml:"editor" json:"editor"`

	// Keys replaces the keys of viewer actions, by action name.
	Keys map[string][]string `yaml:"keys" json:"keys"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Width:       100,
		Alignment:   Left,
		HelpMenu:    true,
		Flavor:      parse.CommonMark.String(),
		SearchStyle: search.Flex.String(),
		Editor:      "${VISUAL:-${EDITOR:-vi}}",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/mdview/config.yaml, falling back
// to ~/.config when XDG_CONFIG_HOME is unset.
func DefaultPath() (string, error) {
	directory := os.Getenv("XDG_CONFIG_HOME")
	if directory == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("locating configuration directory: %w", err)
		}
		directory = filepath.Join(home, ".config")
	}
	return filepath.Join(directory, "mdview", "config.yaml"), nil
}

// Load reads the file named by MDVIEW_CONFIG, or the default path when
// that is unset. A missing default file is not an error: the defaults
// apply. A missing MDVIEW_CONFIG file is.
func Load() (*Config, error) {
	if path := os.Getenv("MDVIEW_CONFIG"); path != "" {
		return LoadFile(path)
	}

	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
		if err := cfg.finish(os.LookupEnv); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads one configuration file over the defaults, then applies
// environment overrides. Files ending in .json or .jsonc are JSON with
// comments and trailing commas allowed; anything else is YAML.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.finish(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	if err := c.decode(data, filepath.Ext(path)); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// decode merges data into the configuration. Fields the data does not
// mention keep their current value.
func (c *Config) decode(data []byte, extension string) error {
	switch strings.ToLower(extension) {
	case ".json", ".jsonc":
		return json.Unmarshal(jsonc.ToJSON(data), c)
	default:
		return yaml.Unmarshal(data, c)
	}
}

// finish applies the environment and expands variables.
func (c *Config) finish(lookup func(string) (string, bool)) error {
	if err := c.applyEnvironment(lookup); err != nil {
		return err
	}
	c.Editor = expandVars(c.Editor, lookup)
	return nil
}

// applyEnvironment overrides fields from MDVIEW_<FIELD> variables. Every
// malformed value is reported.
func (c *Config) applyEnvironment(lookup func(string) (string, bool)) error {
	var errs []error

	if value, ok := lookup(EnvironmentPrefix + "WIDTH"); ok {
		width, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sWIDTH: %w", EnvironmentPrefix, err))
		} else {
			c.Width = width
		}
	}
	if value, ok := lookup(EnvironmentPrefix + "ALIGNMENT"); ok {
		c.Alignment = Alignment(strings.ToLower(strings.TrimSpace(value)))
	}
	if value, ok := lookup(EnvironmentPrefix + "HELP_MENU"); ok {
		helpMenu, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sHELP_MENU: %w", EnvironmentPrefix, err))
		} else {
			c.HelpMenu = helpMenu
		}
	}
	if value, ok := lookup(EnvironmentPrefix + "FLAVOR"); ok {
		c.Flavor = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvironmentPrefix + "SEARCH_STYLE"); ok {
		c.SearchStyle = strings.TrimSpace(value)
	}
	if value, ok := lookup(EnvironmentPrefix + "EDITOR"); ok {
		c.Editor = value
	}

	return errors.Join(errs...)
}

// varPattern matches ${VAR} and ${VAR:-default}. Defaults may nest one
// more ${...}.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^${}]|\$\{[^}]*\})*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns, using the
// default when the variable is unset or empty.
func expandVars(s string, lookup func(string) (string, bool)) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value, ok := lookup(parts[1]); ok && value != "" {
			return value
		}
		return expandVars(parts[2], lookup)
	})
}

// MarkdownFlavor returns the configured parser flavor.
func (c *Config) MarkdownFlavor() (parse.Flavor, error) {
	return parse.ParseFlavor(c.Flavor)
}

// Search returns the configured search style.
func (c *Config) Search() (search.Style, error) {
	return search.ParseStyle(c.SearchStyle)
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Width < 0 {
		errs = append(errs, fmt.Errorf("width must not be negative, got %d", c.Width))
	}
	switch c.Alignment {
	case Left, Center, Right:
	default:
		errs = append(errs, fmt.Errorf("alignment must be one of left, center, right; got %q", c.Alignment))
	}
	if _, err := c.MarkdownFlavor(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Search(); err != nil {
		errs = append(errs, err)
	}
	for action, keys := range c.Keys {
		if len(keys) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s: no keys given", action))
		}
	}

	return errors.Join(errs...)
}

// ContentWidth returns the width of the content column in a terminal
// terminalWidth cells wide.
func (c *Config) ContentWidth(terminalWidth int) int {
	if c.Width <= 0 {
		return terminalWidth
	}
	return min(terminalWidth, c.Width)
}

// ContentX returns the left margin of the content column. Left
// alignment always starts at column two; center and right never go
// below it.
func (c *Config) ContentX(terminalWidth int) int {
	if c.Width <= 0 {
		return minimumMargin
	}
	switch c.Alignment {
	case Center:
		return max(terminalWidth/2-c.Width/2, minimumMargin)
	case Right:
		return max(terminalWidth-(c.Width+2), minimumMargin)
	default:
		return minimumMargin
	}
}
