// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the viewer configuration.
//
// [Load] reads the file named by the MDVIEW_CONFIG environment variable,
// or $XDG_CONFIG_HOME/mdview/config.yaml (~/.config/mdview/config.yaml)
// when that is unset. The default file is optional; a file named by
// MDVIEW_CONFIG or passed to [LoadFile] is not. YAML is the default
// format; files ending in .json or .jsonc are JSON with comments.
//
// After the file, MDVIEW_<FIELD> environment variables override single
// fields (MDVIEW_WIDTH, MDVIEW_ALIGNMENT, MDVIEW_HELP_MENU,
// MDVIEW_FLAVOR, MDVIEW_SEARCH_STYLE, MDVIEW_EDITOR). The editor
// command then has ${VAR} and ${VAR:-default} expanded.
//
// Key exports:
//
//   - [Config] with [Default] values
//   - [Load] and [LoadFile], the two entry points
//   - [Config.Validate], which joins every problem into one error
//   - [Config.ContentWidth] and [Config.ContentX] for layout
package config
