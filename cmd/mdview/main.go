// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// mdview is a terminal markdown viewer. It opens one markdown file in
// an interactive pager with link following, search, and a jump
// history, or with --print writes the laid-out document to stdout and
// exits.
//
// Output that is not a terminal always gets the --print treatment,
// with styling removed, so `mdview README.md | less` does what it
// looks like.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/bureau-foundation/mdview/lib/config"
	"github.com/bureau-foundation/mdview/lib/highlight"
	"github.com/bureau-foundation/mdview/lib/version"
	"github.com/bureau-foundation/mdview/lib/viewer"
)

// usageError is a command line mistake. It exits with status 2.
type usageError struct {
	message string
}

func (err *usageError) Error() string { return err.message }
func (err *usageError) ExitCode() int { return 2 }

func usage(format string, args ...any) error {
	return &usageError{message: fmt.Sprintf(format, args...)}
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		var coder interface{ ExitCode() int }
		if errors.As(err, &coder) {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run(args []string) error {
	var configPath string
	var width int
	var printMode bool
	var logOutput string
	var showVersion bool

	flagSet := pflag.NewFlagSet("mdview", pflag.ContinueOnError)
	flagSet.StringVarP(&configPath, "config", "c", "", "configuration file (default: $MDVIEW_CONFIG or ~/.config/mdview/config.yaml)")
	flagSet.IntVarP(&width, "width", "w", 0, "content width in columns, 0 for the full terminal (overrides the configuration)")
	flagSet.BoolVarP(&printMode, "print", "p", false, "write the rendered document to stdout and exit")
	flagSet.StringVar(&logOutput, "log-output", "", "write JSON debug log records to this file")
	flagSet.BoolVar(&showVersion, "version", false, "print version information and exit")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return usage("%v", err)
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		version.Print(os.Stdout, "mdview")
		return nil
	}

	positional := flagSet.Args()
	switch len(positional) {
	case 0:
		return usage("no markdown file given")
	case 1:
	default:
		return usage("unexpected argument: %s", positional[1])
	}
	path := positional[0]

	// The interactive viewer owns the terminal, so its warnings go to
	// the status line; stderr is only safe when printing.
	stdoutTerminal := term.IsTerminal(int(os.Stdout.Fd()))
	interactive := !printMode && stdoutTerminal
	var terminalHandler slog.Handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})
	statusHandler := viewer.NewStatusLogHandler(slog.LevelWarn)
	if interactive {
		terminalHandler = statusHandler
	}
	logger, closeLog, err := newLogger(terminalHandler, logOutput)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if flagSet.Changed("width") {
		cfg.Width = width
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("configuration loaded",
		"width", cfg.Width,
		"alignment", cfg.Alignment,
		"flavor", cfg.Flavor,
		"search_style", cfg.SearchStyle,
	)

	highlighter := highlight.NewChroma()

	if !interactive {
		terminalWidth := 0
		if stdoutTerminal {
			if columns, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				terminalWidth = columns
			}
		}
		return printDocument(os.Stdout, path, printOptions{
			Config:        cfg,
			Highlighter:   highlighter,
			Logger:        logger,
			TerminalWidth: terminalWidth,
			Color:         stdoutTerminal,
		})
	}

	model, err := viewer.NewModel(path, viewer.Options{
		Config:      cfg,
		Highlighter: highlighter,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	program := tea.NewProgram(model, tea.WithAltScreen())
	statusHandler.SetProgram(program)
	_, err = program.Run()
	return err
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `mdview: terminal markdown viewer.

Opens a markdown file in an interactive pager. Links can be selected
and followed (s, then j/k and Enter), searched (/), and retraced (b).
Press ? inside the viewer for every key.

Usage:
  mdview [flags] FILE

Examples:
  # Read a README
  mdview README.md

  # Render to stdout at 72 columns
  mdview --print --width 72 docs/guide.md

Configuration is read from $MDVIEW_CONFIG, or
$XDG_CONFIG_HOME/mdview/config.yaml. MDVIEW_WIDTH, MDVIEW_ALIGNMENT,
MDVIEW_HELP_MENU, MDVIEW_FLAVOR, MDVIEW_SEARCH_STYLE, and
MDVIEW_EDITOR override single settings.

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
