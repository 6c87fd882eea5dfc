// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeMsg carries a log record to the model for display on the
// status line.
type noticeMsg struct {
	Summary string
	Level   slog.Level
}

// noticeFadeMsg clears a notice. seq matches the notice it was
// scheduled for, so a newer notice is not cleared early.
type noticeFadeMsg struct {
	seq int
}

// noticeFadeDelay is how long a notice replaces the help menu.
const noticeFadeDelay = 5 * time.Second

// Sender receives messages for a running program. *tea.Program
// implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// StatusLogHandler is a slog.Handler that shows records on the
// viewer's status line instead of writing to the terminal the viewer
// is drawing on. Records below the level are dropped, as are records
// logged before SetProgram.
//
// Handlers derived with WithAttrs and WithGroup share the program, so
// one SetProgram call reaches all of them.
//
// Handle blocks until the program takes the notice. Code running
// inside the program's Update must log below the handler's level.
type StatusLogHandler struct {
	level   slog.Level
	program *atomic.Pointer[Sender]
	attrs   []slog.Attr
	groups  []string
}

// NewStatusLogHandler creates a handler for records at or above level.
func NewStatusLogHandler(level slog.Level) *StatusLogHandler {
	return &StatusLogHandler{
		level:   level,
		program: &atomic.Pointer[Sender]{},
	}
}

// SetProgram sets the program that receives notices. Safe to call
// from any goroutine.
func (handler *StatusLogHandler) SetProgram(program Sender) {
	handler.program.Store(&program)
}

func (handler *StatusLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= handler.level
}

// Handle sends "message (key=value, ...)" to the program.
func (handler *StatusLogHandler) Handle(_ context.Context, record slog.Record) error {
	program := handler.program.Load()
	if program == nil {
		return nil
	}

	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	var attrParts []string
	for _, attr := range handler.attrs {
		attrParts = append(attrParts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		attrParts = append(attrParts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})

	summary := record.Message
	if len(attrParts) > 0 {
		summary += " (" + strings.Join(attrParts, ", ") + ")"
	}
	(*program).Send(noticeMsg{Summary: summary, Level: record.Level})
	return nil
}

func (handler *StatusLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   append(cloneSlice(handler.attrs), attrs...),
		groups:  cloneSlice(handler.groups),
	}
}

func (handler *StatusLogHandler) WithGroup(name string) slog.Handler {
	return &StatusLogHandler{
		level:   handler.level,
		program: handler.program,
		attrs:   cloneSlice(handler.attrs),
		groups:  append(cloneSlice(handler.groups), name),
	}
}

func cloneSlice[T any](source []T) []T {
	if source == nil {
		return nil
	}
	result := make([]T, len(source))
	copy(result, source)
	return result
}
