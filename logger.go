// Copyright 2023 Tobias Klausmann
// Licensed under the GPLv3, see COPYING for details
//

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Logger defines the interface for logging
type Logger interface {
	Log(format string, args ...interface{})
}

// NoopLogger implements a no-op logger
type NoopLogger struct{}

func (l *NoopLogger) Log(format string, args ...interface{}) {}

type stderrLogger struct {
	w io.Writer
}

func newStderrLogger(w io.Writer) Logger {
	return &stderrLogger{w: w}
}

func (l *stderrLogger) Log(format string, args ...interface{}) {
	fmt.Fprintln(l.w, dimStyle.Render(fmt.Sprintf(format, args...)))
}
