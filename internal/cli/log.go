// Package cli implements the boxflow command-line interface.
//
// The CLI is built with cobra. Every command runs the same pipeline the HTTP
// server uses: decode a box document, lay it out, render artifacts. Status
// output is styled with lipgloss; diagnostics go through charmbracelet/log.
//
// # Commands
//
//   - layout: compute a layout and write the geometry snapshot as JSON
//   - render: render a document to SVG, PNG, PDF, JSON, DOT or a tree diagram
//   - inspect: browse a laid-out tree in the terminal and scroll containers
//   - serve: run the HTTP API
//   - cache: clear the layout cache or print its location
//
// # Configuration
//
// Flags override config.toml ($XDG_CONFIG_HOME/boxflow/config.toml or
// --config), which overrides the compiled defaults.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so HTTP handlers get request-scoped fields.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with the timestamp format used by every command.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it is done. It is not
// safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time rounded to the millisecond, e.g.
// "Rendered 3 artifacts (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger stored in ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
