// Package logging defines the structured-logging interface used across
// notekeeper and its slog and zap implementations.
package logging

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Warn(ctx, "dropping malformed index entry", "position", i)
type Logger interface {
	// Debug logs diagnostic detail.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatZap  = "zap"
)

// New builds a Logger writing to w in the given format. The zap format
// writes JSON through a zap core at info level.
func New(format string, w io.Writer) (Logger, error) {
	switch format {
	case "", FormatText:
		return newSlogWriter(w, false), nil
	case FormatJSON:
		return newSlogWriter(w, true), nil
	case FormatZap:
		return NewZapLogger(newZapCore(w)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return NewZapLogger(zap.NewNop())
}
