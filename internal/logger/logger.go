// Package logger builds the process-wide zerolog logger and carries it
// through contexts.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a logger writing to stderr. format is "console" for
// human-readable output or "json" for one JSON object per line.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("parse log level: %w", err)
	}

	var w io.Writer

	switch format {
	case "console", "":
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	case "json":
		w = os.Stderr
	default:
		return zerolog.Nop(), fmt.Errorf("unknown log format %q", format)
	}

	return NewWithWriter(w).Level(lvl), nil
}

// NewWithWriter creates a logger with a custom writer
func NewWithWriter(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// WithContext attaches the logger to ctx; retrieve it with zerolog.Ctx.
func WithContext(ctx context.Context, l zerolog.Logger) context.Context {
	return l.WithContext(ctx)
}
