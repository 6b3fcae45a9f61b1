// Package logging provides the slog-backed implementation of
// [types.Logger] used by the Lambda entry point and the operator CLI.
// Output is JSON on stdout, which CloudWatch ingests line by line.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/michael-genson/usl-alexa-skill/types"
)

type logger struct {
	l *slog.Logger
}

// New creates a logger writing JSON records to stdout at the given level.
// Level is one of "debug", "info", "warn", "error" (case-insensitive);
// unrecognized values fall back to info.
func New(level string) types.Logger {
	var lvl slog.Level

	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})

	return &logger{l: slog.New(handler)}
}

// NewNop returns a logger that discards everything. Intended for tests.
func NewNop() types.Logger {
	return &logger{l: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

//nolint:ireturn // Must return interface to implement types.Logger
func (g *logger) WithField(key string, value any) types.Logger {
	return &logger{l: g.l.With(key, value)}
}

//nolint:ireturn // Must return interface to implement types.Logger
func (g *logger) WithFields(fields map[string]any) types.Logger {
	l := g.l
	for k, v := range fields {
		l = l.With(k, v)
	}

	return &logger{l: l}
}

func (g *logger) Debug(msg string)                  { g.l.Debug(msg) }
func (g *logger) Debugf(format string, args ...any) { g.l.Debug(fmt.Sprintf(format, args...)) }
func (g *logger) Info(msg string)                   { g.l.Info(msg) }
func (g *logger) Infof(format string, args ...any)  { g.l.Info(fmt.Sprintf(format, args...)) }
func (g *logger) Warn(msg string)                   { g.l.Warn(msg) }
func (g *logger) Warnf(format string, args ...any)  { g.l.Warn(fmt.Sprintf(format, args...)) }
func (g *logger) Error(msg string)                  { g.l.Error(msg) }
func (g *logger) Errorf(format string, args ...any) { g.l.Error(fmt.Sprintf(format, args...)) }
