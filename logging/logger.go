// Package logging wraps slog with the fields the generator reports on.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with ffigen-specific helpers.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that writes human-readable text to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// WithHeader adds the header being read to every record.
func (l *Logger) WithHeader(file string) *Logger {
	return &Logger{
		Logger: l.Logger.With("header", file),
	}
}

// LogSkipped reports a declaration left out of the index.
func (l *Logger) LogSkipped(kind, raw string, err error) {
	l.Warn("declaration skipped",
		"kind", kind,
		"name", raw,
		"error", err,
	)
}

// LogDiagnostic forwards a front-end diagnostic.
func (l *Logger) LogDiagnostic(severity, text string) {
	switch severity {
	case "error", "fatal":
		l.Error("clang diagnostic", "severity", severity, "text", text)
	case "warning":
		l.Warn("clang diagnostic", "severity", severity, "text", text)
	default:
		l.Info("clang diagnostic", "severity", severity, "text", text)
	}
}

// LogDeclaration traces one declaration being read.
func (l *Logger) LogDeclaration(kind, raw string) {
	l.Debug("reading declaration",
		"kind", kind,
		"name", raw,
	)
}
