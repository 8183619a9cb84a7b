// Package log provides structured logging for the curve build pipeline: a
// thin wrapper over log/slog whose one convenience is per-subsystem child
// loggers (Module), so the spline builder can log without threading a
// logger through every function signature. The evaluator never logs; the
// hot path has no diagnostic output.
package log

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with per-subsystem context.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger carries the builder's one-line summaries and capacity
// warnings: JSON to stderr at Info.
var defaultLogger = New(os.Stderr, slog.LevelInfo)

// New creates a Logger that writes JSON to w at the given level.
func New(w io.Writer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{inner: slog.New(h)}
}

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute
// naming the subsystem (subdivide, spline, ...) the entries come from.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }
