// Package logger provides the structured, context-first logging facade used
// across the scanner: config loading, adapter fan-out, and the tick loop all
// log through this instead of touching slog directly.
package logger

import (
	"context"
	"io"
	"log/slog"
)

// Level mirrors slog.Level under names used throughout the codebase.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoggerInterface is the contract components depend on, so tests can supply
// a fake without pulling in slog.
type LoggerInterface interface {
	Debug(ctx context.Context, msg string, keyvals ...any)
	Info(ctx context.Context, msg string, keyvals ...any)
	Warn(ctx context.Context, msg string, keyvals ...any)
	Error(ctx context.Context, msg string, keyvals ...any)
	With(keyvals ...any) LoggerInterface
}

// Logger is the slog-backed implementation.
type Logger struct {
	inner *slog.Logger
}

var _ LoggerInterface = (*Logger)(nil)

// New builds a Logger writing JSON lines to w at the given level. name tags
// every record with a "component" attribute. extra carries additional base
// attributes attached to every record (nil is fine).
func New(w io.Writer, level Level, name string, extra []slog.Attr) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level.slogLevel()})
	base := slog.New(handler).With(slog.String("component", name))
	if len(extra) > 0 {
		args := make([]any, 0, len(extra))
		for _, a := range extra {
			args = append(args, a)
		}
		base = base.With(args...)
	}
	return &Logger{inner: base}
}

func (l *Logger) Debug(ctx context.Context, msg string, keyvals ...any) {
	l.inner.DebugContext(ctx, msg, keyvals...)
}

func (l *Logger) Info(ctx context.Context, msg string, keyvals ...any) {
	l.inner.InfoContext(ctx, msg, keyvals...)
}

func (l *Logger) Warn(ctx context.Context, msg string, keyvals ...any) {
	l.inner.WarnContext(ctx, msg, keyvals...)
}

func (l *Logger) Error(ctx context.Context, msg string, keyvals ...any) {
	l.inner.ErrorContext(ctx, msg, keyvals...)
}

// With returns a logger that prepends keyvals to every subsequent record,
// used to tag a venue or a tick number onto a family of log lines.
func (l *Logger) With(keyvals ...any) LoggerInterface {
	return &Logger{inner: l.inner.With(keyvals...)}
}
