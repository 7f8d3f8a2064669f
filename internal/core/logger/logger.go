// Package logger provides structured logging for strex.
// The browser, session and search layers log through the Logger interface;
// where the records go is decided once, by the command that builds it.
package logger

import (
	"context"
	"log/slog"
	"os"
)

// Logger is the interface for structured logging in strex
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a Logger that adds args to every record
	With(args ...any) Logger
}

// structured implements Logger on top of a slog handler
type structured struct {
	sl *slog.Logger
}

// New creates a Logger. Without options it writes warnings and errors to
// stderr as text.
func New(opts ...Option) Logger {
	cfg := &config{
		level:  slog.LevelWarn,
		output: os.Stderr,
		format: FormatText,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &structured{sl: slog.New(cfg.handler())}
}

// Nop returns a Logger that discards everything
func Nop() Logger {
	return &structured{sl: slog.New(slog.DiscardHandler)}
}

func (l *structured) Debug(msg string, args ...any) { l.sl.Debug(msg, args...) }
func (l *structured) Info(msg string, args ...any) { l.sl.Info(msg, args...) }
func (l *structured) Warn(msg string, args ...any) { l.sl.Warn(msg, args...) }
func (l *structured) Error(msg string, args ...any) { l.sl.Error(msg, args...) }

func (l *structured) With(args ...any) Logger {
	return &structured{sl: l.sl.With(args...)}
}

type contextKey struct{}

// WithContext returns a copy of ctx carrying l
func WithContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// FromContext returns the Logger carried by ctx, or Nop when there is none
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(contextKey{}).(Logger); ok {
		return l
	}
	return Nop()
}
