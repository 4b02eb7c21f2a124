// Package observability provides structured logging and metrics collection.
//
// Logger wraps log/slog with a persistent component field.
// MetricsCollector keeps generation, render and layout statistics in memory.
package observability

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog with persistent component context.
type Logger struct {
	base      *slog.Logger // without the component attribute
	inner     *slog.Logger
	component string
}

// NewLogger creates a JSON logger for a component.
// Output defaults to os.Stderr if w is nil.
func NewLogger(component string, w io.Writer) *Logger {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return NewLoggerWithHandler(component, handler)
}

// NewLoggerWithHandler creates a logger with a custom slog handler.
func NewLoggerWithHandler(component string, h slog.Handler) *Logger {
	return newLogger(slog.New(h), component)
}

func newLogger(base *slog.Logger, component string) *Logger {
	return &Logger{
		base:      base,
		inner:     base.With(slog.String("component", component)),
		component: component,
	}
}

// Nop returns a logger that drops everything.
func Nop() *Logger {
	return NewLogger("nop", io.Discard)
}

// OrNop returns l, or a discarding logger when l is nil.
func OrNop(l *Logger) *Logger {
	if l == nil {
		return Nop()
	}
	return l
}

// With returns a new Logger with an additional persistent field.
func (l *Logger) With(key string, value any) *Logger {
	return newLogger(l.base.With(slog.Any(key, value)), l.component)
}

// Component returns a child logger reporting under another component name.
func (l *Logger) Component(name string) *Logger {
	return newLogger(l.base, name)
}

// Debug logs at DEBUG level.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at INFO level.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at WARN level.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at ERROR level.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// Generation logs the outcome of one prompt-to-document call.
// Prompts are truncated to keep log lines bounded.
func (l *Logger) Generation(prompt, outcome string, durMs int64, args ...any) {
	allArgs := append([]any{
		slog.String("prompt", truncate(prompt, 120)),
		slog.String("outcome", outcome),
		slog.Int64("duration_ms", durMs),
	}, args...)
	if outcome == "ok" {
		l.inner.Info("generation", allArgs...)
		return
	}
	l.inner.Warn("generation", allArgs...)
}

// Render logs a completed render pass.
func (l *Logger) Render(backend string, nodes int, args ...any) {
	allArgs := append([]any{
		slog.String("backend", backend),
		slog.Int("nodes", nodes),
	}, args...)
	l.inner.Debug("render", allArgs...)
}

// Layout logs an overlay operation. applied is false for lookup misses.
func (l *Logger) Layout(op, id string, applied bool, args ...any) {
	allArgs := append([]any{
		slog.String("op", op),
		slog.String("node_id", id),
		slog.Bool("applied", applied),
	}, args...)
	l.inner.Debug("layout", allArgs...)
}

// ComponentName returns the component associated with this logger.
func (l *Logger) ComponentName() string {
	return l.component
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
