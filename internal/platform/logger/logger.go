package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a structured logger: JSON in shared environments, text when
// developing locally.
func New(level string, development bool) *slog.Logger {
	return NewWithWriter(os.Stdout, level, development)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, level string, development bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if development {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
