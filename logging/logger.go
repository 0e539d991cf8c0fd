// Package logging builds the structured loggers used across the server.
package logging

import (
	"io"
	"log/slog"
	"strings"

	"github.com/stevemurr/todo-server/config"
)

// New creates a logger writing to w with the given level and format
// ("text" or "json").
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// FromConfig creates a logger from the log section of cfg.
func FromConfig(w io.Writer, cfg config.LogConfig) *slog.Logger {
	return New(w, cfg.Level, cfg.Format)
}

// Initialize sets the global default logger.
func Initialize(w io.Writer, cfg config.LogConfig) *slog.Logger {
	logger := FromConfig(w, cfg)
	slog.SetDefault(logger)
	return logger
}

// ParseLevel converts a level name to slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
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

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
