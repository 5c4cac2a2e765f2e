// Package logging builds the service's slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel converts textual levels into slog levels, defaulting to info.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// New builds a logger writing to w (stdout when nil) in json or text format.
func New(w io.Writer, level, format string) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	var h slog.Handler = slog.NewTextHandler(w, opts)
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With(slog.String("service", "wild-oasis"))
}
