// Package logging builds the leveled slog loggers used by the store and the
// services. The CLI keeps printing user facing output itself.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultLevel is used when no log_level is configured.
const DefaultLevel = "warn"

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelWarn, fmt.Errorf("logging: unknown level %q", s)
}

// New returns a text logger writing to w. Unknown levels fall back to warn.
func New(w io.Writer, level string, component string) *slog.Logger {
	lvl, _ := ParseLevel(level)
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	l := slog.New(h)
	if component != "" {
		l = l.With("component", component)
	}
	return l
}

// Stderr returns a logger writing to os.Stderr.
func Stderr(level string, component string) *slog.Logger {
	return New(os.Stderr, level, component)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
