// internal/cmdutil/log.go
package cmdutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// DebugEnv forces debug logging when set to any non-empty value.
const DebugEnv = "BWAIDX_DEBUG"

// ParseLevel maps a level name (debug, info, warn, error) to a slog level.
// The empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}

// NewLogger returns a text logger on w. BWAIDX_DEBUG overrides level.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	if os.Getenv(DebugEnv) != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Warnf logs a formatted warning unless quiet is set.
func Warnf(l *slog.Logger, quiet bool, format string, a ...any) {
	if quiet || l == nil {
		return
	}
	l.Warn(fmt.Sprintf(format, a...))
}
