package logging

import (
	"log/slog"
	"strings"
)

// ParseLevel maps debug/info/warn/error to a slog level. Anything else is
// treated as info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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
