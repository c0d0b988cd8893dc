package main

import (
	"log/slog"
	"os"
	"strings"
)

// InitLogger installs the default logger. LOG_FORMAT selects json (default) or
// text output, LOG_LEVEL one of debug, info, warn, error.
func InitLogger() {
	slog.SetDefault(slog.New(newLogHandler(os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL"))))
}

func newLogHandler(format, level string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "text") {
		return slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.NewJSONHandler(os.Stdout, opts)
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
