package core

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// logLevel is shared by every logger built with NewLogger.
var logLevel = new(slog.LevelVar)

// SetLogLevel accepts debug, info, warn or error; anything else means info.
func SetLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
	}
}

// NewLogger returns a text logger on w (stderr when nil).
func NewLogger(w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}
