package logger

import (
	"log/slog"
	"os"
	"strings"
)

// Init installs the default slog handler. format is "json" or "text".
func Init(level string, format string) {
	lvl := parseLevel(level)
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = "json"
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: lvl}
	switch f {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func Info(msg string, args ...any) {
	slog.Default().Info(msg, args...)
}

func Error(msg string, args ...any) {
	slog.Default().Error(msg, args...)
}

func Warn(msg string, args ...any) {
	slog.Default().Warn(msg, args...)
}

func Debug(msg string, args ...any) {
	slog.Default().Debug(msg, args...)
}

func parseLevel(v string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
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
