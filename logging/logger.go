package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Level  slog.Level
	Format string // "text" or "json"
	Writer io.Writer
}

// NewLogger builds a structured logger writing to config.Writer, stderr by default.
func NewLogger(config *Config) *slog.Logger {
	if config == nil {
		config = &Config{}
	}
	w := config.Writer
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: config.Level}
	if strings.EqualFold(config.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// ParseLevel maps debug, info, warn and error to a slog level. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}

// G returns the global logger.
func G() *slog.Logger {
	return slog.Default()
}

// Sim returns the global logger scoped to the simulation.
func Sim() *slog.Logger {
	return slog.With("component", "sim")
}
