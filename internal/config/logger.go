package config

import (
	"io"
	"log/slog"
)

// InitLogger installs a text logger writing to w as the slog default.
func InitLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}
