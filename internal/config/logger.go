package config

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger builds the JSON logger used by both binaries.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}))
}

func InitLogger(level slog.Level) *slog.Logger {
	l := NewLogger(os.Stdout, level)
	slog.SetDefault(l) // opcional: usar slog.Info(...) direto
	return l
}
