package help

import (
	"io"
	"log/slog"
)

func Logger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	h := slog.NewJSONHandler(w, opts)

	return slog.New(h).With(
		slog.String("service", "roulette"),
		slog.String("env", "test"),
	)
}
