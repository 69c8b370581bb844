package mindnet

import (
	"io"
	"log/slog"
)

// noopLogger returns a logger that discards everything. Components take an
// injected *slog.Logger through Config instead of touching process-wide
// logging state.
func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
