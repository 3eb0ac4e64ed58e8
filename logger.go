package bamboosdk

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output. Connect uses it when
// no logger is configured; it is exported for callers who want to silence a
// component explicitly.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
