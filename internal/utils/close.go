package utils

import (
	"io"
	"log/slog"
)

// Close closes c, discarding the error. For deferred cleanup of
// response bodies and similar where the error carries no signal.
func Close(c io.Closer) {
	_ = c.Close()
}

// MustClose closes c and logs a close failure instead of dropping it.
func MustClose(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close", "error", err)
	}
}
