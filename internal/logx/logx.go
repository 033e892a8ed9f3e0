// Package logx holds the package-level logger used for Debug-level resync
// tracing (spec §7: unknown type codes, unpack failures, and malformed FMT
// candidates are all recovered locally and never reported — but they are
// still useful to see when diagnosing a noisy log). Importing dataflash is
// silent by default; call SetLogger to opt in.
package logx

import (
	"io"
	"log/slog"
)

var logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// SetLogger replaces the package-level logger. Pass nil to restore the
// default discard-everything logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = l
}

// Get returns the current package-level logger.
func Get() *slog.Logger { return logger }
