package main

import (
	"io"
	"log/slog"
)

// newLogger returns a text logger on w, or one that discards everything
// when the level is off.
func newLogger(w io.Writer, lvl logLevelFlag) *slog.Logger {
	if lvl.level >= levelOff {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl.level}))
}
