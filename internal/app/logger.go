package app

import (
	"io"
	"log/slog"
	"os"
)

// NewLogger returns a configured slog.Logger based on configuration. With no
// log file set, output goes to stderr so it never corrupts the TUI screen.
func NewLogger(cfg *Config) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	cleanup := func() {}

	if cfg != nil && cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		cleanup = func() { _ = f.Close() }
	}

	if cfg != nil && cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, nil)), cleanup, nil
	}
	return slog.New(slog.NewTextHandler(w, nil)), cleanup, nil
}
