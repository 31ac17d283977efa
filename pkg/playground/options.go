package playground

import (
	"io"
	"log/slog"
)

// Option configures a Session.
type Option func(*config)

type config struct {
	logger       *slog.Logger
	historyLimit int
	allowDupes   bool
}

// WithLogger routes session events to logger. Sessions are silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithHistoryLimit bounds the undo stack. Zero keeps it unbounded.
func WithHistoryLimit(n int) Option {
	return func(cfg *config) {
		cfg.historyLimit = n
	}
}

// WithDuplicateNames disables the unique name check, restoring the lossy
// behaviour where later fields overwrite earlier ones on export.
func WithDuplicateNames(allow bool) Option {
	return func(cfg *config) {
		cfg.allowDupes = allow
	}
}

func defaultConfig() config {
	return config{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
