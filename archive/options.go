package archive

import (
	"log/slog"

	"github.com/meigma/classpath/cache"
)

// Option configures Open and NewRegistry.
type Option func(*config)

type config struct {
	logger *slog.Logger
	cache  cache.Cache
}

func newConfig(opts []Option) config {
	c := config{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithLogger sets the logger used for cache and container diagnostics.
// A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		c.logger = logger
	}
}

// WithCache stores built indexes in c and reuses them on later opens of
// an unchanged container.
func WithCache(c cache.Cache) Option {
	return func(cfg *config) {
		cfg.cache = c
	}
}
