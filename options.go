package classpath

import (
	"log/slog"

	"github.com/meigma/classpath/cache"
)

// Option configures a FileManager.
type Option func(*FileManager)

// WithLogger sets the logger for the file manager and the archives it
// opens. A nil logger discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(fm *FileManager) {
		if logger == nil {
			logger = slog.New(slog.DiscardHandler)
		}
		fm.logger = logger
	}
}

// WithCaseCheck turns the stored-spelling check of FileForInput on or off.
// It defaults to on for hosts whose filesystems are usually
// case-insensitive (macOS, Windows).
func WithCaseCheck(enabled bool) Option {
	return func(fm *FileManager) {
		fm.caseCheck = enabled
	}
}

// WithIndexCache persists archive indexes in c between runs.
func WithIndexCache(c cache.Cache) Option {
	return func(fm *FileManager) {
		fm.cache = c
	}
}

// WithWarmConcurrency limits how many archives Warm indexes at once.
// Values <= 0 mean GOMAXPROCS.
func WithWarmConcurrency(n int) Option {
	return func(fm *FileManager) {
		fm.warmLimit = n
	}
}
