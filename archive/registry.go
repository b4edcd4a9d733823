package archive

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Registry shares opened archives by container path.
//
// Each container is indexed at most once, however many goroutines ask for
// it at the same time; distinct containers index in parallel. Missing and
// unreadable containers are remembered too, so repeated probes stay cheap.
type Registry struct {
	opts []Option
	cfg  config

	mu       sync.Mutex
	archives map[string]*Archive
	closed   bool

	group singleflight.Group
}

// NewRegistry returns an empty registry. The options are applied to every
// archive it opens.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		opts:     opts,
		cfg:      newConfig(opts),
		archives: make(map[string]*Archive),
	}
}

// Open returns the archive for path, indexing the container on first use.
// Missing containers are not an error; see Archive.Err. Open fails only
// when the registry is closed.
func (r *Registry) Open(path string) (*Archive, error) {
	key := normalize(path)
	if a, ok, err := r.cached(key); ok || err != nil {
		return a, err
	}

	v, err, _ := r.group.Do(key, func() (any, error) {
		if a, ok, err := r.cached(key); ok || err != nil {
			return a, err
		}
		a := Open(key, r.opts...)

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			_ = a.Close()
			return nil, ErrClosed
		}
		r.archives[key] = a
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Archive), nil //nolint:forcetypeassert // only *Archive is stored
}

func (r *Registry) cached(key string) (*Archive, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, false, ErrClosed
	}
	a, ok := r.archives[key]
	return a, ok, nil
}

// Lookup returns the archive for path if it has already been opened.
func (r *Registry) Lookup(path string) (*Archive, bool) {
	a, ok, _ := r.cached(normalize(path))
	return a, ok
}

// Len returns the number of containers the registry knows about.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.archives)
}

// Paths returns the normalized container paths, sorted.
func (r *Registry) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.archives))
}

// Prefetch opens paths concurrently, at most limit at a time (no limit if
// limit <= 0). It stops early when ctx is canceled.
func (r *Registry) Prefetch(ctx context.Context, paths []string, limit int) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, p := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			_, err := r.Open(p)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// Close releases every opened container. A failure to close one container
// is logged and does not stop the others from closing; all failures are
// returned joined. Close is idempotent.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	archives := r.archives
	r.archives = make(map[string]*Archive)
	r.mu.Unlock()

	var errs []error
	for path, a := range archives {
		if err := a.Close(); err != nil {
			r.cfg.logger.Warn("failed to close container",
				slog.String("path", path),
				slog.Any("error", err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func normalize(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
