package archive

import (
	"bytes"
	_ "crypto/sha256" // digest.Canonical
	"fmt"
	"io"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	digest "github.com/opencontainers/go-digest"

	"github.com/meigma/classpath/internal/pathutil"
	"github.com/meigma/classpath/internal/sizing"
)

// Archive is the read-only view of one container.
//
// Queries run against the in-memory index and are safe for concurrent use.
// The zip file itself stays open for content reads until Close.
type Archive struct {
	path  string
	index *Index
	err   error
	cfg   config

	mu     sync.Mutex
	zr     *zip.ReadCloser
	closer io.Closer // releases zr
	files  map[string]*zip.File
	closed bool
}

// Open indexes the container at path.
//
// Open does not fail: a container that is missing or unreadable yields an
// archive with an empty index, and Err reports why.
func Open(path string, opts ...Option) *Archive {
	a := &Archive{path: path, index: emptyIndex, cfg: newConfig(opts)}

	info, err := os.Stat(path)
	if err != nil {
		a.fail(fmt.Errorf("%w: %w", ErrMissingContainer, err))
		return a
	}
	if info.IsDir() {
		a.fail(fmt.Errorf("%w: %s: is a directory", ErrUnreadableContainer, path))
		return a
	}

	var key digest.Digest
	if a.cfg.cache != nil {
		key = Fingerprint(path, info)
		if idx, ok := a.loadCached(key); ok {
			a.index = idx
			return a
		}
	}

	zr, err := openZip(path)
	if err != nil {
		a.fail(fmt.Errorf("%w: %s: %w", ErrUnreadableContainer, path, err))
		return a
	}
	a.zr, a.closer = zr, zr
	a.index = NewIndex(entryNames(zr.File))

	if a.cfg.cache != nil {
		a.storeCached(key)
	}
	return a
}

// Fingerprint returns the cache key of a container: a digest over its
// absolute path, size and modification time.
func Fingerprint(path string, info fs.FileInfo) digest.Digest {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return digest.FromString(fmt.Sprintf("zip:%s:%d:%d", path, info.Size(), info.ModTime().UnixNano()))
}

func openZip(path string) (*zip.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	zr.RegisterDecompressor(zstd.ZipMethodWinZip, zstd.ZipDecompressor())
	return zr, nil
}

func entryNames(files []*zip.File) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, f := range files {
			if !yield(f.Name) {
				return
			}
		}
	}
}

func (a *Archive) fail(err error) {
	a.err = err
	a.cfg.logger.Debug("container unavailable",
		slog.String("path", a.path),
		slog.Any("error", err))
}

func (a *Archive) loadCached(key digest.Digest) (*Index, bool) {
	rc, ok := a.cfg.cache.Get(key)
	if !ok {
		a.cfg.logger.Debug("index cache miss", slog.String("path", a.path))
		return nil, false
	}
	defer rc.Close()

	data, err := sizing.ReadLimited(rc, maxIndexBytes, ErrSizeOverflow)
	if err == nil {
		var idx *Index
		if idx, err = UnmarshalIndex(data); err == nil {
			a.cfg.logger.Debug("index cache hit",
				slog.String("path", a.path),
				slog.Int("files", idx.Len()))
			return idx, true
		}
	}
	a.cfg.logger.Debug("discarding cached index",
		slog.String("path", a.path),
		slog.Any("error", err))
	if delErr := a.cfg.cache.Delete(key); delErr != nil {
		a.cfg.logger.Warn("failed to delete cached index",
			slog.String("key", key.String()),
			slog.Any("error", delErr))
	}
	return nil, false
}

func (a *Archive) storeCached(key digest.Digest) {
	data, err := a.index.MarshalBinary()
	if err == nil {
		err = a.cfg.cache.Put(key, bytes.NewReader(data))
	}
	if err != nil {
		a.cfg.logger.Warn("failed to cache index",
			slog.String("path", a.path),
			slog.Any("error", err))
	}
}

// Path returns the container path given to Open.
func (a *Archive) Path() string {
	return a.path
}

// Missing reports whether the container could not be indexed.
func (a *Archive) Missing() bool {
	return a.err != nil
}

// Err returns why the container could not be indexed, or nil. The error
// wraps ErrMissingContainer or ErrUnreadableContainer.
func (a *Archive) Err() error {
	return a.err
}

// Index returns the archive's directory index.
func (a *Archive) Index() *Index {
	return a.index
}

// Contains reports whether the archive holds a file at path.
func (a *Archive) Contains(path string) bool {
	return a.index.Contains(path)
}

// FilesIn returns the basenames stored directly in dir.
// dir may be given with or without its trailing slash.
func (a *Archive) FilesIn(dir string) []string {
	return a.index.FilesIn(pathutil.DirPrefix(dir))
}

// Subdirectories returns every directory prefix that holds a file, sorted.
func (a *Archive) Subdirectories() []string {
	return a.index.Subdirectories()
}

// Len returns the number of files in the archive.
func (a *Archive) Len() int {
	return a.index.Len()
}

// File returns a handle for the file name in directory dir. Its contents
// are not read until the handle is opened. name must be a basename.
func (a *Archive) File(dir, name string) (*Entry, bool) {
	if strings.Contains(name, "/") {
		return nil, false
	}
	dir = pathutil.DirPrefix(dir)
	if !a.index.Contains(dir + name) {
		return nil, false
	}
	return &Entry{archive: a, dir: dir, name: name}, true
}

// Files returns handles for every file stored directly in dir.
func (a *Archive) Files(dir string) []*Entry {
	dir = pathutil.DirPrefix(dir)
	names := a.index.FilesIn(dir)
	entries := make([]*Entry, len(names))
	for i, name := range names {
		entries[i] = &Entry{archive: a, dir: dir, name: name}
	}
	return entries
}

// lookup returns the zip header for name, opening the container first if
// the index came from the cache.
func (a *Archive) lookup(name string) (*zip.File, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil, ErrClosed
	}
	if a.err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if a.zr == nil {
		zr, err := openZip(a.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnreadableContainer, a.path, err)
		}
		a.zr, a.closer = zr, zr
	}
	if a.files == nil {
		a.files = make(map[string]*zip.File, len(a.zr.File))
		for _, f := range a.zr.File {
			if _, dup := a.files[f.Name]; !dup {
				a.files[f.Name] = f
			}
		}
	}
	f, ok := a.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return f, nil
}

// Close releases the container. It is safe to call more than once; index
// queries keep working afterwards but entry contents can no longer be read.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return nil
	}
	a.closed = true
	a.files = nil
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.zr, a.closer = nil, nil
	return err
}
