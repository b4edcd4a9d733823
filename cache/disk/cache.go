// Package disk stores cache blobs as files in a local directory.
package disk

import (
	_ "crypto/sha256" // digest.Canonical
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	digest "github.com/opencontainers/go-digest"

	"github.com/meigma/classpath/cache"
)

var _ cache.Cache = (*Cache)(nil)

// Cache implements cache.Cache on the local filesystem.
//
// A blob for key "sha256:abcd..." lives at <dir>/sha256/ab/abcd...; the
// shard directory is the first shardPrefixLen hex characters. Blobs become
// visible only once fully written. The cache is safe for concurrent use,
// including by several processes sharing dir.
type Cache struct {
	dir            string
	shardPrefixLen int
	dirPerm        os.FileMode
	maxBytes       int64 // 0 = unlimited

	bytes   atomic.Int64
	pruneMu sync.Mutex
}

// Option configures a disk cache.
type Option func(*Cache)

// WithShardPrefixLen sets how many hex characters of a key name its shard
// directory. 0 stores every blob of an algorithm in one directory.
// Defaults to 2.
func WithShardPrefixLen(n int) Option {
	return func(c *Cache) { c.shardPrefixLen = n }
}

// WithDirPerm sets the mode of directories the cache creates.
// Defaults to 0700.
func WithDirPerm(mode os.FileMode) Option {
	return func(c *Cache) { c.dirPerm = mode }
}

// WithMaxBytes caps the total size of stored blobs. Older blobs are pruned
// to make room; a blob larger than the cap is not stored at all.
// 0 disables the cap.
func WithMaxBytes(n int64) Option {
	return func(c *Cache) { c.maxBytes = n }
}

// New opens the cache rooted at dir, creating dir if needed. Blobs left by
// earlier runs count towards the size cap.
func New(dir string, opts ...Option) (*Cache, error) {
	c := &Cache{dir: dir, shardPrefixLen: 2, dirPerm: 0o700}
	for _, opt := range opts {
		opt(c)
	}
	switch {
	case c.dir == "":
		return nil, errors.New("disk: cache dir is empty")
	case c.shardPrefixLen < 0:
		return nil, fmt.Errorf("disk: shard prefix length %d is negative", c.shardPrefixLen)
	case c.maxBytes < 0:
		return nil, fmt.Errorf("disk: max bytes %d is negative", c.maxBytes)
	}

	if err := os.MkdirAll(dir, c.dirPerm); err != nil {
		return nil, err
	}
	size, err := dirSize(dir)
	if err != nil {
		return nil, fmt.Errorf("disk: scan %s: %w", dir, err)
	}
	c.bytes.Store(size)
	return c, nil
}

// Get opens the blob stored under key.
func (c *Cache) Get(key digest.Digest) (io.ReadCloser, bool) {
	path, err := c.blobPath(key)
	if err != nil {
		return nil, false
	}
	f, err := os.Open(path) //nolint:gosec // path is built from a validated digest
	if err != nil {
		return nil, false
	}
	return f, true
}

// Put stores the contents of r under key. A key that is already stored is
// left untouched, and r is not read.
func (c *Cache) Put(key digest.Digest, r io.Reader) error {
	path, err := c.blobPath(key)
	if err != nil {
		return err
	}
	if exists(path) {
		return nil
	}

	tmpPath, size, err := c.spool(filepath.Dir(path), r)
	if err != nil {
		return err
	}
	if err := c.commit(tmpPath, path, size); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// spool copies r into a temp file next to its final location.
func (c *Cache) spool(dir string, r io.Reader) (string, int64, error) {
	if err := os.MkdirAll(dir, c.dirPerm); err != nil {
		return "", 0, err
	}
	tmp, err := os.CreateTemp(dir, tempPrefix+"*")
	if err != nil {
		return "", 0, err
	}
	n, copyErr := io.Copy(tmp, r)
	closeErr := tmp.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		_ = os.Remove(tmp.Name())
		return "", 0, err
	}
	return tmp.Name(), n, nil
}

// commit renames a spooled blob into place if the size cap allows it.
// On a nil return tmpPath no longer exists.
func (c *Cache) commit(tmpPath, path string, size int64) error {
	fits, err := c.makeRoom(size)
	if err != nil {
		return err
	}
	if !fits {
		return os.Remove(tmpPath)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		if exists(path) {
			// Another writer stored the same key first.
			return os.Remove(tmpPath)
		}
		return err
	}
	c.bytes.Add(size)
	return nil
}

// makeRoom reports whether size more bytes fit under the cap, pruning old
// blobs if that is what it takes.
func (c *Cache) makeRoom(size int64) (bool, error) {
	switch {
	case c.maxBytes == 0:
		return true, nil
	case size > c.maxBytes:
		return false, nil
	case c.bytes.Load()+size <= c.maxBytes:
		return true, nil
	}
	if _, err := c.Prune(c.maxBytes - size); err != nil {
		return false, err
	}
	return c.bytes.Load()+size <= c.maxBytes, nil
}

// Delete removes the blob stored under key. Deleting a missing blob is
// not an error.
func (c *Cache) Delete(key digest.Digest) error {
	path, err := c.blobPath(key)
	if err != nil {
		return err
	}
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	c.bytes.Add(-info.Size())
	return nil
}

// MaxBytes returns the size cap, or 0 if there is none.
func (c *Cache) MaxBytes() int64 {
	return c.maxBytes
}

// SizeBytes returns the total size of stored blobs.
func (c *Cache) SizeBytes() int64 {
	return c.bytes.Load()
}

// Prune deletes the least recently written blobs until at most targetBytes
// remain, and returns how many bytes it freed.
func (c *Cache) Prune(targetBytes int64) (int64, error) {
	c.pruneMu.Lock()
	defer c.pruneMu.Unlock()

	freed, remaining, err := pruneDir(c.dir, targetBytes)
	if err != nil {
		return freed, err
	}
	c.bytes.Store(remaining)
	return freed, nil
}

func (c *Cache) blobPath(key digest.Digest) (string, error) {
	if err := key.Validate(); err != nil {
		return "", fmt.Errorf("disk: invalid key %q: %w", key, err)
	}
	hex := key.Encoded()
	dir := filepath.Join(c.dir, key.Algorithm().String())
	if n := min(c.shardPrefixLen, len(hex)); n > 0 {
		dir = filepath.Join(dir, hex[:n])
	}
	return filepath.Join(dir, hex), nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
