// Package cache stores serialized archive indexes between runs.
//
// Keys are container fingerprints: digests over a container's absolute
// path, size and modification time. A container that changes on disk gets
// a new fingerprint, so stale entries are never served; they are simply
// never read again and age out through Prune.
package cache

import (
	"io"

	digest "github.com/opencontainers/go-digest"
)

// Cache stores opaque blobs keyed by digest.
//
// Implementations should handle their own size limits and eviction policies.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns a reader for the cached blob.
	// Returns nil, false if nothing is cached under key.
	// Each call returns a new reader; the caller closes it.
	Get(key digest.Digest) (io.ReadCloser, bool)

	// Put stores the blob read from r under key.
	// The cache reads r to completion. Storing an existing key is a no-op.
	Put(key digest.Digest, r io.Reader) error

	// Delete removes the blob stored under key.
	// Implementations should treat missing entries as a no-op.
	Delete(key digest.Digest) error

	// MaxBytes returns the configured cache size limit (0 = unlimited).
	MaxBytes() int64

	// SizeBytes returns the current cache size in bytes.
	SizeBytes() int64

	// Prune removes cached entries until the cache is at or below targetBytes.
	// Returns the number of bytes freed.
	Prune(targetBytes int64) (int64, error)
}
