// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"bytes"
	"io"
	"sync"
	"sync/atomic"

	digest "github.com/opencontainers/go-digest"
)

// MockCache implements cache.Cache in memory and counts hits and stores.
type MockCache struct {
	mu   sync.RWMutex
	data map[digest.Digest][]byte

	Gets atomic.Int64 // successful Get calls
	Puts atomic.Int64 // Put calls that stored a new blob
}

// NewMockCache constructs an empty in-memory cache.
func NewMockCache() *MockCache {
	return &MockCache{data: make(map[digest.Digest][]byte)}
}

// Get returns a reader over the blob stored under key.
func (c *MockCache) Get(key digest.Digest) (io.ReadCloser, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.data[key]
	if !ok {
		return nil, false
	}
	c.Gets.Add(1)
	return io.NopCloser(bytes.NewReader(data)), true
}

// Put stores the contents of r under key.
func (c *MockCache) Put(key digest.Digest, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.data[key]; ok {
		return nil
	}
	c.data[key] = data
	c.Puts.Add(1)
	return nil
}

// Set overwrites the blob stored under key, for corrupting entries in tests.
func (c *MockCache) Set(key digest.Digest, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Keys returns the keys currently stored.
func (c *MockCache) Keys() []digest.Digest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]digest.Digest, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys
}

// Delete removes the blob stored under key.
func (c *MockCache) Delete(key digest.Digest) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// MaxBytes reports no limit.
func (c *MockCache) MaxBytes() int64 { return 0 }

// SizeBytes returns the total size of stored blobs.
func (c *MockCache) SizeBytes() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, v := range c.data {
		n += int64(len(v))
	}
	return n
}

// Prune drops every blob when the cache is above targetBytes.
func (c *MockCache) Prune(targetBytes int64) (int64, error) {
	size := c.SizeBytes()
	if size <= targetBytes {
		return 0, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.data)
	return size, nil
}
