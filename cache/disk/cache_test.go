package disk

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	digest "github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readBlob(t *testing.T, c *Cache, key digest.Digest) []byte {
	t.Helper()
	rc, ok := c.Get(key)
	require.True(t, ok, "Get(%s)", key)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return data
}

func TestCachePutGet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := New(dir)
	require.NoError(t, err)

	key := digest.FromString("zip:/tmp/a.jar:10:1")
	content := []byte("hello")
	require.NoError(t, c.Put(key, bytes.NewReader(content)))
	assert.Equal(t, content, readBlob(t, c, key))
	assert.Equal(t, int64(len(content)), c.SizeBytes())

	hexHash := key.Encoded()
	path := filepath.Join(dir, "sha256", hexHash[:2], hexHash)
	_, err = os.Stat(path)
	assert.NoError(t, err, "expected cache file at %s", path)

	_, ok := c.Get(digest.FromString("other"))
	assert.False(t, ok)
}

func TestCacheShardDisable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := New(dir, WithShardPrefixLen(0))
	require.NoError(t, err)

	key := digest.FromString("flat")
	require.NoError(t, c.Put(key, strings.NewReader("flat")))

	_, err = os.Stat(filepath.Join(dir, "sha256", key.Encoded()))
	assert.NoError(t, err)
}

func TestNewInvalid(t *testing.T) {
	t.Parallel()

	_, err := New("")
	require.Error(t, err)
	_, err = New(t.TempDir(), WithShardPrefixLen(-1))
	require.Error(t, err)
	_, err = New(t.TempDir(), WithMaxBytes(-1))
	require.Error(t, err)
}

func TestNewCountsExistingBlobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, c.Put(digest.FromString("a"), strings.NewReader("12345")))

	reopened, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, int64(5), reopened.SizeBytes())
}

func TestCacheInvalidKey(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir())
	require.NoError(t, err)

	bad := digest.Digest("sha256:../../etc")
	require.Error(t, c.Put(bad, strings.NewReader("x")))
	_, ok := c.Get(bad)
	assert.False(t, ok)
	assert.Error(t, c.Delete(bad))
}

func TestCacheAlreadyCached(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir())
	require.NoError(t, err)

	key := digest.FromString("twice")
	require.NoError(t, c.Put(key, strings.NewReader("first")))
	require.NoError(t, c.Put(key, strings.NewReader("second")))
	assert.Equal(t, []byte("first"), readBlob(t, c, key))
	assert.Equal(t, int64(5), c.SizeBytes())
}

func TestCacheDelete(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir())
	require.NoError(t, err)

	key := digest.FromString("gone")
	require.NoError(t, c.Put(key, strings.NewReader("abc")))
	require.NoError(t, c.Delete(key))
	_, ok := c.Get(key)
	assert.False(t, ok)
	assert.Zero(t, c.SizeBytes())

	assert.NoError(t, c.Delete(key), "deleting a missing key is a no-op")
}

func TestCachePruneOldestFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c, err := New(dir)
	require.NoError(t, err)

	older := digest.FromString("older")
	newer := digest.FromString("newer")
	require.NoError(t, c.Put(older, strings.NewReader("aaaa")))
	require.NoError(t, c.Put(newer, strings.NewReader("bbbb")))

	past := time.Now().Add(-time.Hour)
	olderPath, err := c.blobPath(older)
	require.NoError(t, err)
	require.NoError(t, os.Chtimes(olderPath, past, past))

	freed, err := c.Prune(4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), freed)
	assert.Equal(t, int64(4), c.SizeBytes())

	_, ok := c.Get(older)
	assert.False(t, ok)
	assert.Equal(t, []byte("bbbb"), readBlob(t, c, newer))
}

func TestCacheMaxBytes(t *testing.T) {
	t.Parallel()

	c, err := New(t.TempDir(), WithMaxBytes(8))
	require.NoError(t, err)
	assert.Equal(t, int64(8), c.MaxBytes())

	big := digest.FromString("big")
	require.NoError(t, c.Put(big, strings.NewReader("123456789")))
	_, ok := c.Get(big)
	assert.False(t, ok, "blobs larger than the limit are not stored")

	first := digest.FromString("first")
	second := digest.FromString("second")
	require.NoError(t, c.Put(first, strings.NewReader("12345")))
	require.NoError(t, c.Put(second, strings.NewReader("12345")))
	assert.LessOrEqual(t, c.SizeBytes(), int64(8))
	assert.Equal(t, []byte("12345"), readBlob(t, c, second))
}

func TestCacheIgnoresInFlightTempFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tmp := filepath.Join(dir, tempPrefix+"partial")
	require.NoError(t, os.WriteFile(tmp, []byte("half a blob"), 0o600))

	c, err := New(dir)
	require.NoError(t, err)
	assert.Zero(t, c.SizeBytes())

	_, err = c.Prune(0)
	require.NoError(t, err)
	_, err = os.Stat(tmp)
	assert.NoError(t, err, "prune must not remove a blob still being written")
}
