package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
)

// JarEntry describes one entry of a test archive. Names ending in "/"
// become directory markers.
type JarEntry struct {
	Name string
	Data string
	Zstd bool // compress with zip method 93 instead of deflate
}

// WriteJar writes entries, in order, to a zip archive at path and returns
// path. Parent directories are created.
func WriteJar(tb testing.TB, path string, entries ...JarEntry) string {
	tb.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir: %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create jar: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.Name, Method: zip.Deflate}
		if e.Zstd {
			hdr.Method = zstd.ZipMethodWinZip
		}
		if e.Name != "" && e.Name[len(e.Name)-1] == '/' {
			hdr.Method = zip.Store
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			tb.Fatalf("create entry %q: %v", e.Name, err)
		}
		if _, err := w.Write([]byte(e.Data)); err != nil {
			tb.Fatalf("write entry %q: %v", e.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		tb.Fatalf("close jar: %v", err)
	}
	return path
}

// WriteFile writes data to root/rel, creating parent directories.
func WriteFile(tb testing.TB, root, rel, data string) string {
	tb.Helper()

	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		tb.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		tb.Fatalf("write %s: %v", rel, err)
	}
	return path
}
