package archive

import (
	"io"

	digest "github.com/opencontainers/go-digest"

	"github.com/meigma/classpath/internal/sizing"
)

// Entry is a file inside an archive. It holds no open resources; each call
// to Open reads the container afresh.
type Entry struct {
	archive *Archive
	dir     string
	name    string
}

// Name returns the entry's basename.
func (e *Entry) Name() string {
	return e.name
}

// Dir returns the entry's directory prefix ("a/b/", or "" for the root).
func (e *Entry) Dir() string {
	return e.dir
}

// Path returns the full entry name inside the container.
func (e *Entry) Path() string {
	return e.dir + e.name
}

// Container returns the path of the archive holding the entry.
func (e *Entry) Container() string {
	return e.archive.path
}

// Open returns a stream of the entry's uncompressed contents.
func (e *Entry) Open() (io.ReadCloser, error) {
	f, err := e.archive.lookup(e.Path())
	if err != nil {
		return nil, err
	}
	return f.Open()
}

// ReadAll returns the entry's uncompressed contents.
func (e *Entry) ReadAll() ([]byte, error) {
	rc, err := e.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Size returns the uncompressed size recorded in the container.
func (e *Entry) Size() (int64, error) {
	f, err := e.archive.lookup(e.Path())
	if err != nil {
		return 0, err
	}
	return sizing.ToInt64(f.UncompressedSize64, ErrSizeOverflow)
}

// Digest returns the canonical digest of the entry's uncompressed contents.
func (e *Entry) Digest() (digest.Digest, error) {
	rc, err := e.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	d := digest.Canonical.Digester()
	if _, err := io.Copy(d.Hash(), rc); err != nil {
		return "", err
	}
	return d.Digest(), nil
}

// String returns "container(entry)".
func (e *Entry) String() string {
	return e.archive.path + "(" + e.Path() + ")"
}
