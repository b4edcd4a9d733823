package classpath

import (
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/meigma/classpath/archive"
)

// FileObject is a file found on the classpath, either inside an archive or
// under an on-disk directory.
type FileObject interface {
	// Name returns the file's basename.
	Name() string
	// Path returns the slash-separated path of the file relative to its
	// container, such as "java/lang/String.class".
	Path() string
	// Container returns the classpath root holding the file: an archive
	// path or a directory.
	Container() string
	// Open returns a stream of the file's contents.
	Open() (io.ReadCloser, error)
}

var (
	_ FileObject = (*archive.Entry)(nil)
	_ FileObject = (*diskFile)(nil)
)

// diskFile is a file under an on-disk classpath directory.
type diskFile struct {
	root string
	rel  string
}

func (f *diskFile) Name() string      { return path.Base(f.rel) }
func (f *diskFile) Path() string      { return f.rel }
func (f *diskFile) Container() string { return f.root }

// FilePath returns the file's location on disk.
func (f *diskFile) FilePath() string {
	return filepath.Join(f.root, filepath.FromSlash(f.rel))
}

func (f *diskFile) Open() (io.ReadCloser, error) {
	return os.Open(f.FilePath())
}

func (f *diskFile) String() string {
	return f.FilePath()
}
