package classpath

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/meigma/classpath/archive"
	"github.com/meigma/classpath/cache"
	"github.com/meigma/classpath/desc"
	"github.com/meigma/classpath/internal/pathutil"
	"github.com/meigma/classpath/internal/platform"
)

// FileManager lists and resolves files across classpath roots. A root is
// either an on-disk directory or a jar/zip archive; which one is decided by
// a stat, never by trying to open the root as an archive.
//
// A FileManager is safe for concurrent use. Close releases every archive
// it opened.
type FileManager struct {
	logger    *slog.Logger
	cache     cache.Cache
	caseCheck bool
	warmLimit int

	archives *archive.Registry
}

// New creates a FileManager.
func New(opts ...Option) *FileManager {
	fm := &FileManager{
		logger:    slog.New(slog.DiscardHandler),
		caseCheck: platform.CaseInsensitive,
	}
	for _, opt := range opts {
		opt(fm)
	}
	archiveOpts := []archive.Option{archive.WithLogger(fm.logger)}
	if fm.cache != nil {
		archiveOpts = append(archiveOpts, archive.WithCache(fm.cache))
	}
	fm.archives = archive.NewRegistry(archiveOpts...)
	return fm
}

// List returns the files of the given kinds in directory subdir of root.
// subdir is slash-separated and relative to root; "" is the root itself.
// With recurse set, files in nested directories are included as well.
//
// A root that does not exist lists as empty. When walking an on-disk
// directory, recursion only enters subdirectories whose names are valid
// Java identifiers.
func (fm *FileManager) List(ctx context.Context, root, subdir string, kinds KindSet, recurse bool) ([]FileObject, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fm.logger.Debug("skipping missing classpath root", slog.String("root", root))
			return nil, nil
		}
		return nil, err
	}

	subdir = pathutil.DirPrefix(cleanRel(subdir))
	if info.Mode().IsRegular() {
		return fm.listArchive(ctx, root, subdir, kinds, recurse)
	}
	if !info.IsDir() {
		return nil, nil
	}
	var out []FileObject
	if err := fm.listDir(ctx, root, subdir, kinds, recurse, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (fm *FileManager) listArchive(ctx context.Context, root, dir string, kinds KindSet, recurse bool) ([]FileObject, error) {
	a, err := fm.archives.Open(root)
	if err != nil {
		return nil, err
	}
	dirs := []string{dir}
	if recurse {
		dirs = a.Index().Under(dir)
	}

	var out []FileObject
	for _, d := range dirs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, e := range a.Files(d) {
			if kinds.Has(KindOf(e.Name())) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// listDir appends the matching files of root/dir to out in directory
// order, descending into subdirectories in place.
func (fm *FileManager) listDir(ctx context.Context, root, dir string, kinds KindSet, recurse bool, out *[]FileObject) error {
	entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(dir)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := e.Name()
		rel := dir + name

		isDir := e.IsDir()
		if e.Type()&fs.ModeSymlink != 0 {
			target, statErr := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
			if statErr != nil {
				continue
			}
			isDir = target.IsDir()
		}
		if isDir {
			if recurse && isIdentifier(name) {
				if err := fm.listDir(ctx, root, rel+"/", kinds, recurse, out); err != nil {
					return err
				}
			}
			continue
		}
		if kinds.Has(KindOf(name)) {
			*out = append(*out, &diskFile{root: root, rel: rel})
		}
	}
	return nil
}

// cleanRel normalizes a slash-separated path relative to a root so that
// ".." segments cannot climb above it.
func cleanRel(rel string) string {
	return path.Clean("/" + rel)[1:]
}

// FileForInput returns the file at the slash-separated path rel under
// root. A miss is reported as a *fs.PathError wrapping fs.ErrNotExist.
//
// For directory roots with the case check enabled, a file whose stored
// name differs from rel only in case is treated as missing.
func (fm *FileManager) FileForInput(root, rel string) (FileObject, error) {
	rel = cleanRel(rel)
	notFound := &fs.PathError{Op: "lookup", Path: rel, Err: fs.ErrNotExist}
	if rel == "" {
		return nil, notFound
	}

	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound
		}
		return nil, err
	}

	if info.Mode().IsRegular() {
		a, err := fm.archives.Open(root)
		if err != nil {
			return nil, err
		}
		dir, base := pathutil.SplitEntry(rel)
		e, ok := a.File(dir, base)
		if !ok {
			return nil, notFound
		}
		return e, nil
	}

	f := &diskFile{root: root, rel: rel}
	fi, err := os.Stat(f.FilePath())
	if err != nil || !fi.Mode().IsRegular() {
		return nil, notFound
	}
	if fm.caseCheck {
		stored, err := platform.RealPath(root, rel)
		if err != nil || !caseMapCheck(stored, filepath.Separator, rel) {
			fm.logger.Debug("rejecting case-insensitive match",
				slog.String("root", root),
				slog.String("path", rel),
				slog.String("stored", stored))
			return nil, notFound
		}
	}
	return f, nil
}

// FileForClass returns the file of the given kind for a class descriptor:
// "Ljava/util/Map$Entry;" with KindClass resolves "java/util/Map$Entry.class".
func (fm *FileManager) FileForClass(root string, d desc.ClassDesc, kind Kind) (FileObject, error) {
	if d.IsZero() {
		return nil, ErrNullArgument
	}
	internal, ok := d.InternalName()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotAClassType, d)
	}
	if kind == KindOther {
		return nil, fmt.Errorf("classpath: kind %s has no extension", kind)
	}
	return fm.FileForInput(root, internal+kind.Extension())
}

// Warm indexes the archive roots among roots concurrently, so later
// lookups find them already open. Directory and missing roots are skipped.
func (fm *FileManager) Warm(ctx context.Context, roots ...string) error {
	var jars []string
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		jars = append(jars, root)
	}
	limit := fm.warmLimit
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	fm.logger.Debug("warming archive index", slog.Int("archives", len(jars)), slog.Int("limit", limit))
	return fm.archives.Prefetch(ctx, jars, limit)
}

// Archive returns the opened archive for root, indexing it if needed.
func (fm *FileManager) Archive(root string) (*archive.Archive, error) {
	return fm.archives.Open(root)
}

// Close releases every archive the file manager opened. Failures to close
// individual archives are logged and returned joined; every archive is
// still released.
func (fm *FileManager) Close() error {
	return fm.archives.Close()
}
