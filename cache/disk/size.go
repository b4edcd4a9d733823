package disk

import (
	"cmp"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// tempPrefix marks in-flight Put files. Size accounting and pruning skip
// them.
const tempPrefix = "cache-"

// storedBlob is one committed blob found on disk.
type storedBlob struct {
	path    string
	size    int64
	modTime time.Time
}

// scanBlobs returns every committed blob under root with their total size.
// A missing root holds nothing.
func scanBlobs(root string) ([]storedBlob, int64, error) {
	var (
		blobs []storedBlob
		total int64
	)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() || strings.HasPrefix(d.Name(), tempPrefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		blobs = append(blobs, storedBlob{path: path, size: info.Size(), modTime: info.ModTime()})
		total += info.Size()
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return blobs, total, nil
}

func dirSize(root string) (int64, error) {
	_, total, err := scanBlobs(root)
	return total, err
}

// pruneDir deletes blobs under root, least recently written first, until
// at most targetBytes remain.
func pruneDir(root string, targetBytes int64) (freed, remaining int64, err error) {
	blobs, remaining, err := scanBlobs(root)
	if err != nil {
		return 0, 0, err
	}
	targetBytes = max(targetBytes, 0)
	if remaining <= targetBytes {
		return 0, remaining, nil
	}

	slices.SortFunc(blobs, func(a, b storedBlob) int {
		return cmp.Or(a.modTime.Compare(b.modTime), strings.Compare(a.path, b.path))
	})
	for _, b := range blobs {
		if remaining <= targetBytes {
			break
		}
		if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return freed, remaining, err
		}
		remaining -= b.size
		freed += b.size
	}
	return freed, remaining, nil
}
