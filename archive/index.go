package archive

import (
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/meigma/classpath/internal/pathutil"
)

// Index maps directory prefixes to the basenames stored directly in them.
//
// Directory prefixes end in "/" except for the root, which is "". Basenames
// keep the order in which the container listed them. An Index is read-only
// after construction and safe for concurrent use.
type Index struct {
	dirs  map[string][]string
	files int
}

var emptyIndex = &Index{dirs: map[string][]string{}}

// EmptyIndex returns the shared index of a missing container.
func EmptyIndex() *Index {
	return emptyIndex
}

// NewIndex builds an index from entry names in container order.
//
// Each name is split at its last "/". Directory markers (names ending in
// "/") contribute no file and no bucket of their own.
func NewIndex(names iter.Seq[string]) *Index {
	idx := &Index{dirs: make(map[string][]string)}
	for name := range names {
		dir, base := pathutil.SplitEntry(name)
		if base == "" {
			continue
		}
		idx.dirs[dir] = append(idx.dirs[dir], base)
		idx.files++
	}
	return idx
}

// Contains reports whether path names a file in the index.
// Directory paths are never contained.
func (x *Index) Contains(path string) bool {
	dir, base := pathutil.SplitEntry(path)
	if base == "" {
		return false
	}
	return slices.Contains(x.dirs[dir], base)
}

// FilesIn returns the basenames stored directly in dir, or nil.
// dir uses the index form: "a/b/" or "" for the root.
func (x *Index) FilesIn(dir string) []string {
	return slices.Clone(x.dirs[dir])
}

// Subdirectories returns every directory prefix that holds at least one
// file, sorted. The result is flat; nesting is recovered by prefix.
func (x *Index) Subdirectories() []string {
	return slices.Sorted(maps.Keys(x.dirs))
}

// Under returns the directory prefixes at or below dir, sorted.
func (x *Index) Under(dir string) []string {
	var out []string
	for _, d := range x.Subdirectories() {
		if strings.HasPrefix(d, dir) {
			out = append(out, d)
		}
	}
	return out
}

// Len returns the number of files in the index.
func (x *Index) Len() int {
	return x.files
}
