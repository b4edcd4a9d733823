// Package platform isolates filesystem behavior that differs between hosts.
package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RealPath returns root joined with rel, spelling each component of rel
// the way it is stored on disk. On a case-insensitive filesystem
// os.Stat("a/foo.class") succeeds for a file stored as "a/Foo.class";
// RealPath returns the "Foo.class" spelling so callers can tell the two
// apart. Components are matched exactly first, then case-insensitively.
func RealPath(root, rel string) (string, error) {
	path := root
	for _, name := range strings.Split(filepath.ToSlash(rel), "/") {
		if name == "" || name == "." {
			continue
		}
		stored, err := storedName(path, name)
		if err != nil {
			return "", err
		}
		path = filepath.Join(path, stored)
	}
	return path, nil
}

func storedName(dir, name string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	folded := ""
	for _, e := range entries {
		if e.Name() == name {
			return name, nil
		}
		if folded == "" && strings.EqualFold(e.Name(), name) {
			folded = e.Name()
		}
	}
	if folded == "" {
		return "", &fs.PathError{Op: "realpath", Path: filepath.Join(dir, name), Err: fs.ErrNotExist}
	}
	return folded, nil
}
