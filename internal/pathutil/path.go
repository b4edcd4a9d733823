// Package pathutil handles the slash-separated entry names of archives.
package pathutil

import "strings"

// DirPrefix converts a directory name to the prefix form used by archive
// indexes: no leading slash, one trailing slash. The root ("" or ".")
// maps to "".
func DirPrefix(name string) string {
	name = strings.Trim(name, "/")
	if name == "" || name == "." {
		return ""
	}
	return name + "/"
}

// SplitEntry splits an archive entry name at its last slash. The directory
// keeps its trailing slash, so "a/b/C.class" yields ("a/b/", "C.class")
// and "C.class" yields ("", "C.class"). Directory entries ending in a
// slash yield an empty base.
func SplitEntry(name string) (dir, base string) {
	i := strings.LastIndexByte(name, '/')
	return name[:i+1], name[i+1:]
}
