// Package archive indexes zip and jar containers as flat directory
// namespaces.
//
// Opening a container reads its central directory once and builds an
// [Index]: a map from each directory prefix ("a/b/", or "" for the root) to
// the basenames stored directly in it. Queries never recurse; callers walk
// the hierarchy through [Archive.Subdirectories] and prefix containment.
//
// Containers that are missing or not valid zip files still open. They get
// an empty index, so every query reports "not found" and the cause is kept
// in [Archive.Err]:
//
//	a := archive.Open("lib/missing.jar")
//	a.Contains("a/B.class") // false
//	errors.Is(a.Err(), archive.ErrMissingContainer) // true
//
// Entry contents are opened lazily. [Registry] shares opened archives
// across callers and indexes each container at most once.
//
// An optional [cache.Cache] persists indexes between runs, keyed by a
// fingerprint of the container's path, size and modification time.
package archive
