package archive

import "errors"

var (
	// ErrMissingContainer is reported by Archive.Err when the container
	// could not be found on disk.
	ErrMissingContainer = errors.New("archive: missing container")

	// ErrUnreadableContainer is reported by Archive.Err when the container
	// exists but is not a readable zip file.
	ErrUnreadableContainer = errors.New("archive: unreadable container")

	// ErrClosed is returned when entry contents are requested from a closed
	// archive or registry.
	ErrClosed = errors.New("archive: closed")

	// ErrSizeOverflow is returned when a size recorded in a container or
	// cache blob does not fit in memory.
	ErrSizeOverflow = errors.New("archive: size overflow")

	// ErrCorruptIndex is returned when a cached index cannot be decoded.
	ErrCorruptIndex = errors.New("archive: corrupt index")
)
