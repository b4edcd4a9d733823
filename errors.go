package classpath

import (
	"github.com/meigma/classpath/archive"
	"github.com/meigma/classpath/desc"
)

// Errors re-exported from archive.
var (
	// ErrMissingContainer is reported for archive roots that do not exist.
	ErrMissingContainer = archive.ErrMissingContainer

	// ErrUnreadableContainer is reported for archive roots that are not valid zip files.
	ErrUnreadableContainer = archive.ErrUnreadableContainer

	// ErrClosed is returned after the file manager has been closed.
	ErrClosed = archive.ErrClosed
)

// Errors re-exported from desc.
var (
	// ErrNullArgument is returned when a zero descriptor is passed where one is required.
	ErrNullArgument = desc.ErrNullArgument

	// ErrNotAClassType is returned when a class or interface descriptor is required.
	ErrNotAClassType = desc.ErrNotAClassType
)
