// Package sizing guards sizes taken from zip headers and cache blobs.
package sizing

import (
	"io"
	"math"
)

// ToInt64 converts a zip64 size to int64, returning overflowErr for sizes
// past math.MaxInt64.
func ToInt64(size uint64, overflowErr error) (int64, error) {
	if size > math.MaxInt64 {
		return 0, overflowErr
	}
	return int64(size), nil
}

// ReadLimited reads r to EOF, failing with overflowErr once more than
// limit bytes have been seen. A negative limit always fails.
func ReadLimited(r io.Reader, limit int64, overflowErr error) ([]byte, error) {
	if limit < 0 || limit == math.MaxInt64 {
		return nil, overflowErr
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, overflowErr
	}
	return data, nil
}
