//go:build darwin || windows

package platform

// CaseInsensitive reports whether the host's default filesystems resolve
// names without regard to case.
const CaseInsensitive = true
