package platform

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealPath(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Pkg", "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Pkg", "sub", "Foo.class"), nil, 0o644))

	got, err := RealPath(root, "Pkg/sub/Foo.class")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Pkg", "sub", "Foo.class"), got)

	got, err = RealPath(root, "pkg/SUB/foo.class")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "Pkg", "sub", "Foo.class"), got)

	got, err = RealPath(root, "")
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = RealPath(root, "Pkg/Bar.class")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
