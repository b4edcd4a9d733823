package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meigma/classpath/internal/testutil"
)

func runCLI(t *testing.T, cfg config, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), cfg, args, &stdout, &stderr)
	return stdout.String(), err
}

func TestRunList(t *testing.T) {
	t.Parallel()

	jar := testutil.WriteJar(t, filepath.Join(t.TempDir(), "lib.jar"),
		testutil.JarEntry{Name: "p/A.class", Data: "a"},
		testutil.JarEntry{Name: "p/B.java", Data: "b"},
		testutil.JarEntry{Name: "p/q/C.class", Data: "c"},
	)

	out, err := runCLI(t, config{kinds: "class"}, "ls", jar, "p")
	require.NoError(t, err)
	assert.Equal(t, "p/A.class\n", out)

	out, err = runCLI(t, config{kinds: "all", recurse: true, cacheDir: t.TempDir()}, "ls", jar)
	require.NoError(t, err)
	assert.Equal(t, "p/A.class\np/B.java\np/q/C.class\n", out)

	out, err = runCLI(t, config{kinds: "class", digests: true}, "ls", jar, "p")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "p/A.class\tsha256:"), out)
}

func TestRunListDirectoryDigest(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.WriteFile(t, root, "p/A.java", "class A {}")

	out, err := runCLI(t, config{kinds: "source", digests: true}, "ls", root, "p")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "p/A.java\tsha256:"), out)
}

func TestRunFind(t *testing.T) {
	t.Parallel()

	jar := testutil.WriteJar(t, filepath.Join(t.TempDir(), "lib.jar"),
		testutil.JarEntry{Name: "java/util/Map$Entry.class", Data: "e"},
	)

	out, err := runCLI(t, config{}, "find", jar, "java.util.Map$Entry")
	require.NoError(t, err)
	assert.Equal(t, "java/util/Map$Entry.class\n", out)

	_, err = runCLI(t, config{}, "find", jar, "java.util.List")
	assert.Error(t, err)
}

func TestRunDescribe(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, config{}, "desc", "[[Ljava/lang/String;", "(IJ)V", "I")
	require.NoError(t, err)
	assert.Equal(t,
		"[[Ljava/lang/String;\tarray\tString[][]\tdims=2\n"+
			"(IJ)V\tmethod\t(int,long)void\tparams=2\n"+
			"I\tprimitive\tint\n",
		out)

	_, err = runCLI(t, config{}, "desc", "(V)V")
	assert.Error(t, err)
}

func TestRunUsage(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"ls"}, {"bogus", "x"}, {"desc"}, {"find", "x"}} {
		_, err := runCLI(t, config{}, args...)
		assert.ErrorIs(t, err, errUsage, "%v", args)
	}

	_, err := runCLI(t, config{kinds: "jar"}, "ls", t.TempDir())
	assert.ErrorContains(t, err, "unknown kind")
	_, err = runCLI(t, config{caseCheck: "maybe"}, "ls", t.TempDir())
	assert.ErrorContains(t, err, "case-check")
}
