package classpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := map[string]Kind{
		"Foo.class":      KindClass,
		"Foo.java":       KindSource,
		"package.html":   KindHTML,
		"MANIFEST.MF":    KindOther,
		"Foo.class.bak":  KindOther,
		"":               KindOther,
		"a/b/Bar.java":   KindSource,
		"module-info.cl": KindOther,
	}
	for name, want := range tests {
		assert.Equal(t, want, KindOf(name), name)
	}
}

func TestKindSet(t *testing.T) {
	t.Parallel()

	s := Kinds(KindClass, KindSource)
	assert.True(t, s.Has(KindClass))
	assert.True(t, s.Has(KindSource))
	assert.False(t, s.Has(KindHTML))
	assert.False(t, s.Has(KindOther))
	assert.False(t, Kinds().Has(KindClass))

	for k := KindOther; k <= KindHTML; k++ {
		assert.True(t, AllKinds.Has(k), k.String())
	}
	assert.False(t, AllKinds.Has(Kind(9)))
}

func TestKindNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".class", KindClass.Extension())
	assert.Equal(t, ".java", KindSource.Extension())
	assert.Empty(t, KindOther.Extension())
	assert.Empty(t, Kind(42).Extension())
	assert.Equal(t, "unknown", Kind(42).String())

	k, ok := ParseKind("source")
	assert.True(t, ok)
	assert.Equal(t, KindSource, k)
	_, ok = ParseKind("jar")
	assert.False(t, ok)
}
