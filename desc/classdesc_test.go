package desc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustDesc parses a descriptor or fails the test.
func mustDesc(tb testing.TB, s string) ClassDesc {
	tb.Helper()
	d, err := OfDescriptor(s)
	require.NoError(tb, err, "OfDescriptor(%q)", s)
	return d
}

func TestOf(t *testing.T) {
	t.Parallel()

	d, err := Of("java.lang.String")
	require.NoError(t, err)
	assert.Equal(t, "Ljava/lang/String;", d.DescriptorString())
	assert.True(t, d.IsClassOrInterface())
	assert.Equal(t, KindClass, d.Kind())

	_, err = Of("java/lang/String")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestOfInternalName(t *testing.T) {
	t.Parallel()

	d, err := OfInternalName("java/util/List")
	require.NoError(t, err)
	assert.Equal(t, "Ljava/util/List;", d.String())

	_, err = OfInternalName("java.util.List")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestOfPackage(t *testing.T) {
	t.Parallel()

	d, err := OfPackage("java.util", "Map")
	require.NoError(t, err)
	assert.Equal(t, "Ljava/util/Map;", d.String())

	d, err = OfPackage("", "Foo")
	require.NoError(t, err)
	assert.Equal(t, "LFoo;", d.String())
	assert.Empty(t, d.PackageName())

	_, err = OfPackage("java.util", "a.b")
	assert.ErrorIs(t, err, ErrInvalidName)
	_, err = OfPackage("java/util", "Map")
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestOfDescriptor(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"I", "J", "V", "Z", "[I", "[[D", "Ljava/lang/Object;", "[Ljava/util/Map$Entry;"} {
		d, err := OfDescriptor(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, d.String())
	}

	invalid := []string{"", "Q", "II", "[V", "Ljava/lang/Object", "Ljava/lang/Object;I", "Ljava.lang.Object;", "[", "L;"}
	for _, s := range invalid {
		_, err := OfDescriptor(s)
		assert.ErrorIs(t, err, ErrInvalidDescriptor, "descriptor %q", s)
	}

	_, err := OfDescriptor(strings.Repeat("[", 256) + "I")
	assert.ErrorIs(t, err, ErrArrayRankExceeded)

	d, err := OfDescriptor(strings.Repeat("[", 255) + "I")
	require.NoError(t, err)
	assert.Equal(t, 255, ArrayDepth(d.String()))
}

func TestOfDescriptorErrorQuotesInput(t *testing.T) {
	t.Parallel()

	_, err := OfDescriptor("Lbad.name;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Lbad.name;"`)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	str, err := Of("java.lang.String")
	require.NoError(t, err)
	arr, err := str.ArrayTypeRank(3)
	require.NoError(t, err)
	nested, err := OfPackage("java.util", "Map")
	require.NoError(t, err)
	entry, err := nested.Nested("Entry")
	require.NoError(t, err)

	for _, d := range []ClassDesc{str, arr, nested, entry, mustDesc(t, "J"), mustDesc(t, "[Z")} {
		back, err := OfDescriptor(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, back)
	}
}

func TestArrayType(t *testing.T) {
	t.Parallel()

	i := mustDesc(t, "I")
	arr, err := i.ArrayType()
	require.NoError(t, err)
	assert.Equal(t, "[I", arr.String())
	assert.True(t, arr.IsArray())

	_, err = mustDesc(t, "V").ArrayType()
	assert.ErrorIs(t, err, ErrInvalidArrayComponent)

	_, err = ClassDesc{}.ArrayType()
	assert.ErrorIs(t, err, ErrNullArgument)

	_, err = i.ArrayTypeRank(0)
	assert.ErrorIs(t, err, ErrInvalidArrayRank)
	_, err = i.ArrayTypeRank(-3)
	assert.ErrorIs(t, err, ErrInvalidArrayRank)
}

func TestArrayRankBoundary(t *testing.T) {
	t.Parallel()

	at254 := mustDesc(t, strings.Repeat("[", 254)+"I")
	at255, err := at254.ArrayType()
	require.NoError(t, err)
	assert.Equal(t, 255, ArrayDepth(at255.String()))

	_, err = at255.ArrayType()
	require.ErrorIs(t, err, ErrArrayRankExceeded)
	assert.Contains(t, err.Error(), "256")

	_, err = mustDesc(t, "I").ArrayTypeRank(256)
	assert.ErrorIs(t, err, ErrArrayRankExceeded)
}

func TestArrayRankSplitting(t *testing.T) {
	t.Parallel()

	base := mustDesc(t, "[Ljava/lang/String;")
	for _, split := range [][2]int{{1, 1}, {2, 5}, {100, 154}, {1, 253}} {
		step, err := base.ArrayTypeRank(split[0])
		require.NoError(t, err)
		twice, err := step.ArrayTypeRank(split[1])
		require.NoError(t, err)
		once, err := base.ArrayTypeRank(split[0] + split[1])
		require.NoError(t, err)
		assert.Equal(t, once, twice, "split %v", split)
	}
}

func TestNested(t *testing.T) {
	t.Parallel()

	m, err := OfPackage("java.util", "Map")
	require.NoError(t, err)

	entry, err := m.Nested("Entry")
	require.NoError(t, err)
	assert.Equal(t, "Ljava/util/Map$Entry;", entry.String())

	deep, err := m.Nested("A", "B", "C")
	require.NoError(t, err)
	chained, err := m.Nested("A")
	require.NoError(t, err)
	chained, err = chained.Nested("B")
	require.NoError(t, err)
	chained, err = chained.Nested("C")
	require.NoError(t, err)
	assert.Equal(t, "Ljava/util/Map$A$B$C;", deep.String())
	assert.Equal(t, chained, deep)

	_, err = m.Nested("A", "b.c")
	require.ErrorIs(t, err, ErrInvalidName)
	assert.Contains(t, err.Error(), "b.c")

	_, err = mustDesc(t, "[Ljava/util/Map;").Nested("Entry")
	assert.ErrorIs(t, err, ErrNotAClassType)
	_, err = mustDesc(t, "I").Nested("Entry")
	assert.ErrorIs(t, err, ErrNotAClassType)

	// Null is diagnosed before the name.
	_, err = ClassDesc{}.Nested("bad/name")
	assert.ErrorIs(t, err, ErrNullArgument)
}

func TestComponentType(t *testing.T) {
	t.Parallel()

	c, ok := mustDesc(t, "[I").ComponentType()
	require.True(t, ok)
	assert.Equal(t, mustDesc(t, "I"), c)
	assert.True(t, c.IsPrimitive())

	c, ok = mustDesc(t, "[[Ljava/lang/String;").ComponentType()
	require.True(t, ok)
	assert.Equal(t, "[Ljava/lang/String;", c.String())
	assert.True(t, c.IsArray())

	_, ok = mustDesc(t, "Ljava/lang/String;").ComponentType()
	assert.False(t, ok)
}

func TestPackageName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "java.lang", mustDesc(t, "Ljava/lang/String;").PackageName())
	assert.Equal(t, "", mustDesc(t, "LFoo;").PackageName())
	assert.Equal(t, "", mustDesc(t, "I").PackageName())
	assert.Equal(t, "", mustDesc(t, "[Ljava/lang/String;").PackageName())
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"I":                     "int",
		"Z":                     "boolean",
		"V":                     "void",
		"Ljava/lang/String;":    "String",
		"LFoo;":                 "Foo",
		"Ljava/util/Map$Entry;": "Map$Entry",
		"[[Ljava/lang/String;":  "String[][]",
		"[J":                    "long[]",
	}
	for in, want := range tests {
		assert.Equal(t, want, mustDesc(t, in).DisplayName(), in)
	}
}

func TestInternalName(t *testing.T) {
	t.Parallel()

	name, ok := mustDesc(t, "Ljava/lang/String;").InternalName()
	require.True(t, ok)
	assert.Equal(t, "java/lang/String", name)

	_, ok = mustDesc(t, "[I").InternalName()
	assert.False(t, ok)
}

func TestClassDescJSON(t *testing.T) {
	t.Parallel()

	type field struct {
		Type ClassDesc `json:"type"`
	}
	data, err := json.Marshal(field{Type: mustDesc(t, "[Ljava/lang/String;")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"[Ljava/lang/String;"}`, string(data))

	var got field
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, mustDesc(t, "[Ljava/lang/String;"), got.Type)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"Lbad"}`), &got))
}
