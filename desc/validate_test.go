package desc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBinaryClassName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "Foo", false},
		{"qualified", "java.lang.String", false},
		{"nested", "java.util.Map$Entry", false},
		{"slash", "java/lang/String", true},
		{"semicolon", "java.lang.String;", true},
		{"bracket", "[Ljava.lang.String", true},
		{"empty", "", true},
		{"leading dot", ".Foo", true},
		{"trailing dot", "a.b.", true},
		{"double dot", "a..b", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateBinaryClassName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidName)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, got)
		})
	}
}

func TestValidateInternalClassName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"java/lang/String", false},
		{"Foo", false},
		{"java.lang.String", true},
		{"java/lang/String;", true},
		{"[I", true},
		{"", true},
		{"/a", true},
		{"a//b", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			_, err := ValidateInternalClassName(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidName)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMemberName(t *testing.T) {
	t.Parallel()

	valid := []string{"foo", "Entry", "<init>", "<clinit>", "$1", "a-b", "名前"}
	for _, name := range valid {
		got, err := ValidateMemberName(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, name, got)
	}

	invalid := []string{"", "a.b", "a;b", "a[b", "a/b", "<foo>", "<init", "init>", "<<init>>", "<"}
	for _, name := range invalid {
		_, err := ValidateMemberName(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestValidateMemberNameTotal(t *testing.T) {
	t.Parallel()

	// Every byte value alone and inside a name either passes through
	// unchanged or fails with ErrInvalidName.
	for c := 0; c < 256; c++ {
		for _, s := range []string{string([]byte{byte(c)}), "a" + string([]byte{byte(c)}) + "b"} {
			got, err := ValidateMemberName(s)
			if err != nil {
				assert.ErrorIs(t, err, ErrInvalidName, "input %q", s)
				continue
			}
			assert.Equal(t, s, got)
		}
	}
}

func TestNameConversions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "java/lang/String", BinaryToInternal("java.lang.String"))
	assert.Equal(t, "java.lang.String", InternalToBinary("java/lang/String"))
	assert.Equal(t, "Foo", BinaryToInternal("Foo"))
}
