package classpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaseMapCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		real string
		sep  byte
		name string
		want bool
	}{
		{"/src/a/Foo.class", '/', "a/Foo.class", true},
		{"/src/a/Foo.class", '/', "a/foo.class", false},
		{"/src/A/Foo.class", '/', "a/Foo.class", false},
		{`C:\src\a\Foo.class`, '\\', "a/Foo.class", true},
		{`C:\src\a\Foo.class`, '\\', "A/Foo.class", false},
		{"/src/a//Foo.class", '/', "a/Foo.class", true},
		{"Foo.class", '/', "a/Foo.class", false},
		{"/src/a/Foo.class", '/', "", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, caseMapCheck(tt.real, tt.sep, tt.name), "%q vs %q", tt.real, tt.name)
	}
}
