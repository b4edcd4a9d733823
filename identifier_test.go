package classpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsIdentifier(t *testing.T) {
	t.Parallel()

	valid := []string{"java", "lang", "_", "$impl", "a1", "café", "Über", "class", "x\u0301"}
	for _, name := range valid {
		assert.True(t, isIdentifier(name), name)
	}

	invalid := []string{"", ".git", "META-INF", "1abc", "a b", "a.b", "-x", "\xff"}
	for _, name := range invalid {
		assert.False(t, isIdentifier(name), name)
	}
}
