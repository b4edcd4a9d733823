package classpath

import (
	"unicode"
	"unicode/utf8"
)

// isIdentifier reports whether name is a syntactically valid Java
// identifier. Keywords are not rejected. Directory walks only descend into
// directories whose names pass, which keeps ".git", "META-INF" and the like
// out of a recursive listing.
func isIdentifier(name string) bool {
	if name == "" || !utf8.ValidString(name) {
		return false
	}
	for i, r := range name {
		if i == 0 {
			if !isIdentifierStart(r) {
				return false
			}
			continue
		}
		if !isIdentifierPart(r) {
			return false
		}
	}
	return true
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) ||
		unicode.Is(unicode.Nl, r) ||
		unicode.Is(unicode.Sc, r) ||
		unicode.Is(unicode.Pc, r)
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) ||
		unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) ||
		unicode.Is(unicode.Mc, r) ||
		isIdentifierIgnorable(r)
}

func isIdentifierIgnorable(r rune) bool {
	return (r <= 0x08) ||
		(r >= 0x0e && r <= 0x1b) ||
		(r >= 0x7f && r <= 0x9f) ||
		unicode.Is(unicode.Cf, r)
}
