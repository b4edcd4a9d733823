package classpath

import "strings"

// Kind classifies a file by its extension.
type Kind uint8

// File kinds recognized by extension.
const (
	KindOther  Kind = iota // any other file
	KindSource             // .java
	KindClass              // .class
	KindHTML               // .html
)

var kindExtensions = [...]string{
	KindOther:  "",
	KindSource: ".java",
	KindClass:  ".class",
	KindHTML:   ".html",
}

// KindOf returns the kind of a file name.
func KindOf(name string) Kind {
	switch {
	case strings.HasSuffix(name, ".class"):
		return KindClass
	case strings.HasSuffix(name, ".java"):
		return KindSource
	case strings.HasSuffix(name, ".html"):
		return KindHTML
	default:
		return KindOther
	}
}

// Extension returns the file extension of k, or "" for KindOther.
func (k Kind) Extension() string {
	if int(k) < len(kindExtensions) {
		return kindExtensions[k]
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case KindOther:
		return "other"
	case KindSource:
		return "source"
	case KindClass:
		return "class"
	case KindHTML:
		return "html"
	default:
		return "unknown"
	}
}

// KindSet is a set of kinds used to filter listings.
type KindSet uint8

// AllKinds matches every file.
const AllKinds = KindSet(1<<KindOther | 1<<KindSource | 1<<KindClass | 1<<KindHTML)

// Kinds returns the set holding ks.
func Kinds(ks ...Kind) KindSet {
	var s KindSet
	for _, k := range ks {
		s |= 1 << k
	}
	return s
}

// Has reports whether s contains k.
func (s KindSet) Has(k Kind) bool {
	return k < 8 && s&(1<<k) != 0
}

// ParseKind returns the kind named by s ("source", "class", "html" or
// "other").
func ParseKind(s string) (Kind, bool) {
	for k := KindOther; k <= KindHTML; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return KindOther, false
}
