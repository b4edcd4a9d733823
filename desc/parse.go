package desc

import (
	"fmt"
	"strings"
)

// MatchFieldDescriptor reports the length of the single field descriptor
// that starts at s[start] and ends at or before s[end-1], or 0 if there is
// none. It never panics; 0 is the only failure signal, so callers can scan
// descriptor lists without backtracking.
//
// 'V' matches only on its own: void is never an array component.
func MatchFieldDescriptor(s string, start, end int) int {
	return matchField(s, start, end, true)
}

// matchField walks leading '[' iteratively so pathological inputs cannot
// grow the stack.
func matchField(s string, start, end int, voidOK bool) int {
	if start < 0 || end > len(s) || start >= end {
		return 0
	}
	i := start
	for i < end && s[i] == '[' {
		i++
	}
	if i == end {
		return 0
	}
	depth := i - start
	if depth > MaxArrayDimensions {
		return 0
	}
	switch s[i] {
	case 'L':
		semi := strings.IndexByte(s[i+1:end], ';')
		if semi < 0 || !validInternalName(s[i+1:i+1+semi]) {
			return 0
		}
		return depth + semi + 2
	case 'V':
		if depth > 0 || !voidOK {
			return 0
		}
		return 1
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return depth + 1
	default:
		return 0
	}
}

// validInternalName is the descriptor-side check of an internal name: no
// '.' or '[' and no empty segments. The caller has already cut at ';'.
func validInternalName(name string) bool {
	if name == "" || name[0] == '/' || name[len(name)-1] == '/' {
		return false
	}
	return !strings.ContainsAny(name, ".[") && !strings.Contains(name, "//")
}

// ParseMethodDescriptor splits a method descriptor into its field
// descriptors. Element 0 of the result is the return type; the parameter
// types follow in declaration order.
//
//	ParseMethodDescriptor("(Ljava/lang/String;I)V") // ["V", "Ljava/lang/String;", "I"]
func ParseMethodDescriptor(s string) ([]string, error) {
	if s == "" || s[0] != '(' {
		return nil, fmt.Errorf("%w: %q: missing '('", ErrMalformedDescriptor, s)
	}
	types := []string{""}
	i := 1
	for i < len(s) && s[i] != ')' {
		n := matchField(s, i, len(s), true)
		if n == 0 {
			if err := checkRank(s, i); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %q: bad parameter at offset %d", ErrMalformedDescriptor, s, i)
		}
		if s[i] == 'V' {
			return nil, fmt.Errorf("%w: %q: void parameter at offset %d", ErrMalformedDescriptor, s, i)
		}
		types = append(types, s[i:i+n])
		i += n
	}
	if i >= len(s) {
		return nil, fmt.Errorf("%w: %q: missing ')'", ErrMalformedDescriptor, s)
	}
	i++
	n := matchField(s, i, len(s), true)
	if n == 0 || i+n != len(s) {
		if err := checkRank(s, i); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %q: bad return type", ErrMalformedDescriptor, s)
	}
	types[0] = s[i:]
	return types, nil
}

// checkRank reports an over-deep array starting at s[i].
func checkRank(s string, i int) error {
	if depth := ArrayDepth(s[i:]); depth > MaxArrayDimensions {
		return fmt.Errorf("%w: %q: %w: rank %d at offset %d", ErrMalformedDescriptor, s, ErrArrayRankExceeded, depth, i)
	}
	return nil
}

// ArrayDepth returns the number of leading '[' characters in s.
func ArrayDepth(s string) int {
	n := 0
	for n < len(s) && s[n] == '[' {
		n++
	}
	return n
}
