package desc

import (
	"fmt"
	"strings"
)

const (
	initName   = "<init>"
	clinitName = "<clinit>"
)

// ValidateBinaryClassName checks that name is a binary class name
// ("java.lang.String"). Dots separate packages; ';', '[' and '/' are rejected,
// as are empty names and empty segments. It returns name unchanged on success.
func ValidateBinaryClassName(name string) (string, error) {
	if err := validateClassName(name, '.', '/'); err != nil {
		return "", err
	}
	return name, nil
}

// ValidateInternalClassName checks that name is an internal class name
// ("java/lang/String"). Slashes separate packages; ';', '[' and '.' are
// rejected, as are empty names and empty segments.
func ValidateInternalClassName(name string) (string, error) {
	if err := validateClassName(name, '/', '.'); err != nil {
		return "", err
	}
	return name, nil
}

func validateClassName(name string, sep, forbidden byte) error {
	if name == "" {
		return fmt.Errorf("%w: empty class name", ErrInvalidName)
	}
	prevSep := true
	for i := 0; i < len(name); i++ {
		switch c := name[i]; c {
		case ';', '[', forbidden:
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		case sep:
			if prevSep {
				return fmt.Errorf("%w: empty segment in %q", ErrInvalidName, name)
			}
			prevSep = true
		default:
			prevSep = false
		}
	}
	if prevSep {
		return fmt.Errorf("%w: empty segment in %q", ErrInvalidName, name)
	}
	return nil
}

// ValidateMemberName checks that name is a legal unqualified name for a
// class, field or method. The names "<init>" and "<clinit>" are the only
// ones allowed to contain '<' or '>'.
func ValidateMemberName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty member name", ErrInvalidName)
	}
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '.', ';', '[', '/':
			return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
		case '<', '>':
			if name != initName && name != clinitName {
				return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
			}
		}
	}
	return name, nil
}

// BinaryToInternal converts "java.lang.String" to "java/lang/String".
// It does not validate.
func BinaryToInternal(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

// InternalToBinary converts "java/lang/String" to "java.lang.String".
// It does not validate.
func InternalToBinary(name string) string {
	return strings.ReplaceAll(name, "/", ".")
}
