package desc

import (
	"fmt"
	"strings"
)

// MaxArrayDimensions is the largest array rank the class file format allows.
const MaxArrayDimensions = 255

// Kind identifies the shape of a field descriptor.
type Kind uint8

// Descriptor kinds. KindInvalid is the kind of the zero ClassDesc.
const (
	KindInvalid Kind = iota
	KindPrimitive
	KindArray
	KindClass
)

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindClass:
		return "class"
	default:
		return "invalid"
	}
}

// primitives is the fixed table consulted for single-character descriptors.
var primitives = [...]struct {
	descriptor string
	name       string
}{
	{"B", "byte"},
	{"C", "char"},
	{"D", "double"},
	{"F", "float"},
	{"I", "int"},
	{"J", "long"},
	{"S", "short"},
	{"Z", "boolean"},
	{"V", "void"},
}

func lookupPrimitive(c byte) (descriptor, name string, ok bool) {
	for _, p := range primitives {
		if p.descriptor[0] == c {
			return p.descriptor, p.name, true
		}
	}
	return "", "", false
}

// ClassDesc is a nominal descriptor for a field type: a primitive, an array
// or a class or interface.
//
// ClassDesc values are comparable; two values are equal exactly when their
// descriptor strings are equal. The zero value is not a valid descriptor and
// is rejected with ErrNullArgument where a descriptor is required.
type ClassDesc struct {
	descriptor string
	kind       Kind
}

// Of returns the descriptor of the class or interface with the given binary
// name, such as "java.lang.String" or "java.util.Map$Entry".
func Of(name string) (ClassDesc, error) {
	if _, err := ValidateBinaryClassName(name); err != nil {
		return ClassDesc{}, err
	}
	return ClassDesc{descriptor: "L" + BinaryToInternal(name) + ";", kind: KindClass}, nil
}

// OfInternalName returns the descriptor of the class or interface with the
// given internal name, such as "java/lang/String".
func OfInternalName(name string) (ClassDesc, error) {
	if _, err := ValidateInternalClassName(name); err != nil {
		return ClassDesc{}, err
	}
	return ClassDesc{descriptor: "L" + name + ";", kind: KindClass}, nil
}

// OfPackage returns the descriptor of the class simpleName in the package
// pkg, given in binary form. An empty pkg denotes the default package.
func OfPackage(pkg, simpleName string) (ClassDesc, error) {
	if _, err := ValidateMemberName(simpleName); err != nil {
		return ClassDesc{}, err
	}
	if pkg == "" {
		return ClassDesc{descriptor: "L" + simpleName + ";", kind: KindClass}, nil
	}
	if _, err := ValidateBinaryClassName(pkg); err != nil {
		return ClassDesc{}, err
	}
	return ClassDesc{descriptor: "L" + BinaryToInternal(pkg) + "/" + simpleName + ";", kind: KindClass}, nil
}

// OfDescriptor parses a field descriptor string. The whole string must be
// exactly one descriptor; "V" is accepted and denotes void.
func OfDescriptor(s string) (ClassDesc, error) {
	if len(s) == 1 {
		d, _, ok := lookupPrimitive(s[0])
		if !ok {
			return ClassDesc{}, fmt.Errorf("%w: %q", ErrInvalidDescriptor, s)
		}
		return ClassDesc{descriptor: d, kind: KindPrimitive}, nil
	}
	if depth := ArrayDepth(s); depth > MaxArrayDimensions {
		return ClassDesc{}, fmt.Errorf("%w: rank %d exceeds %d in %q", ErrArrayRankExceeded, depth, MaxArrayDimensions, s)
	}
	if s == "" || matchField(s, 0, len(s), false) != len(s) {
		return ClassDesc{}, fmt.Errorf("%w: %q", ErrInvalidDescriptor, s)
	}
	return ofValid(s), nil
}

// ofValid wraps a descriptor already known to be well-formed.
func ofValid(s string) ClassDesc {
	switch s[0] {
	case '[':
		return ClassDesc{descriptor: s, kind: KindArray}
	case 'L':
		return ClassDesc{descriptor: s, kind: KindClass}
	default:
		d, _, _ := lookupPrimitive(s[0])
		return ClassDesc{descriptor: d, kind: KindPrimitive}
	}
}

// mustOf is Of for names known at compile time.
func mustOf(name string) ClassDesc {
	d, err := Of(name)
	if err != nil {
		panic(err)
	}
	return d
}

// ArrayType returns the descriptor of an array whose component type is d.
func (d ClassDesc) ArrayType() (ClassDesc, error) {
	return d.ArrayTypeRank(1)
}

// ArrayTypeRank returns the descriptor of a rank-dimensional array whose
// element type is d. The rank of the result, counting any dimensions d
// already has, may not exceed MaxArrayDimensions.
func (d ClassDesc) ArrayTypeRank(rank int) (ClassDesc, error) {
	if d.IsZero() {
		return ClassDesc{}, fmt.Errorf("%w: array component", ErrNullArgument)
	}
	if rank <= 0 {
		return ClassDesc{}, fmt.Errorf("%w: %d", ErrInvalidArrayRank, rank)
	}
	if d.descriptor == "V" {
		return ClassDesc{}, fmt.Errorf("%w: void", ErrInvalidArrayComponent)
	}
	depth := ArrayDepth(d.descriptor)
	if rank > MaxArrayDimensions-depth {
		return ClassDesc{}, fmt.Errorf("%w: rank %d exceeds %d", ErrArrayRankExceeded, depth+rank, MaxArrayDimensions)
	}
	return ClassDesc{descriptor: strings.Repeat("[", rank) + d.descriptor, kind: KindArray}, nil
}

// Nested returns the descriptor of a class nested in d. Additional names
// nest further, so d.Nested("A", "B") is the class d$A$B. All names are
// validated before anything is built.
func (d ClassDesc) Nested(name string, more ...string) (ClassDesc, error) {
	if d.IsZero() {
		return ClassDesc{}, fmt.Errorf("%w: outer class", ErrNullArgument)
	}
	if d.kind != KindClass {
		return ClassDesc{}, fmt.Errorf("%w: %q", ErrNotAClassType, d.descriptor)
	}
	if _, err := ValidateMemberName(name); err != nil {
		return ClassDesc{}, err
	}
	for _, m := range more {
		if _, err := ValidateMemberName(m); err != nil {
			return ClassDesc{}, err
		}
	}

	var b strings.Builder
	b.WriteString(d.descriptor[:len(d.descriptor)-1])
	b.WriteByte('$')
	b.WriteString(name)
	for _, m := range more {
		b.WriteByte('$')
		b.WriteString(m)
	}
	b.WriteByte(';')
	return ClassDesc{descriptor: b.String(), kind: KindClass}, nil
}

// IsZero reports whether d is the zero value.
func (d ClassDesc) IsZero() bool {
	return d.descriptor == ""
}

// Kind returns the shape of d.
func (d ClassDesc) Kind() Kind {
	return d.kind
}

// IsArray reports whether d describes an array type.
func (d ClassDesc) IsArray() bool {
	return d.kind == KindArray
}

// IsPrimitive reports whether d describes a primitive type or void.
func (d ClassDesc) IsPrimitive() bool {
	return d.kind == KindPrimitive
}

// IsClassOrInterface reports whether d describes a class or interface.
func (d ClassDesc) IsClassOrInterface() bool {
	return d.kind == KindClass
}

// ComponentType returns the component type of an array descriptor. ok is
// false when d is not an array.
func (d ClassDesc) ComponentType() (ClassDesc, bool) {
	if d.kind != KindArray {
		return ClassDesc{}, false
	}
	return ofValid(d.descriptor[1:]), true
}

// PackageName returns the dotted package name of a class or interface. It
// returns "" for the default package and for non-class types.
func (d ClassDesc) PackageName() string {
	internal, ok := d.InternalName()
	if !ok {
		return ""
	}
	i := strings.LastIndexByte(internal, '/')
	if i < 0 {
		return ""
	}
	return InternalToBinary(internal[:i])
}

// InternalName returns the internal name of a class or interface, such as
// "java/lang/String". ok is false for other kinds.
func (d ClassDesc) InternalName() (string, bool) {
	if d.kind != KindClass {
		return "", false
	}
	return d.descriptor[1 : len(d.descriptor)-1], true
}

// DisplayName returns a short human-readable name: "int", "String",
// "String[][]". Nested classes keep their '$' separators.
func (d ClassDesc) DisplayName() string {
	switch d.kind {
	case KindPrimitive:
		_, name, _ := lookupPrimitive(d.descriptor[0])
		return name
	case KindClass:
		internal := d.descriptor[1 : len(d.descriptor)-1]
		return internal[strings.LastIndexByte(internal, '/')+1:]
	case KindArray:
		depth := ArrayDepth(d.descriptor)
		return ofValid(d.descriptor[depth:]).DisplayName() + strings.Repeat("[]", depth)
	default:
		return ""
	}
}

// DescriptorString returns the canonical descriptor string.
func (d ClassDesc) DescriptorString() string {
	return d.descriptor
}

// String returns the canonical descriptor string.
func (d ClassDesc) String() string {
	return d.descriptor
}

// MarshalText implements encoding.TextMarshaler.
func (d ClassDesc) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, ErrNullArgument
	}
	return []byte(d.descriptor), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *ClassDesc) UnmarshalText(text []byte) error {
	parsed, err := OfDescriptor(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
