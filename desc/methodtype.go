package desc

import (
	"fmt"
	"slices"
	"strings"
)

// MaxParameterSlots is the largest number of parameter slots a method
// descriptor may use. Parameters of type long and double take two slots.
const MaxParameterSlots = 255

// MethodTypeDesc is a nominal descriptor for a method type: a return type
// and an ordered list of parameter types. It is immutable; the derivation
// methods return new values.
type MethodTypeDesc struct {
	ret        ClassDesc
	params     []ClassDesc
	descriptor string
}

// MethodTypeOf returns the method type with the given return and parameter
// types. Parameters may not be void.
func MethodTypeOf(ret ClassDesc, params ...ClassDesc) (MethodTypeDesc, error) {
	return newMethodType(ret, slices.Clone(params))
}

// MethodTypeOfDescriptor parses a method descriptor such as
// "(ILjava/lang/String;)V".
func MethodTypeOfDescriptor(s string) (MethodTypeDesc, error) {
	types, err := ParseMethodDescriptor(s)
	if err != nil {
		return MethodTypeDesc{}, err
	}
	descs := make([]ClassDesc, len(types))
	for i, t := range types {
		d, err := OfDescriptor(t)
		if err != nil {
			return MethodTypeDesc{}, fmt.Errorf("%w: %q: %w", ErrMalformedDescriptor, s, err)
		}
		descs[i] = d
	}
	return newMethodType(descs[0], descs[1:])
}

// newMethodType takes ownership of params.
func newMethodType(ret ClassDesc, params []ClassDesc) (MethodTypeDesc, error) {
	if ret.IsZero() {
		return MethodTypeDesc{}, fmt.Errorf("%w: return type", ErrNullArgument)
	}
	for i, p := range params {
		if p.IsZero() {
			return MethodTypeDesc{}, fmt.Errorf("%w: parameter %d", ErrNullArgument, i)
		}
	}

	var b strings.Builder
	b.WriteByte('(')
	slots := 0
	for i, p := range params {
		switch p.descriptor {
		case "V":
			return MethodTypeDesc{}, fmt.Errorf("%w: void parameter %d", ErrMalformedDescriptor, i)
		case "J", "D":
			slots += 2
		default:
			slots++
		}
		b.WriteString(p.descriptor)
	}
	if slots > MaxParameterSlots {
		return MethodTypeDesc{}, fmt.Errorf("%w: %d slots exceeds %d", ErrTooManyParameters, slots, MaxParameterSlots)
	}
	b.WriteByte(')')
	b.WriteString(ret.descriptor)

	return MethodTypeDesc{ret: ret, params: params, descriptor: b.String()}, nil
}

// IsZero reports whether m is the zero value.
func (m MethodTypeDesc) IsZero() bool {
	return m.descriptor == ""
}

// ReturnType returns the return type.
func (m MethodTypeDesc) ReturnType() ClassDesc {
	return m.ret
}

// ParameterCount returns the number of parameters.
func (m MethodTypeDesc) ParameterCount() int {
	return len(m.params)
}

// ParameterType returns the parameter at index i.
func (m MethodTypeDesc) ParameterType(i int) (ClassDesc, bool) {
	if i < 0 || i >= len(m.params) {
		return ClassDesc{}, false
	}
	return m.params[i], true
}

// ParameterList returns a copy of the parameter types.
func (m MethodTypeDesc) ParameterList() []ClassDesc {
	return slices.Clone(m.params)
}

// ChangeReturnType returns m with its return type replaced.
func (m MethodTypeDesc) ChangeReturnType(ret ClassDesc) (MethodTypeDesc, error) {
	return newMethodType(ret, m.params)
}

// ChangeParameterType returns m with the parameter at index i replaced.
func (m MethodTypeDesc) ChangeParameterType(i int, t ClassDesc) (MethodTypeDesc, error) {
	if i < 0 || i >= len(m.params) {
		return MethodTypeDesc{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	params := slices.Clone(m.params)
	params[i] = t
	return newMethodType(m.ret, params)
}

// DropParameterTypes returns m without the parameters in [start, end).
func (m MethodTypeDesc) DropParameterTypes(start, end int) (MethodTypeDesc, error) {
	if start < 0 || start > end || end > len(m.params) {
		return MethodTypeDesc{}, fmt.Errorf("%w: [%d, %d)", ErrIndexOutOfRange, start, end)
	}
	return newMethodType(m.ret, slices.Concat(m.params[:start], m.params[end:]))
}

// InsertParameterTypes returns m with types inserted before index pos.
func (m MethodTypeDesc) InsertParameterTypes(pos int, types ...ClassDesc) (MethodTypeDesc, error) {
	if pos < 0 || pos > len(m.params) {
		return MethodTypeDesc{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, pos)
	}
	return newMethodType(m.ret, slices.Concat(m.params[:pos], types, m.params[pos:]))
}

// DescriptorString returns the canonical method descriptor.
func (m MethodTypeDesc) DescriptorString() string {
	return m.descriptor
}

// String returns the canonical method descriptor.
func (m MethodTypeDesc) String() string {
	return m.descriptor
}

// DisplayDescriptor returns a readable form such as "(int,String)Object".
func (m MethodTypeDesc) DisplayDescriptor() string {
	names := make([]string, len(m.params))
	for i, p := range m.params {
		names[i] = p.DisplayName()
	}
	return "(" + strings.Join(names, ",") + ")" + m.ret.DisplayName()
}

// Equal reports whether m and o describe the same method type.
func (m MethodTypeDesc) Equal(o MethodTypeDesc) bool {
	return m.descriptor == o.descriptor
}

// MarshalText implements encoding.TextMarshaler.
func (m MethodTypeDesc) MarshalText() ([]byte, error) {
	if m.IsZero() {
		return nil, ErrNullArgument
	}
	return []byte(m.descriptor), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *MethodTypeDesc) UnmarshalText(text []byte) error {
	parsed, err := MethodTypeOfDescriptor(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
