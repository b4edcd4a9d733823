package desc

import "errors"

// Sentinel errors. Call sites wrap them with the offending input, so use
// errors.Is to test for a category.
var (
	// ErrNullArgument is returned when a required descriptor is the zero value.
	ErrNullArgument = errors.New("desc: null argument")

	// ErrInvalidName is returned for malformed class or member names.
	ErrInvalidName = errors.New("desc: invalid name")

	// ErrInvalidDescriptor is returned when a string is not exactly one field descriptor.
	ErrInvalidDescriptor = errors.New("desc: invalid descriptor")

	// ErrMalformedDescriptor is returned when a method descriptor cannot be parsed.
	ErrMalformedDescriptor = errors.New("desc: malformed method descriptor")

	// ErrNotAClassType is returned when a class or interface descriptor is required.
	ErrNotAClassType = errors.New("desc: not a class or interface type")

	// ErrArrayRankExceeded is returned when an array would exceed MaxArrayDimensions.
	ErrArrayRankExceeded = errors.New("desc: array rank exceeded")

	// ErrInvalidArrayRank is returned for a non-positive array rank.
	ErrInvalidArrayRank = errors.New("desc: invalid array rank")

	// ErrInvalidArrayComponent is returned when void is used as an array component.
	ErrInvalidArrayComponent = errors.New("desc: invalid array component")

	// ErrIndexOutOfRange is returned for a parameter index outside the parameter list.
	ErrIndexOutOfRange = errors.New("desc: index out of range")

	// ErrTooManyParameters is returned when method parameters exceed MaxParameterSlots.
	ErrTooManyParameters = errors.New("desc: too many parameters")
)
