// Package desc models JVM field and method descriptors as nominal values.
//
// A [ClassDesc] is an immutable, comparable value holding the canonical
// descriptor string of a field type: a primitive ("I"), an array
// ("[Ljava/lang/String;") or a class or interface ("Ljava/lang/String;").
// Values are only created through the validating factory functions
// ([Of], [OfInternalName], [OfPackage], [OfDescriptor]) and the derivation
// methods on ClassDesc, so every ClassDesc holds a well-formed descriptor.
//
// Method descriptors are modeled by [MethodTypeDesc]. The low-level grammar
// is exposed through [MatchFieldDescriptor] and [ParseMethodDescriptor],
// which operate on strings without allocating intermediate values.
//
// Well-known platform types are available from [Constants].
//
// Everything in this package is a pure function of its arguments and is
// safe for concurrent use.
package desc
