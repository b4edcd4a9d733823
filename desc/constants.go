package desc

import (
	"iter"
	"maps"
	"slices"
	"sync"
)

// ConstantTable holds descriptors for well-known platform types.
//
// Obtain it with Constants. The table is built once and never changes;
// Constants hands out copies, so callers cannot affect each other.
type ConstantTable struct {
	// java.lang
	Object    ClassDesc
	String    ClassDesc
	Class     ClassDesc
	Number    ClassDesc
	Integer   ClassDesc
	Long      ClassDesc
	Float     ClassDesc
	Double    ClassDesc
	Short     ClassDesc
	Byte      ClassDesc
	Character ClassDesc
	Boolean   ClassDesc
	Void      ClassDesc
	Throwable ClassDesc
	Exception ClassDesc
	Enum      ClassDesc
	Iterable  ClassDesc

	// java.lang.invoke
	VarHandle           ClassDesc
	MethodHandles       ClassDesc
	MethodHandlesLookup ClassDesc
	MethodHandle        ClassDesc
	MethodType          ClassDesc
	CallSite            ClassDesc
	ConstantBootstraps  ClassDesc

	// java.util
	Collection ClassDesc
	List       ClassDesc
	Set        ClassDesc
	Map        ClassDesc

	// java.lang.constant
	ConstantDesc           ClassDesc
	ClassDesc              ClassDesc
	EnumDesc               ClassDesc
	MethodTypeDesc         ClassDesc
	MethodHandleDesc       ClassDesc
	MethodHandleDescKind   ClassDesc
	DirectMethodHandleDesc ClassDesc
	VarHandleDesc          ClassDesc
	DynamicConstantDesc    ClassDesc
	DynamicCallSiteDesc    ClassDesc

	// Primitive types and void.
	PrimitiveInt     ClassDesc
	PrimitiveLong    ClassDesc
	PrimitiveFloat   ClassDesc
	PrimitiveDouble  ClassDesc
	PrimitiveShort   ClassDesc
	PrimitiveByte    ClassDesc
	PrimitiveChar    ClassDesc
	PrimitiveBoolean ClassDesc
	PrimitiveVoid    ClassDesc

	// Derived descriptors.
	ObjectArray ClassDesc
	VoidMethod  MethodTypeDesc

	byName map[string]ClassDesc
}

var constants = sync.OnceValue(buildConstantTable)

// Constants returns the table of well-known descriptors.
func Constants() ConstantTable {
	return constants()
}

// buildConstantTable fills the table in one pass. Derived entries are
// computed at the end, after everything they depend on is set.
func buildConstantTable() ConstantTable {
	t := ConstantTable{
		Object:    mustOf("java.lang.Object"),
		String:    mustOf("java.lang.String"),
		Class:     mustOf("java.lang.Class"),
		Number:    mustOf("java.lang.Number"),
		Integer:   mustOf("java.lang.Integer"),
		Long:      mustOf("java.lang.Long"),
		Float:     mustOf("java.lang.Float"),
		Double:    mustOf("java.lang.Double"),
		Short:     mustOf("java.lang.Short"),
		Byte:      mustOf("java.lang.Byte"),
		Character: mustOf("java.lang.Character"),
		Boolean:   mustOf("java.lang.Boolean"),
		Void:      mustOf("java.lang.Void"),
		Throwable: mustOf("java.lang.Throwable"),
		Exception: mustOf("java.lang.Exception"),
		Enum:      mustOf("java.lang.Enum"),
		Iterable:  mustOf("java.lang.Iterable"),

		VarHandle:           mustOf("java.lang.invoke.VarHandle"),
		MethodHandles:       mustOf("java.lang.invoke.MethodHandles"),
		MethodHandlesLookup: mustOf("java.lang.invoke.MethodHandles$Lookup"),
		MethodHandle:        mustOf("java.lang.invoke.MethodHandle"),
		MethodType:          mustOf("java.lang.invoke.MethodType"),
		CallSite:            mustOf("java.lang.invoke.CallSite"),
		ConstantBootstraps:  mustOf("java.lang.invoke.ConstantBootstraps"),

		Collection: mustOf("java.util.Collection"),
		List:       mustOf("java.util.List"),
		Set:        mustOf("java.util.Set"),
		Map:        mustOf("java.util.Map"),

		ConstantDesc:           mustOf("java.lang.constant.ConstantDesc"),
		ClassDesc:              mustOf("java.lang.constant.ClassDesc"),
		EnumDesc:               mustOf("java.lang.Enum$EnumDesc"),
		MethodTypeDesc:         mustOf("java.lang.constant.MethodTypeDesc"),
		MethodHandleDesc:       mustOf("java.lang.constant.MethodHandleDesc"),
		MethodHandleDescKind:   mustOf("java.lang.constant.DirectMethodHandleDesc$Kind"),
		DirectMethodHandleDesc: mustOf("java.lang.constant.DirectMethodHandleDesc"),
		VarHandleDesc:          mustOf("java.lang.invoke.VarHandle$VarHandleDesc"),
		DynamicConstantDesc:    mustOf("java.lang.constant.DynamicConstantDesc"),
		DynamicCallSiteDesc:    mustOf("java.lang.constant.DynamicCallSiteDesc"),

		PrimitiveInt:     ofValid("I"),
		PrimitiveLong:    ofValid("J"),
		PrimitiveFloat:   ofValid("F"),
		PrimitiveDouble:  ofValid("D"),
		PrimitiveShort:   ofValid("S"),
		PrimitiveByte:    ofValid("B"),
		PrimitiveChar:    ofValid("C"),
		PrimitiveBoolean: ofValid("Z"),
		PrimitiveVoid:    ofValid("V"),
	}

	objectArray, err := t.Object.ArrayType()
	if err != nil {
		panic(err)
	}
	t.ObjectArray = objectArray

	voidMethod, err := MethodTypeOf(t.PrimitiveVoid)
	if err != nil {
		panic(err)
	}
	t.VoidMethod = voidMethod

	t.byName = make(map[string]ClassDesc)
	for _, d := range []ClassDesc{
		t.Object, t.String, t.Class, t.Number, t.Integer, t.Long, t.Float,
		t.Double, t.Short, t.Byte, t.Character, t.Boolean, t.Void,
		t.Throwable, t.Exception, t.Enum, t.Iterable,
		t.VarHandle, t.MethodHandles, t.MethodHandlesLookup, t.MethodHandle,
		t.MethodType, t.CallSite, t.ConstantBootstraps,
		t.Collection, t.List, t.Set, t.Map,
		t.ConstantDesc, t.ClassDesc, t.EnumDesc, t.MethodTypeDesc,
		t.MethodHandleDesc, t.MethodHandleDescKind, t.DirectMethodHandleDesc,
		t.VarHandleDesc, t.DynamicConstantDesc, t.DynamicCallSiteDesc,
	} {
		internal, _ := d.InternalName()
		t.byName[InternalToBinary(internal)] = d
	}
	return t
}

// Lookup returns the class descriptor with the given binary name, if the
// table has one. Primitives are not included.
func (t ConstantTable) Lookup(binaryName string) (ClassDesc, bool) {
	d, ok := t.byName[binaryName]
	return d, ok
}

// All yields every class entry of the table by binary name, in name order.
func (t ConstantTable) All() iter.Seq2[string, ClassDesc] {
	return func(yield func(string, ClassDesc) bool) {
		for _, name := range slices.Sorted(maps.Keys(t.byName)) {
			if !yield(name, t.byName[name]) {
				return
			}
		}
	}
}
