package domain

// CType is the parsed C type of a parameter, return value or typedef. It
// models the narrow subset the public headers use: named base types with
// pointer depth, plus function pointers, which cgo surfaces as *[0]byte.
type CType struct {
	// Base is the type name with qualifiers stripped, e.g. "int",
	// "char", "uiWindow", "struct tm". Empty for function pointers.
	Base string
	// Pointers is the pointer depth.
	Pointers int
	// Func marks a function-pointer type.
	Func bool
}

// Void reports whether the type is plain void (no pointers).
func (t CType) Void() bool {
	return !t.Func && t.Base == "void" && t.Pointers == 0
}

// Param is one function parameter.
type Param struct {
	Name string
	Type CType
}

// Function is a declared library entry point.
type Function struct {
	Name     string
	Return   CType
	Params   []Param
	Variadic bool
}

// EnumMember is one enumerator. The raw value expression is kept for
// reference; generated code always names the C constant instead of
// duplicating the value.
type EnumMember struct {
	Name  string
	Value string
}

// Enum is a declared enumeration.
type Enum struct {
	Name    string
	Members []EnumMember
}

// Struct is a declared record type. Opaque records only ever appear behind
// pointers; defined records additionally carry fields in the C header, which
// the generated alias exposes through the C type itself.
type Struct struct {
	Name   string
	Opaque bool
}

// Callback is a typedef'd function-pointer type.
type Callback struct {
	Name string
}

// Define is an object-like numeric macro from the public headers.
type Define struct {
	Name  string
	Value string
}

// DeclSet is everything extracted from the public headers for one target, in
// header order. Extraction is deterministic: identical headers produce an
// identical set, and emission preserves this order.
type DeclSet struct {
	// Headers are the scanned header file names, in scan order. They
	// become the #include lines of the generated preamble.
	Headers []string

	Structs   []Struct
	Callbacks []Callback
	Enums     []Enum
	Defines   []Define
	Functions []Function
}

// Len returns the total number of extracted declarations.
func (d *DeclSet) Len() int {
	return len(d.Structs) + len(d.Callbacks) + len(d.Enums) + len(d.Defines) + len(d.Functions)
}
