package ir

import "strings"

// Type is a bit set of IR value types. Opcode signatures use unions of these
// bits to describe arguments that accept more than one type.
type Type uint32

const (
	Void Type = 0

	Opaque Type = 1 << iota
	AttributeType
	ScalarRegType
	VectorRegType
	U1
	U8
	U16
	U32
	U64
	F16
	F32
	F64
	U32x2
	U32x3
	U32x4
	F16x2
	F16x3
	F16x4
	F32x2
	F32x3
	F32x4
	F64x2
	F64x3
	F64x4
)

// Numeric type groups used by signatures.
const (
	AnyU32 = U32 | U32x2 | U32x3 | U32x4
	AnyF32 = F32 | F32x2 | F32x3 | F32x4
	Scalar = U1 | U8 | U16 | U32 | U64 | F16 | F32 | F64
	Vector = U32x2 | U32x3 | U32x4 | F16x2 | F16x3 | F16x4 | F32x2 | F32x3 | F32x4 | F64x2 | F64x3 | F64x4
)

var typeNames = []struct {
	t    Type
	name string
}{
	{Opaque, "opaque"}, {AttributeType, "attr"}, {ScalarRegType, "sreg"}, {VectorRegType, "vreg"},
	{U1, "u1"}, {U8, "u8"}, {U16, "u16"}, {U32, "u32"}, {U64, "u64"},
	{F16, "f16"}, {F32, "f32"}, {F64, "f64"},
	{U32x2, "u32x2"}, {U32x3, "u32x3"}, {U32x4, "u32x4"},
	{F16x2, "f16x2"}, {F16x3, "f16x3"}, {F16x4, "f16x4"},
	{F32x2, "f32x2"}, {F32x3, "f32x3"}, {F32x4, "f32x4"},
	{F64x2, "f64x2"}, {F64x3, "f64x3"}, {F64x4, "f64x4"},
}

// String returns the lower-case name of the type, or a "|" separated list
// when several bits are set.
func (t Type) String() string {
	if t == Void {
		return "void"
	}
	var parts []string
	for _, tn := range typeNames {
		if t&tn.t != 0 {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseType is the inverse of String for single types.
func ParseType(s string) (Type, bool) {
	if s == "void" {
		return Void, true
	}
	for _, tn := range typeNames {
		if tn.name == s {
			return tn.t, true
		}
	}
	return Void, false
}

// Element returns the scalar element type of a vector type. Scalars return
// themselves.
func (t Type) Element() Type {
	switch t {
	case U32x2, U32x3, U32x4:
		return U32
	case F16x2, F16x3, F16x4:
		return F16
	case F32x2, F32x3, F32x4:
		return F32
	case F64x2, F64x3, F64x4:
		return F64
	}
	return t
}

// Arity returns the number of lanes of a numeric type.
func (t Type) Arity() int {
	switch t {
	case U32x2, F16x2, F32x2, F64x2:
		return 2
	case U32x3, F16x3, F32x3, F64x3:
		return 3
	case U32x4, F16x4, F32x4, F64x4:
		return 4
	}
	return 1
}

// Width returns the bit width of the element type.
func (t Type) Width() int {
	switch t.Element() {
	case U1:
		return 1
	case U8:
		return 8
	case U16, F16:
		return 16
	case U32, F32:
		return 32
	case U64, F64:
		return 64
	}
	return 0
}

// IsFloat reports whether the element type is a float type.
func (t Type) IsFloat() bool {
	e := t.Element()
	return e == F16 || e == F32 || e == F64
}

// IsSingle reports whether exactly one bit is set.
func (t Type) IsSingle() bool {
	return t != Void && t&(t-1) == 0
}

// VectorOf returns the vector type with the given element and arity.
func VectorOf(elem Type, n int) Type {
	if n == 1 {
		return elem
	}
	var base Type
	switch elem {
	case U32:
		base = U32x2
	case F16:
		base = F16x2
	case F32:
		base = F32x2
	case F64:
		base = F64x2
	default:
		return Void
	}
	if n < 2 || n > 4 {
		return Void
	}
	return base << uint(n-2)
}
