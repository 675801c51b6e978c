package spirv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jurealeksic/shadPS4/ir"
)

// NumericClass is the class part of a type signature.
type NumericClass uint8

const (
	ClassBool NumericClass = iota
	ClassUint
	ClassSint
	ClassFloat
)

// Signature identifies a numeric scalar or vector type.
type Signature struct {
	Class NumericClass
	Width uint8
	Arity uint8
}

func (s Signature) String() string {
	var c string
	switch s.Class {
	case ClassBool:
		return "bool" + arity(s.Arity)
	case ClassUint:
		c = "u"
	case ClassSint:
		c = "s"
	default:
		c = "f"
	}
	return c + strconv.Itoa(int(s.Width)) + arity(s.Arity)
}

func arity(n uint8) string {
	if n <= 1 {
		return ""
	}
	return "x" + strconv.Itoa(int(n))
}

// SignatureOf maps a single IR numeric type to its signature. IR integers
// are unsigned.
func SignatureOf(t ir.Type) (Signature, bool) {
	if !t.IsSingle() || t&(ir.Scalar|ir.Vector) == 0 {
		return Signature{}, false
	}
	sig := Signature{Width: uint8(t.Width()), Arity: uint8(t.Arity())}
	switch {
	case t == ir.U1:
		sig.Class = ClassBool
		sig.Width = 1
	case t.IsFloat():
		sig.Class = ClassFloat
	default:
		sig.Class = ClassUint
	}
	return sig, true
}

type typeKey struct {
	op   OpCode
	a, b uint32
	// list holds variable operand lists and nominal tags
	list string
}

type constKey struct {
	op   OpCode
	typ  uint32
	bits uint64
	list string
}

// Cache hands out type and constant IDs, declaring each distinct signature
// exactly once.
type Cache struct {
	b       *ModuleBuilder
	types   map[typeKey]uint32
	typeOf  map[uint32]typeKey
	consts  map[constKey]uint32
	constOf map[uint32]constKey

	// widthOf maps scalar and vector type IDs to their signature.
	widthOf map[uint32]Signature
}

// NewCache creates a cache declaring into b.
func NewCache(b *ModuleBuilder) *Cache {
	return &Cache{
		b:       b,
		types:   make(map[typeKey]uint32),
		typeOf:  make(map[uint32]typeKey),
		consts:  make(map[constKey]uint32),
		constOf: make(map[uint32]constKey),
		widthOf: make(map[uint32]Signature),
	}
}

// NumTypes returns the number of declared types.
func (c *Cache) NumTypes() int { return len(c.types) }

// NumConstants returns the number of declared constants.
func (c *Cache) NumConstants() int { return len(c.consts) }

func (c *Cache) recordType(k typeKey, id uint32) {
	if prev, ok := c.typeOf[id]; ok && prev != k {
		panic(fmt.Sprintf("spirv: type id %d reused for %v and %v", id, prev, k))
	}
	c.types[k] = id
	c.typeOf[id] = k
}

func (c *Cache) recordConst(k constKey, id uint32) {
	if prev, ok := c.constOf[id]; ok && prev != k {
		panic(fmt.Sprintf("spirv: constant id %d reused for %v and %v", id, prev, k))
	}
	c.consts[k] = id
	c.constOf[id] = k
}

func (c *Cache) typeID(k typeKey, declare func() uint32) uint32 {
	if id, ok := c.types[k]; ok {
		return id
	}
	id := declare()
	c.recordType(k, id)
	return id
}

func (c *Cache) simple(op OpCode, operands ...uint32) uint32 {
	k := typeKey{op: op}
	switch len(operands) {
	case 2:
		k.a, k.b = operands[0], operands[1]
	case 1:
		k.a = operands[0]
	}
	return c.typeID(k, func() uint32 { return c.b.AddType(op, operands...) })
}

// Void returns OpTypeVoid.
func (c *Cache) Void() uint32 { return c.simple(OpTypeVoid) }

// Bool returns OpTypeBool.
func (c *Cache) Bool() uint32 {
	id := c.simple(OpTypeBool)
	c.widthOf[id] = Signature{Class: ClassBool, Width: 1, Arity: 1}
	return id
}

// Int returns an unsigned integer type.
func (c *Cache) Int(width uint32) uint32 {
	c.requireIntWidth(width)
	id := c.simple(OpTypeInt, width, 0)
	c.widthOf[id] = Signature{Class: ClassUint, Width: uint8(width), Arity: 1}
	return id
}

// SInt returns a signed integer type.
func (c *Cache) SInt(width uint32) uint32 {
	c.requireIntWidth(width)
	id := c.simple(OpTypeInt, width, 1)
	c.widthOf[id] = Signature{Class: ClassSint, Width: uint8(width), Arity: 1}
	return id
}

// Float returns a float type.
func (c *Cache) Float(width uint32) uint32 {
	switch width {
	case 16:
		c.b.AddCapability(CapabilityFloat16)
	case 64:
		c.b.AddCapability(CapabilityFloat64)
	}
	id := c.simple(OpTypeFloat, width)
	c.widthOf[id] = Signature{Class: ClassFloat, Width: uint8(width), Arity: 1}
	return id
}

func (c *Cache) requireIntWidth(width uint32) {
	switch width {
	case 8:
		c.b.AddCapability(CapabilityInt8)
	case 16:
		c.b.AddCapability(CapabilityInt16)
	case 64:
		c.b.AddCapability(CapabilityInt64)
	}
}

// Vector returns a vector type.
func (c *Cache) Vector(elem uint32, n uint32) uint32 {
	id := c.simple(OpTypeVector, elem, n)
	if s, ok := c.widthOf[elem]; ok {
		s.Arity = uint8(n)
		c.widthOf[id] = s
	}
	return id
}

// Type returns the type for a signature.
func (c *Cache) Type(sig Signature) uint32 {
	var elem uint32
	switch sig.Class {
	case ClassBool:
		elem = c.Bool()
	case ClassUint:
		elem = c.Int(uint32(sig.Width))
	case ClassSint:
		elem = c.SInt(uint32(sig.Width))
	case ClassFloat:
		elem = c.Float(uint32(sig.Width))
	}
	if sig.Arity > 1 {
		return c.Vector(elem, uint32(sig.Arity))
	}
	return elem
}

// TypeOf maps an IR numeric type to its SPIR-V type.
func (c *Cache) TypeOf(t ir.Type) (uint32, error) {
	if t == ir.Void {
		return c.Void(), nil
	}
	sig, ok := SignatureOf(t)
	if !ok {
		return 0, contractf("type %s has no SPIR-V representation", t)
	}
	return c.Type(sig), nil
}

// SignatureOfID returns the signature of a scalar or vector type ID.
func (c *Cache) SignatureOfID(id uint32) (Signature, bool) {
	s, ok := c.widthOf[id]
	return s, ok
}

// Array returns a fixed-size array type. A non-zero stride decorates the
// new type with ArrayStride; arrays with and without stride are distinct.
func (c *Cache) Array(elem, length, stride uint32) uint32 {
	n := c.ConstU32(length)
	k := typeKey{op: OpTypeArray, a: elem, b: n, list: "stride=" + strconv.FormatUint(uint64(stride), 10)}
	return c.typeID(k, func() uint32 {
		id := c.b.AddType(OpTypeArray, elem, n)
		if stride != 0 {
			c.b.AddDecorate(id, DecorationArrayStride, stride)
		}
		return id
	})
}

// RuntimeArray returns a runtime-sized array type, decorated like Array.
func (c *Cache) RuntimeArray(elem, stride uint32) uint32 {
	k := typeKey{op: OpTypeRuntimeArray, a: elem, list: "stride=" + strconv.FormatUint(uint64(stride), 10)}
	return c.typeID(k, func() uint32 {
		id := c.b.AddType(OpTypeRuntimeArray, elem)
		if stride != 0 {
			c.b.AddDecorate(id, DecorationArrayStride, stride)
		}
		return id
	})
}

// Struct returns a struct type. Structs are nominal: tag distinguishes
// structs with equal members but different decorations. decorate runs once,
// when the struct is declared.
func (c *Cache) Struct(tag string, decorate func(id uint32), members ...uint32) uint32 {
	k := typeKey{op: OpTypeStruct, list: tag + ":" + idList(members)}
	return c.typeID(k, func() uint32 {
		id := c.b.AddType(OpTypeStruct, members...)
		if decorate != nil {
			decorate(id)
		}
		return id
	})
}

// Pointer returns a pointer type.
func (c *Cache) Pointer(sc StorageClass, base uint32) uint32 {
	return c.simple(OpTypePointer, uint32(sc), base)
}

// Function returns a function type.
func (c *Cache) Function(ret uint32, params ...uint32) uint32 {
	k := typeKey{op: OpTypeFunction, a: ret, list: idList(params)}
	return c.typeID(k, func() uint32 {
		return c.b.AddType(OpTypeFunction, append([]uint32{ret}, params...)...)
	})
}

// ImageDesc describes an OpTypeImage.
type ImageDesc struct {
	SampledType uint32
	Dim         Dim
	Depth       bool
	Arrayed     bool
	MS          bool
	Storage     bool
}

// Image returns an image type.
func (c *Cache) Image(d ImageDesc) uint32 {
	sampled := uint32(1)
	if d.Storage {
		sampled = 2
	}
	ops := []uint32{d.SampledType, uint32(d.Dim), b2u(d.Depth), b2u(d.Arrayed), b2u(d.MS), sampled, ImageFormatUnknown}
	k := typeKey{op: OpTypeImage, a: d.SampledType, list: idList(ops)}
	return c.typeID(k, func() uint32 { return c.b.AddType(OpTypeImage, ops...) })
}

// Sampler returns OpTypeSampler.
func (c *Cache) Sampler() uint32 { return c.simple(OpTypeSampler) }

// SampledImage returns OpTypeSampledImage for an image type.
func (c *Cache) SampledImage(image uint32) uint32 { return c.simple(OpTypeSampledImage, image) }

func (c *Cache) constID(k constKey, declare func() uint32) uint32 {
	if id, ok := c.consts[k]; ok {
		return id
	}
	id := declare()
	c.recordConst(k, id)
	return id
}

// Constant returns a scalar constant holding bits, or a splat vector when
// the signature has more than one lane.
func (c *Cache) Constant(sig Signature, bits uint64) uint32 {
	if sig.Arity > 1 {
		lane := sig
		lane.Arity = 1
		scalar := c.Constant(lane, bits)
		parts := make([]uint32, sig.Arity)
		for i := range parts {
			parts[i] = scalar
		}
		return c.Composite(c.Type(sig), parts...)
	}
	typ := c.Type(sig)
	if sig.Class == ClassBool {
		op := OpConstantFalse
		if bits != 0 {
			op = OpConstantTrue
		}
		return c.constID(constKey{op: op, typ: typ}, func() uint32 { return c.b.AddConstant(op, typ) })
	}
	if sig.Width < 64 {
		bits &= 1<<sig.Width - 1
		if sig.Class == ClassSint && bits&(1<<(sig.Width-1)) != 0 {
			bits |= ^uint64(0) << sig.Width
		}
	}
	k := constKey{op: OpConstant, typ: typ, bits: bits}
	return c.constID(k, func() uint32 {
		if sig.Width == 64 {
			return c.b.AddConstant(OpConstant, typ, uint32(bits), uint32(bits>>32))
		}
		return c.b.AddConstant(OpConstant, typ, uint32(bits))
	})
}

// ConstU32 returns a 32-bit unsigned constant.
func (c *Cache) ConstU32(v uint32) uint32 {
	return c.Constant(Signature{Class: ClassUint, Width: 32, Arity: 1}, uint64(v))
}

// ConstS32 returns a 32-bit signed constant.
func (c *Cache) ConstS32(v int32) uint32 {
	return c.Constant(Signature{Class: ClassSint, Width: 32, Arity: 1}, uint64(uint32(v)))
}

// ConstBool returns OpConstantTrue or OpConstantFalse.
func (c *Cache) ConstBool(v bool) uint32 {
	return c.Constant(Signature{Class: ClassBool, Width: 1, Arity: 1}, uint64(b2u(v)))
}

// Composite returns a constant composite.
func (c *Cache) Composite(typ uint32, parts ...uint32) uint32 {
	k := constKey{op: OpConstantComposite, typ: typ, list: idList(parts)}
	return c.constID(k, func() uint32 { return c.b.AddConstant(OpConstantComposite, typ, parts...) })
}

// Null returns OpConstantNull of a type.
func (c *Cache) Null(typ uint32) uint32 {
	return c.constID(constKey{op: OpConstantNull, typ: typ}, func() uint32 {
		return c.b.AddConstant(OpConstantNull, typ)
	})
}

// Undef returns OpUndef of a type.
func (c *Cache) Undef(typ uint32) uint32 {
	return c.constID(constKey{op: OpUndef, typ: typ}, func() uint32 {
		return c.b.AddConstant(OpUndef, typ)
	})
}

// IsConstant reports whether id names a cached constant, and its key bits
// for scalar constants.
func (c *Cache) IsConstant(id uint32) (bits uint64, scalar, ok bool) {
	k, ok := c.constOf[id]
	if !ok {
		return 0, false, false
	}
	return k.bits, k.op == OpConstant, true
}

func idList(ids []uint32) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}

func b2u(v bool) uint32 {
	if v {
		return 1
	}
	return 0
}

func (c *Cache) isConstantOrType(id uint32) bool {
	if _, ok := c.constOf[id]; ok {
		return true
	}
	_, ok := c.typeOf[id]
	return ok
}
