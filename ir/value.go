package ir

import (
	"fmt"
	"math"
	"strconv"
)

type valueKind uint8

const (
	valueEmpty valueKind = iota
	valueInst
	valueImm
	valueAttr
	valueSReg
	valueVReg
)

// Value is an instruction argument: empty, a reference to another
// instruction's result, an immediate, or a special operand (attribute,
// scalar register, vector register). Values are compared with ==.
type Value struct {
	kind valueKind
	typ  Type
	bits uint64
	inst *Inst
}

// Empty is the zero Value. Optional image operands use it.
var Empty Value

// Ref returns a Value referring to the result of inst.
func Ref(inst *Inst) Value { return Value{kind: valueInst, inst: inst} }

// Imm1 returns a boolean immediate.
func Imm1(v bool) Value {
	var b uint64
	if v {
		b = 1
	}
	return Value{kind: valueImm, typ: U1, bits: b}
}

// Imm8 returns an 8-bit immediate.
func Imm8(v uint8) Value { return Value{kind: valueImm, typ: U8, bits: uint64(v)} }

// Imm16 returns a 16-bit immediate.
func Imm16(v uint16) Value { return Value{kind: valueImm, typ: U16, bits: uint64(v)} }

// Imm32 returns a 32-bit immediate.
func Imm32(v uint32) Value { return Value{kind: valueImm, typ: U32, bits: uint64(v)} }

// Imm64 returns a 64-bit immediate.
func Imm64(v uint64) Value { return Value{kind: valueImm, typ: U64, bits: v} }

// ImmF16 returns a half float immediate from its bit pattern.
func ImmF16(bits uint16) Value { return Value{kind: valueImm, typ: F16, bits: uint64(bits)} }

// ImmF32 returns a float immediate.
func ImmF32(v float32) Value {
	return Value{kind: valueImm, typ: F32, bits: uint64(math.Float32bits(v))}
}

// ImmF64 returns a double immediate.
func ImmF64(v float64) Value { return Value{kind: valueImm, typ: F64, bits: math.Float64bits(v)} }

// ImmBits returns an immediate of scalar type t holding raw bits.
func ImmBits(t Type, bits uint64) Value { return Value{kind: valueImm, typ: t, bits: bits} }

// Attr returns an attribute operand.
func Attr(a Attribute) Value { return Value{kind: valueAttr, typ: AttributeType, bits: uint64(a)} }

// SReg returns a scalar register operand.
func SReg(r ScalarReg) Value { return Value{kind: valueSReg, typ: ScalarRegType, bits: uint64(r)} }

// VReg returns a vector register operand.
func VReg(r VectorReg) Value { return Value{kind: valueVReg, typ: VectorRegType, bits: uint64(r)} }

func (v Value) IsEmpty() bool { return v.kind == valueEmpty }
func (v Value) IsImmediate() bool { return v.kind == valueImm }
func (v Value) IsInst() bool { return v.kind == valueInst }

// Inst returns the referenced instruction, or nil.
func (v Value) Inst() *Inst { return v.inst }

// Type returns the type of the value. Empty values are Void.
func (v Value) Type() Type {
	if v.kind == valueInst {
		return v.inst.Type()
	}
	return v.typ
}

// Bits returns the raw immediate bits.
func (v Value) Bits() uint64 { return v.bits }

func (v Value) U1() bool { return v.bits != 0 }
func (v Value) U32() uint32 { return uint32(v.bits) }
func (v Value) U64() uint64 { return v.bits }
func (v Value) F32() float32 { return math.Float32frombits(uint32(v.bits)) }
func (v Value) F64() float64 { return math.Float64frombits(v.bits) }
func (v Value) Attribute() Attribute { return Attribute(v.bits) }
func (v Value) ScalarReg() ScalarReg { return ScalarReg(v.bits) }
func (v Value) VectorReg() VectorReg { return VectorReg(v.bits) }

// String renders the value in the text format.
func (v Value) String() string {
	switch v.kind {
	case valueEmpty:
		return "-"
	case valueInst:
		return "%" + v.inst.Label()
	case valueAttr:
		return "attr:" + v.Attribute().String()
	case valueSReg:
		return "sreg:" + strconv.FormatUint(v.bits, 10)
	case valueVReg:
		return "vreg:" + strconv.FormatUint(v.bits, 10)
	}
	switch v.typ {
	case U1:
		return "u1:" + strconv.FormatBool(v.U1())
	case F32:
		return "f32:" + strconv.FormatFloat(float64(v.F32()), 'g', -1, 32)
	case F64:
		return "f64:" + strconv.FormatFloat(v.F64(), 'g', -1, 64)
	case F16:
		return fmt.Sprintf("f16:0x%04x", v.bits)
	}
	return v.typ.String() + ":" + strconv.FormatUint(v.bits, 10)
}
