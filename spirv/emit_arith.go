package spirv

import "github.com/jurealeksic/shadPS4/ir"

// floatOne returns the bit pattern of 1.0 at the given width.
func floatOne(width int) uint64 {
	switch width {
	case 16:
		return 0x3c00
	case 64:
		return 0x3ff0000000000000
	}
	return 0x3f800000
}

func (c *EmitContext) floatConst(t ir.Type, bits uint64) uint32 {
	return c.cache.Constant(Signature{Class: ClassFloat, Width: uint8(t.Width()), Arity: 1}, bits)
}

func emitFPFma(c *EmitContext, inst *ir.Inst) (uint32, error) {
	args, err := c.args(inst)
	if err != nil {
		return 0, err
	}
	typ := c.typeOf(inst.Type())
	if c.opts.Profile.FusedMultiplyAdd {
		return c.b.AddExtInst(typ, c.glsl, GLSLstd450Fma, args...), nil
	}
	// unfused: both halves round
	mul := c.b.AddBinaryOp(OpFMul, typ, args[0], args[1])
	c.b.AddDecorate(mul, DecorationNoContraction)
	add := c.b.AddBinaryOp(OpFAdd, typ, mul, args[2])
	c.b.AddDecorate(add, DecorationNoContraction)
	return add, nil
}

func emitFPSaturate(c *EmitContext, inst *ir.Inst) (uint32, error) {
	x, err := c.value(inst.Arg(0))
	if err != nil {
		return 0, err
	}
	t := inst.Type()
	zero := c.floatConst(t, 0)
	one := c.floatConst(t, floatOne(t.Width()))
	return c.b.AddExtInst(c.typeOf(t), c.glsl, GLSLstd450NClamp, x, zero, one), nil
}

func emitFPRecip(c *EmitContext, inst *ir.Inst) (uint32, error) {
	x, err := c.value(inst.Arg(0))
	if err != nil {
		return 0, err
	}
	t := inst.Type()
	id := c.b.AddBinaryOp(OpFDiv, c.typeOf(t), c.floatConst(t, floatOne(t.Width())), x)
	c.noContraction(inst, id)
	return id, nil
}

// fieldBounds clamps a runtime bit field to the 32-bit word: the offset is
// taken modulo 32 and the count is cut at the top bit.
func (c *EmitContext) fieldBounds(offset, count uint32) (uint32, uint32) {
	u32 := c.u32()
	off := c.b.AddBinaryOp(OpBitwiseAnd, u32, offset, c.constU32(31))
	room := c.b.AddBinaryOp(OpISub, u32, c.constU32(32), off)
	cnt := c.b.AddExtInst(u32, c.glsl, GLSLstd450UMin, count, room)
	return off, cnt
}

func emitBitFieldInsert(c *EmitContext, inst *ir.Inst) (uint32, error) {
	args, err := c.args(inst)
	if err != nil {
		return 0, err
	}
	off, cnt := c.fieldBounds(args[2], args[3])
	return c.b.AddOp(OpBitFieldInsert, c.u32(), args[0], args[1], off, cnt), nil
}

func bitFieldExtract(signed bool) emitFunc {
	op := OpBitFieldUExtract
	if signed {
		op = OpBitFieldSExtract
	}
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		args, err := c.args(inst)
		if err != nil {
			return 0, err
		}
		off, cnt := c.fieldBounds(args[1], args[2])
		return c.b.AddOp(op, c.u32(), args[0], off, cnt), nil
	}
}

// convert lowers Convert<Dst><Src>. IR integers are unsigned; the opcode
// carries the signedness of each side.
func convert(dstSigned, srcSigned bool) emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		src, err := c.value(inst.Arg(0))
		if err != nil {
			return 0, err
		}
		dt, st := inst.Type(), inst.Arg(0).Type()
		var op OpCode
		switch {
		case dt.IsFloat() && st.IsFloat():
			op = OpFConvert
		case dt.IsFloat() && srcSigned:
			op = OpConvertSToF
		case dt.IsFloat():
			op = OpConvertUToF
		case st.IsFloat() && dstSigned:
			op = OpConvertFToS
		case st.IsFloat():
			op = OpConvertFToU
		case dt.Width() == st.Width():
			// same bits, only the interpretation changes
			return src, nil
		case dt.Width() > st.Width() && srcSigned:
			op = OpSConvert
		default:
			op = OpUConvert
		}
		return c.b.AddUnaryOp(op, c.typeOf(dt), src), nil
	}
}
