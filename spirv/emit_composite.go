package spirv

import "github.com/jurealeksic/shadPS4/ir"

func emitCompositeConstruct(c *EmitContext, inst *ir.Inst) (uint32, error) {
	args, err := c.args(inst)
	if err != nil {
		return 0, err
	}
	return c.b.AddCompositeConstruct(c.typeOf(inst.Type()), args...), nil
}

func emitCompositeExtract(c *EmitContext, inst *ir.Inst) (uint32, error) {
	vec, err := c.value(inst.Arg(0))
	if err != nil {
		return 0, err
	}
	index := inst.Arg(1).U32()
	if n := inst.Arg(0).Type().Arity(); index >= uint32(n) {
		return 0, contractf("lane %d of a %d lane vector", index, n)
	}
	return c.b.AddCompositeExtract(c.typeOf(inst.Type()), vec, index), nil
}

func emitCompositeInsert(c *EmitContext, inst *ir.Inst) (uint32, error) {
	vec, err := c.value(inst.Arg(0))
	if err != nil {
		return 0, err
	}
	obj, err := c.value(inst.Arg(1))
	if err != nil {
		return 0, err
	}
	index := inst.Arg(2).U32()
	if n := inst.Type().Arity(); index >= uint32(n) {
		return 0, contractf("lane %d of a %d lane vector", index, n)
	}
	return c.b.AddOp(OpCompositeInsert, c.typeOf(inst.Type()), obj, vec, index), nil
}

func emitSelect(c *EmitContext, inst *ir.Inst) (uint32, error) {
	args, err := c.args(inst)
	if err != nil {
		return 0, err
	}
	return c.b.AddSelect(c.typeOf(inst.Type()), args[0], args[1], args[2]), nil
}

func emitUndef(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.cache.Undef(c.typeOf(inst.Type())), nil
}
