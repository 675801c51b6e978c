package spirv

import "github.com/jurealeksic/shadPS4/ir"

// Wavefront state lives in Private variables. Reads and writes are plain
// loads and stores emitted in program order, so a Get observes the latest
// Set on its path.

func emitPrologue(c *EmitContext, inst *ir.Inst) (uint32, error) {
	c.b.AddStore(c.execVar(), c.constU64(^uint64(0)))
	c.b.AddStore(c.sccVar(), c.cache.ConstBool(false))
	c.b.AddStore(c.vccVar(), c.constU64(0))
	return 0, nil
}

func emitEpilogue(c *EmitContext, inst *ir.Inst) (uint32, error) { return 0, nil }

func emitDiscard(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if c.prog.Stage != ir.StageFragment {
		return 0, contractf("discard in %s stage", c.prog.Stage)
	}
	c.b.AddInst(OpDemoteToHelperInvocation)
	return 0, nil
}

func emitGetScc(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.b.AddLoad(c.boolType(), c.sccVar()), nil
}

func emitSetScc(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return 0, c.storeArg(c.sccVar(), inst.Arg(0))
}

func emitGetExec(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.b.AddLoad(c.u64(), c.execVar()), nil
}

func emitSetExec(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return 0, c.storeArg(c.execVar(), inst.Arg(0))
}

func emitGetVcc(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.b.AddLoad(c.u64(), c.vccVar()), nil
}

func emitSetVcc(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return 0, c.storeArg(c.vccVar(), inst.Arg(0))
}

func emitGetVccLo(c *EmitContext, inst *ir.Inst) (uint32, error) {
	vcc := c.b.AddLoad(c.u64(), c.vccVar())
	return c.b.AddUnaryOp(OpUConvert, c.u32(), vcc), nil
}

// emitSetVccLo replaces the low half of vcc and keeps the high half.
func emitSetVccLo(c *EmitContext, inst *ir.Inst) (uint32, error) {
	lo, err := c.value(inst.Arg(0))
	if err != nil {
		return 0, err
	}
	u64 := c.u64()
	vcc := c.b.AddLoad(u64, c.vccVar())
	hi := c.b.AddBinaryOp(OpBitwiseAnd, u64, vcc, c.constU64(0xffffffff00000000))
	wide := c.b.AddUnaryOp(OpUConvert, u64, lo)
	c.b.AddStore(c.vccVar(), c.b.AddBinaryOp(OpBitwiseOr, u64, hi, wide))
	return 0, nil
}

func (c *EmitContext) storeArg(ptr uint32, v ir.Value) error {
	id, err := c.value(v)
	if err != nil {
		return err
	}
	c.b.AddStore(ptr, id)
	return nil
}

// emitGetUserData folds registers seeded at compile time to constants and
// reads the others from push constants.
func emitGetUserData(c *EmitContext, inst *ir.Inst) (uint32, error) {
	reg := inst.Arg(0).ScalarReg()
	if reg >= ir.NumUserDataRegs {
		return 0, contractf("user data register %s out of range", reg)
	}
	if ud := c.prog.Info.UserData; uint32(reg) < uint32(len(ud)) {
		return c.constU32(ud[reg]), nil
	}
	return c.load(c.u32(), StorageClassPushConstant, c.userDataVar(), c.constU32(0), c.constU32(uint32(reg))), nil
}

func emitGetScalarRegister(c *EmitContext, inst *ir.Inst) (uint32, error) {
	reg := inst.Arg(0).ScalarReg()
	if reg >= ir.NumScalarRegs {
		return 0, contractf("scalar register %s out of range", reg)
	}
	return c.load(c.u32(), StorageClassPrivate, c.sgprVar(), c.constU32(uint32(reg))), nil
}

func emitSetScalarRegister(c *EmitContext, inst *ir.Inst) (uint32, error) {
	reg := inst.Arg(0).ScalarReg()
	if reg >= ir.NumScalarRegs {
		return 0, contractf("scalar register %s out of range", reg)
	}
	v, err := c.value(inst.Arg(1))
	if err != nil {
		return 0, err
	}
	c.store(c.u32(), StorageClassPrivate, c.sgprVar(), v, c.constU32(uint32(reg)))
	return 0, nil
}

func emitGetVectorRegister(c *EmitContext, inst *ir.Inst) (uint32, error) {
	reg := inst.Arg(0).VectorReg()
	if reg >= ir.NumVectorRegs {
		return 0, contractf("vector register %s out of range", reg)
	}
	return c.load(c.u32(), StorageClassPrivate, c.vgprVar(), c.constU32(uint32(reg))), nil
}

func emitSetVectorRegister(c *EmitContext, inst *ir.Inst) (uint32, error) {
	reg := inst.Arg(0).VectorReg()
	if reg >= ir.NumVectorRegs {
		return 0, contractf("vector register %s out of range", reg)
	}
	v, err := c.value(inst.Arg(1))
	if err != nil {
		return 0, err
	}
	c.store(c.u32(), StorageClassPrivate, c.vgprVar(), v, c.constU32(uint32(reg)))
	return 0, nil
}

func emitSetGotoVariable(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return 0, c.storeArg(c.gotoVar(inst.Arg(0).U32()), inst.Arg(1))
}

func emitGetGotoVariable(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.b.AddLoad(c.boolType(), c.gotoVar(inst.Arg(0).U32())), nil
}

func emitBarrier(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if c.prog.Stage != ir.StageCompute {
		return 0, unsupportedf("workgroup barrier in %s stage", c.prog.Stage)
	}
	sem := MemorySemanticsAcquireRelease | MemorySemanticsWorkgroupMemory
	c.b.AddInst(OpControlBarrier, c.constU32(ScopeWorkgroup), c.constU32(ScopeWorkgroup), c.constU32(sem))
	return 0, nil
}

func emitWorkgroupMemoryBarrier(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if c.prog.Stage != ir.StageCompute {
		return 0, unsupportedf("workgroup memory barrier in %s stage", c.prog.Stage)
	}
	sem := MemorySemanticsAcquireRelease | MemorySemanticsWorkgroupMemory
	c.b.AddInst(OpMemoryBarrier, c.constU32(ScopeWorkgroup), c.constU32(sem))
	return 0, nil
}

func emitDeviceMemoryBarrier(c *EmitContext, inst *ir.Inst) (uint32, error) {
	sem := MemorySemanticsAcquireRelease | MemorySemanticsUniformMemory | MemorySemanticsImageMemory
	c.b.AddInst(OpMemoryBarrier, c.constU32(ScopeDevice), c.constU32(sem))
	return 0, nil
}
