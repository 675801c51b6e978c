package spirv

import "github.com/jurealeksic/shadPS4/ir"

// bufferHandle resolves the immediate resource handle of a buffer access.
func (c *EmitContext) bufferHandle(v ir.Value) (uint32, ir.BufferResource, error) {
	if !v.IsImmediate() {
		return 0, ir.BufferResource{}, contractf("buffer handle must be an immediate, got %s", v)
	}
	return c.bufferVar(v.U32())
}

// bufferWord returns a pointer to the 32-bit word at index of a buffer.
// Uniform buffers are arrays of uvec4, storage buffers arrays of uint.
func (c *EmitContext) bufferWord(id uint32, res ir.BufferResource, index uint32) uint32 {
	u32 := c.u32()
	zero := c.constU32(0)
	if res.Storage {
		return c.b.AddAccessChain(c.cache.Pointer(StorageClassStorageBuffer, u32), id, zero, index)
	}
	vec := c.b.AddBinaryOp(OpShiftRightLogical, u32, index, c.constU32(2))
	lane := c.b.AddBinaryOp(OpBitwiseAnd, u32, index, c.constU32(3))
	return c.b.AddAccessChain(c.cache.Pointer(StorageClassUniform, u32), id, zero, vec, lane)
}

// wordIndex converts a byte address plus the instruction's immediate offset
// into a word index.
func (c *EmitContext) wordIndex(inst *ir.Inst, address ir.Value) (uint32, error) {
	addr, err := c.value(address)
	if err != nil {
		return 0, err
	}
	u32 := c.u32()
	if off := ir.BufferInstInfo(inst.Flags).Offset(); off != 0 {
		addr = c.b.AddBinaryOp(OpIAdd, u32, addr, c.constU32(off))
	}
	return c.b.AddBinaryOp(OpShiftRightLogical, u32, addr, c.constU32(2)), nil
}

func (c *EmitContext) offsetWord(index uint32, n uint32) uint32 {
	if n == 0 {
		return index
	}
	return c.b.AddBinaryOp(OpIAdd, c.u32(), index, c.constU32(n))
}

// loadBuffer lowers LoadBuffer{F32,U32}{,x2,x3,x4}: one word per lane.
func loadBuffer() emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		id, res, err := c.bufferHandle(inst.Arg(0))
		if err != nil {
			return 0, err
		}
		index, err := c.wordIndex(inst, inst.Arg(1))
		if err != nil {
			return 0, err
		}
		t := inst.Type()
		n := t.Arity()
		lanes := make([]uint32, n)
		for i := range lanes {
			lanes[i] = c.b.AddLoad(c.u32(), c.bufferWord(id, res, c.offsetWord(index, uint32(i))))
			if t.IsFloat() {
				lanes[i] = c.b.AddUnaryOp(OpBitcast, c.f32(), lanes[i])
			}
		}
		if n == 1 {
			return lanes[0], nil
		}
		return c.b.AddCompositeConstruct(c.typeOf(t), lanes...), nil
	}
}

func storeBuffer() emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		id, res, err := c.bufferHandle(inst.Arg(0))
		if err != nil {
			return 0, err
		}
		if !res.Storage {
			return 0, contractf("store to uniform buffer %d", inst.Arg(0).U32())
		}
		index, err := c.wordIndex(inst, inst.Arg(1))
		if err != nil {
			return 0, err
		}
		v, err := c.value(inst.Arg(2))
		if err != nil {
			return 0, err
		}
		t := inst.Arg(2).Type()
		for i, lane := range c.lanes(v, t) {
			if t.IsFloat() {
				lane = c.b.AddUnaryOp(OpBitcast, c.u32(), lane)
			}
			c.b.AddStore(c.bufferWord(id, res, c.offsetWord(index, uint32(i))), lane)
		}
		return 0, nil
	}
}

// lanes splits a vector into its components.
func (c *EmitContext) lanes(v uint32, t ir.Type) []uint32 {
	n := t.Arity()
	if n == 1 {
		return []uint32{v}
	}
	elem := c.typeOf(t.Element())
	out := make([]uint32, n)
	for i := range out {
		out[i] = c.b.AddCompositeExtract(elem, v, uint32(i))
	}
	return out
}

// readConstBuffer lowers ReadConstBuffer and ReadConstBufferU32. The index
// counts 32-bit words.
func readConstBuffer(float bool) emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		id, res, err := c.bufferHandle(inst.Arg(0))
		if err != nil {
			return 0, err
		}
		index, err := c.value(inst.Arg(1))
		if err != nil {
			return 0, err
		}
		v := c.b.AddLoad(c.u32(), c.bufferWord(id, res, index))
		if float {
			v = c.b.AddUnaryOp(OpBitcast, c.f32(), v)
		}
		return v, nil
	}
}

// emitReadConst loads a word through a 64-bit device address: base is the
// address as two words, offset counts words.
func emitReadConst(c *EmitContext, inst *ir.Inst) (uint32, error) {
	base, err := c.value(inst.Arg(0))
	if err != nil {
		return 0, err
	}
	off, err := c.value(inst.Arg(1))
	if err != nil {
		return 0, err
	}
	u64 := c.u64()
	addr := c.b.AddUnaryOp(OpBitcast, u64, base)
	wide := c.b.AddUnaryOp(OpUConvert, u64, off)
	bytes := c.b.AddBinaryOp(OpShiftLeftLogical, u64, wide, c.constU32(2))
	addr = c.b.AddBinaryOp(OpIAdd, u64, addr, bytes)
	ptr := c.b.AddUnaryOp(OpConvertUToPtr, c.cache.Pointer(StorageClassPhysicalStorageBuffer, c.u32()), addr)
	return c.b.AddLoad(c.u32(), ptr, MemoryAccessAligned, 4), nil
}

// Shared memory is an array of 32-bit words. Narrow accesses select a field
// of the containing word; narrow writes update it atomically so invocations
// writing neighbouring bytes do not race.

func (c *EmitContext) sharedWord(shared, index uint32) uint32 {
	return c.b.AddAccessChain(c.cache.Pointer(StorageClassWorkgroup, c.u32()), shared, index)
}

// subWord returns the word pointer and the bit offset of a narrow field.
func (c *EmitContext) subWord(shared, addr uint32, bits uint32) (ptr, shift uint32) {
	u32 := c.u32()
	index := c.b.AddBinaryOp(OpShiftRightLogical, u32, addr, c.constU32(2))
	byteInWord := c.b.AddBinaryOp(OpBitwiseAnd, u32, addr, c.constU32(4-bits/8))
	shift = c.b.AddBinaryOp(OpShiftLeftLogical, u32, byteInWord, c.constU32(3))
	return c.sharedWord(shared, index), shift
}

func readShared(bits uint32, signed bool) emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		shared, err := c.sharedVar()
		if err != nil {
			return 0, err
		}
		addr, err := c.value(inst.Arg(0))
		if err != nil {
			return 0, err
		}
		u32 := c.u32()
		if bits < 32 {
			ptr, shift := c.subWord(shared, addr, bits)
			word := c.b.AddLoad(u32, ptr)
			op := OpBitFieldUExtract
			if signed {
				op = OpBitFieldSExtract
			}
			return c.b.AddOp(op, u32, word, shift, c.constU32(bits)), nil
		}
		index := c.b.AddBinaryOp(OpShiftRightLogical, u32, addr, c.constU32(2))
		n := bits / 32
		words := make([]uint32, n)
		for i := range words {
			words[i] = c.b.AddLoad(u32, c.sharedWord(shared, c.offsetWord(index, uint32(i))))
		}
		if n == 1 {
			return words[0], nil
		}
		return c.b.AddCompositeConstruct(c.typeOf(inst.Type()), words...), nil
	}
}

func writeShared(bits uint32) emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		shared, err := c.sharedVar()
		if err != nil {
			return 0, err
		}
		addr, err := c.value(inst.Arg(0))
		if err != nil {
			return 0, err
		}
		v, err := c.value(inst.Arg(1))
		if err != nil {
			return 0, err
		}
		u32 := c.u32()
		if bits < 32 {
			ptr, shift := c.subWord(shared, addr, bits)
			field := uint32(1)<<bits - 1
			mask := c.b.AddBinaryOp(OpShiftLeftLogical, u32, c.constU32(field), shift)
			keep := c.b.AddUnaryOp(OpNot, u32, mask)
			val := c.b.AddBinaryOp(OpBitwiseAnd, u32, v, c.constU32(field))
			val = c.b.AddBinaryOp(OpShiftLeftLogical, u32, val, shift)
			scope := c.constU32(ScopeWorkgroup)
			relaxed := c.constU32(0)
			c.b.AddOp(OpAtomicAnd, u32, ptr, scope, relaxed, keep)
			c.b.AddOp(OpAtomicOr, u32, ptr, scope, relaxed, val)
			return 0, nil
		}
		index := c.b.AddBinaryOp(OpShiftRightLogical, u32, addr, c.constU32(2))
		for i, w := range c.lanes(v, inst.Arg(1).Type()) {
			c.b.AddStore(c.sharedWord(shared, c.offsetWord(index, uint32(i))), w)
		}
		return 0, nil
	}
}
