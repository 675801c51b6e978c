package spvsim

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"
)

// asm assembles a module by hand.
type asm struct {
	words []uint32
	next  uint32
}

func (a *asm) id() uint32 {
	a.next++
	return a.next
}

func (a *asm) op(op uint32, ops ...uint32) {
	a.words = append(a.words, uint32(len(ops)+1)<<16|op)
	a.words = append(a.words, ops...)
}

func (a *asm) bytes() []byte {
	head := []uint32{magic, 0x00010300, 0, a.next + 1, 0}
	all := append(head, a.words...)
	out := make([]byte, 4*len(all))
	for i, w := range all {
		binary.LittleEndian.PutUint32(out[4*i:], w)
	}
	return out
}

func str(s string) []uint32 {
	b := append([]byte(s), 0)
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	out := make([]uint32, len(b)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(b[4*i:])
	}
	return out
}

// kernel is a compute module with a storage buffer at set 0 binding 0 whose
// body is written by the caller between the entry label and OpReturn.
type kernel struct {
	asm
	glsl, void, u32, f32, boolT, u64 uint32
	bufPtr, elemPtr, buf             uint32
	fn                               uint32
	consts                           map[uint32]uint32
}

func newKernel() *kernel {
	k := &kernel{consts: make(map[uint32]uint32)}
	k.glsl = k.id()
	k.fn = k.id()
	k.op(opExtInstImport, append([]uint32{k.glsl}, str("GLSL.std.450")...)...)
	k.op(opEntryPoint, append([]uint32{5, k.fn}, str("main")...)...)
	k.void = k.id()
	k.op(opTypeVoid, k.void)
	k.boolT = k.id()
	k.op(opTypeBool, k.boolT)
	k.u32 = k.id()
	k.op(opTypeInt, k.u32, 32, 0)
	k.u64 = k.id()
	k.op(opTypeInt, k.u64, 64, 0)
	k.f32 = k.id()
	k.op(opTypeFloat, k.f32, 32)
	arr := k.id()
	k.op(opTypeRuntimeArray, arr, k.u32)
	st := k.id()
	k.op(opTypeStruct, st, arr)
	k.bufPtr = k.id()
	k.op(opTypePointer, k.bufPtr, classStorageBuffer, st)
	k.elemPtr = k.id()
	k.op(opTypePointer, k.elemPtr, classStorageBuffer, k.u32)
	k.buf = k.id()
	k.op(opDecorate, k.buf, decorationDescriptorSet, 0)
	k.op(opDecorate, k.buf, decorationBinding, 0)
	k.op(opVariable, k.bufPtr, k.buf, classStorageBuffer)
	return k
}

func (k *kernel) constU32(v uint32) uint32 {
	if id, ok := k.consts[v]; ok {
		return id
	}
	id := k.id()
	k.op(opConstant, k.u32, id, v)
	k.consts[v] = id
	return id
}

func (k *kernel) constF32(f float32) uint32 {
	id := k.id()
	k.op(opConstant, k.f32, id, math.Float32bits(f))
	return id
}

// begin opens the function; constants must be declared before.
func (k *kernel) begin() {
	fnType := k.id()
	k.op(opTypeFunction, fnType, k.void)
	k.op(opFunction, k.void, k.fn, 0, fnType)
	k.op(opLabel, k.id())
}

func (k *kernel) result(t, op uint32, ops ...uint32) uint32 {
	id := k.id()
	k.op(op, append([]uint32{t, id}, ops...)...)
	return id
}

func (k *kernel) store(index, v uint32) {
	ptr := k.result(k.elemPtr, opAccessChain, k.buf, k.constU32(0), index)
	k.op(opStore, ptr, v)
}

func (k *kernel) end() []byte {
	k.op(opReturn)
	k.op(opFunctionEnd)
	return k.bytes()
}

func run(t *testing.T, data []byte, words int) []uint32 {
	t.Helper()
	m, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.BindBuffer(0, 0, make([]uint32, words)); err != nil {
		t.Fatalf("BindBuffer: %v", err)
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out, err := m.Buffer(0, 0)
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	return out
}

func TestIntegerArithmetic(t *testing.T) {
	k := newKernel()
	for _, v := range []uint32{0, 1, 2, 3, 4, 5, 6, 7, 0xFFFFFFF9, 0xF0, 0x10} {
		k.constU32(v)
	}
	k.begin()
	cu := k.constU32
	k.store(cu(0), k.result(k.u32, opIAdd, cu(3), cu(4)))
	k.store(cu(1), k.result(k.u32, opISub, cu(3), cu(4)))
	k.store(cu(2), k.result(k.u32, opSDiv, cu(0xFFFFFFF9), cu(2)))
	k.store(cu(3), k.result(k.u32, opBitFieldUExtract, cu(0xF0), cu(4), cu(4)))
	k.store(cu(4), k.result(k.u32, opExtInst, k.glsl, glslFindUMsb, cu(0x10)))
	k.store(cu(5), k.result(k.u32, opShiftRightArithmetic, cu(0xFFFFFFF9), cu(1)))
	k.store(cu(6), k.result(k.u32, opBitCount, cu(0xF0)))
	k.store(cu(7), k.result(k.u32, opExtInst, k.glsl, glslFindUMsb, cu(0)))
	out := run(t, k.end(), 8)

	want := []uint32{7, 0xFFFFFFFF, 0xFFFFFFFD, 0xF, 4, 0xFFFFFFFC, 4, 0xFFFFFFFF}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("word %d = %#x, want %#x", i, out[i], w)
		}
	}
}

func TestFloatComparisonsWithNaN(t *testing.T) {
	k := newKernel()
	cu := k.constU32
	nan := k.constF32(float32(math.NaN()))
	one := k.constF32(1)
	for _, v := range []uint32{0, 1, 2, 3} {
		cu(v)
	}
	k.begin()
	sel := func(b uint32) uint32 { return k.result(k.u32, opSelect, b, cu(1), cu(0)) }
	k.store(cu(0), sel(k.result(k.boolT, opFOrdEqual, nan, nan)))
	k.store(cu(1), sel(k.result(k.boolT, opFUnordEqual, nan, nan)))
	k.store(cu(2), sel(k.result(k.boolT, opFOrdLessThan, one, nan)))
	k.store(cu(3), sel(k.result(k.boolT, opFOrdEqual, one, one)))
	out := run(t, k.end(), 4)

	want := []uint32{0, 1, 0, 1}
	for i, w := range want {
		if out[i] != w {
			t.Errorf("comparison %d = %d, want %d", i, out[i], w)
		}
	}
}

func TestLoopWithPhi(t *testing.T) {
	k := newKernel()
	cu := k.constU32
	zero, one, five := cu(0), cu(1), cu(5)
	fnType := k.id()
	k.op(opTypeFunction, fnType, k.void)
	k.op(opFunction, k.void, k.fn, 0, fnType)
	entry, header, body, merge := k.id(), k.id(), k.id(), k.id()
	i, sum := k.id(), k.id()

	k.op(opLabel, entry)
	k.op(opBranch, header)

	k.op(opLabel, header)
	next := k.id()
	total := k.id()
	k.op(opPhi, k.u32, i, zero, entry, next, body)
	k.op(opPhi, k.u32, sum, zero, entry, total, body)
	cond := k.result(k.boolT, opULessThan, i, five)
	k.op(opLoopMerge, merge, body, 0)
	k.op(opBranchConditional, cond, body, merge)

	k.op(opLabel, body)
	k.op(opIAdd, k.u32, total, sum, i)
	k.op(opIAdd, k.u32, next, i, one)
	k.op(opBranch, header)

	k.op(opLabel, merge)
	k.store(zero, sum)
	out := run(t, k.end(), 1)
	if out[0] != 10 {
		t.Errorf("sum = %d, want 10", out[0])
	}
}

func TestSwitch(t *testing.T) {
	k := newKernel()
	cu := k.constU32
	zero, two, seven, nine := cu(0), cu(2), cu(7), cu(9)
	fnType := k.id()
	k.op(opTypeFunction, fnType, k.void)
	k.op(opFunction, k.void, k.fn, 0, fnType)
	entry, a, b, def := k.id(), k.id(), k.id(), k.id()
	k.op(opLabel, entry)
	k.op(opSwitch, two, def, 1, a, 2, b)
	k.op(opLabel, a)
	k.store(zero, nine)
	k.op(opReturn)
	k.op(opLabel, b)
	k.store(zero, seven)
	k.op(opReturn)
	k.op(opLabel, def)
	out := run(t, k.end(), 1)
	if out[0] != 7 {
		t.Errorf("switch stored %d, want 7", out[0])
	}
}

func TestPhysicalLoad(t *testing.T) {
	k := newKernel()
	cu := k.constU32
	zero := cu(0)
	addr := k.id()
	k.op(opConstant, k.u64, addr, 0x1000, 0x1)
	ptr := k.id()
	k.op(opTypePointer, ptr, 5349, k.u32)
	k.begin()
	p := k.result(ptr, opConvertUToPtr, addr)
	k.store(zero, k.result(k.u32, opLoad, p, 2, 4))
	data := k.end()

	m, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.BindBuffer(0, 0, []uint32{0})
	m.BindMemory(0x1_0000_1000, []uint32{0xCAFEF00D})
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	out, _ := m.Buffer(0, 0)
	if out[0] != 0xCAFEF00D {
		t.Errorf("loaded %#x, want 0xCAFEF00D", out[0])
	}
}

func TestUnreachableIsAnError(t *testing.T) {
	k := newKernel()
	k.begin()
	k.op(opUnreachable)
	k.op(opFunctionEnd)
	m, err := Load(k.bytes())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	err = m.Run()
	if err == nil || !strings.Contains(err.Error(), "OpUnreachable") {
		t.Fatalf("Run error = %v, want OpUnreachable", err)
	}
}

func TestHalfConversions(t *testing.T) {
	tests := []struct {
		f float32
		h uint16
	}{
		{1, 0x3C00},
		{-2, 0xC000},
		{65504, 0x7BFF},
		{1e6, 0x7C00},
		{0.000000059604645, 0x0001},
		{0, 0},
	}
	for _, tt := range tests {
		if got := floatToHalf(tt.f); got != tt.h {
			t.Errorf("floatToHalf(%g) = %#04x, want %#04x", tt.f, got, tt.h)
		}
		if tt.h == 0x7C00 {
			continue
		}
		if got := halfToFloat(tt.h); got != tt.f {
			t.Errorf("halfToFloat(%#04x) = %g, want %g", tt.h, got, tt.f)
		}
	}
	if !math.IsNaN(float64(halfToFloat(floatToHalf(float32(math.NaN()))))) {
		t.Error("NaN did not survive a half round trip")
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	if _, err := Load([]byte{1, 2, 3}); err == nil {
		t.Error("Load accepted a truncated module")
	}
	k := newKernel()
	k.begin()
	k.op(opReturn)
	k.op(opFunctionEnd)
	data := k.bytes()
	data[0] ^= 0xFF
	if _, err := Load(data); err == nil {
		t.Error("Load accepted a bad magic number")
	}
}
