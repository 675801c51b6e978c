package spirv

import (
	"testing"

	"github.com/jurealeksic/shadPS4/ir"
)

func TestCacheDeduplicatesTypes(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	c := NewCache(b)

	u32 := c.Int(32)
	if c.Int(32) != u32 {
		t.Error("Int(32) declared twice")
	}
	if c.SInt(32) == u32 {
		t.Error("signed and unsigned 32-bit integers share an ID")
	}
	v4 := c.Vector(c.Float(32), 4)
	if c.Vector(c.Float(32), 4) != v4 {
		t.Error("vec4 declared twice")
	}
	if c.Pointer(StorageClassPrivate, u32) == c.Pointer(StorageClassFunction, u32) {
		t.Error("pointers in different storage classes share an ID")
	}
	if c.Array(u32, 4, 0) == c.Array(u32, 4, 16) {
		t.Error("arrays with and without stride share an ID")
	}

	instrs := decodeSPIRVInstructions(b.Build())
	if n := countOpcode(instrs, OpTypeInt); n != 2 {
		t.Errorf("OpTypeInt declared %d times, want 2", n)
	}
	if n := countOpcode(instrs, OpTypeVector); n != 1 {
		t.Errorf("OpTypeVector declared %d times, want 1", n)
	}
	if n := countOpcode(instrs, OpTypeArray); n != 2 {
		t.Errorf("OpTypeArray declared %d times, want 2", n)
	}
}

func TestCacheStructsAreNominal(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	c := NewCache(b)
	u32 := c.Int(32)
	calls := 0
	deco := func(uint32) { calls++ }

	a := c.Struct("a", deco, u32)
	if c.Struct("a", deco, u32) != a {
		t.Error("same tag and members declared twice")
	}
	if c.Struct("b", deco, u32) == a {
		t.Error("different tags share a struct")
	}
	if calls != 2 {
		t.Errorf("decorate ran %d times, want 2", calls)
	}
}

func TestCacheConstants(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	c := NewCache(b)

	if c.ConstU32(7) != c.ConstU32(7) {
		t.Error("ConstU32(7) declared twice")
	}
	if c.ConstU32(7) == c.ConstS32(7) {
		t.Error("signed and unsigned constants share an ID")
	}
	if c.ConstBool(true) == c.ConstBool(false) {
		t.Error("true and false share an ID")
	}

	// Bits above the width do not create a distinct constant.
	u16 := Signature{Class: ClassUint, Width: 16, Arity: 1}
	if c.Constant(u16, 0x1_0005) != c.Constant(u16, 5) {
		t.Error("16-bit constant keyed on bits above its width")
	}

	splat := c.Constant(Signature{Class: ClassFloat, Width: 32, Arity: 3}, 0x3F800000)
	bits, scalar, ok := c.IsConstant(splat)
	if !ok || scalar {
		t.Errorf("IsConstant(splat) = %d, %v, %v; want composite", bits, scalar, ok)
	}

	instrs := decodeSPIRVInstructions(b.Build())
	comp, ok := findOpcode(instrs, OpConstantComposite)
	if !ok {
		t.Fatal("no OpConstantComposite for splat")
	}
	if len(comp.words) != 5 || comp.words[2] != comp.words[3] || comp.words[3] != comp.words[4] {
		t.Errorf("splat composite operands = %v", comp.words)
	}
	wide := c.Constant(Signature{Class: ClassUint, Width: 64, Arity: 1}, 0x1122334455667788)
	for _, in := range decodeSPIRVInstructions(b.Build()) {
		if in.opcode == OpConstant && in.words[1] == wide {
			if len(in.words) != 4 || in.words[2] != 0x55667788 || in.words[3] != 0x11223344 {
				t.Errorf("64-bit constant words = %#x", in.words[2:])
			}
		}
	}
}

func TestCacheWidthCapabilities(t *testing.T) {
	tests := []struct {
		name string
		decl func(c *Cache)
		want Capability
	}{
		{"f16", func(c *Cache) { c.Float(16) }, CapabilityFloat16},
		{"f64", func(c *Cache) { c.Float(64) }, CapabilityFloat64},
		{"u8", func(c *Cache) { c.Int(8) }, CapabilityInt8},
		{"u16", func(c *Cache) { c.Int(16) }, CapabilityInt16},
		{"u64", func(c *Cache) { c.Int(64) }, CapabilityInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewModuleBuilder(Version1_3)
			tt.decl(NewCache(b))
			if !b.HasCapability(tt.want) {
				t.Errorf("declaring %s did not add %s", tt.name, tt.want)
			}
		})
	}
}

func TestSignatureOf(t *testing.T) {
	tests := []struct {
		in   ir.Type
		want string
		ok   bool
	}{
		{ir.U1, "bool", true},
		{ir.U32, "u32", true},
		{ir.F16x2, "f16x2", true},
		{ir.F64x4, "f64x4", true},
		{ir.U32x3, "u32x3", true},
		{ir.Void, "", false},
		{ir.U32 | ir.F32, "", false},
	}
	for _, tt := range tests {
		sig, ok := SignatureOf(tt.in)
		if ok != tt.ok {
			t.Errorf("SignatureOf(%s) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}
		if ok && sig.String() != tt.want {
			t.Errorf("SignatureOf(%s) = %s, want %s", tt.in, sig, tt.want)
		}
	}
}

func TestMaterializer(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	c := NewCache(b)
	m := NewMaterializer(b, c)

	id, err := m.Materialize(ir.Imm32(42))
	if err != nil || id != c.ConstU32(42) {
		t.Errorf("Materialize(u32:42) = %d, %v; want cached constant %d", id, err, c.ConstU32(42))
	}
	if _, err := m.Materialize(ir.Empty); err == nil {
		t.Error("empty operand materialized")
	}
	if _, err := m.Materialize(ir.SReg(3)); err == nil {
		t.Error("register operand materialized")
	}

	bld := ir.NewBuilder(ir.StageCompute)
	bld.SetInsertPoint(bld.NewBlock("entry"))
	inst := bld.Emit(ir.OpIAdd32, ir.Imm32(1), ir.Imm32(2))
	if _, err := m.Materialize(inst.Value()); err == nil {
		t.Error("use before definition materialized")
	}
	m.Define(inst, 99)
	if !m.Defined(inst) {
		t.Error("Defined = false after Define")
	}
	if id, _ := m.Materialize(inst.Value()); id != 99 {
		t.Errorf("Materialize = %d, want 99", id)
	}
}

func TestMaterializerReloadsSpillsOncePerBlock(t *testing.T) {
	b := NewModuleBuilder(Version1_3)
	c := NewCache(b)
	m := NewMaterializer(b, c)

	bld := ir.NewBuilder(ir.StageCompute)
	def := bld.NewBlock("def")
	use := bld.NewBlock("use")
	bld.SetInsertPoint(def)
	inst := bld.Emit(ir.OpIAdd32, ir.Imm32(1), ir.Imm32(2))

	m.spill(inst)
	m.at(def, 10)
	m.Define(inst, 50)

	m.at(use, 20)
	r1, _ := m.Materialize(inst.Value())
	r2, _ := m.Materialize(inst.Value())
	if r1 == 50 || r1 != r2 {
		t.Errorf("reloads in one block = %d, %d; want one load, not the definition", r1, r2)
	}
	m.at(use, 21)
	if r3, _ := m.Materialize(inst.Value()); r3 == r1 {
		t.Error("reload reused across SPIR-V blocks")
	}
	m.at(def, 10)
	if id, _ := m.Materialize(inst.Value()); id != 50 {
		t.Errorf("defining block read %d, want the definition", id)
	}

	instrs := decodeSPIRVInstructions(b.Build())
	if n := countOpcode(instrs, OpStore); n != 1 {
		t.Errorf("%d stores of the spilled value, want 1", n)
	}
	if n := countOpcode(instrs, OpLoad); n != 2 {
		t.Errorf("%d reloads, want 2", n)
	}
}

func TestCacheRejectsReusedIDs(t *testing.T) {
	c := NewCache(NewModuleBuilder(Version1_3))
	c.recordType(typeKey{op: OpTypeInt, a: 32}, 100)
	c.recordType(typeKey{op: OpTypeInt, a: 32}, 100)

	defer func() {
		if recover() == nil {
			t.Error("reusing a type id for another signature did not panic")
		}
	}()
	c.recordType(typeKey{op: OpTypeFloat, a: 32}, 100)
}
