package spirv

import (
	"encoding/binary"
	"testing"
)

func TestModuleBuilder_MinimalModule(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	data := builder.Build()

	if len(data) < 20 {
		t.Fatalf("Module too small: got %d bytes, want at least 20", len(data))
	}
	if magic := binary.LittleEndian.Uint32(data[0:4]); magic != MagicNumber {
		t.Errorf("Invalid magic number: got 0x%08X, want 0x%08X", magic, MagicNumber)
	}
	if version := binary.LittleEndian.Uint32(data[4:8]); version != 1<<16|3<<8 {
		t.Errorf("Invalid version: got 0x%08X, want 0x00010300", version)
	}
	if generator := binary.LittleEndian.Uint32(data[8:12]); generator != GeneratorID {
		t.Errorf("Invalid generator: got 0x%08X, want 0x%08X", generator, GeneratorID)
	}
	if bound := binary.LittleEndian.Uint32(data[12:16]); bound == 0 {
		t.Error("Bound should be > 0")
	}
	if schema := binary.LittleEndian.Uint32(data[16:20]); schema != 0 {
		t.Errorf("Schema should be 0, got %d", schema)
	}
}

func TestModuleBuilder_CapabilitiesSortedAndDeduplicated(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	builder.AddCapability(CapabilityInt64)
	builder.AddCapability(CapabilityShader)
	builder.AddCapability(CapabilityInt64)
	builder.AddExtension("SPV_KHR_physical_storage_buffer")
	builder.AddExtension("SPV_EXT_demote_to_helper_invocation")
	builder.AddExtension("SPV_KHR_physical_storage_buffer")
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	instrs := decodeSPIRVInstructions(builder.Build())

	var caps []uint32
	var exts []string
	for _, in := range instrs {
		switch in.opcode {
		case OpCapability:
			caps = append(caps, in.words[0])
		case OpExtension:
			s, _ := literalString(in.words)
			exts = append(exts, s)
		}
	}
	if len(caps) != 2 || caps[0] != uint32(CapabilityShader) || caps[1] != uint32(CapabilityInt64) {
		t.Errorf("capabilities = %v, want [Shader Int64]", caps)
	}
	if len(exts) != 2 || exts[0] != "SPV_EXT_demote_to_helper_invocation" {
		t.Errorf("extensions = %v, want two, sorted", exts)
	}
	if !builder.HasExtension("SPV_KHR_physical_storage_buffer") || builder.HasExtension("SPV_nope") {
		t.Error("HasExtension disagrees with AddExtension")
	}
}

func TestModuleBuilder_SectionOrder(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	cache := NewCache(builder)
	void := cache.Void()
	fn, _ := builder.BeginFunction(cache.Function(void), void)
	// Requested after the function started: must still land before it.
	u32 := cache.Int(32)
	v := builder.AddVariable(cache.Pointer(StorageClassPrivate, u32), StorageClassPrivate)
	builder.AddStore(v, cache.ConstU32(7))
	builder.AddReturn()
	builder.AddFunctionEnd()
	builder.AddCapability(CapabilityShader)
	builder.SetMemoryModel(AddressingModelLogical, MemoryModelGLSL450)
	builder.AddEntryPoint(ExecutionModelGLCompute, fn, "main", nil)
	builder.AddName(v, "counter")
	instrs := decodeSPIRVInstructions(builder.Build())

	order := []OpCode{OpCapability, OpMemoryModel, OpEntryPoint, OpName, OpTypeVoid, OpVariable, OpFunction, OpStore, OpFunctionEnd}
	at := 0
	for _, in := range instrs {
		if at < len(order) && in.opcode == order[at] {
			at++
		}
	}
	if at != len(order) {
		t.Errorf("section order broken at %s", order[at])
	}
}

func TestModuleBuilder_FunctionVariablesFollowEntryLabel(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	cache := NewCache(builder)
	void := cache.Void()
	builder.BeginFunction(cache.Function(void), void)
	builder.AddBranch(builder.AllocID())
	ptr := cache.Pointer(StorageClassFunction, cache.Int(32))
	builder.AddFunctionVariable(ptr)
	instrs := decodeSPIRVInstructions(builder.Build())

	for i, in := range instrs {
		if in.opcode == OpLabel {
			if instrs[i+1].opcode != OpVariable {
				t.Fatalf("instruction after entry label = %s, want OpVariable", instrs[i+1].opcode)
			}
			return
		}
	}
	t.Fatal("no entry label")
}

func TestModuleBuilder_Patch(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	cache := NewCache(builder)
	void := cache.Void()
	u32 := cache.Int(32)
	builder.BeginFunction(cache.Function(void), void)
	_, patch := builder.AddOpPatched(OpPhi, u32, 0, 0, 0)
	builder.ApplyPatch(patch.At(0), 11)
	builder.ApplyPatch(patch.At(1), 12)
	phi, ok := findOpcode(decodeSPIRVInstructions(builder.Build()), OpPhi)
	if !ok {
		t.Fatal("no OpPhi")
	}
	if phi.words[2] != 11 || phi.words[3] != 12 {
		t.Errorf("patched operands = %v, want [11 12]", phi.words[2:])
	}
}

func TestInstructionBuilder_String(t *testing.T) {
	builder := NewInstructionBuilder()
	builder.AddString("main")
	inst := builder.Build(OpName)

	// "main" + NUL needs two words
	if len(inst.Words) != 2 {
		t.Fatalf("Expected 2 words for 'main', got %d", len(inst.Words))
	}
	if inst.Words[0] != 0x6E69616D {
		t.Errorf("first word = 0x%08X, want 0x6E69616D", inst.Words[0])
	}
	if inst.Words[1] != 0 {
		t.Errorf("terminator word = 0x%08X, want 0", inst.Words[1])
	}
}

func TestInstructionBuilder_Encode(t *testing.T) {
	builder := NewInstructionBuilder()
	builder.AddWords(1, 2, 3)
	words := builder.Build(OpIAdd).Encode()
	if len(words) != 4 || words[0] != 4<<16|uint32(OpIAdd) {
		t.Errorf("Encode = %v", words)
	}
}

func TestModuleBuilder_IDAllocation(t *testing.T) {
	builder := NewModuleBuilder(Version1_3)
	id1 := builder.AllocID()
	id2 := builder.AllocID()
	id3 := builder.AllocID()

	if id1 != 1 || id2 != 2 || id3 != 3 {
		t.Errorf("IDs = %d, %d, %d, want 1, 2, 3", id1, id2, id3)
	}
	if builder.Bound() != 4 {
		t.Errorf("Bound = %d, want 4", builder.Bound())
	}
}
