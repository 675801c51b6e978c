package spirv

import (
	"encoding/binary"
	"fmt"
	"strings"
)

// String returns the instruction name, or Op<n> for opcodes without one.
func (op OpCode) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}
	return fmt.Sprintf("Op%d", uint32(op))
}

// String returns the capability name.
func (c Capability) String() string {
	if s, ok := capabilityNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Capability(%d)", uint32(c))
}

// String returns the version as major.minor.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

var storageClassNames = map[uint32]string{
	0: "UniformConstant", 1: "Input", 2: "Uniform", 3: "Output", 4: "Workgroup",
	6: "Private", 7: "Function", 9: "PushConstant", 12: "StorageBuffer",
	5349: "PhysicalStorageBuffer",
}

var decorationNames = map[uint32]string{
	2: "Block", 6: "ArrayStride", 11: "BuiltIn", 14: "Flat", 24: "NonWritable",
	25: "NonReadable", 30: "Location", 33: "Binding", 34: "DescriptorSet",
	35: "Offset", 42: "NoContraction", 5300: "NonUniform",
}

var builtInNames = map[uint32]string{
	0: "Position", 7: "PrimitiveId", 8: "InvocationId", 15: "FragCoord",
	17: "FrontFacing", 18: "SampleId", 20: "SampleMask", 22: "FragDepth",
	26: "WorkgroupId", 27: "LocalInvocationId", 28: "GlobalInvocationId",
	29: "LocalInvocationIndex", 42: "VertexIndex", 43: "InstanceIndex",
}

var executionModeNames = map[uint32]string{
	0: "Invocations", 7: "OriginUpperLeft", 12: "DepthReplacing", 17: "LocalSize",
	22: "Triangles", 26: "OutputVertices", 29: "OutputTriangleStrip",
}

var executionModelNames = map[uint32]string{
	0: "Vertex", 3: "Geometry", 4: "Fragment", 5: "GLCompute",
}

var dimNames = map[uint32]string{
	0: "1D", 1: "2D", 2: "3D", 3: "Cube", 4: "Rect", 5: "Buffer", 6: "SubpassData",
}

var addressingNames = map[uint32]string{0: "Logical", 5348: "PhysicalStorageBuffer64"}

var memoryModelNames = map[uint32]string{0: "Simple", 1: "GLSL450", 3: "Vulkan"}

// Disassemble renders a module one instruction per line in the style of
// spirv-dis, with numeric IDs.
func Disassemble(data []byte) (string, error) {
	if len(data) < 20 || len(data)%4 != 0 {
		return "", fmt.Errorf("spirv: module of %d bytes is not a word stream with a header", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	if words[0] != MagicNumber {
		return "", fmt.Errorf("spirv: invalid magic 0x%08X", words[0])
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "; SPIR-V\n")
	fmt.Fprintf(&sb, "; Version: %d.%d\n", (words[1]>>16)&0xFF, (words[1]>>8)&0xFF)
	fmt.Fprintf(&sb, "; Generator: 0x%08X\n", words[2])
	fmt.Fprintf(&sb, "; Bound: %d\n", words[3])
	fmt.Fprintf(&sb, "; Schema: %d\n", words[4])

	for off := 5; off < len(words); {
		n := int(words[off] >> 16)
		if n == 0 || off+n > len(words) {
			return "", fmt.Errorf("spirv: invalid word count %d at word %d", n, off)
		}
		op := OpCode(words[off] & 0xFFFF)
		writeInstruction(&sb, op, words[off+1:off+n])
		off += n
	}
	return sb.String(), nil
}

// Result shapes of an instruction.
const (
	noResult = iota
	resultOnly
	typedResult
)

func resultShape(op OpCode) int {
	switch op {
	case OpNop, OpSource, OpSourceContinued, OpSourceExtension, OpName, OpMemberName,
		OpLine, OpExtension, OpMemoryModel, OpEntryPoint, OpExecutionMode, OpCapability,
		OpDecorate, OpMemberDecorate, OpStore, OpFunctionEnd, OpImageWrite,
		OpControlBarrier, OpMemoryBarrier, OpAtomicStore,
		OpLoopMerge, OpSelectionMerge, OpBranch, OpBranchConditional, OpSwitch,
		OpKill, OpReturn, OpReturnValue, OpUnreachable, OpDemoteToHelperInvocation:
		return noResult
	case OpString, OpExtInstImport, OpLabel:
		return resultOnly
	}
	if op >= OpTypeVoid && op <= OpTypeFunction {
		return resultOnly
	}
	return typedResult
}

func idStr(n uint32) string { return fmt.Sprintf("%%%d", n) }

func named(m map[uint32]string, v uint32) string {
	if s, ok := m[v]; ok {
		return s
	}
	return fmt.Sprintf("%d", v)
}

// literalString decodes a nul terminated string and returns it with the
// number of words it occupies.
func literalString(ops []uint32) (string, int) {
	var sb strings.Builder
	for i, w := range ops {
		for k := 0; k < 4; k++ {
			c := byte(w >> (8 * k))
			if c == 0 {
				return sb.String(), i + 1
			}
			sb.WriteByte(c)
		}
	}
	return sb.String(), len(ops)
}

// imageMaskAt is the operand position of the image operands mask. The result
// type counts as an operand; OpImageWrite has none.
func imageMaskAt(op OpCode) int {
	switch op {
	case OpImageSampleImplicitLod, OpImageSampleExplicitLod, OpImageFetch, OpImageRead, OpImageWrite:
		return 3
	case OpImageSampleDrefImplicitLod, OpImageSampleDrefExplicitLod, OpImageGather, OpImageDrefGather:
		return 4
	}
	return -1
}

func writeInstruction(sb *strings.Builder, op OpCode, ops []uint32) {
	switch shape := resultShape(op); {
	case shape == resultOnly && len(ops) > 0:
		fmt.Fprintf(sb, "%12s = ", idStr(ops[0]))
		ops = ops[1:]
	case shape == typedResult && len(ops) > 1:
		fmt.Fprintf(sb, "%12s = ", idStr(ops[1]))
		ops = append([]uint32{ops[0]}, ops[2:]...)
	default:
		sb.WriteString("               ")
	}
	sb.WriteString(op.String())

	var args []string
	ids := func(ws []uint32) {
		for _, w := range ws {
			args = append(args, idStr(w))
		}
	}
	lits := func(ws []uint32) {
		for _, w := range ws {
			args = append(args, fmt.Sprintf("%d", w))
		}
	}
	str := func(ws []uint32) int {
		s, n := literalString(ws)
		args = append(args, fmt.Sprintf("%q", s))
		return n
	}

	switch {
	case len(ops) == 0:
	case op == OpCapability:
		args = append(args, Capability(ops[0]).String())
	case op == OpExtension, op == OpExtInstImport:
		str(ops)
	case op == OpMemoryModel && len(ops) == 2:
		args = append(args, named(addressingNames, ops[0]), named(memoryModelNames, ops[1]))
	case op == OpEntryPoint && len(ops) >= 2:
		args = append(args, named(executionModelNames, ops[0]), idStr(ops[1]))
		n := str(ops[2:])
		ids(ops[2+n:])
	case op == OpExecutionMode && len(ops) >= 2:
		args = append(args, idStr(ops[0]), named(executionModeNames, ops[1]))
		lits(ops[2:])
	case op == OpName:
		ids(ops[:1])
		str(ops[1:])
	case op == OpMemberName && len(ops) >= 2:
		ids(ops[:1])
		lits(ops[1:2])
		str(ops[2:])
	case op == OpDecorate && len(ops) >= 2:
		args = append(args, idStr(ops[0]), named(decorationNames, ops[1]))
		if Decoration(ops[1]) == DecorationBuiltIn && len(ops) > 2 {
			args = append(args, named(builtInNames, ops[2]))
		} else {
			lits(ops[2:])
		}
	case op == OpMemberDecorate && len(ops) >= 3:
		args = append(args, idStr(ops[0]), fmt.Sprintf("%d", ops[1]), named(decorationNames, ops[2]))
		lits(ops[3:])
	case op == OpTypeInt, op == OpTypeFloat:
		lits(ops)
	case op == OpTypeVector:
		ids(ops[:1])
		lits(ops[1:])
	case op == OpTypeImage && len(ops) >= 2:
		args = append(args, idStr(ops[0]), named(dimNames, ops[1]))
		lits(ops[2:])
	case op == OpTypePointer && len(ops) == 2:
		args = append(args, named(storageClassNames, ops[0]), idStr(ops[1]))
	case op == OpConstant:
		ids(ops[:1])
		lits(ops[1:])
	case op == OpVariable && len(ops) >= 2:
		args = append(args, idStr(ops[0]), named(storageClassNames, ops[1]))
		ids(ops[2:])
	case op == OpFunction && len(ops) == 3:
		args = append(args, idStr(ops[0]), fmt.Sprintf("%d", ops[1]), idStr(ops[2]))
	case op == OpLoad && len(ops) >= 2:
		ids(ops[:2])
		lits(ops[2:])
	case op == OpCompositeExtract && len(ops) >= 2:
		ids(ops[:2])
		lits(ops[2:])
	case (op == OpCompositeInsert || op == OpVectorShuffle) && len(ops) >= 3:
		ids(ops[:3])
		lits(ops[3:])
	case op == OpExtInst && len(ops) >= 3:
		ids(ops[:2])
		lits(ops[2:3])
		ids(ops[3:])
	case op == OpSelectionMerge:
		ids(ops[:1])
		lits(ops[1:])
	case op == OpLoopMerge && len(ops) >= 2:
		ids(ops[:2])
		lits(ops[2:])
	case op == OpSwitch && len(ops) >= 2:
		ids(ops[:2])
		for i := 2; i+1 < len(ops); i += 2 {
			args = append(args, fmt.Sprintf("%d", ops[i]), idStr(ops[i+1]))
		}
	case imageMaskAt(op) >= 0 && len(ops) > imageMaskAt(op):
		at := imageMaskAt(op)
		ids(ops[:at])
		lits(ops[at : at+1])
		ids(ops[at+1:])
	default:
		ids(ops)
	}
	for _, a := range args {
		sb.WriteByte(' ')
		sb.WriteString(a)
	}
	sb.WriteByte('\n')
}
