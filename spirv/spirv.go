// Package spirv lowers shader IR programs to SPIR-V binary modules.
//
// SPIR-V is the standard intermediate language for GPU shaders,
// used by Vulkan, OpenCL, and other APIs.
package spirv

import (
	"log/slog"
)

// Version represents a SPIR-V version.
type Version struct {
	Major uint8
	Minor uint8
}

// Common SPIR-V versions
var (
	Version1_0 = Version{1, 0}
	Version1_3 = Version{1, 3}
	Version1_4 = Version{1, 4}
	Version1_5 = Version{1, 5}
	Version1_6 = Version{1, 6}
)

// AtLeast reports whether v is the same as or newer than o.
func (v Version) AtLeast(o Version) bool {
	return v.Major > o.Major || (v.Major == o.Major && v.Minor >= o.Minor)
}

// Profile lists the optional device features the emitted module may use.
// Features a program needs but the profile lacks fail compilation with
// ErrUnsupported before anything is emitted.
type Profile struct {
	Float16                   bool
	Float64                   bool
	Int8                      bool
	Int16                     bool
	Int64                     bool
	FusedMultiplyAdd          bool
	ImageGatherExtended       bool
	RuntimeDescriptorArray    bool
	NonUniformIndexing        bool
	BufferDeviceAddress       bool
	DemoteToHelperInvocation  bool
	StorageImageWithoutFormat bool
}

// FullProfile enables every feature.
func FullProfile() Profile {
	return Profile{
		Float16:                   true,
		Float64:                   true,
		Int8:                      true,
		Int16:                     true,
		Int64:                     true,
		FusedMultiplyAdd:          true,
		ImageGatherExtended:       true,
		RuntimeDescriptorArray:    true,
		NonUniformIndexing:        true,
		BufferDeviceAddress:       true,
		DemoteToHelperInvocation:  true,
		StorageImageWithoutFormat: true,
	}
}

// Options configures SPIR-V generation.
type Options struct {
	// Version is the SPIR-V version to target
	Version Version

	// Profile gates optional capabilities
	Profile Profile

	// Debug emits OpName for named values and blocks
	Debug bool

	// Validation runs the IR validator before emission
	Validation bool

	// Logger receives debug output; nil discards it
	Logger *slog.Logger
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Version:    Version1_3,
		Profile:    FullProfile(),
		Validation: true,
	}
}

// SPIR-V magic number and constants
const (
	MagicNumber = 0x07230203
	GeneratorID = 0x00000000 // Unregistered generator
)

// Decoration represents a SPIR-V decoration.
type Decoration uint32

const (
	DecorationBlock         Decoration = 2
	DecorationArrayStride   Decoration = 6
	DecorationBuiltIn       Decoration = 11
	DecorationFlat          Decoration = 14
	DecorationNonWritable   Decoration = 24
	DecorationNonReadable   Decoration = 25
	DecorationLocation      Decoration = 30
	DecorationBinding       Decoration = 33
	DecorationDescriptorSet Decoration = 34
	DecorationOffset        Decoration = 35
	DecorationNoContraction Decoration = 42
	DecorationNonUniform    Decoration = 5300
)

// StorageClass represents a SPIR-V storage class.
type StorageClass uint32

const (
	StorageClassUniformConstant       StorageClass = 0
	StorageClassInput                 StorageClass = 1
	StorageClassUniform               StorageClass = 2
	StorageClassOutput                StorageClass = 3
	StorageClassWorkgroup             StorageClass = 4
	StorageClassPrivate               StorageClass = 6
	StorageClassFunction              StorageClass = 7
	StorageClassPushConstant          StorageClass = 9
	StorageClassStorageBuffer         StorageClass = 12
	StorageClassPhysicalStorageBuffer StorageClass = 5349
)

// BuiltIn represents a SPIR-V built-in variable.
type BuiltIn uint32

const (
	BuiltInPosition             BuiltIn = 0
	BuiltInPrimitiveID          BuiltIn = 7
	BuiltInInvocationID         BuiltIn = 8
	BuiltInFragCoord            BuiltIn = 15
	BuiltInFrontFacing          BuiltIn = 17
	BuiltInSampleID             BuiltIn = 18
	BuiltInSampleMask           BuiltIn = 20
	BuiltInFragDepth            BuiltIn = 22
	BuiltInWorkgroupID          BuiltIn = 26
	BuiltInLocalInvocationID    BuiltIn = 27
	BuiltInGlobalInvocationID   BuiltIn = 28
	BuiltInLocalInvocationIndex BuiltIn = 29
	BuiltInVertexIndex          BuiltIn = 42
	BuiltInInstanceIndex        BuiltIn = 43
)

// ExecutionModel represents a SPIR-V execution model.
type ExecutionModel uint32

const (
	ExecutionModelVertex    ExecutionModel = 0
	ExecutionModelGeometry  ExecutionModel = 3
	ExecutionModelFragment  ExecutionModel = 4
	ExecutionModelGLCompute ExecutionModel = 5
)

// ExecutionMode represents a SPIR-V execution mode.
type ExecutionMode uint32

const (
	ExecutionModeInvocations         ExecutionMode = 0
	ExecutionModeOriginUpperLeft     ExecutionMode = 7
	ExecutionModeDepthReplacing      ExecutionMode = 12
	ExecutionModeLocalSize           ExecutionMode = 17
	ExecutionModeTriangles           ExecutionMode = 22
	ExecutionModeOutputVertices      ExecutionMode = 26
	ExecutionModeOutputTriangleStrip ExecutionMode = 29
)

// AddressingModel represents a SPIR-V addressing model.
type AddressingModel uint32

const (
	AddressingModelLogical                 AddressingModel = 0
	AddressingModelPhysicalStorageBuffer64 AddressingModel = 5348
)

// MemoryModel represents a SPIR-V memory model.
type MemoryModel uint32

const (
	MemoryModelGLSL450 MemoryModel = 1
)

// Dim is the dimensionality of an image type.
type Dim uint32

const (
	Dim1D     Dim = 0
	Dim2D     Dim = 1
	Dim3D     Dim = 2
	DimCube   Dim = 3
	DimBuffer Dim = 5
)

// Image operand mask bits, in the order their operands must appear.
const (
	ImageOperandsBias         uint32 = 0x1
	ImageOperandsLod          uint32 = 0x2
	ImageOperandsGrad         uint32 = 0x4
	ImageOperandsConstOffset  uint32 = 0x8
	ImageOperandsOffset       uint32 = 0x10
	ImageOperandsConstOffsets uint32 = 0x20
	ImageOperandsSample       uint32 = 0x40
	ImageOperandsMinLod       uint32 = 0x80
	ImageOperandsNonPrivate   uint32 = 0x400
	ImageFormatUnknown        uint32 = 0
	MemoryAccessAligned       uint32 = 0x2
	SelectionControlNone      uint32 = 0
	LoopControlNone           uint32 = 0
	FunctionControlNone       uint32 = 0
	SourceLanguageUnknown     uint32 = 0
)

// Scope and memory semantics operands of barriers and atomics.
const (
	ScopeDevice     uint32 = 1
	ScopeWorkgroup  uint32 = 2
	ScopeInvocation uint32 = 4

	MemorySemanticsAcquireRelease  uint32 = 0x8
	MemorySemanticsUniformMemory   uint32 = 0x40
	MemorySemanticsWorkgroupMemory uint32 = 0x100
	MemorySemanticsImageMemory     uint32 = 0x800
)

// GLSL.std.450 extended instructions.
const (
	GLSLstd450RoundEven      uint32 = 2
	GLSLstd450Trunc          uint32 = 3
	GLSLstd450FAbs           uint32 = 4
	GLSLstd450SAbs           uint32 = 5
	GLSLstd450Floor          uint32 = 8
	GLSLstd450Ceil           uint32 = 9
	GLSLstd450Fract          uint32 = 10
	GLSLstd450Sin            uint32 = 13
	GLSLstd450Cos            uint32 = 14
	GLSLstd450Exp2           uint32 = 29
	GLSLstd450Log2           uint32 = 30
	GLSLstd450Sqrt           uint32 = 31
	GLSLstd450InverseSqrt    uint32 = 32
	GLSLstd450UMin           uint32 = 38
	GLSLstd450SMin           uint32 = 39
	GLSLstd450UMax           uint32 = 41
	GLSLstd450SMax           uint32 = 42
	GLSLstd450UClamp         uint32 = 44
	GLSLstd450SClamp         uint32 = 45
	GLSLstd450Fma            uint32 = 50
	GLSLstd450PackHalf2x16   uint32 = 58
	GLSLstd450UnpackHalf2x16 uint32 = 62
	GLSLstd450FindILsb       uint32 = 73
	GLSLstd450FindSMsb       uint32 = 74
	GLSLstd450FindUMsb       uint32 = 75
	GLSLstd450NMin           uint32 = 79
	GLSLstd450NMax           uint32 = 80
	GLSLstd450NClamp         uint32 = 81
)

// Extension names.
const (
	extDemoteToHelper        = "SPV_EXT_demote_to_helper_invocation"
	extDescriptorIndexing    = "SPV_EXT_descriptor_indexing"
	extPhysicalStorageBuffer = "SPV_KHR_physical_storage_buffer"
	extStorageBufferClass    = "SPV_KHR_storage_buffer_storage_class"
)
