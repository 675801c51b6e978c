package ir

// Opcode identifies an IR instruction.
type Opcode uint16

const (
	// Microinstructions
	OpPhi Opcode = iota
	OpVoid
	OpIdentity
	OpReference
	OpConditionRef
	OpPhiMove
	OpJoin

	// Barriers
	OpBarrier
	OpWorkgroupMemoryBarrier
	OpDeviceMemoryBarrier

	// Special state
	OpPrologue
	OpEpilogue
	OpDiscard
	OpGetScc
	OpSetScc
	OpGetExec
	OpSetExec
	OpGetVcc
	OpSetVcc
	OpGetVccLo
	OpSetVccLo
	OpGetUserData
	OpGetScalarRegister
	OpSetScalarRegister
	OpGetVectorRegister
	OpSetVectorRegister
	OpSetGotoVariable
	OpGetGotoVariable

	// Buffers
	OpReadConst
	OpReadConstBuffer
	OpReadConstBufferU32
	OpLoadBufferF32
	OpLoadBufferF32x2
	OpLoadBufferF32x3
	OpLoadBufferF32x4
	OpLoadBufferU32
	OpLoadBufferU32x2
	OpLoadBufferU32x3
	OpLoadBufferU32x4
	OpStoreBufferF32
	OpStoreBufferF32x2
	OpStoreBufferF32x3
	OpStoreBufferF32x4
	OpStoreBufferU32
	OpStoreBufferU32x2
	OpStoreBufferU32x3
	OpStoreBufferU32x4

	// Attributes
	OpGetAttribute
	OpGetAttributeU32
	OpSetAttribute
	OpSetFragColor
	OpSetSampleMask
	OpSetFragDepth
	OpWorkgroupId
	OpLocalInvocationId
	OpInvocationId
	OpInvocationInfo
	OpSampleId

	// Undefined values
	OpUndefU1
	OpUndefU8
	OpUndefU16
	OpUndefU32
	OpUndefU64

	// Shared memory
	OpReadSharedU8
	OpReadSharedS8
	OpReadSharedU16
	OpReadSharedS16
	OpReadSharedU32
	OpReadSharedU64
	OpReadSharedU128
	OpWriteSharedU8
	OpWriteSharedU16
	OpWriteSharedU32
	OpWriteSharedU64
	OpWriteSharedU128

	// Composites
	OpCompositeConstructU32x2
	OpCompositeExtractU32x2
	OpCompositeInsertU32x2
	OpCompositeConstructU32x3
	OpCompositeExtractU32x3
	OpCompositeInsertU32x3
	OpCompositeConstructU32x4
	OpCompositeExtractU32x4
	OpCompositeInsertU32x4
	OpCompositeConstructF16x2
	OpCompositeExtractF16x2
	OpCompositeInsertF16x2
	OpCompositeConstructF16x3
	OpCompositeExtractF16x3
	OpCompositeInsertF16x3
	OpCompositeConstructF16x4
	OpCompositeExtractF16x4
	OpCompositeInsertF16x4
	OpCompositeConstructF32x2
	OpCompositeExtractF32x2
	OpCompositeInsertF32x2
	OpCompositeConstructF32x3
	OpCompositeExtractF32x3
	OpCompositeInsertF32x3
	OpCompositeConstructF32x4
	OpCompositeExtractF32x4
	OpCompositeInsertF32x4
	OpCompositeConstructF64x2
	OpCompositeExtractF64x2
	OpCompositeInsertF64x2
	OpCompositeConstructF64x3
	OpCompositeExtractF64x3
	OpCompositeInsertF64x3
	OpCompositeConstructF64x4
	OpCompositeExtractF64x4
	OpCompositeInsertF64x4

	// Select
	OpSelectU1
	OpSelectU8
	OpSelectU16
	OpSelectU32
	OpSelectU64
	OpSelectF16
	OpSelectF32
	OpSelectF64

	// Bitcasts
	OpBitCastU16F16
	OpBitCastU32F32
	OpBitCastU64F64
	OpBitCastF16U16
	OpBitCastF32U32
	OpBitCastF64U64
	OpPackUint2x32
	OpUnpackUint2x32
	OpPackFloat2x16
	OpUnpackFloat2x16
	OpPackHalf2x16
	OpUnpackHalf2x16

	// Floating point
	OpFPAbs16
	OpFPAdd16
	OpFPSub16
	OpFPMul16
	OpFPDiv16
	OpFPFma16
	OpFPMax16
	OpFPMin16
	OpFPNeg16
	OpFPSaturate16
	OpFPClamp16
	OpFPRoundEven16
	OpFPFloor16
	OpFPCeil16
	OpFPTrunc16
	OpFPAbs32
	OpFPAdd32
	OpFPSub32
	OpFPMul32
	OpFPDiv32
	OpFPFma32
	OpFPMax32
	OpFPMin32
	OpFPNeg32
	OpFPSaturate32
	OpFPClamp32
	OpFPRoundEven32
	OpFPFloor32
	OpFPCeil32
	OpFPTrunc32
	OpFPAbs64
	OpFPAdd64
	OpFPSub64
	OpFPMul64
	OpFPDiv64
	OpFPFma64
	OpFPMax64
	OpFPMin64
	OpFPNeg64
	OpFPSaturate64
	OpFPClamp64
	OpFPRoundEven64
	OpFPFloor64
	OpFPCeil64
	OpFPTrunc64
	OpFPRecip32
	OpFPRecipSqrt32
	OpFPRecip64
	OpFPRecipSqrt64
	OpFPSqrt
	OpFPSin
	OpFPCos
	OpFPExp2
	OpFPLog2
	OpFPFract

	// Floating point comparisons
	OpFPOrdEqual16
	OpFPOrdEqual32
	OpFPOrdEqual64
	OpFPUnordEqual16
	OpFPUnordEqual32
	OpFPUnordEqual64
	OpFPOrdNotEqual16
	OpFPOrdNotEqual32
	OpFPOrdNotEqual64
	OpFPUnordNotEqual16
	OpFPUnordNotEqual32
	OpFPUnordNotEqual64
	OpFPOrdLessThan16
	OpFPOrdLessThan32
	OpFPOrdLessThan64
	OpFPUnordLessThan16
	OpFPUnordLessThan32
	OpFPUnordLessThan64
	OpFPOrdGreaterThan16
	OpFPOrdGreaterThan32
	OpFPOrdGreaterThan64
	OpFPUnordGreaterThan16
	OpFPUnordGreaterThan32
	OpFPUnordGreaterThan64
	OpFPOrdLessThanEqual16
	OpFPOrdLessThanEqual32
	OpFPOrdLessThanEqual64
	OpFPUnordLessThanEqual16
	OpFPUnordLessThanEqual32
	OpFPUnordLessThanEqual64
	OpFPOrdGreaterThanEqual16
	OpFPOrdGreaterThanEqual32
	OpFPOrdGreaterThanEqual64
	OpFPUnordGreaterThanEqual16
	OpFPUnordGreaterThanEqual32
	OpFPUnordGreaterThanEqual64
	OpFPIsNan16
	OpFPIsNan32
	OpFPIsNan64

	// Integer
	OpIAdd32
	OpISub32
	OpIMul32
	OpSDiv32
	OpUDiv32
	OpINeg32
	OpIAbs32
	OpShiftLeftLogical32
	OpShiftRightLogical32
	OpShiftRightArithmetic32
	OpBitwiseAnd32
	OpBitwiseOr32
	OpBitwiseXor32
	OpSMin32
	OpUMin32
	OpSMax32
	OpUMax32
	OpSClamp32
	OpUClamp32
	OpIAdd64
	OpISub64
	OpIMul64
	OpSDiv64
	OpUDiv64
	OpINeg64
	OpIAbs64
	OpShiftLeftLogical64
	OpShiftRightLogical64
	OpShiftRightArithmetic64
	OpBitwiseAnd64
	OpBitwiseOr64
	OpBitwiseXor64
	OpSMin64
	OpUMin64
	OpSMax64
	OpUMax64
	OpSClamp64
	OpUClamp64
	OpBitFieldInsert
	OpBitFieldSExtract
	OpBitFieldUExtract
	OpBitReverse32
	OpBitCount32
	OpBitwiseNot32
	OpFindSMsb32
	OpFindUMsb32

	// Integer comparisons
	OpSLessThan
	OpULessThan
	OpIEqual
	OpSLessThanEqual
	OpULessThanEqual
	OpSGreaterThan
	OpUGreaterThan
	OpINotEqual
	OpSGreaterThanEqual
	OpUGreaterThanEqual

	// Logical
	OpLogicalOr
	OpLogicalAnd
	OpLogicalXor
	OpLogicalNot

	// Conversions
	OpConvertS8S16
	OpConvertS8S32
	OpConvertS8S64
	OpConvertS8U8
	OpConvertS8U16
	OpConvertS8U32
	OpConvertS8U64
	OpConvertS8F16
	OpConvertS8F32
	OpConvertS8F64
	OpConvertS16S8
	OpConvertS16S32
	OpConvertS16S64
	OpConvertS16U8
	OpConvertS16U16
	OpConvertS16U32
	OpConvertS16U64
	OpConvertS16F16
	OpConvertS16F32
	OpConvertS16F64
	OpConvertS32S8
	OpConvertS32S16
	OpConvertS32S64
	OpConvertS32U8
	OpConvertS32U16
	OpConvertS32U32
	OpConvertS32U64
	OpConvertS32F16
	OpConvertS32F32
	OpConvertS32F64
	OpConvertS64S8
	OpConvertS64S16
	OpConvertS64S32
	OpConvertS64U8
	OpConvertS64U16
	OpConvertS64U32
	OpConvertS64U64
	OpConvertS64F16
	OpConvertS64F32
	OpConvertS64F64
	OpConvertU8S8
	OpConvertU8S16
	OpConvertU8S32
	OpConvertU8S64
	OpConvertU8U16
	OpConvertU8U32
	OpConvertU8U64
	OpConvertU8F16
	OpConvertU8F32
	OpConvertU8F64
	OpConvertU16S8
	OpConvertU16S16
	OpConvertU16S32
	OpConvertU16S64
	OpConvertU16U8
	OpConvertU16U32
	OpConvertU16U64
	OpConvertU16F16
	OpConvertU16F32
	OpConvertU16F64
	OpConvertU32S8
	OpConvertU32S16
	OpConvertU32S32
	OpConvertU32S64
	OpConvertU32U8
	OpConvertU32U16
	OpConvertU32U64
	OpConvertU32F16
	OpConvertU32F32
	OpConvertU32F64
	OpConvertU64S8
	OpConvertU64S16
	OpConvertU64S32
	OpConvertU64S64
	OpConvertU64U8
	OpConvertU64U16
	OpConvertU64U32
	OpConvertU64F16
	OpConvertU64F32
	OpConvertU64F64
	OpConvertF16S8
	OpConvertF16S16
	OpConvertF16S32
	OpConvertF16S64
	OpConvertF16U8
	OpConvertF16U16
	OpConvertF16U32
	OpConvertF16U64
	OpConvertF16F32
	OpConvertF16F64
	OpConvertF32S8
	OpConvertF32S16
	OpConvertF32S32
	OpConvertF32S64
	OpConvertF32U8
	OpConvertF32U16
	OpConvertF32U32
	OpConvertF32U64
	OpConvertF32F16
	OpConvertF32F64
	OpConvertF64S8
	OpConvertF64S16
	OpConvertF64S32
	OpConvertF64S64
	OpConvertF64U8
	OpConvertF64U16
	OpConvertF64U32
	OpConvertF64U64
	OpConvertF64F16
	OpConvertF64F32

	// Images
	OpImageSampleImplicitLod
	OpImageSampleExplicitLod
	OpImageSampleDrefImplicitLod
	OpImageSampleDrefExplicitLod
	OpImageGather
	OpImageGatherDref
	OpImageFetch
	OpImageQueryDimensions
	OpImageQueryLod
	OpImageGradient
	OpImageRead
	OpImageWrite

	NumOpcodes
)

type opcodeMeta struct {
	name   string
	result Type
	args   []Type
	imm    uint8
}

var opcodeTable = [NumOpcodes]opcodeMeta{
	OpPhi:                        {"Phi", Opaque, nil, 0},
	OpVoid:                       {"Void", Void, nil, 0},
	OpIdentity:                   {"Identity", Opaque, []Type{Opaque}, 0},
	OpReference:                  {"Reference", Void, []Type{Opaque}, 0},
	OpConditionRef:               {"ConditionRef", U1, []Type{U1}, 0},
	OpPhiMove:                    {"PhiMove", Void, []Type{Opaque, Opaque}, 0},
	OpJoin:                       {"Join", Void, nil, 0},
	OpBarrier:                    {"Barrier", Void, nil, 0},
	OpWorkgroupMemoryBarrier:     {"WorkgroupMemoryBarrier", Void, nil, 0},
	OpDeviceMemoryBarrier:        {"DeviceMemoryBarrier", Void, nil, 0},
	OpPrologue:                   {"Prologue", Void, nil, 0},
	OpEpilogue:                   {"Epilogue", Void, nil, 0},
	OpDiscard:                    {"Discard", Void, nil, 0},
	OpGetScc:                     {"GetScc", U1, nil, 0},
	OpSetScc:                     {"SetScc", Void, []Type{U1}, 0},
	OpGetExec:                    {"GetExec", U64, nil, 0},
	OpSetExec:                    {"SetExec", Void, []Type{U64}, 0},
	OpGetVcc:                     {"GetVcc", U64, nil, 0},
	OpSetVcc:                     {"SetVcc", Void, []Type{U64}, 0},
	OpGetVccLo:                   {"GetVccLo", U32, nil, 0},
	OpSetVccLo:                   {"SetVccLo", Void, []Type{U32}, 0},
	OpGetUserData:                {"GetUserData", U32, []Type{ScalarRegType}, 0},
	OpGetScalarRegister:          {"GetScalarRegister", U32, []Type{ScalarRegType}, 0},
	OpSetScalarRegister:          {"SetScalarRegister", Void, []Type{ScalarRegType, U32}, 0},
	OpGetVectorRegister:          {"GetVectorRegister", U32, []Type{VectorRegType}, 0},
	OpSetVectorRegister:          {"SetVectorRegister", Void, []Type{VectorRegType, U32}, 0},
	OpSetGotoVariable:            {"SetGotoVariable", Void, []Type{U32, U1}, 0b1},
	OpGetGotoVariable:            {"GetGotoVariable", U1, []Type{U32}, 0b1},
	OpReadConst:                  {"ReadConst", U32, []Type{U32x2, U32}, 0},
	OpReadConstBuffer:            {"ReadConstBuffer", F32, []Type{U32, U32}, 0b1},
	OpReadConstBufferU32:         {"ReadConstBufferU32", U32, []Type{U32, U32}, 0b1},
	OpLoadBufferF32:              {"LoadBufferF32", F32, []Type{U32, U32}, 0b1},
	OpLoadBufferF32x2:            {"LoadBufferF32x2", F32x2, []Type{U32, U32}, 0b1},
	OpLoadBufferF32x3:            {"LoadBufferF32x3", F32x3, []Type{U32, U32}, 0b1},
	OpLoadBufferF32x4:            {"LoadBufferF32x4", F32x4, []Type{U32, U32}, 0b1},
	OpLoadBufferU32:              {"LoadBufferU32", U32, []Type{U32, U32}, 0b1},
	OpLoadBufferU32x2:            {"LoadBufferU32x2", U32x2, []Type{U32, U32}, 0b1},
	OpLoadBufferU32x3:            {"LoadBufferU32x3", U32x3, []Type{U32, U32}, 0b1},
	OpLoadBufferU32x4:            {"LoadBufferU32x4", U32x4, []Type{U32, U32}, 0b1},
	OpStoreBufferF32:             {"StoreBufferF32", Void, []Type{U32, U32, F32}, 0b1},
	OpStoreBufferF32x2:           {"StoreBufferF32x2", Void, []Type{U32, U32, F32x2}, 0b1},
	OpStoreBufferF32x3:           {"StoreBufferF32x3", Void, []Type{U32, U32, F32x3}, 0b1},
	OpStoreBufferF32x4:           {"StoreBufferF32x4", Void, []Type{U32, U32, F32x4}, 0b1},
	OpStoreBufferU32:             {"StoreBufferU32", Void, []Type{U32, U32, U32}, 0b1},
	OpStoreBufferU32x2:           {"StoreBufferU32x2", Void, []Type{U32, U32, U32x2}, 0b1},
	OpStoreBufferU32x3:           {"StoreBufferU32x3", Void, []Type{U32, U32, U32x3}, 0b1},
	OpStoreBufferU32x4:           {"StoreBufferU32x4", Void, []Type{U32, U32, U32x4}, 0b1},
	OpGetAttribute:               {"GetAttribute", F32, []Type{AttributeType, U32}, 0b10},
	OpGetAttributeU32:            {"GetAttributeU32", U32, []Type{AttributeType, U32}, 0b10},
	OpSetAttribute:               {"SetAttribute", Void, []Type{AttributeType, F32, U32}, 0b100},
	OpSetFragColor:               {"SetFragColor", Void, []Type{U32, U32, F32}, 0b11},
	OpSetSampleMask:              {"SetSampleMask", Void, []Type{U32}, 0},
	OpSetFragDepth:               {"SetFragDepth", Void, []Type{F32}, 0},
	OpWorkgroupId:                {"WorkgroupId", U32x3, nil, 0},
	OpLocalInvocationId:          {"LocalInvocationId", U32x3, nil, 0},
	OpInvocationId:               {"InvocationId", U32, nil, 0},
	OpInvocationInfo:             {"InvocationInfo", U32, nil, 0},
	OpSampleId:                   {"SampleId", U32, nil, 0},
	OpUndefU1:                    {"UndefU1", U1, nil, 0},
	OpUndefU8:                    {"UndefU8", U8, nil, 0},
	OpUndefU16:                   {"UndefU16", U16, nil, 0},
	OpUndefU32:                   {"UndefU32", U32, nil, 0},
	OpUndefU64:                   {"UndefU64", U64, nil, 0},
	OpReadSharedU8:               {"ReadSharedU8", U32, []Type{U32}, 0},
	OpReadSharedS8:               {"ReadSharedS8", U32, []Type{U32}, 0},
	OpReadSharedU16:              {"ReadSharedU16", U32, []Type{U32}, 0},
	OpReadSharedS16:              {"ReadSharedS16", U32, []Type{U32}, 0},
	OpReadSharedU32:              {"ReadSharedU32", U32, []Type{U32}, 0},
	OpReadSharedU64:              {"ReadSharedU64", U32x2, []Type{U32}, 0},
	OpReadSharedU128:             {"ReadSharedU128", U32x4, []Type{U32}, 0},
	OpWriteSharedU8:              {"WriteSharedU8", Void, []Type{U32, U32}, 0},
	OpWriteSharedU16:             {"WriteSharedU16", Void, []Type{U32, U32}, 0},
	OpWriteSharedU32:             {"WriteSharedU32", Void, []Type{U32, U32}, 0},
	OpWriteSharedU64:             {"WriteSharedU64", Void, []Type{U32, U32x2}, 0},
	OpWriteSharedU128:            {"WriteSharedU128", Void, []Type{U32, U32x4}, 0},
	OpCompositeConstructU32x2:    {"CompositeConstructU32x2", U32x2, []Type{U32, U32}, 0},
	OpCompositeExtractU32x2:      {"CompositeExtractU32x2", U32, []Type{U32x2, U32}, 0b10},
	OpCompositeInsertU32x2:       {"CompositeInsertU32x2", U32x2, []Type{U32x2, U32, U32}, 0b100},
	OpCompositeConstructU32x3:    {"CompositeConstructU32x3", U32x3, []Type{U32, U32, U32}, 0},
	OpCompositeExtractU32x3:      {"CompositeExtractU32x3", U32, []Type{U32x3, U32}, 0b10},
	OpCompositeInsertU32x3:       {"CompositeInsertU32x3", U32x3, []Type{U32x3, U32, U32}, 0b100},
	OpCompositeConstructU32x4:    {"CompositeConstructU32x4", U32x4, []Type{U32, U32, U32, U32}, 0},
	OpCompositeExtractU32x4:      {"CompositeExtractU32x4", U32, []Type{U32x4, U32}, 0b10},
	OpCompositeInsertU32x4:       {"CompositeInsertU32x4", U32x4, []Type{U32x4, U32, U32}, 0b100},
	OpCompositeConstructF16x2:    {"CompositeConstructF16x2", F16x2, []Type{F16, F16}, 0},
	OpCompositeExtractF16x2:      {"CompositeExtractF16x2", F16, []Type{F16x2, U32}, 0b10},
	OpCompositeInsertF16x2:       {"CompositeInsertF16x2", F16x2, []Type{F16x2, F16, U32}, 0b100},
	OpCompositeConstructF16x3:    {"CompositeConstructF16x3", F16x3, []Type{F16, F16, F16}, 0},
	OpCompositeExtractF16x3:      {"CompositeExtractF16x3", F16, []Type{F16x3, U32}, 0b10},
	OpCompositeInsertF16x3:       {"CompositeInsertF16x3", F16x3, []Type{F16x3, F16, U32}, 0b100},
	OpCompositeConstructF16x4:    {"CompositeConstructF16x4", F16x4, []Type{F16, F16, F16, F16}, 0},
	OpCompositeExtractF16x4:      {"CompositeExtractF16x4", F16, []Type{F16x4, U32}, 0b10},
	OpCompositeInsertF16x4:       {"CompositeInsertF16x4", F16x4, []Type{F16x4, F16, U32}, 0b100},
	OpCompositeConstructF32x2:    {"CompositeConstructF32x2", F32x2, []Type{F32, F32}, 0},
	OpCompositeExtractF32x2:      {"CompositeExtractF32x2", F32, []Type{F32x2, U32}, 0b10},
	OpCompositeInsertF32x2:       {"CompositeInsertF32x2", F32x2, []Type{F32x2, F32, U32}, 0b100},
	OpCompositeConstructF32x3:    {"CompositeConstructF32x3", F32x3, []Type{F32, F32, F32}, 0},
	OpCompositeExtractF32x3:      {"CompositeExtractF32x3", F32, []Type{F32x3, U32}, 0b10},
	OpCompositeInsertF32x3:       {"CompositeInsertF32x3", F32x3, []Type{F32x3, F32, U32}, 0b100},
	OpCompositeConstructF32x4:    {"CompositeConstructF32x4", F32x4, []Type{F32, F32, F32, F32}, 0},
	OpCompositeExtractF32x4:      {"CompositeExtractF32x4", F32, []Type{F32x4, U32}, 0b10},
	OpCompositeInsertF32x4:       {"CompositeInsertF32x4", F32x4, []Type{F32x4, F32, U32}, 0b100},
	OpCompositeConstructF64x2:    {"CompositeConstructF64x2", F64x2, []Type{F64, F64}, 0},
	OpCompositeExtractF64x2:      {"CompositeExtractF64x2", F64, []Type{F64x2, U32}, 0b10},
	OpCompositeInsertF64x2:       {"CompositeInsertF64x2", F64x2, []Type{F64x2, F64, U32}, 0b100},
	OpCompositeConstructF64x3:    {"CompositeConstructF64x3", F64x3, []Type{F64, F64, F64}, 0},
	OpCompositeExtractF64x3:      {"CompositeExtractF64x3", F64, []Type{F64x3, U32}, 0b10},
	OpCompositeInsertF64x3:       {"CompositeInsertF64x3", F64x3, []Type{F64x3, F64, U32}, 0b100},
	OpCompositeConstructF64x4:    {"CompositeConstructF64x4", F64x4, []Type{F64, F64, F64, F64}, 0},
	OpCompositeExtractF64x4:      {"CompositeExtractF64x4", F64, []Type{F64x4, U32}, 0b10},
	OpCompositeInsertF64x4:       {"CompositeInsertF64x4", F64x4, []Type{F64x4, F64, U32}, 0b100},
	OpSelectU1:                   {"SelectU1", U1, []Type{U1, U1, U1}, 0},
	OpSelectU8:                   {"SelectU8", U8, []Type{U1, U8, U8}, 0},
	OpSelectU16:                  {"SelectU16", U16, []Type{U1, U16, U16}, 0},
	OpSelectU32:                  {"SelectU32", U32, []Type{U1, U32, U32}, 0},
	OpSelectU64:                  {"SelectU64", U64, []Type{U1, U64, U64}, 0},
	OpSelectF16:                  {"SelectF16", F16, []Type{U1, F16, F16}, 0},
	OpSelectF32:                  {"SelectF32", F32, []Type{U1, F32, F32}, 0},
	OpSelectF64:                  {"SelectF64", F64, []Type{U1, F64, F64}, 0},
	OpBitCastU16F16:              {"BitCastU16F16", U16, []Type{F16}, 0},
	OpBitCastU32F32:              {"BitCastU32F32", U32, []Type{F32}, 0},
	OpBitCastU64F64:              {"BitCastU64F64", U64, []Type{F64}, 0},
	OpBitCastF16U16:              {"BitCastF16U16", F16, []Type{U16}, 0},
	OpBitCastF32U32:              {"BitCastF32U32", F32, []Type{U32}, 0},
	OpBitCastF64U64:              {"BitCastF64U64", F64, []Type{U64}, 0},
	OpPackUint2x32:               {"PackUint2x32", U64, []Type{U32x2}, 0},
	OpUnpackUint2x32:             {"UnpackUint2x32", U32x2, []Type{U64}, 0},
	OpPackFloat2x16:              {"PackFloat2x16", U32, []Type{F16x2}, 0},
	OpUnpackFloat2x16:            {"UnpackFloat2x16", F16x2, []Type{U32}, 0},
	OpPackHalf2x16:               {"PackHalf2x16", U32, []Type{F32x2}, 0},
	OpUnpackHalf2x16:             {"UnpackHalf2x16", F32x2, []Type{U32}, 0},
	OpFPAbs16:                    {"FPAbs16", F16, []Type{F16}, 0},
	OpFPAdd16:                    {"FPAdd16", F16, []Type{F16, F16}, 0},
	OpFPSub16:                    {"FPSub16", F16, []Type{F16, F16}, 0},
	OpFPMul16:                    {"FPMul16", F16, []Type{F16, F16}, 0},
	OpFPDiv16:                    {"FPDiv16", F16, []Type{F16, F16}, 0},
	OpFPFma16:                    {"FPFma16", F16, []Type{F16, F16, F16}, 0},
	OpFPMax16:                    {"FPMax16", F16, []Type{F16, F16}, 0},
	OpFPMin16:                    {"FPMin16", F16, []Type{F16, F16}, 0},
	OpFPNeg16:                    {"FPNeg16", F16, []Type{F16}, 0},
	OpFPSaturate16:               {"FPSaturate16", F16, []Type{F16}, 0},
	OpFPClamp16:                  {"FPClamp16", F16, []Type{F16, F16, F16}, 0},
	OpFPRoundEven16:              {"FPRoundEven16", F16, []Type{F16}, 0},
	OpFPFloor16:                  {"FPFloor16", F16, []Type{F16}, 0},
	OpFPCeil16:                   {"FPCeil16", F16, []Type{F16}, 0},
	OpFPTrunc16:                  {"FPTrunc16", F16, []Type{F16}, 0},
	OpFPAbs32:                    {"FPAbs32", F32, []Type{F32}, 0},
	OpFPAdd32:                    {"FPAdd32", F32, []Type{F32, F32}, 0},
	OpFPSub32:                    {"FPSub32", F32, []Type{F32, F32}, 0},
	OpFPMul32:                    {"FPMul32", F32, []Type{F32, F32}, 0},
	OpFPDiv32:                    {"FPDiv32", F32, []Type{F32, F32}, 0},
	OpFPFma32:                    {"FPFma32", F32, []Type{F32, F32, F32}, 0},
	OpFPMax32:                    {"FPMax32", F32, []Type{F32, F32}, 0},
	OpFPMin32:                    {"FPMin32", F32, []Type{F32, F32}, 0},
	OpFPNeg32:                    {"FPNeg32", F32, []Type{F32}, 0},
	OpFPSaturate32:               {"FPSaturate32", F32, []Type{F32}, 0},
	OpFPClamp32:                  {"FPClamp32", F32, []Type{F32, F32, F32}, 0},
	OpFPRoundEven32:              {"FPRoundEven32", F32, []Type{F32}, 0},
	OpFPFloor32:                  {"FPFloor32", F32, []Type{F32}, 0},
	OpFPCeil32:                   {"FPCeil32", F32, []Type{F32}, 0},
	OpFPTrunc32:                  {"FPTrunc32", F32, []Type{F32}, 0},
	OpFPAbs64:                    {"FPAbs64", F64, []Type{F64}, 0},
	OpFPAdd64:                    {"FPAdd64", F64, []Type{F64, F64}, 0},
	OpFPSub64:                    {"FPSub64", F64, []Type{F64, F64}, 0},
	OpFPMul64:                    {"FPMul64", F64, []Type{F64, F64}, 0},
	OpFPDiv64:                    {"FPDiv64", F64, []Type{F64, F64}, 0},
	OpFPFma64:                    {"FPFma64", F64, []Type{F64, F64, F64}, 0},
	OpFPMax64:                    {"FPMax64", F64, []Type{F64, F64}, 0},
	OpFPMin64:                    {"FPMin64", F64, []Type{F64, F64}, 0},
	OpFPNeg64:                    {"FPNeg64", F64, []Type{F64}, 0},
	OpFPSaturate64:               {"FPSaturate64", F64, []Type{F64}, 0},
	OpFPClamp64:                  {"FPClamp64", F64, []Type{F64, F64, F64}, 0},
	OpFPRoundEven64:              {"FPRoundEven64", F64, []Type{F64}, 0},
	OpFPFloor64:                  {"FPFloor64", F64, []Type{F64}, 0},
	OpFPCeil64:                   {"FPCeil64", F64, []Type{F64}, 0},
	OpFPTrunc64:                  {"FPTrunc64", F64, []Type{F64}, 0},
	OpFPRecip32:                  {"FPRecip32", F32, []Type{F32}, 0},
	OpFPRecipSqrt32:              {"FPRecipSqrt32", F32, []Type{F32}, 0},
	OpFPRecip64:                  {"FPRecip64", F64, []Type{F64}, 0},
	OpFPRecipSqrt64:              {"FPRecipSqrt64", F64, []Type{F64}, 0},
	OpFPSqrt:                     {"FPSqrt", F32, []Type{F32}, 0},
	OpFPSin:                      {"FPSin", F32, []Type{F32}, 0},
	OpFPCos:                      {"FPCos", F32, []Type{F32}, 0},
	OpFPExp2:                     {"FPExp2", F32, []Type{F32}, 0},
	OpFPLog2:                     {"FPLog2", F32, []Type{F32}, 0},
	OpFPFract:                    {"FPFract", F32, []Type{F32}, 0},
	OpFPOrdEqual16:               {"FPOrdEqual16", U1, []Type{F16, F16}, 0},
	OpFPOrdEqual32:               {"FPOrdEqual32", U1, []Type{F32, F32}, 0},
	OpFPOrdEqual64:               {"FPOrdEqual64", U1, []Type{F64, F64}, 0},
	OpFPUnordEqual16:             {"FPUnordEqual16", U1, []Type{F16, F16}, 0},
	OpFPUnordEqual32:             {"FPUnordEqual32", U1, []Type{F32, F32}, 0},
	OpFPUnordEqual64:             {"FPUnordEqual64", U1, []Type{F64, F64}, 0},
	OpFPOrdNotEqual16:            {"FPOrdNotEqual16", U1, []Type{F16, F16}, 0},
	OpFPOrdNotEqual32:            {"FPOrdNotEqual32", U1, []Type{F32, F32}, 0},
	OpFPOrdNotEqual64:            {"FPOrdNotEqual64", U1, []Type{F64, F64}, 0},
	OpFPUnordNotEqual16:          {"FPUnordNotEqual16", U1, []Type{F16, F16}, 0},
	OpFPUnordNotEqual32:          {"FPUnordNotEqual32", U1, []Type{F32, F32}, 0},
	OpFPUnordNotEqual64:          {"FPUnordNotEqual64", U1, []Type{F64, F64}, 0},
	OpFPOrdLessThan16:            {"FPOrdLessThan16", U1, []Type{F16, F16}, 0},
	OpFPOrdLessThan32:            {"FPOrdLessThan32", U1, []Type{F32, F32}, 0},
	OpFPOrdLessThan64:            {"FPOrdLessThan64", U1, []Type{F64, F64}, 0},
	OpFPUnordLessThan16:          {"FPUnordLessThan16", U1, []Type{F16, F16}, 0},
	OpFPUnordLessThan32:          {"FPUnordLessThan32", U1, []Type{F32, F32}, 0},
	OpFPUnordLessThan64:          {"FPUnordLessThan64", U1, []Type{F64, F64}, 0},
	OpFPOrdGreaterThan16:         {"FPOrdGreaterThan16", U1, []Type{F16, F16}, 0},
	OpFPOrdGreaterThan32:         {"FPOrdGreaterThan32", U1, []Type{F32, F32}, 0},
	OpFPOrdGreaterThan64:         {"FPOrdGreaterThan64", U1, []Type{F64, F64}, 0},
	OpFPUnordGreaterThan16:       {"FPUnordGreaterThan16", U1, []Type{F16, F16}, 0},
	OpFPUnordGreaterThan32:       {"FPUnordGreaterThan32", U1, []Type{F32, F32}, 0},
	OpFPUnordGreaterThan64:       {"FPUnordGreaterThan64", U1, []Type{F64, F64}, 0},
	OpFPOrdLessThanEqual16:       {"FPOrdLessThanEqual16", U1, []Type{F16, F16}, 0},
	OpFPOrdLessThanEqual32:       {"FPOrdLessThanEqual32", U1, []Type{F32, F32}, 0},
	OpFPOrdLessThanEqual64:       {"FPOrdLessThanEqual64", U1, []Type{F64, F64}, 0},
	OpFPUnordLessThanEqual16:     {"FPUnordLessThanEqual16", U1, []Type{F16, F16}, 0},
	OpFPUnordLessThanEqual32:     {"FPUnordLessThanEqual32", U1, []Type{F32, F32}, 0},
	OpFPUnordLessThanEqual64:     {"FPUnordLessThanEqual64", U1, []Type{F64, F64}, 0},
	OpFPOrdGreaterThanEqual16:    {"FPOrdGreaterThanEqual16", U1, []Type{F16, F16}, 0},
	OpFPOrdGreaterThanEqual32:    {"FPOrdGreaterThanEqual32", U1, []Type{F32, F32}, 0},
	OpFPOrdGreaterThanEqual64:    {"FPOrdGreaterThanEqual64", U1, []Type{F64, F64}, 0},
	OpFPUnordGreaterThanEqual16:  {"FPUnordGreaterThanEqual16", U1, []Type{F16, F16}, 0},
	OpFPUnordGreaterThanEqual32:  {"FPUnordGreaterThanEqual32", U1, []Type{F32, F32}, 0},
	OpFPUnordGreaterThanEqual64:  {"FPUnordGreaterThanEqual64", U1, []Type{F64, F64}, 0},
	OpFPIsNan16:                  {"FPIsNan16", U1, []Type{F16}, 0},
	OpFPIsNan32:                  {"FPIsNan32", U1, []Type{F32}, 0},
	OpFPIsNan64:                  {"FPIsNan64", U1, []Type{F64}, 0},
	OpIAdd32:                     {"IAdd32", U32, []Type{U32, U32}, 0},
	OpISub32:                     {"ISub32", U32, []Type{U32, U32}, 0},
	OpIMul32:                     {"IMul32", U32, []Type{U32, U32}, 0},
	OpSDiv32:                     {"SDiv32", U32, []Type{U32, U32}, 0},
	OpUDiv32:                     {"UDiv32", U32, []Type{U32, U32}, 0},
	OpINeg32:                     {"INeg32", U32, []Type{U32}, 0},
	OpIAbs32:                     {"IAbs32", U32, []Type{U32}, 0},
	OpShiftLeftLogical32:         {"ShiftLeftLogical32", U32, []Type{U32, U32}, 0},
	OpShiftRightLogical32:        {"ShiftRightLogical32", U32, []Type{U32, U32}, 0},
	OpShiftRightArithmetic32:     {"ShiftRightArithmetic32", U32, []Type{U32, U32}, 0},
	OpBitwiseAnd32:               {"BitwiseAnd32", U32, []Type{U32, U32}, 0},
	OpBitwiseOr32:                {"BitwiseOr32", U32, []Type{U32, U32}, 0},
	OpBitwiseXor32:               {"BitwiseXor32", U32, []Type{U32, U32}, 0},
	OpSMin32:                     {"SMin32", U32, []Type{U32, U32}, 0},
	OpUMin32:                     {"UMin32", U32, []Type{U32, U32}, 0},
	OpSMax32:                     {"SMax32", U32, []Type{U32, U32}, 0},
	OpUMax32:                     {"UMax32", U32, []Type{U32, U32}, 0},
	OpSClamp32:                   {"SClamp32", U32, []Type{U32, U32, U32}, 0},
	OpUClamp32:                   {"UClamp32", U32, []Type{U32, U32, U32}, 0},
	OpIAdd64:                     {"IAdd64", U64, []Type{U64, U64}, 0},
	OpISub64:                     {"ISub64", U64, []Type{U64, U64}, 0},
	OpIMul64:                     {"IMul64", U64, []Type{U64, U64}, 0},
	OpSDiv64:                     {"SDiv64", U64, []Type{U64, U64}, 0},
	OpUDiv64:                     {"UDiv64", U64, []Type{U64, U64}, 0},
	OpINeg64:                     {"INeg64", U64, []Type{U64}, 0},
	OpIAbs64:                     {"IAbs64", U64, []Type{U64}, 0},
	OpShiftLeftLogical64:         {"ShiftLeftLogical64", U64, []Type{U64, U32}, 0},
	OpShiftRightLogical64:        {"ShiftRightLogical64", U64, []Type{U64, U32}, 0},
	OpShiftRightArithmetic64:     {"ShiftRightArithmetic64", U64, []Type{U64, U32}, 0},
	OpBitwiseAnd64:               {"BitwiseAnd64", U64, []Type{U64, U64}, 0},
	OpBitwiseOr64:                {"BitwiseOr64", U64, []Type{U64, U64}, 0},
	OpBitwiseXor64:               {"BitwiseXor64", U64, []Type{U64, U64}, 0},
	OpSMin64:                     {"SMin64", U64, []Type{U64, U64}, 0},
	OpUMin64:                     {"UMin64", U64, []Type{U64, U64}, 0},
	OpSMax64:                     {"SMax64", U64, []Type{U64, U64}, 0},
	OpUMax64:                     {"UMax64", U64, []Type{U64, U64}, 0},
	OpSClamp64:                   {"SClamp64", U64, []Type{U64, U64, U64}, 0},
	OpUClamp64:                   {"UClamp64", U64, []Type{U64, U64, U64}, 0},
	OpBitFieldInsert:             {"BitFieldInsert", U32, []Type{U32, U32, U32, U32}, 0},
	OpBitFieldSExtract:           {"BitFieldSExtract", U32, []Type{U32, U32, U32}, 0},
	OpBitFieldUExtract:           {"BitFieldUExtract", U32, []Type{U32, U32, U32}, 0},
	OpBitReverse32:               {"BitReverse32", U32, []Type{U32}, 0},
	OpBitCount32:                 {"BitCount32", U32, []Type{U32}, 0},
	OpBitwiseNot32:               {"BitwiseNot32", U32, []Type{U32}, 0},
	OpFindSMsb32:                 {"FindSMsb32", U32, []Type{U32}, 0},
	OpFindUMsb32:                 {"FindUMsb32", U32, []Type{U32}, 0},
	OpSLessThan:                  {"SLessThan", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpULessThan:                  {"ULessThan", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpIEqual:                     {"IEqual", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpSLessThanEqual:             {"SLessThanEqual", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpULessThanEqual:             {"ULessThanEqual", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpSGreaterThan:               {"SGreaterThan", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpUGreaterThan:               {"UGreaterThan", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpINotEqual:                  {"INotEqual", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpSGreaterThanEqual:          {"SGreaterThanEqual", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpUGreaterThanEqual:          {"UGreaterThanEqual", U1, []Type{U32 | U64, U32 | U64}, 0},
	OpLogicalOr:                  {"LogicalOr", U1, []Type{U1, U1}, 0},
	OpLogicalAnd:                 {"LogicalAnd", U1, []Type{U1, U1}, 0},
	OpLogicalXor:                 {"LogicalXor", U1, []Type{U1, U1}, 0},
	OpLogicalNot:                 {"LogicalNot", U1, []Type{U1}, 0},
	OpConvertS8S16:               {"ConvertS8S16", U8, []Type{U16}, 0},
	OpConvertS8S32:               {"ConvertS8S32", U8, []Type{U32}, 0},
	OpConvertS8S64:               {"ConvertS8S64", U8, []Type{U64}, 0},
	OpConvertS8U8:                {"ConvertS8U8", U8, []Type{U8}, 0},
	OpConvertS8U16:               {"ConvertS8U16", U8, []Type{U16}, 0},
	OpConvertS8U32:               {"ConvertS8U32", U8, []Type{U32}, 0},
	OpConvertS8U64:               {"ConvertS8U64", U8, []Type{U64}, 0},
	OpConvertS8F16:               {"ConvertS8F16", U8, []Type{F16}, 0},
	OpConvertS8F32:               {"ConvertS8F32", U8, []Type{F32}, 0},
	OpConvertS8F64:               {"ConvertS8F64", U8, []Type{F64}, 0},
	OpConvertS16S8:               {"ConvertS16S8", U16, []Type{U8}, 0},
	OpConvertS16S32:              {"ConvertS16S32", U16, []Type{U32}, 0},
	OpConvertS16S64:              {"ConvertS16S64", U16, []Type{U64}, 0},
	OpConvertS16U8:               {"ConvertS16U8", U16, []Type{U8}, 0},
	OpConvertS16U16:              {"ConvertS16U16", U16, []Type{U16}, 0},
	OpConvertS16U32:              {"ConvertS16U32", U16, []Type{U32}, 0},
	OpConvertS16U64:              {"ConvertS16U64", U16, []Type{U64}, 0},
	OpConvertS16F16:              {"ConvertS16F16", U16, []Type{F16}, 0},
	OpConvertS16F32:              {"ConvertS16F32", U16, []Type{F32}, 0},
	OpConvertS16F64:              {"ConvertS16F64", U16, []Type{F64}, 0},
	OpConvertS32S8:               {"ConvertS32S8", U32, []Type{U8}, 0},
	OpConvertS32S16:              {"ConvertS32S16", U32, []Type{U16}, 0},
	OpConvertS32S64:              {"ConvertS32S64", U32, []Type{U64}, 0},
	OpConvertS32U8:               {"ConvertS32U8", U32, []Type{U8}, 0},
	OpConvertS32U16:              {"ConvertS32U16", U32, []Type{U16}, 0},
	OpConvertS32U32:              {"ConvertS32U32", U32, []Type{U32}, 0},
	OpConvertS32U64:              {"ConvertS32U64", U32, []Type{U64}, 0},
	OpConvertS32F16:              {"ConvertS32F16", U32, []Type{F16}, 0},
	OpConvertS32F32:              {"ConvertS32F32", U32, []Type{F32}, 0},
	OpConvertS32F64:              {"ConvertS32F64", U32, []Type{F64}, 0},
	OpConvertS64S8:               {"ConvertS64S8", U64, []Type{U8}, 0},
	OpConvertS64S16:              {"ConvertS64S16", U64, []Type{U16}, 0},
	OpConvertS64S32:              {"ConvertS64S32", U64, []Type{U32}, 0},
	OpConvertS64U8:               {"ConvertS64U8", U64, []Type{U8}, 0},
	OpConvertS64U16:              {"ConvertS64U16", U64, []Type{U16}, 0},
	OpConvertS64U32:              {"ConvertS64U32", U64, []Type{U32}, 0},
	OpConvertS64U64:              {"ConvertS64U64", U64, []Type{U64}, 0},
	OpConvertS64F16:              {"ConvertS64F16", U64, []Type{F16}, 0},
	OpConvertS64F32:              {"ConvertS64F32", U64, []Type{F32}, 0},
	OpConvertS64F64:              {"ConvertS64F64", U64, []Type{F64}, 0},
	OpConvertU8S8:                {"ConvertU8S8", U8, []Type{U8}, 0},
	OpConvertU8S16:               {"ConvertU8S16", U8, []Type{U16}, 0},
	OpConvertU8S32:               {"ConvertU8S32", U8, []Type{U32}, 0},
	OpConvertU8S64:               {"ConvertU8S64", U8, []Type{U64}, 0},
	OpConvertU8U16:               {"ConvertU8U16", U8, []Type{U16}, 0},
	OpConvertU8U32:               {"ConvertU8U32", U8, []Type{U32}, 0},
	OpConvertU8U64:               {"ConvertU8U64", U8, []Type{U64}, 0},
	OpConvertU8F16:               {"ConvertU8F16", U8, []Type{F16}, 0},
	OpConvertU8F32:               {"ConvertU8F32", U8, []Type{F32}, 0},
	OpConvertU8F64:               {"ConvertU8F64", U8, []Type{F64}, 0},
	OpConvertU16S8:               {"ConvertU16S8", U16, []Type{U8}, 0},
	OpConvertU16S16:              {"ConvertU16S16", U16, []Type{U16}, 0},
	OpConvertU16S32:              {"ConvertU16S32", U16, []Type{U32}, 0},
	OpConvertU16S64:              {"ConvertU16S64", U16, []Type{U64}, 0},
	OpConvertU16U8:               {"ConvertU16U8", U16, []Type{U8}, 0},
	OpConvertU16U32:              {"ConvertU16U32", U16, []Type{U32}, 0},
	OpConvertU16U64:              {"ConvertU16U64", U16, []Type{U64}, 0},
	OpConvertU16F16:              {"ConvertU16F16", U16, []Type{F16}, 0},
	OpConvertU16F32:              {"ConvertU16F32", U16, []Type{F32}, 0},
	OpConvertU16F64:              {"ConvertU16F64", U16, []Type{F64}, 0},
	OpConvertU32S8:               {"ConvertU32S8", U32, []Type{U8}, 0},
	OpConvertU32S16:              {"ConvertU32S16", U32, []Type{U16}, 0},
	OpConvertU32S32:              {"ConvertU32S32", U32, []Type{U32}, 0},
	OpConvertU32S64:              {"ConvertU32S64", U32, []Type{U64}, 0},
	OpConvertU32U8:               {"ConvertU32U8", U32, []Type{U8}, 0},
	OpConvertU32U16:              {"ConvertU32U16", U32, []Type{U16}, 0},
	OpConvertU32U64:              {"ConvertU32U64", U32, []Type{U64}, 0},
	OpConvertU32F16:              {"ConvertU32F16", U32, []Type{F16}, 0},
	OpConvertU32F32:              {"ConvertU32F32", U32, []Type{F32}, 0},
	OpConvertU32F64:              {"ConvertU32F64", U32, []Type{F64}, 0},
	OpConvertU64S8:               {"ConvertU64S8", U64, []Type{U8}, 0},
	OpConvertU64S16:              {"ConvertU64S16", U64, []Type{U16}, 0},
	OpConvertU64S32:              {"ConvertU64S32", U64, []Type{U32}, 0},
	OpConvertU64S64:              {"ConvertU64S64", U64, []Type{U64}, 0},
	OpConvertU64U8:               {"ConvertU64U8", U64, []Type{U8}, 0},
	OpConvertU64U16:              {"ConvertU64U16", U64, []Type{U16}, 0},
	OpConvertU64U32:              {"ConvertU64U32", U64, []Type{U32}, 0},
	OpConvertU64F16:              {"ConvertU64F16", U64, []Type{F16}, 0},
	OpConvertU64F32:              {"ConvertU64F32", U64, []Type{F32}, 0},
	OpConvertU64F64:              {"ConvertU64F64", U64, []Type{F64}, 0},
	OpConvertF16S8:               {"ConvertF16S8", F16, []Type{U8}, 0},
	OpConvertF16S16:              {"ConvertF16S16", F16, []Type{U16}, 0},
	OpConvertF16S32:              {"ConvertF16S32", F16, []Type{U32}, 0},
	OpConvertF16S64:              {"ConvertF16S64", F16, []Type{U64}, 0},
	OpConvertF16U8:               {"ConvertF16U8", F16, []Type{U8}, 0},
	OpConvertF16U16:              {"ConvertF16U16", F16, []Type{U16}, 0},
	OpConvertF16U32:              {"ConvertF16U32", F16, []Type{U32}, 0},
	OpConvertF16U64:              {"ConvertF16U64", F16, []Type{U64}, 0},
	OpConvertF16F32:              {"ConvertF16F32", F16, []Type{F32}, 0},
	OpConvertF16F64:              {"ConvertF16F64", F16, []Type{F64}, 0},
	OpConvertF32S8:               {"ConvertF32S8", F32, []Type{U8}, 0},
	OpConvertF32S16:              {"ConvertF32S16", F32, []Type{U16}, 0},
	OpConvertF32S32:              {"ConvertF32S32", F32, []Type{U32}, 0},
	OpConvertF32S64:              {"ConvertF32S64", F32, []Type{U64}, 0},
	OpConvertF32U8:               {"ConvertF32U8", F32, []Type{U8}, 0},
	OpConvertF32U16:              {"ConvertF32U16", F32, []Type{U16}, 0},
	OpConvertF32U32:              {"ConvertF32U32", F32, []Type{U32}, 0},
	OpConvertF32U64:              {"ConvertF32U64", F32, []Type{U64}, 0},
	OpConvertF32F16:              {"ConvertF32F16", F32, []Type{F16}, 0},
	OpConvertF32F64:              {"ConvertF32F64", F32, []Type{F64}, 0},
	OpConvertF64S8:               {"ConvertF64S8", F64, []Type{U8}, 0},
	OpConvertF64S16:              {"ConvertF64S16", F64, []Type{U16}, 0},
	OpConvertF64S32:              {"ConvertF64S32", F64, []Type{U32}, 0},
	OpConvertF64S64:              {"ConvertF64S64", F64, []Type{U64}, 0},
	OpConvertF64U8:               {"ConvertF64U8", F64, []Type{U8}, 0},
	OpConvertF64U16:              {"ConvertF64U16", F64, []Type{U16}, 0},
	OpConvertF64U32:              {"ConvertF64U32", F64, []Type{U32}, 0},
	OpConvertF64U64:              {"ConvertF64U64", F64, []Type{U64}, 0},
	OpConvertF64F16:              {"ConvertF64F16", F64, []Type{F16}, 0},
	OpConvertF64F32:              {"ConvertF64F32", F64, []Type{F32}, 0},
	OpImageSampleImplicitLod:     {"ImageSampleImplicitLod", F32x4, []Type{Opaque, Opaque, Opaque, Opaque}, 0},
	OpImageSampleExplicitLod:     {"ImageSampleExplicitLod", F32x4, []Type{Opaque, Opaque, F32, Opaque}, 0},
	OpImageSampleDrefImplicitLod: {"ImageSampleDrefImplicitLod", F32, []Type{Opaque, Opaque, F32, Opaque, Opaque}, 0},
	OpImageSampleDrefExplicitLod: {"ImageSampleDrefExplicitLod", F32, []Type{Opaque, Opaque, F32, F32, Opaque}, 0},
	OpImageGather:                {"ImageGather", F32x4, []Type{Opaque, Opaque, Opaque, Opaque}, 0},
	OpImageGatherDref:            {"ImageGatherDref", F32x4, []Type{Opaque, Opaque, Opaque, Opaque, F32}, 0},
	OpImageFetch:                 {"ImageFetch", F32x4, []Type{Opaque, Opaque, Opaque, Opaque, Opaque}, 0},
	OpImageQueryDimensions:       {"ImageQueryDimensions", U32x4, []Type{Opaque, U32, U1}, 0b100},
	OpImageQueryLod:              {"ImageQueryLod", F32x4, []Type{Opaque, Opaque}, 0},
	OpImageGradient:              {"ImageGradient", F32x4, []Type{Opaque, Opaque, Opaque, Opaque, Opaque}, 0},
	OpImageRead:                  {"ImageRead", F32x4, []Type{Opaque, Opaque}, 0},
	OpImageWrite:                 {"ImageWrite", Void, []Type{Opaque, Opaque, F32x4}, 0},
}
