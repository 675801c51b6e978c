package spirv

import "github.com/jurealeksic/shadPS4/ir"

// emitFunc lowers one instruction at the current insertion point. It returns
// the result ID, or 0 for instructions without a result.
type emitFunc func(c *EmitContext, inst *ir.Inst) (uint32, error)

// emitters maps every IR opcode to its emitter.
var emitters = [ir.NumOpcodes]emitFunc{
	ir.OpPhi:                        emitPhi,
	ir.OpVoid:                       emitVoid,
	ir.OpIdentity:                   emitIdentity,
	ir.OpReference:                  emitReference,
	ir.OpConditionRef:               emitConditionRef,
	ir.OpPhiMove:                    emitPhiMove,
	ir.OpJoin:                       emitJoin,
	ir.OpBarrier:                    emitBarrier,
	ir.OpWorkgroupMemoryBarrier:     emitWorkgroupMemoryBarrier,
	ir.OpDeviceMemoryBarrier:        emitDeviceMemoryBarrier,
	ir.OpPrologue:                   emitPrologue,
	ir.OpEpilogue:                   emitEpilogue,
	ir.OpDiscard:                    emitDiscard,
	ir.OpGetScc:                     emitGetScc,
	ir.OpSetScc:                     emitSetScc,
	ir.OpGetExec:                    emitGetExec,
	ir.OpSetExec:                    emitSetExec,
	ir.OpGetVcc:                     emitGetVcc,
	ir.OpSetVcc:                     emitSetVcc,
	ir.OpGetVccLo:                   emitGetVccLo,
	ir.OpSetVccLo:                   emitSetVccLo,
	ir.OpGetUserData:                emitGetUserData,
	ir.OpGetScalarRegister:          emitGetScalarRegister,
	ir.OpSetScalarRegister:          emitSetScalarRegister,
	ir.OpGetVectorRegister:          emitGetVectorRegister,
	ir.OpSetVectorRegister:          emitSetVectorRegister,
	ir.OpSetGotoVariable:            emitSetGotoVariable,
	ir.OpGetGotoVariable:            emitGetGotoVariable,
	ir.OpReadConst:                  emitReadConst,
	ir.OpReadConstBuffer:            readConstBuffer(true),
	ir.OpReadConstBufferU32:         readConstBuffer(false),
	ir.OpLoadBufferF32:              loadBuffer(),
	ir.OpLoadBufferF32x2:            loadBuffer(),
	ir.OpLoadBufferF32x3:            loadBuffer(),
	ir.OpLoadBufferF32x4:            loadBuffer(),
	ir.OpLoadBufferU32:              loadBuffer(),
	ir.OpLoadBufferU32x2:            loadBuffer(),
	ir.OpLoadBufferU32x3:            loadBuffer(),
	ir.OpLoadBufferU32x4:            loadBuffer(),
	ir.OpStoreBufferF32:             storeBuffer(),
	ir.OpStoreBufferF32x2:           storeBuffer(),
	ir.OpStoreBufferF32x3:           storeBuffer(),
	ir.OpStoreBufferF32x4:           storeBuffer(),
	ir.OpStoreBufferU32:             storeBuffer(),
	ir.OpStoreBufferU32x2:           storeBuffer(),
	ir.OpStoreBufferU32x3:           storeBuffer(),
	ir.OpStoreBufferU32x4:           storeBuffer(),
	ir.OpGetAttribute:               emitGetAttribute,
	ir.OpGetAttributeU32:            emitGetAttributeU32,
	ir.OpSetAttribute:               emitSetAttribute,
	ir.OpSetFragColor:               emitSetFragColor,
	ir.OpSetSampleMask:              emitSetSampleMask,
	ir.OpSetFragDepth:               emitSetFragDepth,
	ir.OpWorkgroupId:                emitWorkgroupId,
	ir.OpLocalInvocationId:          emitLocalInvocationId,
	ir.OpInvocationId:               emitInvocationId,
	ir.OpInvocationInfo:             emitInvocationInfo,
	ir.OpSampleId:                   emitSampleId,
	ir.OpUndefU1:                    emitUndef,
	ir.OpUndefU8:                    emitUndef,
	ir.OpUndefU16:                   emitUndef,
	ir.OpUndefU32:                   emitUndef,
	ir.OpUndefU64:                   emitUndef,
	ir.OpReadSharedU8:               readShared(8, false),
	ir.OpReadSharedS8:               readShared(8, true),
	ir.OpReadSharedU16:              readShared(16, false),
	ir.OpReadSharedS16:              readShared(16, true),
	ir.OpReadSharedU32:              readShared(32, false),
	ir.OpReadSharedU64:              readShared(64, false),
	ir.OpReadSharedU128:             readShared(128, false),
	ir.OpWriteSharedU8:              writeShared(8),
	ir.OpWriteSharedU16:             writeShared(16),
	ir.OpWriteSharedU32:             writeShared(32),
	ir.OpWriteSharedU64:             writeShared(64),
	ir.OpWriteSharedU128:            writeShared(128),
	ir.OpCompositeConstructU32x2:    emitCompositeConstruct,
	ir.OpCompositeExtractU32x2:      emitCompositeExtract,
	ir.OpCompositeInsertU32x2:       emitCompositeInsert,
	ir.OpCompositeConstructU32x3:    emitCompositeConstruct,
	ir.OpCompositeExtractU32x3:      emitCompositeExtract,
	ir.OpCompositeInsertU32x3:       emitCompositeInsert,
	ir.OpCompositeConstructU32x4:    emitCompositeConstruct,
	ir.OpCompositeExtractU32x4:      emitCompositeExtract,
	ir.OpCompositeInsertU32x4:       emitCompositeInsert,
	ir.OpCompositeConstructF16x2:    emitCompositeConstruct,
	ir.OpCompositeExtractF16x2:      emitCompositeExtract,
	ir.OpCompositeInsertF16x2:       emitCompositeInsert,
	ir.OpCompositeConstructF16x3:    emitCompositeConstruct,
	ir.OpCompositeExtractF16x3:      emitCompositeExtract,
	ir.OpCompositeInsertF16x3:       emitCompositeInsert,
	ir.OpCompositeConstructF16x4:    emitCompositeConstruct,
	ir.OpCompositeExtractF16x4:      emitCompositeExtract,
	ir.OpCompositeInsertF16x4:       emitCompositeInsert,
	ir.OpCompositeConstructF32x2:    emitCompositeConstruct,
	ir.OpCompositeExtractF32x2:      emitCompositeExtract,
	ir.OpCompositeInsertF32x2:       emitCompositeInsert,
	ir.OpCompositeConstructF32x3:    emitCompositeConstruct,
	ir.OpCompositeExtractF32x3:      emitCompositeExtract,
	ir.OpCompositeInsertF32x3:       emitCompositeInsert,
	ir.OpCompositeConstructF32x4:    emitCompositeConstruct,
	ir.OpCompositeExtractF32x4:      emitCompositeExtract,
	ir.OpCompositeInsertF32x4:       emitCompositeInsert,
	ir.OpCompositeConstructF64x2:    emitCompositeConstruct,
	ir.OpCompositeExtractF64x2:      emitCompositeExtract,
	ir.OpCompositeInsertF64x2:       emitCompositeInsert,
	ir.OpCompositeConstructF64x3:    emitCompositeConstruct,
	ir.OpCompositeExtractF64x3:      emitCompositeExtract,
	ir.OpCompositeInsertF64x3:       emitCompositeInsert,
	ir.OpCompositeConstructF64x4:    emitCompositeConstruct,
	ir.OpCompositeExtractF64x4:      emitCompositeExtract,
	ir.OpCompositeInsertF64x4:       emitCompositeInsert,
	ir.OpSelectU1:                   emitSelect,
	ir.OpSelectU8:                   emitSelect,
	ir.OpSelectU16:                  emitSelect,
	ir.OpSelectU32:                  emitSelect,
	ir.OpSelectU64:                  emitSelect,
	ir.OpSelectF16:                  emitSelect,
	ir.OpSelectF32:                  emitSelect,
	ir.OpSelectF64:                  emitSelect,
	ir.OpBitCastU16F16:              simple(OpBitcast),
	ir.OpBitCastU32F32:              simple(OpBitcast),
	ir.OpBitCastU64F64:              simple(OpBitcast),
	ir.OpBitCastF16U16:              simple(OpBitcast),
	ir.OpBitCastF32U32:              simple(OpBitcast),
	ir.OpBitCastF64U64:              simple(OpBitcast),
	ir.OpPackUint2x32:               simple(OpBitcast),
	ir.OpUnpackUint2x32:             simple(OpBitcast),
	ir.OpPackFloat2x16:              simple(OpBitcast),
	ir.OpUnpackFloat2x16:            simple(OpBitcast),
	ir.OpPackHalf2x16:               glsl(GLSLstd450PackHalf2x16),
	ir.OpUnpackHalf2x16:             glsl(GLSLstd450UnpackHalf2x16),
	ir.OpFPAbs16:                    glsl(GLSLstd450FAbs),
	ir.OpFPAdd16:                    fp(OpFAdd),
	ir.OpFPSub16:                    fp(OpFSub),
	ir.OpFPMul16:                    fp(OpFMul),
	ir.OpFPDiv16:                    fp(OpFDiv),
	ir.OpFPFma16:                    emitFPFma,
	ir.OpFPMax16:                    glsl(GLSLstd450NMax),
	ir.OpFPMin16:                    glsl(GLSLstd450NMin),
	ir.OpFPNeg16:                    simple(OpFNegate),
	ir.OpFPSaturate16:               emitFPSaturate,
	ir.OpFPClamp16:                  glsl(GLSLstd450NClamp),
	ir.OpFPRoundEven16:              glsl(GLSLstd450RoundEven),
	ir.OpFPFloor16:                  glsl(GLSLstd450Floor),
	ir.OpFPCeil16:                   glsl(GLSLstd450Ceil),
	ir.OpFPTrunc16:                  glsl(GLSLstd450Trunc),
	ir.OpFPAbs32:                    glsl(GLSLstd450FAbs),
	ir.OpFPAdd32:                    fp(OpFAdd),
	ir.OpFPSub32:                    fp(OpFSub),
	ir.OpFPMul32:                    fp(OpFMul),
	ir.OpFPDiv32:                    fp(OpFDiv),
	ir.OpFPFma32:                    emitFPFma,
	ir.OpFPMax32:                    glsl(GLSLstd450NMax),
	ir.OpFPMin32:                    glsl(GLSLstd450NMin),
	ir.OpFPNeg32:                    simple(OpFNegate),
	ir.OpFPSaturate32:               emitFPSaturate,
	ir.OpFPClamp32:                  glsl(GLSLstd450NClamp),
	ir.OpFPRoundEven32:              glsl(GLSLstd450RoundEven),
	ir.OpFPFloor32:                  glsl(GLSLstd450Floor),
	ir.OpFPCeil32:                   glsl(GLSLstd450Ceil),
	ir.OpFPTrunc32:                  glsl(GLSLstd450Trunc),
	ir.OpFPAbs64:                    glsl(GLSLstd450FAbs),
	ir.OpFPAdd64:                    fp(OpFAdd),
	ir.OpFPSub64:                    fp(OpFSub),
	ir.OpFPMul64:                    fp(OpFMul),
	ir.OpFPDiv64:                    fp(OpFDiv),
	ir.OpFPFma64:                    emitFPFma,
	ir.OpFPMax64:                    glsl(GLSLstd450NMax),
	ir.OpFPMin64:                    glsl(GLSLstd450NMin),
	ir.OpFPNeg64:                    simple(OpFNegate),
	ir.OpFPSaturate64:               emitFPSaturate,
	ir.OpFPClamp64:                  glsl(GLSLstd450NClamp),
	ir.OpFPRoundEven64:              glsl(GLSLstd450RoundEven),
	ir.OpFPFloor64:                  glsl(GLSLstd450Floor),
	ir.OpFPCeil64:                   glsl(GLSLstd450Ceil),
	ir.OpFPTrunc64:                  glsl(GLSLstd450Trunc),
	ir.OpFPRecip32:                  emitFPRecip,
	ir.OpFPRecipSqrt32:              glsl(GLSLstd450InverseSqrt),
	ir.OpFPRecip64:                  emitFPRecip,
	ir.OpFPRecipSqrt64:              glsl(GLSLstd450InverseSqrt),
	ir.OpFPSqrt:                     glsl(GLSLstd450Sqrt),
	ir.OpFPSin:                      glsl(GLSLstd450Sin),
	ir.OpFPCos:                      glsl(GLSLstd450Cos),
	ir.OpFPExp2:                     glsl(GLSLstd450Exp2),
	ir.OpFPLog2:                     glsl(GLSLstd450Log2),
	ir.OpFPFract:                    glsl(GLSLstd450Fract),
	ir.OpFPOrdEqual16:               simple(OpFOrdEqual),
	ir.OpFPOrdEqual32:               simple(OpFOrdEqual),
	ir.OpFPOrdEqual64:               simple(OpFOrdEqual),
	ir.OpFPUnordEqual16:             simple(OpFUnordEqual),
	ir.OpFPUnordEqual32:             simple(OpFUnordEqual),
	ir.OpFPUnordEqual64:             simple(OpFUnordEqual),
	ir.OpFPOrdNotEqual16:            simple(OpFOrdNotEqual),
	ir.OpFPOrdNotEqual32:            simple(OpFOrdNotEqual),
	ir.OpFPOrdNotEqual64:            simple(OpFOrdNotEqual),
	ir.OpFPUnordNotEqual16:          simple(OpFUnordNotEqual),
	ir.OpFPUnordNotEqual32:          simple(OpFUnordNotEqual),
	ir.OpFPUnordNotEqual64:          simple(OpFUnordNotEqual),
	ir.OpFPOrdLessThan16:            simple(OpFOrdLessThan),
	ir.OpFPOrdLessThan32:            simple(OpFOrdLessThan),
	ir.OpFPOrdLessThan64:            simple(OpFOrdLessThan),
	ir.OpFPUnordLessThan16:          simple(OpFUnordLessThan),
	ir.OpFPUnordLessThan32:          simple(OpFUnordLessThan),
	ir.OpFPUnordLessThan64:          simple(OpFUnordLessThan),
	ir.OpFPOrdGreaterThan16:         simple(OpFOrdGreaterThan),
	ir.OpFPOrdGreaterThan32:         simple(OpFOrdGreaterThan),
	ir.OpFPOrdGreaterThan64:         simple(OpFOrdGreaterThan),
	ir.OpFPUnordGreaterThan16:       simple(OpFUnordGreaterThan),
	ir.OpFPUnordGreaterThan32:       simple(OpFUnordGreaterThan),
	ir.OpFPUnordGreaterThan64:       simple(OpFUnordGreaterThan),
	ir.OpFPOrdLessThanEqual16:       simple(OpFOrdLessThanEqual),
	ir.OpFPOrdLessThanEqual32:       simple(OpFOrdLessThanEqual),
	ir.OpFPOrdLessThanEqual64:       simple(OpFOrdLessThanEqual),
	ir.OpFPUnordLessThanEqual16:     simple(OpFUnordLessThanEqual),
	ir.OpFPUnordLessThanEqual32:     simple(OpFUnordLessThanEqual),
	ir.OpFPUnordLessThanEqual64:     simple(OpFUnordLessThanEqual),
	ir.OpFPOrdGreaterThanEqual16:    simple(OpFOrdGreaterThanEqual),
	ir.OpFPOrdGreaterThanEqual32:    simple(OpFOrdGreaterThanEqual),
	ir.OpFPOrdGreaterThanEqual64:    simple(OpFOrdGreaterThanEqual),
	ir.OpFPUnordGreaterThanEqual16:  simple(OpFUnordGreaterThanEqual),
	ir.OpFPUnordGreaterThanEqual32:  simple(OpFUnordGreaterThanEqual),
	ir.OpFPUnordGreaterThanEqual64:  simple(OpFUnordGreaterThanEqual),
	ir.OpFPIsNan16:                  simple(OpIsNan),
	ir.OpFPIsNan32:                  simple(OpIsNan),
	ir.OpFPIsNan64:                  simple(OpIsNan),
	ir.OpIAdd32:                     simple(OpIAdd),
	ir.OpISub32:                     simple(OpISub),
	ir.OpIMul32:                     simple(OpIMul),
	ir.OpSDiv32:                     simple(OpSDiv),
	ir.OpUDiv32:                     simple(OpUDiv),
	ir.OpINeg32:                     simple(OpSNegate),
	ir.OpIAbs32:                     glsl(GLSLstd450SAbs),
	ir.OpShiftLeftLogical32:         simple(OpShiftLeftLogical),
	ir.OpShiftRightLogical32:        simple(OpShiftRightLogical),
	ir.OpShiftRightArithmetic32:     simple(OpShiftRightArithmetic),
	ir.OpBitwiseAnd32:               simple(OpBitwiseAnd),
	ir.OpBitwiseOr32:                simple(OpBitwiseOr),
	ir.OpBitwiseXor32:               simple(OpBitwiseXor),
	ir.OpSMin32:                     glsl(GLSLstd450SMin),
	ir.OpUMin32:                     glsl(GLSLstd450UMin),
	ir.OpSMax32:                     glsl(GLSLstd450SMax),
	ir.OpUMax32:                     glsl(GLSLstd450UMax),
	ir.OpSClamp32:                   glsl(GLSLstd450SClamp),
	ir.OpUClamp32:                   glsl(GLSLstd450UClamp),
	ir.OpIAdd64:                     simple(OpIAdd),
	ir.OpISub64:                     simple(OpISub),
	ir.OpIMul64:                     simple(OpIMul),
	ir.OpSDiv64:                     simple(OpSDiv),
	ir.OpUDiv64:                     simple(OpUDiv),
	ir.OpINeg64:                     simple(OpSNegate),
	ir.OpIAbs64:                     glsl(GLSLstd450SAbs),
	ir.OpShiftLeftLogical64:         simple(OpShiftLeftLogical),
	ir.OpShiftRightLogical64:        simple(OpShiftRightLogical),
	ir.OpShiftRightArithmetic64:     simple(OpShiftRightArithmetic),
	ir.OpBitwiseAnd64:               simple(OpBitwiseAnd),
	ir.OpBitwiseOr64:                simple(OpBitwiseOr),
	ir.OpBitwiseXor64:               simple(OpBitwiseXor),
	ir.OpSMin64:                     glsl(GLSLstd450SMin),
	ir.OpUMin64:                     glsl(GLSLstd450UMin),
	ir.OpSMax64:                     glsl(GLSLstd450SMax),
	ir.OpUMax64:                     glsl(GLSLstd450UMax),
	ir.OpSClamp64:                   glsl(GLSLstd450SClamp),
	ir.OpUClamp64:                   glsl(GLSLstd450UClamp),
	ir.OpBitFieldInsert:             emitBitFieldInsert,
	ir.OpBitFieldSExtract:           bitFieldExtract(true),
	ir.OpBitFieldUExtract:           bitFieldExtract(false),
	ir.OpBitReverse32:               simple(OpBitReverse),
	ir.OpBitCount32:                 simple(OpBitCount),
	ir.OpBitwiseNot32:               simple(OpNot),
	ir.OpFindSMsb32:                 glsl(GLSLstd450FindSMsb),
	ir.OpFindUMsb32:                 glsl(GLSLstd450FindUMsb),
	ir.OpSLessThan:                  simple(OpSLessThan),
	ir.OpULessThan:                  simple(OpULessThan),
	ir.OpIEqual:                     simple(OpIEqual),
	ir.OpSLessThanEqual:             simple(OpSLessThanEqual),
	ir.OpULessThanEqual:             simple(OpULessThanEqual),
	ir.OpSGreaterThan:               simple(OpSGreaterThan),
	ir.OpUGreaterThan:               simple(OpUGreaterThan),
	ir.OpINotEqual:                  simple(OpINotEqual),
	ir.OpSGreaterThanEqual:          simple(OpSGreaterThanEqual),
	ir.OpUGreaterThanEqual:          simple(OpUGreaterThanEqual),
	ir.OpLogicalOr:                  simple(OpLogicalOr),
	ir.OpLogicalAnd:                 simple(OpLogicalAnd),
	ir.OpLogicalXor:                 simple(OpLogicalNotEqual),
	ir.OpLogicalNot:                 simple(OpLogicalNot),
	ir.OpConvertS8S16:               convert(true, true),
	ir.OpConvertS8S32:               convert(true, true),
	ir.OpConvertS8S64:               convert(true, true),
	ir.OpConvertS8U8:                convert(true, false),
	ir.OpConvertS8U16:               convert(true, false),
	ir.OpConvertS8U32:               convert(true, false),
	ir.OpConvertS8U64:               convert(true, false),
	ir.OpConvertS8F16:               convert(true, false),
	ir.OpConvertS8F32:               convert(true, false),
	ir.OpConvertS8F64:               convert(true, false),
	ir.OpConvertS16S8:               convert(true, true),
	ir.OpConvertS16S32:              convert(true, true),
	ir.OpConvertS16S64:              convert(true, true),
	ir.OpConvertS16U8:               convert(true, false),
	ir.OpConvertS16U16:              convert(true, false),
	ir.OpConvertS16U32:              convert(true, false),
	ir.OpConvertS16U64:              convert(true, false),
	ir.OpConvertS16F16:              convert(true, false),
	ir.OpConvertS16F32:              convert(true, false),
	ir.OpConvertS16F64:              convert(true, false),
	ir.OpConvertS32S8:               convert(true, true),
	ir.OpConvertS32S16:              convert(true, true),
	ir.OpConvertS32S64:              convert(true, true),
	ir.OpConvertS32U8:               convert(true, false),
	ir.OpConvertS32U16:              convert(true, false),
	ir.OpConvertS32U32:              convert(true, false),
	ir.OpConvertS32U64:              convert(true, false),
	ir.OpConvertS32F16:              convert(true, false),
	ir.OpConvertS32F32:              convert(true, false),
	ir.OpConvertS32F64:              convert(true, false),
	ir.OpConvertS64S8:               convert(true, true),
	ir.OpConvertS64S16:              convert(true, true),
	ir.OpConvertS64S32:              convert(true, true),
	ir.OpConvertS64U8:               convert(true, false),
	ir.OpConvertS64U16:              convert(true, false),
	ir.OpConvertS64U32:              convert(true, false),
	ir.OpConvertS64U64:              convert(true, false),
	ir.OpConvertS64F16:              convert(true, false),
	ir.OpConvertS64F32:              convert(true, false),
	ir.OpConvertS64F64:              convert(true, false),
	ir.OpConvertU8S8:                convert(false, true),
	ir.OpConvertU8S16:               convert(false, true),
	ir.OpConvertU8S32:               convert(false, true),
	ir.OpConvertU8S64:               convert(false, true),
	ir.OpConvertU8U16:               convert(false, false),
	ir.OpConvertU8U32:               convert(false, false),
	ir.OpConvertU8U64:               convert(false, false),
	ir.OpConvertU8F16:               convert(false, false),
	ir.OpConvertU8F32:               convert(false, false),
	ir.OpConvertU8F64:               convert(false, false),
	ir.OpConvertU16S8:               convert(false, true),
	ir.OpConvertU16S16:              convert(false, true),
	ir.OpConvertU16S32:              convert(false, true),
	ir.OpConvertU16S64:              convert(false, true),
	ir.OpConvertU16U8:               convert(false, false),
	ir.OpConvertU16U32:              convert(false, false),
	ir.OpConvertU16U64:              convert(false, false),
	ir.OpConvertU16F16:              convert(false, false),
	ir.OpConvertU16F32:              convert(false, false),
	ir.OpConvertU16F64:              convert(false, false),
	ir.OpConvertU32S8:               convert(false, true),
	ir.OpConvertU32S16:              convert(false, true),
	ir.OpConvertU32S32:              convert(false, true),
	ir.OpConvertU32S64:              convert(false, true),
	ir.OpConvertU32U8:               convert(false, false),
	ir.OpConvertU32U16:              convert(false, false),
	ir.OpConvertU32U64:              convert(false, false),
	ir.OpConvertU32F16:              convert(false, false),
	ir.OpConvertU32F32:              convert(false, false),
	ir.OpConvertU32F64:              convert(false, false),
	ir.OpConvertU64S8:               convert(false, true),
	ir.OpConvertU64S16:              convert(false, true),
	ir.OpConvertU64S32:              convert(false, true),
	ir.OpConvertU64S64:              convert(false, true),
	ir.OpConvertU64U8:               convert(false, false),
	ir.OpConvertU64U16:              convert(false, false),
	ir.OpConvertU64U32:              convert(false, false),
	ir.OpConvertU64F16:              convert(false, false),
	ir.OpConvertU64F32:              convert(false, false),
	ir.OpConvertU64F64:              convert(false, false),
	ir.OpConvertF16S8:               convert(false, true),
	ir.OpConvertF16S16:              convert(false, true),
	ir.OpConvertF16S32:              convert(false, true),
	ir.OpConvertF16S64:              convert(false, true),
	ir.OpConvertF16U8:               convert(false, false),
	ir.OpConvertF16U16:              convert(false, false),
	ir.OpConvertF16U32:              convert(false, false),
	ir.OpConvertF16U64:              convert(false, false),
	ir.OpConvertF16F32:              convert(false, false),
	ir.OpConvertF16F64:              convert(false, false),
	ir.OpConvertF32S8:               convert(false, true),
	ir.OpConvertF32S16:              convert(false, true),
	ir.OpConvertF32S32:              convert(false, true),
	ir.OpConvertF32S64:              convert(false, true),
	ir.OpConvertF32U8:               convert(false, false),
	ir.OpConvertF32U16:              convert(false, false),
	ir.OpConvertF32U32:              convert(false, false),
	ir.OpConvertF32U64:              convert(false, false),
	ir.OpConvertF32F16:              convert(false, false),
	ir.OpConvertF32F64:              convert(false, false),
	ir.OpConvertF64S8:               convert(false, true),
	ir.OpConvertF64S16:              convert(false, true),
	ir.OpConvertF64S32:              convert(false, true),
	ir.OpConvertF64S64:              convert(false, true),
	ir.OpConvertF64U8:               convert(false, false),
	ir.OpConvertF64U16:              convert(false, false),
	ir.OpConvertF64U32:              convert(false, false),
	ir.OpConvertF64U64:              convert(false, false),
	ir.OpConvertF64F16:              convert(false, false),
	ir.OpConvertF64F32:              convert(false, false),
	ir.OpImageSampleImplicitLod:     emitImageSampleImplicitLod,
	ir.OpImageSampleExplicitLod:     emitImageSampleExplicitLod,
	ir.OpImageSampleDrefImplicitLod: emitImageSampleDrefImplicitLod,
	ir.OpImageSampleDrefExplicitLod: emitImageSampleDrefExplicitLod,
	ir.OpImageGather:                emitImageGather,
	ir.OpImageGatherDref:            emitImageGatherDref,
	ir.OpImageFetch:                 emitImageFetch,
	ir.OpImageQueryDimensions:       emitImageQueryDimensions,
	ir.OpImageQueryLod:              emitImageQueryLod,
	ir.OpImageGradient:              emitImageGradient,
	ir.OpImageRead:                  emitImageRead,
	ir.OpImageWrite:                 emitImageWrite,
}

// emitInst dispatches inst and records its result.
func (c *EmitContext) emitInst(inst *ir.Inst) error {
	fn := emitters[inst.Op]
	if fn == nil {
		return locate(unsupportedf("no emitter"), inst)
	}
	id, err := fn(c, inst)
	if err != nil {
		return locate(err, inst)
	}
	if id != 0 && inst.Type() != ir.Void {
		c.mat.Define(inst, id)
		if !c.cache.isConstantOrType(id) {
			c.name(id, inst.Name)
		}
	}
	return nil
}

// simple emits op over the materialized arguments with the IR result type.
func simple(op OpCode) emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		args, err := c.args(inst)
		if err != nil {
			return 0, err
		}
		return c.b.AddOp(op, c.typeOf(inst.Type()), args...), nil
	}
}

// fp is simple for float arithmetic that honours FpNoContraction.
func fp(op OpCode) emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		args, err := c.args(inst)
		if err != nil {
			return 0, err
		}
		id := c.b.AddOp(op, c.typeOf(inst.Type()), args...)
		c.noContraction(inst, id)
		return id, nil
	}
}

// glsl emits a GLSL.std.450 extended instruction.
func glsl(fn uint32) emitFunc {
	return func(c *EmitContext, inst *ir.Inst) (uint32, error) {
		args, err := c.args(inst)
		if err != nil {
			return 0, err
		}
		return c.b.AddExtInst(c.typeOf(inst.Type()), c.glsl, fn, args...), nil
	}
}

func (c *EmitContext) noContraction(inst *ir.Inst, id uint32) {
	if ir.FpControl(inst.Flags).NoContraction() {
		c.b.AddDecorate(id, DecorationNoContraction)
	}
}
