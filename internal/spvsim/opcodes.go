package spvsim

// SPIR-V instruction numbers understood by the machine.
const (
	opNop                      = 0
	opUndef                    = 1
	opName                     = 5
	opExtInstImport            = 11
	opExtInst                  = 12
	opEntryPoint               = 15
	opTypeVoid                 = 19
	opTypeBool                 = 20
	opTypeInt                  = 21
	opTypeFloat                = 22
	opTypeVector               = 23
	opTypeImage                = 25
	opTypeSampler              = 26
	opTypeSampledImage         = 27
	opTypeArray                = 28
	opTypeRuntimeArray         = 29
	opTypeStruct               = 30
	opTypePointer              = 32
	opTypeFunction             = 33
	opConstantTrue             = 41
	opConstantFalse            = 42
	opConstant                 = 43
	opConstantComposite        = 44
	opConstantNull             = 46
	opFunction                 = 54
	opFunctionEnd              = 56
	opVariable                 = 59
	opLoad                     = 61
	opStore                    = 62
	opAccessChain              = 65
	opDecorate                 = 71
	opVectorExtractDynamic     = 77
	opVectorInsertDynamic      = 78
	opVectorShuffle            = 79
	opCompositeConstruct       = 80
	opCompositeExtract         = 81
	opCompositeInsert          = 82
	opCopyObject               = 83
	opSampledImage             = 86
	opImageSampleImplicitLod   = 87
	opImageQuerySamples        = 107
	opConvertFToU              = 109
	opConvertFToS              = 110
	opConvertSToF              = 111
	opConvertUToF              = 112
	opUConvert                 = 113
	opSConvert                 = 114
	opFConvert                 = 115
	opConvertUToPtr            = 120
	opBitcast                  = 124
	opSNegate                  = 126
	opFNegate                  = 127
	opIAdd                     = 128
	opFAdd                     = 129
	opISub                     = 130
	opFSub                     = 131
	opIMul                     = 132
	opFMul                     = 133
	opUDiv                     = 134
	opSDiv                     = 135
	opFDiv                     = 136
	opUMod                     = 137
	opSRem                     = 138
	opSMod                     = 139
	opFRem                     = 140
	opFMod                     = 141
	opIsNan                    = 156
	opIsInf                    = 157
	opLogicalEqual             = 164
	opLogicalNotEqual          = 165
	opLogicalOr                = 166
	opLogicalAnd               = 167
	opLogicalNot               = 168
	opSelect                   = 169
	opIEqual                   = 170
	opINotEqual                = 171
	opUGreaterThan             = 172
	opSGreaterThan             = 173
	opUGreaterThanEqual        = 174
	opSGreaterThanEqual        = 175
	opULessThan                = 176
	opSLessThan                = 177
	opULessThanEqual           = 178
	opSLessThanEqual           = 179
	opFOrdEqual                = 180
	opFUnordEqual              = 181
	opFOrdNotEqual             = 182
	opFUnordNotEqual           = 183
	opFOrdLessThan             = 184
	opFUnordLessThan           = 185
	opFOrdGreaterThan          = 186
	opFUnordGreaterThan        = 187
	opFOrdLessThanEqual        = 188
	opFUnordLessThanEqual      = 189
	opFOrdGreaterThanEqual     = 190
	opFUnordGreaterThanEqual   = 191
	opShiftRightLogical        = 194
	opShiftRightArithmetic     = 195
	opShiftLeftLogical         = 196
	opBitwiseOr                = 197
	opBitwiseXor               = 198
	opBitwiseAnd               = 199
	opNot                      = 200
	opBitFieldInsert           = 201
	opBitFieldSExtract         = 202
	opBitFieldUExtract         = 203
	opBitReverse               = 204
	opBitCount                 = 205
	opControlBarrier           = 224
	opMemoryBarrier            = 225
	opAtomicLoad               = 227
	opAtomicStore              = 228
	opAtomicExchange           = 229
	opAtomicCompareExchange    = 230
	opAtomicIIncrement         = 232
	opAtomicIDecrement         = 233
	opAtomicIAdd               = 234
	opAtomicISub               = 235
	opAtomicSMin               = 236
	opAtomicUMin               = 237
	opAtomicSMax               = 238
	opAtomicUMax               = 239
	opAtomicAnd                = 240
	opAtomicOr                 = 241
	opAtomicXor                = 242
	opPhi                      = 245
	opLoopMerge                = 246
	opSelectionMerge           = 247
	opLabel                    = 248
	opBranch                   = 249
	opBranchConditional        = 250
	opSwitch                   = 251
	opKill                     = 252
	opReturn                   = 253
	opUnreachable              = 255
	opDemoteToHelperInvocation = 5380
)

// Storage classes.
const (
	classInput         = 1
	classUniform       = 2
	classOutput        = 3
	classPushConstant  = 9
	classStorageBuffer = 12
)

// Decorations.
const (
	decorationBuiltIn       = 11
	decorationLocation      = 30
	decorationBinding       = 33
	decorationDescriptorSet = 34
)

// GLSL.std.450 instructions.
const (
	glslRoundEven      = 2
	glslTrunc          = 3
	glslFAbs           = 4
	glslSAbs           = 5
	glslFloor          = 8
	glslCeil           = 9
	glslFract          = 10
	glslSin            = 13
	glslCos            = 14
	glslExp2           = 29
	glslLog2           = 30
	glslSqrt           = 31
	glslInverseSqrt    = 32
	glslFMin           = 37
	glslUMin           = 38
	glslSMin           = 39
	glslFMax           = 40
	glslUMax           = 41
	glslSMax           = 42
	glslFClamp         = 43
	glslUClamp         = 44
	glslSClamp         = 45
	glslFma            = 50
	glslPackHalf2x16   = 58
	glslUnpackHalf2x16 = 62
	glslFindILsb       = 73
	glslFindSMsb       = 74
	glslFindUMsb       = 75
	glslNMin           = 79
	glslNMax           = 80
	glslNClamp         = 81
)
