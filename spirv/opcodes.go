package spirv

// OpCode represents a SPIR-V opcode.
type OpCode uint16

const (
	OpNop                        OpCode = 0
	OpUndef                      OpCode = 1
	OpSourceContinued            OpCode = 2
	OpSource                     OpCode = 3
	OpSourceExtension            OpCode = 4
	OpName                       OpCode = 5
	OpMemberName                 OpCode = 6
	OpString                     OpCode = 7
	OpLine                       OpCode = 8
	OpExtension                  OpCode = 10
	OpExtInstImport              OpCode = 11
	OpExtInst                    OpCode = 12
	OpMemoryModel                OpCode = 14
	OpEntryPoint                 OpCode = 15
	OpExecutionMode              OpCode = 16
	OpCapability                 OpCode = 17
	OpTypeVoid                   OpCode = 19
	OpTypeBool                   OpCode = 20
	OpTypeInt                    OpCode = 21
	OpTypeFloat                  OpCode = 22
	OpTypeVector                 OpCode = 23
	OpTypeMatrix                 OpCode = 24
	OpTypeImage                  OpCode = 25
	OpTypeSampler                OpCode = 26
	OpTypeSampledImage           OpCode = 27
	OpTypeArray                  OpCode = 28
	OpTypeRuntimeArray           OpCode = 29
	OpTypeStruct                 OpCode = 30
	OpTypePointer                OpCode = 32
	OpTypeFunction               OpCode = 33
	OpConstantTrue               OpCode = 41
	OpConstantFalse              OpCode = 42
	OpConstant                   OpCode = 43
	OpConstantComposite          OpCode = 44
	OpConstantNull               OpCode = 46
	OpFunction                   OpCode = 54
	OpFunctionParameter          OpCode = 55
	OpFunctionEnd                OpCode = 56
	OpFunctionCall               OpCode = 57
	OpVariable                   OpCode = 59
	OpLoad                       OpCode = 61
	OpStore                      OpCode = 62
	OpAccessChain                OpCode = 65
	OpDecorate                   OpCode = 71
	OpMemberDecorate             OpCode = 72
	OpVectorExtractDynamic       OpCode = 77
	OpVectorInsertDynamic        OpCode = 78
	OpVectorShuffle              OpCode = 79
	OpCompositeConstruct         OpCode = 80
	OpCompositeExtract           OpCode = 81
	OpCompositeInsert            OpCode = 82
	OpCopyObject                 OpCode = 83
	OpSampledImage               OpCode = 86
	OpImageSampleImplicitLod     OpCode = 87
	OpImageSampleExplicitLod     OpCode = 88
	OpImageSampleDrefImplicitLod OpCode = 89
	OpImageSampleDrefExplicitLod OpCode = 90
	OpImageFetch                 OpCode = 95
	OpImageGather                OpCode = 96
	OpImageDrefGather            OpCode = 97
	OpImageRead                  OpCode = 98
	OpImageWrite                 OpCode = 99
	OpImage                      OpCode = 100
	OpImageQuerySizeLod          OpCode = 103
	OpImageQuerySize             OpCode = 104
	OpImageQueryLod              OpCode = 105
	OpImageQueryLevels           OpCode = 106
	OpImageQuerySamples          OpCode = 107
	OpConvertFToU                OpCode = 109
	OpConvertFToS                OpCode = 110
	OpConvertSToF                OpCode = 111
	OpConvertUToF                OpCode = 112
	OpUConvert                   OpCode = 113
	OpSConvert                   OpCode = 114
	OpFConvert                   OpCode = 115
	OpConvertUToPtr              OpCode = 120
	OpBitcast                    OpCode = 124
	OpSNegate                    OpCode = 126
	OpFNegate                    OpCode = 127
	OpIAdd                       OpCode = 128
	OpFAdd                       OpCode = 129
	OpISub                       OpCode = 130
	OpFSub                       OpCode = 131
	OpIMul                       OpCode = 132
	OpFMul                       OpCode = 133
	OpUDiv                       OpCode = 134
	OpSDiv                       OpCode = 135
	OpFDiv                       OpCode = 136
	OpUMod                       OpCode = 137
	OpSRem                       OpCode = 138
	OpSMod                       OpCode = 139
	OpFRem                       OpCode = 140
	OpFMod                       OpCode = 141
	OpDot                        OpCode = 148
	OpIAddCarry                  OpCode = 149
	OpISubBorrow                 OpCode = 150
	OpAny                        OpCode = 154
	OpAll                        OpCode = 155
	OpIsNan                      OpCode = 156
	OpIsInf                      OpCode = 157
	OpLogicalEqual               OpCode = 164
	OpLogicalNotEqual            OpCode = 165
	OpLogicalOr                  OpCode = 166
	OpLogicalAnd                 OpCode = 167
	OpLogicalNot                 OpCode = 168
	OpSelect                     OpCode = 169
	OpIEqual                     OpCode = 170
	OpINotEqual                  OpCode = 171
	OpUGreaterThan               OpCode = 172
	OpSGreaterThan               OpCode = 173
	OpUGreaterThanEqual          OpCode = 174
	OpSGreaterThanEqual          OpCode = 175
	OpULessThan                  OpCode = 176
	OpSLessThan                  OpCode = 177
	OpULessThanEqual             OpCode = 178
	OpSLessThanEqual             OpCode = 179
	OpFOrdEqual                  OpCode = 180
	OpFUnordEqual                OpCode = 181
	OpFOrdNotEqual               OpCode = 182
	OpFUnordNotEqual             OpCode = 183
	OpFOrdLessThan               OpCode = 184
	OpFUnordLessThan             OpCode = 185
	OpFOrdGreaterThan            OpCode = 186
	OpFUnordGreaterThan          OpCode = 187
	OpFOrdLessThanEqual          OpCode = 188
	OpFUnordLessThanEqual        OpCode = 189
	OpFOrdGreaterThanEqual       OpCode = 190
	OpFUnordGreaterThanEqual     OpCode = 191
	OpShiftRightLogical          OpCode = 194
	OpShiftRightArithmetic       OpCode = 195
	OpShiftLeftLogical           OpCode = 196
	OpBitwiseOr                  OpCode = 197
	OpBitwiseXor                 OpCode = 198
	OpBitwiseAnd                 OpCode = 199
	OpNot                        OpCode = 200
	OpBitFieldInsert             OpCode = 201
	OpBitFieldSExtract           OpCode = 202
	OpBitFieldUExtract           OpCode = 203
	OpBitReverse                 OpCode = 204
	OpBitCount                   OpCode = 205
	OpDPdx                       OpCode = 207
	OpDPdy                       OpCode = 208
	OpFwidth                     OpCode = 209
	OpControlBarrier             OpCode = 224
	OpMemoryBarrier              OpCode = 225
	OpAtomicLoad                 OpCode = 227
	OpAtomicStore                OpCode = 228
	OpAtomicExchange             OpCode = 229
	OpAtomicCompareExchange      OpCode = 230
	OpAtomicIIncrement           OpCode = 232
	OpAtomicIDecrement           OpCode = 233
	OpAtomicIAdd                 OpCode = 234
	OpAtomicISub                 OpCode = 235
	OpAtomicSMin                 OpCode = 236
	OpAtomicUMin                 OpCode = 237
	OpAtomicSMax                 OpCode = 238
	OpAtomicUMax                 OpCode = 239
	OpAtomicAnd                  OpCode = 240
	OpAtomicOr                   OpCode = 241
	OpAtomicXor                  OpCode = 242
	OpPhi                        OpCode = 245
	OpLoopMerge                  OpCode = 246
	OpSelectionMerge             OpCode = 247
	OpLabel                      OpCode = 248
	OpBranch                     OpCode = 249
	OpBranchConditional          OpCode = 250
	OpSwitch                     OpCode = 251
	OpKill                       OpCode = 252
	OpReturn                     OpCode = 253
	OpReturnValue                OpCode = 254
	OpUnreachable                OpCode = 255
	OpDemoteToHelperInvocation   OpCode = 5380
)

var opNames = map[OpCode]string{
	OpNop:                        "OpNop",
	OpUndef:                      "OpUndef",
	OpSourceContinued:            "OpSourceContinued",
	OpSource:                     "OpSource",
	OpSourceExtension:            "OpSourceExtension",
	OpName:                       "OpName",
	OpMemberName:                 "OpMemberName",
	OpString:                     "OpString",
	OpLine:                       "OpLine",
	OpExtension:                  "OpExtension",
	OpExtInstImport:              "OpExtInstImport",
	OpExtInst:                    "OpExtInst",
	OpMemoryModel:                "OpMemoryModel",
	OpEntryPoint:                 "OpEntryPoint",
	OpExecutionMode:              "OpExecutionMode",
	OpCapability:                 "OpCapability",
	OpTypeVoid:                   "OpTypeVoid",
	OpTypeBool:                   "OpTypeBool",
	OpTypeInt:                    "OpTypeInt",
	OpTypeFloat:                  "OpTypeFloat",
	OpTypeVector:                 "OpTypeVector",
	OpTypeMatrix:                 "OpTypeMatrix",
	OpTypeImage:                  "OpTypeImage",
	OpTypeSampler:                "OpTypeSampler",
	OpTypeSampledImage:           "OpTypeSampledImage",
	OpTypeArray:                  "OpTypeArray",
	OpTypeRuntimeArray:           "OpTypeRuntimeArray",
	OpTypeStruct:                 "OpTypeStruct",
	OpTypePointer:                "OpTypePointer",
	OpTypeFunction:               "OpTypeFunction",
	OpConstantTrue:               "OpConstantTrue",
	OpConstantFalse:              "OpConstantFalse",
	OpConstant:                   "OpConstant",
	OpConstantComposite:          "OpConstantComposite",
	OpConstantNull:               "OpConstantNull",
	OpFunction:                   "OpFunction",
	OpFunctionParameter:          "OpFunctionParameter",
	OpFunctionEnd:                "OpFunctionEnd",
	OpFunctionCall:               "OpFunctionCall",
	OpVariable:                   "OpVariable",
	OpLoad:                       "OpLoad",
	OpStore:                      "OpStore",
	OpAccessChain:                "OpAccessChain",
	OpDecorate:                   "OpDecorate",
	OpMemberDecorate:             "OpMemberDecorate",
	OpVectorExtractDynamic:       "OpVectorExtractDynamic",
	OpVectorInsertDynamic:        "OpVectorInsertDynamic",
	OpVectorShuffle:              "OpVectorShuffle",
	OpCompositeConstruct:         "OpCompositeConstruct",
	OpCompositeExtract:           "OpCompositeExtract",
	OpCompositeInsert:            "OpCompositeInsert",
	OpCopyObject:                 "OpCopyObject",
	OpSampledImage:               "OpSampledImage",
	OpImageSampleImplicitLod:     "OpImageSampleImplicitLod",
	OpImageSampleExplicitLod:     "OpImageSampleExplicitLod",
	OpImageSampleDrefImplicitLod: "OpImageSampleDrefImplicitLod",
	OpImageSampleDrefExplicitLod: "OpImageSampleDrefExplicitLod",
	OpImageFetch:                 "OpImageFetch",
	OpImageGather:                "OpImageGather",
	OpImageDrefGather:            "OpImageDrefGather",
	OpImageRead:                  "OpImageRead",
	OpImageWrite:                 "OpImageWrite",
	OpImage:                      "OpImage",
	OpImageQuerySizeLod:          "OpImageQuerySizeLod",
	OpImageQuerySize:             "OpImageQuerySize",
	OpImageQueryLod:              "OpImageQueryLod",
	OpImageQueryLevels:           "OpImageQueryLevels",
	OpImageQuerySamples:          "OpImageQuerySamples",
	OpConvertFToU:                "OpConvertFToU",
	OpConvertFToS:                "OpConvertFToS",
	OpConvertSToF:                "OpConvertSToF",
	OpConvertUToF:                "OpConvertUToF",
	OpUConvert:                   "OpUConvert",
	OpSConvert:                   "OpSConvert",
	OpFConvert:                   "OpFConvert",
	OpConvertUToPtr:              "OpConvertUToPtr",
	OpBitcast:                    "OpBitcast",
	OpSNegate:                    "OpSNegate",
	OpFNegate:                    "OpFNegate",
	OpIAdd:                       "OpIAdd",
	OpFAdd:                       "OpFAdd",
	OpISub:                       "OpISub",
	OpFSub:                       "OpFSub",
	OpIMul:                       "OpIMul",
	OpFMul:                       "OpFMul",
	OpUDiv:                       "OpUDiv",
	OpSDiv:                       "OpSDiv",
	OpFDiv:                       "OpFDiv",
	OpUMod:                       "OpUMod",
	OpSRem:                       "OpSRem",
	OpSMod:                       "OpSMod",
	OpFRem:                       "OpFRem",
	OpFMod:                       "OpFMod",
	OpDot:                        "OpDot",
	OpIAddCarry:                  "OpIAddCarry",
	OpISubBorrow:                 "OpISubBorrow",
	OpAny:                        "OpAny",
	OpAll:                        "OpAll",
	OpIsNan:                      "OpIsNan",
	OpIsInf:                      "OpIsInf",
	OpLogicalEqual:               "OpLogicalEqual",
	OpLogicalNotEqual:            "OpLogicalNotEqual",
	OpLogicalOr:                  "OpLogicalOr",
	OpLogicalAnd:                 "OpLogicalAnd",
	OpLogicalNot:                 "OpLogicalNot",
	OpSelect:                     "OpSelect",
	OpIEqual:                     "OpIEqual",
	OpINotEqual:                  "OpINotEqual",
	OpUGreaterThan:               "OpUGreaterThan",
	OpSGreaterThan:               "OpSGreaterThan",
	OpUGreaterThanEqual:          "OpUGreaterThanEqual",
	OpSGreaterThanEqual:          "OpSGreaterThanEqual",
	OpULessThan:                  "OpULessThan",
	OpSLessThan:                  "OpSLessThan",
	OpULessThanEqual:             "OpULessThanEqual",
	OpSLessThanEqual:             "OpSLessThanEqual",
	OpFOrdEqual:                  "OpFOrdEqual",
	OpFUnordEqual:                "OpFUnordEqual",
	OpFOrdNotEqual:               "OpFOrdNotEqual",
	OpFUnordNotEqual:             "OpFUnordNotEqual",
	OpFOrdLessThan:               "OpFOrdLessThan",
	OpFUnordLessThan:             "OpFUnordLessThan",
	OpFOrdGreaterThan:            "OpFOrdGreaterThan",
	OpFUnordGreaterThan:          "OpFUnordGreaterThan",
	OpFOrdLessThanEqual:          "OpFOrdLessThanEqual",
	OpFUnordLessThanEqual:        "OpFUnordLessThanEqual",
	OpFOrdGreaterThanEqual:       "OpFOrdGreaterThanEqual",
	OpFUnordGreaterThanEqual:     "OpFUnordGreaterThanEqual",
	OpShiftRightLogical:          "OpShiftRightLogical",
	OpShiftRightArithmetic:       "OpShiftRightArithmetic",
	OpShiftLeftLogical:           "OpShiftLeftLogical",
	OpBitwiseOr:                  "OpBitwiseOr",
	OpBitwiseXor:                 "OpBitwiseXor",
	OpBitwiseAnd:                 "OpBitwiseAnd",
	OpNot:                        "OpNot",
	OpBitFieldInsert:             "OpBitFieldInsert",
	OpBitFieldSExtract:           "OpBitFieldSExtract",
	OpBitFieldUExtract:           "OpBitFieldUExtract",
	OpBitReverse:                 "OpBitReverse",
	OpBitCount:                   "OpBitCount",
	OpDPdx:                       "OpDPdx",
	OpDPdy:                       "OpDPdy",
	OpFwidth:                     "OpFwidth",
	OpControlBarrier:             "OpControlBarrier",
	OpMemoryBarrier:              "OpMemoryBarrier",
	OpAtomicLoad:                 "OpAtomicLoad",
	OpAtomicStore:                "OpAtomicStore",
	OpAtomicExchange:             "OpAtomicExchange",
	OpAtomicCompareExchange:      "OpAtomicCompareExchange",
	OpAtomicIIncrement:           "OpAtomicIIncrement",
	OpAtomicIDecrement:           "OpAtomicIDecrement",
	OpAtomicIAdd:                 "OpAtomicIAdd",
	OpAtomicISub:                 "OpAtomicISub",
	OpAtomicSMin:                 "OpAtomicSMin",
	OpAtomicUMin:                 "OpAtomicUMin",
	OpAtomicSMax:                 "OpAtomicSMax",
	OpAtomicUMax:                 "OpAtomicUMax",
	OpAtomicAnd:                  "OpAtomicAnd",
	OpAtomicOr:                   "OpAtomicOr",
	OpAtomicXor:                  "OpAtomicXor",
	OpPhi:                        "OpPhi",
	OpLoopMerge:                  "OpLoopMerge",
	OpSelectionMerge:             "OpSelectionMerge",
	OpLabel:                      "OpLabel",
	OpBranch:                     "OpBranch",
	OpBranchConditional:          "OpBranchConditional",
	OpSwitch:                     "OpSwitch",
	OpKill:                       "OpKill",
	OpReturn:                     "OpReturn",
	OpReturnValue:                "OpReturnValue",
	OpUnreachable:                "OpUnreachable",
	OpDemoteToHelperInvocation:   "OpDemoteToHelperInvocation",
}

// Capability represents a SPIR-V capability.
type Capability uint32

const (
	CapabilityMatrix                              Capability = 0
	CapabilityShader                              Capability = 1
	CapabilityGeometry                            Capability = 2
	CapabilityTessellation                        Capability = 3
	CapabilityAddresses                           Capability = 4
	CapabilityLinkage                             Capability = 5
	CapabilityKernel                              Capability = 6
	CapabilityFloat16                             Capability = 9
	CapabilityFloat64                             Capability = 10
	CapabilityInt64                               Capability = 11
	CapabilityInt16                               Capability = 22
	CapabilityImageGatherExtended                 Capability = 25
	CapabilityStorageImageMultisample             Capability = 27
	CapabilityUniformBufferArrayDynamicIndexing   Capability = 28
	CapabilitySampledImageArrayDynamicIndexing    Capability = 29
	CapabilityStorageBufferArrayDynamicIndexing   Capability = 30
	CapabilityStorageImageArrayDynamicIndexing    Capability = 31
	CapabilityClipDistance                        Capability = 32
	CapabilityCullDistance                        Capability = 33
	CapabilityImageCubeArray                      Capability = 34
	CapabilitySampleRateShading                   Capability = 35
	CapabilitySampledCubeArray                    Capability = 37
	CapabilityInt8                                Capability = 39
	CapabilityMinLod                              Capability = 42
	CapabilitySampled1D                           Capability = 43
	CapabilityImage1D                             Capability = 44
	CapabilitySampledBuffer                       Capability = 46
	CapabilityImageBuffer                         Capability = 47
	CapabilityImageMSArray                        Capability = 48
	CapabilityImageQuery                          Capability = 50
	CapabilityDerivativeControl                   Capability = 51
	CapabilityStorageImageReadWithoutFormat       Capability = 55
	CapabilityStorageImageWriteWithoutFormat      Capability = 56
	CapabilityStorageBuffer16BitAccess            Capability = 4433
	CapabilityShaderNonUniform                    Capability = 5301
	CapabilityRuntimeDescriptorArray              Capability = 5302
	CapabilitySampledImageArrayNonUniformIndexing Capability = 5307
	CapabilityStorageImageArrayNonUniformIndexing Capability = 5309
	CapabilityPhysicalStorageBufferAddresses      Capability = 5347
	CapabilityDemoteToHelperInvocation            Capability = 5379
)

var capabilityNames = map[Capability]string{
	CapabilityMatrix:                              "Matrix",
	CapabilityShader:                              "Shader",
	CapabilityGeometry:                            "Geometry",
	CapabilityTessellation:                        "Tessellation",
	CapabilityAddresses:                           "Addresses",
	CapabilityLinkage:                             "Linkage",
	CapabilityKernel:                              "Kernel",
	CapabilityFloat16:                             "Float16",
	CapabilityFloat64:                             "Float64",
	CapabilityInt64:                               "Int64",
	CapabilityInt16:                               "Int16",
	CapabilityImageGatherExtended:                 "ImageGatherExtended",
	CapabilityStorageImageMultisample:             "StorageImageMultisample",
	CapabilityUniformBufferArrayDynamicIndexing:   "UniformBufferArrayDynamicIndexing",
	CapabilitySampledImageArrayDynamicIndexing:    "SampledImageArrayDynamicIndexing",
	CapabilityStorageBufferArrayDynamicIndexing:   "StorageBufferArrayDynamicIndexing",
	CapabilityStorageImageArrayDynamicIndexing:    "StorageImageArrayDynamicIndexing",
	CapabilityClipDistance:                        "ClipDistance",
	CapabilityCullDistance:                        "CullDistance",
	CapabilityImageCubeArray:                      "ImageCubeArray",
	CapabilitySampleRateShading:                   "SampleRateShading",
	CapabilitySampledCubeArray:                    "SampledCubeArray",
	CapabilityInt8:                                "Int8",
	CapabilityMinLod:                              "MinLod",
	CapabilitySampled1D:                           "Sampled1D",
	CapabilityImage1D:                             "Image1D",
	CapabilitySampledBuffer:                       "SampledBuffer",
	CapabilityImageBuffer:                         "ImageBuffer",
	CapabilityImageMSArray:                        "ImageMSArray",
	CapabilityImageQuery:                          "ImageQuery",
	CapabilityDerivativeControl:                   "DerivativeControl",
	CapabilityStorageImageReadWithoutFormat:       "StorageImageReadWithoutFormat",
	CapabilityStorageImageWriteWithoutFormat:      "StorageImageWriteWithoutFormat",
	CapabilityStorageBuffer16BitAccess:            "StorageBuffer16BitAccess",
	CapabilityShaderNonUniform:                    "ShaderNonUniform",
	CapabilityRuntimeDescriptorArray:              "RuntimeDescriptorArray",
	CapabilitySampledImageArrayNonUniformIndexing: "SampledImageArrayNonUniformIndexing",
	CapabilityStorageImageArrayNonUniformIndexing: "StorageImageArrayNonUniformIndexing",
	CapabilityPhysicalStorageBufferAddresses:      "PhysicalStorageBufferAddresses",
	CapabilityDemoteToHelperInvocation:            "DemoteToHelperInvocation",
}
