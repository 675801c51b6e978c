package spirv

import (
	"cmp"
	"encoding/binary"

	"golang.org/x/exp/slices"
)

// Instruction represents a SPIR-V instruction.
type Instruction struct {
	Opcode OpCode
	Words  []uint32 // result type ID, result ID, operands
}

// InstructionBuilder builds SPIR-V instructions.
type InstructionBuilder struct {
	words []uint32
}

// NewInstructionBuilder creates a new instruction builder.
func NewInstructionBuilder() *InstructionBuilder {
	return &InstructionBuilder{
		words: make([]uint32, 0, 8),
	}
}

// AddWord adds a word to the instruction.
func (b *InstructionBuilder) AddWord(word uint32) {
	b.words = append(b.words, word)
}

// AddWords adds several words.
func (b *InstructionBuilder) AddWords(words ...uint32) {
	b.words = append(b.words, words...)
}

// AddString adds a null-terminated UTF-8 string.
func (b *InstructionBuilder) AddString(s string) {
	b.words = append(b.words, stringWords(s)...)
}

// Build builds the instruction with the given opcode.
func (b *InstructionBuilder) Build(opcode OpCode) Instruction {
	return Instruction{
		Opcode: opcode,
		Words:  b.words,
	}
}

// Encode encodes the instruction to binary.
func (i Instruction) Encode() []uint32 {
	wordCount := uint32(len(i.Words) + 1) // +1 for opcode word
	result := make([]uint32, 0, wordCount)
	result = append(result, (wordCount<<16)|uint32(i.Opcode))
	result = append(result, i.Words...)
	return result
}

func stringWords(s string) []uint32 {
	bytes := append([]byte(s), 0)
	for len(bytes)%4 != 0 {
		bytes = append(bytes, 0)
	}
	words := make([]uint32, 0, len(bytes)/4)
	for i := 0; i < len(bytes); i += 4 {
		words = append(words, binary.LittleEndian.Uint32(bytes[i:]))
	}
	return words
}

// Patch locates an operand word of an emitted function instruction so it can
// be filled in once the value it names exists.
type Patch struct {
	inst int
	word int
}

// ModuleBuilder builds complete SPIR-V modules. Capabilities and extensions
// are deduplicated; everything else is appended in call order to its
// section.
type ModuleBuilder struct {
	// Header
	version   Version
	generator uint32
	bound     uint32 // max ID + 1
	schema    uint32

	// Sections, in SPIR-V logical layout order
	capabilities   []Instruction
	extensions     []Instruction
	extInstImports []Instruction
	memoryModel    *Instruction
	entryPoints    []Instruction
	executionModes []Instruction
	debugNames     []Instruction // OpName, OpMemberName
	annotations    []Instruction // OpDecorate, OpMemberDecorate
	types          []Instruction // OpType*, OpConstant*, OpUndef
	globalVars     []Instruction // OpVariable (global)
	funcHeader     []Instruction // OpFunction and the entry label
	funcVars       []Instruction // OpVariable (Function)
	functions      []Instruction // body ... OpFunctionEnd

	capabilitySet  map[Capability]bool
	extensionSet   map[string]bool
	extensionNames []string

	// ID allocation
	nextID uint32
}

// NewModuleBuilder creates a new SPIR-V module builder.
func NewModuleBuilder(version Version) *ModuleBuilder {
	return &ModuleBuilder{
		version:       version,
		generator:     GeneratorID,
		capabilitySet: make(map[Capability]bool),
		extensionSet:  make(map[string]bool),
		nextID:        1,
	}
}

// Version returns the target version.
func (b *ModuleBuilder) Version() Version { return b.version }

// AllocID allocates a new SPIR-V ID.
func (b *ModuleBuilder) AllocID() uint32 {
	id := b.nextID
	b.nextID++
	return id
}

// Bound returns one more than the largest allocated ID.
func (b *ModuleBuilder) Bound() uint32 { return b.nextID }

// AddCapability adds a capability once.
func (b *ModuleBuilder) AddCapability(capability Capability) {
	if b.capabilitySet[capability] {
		return
	}
	b.capabilitySet[capability] = true
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(capability))
	b.capabilities = append(b.capabilities, builder.Build(OpCapability))
}

// HasCapability reports whether the capability was declared.
func (b *ModuleBuilder) HasCapability(capability Capability) bool {
	return b.capabilitySet[capability]
}

// AddExtension adds an extension once.
func (b *ModuleBuilder) AddExtension(name string) {
	if b.extensionSet[name] {
		return
	}
	b.extensionSet[name] = true
	b.extensionNames = append(b.extensionNames, name)
}

// HasExtension reports whether the extension was declared.
func (b *ModuleBuilder) HasExtension(name string) bool {
	return b.extensionSet[name]
}

// Capabilities returns the declared capabilities in ascending order.
func (b *ModuleBuilder) Capabilities() []Capability {
	caps := make([]Capability, 0, len(b.capabilitySet))
	for c := range b.capabilitySet {
		caps = append(caps, c)
	}
	slices.Sort(caps)
	return caps
}

// Extensions returns the declared extensions sorted by name.
func (b *ModuleBuilder) Extensions() []string {
	names := slices.Clone(b.extensionNames)
	slices.Sort(names)
	return names
}

// AddExtInstImport imports an extended instruction set.
func (b *ModuleBuilder) AddExtInstImport(name string) uint32 {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddWord(id)
	builder.AddString(name)
	b.extInstImports = append(b.extInstImports, builder.Build(OpExtInstImport))
	return id
}

// SetMemoryModel sets the memory model.
func (b *ModuleBuilder) SetMemoryModel(addressing AddressingModel, memory MemoryModel) {
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(addressing))
	builder.AddWord(uint32(memory))
	inst := builder.Build(OpMemoryModel)
	b.memoryModel = &inst
}

// AddEntryPoint adds an entry point.
func (b *ModuleBuilder) AddEntryPoint(execModel ExecutionModel, funcID uint32, name string, interfaces []uint32) {
	builder := NewInstructionBuilder()
	builder.AddWord(uint32(execModel))
	builder.AddWord(funcID)
	builder.AddString(name)
	builder.AddWords(interfaces...)
	b.entryPoints = append(b.entryPoints, builder.Build(OpEntryPoint))
}

// AddExecutionMode adds an execution mode.
func (b *ModuleBuilder) AddExecutionMode(entryPoint uint32, mode ExecutionMode, params ...uint32) {
	builder := NewInstructionBuilder()
	builder.AddWord(entryPoint)
	builder.AddWord(uint32(mode))
	builder.AddWords(params...)
	b.executionModes = append(b.executionModes, builder.Build(OpExecutionMode))
}

// AddName adds a debug name.
func (b *ModuleBuilder) AddName(id uint32, name string) {
	builder := NewInstructionBuilder()
	builder.AddWord(id)
	builder.AddString(name)
	b.debugNames = append(b.debugNames, builder.Build(OpName))
}

// AddMemberName adds a debug member name.
func (b *ModuleBuilder) AddMemberName(structID, member uint32, name string) {
	builder := NewInstructionBuilder()
	builder.AddWord(structID)
	builder.AddWord(member)
	builder.AddString(name)
	b.debugNames = append(b.debugNames, builder.Build(OpMemberName))
}

// AddDecorate adds a decoration.
func (b *ModuleBuilder) AddDecorate(id uint32, decoration Decoration, params ...uint32) {
	builder := NewInstructionBuilder()
	builder.AddWord(id)
	builder.AddWord(uint32(decoration))
	builder.AddWords(params...)
	b.annotations = append(b.annotations, builder.Build(OpDecorate))
}

// AddMemberDecorate adds a member decoration.
func (b *ModuleBuilder) AddMemberDecorate(structID, member uint32, decoration Decoration, params ...uint32) {
	builder := NewInstructionBuilder()
	builder.AddWord(structID)
	builder.AddWord(member)
	builder.AddWord(uint32(decoration))
	builder.AddWords(params...)
	b.annotations = append(b.annotations, builder.Build(OpMemberDecorate))
}

// AddType appends a type declaration and returns its new ID. The caller
// (the type cache) is responsible for never declaring a type twice.
func (b *ModuleBuilder) AddType(opcode OpCode, operands ...uint32) uint32 {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddWord(id)
	builder.AddWords(operands...)
	b.types = append(b.types, builder.Build(opcode))
	return id
}

// AddConstant appends a constant-section instruction with a result type
// (OpConstant*, OpUndef) and returns its new ID.
func (b *ModuleBuilder) AddConstant(opcode OpCode, typeID uint32, operands ...uint32) uint32 {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddWord(typeID)
	builder.AddWord(id)
	builder.AddWords(operands...)
	b.types = append(b.types, builder.Build(opcode))
	return id
}

// AddVariable adds a module scope OpVariable.
func (b *ModuleBuilder) AddVariable(pointerType uint32, storageClass StorageClass) uint32 {
	return b.AddVariableWithInit(pointerType, storageClass, 0)
}

// AddVariableWithInit adds a module scope OpVariable with initializer.
// An initID of 0 means no initializer.
func (b *ModuleBuilder) AddVariableWithInit(pointerType uint32, storageClass StorageClass, initID uint32) uint32 {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddWord(pointerType)
	builder.AddWord(id)
	builder.AddWord(uint32(storageClass))
	if initID != 0 {
		builder.AddWord(initID)
	}
	b.globalVars = append(b.globalVars, builder.Build(OpVariable))
	return id
}

// AddFunctionVariable adds a Function storage variable. It is placed at the
// top of the entry block regardless of when it is requested.
func (b *ModuleBuilder) AddFunctionVariable(pointerType uint32) uint32 {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddWord(pointerType)
	builder.AddWord(id)
	builder.AddWord(uint32(StorageClassFunction))
	b.funcVars = append(b.funcVars, builder.Build(OpVariable))
	return id
}

// BeginFunction emits OpFunction and the entry block label. Function
// variables are flushed right after the label.
func (b *ModuleBuilder) BeginFunction(funcType, returnType uint32) (funcID, entryLabel uint32) {
	funcID = b.AllocID()
	entryLabel = b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddWords(returnType, funcID, FunctionControlNone, funcType)
	b.funcHeader = append(b.funcHeader, builder.Build(OpFunction))
	label := NewInstructionBuilder()
	label.AddWord(entryLabel)
	b.funcHeader = append(b.funcHeader, label.Build(OpLabel))
	return funcID, entryLabel
}

// AddLabel starts a new block with a pre-allocated label.
func (b *ModuleBuilder) AddLabel(label uint32) {
	b.AddInst(OpLabel, label)
}

// AddInst appends a function body instruction made of raw words.
func (b *ModuleBuilder) AddInst(opcode OpCode, words ...uint32) {
	builder := NewInstructionBuilder()
	builder.AddWords(words...)
	b.functions = append(b.functions, builder.Build(opcode))
}

// AddOp appends a function body instruction with a result and returns the
// result ID.
func (b *ModuleBuilder) AddOp(opcode OpCode, resultType uint32, operands ...uint32) uint32 {
	id := b.AllocID()
	builder := NewInstructionBuilder()
	builder.AddWord(resultType)
	builder.AddWord(id)
	builder.AddWords(operands...)
	b.functions = append(b.functions, builder.Build(opcode))
	return id
}

// AddOpPatched is AddOp returning a Patch for operand word n (counting from
// the first operand after the result ID).
func (b *ModuleBuilder) AddOpPatched(opcode OpCode, resultType uint32, n int, operands ...uint32) (uint32, Patch) {
	id := b.AddOp(opcode, resultType, operands...)
	return id, Patch{inst: len(b.functions) - 1, word: 2 + n}
}

// At returns a patch for operand word n of the same instruction.
func (p Patch) At(n int) Patch { return Patch{inst: p.inst, word: 2 + n} }

// ApplyPatch fills in a deferred operand.
func (b *ModuleBuilder) ApplyPatch(p Patch, value uint32) {
	b.functions[p.inst].Words[p.word] = value
}

// AddBinaryOp adds a binary operation instruction.
func (b *ModuleBuilder) AddBinaryOp(opcode OpCode, resultType uint32, left uint32, right uint32) uint32 {
	return b.AddOp(opcode, resultType, left, right)
}

// AddUnaryOp adds a unary operation instruction.
func (b *ModuleBuilder) AddUnaryOp(opcode OpCode, resultType uint32, operand uint32) uint32 {
	return b.AddOp(opcode, resultType, operand)
}

// AddLoad adds OpLoad.
func (b *ModuleBuilder) AddLoad(resultType uint32, pointer uint32, memoryAccess ...uint32) uint32 {
	return b.AddOp(OpLoad, resultType, append([]uint32{pointer}, memoryAccess...)...)
}

// AddStore adds OpStore.
func (b *ModuleBuilder) AddStore(pointer uint32, value uint32) {
	b.AddInst(OpStore, pointer, value)
}

// AddAccessChain adds OpAccessChain.
func (b *ModuleBuilder) AddAccessChain(resultType uint32, base uint32, indices ...uint32) uint32 {
	return b.AddOp(OpAccessChain, resultType, append([]uint32{base}, indices...)...)
}

// AddCompositeConstruct adds OpCompositeConstruct.
func (b *ModuleBuilder) AddCompositeConstruct(resultType uint32, constituents ...uint32) uint32 {
	return b.AddOp(OpCompositeConstruct, resultType, constituents...)
}

// AddCompositeExtract adds OpCompositeExtract.
func (b *ModuleBuilder) AddCompositeExtract(resultType uint32, composite uint32, indices ...uint32) uint32 {
	return b.AddOp(OpCompositeExtract, resultType, append([]uint32{composite}, indices...)...)
}

// AddSelect adds OpSelect.
func (b *ModuleBuilder) AddSelect(resultType uint32, condition uint32, accept uint32, reject uint32) uint32 {
	return b.AddOp(OpSelect, resultType, condition, accept, reject)
}

// AddExtInst adds OpExtInst (extended instruction).
func (b *ModuleBuilder) AddExtInst(resultType uint32, extSet uint32, instruction uint32, operands ...uint32) uint32 {
	return b.AddOp(OpExtInst, resultType, append([]uint32{extSet, instruction}, operands...)...)
}

// AddSelectionMerge adds OpSelectionMerge.
func (b *ModuleBuilder) AddSelectionMerge(mergeLabel uint32) {
	b.AddInst(OpSelectionMerge, mergeLabel, SelectionControlNone)
}

// AddLoopMerge adds OpLoopMerge.
func (b *ModuleBuilder) AddLoopMerge(mergeLabel uint32, continueLabel uint32) {
	b.AddInst(OpLoopMerge, mergeLabel, continueLabel, LoopControlNone)
}

// AddBranch adds OpBranch.
func (b *ModuleBuilder) AddBranch(target uint32) {
	b.AddInst(OpBranch, target)
}

// AddBranchConditional adds OpBranchConditional.
func (b *ModuleBuilder) AddBranchConditional(condition uint32, trueLabel uint32, falseLabel uint32) {
	b.AddInst(OpBranchConditional, condition, trueLabel, falseLabel)
}

// AddSwitch adds OpSwitch with (literal, label) pairs.
func (b *ModuleBuilder) AddSwitch(selector, defaultLabel uint32, cases [][2]uint32) {
	words := []uint32{selector, defaultLabel}
	for _, c := range cases {
		words = append(words, c[0], c[1])
	}
	b.AddInst(OpSwitch, words...)
}

// AddReturn adds OpReturn.
func (b *ModuleBuilder) AddReturn() {
	b.AddInst(OpReturn)
}

// AddUnreachable adds OpUnreachable.
func (b *ModuleBuilder) AddUnreachable() {
	b.AddInst(OpUnreachable)
}

// AddFunctionEnd adds OpFunctionEnd.
func (b *ModuleBuilder) AddFunctionEnd() {
	b.AddInst(OpFunctionEnd)
}

// Build generates the final SPIR-V binary.
func (b *ModuleBuilder) Build() []byte {
	// Update bound to max ID
	b.bound = b.nextID

	// Capabilities and extensions are requested lazily during emission; sort
	// them so the header does not depend on emission order.
	slices.SortFunc(b.capabilities, func(x, y Instruction) int {
		return cmp.Compare(x.Words[0], y.Words[0])
	})
	b.extensions = b.extensions[:0]
	for _, name := range b.Extensions() {
		builder := NewInstructionBuilder()
		builder.AddString(name)
		b.extensions = append(b.extensions, builder.Build(OpExtension))
	}

	sections := [][]Instruction{
		b.capabilities,
		b.extensions,
		b.extInstImports,
		nil, // memory model
		b.entryPoints,
		b.executionModes,
		b.debugNames,
		b.annotations,
		b.types,
		b.globalVars,
		b.funcHeader,
		b.funcVars,
		b.functions,
	}
	if b.memoryModel != nil {
		sections[3] = []Instruction{*b.memoryModel}
	}

	totalWords := 5 // header
	for _, s := range sections {
		totalWords += countWords(s)
	}
	buffer := make([]byte, totalWords*4)
	offset := 0

	// Write header
	for _, w := range []uint32{MagicNumber, versionToWord(b.version), b.generator, b.bound, b.schema} {
		binary.LittleEndian.PutUint32(buffer[offset:], w)
		offset += 4
	}

	// Write sections in order
	for _, s := range sections {
		offset = writeInstructions(buffer, offset, s)
	}
	return buffer
}

// countWords counts total words in instructions.
func countWords(instructions []Instruction) int {
	count := 0
	for _, inst := range instructions {
		count += len(inst.Words) + 1
	}
	return count
}

// writeInstructions writes instructions to buffer.
func writeInstructions(buffer []byte, offset int, instructions []Instruction) int {
	for _, inst := range instructions {
		for _, word := range inst.Encode() {
			binary.LittleEndian.PutUint32(buffer[offset:], word)
			offset += 4
		}
	}
	return offset
}

// versionToWord converts Version to SPIR-V word format.
func versionToWord(v Version) uint32 {
	return (uint32(v.Major) << 16) | (uint32(v.Minor) << 8)
}
