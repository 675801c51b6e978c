// Package spirv generates SPIR-V from shader IR programs.
//
// SPIR-V is the intermediate language consumed by Vulkan drivers.
//
// # IR to SPIR-V Backend
//
// The Backend translates one ir.Program to one SPIR-V module with a single
// entry point named "main":
//
//	backend := spirv.NewBackend(spirv.DefaultOptions())
//	binary, err := backend.Compile(prog)
//	if err != nil {
//		log.Fatal(err)
//	}
//
// Errors are *EmitError values. errors.Is tells malformed input
// (ErrContractViolation) from programs the target profile cannot express
// (ErrUnsupported).
//
// Every IR opcode has an emitter in a dispatch table. Emitters read
// operands through the Materializer and declare types and constants through
// the Cache, which deduplicates them.
//
// # Control flow
//
// Block graphs already shaped as structured control flow (one latch and one
// exit per loop, selections that reconverge at a merge block of their own)
// are emitted as is, with OpLoopMerge and OpSelectionMerge added. Any other
// graph is emitted as a loop around an OpSwitch over block indices; values
// that cross blocks then travel through Function variables.
//
// # Machine state
//
// The scalar condition code, the exec and vcc masks, the register files and
// goto variables are Private variables declared on first use.
//
// # Binary Writer
//
// ModuleBuilder is the low-level writer. It keeps the logical sections of a
// module apart so instructions can be added in any order:
//
//	b := spirv.NewModuleBuilder(spirv.Version1_3)
//	b.AddCapability(spirv.CapabilityShader)
//	b.SetMemoryModel(spirv.AddressingModelLogical, spirv.MemoryModelGLSL450)
//	binary := b.Build()
//
// Disassemble renders a binary as text.
package spirv
