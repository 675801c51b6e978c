// Package ir defines the intermediate representation consumed by the SPIR-V
// backend.
//
// A Program is one shader function body: an ordered list of basic blocks in
// SSA form, plus the table of resources (buffers, images, samplers, shared
// memory) its instructions refer to by index.
//
// # Values
//
// Instruction arguments are Values: a reference to another instruction, a
// typed immediate, or a special operand (Attribute, ScalarReg, VectorReg).
// Integer types carry no sign; signed behaviour is selected by the opcode.
//
// # Opcodes
//
// Every Opcode has a static signature (result type, argument types, which
// arguments must be immediates). Validate checks programs against these
// signatures and against SSA dominance:
//
//	errs, err := ir.Validate(prog)
//
// # Text form
//
// ParseProgram reads a YAML document describing a program; Format writes
// one. The text form is used by tests and by the shadc command.
package ir
