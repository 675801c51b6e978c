package ir

import "fmt"

var opcodeByName map[string]Opcode

func init() {
	opcodeByName = make(map[string]Opcode, NumOpcodes)
	for op := Opcode(0); op < NumOpcodes; op++ {
		opcodeByName[opcodeTable[op].name] = op
	}
}

// String returns the opcode name.
func (op Opcode) String() string {
	if op >= NumOpcodes {
		return fmt.Sprintf("Opcode(%d)", uint16(op))
	}
	return opcodeTable[op].name
}

// ParseOpcode looks an opcode up by name.
func ParseOpcode(name string) (Opcode, bool) {
	op, ok := opcodeByName[name]
	return op, ok
}

// ResultType returns the static result type of the opcode. Phi and Identity
// return Opaque; their real type comes from the instruction.
func (op Opcode) ResultType() Type {
	return opcodeTable[op].result
}

// NumArgs returns the fixed argument count. Phi is variadic and reports 0.
func (op Opcode) NumArgs() int {
	return len(opcodeTable[op].args)
}

// ArgType returns the accepted types of argument i.
func (op Opcode) ArgType(i int) Type {
	return opcodeTable[op].args[i]
}

// ArgImmediate reports whether argument i must be an immediate.
func (op Opcode) ArgImmediate(i int) bool {
	return opcodeTable[op].imm&(1<<uint(i)) != 0
}

// IsImage reports whether op belongs to the image family. These take the
// resource index as their first argument and TextureInstInfo flags.
func (op Opcode) IsImage() bool {
	return op >= OpImageSampleImplicitLod && op <= OpImageWrite
}
