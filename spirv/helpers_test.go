package spirv

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/jurealeksic/shadPS4/internal/spvsim"
	"github.com/jurealeksic/shadPS4/ir"
)

// spirvInstruction is a decoded instruction of a module.
type spirvInstruction struct {
	offset    int // word offset in the module
	opcode    OpCode
	wordCount int
	words     []uint32 // operands, without the opcode word
}

func decodeSPIRVInstructions(data []byte) []spirvInstruction {
	if len(data) < 20 {
		return nil
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	var out []spirvInstruction
	for off := 5; off < len(words); {
		n := int(words[off] >> 16)
		if n == 0 || off+n > len(words) {
			break
		}
		out = append(out, spirvInstruction{
			offset:    off,
			opcode:    OpCode(words[off] & 0xFFFF),
			wordCount: n,
			words:     words[off+1 : off+n],
		})
		off += n
	}
	return out
}

func extractCapabilities(data []byte) map[uint32]bool {
	caps := make(map[uint32]bool)
	for _, in := range decodeSPIRVInstructions(data) {
		if in.opcode == OpCapability && len(in.words) > 0 {
			caps[in.words[0]] = true
		}
	}
	return caps
}

func assertCapability(t *testing.T, caps map[uint32]bool, capability Capability) {
	t.Helper()
	if !caps[uint32(capability)] {
		t.Errorf("expected capability %s to be declared", capability)
	}
}

func assertNoCapability(t *testing.T, caps map[uint32]bool, capability Capability) {
	t.Helper()
	if caps[uint32(capability)] {
		t.Errorf("capability %s should not be declared", capability)
	}
}

func countOpcode(instrs []spirvInstruction, op OpCode) int {
	n := 0
	for _, in := range instrs {
		if in.opcode == op {
			n++
		}
	}
	return n
}

func findOpcode(instrs []spirvInstruction, op OpCode) (spirvInstruction, bool) {
	for _, in := range instrs {
		if in.opcode == op {
			return in, true
		}
	}
	return spirvInstruction{}, false
}

func parseProgram(t *testing.T, src string) *ir.Program {
	t.Helper()
	prog, err := ir.ParseProgram([]byte(src))
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	return prog
}

func compileProgram(t *testing.T, prog *ir.Program, opts Options) []byte {
	t.Helper()
	data, err := NewBackend(opts).Compile(prog)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(data)%4 != 0 || binary.LittleEndian.Uint32(data) != MagicNumber {
		t.Fatalf("Compile returned %d bytes without a SPIR-V header", len(data))
	}
	return data
}

func compileText(t *testing.T, src string) []byte {
	t.Helper()
	return compileProgram(t, parseProgram(t, src), DefaultOptions())
}

// compileError compiles a program expected to fail and returns the error.
func compileError(t *testing.T, prog *ir.Program, opts Options) *EmitError {
	t.Helper()
	data, err := NewBackend(opts).Compile(prog)
	if err == nil {
		t.Fatal("Compile succeeded, want an error")
	}
	if data != nil {
		t.Errorf("Compile returned %d bytes together with an error", len(data))
	}
	var ee *EmitError
	if !errors.As(err, &ee) {
		t.Fatalf("error %v (%T) is not an *EmitError", err, err)
	}
	return ee
}

// execute compiles src and runs it with buffer binding 0 holding words.
func execute(t *testing.T, src string, words []uint32) *spvsim.Machine {
	t.Helper()
	m, err := spvsim.Load(compileText(t, src))
	if err != nil {
		t.Fatalf("spvsim.Load: %v", err)
	}
	if words != nil {
		if err := m.BindBuffer(0, 0, words); err != nil {
			t.Fatalf("BindBuffer: %v", err)
		}
	}
	if err := m.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return m
}

func buffer(t *testing.T, m *spvsim.Machine) []uint32 {
	t.Helper()
	out, err := m.Buffer(0, 0)
	if err != nil {
		t.Fatalf("Buffer: %v", err)
	}
	return out
}
