package ir

import (
	"strings"
	"testing"
)

const selectProgram = `
stage: compute
workgroup_size: [64, 1, 1]
info:
  buffers:
    - {binding: 0, storage: true}
  images:
    - {binding: 1, dim: 2d, format: uint}
blocks:
  - name: entry
    insts:
      - "%c = IEqual u32:1 u32:1"
    term: cond %c left right
  - name: left
    insts:
      - "%a = IAdd32 u32:0x10 u32:2"
    term: branch join
  - name: right
    term: branch join
  - name: join
    insts:
      - "%p = Phi.u32 %a u32:20"
      - "StoreBufferU32 u32:0 u32:0 %p flags=0x4"
      - "%f = FPAdd32 f32:1.5 f32:-2"
      - "SetAttribute attr:param3 %f u32:2"
      - "SetScalarRegister sreg:7 %p"
    term: return
`

func TestParseProgram(t *testing.T) {
	p, err := ParseProgram([]byte(selectProgram))
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if p.Stage != StageCompute || p.WorkgroupSize != [3]uint32{64, 1, 1} {
		t.Errorf("stage/workgroup = %v/%v", p.Stage, p.WorkgroupSize)
	}
	if len(p.Info.Buffers) != 1 || !p.Info.Buffers[0].Storage {
		t.Errorf("buffers = %+v", p.Info.Buffers)
	}
	if len(p.Info.Images) != 1 || p.Info.Images[0].Format != FormatUint || p.Info.Images[0].Dim != Dim2D {
		t.Errorf("images = %+v", p.Info.Images)
	}
	if errs, _ := Validate(p); len(errs) > 0 {
		t.Fatalf("parsed program is invalid: %v", errs)
	}

	join := p.Blocks[3]
	if len(join.Preds) != 2 || join.Preds[0].Name != "left" || join.Preds[1].Name != "right" {
		t.Fatalf("join preds = %v", join.Preds)
	}
	phi := join.Insts[0]
	if phi.Op != OpPhi || phi.Type() != U32 {
		t.Fatalf("phi = %v %v", phi.Op, phi.Type())
	}
	if phi.Args[1].U32() != 20 {
		t.Errorf("phi immediate = %d", phi.Args[1].U32())
	}
	if got := p.Blocks[1].Insts[0].Args[0].U32(); got != 16 {
		t.Errorf("hex immediate = %d, want 16", got)
	}
	store := join.Insts[1]
	if BufferInstInfo(store.Flags).Offset() != 4 {
		t.Errorf("store flags = %#x", store.Flags)
	}
	add := join.Insts[2]
	if add.Args[1].F32() != -2 {
		t.Errorf("float immediate = %v", add.Args[1].F32())
	}
	attr := join.Insts[3].Args[0]
	if attr.Attribute() != AttrParam0+3 {
		t.Errorf("attribute = %v", attr.Attribute())
	}
	if reg := join.Insts[4].Args[0]; reg.ScalarReg() != 7 || reg.Type() != ScalarRegType {
		t.Errorf("sreg = %v", reg)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	p, err := ParseProgram([]byte(selectProgram))
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	text, err := Format(p)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	q, err := ParseProgram(text)
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, text)
	}
	again, err := Format(q)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if string(text) != string(again) {
		t.Fatalf("round trip differs:\n%s\n---\n%s", text, again)
	}
	if !strings.Contains(string(text), "%p = Phi.u32 %a u32:20") {
		t.Errorf("formatted text lacks phi:\n%s", text)
	}
}

func TestParseProgramErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"stage", "stage: tess\nblocks: []", "unknown stage"},
		{"opcode", "stage: compute\nblocks:\n  - {name: a, insts: [\"Bogus\"], term: return}", "unknown opcode"},
		{"undefined", "stage: compute\nblocks:\n  - {name: a, insts: [\"SetScc %x\"], term: return}", "undefined value %x"},
		{"phi type", "stage: compute\nblocks:\n  - {name: a, insts: [\"%p = Phi\"], term: return}", "phi needs a type suffix"},
		{"terminator", "stage: compute\nblocks:\n  - {name: a, term: jump}", "malformed terminator"},
		{"target", "stage: compute\nblocks:\n  - {name: a, term: branch nowhere}", "unknown block"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProgram([]byte(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestOpcodeNames(t *testing.T) {
	for op := Opcode(0); op < NumOpcodes; op++ {
		got, ok := ParseOpcode(op.String())
		if !ok || got != op {
			t.Fatalf("opcode %d (%s) does not round trip", op, op)
		}
		if op != OpPhi && op.NumArgs() == 0 && len(opcodeTable[op].args) != 0 {
			t.Fatalf("%s: inconsistent argument table", op)
		}
	}
	if NumOpcodes < 250 {
		t.Fatalf("NumOpcodes = %d", NumOpcodes)
	}
}
