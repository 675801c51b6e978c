package spirv

import (
	"strings"
	"testing"
)

const loopProgram = `
stage: compute
info:
  buffers: [{binding: 0, storage: true}]
blocks:
  - name: entry
    term: branch header
  - name: header
    insts:
      - "%i = Phi.u32 u32:0 %next"
      - "%sum = Phi.u32 u32:0 %total"
      - "%c = ULessThan %i u32:5"
    term: cond %c body exit
  - name: body
    insts:
      - "%total = IAdd32 %sum %i"
      - "%next = IAdd32 %i u32:1"
    term: branch header
  - name: exit
    insts:
      - "StoreBufferU32 u32:0 u32:0 %sum"
    term: return
`

const diamondProgram = `
stage: compute
info:
  buffers: [{binding: 0, storage: true}]
blocks:
  - name: entry
    insts:
      - "%n = LoadBufferU32 u32:0 u32:0"
      - "%c = IEqual %n u32:0"
    term: cond %c then else
  - name: then
    insts:
      - "%a = IAdd32 %n u32:100"
    term: branch join
  - name: else
    insts:
      - "%b = IMul32 %n u32:3"
    term: branch join
  - name: join
    insts:
      - "%r = Phi.u32 %a %b"
      - "StoreBufferU32 u32:0 u32:4 %r"
    term: return
`

// Two blocks entered from the entry block that branch to each other form
// a loop with two headers.
const irreducibleProgram = `
stage: compute
info:
  buffers: [{binding: 0, storage: true}]
blocks:
  - name: entry
    insts:
      - "%n = LoadBufferU32 u32:0 u32:0"
      - "%c = IEqual %n u32:0"
    term: cond %c a b
  - name: a
    insts:
      - "%ia = Phi.u32 u32:100 %ib2"
      - "%ia1 = IAdd32 %ia u32:1"
    term: branch b
  - name: b
    insts:
      - "%ib = Phi.u32 u32:200 %ia1"
      - "%ib2 = IAdd32 %ib u32:10"
      - "%done = UGreaterThan %ib2 u32:150"
    term: cond %done exit a
  - name: exit
    insts:
      - "StoreBufferU32 u32:0 u32:4 %ib2"
    term: return
`

// nestedLoopProgram sums i+j over i < 3 and j < 2. The outer latch is its
// own block so the inner merge and the outer continue target differ.
const nestedLoopProgram = `
stage: compute
info:
  buffers: [{binding: 0, storage: true}]
blocks:
  - name: entry
    term: branch outer
  - name: outer
    insts:
      - "%i = Phi.u32 u32:0 %i1"
      - "%s = Phi.u32 u32:0 %t"
      - "%ci = ULessThan %i u32:3"
    term: cond %ci inner exit
  - name: inner
    insts:
      - "%j = Phi.u32 u32:0 %j1"
      - "%t = Phi.u32 %s %t1"
      - "%cj = ULessThan %j u32:2"
    term: cond %cj body after
  - name: body
    insts:
      - "%a = IAdd32 %i %j"
      - "%t1 = IAdd32 %t %a"
      - "%j1 = IAdd32 %j u32:1"
    term: branch inner
  - name: after
    insts:
      - "%i1 = IAdd32 %i u32:1"
    term: branch latch
  - name: latch
    term: branch outer
  - name: exit
    insts:
      - "StoreBufferU32 u32:0 u32:0 %s"
    term: return
`

func TestStructuredLoop(t *testing.T) {
	data := compileText(t, loopProgram)
	instrs := decodeSPIRVInstructions(data)
	if n := countOpcode(instrs, OpLoopMerge); n != 1 {
		t.Errorf("%d OpLoopMerge, want 1", n)
	}
	if n := countOpcode(instrs, OpSwitch); n != 0 {
		t.Errorf("structured loop emitted %d OpSwitch", n)
	}
	if n := countOpcode(instrs, OpPhi); n != 2 {
		t.Errorf("%d OpPhi, want 2", n)
	}

	m := execute(t, loopProgram, []uint32{0})
	if out := buffer(t, m); out[0] != 10 {
		t.Errorf("sum = %d, want 10", out[0])
	}
}

func TestNestedLoops(t *testing.T) {
	if _, reason := analyzeStructure(parseProgram(t, nestedLoopProgram)); reason != "" {
		t.Fatalf("analyzeStructure = %q, want structured", reason)
	}
	instrs := decodeSPIRVInstructions(compileText(t, nestedLoopProgram))
	if n := countOpcode(instrs, OpLoopMerge); n != 2 {
		t.Errorf("%d OpLoopMerge, want 2", n)
	}
	if n := countOpcode(instrs, OpSwitch); n != 0 {
		t.Errorf("nested loops emitted %d OpSwitch", n)
	}

	m := execute(t, nestedLoopProgram, []uint32{0})
	if out := buffer(t, m); out[0] != 9 {
		t.Errorf("sum = %d, want 9", out[0])
	}
}

func TestStructuredSelection(t *testing.T) {
	instrs := decodeSPIRVInstructions(compileText(t, diamondProgram))
	if n := countOpcode(instrs, OpSelectionMerge); n != 1 {
		t.Errorf("%d OpSelectionMerge, want 1", n)
	}
	tests := []struct {
		in, want uint32
	}{
		{0, 100},
		{7, 21},
	}
	for _, tt := range tests {
		m := execute(t, diamondProgram, []uint32{tt.in, 0})
		if out := buffer(t, m); out[1] != tt.want {
			t.Errorf("input %d: result %d, want %d", tt.in, out[1], tt.want)
		}
	}
}

func TestIrreducibleFallsBackToDispatch(t *testing.T) {
	opts := DefaultOptions()
	opts.Debug = true
	data := compileProgram(t, parseProgram(t, irreducibleProgram), opts)
	instrs := decodeSPIRVInstructions(data)
	sw, ok := findOpcode(instrs, OpSwitch)
	if !ok {
		t.Fatal("no dispatch switch")
	}
	// selector, default, then one literal and label per block
	if cases := (len(sw.words) - 2) / 2; cases != 4 {
		t.Errorf("switch has %d cases, want 4", cases)
	}
	if n := countOpcode(instrs, OpPhi); n != 0 {
		t.Errorf("dispatch emitted %d OpPhi, want phis through variables", n)
	}
	text, err := Disassemble(data)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if !strings.Contains(text, `"next_block"`) {
		t.Error("no next_block selector variable")
	}

	tests := []struct {
		in, want uint32
	}{
		{0, 155}, // a, b, a, b, ... until the sum passes 150
		{1, 210}, // b once
	}
	for _, tt := range tests {
		m := execute(t, irreducibleProgram, []uint32{tt.in, 0})
		if out := buffer(t, m); out[1] != tt.want {
			t.Errorf("input %d: result %d, want %d", tt.in, out[1], tt.want)
		}
	}
}

func TestAnalyzeStructure(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason string
	}{
		{"loop", loopProgram, ""},
		{"diamond", diamondProgram, ""},
		{"irreducible", irreducibleProgram, "irreducible edge"},
		{"two latches", `
stage: compute
blocks:
  - name: entry
    term: branch header
  - name: header
    insts:
      - "%c = ULessThan u32:1 u32:2"
    term: cond %c left right
  - name: left
    term: branch header
  - name: right
    term: cond %c header exit
  - name: exit
    term: return
`, "latches"},
		{"two exits", `
stage: compute
blocks:
  - name: entry
    term: branch header
  - name: header
    insts:
      - "%c = ULessThan u32:1 u32:2"
    term: cond %c body out1
  - name: body
    term: cond %c header out2
  - name: out1
    term: return
  - name: out2
    term: return
`, "exits"},
		{"shared merge", `
stage: compute
blocks:
  - name: entry
    insts:
      - "%c = ULessThan u32:1 u32:2"
    term: cond %c a b
  - name: a
    term: cond %c c join
  - name: b
    term: branch join
  - name: c
    term: branch join
  - name: join
    term: return
`, "merges several constructs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, reason := analyzeStructure(parseProgram(t, tt.src))
			if tt.reason == "" {
				if reason != "" {
					t.Errorf("analyzeStructure = %q, want structured", reason)
				}
				return
			}
			if !strings.Contains(reason, tt.reason) {
				t.Errorf("analyzeStructure = %q, want a reason mentioning %q", reason, tt.reason)
			}
		})
	}
}

func TestUnstructuredProgramsStillCompile(t *testing.T) {
	src := `
stage: compute
info:
  buffers: [{binding: 0, storage: true}]
blocks:
  - name: entry
    insts:
      - "%n = LoadBufferU32 u32:0 u32:0"
      - "%c = IEqual %n u32:0"
    term: branch header
  - name: header
    insts:
      - "%i = Phi.u32 u32:0 %i1 %i2"
    term: cond %c left right
  - name: left
    insts:
      - "%i1 = IAdd32 %i u32:1"
      - "%lc = ULessThan %i1 u32:3"
    term: cond %lc header exit
  - name: right
    insts:
      - "%i2 = IAdd32 %i u32:2"
      - "%rc = ULessThan %i2 u32:6"
    term: cond %rc header exit
  - name: exit
    insts:
      - "%r = Phi.u32 %i1 %i2"
      - "StoreBufferU32 u32:0 u32:4 %r"
    term: return
`
	if _, reason := analyzeStructure(parseProgram(t, src)); reason == "" {
		t.Fatal("two-latch loop analyzed as structured")
	}
	for _, tt := range []struct{ in, want uint32 }{{0, 3}, {1, 6}} {
		m := execute(t, src, []uint32{tt.in, 0})
		if out := buffer(t, m); out[1] != tt.want {
			t.Errorf("input %d: result %d, want %d", tt.in, out[1], tt.want)
		}
	}
}
