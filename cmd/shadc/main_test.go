package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jurealeksic/shadPS4/spirv"
)

const loopSource = `
stage: compute
info:
  buffers: [{binding: 0, storage: true}]
blocks:
  - name: entry
    insts:
      - "%n = LoadBufferU32 u32:0 u32:0"
    term: branch header
  - name: header
    insts:
      - "%i = Phi.u32 u32:0 %next"
      - "%sum = Phi.u32 u32:0 %total"
      - "%c = ULessThan %i %n"
    term: cond %c body exit
  - name: body
    insts:
      - "%total = IAdd32 %sum %i"
      - "%next = IAdd32 %i u32:1"
    term: branch header
  - name: exit
    insts:
      - "StoreBufferU32 u32:0 u32:4 %sum"
    term: return
`

const invalidSource = `
stage: compute
blocks:
  - name: entry
    insts:
      - "%a = IAdd32 %b u32:1"
      - "%b = IAdd32 u32:1 u32:1"
    term: return
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	if version == "" {
		t.Error("version should not be empty")
	}
	out, _, err := execute(t, "--version")
	if err != nil || !strings.Contains(out, version) {
		t.Errorf("--version = %q, %v", out, err)
	}
}

func TestSubcommandsExist(t *testing.T) {
	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	for _, name := range []string{"compile", "dis", "validate", "run"} {
		if c, _, err := cmd.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("subcommand %s not found", name)
		}
	}
}

func TestCompileToFile(t *testing.T) {
	in := writeFile(t, "loop.yaml", loopSource)
	outPath := filepath.Join(t.TempDir(), "loop.spv")
	_, errOut, err := execute(t, "compile", "-o", outPath, in)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !strings.Contains(errOut, "compiled") {
		t.Errorf("stderr = %q, want a summary line", errOut)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := spirv.Disassemble(data); err != nil {
		t.Errorf("output does not disassemble: %v", err)
	}
}

func TestCompileFlags(t *testing.T) {
	in := writeFile(t, "loop.yaml", loopSource)

	out, _, err := execute(t, "compile", "--spirv-version", "1.5", in)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(out) < 8 || out[5] != 5 {
		t.Errorf("--spirv-version 1.5 did not set the header version")
	}

	if _, _, err := execute(t, "compile", "--spirv-version", "9.9", in); err == nil {
		t.Error("unknown SPIR-V version accepted")
	}

	out, _, err = execute(t, "compile", "--debug", in)
	if err != nil {
		t.Fatalf("compile --debug: %v", err)
	}
	text, err := spirv.Disassemble([]byte(out))
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	if !strings.Contains(text, "OpName") {
		t.Error("--debug emitted no names")
	}
}

func TestCompileWithConfigFile(t *testing.T) {
	in := writeFile(t, "loop.yaml", loopSource)
	cfg := writeFile(t, "shadc.yaml", "spirv_version: \"1.4\"\nlog_level: debug\n")
	out, errOut, err := execute(t, "compile", "--config", cfg, in)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(out) < 8 || out[5] != 4 {
		t.Error("config file version was not applied")
	}
	if !strings.Contains(errOut, "compiling program") {
		t.Errorf("debug log level not applied, stderr = %q", errOut)
	}
}

func TestDisassembleFromStdin(t *testing.T) {
	in := writeFile(t, "loop.yaml", loopSource)
	data, _, err := execute(t, "compile", in)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	var out bytes.Buffer
	cmd := newRootCmd(&out, &bytes.Buffer{})
	cmd.SetIn(strings.NewReader(data))
	cmd.SetArgs([]string{"dis", "-"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("dis: %v", err)
	}
	for _, want := range []string{"OpCapability Shader", "OpLoopMerge", "OpFunctionEnd"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("disassembly lacks %q", want)
		}
	}
}

func TestValidate(t *testing.T) {
	out, _, err := execute(t, "validate", writeFile(t, "loop.yaml", loopSource))
	if err != nil || !strings.Contains(out, "ok") {
		t.Errorf("validate = %q, %v", out, err)
	}

	out, _, err = execute(t, "validate", writeFile(t, "bad.yaml", invalidSource))
	if !errors.Is(err, ErrInvalidProgram) {
		t.Errorf("validate error = %v, want ErrInvalidProgram", err)
	}
	if !strings.Contains(out, "before its definition") {
		t.Errorf("validate output = %q", out)
	}
}

func TestRun(t *testing.T) {
	in := writeFile(t, "loop.yaml", loopSource)
	tests := []struct {
		buffer string
		want   string
	}{
		{"0=5,0", "buffer 0: [5 10]"},
		{"0=0x4,7", "buffer 0: [4 6]"},
		{"0=0,99", "buffer 0: [0 0]"},
	}
	for _, tt := range tests {
		out, _, err := execute(t, "run", "--buffer", tt.buffer, in)
		if err != nil {
			t.Fatalf("run %s: %v", tt.buffer, err)
		}
		if strings.TrimSpace(out) != tt.want {
			t.Errorf("run %s = %q, want %q", tt.buffer, out, tt.want)
		}
	}
}

func TestRunErrors(t *testing.T) {
	in := writeFile(t, "loop.yaml", loopSource)
	for _, args := range [][]string{
		{"run", "--buffer", "nobinding", in},
		{"run", "--buffer", "0=1,x", in},
		{"run", "--push", "z", in},
		{"run", filepath.Join(t.TempDir(), "missing.yaml")},
	} {
		if _, _, err := execute(t, args...); err == nil {
			t.Errorf("%v succeeded", args)
		}
	}
}

func TestParseWords(t *testing.T) {
	tests := []struct {
		in   string
		want []uint32
		ok   bool
	}{
		{"", nil, true},
		{"1, 2,3", []uint32{1, 2, 3}, true},
		{"0xDEADBEEF", []uint32{0xDEADBEEF}, true},
		{"0x1_0000_0000", nil, false},
		{"-1", nil, false},
	}
	for _, tt := range tests {
		got, err := parseWords(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("parseWords(%q) error = %v", tt.in, err)
			continue
		}
		if tt.ok && !equalWords(got, tt.want) {
			t.Errorf("parseWords(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func equalWords(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestRunWithBindingsFile(t *testing.T) {
	in := writeFile(t, "loop.yaml", loopSource)
	file := writeFile(t, "inputs.yaml", "buffers:\n  0: [3, 0]\n")
	out, _, err := execute(t, "run", "--bindings", file, in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "buffer 0: [3 3]" {
		t.Errorf("run = %q", out)
	}

	// flags win over the file
	out, _, err = execute(t, "run", "--bindings", file, "--buffer", "0=4,0", in)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if strings.TrimSpace(out) != "buffer 0: [4 6]" {
		t.Errorf("run with override = %q", out)
	}

	bad := writeFile(t, "bad.yaml", "buffers: [1")
	if _, _, err := execute(t, "run", "--bindings", bad, in); err == nil {
		t.Error("malformed bindings file accepted")
	}
}
