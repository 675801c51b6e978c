package shadps4

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xyproto/env/v2"

	"github.com/jurealeksic/shadPS4/spirv"
)

const storeProgram = `
stage: compute
workgroup_size: [64, 1, 1]
info:
  buffers: [{binding: 0, storage: true}]
blocks:
  - name: entry
    insts:
      - "%a = IAdd32 u32:40 u32:2"
      - "StoreBufferU32 u32:0 u32:0 %a"
    term: return
`

// TestCompileText tests the text-to-SPIR-V pipeline with default options.
func TestCompileText(t *testing.T) {
	spirvBytes, err := CompileText([]byte(storeProgram), DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("CompileText failed: %v", err)
	}
	if len(spirvBytes) < 20 {
		t.Fatal("SPIR-V output too short (should have at least 5-word header)")
	}
	magic := uint32(spirvBytes[0]) | uint32(spirvBytes[1])<<8 | uint32(spirvBytes[2])<<16 | uint32(spirvBytes[3])<<24
	if magic != spirv.MagicNumber {
		t.Errorf("Invalid SPIR-V magic: got 0x%08x, want 0x%08x", magic, spirv.MagicNumber)
	}
	if minor := spirvBytes[5]; minor != 3 {
		t.Errorf("SPIR-V minor version = %d, want 3", minor)
	}
}

func TestCompileTextErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"syntax", "stage: [", nil},
		{"unknown opcode", `
stage: compute
blocks:
  - name: entry
    insts: ["%a = Frobnicate u32:1"]
    term: return
`, nil},
		{"use before definition", `
stage: compute
blocks:
  - name: entry
    insts:
      - "%a = IAdd32 %b u32:1"
      - "%b = IAdd32 u32:1 u32:1"
    term: return
`, spirv.ErrContractViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileText([]byte(tt.src), DefaultConfig(), nil)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error %v does not match %v", err, tt.want)
			}
		})
	}
}

func TestCompileWithDebugLogging(t *testing.T) {
	var logs bytes.Buffer
	logger, err := NewLogger(&logs, "debug")
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Debug = true
	if _, err := CompileText([]byte(storeProgram), cfg, logger); err != nil {
		t.Fatalf("CompileText: %v", err)
	}
	for _, want := range []string{"compiling program", "structured control flow", "compiled program"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log lacks %q:\n%s", want, logs.String())
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shadc.yaml")
	yamlConfig := `
spirv_version: "1.5"
debug: true
log_level: info
profile:
  float64: false
  int8: false
`
	if err := os.WriteFile(path, []byte(yamlConfig), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SPIRVVersion != "1.5" || !cfg.Debug || cfg.LogLevel != "info" {
		t.Errorf("cfg = %+v", cfg)
	}
	if !cfg.Validate {
		t.Error("unset validate did not keep its default")
	}
	if cfg.Profile.Float64 || cfg.Profile.Int8 || !cfg.Profile.Int64 {
		t.Errorf("profile = %+v, want only float64 and int8 disabled", cfg.Profile)
	}
	opts, err := cfg.SPIRVOptions(nil)
	if err != nil {
		t.Fatalf("SPIRVOptions: %v", err)
	}
	if opts.Version != spirv.Version1_5 || opts.Profile.Float64 || !opts.Validation {
		t.Errorf("options = %+v", opts)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return p
	}
	for name, path := range map[string]string{
		"missing":     filepath.Join(dir, "nope.yaml"),
		"bad yaml":    write("bad.yaml", "debug: [1"),
		"bad version": write("version.yaml", `spirv_version: "2.0"`),
		"bad level":   write("level.yaml", "log_level: loud"),
	} {
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("%s: LoadConfig succeeded", name)
		}
	}
}

func TestApplyEnv(t *testing.T) {
	// registered first so it runs after the variables are restored
	t.Cleanup(func() { env.Load() })
	t.Setenv(EnvSPIRVVersion, "1.6")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvValidate, "false")
	t.Setenv(EnvLogLevel, "debug")
	env.Load()

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.SPIRVVersion != "1.6" || !cfg.Debug || cfg.Validate || cfg.LogLevel != "debug" {
		t.Errorf("cfg after ApplyEnv = %+v", cfg)
	}
	v, err := cfg.Version()
	if err != nil || v != spirv.Version1_6 {
		t.Errorf("Version = %v, %v; want 1.6", v, err)
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want spirv.Version
		ok   bool
	}{
		{"1.3", spirv.Version1_3, true},
		{" 1.5 ", spirv.Version1_5, true},
		{"1.2", spirv.Version{}, false},
		{"", spirv.Version{}, false},
	}
	for _, tt := range tests {
		got, err := ParseVersion(tt.in)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("ParseVersion(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestDefaultConfigMatchesBackendDefaults(t *testing.T) {
	opts, err := DefaultConfig().SPIRVOptions(nil)
	if err != nil {
		t.Fatalf("SPIRVOptions: %v", err)
	}
	def := spirv.DefaultOptions()
	if opts.Version != def.Version || opts.Profile != def.Profile || opts.Validation != def.Validation || opts.Debug != def.Debug {
		t.Errorf("DefaultConfig options = %+v, want %+v", opts, def)
	}
}
