// Package shadps4 compiles recompiled GPU shader programs to SPIR-V.
//
// A program is the block-structured SSA IR of package ir, produced by a
// front-end that translated guest shader binaries. The spirv package lowers
// it to a SPIR-V module for Vulkan: it emulates the guest wavefront state,
// rebuilds structured control flow where the block graph allows it and
// falls back to a goto dispatcher where it does not.
//
// This package is the high-level entry point. It ties a Config (YAML file
// plus environment overrides) to the backend options:
//
//	cfg, err := shadps4.LoadConfig("shadc.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	spv, err := shadps4.CompileText(src, cfg, nil)
//
// For finer control, build an ir.Program directly and use spirv.NewBackend.
package shadps4

import (
	"fmt"
	"log/slog"

	"github.com/jurealeksic/shadPS4/ir"
	"github.com/jurealeksic/shadPS4/spirv"
)

// Compile compiles a program to a SPIR-V binary with the options described
// by cfg. A nil logger discards backend diagnostics.
func Compile(prog *ir.Program, cfg Config, logger *slog.Logger) ([]byte, error) {
	opts, err := cfg.SPIRVOptions(logger)
	if err != nil {
		return nil, err
	}
	data, err := spirv.NewBackend(opts).Compile(prog)
	if err != nil {
		return nil, fmt.Errorf("SPIR-V generation error: %w", err)
	}
	return data, nil
}

// CompileText parses a program in the YAML text form and compiles it.
//
// The pipeline is:
//  1. Parse the text form to an ir.Program
//  2. Validate it (if cfg.Validate)
//  3. Generate SPIR-V
func CompileText(src []byte, cfg Config, logger *slog.Logger) ([]byte, error) {
	prog, err := ir.ParseProgram(src)
	if err != nil {
		return nil, err
	}
	return Compile(prog, cfg, logger)
}

// Validate checks a program against the backend's input contract and
// returns every problem found.
func Validate(prog *ir.Program) ([]ir.ValidationError, error) {
	return ir.Validate(prog)
}
