// Command shadc compiles recompiled shader IR to SPIR-V.
//
// Usage:
//
//	shadc compile [options] <input.yaml>
//	shadc dis <input.spv>
//	shadc validate <input.yaml>
//	shadc run [--buffer N=w0,w1,...] <input.yaml>
//
// Examples:
//
//	shadc compile -o shader.spv shader.yaml     # Compile to SPIR-V
//	shadc compile --debug shader.yaml | shadc dis -
//	shadc run --buffer 0=5,0 loop.yaml          # Execute and dump buffers
//	shadc run --bindings inputs.yaml loop.yaml
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	shadps4 "github.com/jurealeksic/shadPS4"
	"github.com/jurealeksic/shadPS4/internal/spvsim"
	"github.com/jurealeksic/shadPS4/ir"
	"github.com/jurealeksic/shadPS4/spirv"
)

var version = "0.1.0-dev"

// ErrInvalidProgram reports a program that failed validation.
var ErrInvalidProgram = errors.New("invalid program")

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "shadc: %v\n", err)
		return 1
	}
	return 0
}

// options shared by the subcommands that compile.
type compileFlags struct {
	configPath string
	output     string
	debug      bool
	noValidate bool
	spirvVer   string
	logLevel   string
}

func (f *compileFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "emit debug names")
	cmd.Flags().BoolVar(&f.noValidate, "no-validate", false, "skip IR validation")
	cmd.Flags().StringVar(&f.spirvVer, "spirv-version", "", "target SPIR-V version (1.0, 1.3 to 1.6)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
}

// config merges the configuration file, environment and flags, in that
// order of increasing precedence.
func (f *compileFlags) config(cmd *cobra.Command) (shadps4.Config, error) {
	cfg := shadps4.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = shadps4.LoadConfig(f.configPath); err != nil {
			return cfg, err
		}
	} else {
		cfg.ApplyEnv()
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = f.debug
	}
	if f.noValidate {
		cfg.Validate = false
	}
	if f.spirvVer != "" {
		cfg.SPIRVVersion = f.spirvVer
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if _, err := cfg.Version(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shadc",
		Short: "shadc compiles recompiled shader IR to SPIR-V",
		Long: `shadc drives the SPIR-V backend of the shader recompiler. Programs
are read in the YAML text form of the IR; see the ir package.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.AddCommand(
		newCompileCmd(out, errOut),
		newDisCmd(out),
		newValidateCmd(out),
		newRunCmd(out, errOut),
	)
	return rootCmd
}

func newCompileCmd(out, errOut io.Writer) *cobra.Command {
	var f compileFlags
	cmd := &cobra.Command{
		Use:   "compile <input>",
		Short: "Compile an IR program to a SPIR-V binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := compileFile(cmd, &f, args[0], errOut)
			if err != nil {
				return err
			}
			if f.output == "" {
				_, err = out.Write(data)
				return err
			}
			if err := os.WriteFile(f.output, data, 0o644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			fmt.Fprintf(errOut, "compiled %s to %s (%d bytes)\n", args[0], f.output, len(data))
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func compileFile(cmd *cobra.Command, f *compileFlags, path string, errOut io.Writer) ([]byte, error) {
	cfg, err := f.config(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := shadps4.NewLogger(errOut, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	src, err := readInput(cmd, path)
	if err != nil {
		return nil, err
	}
	return shadps4.CompileText(src, cfg, logger)
}

func newDisCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "dis <input.spv>",
		Short: "Disassemble a SPIR-V binary (- reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			text, err := spirv.Disassemble(data)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, text)
			return err
		},
	}
}

func newValidateCmd(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <input>",
		Short: "Check an IR program against the backend input contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			prog, err := ir.ParseProgram(src)
			if err != nil {
				return err
			}
			errs, err := shadps4.Validate(prog)
			if err != nil {
				return err
			}
			for _, e := range errs {
				fmt.Fprintln(out, e.Error())
			}
			if len(errs) > 0 {
				return fmt.Errorf("%w: %d errors", ErrInvalidProgram, len(errs))
			}
			fmt.Fprintf(out, "%s: ok (%d blocks, %d instructions)\n", args[0], len(prog.Blocks), prog.NumInsts())
			return nil
		},
	}
}

func newRunCmd(out, errOut io.Writer) *cobra.Command {
	var (
		f            compileFlags
		buffers      []string
		push         string
		bindingsPath string
	)
	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Compile a program and execute one invocation of it",
		Long: `run compiles a program and executes a single invocation in the
reference interpreter, then prints the contents of every bound buffer.
Buffers are bound with --buffer BINDING=WORD,WORD,... where words are
decimal or 0x-prefixed, or from a YAML file given with --bindings:

  buffers:
    0: [5, 0]
  push: [1, 2]
  memory:
    0x10000: [7, 8]

Flags take precedence over the file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var in bindings
			if bindingsPath != "" {
				var err error
				if in, err = loadBindings(bindingsPath); err != nil {
					return err
				}
			}
			bound, err := parseBindings(buffers)
			if err != nil {
				return err
			}
			if in.Buffers == nil {
				in.Buffers = bound
			} else {
				for b, words := range bound {
					in.Buffers[b] = words
				}
			}
			if push != "" {
				if in.Push, err = parseWords(push); err != nil {
					return fmt.Errorf("push constants: %w", err)
				}
			}
			data, err := compileFile(cmd, &f, args[0], errOut)
			if err != nil {
				return err
			}
			m, err := spvsim.Load(data)
			if err != nil {
				return err
			}
			order := make([]uint32, 0, len(in.Buffers))
			for b, words := range in.Buffers {
				if err := m.BindBuffer(0, b, words); err != nil {
					return fmt.Errorf("binding %d: %w", b, err)
				}
				order = append(order, b)
			}
			if in.Push != nil {
				if err := m.SetPushConstants(in.Push); err != nil {
					return err
				}
			}
			for addr, words := range in.Memory {
				m.BindMemory(addr, words)
			}
			if err := m.Run(); err != nil {
				return err
			}
			slices.Sort(order)
			for _, b := range order {
				words, err := m.Buffer(0, b)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "buffer %d: %s\n", b, formatWords(words))
			}
			if m.Demoted() {
				fmt.Fprintln(out, "invocation demoted")
			}
			return nil
		},
	}
	f.register(cmd)
	cmd.Flags().StringArrayVarP(&buffers, "buffer", "b", nil, "bind a buffer as BINDING=WORDS")
	cmd.Flags().StringVar(&push, "push", "", "push constant words")
	cmd.Flags().StringVar(&bindingsPath, "bindings", "", "YAML file of buffer, push constant and memory contents")
	return cmd
}

// readInput reads a file, or the command's input when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// bindings is the input state of a run.
type bindings struct {
	Buffers map[uint32][]uint32 `yaml:"buffers"`
	Push    []uint32            `yaml:"push"`
	Memory  map[uint64][]uint32 `yaml:"memory"`
}

func loadBindings(path string) (bindings, error) {
	var b bindings
	data, err := os.ReadFile(path)
	if err != nil {
		return b, fmt.Errorf("reading bindings: %w", err)
	}
	if err := yaml.Unmarshal(data, &b); err != nil {
		return b, fmt.Errorf("parsing bindings %s: %w", path, err)
	}
	return b, nil
}

func parseBindings(specs []string) (map[uint32][]uint32, error) {
	out := make(map[uint32][]uint32, len(specs))
	for _, s := range specs {
		binding, words, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("buffer %q: want BINDING=WORDS", s)
		}
		b, err := strconv.ParseUint(strings.TrimSpace(binding), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("buffer %q: %w", s, err)
		}
		w, err := parseWords(words)
		if err != nil {
			return nil, fmt.Errorf("buffer %q: %w", s, err)
		}
		out[uint32(b)] = w
	}
	return out, nil
}

func parseWords(s string) ([]uint32, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	words := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(f), 0, 32)
		if err != nil {
			return nil, err
		}
		words[i] = uint32(v)
	}
	return words, nil
}

func formatWords(words []uint32) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = strconv.FormatUint(uint64(w), 10)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
