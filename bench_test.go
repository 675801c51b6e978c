package shadps4

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/jurealeksic/shadPS4/ir"
	"github.com/jurealeksic/shadPS4/spirv"
)

// chainProgram builds a compute program of n blocks, each adding to a
// running value and branching on it, ending in a store.
func chainProgram(n int) *ir.Program {
	b := ir.NewBuilder(ir.StageCompute)
	b.Info().Buffers = append(b.Info().Buffers, ir.BufferResource{Binding: 0, Storage: true})
	blocks := make([]*ir.Block, 0, 2*n+1)
	for i := range n {
		blocks = append(blocks, b.NewBlock(fmt.Sprintf("b%d", i)), b.NewBlock(fmt.Sprintf("side%d", i)))
	}
	exit := b.NewBlock("exit")

	acc := ir.Imm32(0)
	for i := range n {
		head, side := blocks[2*i], blocks[2*i+1]
		next := exit
		if i+1 < n {
			next = blocks[2*i+2]
		}
		b.SetInsertPoint(head)
		sum := b.Emit(ir.OpIAdd32, acc, ir.Imm32(uint32(i)))
		cond := b.Emit(ir.OpULessThan, sum.Value(), ir.Imm32(1000))
		b.CondBranch(cond.Value(), side, next)
		b.SetInsertPoint(side)
		b.Emit(ir.OpStoreBufferU32, ir.Imm32(0), ir.Imm32(0), sum.Value())
		b.Branch(next)
		acc = sum.Value()
	}
	b.SetInsertPoint(exit)
	b.Emit(ir.OpStoreBufferU32, ir.Imm32(0), ir.Imm32(4), acc)
	b.Return()
	return b.Program()
}

var programsBySize = []struct {
	name string
	prog *ir.Program
}{
	{"small", chainProgram(4)},
	{"medium", chainProgram(64)},
	{"large", chainProgram(512)},
}

// BenchmarkCompile benchmarks IR-to-SPIR-V compilation grouped by program
// size. Reports allocations.
func BenchmarkCompile(b *testing.B) {
	for _, pc := range programsBySize {
		b.Run(pc.name, func(b *testing.B) {
			backend := spirv.NewBackend(spirv.Options{Version: spirv.Version1_3, Profile: spirv.FullProfile()})
			b.ReportAllocs()
			b.ResetTimer()

			var result []byte
			for i := 0; i < b.N; i++ {
				var err error
				result, err = backend.Compile(pc.prog)
				if err != nil {
					b.Fatalf("compile failed: %v", err)
				}
			}
			runtime.KeepAlive(result)
		})
	}
}

// BenchmarkCompileWithValidation measures the overhead of the validation
// pass.
func BenchmarkCompileWithValidation(b *testing.B) {
	for _, pc := range programsBySize {
		b.Run(pc.name, func(b *testing.B) {
			backend := spirv.NewBackend(spirv.DefaultOptions())
			b.ReportAllocs()
			b.ResetTimer()

			var result []byte
			for i := 0; i < b.N; i++ {
				var err error
				result, err = backend.Compile(pc.prog)
				if err != nil {
					b.Fatalf("compile failed: %v", err)
				}
			}
			runtime.KeepAlive(result)
		})
	}
}

// BenchmarkValidate benchmarks the IR validator alone.
func BenchmarkValidate(b *testing.B) {
	prog := programsBySize[1].prog
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if err := ir.Check(prog); err != nil {
			b.Fatalf("validate failed: %v", err)
		}
	}
}

func TestChainProgramCompiles(t *testing.T) {
	for _, pc := range programsBySize {
		if err := ir.Check(pc.prog); err != nil {
			t.Fatalf("%s: %v", pc.name, err)
		}
		if _, err := Compile(pc.prog, DefaultConfig(), nil); err != nil {
			t.Fatalf("%s: %v", pc.name, err)
		}
	}
}
