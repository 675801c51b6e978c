package ir

import (
	"strings"
	"testing"
)

// diamond builds entry -> (then | else) -> merge with a phi in merge.
func diamond(t *testing.T) (*Builder, *Inst) {
	t.Helper()
	b := NewBuilder(StageCompute)
	entry := b.NewBlock("entry")
	then := b.NewBlock("then")
	els := b.NewBlock("else")
	merge := b.NewBlock("merge")

	b.SetInsertPoint(entry)
	cond := b.Emit(OpIEqual, Imm32(1), Imm32(2))
	b.CondBranch(cond.Value(), then, els)

	b.SetInsertPoint(then)
	a := b.Emit(OpIAdd32, Imm32(1), Imm32(2))
	b.Branch(merge)

	b.SetInsertPoint(els)
	c := b.Emit(OpIMul32, Imm32(3), Imm32(4))
	b.Branch(merge)

	b.SetInsertPoint(merge)
	phi := b.Phi(U32, a.Value(), c.Value())
	b.Return()
	return b, phi
}

func TestValidate_ValidProgram(t *testing.T) {
	b, _ := diamond(t)
	errors, err := Validate(b.Program())
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if len(errors) > 0 {
		t.Errorf("Valid program has validation errors:")
		for _, e := range errors {
			t.Errorf("  - %s", e.Error())
		}
	}
}

func TestValidate_NilProgram(t *testing.T) {
	_, err := Validate(nil)
	if err == nil {
		t.Error("Expected error for nil program, got nil")
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *Builder, phi *Inst)
		want   string
	}{
		{
			name: "phi arity",
			mutate: func(b *Builder, phi *Inst) {
				phi.Args = phi.Args[:1]
			},
			want: "phi has 1 operands for 2 predecessors",
		},
		{
			name: "phi type",
			mutate: func(b *Builder, phi *Inst) {
				phi.Args[1] = ImmF32(1)
			},
			want: "phi operand 1 has type f32, want u32",
		},
		{
			name: "argument type",
			mutate: func(b *Builder, phi *Inst) {
				b.Program().Blocks[1].Insts[0].Args[0] = ImmF32(1)
			},
			want: "IAdd32 argument 0 has type f32, want u32",
		},
		{
			name: "argument count",
			mutate: func(b *Builder, phi *Inst) {
				inst := b.Program().Blocks[1].Insts[0]
				inst.Args = inst.Args[:1]
			},
			want: "IAdd32 takes 2 arguments, got 1",
		},
		{
			name: "missing terminator",
			mutate: func(b *Builder, phi *Inst) {
				b.Program().Blocks[3].Term = Terminator{}
			},
			want: "block has no terminator",
		},
		{
			name: "undeclared predecessor",
			mutate: func(b *Builder, phi *Inst) {
				merge := b.Program().Blocks[3]
				merge.Preds = merge.Preds[:1]
			},
			want: "predecessor else is not declared",
		},
		{
			name: "non dominating operand",
			mutate: func(b *Builder, phi *Inst) {
				prog := b.Program()
				then := prog.Blocks[1].Insts[0]
				b.SetInsertPoint(prog.Blocks[2])
				b.Emit(OpIAdd32, then.Value(), Imm32(1))
			},
			want: "does not dominate its use",
		},
		{
			name: "use before definition",
			mutate: func(b *Builder, phi *Inst) {
				blk := b.Program().Blocks[1]
				b.SetInsertPoint(blk)
				later := b.Emit(OpIAdd32, Imm32(1), Imm32(1))
				blk.Insts[0].Args[0] = later.Value()
			},
			want: "used before its definition",
		},
		{
			name: "immediate required",
			mutate: func(b *Builder, phi *Inst) {
				blk := b.Program().Blocks[3]
				b.SetInsertPoint(blk)
				b.Emit(OpLoadBufferU32, phi.Value(), Imm32(0))
			},
			want: "LoadBufferU32 argument 0 must be an immediate",
		},
		{
			name: "phi after instruction",
			mutate: func(b *Builder, phi *Inst) {
				blk := b.Program().Blocks[3]
				b.SetInsertPoint(blk)
				b.Emit(OpIAdd32, Imm32(1), Imm32(1))
				p := b.Phi(U32, Imm32(1), Imm32(2))
				_ = p
			},
			want: "phi after non-phi instruction",
		},
		{
			name: "mixed comparison widths",
			mutate: func(b *Builder, phi *Inst) {
				b.Program().Blocks[0].Insts[0].Args[1] = Imm64(2)
			},
			want: "IEqual operands differ in type: u32 and u64",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, phi := diamond(t)
			tt.mutate(b, phi)
			errs, err := Validate(b.Program())
			if err != nil {
				t.Fatalf("Validate returned error: %v", err)
			}
			for _, e := range errs {
				if strings.Contains(e.Error(), tt.want) {
					return
				}
			}
			t.Fatalf("expected error containing %q, got %v", tt.want, errs)
		})
	}
}

func TestValidate_BlockOrder(t *testing.T) {
	b := NewBuilder(StageCompute)
	entry := b.NewBlock("entry")
	late := b.NewBlock("late")
	mid := b.NewBlock("mid")
	b.SetInsertPoint(entry)
	b.Branch(mid)
	b.SetInsertPoint(mid)
	b.Branch(late)
	b.SetInsertPoint(late)
	b.Return()

	errs, _ := Validate(b.Program())
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "precedes its immediate dominator mid") {
		t.Fatalf("unexpected errors: %v", errs)
	}
}

func TestCheck_JoinsErrors(t *testing.T) {
	b, phi := diamond(t)
	phi.Args[0] = ImmF32(0)
	phi.Args[1] = ImmF32(0)
	err := Check(b.Program())
	if err == nil {
		t.Fatal("expected error")
	}
	if n := strings.Count(err.Error(), "\n") + 1; n != 2 {
		t.Fatalf("expected 2 joined errors, got %d: %v", n, err)
	}
}
