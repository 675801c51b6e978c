package ir

import (
	"errors"
	"fmt"
)

// ValidationError describes one violation of the IR input contract.
type ValidationError struct {
	Message string
	// Optional context, -1 when absent
	Block int
	Inst  int
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Block >= 0 {
		if e.Inst >= 0 {
			return fmt.Sprintf("in block %d, instruction %d: %s", e.Block, e.Inst, e.Message)
		}
		return fmt.Sprintf("in block %d: %s", e.Block, e.Message)
	}
	return e.Message
}

// Validator checks a program against the input contract of the backend.
type Validator struct {
	prog   *Program
	dom    *DomTree
	pos    map[*Inst]int
	errors []ValidationError
}

// Validate checks the program for correctness.
// Returns validation errors if any, or nil if the program is valid.
func Validate(prog *Program) ([]ValidationError, error) {
	if prog == nil {
		return nil, fmt.Errorf("program is nil")
	}
	v := &Validator{prog: prog, pos: make(map[*Inst]int)}
	v.ValidateProgram()
	if len(v.errors) > 0 {
		return v.errors, nil
	}
	return nil, nil
}

// Check runs Validate and joins the errors into one.
func Check(prog *Program) error {
	errs, err := Validate(prog)
	if err != nil {
		return err
	}
	if len(errs) == 0 {
		return nil
	}
	joined := make([]error, len(errs))
	for i, e := range errs {
		joined[i] = e
	}
	return errors.Join(joined...)
}

// ValidateProgram runs all checks.
func (v *Validator) ValidateProgram() {
	if len(v.prog.Blocks) == 0 {
		v.errorf(-1, -1, "program has no blocks")
		return
	}
	if !v.validateBlockGraph() {
		return
	}
	v.dom = Dominators(v.prog)
	v.validateOrder()
	for _, b := range v.prog.Blocks {
		for i, inst := range b.Insts {
			v.pos[inst] = i
		}
	}
	for _, b := range v.prog.Blocks {
		v.validateBlock(b)
	}
}

func (v *Validator) errorf(block, inst int, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		Message: fmt.Sprintf(format, args...),
		Block:   block,
		Inst:    inst,
	})
}

func (v *Validator) owns(b *Block) bool {
	return b != nil && b.Index >= 0 && b.Index < len(v.prog.Blocks) && v.prog.Blocks[b.Index] == b
}

// validateBlockGraph checks indices, terminators and predecessor lists.
// Later checks need a sound graph, so it reports whether they may run.
func (v *Validator) validateBlockGraph() bool {
	ok := true
	for i, b := range v.prog.Blocks {
		if b.Index != i {
			v.errorf(i, -1, "block index %d does not match position", b.Index)
			ok = false
		}
	}
	if !ok {
		return false
	}
	actual := make([]map[*Block]int, len(v.prog.Blocks))
	for i := range actual {
		actual[i] = make(map[*Block]int)
	}
	for _, b := range v.prog.Blocks {
		switch b.Term.Kind {
		case TermNone:
			v.errorf(b.Index, -1, "block has no terminator")
			ok = false
			continue
		case TermCondBranch:
			if t := b.Term.Cond.Type(); t != U1 {
				v.errorf(b.Index, -1, "branch condition has type %s, want u1", t)
			}
		}
		for _, s := range b.Succs() {
			if !v.owns(s) {
				v.errorf(b.Index, -1, "branch target is not a block of the program")
				ok = false
				continue
			}
			actual[s.Index][b] = 1
		}
	}
	if !ok {
		return false
	}
	for _, b := range v.prog.Blocks {
		seen := make(map[*Block]bool, len(b.Preds))
		for _, p := range b.Preds {
			if seen[p] {
				v.errorf(b.Index, -1, "predecessor %s listed twice", p.Label())
				ok = false
			}
			seen[p] = true
			if actual[b.Index][p] == 0 {
				v.errorf(b.Index, -1, "declared predecessor %s does not branch here", p.Label())
				ok = false
			}
		}
		for p := range actual[b.Index] {
			if !seen[p] {
				v.errorf(b.Index, -1, "predecessor %s is not declared", p.Label())
				ok = false
			}
		}
	}
	return ok
}

// validateOrder checks reachability and that every block follows its
// immediate dominator.
func (v *Validator) validateOrder() {
	for _, b := range v.prog.Blocks[1:] {
		if !v.dom.Reachable(b) {
			v.errorf(b.Index, -1, "block is unreachable")
			continue
		}
		if id := v.dom.IDom(b); id != nil && id.Index >= b.Index {
			v.errorf(b.Index, -1, "block precedes its immediate dominator %s", id.Label())
		}
	}
	if len(v.prog.Blocks[0].Phis()) > 0 {
		v.errorf(0, -1, "entry block cannot have phis")
	}
}

func (v *Validator) validateBlock(b *Block) {
	inPhis := true
	for i, inst := range b.Insts {
		if inst.block != b {
			v.errorf(b.Index, i, "instruction %s belongs to another block", inst.Label())
		}
		if inst.Op >= NumOpcodes {
			v.errorf(b.Index, i, "invalid opcode %d", uint16(inst.Op))
			continue
		}
		if inst.Op == OpPhi {
			if !inPhis {
				v.errorf(b.Index, i, "phi after non-phi instruction")
			}
			v.validatePhi(b, i, inst)
			continue
		}
		inPhis = false
		v.validateInst(b, i, inst)
	}
	if b.Term.Kind == TermCondBranch {
		v.validateUse(b, len(b.Insts), b.Term.Cond)
	}
}

func (v *Validator) validatePhi(b *Block, i int, inst *Inst) {
	if !inst.typ.IsSingle() || inst.typ&(Scalar|Vector) == 0 {
		v.errorf(b.Index, i, "phi has invalid type %s", inst.typ)
	}
	if len(inst.Args) != len(b.Preds) {
		v.errorf(b.Index, i, "phi has %d operands for %d predecessors", len(inst.Args), len(b.Preds))
		return
	}
	for n, arg := range inst.Args {
		if arg.IsEmpty() {
			v.errorf(b.Index, i, "phi operand %d is empty", n)
			continue
		}
		if t := arg.Type(); t != inst.typ {
			v.errorf(b.Index, i, "phi operand %d has type %s, want %s", n, t, inst.typ)
		}
		if def := arg.Inst(); def != nil {
			if !v.owns(def.block) {
				v.errorf(b.Index, i, "phi operand %d refers outside the program", n)
				continue
			}
			pred := b.Preds[n]
			if !v.dom.Dominates(def.block, pred) {
				v.errorf(b.Index, i, "phi operand %s does not dominate predecessor %s", def.Label(), pred.Label())
			}
		}
	}
}

func (v *Validator) validateInst(b *Block, i int, inst *Inst) {
	op := inst.Op
	if len(inst.Args) != op.NumArgs() {
		v.errorf(b.Index, i, "%s takes %d arguments, got %d", op, op.NumArgs(), len(inst.Args))
		return
	}
	for n, arg := range inst.Args {
		want := op.ArgType(n)
		if op.ArgImmediate(n) && !arg.IsImmediate() {
			v.errorf(b.Index, i, "%s argument %d must be an immediate", op, n)
		}
		if want != Opaque {
			if arg.IsEmpty() {
				v.errorf(b.Index, i, "%s argument %d is empty", op, n)
				continue
			}
			if t := arg.Type(); t&want == 0 {
				v.errorf(b.Index, i, "%s argument %d has type %s, want %s", op, n, t, want)
			}
		}
		v.validateUse(b, i, arg)
	}
	if op.NumArgs() == 2 && op.ArgType(0) == U32|U64 {
		if a, c := inst.Args[0].Type(), inst.Args[1].Type(); a != c {
			v.errorf(b.Index, i, "%s operands differ in type: %s and %s", op, a, c)
		}
	}
	if op == OpIdentity && inst.Args[0].Type()&(Scalar|Vector) == 0 {
		v.errorf(b.Index, i, "identity of non-numeric value")
	}
}

// validateUse checks def-before-use for an argument at position i of b.
func (v *Validator) validateUse(b *Block, i int, arg Value) {
	def := arg.Inst()
	if def == nil {
		return
	}
	if !v.owns(def.block) {
		v.errorf(b.Index, i, "operand %s refers outside the program", def.Label())
		return
	}
	if def.Op.ResultType() == Void {
		v.errorf(b.Index, i, "operand %s has no result", def.Label())
	}
	if def.block == b {
		if v.pos[def] >= i {
			v.errorf(b.Index, i, "operand %s used before its definition", def.Label())
		}
		return
	}
	if !v.dom.Dominates(def.block, b) {
		v.errorf(b.Index, i, "operand %s does not dominate its use", def.Label())
	}
}
