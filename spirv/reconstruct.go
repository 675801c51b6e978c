package spirv

import (
	"errors"
	"log/slog"

	"github.com/jurealeksic/shadPS4/ir"
)

// flow is the reconstructor state for the function body.
type flow struct {
	labels   []uint32 // label of each IR block
	endLabel []uint32 // SPIR-V block that ends each IR block
	sealed   []bool
	pending  [][]pendingPhi // phi operands waiting for a predecessor

	dispatch bool
	phiVars  map[*ir.Inst]uint32
	selector uint32
	selMerge uint32

	unreachable []uint32 // synthetic merge blocks
}

type pendingPhi struct {
	operand, label Patch
	value          ir.Value
}

// emitBody emits every block of the program after the entry block opened
// by BeginFunction.
func (c *EmitContext) emitBody(entry uint32) error {
	n := len(c.prog.Blocks)
	f := &flow{
		labels:   make([]uint32, n),
		endLabel: make([]uint32, n),
		sealed:   make([]bool, n),
		pending:  make([][]pendingPhi, n),
	}
	for i, b := range c.prog.Blocks {
		f.labels[i] = c.b.AllocID()
		c.name(f.labels[i], b.Name)
	}
	c.flow = f
	c.label = entry
	c.mat.at(nil, entry)

	st, reason := analyzeStructure(c.prog)
	if reason == "" {
		c.log.Debug("structured control flow", slog.Int("blocks", n), slog.Int("loops", len(st.loops)))
		return c.emitStructured(st)
	}
	c.log.Debug("falling back to goto dispatch", slog.Int("blocks", n), slog.String("reason", reason))
	return c.emitDispatch()
}

func (c *EmitContext) emitStructured(st *structure) error {
	f := c.flow
	c.b.AddBranch(f.labels[0])
	for _, blk := range c.prog.Blocks {
		c.startBlock(f.labels[blk.Index], blk)
		for _, inst := range blk.Insts {
			if err := c.emitInst(inst); err != nil {
				return err
			}
		}
		if err := c.terminate(blk, st); err != nil {
			return atBlock(err, blk)
		}
		if err := c.seal(blk); err != nil {
			return err
		}
	}
	for _, l := range f.unreachable {
		c.startBlock(l, nil)
		c.b.AddUnreachable()
	}
	return nil
}

// mergeLabel returns the label of merge block m, allocating a synthetic
// unreachable block for noMerge.
func (c *EmitContext) mergeLabel(m int) uint32 {
	if m != noMerge {
		return c.flow.labels[m]
	}
	l := c.b.AllocID()
	c.flow.unreachable = append(c.flow.unreachable, l)
	return l
}

func (c *EmitContext) terminate(blk *ir.Block, st *structure) error {
	f := c.flow
	t := blk.Term
	switch t.Kind {
	case ir.TermReturn:
		c.b.AddReturn()
	case ir.TermUnreachable:
		c.b.AddUnreachable()
	case ir.TermBranch, ir.TermCondBranch:
		var cond uint32
		conditional := t.Kind == ir.TermCondBranch && t.True != t.False
		if conditional {
			var err error
			if cond, err = c.value(t.Cond); err != nil {
				return err
			}
		}
		if lp, ok := st.loops[blk.Index]; ok {
			c.b.AddLoopMerge(c.mergeLabel(lp.merge), f.labels[lp.latch])
		} else if m, ok := st.selMerge[blk.Index]; ok {
			c.b.AddSelectionMerge(c.mergeLabel(m))
		}
		if conditional {
			c.b.AddBranchConditional(cond, f.labels[t.True.Index], f.labels[t.False.Index])
		} else {
			c.b.AddBranch(f.labels[t.True.Index])
		}
	default:
		return contractf("block has no terminator")
	}
	return nil
}

// seal records the SPIR-V block that ends blk and fills in the phi operands
// flowing out of it.
func (c *EmitContext) seal(blk *ir.Block) error {
	f := c.flow
	f.endLabel[blk.Index] = c.label
	f.sealed[blk.Index] = true
	for _, p := range f.pending[blk.Index] {
		id, err := c.value(p.value)
		if err != nil {
			return atBlock(err, blk)
		}
		c.b.ApplyPatch(p.operand, id)
		c.b.ApplyPatch(p.label, c.label)
	}
	f.pending[blk.Index] = nil
	return nil
}

// emitDispatch renders the program as a loop around a switch on a selector
// variable holding the index of the next block. Values crossing blocks and
// phi operands travel through Function variables. Any block graph can be
// emitted this way.
//
//	entry:    selector = 0; branch header
//	header:   loop merge exit, continue; branch dispatch
//	dispatch: selection merge next; switch selector, default next, i -> block i
//	block i:  body; store phis and selector of the successor; branch next
//	next:     branch continue
//	continue: branch header
//	exit:     unreachable
func (c *EmitContext) emitDispatch() error {
	f := c.flow
	f.dispatch = true
	f.phiVars = make(map[*ir.Inst]uint32)
	for _, blk := range c.prog.Blocks {
		for _, inst := range blk.Insts {
			if inst.Op == ir.OpPhi {
				f.phiVars[inst] = c.b.AddFunctionVariable(c.cache.Pointer(StorageClassFunction, c.typeOf(inst.Type())))
				for i := range inst.Args {
					c.spillAcross(inst.PhiIncoming(i))
				}
				continue
			}
			for _, a := range inst.Args {
				c.spillAcross(a, blk)
			}
		}
		if blk.Term.Kind == ir.TermCondBranch {
			c.spillAcross(blk.Term.Cond, blk)
		}
	}

	u32 := c.u32()
	f.selector = c.b.AddFunctionVariable(c.cache.Pointer(StorageClassFunction, u32))
	c.name(f.selector, "next_block")
	header, dispatch, cont, exit := c.b.AllocID(), c.b.AllocID(), c.b.AllocID(), c.b.AllocID()
	f.selMerge = c.b.AllocID()

	c.b.AddStore(f.selector, c.constU32(0))
	c.b.AddBranch(header)
	c.startBlock(header, nil)
	c.b.AddLoopMerge(exit, cont)
	c.b.AddBranch(dispatch)
	c.startBlock(dispatch, nil)
	sel := c.b.AddLoad(u32, f.selector)
	c.b.AddSelectionMerge(f.selMerge)
	cases := make([][2]uint32, len(c.prog.Blocks))
	for i := range cases {
		cases[i] = [2]uint32{uint32(i), f.labels[i]}
	}
	c.b.AddSwitch(sel, f.selMerge, cases)

	for _, blk := range c.prog.Blocks {
		c.startBlock(f.labels[blk.Index], blk)
		for _, inst := range blk.Insts {
			if err := c.emitInst(inst); err != nil {
				return err
			}
		}
		if err := c.dispatchTerminator(blk); err != nil {
			return atBlock(err, blk)
		}
	}

	c.startBlock(f.selMerge, nil)
	c.b.AddBranch(cont)
	c.startBlock(cont, nil)
	c.b.AddBranch(header)
	c.startBlock(exit, nil)
	c.b.AddUnreachable()
	return nil
}

// spillAcross spills the instruction behind v when it is read from a block
// other than the one defining it.
func (c *EmitContext) spillAcross(v ir.Value, user *ir.Block) {
	if def := v.Inst(); def != nil && def.Block() != user && def.Type() != ir.Void {
		c.mat.spill(def)
	}
}

func (c *EmitContext) dispatchTerminator(blk *ir.Block) error {
	t := blk.Term
	switch t.Kind {
	case ir.TermReturn:
		c.b.AddReturn()
	case ir.TermUnreachable:
		c.b.AddUnreachable()
	case ir.TermBranch:
		return c.jump(blk, t.True)
	case ir.TermCondBranch:
		if t.True == t.False {
			return c.jump(blk, t.True)
		}
		cond, err := c.value(t.Cond)
		if err != nil {
			return err
		}
		onTrue, onFalse, join := c.b.AllocID(), c.b.AllocID(), c.b.AllocID()
		c.b.AddSelectionMerge(join)
		c.b.AddBranchConditional(cond, onTrue, onFalse)
		c.startBlock(onTrue, blk)
		if err := c.transfer(blk, t.True); err != nil {
			return err
		}
		c.b.AddBranch(join)
		c.startBlock(onFalse, blk)
		if err := c.transfer(blk, t.False); err != nil {
			return err
		}
		c.b.AddBranch(join)
		c.startBlock(join, blk)
		c.b.AddBranch(c.flow.selMerge)
	default:
		return contractf("block has no terminator")
	}
	return nil
}

func (c *EmitContext) jump(from, to *ir.Block) error {
	if err := c.transfer(from, to); err != nil {
		return err
	}
	c.b.AddBranch(c.flow.selMerge)
	return nil
}

// transfer stores the phi operands of the edge from -> to and selects to as
// the next block.
func (c *EmitContext) transfer(from, to *ir.Block) error {
	i := to.PredIndex(from)
	for _, phi := range to.Phis() {
		if i < 0 || i >= len(phi.Args) {
			return contractf("%s is not a predecessor of %s", from.Label(), to.Label())
		}
		v, _ := phi.PhiIncoming(i)
		id, err := c.value(v)
		if err != nil {
			return err
		}
		c.b.AddStore(c.flow.phiVars[phi], id)
	}
	c.b.AddStore(c.flow.selector, c.constU32(uint32(to.Index)))
	return nil
}

// atBlock attributes a terminator error to blk.
func atBlock(err error, blk *ir.Block) error {
	var ee *EmitError
	if errors.As(err, &ee) && ee.Block < 0 {
		ee.Block = blk.Index
		ee.Inst = len(blk.Insts)
	}
	return err
}

// emitPhi emits OpPhi. Operands from predecessors not emitted yet are
// patched when the predecessor is sealed. In dispatch mode the phi reads
// the variable its predecessors stored to.
func emitPhi(c *EmitContext, inst *ir.Inst) (uint32, error) {
	f := c.flow
	if f == nil {
		return 0, contractf("phi outside a function body")
	}
	typ := c.typeOf(inst.Type())
	if f.dispatch {
		return c.b.AddLoad(typ, f.phiVars[inst]), nil
	}
	blk := inst.Block()
	if len(inst.Args) != len(blk.Preds) {
		return 0, contractf("phi has %d operands for %d predecessors", len(inst.Args), len(blk.Preds))
	}
	ops := make([]uint32, 2*len(inst.Args))
	var later []int
	for i := range inst.Args {
		a, p := inst.PhiIncoming(i)
		if !f.sealed[p.Index] {
			later = append(later, i)
			continue
		}
		id, err := c.value(a)
		if err != nil {
			return 0, err
		}
		ops[2*i] = id
		ops[2*i+1] = f.endLabel[p.Index]
	}
	id, patch := c.b.AddOpPatched(OpPhi, typ, 0, ops...)
	for _, i := range later {
		v, p := inst.PhiIncoming(i)
		f.pending[p.Index] = append(f.pending[p.Index], pendingPhi{
			operand: patch.At(2 * i),
			label:   patch.At(2*i + 1),
			value:   v,
		})
	}
	return id, nil
}

func emitVoid(c *EmitContext, inst *ir.Inst) (uint32, error) { return 0, nil }

// emitIdentity aliases its operand.
func emitIdentity(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.value(inst.Arg(0))
}

// emitReference emits nothing; Reference only keeps its operand alive for
// earlier passes.
func emitReference(c *EmitContext, inst *ir.Inst) (uint32, error) { return 0, nil }

func emitConditionRef(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.value(inst.Arg(0))
}

func emitPhiMove(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return 0, contractf("phi move survived to emission")
}

func emitJoin(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return 0, contractf("join survived to emission")
}
