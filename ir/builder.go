package ir

// Builder constructs a Program block by block. Predecessor lists are
// recorded in the order terminators are set.
type Builder struct {
	prog   *Program
	cur    *Block
	nextID int
}

// NewBuilder creates a builder for a program of the given stage.
func NewBuilder(stage Stage) *Builder {
	return &Builder{prog: &Program{Stage: stage, WorkgroupSize: [3]uint32{1, 1, 1}}}
}

// Info returns the resource table of the program under construction.
func (b *Builder) Info() *Info { return &b.prog.Info }

// SetWorkgroupSize sets the compute workgroup size.
func (b *Builder) SetWorkgroupSize(x, y, z uint32) { b.prog.WorkgroupSize = [3]uint32{x, y, z} }

// NewBlock appends an empty block. The first block is the entry.
func (b *Builder) NewBlock(name string) *Block {
	blk := &Block{Index: len(b.prog.Blocks), Name: name}
	b.prog.Blocks = append(b.prog.Blocks, blk)
	return blk
}

// SetInsertPoint selects the block new instructions go to.
func (b *Builder) SetInsertPoint(blk *Block) { b.cur = blk }

// Current returns the insertion block.
func (b *Builder) Current() *Block { return b.cur }

// Emit appends an instruction.
func (b *Builder) Emit(op Opcode, args ...Value) *Inst {
	return b.EmitFlags(op, 0, args...)
}

// EmitFlags appends an instruction with a Flags word.
func (b *Builder) EmitFlags(op Opcode, flags uint32, args ...Value) *Inst {
	inst := &Inst{Op: op, Args: args, Flags: flags, id: b.nextID, block: b.cur}
	b.nextID++
	b.cur.Insts = append(b.cur.Insts, inst)
	return inst
}

// Phi appends a phi of type t. Operands follow the block's predecessor order
// and may be completed later with AddPhiArg.
func (b *Builder) Phi(t Type, args ...Value) *Inst {
	inst := b.Emit(OpPhi, args...)
	inst.typ = t
	return inst
}

// AddPhiArg appends an operand to a phi.
func (b *Builder) AddPhiArg(phi *Inst, v Value) { phi.Args = append(phi.Args, v) }

// Branch ends the current block with an unconditional branch.
func (b *Builder) Branch(to *Block) {
	b.cur.Term = Terminator{Kind: TermBranch, True: to}
	to.Preds = append(to.Preds, b.cur)
}

// CondBranch ends the current block with a two way branch.
func (b *Builder) CondBranch(cond Value, t, f *Block) {
	b.cur.Term = Terminator{Kind: TermCondBranch, Cond: cond, True: t, False: f}
	t.Preds = append(t.Preds, b.cur)
	if f != t {
		f.Preds = append(f.Preds, b.cur)
	}
}

// Return ends the current block.
func (b *Builder) Return() { b.cur.Term = Terminator{Kind: TermReturn} }

// Unreachable ends the current block with an unreachable marker.
func (b *Builder) Unreachable() { b.cur.Term = Terminator{Kind: TermUnreachable} }

// Program returns the constructed program.
func (b *Builder) Program() *Program { return b.prog }
