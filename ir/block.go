package ir

import "strconv"

// TermKind is the kind of a block terminator.
type TermKind uint8

const (
	TermNone TermKind = iota
	TermBranch
	TermCondBranch
	TermReturn
	TermUnreachable
)

func (k TermKind) String() string {
	switch k {
	case TermBranch:
		return "branch"
	case TermCondBranch:
		return "cond_branch"
	case TermReturn:
		return "return"
	case TermUnreachable:
		return "unreachable"
	}
	return "none"
}

// Terminator ends a block.
type Terminator struct {
	Kind TermKind
	Cond Value
	// True is the branch target of TermBranch.
	True  *Block
	False *Block
}

// Block is a basic block.
type Block struct {
	Index int
	Name  string
	Insts []*Inst
	// Preds is the declared predecessor order. Phi operands follow it.
	Preds []*Block
	Term  Terminator
}

// Label names the block in the text format.
func (b *Block) Label() string {
	if b.Name != "" {
		return b.Name
	}
	return "b" + strconv.Itoa(b.Index)
}

// Succs returns the successor blocks. A conditional branch with equal targets
// reports the target twice.
func (b *Block) Succs() []*Block {
	switch b.Term.Kind {
	case TermBranch:
		return []*Block{b.Term.True}
	case TermCondBranch:
		return []*Block{b.Term.True, b.Term.False}
	}
	return nil
}

// Phis returns the leading phi instructions.
func (b *Block) Phis() []*Inst {
	n := 0
	for n < len(b.Insts) && b.Insts[n].Op == OpPhi {
		n++
	}
	return b.Insts[:n]
}

// PredIndex returns the position of p in the declared predecessor list.
func (b *Block) PredIndex(p *Block) int {
	for i, q := range b.Preds {
		if q == p {
			return i
		}
	}
	return -1
}
