package ir

import "testing"

// loopProgram: entry -> header <-> body, header -> exit.
func loopProgram() *Program {
	b := NewBuilder(StageCompute)
	entry := b.NewBlock("entry")
	header := b.NewBlock("header")
	body := b.NewBlock("body")
	exit := b.NewBlock("exit")

	b.SetInsertPoint(entry)
	b.Branch(header)
	b.SetInsertPoint(header)
	c := b.Emit(OpGetScc)
	b.CondBranch(c.Value(), body, exit)
	b.SetInsertPoint(body)
	b.Branch(header)
	b.SetInsertPoint(exit)
	b.Return()
	return b.Program()
}

func TestDominators(t *testing.T) {
	p := loopProgram()
	dom := Dominators(p)
	entry, header, body, exit := p.Blocks[0], p.Blocks[1], p.Blocks[2], p.Blocks[3]

	if dom.IDom(entry) != nil {
		t.Errorf("entry has idom %v", dom.IDom(entry).Label())
	}
	for _, b := range []*Block{body, exit} {
		if got := dom.IDom(b); got != header {
			t.Errorf("idom(%s) = %v, want header", b.Label(), got)
		}
	}
	if !dom.Dominates(header, body) || dom.Dominates(body, header) {
		t.Error("header must dominate body and not the other way round")
	}
	if !dom.Dominates(exit, exit) {
		t.Error("a block dominates itself")
	}
}

func TestPostDominators(t *testing.T) {
	p := loopProgram()
	pdom := PostDominators(p)
	entry, header, body, exit := p.Blocks[0], p.Blocks[1], p.Blocks[2], p.Blocks[3]

	if got := pdom.IDom(entry); got != header {
		t.Errorf("ipdom(entry) = %v, want header", got)
	}
	if got := pdom.IDom(header); got != exit {
		t.Errorf("ipdom(header) = %v, want exit", got)
	}
	if got := pdom.IDom(body); got != header {
		t.Errorf("ipdom(body) = %v, want header", got)
	}
	if got := pdom.IDom(exit); got != nil {
		t.Errorf("ipdom(exit) = %v, want virtual exit", got.Label())
	}
}

func TestReversePostOrder(t *testing.T) {
	p := loopProgram()
	order := ReversePostOrder(p)
	if len(order) != 4 || order[0] != p.Blocks[0] || order[1] != p.Blocks[1] {
		t.Fatalf("unexpected order")
	}
	pos := map[*Block]int{}
	for i, b := range order {
		pos[b] = i
	}
	if pos[p.Blocks[2]] < pos[p.Blocks[1]] || pos[p.Blocks[3]] < pos[p.Blocks[1]] {
		t.Error("successors of header must follow it")
	}
}

func TestUnreachableBlock(t *testing.T) {
	b := NewBuilder(StageCompute)
	entry := b.NewBlock("entry")
	dead := b.NewBlock("dead")
	b.SetInsertPoint(entry)
	b.Return()
	b.SetInsertPoint(dead)
	b.Return()

	dom := Dominators(b.Program())
	if dom.Reachable(dead) {
		t.Fatal("dead block reported reachable")
	}
	if dom.Dominates(entry, dead) {
		t.Fatal("unreachable blocks are not dominated")
	}
}
