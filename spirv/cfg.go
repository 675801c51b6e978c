package spirv

import (
	"fmt"

	"github.com/jurealeksic/shadPS4/ir"
)

// noMerge marks a construct whose merge block is a synthetic unreachable
// block, for loops that never exit and selections whose arms all leave the
// function.
const noMerge = -1

type loopInfo struct {
	header, latch, merge int
	body                 []bool
}

// structure is the structured rendering of a program's control flow.
type structure struct {
	loops    map[int]*loopInfo // by header
	selMerge map[int]int       // selection header to merge block
	inner    []*loopInfo       // innermost loop of each block
}

// analyzeStructure decides whether the block graph can be emitted with
// structured merges as is. Graphs shaped like the output of a structurizer
// qualify: reducible, loops with a single latch and a single exit, and
// selections that either leave through a break or continue edge or
// reconverge at a merge block no other construct uses. The returned string
// says why a graph does not qualify.
func analyzeStructure(p *ir.Program) (*structure, string) {
	n := len(p.Blocks)
	dom := ir.Dominators(p)
	pdom := ir.PostDominators(p)
	pos := make([]int, n)
	for i, b := range ir.ReversePostOrder(p) {
		pos[b.Index] = i
	}

	latches := make(map[int][]int)
	for _, b := range p.Blocks {
		for _, s := range succs(b) {
			if pos[s.Index] > pos[b.Index] {
				continue
			}
			if !dom.Dominates(s, b) {
				return nil, fmt.Sprintf("irreducible edge %s -> %s", b.Label(), s.Label())
			}
			latches[s.Index] = append(latches[s.Index], b.Index)
		}
	}

	st := &structure{
		loops:    make(map[int]*loopInfo),
		selMerge: make(map[int]int),
		inner:    make([]*loopInfo, n),
	}
	claimed := make(map[int]bool)
	for _, h := range p.Blocks {
		ls, ok := latches[h.Index]
		if !ok {
			continue
		}
		if len(ls) != 1 {
			return nil, fmt.Sprintf("loop %s has %d latches", h.Label(), len(ls))
		}
		lp := &loopInfo{header: h.Index, latch: ls[0], merge: noMerge, body: loopBody(p, h.Index, ls[0])}
		exits := make(map[int]bool)
		for i, in := range lp.body {
			if !in {
				continue
			}
			for _, s := range succs(p.Blocks[i]) {
				if !lp.body[s.Index] {
					exits[s.Index] = true
				}
			}
		}
		if len(exits) > 1 {
			return nil, fmt.Sprintf("loop %s has %d exits", h.Label(), len(exits))
		}
		for m := range exits {
			lp.merge = m
		}
		if lp.merge != noMerge && !dom.Dominates(h, p.Blocks[lp.merge]) {
			return nil, fmt.Sprintf("exit of loop %s is not dominated by its header", h.Label())
		}
		if reason := checkLoopEdges(p, lp); reason != "" {
			return nil, reason
		}
		if lp.merge != noMerge {
			if claimed[lp.merge] {
				return nil, fmt.Sprintf("block %s merges several constructs", p.Blocks[lp.merge].Label())
			}
			claimed[lp.merge] = true
		}
		if claimed[lp.latch] {
			return nil, fmt.Sprintf("block %s merges several constructs", p.Blocks[lp.latch].Label())
		}
		claimed[lp.latch] = true
		st.loops[h.Index] = lp
	}
	for i := range p.Blocks {
		for _, lp := range st.loops {
			if lp.body[i] && (st.inner[i] == nil || count(lp.body) < count(st.inner[i].body)) {
				st.inner[i] = lp
			}
		}
	}
	for _, lp := range st.loops {
		if reason := checkConstruct(p, dom, st, lp.header, lp.merge, nil); reason != "" {
			return nil, reason
		}
	}

	for _, b := range p.Blocks {
		t := b.Term
		if t.Kind != ir.TermCondBranch || t.True == t.False {
			continue
		}
		if _, ok := st.loops[b.Index]; ok {
			continue
		}
		lp := st.inner[b.Index]
		if lp != nil && lp.latch == b.Index {
			continue
		}
		if lp != nil && (lp.escapes(t.True.Index) || lp.escapes(t.False.Index)) {
			continue
		}
		m := noMerge
		if ipd := pdom.IDom(b); ipd != nil {
			m = ipd.Index
			switch {
			case claimed[m]:
				return nil, fmt.Sprintf("block %s merges several constructs", ipd.Label())
			case !dom.Dominates(b, ipd):
				return nil, fmt.Sprintf("merge %s of %s is not dominated by it", ipd.Label(), b.Label())
			case st.inner[m] != lp:
				return nil, fmt.Sprintf("merge %s of %s is in another loop", ipd.Label(), b.Label())
			case st.loops[m] != nil:
				return nil, fmt.Sprintf("merge %s of %s is a loop header", ipd.Label(), b.Label())
			}
			claimed[m] = true
		}
		if reason := checkConstruct(p, dom, st, b.Index, m, lp); reason != "" {
			return nil, reason
		}
		st.selMerge[b.Index] = m
	}
	return st, ""
}

// escapes reports whether an edge to block s is a break or a continue.
func (lp *loopInfo) escapes(s int) bool {
	return s == lp.merge || s == lp.latch
}

// loopBody collects the blocks that reach the latch without passing the
// header.
func loopBody(p *ir.Program, header, latch int) []bool {
	body := make([]bool, len(p.Blocks))
	body[header] = true
	work := []int{latch}
	for len(work) > 0 {
		b := work[len(work)-1]
		work = work[:len(work)-1]
		if body[b] {
			continue
		}
		body[b] = true
		for _, pred := range p.Blocks[b].Preds {
			work = append(work, pred.Index)
		}
	}
	return body
}

// checkLoopEdges checks the header and latch terminators: the header may
// branch once into the body or exit, the latch may only return to the
// header or exit.
func checkLoopEdges(p *ir.Program, lp *loopInfo) string {
	h := p.Blocks[lp.header]
	if t := h.Term; t.Kind == ir.TermCondBranch && t.True != t.False && lp.header != lp.latch {
		if t.True.Index != lp.merge && t.False.Index != lp.merge {
			return fmt.Sprintf("loop header %s branches twice into its body", h.Label())
		}
	}
	l := p.Blocks[lp.latch]
	for _, s := range succs(l) {
		if s.Index != lp.header && s.Index != lp.merge {
			return fmt.Sprintf("latch %s of loop %s branches to %s", l.Label(), h.Label(), s.Label())
		}
	}
	return ""
}

// checkConstruct verifies that the blocks dominated by header and not by
// merge only leave through the merge, or through a break or continue of the
// enclosing loop lp.
func checkConstruct(p *ir.Program, dom *ir.DomTree, st *structure, header, merge int, lp *loopInfo) string {
	hb := p.Blocks[header]
	in := func(b *ir.Block) bool {
		return dom.Dominates(hb, b) && (merge == noMerge || !dom.Dominates(p.Blocks[merge], b))
	}
	own := st.loops[header]
	for _, b := range p.Blocks {
		if !in(b) {
			continue
		}
		if lp != nil && b.Index == lp.latch {
			return fmt.Sprintf("construct %s contains the continue target %s", hb.Label(), b.Label())
		}
		for _, s := range succs(b) {
			switch {
			case s.Index == merge:
			case own != nil && s.Index == header && b.Index == own.latch:
			case s.Index != header && in(s):
			case lp != nil && lp.escapes(s.Index):
			default:
				return fmt.Sprintf("edge %s -> %s leaves construct %s", b.Label(), s.Label(), hb.Label())
			}
		}
	}
	return ""
}

// succs returns distinct successors.
func succs(b *ir.Block) []*ir.Block {
	s := b.Succs()
	if len(s) == 2 && s[0] == s[1] {
		return s[:1]
	}
	return s
}

func count(set []bool) int {
	n := 0
	for _, v := range set {
		if v {
			n++
		}
	}
	return n
}
