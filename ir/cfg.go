package ir

// DomTree is a dominator (or post-dominator) tree over a program's blocks,
// computed with the Cooper-Harvey-Kennedy iteration over reverse post order.
type DomTree struct {
	blocks []*Block
	idom   []int
	rpo    []int
	root   int
}

// ReversePostOrder returns the blocks reachable from the entry in reverse
// post order.
func ReversePostOrder(p *Program) []*Block {
	succs, _ := edges(p)
	order := rpoFrom(len(p.Blocks), 0, succs)
	out := make([]*Block, len(order))
	for i, n := range order {
		out[i] = p.Blocks[n]
	}
	return out
}

// Dominators computes the dominator tree rooted at the entry block.
func Dominators(p *Program) *DomTree {
	succs, preds := edges(p)
	if len(p.Blocks) == 0 {
		return &DomTree{}
	}
	idom, rpo := computeIdom(len(p.Blocks), 0, succs, preds)
	return &DomTree{blocks: p.Blocks, idom: idom, rpo: rpo, root: 0}
}

// PostDominators computes the post-dominator tree. A virtual exit node joins
// all returning and unreachable-terminated blocks; IDom reports nil for
// blocks whose immediate post-dominator is that exit.
func PostDominators(p *Program) *DomTree {
	succs, preds := edges(p)
	n := len(p.Blocks)
	rs := make([][]int, n+1)
	rp := make([][]int, n+1)
	for b := 0; b < n; b++ {
		rs[b] = append(rs[b], preds[b]...)
		rp[b] = append(rp[b], succs[b]...)
		switch p.Blocks[b].Term.Kind {
		case TermReturn, TermUnreachable:
			rs[n] = append(rs[n], b)
			rp[b] = append(rp[b], n)
		}
	}
	idom, rpo := computeIdom(n+1, n, rs, rp)
	return &DomTree{blocks: p.Blocks, idom: idom, rpo: rpo, root: n}
}

// IDom returns the immediate dominator, or nil for the root, unreachable
// blocks and the virtual exit.
func (d *DomTree) IDom(b *Block) *Block {
	i := d.idom[b.Index]
	if i < 0 || i == b.Index || i >= len(d.blocks) {
		return nil
	}
	return d.blocks[i]
}

// Reachable reports whether b is reachable from the tree's root.
func (d *DomTree) Reachable(b *Block) bool { return d.rpo[b.Index] >= 0 }

// Dominates reports whether a dominates b. Every block dominates itself.
func (d *DomTree) Dominates(a, b *Block) bool {
	if !d.Reachable(a) || !d.Reachable(b) {
		return false
	}
	x := b.Index
	for {
		if x == a.Index {
			return true
		}
		if x == d.root {
			return false
		}
		x = d.idom[x]
	}
}

// edges returns successor and predecessor lists derived from terminators.
func edges(p *Program) (succs, preds [][]int) {
	n := len(p.Blocks)
	succs = make([][]int, n)
	preds = make([][]int, n)
	for _, b := range p.Blocks {
		for _, s := range b.Succs() {
			if s == nil {
				continue
			}
			succs[b.Index] = append(succs[b.Index], s.Index)
			preds[s.Index] = append(preds[s.Index], b.Index)
		}
	}
	return succs, preds
}

func rpoFrom(n, root int, succs [][]int) []int {
	seen := make([]bool, n)
	post := make([]int, 0, n)
	type frame struct{ node, next int }
	stack := []frame{{root, 0}}
	seen[root] = true
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(succs[top.node]) {
			s := succs[top.node][top.next]
			top.next++
			if !seen[s] {
				seen[s] = true
				stack = append(stack, frame{s, 0})
			}
			continue
		}
		post = append(post, top.node)
		stack = stack[:len(stack)-1]
	}
	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post
}

func computeIdom(n, root int, succs, preds [][]int) (idom, rpoNum []int) {
	order := rpoFrom(n, root, succs)
	rpoNum = make([]int, n)
	idom = make([]int, n)
	for i := range rpoNum {
		rpoNum[i] = -1
		idom[i] = -1
	}
	for i, b := range order {
		rpoNum[b] = i
	}
	idom[root] = root

	intersect := func(a, b int) int {
		for a != b {
			for rpoNum[a] > rpoNum[b] {
				a = idom[a]
			}
			for rpoNum[b] > rpoNum[a] {
				b = idom[b]
			}
		}
		return a
	}

	for changed := true; changed; {
		changed = false
		for _, b := range order[1:] {
			next := -1
			for _, p := range preds[b] {
				if idom[p] < 0 {
					continue
				}
				if next < 0 {
					next = p
				} else {
					next = intersect(p, next)
				}
			}
			if next != idom[b] {
				idom[b] = next
				changed = true
			}
		}
	}
	return idom, rpoNum
}
