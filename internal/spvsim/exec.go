package spvsim

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// Run executes the entry point once.
func (m *Machine) Run() error {
	if m.ran {
		return errors.New("spvsim: machine already ran")
	}
	m.ran = true
	body := m.funcs[m.entry]
	labels := make(map[uint32]int)
	for i, in := range body {
		if in.op == opLabel {
			labels[in.w[0]] = i
		}
	}
	jump := func(label uint32) (int, error) {
		at, ok := labels[label]
		if !ok {
			return 0, fmt.Errorf("spvsim: branch to unknown label %%%d", label)
		}
		return at, nil
	}

	var cur, prev uint32
	pc := 0
	for steps := 0; ; steps++ {
		if steps > maxSteps {
			return fmt.Errorf("spvsim: no return after %d instructions", maxSteps)
		}
		if pc >= len(body) {
			return errors.New("spvsim: execution ran past the end of the function")
		}
		in := body[pc]
		pc++
		var err error
		switch in.op {
		case opLabel:
			prev, cur = cur, in.w[0]
			pc, err = m.phis(body, pc, prev)
		case opBranch:
			pc, err = jump(in.w[0])
		case opBranchConditional:
			target := in.w[1]
			if m.ids[in.w[0]].bits == 0 {
				target = in.w[2]
			}
			pc, err = jump(target)
		case opSwitch:
			pc, err = jump(m.switchTarget(in.w))
		case opReturn:
			return nil
		case opKill:
			m.demoted = true
			return nil
		case opUnreachable:
			return fmt.Errorf("spvsim: reached OpUnreachable in block %%%d", cur)
		default:
			err = m.exec(in)
		}
		if err != nil {
			return err
		}
	}
}

// phis evaluates the phis opening a block together, picking the operands of
// the edge from prev.
func (m *Machine) phis(body []inst, pc int, prev uint32) (int, error) {
	type def struct {
		id uint32
		t  *typ
		v  value
	}
	var defs []def
	for ; pc < len(body) && body[pc].op == opPhi; pc++ {
		w := body[pc].w
		found := false
		for i := 2; i+1 < len(w); i += 2 {
			if w[i+1] == prev {
				defs = append(defs, def{w[1], m.types[w[0]], m.ids[w[i]].clone()})
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("spvsim: phi %%%d has no operand for predecessor %%%d", w[1], prev)
		}
	}
	for _, d := range defs {
		m.define(d.id, d.t, d.v)
	}
	return pc, nil
}

func (m *Machine) switchTarget(w []uint32) uint32 {
	sel := m.ids[w[0]].bits
	step := 2
	if t := m.typeOf[w[0]]; t != nil && t.width == 64 {
		step = 3
	}
	for i := 2; i+step-1 < len(w); i += step {
		lit := uint64(w[i])
		if step == 3 {
			lit |= uint64(w[i+1]) << 32
		}
		if lit == sel {
			return w[i+step-1]
		}
	}
	return w[1]
}

// exec runs an instruction that does not transfer control.
func (m *Machine) exec(in inst) error {
	w := in.w
	switch in.op {
	case opNop, opName, opLoopMerge, opSelectionMerge, opControlBarrier, opMemoryBarrier:
		return nil
	case opDemoteToHelperInvocation:
		m.demoted = true
		return nil
	case opUndef, opConstantNull:
		t := m.types[w[0]]
		m.define(w[1], t, m.zero(t))
		return nil
	case opVariable:
		pt := m.types[w[0]]
		root := m.zero(pt.elem)
		if len(w) > 3 {
			root = m.ids[w[3]].clone()
		}
		m.define(w[1], pt, value{ptr: &pointer{root: &root}})
		return nil
	case opLoad:
		v, err := m.load(m.ids[w[2]].ptr)
		if err != nil {
			return err
		}
		m.define(w[1], m.types[w[0]], v)
		return nil
	case opStore:
		return m.store(m.ids[w[0]].ptr, m.ids[w[1]])
	case opAccessChain:
		return m.accessChain(w)
	case opAtomicLoad:
		v, err := m.load(m.ids[w[2]].ptr)
		if err != nil {
			return err
		}
		m.define(w[1], m.types[w[0]], v)
		return nil
	case opAtomicStore:
		return m.store(m.ids[w[0]].ptr, m.ids[w[3]])
	case opAtomicExchange, opAtomicCompareExchange, opAtomicIIncrement, opAtomicIDecrement,
		opAtomicIAdd, opAtomicISub, opAtomicSMin, opAtomicUMin, opAtomicSMax, opAtomicUMax,
		opAtomicAnd, opAtomicOr, opAtomicXor:
		return m.atomic(in)
	case opCopyObject:
		m.define(w[1], m.types[w[0]], m.ids[w[2]].clone())
		return nil
	case opCompositeConstruct:
		return m.construct(w)
	case opCompositeExtract:
		v := m.ids[w[2]]
		for _, i := range w[3:] {
			if int(i) >= len(v.elems) {
				return fmt.Errorf("spvsim: extract index %d out of range", i)
			}
			v = v.elems[i]
		}
		m.define(w[1], m.types[w[0]], v.clone())
		return nil
	case opCompositeInsert:
		v := m.ids[w[3]].clone()
		at := &v
		for _, i := range w[4:] {
			if int(i) >= len(at.elems) {
				return fmt.Errorf("spvsim: insert index %d out of range", i)
			}
			at = &at.elems[i]
		}
		*at = m.ids[w[2]].clone()
		m.define(w[1], m.types[w[0]], v)
		return nil
	case opVectorExtractDynamic:
		v := m.ids[w[2]]
		i := int(m.ids[w[3]].bits)
		if i >= len(v.elems) {
			return fmt.Errorf("spvsim: vector index %d out of range", i)
		}
		m.define(w[1], m.types[w[0]], v.elems[i])
		return nil
	case opVectorInsertDynamic:
		v := m.ids[w[2]].clone()
		i := int(m.ids[w[4]].bits)
		if i >= len(v.elems) {
			return fmt.Errorf("spvsim: vector index %d out of range", i)
		}
		v.elems[i] = m.ids[w[3]]
		m.define(w[1], m.types[w[0]], v)
		return nil
	case opVectorShuffle:
		a, b := m.ids[w[2]], m.ids[w[3]]
		out := value{elems: make([]value, len(w)-4)}
		for k, sel := range w[4:] {
			switch {
			case sel == 0xFFFFFFFF:
			case int(sel) < len(a.elems):
				out.elems[k] = a.elems[sel]
			case int(sel)-len(a.elems) < len(b.elems):
				out.elems[k] = b.elems[int(sel)-len(a.elems)]
			default:
				return fmt.Errorf("spvsim: shuffle component %d out of range", sel)
			}
		}
		m.define(w[1], m.types[w[0]], out)
		return nil
	case opBitcast:
		return m.bitcast(w)
	case opConvertUToPtr:
		m.define(w[1], m.types[w[0]], value{ptr: &pointer{phys: true, addr: m.ids[w[2]].bits}})
		return nil
	case opExtInst:
		if w[2] != m.glsl {
			return fmt.Errorf("spvsim: unknown extended instruction set %%%d", w[2])
		}
		return m.extInst(w)
	case opSelect:
		return m.selectOp(w)
	}
	if in.op >= opSampledImage && in.op <= opImageQuerySamples {
		return ErrImage
	}
	if fn, ok := unaryOps[in.op]; ok {
		return m.lanewise(w, fn)
	}
	if fn, ok := binaryOps[in.op]; ok {
		return m.lanewise(w, fn)
	}
	if fn, ok := ternaryOps[in.op]; ok {
		return m.lanewise(w, fn)
	}
	return fmt.Errorf("spvsim: unsupported instruction %d", in.op)
}

// laneFunc computes one component. rt is the scalar result type and ot the
// scalar type of the first operand.
type laneFunc func(rt, ot *typ, x []uint64) uint64

// lanewise applies fn to each component of the operands w[2:].
func (m *Machine) lanewise(w []uint32, fn laneFunc) error {
	rt := m.types[w[0]]
	ot := m.typeOf[w[2]].scalar()
	args := make([]value, len(w)-2)
	for i, id := range w[2:] {
		args[i] = m.ids[id]
	}
	x := make([]uint64, len(args))
	if rt.kind != kindVector {
		for i, a := range args {
			x[i] = a.bits
		}
		m.define(w[1], rt, value{bits: fn(rt, ot, x) & rt.mask()})
		return nil
	}
	out := value{elems: make([]value, rt.length)}
	for c := range out.elems {
		for i, a := range args {
			if a.elems != nil {
				x[i] = a.elems[c].bits
			} else {
				x[i] = a.bits
			}
		}
		out.elems[c] = value{bits: fn(rt.elem, ot, x) & rt.elem.mask()}
	}
	m.define(w[1], rt, out)
	return nil
}

func (m *Machine) selectOp(w []uint32) error {
	rt := m.types[w[0]]
	cond, a, b := m.ids[w[2]], m.ids[w[3]], m.ids[w[4]]
	if cond.elems == nil {
		if cond.bits != 0 {
			m.define(w[1], rt, a.clone())
		} else {
			m.define(w[1], rt, b.clone())
		}
		return nil
	}
	out := value{elems: make([]value, len(cond.elems))}
	for i, c := range cond.elems {
		if c.bits != 0 {
			out.elems[i] = a.elems[i]
		} else {
			out.elems[i] = b.elems[i]
		}
	}
	m.define(w[1], rt, out)
	return nil
}

func (m *Machine) construct(w []uint32) error {
	rt := m.types[w[0]]
	out := value{}
	for _, id := range w[2:] {
		v := m.ids[id]
		if rt.kind == kindVector && v.elems != nil {
			out.elems = append(out.elems, v.elems...)
			continue
		}
		out.elems = append(out.elems, v.clone())
	}
	m.define(w[1], rt, out)
	return nil
}

// bitcast reinterprets the bits of the operand, splitting or joining
// vector components as the widths require.
func (m *Machine) bitcast(w []uint32) error {
	rt := m.types[w[0]]
	ot := m.typeOf[w[2]]
	src := m.ids[w[2]]
	if rt.kind == kindPointer || ot.kind == kindPointer {
		m.define(w[1], rt, src)
		return nil
	}
	var raw uint64
	shift := 0
	if ot.kind == kindVector {
		for _, e := range src.elems {
			raw |= (e.bits & ot.elem.mask()) << uint(shift)
			shift += ot.elem.width
		}
	} else {
		raw = src.bits & ot.mask()
	}
	if rt.kind != kindVector {
		m.define(w[1], rt, value{bits: raw & rt.mask()})
		return nil
	}
	out := value{elems: make([]value, rt.length)}
	for i := range out.elems {
		out.elems[i] = value{bits: (raw >> uint(i*rt.elem.width)) & rt.elem.mask()}
	}
	m.define(w[1], rt, out)
	return nil
}

func (m *Machine) deref(p *pointer) (*value, error) {
	if p == nil {
		return nil, errors.New("spvsim: access through a non-pointer")
	}
	v := p.root
	for _, i := range p.path {
		if i < 0 || i >= len(v.elems) {
			return nil, fmt.Errorf("spvsim: index %d out of bounds (%d elements)", i, len(v.elems))
		}
		v = &v.elems[i]
	}
	return v, nil
}

func (m *Machine) load(p *pointer) (value, error) {
	if p != nil && p.phys {
		if p.addr%4 != 0 {
			return value{}, fmt.Errorf("spvsim: unaligned physical load at 0x%x", p.addr)
		}
		w, ok := m.memory[p.addr]
		if !ok {
			return value{}, fmt.Errorf("spvsim: load from unbound address 0x%x", p.addr)
		}
		return value{bits: uint64(w)}, nil
	}
	v, err := m.deref(p)
	if err != nil {
		return value{}, err
	}
	return v.clone(), nil
}

func (m *Machine) store(p *pointer, v value) error {
	if p != nil && p.phys {
		m.memory[p.addr] = uint32(v.bits)
		return nil
	}
	at, err := m.deref(p)
	if err != nil {
		return err
	}
	*at = v.clone()
	return nil
}

func (m *Machine) accessChain(w []uint32) error {
	base := m.ids[w[2]].ptr
	if base == nil || base.phys {
		return errors.New("spvsim: access chain on a non-variable pointer")
	}
	p := &pointer{root: base.root, path: append([]int(nil), base.path...)}
	for _, id := range w[3:] {
		idx := m.ids[id].bits
		t := m.typeOf[id]
		i := int(idx)
		if t != nil && t.signed {
			i = int(sext(idx, t.width))
		}
		p.path = append(p.path, i)
	}
	m.define(w[1], m.types[w[0]], value{ptr: p})
	return nil
}

func (m *Machine) atomic(in inst) error {
	w := in.w
	rt := m.types[w[0]]
	p := m.ids[w[2]].ptr
	old, err := m.load(p)
	if err != nil {
		return err
	}
	x, y := old.bits, uint64(0)
	switch in.op {
	case opAtomicIIncrement, opAtomicIDecrement:
	case opAtomicCompareExchange:
		y = m.ids[w[6]].bits
	default:
		y = m.ids[w[5]].bits
	}
	var r uint64
	switch in.op {
	case opAtomicExchange:
		r = y
	case opAtomicCompareExchange:
		r = x
		if x == m.ids[w[7]].bits {
			r = y
		}
	case opAtomicIIncrement:
		r = x + 1
	case opAtomicIDecrement:
		r = x - 1
	case opAtomicIAdd:
		r = x + y
	case opAtomicISub:
		r = x - y
	case opAtomicSMin:
		r = pick(sext(x, rt.width) < sext(y, rt.width), x, y)
	case opAtomicUMin:
		r = pick(x&rt.mask() < y&rt.mask(), x, y)
	case opAtomicSMax:
		r = pick(sext(x, rt.width) > sext(y, rt.width), x, y)
	case opAtomicUMax:
		r = pick(x&rt.mask() > y&rt.mask(), x, y)
	case opAtomicAnd:
		r = x & y
	case opAtomicOr:
		r = x | y
	case opAtomicXor:
		r = x ^ y
	}
	if err := m.store(p, value{bits: r & rt.mask()}); err != nil {
		return err
	}
	m.define(w[1], rt, old)
	return nil
}

func pick(c bool, a, b uint64) uint64 {
	if c {
		return a
	}
	return b
}

func sext(x uint64, width int) int64 {
	s := uint(64 - width)
	return int64(x<<s) >> s
}

func toFloat(t *typ, b uint64) float64 {
	switch t.width {
	case 16:
		return float64(halfToFloat(uint16(b)))
	case 32:
		return float64(math.Float32frombits(uint32(b)))
	}
	return math.Float64frombits(b)
}

func fromFloat(t *typ, f float64) uint64 {
	switch t.width {
	case 16:
		return uint64(floatToHalf(float32(f)))
	case 32:
		return uint64(math.Float32bits(float32(f)))
	}
	return math.Float64bits(f)
}

func floatOp(fn func(a, b float64) float64) laneFunc {
	return func(rt, ot *typ, x []uint64) uint64 {
		return fromFloat(rt, fn(toFloat(ot, x[0]), toFloat(ot, x[1])))
	}
}

func floatUnary(fn func(a float64) float64) laneFunc {
	return func(rt, ot *typ, x []uint64) uint64 {
		return fromFloat(rt, fn(toFloat(ot, x[0])))
	}
}

func intOp(fn func(a, b uint64, w int) uint64) laneFunc {
	return func(rt, ot *typ, x []uint64) uint64 {
		return fn(x[0]&ot.mask(), x[1], ot.width)
	}
}

func signedOp(fn func(a, b int64) int64) laneFunc {
	return func(rt, ot *typ, x []uint64) uint64 {
		return uint64(fn(sext(x[0], ot.width), sext(x[1], ot.width)))
	}
}

func compare(fn func(a, b uint64, w int) bool) laneFunc {
	return func(rt, ot *typ, x []uint64) uint64 {
		return boolBits(fn(x[0]&ot.mask(), x[1]&ot.mask(), ot.width))
	}
}

// floatCompare builds an ordered or unordered comparison. Ordered
// comparisons are false and unordered ones true when either side is NaN.
func floatCompare(ordered bool, fn func(a, b float64) bool) laneFunc {
	return func(rt, ot *typ, x []uint64) uint64 {
		a, b := toFloat(ot, x[0]), toFloat(ot, x[1])
		if math.IsNaN(a) || math.IsNaN(b) {
			return boolBits(!ordered)
		}
		return boolBits(fn(a, b))
	}
}

var unaryOps = map[uint32]laneFunc{
	opSNegate: func(rt, ot *typ, x []uint64) uint64 { return -x[0] },
	opNot:     func(rt, ot *typ, x []uint64) uint64 { return ^x[0] },
	opFNegate: floatUnary(func(a float64) float64 { return -a }),
	opIsNan: func(rt, ot *typ, x []uint64) uint64 {
		return boolBits(math.IsNaN(toFloat(ot, x[0])))
	},
	opIsInf: func(rt, ot *typ, x []uint64) uint64 {
		return boolBits(math.IsInf(toFloat(ot, x[0]), 0))
	},
	opLogicalNot: func(rt, ot *typ, x []uint64) uint64 { return x[0] ^ 1 },
	opBitReverse: func(rt, ot *typ, x []uint64) uint64 {
		return bits.Reverse64(x[0]) >> uint(64-ot.width)
	},
	opBitCount: func(rt, ot *typ, x []uint64) uint64 {
		return uint64(bits.OnesCount64(x[0] & ot.mask()))
	},
	opConvertFToU: func(rt, ot *typ, x []uint64) uint64 {
		f := toFloat(ot, x[0])
		if math.IsNaN(f) || f <= 0 {
			return 0
		}
		if f >= math.Ldexp(1, rt.width) {
			return rt.mask()
		}
		return uint64(f)
	},
	opConvertFToS: func(rt, ot *typ, x []uint64) uint64 {
		f := toFloat(ot, x[0])
		if math.IsNaN(f) {
			return 0
		}
		return uint64(int64(f))
	},
	opConvertSToF: func(rt, ot *typ, x []uint64) uint64 {
		return fromFloat(rt, float64(sext(x[0], ot.width)))
	},
	opConvertUToF: func(rt, ot *typ, x []uint64) uint64 {
		return fromFloat(rt, float64(x[0]&ot.mask()))
	},
	opUConvert: func(rt, ot *typ, x []uint64) uint64 { return x[0] & ot.mask() },
	opSConvert: func(rt, ot *typ, x []uint64) uint64 { return uint64(sext(x[0], ot.width)) },
	opFConvert: func(rt, ot *typ, x []uint64) uint64 { return fromFloat(rt, toFloat(ot, x[0])) },
}

var binaryOps = map[uint32]laneFunc{
	opIAdd: intOp(func(a, b uint64, w int) uint64 { return a + b }),
	opISub: intOp(func(a, b uint64, w int) uint64 { return a - b }),
	opIMul: intOp(func(a, b uint64, w int) uint64 { return a * b }),
	opUDiv: func(rt, ot *typ, x []uint64) uint64 {
		a, b := x[0]&ot.mask(), x[1]&ot.mask()
		if b == 0 {
			return 0
		}
		return a / b
	},
	opUMod: func(rt, ot *typ, x []uint64) uint64 {
		a, b := x[0]&ot.mask(), x[1]&ot.mask()
		if b == 0 {
			return 0
		}
		return a % b
	},
	opSDiv: signedOp(func(a, b int64) int64 {
		if b == 0 {
			return 0
		}
		return a / b
	}),
	opSRem: signedOp(func(a, b int64) int64 {
		if b == 0 {
			return 0
		}
		return a % b
	}),
	opSMod: signedOp(func(a, b int64) int64 {
		if b == 0 {
			return 0
		}
		r := a % b
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return r
	}),
	opShiftLeftLogical: intOp(func(a, b uint64, w int) uint64 { return a << b }),
	opShiftRightLogical: intOp(func(a, b uint64, w int) uint64 {
		return a >> b
	}),
	opShiftRightArithmetic: intOp(func(a, b uint64, w int) uint64 {
		return uint64(sext(a, w) >> b)
	}),
	opBitwiseOr:  intOp(func(a, b uint64, w int) uint64 { return a | b }),
	opBitwiseXor: intOp(func(a, b uint64, w int) uint64 { return a ^ b }),
	opBitwiseAnd: intOp(func(a, b uint64, w int) uint64 { return a & b }),

	opFAdd: floatOp(func(a, b float64) float64 { return a + b }),
	opFSub: floatOp(func(a, b float64) float64 { return a - b }),
	opFMul: floatOp(func(a, b float64) float64 { return a * b }),
	opFDiv: floatOp(func(a, b float64) float64 { return a / b }),
	opFRem: floatOp(math.Mod),
	opFMod: floatOp(func(a, b float64) float64 {
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return r
	}),

	opLogicalEqual:    func(rt, ot *typ, x []uint64) uint64 { return boolBits(x[0] == x[1]) },
	opLogicalNotEqual: func(rt, ot *typ, x []uint64) uint64 { return boolBits(x[0] != x[1]) },
	opLogicalOr:       func(rt, ot *typ, x []uint64) uint64 { return x[0] | x[1] },
	opLogicalAnd:      func(rt, ot *typ, x []uint64) uint64 { return x[0] & x[1] },

	opIEqual:            compare(func(a, b uint64, w int) bool { return a == b }),
	opINotEqual:         compare(func(a, b uint64, w int) bool { return a != b }),
	opUGreaterThan:      compare(func(a, b uint64, w int) bool { return a > b }),
	opUGreaterThanEqual: compare(func(a, b uint64, w int) bool { return a >= b }),
	opULessThan:         compare(func(a, b uint64, w int) bool { return a < b }),
	opULessThanEqual:    compare(func(a, b uint64, w int) bool { return a <= b }),
	opSGreaterThan:      compare(func(a, b uint64, w int) bool { return sext(a, w) > sext(b, w) }),
	opSGreaterThanEqual: compare(func(a, b uint64, w int) bool { return sext(a, w) >= sext(b, w) }),
	opSLessThan:         compare(func(a, b uint64, w int) bool { return sext(a, w) < sext(b, w) }),
	opSLessThanEqual:    compare(func(a, b uint64, w int) bool { return sext(a, w) <= sext(b, w) }),

	opFOrdEqual:              floatCompare(true, func(a, b float64) bool { return a == b }),
	opFUnordEqual:            floatCompare(false, func(a, b float64) bool { return a == b }),
	opFOrdNotEqual:           floatCompare(true, func(a, b float64) bool { return a != b }),
	opFUnordNotEqual:         floatCompare(false, func(a, b float64) bool { return a != b }),
	opFOrdLessThan:           floatCompare(true, func(a, b float64) bool { return a < b }),
	opFUnordLessThan:         floatCompare(false, func(a, b float64) bool { return a < b }),
	opFOrdGreaterThan:        floatCompare(true, func(a, b float64) bool { return a > b }),
	opFUnordGreaterThan:      floatCompare(false, func(a, b float64) bool { return a > b }),
	opFOrdLessThanEqual:      floatCompare(true, func(a, b float64) bool { return a <= b }),
	opFUnordLessThanEqual:    floatCompare(false, func(a, b float64) bool { return a <= b }),
	opFOrdGreaterThanEqual:   floatCompare(true, func(a, b float64) bool { return a >= b }),
	opFUnordGreaterThanEqual: floatCompare(false, func(a, b float64) bool { return a >= b }),
}

var ternaryOps = map[uint32]laneFunc{
	opBitFieldInsert: func(rt, ot *typ, x []uint64) uint64 {
		base, ins, off, n := x[0], x[1], x[2], x[3]
		mask := fieldMask(n) << off
		return base&^mask | ins<<off&mask
	},
	opBitFieldSExtract: func(rt, ot *typ, x []uint64) uint64 {
		if x[2] == 0 {
			return 0
		}
		return uint64(sext(x[0]>>x[1]&fieldMask(x[2]), int(x[2])))
	},
	opBitFieldUExtract: func(rt, ot *typ, x []uint64) uint64 {
		return x[0] >> x[1] & fieldMask(x[2])
	},
}

func fieldMask(n uint64) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return 1<<n - 1
}

func (m *Machine) extInst(w []uint32) error {
	op := w[3]
	args := append([]uint32{w[0], w[1]}, w[4:]...)
	switch op {
	case glslPackHalf2x16:
		v := m.ids[w[4]]
		ot := m.typeOf[w[4]].elem
		lo := floatToHalf(float32(toFloat(ot, v.elems[0].bits)))
		hi := floatToHalf(float32(toFloat(ot, v.elems[1].bits)))
		m.define(w[1], m.types[w[0]], value{bits: uint64(lo) | uint64(hi)<<16})
		return nil
	case glslUnpackHalf2x16:
		x := m.ids[w[4]].bits
		rt := m.types[w[0]]
		out := value{elems: []value{
			{bits: fromFloat(rt.elem, float64(halfToFloat(uint16(x))))},
			{bits: fromFloat(rt.elem, float64(halfToFloat(uint16(x >> 16))))},
		}}
		m.define(w[1], rt, out)
		return nil
	}
	fn, ok := glslOps[op]
	if !ok {
		return fmt.Errorf("spvsim: unsupported GLSL.std.450 instruction %d", op)
	}
	return m.lanewise(args, fn)
}

func nanAware(pick func(a, b float64) float64) func(a, b float64) float64 {
	return func(a, b float64) float64 {
		switch {
		case math.IsNaN(a):
			return b
		case math.IsNaN(b):
			return a
		}
		return pick(a, b)
	}
}

var glslOps = map[uint32]laneFunc{
	glslRoundEven:   floatUnary(math.RoundToEven),
	glslTrunc:       floatUnary(math.Trunc),
	glslFAbs:        floatUnary(math.Abs),
	glslFloor:       floatUnary(math.Floor),
	glslCeil:        floatUnary(math.Ceil),
	glslFract:       floatUnary(func(a float64) float64 { return a - math.Floor(a) }),
	glslSin:         floatUnary(math.Sin),
	glslCos:         floatUnary(math.Cos),
	glslExp2:        floatUnary(math.Exp2),
	glslLog2:        floatUnary(math.Log2),
	glslSqrt:        floatUnary(math.Sqrt),
	glslInverseSqrt: floatUnary(func(a float64) float64 { return 1 / math.Sqrt(a) }),
	glslSAbs: func(rt, ot *typ, x []uint64) uint64 {
		v := sext(x[0], ot.width)
		if v < 0 {
			v = -v
		}
		return uint64(v)
	},
	glslFMin: floatOp(math.Min),
	glslFMax: floatOp(math.Max),
	glslNMin: floatOp(nanAware(math.Min)),
	glslNMax: floatOp(nanAware(math.Max)),
	glslUMin: intOp(func(a, b uint64, w int) uint64 { return min(a, b&fieldMask(uint64(w))) }),
	glslUMax: intOp(func(a, b uint64, w int) uint64 { return max(a, b&fieldMask(uint64(w))) }),
	glslSMin: signedOp(func(a, b int64) int64 { return min(a, b) }),
	glslSMax: signedOp(func(a, b int64) int64 { return max(a, b) }),
	glslFClamp: func(rt, ot *typ, x []uint64) uint64 {
		v, lo, hi := toFloat(ot, x[0]), toFloat(ot, x[1]), toFloat(ot, x[2])
		return fromFloat(rt, math.Min(math.Max(v, lo), hi))
	},
	glslNClamp: func(rt, ot *typ, x []uint64) uint64 {
		v, lo, hi := toFloat(ot, x[0]), toFloat(ot, x[1]), toFloat(ot, x[2])
		return fromFloat(rt, nanAware(math.Min)(nanAware(math.Max)(v, lo), hi))
	},
	glslUClamp: func(rt, ot *typ, x []uint64) uint64 {
		m := ot.mask()
		return min(max(x[0]&m, x[1]&m), x[2]&m)
	},
	glslSClamp: func(rt, ot *typ, x []uint64) uint64 {
		v, lo, hi := sext(x[0], ot.width), sext(x[1], ot.width), sext(x[2], ot.width)
		return uint64(min(max(v, lo), hi))
	},
	glslFma: func(rt, ot *typ, x []uint64) uint64 {
		return fromFloat(rt, math.FMA(toFloat(ot, x[0]), toFloat(ot, x[1]), toFloat(ot, x[2])))
	},
	glslFindILsb: func(rt, ot *typ, x []uint64) uint64 {
		v := x[0] & ot.mask()
		if v == 0 {
			return ^uint64(0)
		}
		return uint64(bits.TrailingZeros64(v))
	},
	glslFindUMsb: func(rt, ot *typ, x []uint64) uint64 {
		return uint64(int64(bits.Len64(x[0]&ot.mask())) - 1)
	},
	glslFindSMsb: func(rt, ot *typ, x []uint64) uint64 {
		v := x[0] & ot.mask()
		if sext(v, ot.width) < 0 {
			v = ^v & ot.mask()
		}
		return uint64(int64(bits.Len64(v)) - 1)
	},
}
