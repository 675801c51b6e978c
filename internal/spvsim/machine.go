// Package spvsim executes the entry point of a SPIR-V module for a single
// invocation.
//
// It understands the instructions the backend emits for arithmetic, memory
// and control flow, which is enough to check what generated code computes.
// Image instructions are rejected with ErrImage.
//
//	m, err := spvsim.Load(binary)
//	m.BindBuffer(0, 0, words)
//	err = m.Run()
//	out, _ := m.Buffer(0, 0)
package spvsim

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrImage is returned when execution reaches an image instruction.
var ErrImage = errors.New("spvsim: image instructions are not simulated")

const magic = 0x07230203

// maxSteps bounds execution so a miscompiled loop fails instead of hanging.
const maxSteps = 1 << 22

type kind uint8

const (
	kindVoid kind = iota
	kindBool
	kindInt
	kindFloat
	kindVector
	kindArray
	kindRuntimeArray
	kindStruct
	kindPointer
	kindOpaque
)

type typ struct {
	kind    kind
	width   int
	signed  bool
	elem    *typ
	length  int
	lenID   uint32
	members []*typ
	class   uint32
}

func (t *typ) scalar() *typ {
	if t.kind == kindVector {
		return t.elem
	}
	return t
}

func (t *typ) mask() uint64 {
	switch t.kind {
	case kindBool:
		return 1
	case kindInt, kindFloat:
		if t.width >= 64 {
			return ^uint64(0)
		}
		return 1<<uint(t.width) - 1
	}
	return ^uint64(0)
}

// value is a scalar, a composite or a pointer.
type value struct {
	bits  uint64
	elems []value
	ptr   *pointer
}

type pointer struct {
	root *value
	path []int
	phys bool
	addr uint64
}

func (v value) clone() value {
	if v.elems == nil {
		return v
	}
	out := value{bits: v.bits, elems: make([]value, len(v.elems))}
	for i, e := range v.elems {
		out.elems[i] = e.clone()
	}
	return out
}

type inst struct {
	op uint32
	w  []uint32
}

// Machine is a loaded module ready to run.
type Machine struct {
	types  map[uint32]*typ
	ids    map[uint32]value
	typeOf map[uint32]*typ
	decor  map[uint32]map[uint32][]uint32
	names  map[uint32]string
	vars   []uint32
	funcs  map[uint32][]inst
	entry  uint32
	glsl   uint32

	memory  map[uint64]uint32
	demoted bool
	ran     bool
}

// Load parses a module and allocates its global variables.
func Load(data []byte) (*Machine, error) {
	if len(data) < 20 || len(data)%4 != 0 {
		return nil, fmt.Errorf("spvsim: module of %d bytes is not a word stream with a header", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	if words[0] != magic {
		return nil, fmt.Errorf("spvsim: invalid magic 0x%08X", words[0])
	}
	m := &Machine{
		types:  make(map[uint32]*typ),
		ids:    make(map[uint32]value),
		typeOf: make(map[uint32]*typ),
		decor:  make(map[uint32]map[uint32][]uint32),
		names:  make(map[uint32]string),
		funcs:  make(map[uint32][]inst),
		memory: make(map[uint64]uint32),
	}
	var fn uint32
	for off := 5; off < len(words); {
		n := int(words[off] >> 16)
		if n == 0 || off+n > len(words) {
			return nil, fmt.Errorf("spvsim: invalid word count %d at word %d", n, off)
		}
		in := inst{op: words[off] & 0xFFFF, w: words[off+1 : off+n]}
		off += n
		if fn != 0 {
			if in.op == opFunctionEnd {
				fn = 0
				continue
			}
			m.funcs[fn] = append(m.funcs[fn], in)
			continue
		}
		if in.op == opFunction {
			fn = in.w[1]
			continue
		}
		if err := m.declare(in); err != nil {
			return nil, err
		}
	}
	if m.entry == 0 {
		return nil, errors.New("spvsim: module has no entry point")
	}
	if _, ok := m.funcs[m.entry]; !ok {
		return nil, fmt.Errorf("spvsim: entry point %%%d has no body", m.entry)
	}
	return m, nil
}

// declare handles one instruction outside function bodies.
func (m *Machine) declare(in inst) error {
	w := in.w
	switch in.op {
	case opName:
		m.names[w[0]] = literalString(w[1:])
	case opExtInstImport:
		if literalString(w[1:]) == "GLSL.std.450" {
			m.glsl = w[0]
		}
	case opEntryPoint:
		if m.entry == 0 {
			m.entry = w[1]
		}
	case opDecorate:
		d := m.decor[w[0]]
		if d == nil {
			d = make(map[uint32][]uint32)
			m.decor[w[0]] = d
		}
		d[w[1]] = w[2:]
	case opTypeVoid:
		m.types[w[0]] = &typ{kind: kindVoid}
	case opTypeBool:
		m.types[w[0]] = &typ{kind: kindBool}
	case opTypeInt:
		m.types[w[0]] = &typ{kind: kindInt, width: int(w[1]), signed: w[2] != 0}
	case opTypeFloat:
		m.types[w[0]] = &typ{kind: kindFloat, width: int(w[1])}
	case opTypeVector:
		m.types[w[0]] = &typ{kind: kindVector, elem: m.types[w[1]], length: int(w[2])}
	case opTypeArray:
		m.types[w[0]] = &typ{kind: kindArray, elem: m.types[w[1]], lenID: w[2], length: -1}
	case opTypeRuntimeArray:
		m.types[w[0]] = &typ{kind: kindRuntimeArray, elem: m.types[w[1]]}
	case opTypeStruct:
		t := &typ{kind: kindStruct}
		for _, id := range w[1:] {
			t.members = append(t.members, m.types[id])
		}
		m.types[w[0]] = t
	case opTypePointer:
		m.types[w[0]] = &typ{kind: kindPointer, class: w[1], elem: m.types[w[2]]}
	case opTypeImage, opTypeSampler, opTypeSampledImage, opTypeFunction:
		m.types[w[0]] = &typ{kind: kindOpaque}
	case opConstant:
		t := m.types[w[0]]
		bits := uint64(w[2])
		if len(w) > 3 {
			bits |= uint64(w[3]) << 32
		}
		m.define(w[1], t, value{bits: bits})
	case opConstantTrue, opConstantFalse:
		m.define(w[1], m.types[w[0]], value{bits: boolBits(in.op == opConstantTrue)})
	case opConstantComposite:
		v := value{elems: make([]value, len(w)-2)}
		for i, id := range w[2:] {
			v.elems[i] = m.ids[id].clone()
		}
		m.define(w[1], m.types[w[0]], v)
	case opConstantNull, opUndef:
		t := m.types[w[0]]
		m.define(w[1], t, m.zero(t))
	case opVariable:
		pt := m.types[w[0]]
		root := m.zero(pt.elem)
		if len(w) > 3 {
			root = m.ids[w[3]].clone()
		}
		m.define(w[1], pt, value{ptr: &pointer{root: &root}})
		m.vars = append(m.vars, w[1])
	}
	return nil
}

func (m *Machine) define(id uint32, t *typ, v value) {
	m.ids[id] = v
	m.typeOf[id] = t
}

func (m *Machine) arrayLen(t *typ) int {
	if t.length < 0 {
		t.length = int(m.ids[t.lenID].bits)
	}
	return t.length
}

// zero builds the zero value of t. Runtime arrays start empty.
func (m *Machine) zero(t *typ) value {
	if t == nil {
		return value{}
	}
	switch t.kind {
	case kindVector:
		return value{elems: make([]value, t.length)}
	case kindArray:
		v := value{elems: make([]value, m.arrayLen(t))}
		for i := range v.elems {
			v.elems[i] = m.zero(t.elem)
		}
		return v
	case kindRuntimeArray:
		return value{elems: []value{}}
	case kindStruct:
		v := value{elems: make([]value, len(t.members))}
		for i, mt := range t.members {
			v.elems[i] = m.zero(mt)
		}
		return v
	}
	return value{}
}

func literalString(ws []uint32) string {
	var b []byte
	for _, w := range ws {
		for k := 0; k < 4; k++ {
			c := byte(w >> (8 * k))
			if c == 0 {
				return string(b)
			}
			b = append(b, c)
		}
	}
	return string(b)
}

func boolBits(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// findVar returns the global variable of storage class sc carrying all the
// given decorations.
func (m *Machine) findVar(sc uint32, match func(d map[uint32][]uint32) bool) (*value, *typ, bool) {
	for _, id := range m.vars {
		t := m.typeOf[id]
		if t.class != sc || !match(m.decor[id]) {
			continue
		}
		return m.ids[id].ptr.root, t.elem, true
	}
	return nil, nil, false
}

func decorated(d map[uint32][]uint32, dec, v uint32) bool {
	p, ok := d[dec]
	return ok && len(p) > 0 && p[0] == v
}

func (m *Machine) resource(set, binding uint32) (*value, *typ, error) {
	for _, sc := range []uint32{classStorageBuffer, classUniform} {
		root, t, ok := m.findVar(sc, func(d map[uint32][]uint32) bool {
			return decorated(d, decorationDescriptorSet, set) && decorated(d, decorationBinding, binding)
		})
		if ok {
			return root, t, nil
		}
	}
	return nil, nil, fmt.Errorf("spvsim: no buffer at set %d binding %d", set, binding)
}

// BindBuffer fills the buffer at set and binding with words. A runtime
// sized buffer takes the length of words.
func (m *Machine) BindBuffer(set, binding uint32, words []uint32) error {
	root, t, err := m.resource(set, binding)
	if err != nil {
		return err
	}
	m.fill(root, t, words)
	return nil
}

// Buffer returns the contents of the buffer at set and binding.
func (m *Machine) Buffer(set, binding uint32) ([]uint32, error) {
	root, t, err := m.resource(set, binding)
	if err != nil {
		return nil, err
	}
	return flatten(*root, t, nil), nil
}

// SetPushConstants fills the push constant block.
func (m *Machine) SetPushConstants(words []uint32) error {
	root, t, ok := m.findVar(classPushConstant, func(map[uint32][]uint32) bool { return true })
	if !ok {
		return errors.New("spvsim: module has no push constants")
	}
	m.fill(root, t, words)
	return nil
}

// BindMemory places words in physical storage starting at byte address addr.
func (m *Machine) BindMemory(addr uint64, words []uint32) {
	for i, w := range words {
		m.memory[addr+uint64(4*i)] = w
	}
}

// SetInput fills the Input variable at location.
func (m *Machine) SetInput(location uint32, words ...uint32) error {
	root, t, ok := m.findVar(classInput, func(d map[uint32][]uint32) bool {
		return decorated(d, decorationLocation, location)
	})
	if !ok {
		return fmt.Errorf("spvsim: no input at location %d", location)
	}
	m.fill(root, t, words)
	return nil
}

// SetBuiltIn fills the Input variable decorated with built-in bi.
func (m *Machine) SetBuiltIn(bi uint32, words ...uint32) error {
	root, t, ok := m.findVar(classInput, func(d map[uint32][]uint32) bool {
		return decorated(d, decorationBuiltIn, bi)
	})
	if !ok {
		return fmt.Errorf("spvsim: no input built-in %d", bi)
	}
	m.fill(root, t, words)
	return nil
}

// Output returns the Output variable at location.
func (m *Machine) Output(location uint32) ([]uint32, bool) {
	root, t, ok := m.findVar(classOutput, func(d map[uint32][]uint32) bool {
		return decorated(d, decorationLocation, location)
	})
	if !ok {
		return nil, false
	}
	return flatten(*root, t, nil), true
}

// OutputBuiltIn returns the Output variable decorated with built-in bi.
func (m *Machine) OutputBuiltIn(bi uint32) ([]uint32, bool) {
	root, t, ok := m.findVar(classOutput, func(d map[uint32][]uint32) bool {
		return decorated(d, decorationBuiltIn, bi)
	})
	if !ok {
		return nil, false
	}
	return flatten(*root, t, nil), true
}

// Variable returns the contents of the global variable with debug name name.
// Booleans read as 0 or 1, 64-bit scalars as two words, low word first.
func (m *Machine) Variable(name string) ([]uint32, bool) {
	for _, id := range m.vars {
		if m.names[id] == name {
			return flatten(*m.ids[id].ptr.root, m.typeOf[id].elem, nil), true
		}
	}
	return nil, false
}

// Demoted reports whether the invocation was demoted to a helper or killed.
func (m *Machine) Demoted() bool { return m.demoted }

// fill stores words into the scalars of v in declaration order and returns
// what is left. A runtime array takes all remaining words.
func (m *Machine) fill(v *value, t *typ, words []uint32) []uint32 {
	switch t.kind {
	case kindBool, kindInt, kindFloat:
		if len(words) == 0 {
			return nil
		}
		v.bits = uint64(words[0])
		words = words[1:]
		if t.width == 64 && len(words) > 0 {
			v.bits |= uint64(words[0]) << 32
			words = words[1:]
		}
		return words
	case kindRuntimeArray:
		per := scalarWords(t.elem)
		n := (len(words) + per - 1) / per
		v.elems = make([]value, n)
		for i := range v.elems {
			v.elems[i] = m.zero(t.elem)
			words = m.fill(&v.elems[i], t.elem, words)
		}
		return words
	case kindVector, kindArray, kindStruct:
		if v.elems == nil {
			*v = m.zero(t)
		}
		for i := range v.elems {
			words = m.fill(&v.elems[i], memberType(t, i), words)
		}
	}
	return words
}

func flatten(v value, t *typ, out []uint32) []uint32 {
	switch t.kind {
	case kindBool, kindInt, kindFloat:
		out = append(out, uint32(v.bits))
		if t.width == 64 {
			out = append(out, uint32(v.bits>>32))
		}
	case kindVector, kindArray, kindRuntimeArray, kindStruct:
		for i, e := range v.elems {
			out = flatten(e, memberType(t, i), out)
		}
	}
	return out
}

func scalarWords(t *typ) int {
	switch t.kind {
	case kindBool, kindInt, kindFloat:
		if t.width == 64 {
			return 2
		}
		return 1
	case kindVector:
		return t.length * scalarWords(t.elem)
	case kindArray:
		return t.length * scalarWords(t.elem)
	case kindStruct:
		n := 0
		for _, mt := range t.members {
			n += scalarWords(mt)
		}
		return n
	}
	return 1
}

func memberType(t *typ, i int) *typ {
	if t.kind == kindStruct {
		return t.members[i]
	}
	return t.elem
}
