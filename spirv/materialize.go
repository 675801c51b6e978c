package spirv

import (
	"fmt"

	"github.com/jurealeksic/shadPS4/ir"
)

// Materializer maps IR values to emitted IDs. Instruction results are
// defined once by the reconstructor and looked up afterwards; immediates go
// through the constant cache.
//
// In spill mode, used by the goto dispatcher, results read outside their
// defining block are stored to Function variables when defined and loaded
// again, once per SPIR-V block, where they are used.
type Materializer struct {
	b     *ModuleBuilder
	cache *Cache
	ids   map[*ir.Inst]uint32

	spills  map[*ir.Inst]uint32
	reloads map[reloadKey]uint32

	block *ir.Block
	label uint32
}

type reloadKey struct {
	inst  *ir.Inst
	label uint32
}

// NewMaterializer creates a materializer emitting into b.
func NewMaterializer(b *ModuleBuilder, cache *Cache) *Materializer {
	return &Materializer{
		b:       b,
		cache:   cache,
		ids:     make(map[*ir.Inst]uint32),
		spills:  make(map[*ir.Inst]uint32),
		reloads: make(map[reloadKey]uint32),
	}
}

func (m *Materializer) at(block *ir.Block, label uint32) {
	m.block = block
	m.label = label
}

// Materialize returns the ID of v.
func (m *Materializer) Materialize(v ir.Value) (uint32, error) {
	switch {
	case v.IsInst():
		inst := v.Inst()
		id, ok := m.ids[inst]
		if !ok {
			return 0, contractf("%%%s (%s) used before it was emitted", inst.Label(), inst.Op)
		}
		if spill, ok := m.spills[inst]; ok && inst.Block() != m.block {
			k := reloadKey{inst, m.label}
			if r, ok := m.reloads[k]; ok {
				return r, nil
			}
			r := m.b.AddLoad(m.mustType(inst.Type()), spill)
			m.reloads[k] = r
			return r, nil
		}
		return id, nil
	case v.IsImmediate():
		sig, ok := SignatureOf(v.Type())
		if !ok {
			return 0, contractf("immediate of type %s", v.Type())
		}
		return m.cache.Constant(sig, v.Bits()), nil
	case v.IsEmpty():
		return 0, contractf("empty operand")
	}
	return 0, contractf("%s operand cannot be materialized", v.Type())
}

// Define records the ID of an instruction result. A result is defined once.
func (m *Materializer) Define(inst *ir.Inst, id uint32) {
	if prev, ok := m.ids[inst]; ok {
		panic(fmt.Sprintf("spirv: %%%s defined twice (%d, %d)", inst.Label(), prev, id))
	}
	m.ids[inst] = id
	if spill, ok := m.spills[inst]; ok {
		m.b.AddStore(spill, id)
	}
}

// Defined reports whether inst has been emitted.
func (m *Materializer) Defined(inst *ir.Inst) bool {
	_, ok := m.ids[inst]
	return ok
}

// spill gives inst a Function variable holding its value.
func (m *Materializer) spill(inst *ir.Inst) {
	if _, ok := m.spills[inst]; ok {
		return
	}
	typ := m.mustType(inst.Type())
	m.spills[inst] = m.b.AddFunctionVariable(m.cache.Pointer(StorageClassFunction, typ))
}

func (m *Materializer) mustType(t ir.Type) uint32 {
	id, err := m.cache.TypeOf(t)
	if err != nil {
		panic(fmt.Sprintf("spirv: %v", err))
	}
	return id
}
