package spirv

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/jurealeksic/shadPS4/ir"
)

// EmitContext owns the module under construction for one program. It is
// passed by pointer to every emitter and is never shared between programs.
type EmitContext struct {
	b     *ModuleBuilder
	cache *Cache
	mat   *Materializer
	prog  *ir.Program
	opts  Options
	log   *slog.Logger

	glsl uint32
	fn   uint32

	// current insertion point
	label   uint32
	irBlock *ir.Block

	interfaces []uint32
	named      map[uint32]bool
	flow       *flow

	// special state, declared on first use
	scc, exec, vcc uint32
	sgprs, vgprs   uint32
	gotoVars       map[uint32]uint32
	userData       uint32

	shared   uint32
	buffers  map[uint32]uint32
	images   map[uint32]uint32
	samplers map[uint32]uint32

	builtins   map[BuiltIn]uint32
	inputs     map[uint32]uint32
	outputs    map[uint32]uint32
	fragColors [ir.NumRenderTargets]uint32
	sampleMask uint32

	depthReplacing bool
}

func newEmitContext(prog *ir.Program, opts Options) *EmitContext {
	b := NewModuleBuilder(opts.Version)
	cache := NewCache(b)
	c := &EmitContext{
		b:        b,
		cache:    cache,
		prog:     prog,
		opts:     opts,
		log:      opts.Logger,
		named:    make(map[uint32]bool),
		gotoVars: make(map[uint32]uint32),
		buffers:  make(map[uint32]uint32),
		images:   make(map[uint32]uint32),
		samplers: make(map[uint32]uint32),
		builtins: make(map[BuiltIn]uint32),
		inputs:   make(map[uint32]uint32),
		outputs:  make(map[uint32]uint32),
	}
	if c.log == nil {
		c.log = slog.New(slog.DiscardHandler)
	}
	c.mat = NewMaterializer(b, cache)
	return c
}

// Builder returns the module builder.
func (c *EmitContext) Builder() *ModuleBuilder { return c.b }

// Cache returns the type and constant cache.
func (c *EmitContext) Cache() *Cache { return c.cache }

// Materializer returns the value materializer.
func (c *EmitContext) Materializer() *Materializer { return c.mat }

// Program returns the program being emitted.
func (c *EmitContext) Program() *ir.Program { return c.prog }

// startBlock opens a SPIR-V block and makes it the insertion point. irBlock
// is the IR block whose instructions follow; nil for synthetic blocks.
func (c *EmitContext) startBlock(label uint32, irBlock *ir.Block) {
	c.b.AddLabel(label)
	c.label = label
	c.irBlock = irBlock
	c.mat.at(irBlock, label)
}

func (c *EmitContext) name(id uint32, name string) {
	if !c.opts.Debug || name == "" || c.named[id] {
		return
	}
	c.named[id] = true
	c.b.AddName(id, name)
}

// Common types.

func (c *EmitContext) boolType() uint32 { return c.cache.Bool() }
func (c *EmitContext) u32() uint32      { return c.cache.Int(32) }
func (c *EmitContext) u64() uint32      { return c.cache.Int(64) }
func (c *EmitContext) s32() uint32      { return c.cache.SInt(32) }
func (c *EmitContext) f32() uint32      { return c.cache.Float(32) }

func (c *EmitContext) u32Vec(n uint32) uint32 { return c.cache.Vector(c.u32(), n) }
func (c *EmitContext) f32Vec(n uint32) uint32 { return c.cache.Vector(c.f32(), n) }

func (c *EmitContext) constU32(v uint32) uint32 { return c.cache.ConstU32(v) }

func (c *EmitContext) constU64(v uint64) uint32 {
	return c.cache.Constant(Signature{Class: ClassUint, Width: 64, Arity: 1}, v)
}

func (c *EmitContext) constF32(v float32) uint32 {
	return c.cache.Constant(Signature{Class: ClassFloat, Width: 32, Arity: 1}, uint64(math.Float32bits(v)))
}

// typeOf returns the SPIR-V type of a numeric IR type. Opcode result types
// are static, so a failure here is a bug in the emitter tables.
func (c *EmitContext) typeOf(t ir.Type) uint32 {
	id, err := c.cache.TypeOf(t)
	if err != nil {
		panic(fmt.Sprintf("spirv: %v", err))
	}
	return id
}

func (c *EmitContext) value(v ir.Value) (uint32, error) { return c.mat.Materialize(v) }

// args materializes every argument of inst.
func (c *EmitContext) args(inst *ir.Inst) ([]uint32, error) {
	ids := make([]uint32, len(inst.Args))
	for i, a := range inst.Args {
		id, err := c.mat.Materialize(a)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	return ids, nil
}

// global declares a module scope variable. Input and Output variables are
// always entry point interfaces; from SPIR-V 1.4 every global is.
func (c *EmitContext) global(sc StorageClass, elem uint32, name string, init uint32) uint32 {
	ptr := c.cache.Pointer(sc, elem)
	id := c.b.AddVariableWithInit(ptr, sc, init)
	if sc == StorageClassInput || sc == StorageClassOutput || c.b.Version().AtLeast(Version1_4) {
		c.interfaces = append(c.interfaces, id)
	}
	c.name(id, name)
	return id
}

func (c *EmitContext) private(elem uint32, name string) uint32 {
	return c.global(StorageClassPrivate, elem, name, c.cache.Null(elem))
}

func (c *EmitContext) sccVar() uint32 {
	if c.scc == 0 {
		c.scc = c.private(c.boolType(), "scc")
	}
	return c.scc
}

func (c *EmitContext) execVar() uint32 {
	if c.exec == 0 {
		c.exec = c.private(c.u64(), "exec")
	}
	return c.exec
}

func (c *EmitContext) vccVar() uint32 {
	if c.vcc == 0 {
		c.vcc = c.private(c.u64(), "vcc")
	}
	return c.vcc
}

func (c *EmitContext) sgprVar() uint32 {
	if c.sgprs == 0 {
		c.sgprs = c.private(c.cache.Array(c.u32(), ir.NumScalarRegs, 0), "sgpr")
	}
	return c.sgprs
}

func (c *EmitContext) vgprVar() uint32 {
	if c.vgprs == 0 {
		c.vgprs = c.private(c.cache.Array(c.u32(), ir.NumVectorRegs, 0), "vgpr")
	}
	return c.vgprs
}

func (c *EmitContext) gotoVar(index uint32) uint32 {
	id, ok := c.gotoVars[index]
	if !ok {
		id = c.private(c.boolType(), fmt.Sprintf("goto%d", index))
		c.gotoVars[index] = id
	}
	return id
}

// userDataVar is the push constant block holding the user data registers
// that are not seeded at compile time.
func (c *EmitContext) userDataVar() uint32 {
	if c.userData == 0 {
		arr := c.cache.Array(c.u32(), ir.NumUserDataRegs, 4)
		st := c.cache.Struct("user_data", func(id uint32) {
			c.b.AddDecorate(id, DecorationBlock)
			c.b.AddMemberDecorate(id, 0, DecorationOffset, 0)
			if c.opts.Debug {
				c.b.AddMemberName(id, 0, "regs")
			}
		}, arr)
		c.userData = c.global(StorageClassPushConstant, st, "user_data", 0)
	}
	return c.userData
}

// sharedVar is the group shared memory viewed as 32-bit words.
func (c *EmitContext) sharedVar() (uint32, error) {
	if c.shared != 0 {
		return c.shared, nil
	}
	if c.prog.Stage != ir.StageCompute {
		return 0, unsupportedf("shared memory in %s stage", c.prog.Stage)
	}
	size := c.prog.Info.SharedMemorySize
	if size == 0 {
		return 0, contractf("shared memory access without declared shared memory")
	}
	words := (size + 3) / 4
	c.shared = c.global(StorageClassWorkgroup, c.cache.Array(c.u32(), words, 0), "shared", 0)
	return c.shared, nil
}

func (c *EmitContext) binding(id, binding uint32) {
	c.b.AddDecorate(id, DecorationDescriptorSet, 0)
	c.b.AddDecorate(id, DecorationBinding, binding)
}

// bufferVar declares buffer resource handle on first use.
func (c *EmitContext) bufferVar(handle uint32) (uint32, ir.BufferResource, error) {
	bufs := c.prog.Info.Buffers
	if handle >= uint32(len(bufs)) {
		return 0, ir.BufferResource{}, contractf("buffer handle %d out of range (%d buffers)", handle, len(bufs))
	}
	res := bufs[handle]
	if id, ok := c.buffers[handle]; ok {
		return id, res, nil
	}
	var id uint32
	if res.Storage {
		if !c.b.Version().AtLeast(Version1_3) {
			c.b.AddExtension(extStorageBufferClass)
		}
		arr := c.cache.RuntimeArray(c.u32(), 4)
		st := c.cache.Struct("storage_buffer", blockDecorator(c.b), arr)
		id = c.global(StorageClassStorageBuffer, st, res.Name, 0)
	} else {
		arr := c.cache.Array(c.u32Vec(4), uniformBufferVec4s, 16)
		st := c.cache.Struct("uniform_buffer", blockDecorator(c.b), arr)
		id = c.global(StorageClassUniform, st, res.Name, 0)
	}
	c.binding(id, res.Binding)
	c.buffers[handle] = id
	return id, res, nil
}

// uniformBufferVec4s is the uniform buffer size in 16 byte elements.
const uniformBufferVec4s = 4096

func blockDecorator(b *ModuleBuilder) func(uint32) {
	return func(id uint32) {
		b.AddDecorate(id, DecorationBlock)
		b.AddMemberDecorate(id, 0, DecorationOffset, 0)
	}
}

// builtin declares a built-in variable.
func (c *EmitContext) builtin(bi BuiltIn, sc StorageClass, typ uint32, name string) uint32 {
	if id, ok := c.builtins[bi]; ok {
		return id
	}
	id := c.global(sc, typ, name, 0)
	c.b.AddDecorate(id, DecorationBuiltIn, uint32(bi))
	if sc == StorageClassInput && c.prog.Stage == ir.StageFragment {
		if s, ok := c.cache.SignatureOfID(typ); ok && s.Class != ClassFloat && s.Class != ClassBool {
			c.b.AddDecorate(id, DecorationFlat)
		}
	}
	c.builtins[bi] = id
	return id
}

func (c *EmitContext) paramVar(sc StorageClass, location uint32) uint32 {
	vars := c.inputs
	prefix := "in_param"
	if sc == StorageClassOutput {
		vars = c.outputs
		prefix = "out_param"
	}
	if id, ok := vars[location]; ok {
		return id
	}
	id := c.global(sc, c.f32Vec(4), fmt.Sprintf("%s%d", prefix, location), 0)
	c.b.AddDecorate(id, DecorationLocation, location)
	vars[location] = id
	return id
}

func (c *EmitContext) fragColorVar(rt uint32) uint32 {
	if c.fragColors[rt] == 0 {
		id := c.global(StorageClassOutput, c.f32Vec(4), fmt.Sprintf("frag_color%d", rt), 0)
		c.b.AddDecorate(id, DecorationLocation, rt)
		c.fragColors[rt] = id
	}
	return c.fragColors[rt]
}

func (c *EmitContext) sampleMaskVar() uint32 {
	if c.sampleMask == 0 {
		c.sampleMask = c.global(StorageClassOutput, c.cache.Array(c.u32(), 1, 0), "sample_mask", 0)
		c.b.AddDecorate(c.sampleMask, DecorationBuiltIn, uint32(BuiltInSampleMask))
	}
	return c.sampleMask
}

// load reads a variable or an access chain element of it.
func (c *EmitContext) load(typ uint32, sc StorageClass, base uint32, indices ...uint32) uint32 {
	ptr := base
	if len(indices) > 0 {
		ptr = c.b.AddAccessChain(c.cache.Pointer(sc, typ), base, indices...)
	}
	return c.b.AddLoad(typ, ptr)
}

// store writes a variable or an access chain element of it.
func (c *EmitContext) store(typ uint32, sc StorageClass, base, value uint32, indices ...uint32) {
	ptr := base
	if len(indices) > 0 {
		ptr = c.b.AddAccessChain(c.cache.Pointer(sc, typ), base, indices...)
	}
	c.b.AddStore(ptr, value)
}
