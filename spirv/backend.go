package spirv

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jurealeksic/shadPS4/ir"
)

// Backend translates IR programs to SPIR-V. A Backend holds only options,
// so one value may compile several programs concurrently.
type Backend struct {
	options Options
}

// NewBackend creates a new SPIR-V backend.
func NewBackend(options Options) *Backend {
	return &Backend{options: options}
}

// Compile translates a program to a SPIR-V binary. On error no binary is
// returned; errors from emission are *EmitError values matching
// ErrContractViolation or ErrUnsupported.
func (b *Backend) Compile(prog *ir.Program) ([]byte, error) {
	if prog == nil || len(prog.Blocks) == 0 {
		return nil, contractf("program has no blocks")
	}
	if b.options.Validation {
		if err := ir.Check(prog); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrContractViolation, err)
		}
	}

	c := newEmitContext(prog, b.options)
	c.log.Debug("compiling program",
		slog.String("stage", prog.Stage.String()),
		slog.Int("blocks", len(prog.Blocks)),
		slog.Int("insts", prog.NumInsts()),
		slog.String("version", b.options.Version.String()))

	// 1. Capabilities, extensions and memory model the program needs up front
	if err := c.prescan(); err != nil {
		return nil, err
	}

	// 2. Extended instruction sets
	c.glsl = c.b.AddExtInstImport("GLSL.std.450")

	// 3. The entry function
	void := c.cache.Void()
	fnType := c.cache.Function(void)
	fn, entry := c.b.BeginFunction(fnType, void)
	c.fn = fn
	c.name(fn, "main")
	if err := c.emitBody(entry); err != nil {
		return nil, err
	}
	c.b.AddFunctionEnd()

	// 4. Entry point, now that every interface variable is known
	if err := c.emitEntryPoint(); err != nil {
		return nil, err
	}

	if c.log.Enabled(context.Background(), slog.LevelDebug) {
		caps := c.b.Capabilities()
		names := make([]string, len(caps))
		for i, cp := range caps {
			names[i] = cp.String()
		}
		c.log.Debug("compiled program",
			slog.Any("capabilities", names),
			slog.Any("extensions", c.b.Extensions()),
			slog.Int("types", c.cache.NumTypes()),
			slog.Int("constants", c.cache.NumConstants()),
			slog.Uint64("bound", uint64(c.b.Bound())))
	}
	return c.b.Build(), nil
}

// prescan declares what the program needs before emission and rejects
// programs using features the profile does not allow.
func (c *EmitContext) prescan() error {
	c.b.AddCapability(CapabilityShader)
	addressing := AddressingModelLogical
	prof := c.opts.Profile
	v := c.b.Version()

	if c.prog.Stage == ir.StageGeometry {
		c.b.AddCapability(CapabilityGeometry)
	}
	for _, blk := range c.prog.Blocks {
		for _, inst := range blk.Insts {
			if err := c.checkWidths(inst); err != nil {
				return locate(err, inst)
			}
			switch inst.Op {
			case ir.OpPrologue, ir.OpGetVccLo, ir.OpSetVccLo:
				if !prof.Int64 {
					return locate(unsupportedf("exec and vcc masks need 64-bit integers"), inst)
				}
			case ir.OpReadConst:
				if !prof.BufferDeviceAddress || !prof.Int64 {
					return locate(unsupportedf("device address loads need buffer device address and 64-bit integers"), inst)
				}
				c.b.AddCapability(CapabilityPhysicalStorageBufferAddresses)
				if !v.AtLeast(Version1_5) {
					c.b.AddExtension(extPhysicalStorageBuffer)
				}
				addressing = AddressingModelPhysicalStorageBuffer64
			case ir.OpDiscard:
				if !prof.DemoteToHelperInvocation {
					return locate(unsupportedf("discard needs demote to helper invocation"), inst)
				}
				c.b.AddCapability(CapabilityDemoteToHelperInvocation)
				if !v.AtLeast(Version1_6) {
					c.b.AddExtension(extDemoteToHelper)
				}
			case ir.OpImageRead, ir.OpImageWrite:
				if !prof.StorageImageWithoutFormat {
					return locate(unsupportedf("storage image access needs formatless storage images"), inst)
				}
			}
			if inst.Op.IsImage() {
				if err := c.checkImage(inst); err != nil {
					return locate(err, inst)
				}
			}
		}
	}
	c.b.SetMemoryModel(addressing, MemoryModelGLSL450)
	return nil
}

// checkWidths rejects result and operand types the profile cannot declare.
func (c *EmitContext) checkWidths(inst *ir.Inst) error {
	prof := c.opts.Profile
	check := func(t ir.Type) error {
		switch {
		case t&(ir.F16|ir.F16x2|ir.F16x3|ir.F16x4) != 0 && !prof.Float16:
			return unsupportedf("16-bit floats")
		case t&(ir.F64|ir.F64x2|ir.F64x3|ir.F64x4) != 0 && !prof.Float64:
			return unsupportedf("64-bit floats")
		case t&ir.U8 != 0 && !prof.Int8:
			return unsupportedf("8-bit integers")
		case t&ir.U16 != 0 && !prof.Int16:
			return unsupportedf("16-bit integers")
		case t&ir.U64 != 0 && !prof.Int64:
			return unsupportedf("64-bit integers")
		}
		return nil
	}
	if err := check(inst.Type()); err != nil {
		return err
	}
	for _, a := range inst.Args {
		if a.IsInst() || a.IsImmediate() {
			if err := check(a.Type()); err != nil {
				return err
			}
		}
	}
	return nil
}

// offsetArgs returns the operand positions holding texel offsets.
func offsetArgs(op ir.Opcode) []int {
	switch op {
	case ir.OpImageSampleImplicitLod, ir.OpImageSampleExplicitLod, ir.OpImageGradient:
		return []int{3}
	case ir.OpImageSampleDrefImplicitLod, ir.OpImageSampleDrefExplicitLod:
		return []int{4}
	case ir.OpImageGather, ir.OpImageGatherDref:
		return []int{2, 3}
	case ir.OpImageFetch:
		return []int{2}
	}
	return nil
}

// checkImage gates the image features an instruction uses: runtime and
// multi-tap offsets, and indexing into descriptor arrays.
func (c *EmitContext) checkImage(inst *ir.Inst) error {
	prof := c.opts.Profile
	for i, n := range offsetArgs(inst.Op) {
		off := inst.Arg(n)
		if off.IsEmpty() {
			continue
		}
		_, folds := constOffset(off)
		multi := (inst.Op == ir.OpImageGather || inst.Op == ir.OpImageGatherDref) && i == 1
		if (!folds || multi) && !prof.ImageGatherExtended {
			return unsupportedf("runtime or multiple texel offsets need extended gather")
		}
	}
	if inst.Arg(0).IsImmediate() {
		return nil
	}
	flags := ir.TextureInstInfo(inst.Flags)
	imgs := c.prog.Info.Images
	if slot := flags.ArraySlot(); slot < uint32(len(imgs)) && imgs[slot].Runtime && !prof.RuntimeDescriptorArray {
		return unsupportedf("runtime sized image arrays")
	}
	if flags.NonUniform() && !prof.NonUniformIndexing {
		return unsupportedf("non-uniform image indexing")
	}
	return nil
}

// emitEntryPoint declares the entry point and its execution modes.
func (c *EmitContext) emitEntryPoint() error {
	var model ExecutionModel
	switch c.prog.Stage {
	case ir.StageVertex:
		model = ExecutionModelVertex
	case ir.StageFragment:
		model = ExecutionModelFragment
	case ir.StageCompute:
		model = ExecutionModelGLCompute
	case ir.StageGeometry:
		model = ExecutionModelGeometry
	default:
		return contractf("unsupported shader stage: %v", c.prog.Stage)
	}
	c.b.AddEntryPoint(model, c.fn, "main", c.interfaces)

	switch c.prog.Stage {
	case ir.StageFragment:
		c.b.AddExecutionMode(c.fn, ExecutionModeOriginUpperLeft)
		if c.depthReplacing {
			c.b.AddExecutionMode(c.fn, ExecutionModeDepthReplacing)
		}
	case ir.StageCompute:
		size := c.prog.WorkgroupSize
		for i := range size {
			if size[i] == 0 {
				size[i] = 1
			}
		}
		c.b.AddExecutionMode(c.fn, ExecutionModeLocalSize, size[0], size[1], size[2])
	case ir.StageGeometry:
		verts := c.prog.Info.OutputVertices
		if verts == 0 {
			verts = 3
		}
		c.b.AddExecutionMode(c.fn, ExecutionModeTriangles)
		c.b.AddExecutionMode(c.fn, ExecutionModeInvocations, 1)
		c.b.AddExecutionMode(c.fn, ExecutionModeOutputTriangleStrip)
		c.b.AddExecutionMode(c.fn, ExecutionModeOutputVertices, verts)
	}
	return nil
}
