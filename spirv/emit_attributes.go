package spirv

import (
	"github.com/jurealeksic/shadPS4/ir"
)

func (c *EmitContext) requireStage(what string, stages ...ir.Stage) error {
	for _, s := range stages {
		if c.prog.Stage == s {
			return nil
		}
	}
	return contractf("%s is not available in %s stage", what, c.prog.Stage)
}

func component(v ir.Value) (uint32, error) {
	comp := v.U32()
	if comp > 3 {
		return 0, contractf("component %d out of range", comp)
	}
	return comp, nil
}

func emitGetAttribute(c *EmitContext, inst *ir.Inst) (uint32, error) {
	attr := inst.Arg(0).Attribute()
	comp, err := component(inst.Arg(1))
	if err != nil {
		return 0, err
	}
	switch {
	case attr.IsParam():
		if err := c.requireStage("attribute input", ir.StageVertex, ir.StageFragment); err != nil {
			return 0, err
		}
		in := c.paramVar(StorageClassInput, attr.Index())
		return c.load(c.f32(), StorageClassInput, in, c.constU32(comp)), nil
	case attr == ir.AttrFragCoord:
		if err := c.requireStage("frag_coord", ir.StageFragment); err != nil {
			return 0, err
		}
		v := c.builtin(BuiltInFragCoord, StorageClassInput, c.f32Vec(4), "frag_coord")
		return c.load(c.f32(), StorageClassInput, v, c.constU32(comp)), nil
	case attr == ir.AttrIsFrontFace:
		front, err := c.frontFacing()
		if err != nil {
			return 0, err
		}
		return c.b.AddSelect(c.f32(), front, c.constF32(1), c.constF32(0)), nil
	case attr.IsPosition(), attr.IsRenderTarget(), attr == ir.AttrDepth, attr == ir.AttrNull:
		return 0, contractf("attribute %s is not readable", attr)
	}
	u, err := c.attributeU32(attr, comp)
	if err != nil {
		return 0, err
	}
	return c.b.AddUnaryOp(OpBitcast, c.f32(), u), nil
}

func emitGetAttributeU32(c *EmitContext, inst *ir.Inst) (uint32, error) {
	comp, err := component(inst.Arg(1))
	if err != nil {
		return 0, err
	}
	return c.attributeU32(inst.Arg(0).Attribute(), comp)
}

func (c *EmitContext) frontFacing() (uint32, error) {
	if err := c.requireStage("is_front_face", ir.StageFragment); err != nil {
		return 0, err
	}
	v := c.builtin(BuiltInFrontFacing, StorageClassInput, c.boolType(), "front_facing")
	return c.b.AddLoad(c.boolType(), v), nil
}

func (c *EmitContext) attributeU32(attr ir.Attribute, comp uint32) (uint32, error) {
	u32 := c.u32()
	scalar := func(bi BuiltIn, name string, stages ...ir.Stage) (uint32, error) {
		if err := c.requireStage(name, stages...); err != nil {
			return 0, err
		}
		return c.b.AddLoad(u32, c.builtin(bi, StorageClassInput, u32, name)), nil
	}
	lane := func(bi BuiltIn, name string) (uint32, error) {
		if err := c.requireStage(name, ir.StageCompute); err != nil {
			return 0, err
		}
		v := c.builtin(bi, StorageClassInput, c.u32Vec(3), name)
		if comp > 2 {
			return 0, contractf("component %d of %s", comp, name)
		}
		return c.load(u32, StorageClassInput, v, c.constU32(comp)), nil
	}
	switch attr {
	case ir.AttrVertexID:
		return scalar(BuiltInVertexIndex, "vertex_index", ir.StageVertex)
	case ir.AttrInstanceID:
		return scalar(BuiltInInstanceIndex, "instance_index", ir.StageVertex)
	case ir.AttrPrimitiveID:
		if c.prog.Stage == ir.StageFragment {
			c.b.AddCapability(CapabilityGeometry)
		}
		return scalar(BuiltInPrimitiveID, "primitive_id", ir.StageFragment, ir.StageGeometry)
	case ir.AttrInvocationID:
		return scalar(BuiltInInvocationID, "invocation_id", ir.StageGeometry)
	case ir.AttrSampleIndex:
		c.b.AddCapability(CapabilitySampleRateShading)
		return scalar(BuiltInSampleID, "sample_id", ir.StageFragment)
	case ir.AttrLocalInvocationIndex:
		return scalar(BuiltInLocalInvocationIndex, "local_invocation_index", ir.StageCompute)
	case ir.AttrLocalInvocationID:
		return lane(BuiltInLocalInvocationID, "local_invocation_id")
	case ir.AttrWorkgroupID:
		return lane(BuiltInWorkgroupID, "workgroup_id")
	case ir.AttrGlobalInvocationID:
		return lane(BuiltInGlobalInvocationID, "global_invocation_id")
	case ir.AttrIsFrontFace:
		front, err := c.frontFacing()
		if err != nil {
			return 0, err
		}
		return c.b.AddSelect(u32, front, c.constU32(1), c.constU32(0)), nil
	}
	if attr.IsParam() || attr == ir.AttrFragCoord {
		var f uint32
		if attr.IsParam() {
			if err := c.requireStage("attribute input", ir.StageVertex, ir.StageFragment); err != nil {
				return 0, err
			}
			f = c.load(c.f32(), StorageClassInput, c.paramVar(StorageClassInput, attr.Index()), c.constU32(comp))
		} else {
			if err := c.requireStage("frag_coord", ir.StageFragment); err != nil {
				return 0, err
			}
			v := c.builtin(BuiltInFragCoord, StorageClassInput, c.f32Vec(4), "frag_coord")
			f = c.load(c.f32(), StorageClassInput, v, c.constU32(comp))
		}
		return c.b.AddUnaryOp(OpBitcast, u32, f), nil
	}
	return 0, contractf("attribute %s is not readable", attr)
}

func emitSetAttribute(c *EmitContext, inst *ir.Inst) (uint32, error) {
	attr := inst.Arg(0).Attribute()
	v, err := c.value(inst.Arg(1))
	if err != nil {
		return 0, err
	}
	comp, err := component(inst.Arg(2))
	if err != nil {
		return 0, err
	}
	switch {
	case attr == ir.AttrPosition0:
		if err := c.requireStage("position output", ir.StageVertex, ir.StageGeometry); err != nil {
			return 0, err
		}
		out := c.builtin(BuiltInPosition, StorageClassOutput, c.f32Vec(4), "position")
		c.store(c.f32(), StorageClassOutput, out, v, c.constU32(comp))
	case attr.IsPosition():
		return 0, unsupportedf("attribute %s", attr)
	case attr.IsParam():
		if err := c.requireStage("attribute output", ir.StageVertex, ir.StageGeometry); err != nil {
			return 0, err
		}
		out := c.paramVar(StorageClassOutput, attr.Index())
		c.store(c.f32(), StorageClassOutput, out, v, c.constU32(comp))
	case attr.IsRenderTarget():
		return 0, c.fragColor(uint32(attr-ir.AttrRenderTarget0), comp, v)
	case attr == ir.AttrDepth:
		return 0, c.fragDepth(v)
	default:
		return 0, contractf("attribute %s is not writable", attr)
	}
	return 0, nil
}

func emitSetFragColor(c *EmitContext, inst *ir.Inst) (uint32, error) {
	rt := inst.Arg(0).U32()
	if rt >= ir.NumRenderTargets {
		return 0, contractf("render target %d out of range", rt)
	}
	comp, err := component(inst.Arg(1))
	if err != nil {
		return 0, err
	}
	v, err := c.value(inst.Arg(2))
	if err != nil {
		return 0, err
	}
	return 0, c.fragColor(rt, comp, v)
}

func (c *EmitContext) fragColor(rt, comp, v uint32) error {
	if err := c.requireStage("color output", ir.StageFragment); err != nil {
		return err
	}
	c.store(c.f32(), StorageClassOutput, c.fragColorVar(rt), v, c.constU32(comp))
	return nil
}

func emitSetSampleMask(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if err := c.requireStage("sample mask", ir.StageFragment); err != nil {
		return 0, err
	}
	v, err := c.value(inst.Arg(0))
	if err != nil {
		return 0, err
	}
	c.store(c.u32(), StorageClassOutput, c.sampleMaskVar(), v, c.constU32(0))
	return 0, nil
}

func emitSetFragDepth(c *EmitContext, inst *ir.Inst) (uint32, error) {
	v, err := c.value(inst.Arg(0))
	if err != nil {
		return 0, err
	}
	return 0, c.fragDepth(v)
}

func (c *EmitContext) fragDepth(v uint32) error {
	if err := c.requireStage("depth output", ir.StageFragment); err != nil {
		return err
	}
	out := c.builtin(BuiltInFragDepth, StorageClassOutput, c.f32(), "frag_depth")
	c.b.AddStore(out, v)
	c.depthReplacing = true
	return nil
}

func emitWorkgroupId(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if err := c.requireStage("workgroup_id", ir.StageCompute); err != nil {
		return 0, err
	}
	typ := c.u32Vec(3)
	return c.b.AddLoad(typ, c.builtin(BuiltInWorkgroupID, StorageClassInput, typ, "workgroup_id")), nil
}

func emitLocalInvocationId(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if err := c.requireStage("local_invocation_id", ir.StageCompute); err != nil {
		return 0, err
	}
	typ := c.u32Vec(3)
	return c.b.AddLoad(typ, c.builtin(BuiltInLocalInvocationID, StorageClassInput, typ, "local_invocation_id")), nil
}

func emitInvocationId(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.attributeU32(ir.AttrInvocationID, 0)
}

// emitInvocationInfo reads the primitive being expanded by the geometry
// invocation.
func emitInvocationInfo(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if err := c.requireStage("invocation info", ir.StageGeometry); err != nil {
		return 0, err
	}
	return c.attributeU32(ir.AttrPrimitiveID, 0)
}

func emitSampleId(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.attributeU32(ir.AttrSampleIndex, 0)
}
