package spirv

import (
	"math/bits"

	"github.com/jurealeksic/shadPS4/ir"
)

var dimOf = [...]Dim{
	ir.Dim1D:     Dim1D,
	ir.Dim2D:     Dim2D,
	ir.Dim3D:     Dim3D,
	ir.DimCube:   DimCube,
	ir.DimBuffer: DimBuffer,
}

func (c *EmitContext) texelScalar(f ir.NumberFormat) uint32 {
	switch f {
	case ir.FormatSint:
		return c.s32()
	case ir.FormatUint:
		return c.u32()
	}
	return c.f32()
}

func (c *EmitContext) imageType(res ir.ImageResource) uint32 {
	return c.cache.Image(ImageDesc{
		SampledType: c.texelScalar(res.Format),
		Dim:         dimOf[res.Dim],
		Depth:       res.Depth,
		Arrayed:     res.Arrayed,
		MS:          res.Multisampled,
		Storage:     res.Storage,
	})
}

func (c *EmitContext) requireImageCaps(res ir.ImageResource) {
	switch {
	case res.Dim == ir.Dim1D && res.Storage:
		c.b.AddCapability(CapabilityImage1D)
	case res.Dim == ir.Dim1D:
		c.b.AddCapability(CapabilitySampled1D)
	case res.Dim == ir.DimBuffer && res.Storage:
		c.b.AddCapability(CapabilityImageBuffer)
	case res.Dim == ir.DimBuffer:
		c.b.AddCapability(CapabilitySampledBuffer)
	case res.Dim == ir.DimCube && res.Arrayed && res.Storage:
		c.b.AddCapability(CapabilityImageCubeArray)
	case res.Dim == ir.DimCube && res.Arrayed:
		c.b.AddCapability(CapabilitySampledCubeArray)
	}
	if res.Multisampled && res.Storage {
		c.b.AddCapability(CapabilityStorageImageMultisample)
		if res.Arrayed {
			c.b.AddCapability(CapabilityImageMSArray)
		}
	}
}

// imageVar declares image resource slot on first use.
func (c *EmitContext) imageVar(slot uint32) (uint32, ir.ImageResource, error) {
	imgs := c.prog.Info.Images
	if slot >= uint32(len(imgs)) {
		return 0, ir.ImageResource{}, contractf("image slot %d out of range (%d images)", slot, len(imgs))
	}
	res := imgs[slot]
	if id, ok := c.images[slot]; ok {
		return id, res, nil
	}
	c.requireImageCaps(res)
	elem := c.imageType(res)
	switch {
	case res.Runtime:
		elem = c.cache.RuntimeArray(elem, 0)
	case res.Count > 1:
		elem = c.cache.Array(elem, res.Count, 0)
	}
	id := c.global(StorageClassUniformConstant, elem, res.Name, 0)
	c.binding(id, res.Binding)
	c.images[slot] = id
	return id, res, nil
}

func (c *EmitContext) samplerVar(slot uint32) (uint32, error) {
	ss := c.prog.Info.Samplers
	if slot >= uint32(len(ss)) {
		return 0, contractf("sampler slot %d out of range (%d samplers)", slot, len(ss))
	}
	if id, ok := c.samplers[slot]; ok {
		return id, nil
	}
	id := c.global(StorageClassUniformConstant, c.cache.Sampler(), ss[slot].Name, 0)
	c.binding(id, ss[slot].Binding)
	c.samplers[slot] = id
	return id, nil
}

// imageRef is a loaded image resource.
type imageRef struct {
	res        ir.ImageResource
	typ        uint32
	image      uint32
	nonUniform bool
}

// loadImage resolves the resource operand of an image instruction. An
// immediate names the resource slot. A runtime value indexes the resource
// array in the slot given by the instruction's TextureInstInfo and needs
// descriptor indexing.
func (c *EmitContext) loadImage(inst *ir.Inst) (imageRef, error) {
	handle := inst.Arg(0)
	flags := ir.TextureInstInfo(inst.Flags)
	slot := flags.ArraySlot()
	if handle.IsImmediate() {
		slot = handle.U32()
	}
	id, res, err := c.imageVar(slot)
	if err != nil {
		return imageRef{}, err
	}
	ref := imageRef{res: res, typ: c.imageType(res)}
	ptrType := c.cache.Pointer(StorageClassUniformConstant, ref.typ)
	switch {
	case handle.IsImmediate() && !res.IsArray():
		ref.image = c.b.AddLoad(ref.typ, id)
		return ref, nil
	case handle.IsImmediate():
		ptr := c.b.AddAccessChain(ptrType, id, c.constU32(0))
		ref.image = c.b.AddLoad(ref.typ, ptr)
		return ref, nil
	case !res.IsArray():
		return imageRef{}, contractf("runtime index into image slot %d which is not an array", slot)
	}
	index, err := c.value(handle)
	if err != nil {
		return imageRef{}, err
	}
	c.requireDescriptorIndexing(res, flags.NonUniform())
	ptr := c.b.AddAccessChain(ptrType, id, index)
	ref.image = c.b.AddLoad(ref.typ, ptr)
	if flags.NonUniform() {
		ref.nonUniform = true
		c.b.AddDecorate(index, DecorationNonUniform)
		c.b.AddDecorate(ptr, DecorationNonUniform)
		c.b.AddDecorate(ref.image, DecorationNonUniform)
	}
	return ref, nil
}

func (c *EmitContext) requireDescriptorIndexing(res ir.ImageResource, nonUniform bool) {
	needExt := !c.b.Version().AtLeast(Version1_5)
	if res.Storage {
		c.b.AddCapability(CapabilityStorageImageArrayDynamicIndexing)
	} else {
		c.b.AddCapability(CapabilitySampledImageArrayDynamicIndexing)
	}
	if res.Runtime {
		c.b.AddCapability(CapabilityRuntimeDescriptorArray)
		if needExt {
			c.b.AddExtension(extDescriptorIndexing)
		}
	}
	if nonUniform {
		c.b.AddCapability(CapabilityShaderNonUniform)
		if res.Storage {
			c.b.AddCapability(CapabilityStorageImageArrayNonUniformIndexing)
		} else {
			c.b.AddCapability(CapabilitySampledImageArrayNonUniformIndexing)
		}
		if needExt {
			c.b.AddExtension(extDescriptorIndexing)
		}
	}
}

// sampled combines the image with the sampler named by the instruction.
func (c *EmitContext) sampled(inst *ir.Inst, ref imageRef) (uint32, error) {
	if ref.res.Storage {
		return 0, contractf("sampling storage image")
	}
	if ref.res.Dim == ir.DimBuffer {
		return 0, contractf("sampling buffer image")
	}
	sv, err := c.samplerVar(ir.TextureInstInfo(inst.Flags).SamplerSlot())
	if err != nil {
		return 0, err
	}
	smp := c.b.AddLoad(c.cache.Sampler(), sv)
	id := c.b.AddOp(OpSampledImage, c.cache.SampledImage(ref.typ), ref.image, smp)
	if ref.nonUniform {
		c.b.AddDecorate(id, DecorationNonUniform)
	}
	return id, nil
}

// texelType is the four lane vector of the image's sampled type.
func (c *EmitContext) texelType(ref imageRef) uint32 {
	return c.cache.Vector(c.texelScalar(ref.res.Format), 4)
}

// texelOut reinterprets integer texels as F32x4 bit patterns.
func (c *EmitContext) texelOut(ref imageRef, v uint32) uint32 {
	if ref.res.Format == ir.FormatFloat {
		return v
	}
	return c.b.AddUnaryOp(OpBitcast, c.f32Vec(4), v)
}

func (c *EmitContext) coords(inst *ir.Inst, ref imageRef, float bool) (uint32, error) {
	v := inst.Arg(1)
	if v.IsEmpty() {
		return 0, contractf("missing coordinates")
	}
	t := v.Type()
	if t.IsFloat() != float {
		return 0, contractf("coordinates of type %s", t)
	}
	want := ref.res.Dim.Coords()
	if ref.res.Arrayed {
		want++
	}
	if t.Arity() != want {
		return 0, contractf("%s image takes %d coordinates, got %s", ref.res.Dim, want, t)
	}
	return c.value(v)
}

// imageOperands collects optional image operands and emits them in mask
// bit order.
type imageOperands struct {
	mask uint32
	vals [8][]uint32
}

func (o *imageOperands) add(bit uint32, ids ...uint32) {
	o.mask |= bit
	o.vals[bits.TrailingZeros32(bit)] = ids
}

func (o *imageOperands) words() []uint32 {
	if o.mask == 0 {
		return nil
	}
	out := []uint32{o.mask}
	for _, v := range o.vals {
		out = append(out, v...)
	}
	return out
}

// constOffset folds an offset operand built from immediates.
func constOffset(v ir.Value) ([]uint32, bool) {
	if v.IsImmediate() {
		return []uint32{v.U32()}, true
	}
	inst := v.Inst()
	if inst == nil {
		return nil, false
	}
	switch inst.Op {
	case ir.OpCompositeConstructU32x2, ir.OpCompositeConstructU32x3, ir.OpCompositeConstructU32x4:
	default:
		return nil, false
	}
	out := make([]uint32, len(inst.Args))
	for i, a := range inst.Args {
		if !a.IsImmediate() {
			return nil, false
		}
		out[i] = a.U32()
	}
	return out, true
}

func (c *EmitContext) signedConst(lanes []uint32) uint32 {
	sig := Signature{Class: ClassSint, Width: 32, Arity: 1}
	ids := make([]uint32, len(lanes))
	for i, l := range lanes {
		ids[i] = c.cache.Constant(sig, uint64(l))
	}
	if len(ids) == 1 {
		return ids[0]
	}
	return c.cache.Composite(c.cache.Vector(c.s32(), uint32(len(ids))), ids...)
}

// offset adds a texel offset operand: ConstOffset when it folds, Offset
// otherwise.
func (c *EmitContext) offset(ops *imageOperands, v ir.Value, ref imageRef) error {
	if v.IsEmpty() {
		return nil
	}
	if ref.res.Dim == ir.DimCube || ref.res.Dim == ir.DimBuffer {
		return contractf("texel offset on %s image", ref.res.Dim)
	}
	if n := ref.res.Dim.Coords(); v.Type().Arity() != n || v.Type().IsFloat() {
		return contractf("offset of type %s for %s image", v.Type(), ref.res.Dim)
	}
	if lanes, ok := constOffset(v); ok {
		ops.add(ImageOperandsConstOffset, c.signedConst(lanes))
		return nil
	}
	id, err := c.value(v)
	if err != nil {
		return err
	}
	c.b.AddCapability(CapabilityImageGatherExtended)
	ops.add(ImageOperandsOffset, id)
	return nil
}

// biasLodClamp adds Bias and MinLod from the packed bias/lod-clamp operand.
func (c *EmitContext) biasLodClamp(ops *imageOperands, inst *ir.Inst, v ir.Value) error {
	flags := ir.TextureInstInfo(inst.Flags)
	if !flags.HasBias() && !flags.HasLodClamp() {
		return nil
	}
	id, err := c.value(v)
	if err != nil {
		return err
	}
	bias, clamp := id, id
	if flags.HasBias() && flags.HasLodClamp() {
		if v.Type() != ir.F32x2 {
			return contractf("bias and lod clamp packed in %s", v.Type())
		}
		bias = c.b.AddCompositeExtract(c.f32(), id, 0)
		clamp = c.b.AddCompositeExtract(c.f32(), id, 1)
	} else if v.Type() != ir.F32 {
		return contractf("bias or lod clamp of type %s", v.Type())
	}
	if flags.HasBias() {
		ops.add(ImageOperandsBias, bias)
	}
	if flags.HasLodClamp() {
		c.b.AddCapability(CapabilityMinLod)
		ops.add(ImageOperandsMinLod, clamp)
	}
	return nil
}

func (c *EmitContext) implicitLod() error {
	if c.prog.Stage != ir.StageFragment {
		return unsupportedf("implicit level of detail in %s stage", c.prog.Stage)
	}
	return nil
}

type sampleSetup struct {
	ref    imageRef
	simg   uint32
	coords uint32
}

func (c *EmitContext) setupSample(inst *ir.Inst) (sampleSetup, error) {
	ref, err := c.loadImage(inst)
	if err != nil {
		return sampleSetup{}, err
	}
	if ref.res.Multisampled {
		return sampleSetup{}, contractf("sampling multisampled image")
	}
	coords, err := c.coords(inst, ref, true)
	if err != nil {
		return sampleSetup{}, err
	}
	simg, err := c.sampled(inst, ref)
	if err != nil {
		return sampleSetup{}, err
	}
	return sampleSetup{ref: ref, simg: simg, coords: coords}, nil
}

func emitImageSampleImplicitLod(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if err := c.implicitLod(); err != nil {
		return 0, err
	}
	s, err := c.setupSample(inst)
	if err != nil {
		return 0, err
	}
	var ops imageOperands
	if err := c.biasLodClamp(&ops, inst, inst.Arg(2)); err != nil {
		return 0, err
	}
	if err := c.offset(&ops, inst.Arg(3), s.ref); err != nil {
		return 0, err
	}
	v := c.b.AddOp(OpImageSampleImplicitLod, c.texelType(s.ref), append([]uint32{s.simg, s.coords}, ops.words()...)...)
	return c.texelOut(s.ref, v), nil
}

func emitImageSampleExplicitLod(c *EmitContext, inst *ir.Inst) (uint32, error) {
	s, err := c.setupSample(inst)
	if err != nil {
		return 0, err
	}
	lod, err := c.value(inst.Arg(2))
	if err != nil {
		return 0, err
	}
	var ops imageOperands
	ops.add(ImageOperandsLod, lod)
	if err := c.offset(&ops, inst.Arg(3), s.ref); err != nil {
		return 0, err
	}
	v := c.b.AddOp(OpImageSampleExplicitLod, c.texelType(s.ref), append([]uint32{s.simg, s.coords}, ops.words()...)...)
	return c.texelOut(s.ref, v), nil
}

func (c *EmitContext) dref(inst *ir.Inst, s sampleSetup, arg int) (uint32, error) {
	if s.ref.res.Format != ir.FormatFloat {
		return 0, contractf("depth comparison on integer image")
	}
	return c.value(inst.Arg(arg))
}

func emitImageSampleDrefImplicitLod(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if err := c.implicitLod(); err != nil {
		return 0, err
	}
	s, err := c.setupSample(inst)
	if err != nil {
		return 0, err
	}
	dref, err := c.dref(inst, s, 2)
	if err != nil {
		return 0, err
	}
	var ops imageOperands
	if err := c.biasLodClamp(&ops, inst, inst.Arg(3)); err != nil {
		return 0, err
	}
	if err := c.offset(&ops, inst.Arg(4), s.ref); err != nil {
		return 0, err
	}
	return c.b.AddOp(OpImageSampleDrefImplicitLod, c.f32(), append([]uint32{s.simg, s.coords, dref}, ops.words()...)...), nil
}

func emitImageSampleDrefExplicitLod(c *EmitContext, inst *ir.Inst) (uint32, error) {
	s, err := c.setupSample(inst)
	if err != nil {
		return 0, err
	}
	dref, err := c.dref(inst, s, 2)
	if err != nil {
		return 0, err
	}
	lod, err := c.value(inst.Arg(3))
	if err != nil {
		return 0, err
	}
	var ops imageOperands
	ops.add(ImageOperandsLod, lod)
	if err := c.offset(&ops, inst.Arg(4), s.ref); err != nil {
		return 0, err
	}
	return c.b.AddOp(OpImageSampleDrefExplicitLod, c.f32(), append([]uint32{s.simg, s.coords, dref}, ops.words()...)...), nil
}

// gather emits a gather with up to two offset operands. With two, each
// operand packs two (x, y) pairs and the four taps take one offset each:
// ConstOffsets when all fold, otherwise four gathers keeping lane w, the
// texel at the tap's own offset.
func (c *EmitContext) gather(inst *ir.Inst, op OpCode) (uint32, error) {
	s, err := c.setupSample(inst)
	if err != nil {
		return 0, err
	}
	if s.ref.res.Dim != ir.Dim2D && s.ref.res.Dim != ir.DimCube {
		return 0, contractf("gather from %s image", s.ref.res.Dim)
	}
	// the component or the depth reference
	var extra uint32
	if op == OpImageDrefGather {
		if extra, err = c.dref(inst, s, 4); err != nil {
			return 0, err
		}
	} else {
		extra = c.constU32(ir.TextureInstInfo(inst.Flags).GatherComponent())
	}
	texel := c.texelType(s.ref)
	off, off2 := inst.Arg(2), inst.Arg(3)
	if off2.IsEmpty() {
		var ops imageOperands
		if err := c.offset(&ops, off, s.ref); err != nil {
			return 0, err
		}
		v := c.b.AddOp(op, texel, append([]uint32{s.simg, s.coords, extra}, ops.words()...)...)
		return c.texelOut(s.ref, v), nil
	}
	if s.ref.res.Dim != ir.Dim2D {
		return 0, contractf("texel offsets on %s image", s.ref.res.Dim)
	}
	if off.Type() != ir.U32x4 || off2.Type() != ir.U32x4 {
		return 0, contractf("gather offsets of type %s and %s", off.Type(), off2.Type())
	}
	c.b.AddCapability(CapabilityImageGatherExtended)
	a, aok := constOffset(off)
	b, bok := constOffset(off2)
	if aok && bok {
		pairs := append(a, b...)
		ivec2 := c.cache.Vector(c.s32(), 2)
		elems := make([]uint32, 4)
		for i := range elems {
			elems[i] = c.signedConst(pairs[2*i : 2*i+2])
		}
		arr := c.cache.Composite(c.cache.Array(ivec2, 4, 0), elems...)
		var ops imageOperands
		ops.add(ImageOperandsConstOffsets, arr)
		v := c.b.AddOp(op, texel, append([]uint32{s.simg, s.coords, extra}, ops.words()...)...)
		return c.texelOut(s.ref, v), nil
	}
	av, err := c.value(off)
	if err != nil {
		return 0, err
	}
	bv, err := c.value(off2)
	if err != nil {
		return 0, err
	}
	u32 := c.u32()
	lanes := append(c.lanes(av, ir.U32x4), c.lanes(bv, ir.U32x4)...)
	scalar := c.texelScalar(s.ref.res.Format)
	taps := make([]uint32, 4)
	for i := range taps {
		pair := c.b.AddCompositeConstruct(c.cache.Vector(u32, 2), lanes[2*i], lanes[2*i+1])
		var ops imageOperands
		ops.add(ImageOperandsOffset, pair)
		g := c.b.AddOp(op, texel, append([]uint32{s.simg, s.coords, extra}, ops.words()...)...)
		taps[i] = c.b.AddCompositeExtract(scalar, g, 3)
	}
	v := c.b.AddCompositeConstruct(texel, taps...)
	return c.texelOut(s.ref, v), nil
}

func emitImageGather(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.gather(inst, OpImageGather)
}

func emitImageGatherDref(c *EmitContext, inst *ir.Inst) (uint32, error) {
	return c.gather(inst, OpImageDrefGather)
}

func emitImageFetch(c *EmitContext, inst *ir.Inst) (uint32, error) {
	ref, err := c.loadImage(inst)
	if err != nil {
		return 0, err
	}
	if ref.res.Storage {
		return 0, contractf("fetch from storage image")
	}
	if ref.res.Dim == ir.DimCube {
		return 0, contractf("fetch from cube image")
	}
	coords, err := c.coords(inst, ref, false)
	if err != nil {
		return 0, err
	}
	var ops imageOperands
	if !ref.res.Multisampled && ref.res.Dim != ir.DimBuffer {
		lod := c.constU32(0)
		if v := inst.Arg(3); !v.IsEmpty() {
			if lod, err = c.value(v); err != nil {
				return 0, err
			}
		}
		ops.add(ImageOperandsLod, lod)
	}
	if err := c.offset(&ops, inst.Arg(2), ref); err != nil {
		return 0, err
	}
	if ref.res.Multisampled {
		ms := inst.Arg(4)
		if ms.IsEmpty() {
			return 0, contractf("fetch from multisampled image without sample index")
		}
		id, err := c.value(ms)
		if err != nil {
			return 0, err
		}
		ops.add(ImageOperandsSample, id)
	}
	v := c.b.AddOp(OpImageFetch, c.texelType(ref), append([]uint32{ref.image, coords}, ops.words()...)...)
	return c.texelOut(ref, v), nil
}

// sizeComponents is the number of components OpImageQuerySize returns.
func sizeComponents(res ir.ImageResource) uint32 {
	n := uint32(res.Dim.Coords())
	if res.Dim == ir.DimCube {
		n = 2
	}
	if res.Arrayed {
		n++
	}
	return n
}

// emitImageQueryDimensions returns (width, height, depth or layers, levels)
// with unused lanes zero.
func emitImageQueryDimensions(c *EmitContext, inst *ir.Inst) (uint32, error) {
	ref, err := c.loadImage(inst)
	if err != nil {
		return 0, err
	}
	c.b.AddCapability(CapabilityImageQuery)
	u32 := c.u32()
	n := sizeComponents(ref.res)
	sizeType := u32
	if n > 1 {
		sizeType = c.u32Vec(n)
	}
	mipmapped := !ref.res.Storage && !ref.res.Multisampled && ref.res.Dim != ir.DimBuffer
	var size uint32
	if mipmapped {
		lod, err := c.value(inst.Arg(1))
		if err != nil {
			return 0, err
		}
		size = c.b.AddOp(OpImageQuerySizeLod, sizeType, ref.image, lod)
	} else {
		size = c.b.AddOp(OpImageQuerySize, sizeType, ref.image)
	}
	out := make([]uint32, 4)
	if n == 1 {
		out[0] = size
	} else {
		for i := uint32(0); i < n; i++ {
			out[i] = c.b.AddCompositeExtract(u32, size, i)
		}
	}
	for i := n; i < 3; i++ {
		out[i] = c.constU32(0)
	}
	switch {
	case inst.Arg(2).U1():
		out[3] = c.constU32(0)
	case mipmapped:
		out[3] = c.b.AddOp(OpImageQueryLevels, u32, ref.image)
	default:
		out[3] = c.constU32(1)
	}
	return c.b.AddCompositeConstruct(c.u32Vec(4), out...), nil
}

func emitImageQueryLod(c *EmitContext, inst *ir.Inst) (uint32, error) {
	if err := c.implicitLod(); err != nil {
		return 0, err
	}
	s, err := c.setupSample(inst)
	if err != nil {
		return 0, err
	}
	c.b.AddCapability(CapabilityImageQuery)
	lod := c.b.AddOp(OpImageQueryLod, c.f32Vec(2), s.simg, s.coords)
	f32 := c.f32()
	zero := c.constF32(0)
	x := c.b.AddCompositeExtract(f32, lod, 0)
	y := c.b.AddCompositeExtract(f32, lod, 1)
	return c.b.AddCompositeConstruct(c.f32Vec(4), x, y, zero, zero), nil
}

// emitImageGradient samples with explicit derivatives packed as (dx, dy).
func emitImageGradient(c *EmitContext, inst *ir.Inst) (uint32, error) {
	s, err := c.setupSample(inst)
	if err != nil {
		return 0, err
	}
	var n uint32
	switch s.ref.res.Dim {
	case ir.Dim1D:
		n = 1
	case ir.Dim2D:
		n = 2
	default:
		return 0, unsupportedf("explicit gradients on %s image", s.ref.res.Dim)
	}
	d := inst.Arg(2)
	if d.Type() != ir.VectorOf(ir.F32, int(2*n)) {
		return 0, contractf("derivatives of type %s for %s image", d.Type(), s.ref.res.Dim)
	}
	dv, err := c.value(d)
	if err != nil {
		return 0, err
	}
	parts := c.lanes(dv, d.Type())
	var dx, dy uint32
	if n == 1 {
		dx, dy = parts[0], parts[1]
	} else {
		dx = c.b.AddCompositeConstruct(c.f32Vec(2), parts[0], parts[1])
		dy = c.b.AddCompositeConstruct(c.f32Vec(2), parts[2], parts[3])
	}
	var ops imageOperands
	ops.add(ImageOperandsGrad, dx, dy)
	if err := c.offset(&ops, inst.Arg(3), s.ref); err != nil {
		return 0, err
	}
	if ir.TextureInstInfo(inst.Flags).HasLodClamp() {
		clamp, err := c.value(inst.Arg(4))
		if err != nil {
			return 0, err
		}
		c.b.AddCapability(CapabilityMinLod)
		ops.add(ImageOperandsMinLod, clamp)
	}
	v := c.b.AddOp(OpImageSampleExplicitLod, c.texelType(s.ref), append([]uint32{s.simg, s.coords}, ops.words()...)...)
	return c.texelOut(s.ref, v), nil
}

func (c *EmitContext) storageImage(inst *ir.Inst) (imageRef, uint32, error) {
	ref, err := c.loadImage(inst)
	if err != nil {
		return imageRef{}, 0, err
	}
	if !ref.res.Storage {
		return imageRef{}, 0, contractf("storage access to sampled image")
	}
	if ref.res.Multisampled {
		return imageRef{}, 0, unsupportedf("storage access to multisampled image")
	}
	coords, err := c.coords(inst, ref, false)
	if err != nil {
		return imageRef{}, 0, err
	}
	return ref, coords, nil
}

func emitImageRead(c *EmitContext, inst *ir.Inst) (uint32, error) {
	ref, coords, err := c.storageImage(inst)
	if err != nil {
		return 0, err
	}
	c.b.AddCapability(CapabilityStorageImageReadWithoutFormat)
	v := c.b.AddOp(OpImageRead, c.texelType(ref), ref.image, coords)
	return c.texelOut(ref, v), nil
}

func emitImageWrite(c *EmitContext, inst *ir.Inst) (uint32, error) {
	ref, coords, err := c.storageImage(inst)
	if err != nil {
		return 0, err
	}
	color, err := c.value(inst.Arg(2))
	if err != nil {
		return 0, err
	}
	if ref.res.Format != ir.FormatFloat {
		color = c.b.AddUnaryOp(OpBitcast, c.texelType(ref), color)
	}
	c.b.AddCapability(CapabilityStorageImageWriteWithoutFormat)
	c.b.AddInst(OpImageWrite, ref.image, coords, color)
	return 0, nil
}
