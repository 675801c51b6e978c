package spirv

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jurealeksic/shadPS4/ir"
)

// imageProgram wraps instructions in a single block program with a buffer
// at binding 0, the given images and a sampler at binding 8.
func imageProgram(stage, images string, insts ...string) string {
	var sb strings.Builder
	sb.WriteString("stage: " + stage + "\n")
	sb.WriteString("info:\n")
	sb.WriteString("  buffers: [{binding: 0, storage: true}]\n")
	sb.WriteString("  images: " + images + "\n")
	sb.WriteString("  samplers: [{binding: 8}]\n")
	sb.WriteString("blocks:\n  - name: entry\n    insts:\n")
	for _, in := range insts {
		sb.WriteString("      - \"" + in + "\"\n")
	}
	sb.WriteString("    term: return\n")
	return sb.String()
}

const texture2D = "[{binding: 1, dim: 2d}]"

// imageOp returns the operands of the first op in a compiled program.
func imageOp(t *testing.T, data []byte, op OpCode) []uint32 {
	t.Helper()
	in, ok := findOpcode(decodeSPIRVInstructions(data), op)
	if !ok {
		t.Fatalf("no %s in module", op)
	}
	return in.words
}

func TestImageFetchOperands(t *testing.T) {
	t.Run("constant offset", func(t *testing.T) {
		data := compileText(t, imageProgram("compute", texture2D,
			"%p = CompositeConstructU32x2 u32:1 u32:2",
			"%o = CompositeConstructU32x2 u32:1 u32:0",
			"%t = ImageFetch u32:0 %p %o u32:3 -",
		))
		w := imageOp(t, data, OpImageFetch)
		if w[4] != ImageOperandsLod|ImageOperandsConstOffset {
			t.Errorf("image operands mask = %#x, want Lod|ConstOffset", w[4])
		}
		assertNoCapability(t, extractCapabilities(data), CapabilityImageGatherExtended)
	})
	t.Run("runtime offset", func(t *testing.T) {
		src := imageProgram("compute", texture2D,
			"%x = LoadBufferU32 u32:0 u32:0",
			"%p = CompositeConstructU32x2 u32:1 u32:2",
			"%o = CompositeConstructU32x2 %x u32:0",
			"%t = ImageFetch u32:0 %p %o - -",
		)
		data := compileText(t, src)
		w := imageOp(t, data, OpImageFetch)
		if w[4] != ImageOperandsLod|ImageOperandsOffset {
			t.Errorf("image operands mask = %#x, want Lod|Offset", w[4])
		}
		assertCapability(t, extractCapabilities(data), CapabilityImageGatherExtended)

		opts := DefaultOptions()
		opts.Profile.ImageGatherExtended = false
		if ee := compileError(t, parseProgram(t, src), opts); !errors.Is(ee, ErrUnsupported) {
			t.Errorf("error = %v, want ErrUnsupported", ee)
		}
	})
	t.Run("cube", func(t *testing.T) {
		ee := compileError(t, parseProgram(t, imageProgram("compute", "[{binding: 1, dim: cube}]",
			"%p = CompositeConstructU32x3 u32:1 u32:2 u32:0",
			"%t = ImageFetch u32:0 %p - - -",
		)), DefaultOptions())
		if !errors.Is(ee, ErrContractViolation) {
			t.Errorf("error = %v, want a contract violation", ee)
		}
	})
	t.Run("wrong coordinate count", func(t *testing.T) {
		ee := compileError(t, parseProgram(t, imageProgram("compute", texture2D,
			"%p = CompositeConstructU32x3 u32:1 u32:2 u32:0",
			"%t = ImageFetch u32:0 %p - - -",
		)), DefaultOptions())
		if !errors.Is(ee, ErrContractViolation) || !strings.Contains(ee.Message, "coordinates") {
			t.Errorf("error = %v, want a coordinate contract violation", ee)
		}
	})
}

func TestImageGatherConstOffsets(t *testing.T) {
	data := compileText(t, imageProgram("fragment", texture2D,
		"%uv = CompositeConstructF32x2 f32:0.5 f32:0.5",
		"%a = CompositeConstructU32x4 u32:0 u32:0 u32:1 u32:0",
		"%b = CompositeConstructU32x4 u32:0 u32:1 u32:1 u32:1",
		"%g = ImageGather u32:0 %uv %a %b",
	))
	w := imageOp(t, data, OpImageGather)
	if w[5] != ImageOperandsConstOffsets {
		t.Errorf("image operands mask = %#x, want ConstOffsets", w[5])
	}
	assertCapability(t, extractCapabilities(data), CapabilityImageGatherExtended)
	if n := countOpcode(decodeSPIRVInstructions(data), OpImageGather); n != 1 {
		t.Errorf("%d gathers, want 1", n)
	}
}

func TestImageGatherRuntimeOffsetsSplitTaps(t *testing.T) {
	data := compileText(t, imageProgram("fragment", texture2D,
		"%x = LoadBufferU32 u32:0 u32:0",
		"%uv = CompositeConstructF32x2 f32:0.5 f32:0.5",
		"%a = CompositeConstructU32x4 %x u32:0 u32:1 u32:0",
		"%b = CompositeConstructU32x4 u32:0 u32:1 u32:1 u32:1",
		"%g = ImageGather u32:0 %uv %a %b",
	))
	if n := countOpcode(decodeSPIRVInstructions(data), OpImageGather); n != 4 {
		t.Errorf("%d gathers, want one per tap", n)
	}
}

func TestImageSampling(t *testing.T) {
	sample := []string{
		"%uv = CompositeConstructF32x2 f32:0.5 f32:0.5",
		"%t = ImageSampleImplicitLod u32:0 %uv - -",
	}
	t.Run("fragment", func(t *testing.T) {
		data := compileText(t, imageProgram("fragment", texture2D, sample...))
		instrs := decodeSPIRVInstructions(data)
		if _, ok := findOpcode(instrs, OpSampledImage); !ok {
			t.Error("no OpSampledImage")
		}
		w := imageOp(t, data, OpImageSampleImplicitLod)
		if len(w) != 4 {
			t.Errorf("sample operands = %v, want no image operands", w)
		}
	})
	t.Run("implicit lod outside fragment", func(t *testing.T) {
		ee := compileError(t, parseProgram(t, imageProgram("compute", texture2D, sample...)), DefaultOptions())
		if !errors.Is(ee, ErrUnsupported) {
			t.Errorf("error = %v, want ErrUnsupported", ee)
		}
	})
	t.Run("storage image", func(t *testing.T) {
		ee := compileError(t, parseProgram(t, imageProgram("fragment", "[{binding: 1, dim: 2d, storage: true}]", sample...)), DefaultOptions())
		if !errors.Is(ee, ErrContractViolation) {
			t.Errorf("error = %v, want a contract violation", ee)
		}
	})
	t.Run("bias", func(t *testing.T) {
		data := compileText(t, imageProgram("fragment", texture2D,
			"%uv = CompositeConstructF32x2 f32:0.5 f32:0.5",
			fmt.Sprintf("%%t = ImageSampleImplicitLod u32:0 %%uv f32:1.5 - flags=%#x", ir.TextureInfo{HasBias: true}.Pack()),
		))
		w := imageOp(t, data, OpImageSampleImplicitLod)
		if len(w) < 5 || w[4] != ImageOperandsBias {
			t.Errorf("sample operands = %v, want Bias", w)
		}
	})
}

func TestImageQueryDimensions(t *testing.T) {
	data := compileText(t, imageProgram("compute", texture2D,
		"%d = ImageQueryDimensions u32:0 u32:0 u1:false",
	))
	instrs := decodeSPIRVInstructions(data)
	assertCapability(t, extractCapabilities(data), CapabilityImageQuery)
	for _, op := range []OpCode{OpImageQuerySizeLod, OpImageQueryLevels} {
		if _, ok := findOpcode(instrs, op); !ok {
			t.Errorf("no %s", op)
		}
	}
}

func TestStorageImageWrite(t *testing.T) {
	src := imageProgram("compute", "[{binding: 1, dim: 2d, storage: true, format: uint}]",
		"%p = CompositeConstructU32x2 u32:1 u32:1",
		"%col = CompositeConstructF32x4 f32:1 f32:2 f32:3 f32:4",
		"ImageWrite u32:0 %p %col",
	)
	data := compileText(t, src)
	instrs := decodeSPIRVInstructions(data)
	if _, ok := findOpcode(instrs, OpImageWrite); !ok {
		t.Fatal("no OpImageWrite")
	}
	if _, ok := findOpcode(instrs, OpBitcast); !ok {
		t.Error("integer texels written without a bitcast")
	}
	assertCapability(t, extractCapabilities(data), CapabilityStorageImageWriteWithoutFormat)

	opts := DefaultOptions()
	opts.Profile.StorageImageWithoutFormat = false
	if ee := compileError(t, parseProgram(t, src), opts); !errors.Is(ee, ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", ee)
	}
}

func TestNonUniformImageIndex(t *testing.T) {
	src := imageProgram("compute", "[{binding: 1, dim: 2d, count: 4}]",
		"%i = LoadBufferU32 u32:0 u32:0",
		"%p = CompositeConstructU32x2 u32:1 u32:1",
		fmt.Sprintf("%%t = ImageFetch %%i %%p - - - flags=%#x", ir.TextureInfo{NonUniform: true}.Pack()),
	)
	data := compileText(t, src)
	caps := extractCapabilities(data)
	assertCapability(t, caps, CapabilityShaderNonUniform)
	assertCapability(t, caps, CapabilitySampledImageArrayNonUniformIndexing)

	nonUniform := 0
	for _, in := range decodeSPIRVInstructions(data) {
		if in.opcode == OpDecorate && in.words[1] == uint32(DecorationNonUniform) {
			nonUniform++
		}
	}
	if nonUniform != 3 {
		t.Errorf("%d NonUniform decorations, want index, pointer and image", nonUniform)
	}

	opts := DefaultOptions()
	opts.Profile.NonUniformIndexing = false
	if ee := compileError(t, parseProgram(t, src), opts); !errors.Is(ee, ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", ee)
	}
}

func TestImageExplicitLodOperands(t *testing.T) {
	tests := []struct {
		name  string
		insts []string
		mask  uint32
		words int
	}{
		{"lod", []string{
			"%uv = CompositeConstructF32x2 f32:0.5 f32:0.5",
			"%t = ImageSampleExplicitLod u32:0 %uv f32:2 -",
		}, ImageOperandsLod, 6},
		{"lod and constant offset", []string{
			"%uv = CompositeConstructF32x2 f32:0.5 f32:0.5",
			"%o = CompositeConstructU32x2 u32:1 u32:0",
			"%t = ImageSampleExplicitLod u32:0 %uv f32:2 %o",
		}, ImageOperandsLod | ImageOperandsConstOffset, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// explicit lod needs no derivatives, so compute may sample
			w := imageOp(t, compileText(t, imageProgram("compute", texture2D, tt.insts...)), OpImageSampleExplicitLod)
			if len(w) != tt.words || w[4] != tt.mask {
				t.Errorf("sample operands = %v, want mask %#x in %d words", w, tt.mask, tt.words)
			}
		})
	}
}

const depth2D = "[{binding: 1, dim: 2d, depth: true}]"

func TestImageDrefOperands(t *testing.T) {
	uv := "%uv = CompositeConstructF32x2 f32:0.5 f32:0.5"
	t.Run("implicit", func(t *testing.T) {
		data := compileText(t, imageProgram("fragment", depth2D, uv,
			"%d = ImageSampleDrefImplicitLod u32:0 %uv f32:0.5 - -",
		))
		if w := imageOp(t, data, OpImageSampleDrefImplicitLod); len(w) != 5 {
			t.Errorf("dref operands = %v, want no image operands", w)
		}
	})
	t.Run("implicit with bias", func(t *testing.T) {
		data := compileText(t, imageProgram("fragment", depth2D, uv,
			fmt.Sprintf("%%d = ImageSampleDrefImplicitLod u32:0 %%uv f32:0.5 f32:1 - flags=%#x", ir.TextureInfo{HasBias: true}.Pack()),
		))
		w := imageOp(t, data, OpImageSampleDrefImplicitLod)
		if len(w) != 7 || w[5] != ImageOperandsBias {
			t.Errorf("dref operands = %v, want Bias after the reference", w)
		}
	})
	t.Run("explicit", func(t *testing.T) {
		data := compileText(t, imageProgram("compute", depth2D, uv,
			"%d = ImageSampleDrefExplicitLod u32:0 %uv f32:0.5 f32:0 -",
		))
		w := imageOp(t, data, OpImageSampleDrefExplicitLod)
		if len(w) != 7 || w[5] != ImageOperandsLod {
			t.Errorf("dref operands = %v, want Lod after the reference", w)
		}
	})
	t.Run("integer image", func(t *testing.T) {
		ee := compileError(t, parseProgram(t, imageProgram("compute", "[{binding: 1, dim: 2d, depth: true, format: uint}]", uv,
			"%d = ImageSampleDrefExplicitLod u32:0 %uv f32:0.5 f32:0 -",
		)), DefaultOptions())
		if !errors.Is(ee, ErrContractViolation) || ee.Op != ir.OpImageSampleDrefExplicitLod {
			t.Errorf("error = %v, want a contract violation", ee)
		}
	})
}

func TestImageGradientOperands(t *testing.T) {
	insts := []string{
		"%uv = CompositeConstructF32x2 f32:0.5 f32:0.5",
		"%dd = CompositeConstructF32x4 f32:1 f32:0 f32:0 f32:1",
	}
	t.Run("gradients", func(t *testing.T) {
		data := compileText(t, imageProgram("compute", texture2D, append(insts,
			"%g = ImageGradient u32:0 %uv %dd - -")...))
		w := imageOp(t, data, OpImageSampleExplicitLod)
		if len(w) != 7 || w[4] != ImageOperandsGrad {
			t.Errorf("sample operands = %v, want Grad with two vectors", w)
		}
		assertNoCapability(t, extractCapabilities(data), CapabilityMinLod)
	})
	t.Run("lod clamp", func(t *testing.T) {
		data := compileText(t, imageProgram("compute", texture2D, append(insts,
			fmt.Sprintf("%%g = ImageGradient u32:0 %%uv %%dd - f32:3 flags=%#x", ir.TextureInfo{HasLodClamp: true}.Pack()))...))
		w := imageOp(t, data, OpImageSampleExplicitLod)
		if len(w) != 8 || w[4] != ImageOperandsGrad|ImageOperandsMinLod {
			t.Errorf("sample operands = %v, want Grad|MinLod", w)
		}
		assertCapability(t, extractCapabilities(data), CapabilityMinLod)
	})
	t.Run("cube", func(t *testing.T) {
		ee := compileError(t, parseProgram(t, imageProgram("compute", "[{binding: 1, dim: cube}]",
			"%uv = CompositeConstructF32x3 f32:0.5 f32:0.5 f32:1",
			"%dd = CompositeConstructF32x4 f32:1 f32:0 f32:0 f32:1",
			"%g = ImageGradient u32:0 %uv %dd - -",
		)), DefaultOptions())
		if !errors.Is(ee, ErrUnsupported) {
			t.Errorf("error = %v, want ErrUnsupported", ee)
		}
	})
}

func TestImageQueryLod(t *testing.T) {
	insts := []string{
		"%uv = CompositeConstructF32x2 f32:0.5 f32:0.5",
		"%l = ImageQueryLod u32:0 %uv",
	}
	data := compileText(t, imageProgram("fragment", texture2D, insts...))
	if w := imageOp(t, data, OpImageQueryLod); len(w) != 4 {
		t.Errorf("query operands = %v, want sampled image and coordinates", w)
	}
	assertCapability(t, extractCapabilities(data), CapabilityImageQuery)

	ee := compileError(t, parseProgram(t, imageProgram("compute", texture2D, insts...)), DefaultOptions())
	if !errors.Is(ee, ErrUnsupported) || ee.Op != ir.OpImageQueryLod {
		t.Errorf("error = %v, want unsupported ImageQueryLod", ee)
	}
}

func TestStorageImageRead(t *testing.T) {
	insts := []string{
		"%p = CompositeConstructU32x2 u32:1 u32:1",
		"%v = ImageRead u32:0 %p",
	}
	src := imageProgram("compute", "[{binding: 1, dim: 2d, storage: true}]", insts...)
	data := compileText(t, src)
	if w := imageOp(t, data, OpImageRead); len(w) != 4 {
		t.Errorf("read operands = %v, want image and coordinates only", w)
	}
	assertCapability(t, extractCapabilities(data), CapabilityStorageImageReadWithoutFormat)

	opts := DefaultOptions()
	opts.Profile.StorageImageWithoutFormat = false
	if ee := compileError(t, parseProgram(t, src), opts); !errors.Is(ee, ErrUnsupported) {
		t.Errorf("error = %v, want ErrUnsupported", ee)
	}

	ee := compileError(t, parseProgram(t, imageProgram("compute", texture2D, insts...)), DefaultOptions())
	if !errors.Is(ee, ErrContractViolation) {
		t.Errorf("reading a sampled image: error = %v, want a contract violation", ee)
	}
}
