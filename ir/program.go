package ir

import "fmt"

// Stage is the pipeline stage of a program.
type Stage uint8

const (
	StageVertex Stage = iota
	StageFragment
	StageCompute
	StageGeometry
)

var stageNames = [...]string{"vertex", "fragment", "compute", "geometry"}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// ParseStage is the inverse of String.
func ParseStage(s string) (Stage, bool) {
	for i, n := range stageNames {
		if n == s {
			return Stage(i), true
		}
	}
	return 0, false
}

// Program is one shader function body together with the resources it uses.
// The backend treats it as read-only.
type Program struct {
	Stage         Stage
	WorkgroupSize [3]uint32
	Blocks        []*Block
	Info          Info
}

// Entry returns the entry block.
func (p *Program) Entry() *Block {
	if len(p.Blocks) == 0 {
		return nil
	}
	return p.Blocks[0]
}

// NumInsts counts instructions over all blocks.
func (p *Program) NumInsts() int {
	n := 0
	for _, b := range p.Blocks {
		n += len(b.Insts)
	}
	return n
}

// Info describes the resources a program references. Handles used by
// instructions index these tables.
type Info struct {
	Buffers  []BufferResource
	Images   []ImageResource
	Samplers []SamplerResource

	// SharedMemorySize is the group shared memory size in bytes.
	SharedMemorySize uint32

	// UserData holds driver seeded values of the user data registers. When nil
	// the registers are read from push constants at run time.
	UserData []uint32

	// OutputVertices is the geometry stage vertex count.
	OutputVertices uint32
}

// BufferResource is a buffer binding.
type BufferResource struct {
	Binding uint32
	Storage bool
	Name    string
}

// ImageDim is the dimensionality of an image resource.
type ImageDim uint8

const (
	Dim1D ImageDim = iota
	Dim2D
	Dim3D
	DimCube
	DimBuffer
)

var dimNames = [...]string{"1d", "2d", "3d", "cube", "buffer"}

func (d ImageDim) String() string {
	if int(d) < len(dimNames) {
		return dimNames[d]
	}
	return fmt.Sprintf("ImageDim(%d)", uint8(d))
}

// ParseImageDim is the inverse of String.
func ParseImageDim(s string) (ImageDim, bool) {
	for i, n := range dimNames {
		if n == s {
			return ImageDim(i), true
		}
	}
	return 0, false
}

// Coords returns the number of coordinate components addressing a texel,
// excluding the array layer.
func (d ImageDim) Coords() int {
	switch d {
	case Dim1D, DimBuffer:
		return 1
	case Dim2D:
		return 2
	}
	return 3
}

// NumberFormat is the numeric class of texels.
type NumberFormat uint8

const (
	FormatFloat NumberFormat = iota
	FormatSint
	FormatUint
)

// ImageResource is an image binding. Count > 1 declares an array of images;
// Runtime declares a runtime sized array.
type ImageResource struct {
	Binding      uint32
	Dim          ImageDim
	Arrayed      bool
	Multisampled bool
	Depth        bool
	Storage      bool
	Format       NumberFormat
	Count        uint32
	Runtime      bool
	Name         string
}

// IsArray reports whether the binding holds more than one descriptor.
func (r ImageResource) IsArray() bool { return r.Runtime || r.Count > 1 }

// SamplerResource is a sampler binding.
type SamplerResource struct {
	Binding uint32
	Name    string
}
