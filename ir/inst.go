package ir

import "strconv"

// Inst is an SSA instruction. Its position inside the owning block is fixed
// once the builder appends it.
type Inst struct {
	Op    Opcode
	Args  []Value
	Flags uint32

	// Name is optional. It is used by the text format and debug names.
	Name string

	id    int
	block *Block
	typ   Type
}

// Block returns the owning block.
func (i *Inst) Block() *Block { return i.block }

// Type returns the result type. Phi carries its own type, Identity takes the
// type of its argument.
func (i *Inst) Type() Type {
	switch i.Op {
	case OpPhi:
		return i.typ
	case OpIdentity:
		if len(i.Args) == 1 {
			return i.Args[0].Type()
		}
	}
	return i.Op.ResultType()
}

// Arg returns argument n.
func (i *Inst) Arg(n int) Value { return i.Args[n] }

// Label names the instruction in the text format.
func (i *Inst) Label() string {
	if i.Name != "" {
		return i.Name
	}
	return strconv.Itoa(i.id)
}

// Value returns a reference to the instruction's result.
func (i *Inst) Value() Value { return Ref(i) }

// PhiIncoming returns the phi operand for predecessor n of the block.
func (i *Inst) PhiIncoming(n int) (Value, *Block) {
	return i.Args[n], i.block.Preds[n]
}

// BufferInstInfo is the Flags word of buffer loads and stores.
type BufferInstInfo uint32

// Offset is an immediate byte offset added to the address operand.
func (f BufferInstInfo) Offset() uint32 { return uint32(f) & 0xffff }

// TextureInstInfo is the Flags word of image instructions.
//
//	bits 0-7   sampler slot
//	bit  8     bias present in the bias/lod-clamp operand
//	bit  9     lod clamp present in the bias/lod-clamp operand
//	bits 10-11 gather component
//	bit  12    resource index is not dynamically uniform
//	bits 16-23 image slot of the resource array for runtime indices
type TextureInstInfo uint32

const (
	texHasBias    = 1 << 8
	texHasLodClmp = 1 << 9
	texNonUniform = 1 << 12
)

func (f TextureInstInfo) SamplerSlot() uint32 { return uint32(f) & 0xff }
func (f TextureInstInfo) HasBias() bool { return f&texHasBias != 0 }
func (f TextureInstInfo) HasLodClamp() bool { return f&texHasLodClmp != 0 }
func (f TextureInstInfo) GatherComponent() uint32 { return uint32(f>>10) & 3 }
func (f TextureInstInfo) NonUniform() bool { return f&texNonUniform != 0 }
func (f TextureInstInfo) ArraySlot() uint32 { return uint32(f>>16) & 0xff }

// TextureInfo builds a TextureInstInfo word.
type TextureInfo struct {
	Sampler         uint32
	HasBias         bool
	HasLodClamp     bool
	GatherComponent uint32
	NonUniform      bool
	ArraySlot       uint32
}

// Pack encodes the fields.
func (t TextureInfo) Pack() uint32 {
	f := t.Sampler&0xff | (t.GatherComponent&3)<<10 | (t.ArraySlot&0xff)<<16
	if t.HasBias {
		f |= texHasBias
	}
	if t.HasLodClamp {
		f |= texHasLodClmp
	}
	if t.NonUniform {
		f |= texNonUniform
	}
	return f
}

// FpControl is the Flags word of floating point instructions.
type FpControl uint32

// FpNoContraction forbids fusing the operation with its neighbours.
const FpNoContraction FpControl = 1

func (f FpControl) NoContraction() bool { return f&FpNoContraction != 0 }
