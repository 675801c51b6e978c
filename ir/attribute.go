package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute selects a hardware input or output slot.
type Attribute uint32

const (
	AttrRenderTarget0 Attribute = iota
	AttrRenderTarget1
	AttrRenderTarget2
	AttrRenderTarget3
	AttrRenderTarget4
	AttrRenderTarget5
	AttrRenderTarget6
	AttrRenderTarget7
	AttrDepth
	AttrNull
	AttrPosition0
	AttrPosition1
	AttrPosition2
	AttrPosition3
	AttrParam0
	AttrParam31 = AttrParam0 + 31

	AttrVertexID Attribute = iota + 30
	AttrInstanceID
	AttrPrimitiveID
	AttrFragCoord
	AttrIsFrontFace
	AttrSampleIndex
	AttrLocalInvocationID
	AttrWorkgroupID
	AttrGlobalInvocationID
	AttrLocalInvocationIndex
	AttrInvocationID

	NumAttributes
)

// NumRenderTargets is the number of color outputs of a fragment program.
const NumRenderTargets = 8

var attributeNames = map[Attribute]string{
	AttrDepth:                "depth",
	AttrNull:                 "null",
	AttrVertexID:             "vertex_id",
	AttrInstanceID:           "instance_id",
	AttrPrimitiveID:          "primitive_id",
	AttrFragCoord:            "frag_coord",
	AttrIsFrontFace:          "is_front_face",
	AttrSampleIndex:          "sample_index",
	AttrLocalInvocationID:    "local_invocation_id",
	AttrWorkgroupID:          "workgroup_id",
	AttrGlobalInvocationID:   "global_invocation_id",
	AttrLocalInvocationIndex: "local_invocation_index",
	AttrInvocationID:         "invocation_id",
}

// IsRenderTarget reports whether a is one of the color outputs.
func (a Attribute) IsRenderTarget() bool { return a <= AttrRenderTarget7 }

// IsPosition reports whether a is one of the position exports.
func (a Attribute) IsPosition() bool { return a >= AttrPosition0 && a <= AttrPosition3 }

// IsParam reports whether a is a user attribute.
func (a Attribute) IsParam() bool { return a >= AttrParam0 && a <= AttrParam31 }

// Index returns the slot number within the attribute's group.
func (a Attribute) Index() uint32 {
	switch {
	case a.IsRenderTarget():
		return uint32(a - AttrRenderTarget0)
	case a.IsPosition():
		return uint32(a - AttrPosition0)
	case a.IsParam():
		return uint32(a - AttrParam0)
	}
	return 0
}

func (a Attribute) String() string {
	switch {
	case a.IsRenderTarget():
		return fmt.Sprintf("render_target%d", a.Index())
	case a.IsPosition():
		return fmt.Sprintf("position%d", a.Index())
	case a.IsParam():
		return fmt.Sprintf("param%d", a.Index())
	}
	if n, ok := attributeNames[a]; ok {
		return n
	}
	return fmt.Sprintf("Attribute(%d)", uint32(a))
}

// ParseAttribute is the inverse of String.
func ParseAttribute(s string) (Attribute, bool) {
	for _, g := range []struct {
		prefix string
		base   Attribute
		count  uint64
	}{
		{"render_target", AttrRenderTarget0, NumRenderTargets},
		{"position", AttrPosition0, 4},
		{"param", AttrParam0, 32},
	} {
		if rest, ok := strings.CutPrefix(s, g.prefix); ok {
			n, err := strconv.ParseUint(rest, 10, 32)
			if err != nil || n >= g.count {
				return 0, false
			}
			return g.base + Attribute(n), true
		}
	}
	for a, n := range attributeNames {
		if n == s {
			return a, true
		}
	}
	return 0, false
}

// ScalarReg indexes the emulated scalar register file.
type ScalarReg uint32

// VectorReg indexes the emulated vector register file.
type VectorReg uint32

const (
	NumScalarRegs   = 104
	NumVectorRegs   = 256
	NumUserDataRegs = 16
)

func (r ScalarReg) String() string { return "s" + strconv.FormatUint(uint64(r), 10) }

func (r VectorReg) String() string { return "v" + strconv.FormatUint(uint64(r), 10) }
