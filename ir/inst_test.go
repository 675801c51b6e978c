package ir

import "testing"

func TestTextureInfoPack(t *testing.T) {
	tests := []struct {
		name string
		info TextureInfo
		want uint32
	}{
		{"zero", TextureInfo{}, 0},
		{"sampler", TextureInfo{Sampler: 3}, 0x3},
		{"bias", TextureInfo{HasBias: true}, 0x100},
		{"lod clamp", TextureInfo{HasLodClamp: true}, 0x200},
		{"gather component", TextureInfo{GatherComponent: 2}, 0x800},
		{"non-uniform", TextureInfo{NonUniform: true}, 0x1000},
		{"array slot", TextureInfo{ArraySlot: 5}, 0x50000},
		{"all", TextureInfo{Sampler: 1, HasBias: true, HasLodClamp: true, GatherComponent: 3, NonUniform: true, ArraySlot: 0xff}, 0xff1f01},
		{"truncated", TextureInfo{Sampler: 0x1ff, GatherComponent: 7, ArraySlot: 0x100}, 0xcff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.info.Pack()
			if got != tt.want {
				t.Fatalf("Pack() = %#x, want %#x", got, tt.want)
			}
			f := TextureInstInfo(got)
			if f.SamplerSlot() != tt.info.Sampler&0xff || f.HasBias() != tt.info.HasBias ||
				f.HasLodClamp() != tt.info.HasLodClamp || f.GatherComponent() != tt.info.GatherComponent&3 ||
				f.NonUniform() != tt.info.NonUniform || f.ArraySlot() != tt.info.ArraySlot&0xff {
				t.Errorf("accessors of %#x disagree with %+v", got, tt.info)
			}
		})
	}
}
