// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

import (
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNew(t *testing.T) {
	d := New()
	if len(d.Textures) != 2 {
		t.Fatalf("New() has %d textures, want 2", len(d.Textures))
	}
	if d.TextureIndex(InputTexture) != InputIndex {
		t.Errorf("INPUT index = %d", d.TextureIndex(InputTexture))
	}
	if d.TextureIndex(OutputTexture) != OutputIndex {
		t.Errorf("OUTPUT index = %d", d.TextureIndex(OutputTexture))
	}
	if d.TextureIndex("missing") != -1 {
		t.Error("unknown texture should have index -1")
	}
	if d.HasOutSize() {
		t.Error("fresh descriptor should not have an output size")
	}
}

func TestDescClone(t *testing.T) {
	d := New()
	d.Passes = []Pass{{Inputs: []int{0}, Outputs: []int{2}, Binary: []byte{1, 2, 3}}}
	d.Constants = []Constant{{Name: "strength", Default: FloatValue(0.5)}}

	c := d.Clone()
	c.Passes[0].Binary[0] = 9
	c.Passes[0].Inputs[0] = 7
	c.Constants[0].Name = "other"
	c.Textures[0].Name = "renamed"

	if d.Passes[0].Binary[0] != 1 || d.Passes[0].Inputs[0] != 0 {
		t.Error("Clone shares pass slices with the original")
	}
	if d.Constants[0].Name != "strength" || d.Textures[0].Name != InputTexture {
		t.Error("Clone shares resource slices with the original")
	}

	var nilDesc *Desc
	if nilDesc.Clone() != nil {
		t.Error("Clone of nil should be nil")
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		token string
		want  Format
		ok    bool
	}{
		{"R8G8B8A8_UNORM", FormatR8G8B8A8Unorm, true},
		{"R16G16B16A16_FLOAT", FormatR16G16B16A16Float, true},
		{"B5G6R5_UNORM", FormatB5G6R5Unorm, true},
		{"UNKNOWN", FormatUnknown, false},
		{"r8g8b8a8_unorm", FormatUnknown, false},
		{"RGBA8", FormatUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := ParseFormat(tt.token)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ParseFormat(%q) = %v, %v; want %v, %v", tt.token, got, ok, tt.want, tt.ok)
			}
			if ok && got.String() != tt.token {
				t.Errorf("String() = %q, want %q", got.String(), tt.token)
			}
		})
	}
}

func TestGPUMapping(t *testing.T) {
	if got := FormatR8G8B8A8Unorm.GPUFormat(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("R8G8B8A8_UNORM maps to %v", got)
	}
	if got := FormatB5G6R5Unorm.GPUFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("B5G6R5_UNORM should have no WebGPU format, got %v", got)
	}
	if got := FilterPoint.GPUFilter(); got != gputypes.FilterModeNearest {
		t.Errorf("POINT maps to %v", got)
	}
	if got := AddressWrap.GPUAddress(); got != gputypes.AddressModeRepeat {
		t.Errorf("WRAP maps to %v", got)
	}
	if got := AddressClamp.GPUAddress(); got != gputypes.AddressModeClampToEdge {
		t.Errorf("CLAMP maps to %v", got)
	}
}

func TestParseSamplerTokens(t *testing.T) {
	if f, ok := ParseFilter("POINT"); !ok || f != FilterPoint {
		t.Errorf("ParseFilter(POINT) = %v, %v", f, ok)
	}
	if _, ok := ParseFilter("NEAREST"); ok {
		t.Error("ParseFilter accepted NEAREST")
	}
	if a, ok := ParseAddress("WRAP"); !ok || a != AddressWrap {
		t.Errorf("ParseAddress(WRAP) = %v, %v", a, ok)
	}
	if _, ok := ParseAddress("MIRROR"); ok {
		t.Error("ParseAddress accepted MIRROR")
	}
}
