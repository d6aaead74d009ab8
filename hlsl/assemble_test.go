// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strings"
	"testing"

	"github.com/gogpu/scalerfx/effect"
)

func testDesc() *effect.Desc {
	d := effect.New()
	d.Textures = append(d.Textures,
		effect.Texture{Name: "tex1", Format: effect.FormatR8G8B8A8Unorm},
		effect.Texture{Name: "tex2", Format: effect.FormatR16G16B16A16Float},
	)
	d.Constants = []effect.Constant{{Name: "sharpness", Type: effect.Float}}
	d.ValueConstants = []effect.ValueConstant{{Name: "inputWidth", Type: effect.Int, Expr: "INPUT_WIDTH"}}
	d.DynamicValueConstants = []effect.ValueConstant{{Name: "frame", Type: effect.Int, Expr: "FRAME_COUNT"}}
	d.Samplers = []effect.Sampler{{Name: "sam"}, {Name: "pointSam", Filter: effect.FilterPoint}}
	d.Passes = []effect.Pass{
		{Inputs: []int{0}, Outputs: []int{2, 3}},
		{Inputs: []int{2, 3}},
	}
	return d
}

func TestPreamble(t *testing.T) {
	got := Preamble(testDesc(), []string{"float3 helper() { return 1; }", "#define K 2\n"})

	want := []string{
		"cbuffer __CB1 : register(b0) {\n\tfloat sharpness;\n\tint inputWidth;\n};\n",
		"cbuffer __CB2 : register(b1) {\n\tint frame;\n};\n",
		"SamplerState sam : register(s0);\n",
		"SamplerState pointSam : register(s1);\n",
		"float3 helper() { return 1; }\n#define K 2\n",
	}
	last := -1
	for _, w := range want {
		i := strings.Index(got, w)
		if i < 0 {
			t.Fatalf("preamble missing %q:\n%s", w, got)
		}
		if i < last {
			t.Errorf("%q out of order:\n%s", w, got)
		}
		last = i
	}
}

func TestPreambleWithoutConstants(t *testing.T) {
	d := effect.New()
	got := Preamble(d, nil)
	if strings.Contains(got, "cbuffer") {
		t.Errorf("empty effect should not declare constant buffers:\n%s", got)
	}
}

func TestAssemble(t *testing.T) {
	d := testDesc()
	sources, err := Assemble(d, nil, []string{"void Pass1(float2 pos, out float4 a, out float4 b) {}", "float4 Pass2(float2 pos) { return 0; }"})
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("got %d sources, want 2", len(sources))
	}

	first := sources[0]
	if !strings.HasPrefix(first, "Texture2D INPUT : register(t0);\n") {
		t.Errorf("pass 1 should start with its bindings:\n%s", first)
	}
	if !strings.Contains(first, "void __M(float4 p : SV_POSITION, float2 pos : TEXCOORD, out float4 t0 : SV_TARGET0, out float4 t1 : SV_TARGET1) {") {
		t.Errorf("pass 1 multi-target entry point missing:\n%s", first)
	}
	if !strings.Contains(first, "\tPass1(pos, t0, t1);\n") {
		t.Errorf("pass 1 call missing:\n%s", first)
	}

	second := sources[1]
	if !strings.HasPrefix(second, "Texture2D tex1 : register(t0);\nTexture2D tex2 : register(t1);\n") {
		t.Errorf("pass 2 bindings wrong:\n%s", second)
	}
	if !strings.Contains(second, "float4 __M(float4 p : SV_POSITION, float2 pos : TEXCOORD) : SV_TARGET {\n\treturn Pass2(pos);\n}\n") {
		t.Errorf("pass 2 entry point missing:\n%s", second)
	}
	if strings.Index(second, "float4 Pass2") > strings.Index(second, "__M(") {
		t.Error("pass body must precede the entry point")
	}
}

func TestAssembleRejectsFinalOutputs(t *testing.T) {
	d := testDesc()
	d.Passes[1].Outputs = []int{2}

	_, err := Assemble(d, nil, []string{"a", "b"})
	if !effect.IsKind(err, effect.KindStructural) {
		t.Fatalf("Assemble() error = %v, want StructuralError", err)
	}
}

func TestAssembleBodyCount(t *testing.T) {
	if _, err := Assemble(testDesc(), nil, []string{"only one"}); err == nil {
		t.Fatal("Assemble() should reject mismatched body count")
	}
}
