// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/scalerfx/effect"
)

// Assemble generates the pixel shader source of every pass of d.
//
// commons holds the code of the COMMON blocks in file order. bodies holds the
// code of each pass, parallel to d.Passes, whose Inputs and Outputs must
// already be resolved. Each generated source declares the pass's input
// textures, the shared preamble, the common code, the pass body and an
// entry point named [EntryPoint] that calls Pass<n>.
func Assemble(d *effect.Desc, commons, bodies []string) ([]string, error) {
	if len(bodies) != len(d.Passes) {
		return nil, effect.NewError(effect.KindStructural, "have %d pass bodies for %d passes", len(bodies), len(d.Passes))
	}

	preamble := Preamble(d, commons)
	sources := make([]string, len(d.Passes))
	last := len(d.Passes) - 1

	for i, p := range d.Passes {
		if i == last && len(p.Outputs) > 0 {
			return nil, effect.NewError(effect.KindStructural, "last pass %d cannot write textures: it renders to OUTPUT", i+1)
		}
		if len(p.Outputs) > effect.MaxOutputs {
			return nil, effect.NewError(effect.KindConstraintViolation, "pass %d writes %d textures, at most %d allowed", i+1, len(p.Outputs), effect.MaxOutputs)
		}

		w := &Writer{}
		for slot, idx := range p.Inputs {
			if idx < 0 || idx >= len(d.Textures) {
				return nil, effect.NewError(effect.KindConstraintViolation, "pass %d binds unknown texture index %d", i+1, idx)
			}
			w.writeLine("Texture2D %s : register(t%d);", d.Textures[idx].Name, slot)
		}
		w.writeRaw(preamble)
		w.writeRaw(bodies[i])
		writeEntryPoint(w, i+1, len(p.Outputs))
		sources[i] = w.String()
	}
	return sources, nil
}

// Preamble returns the code shared by every pass: constant buffers, sampler
// declarations and the COMMON blocks.
func Preamble(d *effect.Desc, commons []string) string {
	w := &Writer{}

	if len(d.Constants) > 0 || len(d.ValueConstants) > 0 {
		w.writeLine("cbuffer %s : register(b0) {", constantBufferName)
		w.indent++
		for _, c := range d.Constants {
			w.writeLine("%s %s;", c.Type, c.Name)
		}
		for _, c := range d.ValueConstants {
			w.writeLine("%s %s;", c.Type, c.Name)
		}
		w.indent--
		w.writeLine("};")
	}

	if len(d.DynamicValueConstants) > 0 {
		w.writeLine("cbuffer %s : register(b1) {", dynamicBufferName)
		w.indent++
		for _, c := range d.DynamicValueConstants {
			w.writeLine("%s %s;", c.Type, c.Name)
		}
		w.indent--
		w.writeLine("};")
	}

	for i, s := range d.Samplers {
		w.writeLine("SamplerState %s : register(s%d);", s.Name, i)
	}

	for _, code := range commons {
		w.writeRaw(code)
	}
	return w.String()
}

// writeEntryPoint writes the generated entry point of pass n. A pass writing
// at most one target returns float4; otherwise each target is an out
// parameter forwarded positionally to Pass<n>.
func writeEntryPoint(w *Writer, n, outputs int) {
	if outputs <= 1 {
		w.writeLine("float4 %s(float4 p : SV_POSITION, float2 pos : TEXCOORD) : SV_TARGET {", EntryPoint)
		w.indent++
		w.writeLine("return Pass%d(pos);", n)
		w.indent--
		w.writeLine("}")
		return
	}

	params := make([]string, outputs)
	args := make([]string, outputs)
	for i := range outputs {
		params[i] = "out float4 t" + strconv.Itoa(i) + " : SV_TARGET" + strconv.Itoa(i)
		args[i] = "t" + strconv.Itoa(i)
	}
	w.writeLine("void %s(float4 p : SV_POSITION, float2 pos : TEXCOORD, %s) {", EntryPoint, strings.Join(params, ", "))
	w.indent++
	w.writeLine("Pass%d(pos, %s);", n, strings.Join(args, ", "))
	w.indent--
	w.writeLine("}")
}
