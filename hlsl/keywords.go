// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"strconv"
	"strings"
)

// Names used by generated code. Effect identifiers may not collide with them.
const (
	// EntryPoint is the name of the generated pixel shader entry point.
	EntryPoint = "__M"

	constantBufferName = "__CB1"
	dynamicBufferName  = "__CB2"
)

// reservedKeywords contains the FXC keywords and the resource and state
// object types an effect identifier must not shadow.
var reservedKeywords = func() map[string]struct{} {
	const words = `
		AppendStructuredBuffer asm asm_fragment BlendState bool break Buffer
		ByteAddressBuffer case cbuffer centroid class column_major compile
		compile_fragment CompileShader const continue ComputeShader
		ConsumeStructuredBuffer default DepthStencilState DepthStencilView
		discard do double DomainShader dword else export extern false float for
		fxgroup GeometryShader groupshared half Hullshader HullShader if in
		inline inout InputPatch int interface line lineadj linear LineStream
		matrix min16float min10float min16int min12int min16uint namespace
		nointerpolation noperspective NULL out OutputPatch packoffset pass
		pixelfragment PixelShader point PointStream precise RasterizerState
		RenderTargetView return register row_major RWBuffer RWByteAddressBuffer
		RWStructuredBuffer RWTexture1D RWTexture1DArray RWTexture2D
		RWTexture2DArray RWTexture3D sample sampler SamplerState
		SamplerComparisonState shared snorm stateblock stateblock_state static
		string struct switch StructuredBuffer tbuffer technique technique10
		technique11 texture Texture1D Texture1DArray Texture2D Texture2DArray
		Texture2DMS Texture2DMSArray Texture3D TextureCube TextureCubeArray
		true typedef triangle triangleadj TriangleStream uint uniform unorm
		unsigned vector vertexfragment VertexShader void volatile while`

	result := make(map[string]struct{})
	for _, w := range strings.Fields(words) {
		result[w] = struct{}{}
	}

	// Scalar, vector and matrix shorthands such as float4 or int2x3.
	for _, base := range []string{"bool", "int", "uint", "dword", "half", "float", "double", "min16float", "min10float", "min16int", "min12int", "min16uint"} {
		for r := 1; r <= 4; r++ {
			result[base+strconv.Itoa(r)] = struct{}{}
			for c := 1; c <= 4; c++ {
				result[base+strconv.Itoa(r)+"x"+strconv.Itoa(c)] = struct{}{}
			}
		}
	}
	return result
}()

// IsReserved reports whether name is an HLSL keyword or built-in type name.
func IsReserved(name string) bool {
	_, ok := reservedKeywords[name]
	return ok
}
