// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package hlsl generates the HLSL source of scaler effect passes.
//
// Every pass is compiled as a standalone pixel shader. Its source is the
// pass's texture bindings followed by a preamble shared by all passes and a
// generated entry point:
//
//	Texture2D INPUT : register(t0);
//	cbuffer __CB1 : register(b0) {
//		float sharpness;
//	};
//	SamplerState sam : register(s0);
//	// COMMON blocks
//	// pass body
//	float4 __M(float4 p : SV_POSITION, float2 pos : TEXCOORD) : SV_TARGET {
//		return Pass1(pos);
//	}
//
// # Register Binding
//
//	cbuffer : register(b0)  // literal and VALUE constants
//	cbuffer : register(b1)  // DYNAMIC constants
//	Texture : register(t#)  // BIND list position
//	Sampler : register(s#)  // SAMPLER declaration order
//
// # Shader Model Support
//
// Sources target pixel shader profiles from SM 5.0 (FXC, DXBC) to SM 6.7
// (DXC, DXIL). The default profile is ps_5_0.
package hlsl
