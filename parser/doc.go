// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package parser reads scaler effect files.
//
// An effect file is HLSL code annotated with directive lines. It starts with
// a magic line followed by header directives, then a sequence of blocks, each
// opened by a directive naming its kind:
//
//	//!MPC SCALER
//	//!VERSION 1
//
//	//!TEXTURE
//	//!FORMAT R8G8B8A8_UNORM
//	Texture2D tex1;
//
//	//!SAMPLER
//	//!FILTER LINEAR
//	SamplerState sam;
//
//	//!PASS 1
//	//!BIND INPUT
//	//!SAVE tex1
//	float4 Pass1(float2 pos) { return INPUT.Sample(sam, pos); }
//
//	//!PASS 2
//	//!BIND tex1
//	float4 Pass2(float2 pos) { return tex1.Sample(sam, pos); }
//
// # Components
//
//   - Cursor: position-preserving scanning helpers over a source buffer
//   - StripComments, CheckMagic: pre-passes over the whole file
//   - SplitBlocks: partitions the file into typed blocks
//   - Resolve*: one resolver per block kind
//
// Resolvers are pure: they return the entity a block declares and leave
// assembling the effect descriptor to the caller. Errors are *effect.Error
// values carrying the line and column of the offending text.
package parser
