// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package effect defines the resolved, in-memory description of a scaler
// effect.
//
// A [Desc] is produced by the scalerfx compiler front-end and consumed by the
// renderer. It lists the tunable constants baked into the effect's constant
// buffers, the intermediate textures and samplers the passes use, and the
// compiled pixel shader of every pass.
//
// # Texture Indices
//
// Texture indices are stable across a compilation:
//
//	0   INPUT   the source frame, supplied by the renderer
//	1   OUTPUT  the presentation target, sized by Desc.OutSizeExpr
//	2.. declared TEXTURE blocks in file order
//
// Pass inputs and outputs refer to textures by these indices.
//
// # Expressions
//
// Size and value expressions are stored verbatim. They are evaluated by the
// renderer, never by this package.
package effect
