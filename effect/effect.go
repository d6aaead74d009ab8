// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

import "slices"

// Reserved texture names and their fixed indices.
const (
	InputTexture  = "INPUT"
	OutputTexture = "OUTPUT"

	InputIndex  = 0
	OutputIndex = 1
)

// MaxOutputs is the maximum number of render targets a single pass may write.
const MaxOutputs = 8

// Desc is a fully resolved effect.
type Desc struct {
	// Name is a display name, usually the effect file's base name.
	Name string

	// Description is the free text of the header DESCRIPTION directive.
	Description string

	// ScalerType is the header SCALER_TYPE token, empty if absent.
	ScalerType string

	// Version is the grammar version the effect was written against.
	Version int

	// OutSizeExpr holds the OUTPUT_WIDTH and OUTPUT_HEIGHT expressions.
	// Both are empty when the header leaves output sizing to the renderer.
	OutSizeExpr [2]string

	Constants             []Constant
	ValueConstants        []ValueConstant
	DynamicValueConstants []ValueConstant
	Textures              []Texture
	Samplers              []Sampler
	Passes                []Pass
}

// New returns a descriptor holding only the implicit INPUT and OUTPUT textures.
func New() *Desc {
	return &Desc{
		Textures: []Texture{
			{Name: InputTexture, Format: FormatUnknown},
			{Name: OutputTexture, Format: FormatUnknown},
		},
	}
}

// HasOutSize reports whether the header declared an output size.
func (d *Desc) HasOutSize() bool {
	return d.OutSizeExpr[0] != "" && d.OutSizeExpr[1] != ""
}

// TextureIndex returns the index of the named texture, or -1.
func (d *Desc) TextureIndex(name string) int {
	for i := range d.Textures {
		if d.Textures[i].Name == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of d.
func (d *Desc) Clone() *Desc {
	if d == nil {
		return nil
	}
	c := *d
	c.Constants = slices.Clone(d.Constants)
	c.ValueConstants = slices.Clone(d.ValueConstants)
	c.DynamicValueConstants = slices.Clone(d.DynamicValueConstants)
	c.Textures = slices.Clone(d.Textures)
	c.Samplers = slices.Clone(d.Samplers)
	if d.Passes != nil {
		c.Passes = make([]Pass, len(d.Passes))
		for i, p := range d.Passes {
			c.Passes[i] = Pass{
				Inputs:  slices.Clone(p.Inputs),
				Outputs: slices.Clone(p.Outputs),
				Binary:  slices.Clone(p.Binary),
			}
		}
	}
	return &c
}

// ConstantType is the shader type of a constant.
type ConstantType uint8

const (
	Float ConstantType = iota
	Int
)

// String returns the HLSL type name.
func (t ConstantType) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	default:
		return "unknown"
	}
}

// Value is a literal constant value. Only the field matching the owning
// constant's type is meaningful.
type Value struct {
	Float float32
	Int   int32
}

// FloatValue returns a Value holding f.
func FloatValue(f float32) Value { return Value{Float: f} }

// IntValue returns a Value holding i.
func IntValue(i int32) Value { return Value{Int: i} }

// Constant is a user-tunable value baked into the effect's constant buffer.
type Constant struct {
	Name    string
	Type    ConstantType
	Label   string
	Default Value
	Min     Value
	Max     Value
	HasMin  bool
	HasMax  bool
}

// ValueConstant is a constant computed by the renderer from an expression.
type ValueConstant struct {
	Name string
	Type ConstantType
	Expr string
}

// Texture is an intermediate texture, or one loaded from a file when Source is
// set.
type Texture struct {
	Name   string
	Format Format

	// SizeExpr holds the width and height expressions. Empty expressions mean
	// the texture follows the output size.
	SizeExpr [2]string

	// Source is the path of an image file the texture is loaded from.
	Source string
}

// Sampler describes a SamplerState declared by the effect.
type Sampler struct {
	Name    string
	Filter  Filter
	Address Address
}

// Pass is one compiled pixel shader invocation.
type Pass struct {
	// Inputs are texture indices bound to registers t0, t1, ... in order.
	Inputs []int

	// Outputs are texture indices written to SV_TARGET0, SV_TARGET1, ...
	// The final pass has none: it renders to the presentation target.
	Outputs []int

	// Binary is the compiled shader object.
	Binary []byte
}
