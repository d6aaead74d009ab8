// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package cache

import (
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/gogpu/scalerfx/effect"
)

// Field numbers of the descriptor encoding. Numbers are never reused; bump
// FormatVersion when the meaning of an existing field changes.
const (
	descName                 protowire.Number = 1
	descDescription          protowire.Number = 2
	descScalerType           protowire.Number = 3
	descVersion              protowire.Number = 4
	descOutWidth             protowire.Number = 5
	descOutHeight            protowire.Number = 6
	descConstant             protowire.Number = 7
	descValueConstant        protowire.Number = 8
	descDynamicValueConstant protowire.Number = 9
	descTexture              protowire.Number = 10
	descSampler              protowire.Number = 11
	descPass                 protowire.Number = 12
)

const (
	constName      protowire.Number = 1
	constType      protowire.Number = 2
	constLabel     protowire.Number = 3
	constDefaultF  protowire.Number = 4
	constDefaultI  protowire.Number = 5
	constMinF      protowire.Number = 6
	constMinI      protowire.Number = 7
	constMaxF      protowire.Number = 8
	constMaxI      protowire.Number = 9
	valueName      protowire.Number = 1
	valueType      protowire.Number = 2
	valueExpr      protowire.Number = 3
	texName        protowire.Number = 1
	texFormat      protowire.Number = 2
	texWidth       protowire.Number = 3
	texHeight      protowire.Number = 4
	texSource      protowire.Number = 5
	samplerName    protowire.Number = 1
	samplerFilter  protowire.Number = 2
	samplerAddress protowire.Number = 3
	passInputs     protowire.Number = 1
	passOutputs    protowire.Number = 2
	passBinary     protowire.Number = 3
)

// Marshal encodes d.
func Marshal(d *effect.Desc) []byte {
	var b []byte
	b = appendString(b, descName, d.Name)
	b = appendString(b, descDescription, d.Description)
	b = appendString(b, descScalerType, d.ScalerType)
	b = appendVarint(b, descVersion, uint64(d.Version))
	b = appendString(b, descOutWidth, d.OutSizeExpr[0])
	b = appendString(b, descOutHeight, d.OutSizeExpr[1])
	for i := range d.Constants {
		b = appendMessage(b, descConstant, marshalConstant(&d.Constants[i]))
	}
	for i := range d.ValueConstants {
		b = appendMessage(b, descValueConstant, marshalValueConstant(&d.ValueConstants[i]))
	}
	for i := range d.DynamicValueConstants {
		b = appendMessage(b, descDynamicValueConstant, marshalValueConstant(&d.DynamicValueConstants[i]))
	}
	for i := range d.Textures {
		b = appendMessage(b, descTexture, marshalTexture(&d.Textures[i]))
	}
	for i := range d.Samplers {
		b = appendMessage(b, descSampler, marshalSampler(&d.Samplers[i]))
	}
	for i := range d.Passes {
		b = appendMessage(b, descPass, marshalPass(&d.Passes[i]))
	}
	return b
}

func marshalConstant(c *effect.Constant) []byte {
	var b []byte
	b = appendString(b, constName, c.Name)
	b = appendVarint(b, constType, uint64(c.Type))
	b = appendString(b, constLabel, c.Label)
	b = appendValue(b, c.Type, constDefaultF, constDefaultI, c.Default)
	if c.HasMin {
		b = appendValue(b, c.Type, constMinF, constMinI, c.Min)
	}
	if c.HasMax {
		b = appendValue(b, c.Type, constMaxF, constMaxI, c.Max)
	}
	return b
}

func marshalValueConstant(c *effect.ValueConstant) []byte {
	var b []byte
	b = appendString(b, valueName, c.Name)
	b = appendVarint(b, valueType, uint64(c.Type))
	b = appendString(b, valueExpr, c.Expr)
	return b
}

func marshalTexture(t *effect.Texture) []byte {
	var b []byte
	b = appendString(b, texName, t.Name)
	b = appendVarint(b, texFormat, uint64(t.Format))
	b = appendString(b, texWidth, t.SizeExpr[0])
	b = appendString(b, texHeight, t.SizeExpr[1])
	b = appendString(b, texSource, t.Source)
	return b
}

func marshalSampler(s *effect.Sampler) []byte {
	var b []byte
	b = appendString(b, samplerName, s.Name)
	b = appendVarint(b, samplerFilter, uint64(s.Filter))
	b = appendVarint(b, samplerAddress, uint64(s.Address))
	return b
}

func marshalPass(p *effect.Pass) []byte {
	var b []byte
	b = appendIndices(b, passInputs, p.Inputs)
	b = appendIndices(b, passOutputs, p.Outputs)
	if len(p.Binary) > 0 {
		b = protowire.AppendTag(b, passBinary, protowire.BytesType)
		b = protowire.AppendBytes(b, p.Binary)
	}
	return b
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// appendValue writes v as a fixed32 float or a zigzag integer depending on
// the constant type.
func appendValue(b []byte, typ effect.ConstantType, fnum, inum protowire.Number, v effect.Value) []byte {
	if typ == effect.Int {
		b = protowire.AppendTag(b, inum, protowire.VarintType)
		return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v.Int)))
	}
	b = protowire.AppendTag(b, fnum, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(v.Float))
}

// appendIndices writes a packed list of texture indices.
func appendIndices(b []byte, num protowire.Number, list []int) []byte {
	if len(list) == 0 {
		return b
	}
	var packed []byte
	for _, v := range list {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	return appendMessage(b, num, packed)
}

// field is one decoded tag with its raw value.
type field struct {
	num   protowire.Number
	typ   protowire.Type
	bytes []byte
	u64   uint64
}

// fields decodes the top-level fields of msg and calls fn for each.
func fields(msg []byte, fn func(f field) error) error {
	for len(msg) > 0 {
		num, typ, n := protowire.ConsumeTag(msg)
		if n < 0 {
			return protowire.ParseError(n)
		}
		msg = msg[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.u64, n = protowire.ConsumeVarint(msg)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(msg)
			f.u64 = uint64(v)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(msg)
		default:
			n = protowire.ConsumeFieldValue(num, typ, msg)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		msg = msg[n:]

		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}

// Unmarshal decodes a descriptor produced by Marshal.
func Unmarshal(b []byte) (*effect.Desc, error) {
	d := &effect.Desc{}
	err := fields(b, func(f field) error {
		var err error
		switch f.num {
		case descName:
			d.Name = string(f.bytes)
		case descDescription:
			d.Description = string(f.bytes)
		case descScalerType:
			d.ScalerType = string(f.bytes)
		case descVersion:
			d.Version = int(f.u64)
		case descOutWidth:
			d.OutSizeExpr[0] = string(f.bytes)
		case descOutHeight:
			d.OutSizeExpr[1] = string(f.bytes)
		case descConstant:
			var c effect.Constant
			c, err = unmarshalConstant(f.bytes)
			d.Constants = append(d.Constants, c)
		case descValueConstant:
			var c effect.ValueConstant
			c, err = unmarshalValueConstant(f.bytes)
			d.ValueConstants = append(d.ValueConstants, c)
		case descDynamicValueConstant:
			var c effect.ValueConstant
			c, err = unmarshalValueConstant(f.bytes)
			d.DynamicValueConstants = append(d.DynamicValueConstants, c)
		case descTexture:
			var t effect.Texture
			t, err = unmarshalTexture(f.bytes)
			d.Textures = append(d.Textures, t)
		case descSampler:
			var s effect.Sampler
			s, err = unmarshalSampler(f.bytes)
			d.Samplers = append(d.Samplers, s)
		case descPass:
			var p effect.Pass
			p, err = unmarshalPass(f.bytes, len(d.Textures))
			d.Passes = append(d.Passes, p)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("decode effect: %w", err)
	}
	return d, nil
}

func unmarshalConstant(b []byte) (effect.Constant, error) {
	var c effect.Constant
	err := fields(b, func(f field) error {
		switch f.num {
		case constName:
			c.Name = string(f.bytes)
		case constType:
			c.Type = effect.ConstantType(f.u64)
		case constLabel:
			c.Label = string(f.bytes)
		case constDefaultF:
			c.Default.Float = math.Float32frombits(uint32(f.u64))
		case constDefaultI:
			c.Default.Int = int32(protowire.DecodeZigZag(f.u64))
		case constMinF:
			c.Min.Float, c.HasMin = math.Float32frombits(uint32(f.u64)), true
		case constMinI:
			c.Min.Int, c.HasMin = int32(protowire.DecodeZigZag(f.u64)), true
		case constMaxF:
			c.Max.Float, c.HasMax = math.Float32frombits(uint32(f.u64)), true
		case constMaxI:
			c.Max.Int, c.HasMax = int32(protowire.DecodeZigZag(f.u64)), true
		}
		return nil
	})
	return c, err
}

func unmarshalValueConstant(b []byte) (effect.ValueConstant, error) {
	var c effect.ValueConstant
	err := fields(b, func(f field) error {
		switch f.num {
		case valueName:
			c.Name = string(f.bytes)
		case valueType:
			c.Type = effect.ConstantType(f.u64)
		case valueExpr:
			c.Expr = string(f.bytes)
		}
		return nil
	})
	return c, err
}

func unmarshalTexture(b []byte) (effect.Texture, error) {
	var t effect.Texture
	err := fields(b, func(f field) error {
		switch f.num {
		case texName:
			t.Name = string(f.bytes)
		case texFormat:
			t.Format = effect.Format(f.u64)
			if !t.Format.Valid() {
				return fmt.Errorf("invalid texture format %d", f.u64)
			}
		case texWidth:
			t.SizeExpr[0] = string(f.bytes)
		case texHeight:
			t.SizeExpr[1] = string(f.bytes)
		case texSource:
			t.Source = string(f.bytes)
		}
		return nil
	})
	return t, err
}

func unmarshalSampler(b []byte) (effect.Sampler, error) {
	var s effect.Sampler
	err := fields(b, func(f field) error {
		switch f.num {
		case samplerName:
			s.Name = string(f.bytes)
		case samplerFilter:
			s.Filter = effect.Filter(f.u64)
		case samplerAddress:
			s.Address = effect.Address(f.u64)
		}
		return nil
	})
	return s, err
}

// unmarshalPass decodes a pass. Texture indices must be below textures,
// which requires textures to be encoded before passes.
func unmarshalPass(b []byte, textures int) (effect.Pass, error) {
	var p effect.Pass
	err := fields(b, func(f field) error {
		var err error
		switch f.num {
		case passInputs:
			p.Inputs, err = unmarshalIndices(f.bytes, textures)
		case passOutputs:
			p.Outputs, err = unmarshalIndices(f.bytes, textures)
		case passBinary:
			p.Binary = append([]byte(nil), f.bytes...)
		}
		return err
	})
	return p, err
}

func unmarshalIndices(b []byte, limit int) ([]int, error) {
	var list []int
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		if v >= uint64(limit) {
			return nil, fmt.Errorf("texture index %d out of range", v)
		}
		list = append(list, int(v))
		b = b[n:]
	}
	return list, nil
}
