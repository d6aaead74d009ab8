// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// Format is the pixel format of an intermediate texture, named after the
// DXGI format tokens used by FORMAT directives.
type Format uint8

const (
	// FormatUnknown is used by INPUT, OUTPUT and SOURCE textures whose format
	// is decided by the renderer or the loaded image.
	FormatUnknown Format = iota
	FormatR8Unorm
	FormatR16Unorm
	FormatR16Float
	FormatR8G8Unorm
	FormatB5G6R5Unorm
	FormatR16G16Unorm
	FormatR16G16Float
	FormatR8G8B8A8Unorm
	FormatB8G8R8A8Unorm
	FormatR10G10B10A2Unorm
	FormatR32Float
	FormatR11G11B10Float
	FormatR32G32Float
	FormatR16G16B16A16Unorm
	FormatR16G16B16A16Float
	FormatR32G32B32A32Float

	formatCount
)

var formatNames = [formatCount]string{
	FormatUnknown:           "UNKNOWN",
	FormatR8Unorm:           "R8_UNORM",
	FormatR16Unorm:          "R16_UNORM",
	FormatR16Float:          "R16_FLOAT",
	FormatR8G8Unorm:         "R8G8_UNORM",
	FormatB5G6R5Unorm:       "B5G6R5_UNORM",
	FormatR16G16Unorm:       "R16G16_UNORM",
	FormatR16G16Float:       "R16G16_FLOAT",
	FormatR8G8B8A8Unorm:     "R8G8B8A8_UNORM",
	FormatB8G8R8A8Unorm:     "B8G8R8A8_UNORM",
	FormatR10G10B10A2Unorm:  "R10G10B10A2_UNORM",
	FormatR32Float:          "R32_FLOAT",
	FormatR11G11B10Float:    "R11G11B10_FLOAT",
	FormatR32G32Float:       "R32G32_FLOAT",
	FormatR16G16B16A16Unorm: "R16G16B16A16_UNORM",
	FormatR16G16B16A16Float: "R16G16B16A16_FLOAT",
	FormatR32G32B32A32Float: "R32G32B32A32_FLOAT",
}

// String returns the FORMAT directive token.
func (f Format) String() string {
	if f < formatCount {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	return f < formatCount
}

// ParseFormat maps a FORMAT directive token to a Format.
// UNKNOWN is not accepted: it cannot be requested by an effect.
func ParseFormat(token string) (Format, bool) {
	for i := FormatR8Unorm; i < formatCount; i++ {
		if formatNames[i] == token {
			return i, true
		}
	}
	return FormatUnknown, false
}

// GPUFormat returns the WebGPU texture format for f.
// Formats with no WebGPU equivalent map to TextureFormatUndefined and must be
// emulated or widened by the renderer.
func (f Format) GPUFormat() gputypes.TextureFormat {
	switch f {
	case FormatR8Unorm:
		return gputypes.TextureFormatR8Unorm
	case FormatR16Float:
		return gputypes.TextureFormatR16Float
	case FormatR8G8Unorm:
		return gputypes.TextureFormatRG8Unorm
	case FormatR16G16Float:
		return gputypes.TextureFormatRG16Float
	case FormatR8G8B8A8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	case FormatB8G8R8A8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	case FormatR10G10B10A2Unorm:
		return gputypes.TextureFormatRGB10A2Unorm
	case FormatR32Float:
		return gputypes.TextureFormatR32Float
	case FormatR11G11B10Float:
		return gputypes.TextureFormatRG11B10Ufloat
	case FormatR32G32Float:
		return gputypes.TextureFormatRG32Float
	case FormatR16G16B16A16Float:
		return gputypes.TextureFormatRGBA16Float
	case FormatR32G32B32A32Float:
		return gputypes.TextureFormatRGBA32Float
	default:
		return gputypes.TextureFormatUndefined
	}
}

// Filter is a sampler's minification and magnification filter.
type Filter uint8

const (
	FilterLinear Filter = iota
	FilterPoint
)

// String returns the FILTER directive token.
func (f Filter) String() string {
	switch f {
	case FilterLinear:
		return "LINEAR"
	case FilterPoint:
		return "POINT"
	default:
		return fmt.Sprintf("Filter(%d)", uint8(f))
	}
}

// ParseFilter maps a FILTER directive token to a Filter.
func ParseFilter(token string) (Filter, bool) {
	switch token {
	case "LINEAR":
		return FilterLinear, true
	case "POINT":
		return FilterPoint, true
	}
	return FilterLinear, false
}

// GPUFilter returns the WebGPU filter mode for f.
func (f Filter) GPUFilter() gputypes.FilterMode {
	if f == FilterPoint {
		return gputypes.FilterModeNearest
	}
	return gputypes.FilterModeLinear
}

// Address is a sampler's texture addressing mode.
type Address uint8

const (
	AddressClamp Address = iota
	AddressWrap
)

// String returns the ADDRESS directive token.
func (a Address) String() string {
	switch a {
	case AddressClamp:
		return "CLAMP"
	case AddressWrap:
		return "WRAP"
	default:
		return fmt.Sprintf("Address(%d)", uint8(a))
	}
}

// ParseAddress maps an ADDRESS directive token to an Address.
func ParseAddress(token string) (Address, bool) {
	switch token {
	case "CLAMP":
		return AddressClamp, true
	case "WRAP":
		return AddressWrap, true
	}
	return AddressClamp, false
}

// GPUAddress returns the WebGPU address mode for a.
func (a Address) GPUAddress() gputypes.AddressMode {
	if a == AddressWrap {
		return gputypes.AddressModeRepeat
	}
	return gputypes.AddressModeClampToEdge
}
