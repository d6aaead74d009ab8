// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"
)

// ShaderModel represents a DirectX Shader Model version.
type ShaderModel uint8

// Supported Shader Model versions.
const (
	// ShaderModel5_0 is the base SM5 version (DirectX 11) and the default
	// target for effects.
	ShaderModel5_0 ShaderModel = iota

	// ShaderModel5_1 provides improved resource binding.
	ShaderModel5_1

	// ShaderModel6_0 introduces DXIL and requires DXC.
	ShaderModel6_0

	ShaderModel6_1
	ShaderModel6_2
	ShaderModel6_3
	ShaderModel6_4
	ShaderModel6_5
	ShaderModel6_6
	ShaderModel6_7
)

// String returns a human-readable representation of the shader model.
// Example: "SM 5.0", "SM 6.0"
func (sm ShaderModel) String() string {
	major, minor := sm.version()
	return fmt.Sprintf("SM %d.%d", major, minor)
}

// ProfileSuffix returns the shader profile suffix for this model.
// Example: "5_0", "6_0"
func (sm ShaderModel) ProfileSuffix() string {
	major, minor := sm.version()
	return fmt.Sprintf("%d_%d", major, minor)
}

// PixelProfile returns the pixel shader target profile, e.g. "ps_5_0".
func (sm ShaderModel) PixelProfile() string {
	return "ps_" + sm.ProfileSuffix()
}

// version returns the major and minor version numbers.
func (sm ShaderModel) version() (major, minor uint8) {
	switch sm {
	case ShaderModel5_0:
		return 5, 0
	case ShaderModel5_1:
		return 5, 1
	case ShaderModel6_0, ShaderModel6_1, ShaderModel6_2, ShaderModel6_3,
		ShaderModel6_4, ShaderModel6_5, ShaderModel6_6, ShaderModel6_7:
		return 6, uint8(sm - ShaderModel6_0)
	default:
		return 5, 0 // Default to 5.0 for unknown
	}
}

// SupportsDXIL returns true if this shader model uses DXIL output.
// Earlier models use DXBC and are compiled by FXC.
func (sm ShaderModel) SupportsDXIL() bool {
	return sm >= ShaderModel6_0
}

// ParseShaderModel parses "5_0", "5.0", "ps_5_0" or "SM 5.0" style names.
func ParseShaderModel(s string) (ShaderModel, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimPrefix(v, "ps_")
	v = strings.TrimPrefix(v, "SM ")
	v = strings.ReplaceAll(v, ".", "_")
	for sm := ShaderModel5_0; sm <= ShaderModel6_7; sm++ {
		if sm.ProfileSuffix() == v {
			return sm, nil
		}
	}
	return ShaderModel5_0, fmt.Errorf("unknown shader model %q", s)
}
