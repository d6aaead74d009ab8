// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import "testing"

func TestIsReserved(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"cbuffer", true},
		{"Texture2D", true},
		{"SamplerState", true},
		{"float4", true},
		{"half2x3", true},
		{"register", true},
		{"texture", true},
		{"tex1", false},
		{"sharpness", false},
		{"Float", false},
		{"float5", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsReserved(tt.name); got != tt.want {
				t.Errorf("IsReserved(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}
