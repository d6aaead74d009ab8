// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"testing"

	"github.com/gogpu/scalerfx/effect"
)

func TestSplitBlocks(t *testing.T) {
	src := "//!MPC SCALER\n//!VERSION 1\n\n" +
		"//!CONSTANT\n//!DEFAULT 1\nfloat a;\n" +
		"  //!TEXTURE\nTexture2D t;\n" +
		"//!PASS 2\nx //!PASS 3\n" +
		"//!COMMON\ncommon\n" +
		"//!PASSES\n" +
		"//!PASS 1\nbody1\n"

	start, err := CheckMagic(src)
	if err != nil {
		t.Fatalf("CheckMagic() error = %v", err)
	}
	bs, err := SplitBlocks(src, start)
	if err != nil {
		t.Fatalf("SplitBlocks() error = %v", err)
	}

	tests := []struct {
		name  string
		block Block
		kind  BlockKind
		text  string
	}{
		{"header", bs.Header, BlockHeader, "//!VERSION 1\n\n"},
		{"constant", bs.Constants[0], BlockConstant, "\n//!DEFAULT 1\nfloat a;\n"},
		{"texture", bs.Textures[0], BlockTexture, "\nTexture2D t;\n"},
		{"first pass", bs.Passes[0], BlockPass, " 2\nx //!PASS 3\n"},
		{"common", bs.Commons[0], BlockCommon, "\ncommon\n//!PASSES\n"},
		{"second pass", bs.Passes[1], BlockPass, " 1\nbody1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.block.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tt.block.Kind, tt.kind)
			}
			if got := tt.block.Text(); got != tt.text {
				t.Errorf("Text() = %q, want %q", got, tt.text)
			}
		})
	}

	if len(bs.Passes) != 2 || len(bs.Samplers) != 0 || len(bs.Constants) != 1 {
		t.Errorf("block counts: passes=%d samplers=%d constants=%d", len(bs.Passes), len(bs.Samplers), len(bs.Constants))
	}
}

func TestSplitBlocksNoPass(t *testing.T) {
	src := "//!MPC SCALER\n//!VERSION 1\n//!COMMON\nfloat x;\n"
	_, err := SplitBlocks(src, 14)
	if !effect.IsKind(err, effect.KindStructural) {
		t.Errorf("error = %v, want StructuralError", err)
	}
}

func TestBlockCursorIsBounded(t *testing.T) {
	src := "//!MPC SCALER\n//!VERSION 1\n//!PASS 1\nbody\n//!PASS 2\nother\n"
	bs, err := SplitBlocks(src, 14)
	if err != nil {
		t.Fatal(err)
	}
	if got := bs.Passes[0].Cursor().Rest(); got != " 1\nbody\n" {
		t.Errorf("Cursor().Rest() = %q", got)
	}
}

func TestBlockKindString(t *testing.T) {
	for kind, want := range map[BlockKind]string{
		BlockHeader:   "HEADER",
		BlockConstant: "CONSTANT",
		BlockPass:     "PASS",
		BlockKind(99): "Unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
