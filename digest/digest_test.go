// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package digest

import (
	"strings"
	"testing"
)

func TestSumDeterministic(t *testing.T) {
	a := SumString("//!MPC SCALER\n")
	b := Sum([]byte("//!MPC SCALER\n"))
	if a != b {
		t.Error("Sum and SumString disagree")
	}
	if len(a.String()) != 2*Size {
		t.Errorf("String() length = %d, want %d", len(a.String()), 2*Size)
	}
}

func TestSumSingleByteChange(t *testing.T) {
	src := []byte(strings.Repeat("float4 Pass1(float2 pos) { return 0; }\n", 8))
	base := Sum(src)
	for i := range src {
		changed := append([]byte(nil), src...)
		changed[i] ^= 0x01
		if Sum(changed) == base {
			t.Fatalf("flipping byte %d did not change the digest", i)
		}
	}
}

func TestHasherMatchesSum(t *testing.T) {
	h := New()
	h.WriteString("hello, ")
	if _, err := h.Write([]byte("world")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if h.Sum() != SumString("hello, world") {
		t.Error("streaming digest differs from Sum")
	}
}

func TestParse(t *testing.T) {
	d := SumString("x")
	got, ok := Parse(d.String())
	if !ok || got != d {
		t.Errorf("Parse(String()) = %v, %v", got, ok)
	}
	if _, ok := Parse("abc"); ok {
		t.Error("Parse accepted a short string")
	}
	if _, ok := Parse(strings.Repeat("zz", Size)); ok {
		t.Error("Parse accepted non-hex input")
	}
}
