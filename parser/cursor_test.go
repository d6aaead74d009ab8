// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import "testing"

func TestCursorToken(t *testing.T) {
	tests := []struct {
		src  string
		want string
		ok   bool
	}{
		{"  foo bar", "foo", true},
		{"_x1;", "_x1", true},
		{"\tTexture2D", "Texture2D", true},
		{"1abc", "", false},
		{"", "", false},
		{"\nfoo", "", false},
	}
	for _, tt := range tests {
		c := NewCursor(tt.src)
		n, got, ok := c.Token()
		if ok != tt.ok || got != tt.want {
			t.Errorf("Token(%q) = %q, %v; want %q, %v", tt.src, got, ok, tt.want, tt.ok)
		}
		if !ok && n != c {
			t.Errorf("Token(%q) moved the cursor on failure", tt.src)
		}
	}
}

func TestCursorNumbers(t *testing.T) {
	floats := []struct {
		src  string
		want float32
		ok   bool
	}{
		{"0.5", 0.5, true},
		{"  -1.25\n", -1.25, true},
		{"1e2", 100, true},
		{"3", 3, true},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tt := range floats {
		_, got, ok := NewCursor(tt.src).Float()
		if ok != tt.ok || got != tt.want {
			t.Errorf("Float(%q) = %v, %v; want %v, %v", tt.src, got, ok, tt.want, tt.ok)
		}
	}

	ints := []struct {
		src  string
		want int32
		ok   bool
	}{
		{"42", 42, true},
		{" -7", -7, true},
		{"0.5", 0, false},
		{"99999999999", 0, false},
	}
	for _, tt := range ints {
		_, got, ok := NewCursor(tt.src).Int()
		if ok != tt.ok || got != tt.want {
			t.Errorf("Int(%q) = %v, %v; want %v, %v", tt.src, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCursorLines(t *testing.T) {
	c := NewCursor("  INPUT_WIDTH * 2 \nnext")
	n, expr, ok := c.Expr()
	if !ok || expr != "INPUT_WIDTH*2" {
		t.Errorf("Expr() = %q, %v", expr, ok)
	}
	if n.Rest() != "next" {
		t.Errorf("after Expr, Rest() = %q", n.Rest())
	}

	_, text, ok := NewCursor("  Hello,  world \n").LiteralLine()
	if !ok || text != "Hello,  world" {
		t.Errorf("LiteralLine() = %q, %v", text, ok)
	}
	if _, _, ok := NewCursor("   \nx").LiteralLine(); ok {
		t.Error("LiteralLine() on a blank line should fail")
	}
	if _, _, ok := NewCursor(" \t\n").Expr(); ok {
		t.Error("Expr() on a blank line should fail")
	}
}

func TestCursorNewline(t *testing.T) {
	tests := []struct {
		src  string
		ok   bool
		rest string
	}{
		{"  \nx", true, "x"},
		{"", true, ""},
		{"   ", true, ""},
		{" x\n", false, " x\n"},
	}
	for _, tt := range tests {
		n, ok := NewCursor(tt.src).Newline()
		if ok != tt.ok || n.Rest() != tt.rest {
			t.Errorf("Newline(%q) = %v, rest %q; want %v, %q", tt.src, ok, n.Rest(), tt.ok, tt.rest)
		}
	}
}

func TestCursorDirective(t *testing.T) {
	n, ok := NewCursor("\n\n  //!PASS 1").Directive()
	if !ok || n.Rest() != "PASS 1" {
		t.Errorf("Directive() = %v, rest %q", ok, n.Rest())
	}
	c := NewCursor("  // comment")
	if n, ok := c.Directive(); ok || n != c {
		t.Error("Directive() should fail without moving on a plain comment")
	}
}

func TestCursorPosition(t *testing.T) {
	c := NewCursor("ab\ncd\nef")
	c, _ = c.Consume("ab\ncd\ne")
	if c.Line() != 3 || c.Column() != 2 {
		t.Errorf("position = %d:%d, want 3:2", c.Line(), c.Column())
	}
}
