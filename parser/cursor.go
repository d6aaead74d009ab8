// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"strconv"
	"strings"

	"github.com/gogpu/scalerfx/effect"
)

// DirectiveMarker starts every directive line.
const DirectiveMarker = "//!"

// Cursor is a read-only view into a source buffer plus a read position.
//
// Cursor is a value type. Scanning methods return an advanced copy and a
// success flag; on failure the returned cursor equals the receiver, so a
// caller never observes partially consumed input.
type Cursor struct {
	src string
	pos int
	end int
}

// NewCursor returns a cursor over the whole of src.
func NewCursor(src string) Cursor {
	return Cursor{src: src, end: len(src)}
}

// Offset returns the byte offset of the cursor in the underlying source.
func (c Cursor) Offset() int { return c.pos }

// AtEnd reports whether the cursor has reached the end of its view.
func (c Cursor) AtEnd() bool { return c.pos >= c.end }

// Rest returns the unread part of the view.
func (c Cursor) Rest() string { return c.src[c.pos:c.end] }

// Line returns the 1-based line number of the cursor.
func (c Cursor) Line() int {
	return strings.Count(c.src[:c.pos], "\n") + 1
}

// Column returns the 1-based column of the cursor.
func (c Cursor) Column() int {
	return c.pos - strings.LastIndexByte(c.src[:c.pos], '\n')
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' }

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentPart(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}

// isIdent reports whether s is an identifier: [A-Za-z_][A-Za-z0-9_]*.
func isIdent(s string) bool {
	if s == "" || !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentPart(s[i]) {
			return false
		}
	}
	return true
}

// SkipBlank skips spaces, tabs and line breaks.
func (c Cursor) SkipBlank() Cursor {
	for c.pos < c.end && (isSpace(c.src[c.pos]) || c.src[c.pos] == '\n') {
		c.pos++
	}
	return c
}

// SkipSpaces skips spaces and tabs, stopping at a line break.
func (c Cursor) SkipSpaces() Cursor {
	for c.pos < c.end && isSpace(c.src[c.pos]) {
		c.pos++
	}
	return c
}

// Consume matches prefix at the cursor position.
func (c Cursor) Consume(prefix string) (Cursor, bool) {
	if !strings.HasPrefix(c.Rest(), prefix) {
		return c, false
	}
	c.pos += len(prefix)
	return c, true
}

// Newline skips trailing spaces and consumes a line break. The end of the view
// counts as a line break.
func (c Cursor) Newline() (Cursor, bool) {
	n := c.SkipSpaces()
	if n.AtEnd() {
		return n, true
	}
	if n.src[n.pos] != '\n' {
		return c, false
	}
	n.pos++
	return n, true
}

// Directive skips blank lines and consumes a directive marker.
func (c Cursor) Directive() (Cursor, bool) {
	n, ok := c.SkipBlank().Consume(DirectiveMarker)
	if !ok {
		return c, false
	}
	return n, true
}

// Token skips spaces and reads an identifier-like token.
func (c Cursor) Token() (Cursor, string, bool) {
	n := c.SkipSpaces()
	start := n.pos
	if n.AtEnd() || !isIdentStart(n.src[n.pos]) {
		return c, "", false
	}
	for n.pos < n.end && isIdentPart(n.src[n.pos]) {
		n.pos++
	}
	return n, n.src[start:n.pos], true
}

// line returns the text up to the next line break and the cursor past it.
func (c Cursor) line() (Cursor, string) {
	rest := c.Rest()
	i := strings.IndexByte(rest, '\n')
	if i < 0 {
		c.pos = c.end
		return c, rest
	}
	c.pos += i + 1
	return c, rest[:i]
}

// LiteralLine reads the rest of the line with surrounding whitespace trimmed.
// It fails on an empty result.
func (c Cursor) LiteralLine() (Cursor, string, bool) {
	n, text := c.line()
	text = strings.TrimSpace(text)
	if text == "" {
		return c, "", false
	}
	return n, text, true
}

// Expr reads the rest of the line with all whitespace removed. It fails on an
// empty result.
func (c Cursor) Expr() (Cursor, string, bool) {
	n, text := c.line()
	var sb strings.Builder
	for i := 0; i < len(text); i++ {
		if !isSpace(text[i]) {
			sb.WriteByte(text[i])
		}
	}
	if sb.Len() == 0 {
		return c, "", false
	}
	return n, sb.String(), true
}

// number returns the longest run of characters that may form a numeric
// literal, starting after any leading spaces.
func (c Cursor) number() (Cursor, string) {
	n := c.SkipSpaces()
	start := n.pos
	for n.pos < n.end {
		b := n.src[n.pos]
		if (b >= '0' && b <= '9') || b == '.' || b == '+' || b == '-' || b == 'e' || b == 'E' {
			n.pos++
			continue
		}
		break
	}
	return n, n.src[start:n.pos]
}

// Float reads a decimal floating-point literal. Parsing does not depend on the
// process locale.
func (c Cursor) Float() (Cursor, float32, bool) {
	n, text := c.number()
	if text == "" {
		return c, 0, false
	}
	v, err := strconv.ParseFloat(text, 32)
	if err != nil {
		return c, 0, false
	}
	return n, float32(v), true
}

// Int reads a decimal integer literal.
func (c Cursor) Int() (Cursor, int32, bool) {
	n, text := c.number()
	if text == "" {
		return c, 0, false
	}
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return c, 0, false
	}
	return n, int32(v), true
}

// errorf returns an error located at the cursor.
func (c Cursor) errorf(kind effect.ErrorKind, format string, args ...any) *effect.Error {
	e := effect.NewError(kind, format, args...)
	e.Line = c.Line()
	e.Column = c.Column()
	e.Source = c.src
	return e
}
