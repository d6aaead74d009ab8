// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"strings"

	"github.com/gogpu/scalerfx/effect"
)

// Magic is the first line of every effect file.
const Magic = "//!MPC SCALER"

// StripComments removes line and block comments from src.
//
// A "//" followed by "!" is a directive marker and is kept. Block comments are
// replaced by the line breaks they contain so that line numbers of the
// remaining text are unchanged. CRLF line endings are normalized to LF.
func StripComments(src string) (string, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")

	var sb strings.Builder
	sb.Grow(len(src))

	for i := 0; i < len(src); {
		if src[i] != '/' || i+1 >= len(src) {
			sb.WriteByte(src[i])
			i++
			continue
		}

		switch src[i+1] {
		case '/':
			if i+2 < len(src) && src[i+2] == '!' {
				sb.WriteString(DirectiveMarker)
				i += len(DirectiveMarker)
				continue
			}
			// Line comment; the line break itself is kept.
			if j := strings.IndexByte(src[i:], '\n'); j >= 0 {
				i += j
			} else {
				i = len(src)
			}
		case '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				c := Cursor{src: src, pos: i, end: len(src)}
				return "", c.errorf(effect.KindStructural, "unterminated block comment")
			}
			body := src[i+2 : i+2+end]
			sb.WriteString(strings.Repeat("\n", strings.Count(body, "\n")))
			i += end + 4
		default:
			sb.WriteByte(src[i])
			i++
		}
	}

	return sb.String(), nil
}

// CheckMagic verifies that src starts with the magic line, optionally preceded
// by blank lines, and returns the offset just past it.
func CheckMagic(src string) (int, error) {
	c := NewCursor(src).SkipBlank()
	if n, ok := c.Consume(Magic); ok {
		if n, ok = n.Newline(); ok && !n.AtEnd() {
			return n.Offset(), nil
		}
	}
	return 0, c.errorf(effect.KindStructural, "missing %q header", Magic)
}
