// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/gogpu/scalerfx/effect"
)

// Header holds the effect-wide settings of the header block.
type Header struct {
	Version     int
	OutSizeExpr [2]string
	ScalerType  string
	Description string
}

// ResolveHeader parses the header block: the text between the magic line and
// the first block directive.
//
//	//!VERSION 1
//	//!OUTPUT_WIDTH INPUT_WIDTH * 2
//	//!OUTPUT_HEIGHT INPUT_HEIGHT * 2
//	//!SCALER_TYPE UPSCALER
//	//!DESCRIPTION Doubles the input size
func ResolveHeader(b Block) (Header, error) {
	var h Header
	seen := directiveSet{}
	start := b.Cursor()

	c, err := directives(start, seen, func(d directive) (Cursor, error) {
		switch d.keyword {
		case "VERSION":
			n, v, ok := d.next.Int()
			if ok {
				if n, ok = n.Newline(); ok {
					h.Version = int(v)
					if h.Version != Version {
						return n, d.next.errorf(effect.KindStructural, "unsupported effect version %d, want %d", h.Version, Version)
					}
					return n, nil
				}
			}
			return d.next, d.next.errorf(effect.KindMalformedDirective, "VERSION expects an integer")
		case "OUTPUT_WIDTH":
			n, expr, err := exprArg(d)
			h.OutSizeExpr[0] = expr
			return n, err
		case "OUTPUT_HEIGHT":
			n, expr, err := exprArg(d)
			h.OutSizeExpr[1] = expr
			return n, err
		case "SCALER_TYPE":
			n, tok, err := tokenArg(d)
			h.ScalerType = tok
			return n, err
		case "DESCRIPTION":
			n, text, err := literalArg(d)
			h.Description = text
			return n, err
		default:
			return d.next, unknownDirective(d, BlockHeader)
		}
	})
	if err != nil {
		return Header{}, err
	}

	if !seen.has("VERSION") {
		return Header{}, start.SkipBlank().errorf(effect.KindStructural, "header has no VERSION directive")
	}
	if seen.has("OUTPUT_WIDTH") != seen.has("OUTPUT_HEIGHT") {
		return Header{}, start.SkipBlank().errorf(effect.KindConstraintViolation, "OUTPUT_WIDTH and OUTPUT_HEIGHT must be given together")
	}
	if rest := c.SkipBlank(); !rest.AtEnd() {
		return Header{}, rest.errorf(effect.KindMalformedDirective, "unexpected text in header")
	}
	return h, nil
}
