// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/gogpu/scalerfx/effect"
)

// ResolveTexture parses a TEXTURE block.
//
//	//!TEXTURE
//	//!FORMAT R16G16B16A16_FLOAT
//	//!WIDTH INPUT_WIDTH * 2
//	//!HEIGHT INPUT_HEIGHT * 2
//	Texture2D tex1;
//
// A texture loaded from an image file names it with SOURCE and takes no other
// directive. Declaring INPUT is allowed but redundant; it must carry no
// directives.
func ResolveTexture(b Block) (effect.Texture, error) {
	c, err := blockOpening(b)
	if err != nil {
		return effect.Texture{}, err
	}

	var tex effect.Texture
	seen := directiveSet{}
	first := c.SkipBlank()

	c, err = directives(c, seen, func(d directive) (Cursor, error) {
		switch d.keyword {
		case "SOURCE":
			n, path, err := literalArg(d)
			tex.Source = path
			return n, err
		case "FORMAT":
			n, tok, err := tokenArg(d)
			if err != nil {
				return n, err
			}
			f, ok := effect.ParseFormat(tok)
			if !ok {
				return n, d.next.SkipSpaces().errorf(effect.KindMalformedDirective, "unknown texture format %s", tok)
			}
			tex.Format = f
			return n, nil
		case "WIDTH":
			n, expr, err := exprArg(d)
			tex.SizeExpr[0] = expr
			return n, err
		case "HEIGHT":
			n, expr, err := exprArg(d)
			tex.SizeExpr[1] = expr
			return n, err
		default:
			return d.next, unknownDirective(d, BlockTexture)
		}
	})
	if err != nil {
		return effect.Texture{}, err
	}

	_, name, err := declaration(c, BlockTexture, "Texture2D")
	if err != nil {
		return effect.Texture{}, err
	}
	tex.Name = name

	switch name {
	case effect.InputTexture:
		if len(seen) > 0 {
			return effect.Texture{}, first.errorf(effect.KindConstraintViolation, "INPUT texture cannot have directives")
		}
		return tex, nil
	case effect.OutputTexture:
		return effect.Texture{}, first.errorf(effect.KindConstraintViolation, "OUTPUT texture cannot be declared")
	}

	if seen.has("SOURCE") {
		if len(seen) > 1 {
			return effect.Texture{}, first.errorf(effect.KindConstraintViolation, "SOURCE cannot be combined with other directives")
		}
		return tex, nil
	}
	if !seen.has("FORMAT") {
		return effect.Texture{}, first.errorf(effect.KindConstraintViolation, "texture %s needs FORMAT or SOURCE", name)
	}
	if seen.has("WIDTH") != seen.has("HEIGHT") {
		return effect.Texture{}, first.errorf(effect.KindConstraintViolation, "WIDTH and HEIGHT must be given together")
	}
	return tex, nil
}
