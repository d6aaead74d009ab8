// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/gogpu/scalerfx/effect"
)

// ResolveSampler parses a SAMPLER block.
//
//	//!SAMPLER
//	//!FILTER LINEAR
//	//!ADDRESS WRAP
//	SamplerState sam;
//
// FILTER is required. ADDRESS defaults to CLAMP.
func ResolveSampler(b Block) (effect.Sampler, error) {
	c, err := blockOpening(b)
	if err != nil {
		return effect.Sampler{}, err
	}

	s := effect.Sampler{Filter: effect.FilterLinear, Address: effect.AddressClamp}
	seen := directiveSet{}
	first := c.SkipBlank()

	c, err = directives(c, seen, func(d directive) (Cursor, error) {
		if d.keyword != "FILTER" && d.keyword != "ADDRESS" {
			return d.next, unknownDirective(d, BlockSampler)
		}
		n, tok, err := tokenArg(d)
		if err != nil {
			return n, err
		}
		var ok bool
		if d.keyword == "FILTER" {
			s.Filter, ok = effect.ParseFilter(tok)
		} else {
			s.Address, ok = effect.ParseAddress(tok)
		}
		if !ok {
			return n, d.next.SkipSpaces().errorf(effect.KindMalformedDirective, "unknown %s value %s", d.keyword, tok)
		}
		return n, nil
	})
	if err != nil {
		return effect.Sampler{}, err
	}
	if !seen.has("FILTER") {
		return effect.Sampler{}, first.errorf(effect.KindConstraintViolation, "sampler needs a FILTER directive")
	}

	_, s.Name, err = declaration(c, BlockSampler, "SamplerState")
	if err != nil {
		return effect.Sampler{}, err
	}
	return s, nil
}
