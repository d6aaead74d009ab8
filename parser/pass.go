// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"strings"

	"github.com/gogpu/scalerfx/effect"
)

// PassDecl is a resolved PASS block.
type PassDecl struct {
	// Index is the 1-based pass number.
	Index int

	// Inputs and Outputs are texture indices from BIND and SAVE in list order.
	Inputs  []int
	Outputs []int

	// Body is the pass code, which must define Pass<Index>.
	Body string

	at Cursor
}

// ResolvePass parses a PASS block. textures is the fully resolved texture
// table and passCount the number of PASS blocks in the file.
//
//	//!PASS 1
//	//!BIND INPUT
//	//!SAVE tex1, tex2
//	void Pass1(float2 pos, out float4 a, out float4 b) { ... }
func ResolvePass(b Block, textures []effect.Texture, passCount int) (PassDecl, error) {
	at := b.Cursor().SkipSpaces()
	c, index, ok := at.Int()
	if !ok {
		return PassDecl{}, at.errorf(effect.KindMalformedDirective, "PASS expects a pass number")
	}
	if c, ok = c.Newline(); !ok {
		return PassDecl{}, c.SkipSpaces().errorf(effect.KindMalformedDirective, "unexpected text after PASS %d", index)
	}
	if index < 1 || int(index) > passCount {
		return PassDecl{}, at.errorf(effect.KindStructural, "pass number %d out of range [1, %d]", index, passCount)
	}

	p := PassDecl{Index: int(index), at: at}
	used := make(map[int]bool)
	seen := directiveSet{}

	c, err := directives(c, seen, func(d directive) (Cursor, error) {
		if d.keyword != "BIND" && d.keyword != "SAVE" {
			return d.next, unknownDirective(d, BlockPass)
		}
		n, list, err := literalArg(d)
		if err != nil {
			return n, err
		}
		for _, name := range strings.Split(list, ",") {
			name = strings.TrimSpace(name)
			idx, err := passTexture(d, name, textures)
			if err != nil {
				return n, err
			}
			if used[idx] {
				return n, d.next.errorf(effect.KindConstraintViolation, "texture %s is bound more than once in pass %d", name, p.Index)
			}
			used[idx] = true
			if d.keyword == "BIND" {
				p.Inputs = append(p.Inputs, idx)
			} else {
				p.Outputs = append(p.Outputs, idx)
			}
		}
		if len(p.Outputs) > effect.MaxOutputs {
			return n, d.next.errorf(effect.KindConstraintViolation, "pass %d saves %d textures, at most %d allowed", p.Index, len(p.Outputs), effect.MaxOutputs)
		}
		return n, nil
	})
	if err != nil {
		return PassDecl{}, err
	}

	body := c.SkipBlank()
	p.Body = strings.TrimSpace(body.Rest())
	if p.Body == "" {
		return PassDecl{}, body.errorf(effect.KindStructural, "pass %d has no code", p.Index)
	}
	if d, ok := codeDirective(body); ok {
		return PassDecl{}, d.errorf(effect.KindMalformedDirective, "directive inside the code of pass %d", p.Index)
	}
	p.Body += "\n"
	return p, nil
}

// passTexture resolves a texture name in a BIND or SAVE list.
func passTexture(d directive, name string, textures []effect.Texture) (int, error) {
	if !isIdent(name) {
		return -1, d.next.errorf(effect.KindMalformedDirective, "invalid texture name %q in %s", name, d.keyword)
	}
	idx := -1
	for i := range textures {
		if textures[i].Name == name {
			idx = i
			break
		}
	}
	switch {
	case idx < 0:
		return -1, d.next.errorf(effect.KindConstraintViolation, "%s references undeclared texture %s", d.keyword, name)
	case idx == effect.OutputIndex:
		return -1, d.next.errorf(effect.KindConstraintViolation, "OUTPUT cannot be named in %s", d.keyword)
	case d.keyword == "SAVE" && idx == effect.InputIndex:
		return -1, d.next.errorf(effect.KindConstraintViolation, "INPUT cannot be written by a pass")
	case d.keyword == "SAVE" && textures[idx].Source != "":
		return -1, d.next.errorf(effect.KindConstraintViolation, "texture %s is loaded from a file and cannot be written", name)
	}
	return idx, nil
}

// OrderPasses checks the pass declarations as a whole and returns them sorted
// by index. Every index in [1, len(passes)] must be declared exactly once,
// every pass but the last must save at least one texture, the last pass must
// save none, and a declared texture may only be bound after an earlier pass
// has saved it.
func OrderPasses(passes []PassDecl, textures []effect.Texture) ([]PassDecl, error) {
	ordered := make([]PassDecl, len(passes))
	filled := make([]bool, len(passes))
	for _, p := range passes {
		if p.Index < 1 || p.Index > len(passes) {
			return nil, p.at.errorf(effect.KindStructural, "pass number %d out of range [1, %d]", p.Index, len(passes))
		}
		if filled[p.Index-1] {
			return nil, p.at.errorf(effect.KindStructural, "pass %d is declared more than once", p.Index)
		}
		filled[p.Index-1] = true
		ordered[p.Index-1] = p
	}
	for i, ok := range filled {
		if !ok {
			return nil, effect.NewError(effect.KindStructural, "pass %d is missing", i+1)
		}
	}

	written := make([]bool, len(textures))
	written[effect.InputIndex] = true
	for i := range textures {
		if textures[i].Source != "" {
			written[i] = true
		}
	}

	last := len(ordered) - 1
	for i, p := range ordered {
		for _, idx := range p.Inputs {
			if !written[idx] {
				return nil, p.at.errorf(effect.KindConstraintViolation, "pass %d binds %s before any pass saves it", p.Index, textures[idx].Name)
			}
		}
		switch {
		case i == last && len(p.Outputs) > 0:
			return nil, p.at.errorf(effect.KindStructural, "last pass %d cannot SAVE: it renders to OUTPUT", p.Index)
		case i != last && len(p.Outputs) == 0:
			return nil, p.at.errorf(effect.KindStructural, "pass %d saves no textures", p.Index)
		}
		for _, idx := range p.Outputs {
			written[idx] = true
		}
	}
	return ordered, nil
}
