// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"strings"

	"github.com/gogpu/scalerfx/effect"
	"github.com/gogpu/scalerfx/hlsl"
)

// ValidateNames checks that constant, texture and sampler names are unique
// across all three kinds and usable as HLSL identifiers. Names starting with
// "__" are reserved for generated code.
func ValidateNames(d *effect.Desc) error {
	owner := make(map[string]string)
	check := func(name, kind string) error {
		if prev, ok := owner[name]; ok {
			return effect.NewError(effect.KindConstraintViolation, "%s name %s is already used by a %s", kind, name, prev)
		}
		if strings.HasPrefix(name, "__") {
			return effect.NewError(effect.KindConstraintViolation, "%s name %s uses the reserved prefix __", kind, name)
		}
		if hlsl.IsReserved(name) {
			return effect.NewError(effect.KindConstraintViolation, "%s name %s is an HLSL keyword", kind, name)
		}
		owner[name] = kind
		return nil
	}

	for _, c := range d.Constants {
		if err := check(c.Name, "constant"); err != nil {
			return err
		}
	}
	for _, list := range [][]effect.ValueConstant{d.ValueConstants, d.DynamicValueConstants} {
		for _, c := range list {
			if err := check(c.Name, "constant"); err != nil {
				return err
			}
		}
	}
	for _, t := range d.Textures {
		if err := check(t.Name, "texture"); err != nil {
			return err
		}
	}
	for _, s := range d.Samplers {
		if err := check(s.Name, "sampler"); err != nil {
			return err
		}
	}
	return nil
}
