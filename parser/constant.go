// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"github.com/gogpu/scalerfx/effect"
)

// ConstantClass selects the descriptor list a resolved constant belongs to.
type ConstantClass uint8

const (
	// ConstantLiteral is a user-tunable constant with a DEFAULT.
	ConstantLiteral ConstantClass = iota

	// ConstantValue is computed from a VALUE expression once per resize.
	ConstantValue

	// ConstantDynamic is computed from a VALUE expression every frame.
	ConstantDynamic
)

// ResolvedConstant is the result of resolving a CONSTANT block. Literal is
// set for ConstantLiteral, Value otherwise.
type ResolvedConstant struct {
	Class   ConstantClass
	Literal effect.Constant
	Value   effect.ValueConstant
}

// Name returns the declared identifier.
func (r ResolvedConstant) Name() string {
	if r.Class == ConstantLiteral {
		return r.Literal.Name
	}
	return r.Value.Name
}

// constantArgs holds raw directive arguments until the declared type is known.
type constantArgs struct {
	value, label        string
	def, min, max       Cursor
	defAt, minAt, maxAt Cursor
}

// ResolveConstant parses a CONSTANT block.
//
//	//!CONSTANT
//	//!DEFAULT 0.5
//	//!MIN 0
//	//!MAX 1
//	//!LABEL Sharpness
//	float sharpness;
//
// or, for computed constants:
//
//	//!CONSTANT
//	//!VALUE INPUT_WIDTH
//	//!DYNAMIC
//	float inputWidth;
func ResolveConstant(b Block) (ResolvedConstant, error) {
	c, err := blockOpening(b)
	if err != nil {
		return ResolvedConstant{}, err
	}

	var args constantArgs
	seen := directiveSet{}
	first := c.SkipBlank()

	c, err = directives(c, seen, func(d directive) (Cursor, error) {
		switch d.keyword {
		case "VALUE":
			n, expr, err := exprArg(d)
			args.value = expr
			return n, err
		case "LABEL":
			n, text, err := literalArg(d)
			args.label = text
			return n, err
		case "DYNAMIC":
			return noArg(d)
		case "DEFAULT":
			args.def, args.defAt = d.next, d.at
		case "MIN":
			args.min, args.minAt = d.next, d.at
		case "MAX":
			args.max, args.maxAt = d.next, d.at
		default:
			return d.next, unknownDirective(d, BlockConstant)
		}
		// Numeric arguments are parsed once the declared type is known.
		n, _ := d.next.line()
		return n, nil
	})
	if err != nil {
		return ResolvedConstant{}, err
	}

	switch {
	case seen.has("VALUE") && seen.has("DEFAULT"):
		return ResolvedConstant{}, first.errorf(effect.KindConstraintViolation, "VALUE and DEFAULT are mutually exclusive")
	case !seen.has("VALUE") && !seen.has("DEFAULT"):
		return ResolvedConstant{}, first.errorf(effect.KindConstraintViolation, "constant needs either VALUE or DEFAULT")
	case seen.has("DYNAMIC") && !seen.has("VALUE"):
		return ResolvedConstant{}, first.errorf(effect.KindConstraintViolation, "DYNAMIC requires VALUE")
	}
	if seen.has("VALUE") {
		for _, kw := range []string{"MIN", "MAX", "LABEL"} {
			if seen.has(kw) {
				return ResolvedConstant{}, first.errorf(effect.KindConstraintViolation, "%s cannot be combined with VALUE", kw)
			}
		}
	}

	typ, name, err := declaration(c, BlockConstant, "float", "int")
	if err != nil {
		return ResolvedConstant{}, err
	}
	ctype := effect.Float
	if typ == "int" {
		ctype = effect.Int
	}

	if seen.has("VALUE") {
		class := ConstantValue
		if seen.has("DYNAMIC") {
			class = ConstantDynamic
		}
		return ResolvedConstant{
			Class: class,
			Value: effect.ValueConstant{Name: name, Type: ctype, Expr: args.value},
		}, nil
	}

	k := effect.Constant{Name: name, Type: ctype, Label: args.label, HasMin: seen.has("MIN"), HasMax: seen.has("MAX")}
	if k.Default, err = numericArg(args.def, "DEFAULT", ctype); err != nil {
		return ResolvedConstant{}, err
	}
	if k.HasMin {
		if k.Min, err = numericArg(args.min, "MIN", ctype); err != nil {
			return ResolvedConstant{}, err
		}
	}
	if k.HasMax {
		if k.Max, err = numericArg(args.max, "MAX", ctype); err != nil {
			return ResolvedConstant{}, err
		}
	}

	if k.HasMin && k.HasMax && less(ctype, k.Max, k.Min) {
		return ResolvedConstant{}, args.maxAt.errorf(effect.KindConstraintViolation, "MAX of %s is less than MIN", name)
	}
	if k.HasMin && less(ctype, k.Default, k.Min) {
		return ResolvedConstant{}, args.defAt.errorf(effect.KindConstraintViolation, "DEFAULT of %s is less than MIN", name)
	}
	if k.HasMax && less(ctype, k.Max, k.Default) {
		return ResolvedConstant{}, args.defAt.errorf(effect.KindConstraintViolation, "DEFAULT of %s is greater than MAX", name)
	}

	return ResolvedConstant{Class: ConstantLiteral, Literal: k}, nil
}

// numericArg parses a DEFAULT, MIN or MAX argument as the declared type.
func numericArg(c Cursor, keyword string, typ effect.ConstantType) (effect.Value, error) {
	var v effect.Value
	var n Cursor
	var ok bool
	if typ == effect.Int {
		n, v.Int, ok = c.Int()
	} else {
		n, v.Float, ok = c.Float()
	}
	if ok {
		if _, ok = n.Newline(); ok {
			return v, nil
		}
	}
	return effect.Value{}, c.errorf(effect.KindMalformedDirective, "%s expects a %s literal", keyword, typ)
}

func less(typ effect.ConstantType, a, b effect.Value) bool {
	if typ == effect.Int {
		return a.Int < b.Int
	}
	return a.Float < b.Float
}
