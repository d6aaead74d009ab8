// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"slices"
	"strings"

	"github.com/gogpu/scalerfx/effect"
)

// Version is the effect grammar version accepted by this parser.
const Version = 1

// directiveSet records which directives a block has supplied.
type directiveSet map[string]struct{}

// add records name, failing if it was already present.
func (s directiveSet) add(name string) bool {
	if _, ok := s[name]; ok {
		return false
	}
	s[name] = struct{}{}
	return true
}

func (s directiveSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// directive is one parsed directive keyword with the cursor positioned after
// it. at points at the keyword for error reporting.
type directive struct {
	keyword string
	at      Cursor
	next    Cursor
}

// directives iterates over the directive lines at the start of a block.
// For each directive, fn parses the arguments starting at d.next and returns
// the cursor past them. Duplicate directives are rejected. The returned
// cursor is positioned after the last directive.
func directives(c Cursor, seen directiveSet, fn func(d directive) (Cursor, error)) (Cursor, error) {
	for {
		n, ok := c.Directive()
		if !ok {
			return c, nil
		}
		at := n
		n, kw, ok := n.Token()
		if !ok {
			return c, at.errorf(effect.KindMalformedDirective, "expected directive keyword after %q", DirectiveMarker)
		}
		if !seen.add(kw) {
			return c, at.errorf(effect.KindConstraintViolation, "duplicate %s directive", kw)
		}
		var err error
		if c, err = fn(directive{keyword: kw, at: at, next: n}); err != nil {
			return c, err
		}
	}
}

// codeDirective finds the first line of code starting at c that opens with a
// directive marker. Directives must precede the code of a block.
func codeDirective(c Cursor) (Cursor, bool) {
	for !c.AtEnd() {
		if at := c.SkipSpaces(); strings.HasPrefix(at.Rest(), DirectiveMarker) {
			return at, true
		}
		c, _ = c.line()
	}
	return c, false
}

// blockOpening consumes the remainder of a block's opening line, which must
// be blank.
func blockOpening(b Block) (Cursor, error) {
	c, ok := b.Cursor().Newline()
	if !ok {
		return c, c.SkipSpaces().errorf(effect.KindMalformedDirective, "unexpected text after %s", b.Kind)
	}
	return c, nil
}

func unknownDirective(d directive, kind BlockKind) error {
	return d.at.errorf(effect.KindMalformedDirective, "unknown %s directive %s", kind, d.keyword)
}

// tokenArg reads a single-token argument ending the line.
func tokenArg(d directive) (Cursor, string, error) {
	n, tok, ok := d.next.Token()
	if ok {
		if n, ok = n.Newline(); ok {
			return n, tok, nil
		}
	}
	return d.next, "", d.next.errorf(effect.KindMalformedDirective, "%s expects a single token", d.keyword)
}

// exprArg reads an expression argument.
func exprArg(d directive) (Cursor, string, error) {
	n, expr, ok := d.next.Expr()
	if !ok {
		return d.next, "", d.next.errorf(effect.KindMalformedDirective, "%s expects an expression", d.keyword)
	}
	return n, expr, nil
}

// literalArg reads a free text argument.
func literalArg(d directive) (Cursor, string, error) {
	n, text, ok := d.next.LiteralLine()
	if !ok {
		return d.next, "", d.next.errorf(effect.KindMalformedDirective, "%s expects a value", d.keyword)
	}
	return n, text, nil
}

// noArg checks that the directive line has no argument.
func noArg(d directive) (Cursor, error) {
	n, ok := d.next.Newline()
	if !ok {
		return d.next, d.next.SkipSpaces().errorf(effect.KindMalformedDirective, "%s takes no argument", d.keyword)
	}
	return n, nil
}

// declaration parses a code section of the form "<typ> <ident>;" followed
// only by blank text. One of types must match.
func declaration(c Cursor, kind BlockKind, types ...string) (typ, name string, err error) {
	start := c.SkipBlank()
	n, typ, ok := start.Token()
	if !ok || !slices.Contains(types, typ) {
		return "", "", start.errorf(effect.KindMalformedDirective, "%s block must declare %s", kind, joinOr(types))
	}
	at := n.SkipSpaces()
	n, name, ok = n.Token()
	if !ok {
		return "", "", at.errorf(effect.KindMalformedDirective, "expected identifier after %s", typ)
	}
	if n, ok = n.SkipSpaces().Consume(";"); !ok {
		return "", "", n.SkipSpaces().errorf(effect.KindMalformedDirective, "expected ';' after %s", name)
	}
	if rest := n.SkipBlank(); !rest.AtEnd() {
		return "", "", rest.errorf(effect.KindMalformedDirective, "unexpected code in %s block", kind)
	}
	return typ, name, nil
}

func joinOr(list []string) string {
	switch len(list) {
	case 0:
		return ""
	case 1:
		return list[0]
	}
	out := list[0]
	for _, s := range list[1 : len(list)-1] {
		out += ", " + s
	}
	return out + " or " + list[len(list)-1]
}
