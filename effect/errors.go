// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind categorizes effect compilation errors.
type ErrorKind uint8

const (
	// KindMalformedDirective indicates an unknown keyword or a directive
	// argument of the wrong shape.
	KindMalformedDirective ErrorKind = iota

	// KindConstraintViolation indicates a duplicate or conflicting directive,
	// a missing requirement, an out-of-range bound, a dangling texture
	// reference or a duplicate name.
	KindConstraintViolation

	// KindStructural indicates a problem with the file as a whole: bad magic
	// header, version mismatch, missing or unfilled passes.
	KindStructural

	// KindIO indicates the effect or a cache file could not be read or written.
	KindIO

	// KindBackend indicates the shader compiler rejected a generated source.
	KindBackend

	// KindCacheIntegrity indicates a cache file failed digest or version
	// verification.
	KindCacheIntegrity
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case KindMalformedDirective:
		return "MalformedDirective"
	case KindConstraintViolation:
		return "ConstraintViolation"
	case KindStructural:
		return "StructuralError"
	case KindIO:
		return "IOError"
	case KindBackend:
		return "CompileBackendError"
	case KindCacheIntegrity:
		return "CacheIntegrityError"
	default:
		return "Unknown"
	}
}

// Error is an effect compilation error.
type Error struct {
	Kind    ErrorKind
	Message string

	// Line and Column locate the error in the comment-stripped source.
	// Line is zero when no location is known.
	Line   int
	Column int

	// Source is the text the location refers to, for context display.
	Source string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Line == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, msg)
	}
	return fmt.Sprintf("%d:%d: %s: %s", e.Line, e.Column, e.Kind, msg)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// FormatWithContext returns the error message followed by the offending
// source line and a caret under the error column.
func (e *Error) FormatWithContext() string {
	if e.Source == "" || e.Line == 0 {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	if e.Line > len(lines) {
		return e.Error()
	}

	line := lines[e.Line-1]
	col := min(max(e.Column, 1), len(line)+1)

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	fmt.Fprintf(&sb, "  --> line %d:%d\n", e.Line, col)
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", e.Line, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))
	return sb.String()
}

// NewError creates an error without location information.
func NewError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError creates an error of the given kind around cause.
func WrapError(kind ErrorKind, cause error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err's chain contains an *Error of the given kind.
// Joined errors match if any of their members match.
func IsKind(err error, kind ErrorKind) bool {
	if err == nil {
		return false
	}
	if e, ok := err.(*Error); ok && e.Kind == kind {
		return true
	}
	switch u := err.(type) {
	case interface{ Unwrap() []error }:
		for _, inner := range u.Unwrap() {
			if IsKind(inner, kind) {
				return true
			}
		}
		return false
	case interface{ Unwrap() error }:
		return IsKind(u.Unwrap(), kind)
	}
	return false
}
