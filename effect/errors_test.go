// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package effect

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorKind_String(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindMalformedDirective, "MalformedDirective"},
		{KindConstraintViolation, "ConstraintViolation"},
		{KindStructural, "StructuralError"},
		{KindIO, "IOError"},
		{KindBackend, "CompileBackendError"},
		{KindCacheIntegrity, "CacheIntegrityError"},
		{ErrorKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("ErrorKind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Error(t *testing.T) {
	err1 := NewError(KindConstraintViolation, "duplicate name %q", "tex")
	got1 := err1.Error()
	if !strings.Contains(got1, "ConstraintViolation") || !strings.Contains(got1, `"tex"`) {
		t.Errorf("Error() = %q", got1)
	}

	err2 := &Error{Kind: KindMalformedDirective, Message: "unknown directive", Line: 4, Column: 3}
	if got := err2.Error(); !strings.HasPrefix(got, "4:3: ") {
		t.Errorf("Error() with location = %q, want 4:3 prefix", got)
	}
}

func TestError_FormatWithContext(t *testing.T) {
	err := &Error{
		Kind:    KindMalformedDirective,
		Message: "unknown directive FOO",
		Line:    2,
		Column:  4,
		Source:  "//!MPC SCALER\n//!FOO 1\n",
	}

	got := err.FormatWithContext()
	if !strings.Contains(got, "  2| //!FOO 1") {
		t.Errorf("missing source line in %q", got)
	}
	if !strings.Contains(got, "   |    ^") {
		t.Errorf("caret misplaced in %q", got)
	}

	noSource := &Error{Kind: KindIO, Message: "read failed"}
	if noSource.FormatWithContext() != noSource.Error() {
		t.Error("FormatWithContext without source should equal Error()")
	}
}

func TestIsKind(t *testing.T) {
	cause := errors.New("disk full")
	wrapped := fmt.Errorf("save: %w", WrapError(KindIO, cause, "write cache file"))

	if !IsKind(wrapped, KindIO) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should reach the cause")
	}
	if IsKind(wrapped, KindBackend) {
		t.Error("IsKind matched the wrong kind")
	}

	joined := errors.Join(NewError(KindBackend, "pass 1"), NewError(KindBackend, "pass 2"))
	if !IsKind(joined, KindBackend) {
		t.Error("IsKind should match joined errors")
	}
	if kind, ok := KindOf(joined); !ok || kind != KindBackend {
		t.Errorf("KindOf(joined) = %v, %v", kind, ok)
	}
	if IsKind(nil, KindIO) {
		t.Error("IsKind(nil) should be false")
	}
}
