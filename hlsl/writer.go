// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package hlsl

import (
	"fmt"
	"strings"
)

// Writer accumulates generated HLSL source.
type Writer struct {
	out    strings.Builder
	indent int
}

// writeLine writes one indented line.
func (w *Writer) writeLine(format string, args ...any) {
	for i := 0; i < w.indent; i++ {
		w.out.WriteByte('\t')
	}
	fmt.Fprintf(&w.out, format, args...)
	w.out.WriteByte('\n')
}

// writeRaw writes text verbatim, adding a trailing line break if missing.
func (w *Writer) writeRaw(text string) {
	if text == "" {
		return
	}
	w.out.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		w.out.WriteByte('\n')
	}
}

// String returns the generated source.
func (w *Writer) String() string {
	return w.out.String()
}
