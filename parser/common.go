// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package parser

import (
	"strings"

	"github.com/gogpu/scalerfx/effect"
)

// ResolveCommon returns the code of a COMMON block, ending with a line break.
// COMMON blocks take no directives.
func ResolveCommon(b Block) (string, error) {
	c, err := blockOpening(b)
	if err != nil {
		return "", err
	}
	if d, ok := codeDirective(c); ok {
		return "", d.errorf(effect.KindConstraintViolation, "COMMON blocks take no directives")
	}
	code := strings.TrimSpace(c.Rest())
	if code == "" {
		return "", nil
	}
	return code + "\n", nil
}
