// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package backend defines the shader compiler used to turn generated pass
// sources into binary shader objects.
package backend

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/gogpu/scalerfx/effect"
)

// Compiler compiles one HLSL source to a binary shader object.
//
// Compile may be called from several goroutines at once when passes are
// compiled in parallel.
type Compiler interface {
	Compile(source, entryPoint, profile string) ([]byte, error)
}

// Func adapts a function to the Compiler interface.
type Func func(source, entryPoint, profile string) ([]byte, error)

// Compile calls f.
func (f Func) Compile(source, entryPoint, profile string) ([]byte, error) {
	return f(source, entryPoint, profile)
}

// FXC runs an external command-line shader compiler such as fxc.exe or
// dxc.exe. Both accept the /T, /E and /Fo switches used here.
type FXC struct {
	// Bin is the compiler executable. Defaults to "fxc".
	Bin string

	// Args are extra arguments placed before the input file, e.g. "/O3".
	Args []string

	// WorkDir holds temporary files. Defaults to the system temp directory.
	WorkDir string
}

// NewFXC returns an FXC running bin.
func NewFXC(bin string) *FXC {
	return &FXC{Bin: bin}
}

// Fingerprint identifies the compiler binary and its extra arguments.
func (c *FXC) Fingerprint() string {
	bin := c.Bin
	if bin == "" {
		bin = "fxc"
	}
	return strings.Join(append([]string{bin}, c.Args...), "\x00")
}

// Compile writes source to a temporary file, runs the compiler on it and
// returns the object file it produced.
func (c *FXC) Compile(source, entryPoint, profile string) ([]byte, error) {
	bin := c.Bin
	if bin == "" {
		bin = "fxc"
	}

	dir, err := os.MkdirTemp(c.WorkDir, "scalerfx-*")
	if err != nil {
		return nil, effect.WrapError(effect.KindIO, err, "create compiler work directory")
	}
	defer os.RemoveAll(dir)

	in := filepath.Join(dir, "pass.hlsl")
	out := filepath.Join(dir, "pass.cso")
	if err := os.WriteFile(in, []byte(source), 0o644); err != nil {
		return nil, effect.WrapError(effect.KindIO, err, "write compiler input")
	}

	args := []string{"/nologo", "/T", profile, "/E", entryPoint, "/Fo", out}
	args = append(args, c.Args...)
	args = append(args, in)

	cmd := exec.Command(bin, args...)
	var stderr bytes.Buffer
	cmd.Stdout = &stderr
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = fmt.Sprintf("failed to run %v", cmd.Args)
		}
		return nil, effect.WrapError(effect.KindBackend, err, "%s", msg)
	}

	compiled, err := os.ReadFile(out)
	if err != nil {
		return nil, effect.WrapError(effect.KindBackend, err, "unable to read output %q", out)
	}
	return compiled, nil
}

// Source is a Compiler that returns the source text itself as the binary.
// It lets effects be parsed, validated and cached on machines without a
// native compiler.
type Source struct{}

// Compile returns source unchanged.
func (Source) Compile(source, _, _ string) ([]byte, error) {
	return []byte(source), nil
}
