// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package scalerfx compiles scaler effect files into effect descriptors.
//
// An effect file describes a GPU post-processing effect as HLSL code
// annotated with directives: tunable constants, intermediate textures,
// samplers, shared code and an ordered list of passes. scalerfx parses and
// validates the file, generates the pixel shader source of every pass,
// compiles each one with a [backend.Compiler] and returns an [effect.Desc]
// ready for a renderer.
//
// Example usage:
//
//	c, err := cache.New(cache.Options{Dir: "cache"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts := scalerfx.DefaultOptions()
//	opts.Compiler = backend.NewFXC("fxc.exe")
//	opts.Cache = c
//
//	desc, err := scalerfx.Compile("effects/Sharpen.hlsl", opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Compiled descriptors are cached by source identity and a digest of the
// comment-stripped source, so recompiling an unchanged file does not invoke
// the backend.
package scalerfx

import (
	"go.uber.org/zap"

	"github.com/gogpu/scalerfx/backend"
	"github.com/gogpu/scalerfx/cache"
	"github.com/gogpu/scalerfx/hlsl"
	"github.com/gogpu/scalerfx/internal/logging"
)

// Options configures effect compilation.
type Options struct {
	// Compiler compiles generated pass sources. Required.
	Compiler backend.Compiler

	// Cache, if set, is consulted before parsing and updated after a
	// successful compilation.
	Cache *cache.Cache

	// ShaderModel selects the pixel shader profile (default: SM 5.0, ps_5_0).
	ShaderModel hlsl.ShaderModel

	// KeepGoing compiles every pass even after one fails, so that all
	// backend diagnostics are reported together.
	KeepGoing bool

	// Parallelism is the number of passes compiled concurrently.
	// Zero or one compiles passes sequentially.
	Parallelism int

	// Identity overrides the cache identity of the effect. Defaults to the
	// path given to Compile.
	Identity string

	// CacheSalt identifies the compiler configuration, such as the compiler
	// binary and its arguments. It is part of the cache key, so changing it
	// invalidates cached descriptors.
	CacheSalt string

	// OnSource, if set, receives the generated source of each pass (1-based)
	// before it is compiled. With Parallelism above one it is called
	// concurrently. Setting it disables cache lookups so that every pass is
	// generated; the result is still saved to the cache.
	OnSource func(pass int, source string)
}

// DefaultOptions returns sensible default options. The caller must still set
// Compiler.
func DefaultOptions() Options {
	return Options{
		ShaderModel: hlsl.ShaderModel5_0,
		Parallelism: 1,
	}
}

// SetLogger configures the logger for scalerfx and all its sub-packages.
// By default scalerfx produces no log output. Pass nil to restore the silent
// default.
//
// Log levels used by scalerfx:
//   - Debug: stage transitions, cache hits and misses, evictions
//   - Warn: cache files that failed verification or could not be written
func SetLogger(l *zap.Logger) {
	logging.Set(l)
}

// Logger returns the current logger.
func Logger() *zap.Logger {
	return logging.L()
}
