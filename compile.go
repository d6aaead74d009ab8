// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package scalerfx

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/scalerfx/digest"
	"github.com/gogpu/scalerfx/effect"
	"github.com/gogpu/scalerfx/hlsl"
	"github.com/gogpu/scalerfx/internal/logging"
	"github.com/gogpu/scalerfx/parser"
)

// Compile reads and compiles the effect file at path.
func Compile(path string, opts Options) (*effect.Desc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, effect.WrapError(effect.KindIO, err, "read effect")
	}
	identity := opts.Identity
	if identity == "" {
		identity = filepath.ToSlash(filepath.Clean(path))
	}
	return CompileSource(identity, string(data), opts)
}

// CompileSource compiles effect source text. identity names the source for
// caching and supplies the descriptor's display name.
//
// The pipeline is:
//  1. Strip comments and compute the cache key
//  2. Return the cached descriptor on a cache hit, unless OnSource is set
//  3. Check the magic line and split the source into blocks
//  4. Resolve the header, constants, textures and samplers
//  5. Validate names, then resolve common code and passes
//  6. Generate and compile every pass
//  7. Store the descriptor in the cache
func CompileSource(identity, source string, opts Options) (*effect.Desc, error) {
	log := logging.L().With(zap.String("effect", identity))

	src, err := parser.StripComments(source)
	if err != nil {
		return nil, err
	}
	hash := cacheKey(src, opts)

	if opts.Cache != nil && opts.OnSource == nil {
		d, err := opts.Cache.Load(identity, hash)
		if err == nil {
			log.Debug("loaded effect from cache", zap.Stringer("hash", hash))
			return d, nil
		}
		log.Debug("cache miss", zap.Error(err))
	}

	d, err := resolve(identity, src, opts)
	if err != nil {
		return nil, err
	}

	if opts.Cache != nil {
		if err := opts.Cache.Save(identity, hash, d); err != nil {
			log.Warn("failed to save effect to cache", zap.Error(err))
		}
	}
	return d, nil
}

// cacheKey digests the comment-stripped source together with the pixel
// profile and the compiler salt. Each field is length-prefixed.
func cacheKey(src string, opts Options) digest.Digest {
	h := digest.New()
	for _, field := range []string{src, opts.ShaderModel.PixelProfile(), opts.CacheSalt} {
		h.WriteString(strconv.Itoa(len(field)))
		h.WriteString(":")
		h.WriteString(field)
	}
	return h.Sum()
}

// resolve runs the parse, resolve and compile stages on comment-stripped
// source.
func resolve(identity, src string, opts Options) (*effect.Desc, error) {
	log := logging.L().With(zap.String("effect", identity))

	start, err := parser.CheckMagic(src)
	if err != nil {
		return nil, err
	}
	blocks, err := parser.SplitBlocks(src, start)
	if err != nil {
		return nil, err
	}
	log.Debug("split effect",
		zap.Int("constants", len(blocks.Constants)),
		zap.Int("textures", len(blocks.Textures)),
		zap.Int("samplers", len(blocks.Samplers)),
		zap.Int("commons", len(blocks.Commons)),
		zap.Int("passes", len(blocks.Passes)))

	d := effect.New()
	d.Name = displayName(identity)

	if err := applyHeader(d, blocks.Header); err != nil {
		return nil, err
	}
	if err := applyConstants(d, blocks.Constants); err != nil {
		return nil, err
	}
	if err := applyTextures(d, blocks.Textures); err != nil {
		return nil, err
	}
	if err := applySamplers(d, blocks.Samplers); err != nil {
		return nil, err
	}
	if err := parser.ValidateNames(d); err != nil {
		return nil, err
	}

	commons := make([]string, 0, len(blocks.Commons))
	for _, b := range blocks.Commons {
		code, err := parser.ResolveCommon(b)
		if err != nil {
			return nil, err
		}
		commons = append(commons, code)
	}

	if err := ResolvePasses(d, blocks.Passes, commons, opts); err != nil {
		return nil, err
	}
	log.Debug("compiled effect", zap.Int("passes", len(d.Passes)))
	return d, nil
}

// displayName returns the base name of identity without its extension.
func displayName(identity string) string {
	base := filepath.Base(filepath.FromSlash(identity))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func applyHeader(d *effect.Desc, b parser.Block) error {
	h, err := parser.ResolveHeader(b)
	if err != nil {
		return err
	}
	d.Version = h.Version
	d.Description = h.Description
	d.ScalerType = h.ScalerType
	d.OutSizeExpr = h.OutSizeExpr
	d.Textures[effect.OutputIndex].SizeExpr = h.OutSizeExpr
	return nil
}

func applyConstants(d *effect.Desc, blocks []parser.Block) error {
	for _, b := range blocks {
		c, err := parser.ResolveConstant(b)
		if err != nil {
			return err
		}
		switch c.Class {
		case parser.ConstantLiteral:
			d.Constants = append(d.Constants, c.Literal)
		case parser.ConstantValue:
			d.ValueConstants = append(d.ValueConstants, c.Value)
		case parser.ConstantDynamic:
			d.DynamicValueConstants = append(d.DynamicValueConstants, c.Value)
		}
	}
	return nil
}

func applyTextures(d *effect.Desc, blocks []parser.Block) error {
	inputDeclared := false
	for _, b := range blocks {
		t, err := parser.ResolveTexture(b)
		if err != nil {
			return err
		}
		if t.Name == effect.InputTexture {
			// The implicit INPUT placeholder is reused.
			if inputDeclared {
				return effect.NewError(effect.KindConstraintViolation, "texture INPUT is declared more than once")
			}
			inputDeclared = true
			continue
		}
		d.Textures = append(d.Textures, t)
	}
	return nil
}

func applySamplers(d *effect.Desc, blocks []parser.Block) error {
	for _, b := range blocks {
		s, err := parser.ResolveSampler(b)
		if err != nil {
			return err
		}
		d.Samplers = append(d.Samplers, s)
	}
	return nil
}

// ResolvePasses resolves the PASS blocks against the textures of d, generates
// the source of every pass and compiles it with opts.Compiler. On success
// d.Passes holds one compiled pass per block, in pass number order.
func ResolvePasses(d *effect.Desc, blocks []parser.Block, commons []string, opts Options) error {
	if opts.Compiler == nil {
		return effect.NewError(effect.KindBackend, "no shader compiler configured")
	}

	decls := make([]parser.PassDecl, 0, len(blocks))
	for _, b := range blocks {
		p, err := parser.ResolvePass(b, d.Textures, len(blocks))
		if err != nil {
			return err
		}
		decls = append(decls, p)
	}
	ordered, err := parser.OrderPasses(decls, d.Textures)
	if err != nil {
		return err
	}

	d.Passes = make([]effect.Pass, len(ordered))
	bodies := make([]string, len(ordered))
	for i, p := range ordered {
		d.Passes[i] = effect.Pass{Inputs: p.Inputs, Outputs: p.Outputs}
		bodies[i] = p.Body
	}

	sources, err := hlsl.Assemble(d, commons, bodies)
	if err != nil {
		return err
	}
	return compilePasses(d, sources, opts)
}

// compilePasses compiles each generated source into d.Passes. Passes are
// independent, so up to opts.Parallelism of them run at once. Unless
// opts.KeepGoing is set, the first failure stops passes that have not
// started yet.
func compilePasses(d *effect.Desc, sources []string, opts Options) error {
	profile := opts.ShaderModel.PixelProfile()
	errs := make([]error, len(sources))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(opts.Parallelism, 1))

	for i, src := range sources {
		g.Go(func() error {
			if !opts.KeepGoing && ctx.Err() != nil {
				return nil
			}
			if opts.OnSource != nil {
				opts.OnSource(i+1, src)
			}
			bin, err := opts.Compiler.Compile(src, hlsl.EntryPoint, profile)
			if err != nil {
				errs[i] = effect.WrapError(effect.KindBackend, err, "compile pass %d", i+1)
				if !opts.KeepGoing {
					return errs[i]
				}
				return nil
			}
			d.Passes[i].Binary = bin
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Join(errs...)
}
