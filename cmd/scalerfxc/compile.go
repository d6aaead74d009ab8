// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/scalerfx"
	"github.com/gogpu/scalerfx/backend"
	"github.com/gogpu/scalerfx/cache"
	"github.com/gogpu/scalerfx/effect"
	"github.com/gogpu/scalerfx/hlsl"
)

// fileError attributes an error to an effect file.
type fileError struct {
	path string
	err  error
}

func (e *fileError) Error() string { return e.path + ": " + e.err.Error() }

func (e *fileError) Unwrap() error { return e.err }

// options builds compile options from the configuration. A nil compiler
// selects fxc.
func (a *app) options(compiler backend.Compiler, useCache bool) (scalerfx.Options, error) {
	opts := scalerfx.DefaultOptions()

	sm, err := hlsl.ParseShaderModel(a.cfg.ShaderModel)
	if err != nil {
		return opts, err
	}
	opts.ShaderModel = sm
	opts.KeepGoing = a.cfg.KeepGoing
	opts.Parallelism = a.cfg.Parallelism

	if compiler == nil {
		fxc := backend.NewFXC(a.cfg.FXCPath)
		fxc.Args = a.cfg.FXCArgs
		compiler = fxc
		opts.CacheSalt = fxc.Fingerprint()
	}
	opts.Compiler = compiler

	if useCache && !a.cfg.NoCache {
		c, err := cache.New(cache.Options{Dir: a.cfg.CacheDir})
		if err != nil {
			return opts, err
		}
		opts.Cache = c
	}
	return opts, nil
}

func newCompileCmd(a *app) *cobra.Command {
	var outDir, dumpDir string

	cmd := &cobra.Command{
		Use:   "compile <file>...",
		Short: "Compile effect files into the cache",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(nil, true)
			if err != nil {
				return err
			}
			for _, dir := range []string{outDir, dumpDir} {
				if dir == "" {
					continue
				}
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return err
				}
			}
			return a.compileFiles(cmd.OutOrStdout(), args, opts, outDir, dumpDir)
		},
	}
	cmd.Flags().StringVarP(&outDir, "out-dir", "o", "", "write compiled pass binaries to this directory")
	cmd.Flags().StringVar(&dumpDir, "dump-source", "", "write the generated HLSL of every pass to this directory")
	return cmd
}

// compileFiles compiles paths with up to cfg.Jobs effects in flight and
// prints one summary line per compiled effect, in argument order.
func (a *app) compileFiles(out io.Writer, paths []string, opts scalerfx.Options, outDir, dumpDir string) error {
	results := make([]*effect.Desc, len(paths))
	errs := make([]error, len(paths))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(a.cfg.Jobs)

	for i, path := range paths {
		g.Go(func() error {
			if !a.cfg.KeepGoing && ctx.Err() != nil {
				return nil
			}
			o := opts
			if dumpDir != "" {
				o.OnSource = a.sourceDumper(dumpDir, path)
			}
			d, err := scalerfx.Compile(path, o)
			if err == nil && outDir != "" {
				err = writeBinaries(outDir, d)
			}
			if err != nil {
				errs[i] = &fileError{path: path, err: err}
				if !a.cfg.KeepGoing {
					return errs[i]
				}
				return nil
			}
			results[i] = d
			return nil
		})
	}
	waitErr := g.Wait()

	for i, d := range results {
		if d == nil {
			continue
		}
		fmt.Fprintf(out, "%s: %s, %d passes, %d textures\n", paths[i], d.Name, len(d.Passes), len(d.Textures))
	}
	if waitErr != nil {
		return waitErr
	}
	return errors.Join(errs...)
}

// sourceDumper returns an OnSource hook writing <dir>/<name>.pass<N>.hlsl.
func (a *app) sourceDumper(dir, path string) func(int, string) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return func(pass int, source string) {
		name := filepath.Join(dir, fmt.Sprintf("%s.pass%d.hlsl", base, pass))
		if err := os.WriteFile(name, []byte(source), 0o644); err != nil {
			a.logger.Warn("failed to dump pass source", zap.String("path", name), zap.Error(err))
		}
	}
}

// writeBinaries writes <dir>/<name>.pass<N>.cso for every pass of d.
func writeBinaries(dir string, d *effect.Desc) error {
	for i, p := range d.Passes {
		name := filepath.Join(dir, fmt.Sprintf("%s.pass%d.cso", d.Name, i+1))
		if err := os.WriteFile(name, p.Binary, 0o644); err != nil {
			return effect.WrapError(effect.KindIO, err, "write pass %d binary", i+1)
		}
	}
	return nil
}

func newInspectCmd(a *app) *cobra.Command {
	var noBackend bool

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Print the descriptor of an effect",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var compiler backend.Compiler
			if noBackend {
				compiler = backend.Source{}
			}
			// Stub binaries must not reach the cache.
			opts, err := a.options(compiler, !noBackend)
			if err != nil {
				return err
			}
			d, err := scalerfx.Compile(args[0], opts)
			if err != nil {
				return &fileError{path: args[0], err: err}
			}
			writeDesc(cmd.OutOrStdout(), d)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noBackend, "no-backend", false, "validate and generate sources without invoking fxc")
	return cmd
}

// writeDesc prints a human-readable summary of d.
func writeDesc(w io.Writer, d *effect.Desc) {
	fmt.Fprintf(w, "Effect %s (version %d)\n", d.Name, d.Version)
	if d.Description != "" {
		fmt.Fprintf(w, "  description: %s\n", d.Description)
	}
	if d.ScalerType != "" {
		fmt.Fprintf(w, "  scaler type: %s\n", d.ScalerType)
	}
	if d.HasOutSize() {
		fmt.Fprintf(w, "  output size: %s x %s\n", d.OutSizeExpr[0], d.OutSizeExpr[1])
	}

	if len(d.Constants) > 0 {
		fmt.Fprintln(w, "Constants:")
		for _, c := range d.Constants {
			fmt.Fprintf(w, "  %s %s = %s", c.Type, c.Name, formatValue(c.Type, c.Default))
			if c.HasMin {
				fmt.Fprintf(w, " min %s", formatValue(c.Type, c.Min))
			}
			if c.HasMax {
				fmt.Fprintf(w, " max %s", formatValue(c.Type, c.Max))
			}
			if c.Label != "" {
				fmt.Fprintf(w, " %q", c.Label)
			}
			fmt.Fprintln(w)
		}
	}
	for _, group := range []struct {
		title string
		list  []effect.ValueConstant
	}{
		{"Value constants:", d.ValueConstants},
		{"Dynamic constants:", d.DynamicValueConstants},
	} {
		if len(group.list) == 0 {
			continue
		}
		fmt.Fprintln(w, group.title)
		for _, c := range group.list {
			fmt.Fprintf(w, "  %s %s = %s\n", c.Type, c.Name, c.Expr)
		}
	}

	fmt.Fprintln(w, "Textures:")
	for i, t := range d.Textures {
		switch {
		case i == effect.InputIndex || i == effect.OutputIndex:
			fmt.Fprintf(w, "  [%d] %s\n", i, t.Name)
		case t.Source != "":
			fmt.Fprintf(w, "  [%d] %s from %s\n", i, t.Name, t.Source)
		default:
			fmt.Fprintf(w, "  [%d] %s %s (gpu format %v)", i, t.Name, t.Format, t.Format.GPUFormat())
			if t.SizeExpr[0] != "" {
				fmt.Fprintf(w, " %s x %s", t.SizeExpr[0], t.SizeExpr[1])
			}
			fmt.Fprintln(w)
		}
	}

	if len(d.Samplers) > 0 {
		fmt.Fprintln(w, "Samplers:")
		for i, s := range d.Samplers {
			fmt.Fprintf(w, "  [%d] %s %s %s\n", i, s.Name, s.Filter, s.Address)
		}
	}

	fmt.Fprintln(w, "Passes:")
	for i, p := range d.Passes {
		fmt.Fprintf(w, "  %d: bind %s", i+1, textureNames(d, p.Inputs))
		if len(p.Outputs) > 0 {
			fmt.Fprintf(w, " save %s", textureNames(d, p.Outputs))
		} else {
			fmt.Fprint(w, " -> OUTPUT")
		}
		fmt.Fprintf(w, " (%d bytes)\n", len(p.Binary))
	}
}

func formatValue(t effect.ConstantType, v effect.Value) string {
	if t == effect.Int {
		return fmt.Sprint(v.Int)
	}
	return fmt.Sprint(v.Float)
}

func textureNames(d *effect.Desc, indices []int) string {
	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = d.Textures[idx].Name
	}
	return "[" + strings.Join(names, ", ") + "]"
}
