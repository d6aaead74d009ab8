// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Command scalerfxc compiles scaler effect files.
//
// Usage:
//
//	scalerfxc compile [flags] <file>...
//	scalerfxc inspect [flags] <file>
//	scalerfxc cache prune
//	scalerfxc version
//
// Examples:
//
//	scalerfxc compile effects/*.hlsl              # Compile and cache every effect
//	scalerfxc compile -o out Sharpen.hlsl         # Also write pass binaries to out/
//	scalerfxc compile --dump-source src FSR.hlsl  # Write generated HLSL per pass
//	scalerfxc inspect --no-backend Sharpen.hlsl   # Show the descriptor without fxc
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gogpu/scalerfx"
	"github.com/gogpu/scalerfx/effect"
)

const scalerfxcVersion = "0.1.0-dev"

// app holds the state shared by all commands.
type app struct {
	configPath string
	verbose    bool
	flags      Config

	cfg    Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "scalerfxc",
		Short:         "Compile scaler effect files",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.flags.CacheDir, "cache-dir", "", "effect cache directory")
	pf.BoolVar(&a.flags.NoCache, "no-cache", false, "disable the effect cache")
	pf.StringVar(&a.flags.FXCPath, "fxc", "", "path to the fxc shader compiler")
	pf.StringVar(&a.flags.ShaderModel, "shader-model", "", "pixel shader model, e.g. 5_0 or ps_6_0")
	pf.BoolVarP(&a.flags.KeepGoing, "keep-going", "k", false, "report every failure instead of stopping at the first")
	pf.IntVarP(&a.flags.Jobs, "jobs", "j", 0, "number of effects compiled concurrently")
	pf.IntVar(&a.flags.Parallelism, "parallel-passes", 0, "number of passes of one effect compiled concurrently")

	root.AddCommand(
		newCompileCmd(a),
		newInspectCmd(a),
		newCacheCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and installs the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	cfg.override(a.flags, cmd.Flags().Changed)
	if err := cfg.validate(); err != nil {
		return err
	}
	a.cfg = cfg

	zc := zap.NewProductionConfig()
	zc.Encoding = "console"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if a.verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	scalerfx.SetLogger(a.logger)
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "scalerfxc version %s\n", scalerfxcVersion)
			return nil
		},
	}
}

// printError writes err to w, showing source context for effect errors.
func printError(w io.Writer, err error) {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		for _, e := range joined.Unwrap() {
			printError(w, e)
		}
		return
	}
	var fe *fileError
	if errors.As(err, &fe) {
		var ee *effect.Error
		if errors.As(fe.err, &ee) && ee.Line > 0 {
			fmt.Fprintf(w, "%s: %s", fe.path, ee.FormatWithContext())
			return
		}
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
