// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/scalerfx"
)

const sharpen = "../../testdata/Sharpen.hlsl"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { scalerfx.SetLogger(nil) })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// fakeFXC writes a script that copies its input file to the /Fo output.
func fakeFXC(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	bin := filepath.Join(t.TempDir(), "fxc")
	script := "#!/bin/sh\nprev=\"\"\nfor a in \"$@\"; do\n  if [ \"$prev\" = \"/Fo\" ]; then out=\"$a\"; fi\n  prev=\"$a\"\n  last=\"$a\"\ndone\ncp \"$last\" \"$out\"\n"
	require.NoError(t, os.WriteFile(bin, []byte(script), 0o755))
	return bin
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "scalerfxc version "+scalerfxcVersion+"\n", out)
}

func TestCompileCommand(t *testing.T) {
	fxc := fakeFXC(t)
	cacheDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "bin")
	dumpDir := filepath.Join(t.TempDir(), "src")

	out, err := run(t, "compile", "--fxc", fxc, "--cache-dir", cacheDir, "-o", outDir, "--dump-source", dumpDir, sharpen)
	require.NoError(t, err)
	assert.Equal(t, sharpen+": Sharpen, 2 passes, 3 textures\n", out)

	for _, name := range []string{"Sharpen.pass1.cso", "Sharpen.pass2.cso"} {
		assert.FileExists(t, filepath.Join(outDir, name))
	}
	src, err := os.ReadFile(filepath.Join(dumpDir, "Sharpen.pass2.hlsl"))
	require.NoError(t, err)
	bin, err := os.ReadFile(filepath.Join(outDir, "Sharpen.pass2.cso"))
	require.NoError(t, err)
	assert.Equal(t, string(src), string(bin), "fake compiler echoes its input")
	assert.Contains(t, string(src), "Texture2D blurred : register(t1);")

	cached, err := filepath.Glob(filepath.Join(cacheDir, "*.sfxc"))
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	out, err = run(t, "cache", "prune", "--cache-dir", cacheDir)
	require.NoError(t, err)
	assert.Contains(t, out, "removed 1 cache files")
}

func TestCompileCommandKeepGoing(t *testing.T) {
	fxc := fakeFXC(t)
	bad := filepath.Join(t.TempDir(), "Bad.hlsl")
	require.NoError(t, os.WriteFile(bad, []byte("not an effect\n"), 0o644))
	missing := filepath.Join(t.TempDir(), "Missing.hlsl")

	out, err := run(t, "compile", "--no-cache", "--fxc", fxc, "-k", "-j", "2", bad, sharpen, missing)
	require.Error(t, err)
	assert.Contains(t, out, "Sharpen, 2 passes")
	assert.ErrorContains(t, err, "Bad.hlsl")
	assert.ErrorContains(t, err, "Missing.hlsl")
}

func TestInspectCommand(t *testing.T) {
	out, err := run(t, "inspect", "--no-backend", "--cache-dir", t.TempDir(), sharpen)
	require.NoError(t, err)

	for _, want := range []string{
		"Effect Sharpen (version 1)",
		"description: Blur then unsharp mask",
		"output size: INPUT_WIDTH x INPUT_HEIGHT",
		"float strength = 0.5 min 0 max 2 \"Strength\"",
		"float inputPtX = INPUT_PT_X",
		"[2] blurred R16G16B16A16_FLOAT",
		"[0] sam LINEAR CLAMP",
		"1: bind [INPUT] save [blurred]",
		"2: bind [INPUT, blurred] -> OUTPUT",
	} {
		assert.Contains(t, out, want)
	}
}

func TestInspectCommandReportsLocation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Broken.hlsl")
	src := "//!MPC SCALER\n//!VERSION 1\n//!PASS 1\n//!BIND nope\nfloat4 Pass1(float2 pos) { return 0; }\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	_, err := run(t, "inspect", "--no-backend", path)
	require.Error(t, err)

	var buf bytes.Buffer
	printError(&buf, err)
	assert.Contains(t, buf.String(), "undeclared texture nope")
	assert.Contains(t, buf.String(), "--> line 4:")
	assert.Contains(t, buf.String(), "//!BIND nope")
}

func TestInvalidShaderModel(t *testing.T) {
	_, err := run(t, "inspect", "--no-backend", "--shader-model", "4_0", sharpen)
	assert.ErrorContains(t, err, "unknown shader model")
}

func TestOptionsCacheSalt(t *testing.T) {
	salt := func(path string, args ...string) string {
		cfg := DefaultConfig()
		cfg.NoCache = true
		cfg.FXCPath = path
		cfg.FXCArgs = args
		opts, err := (&app{cfg: cfg}).options(nil, true)
		require.NoError(t, err)
		return opts.CacheSalt
	}

	base := salt("fxc")
	assert.NotEmpty(t, base)
	assert.Equal(t, base, salt("fxc"))
	assert.NotEqual(t, base, salt("/opt/sdk/fxc"))
	assert.NotEqual(t, base, salt("fxc", "/O3"))
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scalerfxc.yaml")
	data := "cache_dir: /tmp/fx\nshader_model: ps_6_0\nfxc_path: dxc\nfxc_args: [\"/O3\"]\nkeep_going: true\njobs: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fx", cfg.CacheDir)
	assert.Equal(t, "ps_6_0", cfg.ShaderModel)
	assert.Equal(t, "dxc", cfg.FXCPath)
	assert.Equal(t, []string{"/O3"}, cfg.FXCArgs)
	assert.True(t, cfg.KeepGoing)
	assert.Equal(t, 4, cfg.Jobs)
	assert.Equal(t, 1, cfg.Parallelism, "unset keys keep their defaults")
	require.NoError(t, cfg.validate())

	changed := map[string]bool{"jobs": true, "fxc": true}
	cfg.override(Config{Jobs: 8, FXCPath: "fxc2", CacheDir: "ignored"}, func(name string) bool { return changed[name] })
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, "fxc2", cfg.FXCPath)
	assert.Equal(t, "/tmp/fx", cfg.CacheDir)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "not found")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jobs: [1\n"), 0o644))
	_, err = loadConfig(path)
	assert.ErrorContains(t, err, "parse config")

	cfg := DefaultConfig()
	cfg.Jobs = 0
	assert.Error(t, cfg.validate())
}
