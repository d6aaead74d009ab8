// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/scalerfx/hlsl"
)

// Config is the scalerfxc configuration file.
//
//	cache_dir: ~/.cache/scalerfx
//	shader_model: "5_0"
//	fxc_path: C:/Program Files (x86)/Windows Kits/10/bin/x64/fxc.exe
//	fxc_args: ["/O3"]
//	keep_going: false
//	jobs: 4
//	parallelism: 2
type Config struct {
	CacheDir    string   `yaml:"cache_dir"`
	NoCache     bool     `yaml:"no_cache"`
	ShaderModel string   `yaml:"shader_model"`
	FXCPath     string   `yaml:"fxc_path"`
	FXCArgs     []string `yaml:"fxc_args"`
	KeepGoing   bool     `yaml:"keep_going"`
	Jobs        int      `yaml:"jobs"`
	Parallelism int      `yaml:"parallelism"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return Config{
		CacheDir:    filepath.Join(dir, "scalerfx"),
		ShaderModel: hlsl.ShaderModel5_0.ProfileSuffix(),
		FXCPath:     "fxc",
		Jobs:        1,
		Parallelism: 1,
	}
}

// loadConfig reads path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("config file %s not found", path)
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// override copies the fields of flags whose command-line flag was set.
func (c *Config) override(flags Config, changed func(name string) bool) {
	if changed("cache-dir") {
		c.CacheDir = flags.CacheDir
	}
	if changed("no-cache") {
		c.NoCache = flags.NoCache
	}
	if changed("fxc") {
		c.FXCPath = flags.FXCPath
	}
	if changed("shader-model") {
		c.ShaderModel = flags.ShaderModel
	}
	if changed("keep-going") {
		c.KeepGoing = flags.KeepGoing
	}
	if changed("jobs") {
		c.Jobs = flags.Jobs
	}
	if changed("parallel-passes") {
		c.Parallelism = flags.Parallelism
	}
}

func (c *Config) validate() error {
	if _, err := hlsl.ParseShaderModel(c.ShaderModel); err != nil {
		return err
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	return nil
}
