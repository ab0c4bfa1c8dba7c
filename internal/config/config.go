// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads parser settings from a TOML or YAML file.
//
// A configuration file looks like this (TOML):
//
//	strict = false
//	legacy = true
//	strict_warnings = true
//	max_depth = 500
//	charset = "windows-1252"
//	output = "json"
//	predeclared = ["print", "Math"]
//
// The format is chosen by the file extension: .yaml and .yml are YAML,
// anything else is TOML.
package config // import "go.jsfront.dev/internal/config"

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"go.jsfront.dev/atom"
	"go.jsfront.dev/syntax"
)

// Format is the syntax of a configuration file.
type Format int

const (
	FormatAuto Format = iota // by file extension
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	}
	return "unknown"
}

// Output formats accepted by Config.Output.
var Outputs = []string{"tree", "sexpr", "json", "text"}

// Config holds the settings a configuration file may contain.
// The zero Config gives the parser's defaults.
type Config struct {
	StrictMode     bool     `toml:"strict" yaml:"strict"`
	AllowLegacy    bool     `toml:"legacy" yaml:"legacy"`
	FoldConstants  bool     `toml:"fold_constants" yaml:"fold_constants"`
	StrictWarnings bool     `toml:"strict_warnings" yaml:"strict_warnings"`
	MaxDepth       int      `toml:"max_depth" yaml:"max_depth"`
	MaxNodes       int      `toml:"max_nodes" yaml:"max_nodes"`
	StartLine      int      `toml:"start_line" yaml:"start_line"`
	Charset        string   `toml:"charset" yaml:"charset"`         // source encoding; UTF-8 if empty
	Output         string   `toml:"output" yaml:"output"`           // one of Outputs; tree if empty
	Predeclared    []string `toml:"predeclared" yaml:"predeclared"` // names supplied by the environment
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatTOML
}

// Parse decodes a configuration in the given format and validates it.
// Unknown keys are errors. FormatAuto means TOML.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := new(Config)
	switch format {
	case FormatAuto, FormatTOML:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown configuration key %s", undecoded[0])
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are within range.
func (cfg *Config) Validate() error {
	switch {
	case cfg.MaxDepth < 0:
		return fmt.Errorf("max_depth must not be negative, got %d", cfg.MaxDepth)
	case cfg.MaxNodes < 0:
		return fmt.Errorf("max_nodes must not be negative, got %d", cfg.MaxNodes)
	case cfg.StartLine < 0:
		return fmt.Errorf("start_line must not be negative, got %d", cfg.StartLine)
	}
	if cfg.Output != "" && !validOutput(cfg.Output) {
		return fmt.Errorf("output must be one of %s, got %q", strings.Join(Outputs, ", "), cfg.Output)
	}
	return nil
}

func validOutput(s string) bool {
	for _, o := range Outputs {
		if o == s {
			return true
		}
	}
	return false
}

// Options returns the parser options the configuration describes.
// atoms and logger may be nil.
func (cfg *Config) Options(atoms *atom.Table, logger *slog.Logger) *syntax.Options {
	return &syntax.Options{
		StrictMode:     cfg.StrictMode,
		AllowLegacy:    cfg.AllowLegacy,
		FoldConstants:  cfg.FoldConstants,
		StrictWarnings: cfg.StrictWarnings,
		MaxDepth:       cfg.MaxDepth,
		MaxNodes:       cfg.MaxNodes,
		Atoms:          atoms,
		Logger:         logger,
	}
}

// IsPredeclared reports whether name is listed as predeclared.
// It returns nil if no names are listed.
func (cfg *Config) IsPredeclared() func(name string) bool {
	if len(cfg.Predeclared) == 0 {
		return nil
	}
	set := make(map[string]bool, len(cfg.Predeclared))
	for _, name := range cfg.Predeclared {
		set[name] = true
	}
	return func(name string) bool { return set[name] }
}
