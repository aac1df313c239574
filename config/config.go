// The MIT License (MIT)
//
// Copyright (c) 2016, 2017, 2018 Fabian Wenzelmann
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config provides configuration loading and management for the
// reasoner and its solver backends.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/milp"
	"gopkg.in/yaml.v3"
)

// Config represents the complete configuration
type Config struct {
	Reasoner ReasonerConfig `yaml:"reasoner"`
	Solver   SolverConfig   `yaml:"solver"`
}

// ReasonerConfig configures the fuzzy logic and numeric settings
type ReasonerConfig struct {
	// Semantics is classical, zadeh or lukasiewicz (default: lukasiewicz)
	Semantics string `yaml:"semantics"`
	// Precision is the number of decimal digits of reported values
	Precision int `yaml:"precision"`
	// Epsilon is the numeric tolerance, also used for strict inequalities
	Epsilon float64 `yaml:"epsilon"`
}

// SolverConfig configures the MILP backend
type SolverConfig struct {
	// Backend is one of simplex, pb, cbc and glpk (default: simplex)
	Backend string `yaml:"backend"`
	// Timeout bounds a single optimization, zero means no limit
	Timeout time.Duration `yaml:"timeout"`
	// Partition solves independent parts of a model separately
	Partition bool `yaml:"partition"`
	// Debug keeps the model files written for external solvers
	Debug bool `yaml:"debug"`
	// ArtifactsDir is where debug model files are written
	ArtifactsDir string `yaml:"artifacts_dir"`
	CBCPath      string `yaml:"cbc_path"`
	GLPKPath     string `yaml:"glpk_path"`
	// MaxNodes bounds the branch and bound of the simplex backend
	MaxNodes int `yaml:"max_nodes"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	opts := milp.DefaultOptions()
	return &Config{
		Reasoner: ReasonerConfig{
			Semantics: fuzzydl.Lukasiewicz.String(),
			Precision: opts.Precision,
			Epsilon:   opts.Epsilon,
		},
		Solver: SolverConfig{
			Backend:  opts.Backend,
			MaxNodes: opts.MaxNodes,
			CBCPath:  opts.CBCPath,
			GLPKPath: opts.GLPKPath,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := fuzzydl.ParseSemantics(c.Reasoner.Semantics); err != nil {
		return fmt.Errorf("reasoner.semantics: %w", err)
	}
	if c.Reasoner.Precision < 1 || c.Reasoner.Precision > 15 {
		return fmt.Errorf("reasoner.precision must be between 1 and 15")
	}
	if c.Reasoner.Epsilon <= 0 || c.Reasoner.Epsilon >= 0.1 {
		return fmt.Errorf("reasoner.epsilon must be in (0, 0.1)")
	}
	if !slices.Contains(milp.Backends(), c.Solver.Backend) {
		return fmt.Errorf("solver.backend must be one of %v, got %q", milp.Backends(), c.Solver.Backend)
	}
	if c.Solver.Timeout < 0 {
		return fmt.Errorf("solver.timeout must not be negative")
	}
	if c.Solver.MaxNodes < 0 {
		return fmt.Errorf("solver.max_nodes must not be negative")
	}
	if c.Solver.Debug && c.Solver.ArtifactsDir == "" {
		return fmt.Errorf("solver.artifacts_dir is required in debug mode")
	}
	return nil
}

// Semantics returns the configured semantics, the config must be valid.
func (c *Config) Semantics() fuzzydl.Semantics {
	sem, err := fuzzydl.ParseSemantics(c.Reasoner.Semantics)
	if err != nil {
		return fuzzydl.Lukasiewicz
	}
	return sem
}

// ToOptions returns the solver options for the configuration.
func (c *Config) ToOptions(logger *slog.Logger) milp.Options {
	return milp.Options{
		Backend:      c.Solver.Backend,
		Timeout:      c.Solver.Timeout,
		Partition:    c.Solver.Partition,
		Debug:        c.Solver.Debug,
		ArtifactsDir: c.Solver.ArtifactsDir,
		Precision:    c.Reasoner.Precision,
		Epsilon:      c.Reasoner.Epsilon,
		MaxNodes:     c.Solver.MaxNodes,
		CBCPath:      c.Solver.CBCPath,
		GLPKPath:     c.Solver.GLPKPath,
		Logger:       logger,
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for
// non-zero values). Flags can only be switched on by a later layer.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Reasoner
	if other.Reasoner.Semantics != "" {
		c.Reasoner.Semantics = other.Reasoner.Semantics
	}
	if other.Reasoner.Precision != 0 {
		c.Reasoner.Precision = other.Reasoner.Precision
	}
	if other.Reasoner.Epsilon != 0 {
		c.Reasoner.Epsilon = other.Reasoner.Epsilon
	}

	// Solver
	if other.Solver.Backend != "" {
		c.Solver.Backend = other.Solver.Backend
	}
	if other.Solver.Timeout != 0 {
		c.Solver.Timeout = other.Solver.Timeout
	}
	if other.Solver.Partition {
		c.Solver.Partition = true
	}
	if other.Solver.Debug {
		c.Solver.Debug = true
	}
	if other.Solver.ArtifactsDir != "" {
		c.Solver.ArtifactsDir = other.Solver.ArtifactsDir
	}
	if other.Solver.CBCPath != "" {
		c.Solver.CBCPath = other.Solver.CBCPath
	}
	if other.Solver.GLPKPath != "" {
		c.Solver.GLPKPath = other.Solver.GLPKPath
	}
	if other.Solver.MaxNodes != 0 {
		c.Solver.MaxNodes = other.Solver.MaxNodes
	}
}
