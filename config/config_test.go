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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/milp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, fuzzydl.Lukasiewicz, cfg.Semantics())
	assert.Equal(t, milp.SimplexBackendName, cfg.Solver.Backend)
	assert.Equal(t, 6, cfg.Reasoner.Precision)
	assert.False(t, cfg.Solver.Partition)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"zadeh", func(c *Config) { c.Reasoner.Semantics = "zadeh" }, false},
		{"unknown semantics", func(c *Config) { c.Reasoner.Semantics = "product" }, true},
		{"precision too low", func(c *Config) { c.Reasoner.Precision = 0 }, true},
		{"precision too high", func(c *Config) { c.Reasoner.Precision = 16 }, true},
		{"epsilon zero", func(c *Config) { c.Reasoner.Epsilon = 0 }, true},
		{"unknown backend", func(c *Config) { c.Solver.Backend = "gurobi" }, true},
		{"pb backend", func(c *Config) { c.Solver.Backend = "pb" }, false},
		{"negative timeout", func(c *Config) { c.Solver.Timeout = -time.Second }, true},
		{"debug without dir", func(c *Config) { c.Solver.Debug = true }, true},
		{"debug with dir", func(c *Config) {
			c.Solver.Debug = true
			c.Solver.ArtifactsDir = "/tmp/fuzzydl"
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
reasoner:
  semantics: zadeh
solver:
  backend: pb
  timeout: 30s
  partition: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, fuzzydl.Zadeh, cfg.Semantics())
	assert.Equal(t, "pb", cfg.Solver.Backend)
	assert.Equal(t, 30*time.Second, cfg.Solver.Timeout)
	assert.True(t, cfg.Solver.Partition)
	// defaults are kept
	assert.Equal(t, 6, cfg.Reasoner.Precision)

	_, err = LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfigMerge(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Merge(&Config{
		Reasoner: ReasonerConfig{Precision: 3},
		Solver:   SolverConfig{Backend: "glpk", Debug: true, ArtifactsDir: "out"},
	})
	assert.Equal(t, 3, cfg.Reasoner.Precision)
	assert.Equal(t, "lukasiewicz", cfg.Reasoner.Semantics)
	assert.Equal(t, "glpk", cfg.Solver.Backend)
	assert.True(t, cfg.Solver.Debug)
	assert.Equal(t, "out", cfg.Solver.ArtifactsDir)
	cfg.Merge(nil)
	assert.Equal(t, "glpk", cfg.Solver.Backend)
}

func TestConfigSaveToFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := DefaultConfig()
	cfg.Solver.Timeout = time.Minute
	require.NoError(t, cfg.SaveToFile(configPath))

	loaded, err := LoadFromFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestToOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver.Partition = true
	cfg.Solver.Timeout = time.Second
	opts := cfg.ToOptions(nil)
	assert.Equal(t, milp.SimplexBackendName, opts.Backend)
	assert.True(t, opts.Partition)
	assert.Equal(t, time.Second, opts.Timeout)
	assert.Equal(t, cfg.Reasoner.Epsilon, opts.Epsilon)
}

func TestLoaderLayers(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	work := filepath.Join(project, "kb", "cars")
	require.NoError(t, os.MkdirAll(work, 0755))

	user := DefaultConfig()
	user.Reasoner.Semantics = "zadeh"
	user.Reasoner.Precision = 4
	require.NoError(t, user.SaveToFile(filepath.Join(home, UserConfigDir, UserConfigFile)))
	require.NoError(t, os.WriteFile(filepath.Join(project, ProjectConfigFile),
		[]byte("solver:\n  backend: pb\n"), 0644))

	l := NewLoader(nil)
	l.home, l.dir = home, work
	cfg, err := l.Load("")
	require.NoError(t, err)
	assert.Equal(t, fuzzydl.Zadeh, cfg.Semantics())
	assert.Equal(t, 4, cfg.Reasoner.Precision)
	assert.Equal(t, "pb", cfg.Solver.Backend)

	explicit := filepath.Join(t.TempDir(), "explicit.yaml")
	require.NoError(t, os.WriteFile(explicit, []byte("reasoner:\n  semantics: classical\n"), 0644))
	cfg, err = l.Load(explicit)
	require.NoError(t, err)
	assert.Equal(t, fuzzydl.Classical, cfg.Semantics())
	assert.Equal(t, "pb", cfg.Solver.Backend)

	_, err = l.Load(filepath.Join(project, "missing.yaml"))
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(explicit, []byte("solver:\n  backend: gurobi\n"), 0644))
	_, err = l.Load(explicit)
	assert.Error(t, err)
}

func TestEnsureUserConfig(t *testing.T) {
	l := NewLoader(nil)
	l.home = t.TempDir()
	require.NoError(t, l.EnsureUserConfig())
	cfg, err := LoadFromFile(filepath.Join(l.home, UserConfigDir, UserConfigFile))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, l.EnsureUserConfig())
}
