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

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v3"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/config"
	"github.com/FabianWe/fuzzydl/domains"
	"github.com/FabianWe/fuzzydl/ground"
	"github.com/FabianWe/fuzzydl/milp"
)

// App holds the configuration shared by all commands.
type App struct {
	configPath  string
	logLevel    string
	backend     string
	showMetrics bool

	cfg      *config.Config
	log      *slog.Logger
	registry *prometheus.Registry
	metrics  *milp.Metrics
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// setup configures logging, loads the configuration layers and registers the
// solver metrics.
func (a *App) setup(stderr io.Writer) error {
	a.log = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: parseLevel(a.logLevel)}))
	slog.SetDefault(a.log)

	cfg, err := config.NewLoader(a.log).Load(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		cfg.Solver.Backend = a.backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg

	a.registry = prometheus.NewRegistry()
	if a.metrics, err = milp.NewMetrics(a.registry); err != nil {
		return err
	}
	return nil
}

func (a *App) options() milp.Options {
	opts := a.cfg.ToOptions(a.log)
	opts.Metrics = a.metrics
	return opts
}

// expandPatterns returns the files matching the patterns, sorted and
// without duplicates. A pattern without matches is an error.
func expandPatterns(patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var res []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", pattern)
		}
		sort.Strings(matches)
		for _, m := range matches {
			m = filepath.Clean(m)
			if _, has := seen[m]; has {
				continue
			}
			seen[m] = struct{}{}
			res = append(res, m)
		}
	}
	return res, nil
}

// conceptFile is the file format of the normalize command.
type conceptFile struct {
	Semantics string   `yaml:"semantics"`
	Concepts  []string `yaml:"concepts"`
}

func (a *App) runNormalize(ctx context.Context, w io.Writer, patterns []string, semantics string, dnf bool) error {
	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	form := fuzzydl.CNF
	if dnf {
		form = fuzzydl.DNF
	}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		var file conceptFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		name := a.cfg.Reasoner.Semantics
		switch {
		case semantics != "":
			name = semantics
		case file.Semantics != "":
			name = file.Semantics
		}
		sem, err := fuzzydl.ParseSemantics(name)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		a.log.Debug("normalizing concepts", "file", path, "semantics", sem, "form", form)
		for _, s := range file.Concepts {
			c, err := fuzzydl.ParseConcept(s, nil)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if c, err = sem.Interpret(c); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			nf, err := fuzzydl.NormalForm(c, form)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintln(w, nf)
		}
	}
	return nil
}

func (a *App) runSolve(ctx context.Context, w io.Writer, patterns []string) error {
	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	for _, path := range files {
		doc, err := loadModel(path)
		if err != nil {
			return err
		}
		sol, err := doc.solve(ctx, a.options())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(files) > 1 {
			fmt.Fprintf(w, "%s:\n", path)
		}
		fmt.Fprintln(w, sol)
	}
	return a.printMetrics(w)
}

func (a *App) runQuery(ctx context.Context, w io.Writer, patterns []string) error {
	files, err := expandPatterns(patterns)
	if err != nil {
		return err
	}
	for _, path := range files {
		kb, queries, err := ground.LoadFile(path)
		if err != nil {
			return err
		}
		r, err := ground.NewReasoner(kb, a.options())
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if len(files) > 1 {
			fmt.Fprintf(w, "%s:\n", path)
		}
		for _, q := range queries {
			sol, err := q.Run(ctx, r)
			if err != nil {
				return fmt.Errorf("%s: %v: %w", path, q, err)
			}
			switch {
			case q.Kind == ground.SatisfiableQuery:
				fmt.Fprintf(w, "%v %t\n", q, sol.IsConsistent())
			case !sol.IsConsistent():
				fmt.Fprintf(w, "%v inconsistent knowledge base\n", q)
			default:
				fmt.Fprintf(w, "%v = %s\n", q, domains.FormatFloat(sol.Value()))
			}
		}
	}
	return a.printMetrics(w)
}

// printMetrics writes the solver counters and gauges if --metrics is set.
func (a *App) printMetrics(w io.Writer) error {
	if !a.showMetrics {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, l := range m.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", l.GetName(), l.GetValue()))
			}
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				value = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			}
			fmt.Fprintf(w, "%s{%s} %s\n", mf.GetName(), strings.Join(labels, ","), domains.FormatFloat(value))
		}
	}
	return nil
}
