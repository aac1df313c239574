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

// Package main provides the fuzzydl binary: it normalizes concepts, solves
// MILP models and answers queries over fuzzy knowledge bases.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "fuzzydl"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	a := &App{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Fuzzy description logic reasoner",
		Long: `fuzzydl reasons over fuzzy description logic knowledge bases.

Concepts are normalized under classical, Zadeh or Lukasiewicz semantics,
knowledge bases over named individuals are compiled into mixed integer
linear programs and solved with one of the backends simplex, pb, cbc and
glpk.

Configuration is read from ~/.config/fuzzydl/config.yaml, from fuzzydl.yaml
in the current or a parent directory and from the file given by --config.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&a.backend, "backend", "", "Solver backend, overrides the config")
	cmd.PersistentFlags().BoolVar(&a.showMetrics, "metrics", false, "Print solver metrics after the run")

	cmd.AddCommand(normalizeCmd(a), solveCmd(a), queryCmd(a))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func normalizeCmd(a *App) *cobra.Command {
	var (
		semantics string
		dnf       bool
	)
	cmd := &cobra.Command{
		Use:   "normalize [flags] file...",
		Short: "Print the normal form of concepts",
		Long: `Reads concepts from YAML files and prints their normal form.

A file holds a list of concepts in s-expression syntax, optionally with the
semantics used to interpret "and" and "or":

  semantics: zadeh
  concepts:
    - (not (and A (some r B)))`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runNormalize(cmd.Context(), cmd.OutOrStdout(), args, semantics, dnf)
		},
	}
	cmd.Flags().StringVarP(&semantics, "semantics", "s", "", "Semantics, overrides the files and the config")
	cmd.Flags().BoolVar(&dnf, "dnf", false, "Compute the disjunctive instead of the conjunctive normal form")
	return cmd
}

func solveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [flags] pattern...",
		Short: "Solve MILP models",
		Long: `Solves the MILP models in the given YAML files, patterns such as
models/**/*.yaml are expanded.

  variables:
    - {name: x, type: continuous, lower: 0, upper: 10}
    - {name: b, type: binary}
  constraints:
    - {terms: {x: 1, b: -10}, op: "<=", rhs: 0}
  objective:
    terms: {x: 1}
    maximize: true`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}

func queryCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "query [flags] pattern...",
		Short: "Answer the queries of knowledge bases",
		Long: `Loads the knowledge bases in the given YAML files and answers their
min-instance, max-instance and satisfiable queries.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runQuery(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
}
