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

package milp

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// solutionParser reads the solution file of an external solver.
type solutionParser func(r io.Reader, names *LPNames) (*Result, error)

// ExternalBackend runs a solver executable on an LP file and parses the
// solution file it writes.
//
// Each run gets a fresh uuid, the files are named <uuid>.lp and <uuid>.sol
// inside the artifacts directory. They're removed after the run unless
// debugging is enabled.
type ExternalBackend struct {
	name         string
	path         string
	artifactsDir string
	debug        bool
	log          *slog.Logger
	args         func(model, solution string) []string
	parse        solutionParser
}

// NewCBCBackend returns a backend running COIN-OR CBC.
func NewCBCBackend(opts Options) *ExternalBackend {
	b := newExternalBackend(CBCBackendName, opts.CBCPath, opts)
	b.args = func(model, solution string) []string {
		args := []string{model}
		if opts.Timeout > 0 {
			args = append(args, "sec", strconv.Itoa(int(math.Ceil(opts.Timeout.Seconds()))))
		}
		return append(args, "solve", "solu", solution)
	}
	b.parse = ParseCBCSolution
	return b
}

// NewGLPKBackend returns a backend running glpsol from GLPK.
func NewGLPKBackend(opts Options) *ExternalBackend {
	b := newExternalBackend(GLPKBackendName, opts.GLPKPath, opts)
	b.args = func(model, solution string) []string {
		args := []string{"--lp", model, "-w", solution}
		if opts.Timeout > 0 {
			args = append(args, "--tmlim", strconv.Itoa(int(math.Ceil(opts.Timeout.Seconds()))))
		}
		return args
	}
	b.parse = ParseGLPKSolution
	return b
}

func newExternalBackend(name, path string, opts Options) *ExternalBackend {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &ExternalBackend{
		name:         name,
		path:         path,
		artifactsDir: opts.ArtifactsDir,
		debug:        opts.Debug,
		log:          log,
	}
}

func (b *ExternalBackend) Name() string {
	return b.name
}

func (b *ExternalBackend) Solve(ctx context.Context, m *Model) (*Result, error) {
	m = m.Lower()
	for _, c := range m.Constraints {
		if c.IsInfeasible(pbIntegralTolerance) {
			return &Result{Status: Infeasible}, nil
		}
	}
	if len(m.Variables) == 0 {
		return solveConstant(m, pbIntegralTolerance), nil
	}
	dir := b.artifactsDir
	if dir == "" {
		dir = os.TempDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}
	run := uuid.New().String()
	modelFile := filepath.Join(dir, run+".lp")
	solutionFile := filepath.Join(dir, run+".sol")
	if !b.debug {
		defer os.Remove(modelFile)
		defer os.Remove(solutionFile)
	}
	names := NewLPNames(m)
	if err := writeLPFile(modelFile, m, names); err != nil {
		return nil, fmt.Errorf("%w: writing model: %v", ErrSolverFailure, err)
	}
	log := b.log.With("backend", b.name, "run", run)
	log.Debug("running solver", "path", b.path, "model", modelFile,
		"variables", len(m.Variables), "constraints", len(m.Constraints))
	var output bytes.Buffer
	cmd := exec.CommandContext(ctx, b.path, b.args(modelFile, solutionFile)...)
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.Debug("solver output", "output", output.String())
		return nil, fmt.Errorf("%w: %s: %v", ErrSolverFailure, b.name, err)
	}
	f, err := os.Open(solutionFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s wrote no solution: %v", ErrSolverFailure, b.name, err)
	}
	defer f.Close()
	res, err := b.parse(f, names)
	if err != nil {
		log.Debug("solver output", "output", output.String())
		return nil, err
	}
	if b.debug {
		log.Debug("kept solver artifacts", "model", modelFile, "solution", solutionFile)
	}
	return res, nil
}

func writeLPFile(path string, m *Model, names *LPNames) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteLP(f, m, names); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var errMalformedSolution = errors.New("malformed solution file")

// ParseCBCSolution parses the solution file written by CBC's "solu"
// command. The first line contains the status, for example
// "Optimal - objective value 1.5", the following lines contain
// "index name value reduced-cost" for all non-zero variables.
func ParseCBCSolution(r io.Reader, names *LPNames) (*Result, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: %w: empty cbc solution", ErrSolverFailure, errMalformedSolution)
	}
	status := strings.TrimSpace(scanner.Text())
	lower := strings.ToLower(status)
	switch {
	case strings.HasPrefix(lower, "optimal"):
	case strings.Contains(lower, "infeasible"):
		return &Result{Status: Infeasible}, nil
	default:
		return nil, fmt.Errorf("%w: cbc status %q", ErrSolverFailure, status)
	}
	values := make(map[string]float64)
	for scanner.Scan() {
		fields := strings.Fields(strings.TrimPrefix(strings.TrimSpace(scanner.Text()), "**"))
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("%w: %w: line %q", ErrSolverFailure, errMalformedSolution, scanner.Text())
		}
		name, ok := names.ModelName(fields[1])
		if !ok {
			return nil, fmt.Errorf("%w: %w: unknown column %q", ErrSolverFailure, errMalformedSolution, fields[1])
		}
		value, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %w: %v", ErrSolverFailure, errMalformedSolution, err)
		}
		values[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}
	return &Result{Status: Optimal, Values: values}, nil
}

// ParseGLPKSolution parses a solution written by glpsol -w.
// The relevant lines are the solution line "s bas ROWS COLS PST DST OBJ"
// (simplex) or "s mip ROWS COLS STATUS OBJ" (integer) and the column lines
// "j COL STAT PRIM DUAL" respectively "j COL VALUE". Comment lines start with
// "c".
func ParseGLPKSolution(r io.Reader, names *LPNames) (*Result, error) {
	scanner := bufio.NewScanner(r)
	kind := ""
	values := make(map[string]float64)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "s":
			if len(fields) < 5 {
				return nil, fmt.Errorf("%w: %w: line %q", ErrSolverFailure, errMalformedSolution, scanner.Text())
			}
			kind = fields[1]
			switch kind {
			case "bas":
				if len(fields) < 6 {
					return nil, fmt.Errorf("%w: %w: line %q", ErrSolverFailure, errMalformedSolution, scanner.Text())
				}
				primal, dual := fields[4], fields[5]
				switch {
				case primal == "i" || primal == "n":
					return &Result{Status: Infeasible}, nil
				case primal != "f" || dual != "f":
					return nil, fmt.Errorf("%w: glpk status %s %s", ErrSolverFailure, primal, dual)
				}
			case "mip":
				switch fields[4] {
				case "o", "f":
				case "n":
					return &Result{Status: Infeasible}, nil
				default:
					return nil, fmt.Errorf("%w: glpk mip status %s", ErrSolverFailure, fields[4])
				}
			default:
				return nil, fmt.Errorf("%w: %w: unknown solution kind %q", ErrSolverFailure, errMalformedSolution, kind)
			}
		case "j":
			pos := 3
			if kind == "mip" {
				pos = 2
			}
			if kind == "" || len(fields) <= pos {
				return nil, fmt.Errorf("%w: %w: line %q", ErrSolverFailure, errMalformedSolution, scanner.Text())
			}
			col, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("%w: %w: %v", ErrSolverFailure, errMalformedSolution, err)
			}
			name, ok := names.ModelIndex(col)
			if !ok {
				return nil, fmt.Errorf("%w: %w: unknown column %d", ErrSolverFailure, errMalformedSolution, col)
			}
			value, err := strconv.ParseFloat(fields[pos], 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %w: %v", ErrSolverFailure, errMalformedSolution, err)
			}
			values[name] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}
	if kind == "" {
		return nil, fmt.Errorf("%w: %w: no solution line", ErrSolverFailure, errMalformedSolution)
	}
	return &Result{Status: Optimal, Values: values}, nil
}
