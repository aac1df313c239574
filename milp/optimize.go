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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/lp"
)

// Model builds the model that is passed to the backend when objective is
// minimized. Vacuous constraints are dropped, as are nominal variables and
// their constraints unless SetNominalVariables(true) was called.
// infeasible is true if a constraint without variables doesn't hold.
func (h *Helper) Model(objective lp.Expression) (m *Model, infeasible bool) {
	h.expandCardinalities()
	eps := h.opts.Epsilon
	var constraints []lp.Inequation
	dropped := 0
constraintLoop:
	for _, c := range h.constraints {
		switch {
		case c.IsInfeasible(eps):
			h.log.Warn("constraint without variables is infeasible", "constraint", c.String())
			infeasible = true
			continue
		case c.IsVacuous(eps):
			dropped++
			continue
		}
		if !h.nominalVariables {
			for _, t := range c.Expr.Terms {
				if h.IsNominalVariable(t.Var.Name) {
					dropped++
					continue constraintLoop
				}
			}
		}
		constraints = append(constraints, c)
	}
	vars := make([]*lp.Variable, 0, len(h.order))
	for _, v := range h.order {
		if !h.nominalVariables && h.IsNominalVariable(v.Name) {
			continue
		}
		vars = append(vars, v)
	}
	if dropped > 0 {
		h.log.Debug("dropped constraints", "count", dropped)
	}
	return NewModel(vars, constraints, objective), infeasible
}

// Optimize minimizes objective subject to all constraints.
// To maximize an expression minimize its negation.
//
// If the model is infeasible the inconsistent Solution is returned, solver
// failures are returned as errors (wrapping ErrSolverFailure or
// ErrSolverTimeout).
func (h *Helper) Optimize(ctx context.Context, objective lp.Expression) (*Solution, error) {
	backend, err := NewBackend(h.opts)
	if err != nil {
		return nil, err
	}
	m, infeasible := h.Model(objective)
	metrics := h.opts.Metrics
	if infeasible {
		metrics.observeSolve(backend.Name(), OutcomeInconsistent, 0)
		return InconsistentSolution(), nil
	}
	metrics.observeModel(len(m.Variables), len(m.Constraints))
	if h.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.opts.Timeout)
		defer cancel()
	}
	log := h.log.With("backend", backend.Name())
	log.Debug("solving model", "variables", len(m.Variables), "constraints", len(m.Constraints),
		"partition", h.opts.Partition)
	start := time.Now()
	var res *Result
	parts := 1
	if h.opts.Partition {
		res, parts, err = solvePartitioned(ctx, backend, m)
	} else {
		res, err = backend.Solve(ctx, m)
	}
	elapsed := time.Since(start)
	if err != nil {
		metrics.observeSolve(backend.Name(), OutcomeError, elapsed)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("%w: %s after %v: %w", ErrSolverTimeout, backend.Name(), elapsed, err)
		}
		return nil, err
	}
	log.Debug("solved model", "status", res.Status, "parts", parts, "elapsed", elapsed)
	if res.Status == Infeasible {
		metrics.observeSolve(backend.Name(), OutcomeInconsistent, elapsed)
		return InconsistentSolution(), nil
	}
	metrics.observeSolve(backend.Name(), OutcomeOptimal, elapsed)
	value := fuzzydl.RoundTo(m.Objective.Eval(res.Values), h.opts.Precision)
	shown := make(map[string]float64)
	for _, v := range m.Variables {
		label, ok := h.show.Label(v.Name, h.conceptOf[v.Name])
		if !ok {
			continue
		}
		shown[label] = fuzzydl.RoundTo(res.Values[v.Name], h.opts.Precision)
	}
	return NewSolution(value, shown), nil
}
