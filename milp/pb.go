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
	"fmt"
	"math"

	"github.com/crillab/gophersat/solver"

	"github.com/FabianWe/fuzzydl/lp"
)

// PBBackend solves models whose variables are all binary as pseudo-boolean
// optimization problems with gophersat. This is the case for knowledge bases
// where all concepts and roles are crisp.
//
// Coefficients are scaled by 10^Precision and must then be integral.
// Continuous variables with equal bounds are accepted and replaced by their
// value.
type PBBackend struct {
	Precision int
}

func NewPBBackend(precision int) *PBBackend {
	return &PBBackend{Precision: precision}
}

func (b *PBBackend) Name() string {
	return PBBackendName
}

const pbIntegralTolerance = 1e-6

// pbEncoder maps a model to gophersat literals and integer weights.
type pbEncoder struct {
	scale float64
	lits  map[string]int
	fixed map[string]float64
}

func (enc *pbEncoder) integral(f float64) (int, error) {
	scaled := f * enc.scale
	r := math.Round(scaled)
	if math.Abs(scaled-r) > pbIntegralTolerance*math.Max(1, math.Abs(scaled)) {
		return 0, fmt.Errorf("%w: coefficient %s not representable with precision %v",
			ErrUnsupportedModel, lp.FormatFloat(f), enc.scale)
	}
	if math.Abs(r) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: coefficient %s too large", ErrUnsupportedModel, lp.FormatFloat(f))
	}
	return int(r), nil
}

// linear returns the literals and weights of the terms of e and the scaled
// constant (including fixed variables).
func (enc *pbEncoder) linear(e lp.Expression) ([]int, []int, float64, error) {
	constant := e.Constant
	var lits, weights []int
	for _, t := range e.Terms {
		if value, has := enc.fixed[t.Var.Name]; has {
			constant += t.Coeff * value
			continue
		}
		w, err := enc.integral(t.Coeff)
		if err != nil {
			return nil, nil, 0, err
		}
		if w == 0 {
			continue
		}
		lits = append(lits, enc.lits[t.Var.Name])
		weights = append(weights, w)
	}
	return lits, weights, constant * enc.scale, nil
}

// atLeast returns the constraint Σ weights·lits ≥ rhs.
func atLeast(lits, weights []int, rhs float64) solver.PBConstr {
	l := append([]int(nil), lits...)
	w := append([]int(nil), weights...)
	return solver.GtEq(l, w, int(math.Ceil(rhs-pbIntegralTolerance)))
}

func negated(weights []int) []int {
	res := make([]int, len(weights))
	for i, w := range weights {
		res[i] = -w
	}
	return res
}

func (b *PBBackend) Solve(ctx context.Context, m *Model) (*Result, error) {
	m = m.Lower()
	enc := &pbEncoder{
		scale: math.Pow(10, float64(b.Precision)),
		lits:  make(map[string]int),
		fixed: make(map[string]float64),
	}
	var vars []*lp.Variable
	for _, v := range m.Variables {
		switch {
		case v.Type == lp.Binary:
			vars = append(vars, v)
			enc.lits[v.Name] = len(vars)
		case v.Lower == v.Upper:
			enc.fixed[v.Name] = v.Lower
		default:
			return nil, fmt.Errorf("%w: pb backend requires binary variables, %s is %v",
				ErrUnsupportedModel, v.Name, v.Type)
		}
	}
	if len(vars) == 0 {
		return solveConstant(fixedModel(m, enc.fixed), pbIntegralTolerance), nil
	}
	var constrs []solver.PBConstr
	// every variable must be known to the solver, even if unconstrained
	for _, v := range vars {
		constrs = append(constrs, solver.GtEq([]int{enc.lits[v.Name]}, []int{1}, 0))
	}
	for _, c := range m.Constraints {
		lits, weights, constant, err := enc.linear(c.Expr)
		if err != nil {
			return nil, err
		}
		if len(lits) == 0 {
			if !c.Op.Holds(constant, 0, pbIntegralTolerance*enc.scale) {
				return &Result{Status: Infeasible}, nil
			}
			continue
		}
		// Σ w·x + k op 0
		if c.Op == lp.GE || c.Op == lp.EQ {
			constrs = append(constrs, atLeast(lits, weights, -constant))
		}
		if c.Op == lp.LE || c.Op == lp.EQ {
			constrs = append(constrs, atLeast(lits, negated(weights), constant))
		}
	}
	prob := solver.ParsePBConstrs(constrs)

	// negative costs: c·x = c + |c|·¬x
	var costLits []solver.Lit
	var costWeights []int
	for _, t := range m.Objective.Terms {
		if _, has := enc.fixed[t.Var.Name]; has {
			continue
		}
		w, err := enc.integral(t.Coeff)
		if err != nil {
			return nil, err
		}
		lit := enc.lits[t.Var.Name]
		if w < 0 {
			lit, w = -lit, -w
		}
		if w != 0 {
			costLits = append(costLits, solver.IntToLit(int32(lit)))
			costWeights = append(costWeights, w)
		}
	}
	if len(costLits) > 0 {
		prob.SetCostFunc(costLits, costWeights)
	}
	s := solver.New(prob)

	type outcome struct {
		sat   bool
		model []bool
	}
	done := make(chan outcome, 1)
	go func() {
		var sat bool
		if len(costLits) > 0 {
			sat = s.Minimize() >= 0
		} else {
			sat = s.Solve() == solver.Sat
		}
		var model []bool
		if sat {
			model = s.Model()
		}
		done <- outcome{sat: sat, model: model}
	}()
	var res outcome
	select {
	case <-ctx.Done():
		// gophersat can't be interrupted, the goroutine finishes on its own
		return nil, ctx.Err()
	case res = <-done:
	}
	if !res.sat {
		return &Result{Status: Infeasible}, nil
	}
	values := make(map[string]float64, len(vars)+len(enc.fixed))
	for name, value := range enc.fixed {
		values[name] = value
	}
	for i, v := range vars {
		if i < len(res.model) && res.model[i] {
			values[v.Name] = 1
		} else {
			values[v.Name] = 0
		}
	}
	return &Result{Status: Optimal, Values: values}, nil
}

// fixedModel substitutes the fixed variables in all constraints.
func fixedModel(m *Model, fixed map[string]float64) *Model {
	res := &Model{Objective: m.Objective}
	for _, c := range m.Constraints {
		e := lp.NewExpression(c.Expr.Constant)
		for _, t := range c.Expr.Terms {
			e = e.AddConstant(t.Coeff * fixed[t.Var.Name])
		}
		res.Constraints = append(res.Constraints, lp.NewInequation(e, c.Op))
	}
	return res
}
