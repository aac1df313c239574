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
	"fmt"
	"math"

	"github.com/FabianWe/fuzzydl/lp"
)

// Model is a MILP in the form backends consume: minimize Objective subject
// to Constraints, every variable within its bounds.
// Variables contains every variable used in a constraint or the objective.
type Model struct {
	Variables   []*lp.Variable
	Constraints []lp.Inequation
	Objective   lp.Expression
}

// NewModel builds a model from constraints and an objective. The variables
// are collected from both, vars lists additional variables that must be
// part of the model (for example because only their bounds matter).
func NewModel(vars []*lp.Variable, constraints []lp.Inequation, objective lp.Expression) *Model {
	m := &Model{Constraints: constraints, Objective: objective.Normalize()}
	seen := make(map[string]struct{})
	add := func(v *lp.Variable) {
		if _, has := seen[v.Name]; has {
			return
		}
		seen[v.Name] = struct{}{}
		m.Variables = append(m.Variables, v)
	}
	for _, v := range vars {
		add(v)
	}
	for _, c := range constraints {
		for _, t := range c.Expr.Terms {
			add(t.Var)
		}
	}
	for _, t := range m.Objective.Terms {
		add(t.Var)
	}
	return m
}

// Index returns a mapping from variable name to position in Variables.
func (m *Model) Index() map[string]int {
	res := make(map[string]int, len(m.Variables))
	for i, v := range m.Variables {
		res[v.Name] = i
	}
	return res
}

// IsBinary tests if all variables are binary.
func (m *Model) IsBinary() bool {
	for _, v := range m.Variables {
		if v.Type != lp.Binary {
			return false
		}
	}
	return true
}

// Check tests if values satisfy all constraints and bounds up to eps.
func (m *Model) Check(values map[string]float64, eps float64) error {
	for _, v := range m.Variables {
		x := values[v.Name]
		if x < v.Lower-eps || x > v.Upper+eps {
			if v.Type == lp.SemiContinuous && math.Abs(x) <= eps {
				continue
			}
			return fmt.Errorf("variable %s = %s out of bounds", v.Name, lp.FormatFloat(x))
		}
		if v.Type.IsInteger() && math.Abs(x-math.Round(x)) > eps {
			return fmt.Errorf("variable %s = %s is not integral", v.Name, lp.FormatFloat(x))
		}
	}
	for _, c := range m.Constraints {
		if !c.Satisfied(values, eps) {
			return fmt.Errorf("constraint %v violated", c)
		}
	}
	return nil
}

// Lower replaces semi-continuous variables by continuous ones.
// A semi-continuous variable with lower bound 0 is continuous. For lower
// bound l > 0 a binary indicator b is added together with the constraints
// x ≤ u·b and x ≥ l·b, x itself gets the bounds [0, u].
// The variables of the original model are not modified.
func (m *Model) Lower() *Model {
	cloned := make(map[string]*lp.Variable, len(m.Variables))
	res := &Model{}
	for _, v := range m.Variables {
		if v.Type != lp.SemiContinuous {
			res.Variables = append(res.Variables, v)
			continue
		}
		cp := v.Clone()
		cp.Type = lp.Continuous
		cloned[v.Name] = cp
		res.Variables = append(res.Variables, cp)
		if v.Lower <= 0 {
			continue
		}
		cp.Lower = 0
		b := lp.NewVariable(v.Name+"#on", lp.Binary)
		res.Variables = append(res.Variables, b)
		x := lp.VarExpression(cp)
		res.Constraints = append(res.Constraints,
			lp.NewInequation(x.AddTerm(-v.Upper, b), lp.LE),
			lp.NewInequation(x.AddTerm(-v.Lower, b), lp.GE))
	}
	if len(cloned) == 0 {
		return m
	}
	remap := func(v *lp.Variable) *lp.Variable {
		if cp, has := cloned[v.Name]; has {
			return cp
		}
		return v
	}
	for _, c := range m.Constraints {
		res.Constraints = append(res.Constraints, c.Remap(remap))
	}
	res.Objective = m.Objective.Remap(remap)
	return res
}

// Status is the outcome of a backend run.
type Status int

const (
	Optimal Status = iota
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Result is the result of a backend. Values maps variable names to values,
// missing variables are 0. It's only set for optimal results.
type Result struct {
	Status Status
	Values map[string]float64
}
