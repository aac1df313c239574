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

	"github.com/FabianWe/fuzzydl/lp"
)

// ConstraintGraph builds the graph over the variables of m where two
// variables are connected if they occur in the same constraint.
func ConstraintGraph(m *Model) *SetGraph {
	idx := m.Index()
	g := NewSetGraph()
	g.Init(len(m.Variables))
	for _, c := range m.Constraints {
		terms := c.Expr.Terms
		// a path through all variables of the constraint suffices
		for i := 1; i < len(terms); i++ {
			g.AddEdge(idx[terms[i-1].Var.Name], idx[terms[i].Var.Name])
		}
	}
	return g
}

// Partition splits m into independent models, one per connected component
// of the constraint graph that contains an objective variable and one
// feasibility model (objective 0) for all other components.
// The feasibility model is nil if all components contain objective
// variables. Partition returns nil if the model consists of a single
// component or if no component contains more than one objective variable.
func Partition(m *Model) (optimize []*Model, feasibility *Model) {
	components := Components(ConstraintGraph(m))
	if len(components) <= 1 {
		return nil, nil
	}
	componentOf := make(map[string]int, len(m.Variables))
	for i, component := range components {
		for _, v := range component {
			componentOf[m.Variables[v].Name] = i
		}
	}
	objectives := make([]lp.Expression, len(components))
	hasObjective := make([]bool, len(components))
	objectiveVars := make([]int, len(components))
	shared := false
	for _, t := range m.Objective.Terms {
		i := componentOf[t.Var.Name]
		objectives[i] = objectives[i].AddTerm(t.Coeff, t.Var)
		hasObjective[i] = true
		objectiveVars[i]++
		if objectiveVars[i] > 1 {
			shared = true
		}
	}
	if !shared {
		return nil, nil
	}
	constraints := make([][]lp.Inequation, len(components))
	for _, c := range m.Constraints {
		if len(c.Expr.Terms) == 0 {
			continue
		}
		i := componentOf[c.Expr.Terms[0].Var.Name]
		constraints[i] = append(constraints[i], c)
	}
	var feasVars []*lp.Variable
	var feasConstraints []lp.Inequation
	for i, component := range components {
		vars := make([]*lp.Variable, len(component))
		for j, v := range component {
			vars[j] = m.Variables[v]
		}
		if hasObjective[i] {
			optimize = append(optimize, NewModel(vars, constraints[i], objectives[i]))
		} else {
			feasVars = append(feasVars, vars...)
			feasConstraints = append(feasConstraints, constraints[i]...)
		}
	}
	if len(feasVars) > 0 {
		feasibility = NewModel(feasVars, feasConstraints, lp.Expression{})
	}
	return optimize, feasibility
}

// solvePartitioned solves the parts of m independently and merges the
// results. The model is infeasible if any part is.
func solvePartitioned(ctx context.Context, backend Backend, m *Model) (*Result, int, error) {
	parts, feasibility := Partition(m)
	if parts == nil && feasibility == nil {
		res, err := backend.Solve(ctx, m)
		return res, 1, err
	}
	if feasibility != nil {
		parts = append([]*Model{feasibility}, parts...)
	}
	values := make(map[string]float64, len(m.Variables))
	for _, part := range parts {
		res, err := backend.Solve(ctx, part)
		if err != nil {
			return nil, len(parts), err
		}
		if res.Status == Infeasible {
			return res, len(parts), nil
		}
		for name, v := range res.Values {
			values[name] = v
		}
	}
	return &Result{Status: Optimal, Values: values}, len(parts), nil
}
