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
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/FabianWe/fuzzydl/lp"
	"github.com/FabianWe/fuzzydl/milp"
)

// modelDocument is the file format of the solve command. Variables used in
// constraints or the objective without a declaration are continuous in
// [0, 1].
type modelDocument struct {
	Variables   []variableSpec   `yaml:"variables"`
	Constraints []constraintSpec `yaml:"constraints"`
	Objective   objectiveSpec    `yaml:"objective"`
}

type variableSpec struct {
	Name  string   `yaml:"name"`
	Type  string   `yaml:"type"`
	Lower *float64 `yaml:"lower"`
	Upper *float64 `yaml:"upper"`
}

// constraintSpec is Σ terms op rhs.
type constraintSpec struct {
	Terms map[string]float64 `yaml:"terms"`
	Op    string             `yaml:"op"`
	RHS   float64            `yaml:"rhs"`
}

type objectiveSpec struct {
	Terms    map[string]float64 `yaml:"terms"`
	Constant float64            `yaml:"constant"`
	Maximize bool               `yaml:"maximize"`
}

func loadModel(path string) (*modelDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	var doc modelDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", path, err)
	}
	return &doc, nil
}

// expression builds Σ terms + constant with the terms sorted by variable
// name, so that models are built deterministically.
func expression(h *milp.Helper, terms map[string]float64, constant float64) lp.Expression {
	names := make([]string, 0, len(terms))
	for name := range terms {
		names = append(names, name)
	}
	sort.Strings(names)
	e := lp.NewExpression(constant)
	for _, name := range names {
		e = e.AddTerm(terms[name], h.VariableOfType(name, lp.Continuous))
	}
	return e
}

// build adds the variables and constraints to a new helper and returns it
// together with the objective to minimize.
func (doc *modelDocument) build(opts milp.Options) (*milp.Helper, lp.Expression, error) {
	h := milp.NewHelper(opts)
	for _, spec := range doc.Variables {
		if spec.Name == "" {
			return nil, lp.Expression{}, fmt.Errorf("variable without name")
		}
		t := lp.Continuous
		if spec.Type != "" {
			var err error
			if t, err = lp.ParseVarType(spec.Type); err != nil {
				return nil, lp.Expression{}, err
			}
		}
		if h.HasVariable(spec.Name) {
			return nil, lp.Expression{}, fmt.Errorf("variable %s declared twice", spec.Name)
		}
		v := h.VariableOfType(spec.Name, t)
		lower, upper := v.Lower, v.Upper
		if spec.Lower != nil {
			lower = *spec.Lower
		}
		if spec.Upper != nil {
			upper = *spec.Upper
		}
		if lower > upper {
			return nil, lp.Expression{}, fmt.Errorf("variable %s has empty range", spec.Name)
		}
		v.SetBounds(lower, upper)
	}
	for i, spec := range doc.Constraints {
		op, err := lp.ParseComparison(spec.Op)
		if err != nil {
			return nil, lp.Expression{}, fmt.Errorf("constraint %d: %w", i+1, err)
		}
		h.AddComparison(expression(h, spec.Terms, 0), op, lp.NewExpression(spec.RHS))
	}
	objective := expression(h, doc.Objective.Terms, doc.Objective.Constant)
	if doc.Objective.Maximize {
		objective = objective.Scale(-1)
	}
	h.Show().ShowAll(true)
	return h, objective, nil
}

func (doc *modelDocument) solve(ctx context.Context, opts milp.Options) (*milp.Solution, error) {
	h, objective, err := doc.build(opts)
	if err != nil {
		return nil, err
	}
	sol, err := h.Optimize(ctx, objective)
	if err != nil || !sol.IsConsistent() || !doc.Objective.Maximize {
		return sol, err
	}
	return milp.NewSolution(0-sol.Value(), sol.Shown()), nil
}
