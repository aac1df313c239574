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
	"math"

	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"
	"gonum.org/v1/gonum/mat"

	"github.com/FabianWe/fuzzydl/lp"
)

// SimplexBackend solves models in process: the LP relaxation is solved with
// the simplex implementation of gonum, integrality is established by a depth
// first branch and bound.
type SimplexBackend struct {
	Epsilon float64
	// MaxNodes is the maximal number of explored nodes, 0 means no limit.
	// If the limit is reached the best solution found so far is returned, if
	// there is none the solve fails.
	MaxNodes int
}

func NewSimplexBackend(eps float64, maxNodes int) *SimplexBackend {
	if eps <= 0 {
		eps = 1e-6
	}
	return &SimplexBackend{Epsilon: eps, MaxNodes: maxNodes}
}

func (b *SimplexBackend) Name() string {
	return SimplexBackendName
}

// integralityTolerance is how far an integer variable may be off an integer
// in a relaxation, it must stay well below ε/M of the big-M indicators.
const integralityTolerance = 1e-9

type bbNode struct {
	lower, upper []float64
}

func (b *SimplexBackend) Solve(ctx context.Context, m *Model) (*Result, error) {
	m = m.Lower()
	n := len(m.Variables)
	if n == 0 {
		return solveConstant(m, b.Epsilon), nil
	}
	root := bbNode{lower: make([]float64, n), upper: make([]float64, n)}
	for i, v := range m.Variables {
		root.lower[i], root.upper[i] = v.Lower, v.Upper
		if v.Type.IsInteger() {
			root.lower[i] = math.Ceil(v.Lower - b.Epsilon)
			root.upper[i] = math.Floor(v.Upper + b.Epsilon)
		}
	}
	var best []float64
	bestObj := math.Inf(1)
	stack := []bbNode{root}
	nodes := 0
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if b.MaxNodes > 0 && nodes >= b.MaxNodes {
			if best != nil {
				break
			}
			return nil, fmt.Errorf("%w: branch and bound node limit %d reached", ErrSolverFailure, b.MaxNodes)
		}
		nodes++
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		x, err := solveRelaxation(m, node.lower, node.upper, b.Epsilon)
		if errors.Is(err, errRelaxationInfeasible) {
			continue
		}
		if err != nil {
			return nil, err
		}
		obj := evalObjective(m, x)
		if obj >= bestObj-b.Epsilon {
			continue
		}
		branch, frac := -1, 0.0
		for i, v := range m.Variables {
			if !v.Type.IsInteger() {
				continue
			}
			f := x[i] - math.Floor(x[i])
			dist := math.Min(f, 1-f)
			if dist > integralityTolerance && dist > frac {
				branch, frac = i, dist
			}
		}
		if branch < 0 {
			best, bestObj = x, obj
			continue
		}
		down := bbNode{lower: node.lower, upper: append([]float64(nil), node.upper...)}
		down.upper[branch] = math.Floor(x[branch])
		up := bbNode{lower: append([]float64(nil), node.lower...), upper: node.upper}
		up.lower[branch] = math.Ceil(x[branch])
		// the last node is explored first
		if x[branch]-math.Floor(x[branch]) >= 0.5 {
			stack = append(stack, down, up)
		} else {
			stack = append(stack, up, down)
		}
	}
	if best == nil {
		return &Result{Status: Infeasible}, nil
	}
	values := make(map[string]float64, n)
	for i, v := range m.Variables {
		x := best[i]
		if v.Type.IsInteger() {
			x = math.Round(x)
		}
		values[v.Name] = x
	}
	return &Result{Status: Optimal, Values: values}, nil
}

func evalObjective(m *Model, x []float64) float64 {
	res := m.Objective.Constant
	idx := m.Index()
	for _, t := range m.Objective.Terms {
		res += t.Coeff * x[idx[t.Var.Name]]
	}
	return res
}

// solveConstant handles models without variables.
func solveConstant(m *Model, eps float64) *Result {
	for _, c := range m.Constraints {
		if c.IsInfeasible(eps) {
			return &Result{Status: Infeasible}
		}
	}
	return &Result{Status: Optimal, Values: map[string]float64{}}
}

var errRelaxationInfeasible = errors.New("relaxation infeasible")

// column describes how a model variable is expressed by the non-negative
// columns of the standard form: x = offset + Σ signs[i] · col[cols[i]].
type column struct {
	offset float64
	cols   []int
	signs  []float64
}

// solveRelaxation solves the LP relaxation of m with the given bounds.
//
// gonum solves min cᵀy s.t. Ay = b, y ≥ 0 and requires A to have full row
// rank and no zero columns. Each row therefore gets its own slack column
// (equations get two rows with one slack each) and columns that occur in no
// row get the trivial row y - s = 0.
func solveRelaxation(m *Model, lower, upper []float64, eps float64) ([]float64, error) {
	n := len(m.Variables)
	mapping := make([]column, n)
	numCols := 0
	// finite upper bounds become rows y + s = u - l
	type boundRow struct {
		col int
		rhs float64
	}
	var boundRows []boundRow
	for i := range m.Variables {
		l, u := lower[i], upper[i]
		if l > u+eps {
			return nil, errRelaxationInfeasible
		}
		if u < l {
			u = l
		}
		switch {
		case !math.IsInf(l, -1):
			mapping[i] = column{offset: l, cols: []int{numCols}, signs: []float64{1}}
			if !math.IsInf(u, 1) {
				boundRows = append(boundRows, boundRow{col: numCols, rhs: u - l})
			}
			numCols++
		case !math.IsInf(u, 1):
			mapping[i] = column{offset: u, cols: []int{numCols}, signs: []float64{-1}}
			numCols++
		default:
			mapping[i] = column{cols: []int{numCols, numCols + 1}, signs: []float64{1, -1}}
			numCols += 2
		}
	}
	idx := m.Index()

	type row struct {
		coeffs map[int]float64
		slack  float64
		rhs    float64
	}
	var rows []row
	for _, c := range m.Constraints {
		coeffs := make(map[int]float64)
		rhs := -c.Expr.Constant
		for _, t := range c.Expr.Terms {
			col := mapping[idx[t.Var.Name]]
			rhs -= t.Coeff * col.offset
			for k, j := range col.cols {
				coeffs[j] += t.Coeff * col.signs[k]
			}
		}
		switch c.Op {
		case lp.LE:
			rows = append(rows, row{coeffs: coeffs, slack: 1, rhs: rhs})
		case lp.GE:
			rows = append(rows, row{coeffs: coeffs, slack: -1, rhs: rhs})
		default:
			rows = append(rows, row{coeffs: coeffs, slack: 1, rhs: rhs},
				row{coeffs: coeffs, slack: -1, rhs: rhs})
		}
	}
	for _, br := range boundRows {
		rows = append(rows, row{coeffs: map[int]float64{br.col: 1}, slack: 1, rhs: br.rhs})
	}
	used := make([]bool, numCols)
	for _, r := range rows {
		for j, a := range r.coeffs {
			if a != 0 {
				used[j] = true
			}
		}
	}
	for j, u := range used {
		if !u {
			rows = append(rows, row{coeffs: map[int]float64{j: 1}, slack: -1})
		}
	}

	numRows := len(rows)
	total := numCols + numRows
	A := mat.NewDense(numRows, total, nil)
	bVec := make([]float64, numRows)
	for i, r := range rows {
		sign := 1.0
		if r.rhs < 0 {
			sign = -1
		}
		for j, a := range r.coeffs {
			A.Set(i, j, sign*a)
		}
		A.Set(i, numCols+i, sign*r.slack)
		bVec[i] = sign * r.rhs
	}
	c := make([]float64, total)
	for _, t := range m.Objective.Terms {
		col := mapping[idx[t.Var.Name]]
		for k, j := range col.cols {
			c[j] += t.Coeff * col.signs[k]
		}
	}
	_, y, err := gonumlp.Simplex(c, A, bVec, 1e-10, nil)
	switch {
	case errors.Is(err, gonumlp.ErrInfeasible):
		return nil, errRelaxationInfeasible
	case errors.Is(err, gonumlp.ErrUnbounded):
		return nil, fmt.Errorf("%w: problem is unbounded", ErrSolverFailure)
	case err != nil:
		return nil, fmt.Errorf("%w: simplex: %v", ErrSolverFailure, err)
	}
	x := make([]float64, n)
	for i, col := range mapping {
		x[i] = col.offset
		for k, j := range col.cols {
			x[i] += col.signs[k] * y[j]
		}
	}
	return x, nil
}
