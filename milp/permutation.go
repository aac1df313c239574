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
	"math"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/domains"
	"github.com/FabianWe/fuzzydl/lp"
)

// OrderedPermutation returns n new variables y_1 ≥ ... ≥ y_n that are the
// values of xs sorted in non-increasing order.
//
// The binary p_ij is 1 iff x_i is placed at position j; p is a permutation
// matrix (each row and column sums up to 1) and p_ij = 1 forces y_j = x_i.
func (h *Helper) OrderedPermutation(xs []*lp.Variable) []*lp.Variable {
	n := len(xs)
	ys := make([]*lp.Variable, n)
	for j := range ys {
		ys[j] = h.degreeAux()
	}
	if n == 0 {
		return ys
	}
	p := make([][]*lp.Variable, n)
	for i := range p {
		p[i] = make([]*lp.Variable, n)
		for j := range p[i] {
			p[i][j] = h.NewAuxiliary(lp.Binary)
		}
	}
	for i := 0; i < n; i++ {
		row, col := lp.Expression{}, lp.Expression{}
		for j := 0; j < n; j++ {
			row = row.AddTerm(1, p[i][j])
			col = col.AddTerm(1, p[j][i])
		}
		h.AddConstraint(row.AddConstant(-1), lp.EQ)
		h.AddConstraint(col.AddConstant(-1), lp.EQ)
	}
	for j := 1; j < n; j++ {
		h.AddComparison(ve(ys[j-1]), lp.GE, ve(ys[j]))
	}
	for i, x := range xs {
		for j, y := range ys {
			// |y_j - x_i| ≤ 1 - p_ij
			bound := ve(p[i][j]).Scale(-1).AddConstant(1)
			h.AddComparison(ve(y).AddTerm(-1, x), lp.LE, bound)
			h.AddComparison(ve(x).AddTerm(-1, y), lp.LE, bound)
		}
	}
	return ys
}

// PiecewiseLinear returns y = f(x) where f is the piecewise linear function
// through points (sorted by X). x is restricted to [X_1, X_n].
//
// x and y are convex combinations of two consecutive points: λ_k are the
// weights of the points, the binary s_k selects the active segment.
func (h *Helper) PiecewiseLinear(x *lp.Variable, points []domains.Point) *lp.Variable {
	y := h.NewAuxiliary(lp.Continuous)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo, hi = math.Min(lo, p.Y), math.Max(hi, p.Y)
	}
	if len(points) == 0 {
		lo, hi = 0, 0
	}
	y.SetBounds(lo, hi)
	switch len(points) {
	case 0:
		return y
	case 1:
		h.Fix(x, points[0].X)
		h.Fix(y, points[0].Y)
		return y
	}
	n := len(points)
	lambdas := make([]*lp.Variable, n)
	sum, xs, ys := lp.Expression{}, ve(x), ve(y)
	for k, p := range points {
		lambdas[k] = h.NewAuxiliary(lp.Continuous)
		sum = sum.AddTerm(1, lambdas[k])
		xs = xs.AddTerm(-p.X, lambdas[k])
		ys = ys.AddTerm(-p.Y, lambdas[k])
	}
	h.AddConstraint(sum.AddConstant(-1), lp.EQ)
	h.AddConstraint(xs, lp.EQ)
	h.AddConstraint(ys, lp.EQ)
	segments := make([]*lp.Variable, n-1)
	segSum := lp.Expression{}
	for k := range segments {
		segments[k] = h.NewAuxiliary(lp.Binary)
		segSum = segSum.AddTerm(1, segments[k])
	}
	h.AddConstraint(segSum.AddConstant(-1), lp.EQ)
	for k, l := range lambdas {
		active := lp.Expression{}
		if k > 0 {
			active = active.AddTerm(1, segments[k-1])
		}
		if k < n-1 {
			active = active.AddTerm(1, segments[k])
		}
		h.AddComparison(ve(l), lp.LE, active)
	}
	return y
}

// Modify applies a fuzzy modifier to the degree x.
func (h *Helper) Modify(m domains.Modifier, x *lp.Variable) *lp.Variable {
	return h.PiecewiseLinear(x, m.Points())
}

// Membership returns the degree of the value x in the fuzzy set. Values of
// x outside the range of the shape get the degree of the nearest border.
func (h *Helper) Membership(shape domains.Membership, x *lp.Variable) *lp.Variable {
	points := shape.Points()
	if n := len(points); n > 0 {
		if first := points[0]; x.Lower < first.X && !math.IsInf(x.Lower, -1) {
			points = append([]domains.Point{{X: x.Lower, Y: first.Y}}, points...)
		}
		if last := points[len(points)-1]; x.Upper > last.X && !math.IsInf(x.Upper, 1) {
			points = append(points, domains.Point{X: x.Upper, Y: last.Y})
		}
	}
	return h.PiecewiseLinear(x, points)
}

// SigmaCount states that Var is the degree of Individual in a sigma-count
// concept: Q(Σ_b T(role(a, b), C(b)) / n) for the n listed individuals b.
type SigmaCount struct {
	Var         *lp.Variable
	Individual  *fuzzydl.Individual
	Individuals []*fuzzydl.Individual
	Role        string
	Concept     fuzzydl.Concept
	Quantifier  domains.Membership
	Semantics   fuzzydl.Semantics
}

func (sc *SigmaCount) remap(f func(*lp.Variable) *lp.Variable) *SigmaCount {
	cp := *sc
	cp.Var = f(sc.Var)
	cp.Individuals = append([]*fuzzydl.Individual(nil), sc.Individuals...)
	return &cp
}

// AddCardinalityList registers a sigma-count. Its constraints are added
// before the next optimization.
func (h *Helper) AddCardinalityList(sc *SigmaCount) {
	h.cardinalities = append(h.cardinalities, sc)
}

// expandCardinalities adds the constraints of all sigma-counts registered
// since the last call.
func (h *Helper) expandCardinalities() {
	for ; h.expanded < len(h.cardinalities); h.expanded++ {
		sc := h.cardinalities[h.expanded]
		n := len(sc.Individuals)
		if n == 0 {
			h.Fix(sc.Var, sc.Quantifier.Degree(0))
			continue
		}
		ratio := h.NewAuxiliary(lp.Continuous)
		e := ve(ratio)
		for _, b := range sc.Individuals {
			r := h.RoleVariable(sc.Individual, b, sc.Role)
			c := h.IndividualVariable(b, sc.Concept)
			e = e.AddTerm(-1/float64(n), h.TNorm(sc.Semantics, r, c))
		}
		h.AddConstraint(e, lp.EQ)
		h.Equal(sc.Var, h.Membership(sc.Quantifier, ratio))
	}
}
