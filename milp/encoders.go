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
	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/lp"
)

// The encoders below add the linear constraints defining a fuzzy operator
// and return the variable holding its result. All input variables are
// assumed to take values in [0, 1].

func (h *Helper) degreeAux() *lp.Variable {
	return h.NewAuxiliary(lp.Continuous)
}

func ve(v *lp.Variable) lp.Expression {
	return lp.VarExpression(v)
}

func sumOf(xs []*lp.Variable) lp.Expression {
	return lp.Sum(xs...)
}

// GoedelAnd encodes z = min(x1, ..., xn) with one binary selector per
// operand: the selected operand is at most z.
func (h *Helper) GoedelAnd(xs ...*lp.Variable) *lp.Variable {
	switch len(xs) {
	case 0:
		return h.Constant(1)
	case 1:
		return xs[0]
	}
	z := h.degreeAux()
	sel := lp.Expression{}
	for _, x := range xs {
		b := h.NewAuxiliary(lp.Binary)
		h.AddComparison(ve(z), lp.LE, ve(x))
		// z ≥ x - (1 - b)
		h.AddComparison(ve(z), lp.GE, ve(x).AddTerm(1, b).AddConstant(-1))
		sel = sel.AddTerm(1, b)
	}
	h.AddConstraint(sel.AddConstant(-1), lp.EQ)
	return z
}

// GoedelOr encodes z = max(x1, ..., xn).
func (h *Helper) GoedelOr(xs ...*lp.Variable) *lp.Variable {
	switch len(xs) {
	case 0:
		return h.Constant(0)
	case 1:
		return xs[0]
	}
	z := h.degreeAux()
	sel := lp.Expression{}
	for _, x := range xs {
		b := h.NewAuxiliary(lp.Binary)
		h.AddComparison(ve(z), lp.GE, ve(x))
		// z ≤ x + (1 - b)
		h.AddComparison(ve(z), lp.LE, ve(x).AddTerm(-1, b).AddConstant(1))
		sel = sel.AddTerm(1, b)
	}
	h.AddConstraint(sel.AddConstant(-1), lp.EQ)
	return z
}

// LukasiewiczAnd encodes z = max(0, x1 + ... + xn - (n - 1)).
// The binary b is 1 iff the sum is positive.
func (h *Helper) LukasiewiczAnd(xs ...*lp.Variable) *lp.Variable {
	switch len(xs) {
	case 0:
		return h.Constant(1)
	case 1:
		return xs[0]
	}
	n := float64(len(xs))
	z := h.degreeAux()
	b := h.NewAuxiliary(lp.Binary)
	sum := sumOf(xs)
	h.AddComparison(ve(z), lp.GE, sum.AddConstant(-(n - 1)))
	h.AddComparison(ve(z), lp.LE, ve(b))
	h.AddComparison(ve(z), lp.LE, sum.AddTerm(-(n-1), b))
	return z
}

// LukasiewiczOr encodes z = min(1, x1 + ... + xn).
// The binary b is 1 iff the sum is at least 1.
func (h *Helper) LukasiewiczOr(xs ...*lp.Variable) *lp.Variable {
	switch len(xs) {
	case 0:
		return h.Constant(0)
	case 1:
		return xs[0]
	}
	n := float64(len(xs))
	z := h.degreeAux()
	b := h.NewAuxiliary(lp.Binary)
	sum := sumOf(xs)
	h.AddComparison(ve(z), lp.LE, sum)
	h.AddComparison(ve(z), lp.GE, ve(b))
	h.AddComparison(ve(z), lp.GE, sum.AddTerm(-n, b))
	return z
}

// ClassicalAnd encodes the conjunction of binary variables.
func (h *Helper) ClassicalAnd(xs ...*lp.Variable) *lp.Variable {
	switch len(xs) {
	case 0:
		return h.Constant(1)
	case 1:
		return xs[0]
	}
	z := h.NewAuxiliary(lp.Binary)
	for _, x := range xs {
		h.AddComparison(ve(z), lp.LE, ve(x))
	}
	h.AddComparison(ve(z), lp.GE, sumOf(xs).AddConstant(-float64(len(xs)-1)))
	return z
}

// ClassicalOr encodes the disjunction of binary variables.
func (h *Helper) ClassicalOr(xs ...*lp.Variable) *lp.Variable {
	switch len(xs) {
	case 0:
		return h.Constant(0)
	case 1:
		return xs[0]
	}
	z := h.NewAuxiliary(lp.Binary)
	for _, x := range xs {
		h.AddComparison(ve(z), lp.GE, ve(x))
	}
	h.AddComparison(ve(z), lp.LE, sumOf(xs))
	return z
}

func allBinary(xs []*lp.Variable) bool {
	for _, x := range xs {
		if x.Type != lp.Binary {
			return false
		}
	}
	return true
}

// TNorm encodes the conjunction of the semantics. Classical conjunctions of
// non-binary variables are encoded as minimum.
func (h *Helper) TNorm(sem fuzzydl.Semantics, xs ...*lp.Variable) *lp.Variable {
	switch {
	case sem == fuzzydl.Lukasiewicz:
		return h.LukasiewiczAnd(xs...)
	case sem == fuzzydl.Classical && allBinary(xs):
		return h.ClassicalAnd(xs...)
	default:
		return h.GoedelAnd(xs...)
	}
}

// TConorm encodes the disjunction of the semantics.
func (h *Helper) TConorm(sem fuzzydl.Semantics, xs ...*lp.Variable) *lp.Variable {
	switch {
	case sem == fuzzydl.Lukasiewicz:
		return h.LukasiewiczOr(xs...)
	case sem == fuzzydl.Classical && allBinary(xs):
		return h.ClassicalOr(xs...)
	default:
		return h.GoedelOr(xs...)
	}
}

// Negation encodes z = 1 - x.
func (h *Helper) Negation(x *lp.Variable) *lp.Variable {
	t := lp.Continuous
	if x.Type == lp.Binary {
		t = lp.Binary
	}
	z := h.NewAuxiliary(t)
	h.AddConstraint(ve(z).AddTerm(1, x).AddConstant(-1), lp.EQ)
	return z
}

// lessEqualIndicator returns a binary b with b = 1 iff x ≤ y, x > y is
// encoded as x ≥ y + ε.
func (h *Helper) lessEqualIndicator(x, y *lp.Variable) *lp.Variable {
	eps := h.opts.Epsilon
	b := h.NewAuxiliary(lp.Binary)
	diff := ve(x).AddTerm(-1, y)
	// x - y ≤ 1 - b
	h.AddComparison(diff, lp.LE, ve(b).Scale(-1).AddConstant(1))
	// x - y ≥ ε - (1 + ε) b
	h.AddComparison(diff, lp.GE, ve(b).Scale(-(1 + eps)).AddConstant(eps))
	return b
}

// GoedelImplies encodes z = 1 if x ≤ y and z = y otherwise.
func (h *Helper) GoedelImplies(x, y *lp.Variable) *lp.Variable {
	b := h.lessEqualIndicator(x, y)
	z := h.degreeAux()
	h.AddComparison(ve(z), lp.GE, ve(y))
	h.AddComparison(ve(z), lp.LE, ve(y).AddTerm(1, b))
	h.AddComparison(ve(z), lp.GE, ve(b))
	return z
}

// ZadehImplies encodes z = 1 if x ≤ y and z = 0 otherwise.
func (h *Helper) ZadehImplies(x, y *lp.Variable) *lp.Variable {
	return h.lessEqualIndicator(x, y)
}

// LukasiewiczImplies encodes z = min(1, 1 - x + y).
func (h *Helper) LukasiewiczImplies(x, y *lp.Variable) *lp.Variable {
	return h.LukasiewiczOr(h.Negation(x), y)
}

// KleeneDienesImplies encodes z = max(1 - x, y).
func (h *Helper) KleeneDienesImplies(x, y *lp.Variable) *lp.Variable {
	return h.GoedelOr(h.Negation(x), y)
}

// Weighted encodes z = w·x.
func (h *Helper) Weighted(w float64, x *lp.Variable) *lp.Variable {
	z := h.degreeAux()
	h.AddConstraint(ve(z).AddTerm(-w, x), lp.EQ)
	return z
}

// WeightedSum encodes z = Σ w_i·x_i.
func (h *Helper) WeightedSum(ws []float64, xs []*lp.Variable) *lp.Variable {
	z := h.degreeAux()
	e := ve(z)
	for i, x := range xs {
		e = e.AddTerm(-ws[i], x)
	}
	h.AddConstraint(e, lp.EQ)
	return z
}

// WeightedSumZero is the weighted sum if all x_i are positive and 0
// otherwise. The binary c is 1 iff all x_i are positive, d_i = 1 forces
// x_i = 0.
func (h *Helper) WeightedSumZero(ws []float64, xs []*lp.Variable) *lp.Variable {
	y := h.WeightedSum(ws, xs)
	z := h.degreeAux()
	c := h.NewAuxiliary(lp.Binary)
	zeros := lp.Expression{}
	for _, x := range xs {
		d := h.NewAuxiliary(lp.Binary)
		h.AddComparison(ve(x), lp.GE, ve(c).Scale(h.opts.Epsilon))
		h.AddComparison(ve(x), lp.LE, ve(d).Scale(-1).AddConstant(1))
		zeros = zeros.AddTerm(1, d)
	}
	h.AddComparison(zeros, lp.GE, ve(c).Scale(-1).AddConstant(1))
	h.AddComparison(ve(z), lp.LE, ve(y))
	h.AddComparison(ve(z), lp.LE, ve(c))
	h.AddComparison(ve(z), lp.GE, ve(y).AddTerm(1, c).AddConstant(-1))
	return z
}

// WeightedMin encodes min_i max(1 - w_i, x_i).
func (h *Helper) WeightedMin(ws []float64, xs []*lp.Variable) *lp.Variable {
	parts := make([]*lp.Variable, len(xs))
	for i, x := range xs {
		parts[i] = h.GoedelOr(h.Constant(1-ws[i]), x)
	}
	return h.GoedelAnd(parts...)
}

// WeightedMax encodes max_i min(w_i, x_i).
func (h *Helper) WeightedMax(ws []float64, xs []*lp.Variable) *lp.Variable {
	parts := make([]*lp.Variable, len(xs))
	for i, x := range xs {
		parts[i] = h.GoedelAnd(h.Constant(ws[i]), x)
	}
	return h.GoedelOr(parts...)
}

// thresholdValue returns z with z = x if b = 1 and z = 0 otherwise.
func (h *Helper) thresholdValue(b, x *lp.Variable) *lp.Variable {
	z := h.degreeAux()
	h.AddComparison(ve(z), lp.LE, ve(b))
	h.AddComparison(ve(z), lp.LE, ve(x))
	h.AddComparison(ve(z), lp.GE, ve(x).AddTerm(1, b).AddConstant(-1))
	return z
}

// PosThreshold encodes z = x if x ≥ w and z = 0 otherwise.
func (h *Helper) PosThreshold(w float64, x *lp.Variable) *lp.Variable {
	eps := h.opts.Epsilon
	b := h.NewAuxiliary(lp.Binary)
	h.AddComparison(ve(x), lp.GE, ve(b).Scale(w))
	h.AddComparison(ve(x), lp.LE, ve(b).Scale(1-w+eps).AddConstant(w-eps))
	return h.thresholdValue(b, x)
}

// NegThreshold encodes z = x if x ≤ w and z = 0 otherwise.
func (h *Helper) NegThreshold(w float64, x *lp.Variable) *lp.Variable {
	eps := h.opts.Epsilon
	b := h.NewAuxiliary(lp.Binary)
	h.AddComparison(ve(x), lp.LE, ve(b).Scale(-(1 - w)).AddConstant(1))
	h.AddComparison(ve(x), lp.GE, ve(b).Scale(-(w + eps)).AddConstant(w+eps))
	return h.thresholdValue(b, x)
}

// OWA encodes Σ w_j·y_j where y is xs sorted in non-increasing order.
func (h *Helper) OWA(ws []float64, xs []*lp.Variable) *lp.Variable {
	return h.WeightedSum(ws, h.OrderedPermutation(xs))
}

// Choquet encodes the Choquet integral Σ_j w_j·(y_j - y_{j+1}) where y is
// xs sorted in non-increasing order, y_{n+1} = 0 and w_j is the measure of
// the j largest operands.
func (h *Helper) Choquet(ws []float64, xs []*lp.Variable) *lp.Variable {
	coeffs := make([]float64, len(ws))
	prev := 0.0
	for j, w := range ws {
		coeffs[j] = w - prev
		prev = w
	}
	return h.WeightedSum(coeffs, h.OrderedPermutation(xs))
}

// Sugeno encodes max_j min(y_j, w_j).
func (h *Helper) Sugeno(ws []float64, xs []*lp.Variable) *lp.Variable {
	ys := h.OrderedPermutation(xs)
	parts := make([]*lp.Variable, len(ys))
	for j, y := range ys {
		parts[j] = h.GoedelAnd(y, h.Constant(ws[j]))
	}
	return h.GoedelOr(parts...)
}

// QuasiSugeno encodes max_j max(0, y_j + w_j - 1).
func (h *Helper) QuasiSugeno(ws []float64, xs []*lp.Variable) *lp.Variable {
	ys := h.OrderedPermutation(xs)
	parts := make([]*lp.Variable, len(ys))
	for j, y := range ys {
		parts[j] = h.LukasiewiczAnd(y, h.Constant(ws[j]))
	}
	return h.GoedelOr(parts...)
}

// ValueIndicator returns a binary b with b = 1 iff x op value holds, for
// op one of GE, LE and EQ. The bounds of x must be finite, they are the
// big-M constants of the encoding. Strict inequalities use ε, or 1 if x is
// integer.
func (h *Helper) ValueIndicator(x *lp.Variable, op lp.Comparison, value float64) *lp.Variable {
	eps := h.opts.Epsilon
	if x.Type == lp.Integer || x.Type == lp.Binary {
		eps = 1
	}
	l, u := x.Lower, x.Upper
	switch op {
	case lp.GE:
		b := h.NewAuxiliary(lp.Binary)
		// b = 1 ⇒ x ≥ value
		h.AddComparison(ve(x), lp.GE, ve(b).Scale(value-l).AddConstant(l))
		// b = 0 ⇒ x ≤ value - ε
		h.AddComparison(ve(x), lp.LE, ve(b).Scale(u-value+eps).AddConstant(value-eps))
		return b
	case lp.LE:
		b := h.NewAuxiliary(lp.Binary)
		// b = 1 ⇒ x ≤ value
		h.AddComparison(ve(x), lp.LE, ve(b).Scale(value-u).AddConstant(u))
		// b = 0 ⇒ x ≥ value + ε
		h.AddComparison(ve(x), lp.GE, ve(b).Scale(l-value-eps).AddConstant(value+eps))
		return b
	default:
		return h.ClassicalAnd(h.ValueIndicator(x, lp.GE, value), h.ValueIndicator(x, lp.LE, value))
	}
}
