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

// AddInequation adds a constraint to the model. Constraints are identified
// by their textual representation, adding the same constraint twice has no
// effect. Vacuous constraints (no variables and satisfied) are kept here and
// dropped when the model is built.
//
// Every variable of the constraint is replaced by the variable of h with the
// same name, a variable h doesn't know is copied into h. So a constraint never
// refers to a variable owned by another helper, for example the one h was
// cloned from.
func (h *Helper) AddInequation(ineq lp.Inequation) {
	ineq = ineq.Remap(h.adopt)
	key := ineq.String()
	if _, has := h.constraintKeys[key]; has {
		return
	}
	h.constraintKeys[key] = struct{}{}
	h.constraints = append(h.constraints, ineq)
}

// AddConstraint adds the constraint e op 0.
func (h *Helper) AddConstraint(e lp.Expression, op lp.Comparison) {
	h.AddInequation(lp.NewInequation(e, op))
}

// AddComparison adds the constraint lhs op rhs.
func (h *Helper) AddComparison(lhs lp.Expression, op lp.Comparison, rhs lp.Expression) {
	h.AddInequation(lp.Compare(lhs, op, rhs))
}

// AddDegreeConstraint adds the constraint v ≥ d.
func (h *Helper) AddDegreeConstraint(v *lp.Variable, d lp.Degree) {
	h.AddInequation(d.Inequation(lp.VarExpression(v), lp.GE))
}

// AddDegreeComparison adds the constraint v op d.
func (h *Helper) AddDegreeComparison(v *lp.Variable, op lp.Comparison, d lp.Degree) {
	h.AddInequation(d.Inequation(lp.VarExpression(v), op))
}

// AddAssertion adds the constraint stating that the degree of the assertion
// is at least its lower bound.
func (h *Helper) AddAssertion(a *fuzzydl.Assertion) {
	h.AddDegreeConstraint(h.AssertionVariable(a), a.Degree)
}

// AddRelation adds the constraint stating that the degree of the relation is
// at least its lower bound.
func (h *Helper) AddRelation(r *fuzzydl.Relation) {
	h.AddDegreeConstraint(h.RelationVariable(r), r.Degree)
}

// Fix adds the constraint v = value.
func (h *Helper) Fix(v *lp.Variable, value float64) {
	h.AddConstraint(lp.VarExpression(v).AddConstant(-value), lp.EQ)
}

// Equal adds the constraint x = y.
func (h *Helper) Equal(x, y *lp.Variable) {
	h.AddComparison(lp.VarExpression(x), lp.EQ, lp.VarExpression(y))
}

// Constraints returns all constraints in the order they were added.
func (h *Helper) Constraints() []lp.Inequation {
	res := make([]lp.Inequation, len(h.constraints))
	copy(res, h.constraints)
	return res
}

// NumConstraints returns the number of (distinct) constraints.
func (h *Helper) NumConstraints() int {
	return len(h.constraints)
}
