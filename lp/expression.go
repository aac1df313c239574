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

package lp

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Term is coefficient · variable.
type Term struct {
	Coeff float64
	Var   *Variable
}

// NewTerm returns the term coeff · v.
func NewTerm(coeff float64, v *Variable) Term {
	return Term{Coeff: coeff, Var: v}
}

func (t Term) String() string {
	switch t.Coeff {
	case 1:
		return t.Var.Name
	case -1:
		return "-" + t.Var.Name
	default:
		return FormatFloat(t.Coeff) + " " + t.Var.Name
	}
}

// Expression is a linear expression constant + Σ terms.
// Expressions are values: all operations return a new expression and never
// modify the terms of their receiver.
type Expression struct {
	Constant float64
	Terms    []Term
}

// NewExpression returns the expression constant + terms.
func NewExpression(constant float64, terms ...Term) Expression {
	ts := make([]Term, len(terms))
	copy(ts, terms)
	return Expression{Constant: constant, Terms: ts}
}

// VarExpression returns the expression 1 · v.
func VarExpression(v *Variable) Expression {
	return NewExpression(0, NewTerm(1, v))
}

// Sum returns the expression 1 · v1 + ... + 1 · vn.
func Sum(vars ...*Variable) Expression {
	terms := make([]Term, len(vars))
	for i, v := range vars {
		terms[i] = NewTerm(1, v)
	}
	return Expression{Terms: terms}
}

func (e Expression) copyTerms(extra int) []Term {
	ts := make([]Term, len(e.Terms), len(e.Terms)+extra)
	copy(ts, e.Terms)
	return ts
}

// AddTerm returns e + coeff · v.
func (e Expression) AddTerm(coeff float64, v *Variable) Expression {
	ts := e.copyTerms(1)
	ts = append(ts, NewTerm(coeff, v))
	return Expression{Constant: e.Constant, Terms: ts}
}

// AddConstant returns e + c.
func (e Expression) AddConstant(c float64) Expression {
	return Expression{Constant: e.Constant + c, Terms: e.copyTerms(0)}
}

// Plus returns e + other.
func (e Expression) Plus(other Expression) Expression {
	ts := e.copyTerms(len(other.Terms))
	ts = append(ts, other.Terms...)
	return Expression{Constant: e.Constant + other.Constant, Terms: ts}
}

// Minus returns e - other.
func (e Expression) Minus(other Expression) Expression {
	return e.Plus(other.Scale(-1))
}

// Scale returns f · e.
func (e Expression) Scale(f float64) Expression {
	ts := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		ts[i] = NewTerm(f*t.Coeff, t.Var)
	}
	return Expression{Constant: f * e.Constant, Terms: ts}
}

// Normalize merges all terms of the same variable (by name), drops terms with
// coefficient zero and sorts the terms by variable name. The string
// representation of two normalized expressions is equal iff they describe
// the same linear function.
func (e Expression) Normalize() Expression {
	coeffs := make(map[string]float64, len(e.Terms))
	vars := make(map[string]*Variable, len(e.Terms))
	for _, t := range e.Terms {
		coeffs[t.Var.Name] += t.Coeff
		if _, has := vars[t.Var.Name]; !has {
			vars[t.Var.Name] = t.Var
		}
	}
	names := make([]string, 0, len(coeffs))
	for name, c := range coeffs {
		if c != 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	ts := make([]Term, len(names))
	for i, name := range names {
		ts[i] = NewTerm(coeffs[name], vars[name])
	}
	return Expression{Constant: e.Constant, Terms: ts}
}

// IsConstant returns true if e has no term with a non-zero coefficient.
func (e Expression) IsConstant() bool {
	for _, t := range e.Terms {
		if t.Coeff != 0 {
			return false
		}
	}
	return true
}

// Variables returns the distinct variables occurring in e, in order of their
// first occurrence.
func (e Expression) Variables() []*Variable {
	seen := make(map[string]struct{}, len(e.Terms))
	res := make([]*Variable, 0, len(e.Terms))
	for _, t := range e.Terms {
		if _, has := seen[t.Var.Name]; has {
			continue
		}
		seen[t.Var.Name] = struct{}{}
		res = append(res, t.Var)
	}
	return res
}

// Coefficient returns the (summed) coefficient of the variable with the given
// name.
func (e Expression) Coefficient(name string) float64 {
	res := 0.0
	for _, t := range e.Terms {
		if t.Var.Name == name {
			res += t.Coeff
		}
	}
	return res
}

// Eval evaluates e, variables missing in values are assumed to be 0.
func (e Expression) Eval(values map[string]float64) float64 {
	res := e.Constant
	for _, t := range e.Terms {
		res += t.Coeff * values[t.Var.Name]
	}
	return res
}

// Remap returns e with every variable replaced by f(variable).
func (e Expression) Remap(f func(*Variable) *Variable) Expression {
	ts := make([]Term, len(e.Terms))
	for i, t := range e.Terms {
		ts[i] = NewTerm(t.Coeff, f(t.Var))
	}
	return Expression{Constant: e.Constant, Terms: ts}
}

func (e Expression) String() string {
	if len(e.Terms) == 0 {
		return FormatFloat(e.Constant)
	}
	var b strings.Builder
	for i, t := range e.Terms {
		s := t.String()
		if i > 0 {
			if strings.HasPrefix(s, "-") {
				b.WriteString(" - ")
				s = s[1:]
			} else {
				b.WriteString(" + ")
			}
		}
		b.WriteString(s)
	}
	switch {
	case e.Constant > 0:
		fmt.Fprintf(&b, " + %s", FormatFloat(e.Constant))
	case e.Constant < 0:
		fmt.Fprintf(&b, " - %s", FormatFloat(-e.Constant))
	}
	return b.String()
}

// Comparison is the comparison operator of an inequation.
type Comparison int

const (
	EQ Comparison = iota
	LE
	GE
)

func (op Comparison) String() string {
	switch op {
	case EQ:
		return "="
	case LE:
		return "<="
	case GE:
		return ">="
	default:
		return fmt.Sprintf("Comparison(%d)", op)
	}
}

// ParseComparison is the inverse of Comparison.String.
func ParseComparison(s string) (Comparison, error) {
	switch s {
	case "=", "==":
		return EQ, nil
	case "<=", "≤":
		return LE, nil
	case ">=", "≥":
		return GE, nil
	default:
		return -1, fmt.Errorf("unknown comparison %q", s)
	}
}

// Holds returns true if lhs op rhs holds up to eps.
func (op Comparison) Holds(lhs, rhs, eps float64) bool {
	switch op {
	case EQ:
		return math.Abs(lhs-rhs) <= eps
	case LE:
		return lhs <= rhs+eps
	default:
		return lhs >= rhs-eps
	}
}

// Inequation is the constraint Expr op 0.
type Inequation struct {
	Expr Expression
	Op   Comparison
}

// NewInequation returns the inequation e op 0, e is normalized.
func NewInequation(e Expression, op Comparison) Inequation {
	return Inequation{Expr: e.Normalize(), Op: op}
}

// Compare returns the inequation lhs op rhs, i.e. lhs - rhs op 0.
func Compare(lhs Expression, op Comparison, rhs Expression) Inequation {
	return NewInequation(lhs.Minus(rhs), op)
}

// IsConstant returns true if the inequation doesn't contain a variable.
func (ineq Inequation) IsConstant() bool {
	return ineq.Expr.IsConstant()
}

// IsVacuous returns true if the inequation contains no variable and holds.
func (ineq Inequation) IsVacuous(eps float64) bool {
	return ineq.IsConstant() && ineq.Op.Holds(ineq.Expr.Constant, 0, eps)
}

// IsInfeasible returns true if the inequation contains no variable and
// doesn't hold.
func (ineq Inequation) IsInfeasible(eps float64) bool {
	return ineq.IsConstant() && !ineq.Op.Holds(ineq.Expr.Constant, 0, eps)
}

// Satisfied returns true if the assignment satisfies the inequation.
func (ineq Inequation) Satisfied(values map[string]float64, eps float64) bool {
	return ineq.Op.Holds(ineq.Expr.Eval(values), 0, eps)
}

// Remap returns the inequation with every variable replaced by f(variable).
func (ineq Inequation) Remap(f func(*Variable) *Variable) Inequation {
	return Inequation{Expr: ineq.Expr.Remap(f), Op: ineq.Op}
}

func (ineq Inequation) String() string {
	return fmt.Sprintf("%v %v 0", ineq.Expr, ineq.Op)
}
