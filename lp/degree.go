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

// Degree is the truth degree attached to an assertion or relation. It's
// either a number, a variable or a linear expression.
//
// Assertions are lower bounds: an assertion with degree d is satisfied if the
// membership degree x is at least d. Inequation builds x - d op 0.
type Degree interface {
	IsNumeric() bool
	// Value returns the numeric value of a numeric degree and 0 otherwise.
	Value() float64
	IsNumberZero() bool
	// IsNumberOne returns true if the degree is exactly the number 1, such a
	// degree is the default and doesn't have to be exported.
	IsNumberOne() bool
	Expression() Expression
	// AddTo returns e + d.
	AddTo(e Expression) Expression
	// SubtractFrom returns e - d.
	SubtractFrom(e Expression) Expression
	// Inequation returns e - d op 0.
	Inequation(e Expression, op Comparison) Inequation
	Clone() Degree
	String() string
}

// NumericDegree is a degree given by a number.
type NumericDegree struct {
	Val float64
}

// Number returns the numeric degree v.
func Number(v float64) NumericDegree {
	return NumericDegree{Val: v}
}

func (d NumericDegree) IsNumeric() bool    { return true }
func (d NumericDegree) Value() float64     { return d.Val }
func (d NumericDegree) IsNumberZero() bool { return d.Val == 0 }
func (d NumericDegree) IsNumberOne() bool  { return d.Val == 1 }

func (d NumericDegree) Expression() Expression {
	return NewExpression(d.Val)
}

func (d NumericDegree) AddTo(e Expression) Expression {
	return e.AddConstant(d.Val)
}

func (d NumericDegree) SubtractFrom(e Expression) Expression {
	return e.AddConstant(-d.Val)
}

func (d NumericDegree) Inequation(e Expression, op Comparison) Inequation {
	return NewInequation(d.SubtractFrom(e), op)
}

func (d NumericDegree) Clone() Degree { return d }

func (d NumericDegree) String() string {
	return FormatFloat(d.Val)
}

// VariableDegree is a degree given by a variable, for example the degree of
// a fuzzy concept inclusion whose value is computed by the solver.
type VariableDegree struct {
	Var *Variable
}

// VarDegree returns the degree given by v.
func VarDegree(v *Variable) VariableDegree {
	return VariableDegree{Var: v}
}

func (d VariableDegree) IsNumeric() bool    { return false }
func (d VariableDegree) Value() float64     { return 0 }
func (d VariableDegree) IsNumberZero() bool { return false }
func (d VariableDegree) IsNumberOne() bool  { return false }

func (d VariableDegree) Expression() Expression {
	return VarExpression(d.Var)
}

func (d VariableDegree) AddTo(e Expression) Expression {
	return e.AddTerm(1, d.Var)
}

func (d VariableDegree) SubtractFrom(e Expression) Expression {
	return e.AddTerm(-1, d.Var)
}

func (d VariableDegree) Inequation(e Expression, op Comparison) Inequation {
	return NewInequation(d.SubtractFrom(e), op)
}

// Clone returns a degree referring to the same variable. The helper that
// stores the lowered constraint replaces it by its own variable of that name.
func (d VariableDegree) Clone() Degree { return d }

func (d VariableDegree) String() string {
	return d.Var.Name
}

// ExpressionDegree is a degree given by a linear expression.
type ExpressionDegree struct {
	Expr Expression
}

// ExprDegree returns the degree given by e.
func ExprDegree(e Expression) ExpressionDegree {
	return ExpressionDegree{Expr: NewExpression(e.Constant, e.Terms...)}
}

func (d ExpressionDegree) IsNumeric() bool { return false }
func (d ExpressionDegree) Value() float64  { return 0 }

func (d ExpressionDegree) IsNumberZero() bool { return false }
func (d ExpressionDegree) IsNumberOne() bool  { return false }

func (d ExpressionDegree) Expression() Expression {
	return NewExpression(d.Expr.Constant, d.Expr.Terms...)
}

func (d ExpressionDegree) AddTo(e Expression) Expression {
	return e.Plus(d.Expr)
}

func (d ExpressionDegree) SubtractFrom(e Expression) Expression {
	return e.Minus(d.Expr)
}

func (d ExpressionDegree) Inequation(e Expression, op Comparison) Inequation {
	return NewInequation(d.SubtractFrom(e), op)
}

func (d ExpressionDegree) Clone() Degree {
	return ExprDegree(d.Expr)
}

func (d ExpressionDegree) String() string {
	return d.Expr.String()
}
