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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableDefaults(t *testing.T) {
	x := NewVariable("x", SemiContinuous)
	assert.Equal(t, 0.0, x.Lower)
	assert.Equal(t, 1.0, x.Upper)
	n := NewVariable("n", Integer)
	assert.True(t, math.IsInf(n.Upper, 1))
	n.SetType(Binary)
	assert.Equal(t, 1.0, n.Upper)
	assert.True(t, n.Type.IsInteger())

	kind, err := ParseVarType("semi-continuous")
	require.NoError(t, err)
	assert.Equal(t, SemiContinuous, kind)
	_, err = ParseVarType("real")
	assert.Error(t, err)
}

func TestExpressionNormalize(t *testing.T) {
	x := NewVariable("x", Continuous)
	y := NewVariable("y", Continuous)
	e := NewExpression(0.5, NewTerm(2, y), NewTerm(1, x), NewTerm(-2, y))
	n := e.Normalize()
	require.Len(t, n.Terms, 1)
	assert.Equal(t, "x + 0.5", n.String())
	// e itself is unchanged
	assert.Len(t, e.Terms, 3)

	f := VarExpression(x).Minus(Sum(x, y)).AddConstant(-1).Normalize()
	assert.Equal(t, "-y - 1", f.String())
	assert.Equal(t, -3.0, f.Eval(map[string]float64{"y": 2}))
	assert.Equal(t, -1.0, f.Coefficient("y"))
	assert.False(t, f.IsConstant())
	assert.True(t, VarExpression(x).Minus(VarExpression(x)).IsConstant())
}

func TestInequation(t *testing.T) {
	x := NewVariable("x", Continuous)
	ineq := Compare(VarExpression(x), GE, NewExpression(0.3))
	assert.Equal(t, "x - 0.3 >= 0", ineq.String())
	assert.True(t, ineq.Satisfied(map[string]float64{"x": 0.5}, 1e-9))
	assert.False(t, ineq.Satisfied(map[string]float64{"x": 0.1}, 1e-9))

	vacuous := NewInequation(VarExpression(x).Minus(VarExpression(x)), EQ)
	assert.True(t, vacuous.IsVacuous(1e-9))
	assert.False(t, vacuous.IsInfeasible(1e-9))

	infeasible := NewInequation(NewExpression(-1), GE)
	assert.True(t, infeasible.IsInfeasible(1e-9))
	assert.False(t, infeasible.IsVacuous(1e-9))

	op, err := ParseComparison("<=")
	require.NoError(t, err)
	assert.Equal(t, LE, op)
}

func TestDegrees(t *testing.T) {
	x := NewVariable("a:C", SemiContinuous)
	v := NewVariable("d", SemiContinuous)
	e := VarExpression(x)

	num := Number(0.7)
	assert.True(t, num.IsNumeric())
	assert.Equal(t, 0.7, num.Value())
	assert.Equal(t, "a:C - 0.7 >= 0", num.Inequation(e, GE).String())
	assert.True(t, Number(1).IsNumberOne())
	assert.True(t, Number(0).IsNumberZero())

	vd := VarDegree(v)
	assert.False(t, vd.IsNumeric())
	assert.False(t, vd.IsNumberOne())
	assert.Equal(t, "a:C - d >= 0", vd.Inequation(e, GE).String())

	ed := ExprDegree(NewExpression(0.2, NewTerm(0.5, v)))
	assert.Equal(t, "a:C - 0.5 d - 0.2 <= 0", ed.Inequation(e, LE).String())
	assert.Equal(t, "0.5 d + 0.2", ed.Clone().String())
	assert.Equal(t, "a:C + 0.5 d + 0.2", ed.AddTo(e).Normalize().String())
}
