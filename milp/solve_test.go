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
	"testing"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/domains"
	"github.com/FabianWe/fuzzydl/lp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minMax returns the minimal and maximal value of v.
func minMax(t *testing.T, h *Helper, v *lp.Variable) (float64, float64) {
	t.Helper()
	lo, err := h.Optimize(context.Background(), lp.VarExpression(v))
	require.NoError(t, err)
	require.True(t, lo.IsConsistent())
	hi, err := h.Optimize(context.Background(), lp.VarExpression(v).Scale(-1))
	require.NoError(t, err)
	require.True(t, hi.IsConsistent())
	return lo.Value(), -hi.Value()
}

func fixed(h *Helper, name string, value float64) *lp.Variable {
	v := h.Variable(name)
	h.Fix(v, value)
	return v
}

func TestEncoders(t *testing.T) {
	tests := []struct {
		name   string
		encode func(h *Helper, x, y *lp.Variable) *lp.Variable
		x, y   float64
		want   float64
	}{
		{"goedel and", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.GoedelAnd(x, y) }, 0.3, 0.7, 0.3},
		{"goedel or", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.GoedelOr(x, y) }, 0.3, 0.7, 0.7},
		{"lukasiewicz and", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.LukasiewiczAnd(x, y) }, 0.6, 0.7, 0.3},
		{"lukasiewicz and zero", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.LukasiewiczAnd(x, y) }, 0.2, 0.7, 0},
		{"lukasiewicz or", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.LukasiewiczOr(x, y) }, 0.6, 0.7, 1},
		{"lukasiewicz or sum", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.LukasiewiczOr(x, y) }, 0.2, 0.3, 0.5},
		{"negation", func(h *Helper, x, _ *lp.Variable) *lp.Variable { return h.Negation(x) }, 0.3, 0, 0.7},
		{"goedel implies", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.GoedelImplies(x, y) }, 0.7, 0.3, 0.3},
		{"goedel implies one", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.GoedelImplies(x, y) }, 0.3, 0.7, 1},
		{"zadeh implies", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.ZadehImplies(x, y) }, 0.7, 0.3, 0},
		{"lukasiewicz implies", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.LukasiewiczImplies(x, y) }, 0.7, 0.3, 0.6},
		{"kleene dienes implies", func(h *Helper, x, y *lp.Variable) *lp.Variable { return h.KleeneDienesImplies(x, y) }, 0.7, 0.2, 0.3},
		{"pos threshold below", func(h *Helper, x, _ *lp.Variable) *lp.Variable { return h.PosThreshold(0.5, x) }, 0.4, 0, 0},
		{"pos threshold above", func(h *Helper, x, _ *lp.Variable) *lp.Variable { return h.PosThreshold(0.5, x) }, 0.6, 0, 0.6},
		{"neg threshold", func(h *Helper, x, _ *lp.Variable) *lp.Variable { return h.NegThreshold(0.5, x) }, 0.6, 0, 0},
		{"weighted", func(h *Helper, x, _ *lp.Variable) *lp.Variable { return h.Weighted(0.5, x) }, 0.6, 0, 0.3},
		{"weighted sum", func(h *Helper, x, y *lp.Variable) *lp.Variable {
			return h.WeightedSum([]float64{0.3, 0.5}, []*lp.Variable{x, y})
		}, 1, 0.4, 0.5},
		{"weighted sum zero", func(h *Helper, x, y *lp.Variable) *lp.Variable {
			return h.WeightedSumZero([]float64{0.5, 0.5}, []*lp.Variable{x, y})
		}, 0, 0.4, 0},
		{"weighted min", func(h *Helper, x, y *lp.Variable) *lp.Variable {
			return h.WeightedMin([]float64{1, 0.4}, []*lp.Variable{x, y})
		}, 0.8, 0.1, 0.6},
		{"weighted max", func(h *Helper, x, y *lp.Variable) *lp.Variable {
			return h.WeightedMax([]float64{1, 0.4}, []*lp.Variable{x, y})
		}, 0.2, 0.9, 0.4},
		{"owa", func(h *Helper, x, y *lp.Variable) *lp.Variable {
			return h.OWA([]float64{0.6, 0.4}, []*lp.Variable{x, y})
		}, 0.2, 0.9, 0.62},
		{"choquet", func(h *Helper, x, y *lp.Variable) *lp.Variable {
			return h.Choquet([]float64{0.5, 1}, []*lp.Variable{x, y})
		}, 0.2, 0.8, 0.5},
		{"sugeno", func(h *Helper, x, y *lp.Variable) *lp.Variable {
			return h.Sugeno([]float64{0.5, 1}, []*lp.Variable{x, y})
		}, 0.2, 0.8, 0.5},
		{"quasi sugeno", func(h *Helper, x, y *lp.Variable) *lp.Variable {
			return h.QuasiSugeno([]float64{0.5, 1}, []*lp.Variable{x, y})
		}, 0.4, 0.8, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHelper(SimplexBackendName)
			z := tt.encode(h, fixed(h, "x", tt.x), fixed(h, "y", tt.y))
			lo, hi := minMax(t, h, z)
			assert.InDelta(t, tt.want, lo, 1e-6)
			assert.InDelta(t, tt.want, hi, 1e-6)
		})
	}
}

func TestClassicalOperators(t *testing.T) {
	h := newTestHelper(SimplexBackendName)
	x := h.VariableOfType("x", lp.Binary)
	y := h.VariableOfType("y", lp.Binary)
	h.Fix(x, 1)
	h.Fix(y, 0)
	and := h.TNorm(fuzzydl.Classical, x, y)
	or := h.TConorm(fuzzydl.Classical, x, y)
	assert.Equal(t, lp.Binary, and.Type)
	lo, hi := minMax(t, h, and)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 0.0, hi)
	lo, hi = minMax(t, h, or)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestOrderedPermutation(t *testing.T) {
	h := newTestHelper(SimplexBackendName)
	xs := []*lp.Variable{fixed(h, "a", 0.2), fixed(h, "b", 0.9), fixed(h, "c", 0.5)}
	ys := h.OrderedPermutation(xs)
	require.Len(t, ys, 3)
	for i, label := range []string{"y1", "y2", "y3"} {
		h.Show().ShowVariable(ys[i].Name, label)
	}
	sol, err := h.Optimize(context.Background(), lp.Sum(ys...))
	require.NoError(t, err)
	require.True(t, sol.IsConsistent())
	assert.InDelta(t, 1.6, sol.Value(), 1e-6)
	shown := sol.Shown()
	assert.InDelta(t, 0.9, shown["y1"], 1e-6)
	assert.InDelta(t, 0.5, shown["y2"], 1e-6)
	assert.InDelta(t, 0.2, shown["y3"], 1e-6)
}

func TestPiecewiseLinear(t *testing.T) {
	very, err := domains.NewLinearModifier("very", 4)
	require.NoError(t, err)
	h := newTestHelper(SimplexBackendName)
	y := h.Modify(very, fixed(h, "x", 0.9))
	lo, hi := minMax(t, h, y)
	assert.InDelta(t, 0.6, lo, 1e-6)
	assert.InDelta(t, 0.6, hi, 1e-6)

	trapezoid, err := domains.NewTrapezoidal(0, 10, 2, 4, 6, 8)
	require.NoError(t, err)
	h = newTestHelper(SimplexBackendName)
	age := h.VariableOfType("age", lp.Continuous)
	age.SetBounds(0, 10)
	h.Fix(age, 3)
	lo, hi = minMax(t, h, h.Membership(trapezoid, age))
	assert.InDelta(t, 0.5, lo, 1e-6)
	assert.InDelta(t, 0.5, hi, 1e-6)
}

func TestSigmaCount(t *testing.T) {
	most, err := domains.NewRightShoulder(0, 1, 0.2, 0.8)
	require.NoError(t, err)
	h := newTestHelper(SimplexBackendName)
	a := fuzzydl.NewIndividual("a")
	b1, b2 := fuzzydl.NewIndividual("b1"), fuzzydl.NewIndividual("b2")
	concept := fuzzydl.NewAtomicConcept("A")
	h.Fix(h.RoleVariable(a, b1, "r"), 1)
	h.Fix(h.RoleVariable(a, b2, "r"), 1)
	h.Fix(h.IndividualVariable(b1, concept), 1)
	h.Fix(h.IndividualVariable(b2, concept), 0)
	v := h.Variable("a:sigma")
	h.AddCardinalityList(&SigmaCount{
		Var:         v,
		Individual:  a,
		Individuals: []*fuzzydl.Individual{b1, b2},
		Role:        "r",
		Concept:     concept,
		Quantifier:  most,
		Semantics:   fuzzydl.Zadeh,
	})
	// most(0.5) = 0.5
	lo, hi := minMax(t, h, v)
	assert.InDelta(t, 0.5, lo, 1e-6)
	assert.InDelta(t, 0.5, hi, 1e-6)
}

func TestSemiContinuous(t *testing.T) {
	h := newTestHelper(SimplexBackendName)
	x := h.Variable("x")
	x.SetBounds(0.3, 0.8)
	sol, err := h.Optimize(context.Background(), lp.VarExpression(x))
	require.NoError(t, err)
	assert.InDelta(t, 0, sol.Value(), 1e-6)

	h.AddDegreeConstraint(x, lp.Number(0.1))
	sol, err = h.Optimize(context.Background(), lp.VarExpression(x))
	require.NoError(t, err)
	assert.InDelta(t, 0.3, sol.Value(), 1e-6)

	// lowering doesn't touch the variables of the helper
	assert.Equal(t, lp.SemiContinuous, x.Type)
	assert.Equal(t, 0.3, x.Lower)
}

// twoParts is x ≥ 0.3, x + y ≤ 1, z ≥ 0.5, w ≥ 0.2 (w is not in the
// objective).
func twoParts(partition bool) (*Helper, lp.Expression) {
	opts := DefaultOptions()
	opts.Partition = partition
	h := NewHelper(opts)
	x, y, z, w := h.Variable("x"), h.Variable("y"), h.Variable("z"), h.Variable("w")
	h.AddDegreeConstraint(x, lp.Number(0.3))
	h.AddConstraint(lp.Sum(x, y).AddConstant(-1), lp.LE)
	h.AddDegreeConstraint(z, lp.Number(0.5))
	h.AddDegreeConstraint(w, lp.Number(0.2))
	return h, lp.Sum(x, z).AddTerm(-1, y).AddConstant(1)
}

func TestPartition(t *testing.T) {
	h, objective := twoParts(true)
	m, _ := h.Model(objective)
	parts, feasibility := Partition(m)
	require.NotNil(t, feasibility)
	assert.Equal(t, "w", feasibility.Variables[0].Name)
	assert.Len(t, parts, 2)

	// every component holds at most one objective variable: not partitioned
	single := lp.Sum(h.Lookup("x"), h.Lookup("z"))
	m, _ = h.Model(single)
	parts, feasibility = Partition(m)
	assert.Nil(t, parts)
	assert.Nil(t, feasibility)
	sol, err := h.Optimize(context.Background(), single)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, sol.Value(), 1e-6)

	for _, partition := range []bool{false, true} {
		h, objective := twoParts(partition)
		sol, err := h.Optimize(context.Background(), objective)
		require.NoError(t, err)
		require.True(t, sol.IsConsistent())
		// x = 0.3, y = 0.7, z = 0.5
		assert.InDelta(t, 1.1, sol.Value(), 1e-6)

		h.AddConstraint(lp.VarExpression(h.Lookup("w")).AddConstant(-0.1), lp.LE)
		sol, err = h.Optimize(context.Background(), objective)
		require.NoError(t, err)
		assert.False(t, sol.IsConsistent())
	}
}

func TestComponents(t *testing.T) {
	g := NewSetGraph()
	g.Init(5)
	g.AddEdge(0, 3)
	g.AddEdge(3, 4)
	assert.False(t, g.AddEdge(4, 3))
	assert.Equal(t, [][]int{{0, 3, 4}, {1}, {2}}, Components(g))
}

func TestValueIndicator(t *testing.T) {
	tests := []struct {
		op    lp.Comparison
		x     float64
		value float64
		want  float64
	}{
		{lp.GE, 150, 120, 1},
		{lp.GE, 100, 120, 0},
		{lp.GE, 120, 120, 1},
		{lp.LE, 100, 120, 1},
		{lp.LE, 150, 120, 0},
		{lp.EQ, 120, 120, 1},
		{lp.EQ, 121, 120, 0},
	}
	for _, tt := range tests {
		h := newTestHelper(SimplexBackendName)
		x := h.VariableOfType("speed", lp.Continuous)
		x.SetBounds(0, 300)
		h.Fix(x, tt.x)
		b := h.ValueIndicator(x, tt.op, tt.value)
		lo, hi := minMax(t, h, b)
		assert.InDelta(t, tt.want, lo, 1e-6, "%v %v %v", tt.x, tt.op, tt.value)
		assert.InDelta(t, tt.want, hi, 1e-6, "%v %v %v", tt.x, tt.op, tt.value)
	}
}
