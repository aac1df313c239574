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

package domains

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrapezoidal(t *testing.T) {
	trap, err := NewTrapezoidal(0, 10, 2, 4, 6, 8)
	require.NoError(t, err)
	tests := []struct {
		x, expected float64
	}{
		{0, 0},
		{2, 0},
		{3, 0.5},
		{4, 1},
		{5, 1},
		{6, 1},
		// the falling edge is from c = 6 to d = 8: 0.5 is reached at 7, and
		// x = 9 lies behind d, where the degree is 0 and not 0.5
		{7, 0.5},
		{9, 0},
		{10, 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.expected, trap.Degree(tc.x), 1e-9, "x = %v", tc.x)
		assert.InDelta(t, tc.expected, Evaluate(trap.Points(), tc.x), 1e-9, "points at x = %v", tc.x)
	}
	assert.Equal(t, "trapezoidal(0, 10, 2, 4, 6, 8)", ShapeString(trap))
}

func TestShapeOrder(t *testing.T) {
	_, err := NewTrapezoidal(0, 10, 4, 2, 6, 8)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = NewTriangular(0, 10, 2, 11, 12)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = NewCrisp(5, 5, 5, 5)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = NewLinear(0, 10, 0, 0.5)
	assert.ErrorIs(t, err, ErrInvalidShape)
	_, err = NewLinear(0, 10, 5, 1.5)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestShapes(t *testing.T) {
	left, err := NewLeftShoulder(0, 100, 20, 40)
	require.NoError(t, err)
	assert.Equal(t, 1.0, left.Degree(10))
	assert.InDelta(t, 0.5, left.Degree(30), 1e-9)
	assert.Equal(t, 0.0, left.Degree(50))

	right, err := NewRightShoulder(0, 100, 20, 40)
	require.NoError(t, err)
	assert.Equal(t, 0.0, right.Degree(10))
	assert.InDelta(t, 0.25, right.Degree(25), 1e-9)
	assert.Equal(t, 1.0, right.Degree(80))

	tri, err := NewTriangular(0, 10, 2, 5, 8)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tri.Degree(5))
	assert.InDelta(t, 0.5, tri.Degree(6.5), 1e-9)

	crisp, err := NewCrisp(0, 10, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, 1.0, crisp.Degree(3))
	assert.Equal(t, 0.0, crisp.Degree(4.5))

	lin, err := NewLinear(0, 10, 5, 0.2)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, lin.Degree(5), 1e-9)
	assert.InDelta(t, 0.6, lin.Degree(7.5), 1e-9)
}

func TestNewShape(t *testing.T) {
	m, err := NewShape(TriangularShape, 0, 10, 2, 5, 8)
	require.NoError(t, err)
	assert.Equal(t, TriangularShape, m.Kind())

	m, err = NewShape(TriangularShape, 0, 10, 2)
	assert.ErrorIs(t, err, ErrInvalidShape)
	assert.Nil(t, m)

	m, err = NewShape(TrapezoidalShape, 0, 10, 9, 8, 7, 6)
	assert.ErrorIs(t, err, ErrInvalidShape)
	assert.Nil(t, m)

	kind, err := ParseShapeKind("left-shoulder")
	require.NoError(t, err)
	assert.Equal(t, LeftShoulderShape, kind)
	_, err = ParseShapeKind("gaussian")
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestModifiers(t *testing.T) {
	very, err := NewLinearModifier("very", 4)
	require.NoError(t, err)
	// a = 0.8, b = 0.2
	assert.InDelta(t, 0.1, very.Modify(0.4), 1e-9)
	assert.InDelta(t, 0.2, very.Modify(0.8), 1e-9)
	assert.InDelta(t, 0.6, very.Modify(0.9), 1e-9)
	assert.Equal(t, 1.0, very.Modify(1))

	_, err = NewLinearModifier("broken", 0)
	assert.ErrorIs(t, err, ErrInvalidModifier)

	tri, err := NewTriangularModifier("around", 0.2, 0.5, 0.8)
	require.NoError(t, err)
	assert.Equal(t, 1.0, tri.Modify(0.5))
	assert.InDelta(t, 0.5, tri.Modify(0.35), 1e-9)
	_, err = NewTriangularModifier("broken", 0.5, 0.2, 0.8)
	assert.ErrorIs(t, err, ErrInvalidModifier)
}

func TestQuantifierWeights(t *testing.T) {
	most, err := NewRightShoulder(0, 1, 0.3, 0.8)
	require.NoError(t, err)
	weights := QuantifierWeights(most, 4)
	require.Len(t, weights, 4)
	sum := 0.0
	for _, w := range weights {
		assert.GreaterOrEqual(t, w, 0.0)
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 0.0, weights[0], 1e-9)
	assert.Empty(t, QuantifierWeights(most, 0))
}
