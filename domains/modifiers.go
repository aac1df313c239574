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

import "fmt"

// Modifier is a fuzzy modifier (a linguistic hedge such as "very"), that is
// a function [0, 1] → [0, 1] that changes the membership degree of a concept.
// As the shapes it's piecewise linear.
type Modifier interface {
	Name() string
	Modify(x float64) float64
	Points() []Point
}

// LinearModifier is the modifier linear(c) with c > 0: it's the piecewise
// linear function through (0, 0), (a, b) and (1, 1) where a = c / (c + 1)
// and b = 1 / (c + 1).
type LinearModifier struct {
	name string
	C    float64
	a, b float64
}

func NewLinearModifier(name string, c float64) (*LinearModifier, error) {
	if c <= 0 {
		return nil, fmt.Errorf("%w: linear modifier %s requires c > 0, got %s",
			ErrInvalidModifier, name, FormatFloat(c))
	}
	return &LinearModifier{
		name: name,
		C:    c,
		a:    c / (c + 1),
		b:    1 / (c + 1),
	}, nil
}

func (m *LinearModifier) Name() string { return m.name }

func (m *LinearModifier) Modify(x float64) float64 {
	return Evaluate(m.Points(), x)
}

func (m *LinearModifier) Points() []Point {
	return []Point{{0, 0}, {m.a, m.b}, {1, 1}}
}

func (m *LinearModifier) String() string {
	return fmt.Sprintf("%s = linear-modifier(%s)", m.name, FormatFloat(m.C))
}

// TriangularModifier is the triangular function with 0 ≤ a ≤ b ≤ c ≤ 1
// applied to membership degrees.
type TriangularModifier struct {
	name    string
	A, B, C float64
}

func NewTriangularModifier(name string, a, b, c float64) (*TriangularModifier, error) {
	if a < 0 || a > b || b > c || c > 1 {
		return nil, fmt.Errorf("%w: triangular modifier %s requires 0 ≤ a ≤ b ≤ c ≤ 1, got %s",
			ErrInvalidModifier, name, JoinFloats([]float64{a, b, c}, ", "))
	}
	return &TriangularModifier{name: name, A: a, B: b, C: c}, nil
}

func (m *TriangularModifier) Name() string { return m.name }

func (m *TriangularModifier) Modify(x float64) float64 {
	return Evaluate(m.Points(), x)
}

func (m *TriangularModifier) Points() []Point {
	return []Point{{0, 0}, {m.A, 0}, {m.B, 1}, {m.C, 0}, {1, 0}}
}

func (m *TriangularModifier) String() string {
	return fmt.Sprintf("%s = triangular-modifier(%s)", m.name,
		JoinFloats([]float64{m.A, m.B, m.C}, ", "))
}

// QuantifierWeights computes the weights of a quantifier guided OWA operator
// with n arguments: w_i = Q(i / n) - Q((i - 1) / n).
// The quantifier should be a non-decreasing function on [0, 1].
func QuantifierWeights(q Membership, n int) []float64 {
	res := make([]float64, n)
	if n == 0 {
		return res
	}
	prev := q.Degree(0)
	for i := 1; i <= n; i++ {
		next := q.Degree(float64(i) / float64(n))
		res[i-1] = next - prev
		prev = next
	}
	return res
}
