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

// The shapes below are the fuzzy membership functions over the rationals.
// Each shape lives on a range [K1, K2], the remaining parameters must be
// inside that range and ordered.

// ramp is 0 for x ≤ lo, 1 for x ≥ hi and linear in between.
func ramp(x, lo, hi float64) float64 {
	switch {
	case x <= lo:
		return 0
	case x >= hi:
		return 1
	default:
		return (x - lo) / (hi - lo)
	}
}

// Crisp is the crisp interval [A, B]: 1 inside, 0 outside.
type Crisp struct {
	K1, K2, A, B float64
}

func NewCrisp(k1, k2, a, b float64) (*Crisp, error) {
	if err := checkOrdered(CrispShape, k1, a, b, k2); err != nil {
		return nil, err
	}
	return &Crisp{K1: k1, K2: k2, A: a, B: b}, nil
}

func (s *Crisp) Kind() ShapeKind { return CrispShape }

func (s *Crisp) Degree(x float64) float64 {
	if x >= s.A && x <= s.B {
		return 1
	}
	return 0
}

func (s *Crisp) Range() (float64, float64) { return s.K1, s.K2 }

// Points returns the breakpoints of the crisp interval. The jumps are
// represented by two points with the same X.
func (s *Crisp) Points() []Point {
	return []Point{{s.K1, 0}, {s.A, 0}, {s.A, 1}, {s.B, 1}, {s.B, 0}, {s.K2, 0}}
}

func (s *Crisp) Params() []float64 { return []float64{s.K1, s.K2, s.A, s.B} }

// LeftShoulder is 1 up to A, then decreases linearly and is 0 from B on.
type LeftShoulder struct {
	K1, K2, A, B float64
}

func NewLeftShoulder(k1, k2, a, b float64) (*LeftShoulder, error) {
	if err := checkOrdered(LeftShoulderShape, k1, a, b, k2); err != nil {
		return nil, err
	}
	return &LeftShoulder{K1: k1, K2: k2, A: a, B: b}, nil
}

func (s *LeftShoulder) Kind() ShapeKind { return LeftShoulderShape }

func (s *LeftShoulder) Degree(x float64) float64 {
	return 1 - ramp(x, s.A, s.B)
}

func (s *LeftShoulder) Range() (float64, float64) { return s.K1, s.K2 }

func (s *LeftShoulder) Points() []Point {
	return []Point{{s.K1, 1}, {s.A, 1}, {s.B, 0}, {s.K2, 0}}
}

func (s *LeftShoulder) Params() []float64 { return []float64{s.K1, s.K2, s.A, s.B} }

// RightShoulder is 0 up to A, then increases linearly and is 1 from B on.
type RightShoulder struct {
	K1, K2, A, B float64
}

func NewRightShoulder(k1, k2, a, b float64) (*RightShoulder, error) {
	if err := checkOrdered(RightShoulderShape, k1, a, b, k2); err != nil {
		return nil, err
	}
	return &RightShoulder{K1: k1, K2: k2, A: a, B: b}, nil
}

func (s *RightShoulder) Kind() ShapeKind { return RightShoulderShape }

func (s *RightShoulder) Degree(x float64) float64 {
	return ramp(x, s.A, s.B)
}

func (s *RightShoulder) Range() (float64, float64) { return s.K1, s.K2 }

func (s *RightShoulder) Points() []Point {
	return []Point{{s.K1, 0}, {s.A, 0}, {s.B, 1}, {s.K2, 1}}
}

func (s *RightShoulder) Params() []float64 { return []float64{s.K1, s.K2, s.A, s.B} }

// Linear goes from (K1, 0) to (A, B) and from there to (K2, 1).
// Here B is a degree and must be in [0, 1].
type Linear struct {
	K1, K2, A, B float64
}

func NewLinear(k1, k2, a, b float64) (*Linear, error) {
	if err := checkOrdered(LinearShape, k1, a, k2); err != nil {
		return nil, err
	}
	if a == k1 || a == k2 || b < 0 || b > 1 {
		return nil, fmt.Errorf("%w: linear requires k1 < a < k2 and b in [0, 1]", ErrInvalidShape)
	}
	return &Linear{K1: k1, K2: k2, A: a, B: b}, nil
}

func (s *Linear) Kind() ShapeKind { return LinearShape }

func (s *Linear) Degree(x float64) float64 {
	return Evaluate(s.Points(), x)
}

func (s *Linear) Range() (float64, float64) { return s.K1, s.K2 }

func (s *Linear) Points() []Point {
	return []Point{{s.K1, 0}, {s.A, s.B}, {s.K2, 1}}
}

func (s *Linear) Params() []float64 { return []float64{s.K1, s.K2, s.A, s.B} }

// Triangular is 0 up to A, 1 at B and 0 again from C on.
type Triangular struct {
	K1, K2, A, B, C float64
}

func NewTriangular(k1, k2, a, b, c float64) (*Triangular, error) {
	if err := checkOrdered(TriangularShape, k1, a, b, c, k2); err != nil {
		return nil, err
	}
	return &Triangular{K1: k1, K2: k2, A: a, B: b, C: c}, nil
}

func (s *Triangular) Kind() ShapeKind { return TriangularShape }

func (s *Triangular) Degree(x float64) float64 {
	if x <= s.B {
		return ramp(x, s.A, s.B)
	}
	return 1 - ramp(x, s.B, s.C)
}

func (s *Triangular) Range() (float64, float64) { return s.K1, s.K2 }

func (s *Triangular) Points() []Point {
	return []Point{{s.K1, 0}, {s.A, 0}, {s.B, 1}, {s.C, 0}, {s.K2, 0}}
}

func (s *Triangular) Params() []float64 { return []float64{s.K1, s.K2, s.A, s.B, s.C} }

// Trapezoidal is 0 up to A, increases until B, is 1 until C, decreases
// until D and is 0 from there on.
type Trapezoidal struct {
	K1, K2, A, B, C, D float64
}

func NewTrapezoidal(k1, k2, a, b, c, d float64) (*Trapezoidal, error) {
	if err := checkOrdered(TrapezoidalShape, k1, a, b, c, d, k2); err != nil {
		return nil, err
	}
	return &Trapezoidal{K1: k1, K2: k2, A: a, B: b, C: c, D: d}, nil
}

func (s *Trapezoidal) Kind() ShapeKind { return TrapezoidalShape }

func (s *Trapezoidal) Degree(x float64) float64 {
	if x <= s.C {
		return ramp(x, s.A, s.B)
	}
	return 1 - ramp(x, s.C, s.D)
}

func (s *Trapezoidal) Range() (float64, float64) { return s.K1, s.K2 }

func (s *Trapezoidal) Points() []Point {
	return []Point{{s.K1, 0}, {s.A, 0}, {s.B, 1}, {s.C, 1}, {s.D, 0}, {s.K2, 0}}
}

func (s *Trapezoidal) Params() []float64 {
	return []float64{s.K1, s.K2, s.A, s.B, s.C, s.D}
}
