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
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidShape is returned by the shape constructors if the parameters
// violate the ordering k1 ≤ a ≤ b ≤ ... ≤ k2 or are otherwise malformed.
var ErrInvalidShape = errors.New("invalid fuzzy shape")

// ErrInvalidModifier is returned by the modifier constructors.
var ErrInvalidModifier = errors.New("invalid fuzzy modifier")

// Point is a breakpoint (X, Y) of a piecewise linear function.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return fmt.Sprintf("(%s, %s)", FormatFloat(p.X), FormatFloat(p.Y))
}

// Membership is a fuzzy membership function over the concrete domain of
// rationals, restricted to a range [k1, k2].
// All membership functions provided here are piecewise linear, thus they
// can be described by a list of breakpoints. Points must return them in
// increasing order of X, starting at k1 and ending at k2.
//
// Degree must return a value in [0, 1] for every x, values outside the range
// are mapped to the degree of the nearest range border.
type Membership interface {
	Kind() ShapeKind
	Degree(x float64) float64
	Range() (k1, k2 float64)
	Points() []Point
	// Params returns the parameters the shape was created with, they're
	// used to build a textual representation.
	Params() []float64
}

//go:generate stringer -type=ShapeKind

// ShapeKind is an enumeration of all membership functions directly available.
type ShapeKind int

const (
	CrispShape ShapeKind = iota
	LeftShoulderShape
	RightShoulderShape
	LinearShape
	TriangularShape
	TrapezoidalShape
)

// stringer isn't run in the build, so the String method is written by hand.

func (kind ShapeKind) String() string {
	switch kind {
	case CrispShape:
		return "crisp"
	case LeftShoulderShape:
		return "left-shoulder"
	case RightShoulderShape:
		return "right-shoulder"
	case LinearShape:
		return "linear"
	case TriangularShape:
		return "triangular"
	case TrapezoidalShape:
		return "trapezoidal"
	default:
		return fmt.Sprintf("ShapeKind(%d)", kind)
	}
}

// ParseShapeKind is the inverse of ShapeKind.String.
func ParseShapeKind(s string) (ShapeKind, error) {
	for kind := CrispShape; kind <= TrapezoidalShape; kind++ {
		if kind.String() == s {
			return kind, nil
		}
	}
	return -1, fmt.Errorf("%w: unknown shape %q", ErrInvalidShape, s)
}

// NewShape creates a membership function of the given kind, params are the
// parameters as accepted by the constructor of the kind (k1 and k2 first).
func NewShape(kind ShapeKind, params ...float64) (Membership, error) {
	want := map[ShapeKind]int{
		CrispShape:         4,
		LeftShoulderShape:  4,
		RightShoulderShape: 4,
		LinearShape:        4,
		TriangularShape:    5,
		TrapezoidalShape:   6,
	}
	n, has := want[kind]
	if !has {
		return nil, fmt.Errorf("%w: unknown shape %v", ErrInvalidShape, kind)
	}
	if len(params) != n {
		return nil, fmt.Errorf("%w: %v requires %d parameters, got %d",
			ErrInvalidShape, kind, n, len(params))
	}
	p := params
	switch kind {
	case CrispShape:
		return asMembership(NewCrisp(p[0], p[1], p[2], p[3]))
	case LeftShoulderShape:
		return asMembership(NewLeftShoulder(p[0], p[1], p[2], p[3]))
	case RightShoulderShape:
		return asMembership(NewRightShoulder(p[0], p[1], p[2], p[3]))
	case LinearShape:
		return asMembership(NewLinear(p[0], p[1], p[2], p[3]))
	case TriangularShape:
		return asMembership(NewTriangular(p[0], p[1], p[2], p[3], p[4]))
	default:
		return asMembership(NewTrapezoidal(p[0], p[1], p[2], p[3], p[4], p[5]))
	}
}

// asMembership avoids returning a non-nil interface that wraps a nil pointer.
func asMembership[T Membership](m T, err error) (Membership, error) {
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ShapeString returns the textual representation of a membership function,
// for example "trapezoidal(0, 10, 2, 4, 6, 8)".
func ShapeString(m Membership) string {
	return fmt.Sprintf("%v(%s)", m.Kind(), JoinFloats(m.Params(), ", "))
}

// Evaluate computes the value of the piecewise linear function given by
// points at x. Points must be sorted by X. Outside the first / last point
// the value of the first / last point is returned.
func Evaluate(points []Point, x float64) float64 {
	n := len(points)
	if n == 0 {
		return 0
	}
	if x <= points[0].X {
		return points[0].Y
	}
	for i := 1; i < n; i++ {
		prev, next := points[i-1], points[i]
		if x <= next.X {
			if next.X == prev.X {
				return next.Y
			}
			return prev.Y + (next.Y-prev.Y)*(x-prev.X)/(next.X-prev.X)
		}
	}
	return points[n-1].Y
}

// FormatFloat formats a float in the shortest representation that reads back
// to the same value.
func FormatFloat(f float64) string {
	if f == 0 {
		// avoid "-0"
		return "0"
	}
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// JoinFloats formats all values with FormatFloat and joins them with sep.
func JoinFloats(values []float64, sep string) string {
	strs := make([]string, len(values))
	for i, v := range values {
		strs[i] = FormatFloat(v)
	}
	return strings.Join(strs, sep)
}

func checkOrdered(kind ShapeKind, values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v parameters must be finite, got %s",
				ErrInvalidShape, kind, JoinFloats(values, ", "))
		}
	}
	for i := 1; i < len(values); i++ {
		if values[i-1] > values[i] {
			return fmt.Errorf("%w: %v parameters out of order: %s",
				ErrInvalidShape, kind, JoinFloats(values, ", "))
		}
	}
	if values[0] >= values[len(values)-1] {
		return fmt.Errorf("%w: %v range [%s, %s] is empty", ErrInvalidShape, kind,
			FormatFloat(values[0]), FormatFloat(values[len(values)-1]))
	}
	return nil
}
