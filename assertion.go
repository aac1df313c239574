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

package fuzzydl

import (
	"fmt"

	"github.com/FabianWe/fuzzydl/lp"
)

//// ABox ////

// Assertion is a fuzzy concept assertion a : C ≥ d, it holds if the
// membership degree of a in C is at least d.
type Assertion struct {
	Individual *Individual
	C          Concept
	Degree     lp.Degree
}

// NewAssertion returns a new concept assertion ind : c ≥ d.
func NewAssertion(ind *Individual, c Concept, d lp.Degree) *Assertion {
	return &Assertion{Individual: ind, C: c, Degree: d}
}

// NameWithoutDegree returns "a:C", this is also the name of the variable
// for the membership degree of a in C.
func (a *Assertion) NameWithoutDegree() string {
	return a.Individual.Name + ":" + a.C.String()
}

func (a *Assertion) String() string {
	return fmt.Sprintf("%s >= %v", a.NameWithoutDegree(), a.Degree)
}

// Equal tests if two assertions are equal. This is the case if they have the
// same name, or if they're about the same individual and concept and both
// have a numeric degree where the degree of a is strictly less than the
// degree of other: a is then implied by other.
//
// Note that this relation is not symmetric, a.Equal(b) doesn't imply
// b.Equal(a).
func (a *Assertion) Equal(other *Assertion) bool {
	if a.String() == other.String() {
		return true
	}
	if a.NameWithoutDegree() != other.NameWithoutDegree() {
		return false
	}
	if !a.Degree.IsNumeric() || !other.Degree.IsNumeric() {
		return false
	}
	return a.Degree.Value() < other.Degree.Value()
}

// Clone returns a copy of the assertion with a cloned degree, the individual
// is shared.
func (a *Assertion) Clone() *Assertion {
	return &Assertion{Individual: a.Individual, C: a.C, Degree: a.Degree.Clone()}
}
