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

// QuantifiedConcept is a universal restriction ∀r.C or an existential
// restriction ∃r.C.
type QuantifiedConcept struct {
	kind Kind
	Role string
	C    Concept
	name string
}

func newQuantified(kind Kind, role string, c Concept) *QuantifiedConcept {
	return &QuantifiedConcept{kind: kind, Role: role, C: c,
		name: fmt.Sprintf("(%v %s %v)", kind, role, c)}
}

// NewAll returns the universal restriction ∀r.C, ∀r.⊤ is ⊤.
func NewAll(role string, c Concept) Concept {
	if c.Kind() == TopKind {
		return Top
	}
	return newQuantified(AllKind, role, c)
}

// NewSome returns the existential restriction ∃r.C, ∃r.⊥ is ⊥.
func NewSome(role string, c Concept) Concept {
	if c.Kind() == BottomKind {
		return Bottom
	}
	return newQuantified(SomeKind, role, c)
}

func (q *QuantifiedConcept) String() string      { return q.name }
func (q *QuantifiedConcept) Kind() Kind          { return q.kind }
func (q *QuantifiedConcept) children() []Concept { return []Concept{q.C} }

// Restriction is a universal restriction ∀r.C ≥ d that has to hold for an
// individual, it is stored on the individual until all its role successors
// are known.
type Restriction struct {
	Role   string
	C      Concept
	Degree lp.Degree
}

func NewRestriction(role string, c Concept, d lp.Degree) *Restriction {
	return &Restriction{Role: role, C: c, Degree: d}
}

// NameWithoutDegree returns the name of the restriction, for example
// "(all r C)".
func (r *Restriction) NameWithoutDegree() string {
	return fmt.Sprintf("(all %s %v)", r.Role, r.C)
}

func (r *Restriction) String() string {
	return fmt.Sprintf("%s >= %v", r.NameWithoutDegree(), r.Degree)
}

func (r *Restriction) Clone() *Restriction {
	return &Restriction{Role: r.Role, C: Clone(r.C), Degree: r.Degree.Clone()}
}
