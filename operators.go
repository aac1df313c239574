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
	"sort"

	"github.com/FabianWe/fuzzydl/domains"
)

// Semantics is the fuzzy logic used to interpret conjunction, disjunction and
// the quantifiers. Instead of a global setting the semantics is passed to
// the constructors explicitly.
type Semantics int

const (
	// Classical is the crisp two-valued logic.
	Classical Semantics = iota
	// Zadeh uses minimum / maximum (Gödel t-norm and t-conorm) and the
	// negation 1 - x.
	Zadeh
	// Lukasiewicz uses the Łukasiewicz t-norm max(0, x + y - 1), the t-conorm
	// min(1, x + y) and the negation 1 - x.
	Lukasiewicz
)

func (s Semantics) String() string {
	switch s {
	case Classical:
		return "classical"
	case Zadeh:
		return "zadeh"
	case Lukasiewicz:
		return "lukasiewicz"
	default:
		return fmt.Sprintf("Semantics(%d)", int(s))
	}
}

// ParseSemantics is the inverse of Semantics.String.
func ParseSemantics(s string) (Semantics, error) {
	for sem := Classical; sem <= Lukasiewicz; sem++ {
		if sem.String() == s {
			return sem, nil
		}
	}
	return -1, fmt.Errorf("unknown semantics %q", s)
}

// AndKind returns the conjunction kind used by the semantics.
func (s Semantics) AndKind() Kind {
	switch s {
	case Zadeh:
		return GoedelAndKind
	case Lukasiewicz:
		return LukasiewiczAndKind
	default:
		return AndKind
	}
}

// OrKind returns the disjunction kind used by the semantics.
func (s Semantics) OrKind() Kind {
	return s.AndKind().Dual()
}

// And returns the conjunction of the concepts in the semantics s,
// normalized to conjunctive normal form.
func (s Semantics) And(cs ...Concept) (Concept, error) {
	return NewOperator(s.AndKind(), cs...)
}

// Or returns the disjunction of the concepts in the semantics s,
// normalized to conjunctive normal form.
func (s Semantics) Or(cs ...Concept) (Concept, error) {
	return NewOperator(s.OrKind(), cs...)
}

// Interpret rewrites the classical conjunctions and disjunctions in c into
// the operators of the semantics s, the result is not normalized. Operators
// of a fixed logic (g-and, l-or, ...) are kept.
func (s Semantics) Interpret(c Concept) (Concept, error) {
	c, err := mapChildren(c, s.Interpret)
	if err != nil {
		return nil, err
	}
	if op, ok := c.(*OperatorConcept); ok {
		switch op.Kind() {
		case AndKind:
			return newOperator(s.AndKind(), op.Concepts), nil
		case OrKind:
			return newOperator(s.OrKind(), op.Concepts), nil
		}
	}
	return c, nil
}

// GoedelAnd is the Gödel conjunction, independent of any semantics.
func GoedelAnd(cs ...Concept) (Concept, error) {
	return NewOperator(GoedelAndKind, cs...)
}

// GoedelOr is the Gödel disjunction, independent of any semantics.
func GoedelOr(cs ...Concept) (Concept, error) {
	return NewOperator(GoedelOrKind, cs...)
}

// LukasiewiczAnd is the Łukasiewicz conjunction, independent of any semantics.
func LukasiewiczAnd(cs ...Concept) (Concept, error) {
	return NewOperator(LukasiewiczAndKind, cs...)
}

// LukasiewiczOr is the Łukasiewicz disjunction, independent of any semantics.
func LukasiewiczOr(cs ...Concept) (Concept, error) {
	return NewOperator(LukasiewiczOrKind, cs...)
}

// NewOperator builds the operator concept of the given kind and normalizes it
// to conjunctive normal form. A single concept is returned unchanged, no
// operator is created for it.
func NewOperator(kind Kind, cs ...Concept) (Concept, error) {
	if !kind.IsOperator() {
		return nil, fmt.Errorf("%w: %v is not an operator", ErrInvalidConcept, kind)
	}
	if len(cs) == 1 {
		return cs[0], nil
	}
	return NormalForm(newOperator(kind, cs), CNF)
}

// OperatorConcept is a conjunction or disjunction of concepts.
// The concepts are flattened (no direct child has the same kind) and sorted
// by name.
type OperatorConcept struct {
	kind     Kind
	Concepts []Concept
	name     string
}

func (op *OperatorConcept) String() string      { return op.name }
func (op *OperatorConcept) Kind() Kind          { return op.kind }
func (op *OperatorConcept) children() []Concept { return op.Concepts }

// newOperator creates an operator without normalizing it. The children are
// flattened and sorted, for lattice operators duplicates are removed.
// An empty conjunction is ⊤, an empty disjunction ⊥ and a single child is
// returned as it is.
func newOperator(kind Kind, cs []Concept) Concept {
	flat := make([]Concept, 0, len(cs))
	var flatten func(cs []Concept)
	flatten = func(cs []Concept) {
		for _, c := range cs {
			if op, ok := c.(*OperatorConcept); ok && op.kind == kind {
				flatten(op.Concepts)
			} else {
				flat = append(flat, c)
			}
		}
	}
	flatten(cs)
	sort.SliceStable(flat, func(i, j int) bool {
		return flat[i].String() < flat[j].String()
	})
	if kind.IsLattice() {
		flat = dedupeSorted(flat)
	}
	switch len(flat) {
	case 0:
		if kind.IsConjunction() {
			return Top
		}
		return Bottom
	case 1:
		return flat[0]
	}
	return &OperatorConcept{kind: kind, Concepts: flat,
		name: fmt.Sprintf("(%v %s)", kind, joinConcepts(flat))}
}

func dedupeSorted(cs []Concept) []Concept {
	res := cs[:0:0]
	for i, c := range cs {
		if i > 0 && c.String() == cs[i-1].String() {
			continue
		}
		res = append(res, c)
	}
	return res
}

// ComplementConcept is the negation ¬C.
type ComplementConcept struct {
	C    Concept
	name string
}

func newComplement(c Concept) *ComplementConcept {
	return &ComplementConcept{C: c, name: fmt.Sprintf("(not %v)", c)}
}

func (c *ComplementConcept) String() string      { return c.name }
func (c *ComplementConcept) Kind() Kind          { return ComplementKind }
func (c *ComplementConcept) children() []Concept { return []Concept{c.C} }

// Not returns the negation of c: ⊥ for ⊤, ⊤ for ⊥, C for ¬C and ¬{a} for
// {a}. The negation of an operator is pushed inwards with De Morgan's laws,
// the result is not redistributed, so Not(Not(C)) is C again.
// Negating a negated nominal or a string returns ErrIllegalOperation.
func Not(c Concept) (Concept, error) {
	if c.Kind().IsOperator() {
		res, err := DeMorgan(newComplement(c))
		if err != nil {
			return nil, err
		}
		return ReduceDoubleNegation(res), nil
	}
	return negate(c)
}

// negate negates c without normalizing the result.
func negate(c Concept) (Concept, error) {
	switch x := c.(type) {
	case TopConcept:
		return Bottom, nil
	case BottomConcept:
		return Top, nil
	case *ComplementConcept:
		return x.C, nil
	case *NominalConcept:
		return NewNegatedNominal(x.Individual), nil
	case *NegatedNominal:
		return nil, fmt.Errorf("%w: can't negate negated nominal %v", ErrIllegalOperation, x)
	case *StringConcept:
		return nil, fmt.Errorf("%w: can't negate string %v", ErrIllegalOperation, x)
	default:
		return newComplement(c), nil
	}
}

// ImpliesConcept is a fuzzy implication C → D.
type ImpliesConcept struct {
	kind Kind
	C, D Concept
	name string
}

// NewImplies returns the implication c → d, kind must be one of the
// implication kinds.
func NewImplies(kind Kind, c, d Concept) (*ImpliesConcept, error) {
	switch kind {
	case GoedelImpliesKind, LukasiewiczImpliesKind, KleeneDienesImpliesKind, ZadehImpliesKind:
	default:
		return nil, fmt.Errorf("%w: %v is not an implication", ErrInvalidConcept, kind)
	}
	return newImplies(kind, c, d), nil
}

func newImplies(kind Kind, c, d Concept) *ImpliesConcept {
	return &ImpliesConcept{kind: kind, C: c, D: d,
		name: fmt.Sprintf("(%v %v %v)", kind, c, d)}
}

func (i *ImpliesConcept) String() string      { return i.name }
func (i *ImpliesConcept) Kind() Kind          { return i.kind }
func (i *ImpliesConcept) children() []Concept { return []Concept{i.C, i.D} }

// ThresholdConcept is a threshold concept [>= w] C (the degree of C if it is
// at least w, else 0) or [<= w] C (the degree of C if it is at most w, else 0).
type ThresholdConcept struct {
	kind   Kind
	Weight float64
	C      Concept
	name   string
}

func NewThreshold(kind Kind, w float64, c Concept) (*ThresholdConcept, error) {
	var op string
	switch kind {
	case PosThresholdKind:
		op = ">="
	case NegThresholdKind:
		op = "<="
	default:
		return nil, fmt.Errorf("%w: %v is not a threshold", ErrInvalidConcept, kind)
	}
	if err := checkWeight(w); err != nil {
		return nil, err
	}
	return &ThresholdConcept{kind: kind, Weight: w, C: c,
		name: fmt.Sprintf("([%s %s] %v)", op, domains.FormatFloat(w), c)}, nil
}

func (t *ThresholdConcept) String() string      { return t.name }
func (t *ThresholdConcept) Kind() Kind          { return t.kind }
func (t *ThresholdConcept) children() []Concept { return []Concept{t.C} }

// WeightedConcept is the weighted concept (w C), its degree is w times the
// degree of C.
type WeightedConcept struct {
	Weight float64
	C      Concept
	name   string
}

func NewWeighted(w float64, c Concept) (*WeightedConcept, error) {
	if err := checkWeight(w); err != nil {
		return nil, err
	}
	return newWeighted(w, c), nil
}

func newWeighted(w float64, c Concept) *WeightedConcept {
	return &WeightedConcept{Weight: w, C: c,
		name: fmt.Sprintf("(%s %v)", domains.FormatFloat(w), c)}
}

func (w *WeightedConcept) String() string      { return w.name }
func (w *WeightedConcept) Kind() Kind          { return WeightedKind }
func (w *WeightedConcept) children() []Concept { return []Concept{w.C} }

func checkWeight(w float64) error {
	if !(w >= 0 && w <= 1) {
		return fmt.Errorf("%w: weight %s not in [0, 1]", ErrInvalidConcept, domains.FormatFloat(w))
	}
	return nil
}
