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
)

// Form is the normal form computed by NormalForm.
type Form int

const (
	// CNF is the conjunctive normal form: conjunctions of disjunctions.
	CNF Form = iota
	// DNF is the disjunctive normal form: disjunctions of conjunctions.
	DNF
)

func (f Form) String() string {
	if f == DNF {
		return "dnf"
	}
	return "cnf"
}

// maxNormalFormRounds bounds the number of rounds in NormalForm. Each round
// is deterministic, so a concept that doesn't reach a fixed point within that
// many rounds is returned as it is.
const maxNormalFormRounds = 128

// NormalForm rewrites c into the given normal form. It applies the rewriting
// steps
//
//	DeMorgan → ReduceDoubleNegation → Distribute → ReduceIdempotency →
//	ReduceTruthValues → ReduceQuantifiers
//
// until the canonical name of the concept doesn't change any more.
// The laws each step applies depend on the operator kinds (and thus the
// semantics): distribution, idempotency and absorption only hold for the
// classical and Gödel operators, the complement law only for classical ones.
func NormalForm(c Concept, form Form) (Concept, error) {
	for i := 0; i < maxNormalFormRounds; i++ {
		before := c.String()
		next, err := DeMorgan(c)
		if err != nil {
			return nil, err
		}
		next = ReduceDoubleNegation(next)
		next = Distribute(next, form)
		next = ReduceIdempotency(next)
		next = ReduceTruthValues(next)
		next = ReduceQuantifiers(next)
		c = next
		if c.String() == before {
			break
		}
	}
	return c, nil
}

// DeMorgan pushes negations of operators inwards: ¬(A ⊕ B) becomes
// ¬A ⊗ ¬B where ⊗ is the dual of ⊕ in the same semantics.
func DeMorgan(c Concept) (Concept, error) {
	c, err := mapChildren(c, DeMorgan)
	if err != nil {
		return nil, err
	}
	comp, ok := c.(*ComplementConcept)
	if !ok {
		return c, nil
	}
	op, ok := comp.C.(*OperatorConcept)
	if !ok {
		return c, nil
	}
	negated := make([]Concept, len(op.Concepts))
	for i, child := range op.Concepts {
		negated[i], err = negate(child)
		if err != nil {
			return nil, err
		}
	}
	return DeMorgan(newOperator(op.kind.Dual(), negated))
}

// ReduceDoubleNegation replaces all ¬¬A by A.
func ReduceDoubleNegation(c Concept) Concept {
	c = mapChildrenPure(c, ReduceDoubleNegation)
	if comp, ok := c.(*ComplementConcept); ok {
		if inner, ok := comp.C.(*ComplementConcept); ok {
			return inner.C
		}
	}
	return c
}

// Distribute distributes the operators that must not be on top in the given
// form over their duals. For CNF this is A ∨ (B ∧ C) → (A ∨ B) ∧ (A ∨ C),
// for DNF A ∧ (B ∨ C) → (A ∧ B) ∨ (A ∧ C).
// Łukasiewicz operators are not distributive and are left untouched.
func Distribute(c Concept, form Form) Concept {
	c = mapChildrenPure(c, func(child Concept) Concept {
		return Distribute(child, form)
	})
	op, ok := c.(*OperatorConcept)
	if !ok || !op.kind.IsLattice() {
		return c
	}
	if (form == CNF) != op.kind.IsDisjunction() {
		return c
	}
	dual := op.kind.Dual()
	for i, child := range op.Concepts {
		d, ok := child.(*OperatorConcept)
		if !ok || d.kind != dual {
			continue
		}
		parts := make([]Concept, len(d.Concepts))
		for j, x := range d.Concepts {
			operands := make([]Concept, 0, len(op.Concepts))
			operands = append(operands, op.Concepts[:i]...)
			operands = append(operands, op.Concepts[i+1:]...)
			operands = append(operands, x)
			parts[j] = newOperator(op.kind, operands)
		}
		return Distribute(newOperator(dual, parts), form)
	}
	return c
}

// ReduceIdempotency removes duplicates (A ∧ A = A) and applies the absorption
// law A ∧ (A ∨ B) = A for lattice operators. The absorption also covers
// clause subsumption: (A ∨ B) ∧ (A ∨ B ∨ C) = A ∨ B.
func ReduceIdempotency(c Concept) Concept {
	c = mapChildrenPure(c, ReduceIdempotency)
	op, ok := c.(*OperatorConcept)
	if !ok || !op.kind.IsLattice() {
		return c
	}
	dual := op.kind.Dual()
	operands := make([]*ConceptSet, len(op.Concepts))
	for i, child := range op.Concepts {
		if d, ok := child.(*OperatorConcept); ok && d.kind == dual {
			operands[i] = NewConceptSet(d.Concepts...)
		} else {
			operands[i] = NewConceptSet(child)
		}
	}
	kept := make([]Concept, 0, len(op.Concepts))
	for i, child := range op.Concepts {
		absorbed := false
		if operands[i].Len() > 1 {
			for j := range op.Concepts {
				if i != j && operands[j].IsSubset(operands[i]) && !operands[j].Equals(operands[i]) {
					absorbed = true
					break
				}
			}
		}
		if !absorbed {
			kept = append(kept, child)
		}
	}
	if len(kept) == len(op.Concepts) {
		return c
	}
	return newOperator(op.kind, kept)
}

// ReduceTruthValues applies the identity (A ∧ ⊤ = A, A ∨ ⊥ = A) and the
// domination (A ∧ ⊥ = ⊥, A ∨ ⊤ = ⊤) laws, ¬⊤ = ⊥ and ¬⊥ = ⊤, ∀r.⊤ = ⊤ and
// ∃r.⊥ = ⊥. For classical operators the complement law A ∧ ¬A = ⊥,
// A ∨ ¬A = ⊤ is applied as well.
func ReduceTruthValues(c Concept) Concept {
	c = mapChildrenPure(c, ReduceTruthValues)
	switch x := c.(type) {
	case *ComplementConcept:
		switch x.C.Kind() {
		case TopKind:
			return Bottom
		case BottomKind:
			return Top
		}
		return c
	case *QuantifiedConcept:
		if x.kind == AllKind {
			return NewAll(x.Role, x.C)
		}
		return NewSome(x.Role, x.C)
	case *OperatorConcept:
		return reduceOperatorTruthValues(x)
	default:
		return c
	}
}

func reduceOperatorTruthValues(op *OperatorConcept) Concept {
	dominant, neutral := Bottom, Top
	if op.kind.IsDisjunction() {
		dominant, neutral = Top, Bottom
	}
	kept := make([]Concept, 0, len(op.Concepts))
	for _, child := range op.Concepts {
		switch child.Kind() {
		case dominant.Kind():
			return dominant
		case neutral.Kind():
			continue
		}
		kept = append(kept, child)
	}
	if op.kind == AndKind || op.kind == OrKind {
		set := NewConceptSet(kept...)
		for _, child := range kept {
			var positive string
			switch x := child.(type) {
			case *ComplementConcept:
				positive = x.C.String()
			case *NegatedNominal:
				positive = "{" + x.Individual + "}"
			default:
				continue
			}
			if set.ContainsName(positive) {
				return dominant
			}
		}
	}
	if len(kept) == len(op.Concepts) {
		return op
	}
	return newOperator(op.kind, kept)
}

// ReduceQuantifiers merges universal restrictions on the same role under a
// conjunction, ∀r.C ∧ ∀r.D = ∀r.(C ∧ D), and existential restrictions on the
// same role under a disjunction, ∃r.C ∨ ∃r.D = ∃r.(C ∨ D).
// This is only done for lattice operators.
func ReduceQuantifiers(c Concept) Concept {
	c = mapChildrenPure(c, ReduceQuantifiers)
	op, ok := c.(*OperatorConcept)
	if !ok || !op.kind.IsLattice() {
		return c
	}
	merge := AllKind
	if op.kind.IsDisjunction() {
		merge = SomeKind
	}
	fillers := make(map[string][]Concept)
	roles := make([]string, 0)
	kept := make([]Concept, 0, len(op.Concepts))
	for _, child := range op.Concepts {
		q, ok := child.(*QuantifiedConcept)
		if !ok || q.kind != merge {
			kept = append(kept, child)
			continue
		}
		if _, has := fillers[q.Role]; !has {
			roles = append(roles, q.Role)
		}
		fillers[q.Role] = append(fillers[q.Role], q.C)
	}
	merged := false
	for _, role := range roles {
		fs := fillers[role]
		if len(fs) > 1 {
			merged = true
		}
		kept = append(kept, newQuantified(merge, role, newOperator(op.kind, fs)))
	}
	if !merged {
		return c
	}
	return newOperator(op.kind, kept)
}

// mapChildren returns c with every direct child replaced by f(child).
// The node is rebuilt, c is never modified.
func mapChildren(c Concept, f func(Concept) (Concept, error)) (Concept, error) {
	mapAll := func(cs []Concept) ([]Concept, error) {
		res := make([]Concept, len(cs))
		for i, child := range cs {
			next, err := f(child)
			if err != nil {
				return nil, err
			}
			res[i] = next
		}
		return res, nil
	}
	switch x := c.(type) {
	case *ComplementConcept:
		inner, err := f(x.C)
		if err != nil {
			return nil, err
		}
		return newComplement(inner), nil
	case *OperatorConcept:
		cs, err := mapAll(x.Concepts)
		if err != nil {
			return nil, err
		}
		return newOperator(x.kind, cs), nil
	case *QuantifiedConcept:
		inner, err := f(x.C)
		if err != nil {
			return nil, err
		}
		return newQuantified(x.kind, x.Role, inner), nil
	case *ModifiedConcept:
		inner, err := f(x.C)
		if err != nil {
			return nil, err
		}
		return NewModifiedConcept(x.Modifier, inner), nil
	case *ImpliesConcept:
		cs, err := mapAll([]Concept{x.C, x.D})
		if err != nil {
			return nil, err
		}
		return newImplies(x.kind, cs[0], cs[1]), nil
	case *ThresholdConcept:
		inner, err := f(x.C)
		if err != nil {
			return nil, err
		}
		return NewThreshold(x.kind, x.Weight, inner)
	case *WeightedConcept:
		inner, err := f(x.C)
		if err != nil {
			return nil, err
		}
		return newWeighted(x.Weight, inner), nil
	case *WeightedAggregate:
		cs, err := mapAll(x.Concepts)
		if err != nil {
			return nil, err
		}
		return newWeightedAggregate(x.kind, x.Weights, cs), nil
	case *OWAConcept:
		cs, err := mapAll(x.Concepts)
		if err != nil {
			return nil, err
		}
		return newOWA(x.Weights, cs), nil
	case *QuantifiedOWAConcept:
		cs, err := mapAll(x.Concepts)
		if err != nil {
			return nil, err
		}
		return newQuantifiedOWA(x.Quantifier, cs), nil
	case *FuzzyIntegral:
		cs, err := mapAll(x.Concepts)
		if err != nil {
			return nil, err
		}
		return newFuzzyIntegral(x.kind, x.Weights, cs), nil
	case *SigmaConcept:
		inner, err := f(x.C)
		if err != nil {
			return nil, err
		}
		return newSigma(x.Role, inner, x.Individuals, x.Quantifier), nil
	case TopConcept, BottomConcept, *AtomicConcept, *NominalConcept, *NegatedNominal,
		*StringConcept, *SelfConcept, *HasValueConcept, *ValueConcept, *ConcreteConcept:
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unknown concept type %T", ErrInvalidConcept, c)
	}
}

// mapChildrenPure is mapChildren for functions that can't fail.
func mapChildrenPure(c Concept, f func(Concept) Concept) Concept {
	res, err := mapChildren(c, func(child Concept) (Concept, error) {
		return f(child), nil
	})
	if err != nil {
		// only unknown concept types fail, keep them as they are
		return c
	}
	return res
}

// Replace substitutes every occurrence of a in c by b. Operators are rebuilt
// (and normalized) in their own semantics, negations are rebuilt with Not.
func Replace(c, a, b Concept) (Concept, error) {
	if Equal(c, a) {
		return b, nil
	}
	replace := func(child Concept) (Concept, error) {
		return Replace(child, a, b)
	}
	switch x := c.(type) {
	case *ComplementConcept:
		inner, err := Replace(x.C, a, b)
		if err != nil {
			return nil, err
		}
		return Not(inner)
	case *OperatorConcept:
		cs := make([]Concept, len(x.Concepts))
		for i, child := range x.Concepts {
			next, err := Replace(child, a, b)
			if err != nil {
				return nil, err
			}
			cs[i] = next
		}
		return NewOperator(x.kind, cs...)
	case *QuantifiedConcept:
		inner, err := Replace(x.C, a, b)
		if err != nil {
			return nil, err
		}
		if x.kind == AllKind {
			return NewAll(x.Role, inner), nil
		}
		return NewSome(x.Role, inner), nil
	default:
		return mapChildren(c, replace)
	}
}

// Clone returns a deep copy of c. Since concepts are immutable this is only
// required if the copy is modified through its exported fields.
func Clone(c Concept) Concept {
	switch x := c.(type) {
	case *AtomicConcept:
		return NewAtomicConcept(x.Name)
	case *NominalConcept:
		return NewNominalConcept(x.Individual)
	case *NegatedNominal:
		return NewNegatedNominal(x.Individual)
	case *StringConcept:
		return NewStringConcept(x.Value)
	case *SelfConcept:
		return NewSelfConcept(x.Role)
	case *HasValueConcept:
		return NewHasValueConcept(x.Role, x.Individual)
	case *ValueConcept:
		return &ValueConcept{kind: x.kind, Feature: x.Feature, Value: x.Value}
	case *ConcreteConcept:
		return &ConcreteConcept{Name: x.Name, Shape: x.Shape}
	default:
		return mapChildrenPure(c, Clone)
	}
}

// walk calls f for c and all its sub-concepts (pre-order).
func walk(c Concept, f func(Concept)) {
	f(c)
	for _, child := range c.children() {
		walk(child, f)
	}
}

// AtomicConcepts returns all atomic concepts occurring in c, sorted by name
// and without duplicates.
func AtomicConcepts(c Concept) []*AtomicConcept {
	set := NewConceptSet()
	walk(c, func(x Concept) {
		if a, ok := x.(*AtomicConcept); ok {
			set.Add(a)
		}
	})
	all := set.Slice()
	res := make([]*AtomicConcept, len(all))
	for i, a := range all {
		res[i] = a.(*AtomicConcept)
	}
	return res
}

// Roles returns all role names occurring in c, sorted and without
// duplicates.
func Roles(c Concept) []string {
	found := make(map[string]struct{})
	walk(c, func(x Concept) {
		switch y := x.(type) {
		case *QuantifiedConcept:
			found[y.Role] = struct{}{}
		case *SelfConcept:
			found[y.Role] = struct{}{}
		case *HasValueConcept:
			found[y.Role] = struct{}{}
		case *SigmaConcept:
			found[y.Role] = struct{}{}
		}
	})
	return InsertSorted(nil, found)
}
