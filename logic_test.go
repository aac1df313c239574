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
	"testing"

	"github.com/FabianWe/fuzzydl/domains"
	"github.com/FabianWe/fuzzydl/lp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	conceptA = NewAtomicConcept("A")
	conceptB = NewAtomicConcept("B")
	conceptC = NewAtomicConcept("C")
	conceptD = NewAtomicConcept("D")
)

func mustConcept(t *testing.T) func(Concept, error) Concept {
	return func(c Concept, err error) Concept {
		t.Helper()
		require.NoError(t, err)
		return c
	}
}

func TestTruthValues(t *testing.T) {
	must := mustConcept(t)
	assert.Equal(t, "A", must(Classical.And(Top, conceptA)).String())
	assert.Equal(t, "A", must(Classical.Or(Bottom, conceptA)).String())
	assert.Equal(t, Bottom, must(Classical.And(Bottom, conceptA)))
	assert.Equal(t, Top, must(Lukasiewicz.Or(Top, conceptA)))
	assert.Equal(t, "A", must(Lukasiewicz.And(conceptA, Top)).String())
	assert.Equal(t, Top, NewAll("r", Top))
	assert.Equal(t, Bottom, NewSome("r", Bottom))
	assert.Equal(t, Top, must(Classical.And()))
	assert.Equal(t, Bottom, must(Zadeh.Or()))
}

func TestNegation(t *testing.T) {
	must := mustConcept(t)
	assert.Equal(t, Bottom, must(Not(Top)))
	assert.Equal(t, Top, must(Not(Bottom)))
	notA := must(Not(conceptA))
	assert.Equal(t, "(not A)", notA.String())
	assert.Equal(t, "A", must(Not(notA)).String())

	nominal := NewNominalConcept("a")
	negNominal := must(Not(nominal))
	assert.Equal(t, NegatedNominalKind, negNominal.Kind())
	assert.Equal(t, "(not {a})", negNominal.String())
	_, err := Not(negNominal)
	assert.ErrorIs(t, err, ErrIllegalOperation)
	_, err = Not(NewStringConcept("red"))
	assert.ErrorIs(t, err, ErrIllegalOperation)
	// the error propagates through De Morgan
	and := must(Classical.And(conceptA, negNominal))
	_, err = Not(and)
	assert.ErrorIs(t, err, ErrIllegalOperation)
}

func TestComplementLaw(t *testing.T) {
	must := mustConcept(t)
	notA := must(Not(conceptA))
	assert.Equal(t, Bottom, must(Classical.And(conceptA, notA)))
	assert.Equal(t, Top, must(Classical.Or(conceptA, notA)))
	// no complement law for fuzzy semantics
	assert.Equal(t, "(g-and (not A) A)", must(Zadeh.And(conceptA, notA)).String())
	assert.Equal(t, "(l-or (not A) A)", must(Lukasiewicz.Or(conceptA, notA)).String())
	// nominals
	nominal := NewNominalConcept("a")
	assert.Equal(t, Bottom, must(Classical.And(nominal, must(Not(nominal)))))
}

func TestFlattening(t *testing.T) {
	must := mustConcept(t)
	ab := must(Classical.And(conceptA, conceptB))
	assert.Equal(t, "(and A B)", ab.String())
	nested := must(Classical.And(ab, conceptC))
	flat := must(Classical.And(conceptA, conceptB, conceptC))
	assert.Equal(t, "(and A B C)", flat.String())
	assert.True(t, Equal(nested, flat))
	// order independent
	assert.True(t, Equal(flat, must(Classical.And(conceptC, conceptA, conceptB))))
	// single element is returned unchanged
	assert.Same(t, conceptA, must(Classical.And(conceptA)))

	l := must(Lukasiewicz.And(must(Lukasiewicz.And(conceptB, conceptA)), conceptC))
	assert.Equal(t, "(l-and A B C)", l.String())
	// different semantics are not flattened
	mixed := must(Classical.And(must(Zadeh.And(conceptA, conceptB)), conceptC))
	assert.Equal(t, "(and (g-and A B) C)", mixed.String())
}

func TestIdempotency(t *testing.T) {
	must := mustConcept(t)
	assert.Equal(t, "A", must(Classical.And(conceptA, conceptA)).String())
	assert.Equal(t, "A", must(Zadeh.Or(conceptA, conceptA)).String())
	assert.Equal(t, "(l-and A A)", must(Lukasiewicz.And(conceptA, conceptA)).String())

	// absorption
	aOrB := must(Classical.Or(conceptA, conceptB))
	assert.Equal(t, "A", must(Classical.And(conceptA, aOrB)).String())
	gAOrB := must(Zadeh.Or(conceptA, conceptB))
	gAOrBOrC := must(Zadeh.Or(conceptA, conceptB, conceptC))
	assert.Equal(t, "(g-or A B)", must(Zadeh.And(gAOrB, gAOrBOrC)).String())
}

// Łukasiewicz operators are not idempotent (A ⊗ A ≠ A), so duplicate
// operands and absorbed operands are kept.
func TestLukasiewiczKeepsDuplicates(t *testing.T) {
	must := mustConcept(t)
	and := must(Lukasiewicz.And(conceptA, conceptA))
	assert.Equal(t, "(l-and A A)", and.String())
	or := must(Lukasiewicz.Or(conceptA, conceptA))
	assert.Equal(t, "(l-or A A)", or.String())
	for _, form := range []Form{CNF, DNF} {
		assert.Equal(t, "(l-and A A)", must(NormalForm(and, form)).String())
		assert.Equal(t, "(l-or A A)", must(NormalForm(or, form)).String())
	}

	aOrB := must(Lukasiewicz.Or(conceptA, conceptB))
	assert.Equal(t, "(l-and (l-or A B) A)", must(Lukasiewicz.And(conceptA, aOrB)).String())

	// the same operands under Gödel semantics collapse
	assert.Equal(t, "A", must(Zadeh.And(conceptA, conceptA)).String())
	assert.Equal(t, "A", must(Zadeh.Or(conceptA, conceptA)).String())
}

func TestDistribution(t *testing.T) {
	must := mustConcept(t)
	bAndC := must(Classical.And(conceptB, conceptC))
	assert.Equal(t, "(and (or A B) (or A C))", must(Classical.Or(conceptA, bAndC)).String())

	lBAndC := must(Lukasiewicz.And(conceptB, conceptC))
	assert.Equal(t, "(l-or (l-and B C) A)", must(Lukasiewicz.Or(conceptA, lBAndC)).String())

	bOrC := must(Classical.Or(conceptB, conceptC))
	raw := newOperator(AndKind, []Concept{conceptA, bOrC})
	dnf := must(NormalForm(raw, DNF))
	assert.Equal(t, "(or (and A B) (and A C))", dnf.String())
	cnf := must(NormalForm(dnf, CNF))
	assert.Equal(t, "(and (or B C) A)", cnf.String())
}

func TestQuantifierMerge(t *testing.T) {
	must := mustConcept(t)
	allA, allB := NewAll("r", conceptA), NewAll("r", conceptB)
	assert.Equal(t, "(all r (and A B))", must(Classical.And(allA, allB)).String())
	someA, someB := NewSome("r", conceptA), NewSome("r", conceptB)
	assert.Equal(t, "(some r (g-or A B))", must(Zadeh.Or(someA, someB)).String())
	// dual direction is not merged
	assert.Equal(t, "(or (all r A) (all r B))", must(Classical.Or(allA, allB)).String())
	assert.Equal(t, "(and (some r A) (some r B))", must(Classical.And(someA, someB)).String())
	// different roles are not merged
	allSB := NewAll("s", conceptB)
	assert.Equal(t, "(and (all r A) (all s B))", must(Classical.And(allA, allSB)).String())
	// no merging for Łukasiewicz
	assert.Equal(t, "(l-and (all r A) (all r B))", must(Lukasiewicz.And(allA, allB)).String())
}

func TestDeMorgan(t *testing.T) {
	must := mustConcept(t)
	for _, sem := range []Semantics{Classical, Zadeh, Lukasiewicz} {
		notA, notB := must(Not(conceptA)), must(Not(conceptB))
		lhs := must(Not(must(sem.And(conceptA, conceptB))))
		rhs := must(sem.Or(notA, notB))
		assert.Equal(t, rhs.String(), lhs.String(), "semantics %v", sem)

		lhs = must(Not(must(sem.Or(conceptA, conceptB))))
		rhs = must(sem.And(notA, notB))
		assert.Equal(t, rhs.String(), lhs.String(), "semantics %v", sem)

		cd := must(sem.And(conceptC, conceptD))
		ab := must(sem.And(conceptA, conceptB))
		lhs = must(Not(must(sem.And(ab, cd))))
		rhs = must(sem.Or(must(Not(ab)), must(Not(cd))))
		assert.Equal(t, rhs.String(), lhs.String(), "semantics %v", sem)
	}
	assert.Equal(t, "(or (not A) (not B))",
		must(Not(must(Classical.And(conceptA, conceptB)))).String())
}

func TestDeMorganRandomLukasiewicz(t *testing.T) {
	must := mustConcept(t)
	builder := NewRandomConceptBuilder(4, 2, 3, 42)
	for i := 0; i < 100; i++ {
		a := must(builder.Generate(Lukasiewicz))
		b := must(builder.Generate(Lukasiewicz))
		lhs := must(Not(must(Lukasiewicz.And(a, b))))
		rhs := must(Lukasiewicz.Or(must(Not(a)), must(Not(b))))
		assert.Equal(t, rhs.String(), lhs.String(), "A = %v, B = %v", a, b)
	}
}

func TestNormalFormProperties(t *testing.T) {
	must := mustConcept(t)
	for _, sem := range []Semantics{Classical, Zadeh, Lukasiewicz} {
		builder := NewRandomConceptBuilder(4, 2, 3, int64(sem)+1)
		for i := 0; i < 100; i++ {
			c := must(builder.Generate(sem))
			for _, form := range []Form{CNF, DNF} {
				once := must(NormalForm(c, form))
				twice := must(NormalForm(once, form))
				assert.Equal(t, once.String(), twice.String(), "%v of %v (%v)", form, c, sem)
			}
			// double negation
			assert.Equal(t, c.String(), must(Not(must(Not(c)))).String(), "¬¬%v (%v)", c, sem)
		}
	}
}

func TestReplace(t *testing.T) {
	must := mustConcept(t)
	ab := must(Classical.And(conceptA, conceptB))
	assert.Equal(t, "(and B C)", must(Replace(ab, conceptA, conceptC)).String())
	assert.Equal(t, "B", must(Replace(ab, conceptA, Top)).String())
	assert.Equal(t, Bottom, must(Replace(ab, conceptA, Bottom)))

	notA := must(Not(conceptA))
	assert.Equal(t, "(not C)", must(Replace(notA, conceptA, conceptC)).String())
	assert.Equal(t, Bottom, must(Replace(notA, conceptA, Top)))

	all := NewAll("r", conceptA)
	assert.Equal(t, Top, must(Replace(all, conceptA, Top)))
	assert.Equal(t, "(all r B)", must(Replace(all, conceptA, conceptB)).String())

	owa, err := NewOWA([]float64{0.6, 0.4}, []Concept{conceptA, conceptB})
	require.NoError(t, err)
	assert.Equal(t, "(owa (0.6 0.4) (C B))", must(Replace(owa, conceptA, conceptC)).String())
	notOWA := must(Not(owa))
	assert.Equal(t, "(not (owa (0.6 0.4) (C B)))", must(Replace(notOWA, conceptA, conceptC)).String())

	// replacing a whole sub-concept
	aOrB := must(Classical.Or(conceptA, conceptB))
	nested := must(Classical.And(aOrB, conceptC))
	assert.Equal(t, "(and (or A B) C)", nested.String())
	assert.Equal(t, "(and C D)", must(Replace(nested, aOrB, conceptD)).String())
}

func TestAtomicConceptsAndRoles(t *testing.T) {
	must := mustConcept(t)
	c := must(Zadeh.And(NewAll("r", conceptB), NewSome("s", must(Zadeh.Or(conceptA, conceptB))),
		NewSelfConcept("t"), NewHasValueConcept("r", "a"), conceptA))
	atomics := AtomicConcepts(c)
	require.Len(t, atomics, 2)
	assert.Equal(t, "A", atomics[0].Name)
	assert.Equal(t, "B", atomics[1].Name)
	assert.Equal(t, []string{"r", "s", "t"}, Roles(c))
	assert.Empty(t, Roles(conceptA))
	assert.Empty(t, AtomicConcepts(Top))
}

func TestClone(t *testing.T) {
	must := mustConcept(t)
	c := must(Lukasiewicz.Or(NewAll("r", conceptA), must(Not(conceptB))))
	clone := Clone(c)
	assert.True(t, Equal(c, clone))
	assert.NotSame(t, c, clone)
	assert.Equal(t, Top, Clone(Top))
}

func TestWeightedConcepts(t *testing.T) {
	wsum, err := NewWeightedAggregate(WSumKind, []float64{0.3, 0.3}, []Concept{conceptA, conceptB})
	require.NoError(t, err)
	assert.Equal(t, "(w-sum (0.3 A) (0.3 B))", wsum.String())

	_, err = NewWeightedAggregate(WSumKind, []float64{0.6, 0.6}, []Concept{conceptA, conceptB})
	assert.ErrorIs(t, err, ErrInvalidConcept)
	_, err = NewWeightedAggregate(WSumKind, []float64{0.5}, []Concept{conceptA, conceptB})
	assert.ErrorIs(t, err, ErrInvalidConcept)
	_, err = NewWeightedAggregate(WMinKind, []float64{0.5, 0.7}, []Concept{conceptA, conceptB})
	assert.ErrorIs(t, err, ErrInvalidConcept)
	wmax, err := NewWeightedAggregate(WMaxKind, []float64{1, 0.7}, []Concept{conceptA, conceptB})
	require.NoError(t, err)
	assert.Equal(t, "(w-max (1 A) (0.7 B))", wmax.String())

	_, err = NewOWA([]float64{0.5, 0.4}, []Concept{conceptA, conceptB})
	assert.ErrorIs(t, err, ErrInvalidConcept)
	_, err = NewFuzzyIntegral(ChoquetKind, []float64{0.5, 1.4}, []Concept{conceptA, conceptB})
	assert.ErrorIs(t, err, ErrInvalidConcept)
	sugeno, err := NewFuzzyIntegral(SugenoKind, []float64{0.5, 1}, []Concept{conceptA, conceptB})
	require.NoError(t, err)
	assert.Equal(t, "(sugeno (0.5 1) (A B))", sugeno.String())

	_, err = NewWeighted(1.5, conceptA)
	assert.ErrorIs(t, err, ErrInvalidConcept)
	w, err := NewWeighted(0.5, conceptA)
	require.NoError(t, err)
	assert.Equal(t, "(0.5 A)", w.String())

	th, err := NewThreshold(PosThresholdKind, 0.4, conceptA)
	require.NoError(t, err)
	assert.Equal(t, "([>= 0.4] A)", th.String())
}

func TestQuantifiedConcepts(t *testing.T) {
	shape, err := domains.NewRightShoulder(0, 1, 0.3, 0.8)
	require.NoError(t, err)
	most, err := NewConcreteConcept("most", shape)
	require.NoError(t, err)
	qowa, err := NewQuantifiedOWA(most, []Concept{conceptA, conceptB})
	require.NoError(t, err)
	assert.Equal(t, "(q-owa most A B)", qowa.String())
	assert.Len(t, qowa.Weights(), 2)

	wide, err := domains.NewRightShoulder(0, 10, 3, 8)
	require.NoError(t, err)
	bad, err := NewConcreteConcept("wide", wide)
	require.NoError(t, err)
	_, err = NewQuantifiedOWA(bad, []Concept{conceptA})
	assert.ErrorIs(t, err, ErrInvalidConcept)

	sigma, err := NewSigmaConcept("r", conceptA, []string{"a", "b"}, most)
	require.NoError(t, err)
	assert.Equal(t, "(sigma-count r A {a b} most)", sigma.String())
	assert.Equal(t, []string{"r"}, Roles(sigma))
}

func TestAssertionEquality(t *testing.T) {
	a := NewIndividual("a")
	weak := NewAssertion(a, conceptC, lp.Number(0.3))
	strong := NewAssertion(a, conceptC, lp.Number(0.7))
	assert.Equal(t, "a:C >= 0.3", weak.String())
	assert.True(t, weak.Equal(strong))
	assert.False(t, strong.Equal(weak))
	assert.True(t, weak.Equal(weak.Clone()))

	x := lp.NewVariable("x", lp.SemiContinuous)
	symbolic := NewAssertion(a, conceptC, lp.VarDegree(x))
	assert.False(t, weak.Equal(symbolic))
	other := NewAssertion(NewIndividual("b"), conceptC, lp.Number(0.7))
	assert.False(t, weak.Equal(other))
}

func TestKindsAndSemantics(t *testing.T) {
	for k := AtomicKind; k <= NegThresholdKind; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, LukasiewiczOrKind, LukasiewiczAndKind.Dual())
	assert.True(t, GoedelOrKind.IsLattice())
	assert.False(t, LukasiewiczOrKind.IsLattice())
	sem, err := ParseSemantics("zadeh")
	require.NoError(t, err)
	assert.Equal(t, GoedelAndKind, sem.AndKind())
	assert.Equal(t, GoedelOrKind, sem.OrKind())
	_, err = ParseSemantics("product")
	assert.Error(t, err)
	_, err = NewOperator(AllKind, conceptA, conceptB)
	assert.ErrorIs(t, err, ErrInvalidConcept)
}
