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

package ground

import (
	"context"
	"strings"
	"testing"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/domains"
	"github.com/FabianWe/fuzzydl/lp"
	"github.com/FabianWe/fuzzydl/milp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, kb *KnowledgeBase, s string) fuzzydl.Concept {
	t.Helper()
	c, err := fuzzydl.ParseConcept(s, kb.Definitions)
	require.NoError(t, err, s)
	return c
}

func reasoner(t *testing.T, kb *KnowledgeBase) *Reasoner {
	t.Helper()
	r, err := NewReasoner(kb, milp.DefaultOptions())
	require.NoError(t, err)
	return r
}

// bounds returns the min and max instance degree of ind in c.
func bounds(t *testing.T, r *Reasoner, ind, c string) (float64, float64) {
	t.Helper()
	concept := parse(t, r.KnowledgeBase(), c)
	lo, err := r.MinInstance(context.Background(), ind, concept)
	require.NoError(t, err, c)
	require.True(t, lo.IsConsistent(), c)
	hi, err := r.MaxInstance(context.Background(), ind, concept)
	require.NoError(t, err, c)
	require.True(t, hi.IsConsistent(), c)
	return lo.Value(), hi.Value()
}

func carKB(t *testing.T, sem fuzzydl.Semantics) *KnowledgeBase {
	kb := NewKnowledgeBase(sem)
	require.NoError(t, kb.AddConcreteFeature("speed", 0, 300))
	fast, err := domains.NewRightShoulder(0, 300, 100, 200)
	require.NoError(t, err)
	fastConcept, err := fuzzydl.NewConcreteConcept("Fast", fast)
	require.NoError(t, err)
	kb.AddConcreteConcept(fastConcept)
	kb.AddStringFeature("color")
	require.NoError(t, kb.SetValue("audi", "speed", 150))
	require.NoError(t, kb.SetStringValue("audi", "color", "red"))
	kb.AddAssertion("audi", fuzzydl.NewAtomicConcept("Car"), lp.Number(0.8))
	return kb
}

func TestAddAssertionKeepsStrongest(t *testing.T) {
	kb := NewKnowledgeBase(fuzzydl.Lukasiewicz)
	a := fuzzydl.NewAtomicConcept("A")
	kb.AddAssertion("a", a, lp.Number(0.5))
	kb.AddAssertion("a", a, lp.Number(0.7))
	res := kb.AddAssertion("a", a, lp.Number(0.3))
	require.Len(t, kb.Assertions(), 1)
	assert.Equal(t, 0.7, res.Degree.Value())
	kb.AddAssertion("b", a, lp.Number(0.3))
	assert.Len(t, kb.Assertions(), 2)
	assert.Equal(t, []string{"a", "b"}, kb.Individuals())
}

func TestKnowledgeBaseValues(t *testing.T) {
	kb := carKB(t, fuzzydl.Zadeh)
	assert.ErrorIs(t, kb.SetValue("audi", "speed", 400), ErrInvalidValue)
	assert.ErrorIs(t, kb.SetValue("audi", "color", 4), ErrInvalidValue)
	assert.ErrorIs(t, kb.SetStringValue("audi", "speed", "fast"), ErrInvalidValue)
	assert.ErrorIs(t, kb.SetValue("audi", "weight", 4), ErrUnknownFeature)
	assert.ErrorIs(t, kb.AddConcreteFeature("weight", 3, 3), ErrInvalidValue)
	require.Len(t, kb.Features(), 2)
	assert.Equal(t, "color: string", kb.Features()[0].String())
	assert.Equal(t, "speed: [0, 300]", kb.Features()[1].String())
}

func TestCloneIsIndependent(t *testing.T) {
	kb := carKB(t, fuzzydl.Zadeh)
	kb.AddRelation("r", "audi", "engine", lp.Number(1))
	cp := kb.Clone()
	cp.AddAssertion("bmw", fuzzydl.NewAtomicConcept("Car"), lp.Number(1))
	cp.AddRelation("r", "bmw", "engine", lp.Number(1))
	assert.Len(t, kb.Assertions(), 1)
	assert.Len(t, kb.Relations(), 1)
	assert.False(t, kb.HasIndividual("bmw"))
	assert.Len(t, cp.Assertions(), 2)
	assert.Len(t, cp.Relations(), 2)
	assert.NotNil(t, cp.Definitions.Concrete("Fast"))
}

func TestAtomicInstance(t *testing.T) {
	for _, sem := range []fuzzydl.Semantics{fuzzydl.Zadeh, fuzzydl.Lukasiewicz} {
		t.Run(sem.String(), func(t *testing.T) {
			kb := NewKnowledgeBase(sem)
			kb.AddAssertion("a", fuzzydl.NewAtomicConcept("A"), lp.Number(0.7))
			r := reasoner(t, kb)
			lo, hi := bounds(t, r, "a", "A")
			assert.InDelta(t, 0.7, lo, 1e-6)
			assert.InDelta(t, 1, hi, 1e-6)
			lo, hi = bounds(t, r, "a", "(not A)")
			assert.InDelta(t, 0, lo, 1e-6)
			assert.InDelta(t, 0.3, hi, 1e-6)
			lo, _ = bounds(t, r, "a", "(0.5 A)")
			assert.InDelta(t, 0.35, lo, 1e-6)
			// unknown individuals have no lower bound
			lo, hi = bounds(t, r, "b", "A")
			assert.InDelta(t, 0, lo, 1e-6)
			assert.InDelta(t, 1, hi, 1e-6)
		})
	}
}

func TestConjunction(t *testing.T) {
	tests := []struct {
		sem     fuzzydl.Semantics
		concept string
		want    float64
	}{
		{fuzzydl.Zadeh, "(g-and A B)", 0.6},
		{fuzzydl.Zadeh, "(g-or A B)", 0.8},
		{fuzzydl.Lukasiewicz, "(l-and A B)", 0.4},
		{fuzzydl.Lukasiewicz, "(l-or A B)", 1},
		{fuzzydl.Lukasiewicz, "(and A B)", 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.concept, func(t *testing.T) {
			kb := NewKnowledgeBase(tt.sem)
			kb.AddAssertion("a", fuzzydl.NewAtomicConcept("A"), lp.Number(0.8))
			kb.AddAssertion("a", fuzzydl.NewAtomicConcept("B"), lp.Number(0.6))
			lo, _ := bounds(t, reasoner(t, kb), "a", tt.concept)
			assert.InDelta(t, tt.want, lo, 1e-6)
		})
	}
}

func TestInconsistentKnowledgeBase(t *testing.T) {
	kb := NewKnowledgeBase(fuzzydl.Zadeh)
	a := fuzzydl.NewAtomicConcept("A")
	kb.AddAssertion("a", a, lp.Number(0.7))
	notA, err := fuzzydl.Not(a)
	require.NoError(t, err)
	kb.AddAssertion("a", notA, lp.Number(0.5))
	r := reasoner(t, kb)
	sat, err := r.Satisfiable(context.Background())
	require.NoError(t, err)
	assert.False(t, sat)
	sol, err := r.MinInstance(context.Background(), "a", a)
	require.NoError(t, err)
	assert.False(t, sol.IsConsistent())

	kb = NewKnowledgeBase(fuzzydl.Zadeh)
	kb.AddAssertion("a", a, lp.Number(0.5))
	kb.AddAssertion("a", notA, lp.Number(0.5))
	sat, err = reasoner(t, kb).Satisfiable(context.Background())
	require.NoError(t, err)
	assert.True(t, sat)
}

func TestRestrictions(t *testing.T) {
	tests := []struct {
		sem     fuzzydl.Semantics
		ind     string
		concept string
		lo, hi  float64
	}{
		{fuzzydl.Lukasiewicz, "a", "(some r B)", 0.5, 1},
		{fuzzydl.Zadeh, "a", "(some r B)", 0.7, 1},
		{fuzzydl.Lukasiewicz, "a", "(all r B)", 0.7, 1},
		{fuzzydl.Zadeh, "a", "(all r B)", 0.7, 1},
		{fuzzydl.Zadeh, "c", "(some r B)", 0, 0},
		{fuzzydl.Zadeh, "c", "(all r B)", 1, 1},
		{fuzzydl.Zadeh, "a", "(b-some r b)", 0.8, 1},
		{fuzzydl.Zadeh, "a", "(b-some r c)", 0, 0},
		{fuzzydl.Zadeh, "a", "(self r)", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.sem.String()+" "+tt.ind+":"+tt.concept, func(t *testing.T) {
			kb := NewKnowledgeBase(tt.sem)
			kb.AddRelation("r", "a", "b", lp.Number(0.8))
			kb.AddAssertion("b", fuzzydl.NewAtomicConcept("B"), lp.Number(0.7))
			kb.Individual("c")
			lo, hi := bounds(t, reasoner(t, kb), tt.ind, tt.concept)
			assert.InDelta(t, tt.lo, lo, 1e-6)
			assert.InDelta(t, tt.hi, hi, 1e-6)
		})
	}
}

func TestFeatures(t *testing.T) {
	tests := []struct {
		concept string
		want    float64
	}{
		{"(some speed Fast)", 0.5},
		{"(all speed Fast)", 0.5},
		{"(some speed (not Fast))", 0.5},
		{"(some speed *top*)", 1},
		{"(>= speed 120)", 1},
		{"(<= speed 120)", 0},
		{"(= speed 100)", 0},
		{`(some color "red")`, 1},
		{`(some color "blue")`, 0},
		{"(and Car (some speed Fast))", 0.5},
	}
	r := reasoner(t, carKB(t, fuzzydl.Zadeh))
	for _, tt := range tests {
		t.Run(tt.concept, func(t *testing.T) {
			lo, hi := bounds(t, r, "audi", tt.concept)
			assert.InDelta(t, tt.want, lo, 1e-6)
			assert.InDelta(t, tt.want, hi, 1e-6)
		})
	}
}

func TestUnsupportedConcepts(t *testing.T) {
	kb := carKB(t, fuzzydl.Zadeh)
	r := reasoner(t, kb)
	ctx := context.Background()
	_, err := r.MinInstance(ctx, "audi", parse(t, kb, "Fast"))
	assert.ErrorIs(t, err, ErrUnsupportedConcept)
	_, err = r.MinInstance(ctx, "audi", parse(t, kb, "(some speed Car)"))
	assert.ErrorIs(t, err, ErrUnsupportedConcept)
	_, err = r.MinInstance(ctx, "audi", parse(t, kb, `(some speed "red")`))
	assert.ErrorIs(t, err, ErrUnsupportedConcept)
	_, err = r.MinInstance(ctx, "audi", parse(t, kb, "(>= weight 3)"))
	assert.ErrorIs(t, err, ErrUnknownFeature)
	_, err = r.MinInstance(ctx, "audi", parse(t, kb, "(>= color 3)"))
	assert.ErrorIs(t, err, ErrUnsupportedConcept)

	kb.AddAssertion("audi", parse(t, kb, "Fast"), lp.Number(1))
	_, err = NewReasoner(kb, milp.DefaultOptions())
	assert.ErrorIs(t, err, ErrUnsupportedConcept)
}

func TestNominals(t *testing.T) {
	kb := NewKnowledgeBase(fuzzydl.Lukasiewicz)
	kb.Individual("a")
	kb.Individual("b")
	r := reasoner(t, kb)
	lo, hi := bounds(t, r, "a", "{a}")
	assert.Equal(t, []float64{1, 1}, []float64{lo, hi})
	lo, hi = bounds(t, r, "a", "{b}")
	assert.Equal(t, []float64{0, 0}, []float64{lo, hi})
	lo, _ = bounds(t, r, "a", "(not {b})")
	assert.InDelta(t, 1, lo, 1e-6)
}

func TestCrispConcepts(t *testing.T) {
	kb := NewKnowledgeBase(fuzzydl.Lukasiewicz)
	kb.AddCrispConcept("A")
	kb.AddAssertion("a", fuzzydl.NewAtomicConcept("A"), lp.Number(0.3))
	lo, _ := bounds(t, reasoner(t, kb), "a", "A")
	assert.InDelta(t, 1, lo, 1e-6)
}

func TestSigmaCount(t *testing.T) {
	kb := NewKnowledgeBase(fuzzydl.Lukasiewicz)
	q, err := domains.NewRightShoulder(0, 1, 0.25, 0.75)
	require.NoError(t, err)
	qc, err := fuzzydl.NewConcreteConcept("some-of", q)
	require.NoError(t, err)
	kb.AddConcreteConcept(qc)
	kb.AddRelation("r", "a", "b", lp.Number(1))
	kb.AddAssertion("b", fuzzydl.NewAtomicConcept("A"), lp.Number(1))
	kb.Individual("c")
	lo, hi := bounds(t, reasoner(t, kb), "a", "(sigma-count r A {b c} some-of)")
	assert.InDelta(t, 0.5, lo, 1e-6)
	assert.InDelta(t, 0.5, hi, 1e-6)
}

func TestReasonerSnapshot(t *testing.T) {
	kb := NewKnowledgeBase(fuzzydl.Zadeh)
	a := fuzzydl.NewAtomicConcept("A")
	kb.AddAssertion("a", a, lp.Number(0.4))
	r := reasoner(t, kb)
	kb.AddAssertion("a", a, lp.Number(0.9))
	lo, _ := bounds(t, r, "a", "A")
	assert.InDelta(t, 0.4, lo, 1e-6)
	// queries don't change the reasoner
	lo, _ = bounds(t, r, "a", "(g-and A B)")
	assert.InDelta(t, 0, lo, 1e-6)
	lo, _ = bounds(t, r, "a", "A")
	assert.InDelta(t, 0.4, lo, 1e-6)
}

func TestPartitionedReasoning(t *testing.T) {
	kb := carKB(t, fuzzydl.Lukasiewicz)
	kb.AddAssertion("bmw", fuzzydl.NewAtomicConcept("Car"), lp.Number(0.6))
	opts := milp.DefaultOptions()
	opts.Partition = true
	r, err := NewReasoner(kb, opts)
	require.NoError(t, err)
	lo, hi := bounds(t, r, "audi", "(l-and Car (some speed Fast))")
	assert.InDelta(t, 0.3, lo, 1e-6)
	assert.InDelta(t, 0.5, hi, 1e-6)
}

const carDocument = `
semantics: zadeh
concrete_features:
  - {name: speed, lower: 0, upper: 300}
string_features: [color]
crisp_concepts: [Sold]
concrete_concepts:
  - {name: Fast, shape: right-shoulder, params: [0, 300, 100, 200]}
modifiers:
  - {name: very, kind: linear, params: [4]}
assertions:
  - {individual: audi, concept: Car, degree: 0.8}
  - {individual: audi, concept: Sold, degree: 0.1}
  - individual: engine
    concept: (g-or Part Component)
relations:
  - {role: hasPart, subject: audi, object: engine, degree: 0.9}
values:
  - {individual: audi, feature: speed, value: 150}
  - {individual: audi, feature: color, string: red}
queries:
  - kind: min-instance
    individual: audi
    concept: (and Car (some speed Fast))
  - kind: max-instance
    individual: audi
    concept: '(some color "blue")'
  - kind: min-instance
    individual: audi
    concept: Sold
  - kind: satisfiable
`

func TestDecode(t *testing.T) {
	kb, queries, err := Decode(strings.NewReader(carDocument))
	require.NoError(t, err)
	assert.Equal(t, fuzzydl.Zadeh, kb.Semantics)
	assert.Equal(t, []string{"audi", "engine"}, kb.Individuals())
	assert.Len(t, kb.Assertions(), 3)
	assert.Len(t, kb.Relations(), 1)
	assert.NotNil(t, kb.Definitions.Modifier("very"))
	require.Len(t, queries, 4)
	assert.Equal(t, SatisfiableQuery, queries[3].Kind)
	assert.Equal(t, "min-instance audi:(and Car (some speed Fast))", queries[0].String())

	r := reasoner(t, kb)
	want := []float64{0.5, 0, 1, 1}
	for i, q := range queries {
		sol, err := q.Run(context.Background(), r)
		require.NoError(t, err, q.String())
		require.True(t, sol.IsConsistent(), q.String())
		assert.InDelta(t, want[i], sol.Value(), 1e-6, q.String())
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"semantics", "semantics: goedel"},
		{"unknown field", "individuals: [a]"},
		{"shape", "concrete_concepts: [{name: F, shape: circle, params: [0, 1]}]"},
		{"shape params", "concrete_concepts: [{name: F, shape: crisp, params: [0, 1]}]"},
		{"modifier", "modifiers: [{name: m, kind: linear, params: [1, 2]}]"},
		{"concept", "assertions: [{individual: a, concept: (and A}]"},
		{"query", "queries: [{kind: subsumes}]"},
		{"value", "concrete_features: [{name: f, lower: 0, upper: 1}]\nvalues: [{individual: a, feature: f}]"},
		{"feature", "values: [{individual: a, feature: f, value: 1}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
	_, _, err := LoadFile("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	kb, queries, err := LoadFile("testdata/cars.yaml")
	require.NoError(t, err)
	assert.Len(t, kb.Assertions(), 3)
	assert.Len(t, queries, 4)
}

func TestCompile(t *testing.T) {
	kb := carKB(t, fuzzydl.Zadeh)
	h, err := Compile(kb, milp.DefaultOptions())
	require.NoError(t, err)
	assert.True(t, h.HasVariable("audi:Car"))
	assert.True(t, h.HasVariable("audi.speed"))
	x := h.Lookup("audi.speed")
	assert.Equal(t, lp.Continuous, x.Type)
	assert.Equal(t, 300.0, x.Upper)
	sol, err := h.Optimize(context.Background(), lp.VarExpression(x))
	require.NoError(t, err)
	assert.InDelta(t, 150, sol.Value(), 1e-6)
}
