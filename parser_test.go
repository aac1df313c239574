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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDefinitions(t *testing.T) *Definitions {
	defs := NewDefinitions()
	most, err := domains.NewRightShoulder(0, 1, 0.3, 0.8)
	require.NoError(t, err)
	mostConcept, err := NewConcreteConcept("most", most)
	require.NoError(t, err)
	defs.AddConcrete(mostConcept)
	fast, err := domains.NewRightShoulder(0, 300, 100, 200)
	require.NoError(t, err)
	fastConcept, err := NewConcreteConcept("Fast", fast)
	require.NoError(t, err)
	defs.AddConcrete(fastConcept)
	very, err := domains.NewLinearModifier("very", 4)
	require.NoError(t, err)
	defs.AddModifier(very)
	return defs
}

func TestParseCanonicalNames(t *testing.T) {
	defs := testDefinitions(t)
	names := []string{
		"*top*",
		"*bottom*",
		"A",
		"(not A)",
		"(and A B C)",
		"(or (and A B) (not C))",
		"(g-and (g-or A B) C)",
		"(l-or (l-and B C) A)",
		"(all r (and A B))",
		"(some r (g-or A B))",
		"(self r)",
		"(b-some r a)",
		"(>= speed 120)",
		"(<= age 17.5)",
		"(= color -3)",
		"(0.5 A)",
		"(w-min (1 A) (0.7 B))",
		"(w-sum (0.3 A) (0.3 B))",
		"(w-sum-zero (0.5 A) (0.5 B))",
		"(owa (0.6 0.4) (A B))",
		"(q-owa most A B)",
		"(choquet (0.5 1) (A B))",
		"(sugeno (0.5 1) (A B))",
		"(q-sugeno (0.2 0.9) (A (not B)))",
		"(sigma-count r A {a b} most)",
		"{a}",
		"(not {a})",
		`"red"`,
		`"with \"quotes\""`,
		"(very A)",
		"(very Fast)",
		"Fast",
		"(g-implies A B)",
		"(l-implies A (all r B))",
		"(kd-implies A B)",
		"(z-implies A B)",
		"([>= 0.4] A)",
		"([<= 0.25] (some r A))",
		"(not (owa (0.6 0.4) (C B)))",
	}
	for _, name := range names {
		c, err := ParseConcept(name, defs)
		if assert.NoError(t, err, name) {
			assert.Equal(t, name, c.String())
		}
	}
}

func TestParseResolvesDefinitions(t *testing.T) {
	defs := testDefinitions(t)
	c, err := ParseConcept("Fast", defs)
	require.NoError(t, err)
	assert.Equal(t, ConcreteKind, c.Kind())
	c, err = ParseConcept("Fast", nil)
	require.NoError(t, err)
	assert.Equal(t, AtomicKind, c.Kind())

	c, err = ParseConcept("(very (and A B))", defs)
	require.NoError(t, err)
	require.Equal(t, ModifiedKind, c.Kind())
	assert.Equal(t, "very", c.(*ModifiedConcept).Modifier.Name())

	c, err = ParseConcept("(not {a})", defs)
	require.NoError(t, err)
	assert.Equal(t, NegatedNominalKind, c.Kind())

	// operators are flattened and sorted, but not normalized
	c, err = ParseConcept("(and C (and B A))", defs)
	require.NoError(t, err)
	assert.Equal(t, "(and A B C)", c.String())
	c, err = ParseConcept("(not (and A B))", defs)
	require.NoError(t, err)
	assert.Equal(t, ComplementKind, c.Kind())
}

func TestParseErrors(t *testing.T) {
	defs := testDefinitions(t)
	syntax := []string{
		"",
		"(and A B",
		"(and A B))",
		"(foo A)",
		"(all r)",
		"(>= speed fast)",
		`"open`,
		"(q-owa unknown A B)",
		"([> 0.5] A)",
		"{a b}",
		"(top)",
	}
	for _, s := range syntax {
		_, err := ParseConcept(s, defs)
		assert.ErrorIs(t, err, ErrSyntax, s)
	}
	invalid := []string{
		"(w-sum (0.6 A) (0.6 B))",
		"(1.5 A)",
		"(owa (0.5) (A B))",
	}
	for _, s := range invalid {
		_, err := ParseConcept(s, defs)
		assert.ErrorIs(t, err, ErrInvalidConcept, s)
	}
	assert.Panics(t, func() { MustParseConcept("(", nil) })
}

func TestParseRandomConcepts(t *testing.T) {
	must := mustConcept(t)
	for _, sem := range []Semantics{Classical, Zadeh, Lukasiewicz} {
		builder := NewRandomConceptBuilder(5, 3, 4, 7+int64(sem))
		for i := 0; i < 100; i++ {
			c := must(builder.Generate(sem))
			parsed, err := ParseConcept(c.String(), nil)
			require.NoError(t, err, c.String())
			assert.True(t, Equal(c, parsed), "%v parsed as %v", c, parsed)
		}
	}
}

func TestInterpret(t *testing.T) {
	c := MustParseConcept("(and A (or B (not (and C D))) (g-or E F))", nil)
	tests := []struct {
		sem  Semantics
		want string
	}{
		{Classical, "(and (g-or E F) (or (not (and C D)) B) A)"},
		{Zadeh, "(g-and (g-or (not (g-and C D)) B) (g-or E F) A)"},
		{Lukasiewicz, "(l-and (g-or E F) (l-or (not (l-and C D)) B) A)"},
	}
	for _, tt := range tests {
		res, err := tt.sem.Interpret(c)
		require.NoError(t, err)
		assert.Equal(t, tt.want, res.String(), tt.sem.String())
	}
}
