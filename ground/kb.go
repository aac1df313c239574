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

// Package ground reasons over knowledge bases whose individuals are all
// named: the assertions are compiled into a MILP with the milp package and
// the degree queries are answered by optimizing it.
//
// No new individuals are created. Existential and universal restrictions
// range over the asserted role fillers only, a role assertion that is not
// stated has degree 0.
package ground

import (
	"errors"
	"fmt"
	"sort"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/domains"
	"github.com/FabianWe/fuzzydl/lp"
)

var (
	// ErrUnknownFeature is returned if a feature is used that was not
	// declared.
	ErrUnknownFeature = errors.New("unknown feature")
	// ErrInvalidValue is returned for feature values outside of the feature
	// range or of the wrong type.
	ErrInvalidValue = errors.New("invalid feature value")
	// ErrUnsupportedConcept is returned for concepts that can't be compiled
	// for an individual, for example a concrete concept that's not the
	// filler of a feature.
	ErrUnsupportedConcept = errors.New("unsupported concept")
)

// Feature is a functional role whose filler is a value: a rational in
// [Lower, Upper] or a string.
type Feature struct {
	Name         string
	StringValued bool
	Lower, Upper float64
}

func (f *Feature) String() string {
	if f.StringValued {
		return f.Name + ": string"
	}
	return fmt.Sprintf("%s: [%s, %s]", f.Name, domains.FormatFloat(f.Lower),
		domains.FormatFloat(f.Upper))
}

// featureValue is the value of a feature for one individual.
type featureValue struct {
	number float64
	str    string
}

// KnowledgeBase is a fuzzy ABox over named individuals together with the
// declarations it depends on.
type KnowledgeBase struct {
	Semantics   fuzzydl.Semantics
	Definitions *fuzzydl.Definitions

	individuals   map[string]*fuzzydl.Individual
	assertions    []*fuzzydl.Assertion
	relations     *fuzzydl.RoleIndex
	crispConcepts map[string]struct{}
	crispRoles    map[string]struct{}
	features      map[string]*Feature
	// values maps individual → feature → value
	values map[string]map[string]featureValue
}

func NewKnowledgeBase(sem fuzzydl.Semantics) *KnowledgeBase {
	return &KnowledgeBase{
		Semantics:     sem,
		Definitions:   fuzzydl.NewDefinitions(),
		individuals:   make(map[string]*fuzzydl.Individual),
		relations:     fuzzydl.NewRoleIndex(),
		crispConcepts: make(map[string]struct{}),
		crispRoles:    make(map[string]struct{}),
		features:      make(map[string]*Feature),
		values:        make(map[string]map[string]featureValue),
	}
}

// Individual returns the individual with the given name, it is created if
// it doesn't exist.
func (kb *KnowledgeBase) Individual(name string) *fuzzydl.Individual {
	if ind, has := kb.individuals[name]; has {
		return ind
	}
	ind := fuzzydl.NewIndividual(name)
	kb.individuals[name] = ind
	return ind
}

// HasIndividual tests if the individual occurs in the knowledge base.
func (kb *KnowledgeBase) HasIndividual(name string) bool {
	_, has := kb.individuals[name]
	return has
}

// Individuals returns the names of all individuals, sorted.
func (kb *KnowledgeBase) Individuals() []string {
	res := make([]string, 0, len(kb.individuals))
	for name := range kb.individuals {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// AddAssertion adds the assertion ind : c ≥ d. An assertion implied by an
// existing one (same individual and concept, lower degree) is ignored,
// existing assertions implied by the new one are removed.
func (kb *KnowledgeBase) AddAssertion(ind string, c fuzzydl.Concept, d lp.Degree) *fuzzydl.Assertion {
	a := fuzzydl.NewAssertion(kb.Individual(ind), c, d)
	for _, existing := range kb.assertions {
		if a.Equal(existing) {
			return existing
		}
	}
	kept := kb.assertions[:0]
	for _, existing := range kb.assertions {
		if !existing.Equal(a) {
			kept = append(kept, existing)
		}
	}
	kb.assertions = append(kept, a)
	return a
}

// Assertions returns the concept assertions in the order they were added.
func (kb *KnowledgeBase) Assertions() []*fuzzydl.Assertion {
	return append([]*fuzzydl.Assertion(nil), kb.assertions...)
}

// AddRelation adds the role assertion (subject, object) : role ≥ d. An
// existing assertion for the same pair is replaced.
func (kb *KnowledgeBase) AddRelation(role, subject, object string, d lp.Degree) *fuzzydl.Relation {
	s := kb.Individual(subject)
	rel := fuzzydl.NewRelation(role, s, kb.Individual(object), d)
	if kb.relations.Add(rel) {
		s.AddRelation(rel)
	}
	return rel
}

// Relations returns all role assertions sorted by name.
func (kb *KnowledgeBase) Relations() []*fuzzydl.Relation {
	return kb.relations.All()
}

// Fillers returns the role assertions with subject ind, sorted by object.
func (kb *KnowledgeBase) Fillers(role, ind string) []*fuzzydl.Relation {
	return kb.relations.Relations(role, ind)
}

// Relation returns the role assertion (a, b) : role or nil.
func (kb *KnowledgeBase) Relation(role, a, b string) *fuzzydl.Relation {
	return kb.relations.Get(role, a, b)
}

// AddCrispConcept declares the atomic concept as crisp.
func (kb *KnowledgeBase) AddCrispConcept(name string) {
	kb.crispConcepts[name] = struct{}{}
}

// AddCrispRole declares the role as crisp.
func (kb *KnowledgeBase) AddCrispRole(role string) {
	kb.crispRoles[role] = struct{}{}
}

func sortedSet(m map[string]struct{}) []string {
	return fuzzydl.InsertSorted(nil, m)
}

// AddConcreteFeature declares a feature with values in [lower, upper].
func (kb *KnowledgeBase) AddConcreteFeature(name string, lower, upper float64) error {
	if !(lower < upper) {
		return fmt.Errorf("%w: range [%s, %s] of feature %s is empty", ErrInvalidValue,
			domains.FormatFloat(lower), domains.FormatFloat(upper), name)
	}
	kb.features[name] = &Feature{Name: name, Lower: lower, Upper: upper}
	return nil
}

// AddStringFeature declares a string valued feature.
func (kb *KnowledgeBase) AddStringFeature(name string) {
	kb.features[name] = &Feature{Name: name, StringValued: true}
}

// Features returns all features sorted by name.
func (kb *KnowledgeBase) Features() []*Feature {
	res := make([]*Feature, 0, len(kb.features))
	for _, f := range kb.features {
		res = append(res, f)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res
}

// Feature returns the feature with the given name or nil.
func (kb *KnowledgeBase) Feature(name string) *Feature {
	return kb.features[name]
}

func (kb *KnowledgeBase) setValue(ind, feature string, v featureValue) {
	kb.Individual(ind)
	byFeature, has := kb.values[ind]
	if !has {
		byFeature = make(map[string]featureValue)
		kb.values[ind] = byFeature
	}
	byFeature[feature] = v
}

// SetValue sets the value of a concrete feature for the individual.
func (kb *KnowledgeBase) SetValue(ind, feature string, value float64) error {
	f := kb.features[feature]
	switch {
	case f == nil:
		return fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	case f.StringValued:
		return fmt.Errorf("%w: %s is a string feature", ErrInvalidValue, feature)
	case value < f.Lower || value > f.Upper:
		return fmt.Errorf("%w: %s not in range of %v", ErrInvalidValue,
			domains.FormatFloat(value), f)
	}
	kb.setValue(ind, feature, featureValue{number: value})
	return nil
}

// SetStringValue sets the value of a string feature for the individual.
func (kb *KnowledgeBase) SetStringValue(ind, feature, value string) error {
	f := kb.features[feature]
	switch {
	case f == nil:
		return fmt.Errorf("%w: %s", ErrUnknownFeature, feature)
	case !f.StringValued:
		return fmt.Errorf("%w: %s is not a string feature", ErrInvalidValue, feature)
	}
	kb.setValue(ind, feature, featureValue{str: value})
	return nil
}

// AddConcreteConcept defines a fuzzy concrete concept.
func (kb *KnowledgeBase) AddConcreteConcept(c *fuzzydl.ConcreteConcept) {
	kb.Definitions.AddConcrete(c)
}

// AddModifier defines a fuzzy modifier.
func (kb *KnowledgeBase) AddModifier(m domains.Modifier) {
	kb.Definitions.AddModifier(m)
}

// Clone returns a copy of the knowledge base that can be extended without
// changing kb. Concepts, shapes and modifiers are immutable and shared.
func (kb *KnowledgeBase) Clone() *KnowledgeBase {
	res := NewKnowledgeBase(kb.Semantics)
	res.Definitions = kb.Definitions.Clone()
	for _, name := range kb.Individuals() {
		res.Individual(name)
	}
	for _, a := range kb.assertions {
		res.assertions = append(res.assertions,
			fuzzydl.NewAssertion(res.Individual(a.Individual.Name), a.C, a.Degree.Clone()))
	}
	for _, rel := range kb.relations.All() {
		res.AddRelation(rel.Role, rel.Subject.Name, rel.Object.Name, rel.Degree.Clone())
	}
	for name := range kb.crispConcepts {
		res.crispConcepts[name] = struct{}{}
	}
	for role := range kb.crispRoles {
		res.crispRoles[role] = struct{}{}
	}
	for name, f := range kb.features {
		cp := *f
		res.features[name] = &cp
	}
	for ind, byFeature := range kb.values {
		for feature, v := range byFeature {
			res.setValue(ind, feature, v)
		}
	}
	return res
}
