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
	"fmt"
	"io"
	"os"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/domains"
	"github.com/FabianWe/fuzzydl/lp"
	"github.com/FabianWe/fuzzydl/milp"
	"gopkg.in/yaml.v3"
)

// Document is the YAML representation of a knowledge base and its queries.
// Concepts are written in the syntax of their canonical names, for example
//
//	assertions:
//	  - individual: audi
//	    concept: (and Car (some speed Fast))
//	    degree: 0.8
type Document struct {
	// Semantics is classical, zadeh or lukasiewicz (default).
	Semantics        string          `yaml:"semantics"`
	ConcreteFeatures []FeatureSpec   `yaml:"concrete_features"`
	StringFeatures   []string        `yaml:"string_features"`
	CrispConcepts    []string        `yaml:"crisp_concepts"`
	CrispRoles       []string        `yaml:"crisp_roles"`
	ConcreteConcepts []ShapeSpec     `yaml:"concrete_concepts"`
	Modifiers        []ModifierSpec  `yaml:"modifiers"`
	Assertions       []AssertionSpec `yaml:"assertions"`
	Relations        []RelationSpec  `yaml:"relations"`
	Values           []ValueSpec     `yaml:"values"`
	Queries          []QuerySpec     `yaml:"queries"`
}

// FeatureSpec declares a concrete feature with values in [Lower, Upper].
type FeatureSpec struct {
	Name  string  `yaml:"name"`
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`
}

// ShapeSpec defines a fuzzy concrete concept, Shape is one of the shape
// kinds (crisp, left-shoulder, ...) and Params start with k1 and k2.
type ShapeSpec struct {
	Name   string    `yaml:"name"`
	Shape  string    `yaml:"shape"`
	Params []float64 `yaml:"params"`
}

// ModifierSpec defines a modifier: linear with one parameter or triangular
// with three.
type ModifierSpec struct {
	Name   string    `yaml:"name"`
	Kind   string    `yaml:"kind"`
	Params []float64 `yaml:"params"`
}

// AssertionSpec is a concept assertion, a missing degree is 1.
type AssertionSpec struct {
	Individual string   `yaml:"individual"`
	Concept    string   `yaml:"concept"`
	Degree     *float64 `yaml:"degree"`
}

// RelationSpec is a role assertion, a missing degree is 1.
type RelationSpec struct {
	Role    string   `yaml:"role"`
	Subject string   `yaml:"subject"`
	Object  string   `yaml:"object"`
	Degree  *float64 `yaml:"degree"`
}

// ValueSpec sets the value of a feature, exactly one of Value and String
// must be set.
type ValueSpec struct {
	Individual string   `yaml:"individual"`
	Feature    string   `yaml:"feature"`
	Value      *float64 `yaml:"value"`
	String     *string  `yaml:"string"`
}

// QuerySpec is a query, Kind is one of the QueryKind values.
type QuerySpec struct {
	Kind       string `yaml:"kind"`
	Individual string `yaml:"individual"`
	Concept    string `yaml:"concept"`
}

// QueryKind is the type of a query.
type QueryKind string

const (
	MinInstanceQuery QueryKind = "min-instance"
	MaxInstanceQuery QueryKind = "max-instance"
	SatisfiableQuery QueryKind = "satisfiable"
)

// Query is a parsed query.
type Query struct {
	Kind       QueryKind
	Individual string
	Concept    fuzzydl.Concept
}

func (q Query) String() string {
	if q.Kind == SatisfiableQuery {
		return "satisfiable?"
	}
	return fmt.Sprintf("%s %s:%v", q.Kind, q.Individual, q.Concept)
}

// Run runs the query. For satisfiability queries the solution is
// consistent iff the knowledge base is satisfiable.
func (q Query) Run(ctx context.Context, r *Reasoner) (*milp.Solution, error) {
	switch q.Kind {
	case MinInstanceQuery:
		return r.MinInstance(ctx, q.Individual, q.Concept)
	case MaxInstanceQuery:
		return r.MaxInstance(ctx, q.Individual, q.Concept)
	default:
		sat, err := r.Satisfiable(ctx)
		if err != nil {
			return nil, err
		}
		if !sat {
			return milp.InconsistentSolution(), nil
		}
		return milp.NewSolution(1, nil), nil
	}
}

func degreeOf(d *float64) lp.Degree {
	if d == nil {
		return lp.Number(1)
	}
	return lp.Number(*d)
}

// Build creates the knowledge base and the queries of the document.
func (doc *Document) Build() (*KnowledgeBase, []Query, error) {
	sem := fuzzydl.Lukasiewicz
	if doc.Semantics != "" {
		var err error
		if sem, err = fuzzydl.ParseSemantics(doc.Semantics); err != nil {
			return nil, nil, err
		}
	}
	kb := NewKnowledgeBase(sem)
	for _, f := range doc.ConcreteFeatures {
		if err := kb.AddConcreteFeature(f.Name, f.Lower, f.Upper); err != nil {
			return nil, nil, err
		}
	}
	for _, f := range doc.StringFeatures {
		kb.AddStringFeature(f)
	}
	for _, name := range doc.CrispConcepts {
		kb.AddCrispConcept(name)
	}
	for _, role := range doc.CrispRoles {
		kb.AddCrispRole(role)
	}
	for _, spec := range doc.ConcreteConcepts {
		kind, err := domains.ParseShapeKind(spec.Shape)
		if err != nil {
			return nil, nil, fmt.Errorf("concrete concept %s: %w", spec.Name, err)
		}
		shape, err := domains.NewShape(kind, spec.Params...)
		if err != nil {
			return nil, nil, fmt.Errorf("concrete concept %s: %w", spec.Name, err)
		}
		c, err := fuzzydl.NewConcreteConcept(spec.Name, shape)
		if err != nil {
			return nil, nil, err
		}
		kb.AddConcreteConcept(c)
	}
	for _, spec := range doc.Modifiers {
		m, err := newModifier(spec)
		if err != nil {
			return nil, nil, err
		}
		kb.AddModifier(m)
	}
	for _, spec := range doc.Values {
		var err error
		switch {
		case spec.Value != nil && spec.String == nil:
			err = kb.SetValue(spec.Individual, spec.Feature, *spec.Value)
		case spec.String != nil && spec.Value == nil:
			err = kb.SetStringValue(spec.Individual, spec.Feature, *spec.String)
		default:
			err = fmt.Errorf("%w: value of %s for %s needs exactly one of value and string",
				ErrInvalidValue, spec.Feature, spec.Individual)
		}
		if err != nil {
			return nil, nil, err
		}
	}
	for _, spec := range doc.Relations {
		kb.AddRelation(spec.Role, spec.Subject, spec.Object, degreeOf(spec.Degree))
	}
	for _, spec := range doc.Assertions {
		c, err := fuzzydl.ParseConcept(spec.Concept, kb.Definitions)
		if err != nil {
			return nil, nil, fmt.Errorf("assertion for %s: %w", spec.Individual, err)
		}
		kb.AddAssertion(spec.Individual, c, degreeOf(spec.Degree))
	}
	queries := make([]Query, 0, len(doc.Queries))
	for _, spec := range doc.Queries {
		q := Query{Kind: QueryKind(spec.Kind), Individual: spec.Individual}
		switch q.Kind {
		case MinInstanceQuery, MaxInstanceQuery:
			c, err := fuzzydl.ParseConcept(spec.Concept, kb.Definitions)
			if err != nil {
				return nil, nil, fmt.Errorf("query %s: %w", spec.Kind, err)
			}
			q.Concept = c
		case SatisfiableQuery:
		default:
			return nil, nil, fmt.Errorf("unknown query kind %q", spec.Kind)
		}
		queries = append(queries, q)
	}
	return kb, queries, nil
}

func newModifier(spec ModifierSpec) (domains.Modifier, error) {
	switch {
	case spec.Kind == "linear" && len(spec.Params) == 1:
		return domains.NewLinearModifier(spec.Name, spec.Params[0])
	case spec.Kind == "triangular" && len(spec.Params) == 3:
		return domains.NewTriangularModifier(spec.Name, spec.Params[0], spec.Params[1], spec.Params[2])
	default:
		return nil, fmt.Errorf("%w: %s %s with %d parameters", domains.ErrInvalidModifier,
			spec.Kind, spec.Name, len(spec.Params))
	}
}

// Decode reads a Document from r and builds it.
func Decode(r io.Reader) (*KnowledgeBase, []Query, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, nil, fmt.Errorf("failed to parse knowledge base: %w", err)
	}
	return doc.Build()
}

// LoadFile reads the knowledge base and queries from a YAML file.
func LoadFile(path string) (*KnowledgeBase, []Query, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read knowledge base: %w", err)
	}
	defer f.Close()
	kb, queries, err := Decode(f)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return kb, queries, nil
}
