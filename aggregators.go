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
	"math"
	"strings"

	"github.com/FabianWe/fuzzydl/domains"
)

// weightEpsilon is the tolerance when comparing sums of weights.
const weightEpsilon = 1e-9

// WeightedAggregate is a weighted min, weighted max, weighted sum or weighted
// sum zero over a list of concepts.
type WeightedAggregate struct {
	kind     Kind
	Weights  []float64
	Concepts []Concept
	name     string
}

// NewWeightedAggregate validates the weights and returns the aggregate.
//
// The number of weights must match the number of concepts and all weights
// must be in [0, 1]. For weighted min and max one of the weights must be 1,
// for weighted sum and weighted sum zero the weights must sum up to at most 1.
func NewWeightedAggregate(kind Kind, weights []float64, cs []Concept) (*WeightedAggregate, error) {
	if err := checkWeights(kind, weights, cs); err != nil {
		return nil, err
	}
	switch kind {
	case WMinKind, WMaxKind:
		hasOne := false
		for _, w := range weights {
			if w == 1 {
				hasOne = true
				break
			}
		}
		if !hasOne {
			return nil, fmt.Errorf("%w: %v requires a weight 1, got %s",
				ErrInvalidConcept, kind, domains.JoinFloats(weights, ", "))
		}
	case WSumKind, WSumZeroKind:
		if sum := sumWeights(weights); sum > 1+weightEpsilon {
			return nil, fmt.Errorf("%w: weights of %v sum up to %s > 1",
				ErrInvalidConcept, kind, domains.FormatFloat(sum))
		}
	default:
		return nil, fmt.Errorf("%w: %v is not a weighted aggregate", ErrInvalidConcept, kind)
	}
	return newWeightedAggregate(kind, weights, cs), nil
}

func newWeightedAggregate(kind Kind, weights []float64, cs []Concept) *WeightedAggregate {
	ws := append([]float64(nil), weights...)
	concepts := append([]Concept(nil), cs...)
	parts := make([]string, len(cs))
	for i, c := range concepts {
		parts[i] = fmt.Sprintf("(%s %v)", domains.FormatFloat(ws[i]), c)
	}
	return &WeightedAggregate{kind: kind, Weights: ws, Concepts: concepts,
		name: fmt.Sprintf("(%v %s)", kind, strings.Join(parts, " "))}
}

func (w *WeightedAggregate) String() string      { return w.name }
func (w *WeightedAggregate) Kind() Kind          { return w.kind }
func (w *WeightedAggregate) children() []Concept { return w.Concepts }

// OWAConcept is an ordered weighted average: the weights are applied to the
// degrees of the concepts sorted in non-increasing order.
type OWAConcept struct {
	Weights  []float64
	Concepts []Concept
	name     string
}

// NewOWA returns an OWA concept, the weights must be in [0, 1] and sum up
// to 1.
func NewOWA(weights []float64, cs []Concept) (*OWAConcept, error) {
	if err := checkWeights(OWAKind, weights, cs); err != nil {
		return nil, err
	}
	if sum := sumWeights(weights); math.Abs(sum-1) > weightEpsilon {
		return nil, fmt.Errorf("%w: weights of owa sum up to %s, not 1",
			ErrInvalidConcept, domains.FormatFloat(sum))
	}
	return newOWA(weights, cs), nil
}

func newOWA(weights []float64, cs []Concept) *OWAConcept {
	ws := append([]float64(nil), weights...)
	concepts := append([]Concept(nil), cs...)
	return &OWAConcept{Weights: ws, Concepts: concepts,
		name: fmt.Sprintf("(owa (%s) (%s))", domains.JoinFloats(ws, " "), joinConcepts(concepts))}
}

func (o *OWAConcept) String() string      { return o.name }
func (o *OWAConcept) Kind() Kind          { return OWAKind }
func (o *OWAConcept) children() []Concept { return o.Concepts }

// QuantifiedOWAConcept is an OWA whose weights are computed from a fuzzy
// quantifier Q: w_i = Q(i / n) - Q((i - 1) / n).
type QuantifiedOWAConcept struct {
	Quantifier *ConcreteConcept
	Concepts   []Concept
	name       string
}

// NewQuantifiedOWA returns the quantifier guided OWA concept. The quantifier
// must be defined on [0, 1].
func NewQuantifiedOWA(q *ConcreteConcept, cs []Concept) (*QuantifiedOWAConcept, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: q-owa without quantifier", ErrInvalidConcept)
	}
	if len(cs) == 0 {
		return nil, fmt.Errorf("%w: q-owa without concepts", ErrInvalidConcept)
	}
	if k1, k2 := q.Shape.Range(); k1 != 0 || k2 != 1 {
		return nil, fmt.Errorf("%w: quantifier %v must be defined on [0, 1]", ErrInvalidConcept, q)
	}
	return newQuantifiedOWA(q, cs), nil
}

func newQuantifiedOWA(q *ConcreteConcept, cs []Concept) *QuantifiedOWAConcept {
	concepts := append([]Concept(nil), cs...)
	return &QuantifiedOWAConcept{Quantifier: q, Concepts: concepts,
		name: fmt.Sprintf("(q-owa %v %s)", q, joinConcepts(concepts))}
}

func (o *QuantifiedOWAConcept) String() string      { return o.name }
func (o *QuantifiedOWAConcept) Kind() Kind          { return QuantifiedOWAKind }
func (o *QuantifiedOWAConcept) children() []Concept { return o.Concepts }

// Weights returns the OWA weights induced by the quantifier.
func (o *QuantifiedOWAConcept) Weights() []float64 {
	return domains.QuantifierWeights(o.Quantifier.Shape, len(o.Concepts))
}

// FuzzyIntegral is a Choquet, Sugeno or quasi-Sugeno integral. Weights[i] is
// the value of the fuzzy measure for the set of the i+1 concepts with the
// highest degrees, so the weights should be non-decreasing.
type FuzzyIntegral struct {
	kind     Kind
	Weights  []float64
	Concepts []Concept
	name     string
}

func NewFuzzyIntegral(kind Kind, weights []float64, cs []Concept) (*FuzzyIntegral, error) {
	switch kind {
	case ChoquetKind, SugenoKind, QuasiSugenoKind:
	default:
		return nil, fmt.Errorf("%w: %v is not a fuzzy integral", ErrInvalidConcept, kind)
	}
	if err := checkWeights(kind, weights, cs); err != nil {
		return nil, err
	}
	return newFuzzyIntegral(kind, weights, cs), nil
}

func newFuzzyIntegral(kind Kind, weights []float64, cs []Concept) *FuzzyIntegral {
	ws := append([]float64(nil), weights...)
	concepts := append([]Concept(nil), cs...)
	return &FuzzyIntegral{kind: kind, Weights: ws, Concepts: concepts,
		name: fmt.Sprintf("(%v (%s) (%s))", kind, domains.JoinFloats(ws, " "), joinConcepts(concepts))}
}

func (f *FuzzyIntegral) String() string      { return f.name }
func (f *FuzzyIntegral) Kind() Kind          { return f.kind }
func (f *FuzzyIntegral) children() []Concept { return f.Concepts }

// SigmaConcept is the sigma-count concept: the relative number of the given
// individuals that are r-successors belonging to C, mapped through the fuzzy
// quantifier Q.
type SigmaConcept struct {
	Role        string
	C           Concept
	Individuals []string
	Quantifier  *ConcreteConcept
	name        string
}

func NewSigmaConcept(role string, c Concept, individuals []string, q *ConcreteConcept) (*SigmaConcept, error) {
	if q == nil {
		return nil, fmt.Errorf("%w: sigma-count without quantifier", ErrInvalidConcept)
	}
	if len(individuals) == 0 {
		return nil, fmt.Errorf("%w: sigma-count without individuals", ErrInvalidConcept)
	}
	return newSigma(role, c, individuals, q), nil
}

func newSigma(role string, c Concept, individuals []string, q *ConcreteConcept) *SigmaConcept {
	inds := append([]string(nil), individuals...)
	return &SigmaConcept{Role: role, C: c, Individuals: inds, Quantifier: q,
		name: fmt.Sprintf("(sigma-count %s %v {%s} %v)", role, c, strings.Join(inds, " "), q)}
}

func (s *SigmaConcept) String() string      { return s.name }
func (s *SigmaConcept) Kind() Kind          { return SigmaKind }
func (s *SigmaConcept) children() []Concept { return []Concept{s.C} }

func checkWeights(kind Kind, weights []float64, cs []Concept) error {
	if len(weights) != len(cs) {
		return fmt.Errorf("%w: %v has %d weights but %d concepts",
			ErrInvalidConcept, kind, len(weights), len(cs))
	}
	if len(cs) == 0 {
		return fmt.Errorf("%w: %v without concepts", ErrInvalidConcept, kind)
	}
	for _, w := range weights {
		if err := checkWeight(w); err != nil {
			return fmt.Errorf("%v: %w", kind, err)
		}
	}
	return nil
}

func sumWeights(weights []float64) float64 {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	return sum
}
