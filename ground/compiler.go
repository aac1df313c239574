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
	"fmt"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/lp"
	"github.com/FabianWe/fuzzydl/milp"
)

// compiler translates the degree of an individual in a concept into MILP
// constraints. Each pair (individual, concept) is compiled once, its degree
// is the variable "ind:C" of the helper.
type compiler struct {
	kb   *KnowledgeBase
	h    *milp.Helper
	done map[string]struct{}
}

func newCompiler(kb *KnowledgeBase, h *milp.Helper) *compiler {
	return &compiler{kb: kb, h: h, done: make(map[string]struct{})}
}

// clone returns a compiler for a clone of the helper.
func (c *compiler) clone() *compiler {
	res := newCompiler(c.kb, c.h.Clone())
	for k := range c.done {
		res.done[k] = struct{}{}
	}
	return res
}

// individual returns the individual of the knowledge base or a new one
// without any assertions.
func (c *compiler) individual(name string) *fuzzydl.Individual {
	if c.kb.HasIndividual(name) {
		return c.kb.Individual(name)
	}
	return fuzzydl.NewIndividual(name)
}

// compileKB adds the declarations and assertions of the knowledge base.
func (c *compiler) compileKB() error {
	kb := c.kb
	for _, name := range sortedSet(kb.crispConcepts) {
		c.h.AddCrispConcept(name)
	}
	for _, role := range sortedSet(kb.crispRoles) {
		c.h.AddCrispRole(role)
	}
	for _, f := range kb.Features() {
		if f.StringValued {
			c.h.AddStringFeature(f.Name)
		}
	}
	c.h.SetNominalVariables(true)
	for _, ind := range kb.Individuals() {
		for _, f := range kb.Features() {
			v, has := kb.values[ind][f.Name]
			if !has {
				continue
			}
			x := c.featureVariable(kb.Individual(ind), f)
			if f.StringValued {
				c.h.Fix(x, float64(c.h.StringValueCode(v.str)))
			} else {
				c.h.Fix(x, v.number)
			}
		}
	}
	for _, rel := range kb.Relations() {
		c.h.AddRelation(rel)
	}
	for _, a := range kb.assertions {
		x, err := c.degree(a.Individual, a.C)
		if err != nil {
			return fmt.Errorf("can't compile %v: %w", a, err)
		}
		c.h.AddDegreeConstraint(x, a.Degree)
	}
	return nil
}

// featureVariable returns the variable holding the value of the feature f
// of ind.
func (c *compiler) featureVariable(ind *fuzzydl.Individual, f *Feature) *lp.Variable {
	filler := fuzzydl.NewCreatedIndividual(ind.Name+"."+f.Name, ind, f.Name)
	if f.StringValued {
		filler.StringValued = true
	} else {
		filler.SetConcreteRange(f.Lower, f.Upper)
	}
	return c.h.CreatedIndividualVariable(filler)
}

// degree returns the variable for the degree of ind in concept.
func (c *compiler) degree(ind *fuzzydl.Individual, concept fuzzydl.Concept) (*lp.Variable, error) {
	x := c.h.IndividualVariable(ind, concept)
	if _, has := c.done[x.Name]; has {
		return x, nil
	}
	if concept.Kind() != fuzzydl.AtomicKind {
		value, err := c.encode(ind, concept)
		if err != nil {
			return nil, err
		}
		c.h.Equal(x, value)
	}
	c.done[x.Name] = struct{}{}
	return x, nil
}

func (c *compiler) degrees(ind *fuzzydl.Individual, cs []fuzzydl.Concept) ([]*lp.Variable, error) {
	res := make([]*lp.Variable, len(cs))
	for i, concept := range cs {
		x, err := c.degree(ind, concept)
		if err != nil {
			return nil, err
		}
		res[i] = x
	}
	return res, nil
}

func (c *compiler) encode(ind *fuzzydl.Individual, concept fuzzydl.Concept) (*lp.Variable, error) {
	h := c.h
	switch x := concept.(type) {
	case fuzzydl.TopConcept:
		return h.Constant(1), nil
	case fuzzydl.BottomConcept:
		return h.Constant(0), nil
	case *fuzzydl.ComplementConcept:
		y, err := c.degree(ind, x.C)
		if err != nil {
			return nil, err
		}
		return h.Negation(y), nil
	case *fuzzydl.OperatorConcept:
		ys, err := c.degrees(ind, x.Concepts)
		if err != nil {
			return nil, err
		}
		return c.operator(x.Kind(), ys), nil
	case *fuzzydl.QuantifiedConcept:
		if f := c.kb.Feature(x.Role); f != nil {
			return c.fillerDegree(c.featureVariable(ind, f), f, x.C)
		}
		return c.quantified(ind, x)
	case *fuzzydl.SelfConcept:
		return c.roleDegree(ind.Name, ind.Name, x.Role), nil
	case *fuzzydl.HasValueConcept:
		return c.roleDegree(ind.Name, x.Individual, x.Role), nil
	case *fuzzydl.NominalConcept:
		return c.nominal(ind.Name, x.Individual), nil
	case *fuzzydl.NegatedNominal:
		return h.Negation(c.nominal(ind.Name, x.Individual)), nil
	case *fuzzydl.ValueConcept:
		f := c.kb.Feature(x.Feature)
		if f == nil {
			return nil, fmt.Errorf("%w: %s in %v", ErrUnknownFeature, x.Feature, x)
		}
		if f.StringValued {
			return nil, fmt.Errorf("%w: %v compares the string feature %s", ErrUnsupportedConcept, x, f.Name)
		}
		return h.ValueIndicator(c.featureVariable(ind, f), valueComparison(x.Kind()), x.Value), nil
	case *fuzzydl.ModifiedConcept:
		y, err := c.degree(ind, x.C)
		if err != nil {
			return nil, err
		}
		return h.Modify(x.Modifier, y), nil
	case *fuzzydl.ImpliesConcept:
		ys, err := c.degrees(ind, []fuzzydl.Concept{x.C, x.D})
		if err != nil {
			return nil, err
		}
		return c.implication(x.Kind(), ys[0], ys[1]), nil
	case *fuzzydl.ThresholdConcept:
		y, err := c.degree(ind, x.C)
		if err != nil {
			return nil, err
		}
		if x.Kind() == fuzzydl.PosThresholdKind {
			return h.PosThreshold(x.Weight, y), nil
		}
		return h.NegThreshold(x.Weight, y), nil
	case *fuzzydl.WeightedConcept:
		y, err := c.degree(ind, x.C)
		if err != nil {
			return nil, err
		}
		return h.Weighted(x.Weight, y), nil
	case *fuzzydl.WeightedAggregate:
		ys, err := c.degrees(ind, x.Concepts)
		if err != nil {
			return nil, err
		}
		switch x.Kind() {
		case fuzzydl.WMinKind:
			return h.WeightedMin(x.Weights, ys), nil
		case fuzzydl.WMaxKind:
			return h.WeightedMax(x.Weights, ys), nil
		case fuzzydl.WSumKind:
			return h.WeightedSum(x.Weights, ys), nil
		default:
			return h.WeightedSumZero(x.Weights, ys), nil
		}
	case *fuzzydl.OWAConcept:
		ys, err := c.degrees(ind, x.Concepts)
		if err != nil {
			return nil, err
		}
		return h.OWA(x.Weights, ys), nil
	case *fuzzydl.QuantifiedOWAConcept:
		ys, err := c.degrees(ind, x.Concepts)
		if err != nil {
			return nil, err
		}
		return h.OWA(x.Weights(), ys), nil
	case *fuzzydl.FuzzyIntegral:
		ys, err := c.degrees(ind, x.Concepts)
		if err != nil {
			return nil, err
		}
		switch x.Kind() {
		case fuzzydl.ChoquetKind:
			return h.Choquet(x.Weights, ys), nil
		case fuzzydl.SugenoKind:
			return h.Sugeno(x.Weights, ys), nil
		default:
			return h.QuasiSugeno(x.Weights, ys), nil
		}
	case *fuzzydl.SigmaConcept:
		return c.sigma(ind, x)
	default:
		return nil, fmt.Errorf("%w: %v (%v) needs a feature", ErrUnsupportedConcept, concept, concept.Kind())
	}
}

func (c *compiler) operator(kind fuzzydl.Kind, ys []*lp.Variable) *lp.Variable {
	h := c.h
	switch kind {
	case fuzzydl.AndKind:
		return h.TNorm(fuzzydl.Classical, ys...)
	case fuzzydl.OrKind:
		return h.TConorm(fuzzydl.Classical, ys...)
	case fuzzydl.GoedelAndKind:
		return h.GoedelAnd(ys...)
	case fuzzydl.GoedelOrKind:
		return h.GoedelOr(ys...)
	case fuzzydl.LukasiewiczAndKind:
		return h.LukasiewiczAnd(ys...)
	default:
		return h.LukasiewiczOr(ys...)
	}
}

func (c *compiler) implication(kind fuzzydl.Kind, x, y *lp.Variable) *lp.Variable {
	h := c.h
	switch kind {
	case fuzzydl.GoedelImpliesKind:
		return h.GoedelImplies(x, y)
	case fuzzydl.LukasiewiczImpliesKind:
		return h.LukasiewiczImplies(x, y)
	case fuzzydl.KleeneDienesImpliesKind:
		return h.KleeneDienesImplies(x, y)
	default:
		return h.ZadehImplies(x, y)
	}
}

// quantified encodes ∃r.C as sup_b T(r(a, b), C(b)) and ∀r.C as
// inf_b I(r(a, b), C(b)) over the asserted fillers b. The implication is
// Łukasiewicz's for Łukasiewicz semantics and Kleene-Dienes' otherwise.
func (c *compiler) quantified(ind *fuzzydl.Individual, q *fuzzydl.QuantifiedConcept) (*lp.Variable, error) {
	h := c.h
	sem := c.kb.Semantics
	fillers := c.kb.Fillers(q.Role, ind.Name)
	parts := make([]*lp.Variable, len(fillers))
	for i, rel := range fillers {
		r := h.RelationVariable(rel)
		y, err := c.degree(rel.Object, q.C)
		if err != nil {
			return nil, err
		}
		switch {
		case q.Kind() == fuzzydl.SomeKind:
			parts[i] = h.TNorm(sem, r, y)
		case sem == fuzzydl.Lukasiewicz:
			parts[i] = h.LukasiewiczImplies(r, y)
		default:
			parts[i] = h.KleeneDienesImplies(r, y)
		}
	}
	if q.Kind() == fuzzydl.SomeKind {
		return h.GoedelOr(parts...), nil
	}
	return h.GoedelAnd(parts...), nil
}

// fillerDegree returns the degree of the value x of feature f in concept.
func (c *compiler) fillerDegree(x *lp.Variable, f *Feature, concept fuzzydl.Concept) (*lp.Variable, error) {
	h := c.h
	switch y := concept.(type) {
	case fuzzydl.TopConcept:
		return h.Constant(1), nil
	case fuzzydl.BottomConcept:
		return h.Constant(0), nil
	case *fuzzydl.ConcreteConcept:
		if f.StringValued {
			break
		}
		return h.Membership(y.Shape, x), nil
	case *fuzzydl.StringConcept:
		if !f.StringValued {
			break
		}
		return h.ValueIndicator(x, lp.EQ, float64(h.StringValueCode(y.Value))), nil
	case *fuzzydl.ModifiedConcept:
		inner, err := c.fillerDegree(x, f, y.C)
		if err != nil {
			return nil, err
		}
		return h.Modify(y.Modifier, inner), nil
	case *fuzzydl.ComplementConcept:
		inner, err := c.fillerDegree(x, f, y.C)
		if err != nil {
			return nil, err
		}
		return h.Negation(inner), nil
	}
	return nil, fmt.Errorf("%w: %v is not a filler of feature %v", ErrUnsupportedConcept, concept, f)
}

// roleDegree returns the degree of the role between a and b, 0 if there is
// no such role assertion.
func (c *compiler) roleDegree(a, b, role string) *lp.Variable {
	rel := c.kb.Relation(role, a, b)
	if rel == nil {
		return c.h.Constant(0)
	}
	return c.h.RelationVariable(rel)
}

// nominal returns the variable for a being b. Names are unique, so it is
// fixed to 1 if a and b are the same individual and to 0 otherwise.
func (c *compiler) nominal(a, b string) *lp.Variable {
	x := c.h.NominalVariable(a, b)
	if a == b {
		c.h.Fix(x, 1)
	} else {
		c.h.Fix(x, 0)
	}
	return x
}

func (c *compiler) sigma(ind *fuzzydl.Individual, s *fuzzydl.SigmaConcept) (*lp.Variable, error) {
	h := c.h
	inds := make([]*fuzzydl.Individual, len(s.Individuals))
	for i, name := range s.Individuals {
		b := c.individual(name)
		inds[i] = b
		if _, err := c.degree(b, s.C); err != nil {
			return nil, err
		}
		if c.kb.Relation(s.Role, ind.Name, name) == nil {
			h.Fix(h.RoleVariable(ind, b, s.Role), 0)
		}
	}
	x := h.NewAuxiliary(lp.Continuous)
	h.AddCardinalityList(&milp.SigmaCount{
		Var:         x,
		Individual:  ind,
		Individuals: inds,
		Role:        s.Role,
		Concept:     s.C,
		Quantifier:  s.Quantifier.Shape,
		Semantics:   c.kb.Semantics,
	})
	return x, nil
}

func valueComparison(kind fuzzydl.Kind) lp.Comparison {
	switch kind {
	case fuzzydl.AtLeastValueKind:
		return lp.GE
	case fuzzydl.AtMostValueKind:
		return lp.LE
	default:
		return lp.EQ
	}
}
