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

// Package fuzzydl implements the concept algebra of a fuzzy description logic
// reasoner: concept expressions under classical, Zadeh (Gödel) and
// Łukasiewicz semantics, their normal forms and the assertions the MILP layer
// compiles into constraints.
package fuzzydl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/FabianWe/fuzzydl/domains"
)

// ErrInvalidConcept is returned by constructors if the concept parameters
// violate an invariant, for example the weights of a weighted sum exceed 1.
var ErrInvalidConcept = errors.New("invalid concept")

// ErrIllegalOperation is returned if an operation is not defined on a
// concept, for example negating a negated nominal or a string.
var ErrIllegalOperation = errors.New("illegal concept operation")

//// Concepts ////

// Kind is the discriminant of a concept.
type Kind int

const (
	AtomicKind Kind = iota
	ConcreteKind
	TopKind
	BottomKind
	ComplementKind
	AndKind
	OrKind
	GoedelAndKind
	GoedelOrKind
	LukasiewiczAndKind
	LukasiewiczOrKind
	AllKind
	SomeKind
	ModifiedKind
	SelfKind
	HasValueKind
	AtLeastValueKind
	AtMostValueKind
	ExactValueKind
	WeightedKind
	WMinKind
	WMaxKind
	WSumKind
	WSumZeroKind
	OWAKind
	QuantifiedOWAKind
	ChoquetKind
	SugenoKind
	QuasiSugenoKind
	SigmaKind
	NominalKind
	NegatedNominalKind
	StringKind
	GoedelImpliesKind
	LukasiewiczImpliesKind
	KleeneDienesImpliesKind
	ZadehImpliesKind
	PosThresholdKind
	NegThresholdKind
)

// kindNames are the names of the kinds, for operators this is the prefix
// used in the canonical name.
var kindNames = [...]string{
	AtomicKind:              "atomic",
	ConcreteKind:            "concrete",
	TopKind:                 "top",
	BottomKind:              "bottom",
	ComplementKind:          "not",
	AndKind:                 "and",
	OrKind:                  "or",
	GoedelAndKind:           "g-and",
	GoedelOrKind:            "g-or",
	LukasiewiczAndKind:      "l-and",
	LukasiewiczOrKind:       "l-or",
	AllKind:                 "all",
	SomeKind:                "some",
	ModifiedKind:            "modified",
	SelfKind:                "self",
	HasValueKind:            "b-some",
	AtLeastValueKind:        ">=",
	AtMostValueKind:         "<=",
	ExactValueKind:          "=",
	WeightedKind:            "weighted",
	WMinKind:                "w-min",
	WMaxKind:                "w-max",
	WSumKind:                "w-sum",
	WSumZeroKind:            "w-sum-zero",
	OWAKind:                 "owa",
	QuantifiedOWAKind:       "q-owa",
	ChoquetKind:             "choquet",
	SugenoKind:              "sugeno",
	QuasiSugenoKind:         "q-sugeno",
	SigmaKind:               "sigma-count",
	NominalKind:             "nominal",
	NegatedNominalKind:      "negated-nominal",
	StringKind:              "string",
	GoedelImpliesKind:       "g-implies",
	LukasiewiczImpliesKind:  "l-implies",
	KleeneDienesImpliesKind: "kd-implies",
	ZadehImpliesKind:        "z-implies",
	PosThresholdKind:        "pos-threshold",
	NegThresholdKind:        "neg-threshold",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return -1, fmt.Errorf("%w: unknown concept kind %q", ErrInvalidConcept, s)
}

// IsConjunction returns true for the and kinds of all semantics.
func (k Kind) IsConjunction() bool {
	return k == AndKind || k == GoedelAndKind || k == LukasiewiczAndKind
}

// IsDisjunction returns true for the or kinds of all semantics.
func (k Kind) IsDisjunction() bool {
	return k == OrKind || k == GoedelOrKind || k == LukasiewiczOrKind
}

// IsOperator returns true for all binary operators (and / or).
func (k Kind) IsOperator() bool {
	return k.IsConjunction() || k.IsDisjunction()
}

// IsLattice returns true for the operators that form a lattice (classical
// and Gödel). Idempotency, absorption, distribution and the merging of
// quantifiers are only valid for those.
func (k Kind) IsLattice() bool {
	switch k {
	case AndKind, OrKind, GoedelAndKind, GoedelOrKind:
		return true
	default:
		return false
	}
}

// Dual returns the dual operator: and ↔ or, keeping the semantics.
// For all other kinds k itself is returned.
func (k Kind) Dual() Kind {
	switch k {
	case AndKind:
		return OrKind
	case OrKind:
		return AndKind
	case GoedelAndKind:
		return GoedelOrKind
	case GoedelOrKind:
		return GoedelAndKind
	case LukasiewiczAndKind:
		return LukasiewiczOrKind
	case LukasiewiczOrKind:
		return LukasiewiczAndKind
	default:
		return k
	}
}

// Concept is the interface for all concept definitions.
//
// Concepts are immutable: all operations on concepts return a new concept and
// never modify an existing one. The canonical name returned by String is the
// notion of equality: two concepts are interchangeable iff their names are
// equal.
type Concept interface {
	fmt.Stringer
	Kind() Kind
	// children returns the direct sub-concepts, it also seals the interface.
	children() []Concept
}

// Equal tests if two concepts have the same canonical name.
func Equal(c, d Concept) bool {
	return c.String() == d.String()
}

// TopConcept is the Top concept ⊤.
type TopConcept struct{}

func (TopConcept) String() string      { return "*top*" }
func (TopConcept) Kind() Kind          { return TopKind }
func (TopConcept) children() []Concept { return nil }

// BottomConcept is the Bottom concept ⊥.
type BottomConcept struct{}

func (BottomConcept) String() string      { return "*bottom*" }
func (BottomConcept) Kind() Kind          { return BottomKind }
func (BottomConcept) children() []Concept { return nil }

// Top is a constant concept that represents to top concept ⊤.
var Top Concept = TopConcept{}

// Bottom is a constant concept that represents the bottom concept ⊥.
var Bottom Concept = BottomConcept{}

// AtomicConcept is a concept name A ∈ N_C.
type AtomicConcept struct {
	Name string
}

// NewAtomicConcept returns the atomic concept with the given name.
func NewAtomicConcept(name string) *AtomicConcept {
	return &AtomicConcept{Name: name}
}

func (a *AtomicConcept) String() string    { return a.Name }
func (a *AtomicConcept) Kind() Kind        { return AtomicKind }
func (*AtomicConcept) children() []Concept { return nil }

// NominalConcept is a nominal concept of the form {a}.
type NominalConcept struct {
	Individual string
}

func NewNominalConcept(individual string) *NominalConcept {
	return &NominalConcept{Individual: individual}
}

func (n *NominalConcept) String() string    { return "{" + n.Individual + "}" }
func (n *NominalConcept) Kind() Kind        { return NominalKind }
func (*NominalConcept) children() []Concept { return nil }

// NegatedNominal is the negation of a nominal concept, ¬{a}.
// It can't be negated again.
type NegatedNominal struct {
	Individual string
}

func NewNegatedNominal(individual string) *NegatedNominal {
	return &NegatedNominal{Individual: individual}
}

func (n *NegatedNominal) String() string    { return "(not {" + n.Individual + "})" }
func (n *NegatedNominal) Kind() Kind        { return NegatedNominalKind }
func (*NegatedNominal) children() []Concept { return nil }

// StringConcept is a string literal, used as value of string features.
type StringConcept struct {
	Value string
}

func NewStringConcept(value string) *StringConcept {
	return &StringConcept{Value: value}
}

func (s *StringConcept) String() string    { return strconv.Quote(s.Value) }
func (s *StringConcept) Kind() Kind        { return StringKind }
func (*StringConcept) children() []Concept { return nil }

// SelfConcept is the local reflexivity concept ∃r.Self.
type SelfConcept struct {
	Role string
}

func NewSelfConcept(role string) *SelfConcept {
	return &SelfConcept{Role: role}
}

func (s *SelfConcept) String() string    { return "(self " + s.Role + ")" }
func (s *SelfConcept) Kind() Kind        { return SelfKind }
func (*SelfConcept) children() []Concept { return nil }

// HasValueConcept is the concept ∃r.{a}.
type HasValueConcept struct {
	Role       string
	Individual string
}

func NewHasValueConcept(role, individual string) *HasValueConcept {
	return &HasValueConcept{Role: role, Individual: individual}
}

func (h *HasValueConcept) String() string {
	return fmt.Sprintf("(b-some %s %s)", h.Role, h.Individual)
}
func (h *HasValueConcept) Kind() Kind      { return HasValueKind }
func (*HasValueConcept) children() []Concept { return nil }

// ValueConcept restricts the value of a concrete feature:
// (>= f v), (<= f v) or (= f v).
type ValueConcept struct {
	kind    Kind
	Feature string
	Value   float64
}

// NewValueConcept returns a value restriction, kind must be one of
// AtLeastValueKind, AtMostValueKind and ExactValueKind.
func NewValueConcept(kind Kind, feature string, value float64) (*ValueConcept, error) {
	switch kind {
	case AtLeastValueKind, AtMostValueKind, ExactValueKind:
	default:
		return nil, fmt.Errorf("%w: %v is not a value restriction", ErrInvalidConcept, kind)
	}
	return &ValueConcept{kind: kind, Feature: feature, Value: value}, nil
}

func (v *ValueConcept) String() string {
	return fmt.Sprintf("(%v %s %s)", v.kind, v.Feature, domains.FormatFloat(v.Value))
}
func (v *ValueConcept) Kind() Kind        { return v.kind }
func (*ValueConcept) children() []Concept { return nil }

// Holds returns true if the feature value x satisfies the restriction.
func (v *ValueConcept) Holds(x float64) bool {
	switch v.kind {
	case AtLeastValueKind:
		return x >= v.Value
	case AtMostValueKind:
		return x <= v.Value
	default:
		return x == v.Value
	}
}

// ConcreteConcept is a fuzzy concrete concept: a named membership function
// over the values of a concrete feature.
type ConcreteConcept struct {
	Name  string
	Shape domains.Membership
}

func NewConcreteConcept(name string, shape domains.Membership) (*ConcreteConcept, error) {
	if shape == nil {
		return nil, fmt.Errorf("%w: concrete concept %s without membership function",
			ErrInvalidConcept, name)
	}
	return &ConcreteConcept{Name: name, Shape: shape}, nil
}

func (c *ConcreteConcept) String() string    { return c.Name }
func (c *ConcreteConcept) Kind() Kind        { return ConcreteKind }
func (*ConcreteConcept) children() []Concept { return nil }

// Definition returns the definition of the concrete concept, for example
// "Fast = right-shoulder(0, 300, 100, 200)".
func (c *ConcreteConcept) Definition() string {
	return c.Name + " = " + domains.ShapeString(c.Shape)
}

// ModifiedConcept is the application of a fuzzy modifier to a concept.
type ModifiedConcept struct {
	Modifier domains.Modifier
	C        Concept
	name     string
}

func NewModifiedConcept(m domains.Modifier, c Concept) *ModifiedConcept {
	return &ModifiedConcept{Modifier: m, C: c,
		name: fmt.Sprintf("(%s %v)", m.Name(), c)}
}

func (m *ModifiedConcept) String() string      { return m.name }
func (m *ModifiedConcept) Kind() Kind          { return ModifiedKind }
func (m *ModifiedConcept) children() []Concept { return []Concept{m.C} }

// joinConcepts joins the names of the concepts with a space.
func joinConcepts(cs []Concept) string {
	strs := make([]string, len(cs))
	for i, c := range cs {
		strs[i] = c.String()
	}
	return strings.Join(strs, " ")
}
