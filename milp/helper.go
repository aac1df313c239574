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

// Package milp compiles fuzzy assertions into a mixed integer linear program
// and solves it with one of several backends.
//
// The central type is Helper: it maps individuals, roles, concepts and
// degrees to decision variables (each logical quantity to exactly one
// variable), collects the linear constraints and dispatches the model to a
// Backend when a query is optimized.
package milp

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/domains"
	"github.com/FabianWe/fuzzydl/lp"
)

var (
	// ErrSolverFailure is returned if a backend didn't produce a result, for
	// example because the solver binary is missing or crashed. It's not
	// returned for infeasible models, those yield an inconsistent Solution.
	ErrSolverFailure = errors.New("solver failure")
	// ErrSolverTimeout is returned if the solver didn't finish in time.
	ErrSolverTimeout = errors.New("solver timeout")
	// ErrUnsupportedModel is returned if a backend can't handle the model,
	// for example the pseudo-boolean backend and non-binary variables.
	ErrUnsupportedModel = errors.New("model not supported by backend")
	// ErrUnknownBackend is returned for unknown backend names.
	ErrUnknownBackend = errors.New("unknown solver backend")
)

// Options configure a Helper.
type Options struct {
	// Backend is the name of the solver backend, see Backends.
	Backend string
	// Timeout limits each call to Optimize, 0 means no limit.
	Timeout time.Duration
	// Partition enables solving independent parts of the model separately.
	Partition bool
	// Debug keeps the model and solution files of external solvers.
	Debug bool
	// ArtifactsDir is the directory for model and solution files, the
	// system's temporary directory if empty.
	ArtifactsDir string
	// Precision is the number of decimal digits of reported values.
	Precision int
	// Epsilon is the numeric tolerance, it's also used to encode strict
	// inequalities.
	Epsilon float64
	// MaxNodes bounds the number of branch and bound nodes of the simplex
	// backend, 0 means no bound.
	MaxNodes int
	// CBCPath and GLPKPath are the solver executables.
	CBCPath  string
	GLPKPath string

	Logger  *slog.Logger
	Metrics *Metrics
}

// DefaultOptions returns the options used if nothing else is configured.
func DefaultOptions() Options {
	return Options{
		Backend:   SimplexBackendName,
		Precision: 6,
		Epsilon:   1e-6,
		MaxNodes:  100000,
		CBCPath:   "cbc",
		GLPKPath:  "glpsol",
	}
}

// Helper stores the variables and constraints of a MILP.
//
// A Helper is not safe for concurrent use. To explore different branches of
// a reasoning task clone it, clones don't share any mutable state.
type Helper struct {
	opts Options
	log  *slog.Logger

	vars  map[string]*lp.Variable
	order []*lp.Variable

	constraints    []lp.Inequation
	constraintKeys map[string]struct{}

	// conceptOf and roleOf map variable names to the concept / role the
	// variable is the degree of, used to make them binary if the concept or
	// role is declared crisp later.
	conceptOf map[string]string
	roleOf    map[string]string

	crispConcepts map[string]struct{}
	crispRoles    map[string]struct{}

	nominalVariables bool
	nominals         map[string]struct{}

	stringFeatures map[string]struct{}
	stringValues   map[string]int

	cardinalities []*SigmaCount
	expanded      int

	show  *ShowVariables
	names *fuzzydl.IntDistributor
}

// NewHelper returns an empty helper, zero values in opts are replaced by the
// defaults.
func NewHelper(opts Options) *Helper {
	def := DefaultOptions()
	if opts.Backend == "" {
		opts.Backend = def.Backend
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = def.Epsilon
	}
	if opts.Precision <= 0 {
		opts.Precision = def.Precision
	}
	if opts.CBCPath == "" {
		opts.CBCPath = def.CBCPath
	}
	if opts.GLPKPath == "" {
		opts.GLPKPath = def.GLPKPath
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Helper{
		opts:           opts,
		log:            log,
		vars:           make(map[string]*lp.Variable),
		constraintKeys: make(map[string]struct{}),
		conceptOf:      make(map[string]string),
		roleOf:         make(map[string]string),
		crispConcepts:  make(map[string]struct{}),
		crispRoles:     make(map[string]struct{}),
		nominals:       make(map[string]struct{}),
		stringFeatures: make(map[string]struct{}),
		stringValues:   make(map[string]int),
		show:           NewShowVariables(),
		names:          fuzzydl.NewIntDistributor(0),
	}
}

// Options returns the options of the helper.
func (h *Helper) Options() Options {
	return h.opts
}

// Show returns the registry of variables reported in solutions.
func (h *Helper) Show() *ShowVariables {
	return h.show
}

//// Variables ////

// Variable returns the variable with the given name. If it doesn't exist yet
// a new semi-continuous variable in [0, 1] is created.
func (h *Helper) Variable(name string) *lp.Variable {
	return h.VariableOfType(name, lp.SemiContinuous)
}

// VariableOfType returns the variable with the given name, creating it with
// type t if it doesn't exist. The type of an existing variable is not
// changed.
func (h *Helper) VariableOfType(name string, t lp.VarType) *lp.Variable {
	if v, has := h.vars[name]; has {
		return v
	}
	v := lp.NewVariable(name, t)
	h.vars[name] = v
	h.order = append(h.order, v)
	return v
}

// HasVariable tests if a variable with the given name exists.
func (h *Helper) HasVariable(name string) bool {
	_, has := h.vars[name]
	return has
}

// Lookup returns the variable with the given name or nil.
func (h *Helper) Lookup(name string) *lp.Variable {
	return h.vars[name]
}

// Variables returns all variables in order of creation.
func (h *Helper) Variables() []*lp.Variable {
	res := make([]*lp.Variable, len(h.order))
	copy(res, h.order)
	return res
}

// IndividualVariable returns the variable for the degree of ind in c, named
// "ind:C". The variable is binary if c is a crisp concept.
func (h *Helper) IndividualVariable(ind *fuzzydl.Individual, c fuzzydl.Concept) *lp.Variable {
	name := ind.Name + ":" + c.String()
	v := h.Variable(name)
	h.conceptOf[name] = c.String()
	if h.IsCrispConcept(c.String()) {
		v.SetType(lp.Binary)
	}
	return v
}

// RestrictionVariable returns the variable for the degree of ind in the
// universal restriction r.
func (h *Helper) RestrictionVariable(ind *fuzzydl.Individual, r *fuzzydl.Restriction) *lp.Variable {
	return h.Variable(ind.Name + ":" + r.NameWithoutDegree())
}

// RoleVariable returns the variable for the degree of the role between a and
// b, named "(a,b):role". The variable is binary if the role is crisp.
func (h *Helper) RoleVariable(a, b *fuzzydl.Individual, role string) *lp.Variable {
	name := fuzzydl.RoleName(a.Name, b.Name, role)
	v := h.Variable(name)
	h.roleOf[name] = role
	if h.IsCrispRole(role) {
		v.SetType(lp.Binary)
	}
	return v
}

// AssertionVariable returns the variable for the degree of the assertion.
func (h *Helper) AssertionVariable(a *fuzzydl.Assertion) *lp.Variable {
	return h.IndividualVariable(a.Individual, a.C)
}

// RelationVariable returns the variable for the degree of the relation.
func (h *Helper) RelationVariable(r *fuzzydl.Relation) *lp.Variable {
	return h.RoleVariable(r.Subject, r.Object, r.Role)
}

// CreatedIndividualVariable returns the variable for the value of a created
// individual. Fillers of concrete features are continuous in the range of
// the feature, fillers of string features are integers (see
// StringValueCode), all others semi-continuous in [0, 1].
func (h *Helper) CreatedIndividualVariable(c *fuzzydl.CreatedIndividual) *lp.Variable {
	if v, has := h.vars[c.Name]; has {
		return v
	}
	switch {
	case c.StringValued:
		v := h.VariableOfType(c.Name, lp.Integer)
		v.SetBounds(0, float64(maxStringCode))
		return v
	case c.Concrete:
		v := h.VariableOfType(c.Name, lp.Continuous)
		v.SetBounds(c.Lower, c.Upper)
		return v
	default:
		return h.Variable(c.Name)
	}
}

// NominalName returns the name of the variable stating that i1 is i2.
func NominalName(i1, i2 string) string {
	return i1 + ":{" + i2 + "}"
}

// NominalVariable returns the binary variable that is 1 iff i1 is (the same
// individual as) i2.
func (h *Helper) NominalVariable(i1, i2 string) *lp.Variable {
	name := NominalName(i1, i2)
	h.nominals[name] = struct{}{}
	v := h.VariableOfType(name, lp.Binary)
	v.SetType(lp.Binary)
	return v
}

// IsNominalVariable tests if the name is the name of a nominal variable.
func (h *Helper) IsNominalVariable(name string) bool {
	_, has := h.nominals[name]
	return has
}

// SetNominalVariables controls whether nominal variables are part of the
// model. If false (the default) all nominal variables and the constraints
// using them are removed before solving.
func (h *Helper) SetNominalVariables(enabled bool) {
	h.nominalVariables = enabled
}

// NewAuxiliary returns a fresh variable of type t.
func (h *Helper) NewAuxiliary(t lp.VarType) *lp.Variable {
	for {
		name := h.names.NextName("x")
		if !h.HasVariable(name) {
			return h.VariableOfType(name, t)
		}
	}
}

// Constant returns a continuous variable fixed to value.
func (h *Helper) Constant(value float64) *lp.Variable {
	v := h.VariableOfType("const:"+domains.FormatFloat(value), lp.Continuous)
	v.SetBounds(value, value)
	return v
}

//// Crisp concepts and roles ////

// AddCrispConcept declares the concept with the given name as crisp, all its
// degree variables are binary.
func (h *Helper) AddCrispConcept(name string) {
	h.crispConcepts[name] = struct{}{}
	for varName, concept := range h.conceptOf {
		if concept == name {
			h.vars[varName].SetType(lp.Binary)
		}
	}
}

// AddCrispRole declares the role as crisp, all its degree variables are
// binary.
func (h *Helper) AddCrispRole(role string) {
	h.crispRoles[role] = struct{}{}
	for varName, r := range h.roleOf {
		if r == role {
			h.vars[varName].SetType(lp.Binary)
		}
	}
}

func (h *Helper) IsCrispConcept(name string) bool {
	_, has := h.crispConcepts[name]
	return has
}

func (h *Helper) IsCrispRole(role string) bool {
	_, has := h.crispRoles[role]
	return has
}

//// String features ////

// maxStringCode bounds the integer codes of string values.
const maxStringCode = 1 << 20

// AddStringFeature declares the feature as string valued.
func (h *Helper) AddStringFeature(feature string) {
	h.stringFeatures[feature] = struct{}{}
}

func (h *Helper) IsStringFeature(feature string) bool {
	_, has := h.stringFeatures[feature]
	return has
}

// StringValueCode returns the integer code of a string value. Codes are
// assigned in order of first use and are stable for the lifetime of the
// helper (and its clones).
func (h *Helper) StringValueCode(s string) int {
	if code, has := h.stringValues[s]; has {
		return code
	}
	code := len(h.stringValues)
	h.stringValues[s] = code
	return code
}

// StringValue is the inverse of StringValueCode.
func (h *Helper) StringValue(code int) (string, bool) {
	for s, c := range h.stringValues {
		if c == code {
			return s, true
		}
	}
	return "", false
}

//// Clone ////

// Clone returns a deep copy of the helper. Variables are copied and all
// constraints of the copy refer to the copied variables.
func (h *Helper) Clone() *Helper {
	res := NewHelper(h.opts)
	res.log = h.log
	for _, v := range h.order {
		cp := v.Clone()
		res.vars[cp.Name] = cp
		res.order = append(res.order, cp)
	}
	remap := res.remapper()
	for _, c := range h.constraints {
		res.constraints = append(res.constraints, c.Remap(remap))
	}
	for k := range h.constraintKeys {
		res.constraintKeys[k] = struct{}{}
	}
	copyStrings(res.conceptOf, h.conceptOf)
	copyStrings(res.roleOf, h.roleOf)
	copySet(res.crispConcepts, h.crispConcepts)
	copySet(res.crispRoles, h.crispRoles)
	copySet(res.nominals, h.nominals)
	copySet(res.stringFeatures, h.stringFeatures)
	for s, c := range h.stringValues {
		res.stringValues[s] = c
	}
	res.nominalVariables = h.nominalVariables
	for _, sc := range h.cardinalities {
		res.cardinalities = append(res.cardinalities, sc.remap(remap))
	}
	res.expanded = h.expanded
	res.show = h.show.Clone()
	res.names = h.names.Clone()
	return res
}

// remapper returns a function mapping a variable to the variable of h with
// the same name. Variables unknown to h are returned unchanged.
func (h *Helper) remapper() func(*lp.Variable) *lp.Variable {
	return func(v *lp.Variable) *lp.Variable {
		if own, has := h.vars[v.Name]; has {
			return own
		}
		return v
	}
}

// adopt returns the variable of h with the name of v. If there is none a
// copy of v is registered.
func (h *Helper) adopt(v *lp.Variable) *lp.Variable {
	if own, has := h.vars[v.Name]; has {
		return own
	}
	cp := v.Clone()
	h.vars[cp.Name] = cp
	h.order = append(h.order, cp)
	return cp
}

func copyStrings(dst, src map[string]string) {
	for k, v := range src {
		dst[k] = v
	}
}

func copySet(dst, src map[string]struct{}) {
	for k := range src {
		dst[k] = struct{}{}
	}
}

// String returns a textual representation of all variables and
// constraints, used for debugging.
func (h *Helper) String() string {
	var b strings.Builder
	b.WriteString("Variables:\n")
	vars := h.Variables()
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })
	for _, v := range vars {
		fmt.Fprintf(&b, "  %s\n", v.Describe())
	}
	b.WriteString("Constraints:\n")
	for _, c := range h.constraints {
		fmt.Fprintf(&b, "  %v\n", c)
	}
	return b.String()
}
