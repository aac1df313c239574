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
	"log/slog"

	"github.com/FabianWe/fuzzydl"
	"github.com/FabianWe/fuzzydl/lp"
	"github.com/FabianWe/fuzzydl/milp"
)

// Reasoner answers queries over a snapshot of a knowledge base.
//
// The knowledge base is compiled once, every query works on a clone of the
// compiled model, so queries don't influence each other. A Reasoner is not
// safe for concurrent use.
type Reasoner struct {
	kb   *KnowledgeBase
	base *compiler
	log  *slog.Logger
}

// NewReasoner compiles a snapshot of kb. Later changes of kb are not seen
// by the reasoner.
func NewReasoner(kb *KnowledgeBase, opts milp.Options) (*Reasoner, error) {
	snapshot := kb.Clone()
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	base, err := compile(snapshot, opts)
	if err != nil {
		return nil, err
	}
	log.Debug("compiled knowledge base", "individuals", len(snapshot.individuals),
		"assertions", len(snapshot.assertions), "variables", len(base.h.Variables()),
		"constraints", base.h.NumConstraints())
	return &Reasoner{kb: snapshot, base: base, log: log}, nil
}

func compile(kb *KnowledgeBase, opts milp.Options) (*compiler, error) {
	c := newCompiler(kb, milp.NewHelper(opts))
	if err := c.compileKB(); err != nil {
		return nil, err
	}
	return c, nil
}

// Compile returns a helper holding the constraints of the assertions of kb.
// The degree of individual a in an asserted concept C is the variable
// "a:C".
func Compile(kb *KnowledgeBase, opts milp.Options) (*milp.Helper, error) {
	c, err := compile(kb, opts)
	if err != nil {
		return nil, err
	}
	return c.h, nil
}

// KnowledgeBase returns the snapshot the reasoner works on, it must not be
// modified.
func (r *Reasoner) KnowledgeBase() *KnowledgeBase {
	return r.kb
}

// Satisfiable tests if the knowledge base has a model.
func (r *Reasoner) Satisfiable(ctx context.Context) (bool, error) {
	sol, err := r.base.clone().h.Optimize(ctx, lp.Expression{})
	if err != nil {
		return false, err
	}
	return sol.IsConsistent(), nil
}

// MinInstance returns the minimal degree of the individual in the concept
// over all models, that is the best lower bound entailed by the knowledge
// base. The solution is inconsistent if the knowledge base is.
func (r *Reasoner) MinInstance(ctx context.Context, ind string, c fuzzydl.Concept) (*milp.Solution, error) {
	return r.instance(ctx, ind, c, false)
}

// MaxInstance returns the maximal degree of the individual in the concept
// over all models.
func (r *Reasoner) MaxInstance(ctx context.Context, ind string, c fuzzydl.Concept) (*milp.Solution, error) {
	return r.instance(ctx, ind, c, true)
}

func (r *Reasoner) instance(ctx context.Context, ind string, c fuzzydl.Concept, maximize bool) (*milp.Solution, error) {
	comp := r.base.clone()
	x, err := comp.degree(comp.individual(ind), c)
	if err != nil {
		return nil, err
	}
	comp.h.Show().ShowVariable(x.Name, "")
	objective := lp.VarExpression(x)
	if maximize {
		objective = objective.Scale(-1)
	}
	r.log.Debug("instance query", "individual", ind, "concept", c.String(), "maximize", maximize)
	sol, err := comp.h.Optimize(ctx, objective)
	if err != nil || !sol.IsConsistent() || !maximize {
		return sol, err
	}
	return milp.NewSolution(0-sol.Value(), sol.Shown()), nil
}
