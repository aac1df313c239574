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
	"sort"
)

// Individual is a named individual of the knowledge base. It stores the
// relations it is the subject of and the universal restrictions that apply
// to it.
type Individual struct {
	Name          string
	roleRelations map[string][]*Relation
	Restrictions  []*Restriction
}

func NewIndividual(name string) *Individual {
	return &Individual{Name: name, roleRelations: make(map[string][]*Relation)}
}

func (ind *Individual) String() string {
	return ind.Name
}

// AddRelation adds a relation with ind as subject.
func (ind *Individual) AddRelation(rel *Relation) {
	ind.roleRelations[rel.Role] = append(ind.roleRelations[rel.Role], rel)
}

// Relations returns the relations of the role with ind as subject.
func (ind *Individual) Relations(role string) []*Relation {
	return ind.roleRelations[role]
}

// Roles returns the sorted names of all roles ind has a relation for.
func (ind *Individual) Roles() []string {
	res := make([]string, 0, len(ind.roleRelations))
	for role := range ind.roleRelations {
		res = append(res, role)
	}
	sort.Strings(res)
	return res
}

func (ind *Individual) AddRestriction(r *Restriction) {
	ind.Restrictions = append(ind.Restrictions, r)
}

// Clone returns a copy of the individual, relations and restrictions are
// cloned as well.
func (ind *Individual) Clone() *Individual {
	res := NewIndividual(ind.Name)
	for role, rels := range ind.roleRelations {
		cp := make([]*Relation, len(rels))
		for i, rel := range rels {
			cp[i] = rel.Clone()
		}
		res.roleRelations[role] = cp
	}
	for _, r := range ind.Restrictions {
		res.Restrictions = append(res.Restrictions, r.Clone())
	}
	return res
}

// CreatedIndividual is an individual introduced while reasoning, for example
// as a filler of an existential restriction. If it is the filler of a
// concrete feature it carries the range of the feature values.
type CreatedIndividual struct {
	*Individual
	Parent *Individual
	// RoleName is the role connecting Parent and the individual.
	RoleName string
	Depth    int
	// Concrete is true for fillers of concrete features, the value is then
	// in [Lower, Upper].
	Concrete     bool
	Lower, Upper float64
	// StringValued is true for fillers of string features, their values are
	// encoded as integers.
	StringValued bool
	blockedBy    *CreatedIndividual
}

// NewCreatedIndividual returns the individual name created as role filler of
// the named individual parent, its depth is 1.
func NewCreatedIndividual(name string, parent *Individual, role string) *CreatedIndividual {
	return &CreatedIndividual{Individual: NewIndividual(name), Parent: parent,
		RoleName: role, Depth: 1}
}

// NewCreatedChild returns a new individual created as role filler of c.
func (c *CreatedIndividual) NewCreatedChild(name, role string) *CreatedIndividual {
	child := NewCreatedIndividual(name, c.Individual, role)
	child.Depth = c.Depth + 1
	return child
}

// SetConcreteRange marks the individual as concrete filler with values in
// [lower, upper].
func (c *CreatedIndividual) SetConcreteRange(lower, upper float64) {
	c.Concrete = true
	c.Lower, c.Upper = lower, upper
}

// Block marks c as blocked by the ancestor b.
func (c *CreatedIndividual) Block(b *CreatedIndividual) {
	c.blockedBy = b
}

func (c *CreatedIndividual) Unblock() {
	c.blockedBy = nil
}

func (c *CreatedIndividual) IsBlocked() bool {
	return c.blockedBy != nil
}

// BlockedBy returns the blocking individual or nil.
func (c *CreatedIndividual) BlockedBy() *CreatedIndividual {
	return c.blockedBy
}
