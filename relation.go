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
	"log/slog"

	"github.com/FabianWe/fuzzydl/lp"
)

// Relation is a fuzzy role assertion (a, b) : r ≥ d.
type Relation struct {
	Role            string
	Subject, Object *Individual
	Degree          lp.Degree
}

func NewRelation(role string, subject, object *Individual, d lp.Degree) *Relation {
	return &Relation{Role: role, Subject: subject, Object: object, Degree: d}
}

// NameWithoutDegree returns "(a,b):r", the name of the variable for the
// degree of the relation.
func (r *Relation) NameWithoutDegree() string {
	return RoleName(r.Subject.Name, r.Object.Name, r.Role)
}

func (r *Relation) String() string {
	return fmt.Sprintf("%s >= %v", r.NameWithoutDegree(), r.Degree)
}

func (r *Relation) Clone() *Relation {
	return &Relation{Role: r.Role, Subject: r.Subject, Object: r.Object,
		Degree: r.Degree.Clone()}
}

// RoleName returns the name for the degree of the role r between a and b.
func RoleName(a, b, role string) string {
	return "(" + a + "," + b + "):" + role
}

// RoleIndex stores the relations of a knowledge base per role, both in
// direction subject → object and object → subject.
type RoleIndex struct {
	mapping        map[string]map[string]map[string]*Relation
	reverseMapping map[string]map[string]map[string]*Relation
}

func NewRoleIndex() *RoleIndex {
	return &RoleIndex{
		mapping:        make(map[string]map[string]map[string]*Relation),
		reverseMapping: make(map[string]map[string]map[string]*Relation),
	}
}

func addToIndex(m map[string]map[string]map[string]*Relation, role, first, second string,
	rel *Relation) bool {
	byRole, has := m[role]
	if !has {
		byRole = make(map[string]map[string]*Relation)
		m[role] = byRole
	}
	inner, has := byRole[first]
	if !has {
		inner = make(map[string]*Relation)
		byRole[first] = inner
	}
	oldLen := len(inner)
	inner[second] = rel
	return len(inner) != oldLen
}

// Add adds the relation and returns true if no relation for the same role,
// subject and object existed before. An existing relation is replaced.
func (idx *RoleIndex) Add(rel *Relation) bool {
	first := addToIndex(idx.mapping, rel.Role, rel.Subject.Name, rel.Object.Name, rel)
	second := addToIndex(idx.reverseMapping, rel.Role, rel.Object.Name, rel.Subject.Name, rel)
	if first != second {
		slog.Warn("role index mappings not consistent", "relation", rel.String())
		return false
	}
	return first
}

// Get returns the relation (a, b) : r or nil.
func (idx *RoleIndex) Get(role, a, b string) *Relation {
	return idx.mapping[role][a][b]
}

func (idx *RoleIndex) Contains(role, a, b string) bool {
	return idx.Get(role, a, b) != nil
}

func sortedKeys(m map[string]*Relation) []string {
	keys := make(map[string]struct{}, len(m))
	for k := range m {
		keys[k] = struct{}{}
	}
	return InsertSorted(nil, keys)
}

// Successors returns the sorted names of all b with (a, b) : r.
func (idx *RoleIndex) Successors(role, a string) []string {
	return sortedKeys(idx.mapping[role][a])
}

// Predecessors returns the sorted names of all a with (a, b) : r.
func (idx *RoleIndex) Predecessors(role, b string) []string {
	return sortedKeys(idx.reverseMapping[role][b])
}

// Relations returns all relations of the role with subject a, sorted by the
// name of the object.
func (idx *RoleIndex) Relations(role, a string) []*Relation {
	inner := idx.mapping[role][a]
	res := make([]*Relation, 0, len(inner))
	for _, b := range sortedKeys(inner) {
		res = append(res, inner[b])
	}
	return res
}

// All returns all relations sorted by their names.
func (idx *RoleIndex) All() []*Relation {
	byName := make(map[string]*Relation)
	for _, byRole := range idx.mapping {
		for _, inner := range byRole {
			for _, rel := range inner {
				byName[rel.NameWithoutDegree()] = rel
			}
		}
	}
	res := make([]*Relation, 0, len(byName))
	for _, name := range sortedKeys(byName) {
		res = append(res, byName[name])
	}
	return res
}

// Clone returns a copy of the index with cloned relations.
func (idx *RoleIndex) Clone() *RoleIndex {
	res := NewRoleIndex()
	for _, rel := range idx.All() {
		res.Add(rel.Clone())
	}
	return res
}
