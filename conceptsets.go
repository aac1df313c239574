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

import "sort"

// ConceptSet is a set of concepts, identified by their canonical names.
type ConceptSet struct {
	m map[string]Concept
}

// NewConceptSet returns a set containing the given concepts.
func NewConceptSet(cs ...Concept) *ConceptSet {
	s := &ConceptSet{m: make(map[string]Concept, len(cs))}
	for _, c := range cs {
		s.Add(c)
	}
	return s
}

func (s *ConceptSet) Len() int {
	return len(s.m)
}

func (s *ConceptSet) Contains(c Concept) bool {
	_, has := s.m[c.String()]
	return has
}

func (s *ConceptSet) ContainsName(name string) bool {
	_, has := s.m[name]
	return has
}

// Add adds c and returns true if c was not already present.
func (s *ConceptSet) Add(c Concept) bool {
	oldLen := len(s.m)
	name := c.String()
	if _, has := s.m[name]; !has {
		s.m[name] = c
	}
	return oldLen != len(s.m)
}

// IsSubset tests if s ⊆ other.
func (s *ConceptSet) IsSubset(other *ConceptSet) bool {
	if len(s.m) > len(other.m) {
		return false
	}
	for name := range s.m {
		if _, has := other.m[name]; !has {
			return false
		}
	}
	return true
}

// Equals checks if s = other.
func (s *ConceptSet) Equals(other *ConceptSet) bool {
	return len(s.m) == len(other.m) && s.IsSubset(other)
}

// Slice returns the elements of s sorted by name.
func (s *ConceptSet) Slice() []Concept {
	names := make([]string, 0, len(s.m))
	for name := range s.m {
		names = append(names, name)
	}
	sort.Strings(names)
	res := make([]Concept, len(names))
	for i, name := range names {
		res[i] = s.m[name]
	}
	return res
}
