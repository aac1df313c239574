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

package milp

import "sort"

// ShowVariables stores which variables are reported in a Solution and under
// which label.
// A variable is shown if it was added explicitly, if it's the degree of a
// shown concept (a variable named "ind:C") or if all variables are shown.
type ShowVariables struct {
	labels   map[string]string
	concepts map[string]struct{}
	all      bool
}

func NewShowVariables() *ShowVariables {
	return &ShowVariables{
		labels:   make(map[string]string),
		concepts: make(map[string]struct{}),
	}
}

// ShowVariable reports the variable with the given name, label is used as
// key in the solution. An empty label means the variable name.
func (s *ShowVariables) ShowVariable(name, label string) {
	if label == "" {
		label = name
	}
	s.labels[name] = label
}

// ShowConcept reports the degrees of all individuals in the concept.
func (s *ShowVariables) ShowConcept(concept string) {
	s.concepts[concept] = struct{}{}
}

// ShowAll reports every variable.
func (s *ShowVariables) ShowAll(all bool) {
	s.all = all
}

// Label returns the label of the variable and true if it is shown.
// Concept names are read from the Helper since variable names alone are
// ambiguous (concept names may contain colons).
func (s *ShowVariables) Label(name, concept string) (string, bool) {
	if label, has := s.labels[name]; has {
		return label, true
	}
	if concept != "" {
		if _, has := s.concepts[concept]; has {
			return name, true
		}
	}
	if s.all {
		return name, true
	}
	return "", false
}

// Shown returns the names of the explicitly shown variables, sorted.
func (s *ShowVariables) Shown() []string {
	res := make([]string, 0, len(s.labels))
	for name := range s.labels {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (s *ShowVariables) Clone() *ShowVariables {
	res := NewShowVariables()
	for k, v := range s.labels {
		res.labels[k] = v
	}
	copySet(res.concepts, s.concepts)
	res.all = s.all
	return res
}
