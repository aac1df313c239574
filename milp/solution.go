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

import (
	"fmt"
	"sort"
	"strings"

	"github.com/FabianWe/fuzzydl/lp"
)

// Solution is the result of optimizing a model: either the optimal value
// together with the values of the shown variables or the marker for an
// inconsistent knowledge base.
type Solution struct {
	consistent bool
	value      float64
	shown      map[string]float64
}

// NewSolution returns a consistent solution.
func NewSolution(value float64, shown map[string]float64) *Solution {
	if shown == nil {
		shown = make(map[string]float64)
	}
	return &Solution{consistent: true, value: value, shown: shown}
}

// InconsistentSolution returns the solution of an infeasible model.
func InconsistentSolution() *Solution {
	return &Solution{shown: make(map[string]float64)}
}

func (s *Solution) IsConsistent() bool {
	return s.consistent
}

// Value returns the optimal value, it's 0 for inconsistent solutions.
func (s *Solution) Value() float64 {
	return s.value
}

// Shown returns a copy of the shown variables.
func (s *Solution) Shown() map[string]float64 {
	res := make(map[string]float64, len(s.shown))
	for k, v := range s.shown {
		res[k] = v
	}
	return res
}

// ShownValue returns the value of a shown variable.
func (s *Solution) ShownValue(label string) (float64, bool) {
	v, has := s.shown[label]
	return v, has
}

func (s *Solution) String() string {
	if !s.consistent {
		return "Is consistent? No"
	}
	var b strings.Builder
	b.WriteString(lp.FormatFloat(s.value))
	labels := make([]string, 0, len(s.shown))
	for label := range s.shown {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	for _, label := range labels {
		fmt.Fprintf(&b, "\n%s = %s", label, lp.FormatFloat(s.shown[label]))
	}
	return b.String()
}
