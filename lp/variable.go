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

// Package lp contains the values a mixed integer linear program is built
// from: typed variables, linear expressions over them, inequations and the
// truth degrees of fuzzy assertions.
package lp

import (
	"fmt"
	"math"
	"strconv"
)

// VarType is the type of a MILP variable.
type VarType int

const (
	// Binary variables take the values 0 and 1.
	Binary VarType = iota
	// Integer variables take integer values between their bounds.
	Integer
	// Continuous variables take any value between their bounds.
	Continuous
	// SemiContinuous variables are either 0 or inside their bounds.
	SemiContinuous
)

func (t VarType) String() string {
	switch t {
	case Binary:
		return "binary"
	case Integer:
		return "integer"
	case Continuous:
		return "continuous"
	case SemiContinuous:
		return "semi-continuous"
	default:
		return fmt.Sprintf("VarType(%d)", t)
	}
}

// ParseVarType is the inverse of VarType.String.
func ParseVarType(s string) (VarType, error) {
	for t := Binary; t <= SemiContinuous; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return -1, fmt.Errorf("unknown variable type %q", s)
}

// IsInteger returns true for binary and integer variables.
func (t VarType) IsInteger() bool {
	return t == Binary || t == Integer
}

// Variable is a decision variable of a MILP, it is identified by its name.
// Two variables with the same name must never be used in the same model,
// the milp.Helper makes sure that each name is mapped to exactly one
// variable.
type Variable struct {
	Name         string
	Type         VarType
	Lower, Upper float64
}

// NewVariable returns a new variable with the default bounds of its type:
// [0, 1] for binary, continuous and semi-continuous variables and [0, ∞)
// for integer variables.
func NewVariable(name string, t VarType) *Variable {
	v := &Variable{Name: name, Type: t, Lower: 0, Upper: 1}
	if t == Integer {
		v.Upper = math.Inf(1)
	}
	return v
}

// SetType changes the type of the variable, the bounds are reset to [0, 1]
// when the new type is binary.
func (v *Variable) SetType(t VarType) {
	v.Type = t
	if t == Binary {
		v.Lower, v.Upper = 0, 1
	}
}

// SetBounds sets the lower and upper bound of the variable.
func (v *Variable) SetBounds(lower, upper float64) {
	v.Lower, v.Upper = lower, upper
}

// Clone returns a copy of the variable.
func (v *Variable) Clone() *Variable {
	c := *v
	return &c
}

func (v *Variable) String() string {
	return v.Name
}

// Describe returns the name, type and bounds of v, used in debug output.
func (v *Variable) Describe() string {
	return fmt.Sprintf("%s: %v [%s, %s]", v.Name, v.Type,
		FormatFloat(v.Lower), FormatFloat(v.Upper))
}

// FormatFloat is the float formatting used in all textual representations of
// expressions and degrees.
func FormatFloat(f float64) string {
	switch {
	case f == 0:
		return "0"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
