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
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/FabianWe/fuzzydl/lp"
)

// LPNames maps model variables to the names used in LP files.
// Variable names of the model may contain characters LP files don't allow
// (spaces, colons, parentheses) so variables are written as x0, x1, ... in
// the order of Model.Variables.
type LPNames struct {
	names []string
	index map[string]int
}

func NewLPNames(m *Model) *LPNames {
	res := &LPNames{names: make([]string, len(m.Variables)), index: make(map[string]int, len(m.Variables))}
	for i, v := range m.Variables {
		res.names[i] = v.Name
		res.index[v.Name] = i
	}
	return res
}

// LPName returns the LP file name of a model variable.
func (n *LPNames) LPName(name string) string {
	return "x" + strconv.Itoa(n.index[name])
}

// ModelName returns the model variable of an LP file name, or false if the
// name is not of the form x<i>.
func (n *LPNames) ModelName(lpName string) (string, bool) {
	if len(lpName) < 2 || lpName[0] != 'x' {
		return "", false
	}
	i, err := strconv.Atoi(lpName[1:])
	if err != nil || i < 0 || i >= len(n.names) {
		return "", false
	}
	return n.names[i], true
}

// ModelIndex returns the model variable of a column number (starting at 1).
func (n *LPNames) ModelIndex(col int) (string, bool) {
	if col < 1 || col > len(n.names) {
		return "", false
	}
	return n.names[col-1], true
}

func lpCoeff(first bool, c float64) string {
	switch {
	case first && c < 0:
		return "- " + lp.FormatFloat(-c) + " "
	case first:
		return lp.FormatFloat(c) + " "
	case c < 0:
		return " - " + lp.FormatFloat(-c) + " "
	default:
		return " + " + lp.FormatFloat(c) + " "
	}
}

// WriteLP writes the model in CPLEX LP format. m must not contain
// semi-continuous variables (see Model.Lower).
// Every variable occurs in the objective (with coefficient 0 if necessary)
// so that solvers number the columns in model order. The constant of the
// objective is not written.
func WriteLP(w io.Writer, m *Model, names *LPNames) error {
	bw := bufio.NewWriter(w)
	coeffs := make(map[string]float64, len(m.Objective.Terms))
	for _, t := range m.Objective.Terms {
		coeffs[t.Var.Name] = t.Coeff
	}
	fmt.Fprintln(bw, "Minimize")
	bw.WriteString(" obj: ")
	for i, v := range m.Variables {
		bw.WriteString(lpCoeff(i == 0, coeffs[v.Name]))
		bw.WriteString(names.LPName(v.Name))
	}
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Subject To")
	row := 0
	for _, c := range m.Constraints {
		if c.IsConstant() {
			continue
		}
		fmt.Fprintf(bw, " c%d: ", row)
		row++
		for i, t := range c.Expr.Terms {
			bw.WriteString(lpCoeff(i == 0, t.Coeff))
			bw.WriteString(names.LPName(t.Var.Name))
		}
		fmt.Fprintf(bw, " %v %s\n", c.Op, lp.FormatFloat(-c.Expr.Constant))
	}
	fmt.Fprintln(bw, "Bounds")
	var generals, binaries []string
	for _, v := range m.Variables {
		name := names.LPName(v.Name)
		switch v.Type {
		case lp.Binary:
			binaries = append(binaries, name)
			continue
		case lp.Integer:
			generals = append(generals, name)
		}
		switch {
		case math.IsInf(v.Lower, -1) && math.IsInf(v.Upper, 1):
			fmt.Fprintf(bw, " %s free\n", name)
		case math.IsInf(v.Upper, 1):
			fmt.Fprintf(bw, " %s >= %s\n", name, lp.FormatFloat(v.Lower))
		case math.IsInf(v.Lower, -1):
			fmt.Fprintf(bw, " -inf <= %s <= %s\n", name, lp.FormatFloat(v.Upper))
		default:
			fmt.Fprintf(bw, " %s <= %s <= %s\n", lp.FormatFloat(v.Lower), name, lp.FormatFloat(v.Upper))
		}
	}
	if len(generals) > 0 {
		fmt.Fprintln(bw, "General")
		for _, name := range generals {
			fmt.Fprintf(bw, " %s\n", name)
		}
	}
	if len(binaries) > 0 {
		fmt.Fprintln(bw, "Binary")
		for _, name := range binaries {
			fmt.Fprintf(bw, " %s\n", name)
		}
	}
	fmt.Fprintln(bw, "End")
	return bw.Flush()
}
