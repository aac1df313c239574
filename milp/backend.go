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
	"context"
	"fmt"
	"sort"
)

// Backend solves a Model.
// Solve returns an Infeasible result (and no error) if the model has no
// solution, errors are reserved for solver failures.
type Backend interface {
	Name() string
	Solve(ctx context.Context, m *Model) (*Result, error)
}

const (
	SimplexBackendName = "simplex"
	PBBackendName      = "pb"
	CBCBackendName     = "cbc"
	GLPKBackendName    = "glpk"
)

var backendFactories = map[string]func(opts Options) Backend{
	SimplexBackendName: func(opts Options) Backend {
		return NewSimplexBackend(opts.Epsilon, opts.MaxNodes)
	},
	PBBackendName: func(opts Options) Backend {
		return NewPBBackend(opts.Precision)
	},
	CBCBackendName: func(opts Options) Backend {
		return NewCBCBackend(opts)
	},
	GLPKBackendName: func(opts Options) Backend {
		return NewGLPKBackend(opts)
	},
}

// Backends returns the names of all backends, sorted.
func Backends() []string {
	res := make([]string, 0, len(backendFactories))
	for name := range backendFactories {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// NewBackend returns the backend opts.Backend.
func NewBackend(opts Options) (Backend, error) {
	f, has := backendFactories[opts.Backend]
	if !has {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, opts.Backend, Backends())
	}
	return f(opts), nil
}
