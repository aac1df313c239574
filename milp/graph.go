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
)

// Graph is an undirected graph over the vertices 0, ..., n-1.
// Succ writes all neighbours of vertex to ch and closes ch afterwards.
type Graph interface {
	Init(numVertices int)
	AddEdge(source, target int) bool
	Succ(vertex int, ch chan<- int)
	NumVertices() int
}

// SetGraph stores the neighbours of each vertex in a set.
type SetGraph struct {
	graph []map[int]struct{}
}

func NewSetGraph() *SetGraph {
	return &SetGraph{graph: nil}
}

func (g *SetGraph) String() string {
	strs := make([]string, len(g.graph))
	for i, s := range g.graph {
		succs := make([]string, 0, len(s))
		for _, v := range sortedVertices(s) {
			succs = append(succs, fmt.Sprint(v))
		}
		strs[i] = fmt.Sprintf("%d ↦ {%s}", i, strings.Join(succs, ", "))
	}
	return fmt.Sprintf("{ %s }", strings.Join(strs, ",\n"))
}

func (g *SetGraph) Init(numVertices int) {
	g.graph = make([]map[int]struct{}, numVertices)
	for i := 0; i < numVertices; i++ {
		g.graph[i] = make(map[int]struct{})
	}
}

func (g *SetGraph) NumVertices() int {
	return len(g.graph)
}

// AddEdge adds the undirected edge between source and target and returns
// true if it's new.
func (g *SetGraph) AddEdge(source, target int) bool {
	m := g.graph[source]
	oldLen := len(m)
	m[target] = struct{}{}
	g.graph[target][source] = struct{}{}
	return oldLen != len(m)
}

func (g *SetGraph) Succ(vertex int, ch chan<- int) {
	for _, succ := range sortedVertices(g.graph[vertex]) {
		ch <- succ
	}
	close(ch)
}

func sortedVertices(s map[int]struct{}) []int {
	res := make([]int, 0, len(s))
	for v := range s {
		res = append(res, v)
	}
	sort.Ints(res)
	return res
}

// Components computes the connected components of g with a breadth first
// search. Each component is sorted and the components are sorted by their
// smallest vertex.
func Components(g Graph) [][]int {
	n := g.NumVertices()
	visited := make([]bool, n)
	var res [][]int
	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		visited[start] = true
		component := []int{start}
		queue := []int{start}
		for len(queue) > 0 {
			next := queue[0]
			queue = queue[1:]
			ch := make(chan int, 1)
			go g.Succ(next, ch)
			for v := range ch {
				if !visited[v] {
					visited[v] = true
					component = append(component, v)
					queue = append(queue, v)
				}
			}
		}
		sort.Ints(component)
		res = append(res, component)
	}
	return res
}
