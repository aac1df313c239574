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
	"math"
	"strconv"
	"sync"
)

// RoundTo rounds x to the given number of decimal digits.
func RoundTo(x float64, digits int) float64 {
	if digits < 0 {
		return x
	}
	p := math.Pow(10, float64(digits))
	res := math.Round(x*p) / p
	if res == 0 {
		// avoid -0
		return 0
	}
	return res
}

// IntDistributor is a type used to generate new uint values.
// The MILP compilation requires that new variables are introduced, we use
// this distributor to generate fresh names.
// This means that the Next method can be used concurrently from different
// goroutines.
type IntDistributor struct {
	next  uint
	mutex *sync.Mutex
}

// NewIntDistributor returns a new distributor s.t. the Next method first
// produces the value next.
func NewIntDistributor(next uint) *IntDistributor {
	return &IntDistributor{next: next, mutex: new(sync.Mutex)}
}

// Next returns the next integer value. That is the first element produced
// is the provided next value, then next + 1 etc.
//
// It is safe to use concurrently from different goroutines.
func (dist *IntDistributor) Next() uint {
	dist.mutex.Lock()
	defer dist.mutex.Unlock()
	next := dist.next
	dist.next++
	return next
}

// NextName returns prefix followed by the next value.
func (dist *IntDistributor) NextName(prefix string) string {
	return prefix + strconv.FormatUint(uint64(dist.Next()), 10)
}

// Peek returns the value Next would return without consuming it.
func (dist *IntDistributor) Peek() uint {
	dist.mutex.Lock()
	defer dist.mutex.Unlock()
	return dist.next
}

// Clone returns a new distributor starting at the same value.
func (dist *IntDistributor) Clone() *IntDistributor {
	return NewIntDistributor(dist.Peek())
}
