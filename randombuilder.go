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
	"math/rand"
)

// RandomConceptBuilder generates random concepts built from atomic concepts,
// ⊤, ⊥, negation, conjunction, disjunction and the quantifiers. It's used to
// test properties of the normal form.
type RandomConceptBuilder struct {
	NumConceptNames uint
	NumRoles        uint
	MaxDepth        uint
	// MaxOperands is the maximal number of operands of a conjunction or
	// disjunction, at least 2 are used.
	MaxOperands uint
	Rand        *rand.Rand
}

// NewRandomConceptBuilder returns a builder using a random source with the
// given seed.
func NewRandomConceptBuilder(numConceptNames, numRoles, maxDepth uint, seed int64) *RandomConceptBuilder {
	return &RandomConceptBuilder{NumConceptNames: numConceptNames, NumRoles: numRoles,
		MaxDepth: maxDepth, MaxOperands: 3, Rand: rand.New(rand.NewSource(seed))}
}

func (b *RandomConceptBuilder) atomic() Concept {
	// ⊤ and ⊥ get the same probability as one name
	n := b.Rand.Intn(int(b.NumConceptNames) + 2)
	switch n {
	case int(b.NumConceptNames):
		return Top
	case int(b.NumConceptNames) + 1:
		return Bottom
	default:
		return NewAtomicConcept(fmt.Sprintf("A%d", n))
	}
}

func (b *RandomConceptBuilder) role() string {
	return fmt.Sprintf("r%d", b.Rand.Intn(int(b.NumRoles)))
}

// Generate returns a random concept in the semantics sem, built through the
// normalizing constructors And, Or and Not.
func (b *RandomConceptBuilder) Generate(sem Semantics) (Concept, error) {
	return b.generate(sem, b.MaxDepth)
}

func (b *RandomConceptBuilder) generate(sem Semantics, depth uint) (Concept, error) {
	if depth == 0 || b.Rand.Intn(4) == 0 {
		return b.atomic(), nil
	}
	choices := 3
	if b.NumRoles > 0 {
		choices = 5
	}
	switch b.Rand.Intn(choices) {
	case 0:
		c, err := b.generate(sem, depth-1)
		if err != nil {
			return nil, err
		}
		return Not(c)
	case 1, 2:
		max := int(b.MaxOperands)
		if max < 2 {
			max = 2
		}
		n := 2 + b.Rand.Intn(max-1)
		cs := make([]Concept, n)
		for i := range cs {
			c, err := b.generate(sem, depth-1)
			if err != nil {
				return nil, err
			}
			cs[i] = c
		}
		if b.Rand.Intn(2) == 0 {
			return sem.And(cs...)
		}
		return sem.Or(cs...)
	case 3:
		c, err := b.generate(sem, depth-1)
		if err != nil {
			return nil, err
		}
		return NewAll(b.role(), c), nil
	default:
		c, err := b.generate(sem, depth-1)
		if err != nil {
			return nil, err
		}
		return NewSome(b.role(), c), nil
	}
}

// GenerateMany returns n random concepts.
func (b *RandomConceptBuilder) GenerateMany(sem Semantics, n int) ([]Concept, error) {
	res := make([]Concept, n)
	for i := range res {
		c, err := b.Generate(sem)
		if err != nil {
			return nil, err
		}
		res[i] = c
	}
	return res, nil
}
