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
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/FabianWe/fuzzydl/domains"
)

// ErrSyntax is returned by ParseConcept for malformed input.
var ErrSyntax = errors.New("concept syntax error")

// Definitions holds the named concrete concepts and modifiers a parsed
// concept may refer to. A symbol that is neither is an atomic concept.
type Definitions struct {
	concrete  map[string]*ConcreteConcept
	modifiers map[string]domains.Modifier
}

func NewDefinitions() *Definitions {
	return &Definitions{
		concrete:  make(map[string]*ConcreteConcept),
		modifiers: make(map[string]domains.Modifier),
	}
}

// AddConcrete registers a concrete concept, an existing one with the same
// name is replaced.
func (defs *Definitions) AddConcrete(c *ConcreteConcept) {
	defs.concrete[c.Name] = c
}

func (defs *Definitions) AddModifier(m domains.Modifier) {
	defs.modifiers[m.Name()] = m
}

// Concrete returns the concrete concept with the given name or nil.
func (defs *Definitions) Concrete(name string) *ConcreteConcept {
	if defs == nil {
		return nil
	}
	return defs.concrete[name]
}

// Modifier returns the modifier with the given name or nil.
func (defs *Definitions) Modifier(name string) domains.Modifier {
	if defs == nil {
		return nil
	}
	return defs.modifiers[name]
}

// ConcreteNames returns the sorted names of all concrete concepts.
func (defs *Definitions) ConcreteNames() []string {
	res := make([]string, 0, len(defs.concrete))
	for name := range defs.concrete {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

// Clone returns a copy of defs, the concepts and modifiers are shared.
func (defs *Definitions) Clone() *Definitions {
	res := NewDefinitions()
	for name, c := range defs.concrete {
		res.concrete[name] = c
	}
	for name, m := range defs.modifiers {
		res.modifiers[name] = m
	}
	return res
}

//// Tokenizer ////

type sexprToken int

const (
	errorToken sexprToken = iota
	eofToken
	openParen
	closeParen
	openBracket
	closeBracket
	openCurly
	closeCurly
	stringToken
	symbolToken
)

func (t sexprToken) String() string {
	switch t {
	case errorToken:
		return "ERROR"
	case eofToken:
		return "EOF"
	case openParen:
		return "("
	case closeParen:
		return ")"
	case openBracket:
		return "["
	case closeBracket:
		return "]"
	case openCurly:
		return "{"
	case closeCurly:
		return "}"
	case stringToken:
		return "STRING"
	case symbolToken:
		return "SYMBOL"
	default:
		return fmt.Sprintf("UNKNOWN (%d)", t)
	}
}

type sexprMatch struct {
	token sexprToken
	value string
	pos   int
}

func (m sexprMatch) String() string {
	if m.token == symbolToken || m.token == stringToken {
		return fmt.Sprintf("%v %q at %d", m.token, m.value, m.pos)
	}
	return fmt.Sprintf("%v at %d", m.token, m.pos)
}

var delimiterTokens = map[byte]sexprToken{
	'(': openParen, ')': closeParen,
	'[': openBracket, ']': closeBracket,
	'{': openCurly, '}': closeCurly,
}

func isDelimiter(r byte) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', '"':
		return true
	default:
		return unicode.IsSpace(rune(r))
	}
}

// tokenize splits the input into tokens, the last one is always eofToken.
func tokenize(s string) ([]sexprMatch, error) {
	var res []sexprMatch
	i := 0
	for i < len(s) {
		r := s[i]
		switch {
		case unicode.IsSpace(rune(r)):
			i++
		case delimiterTokens[r] != errorToken:
			res = append(res, sexprMatch{token: delimiterTokens[r], value: string(r), pos: i})
			i++
		case r == '"':
			end := i + 1
			for end < len(s) && s[end] != '"' {
				if s[end] == '\\' {
					end++
				}
				end++
			}
			if end >= len(s) {
				return nil, fmt.Errorf("%w: unterminated string at %d", ErrSyntax, i)
			}
			value, err := strconv.Unquote(s[i : end+1])
			if err != nil {
				return nil, fmt.Errorf("%w: invalid string at %d: %v", ErrSyntax, i, err)
			}
			res = append(res, sexprMatch{token: stringToken, value: value, pos: i})
			i = end + 1
		default:
			start := i
			for i < len(s) && !isDelimiter(s[i]) {
				i++
			}
			res = append(res, sexprMatch{token: symbolToken, value: s[start:i], pos: start})
		}
	}
	res = append(res, sexprMatch{token: eofToken, pos: len(s)})
	return res, nil
}

//// Parser ////

type conceptParser struct {
	tokens []sexprMatch
	next   int
	defs   *Definitions
}

// ParseConcept reads a concept in the syntax of the canonical names, so
// ParseConcept(c.String()) returns a concept equal to c. Symbols are
// resolved against defs: names of concrete concepts are concrete concepts,
// a modifier name in head position applies the modifier, every other symbol
// is an atomic concept. defs may be nil.
//
// The concept is built as written, it is not normalized.
func ParseConcept(s string, defs *Definitions) (Concept, error) {
	tokens, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	p := &conceptParser{tokens: tokens, defs: defs}
	c, err := p.concept()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.token != eofToken {
		return nil, fmt.Errorf("%w: unexpected %v after concept", ErrSyntax, tok)
	}
	return c, nil
}

func (p *conceptParser) peek() sexprMatch {
	return p.tokens[p.next]
}

func (p *conceptParser) pop() sexprMatch {
	tok := p.tokens[p.next]
	if tok.token != eofToken {
		p.next++
	}
	return tok
}

func (p *conceptParser) expect(t sexprToken) (sexprMatch, error) {
	tok := p.pop()
	if tok.token != t {
		return tok, fmt.Errorf("%w: expected %v, got %v", ErrSyntax, t, tok)
	}
	return tok, nil
}

func (p *conceptParser) symbol() (string, error) {
	tok, err := p.expect(symbolToken)
	return tok.value, err
}

func (p *conceptParser) number() (float64, error) {
	tok, err := p.expect(symbolToken)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(tok.value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: expected number, got %v", ErrSyntax, tok)
	}
	return f, nil
}

// numbers parses "(w1 w2 ...)".
func (p *conceptParser) numbers() ([]float64, error) {
	if _, err := p.expect(openParen); err != nil {
		return nil, err
	}
	var res []float64
	for p.peek().token != closeParen {
		f, err := p.number()
		if err != nil {
			return nil, err
		}
		res = append(res, f)
	}
	p.pop()
	return res, nil
}

// conceptList parses "(C1 C2 ...)".
func (p *conceptParser) conceptList() ([]Concept, error) {
	if _, err := p.expect(openParen); err != nil {
		return nil, err
	}
	res, err := p.conceptsUntilClose()
	if err != nil {
		return nil, err
	}
	p.pop()
	return res, nil
}

// conceptsUntilClose parses concepts up to (excluding) the next ")".
func (p *conceptParser) conceptsUntilClose() ([]Concept, error) {
	var res []Concept
	for p.peek().token != closeParen {
		if p.peek().token == eofToken {
			return nil, fmt.Errorf("%w: unexpected end of input", ErrSyntax)
		}
		c, err := p.concept()
		if err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, nil
}

// individuals parses "{a b ...}".
func (p *conceptParser) individuals() ([]string, error) {
	if _, err := p.expect(openCurly); err != nil {
		return nil, err
	}
	var res []string
	for p.peek().token != closeCurly {
		name, err := p.symbol()
		if err != nil {
			return nil, err
		}
		res = append(res, name)
	}
	p.pop()
	return res, nil
}

func (p *conceptParser) quantifier() (*ConcreteConcept, error) {
	name, err := p.symbol()
	if err != nil {
		return nil, err
	}
	q := p.defs.Concrete(name)
	if q == nil {
		return nil, fmt.Errorf("%w: undefined fuzzy quantifier %s", ErrSyntax, name)
	}
	return q, nil
}

func (p *conceptParser) concept() (Concept, error) {
	tok := p.pop()
	switch tok.token {
	case stringToken:
		return NewStringConcept(tok.value), nil
	case symbolToken:
		switch tok.value {
		case "*top*":
			return Top, nil
		case "*bottom*":
			return Bottom, nil
		}
		if c := p.defs.Concrete(tok.value); c != nil {
			return c, nil
		}
		return NewAtomicConcept(tok.value), nil
	case openCurly:
		name, err := p.symbol()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(closeCurly); err != nil {
			return nil, err
		}
		return NewNominalConcept(name), nil
	case openParen:
		c, err := p.compound()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(closeParen); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unexpected %v", ErrSyntax, tok)
	}
}

// compound parses the content of a parenthesized concept, the opening
// parenthesis is already consumed and the closing one is left.
func (p *conceptParser) compound() (Concept, error) {
	head := p.pop()
	if head.token == openBracket {
		return p.threshold()
	}
	if head.token != symbolToken {
		return nil, fmt.Errorf("%w: expected operator, got %v", ErrSyntax, head)
	}
	if w, err := strconv.ParseFloat(head.value, 64); err == nil {
		c, err := p.concept()
		if err != nil {
			return nil, err
		}
		return NewWeighted(w, c)
	}
	if m := p.defs.Modifier(head.value); m != nil {
		c, err := p.concept()
		if err != nil {
			return nil, err
		}
		return NewModifiedConcept(m, c), nil
	}
	kind, err := ParseKind(head.value)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown operator %v", ErrSyntax, head)
	}
	switch kind {
	case ComplementKind:
		c, err := p.concept()
		if err != nil {
			return nil, err
		}
		if n, ok := c.(*NominalConcept); ok {
			return NewNegatedNominal(n.Individual), nil
		}
		return newComplement(c), nil
	case AndKind, OrKind, GoedelAndKind, GoedelOrKind, LukasiewiczAndKind, LukasiewiczOrKind:
		cs, err := p.conceptsUntilClose()
		if err != nil {
			return nil, err
		}
		return newOperator(kind, cs), nil
	case AllKind, SomeKind:
		role, err := p.symbol()
		if err != nil {
			return nil, err
		}
		c, err := p.concept()
		if err != nil {
			return nil, err
		}
		return newQuantified(kind, role, c), nil
	case SelfKind:
		role, err := p.symbol()
		if err != nil {
			return nil, err
		}
		return NewSelfConcept(role), nil
	case HasValueKind:
		role, err := p.symbol()
		if err != nil {
			return nil, err
		}
		ind, err := p.symbol()
		if err != nil {
			return nil, err
		}
		return NewHasValueConcept(role, ind), nil
	case AtLeastValueKind, AtMostValueKind, ExactValueKind:
		feature, err := p.symbol()
		if err != nil {
			return nil, err
		}
		v, err := p.number()
		if err != nil {
			return nil, err
		}
		return NewValueConcept(kind, feature, v)
	case GoedelImpliesKind, LukasiewiczImpliesKind, KleeneDienesImpliesKind, ZadehImpliesKind:
		c, err := p.concept()
		if err != nil {
			return nil, err
		}
		d, err := p.concept()
		if err != nil {
			return nil, err
		}
		return NewImplies(kind, c, d)
	case WMinKind, WMaxKind, WSumKind, WSumZeroKind:
		return p.weightedAggregate(kind)
	case OWAKind, ChoquetKind, SugenoKind, QuasiSugenoKind:
		ws, err := p.numbers()
		if err != nil {
			return nil, err
		}
		cs, err := p.conceptList()
		if err != nil {
			return nil, err
		}
		if kind == OWAKind {
			return NewOWA(ws, cs)
		}
		return NewFuzzyIntegral(kind, ws, cs)
	case QuantifiedOWAKind:
		q, err := p.quantifier()
		if err != nil {
			return nil, err
		}
		cs, err := p.conceptsUntilClose()
		if err != nil {
			return nil, err
		}
		return NewQuantifiedOWA(q, cs)
	case SigmaKind:
		role, err := p.symbol()
		if err != nil {
			return nil, err
		}
		c, err := p.concept()
		if err != nil {
			return nil, err
		}
		inds, err := p.individuals()
		if err != nil {
			return nil, err
		}
		q, err := p.quantifier()
		if err != nil {
			return nil, err
		}
		return NewSigmaConcept(role, c, inds, q)
	default:
		return nil, fmt.Errorf("%w: %v can't be used as operator", ErrSyntax, head)
	}
}

// threshold parses "[>= w] C" or "[<= w] C", the "[" is already consumed.
func (p *conceptParser) threshold() (Concept, error) {
	op, err := p.symbol()
	if err != nil {
		return nil, err
	}
	var kind Kind
	switch op {
	case ">=":
		kind = PosThresholdKind
	case "<=":
		kind = NegThresholdKind
	default:
		return nil, fmt.Errorf("%w: unknown threshold %q", ErrSyntax, op)
	}
	w, err := p.number()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(closeBracket); err != nil {
		return nil, err
	}
	c, err := p.concept()
	if err != nil {
		return nil, err
	}
	return NewThreshold(kind, w, c)
}

// weightedAggregate parses "(w1 C1) (w2 C2) ...".
func (p *conceptParser) weightedAggregate(kind Kind) (Concept, error) {
	var ws []float64
	var cs []Concept
	for p.peek().token == openParen {
		p.pop()
		w, err := p.number()
		if err != nil {
			return nil, err
		}
		c, err := p.concept()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(closeParen); err != nil {
			return nil, err
		}
		ws = append(ws, w)
		cs = append(cs, c)
	}
	return NewWeightedAggregate(kind, ws, cs)
}

// MustParseConcept is like ParseConcept but panics on errors, it's intended
// for concepts in tests and examples.
func MustParseConcept(s string, defs *Definitions) Concept {
	c, err := ParseConcept(s, defs)
	if err != nil {
		panic(fmt.Sprintf("can't parse %q: %v", strings.TrimSpace(s), err))
	}
	return c
}
