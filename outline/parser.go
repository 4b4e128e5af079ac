// Copyright 2024 Ian Lewis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package outline

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"
)

//go:embed plover.ebnf
var ploverGrammar string

// ErrSyntax is wrapped by all parse errors.
var ErrSyntax = errors.New("syntax error")

// outputAlias is a historical name for the Outline start rule.
const outputAlias Type = "output"

// ParseError describes where parsing stopped. Offset is the farthest byte
// offset the parser reached and Expected lists what would have allowed it
// to continue.
type ParseError struct {
	Offset   int
	Expected []string
}

// Error implements [error.Error].
func (e *ParseError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%v at offset %d", ErrSyntax, e.Offset)
	}
	return fmt.Sprintf("%v at offset %d: expected %s", ErrSyntax, e.Offset, strings.Join(e.Expected, ", "))
}

// Unwrap returns ErrSyntax.
func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

// Parser parses outlines using a compiled grammar. A Parser is read-only
// after compilation and is safe for concurrent use.
type Parser struct {
	rules map[string]*rule
}

// Compile compiles the embedded Plover output grammar.
func Compile() (*Parser, error) {
	return compile(ploverGrammar)
}

func compile(src string) (*Parser, error) {
	rules, err := compileGrammar(src)
	if err != nil {
		return nil, err
	}
	for _, t := range nodeTypes {
		r, ok := rules[string(t)]
		if !ok {
			return nil, fmt.Errorf("%w: missing rule %q", ErrGrammar, t)
		}
		if r.hidden {
			return nil, fmt.Errorf("%w: rule %q must not be hidden", ErrGrammar, t)
		}
	}
	return &Parser{rules: rules}, nil
}

var defaultParser = sync.OnceValues(Compile)

// Default returns a process-wide Parser compiled from the embedded grammar.
// The grammar is compiled on first use.
func Default() *Parser {
	p, err := defaultParser()
	if err != nil {
		// The embedded grammar is fixed at build time.
		panic(err)
	}
	return p
}

// Parse parses text using the given start rule. Outline is used for whole
// dictionary outputs. The returned node is never nil. If the input could not
// be fully parsed the root node carries errors and the unconsumed input.
func (p *Parser) Parse(text string, start Type) *Node {
	if start == outputAlias {
		start = Outline
	}
	r, ok := p.rules[string(start)]
	if !ok {
		return &Node{
			typ:    start,
			errors: []*ParseError{{Expected: []string{"start rule " + strconv.Quote(string(start))}}},
			rest:   text,
		}
	}

	s := &state{input: text}
	var nodes []*Node
	end, ok := s.match(&expr{kind: exprRef, ref: r}, 0, &nodes)
	if !ok {
		return &Node{
			typ:    start,
			errors: []*ParseError{s.parseError(0)},
			rest:   text,
		}
	}

	var root *Node
	if len(nodes) == 1 && nodes[0].typ == start {
		root = nodes[0]
	} else {
		// Hidden start rules are wrapped in a node of their own.
		root = &Node{typ: start, text: text[:end], end: end, children: nodes}
	}
	if end < len(text) {
		root.rest = text[end:]
		root.errors = []*ParseError{s.parseError(end)}
	}
	return root
}

// Parse parses text as a whole outline using the default parser.
func Parse(text string) *Node {
	return Default().Parse(text, Outline)
}

// state is the per-call parsing state.
type state struct {
	input string

	// farthest is the farthest offset at which a terminal failed to match
	// and expected holds the terminals that were tried there.
	farthest int
	expected []string

	// lookahead is non-zero while matching inside & or ! predicates.
	lookahead int
}

func (s *state) fail(pos int, what string) {
	if s.lookahead > 0 {
		return
	}
	switch {
	case pos > s.farthest:
		s.farthest = pos
		s.expected = []string{what}
	case pos == s.farthest && !slices.Contains(s.expected, what):
		s.expected = append(s.expected, what)
	}
}

func (s *state) parseError(minOffset int) *ParseError {
	if s.farthest < minOffset {
		return &ParseError{Offset: minOffset, Expected: []string{"end of input"}}
	}
	return &ParseError{Offset: s.farthest, Expected: slices.Clone(s.expected)}
}

// match attempts to match e at pos. Nodes created while matching are
// appended to out. On failure out is left unchanged.
func (s *state) match(e *expr, pos int, out *[]*Node) (int, bool) {
	switch e.kind {
	case exprLiteral:
		if strings.HasPrefix(s.input[pos:], e.lit) {
			return pos + len(e.lit), true
		}
		s.fail(pos, strconv.Quote(e.lit))
		return pos, false

	case exprClass:
		if pos < len(s.input) {
			r, size := utf8.DecodeRuneInString(s.input[pos:])
			if e.class.contains(r) {
				return pos + size, true
			}
		}
		s.fail(pos, e.class.src)
		return pos, false

	case exprAny:
		if pos < len(s.input) {
			_, size := utf8.DecodeRuneInString(s.input[pos:])
			return pos + size, true
		}
		s.fail(pos, "any character")
		return pos, false

	case exprRef:
		if e.ref.hidden {
			return s.match(e.ref.body, pos, out)
		}
		var children []*Node
		end, ok := s.match(e.ref.body, pos, &children)
		if !ok {
			return pos, false
		}
		*out = append(*out, &Node{
			typ:      Type(e.ref.name),
			text:     s.input[pos:end],
			start:    pos,
			end:      end,
			children: children,
		})
		return end, true

	case exprSeq:
		mark := len(*out)
		cur := pos
		for _, sub := range e.subs {
			var ok bool
			cur, ok = s.match(sub, cur, out)
			if !ok {
				*out = (*out)[:mark]
				return pos, false
			}
		}
		return cur, true

	case exprChoice:
		for _, sub := range e.subs {
			mark := len(*out)
			if end, ok := s.match(sub, pos, out); ok {
				return end, true
			}
			*out = (*out)[:mark]
		}
		return pos, false

	case exprStar, exprPlus:
		cur := pos
		for n := 0; ; n++ {
			mark := len(*out)
			end, ok := s.match(e.subs[0], cur, out)
			if !ok {
				*out = (*out)[:mark]
				if n == 0 && e.kind == exprPlus {
					return pos, false
				}
				return cur, true
			}
			if end == cur {
				// Empty matches would repeat forever.
				return cur, true
			}
			cur = end
		}

	case exprOptional:
		mark := len(*out)
		if end, ok := s.match(e.subs[0], pos, out); ok {
			return end, true
		}
		*out = (*out)[:mark]
		return pos, true

	case exprAnd, exprNot:
		var discard []*Node
		s.lookahead++
		_, ok := s.match(e.subs[0], pos, &discard)
		s.lookahead--
		if e.kind == exprNot {
			ok = !ok
		}
		if !ok {
			s.fail(pos, lookaheadDesc(e))
		}
		return pos, ok
	}

	panic(fmt.Sprintf("unknown expression kind %d", e.kind))
}

func lookaheadDesc(e *expr) string {
	if e.kind == exprNot && e.subs[0].kind == exprAny {
		return "end of input"
	}
	if e.subs[0].kind == exprRef {
		if e.kind == exprNot {
			return "not " + e.subs[0].name
		}
		return e.subs[0].name
	}
	return "lookahead"
}
