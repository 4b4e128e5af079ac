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
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrGrammar indicates that the grammar text is invalid.
var ErrGrammar = errors.New("invalid grammar")

type exprKind int

const (
	exprLiteral exprKind = iota
	exprClass
	exprAny
	exprRef
	exprSeq
	exprChoice
	exprStar
	exprPlus
	exprOptional
	exprAnd
	exprNot
)

// expr is a compiled grammar expression.
type expr struct {
	kind  exprKind
	lit   string
	class *charClass
	name  string
	ref   *rule
	subs  []*expr
}

type runeRange struct {
	lo, hi rune
}

// charClass is a compiled [...] or [^...] character class.
type charClass struct {
	negated bool
	ranges  []runeRange
	src     string
}

func (c *charClass) contains(r rune) bool {
	for _, rr := range c.ranges {
		if rr.lo <= r && r <= rr.hi {
			return !c.negated
		}
	}
	return c.negated
}

// rule is a named grammar production. Hidden rules consume input but do not
// produce nodes.
type rule struct {
	name   string
	hidden bool
	body   *expr
}

type gtokenKind int

const (
	gtokEOF gtokenKind = iota
	gtokName
	gtokDefine
	gtokString
	gtokClass
	gtokChar
	gtokPunct
)

type gtoken struct {
	kind gtokenKind
	text string
	line int
}

// scanGrammar splits grammar text into tokens.
func scanGrammar(src string) ([]gtoken, error) {
	var toks []gtoken
	line := 1
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '\n':
			line++
			i++
		case c == ' ' || c == '\t' || c == '\r':
			i++
		case strings.HasPrefix(src[i:], "/*"):
			j := strings.Index(src[i+2:], "*/")
			if j < 0 {
				return nil, fmt.Errorf("%w: line %d: unterminated comment", ErrGrammar, line)
			}
			line += strings.Count(src[i:i+2+j], "\n")
			i += j + 4
		case strings.HasPrefix(src[i:], "::="):
			toks = append(toks, gtoken{kind: gtokDefine, text: "::=", line: line})
			i += 3
		case c == '_' || isASCIILetter(c):
			j := i + 1
			for j < len(src) && (src[j] == '_' || isASCIILetter(src[j]) || ('0' <= src[j] && src[j] <= '9')) {
				j++
			}
			toks = append(toks, gtoken{kind: gtokName, text: src[i:j], line: line})
			i = j
		case c == '"' || c == '\'':
			j := strings.IndexAny(src[i+1:], string(c)+"\n")
			if j < 0 || src[i+1+j] == '\n' {
				return nil, fmt.Errorf("%w: line %d: unterminated string", ErrGrammar, line)
			}
			if j == 0 {
				return nil, fmt.Errorf("%w: line %d: empty string", ErrGrammar, line)
			}
			toks = append(toks, gtoken{kind: gtokString, text: src[i+1 : i+1+j], line: line})
			i += j + 2
		case c == '[':
			j := strings.IndexAny(src[i+1:], "]\n")
			if j < 0 || src[i+1+j] == '\n' {
				return nil, fmt.Errorf("%w: line %d: unterminated character class", ErrGrammar, line)
			}
			toks = append(toks, gtoken{kind: gtokClass, text: src[i+1 : i+1+j], line: line})
			i += j + 2
		case strings.HasPrefix(src[i:], "#x"):
			r, n, err := parseHexRune(src[i:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %w", ErrGrammar, line, err)
			}
			toks = append(toks, gtoken{kind: gtokChar, text: string(r), line: line})
			i += n
		case strings.IndexByte("|()*+?&!.", c) >= 0:
			toks = append(toks, gtoken{kind: gtokPunct, text: string(c), line: line})
			i++
		default:
			return nil, fmt.Errorf("%w: line %d: unexpected character %q", ErrGrammar, line, c)
		}
	}
	return append(toks, gtoken{kind: gtokEOF, line: line}), nil
}

func isASCIILetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// parseHexRune parses a #xNN character reference at the start of s and
// returns the rune and the number of bytes consumed.
func parseHexRune(s string) (rune, int, error) {
	j := 2
	for j < len(s) && strings.IndexByte("0123456789abcdefABCDEF", s[j]) >= 0 {
		j++
	}
	if j == 2 {
		return 0, 0, fmt.Errorf("bad character reference %q", s[:j])
	}
	v, err := strconv.ParseUint(s[2:j], 16, 32)
	if err != nil || v > unicode.MaxRune {
		return 0, 0, fmt.Errorf("bad character reference %q", s[:j])
	}
	return rune(v), j, nil
}

// parseClass compiles the body of a character class.
func parseClass(body string) (*charClass, error) {
	c := &charClass{src: "[" + body + "]"}
	if strings.HasPrefix(body, "^") {
		c.negated = true
		body = body[1:]
	}

	next := func() (rune, error) {
		if strings.HasPrefix(body, "#x") {
			r, n, err := parseHexRune(body)
			if err != nil {
				return 0, err
			}
			body = body[n:]
			return r, nil
		}
		r, size := utf8.DecodeRuneInString(body)
		body = body[size:]
		return r, nil
	}

	for body != "" {
		lo, err := next()
		if err != nil {
			return nil, err
		}
		hi := lo
		if len(body) > 1 && body[0] == '-' {
			body = body[1:]
			hi, err = next()
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, fmt.Errorf("bad range %q-%q", lo, hi)
			}
		}
		c.ranges = append(c.ranges, runeRange{lo: lo, hi: hi})
	}
	if len(c.ranges) == 0 {
		return nil, fmt.Errorf("empty character class")
	}
	return c, nil
}

// grammarParser is a recursive descent parser over grammar tokens.
type grammarParser struct {
	toks []gtoken
	pos  int
}

func (p *grammarParser) peek() gtoken {
	return p.toks[p.pos]
}

func (p *grammarParser) next() gtoken {
	t := p.toks[p.pos]
	if t.kind != gtokEOF {
		p.pos++
	}
	return t
}

func (p *grammarParser) isPunct(s string) bool {
	t := p.peek()
	return t.kind == gtokPunct && t.text == s
}

// atRuleStart returns true if the next tokens begin a new rule definition.
func (p *grammarParser) atRuleStart() bool {
	return p.peek().kind == gtokName && p.toks[p.pos+1].kind == gtokDefine
}

func (p *grammarParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrGrammar, p.peek().line, fmt.Sprintf(format, args...))
}

func (p *grammarParser) rules() ([]*rule, error) {
	var rules []*rule
	for p.peek().kind != gtokEOF {
		if !p.atRuleStart() {
			return nil, p.errorf("expected rule definition")
		}
		name := p.next().text
		p.next() // ::=
		body, err := p.choice()
		if err != nil {
			return nil, err
		}
		r, _ := utf8.DecodeRuneInString(name)
		rules = append(rules, &rule{
			name:   name,
			hidden: unicode.IsUpper(r),
			body:   body,
		})
	}
	return rules, nil
}

func (p *grammarParser) choice() (*expr, error) {
	first, err := p.sequence()
	if err != nil {
		return nil, err
	}
	alts := []*expr{first}
	for p.isPunct("|") {
		p.next()
		alt, err := p.sequence()
		if err != nil {
			return nil, err
		}
		alts = append(alts, alt)
	}
	if len(alts) == 1 {
		return first, nil
	}
	return &expr{kind: exprChoice, subs: alts}, nil
}

func (p *grammarParser) sequence() (*expr, error) {
	var items []*expr
	for {
		t := p.peek()
		if t.kind == gtokEOF || p.isPunct("|") || p.isPunct(")") || p.atRuleStart() {
			break
		}
		item, err := p.item()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	switch len(items) {
	case 0:
		return nil, p.errorf("empty sequence")
	case 1:
		return items[0], nil
	default:
		return &expr{kind: exprSeq, subs: items}, nil
	}
}

func (p *grammarParser) item() (*expr, error) {
	var prefix exprKind = -1
	switch {
	case p.isPunct("&"):
		prefix = exprAnd
		p.next()
	case p.isPunct("!"):
		prefix = exprNot
		p.next()
	}

	e, err := p.primary()
	if err != nil {
		return nil, err
	}

	if t := p.peek(); t.kind == gtokPunct {
		switch t.text {
		case "*":
			e = &expr{kind: exprStar, subs: []*expr{e}}
			p.next()
		case "+":
			e = &expr{kind: exprPlus, subs: []*expr{e}}
			p.next()
		case "?":
			e = &expr{kind: exprOptional, subs: []*expr{e}}
			p.next()
		}
	}

	if prefix >= 0 {
		e = &expr{kind: prefix, subs: []*expr{e}}
	}
	return e, nil
}

func (p *grammarParser) primary() (*expr, error) {
	t := p.next()
	switch t.kind {
	case gtokName:
		return &expr{kind: exprRef, name: t.text}, nil
	case gtokString, gtokChar:
		return &expr{kind: exprLiteral, lit: t.text}, nil
	case gtokClass:
		c, err := parseClass(t.text)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrGrammar, t.line, err)
		}
		return &expr{kind: exprClass, class: c}, nil
	case gtokPunct:
		switch t.text {
		case ".":
			return &expr{kind: exprAny}, nil
		case "(":
			e, err := p.choice()
			if err != nil {
				return nil, err
			}
			if !p.isPunct(")") {
				return nil, p.errorf("expected )")
			}
			p.next()
			return e, nil
		}
	case gtokEOF, gtokDefine:
	}
	return nil, fmt.Errorf("%w: line %d: unexpected %q", ErrGrammar, t.line, t.text)
}

// compileGrammar parses grammar text and links rule references.
func compileGrammar(src string) (map[string]*rule, error) {
	toks, err := scanGrammar(src)
	if err != nil {
		return nil, err
	}
	p := &grammarParser{toks: toks}
	rules, err := p.rules()
	if err != nil {
		return nil, err
	}

	byName := make(map[string]*rule, len(rules))
	for _, r := range rules {
		if _, ok := byName[r.name]; ok {
			return nil, fmt.Errorf("%w: duplicate rule %q", ErrGrammar, r.name)
		}
		byName[r.name] = r
	}
	for _, r := range rules {
		if err := link(r.body, byName); err != nil {
			return nil, fmt.Errorf("%w: rule %q: %w", ErrGrammar, r.name, err)
		}
	}
	return byName, nil
}

func link(e *expr, rules map[string]*rule) error {
	if e.kind == exprRef {
		r, ok := rules[e.name]
		if !ok {
			return fmt.Errorf("undefined rule %q", e.name)
		}
		e.ref = r
	}
	for _, sub := range e.subs {
		if err := link(sub, rules); err != nil {
			return err
		}
	}
	return nil
}
