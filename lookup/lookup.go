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

// Package lookup implements lookups of the strokes that produce a word.
//
// A [Lookup] parses every entry of a dictionary once and classifies the
// entries that are plain text, prefixes (e.g. "{un^}") and suffixes (e.g.
// "{^ing}"). Plain text entries are inverted so that strokes can be found
// by output text.
package lookup

import (
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-stenodict"
	"github.com/ianlewis/go-stenodict/internal/folding"
	"github.com/ianlewis/go-stenodict/internal/index"
	"github.com/ianlewis/go-stenodict/outline"
)

// ParsedDictionary maps stroke sequences to parsed outputs.
type ParsedDictionary map[string]*outline.Node

// InvertedLookup maps normalized output text to the sorted stroke sequences
// producing it.
type InvertedLookup map[string][]string

var (
	verbatimPath = []outline.Type{outline.Outline, outline.Atom, outline.Verbatim}
	suffixPath   = []outline.Type{outline.Outline, outline.Atom, outline.MetaCommand, outline.AttachMetaCommand, outline.AttachStart}
	prefixPath   = []outline.Type{outline.Outline, outline.Atom, outline.MetaCommand, outline.AttachMetaCommand, outline.AttachEnd}
)

// Options are options for a Lookup.
type Options struct {
	// Workers is the maximum number of entries parsed concurrently. Zero
	// means runtime.GOMAXPROCS(0).
	Workers int

	// Parser parses dictionary outputs. Nil means outline.Default().
	Parser *outline.Parser
}

// DefaultOptions are the default options for a Lookup.
var DefaultOptions = &Options{}

// Lookup is a read-only view of a parsed dictionary.
type Lookup struct {
	parsed   ParsedDictionary
	failed   []string
	verbatim stenodict.Dictionary
	lowered  stenodict.Dictionary
	prefixes ParsedDictionary
	suffixes ParsedDictionary
	inverted InvertedLookup

	// suffixIndex indexes suffix entries by their normalized text.
	suffixIndex *index.Index[affix]
}

// affix is a prefix or suffix entry with text.
type affix struct {
	strokes string
	text    string
}

// New parses every entry of d and returns a new Lookup. Entries that cannot
// be fully parsed are dropped and reported by [Lookup.Failed].
func New(d stenodict.Dictionary, options *Options) *Lookup {
	if options == nil {
		options = DefaultOptions
	}
	workers := options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	parser := options.Parser
	if parser == nil {
		parser = outline.Default()
	}

	strokes := d.SortedStrokes()
	roots := make([]*outline.Node, len(strokes))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, s := range strokes {
		g.Go(func() error {
			roots[i] = parser.Parse(d[s], outline.Outline)
			return nil
		})
	}
	// Parsing never returns an error.
	_ = g.Wait()

	l := &Lookup{
		parsed:   make(ParsedDictionary, len(strokes)),
		verbatim: stenodict.Dictionary{},
		lowered:  stenodict.Dictionary{},
		prefixes: ParsedDictionary{},
		suffixes: ParsedDictionary{},
	}
	var suffixes []affix
	for i, s := range strokes {
		root := roots[i]
		if !root.Parsed() {
			l.failed = append(l.failed, s)
			continue
		}
		l.parsed[s] = root

		switch {
		case outline.Is(root, verbatimPath...):
			text := root.Children()[0].Children()[0].Text()
			l.verbatim[s] = Normalize(text)
			l.lowered[s] = folding.Lower(text)
		case outline.Is(root, suffixPath...):
			l.suffixes[s] = root
			if text := attachText(root); text != "" {
				suffixes = append(suffixes, affix{strokes: s, text: text})
			}
		case outline.Is(root, prefixPath...):
			l.prefixes[s] = root
		}
	}
	l.inverted = NewInvertedLookup(l.verbatim)
	l.suffixIndex = index.New(suffixes, func(a affix) string { return a.text }, strings.Compare)

	return l
}

// attachText returns the normalized text of an outline matching suffixPath
// or prefixPath.
func attachText(root *outline.Node) string {
	n := root
	for range suffixPath[1:] {
		n = n.Children()[0]
	}
	if v := n.Child(outline.AttachVerbatim); v != nil {
		return Normalize(v.Text())
	}
	return ""
}

// NewInvertedLookup inverts d, mapping each output to the stroke sequences
// that produce it. Building a lookup from the same dictionary always
// returns the same result.
func NewInvertedLookup(d stenodict.Dictionary) InvertedLookup {
	inverted := InvertedLookup{}
	for _, s := range d.SortedStrokes() {
		inverted[d[s]] = append(inverted[d[s]], s)
	}
	return inverted
}

// Normalize returns s folded for comparison. Whitespace is trimmed and
// collapsed and the text is lower cased.
func Normalize(s string) string {
	folded, err := folding.String(s)
	if err != nil {
		// The folding transformers do not fail on complete input.
		return s
	}
	return folded
}

// Strokes returns the stroke sequences that produce word exactly, ignoring
// case. The result is empty if no entry produces word.
func (l *Lookup) Strokes(word string) []string {
	strokes := l.inverted[Normalize(word)]
	result := make([]string, len(strokes))
	copy(result, strokes)
	return result
}

// Parsed returns the entries that were fully parsed.
func (l *Lookup) Parsed() ParsedDictionary {
	return l.parsed
}

// Failed returns the sorted stroke sequences of entries that could not be
// fully parsed.
func (l *Lookup) Failed() []string {
	return l.failed
}

// Verbatim returns the plain text entries with normalized outputs.
func (l *Lookup) Verbatim() stenodict.Dictionary {
	return l.verbatim
}

// VerbatimText returns the plain text entries lower cased but with their
// whitespace kept as written.
func (l *Lookup) VerbatimText() stenodict.Dictionary {
	return l.lowered
}

// Inverted returns the inverted lookup of the plain text entries.
func (l *Lookup) Inverted() InvertedLookup {
	return l.inverted
}

// PrefixStrokes returns the entries that are a single prefix, e.g. "{un^}".
func (l *Lookup) PrefixStrokes() ParsedDictionary {
	return l.prefixes
}

// SuffixStrokes returns the entries that are a single suffix, e.g. "{^ing}".
func (l *Lookup) SuffixStrokes() ParsedDictionary {
	return l.suffixes
}
