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

package lookup

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ianlewis/go-stenodict"
	"github.com/ianlewis/go-stenodict/orthography"
)

// Suggestion is a way to write a word by combining a plain text entry with
// a suffix entry.
type Suggestion struct {
	// Strokes is the combined stroke sequence.
	Strokes string

	// Root is the output of the plain text entry.
	Root string

	// Suffix is the text of the suffix entry.
	Suffix string
}

// Suggest returns ways to write word by combining a plain text entry with a
// suffix entry. Roots and suffixes are joined with the spelling rules in
// rules, or plain concatenation. Nil rules uses orthography.DefaultRules().
// Suggestions are sorted by stroke sequence.
func (l *Lookup) Suggest(word string, rules *orthography.Rules) []Suggestion {
	w := Normalize(word)

	var result []Suggestion
	for k := range w {
		if k == 0 {
			continue
		}
		suffixes := l.suffixIndex.Search(w[k:])
		if len(suffixes) == 0 {
			continue
		}
		for _, root := range guessRoots(w[:k]) {
			rootStrokes, ok := l.inverted[root]
			if !ok {
				continue
			}
			for _, suffix := range suffixes {
				if !joins(rules, root, suffix.text, w) {
					continue
				}
				for _, s := range rootStrokes {
					result = append(result, Suggestion{
						Strokes: s + stenodict.StrokeSeparator + suffix.strokes,
						Root:    root,
						Suffix:  suffix.text,
					})
				}
			}
		}
	}

	slices.SortFunc(result, func(a, b Suggestion) int {
		return cmp.Or(
			strings.Compare(a.Strokes, b.Strokes),
			strings.Compare(a.Root, b.Root),
		)
	})
	return slices.Compact(result)
}

// joins returns true if root and suffix can be joined to write word.
func joins(rules *orthography.Rules, root, suffix, word string) bool {
	if root+suffix == word {
		return true
	}
	return len(orthography.Candidates(rules, root, suffix, func(c string) bool {
		return c == word
	})) > 0
}

// guessRoots returns possible roots of a word given the text before a
// suffix. The spelling rules change the end of a root when a suffix is
// added (e.g. cherry+s = cherries, write+en = written) so a few likely
// spellings are tried.
func guessRoots(head string) []string {
	bases := []string{head}
	if n := len(head); n >= 2 && head[n-1] == head[n-2] {
		// Doubled consonant.
		bases = append(bases, head[:n-1])
	}
	for _, s := range []string{"al", "a"} {
		if t, ok := strings.CutSuffix(head, s); ok && t != "" {
			bases = append(bases, t)
		}
	}

	var roots []string
	for _, b := range bases {
		roots = append(roots, b, b+"e")
		switch {
		case strings.HasSuffix(b, "ie"):
			roots = append(roots, b[:len(b)-2]+"y")
		case strings.HasSuffix(b, "i"):
			roots = append(roots, b[:len(b)-1]+"y")
		case strings.HasSuffix(b, "y"):
			roots = append(roots, b[:len(b)-1]+"ie")
		}
	}
	slices.Sort(roots)
	return slices.Compact(roots)
}
