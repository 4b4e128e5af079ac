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

package orthography

import (
	"slices"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCandidates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		root     string
		suffix   string
		expected string
	}{
		{root: "artistic", suffix: "ly", expected: "artistically"},
		{root: "humble", suffix: "ly", expected: "humbly"},
		{root: "statute", suffix: "ry", expected: "statutory"},
		{root: "confirm", suffix: "tory", expected: "confirmatory"},
		{root: "supervise", suffix: "ary", expected: "supervisory"},
		{root: "frequent", suffix: "cy", expected: "frequency"},
		{root: "establish", suffix: "s", expected: "establishes"},
		{root: "speech", suffix: "s", expected: "speeches"},
		{root: "search", suffix: "s", expected: "searches"},
		{root: "arch", suffix: "s", expected: "arches"},
		{root: "cherry", suffix: "s", expected: "cherries"},
		{root: "die", suffix: "ing", expected: "dying"},
		{root: "metallurgy", suffix: "ist", expected: "metallurgist"},
		{root: "beauty", suffix: "ful", expected: "beautiful"},
		{root: "write", suffix: "en", expected: "written"},
		{root: "minnesota", suffix: "en", expected: "minnesotan"},
		{root: "ceremony", suffix: "ial", expected: "ceremonial"},
		{root: "spaghetti", suffix: "ification", expected: "spaghettification"},
		{root: "fantastic", suffix: "ical", expected: "fantastical"},
		{root: "epistomology", suffix: "ical", expected: "epistomological"},
		{root: "oratory", suffix: "ical", expected: "oratorical"},
		{root: "radical", suffix: "ist", expected: "radicalist"},
		{root: "complementary", suffix: "ity", expected: "complementarity"},
		{root: "disproportional", suffix: "ity", expected: "disproportionality"},
		{root: "perform", suffix: "tive", expected: "performative"},
		{root: "restore", suffix: "tive", expected: "restorative"},
		{root: "token", suffix: "ize", expected: "tokenize"},
		{root: "conditional", suffix: "ize", expected: "conditionalize"},
		{root: "spectacular", suffix: "ization", expected: "spectacularization"},
		{root: "category", suffix: "ize", expected: "categorize"},
		{root: "criminal", suffix: "ology", expected: "criminology"},
		{root: "similar", suffix: "ish", expected: "similarish"},
		{root: "free", suffix: "ed", expected: "freed"},
		{root: "narrate", suffix: "ing", expected: "narrating"},
		{root: "defer", suffix: "ed", expected: "deferred"},
	}

	rules := NewRules()
	for _, test := range tests {
		t.Run(test.root+"+"+test.suffix, func(t *testing.T) {
			t.Parallel()

			got := Candidates(rules, test.root, test.suffix, nil)
			if !slices.Contains(got, test.expected) {
				t.Fatalf("Candidates(%q, %q): want %q in %q", test.root, test.suffix, test.expected, got)
			}
		})
	}
}

func TestCandidates_exact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		root     string
		suffix   string
		accept   func(string) bool
		expected []string
	}{
		{
			name:     "artistic+ly",
			root:     "artistic",
			suffix:   "ly",
			expected: []string{"artistically"},
		},
		{
			name:     "free+ed",
			root:     "free",
			suffix:   "ed",
			expected: []string{"freed"},
		},
		{
			name:   "every matching rule contributes",
			root:   "write",
			suffix: "en",
			expected: []string{
				"written",
				"writen",
				"writen",
			},
		},
		{
			name:   "accept filters candidates",
			root:   "write",
			suffix: "en",
			accept: func(s string) bool {
				return s == "written"
			},
			expected: []string{"written"},
		},
		{
			name:     "hard rch is not softened",
			root:     "monarch",
			suffix:   "s",
			expected: nil,
		},
		{
			name:     "no rule matches",
			root:     "cat",
			suffix:   "s",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := Candidates(nil, test.root, test.suffix, test.accept)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Candidates (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDecompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		word     string
		expected string
	}{
		{word: "artistically", expected: "artistic"},
		{word: "humbly", expected: "humble"},
		{word: "statutory", expected: "statute"},
		{word: "frequency", expected: "frequent"},
		{word: "speeches", expected: "speech"},
		{word: "cherries", expected: "cherry"},
		{word: "dying", expected: "die"},
		{word: "beautiful", expected: "beauty"},
		{word: "written", expected: "write"},
		{word: "ceremonial", expected: "ceremony"},
		{word: "oratorical", expected: "oratory"},
		{word: "performative", expected: "perform"},
		{word: "tokenize", expected: "tokeny"},
		{word: "conditionalize", expected: "conditional"},
	}

	rules := ReverseRules()
	for _, test := range tests {
		t.Run(test.word, func(t *testing.T) {
			t.Parallel()

			got := Decompose(rules, test.word)
			if !slices.Contains(got, test.expected) {
				t.Fatalf("Decompose(%q): want %q in %q", test.word, test.expected, got)
			}
		})
	}
}

func TestDefaultRules(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	got := make([]*Rules, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = DefaultRules()
		}()
	}
	wg.Wait()

	for i, r := range got {
		if r != got[0] {
			t.Fatalf("DefaultRules()[%d]: want the same table", i)
		}
	}
	if diff := cmp.Diff(len(orthographyRules), got[0].Len()); diff != "" {
		t.Fatalf("Len (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("${1}ally", got[0].Rule(0).Replacement); diff != "" {
		t.Fatalf("Rule(0).Replacement (-want, +got):\n%s", diff)
	}
}
