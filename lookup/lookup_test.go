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
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-stenodict"
)

var testDict = stenodict.Dictionary{
	"KAT":            "cat",
	"KA*T":           "Cat",
	"TKOG":           "dog",
	"-S":             "{^s}",
	"-Z":             "{^s}",
	"-G":             "{^ing}",
	"-EN":            "{^en}",
	"HREU":           "{^ly}",
	"PRE":            "{pre^}",
	"UPB":            "{un^}",
	"ART/TEUS/TEUBG": "artistic",
	"KHER/REU":       "cherry",
	"TKAOEU":         "die",
	"WRAOEUT":        "write",
	"TP-PL":          "{.}",
	"KW-GS":          "{~}",
	"H-L":            "  Hello   World ",
	"TK-LS":          "{^}",
}

func TestLookup_Strokes(t *testing.T) {
	t.Parallel()

	l := New(testDict, nil)

	tests := []struct {
		word     string
		expected []string
	}{
		{word: "cat", expected: []string{"KA*T", "KAT"}},
		{word: "Cat", expected: []string{"KA*T", "KAT"}},
		{word: "dog", expected: []string{"TKOG"}},
		{word: "hello world", expected: []string{"H-L"}},
		{word: "  HELLO WORLD", expected: []string{"H-L"}},
		{word: "bird", expected: []string{}},
		{word: "ing", expected: []string{}},
	}

	for _, test := range tests {
		t.Run(test.word, func(t *testing.T) {
			t.Parallel()

			got := l.Strokes(test.word)
			if got == nil {
				t.Fatalf("Strokes(%q): want non-nil result", test.word)
			}
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Strokes(%q) (-want, +got):\n%s", test.word, diff)
			}
		})
	}
}

func TestLookup_Strokes_copy(t *testing.T) {
	t.Parallel()

	l := New(testDict, nil)
	got := l.Strokes("dog")
	got[0] = "changed"

	if diff := cmp.Diff([]string{"TKOG"}, l.Strokes("dog")); diff != "" {
		t.Fatalf("Strokes (-want, +got):\n%s", diff)
	}
}

func TestLookup_classification(t *testing.T) {
	t.Parallel()

	l := New(testDict, &Options{Workers: 2})

	keys := func(d ParsedDictionary) []string {
		var k []string
		for s := range d {
			k = append(k, s)
		}
		sort.Strings(k)
		return k
	}

	if diff := cmp.Diff([]string{"-EN", "-G", "-S", "-Z", "HREU", "TK-LS"}, keys(l.SuffixStrokes())); diff != "" {
		t.Errorf("SuffixStrokes (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"PRE", "UPB"}, keys(l.PrefixStrokes())); diff != "" {
		t.Errorf("PrefixStrokes (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(stenodict.Dictionary{
		"KAT":            "cat",
		"KA*T":           "cat",
		"TKOG":           "dog",
		"ART/TEUS/TEUBG": "artistic",
		"KHER/REU":       "cherry",
		"TKAOEU":         "die",
		"WRAOEUT":        "write",
		"H-L":            "hello world",
	}, l.Verbatim()); diff != "" {
		t.Errorf("Verbatim (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff("hello   world", l.VerbatimText()["H-L"]); diff != "" {
		t.Errorf("VerbatimText (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(len(l.Verbatim()), len(l.VerbatimText())); diff != "" {
		t.Errorf("len(VerbatimText) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"KW-GS"}, l.Failed()); diff != "" {
		t.Errorf("Failed (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(len(testDict)-1, len(l.Parsed())); diff != "" {
		t.Errorf("len(Parsed) (-want, +got):\n%s", diff)
	}
}

func TestNewInvertedLookup(t *testing.T) {
	t.Parallel()

	d := stenodict.Dictionary{
		"KAT":  "cat",
		"KA*T": "cat",
		"TKOG": "dog",
	}

	first := NewInvertedLookup(d)
	second := NewInvertedLookup(d)

	expected := InvertedLookup{
		"cat": {"KA*T", "KAT"},
		"dog": {"TKOG"},
	}
	if diff := cmp.Diff(expected, first); diff != "" {
		t.Fatalf("NewInvertedLookup (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("NewInvertedLookup is not deterministic (-first, +second):\n%s", diff)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{input: "Cat", expected: "cat"},
		{input: " New  York ", expected: "new york"},
		{input: "ÉTÉ", expected: "été"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Normalize(test.input)); diff != "" {
				t.Fatalf("Normalize (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestLookup_Suggest(t *testing.T) {
	t.Parallel()

	l := New(testDict, nil)

	tests := []struct {
		word     string
		expected []Suggestion
	}{
		{
			word: "cats",
			expected: []Suggestion{
				{Strokes: "KA*T/-S", Root: "cat", Suffix: "s"},
				{Strokes: "KA*T/-Z", Root: "cat", Suffix: "s"},
				{Strokes: "KAT/-S", Root: "cat", Suffix: "s"},
				{Strokes: "KAT/-Z", Root: "cat", Suffix: "s"},
			},
		},
		{
			word: "Artistically",
			expected: []Suggestion{
				{Strokes: "ART/TEUS/TEUBG/HREU", Root: "artistic", Suffix: "ly"},
			},
		},
		{
			word: "cherries",
			expected: []Suggestion{
				{Strokes: "KHER/REU/-S", Root: "cherry", Suffix: "s"},
				{Strokes: "KHER/REU/-Z", Root: "cherry", Suffix: "s"},
			},
		},
		{
			word: "dying",
			expected: []Suggestion{
				{Strokes: "TKAOEU/-G", Root: "die", Suffix: "ing"},
			},
		},
		{
			word: "written",
			expected: []Suggestion{
				{Strokes: "WRAOEUT/-EN", Root: "write", Suffix: "en"},
			},
		},
		{
			word:     "cat",
			expected: nil,
		},
		{
			word:     "birds",
			expected: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.word, func(t *testing.T) {
			t.Parallel()

			got := l.Suggest(test.word, nil)
			if diff := cmp.Diff(test.expected, got, cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("Suggest(%q) (-want, +got):\n%s", test.word, diff)
			}
		})
	}
}
