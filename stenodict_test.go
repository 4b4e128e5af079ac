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

package stenodict

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-stenodict/length"
)

func TestMerge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		dicts    []Dictionary
		expected Dictionary
	}{
		{
			name:     "none",
			dicts:    nil,
			expected: Dictionary{},
		},
		{
			name: "disjoint",
			dicts: []Dictionary{
				{"KAT": "cat"},
				{"TKOG": "dog"},
			},
			expected: Dictionary{
				"KAT":  "cat",
				"TKOG": "dog",
			},
		},
		{
			name: "earlier dictionaries take precedence",
			dicts: []Dictionary{
				{"KAT": "cat"},
				{"KAT": "kat", "TKOG": "dog"},
				{"KAT": "catalogue", "TKOG": "doge", "PWEUR": "bird"},
			},
			expected: Dictionary{
				"KAT":   "cat",
				"TKOG":  "dog",
				"PWEUR": "bird",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Merge(test.dicts...)); diff != "" {
				t.Fatalf("Merge (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestMerge_doesNotModify(t *testing.T) {
	t.Parallel()

	first := Dictionary{"KAT": "cat"}
	second := Dictionary{"KAT": "kat"}
	merged := Merge(first, second)
	merged["KAT"] = "changed"

	if diff := cmp.Diff(Dictionary{"KAT": "cat"}, first); diff != "" {
		t.Fatalf("first (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(Dictionary{"KAT": "kat"}, second); diff != "" {
		t.Fatalf("second (-want, +got):\n%s", diff)
	}
}

func TestStrokeCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		strokes  string
		expected int
	}{
		{strokes: "KAT", expected: 1},
		{strokes: "KAT/-S", expected: 2},
		{strokes: "UPB/ORG/-PBS", expected: 3},
	}

	for _, test := range tests {
		t.Run(test.strokes, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, StrokeCount(test.strokes)); diff != "" {
				t.Fatalf("StrokeCount (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestDictionary_SortedStrokes(t *testing.T) {
	t.Parallel()

	d := Dictionary{"TKOG": "dog", "KAT": "cat", "-G": "{^ing}"}
	if diff := cmp.Diff([]string{"-G", "KAT", "TKOG"}, d.SortedStrokes()); diff != "" {
		t.Fatalf("SortedStrokes (-want, +got):\n%s", diff)
	}
}

func TestFormatCharacters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
		{
			name:     "ascii",
			input:    "cat",
			expected: "c a t",
		},
		{
			name:     "newline",
			input:    "a\nb",
			expected: `a \xA b`,
		},
		{
			name:     "tab",
			input:    "\t",
			expected: `\x9`,
		},
		{
			name:     "non-ascii",
			input:    "é",
			expected: `\xE9`,
		},
		{
			name:     "delete",
			input:    "\x7f",
			expected: `\x7F`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, FormatCharacters(test.input)); diff != "" {
				t.Fatalf("FormatCharacters (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestAutocomplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		dict       Dictionary
		minStrokes int
		expected   Dictionary
	}{
		{
			name: "single stroke entries are skipped",
			dict: Dictionary{
				"KAT": "cat",
			},
			minStrokes: 1,
			expected:   Dictionary{},
		},
		{
			name: "phrases are skipped",
			dict: Dictionary{
				"KAT/-S": "cat sat",
			},
			minStrokes: 1,
			expected:   Dictionary{},
		},
		{
			name: "shortened outlines",
			dict: Dictionary{
				"UPB/ORG/TKPWHRAOEUFD": "unorganized",
			},
			minStrokes: 1,
			expected: Dictionary{
				"UPB/ORG": "unorganized",
				"UPB":     "unorganized",
			},
		},
		{
			name: "min strokes",
			dict: Dictionary{
				"UPB/ORG/TKPWHRAOEUFD": "unorganized",
			},
			minStrokes: 2,
			expected: Dictionary{
				"UPB/ORG": "unorganized",
			},
		},
		{
			name: "defined outlines are kept",
			dict: Dictionary{
				"UPB":                  "un",
				"UPB/ORG/TKPWHRAOEUFD": "unorganized",
			},
			minStrokes: 1,
			expected: Dictionary{
				"UPB/ORG": "unorganized",
			},
		},
		{
			name: "first outline wins",
			dict: Dictionary{
				"UPB/ORG/TKPWHRAOEUFD": "unorganized",
				"UPB/ORG/TPHAOEUFD":    "unorganised",
			},
			minStrokes: 2,
			expected: Dictionary{
				"UPB/ORG": "unorganized",
			},
		},
		{
			name: "zero min strokes keeps a chord",
			dict: Dictionary{
				"KAT/-S": "cats",
			},
			minStrokes: 0,
			expected: Dictionary{
				"KAT": "cats",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Autocomplete(test.dict, test.minStrokes)); diff != "" {
				t.Fatalf("Autocomplete (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestCalculateStats(t *testing.T) {
	t.Parallel()

	d := Dictionary{
		"KAT":      "cat",
		"KAT/-S":   "cats",
		"KA*T":     "cat",
		"TP-PL":    "{.}",
		"-G":       "{^ing}",
		"PWRO*BG":  "{~}",
		"HRAOEUBG": "like",
	}

	stats := CalculateStats(d)

	if diff := cmp.Diff(7, stats.DefinedEntries); diff != "" {
		t.Errorf("DefinedEntries (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(6, stats.UniqueOutputs); diff != "" {
		t.Errorf("UniqueOutputs (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[int]int{1: 6, 2: 1}, stats.EntriesByStrokeCount); diff != "" {
		t.Errorf("EntriesByStrokeCount (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(map[int][]int{
		1: {1},
		4: {1, 1, 1},
		5: {1, 2},
	}, stats.StrokesByLength); diff != "" {
		t.Errorf("StrokesByLength (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2}, stats.StrokeCounts()); diff != "" {
		t.Errorf("StrokeCounts (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 4, 5}, stats.Lengths()); diff != "" {
		t.Errorf("Lengths (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(1.5, stats.AverageStrokes(5)); diff != "" {
		t.Errorf("AverageStrokes(5) (-want, +got):\n%s", diff)
	}
	if diff := cmp.Diff(0.0, stats.AverageStrokes(100)); diff != "" {
		t.Errorf("AverageStrokes(100) (-want, +got):\n%s", diff)
	}

	if want, got := 1, len(stats.Failures); want != got {
		t.Fatalf("# of failures; want: %d, got: %d", want, got)
	}
	f := stats.Failures[0]
	if diff := cmp.Diff("PWRO*BG", f.Strokes); diff != "" {
		t.Errorf("Failures[0].Strokes (-want, +got):\n%s", diff)
	}
	if !errors.Is(f.Err, ErrUnparsed) {
		t.Errorf("Failures[0].Err: want: %v, got: %v", ErrUnparsed, f.Err)
	}
	if length.IsCalculationError(f.Err) {
		t.Errorf("Failures[0].Err: unexpected calculation error: %v", f.Err)
	}
}

func TestStats_UniqueRatio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		stats    *Stats
		expected float64
	}{
		{
			name:     "empty",
			stats:    &Stats{},
			expected: 0,
		},
		{
			name:     "half",
			stats:    &Stats{DefinedEntries: 4, UniqueOutputs: 2},
			expected: 50,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, test.stats.UniqueRatio(), cmpopts.EquateApprox(0, 0.001)); diff != "" {
				t.Fatalf("UniqueRatio (-want, +got):\n%s", diff)
			}
		})
	}
}
