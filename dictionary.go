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
	"maps"
	"slices"
	"strings"
)

// StrokeSeparator separates the chords in a stroke sequence.
const StrokeSeparator = "/"

// Dictionary maps stroke sequences to output templates.
type Dictionary map[string]string

// SortedStrokes returns the dictionary's stroke sequences in sorted order.
func (d Dictionary) SortedStrokes() []string {
	return slices.Sorted(maps.Keys(d))
}

// Merge merges dictionaries into a new dictionary. Dictionaries are given
// in Plover's priority order so when a stroke sequence is defined in more
// than one dictionary the definition from the earliest dictionary is used.
func Merge(dicts ...Dictionary) Dictionary {
	size := 0
	for _, d := range dicts {
		size += len(d)
	}
	merged := make(Dictionary, size)
	for i := len(dicts) - 1; i >= 0; i-- {
		maps.Copy(merged, dicts[i])
	}
	return merged
}

// StrokeCount returns the number of chords in a stroke sequence.
func StrokeCount(strokes string) int {
	return strings.Count(strokes, StrokeSeparator) + 1
}
