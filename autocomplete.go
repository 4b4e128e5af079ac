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
	"strings"
)

// Autocomplete generates an autocomplete dictionary from d. For every
// multi-stroke entry whose output is a single word, each shortened stroke
// sequence, made by dropping trailing chords while more than minStrokes
// remain, maps to the full output. At least one chord is always kept.
// Shortened sequences that are already defined in d are skipped. When two
// entries shorten to the same sequence the entry whose stroke sequence sorts
// first is used.
func Autocomplete(d Dictionary, minStrokes int) Dictionary {
	minStrokes = max(minStrokes, 1)
	generated := Dictionary{}
	for _, strokes := range d.SortedStrokes() {
		output := d[strokes]
		if !strings.Contains(strokes, StrokeSeparator) || strings.Contains(output, " ") {
			continue
		}

		chords := strings.Split(strokes, StrokeSeparator)
		for len(chords) > minStrokes {
			chords = chords[:len(chords)-1]
			shortened := strings.Join(chords, StrokeSeparator)
			if _, ok := d[shortened]; ok {
				continue
			}
			if _, ok := generated[shortened]; ok {
				continue
			}
			generated[shortened] = output
		}
	}
	return generated
}
