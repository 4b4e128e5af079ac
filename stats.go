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
	"fmt"
	"maps"
	"slices"

	"github.com/ianlewis/go-stenodict/length"
	"github.com/ianlewis/go-stenodict/outline"
)

// ErrUnparsed indicates that a dictionary output could not be fully parsed.
var ErrUnparsed = errors.New("output not fully parsed")

// Failure is a dictionary entry that could not be analyzed.
type Failure struct {
	Strokes string
	Output  string
	Err     error
}

// Stats are statistics for a single dictionary.
type Stats struct {
	// DefinedEntries is the number of entries in the dictionary.
	DefinedEntries int

	// UniqueOutputs is the number of distinct outputs.
	UniqueOutputs int

	// EntriesByStrokeCount maps a number of strokes to the number of
	// entries with that many strokes.
	EntriesByStrokeCount map[int]int

	// StrokesByLength maps an estimated output length to the stroke counts
	// of the entries producing that many characters.
	StrokesByLength map[int][]int

	// Failures lists entries whose output could not be parsed or measured,
	// ordered by stroke sequence.
	Failures []Failure
}

// CalculateStats calculates statistics for the dictionary d.
func CalculateStats(d Dictionary) *Stats {
	stats := &Stats{
		DefinedEntries:       len(d),
		EntriesByStrokeCount: map[int]int{},
		StrokesByLength:      map[int][]int{},
	}

	outputs := make(map[string]struct{}, len(d))
	parser := outline.Default()
	for _, strokes := range d.SortedStrokes() {
		output := d[strokes]
		outputs[output] = struct{}{}

		n := StrokeCount(strokes)
		stats.EntriesByStrokeCount[n]++

		root := parser.Parse(output, outline.Outline)
		if !root.Parsed() {
			stats.Failures = append(stats.Failures, Failure{
				Strokes: strokes,
				Output:  output,
				Err:     parseError(root),
			})
			continue
		}

		l, err := length.Calculate(root)
		if err != nil {
			stats.Failures = append(stats.Failures, Failure{
				Strokes: strokes,
				Output:  output,
				Err:     err,
			})
			continue
		}
		stats.StrokesByLength[l] = append(stats.StrokesByLength[l], n)
	}
	stats.UniqueOutputs = len(outputs)

	return stats
}

func parseError(root *outline.Node) error {
	if errs := root.Errors(); len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrUnparsed, errs[0])
	}
	return fmt.Errorf("%w: unconsumed input %q", ErrUnparsed, root.Rest())
}

// StrokeCounts returns the stroke counts present in EntriesByStrokeCount in
// ascending order.
func (s *Stats) StrokeCounts() []int {
	return slices.Sorted(maps.Keys(s.EntriesByStrokeCount))
}

// Lengths returns the estimated output lengths present in StrokesByLength in
// ascending order.
func (s *Stats) Lengths() []int {
	return slices.Sorted(maps.Keys(s.StrokesByLength))
}

// AverageStrokes returns the average number of strokes used by entries
// producing length characters. It returns zero if there are no such
// entries.
func (s *Stats) AverageStrokes(length int) float64 {
	counts := s.StrokesByLength[length]
	if len(counts) == 0 {
		return 0
	}
	sum := 0
	for _, c := range counts {
		sum += c
	}
	return float64(sum) / float64(len(counts))
}

// UniqueRatio returns the percentage of entries with a distinct output.
func (s *Stats) UniqueRatio() float64 {
	if s.DefinedEntries == 0 {
		return 0
	}
	return float64(s.UniqueOutputs) / float64(s.DefinedEntries) * 100
}
