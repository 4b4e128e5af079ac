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

package segment

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"

	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-stenodict"
)

// Builder writes the prefixes and suffixes of dictionary outputs to a Store.
type Builder struct {
	// Store receives the buckets.
	Store Store

	// Workers is the maximum number of concurrent appends. If zero,
	// runtime.GOMAXPROCS(0) is used.
	Workers int

	// Fold maps an output to the text its segments are taken from. The
	// unfolded output is stored as the match text. If nil, outputs are
	// segmented as is.
	Fold func(string) string

	// Logger receives a message for each failed append. If nil, nothing is
	// logged.
	Logger *slog.Logger
}

// Result is the outcome of [Builder.Build].
type Result struct {
	// Written is the number of successful appends.
	Written int

	// Failed is the number of failed appends.
	Failed int

	// Skipped is the number of segments whose key could not be stored.
	// Skipped segments are not failures.
	Skipped int

	// Err combines the errors of all failed appends.
	Err error
}

type task struct {
	key  string
	kind Kind
}

// Build appends a match for every non-empty prefix and suffix of every
// output in entries. Entries are processed in stroke order. The appends for
// one entry run concurrently and a failed append never stops the others.
func (b *Builder) Build(entries stenodict.Dictionary) Result {
	logger := b.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var r Result
	for _, strokes := range entries.SortedStrokes() {
		text := entries[strokes]
		key := text
		if b.Fold != nil {
			key = b.Fold(text)
		}
		tasks := segments(key)
		bucket := Bucket{
			Matches: []Match{{
				Stroke:   strokes,
				FullText: text,
			}},
		}

		outcomes := make([]error, len(tasks))
		var g errgroup.Group
		g.SetLimit(workers)
		for i, t := range tasks {
			g.Go(func() error {
				outcomes[i] = b.Store.Append(t.key, t.kind, bucket)
				return nil
			})
		}
		_ = g.Wait()

		for i, err := range outcomes {
			t := tasks[i]
			if err == nil {
				r.Written++
				continue
			}
			if errors.Is(err, ErrKeyTooLong) {
				logger.Debug("skipping segment",
					"strokes", strokes,
					"kind", t.kind.String(),
					"error", err,
				)
				r.Skipped++
				continue
			}
			logger.Warn("appending segment failed",
				"strokes", strokes,
				"segment", t.key,
				"kind", t.kind.String(),
				"error", err,
			)
			r.Failed++
			r.Err = multierr.Append(r.Err, fmt.Errorf("%s %q for %q: %w", t.kind, t.key, strokes, err))
		}
	}

	logger.Debug("built segment index",
		"entries", len(entries),
		"written", r.Written,
		"failed", r.Failed,
		"skipped", r.Skipped,
	)
	return r
}

// segments returns the appends for every non-empty prefix and suffix of
// text split on rune boundaries.
func segments(text string) []task {
	var tasks []task
	for i := range text {
		if i > 0 {
			tasks = append(tasks, task{key: text[:i], kind: Prefix})
		}
		tasks = append(tasks, task{key: text[i:], kind: Suffix})
	}
	if text != "" {
		tasks = append(tasks, task{key: text, kind: Prefix})
	}
	return tasks
}
