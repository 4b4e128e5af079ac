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

package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-stenodict"
	"github.com/ianlewis/go-stenodict/lookup"
	"github.com/ianlewis/go-stenodict/plover"
)

func newInfoCommand() *cli.Command {
	return &cli.Command{
		Name:   "info",
		Usage:  "print the configuration and statistics for each dictionary",
		Action: runInfo,
	}
}

func runInfo(c *cli.Context) error {
	logger := newLogger(c)
	w := c.App.Writer

	conf, pc, err := loadPloverConfig(c, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "## Plover Configuration")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "You have %d dictionaries configured in Plover, in the following order:\n", len(pc.Dictionaries))
	for _, d := range pc.Dictionaries {
		status := ""
		if !d.Enabled {
			status = " (disabled)"
		}
		fmt.Fprintf(w, " - %s%s\n", d.Path, status)
	}
	fmt.Fprintln(w)

	loaded, err := plover.LoadDictionaries(conf, pc.EnabledJSONDictionaries())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStenoutil, err)
	}

	fmt.Fprintln(w, "## Individual JSON Dictionary Statistics")
	fmt.Fprintln(w)
	for _, l := range loaded {
		printStats(w, logger, l.Config.Path, stenodict.CalculateStats(l.Dictionary))
	}

	merged := plover.MergeDictionaries(loaded)
	lu := lookup.New(merged, nil)

	fmt.Fprintln(w, "## Merged Dictionary")
	fmt.Fprintln(w)
	tbl := table.New("Entries", "Plain Text", "Words", "Prefixes", "Suffixes", "Unparsed").WithWriter(w)
	tbl.AddRow(
		len(merged),
		len(lu.Verbatim()),
		len(lu.Inverted()),
		len(lu.PrefixStrokes()),
		len(lu.SuffixStrokes()),
		len(lu.Failed()),
	)
	tbl.Print()

	return nil
}

func printStats(w io.Writer, logger *slog.Logger, path string, stats *stenodict.Stats) {
	fmt.Fprintf(w, "### %s\n", path)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Unique outputs: %d / %d (%.2f%%)\n", stats.UniqueOutputs, stats.DefinedEntries, stats.UniqueRatio())
	fmt.Fprintln(w)

	tbl := table.New("Strokes", "Entries").WithWriter(w)
	for _, n := range stats.StrokeCounts() {
		tbl.AddRow(n, stats.EntriesByStrokeCount[n])
	}
	tbl.Print()
	fmt.Fprintln(w)

	tbl = table.New("Characters", "Entries", "Strokes (ave)").WithWriter(w)
	for _, n := range stats.Lengths() {
		tbl.AddRow(n, len(stats.StrokesByLength[n]), fmt.Sprintf("%.2f", stats.AverageStrokes(n)))
	}
	tbl.Print()
	fmt.Fprintln(w)

	for _, f := range stats.Failures {
		logger.Warn("could not calculate output length",
			"dictionary", path,
			"strokes", f.Strokes,
			"output", f.Output,
			"characters", stenodict.FormatCharacters(f.Output),
			"error", f.Err,
		)
	}
	if len(stats.Failures) > 0 {
		fmt.Fprintf(w, "%d entries could not be measured\n", len(stats.Failures))
		fmt.Fprintln(w)
	}
}
