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
	"cmp"
	"fmt"
	"slices"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-stenodict/lookup"
	"github.com/ianlewis/go-stenodict/segment"
)

func newSegmentsCommand() *cli.Command {
	return &cli.Command{
		Name:      "segments",
		Usage:     "list the entries whose output starts or ends with a string",
		ArgsUsage: "QUERY",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "kind",
				Usage:   "match the `KIND` of segment (prefix or suffix)",
				Aliases: []string{"k"},
				Value:   segment.Prefix.String(),
			},
			&cli.StringFlag{
				Name:  "dir",
				Usage: "read bucket files from `DIR`",
				Value: defaultGenDir,
			},
			&cli.StringFlag{
				Name:  "sqlite",
				Usage: "read the index from the SQLite database `FILE` instead of bucket files",
			},
		},
		Action: runSegments,
	}
}

func runSegments(c *cli.Context) error {
	w := c.App.Writer

	if c.NArg() != 1 {
		return fmt.Errorf("%w: expected one QUERY argument, got %d", ErrFlagParse, c.NArg())
	}
	kind, err := segment.ParseKind(c.String("kind"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFlagParse, err)
	}
	query := lookup.Normalize(c.Args().First())

	var r segment.Reader
	if path := c.String("sqlite"); path != "" {
		s, err := segment.OpenSQLite(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStenoutil, err)
		}
		defer s.Close()
		r = s
	} else {
		r = segment.NewFileStore(c.String("dir"))
	}

	matches, err := r.Lookup(query, kind)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStenoutil, err)
	}
	if len(matches) == 0 {
		fmt.Fprintf(w, "No entries with %s %q\n", kind, query)
		return nil
	}

	slices.SortFunc(matches, func(a, b segment.Match) int {
		return cmp.Or(
			cmp.Compare(a.FullText, b.FullText),
			cmp.Compare(a.Stroke, b.Stroke),
		)
	})

	tbl := table.New("Strokes", "Output").WithWriter(w)
	for _, m := range matches {
		tbl.AddRow(m.Stroke, m.FullText)
	}
	tbl.Print()
	return nil
}
