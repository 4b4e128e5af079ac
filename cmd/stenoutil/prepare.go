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

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-stenodict/lookup"
	"github.com/ianlewis/go-stenodict/segment"
)

// defaultGenDir is the default directory for generated files.
const defaultGenDir = ".steno-generated"

func newPrepareCommand() *cli.Command {
	return &cli.Command{
		Name:  "prepare",
		Usage: "build the prefix and suffix index of plain text entries",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Usage:   "write bucket files to `DIR`",
				Aliases: []string{"o"},
				Value:   defaultGenDir,
			},
			&cli.StringFlag{
				Name:  "sqlite",
				Usage: "write the index to the SQLite database `FILE` instead of bucket files",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "append at most `N` segments concurrently (0 uses all CPUs)",
			},
		},
		Action: runPrepare,
	}
}

func runPrepare(c *cli.Context) error {
	logger := newLogger(c)

	d, err := loadMergedDictionary(c, logger)
	if err != nil {
		return err
	}

	l := lookup.New(d, nil)
	for _, strokes := range l.Failed() {
		logger.Debug("skipping unparsed entry", "strokes", strokes, "output", d[strokes])
	}

	dest := c.String("out")
	var store segment.Store
	if path := c.String("sqlite"); path != "" {
		s, err := segment.OpenSQLite(path)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStenoutil, err)
		}
		defer s.Close()
		store, dest = s, path
	} else {
		store = segment.NewFileStore(dest)
	}

	b := &segment.Builder{
		Store:   store,
		Workers: c.Int("workers"),
		Fold:    lookup.Normalize,
		Logger:  logger,
	}
	verbatim := l.VerbatimText()
	r := b.Build(verbatim)

	fmt.Fprintf(c.App.Writer,
		"Indexed %d plain text entries in %s: %d segments written, %d failed, %d skipped\n",
		len(verbatim), dest, r.Written, r.Failed, r.Skipped)
	if r.Failed > 0 {
		return fmt.Errorf("%w: %d segment writes failed", ErrStenoutil, r.Failed)
	}
	return nil
}
