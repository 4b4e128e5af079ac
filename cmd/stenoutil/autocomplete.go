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

	"github.com/ianlewis/go-stenodict"
	"github.com/ianlewis/go-stenodict/plover"
)

func newAutocompleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "autocomplete",
		Usage: "generate a dictionary of shortened multi-stroke entries",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "dictionary",
				Usage:   "generate entries from `FILE` instead of the enabled dictionaries; may be repeated, highest priority first",
				Aliases: []string{"d"},
			},
			&cli.IntFlag{
				Name:    "min-strokes",
				Usage:   "keep at least `N` strokes in shortened entries",
				Aliases: []string{"m"},
				Value:   2,
			},
			&cli.StringFlag{
				Name:    "out",
				Usage:   "write the generated dictionary to `FILE`",
				Aliases: []string{"o"},
				Value:   "autocomplete.json",
			},
		},
		Action: runAutocomplete,
	}
}

func runAutocomplete(c *cli.Context) error {
	logger := newLogger(c)
	w := c.App.Writer

	minStrokes := c.Int("min-strokes")
	if minStrokes < 1 {
		return fmt.Errorf("%w: --min-strokes must be at least 1", ErrFlagParse)
	}

	var loaded []plover.LoadedDictionary
	if paths := c.StringSlice("dictionary"); len(paths) > 0 {
		for _, path := range paths {
			d, err := plover.ReadDictionary(path)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrStenoutil, err)
			}
			loaded = append(loaded, plover.LoadedDictionary{
				Config:     plover.DictionaryConfig{Enabled: true, Path: path},
				Dictionary: d,
			})
		}
	} else {
		conf, pc, err := loadPloverConfig(c, logger)
		if err != nil {
			return err
		}
		loaded, err = plover.LoadDictionaries(conf, pc.EnabledJSONDictionaries())
		if err != nil {
			return fmt.Errorf("%w: %w", ErrStenoutil, err)
		}
	}

	fmt.Fprintln(w, "Generated autocompletions:")
	generated := make([]stenodict.Dictionary, 0, len(loaded))
	for _, l := range loaded {
		g := stenodict.Autocomplete(l.Dictionary, minStrokes)
		fmt.Fprintf(w, " - %s: %d entries => %d entries\n", l.Config.Path, len(l.Dictionary), len(g))
		generated = append(generated, g)
	}

	out := c.String("out")
	if err := plover.WriteDictionary(out, stenodict.Merge(generated...), false); err != nil {
		return fmt.Errorf("%w: %w", ErrStenoutil, err)
	}
	return nil
}
