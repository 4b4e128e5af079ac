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

	"github.com/ianlewis/go-stenodict/plover"
)

func newBuildCommand() *cli.Command {
	return &cli.Command{
		Name:  "build",
		Usage: "merge the enabled JSON dictionaries into one file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Usage:   "write the merged dictionary to `FILE`",
				Aliases: []string{"o"},
				Value:   "dictionary.merged.json",
			},
			&cli.BoolFlag{
				Name:               "dictzip",
				Usage:              "compress the merged dictionary with dictzip",
				DisableDefaultText: true,
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger(c)

			d, err := loadMergedDictionary(c, logger)
			if err != nil {
				return err
			}

			out := c.String("out")
			if err := plover.WriteDictionary(out, d, c.Bool("dictzip")); err != nil {
				return fmt.Errorf("%w: %w", ErrStenoutil, err)
			}

			fmt.Fprintf(c.App.Writer, "Merged %d entries into %s\n", len(d), out)
			return nil
		},
	}
}
