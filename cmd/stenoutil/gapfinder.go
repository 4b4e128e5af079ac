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
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-stenodict/lookup"
	"github.com/ianlewis/go-stenodict/orthography"
)

// defaultWordsURL lists the 10,000 most common US English words in order of
// popularity.
const defaultWordsURL = "https://github.com/first20hours/google-10000-english/raw/master/google-10000-english-usa.txt"

func newGapFinderCommand() *cli.Command {
	return &cli.Command{
		Name:  "gap-finder",
		Usage: "list popular words that the dictionaries cannot write",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "words",
				Usage:   "read words in order of popularity from `FILE` or URL",
				Aliases: []string{"w"},
				Value:   defaultWordsURL,
			},
			&cli.BoolFlag{
				Name:               "suggest",
				Usage:              "suggest combinations of entries and suffixes for missing words",
				DisableDefaultText: true,
			},
		},
		Action: runGapFinder,
	}
}

func runGapFinder(c *cli.Context) error {
	logger := newLogger(c)
	w := c.App.Writer

	words, err := readWords(c.Context, c.String("words"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStenoutil, err)
	}
	logger.Debug("read word list", "source", c.String("words"), "words", len(words))

	d, err := loadMergedDictionary(c, logger)
	if err != nil {
		return err
	}

	l := lookup.New(d, nil)
	rules := orthography.DefaultRules()
	for i, word := range words {
		if len(l.Strokes(word)) > 0 {
			continue
		}
		fmt.Fprintf(w, "%d: Dictionary does not contain '%s'\n", i+1, word)

		if !c.Bool("suggest") {
			continue
		}
		for _, s := range l.Suggest(word, rules) {
			fmt.Fprintf(w, "   - %s (%s + %s)\n", s.Strokes, s.Root, s.Suffix)
		}
	}

	return nil
}

// readWords reads a word list from a file or an http(s) URL.
func readWords(ctx context.Context, src string) ([]string, error) {
	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		f, err := os.Open(src)
		if err != nil {
			return nil, fmt.Errorf("opening word list: %w", err)
		}
		defer f.Close()
		return parseWords(f)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("fetching word list: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching word list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching word list: %s", resp.Status)
	}
	return parseWords(resp.Body)
}

// parseWords returns the non-empty lines of r with surrounding whitespace
// removed.
func parseWords(r io.Reader) ([]string, error) {
	var words []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if word := strings.TrimSpace(s.Text()); word != "" {
			words = append(words, word)
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading word list: %w", err)
	}
	return words, nil
}
