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

// Package folding implements the text folding used to normalize dictionary
// outputs and queries before they are compared.
package folding

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// WhitespaceFolder is a [transform.Transformer] that trims leading and
// trailing whitespace and collapses internal whitespace runs into a single
// ASCII space.
type WhitespaceFolder struct {
	// seenText is true once a non-whitespace rune has been written.
	seenText bool

	// pending is true while inside a whitespace run that follows text.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (w *WhitespaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(r) {
			if w.seenText {
				w.pending = true
			}
			nSrc += size
			continue
		}

		need := utf8.RuneLen(r)
		if need < 0 {
			need = len(string(utf8.RuneError))
		}
		if w.pending {
			need++
		}
		if nDst+need > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if w.pending {
			dst[nDst] = ' '
			nDst++
			w.pending = false
		}
		nDst += utf8.EncodeRune(dst[nDst:], r)
		nSrc += size
		w.seenText = true
	}
	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (w *WhitespaceFolder) Reset() {
	*w = WhitespaceFolder{}
}

// New returns a transformer that folds whitespace and lower cases text.
// Transformers are stateful so a new one is needed for each use.
func New() transform.Transformer {
	return transform.Chain(&WhitespaceFolder{}, cases.Lower(language.Und))
}

// String folds s using a new transformer returned by [New].
func String(s string) (string, error) {
	folded, _, err := transform.String(New(), s)
	if err != nil {
		return "", fmt.Errorf("folding %q: %w", s, err)
	}
	return folded, nil
}

// Lower lower cases s without folding whitespace.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
