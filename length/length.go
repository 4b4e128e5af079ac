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

// Package length estimates the number of characters an outline produces
// when it is written out by Plover.
//
// Estimates are approximate. Every atom that writes text is counted as if
// it were followed by a separating space, which overcounts attached and
// glued output.
package length

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ianlewis/go-stenodict/outline"
)

// CalculationError is returned when the length of an outline cannot be
// determined. Messages holds one entry for each problem found.
type CalculationError struct {
	Messages []string
}

// Error implements [error.Error].
func (e *CalculationError) Error() string {
	return "calculating length: " + strings.Join(e.Messages, "; ")
}

// IsCalculationError returns true if err is or wraps a [*CalculationError].
func IsCalculationError(err error) bool {
	var cerr *CalculationError
	return errors.As(err, &cerr)
}

// Calculate returns the expected number of characters written by the
// outline rooted at root. root must be a fully parsed [outline.Outline]
// node. All problems in the tree are reported together in a single
// [*CalculationError].
func Calculate(root *outline.Node) (int, error) {
	if root == nil {
		return 0, &CalculationError{Messages: []string{"outline is nil"}}
	}
	if root.Type() != outline.Outline {
		return 0, &CalculationError{Messages: []string{
			fmt.Sprintf("expected a complete %q but the root type was %q", outline.Outline, root.Type()),
		}}
	}
	if !root.Parsed() {
		return 0, &CalculationError{Messages: []string{
			fmt.Sprintf("outline %q was not fully parsed", root.Text()+root.Rest()),
		}}
	}

	var messages []string
	total := 0
	for _, atom := range root.Children() {
		switch atom.Type() {
		case outline.Macro:
			// Macros run commands and write nothing directly.
			continue
		case outline.Atom:
		default:
			messages = append(messages, fmt.Sprintf("unexpected %q in outline: %s", atom.Type(), atom.Text()))
			continue
		}

		children := atom.Children()
		if len(children) != 1 {
			messages = append(messages, fmt.Sprintf("expected the atom to have one and only one child (%d): %s", len(children), atom.Text()))
			continue
		}

		n, sep, err := atomLength(children[0])
		if err != nil {
			messages = append(messages, err.Error())
			continue
		}
		total += n
		if sep {
			total++
		}
	}

	if len(messages) > 0 {
		return 0, &CalculationError{Messages: messages}
	}
	return total, nil
}

// atomLength returns the length of the atom's only child and whether it is
// followed by a separator.
func atomLength(n *outline.Node) (int, bool, error) {
	switch n.Type() {
	case outline.Verbatim:
		l := verbatimLength(n)
		return l, l > 0, nil
	case outline.ResetFormatting:
		return 0, false, nil
	case outline.MetaCommand:
		cmds := n.Children()
		if len(cmds) != 1 {
			return 0, false, fmt.Errorf("expected the meta-command to have one and only one child (%d): %s", len(cmds), n.Text())
		}
		cmd := cmds[0]
		l := metaCommandLength(cmd)
		switch cmd.Type() {
		case outline.GlueMetaCommand,
			outline.IfNextMatchesMetaCommand,
			outline.RetroCurrencyMetaCommand,
			outline.AttachMetaCommand,
			outline.CarryCapitalisationMetaCommand:
			return l, l > 0, nil
		default:
			// Punctuation attaches to the previous word and other commands
			// only adjust spacing.
			return l, false, nil
		}
	default:
		return 0, false, fmt.Errorf("could not calculate length for atom (%s): %s", n.Type(), n.Text())
	}
}

// metaCommandLength returns the number of characters written by the
// command inside a meta-command.
func metaCommandLength(cmd *outline.Node) int {
	switch cmd.Type() {
	case outline.GlueMetaCommand:
		if v := cmd.Child(outline.Verbatim); v != nil {
			return verbatimLength(v)
		}
		return 0

	case outline.IfNextMatchesMetaCommand:
		var sections []*outline.Node
		for _, c := range cmd.Children() {
			if c.Type() == outline.MatchSection {
				sections = append(sections, c)
			}
		}
		if len(sections) != 3 {
			return 0
		}
		// Either branch may be written so use the average rounded up.
		sum := escapedLength(sections[1].Text()) + escapedLength(sections[2].Text())
		return (sum + 1) / 2

	case outline.LegacyMetaCommand:
		for _, c := range cmd.Children() {
			switch c.Type() {
			case outline.RetroDeleteSpace:
				return -1
			case outline.RetroInsertSpace:
				return 1
			}
		}
		return 0

	case outline.CommaMetaCommand, outline.StopMetaCommand:
		return 1

	case outline.RetroCurrencyMetaCommand:
		l := 0
		for _, c := range cmd.Children() {
			if c.Type() == outline.RetroCurrencyStart || c.Type() == outline.RetroCurrencyEnd {
				l += utf8.RuneCountInString(c.Text())
			}
		}
		return l

	case outline.AttachMetaCommand:
		for _, c := range cmd.Children() {
			if v := c.Child(outline.AttachVerbatim); v != nil {
				return escapedLength(v.Text())
			}
		}
		return 0

	case outline.CarryCapitalisationMetaCommand:
		if v := cmd.Child(outline.AttachVerbatim); v != nil {
			return escapedLength(v.Text())
		}
		return 0

	default:
		// Case changes, macros, Plover commands, modes, key combos, word
		// ends and unknown commands write no predictable text.
		return 0
	}
}

// verbatimLength returns the number of characters written by a verbatim
// node. Escape sequences write a single brace.
func verbatimLength(n *outline.Node) int {
	escapes := 0
	for _, seg := range n.Children() {
		if outline.Is(seg, outline.VerbatimSegment, outline.EscapeSequence) {
			escapes++
		}
	}
	return utf8.RuneCountInString(n.Text()) - escapes
}

// escapedLength returns the number of characters in s where a backslash
// and the character following it count as one.
func escapedLength(s string) int {
	l := 0
	for i := 0; i < len(s); {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		l++
	}
	return l
}
