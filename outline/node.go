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

package outline

import (
	"fmt"
	"io"
	"strings"
)

// Type is the type of a syntax node. Node types are the names of the
// grammar rules that produced them.
type Type string

// Node types produced by the grammar.
const (
	Outline                        Type = "outline"
	Macro                          Type = "macro"
	MacroName                      Type = "macroName"
	MacroArgument                  Type = "macroArgument"
	Atom                           Type = "atom"
	Verbatim                       Type = "verbatim"
	VerbatimSegment                Type = "verbatimSegment"
	EscapeSequence                 Type = "escapeSequence"
	VerbatimSingle                 Type = "verbatimSingle"
	VerbatimSpace                  Type = "verbatimSpace"
	ResetFormatting                Type = "resetFormatting"
	MetaCommand                    Type = "metaCommand"
	CaseMetaCommand                Type = "caseMetaCommand"
	RetroCase                      Type = "retroCase"
	CapFirstWord                   Type = "capFirstWord"
	LowerFirstChar                 Type = "lowerFirstChar"
	UpperFirstWord                 Type = "upperFirstWord"
	CarryCapitalisationMetaCommand Type = "carryCapitalisationMetaCommand"
	GlueMetaCommand                Type = "glueMetaCommand"
	IfNextMatchesMetaCommand       Type = "ifNextMatchesMetaCommand"
	MatchSection                   Type = "matchSection"
	LegacyMetaCommand              Type = "legacyMetaCommand"
	RetroDeleteSpace               Type = "retroDeleteSpace"
	RetroInsertSpace               Type = "retroInsertSpace"
	RepeatLastStroke               Type = "repeatLastStroke"
	RetroToggleAsterisk            Type = "retroToggleAsterisk"
	RetroCurrencyMetaCommand       Type = "retroCurrencyMetaCommand"
	RetroCurrencyStart             Type = "retroCurrencyStart"
	RetroCurrencyEnd               Type = "retroCurrencyEnd"
	MacroMetaCommand               Type = "macroMetaCommand"
	MacroMetaCommandName           Type = "macroMetaCommandName"
	MacroMetaCommandArg            Type = "macroMetaCommandArg"
	PloverMetaCommand              Type = "ploverMetaCommand"
	PloverCommandName              Type = "ploverCommandName"
	PloverMetaCommandArg           Type = "ploverMetaCommandArg"
	ModeMetaCommand                Type = "modeMetaCommand"
	SetSpaceOutputMode             Type = "setSpaceOutputMode"
	SetSpaceTo                     Type = "setSpaceTo"
	SimpleOutputMode               Type = "simpleOutputMode"
	KeyComboMetaCommand            Type = "keyComboMetaCommand"
	KeyCombos                      Type = "keyCombos"
	SingleKeyCombo                 Type = "singleKeyCombo"
	ModifierGroup                  Type = "modifierGroup"
	Modifier                       Type = "modifier"
	CommaMetaCommand               Type = "commaMetaCommand"
	StopMetaCommand                Type = "stopMetaCommand"
	WordEndMetaCommand             Type = "wordEndMetaCommand"
	AttachMetaCommand              Type = "attachMetaCommand"
	AttachStart                    Type = "attachStart"
	AttachEnd                      Type = "attachEnd"
	AttachVerbatim                 Type = "attachVerbatim"
)

// nodeTypes is every node type the grammar must define.
var nodeTypes = []Type{
	Outline, Macro, MacroName, MacroArgument, Atom, Verbatim, VerbatimSegment,
	EscapeSequence, VerbatimSingle, VerbatimSpace, ResetFormatting,
	MetaCommand, CaseMetaCommand, RetroCase, CapFirstWord, LowerFirstChar,
	UpperFirstWord, CarryCapitalisationMetaCommand, GlueMetaCommand,
	IfNextMatchesMetaCommand, MatchSection, LegacyMetaCommand,
	RetroDeleteSpace, RetroInsertSpace, RepeatLastStroke, RetroToggleAsterisk,
	RetroCurrencyMetaCommand, RetroCurrencyStart, RetroCurrencyEnd,
	MacroMetaCommand, MacroMetaCommandName, MacroMetaCommandArg,
	PloverMetaCommand, PloverCommandName, PloverMetaCommandArg,
	ModeMetaCommand, SetSpaceOutputMode, SetSpaceTo, SimpleOutputMode,
	KeyComboMetaCommand, KeyCombos, SingleKeyCombo, ModifierGroup, Modifier,
	CommaMetaCommand, StopMetaCommand, WordEndMetaCommand, AttachMetaCommand,
	AttachStart, AttachEnd, AttachVerbatim,
}

// Node is a node in an outline syntax tree. Nodes are immutable once
// returned by the parser.
type Node struct {
	typ      Type
	text     string
	start    int
	end      int
	children []*Node

	// errors and rest are only set on the root node.
	errors []*ParseError
	rest   string
}

// NewNode returns a node that was not produced by the parser. It is
// mostly useful for building trees in tests. Offsets of the returned node
// are relative to its own text.
func NewNode(t Type, text string, children ...*Node) *Node {
	return &Node{
		typ:      t,
		text:     text,
		end:      len(text),
		children: children,
	}
}

// Type returns the node's type.
func (n *Node) Type() Type {
	return n.typ
}

// Text returns the exact source text matched by the node.
func (n *Node) Text() string {
	return n.text
}

// Start returns the byte offset of the node's text in the parsed input.
func (n *Node) Start() int {
	return n.start
}

// End returns the byte offset just after the node's text in the parsed input.
func (n *Node) End() int {
	return n.end
}

// Children returns the node's children in source order. The returned slice
// must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns the first direct child of the given type or nil.
func (n *Node) Child(t Type) *Node {
	for _, c := range n.children {
		if c.typ == t {
			return c
		}
	}
	return nil
}

// Errors returns the parse errors recorded on a root node.
func (n *Node) Errors() []*ParseError {
	return n.errors
}

// Rest returns the input left unconsumed by the parser. It is only set on
// root nodes.
func (n *Node) Rest() string {
	return n.rest
}

// Parsed returns true if the node was parsed without errors and the whole
// input was consumed.
func (n *Node) Parsed() bool {
	return n != nil && len(n.errors) == 0 && n.rest == ""
}

// String returns the tree rendered as indented "- type (text)" lines.
func (n *Node) String() string {
	var b strings.Builder
	printNode(&b, n, 0)
	return b.String()
}

// Print writes the tree rooted at n to w as indented "- type (text)" lines.
func Print(w io.Writer, n *Node) error {
	if _, err := io.WriteString(w, n.String()); err != nil {
		return fmt.Errorf("printing outline: %w", err)
	}
	return nil
}

func printNode(b *strings.Builder, n *Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	fmt.Fprintf(b, "- %s (%s)\n", n.typ, n.text)
	for _, c := range n.children {
		printNode(b, c, depth+1)
	}
}

// Is returns true if the path of types starting at n matches path exactly.
// path[0] must be the type of n and every subsequent type must be the type
// of the only child of the previous node. The last node on the path may
// have any number of children.
//
// For example, Is(n, Outline, Atom, Verbatim) is true when n is an outline
// made up of nothing but a single run of literal text.
func Is(n *Node, path ...Type) bool {
	if n == nil || len(path) == 0 {
		return false
	}
	if n.typ != path[0] {
		return false
	}
	for _, t := range path[1:] {
		if len(n.children) != 1 {
			return false
		}
		n = n.children[0]
		if n.typ != t {
			return false
		}
	}
	return true
}
