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

// Package outline implements parsing of Plover dictionary outputs.
//
// A dictionary output (an outline) is written in a small notation made up of:
//  1. Literal text, possibly containing the escape sequences \{ and \}.
//  2. Meta-commands delimited by braces. e.g. {^ing}, {-|}, {#Control_L(c)},
//     {PLOVER:suspend}, {MODE:caps}.
//  3. A standalone macro, e.g. =undo or =retrospective_toggle_asterisk.
//
// The notation is described by a grammar that is embedded in this package
// (plover.ebnf) and compiled once into a rule table. Parsing an outline
// produces a tree of [Node] values whose types are the names of the grammar
// rules that matched.
//
// Parsing never fails fatally. Malformed input yields a root node carrying
// parse errors and the unconsumed remainder of the input. Only nodes for
// which [Node.Parsed] returns true should be used for further analysis.
//
// More info on the output notation can be found at this URL:
// https://plover.wiki/index.php/Dictionary_format
package outline
