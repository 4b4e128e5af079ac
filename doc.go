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

// Package stenodict implements analysis of Plover stenography dictionaries
// in pure Go.
//
// A steno dictionary maps stroke sequences, chords separated by "/", to
// outputs written in Plover's output notation. For example:
//
//	{
//	  "KAT": "cat",
//	  "-G": "{^ing}",
//	  "TP-PL": "{.}"
//	}
//
// This package provides the dictionary type, merging of dictionaries in
// Plover's priority order, dictionary statistics and generation of
// autocomplete dictionaries. Outputs are parsed by the outline package and
// measured by the length package. Lookups by output text are provided by the
// lookup package and a persistent index of output prefixes and suffixes by
// the segment package.
//
// More info on the dictionary format can be found at this URL:
// https://plover.wiki/index.php/Dictionary_format
package stenodict
