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

package stenodict

import (
	"fmt"
	"strings"
)

// FormatCharacters returns s with its characters separated by spaces.
// Control characters, newlines and characters outside of printable ASCII
// are written as \x escapes so that they are visible in diagnostics.
func FormatCharacters(s string) string {
	var b strings.Builder
	for _, r := range s {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if r < 0x20 || r > 0x7e {
			fmt.Fprintf(&b, `\x%X`, r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
