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

package segment

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

const (
	// hexPrefix starts the names of buckets whose keys are hex encoded.
	hexPrefix = "hex-"

	fileExt = ".bin"

	// maxFileNameLen is the longest file name most file systems accept.
	maxFileNameLen = 255
)

var literalName = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// FileName returns the name of the file holding the bucket for substring.
// Alphanumeric substrings are used as is. Other substrings are written as
// "hex-" followed by the lower case hex encoding of their UTF-8 bytes.
//
// For example:
//
//	FileName("cat", Prefix)  // cat.prefix.bin
//	FileName("c'a", Suffix)  // hex-632761.suffix.bin
func FileName(substring string, kind Kind) string {
	name := substring
	if !literalName.MatchString(substring) {
		name = hexPrefix + hex.EncodeToString([]byte(substring))
	}
	return name + "." + kind.String() + fileExt
}

// ParseFileName returns the substring and kind of a bucket file name
// returned by [FileName].
func ParseFileName(name string) (string, Kind, error) {
	base, ok := strings.CutSuffix(name, fileExt)
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	kind, err := ParseKind(base[i+1:])
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q: %w", ErrInvalidFileName, name, err)
	}

	key := base[:i]
	if encoded, ok := strings.CutPrefix(key, hexPrefix); ok {
		b, err := hex.DecodeString(encoded)
		if err != nil {
			return "", 0, fmt.Errorf("%w: %q: %w", ErrInvalidFileName, name, err)
		}
		return string(b), kind, nil
	}
	if !literalName.MatchString(key) {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return key, kind, nil
}
