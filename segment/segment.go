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

// Package segment implements a persistent index of the prefixes and
// suffixes of dictionary outputs.
//
// Every non-empty prefix and suffix of every plain text output is a key to
// a bucket of matches. A match records the strokes and the full output that
// contain the key. For example the output "cat" written by "KAT" adds the
// match {KAT, cat} to the prefix buckets "c", "ca" and "cat" and the suffix
// buckets "t", "at" and "cat".
//
// Buckets are append-only. The order of matches in a bucket is not
// significant.
package segment

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKind indicates that a bucket kind is not known.
	ErrInvalidKind = errors.New("invalid segment kind")

	// ErrInvalidFileName indicates that a file name is not a bucket file name.
	ErrInvalidFileName = errors.New("invalid segment file name")

	// ErrCorrupt indicates that bucket data could not be decoded.
	ErrCorrupt = errors.New("corrupt segment data")

	// ErrKeyTooLong indicates that a bucket key cannot be stored because its
	// file name would be too long.
	ErrKeyTooLong = errors.New("segment key too long")
)

// Kind is the kind of a bucket.
type Kind int

const (
	// Prefix buckets are keyed by the start of an output.
	Prefix Kind = iota

	// Suffix buckets are keyed by the end of an output.
	Suffix
)

// String returns "prefix" or "suffix".
func (k Kind) String() string {
	switch k {
	case Prefix:
		return "prefix"
	case Suffix:
		return "suffix"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind returned by [Kind.String].
func ParseKind(s string) (Kind, error) {
	switch s {
	case "prefix":
		return Prefix, nil
	case "suffix":
		return Suffix, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Match is a dictionary entry whose output contains a bucket's key.
type Match struct {
	// Stroke is the stroke sequence of the entry.
	Stroke string

	// FullText is the full output of the entry.
	FullText string
}

// Bucket is a list of matches.
type Bucket struct {
	Matches []Match
}
