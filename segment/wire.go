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
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the wire messages.
//
//	message Match {
//	  string stroke = 1;
//	  string full_text = 2;
//	}
//
//	message Bucket {
//	  repeated Match matches = 1;
//	}
const (
	matchStrokeField   protowire.Number = 1
	matchFullTextField protowire.Number = 2
	bucketMatchesField protowire.Number = 1
)

// AppendMatch appends the wire encoding of m to b.
func AppendMatch(b []byte, m Match) []byte {
	b = protowire.AppendTag(b, matchStrokeField, protowire.BytesType)
	b = protowire.AppendString(b, m.Stroke)
	b = protowire.AppendTag(b, matchFullTextField, protowire.BytesType)
	b = protowire.AppendString(b, m.FullText)
	return b
}

// AppendBucket appends the wire encoding of bucket to b.
func AppendBucket(b []byte, bucket Bucket) []byte {
	var m []byte
	for _, match := range bucket.Matches {
		m = AppendMatch(m[:0], match)
		b = protowire.AppendTag(b, bucketMatchesField, protowire.BytesType)
		b = protowire.AppendBytes(b, m)
	}
	return b
}

// AppendFrame appends bucket to b as a length-prefixed frame. Files are
// concatenations of frames.
func AppendFrame(b []byte, bucket Bucket) []byte {
	msg := AppendBucket(nil, bucket)
	b = protowire.AppendVarint(b, uint64(len(msg)))
	return append(b, msg...)
}

// UnmarshalMatch decodes a match from its wire encoding. Unknown fields are
// skipped.
func UnmarshalMatch(b []byte) (Match, error) {
	var m Match
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Match{}, fmt.Errorf("%w: match tag: %w", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case num == matchStrokeField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return Match{}, fmt.Errorf("%w: match stroke: %w", ErrCorrupt, protowire.ParseError(n))
			}
			m.Stroke = v
			b = b[n:]
		case num == matchFullTextField && typ == protowire.BytesType:
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return Match{}, fmt.Errorf("%w: match full text: %w", ErrCorrupt, protowire.ParseError(n))
			}
			m.FullText = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Match{}, fmt.Errorf("%w: match field %d: %w", ErrCorrupt, num, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}
	return m, nil
}

// UnmarshalBucket decodes a bucket from its wire encoding. Unknown fields
// are skipped.
func UnmarshalBucket(b []byte) (Bucket, error) {
	var bucket Bucket
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return Bucket{}, fmt.Errorf("%w: bucket tag: %w", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]

		if num != bucketMatchesField || typ != protowire.BytesType {
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return Bucket{}, fmt.Errorf("%w: bucket field %d: %w", ErrCorrupt, num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return Bucket{}, fmt.Errorf("%w: bucket match: %w", ErrCorrupt, protowire.ParseError(n))
		}
		b = b[n:]
		m, err := UnmarshalMatch(v)
		if err != nil {
			return Bucket{}, err
		}
		bucket.Matches = append(bucket.Matches, m)
	}
	return bucket, nil
}
