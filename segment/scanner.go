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
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"google.golang.org/protobuf/encoding/protowire"
)

// maxFrameSize is the maximum size of an encoded bucket in a frame.
const maxFrameSize = 16 << 20

// Scanner scans the frames of a bucket file from start to end.
type Scanner struct {
	r      io.ReadCloser
	s      *bufio.Scanner
	bucket Bucket
	err    error
}

// NewScanner returns a new Scanner that reads frames from r. The Scanner
// assumes ownership of the reader and should be closed with the Close
// method.
func NewScanner(r io.ReadCloser) *Scanner {
	s := &Scanner{
		r: r,
		s: bufio.NewScanner(r),
	}
	s.s.Buffer(make([]byte, 0, 4096), maxFrameSize+binary.MaxVarintLen64)
	s.s.Split(splitFrame)
	return s
}

// Scan advances to the next frame. It returns false if the scan stops
// either by reaching the end of the file or an error.
func (s *Scanner) Scan() bool {
	if s.err != nil || !s.s.Scan() {
		return false
	}
	s.bucket, s.err = UnmarshalBucket(s.s.Bytes())
	return s.err == nil
}

// Bucket returns the bucket decoded from the current frame.
func (s *Scanner) Bucket() Bucket {
	return s.bucket
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	if err := s.s.Err(); err != nil {
		return fmt.Errorf("scanning segment frames: %w", err)
	}
	return nil
}

// Close closes the underlying reader.
func (s *Scanner) Close() error {
	if err := s.r.Close(); err != nil {
		return fmt.Errorf("closing segment file: %w", err)
	}
	return nil
}

// splitFrame splits a varint length-prefixed frame.
func splitFrame(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	size, n := protowire.ConsumeVarint(data)
	if n < 0 {
		if !atEOF && len(data) < binary.MaxVarintLen64 {
			// Request more data.
			return 0, nil, nil
		}
		return 0, nil, fmt.Errorf("%w: frame length: %w", ErrCorrupt, protowire.ParseError(n))
	}
	if size > maxFrameSize {
		return 0, nil, fmt.Errorf("%w: frame of %d bytes is too large", ErrCorrupt, size)
	}

	end := n + int(size)
	if len(data) >= end {
		return end, data[n:end], nil
	}
	if atEOF {
		return 0, nil, fmt.Errorf("%w: truncated frame", ErrCorrupt)
	}

	// Request more data.
	return 0, nil, nil
}

// Decode reads every frame from r and returns their matches concatenated
// into one bucket.
func Decode(r io.Reader) (Bucket, error) {
	s := NewScanner(io.NopCloser(r))
	var b Bucket
	for s.Scan() {
		b.Matches = append(b.Matches, s.Bucket().Matches...)
	}
	if err := s.Err(); err != nil {
		return Bucket{}, err
	}
	return b, nil
}
