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
	"errors"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store appends matches to buckets.
type Store interface {
	// Append adds the matches of b to the bucket for key and kind. Appends
	// to different buckets may happen concurrently.
	Append(key string, kind Kind, b Bucket) error
}

// Reader reads buckets.
type Reader interface {
	// Lookup returns the matches in the bucket for substring and kind. A
	// bucket that was never written has no matches.
	Lookup(substring string, kind Kind) ([]Match, error)
}

// numLocks is the number of lock stripes used by a FileStore.
const numLocks = 64

// FileStore stores each bucket in its own file in a directory. Each append
// writes one frame with a single write to a file opened for appending.
type FileStore struct {
	dir   string
	mkdir func() error
	locks [numLocks]sync.Mutex
}

// NewFileStore returns a FileStore for the given directory. The directory is
// created on the first append.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir: dir,
		mkdir: sync.OnceValue(func() error {
			return os.MkdirAll(dir, 0o755)
		}),
	}
}

// Dir returns the directory holding the bucket files.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the path of the file holding the bucket for key and kind.
func (s *FileStore) Path(key string, kind Kind) string {
	return filepath.Join(s.dir, FileName(key, kind))
}

// Append implements [Store.Append].
func (s *FileStore) Append(key string, kind Kind, b Bucket) error {
	if name := FileName(key, kind); len(name) > maxFileNameLen {
		return fmt.Errorf("%w: %d byte file name for %s", ErrKeyTooLong, len(name), kind)
	}
	if err := s.mkdir(); err != nil {
		return fmt.Errorf("creating segment directory: %w", err)
	}

	frame := AppendFrame(nil, b)
	path := s.Path(key, kind)

	mu := s.lock(path)
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening segment file: %w", err)
	}
	if _, err := f.Write(frame); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing segment file %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing segment file %q: %w", path, err)
	}
	return nil
}

// Lookup implements [Reader.Lookup].
func (s *FileStore) Lookup(substring string, kind Kind) ([]Match, error) {
	if len(FileName(substring, kind)) > maxFileNameLen {
		return []Match{}, nil
	}
	f, err := os.Open(s.Path(substring, kind))
	if errors.Is(err, fs.ErrNotExist) {
		return []Match{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening segment file: %w", err)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading segment file %q: %w", f.Name(), err)
	}
	if b.Matches == nil {
		return []Match{}, nil
	}
	return b.Matches, nil
}

func (s *FileStore) lock(path string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return &s.locks[h.Sum32()%numLocks]
}
