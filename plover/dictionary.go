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

package plover

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ianlewis/go-dictzip"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/ianlewis/go-stenodict"
)

// dictZipExt is the extension of dictzip compressed dictionaries.
const dictZipExt = ".dz"

// ErrInvalidDictionary indicates that a dictionary file could not be
// decoded.
var ErrInvalidDictionary = errors.New("invalid dictionary")

// LoadedDictionary is a dictionary read from the assets directory.
type LoadedDictionary struct {
	Config     DictionaryConfig
	Dictionary stenodict.Dictionary
}

// ReadDictionary reads a JSON dictionary from path. Files ending in ".dz"
// are decompressed.
func ReadDictionary(path string) (stenodict.Dictionary, error) {
	var r io.ReadCloser
	var err error
	r, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer r.Close()

	// dictzip files are valid gzip files.
	if strings.HasSuffix(strings.ToLower(path), dictZipExt) {
		r, err = gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: opening %q: %w", ErrInvalidDictionary, path, err)
		}
		defer r.Close()
	}

	d, err := DecodeDictionary(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return d, nil
}

// DecodeDictionary decodes a JSON dictionary.
func DecodeDictionary(r io.Reader) (stenodict.Dictionary, error) {
	d := stenodict.Dictionary{}
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDictionary, err)
	}
	return d, nil
}

// LoadDictionaries reads the given dictionaries concurrently. The result is
// in the same order as dicts. All dictionaries are read even if some fail
// and the errors are combined.
func LoadDictionaries(c *Config, dicts []DictionaryConfig) ([]LoadedDictionary, error) {
	loaded := make([]LoadedDictionary, len(dicts))
	errs := make([]error, len(dicts))

	var g errgroup.Group
	for i, dc := range dicts {
		g.Go(func() error {
			d, err := ReadDictionary(c.DictionaryPath(dc))
			loaded[i] = LoadedDictionary{
				Config:     dc,
				Dictionary: d,
			}
			errs[i] = err
			return nil
		})
	}
	_ = g.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}
	return loaded, nil
}

// MergeDictionaries merges loaded dictionaries. Earlier dictionaries take
// precedence.
func MergeDictionaries(loaded []LoadedDictionary) stenodict.Dictionary {
	dicts := make([]stenodict.Dictionary, 0, len(loaded))
	for _, l := range loaded {
		dicts = append(dicts, l.Dictionary)
	}
	return stenodict.Merge(dicts...)
}

// Load reads the Plover configuration named by c and returns its enabled
// JSON dictionaries merged in priority order.
func Load(c *Config) (stenodict.Dictionary, error) {
	pc, err := LoadPloverConfig(c)
	if err != nil {
		return nil, err
	}
	loaded, err := LoadDictionaries(c, pc.EnabledJSONDictionaries())
	if err != nil {
		return nil, err
	}
	return MergeDictionaries(loaded), nil
}

// WriteDictionary writes d as indented JSON to path. Keys are written in
// sorted order. If dictZip is true the file is compressed with dictzip.
func WriteDictionary(path string, d stenodict.Dictionary, dictZip bool) (err error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encoding dictionary: %w", err)
	}
	b := buf.Bytes()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()

	if !dictZip {
		if _, err := f.Write(b); err != nil {
			return fmt.Errorf("writing %q: %w", path, err)
		}
		return nil
	}

	z, err := dictzip.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating %q: %w", path, err)
	}
	if _, err := z.Write(b); err != nil {
		_ = z.Close()
		return fmt.Errorf("writing %q: %w", path, err)
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}
