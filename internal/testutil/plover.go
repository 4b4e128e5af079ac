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

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-dictzip"
)

// Dictionary is a dictionary file in a test assets directory.
type Dictionary struct {
	// Path is the path of the file relative to the assets directory. Paths
	// ending in ".dz" are compressed with dictzip.
	Path string

	// Disabled marks the dictionary as disabled in plover.cfg.
	Disabled bool

	// Entries are the dictionary's entries.
	Entries map[string]string
}

type dictionaryConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// MakeAssetsDir creates a temporary Plover assets directory holding
// plover.cfg and the given dictionaries, listed in order. It returns the
// directory.
func MakeAssetsDir(t *testing.T, dicts []Dictionary) string {
	t.Helper()

	dir := t.TempDir()

	var configs []dictionaryConfig
	for _, d := range dicts {
		configs = append(configs, dictionaryConfig{
			Enabled: !d.Disabled,
			Path:    d.Path,
		})
		if d.Entries != nil {
			WriteDictionary(t, filepath.Join(dir, d.Path), d.Entries)
		}
	}

	list, err := json.Marshal(configs)
	if err != nil {
		t.Fatal(err)
	}
	WriteFile(t, filepath.Join(dir, "plover.cfg"), "[Machine Configuration]\n"+
		"machine_type = Keyboard\n"+
		"\n"+
		"[System: English Stenotype]\n"+
		"dictionaries = "+string(list)+"\n")

	return dir
}

// MakeStenoConfig writes a .steno file in dir naming assetsDir.
func MakeStenoConfig(t *testing.T, dir, assetsDir string) string {
	t.Helper()

	b, err := json.Marshal(map[string]string{"ploverAssetsDir": assetsDir})
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, ".steno")
	WriteFile(t, path, string(b))
	return path
}

// WriteDictionary writes a JSON dictionary to path. Paths ending in ".dz"
// are compressed with dictzip.
func WriteDictionary(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	b, err := json.Marshal(entries)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if filepath.Ext(path) == ".dz" {
		z, err := dictzip.NewWriter(f)
		if err != nil {
			t.Fatal(err)
		}
		defer z.Close()

		if _, err := z.Write(b); err != nil {
			t.Fatal(err)
		}
		return
	}

	if _, err := f.Write(b); err != nil {
		t.Fatal(err)
	}
}

// WriteFile writes contents to path.
func WriteFile(t *testing.T, path, contents string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
}
