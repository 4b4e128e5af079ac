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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	// PloverConfigFileName is the name of Plover's configuration file.
	PloverConfigFileName = "plover.cfg"

	// SystemSection is the plover.cfg section holding the dictionary list.
	SystemSection = "System: English Stenotype"

	// DictionariesKey is the plover.cfg key holding the dictionary list.
	DictionariesKey = "dictionaries"

	// assetScheme prefixes dictionaries bundled with Plover itself.
	assetScheme = "asset:"
)

// DictionaryConfig is a dictionary listed in plover.cfg.
type DictionaryConfig struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

// IsJSON returns true if the dictionary is a JSON dictionary file.
func (d DictionaryConfig) IsJSON() bool {
	if strings.HasPrefix(d.Path, assetScheme) {
		return false
	}
	p := strings.ToLower(d.Path)
	return strings.HasSuffix(p, ".json") || strings.HasSuffix(p, ".json.dz")
}

// PloverConfig is the part of plover.cfg used here.
type PloverConfig struct {
	// Dictionaries lists the dictionaries from highest to lowest priority.
	Dictionaries []DictionaryConfig
}

// EnabledJSONDictionaries returns the enabled JSON dictionaries in priority
// order.
func (c *PloverConfig) EnabledJSONDictionaries() []DictionaryConfig {
	var dicts []DictionaryConfig
	for _, d := range c.Dictionaries {
		if d.Enabled && d.IsJSON() {
			dicts = append(dicts, d)
		}
	}
	return dicts
}

// ReadPloverConfig reads plover.cfg from path.
func ReadPloverConfig(path string) (*PloverConfig, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrInvalidConfig, path, err)
	}

	sec, err := f.GetSection(SystemSection)
	if err != nil || !sec.HasKey(DictionariesKey) {
		return nil, fmt.Errorf("%w: %q is missing %q in [%s]", ErrInvalidConfig, path, DictionariesKey, SystemSection)
	}

	var dicts []DictionaryConfig
	if err := json.Unmarshal([]byte(sec.Key(DictionariesKey).String()), &dicts); err != nil {
		return nil, fmt.Errorf("%w: parsing %q in %q: %w", ErrInvalidConfig, DictionariesKey, path, err)
	}

	return &PloverConfig{
		Dictionaries: dicts,
	}, nil
}

// LoadPloverConfig reads plover.cfg from the assets directory named by c.
func LoadPloverConfig(c *Config) (*PloverConfig, error) {
	path := c.PloverConfigPath()
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, PloverConfigFileName, err)
	}
	return ReadPloverConfig(path)
}

// DictionaryPath returns the path of a dictionary relative to the assets
// directory.
func (c *Config) DictionaryPath(d DictionaryConfig) string {
	if filepath.IsAbs(d.Path) {
		return d.Path
	}
	return filepath.Join(c.PloverAssetsDir, d.Path)
}
