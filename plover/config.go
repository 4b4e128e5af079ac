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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the name of the steno configuration file.
	ConfigFileName = ".steno"

	// AssetsDirKey is the configuration key naming the Plover assets
	// directory.
	AssetsDirKey = "ploverAssetsDir"

	// AssetsDirEnv overrides the Plover assets directory in the steno
	// configuration file.
	AssetsDirEnv = "STENO_PLOVER_ASSETS_DIR"
)

var (
	// ErrNoConfig indicates that no steno configuration file was found.
	ErrNoConfig = errors.New("no .steno configuration file found")

	// ErrInvalidConfig indicates that a configuration file could not be
	// used.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config is the steno configuration.
type Config struct {
	// Path is the path of the configuration file.
	Path string

	// PloverAssetsDir is the Plover assets directory. Relative paths in the
	// configuration file are resolved against the directory of the file.
	PloverAssetsDir string
}

// PloverConfigPath returns the path of plover.cfg.
func (c *Config) PloverConfigPath() string {
	return filepath.Join(c.PloverAssetsDir, PloverConfigFileName)
}

// FindConfig returns the path of the first .steno file found in dir or one
// of its parents.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("finding %s: %w", ConfigFileName, err)
	}

	for {
		path := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", fmt.Errorf("finding %s: %w", ConfigFileName, err)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w in %q or its parents", ErrNoConfig, dir)
		}
		dir = parent
	}
}

// ReadConfig reads the steno configuration file at path. The
// STENO_PLOVER_ASSETS_DIR environment variable overrides the assets
// directory in the file.
func ReadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.BindEnv(AssetsDirKey, AssetsDirEnv); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%w: reading %q: %w", ErrInvalidConfig, path, err)
	}

	assetsDir := v.GetString(AssetsDirKey)
	if assetsDir == "" {
		return nil, fmt.Errorf("%w: %q does not contain %q", ErrInvalidConfig, path, AssetsDirKey)
	}
	if !filepath.IsAbs(assetsDir) {
		assetsDir = filepath.Join(filepath.Dir(path), assetsDir)
	}

	return &Config{
		Path:            path,
		PloverAssetsDir: assetsDir,
	}, nil
}

// LoadConfig finds and reads the steno configuration starting at dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}
	return ReadConfig(path)
}
