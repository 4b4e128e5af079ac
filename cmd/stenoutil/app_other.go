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

//go:build !windows

package main

import (
	"os"
	"path/filepath"
	"runtime"
)

// ploverLocations returns the directories where Plover keeps its
// configuration by default.
func ploverLocations() []string {
	var loc []string

	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		loc = append(loc, filepath.Join(xdgConfigHome, "plover"))
	}

	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		if runtime.GOOS == "darwin" {
			loc = append(loc, filepath.Join(homeDir, "Library/Application Support/plover"))
		}
		loc = append(loc, filepath.Join(homeDir, ".config/plover"))
	}

	return loc
}
