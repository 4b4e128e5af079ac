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

// Package plover locates and loads a user's Plover configuration and
// dictionaries.
//
// A .steno file in the working directory or one of its parents names the
// Plover assets directory:
//
//	{"ploverAssetsDir": "/home/user/.config/plover"}
//
// The assets directory holds plover.cfg, which lists the user's
// dictionaries in priority order, and the dictionary files themselves.
// JSON dictionaries may be compressed with dictzip (.json.dz).
package plover
