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

package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ianlewis/go-stenodict/internal/testutil"
	"github.com/ianlewis/go-stenodict/plover"
)

// makeConfigDir creates a Plover assets directory and a directory holding a
// .steno file pointing to it. It returns the .steno directory.
func makeConfigDir(t *testing.T) string {
	t.Helper()

	assetsDir := testutil.MakeAssetsDir(t, []testutil.Dictionary{
		{
			Path: "user.json",
			Entries: map[string]string{
				"KAT":    "cat",
				"-S":     "{^s}",
				"PWEURD": "bird",
			},
		},
		{
			Path:     "old.json",
			Disabled: true,
			Entries: map[string]string{
				"TKOG": "dogg",
			},
		},
		{
			Path: "main.json.dz",
			Entries: map[string]string{
				"KAT":         "kat",
				"TKOG":        "dog",
				"TPHRA/TPHRA": "lala",
			},
		},
	})

	dir := t.TempDir()
	testutil.MakeStenoConfig(t, dir, assetsDir)
	return dir
}

// run runs the app with args and returns its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := newStenoutilApp()
	app.Writer = &stdout
	app.ErrWriter = &stderr

	err := app.Run(append([]string{"stenoutil"}, args...))
	t.Logf("stderr:\n%s", stderr.String())
	return stdout.String(), err
}

func TestBuild(t *testing.T) {
	t.Parallel()

	dir := makeConfigDir(t)
	out := filepath.Join(t.TempDir(), "merged.json")

	if _, err := run(t, "--config-dir", dir, "build", "--out", out); err != nil {
		t.Fatalf("build: %v", err)
	}

	got, err := plover.ReadDictionary(out)
	if err != nil {
		t.Fatalf("ReadDictionary: %v", err)
	}
	want := map[string]string{
		"KAT":         "cat",
		"-S":          "{^s}",
		"PWEURD":      "bird",
		"TKOG":        "dog",
		"TPHRA/TPHRA": "lala",
	}
	if diff := cmp.Diff(want, map[string]string(got)); diff != "" {
		t.Errorf("merged dictionary (-want, +got):\n%s", diff)
	}
}

func TestInfo(t *testing.T) {
	t.Parallel()

	dir := makeConfigDir(t)

	out, err := run(t, "--config-dir", dir, "info")
	if err != nil {
		t.Fatalf("info: %v", err)
	}

	for _, want := range []string{
		"You have 3 dictionaries configured in Plover, in the following order:\n",
		" - user.json\n",
		" - old.json (disabled)\n",
		" - main.json.dz\n",
		"### user.json\n",
		"Unique outputs: 3 / 3 (100.00%)\n",
		"### main.json.dz\n",
		"## Merged Dictionary\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("info output does not contain %q:\n%s", want, out)
		}
	}
}

func TestGapFinder(t *testing.T) {
	t.Parallel()

	dir := makeConfigDir(t)
	words := filepath.Join(t.TempDir(), "words.txt")
	testutil.WriteFile(t, words, "the\ncat\nbirds\n\n  dog  \n")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "missing words",
			args: []string{"--config-dir", dir, "gap-finder", "--words", words},
			want: "1: Dictionary does not contain 'the'\n" +
				"3: Dictionary does not contain 'birds'\n",
		},
		{
			name: "suggest",
			args: []string{"--config-dir", dir, "gap-finder", "--words", words, "--suggest"},
			want: "1: Dictionary does not contain 'the'\n" +
				"3: Dictionary does not contain 'birds'\n" +
				"   - PWEURD/-S (bird + s)\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := run(t, tc.args...)
			if err != nil {
				t.Fatalf("gap-finder: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("output (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestParseWords(t *testing.T) {
	t.Parallel()

	got, err := parseWords(strings.NewReader("the\r\nof\n\n and \n"))
	if err != nil {
		t.Fatalf("parseWords: %v", err)
	}
	if diff := cmp.Diff([]string{"the", "of", "and"}, got); diff != "" {
		t.Errorf("parseWords (-want, +got):\n%s", diff)
	}
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	dir := makeConfigDir(t)

	tests := []struct {
		name        string
		prepareArgs func(path string) []string
		readArgs    func(path string) []string
	}{
		{
			name: "files",
			prepareArgs: func(path string) []string {
				return []string{"--out", path}
			},
			readArgs: func(path string) []string {
				return []string{"--dir", path}
			},
		},
		{
			name: "sqlite",
			prepareArgs: func(path string) []string {
				return []string{"--sqlite", path}
			},
			readArgs: func(path string) []string {
				return []string{"--sqlite", path}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "generated")

			args := append([]string{"--config-dir", dir, "prepare"}, tc.prepareArgs(path)...)
			out, err := run(t, args...)
			if err != nil {
				t.Fatalf("prepare: %v", err)
			}
			// cat, bird, dog and lala have 28 prefixes and suffixes.
			if want := "Indexed 4 plain text entries in " + path + ": 28 segments written, 0 failed, 0 skipped\n"; out != want {
				t.Errorf("prepare: want %q, got %q", want, out)
			}

			args = append([]string{"segments", "--kind", "suffix"}, tc.readArgs(path)...)
			out, err = run(t, append(args, "OG")...)
			if err != nil {
				t.Fatalf("segments: %v", err)
			}
			if !strings.Contains(out, "TKOG") || !strings.Contains(out, "dog") {
				t.Errorf("segments output does not contain TKOG dog:\n%s", out)
			}

			args = append([]string{"segments"}, tc.readArgs(path)...)
			out, err = run(t, append(args, "x")...)
			if err != nil {
				t.Fatalf("segments: %v", err)
			}
			if want := "No entries with prefix \"x\"\n"; out != want {
				t.Errorf("segments: want %q, got %q", want, out)
			}
		})
	}
}

func TestAutocomplete(t *testing.T) {
	t.Parallel()

	dict := filepath.Join(t.TempDir(), "user.json")
	testutil.WriteDictionary(t, dict, map[string]string{
		"TPHRA/TPHRA/TPHRA": "lalala",
		"TPHRA":             "la",
		"A/PWAOUT/TPHRA":    "about la",
	})
	out := filepath.Join(t.TempDir(), "autocomplete.json")

	stdout, err := run(t, "autocomplete", "--dictionary", dict, "--min-strokes", "1", "--out", out)
	if err != nil {
		t.Fatalf("autocomplete: %v", err)
	}
	if want := "Generated autocompletions:\n - " + dict + ": 3 entries => 1 entries\n"; stdout != want {
		t.Errorf("autocomplete: want %q, got %q", want, stdout)
	}

	got, err := plover.ReadDictionary(out)
	if err != nil {
		t.Fatalf("ReadDictionary: %v", err)
	}
	want := map[string]string{
		"TPHRA/TPHRA": "lalala",
	}
	if diff := cmp.Diff(want, map[string]string(got)); diff != "" {
		t.Errorf("autocomplete dictionary (-want, +got):\n%s", diff)
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	dir := makeConfigDir(t)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{
			name: "version",
			args: []string{"--version"},
			want: ExitCodeSuccess,
		},
		{
			name: "missing query",
			args: []string{"segments"},
			want: ExitCodeFlagParseError,
		},
		{
			name: "bad kind",
			args: []string{"segments", "--kind", "infix", "cat"},
			want: ExitCodeFlagParseError,
		},
		{
			name: "bad min strokes",
			args: []string{"--config-dir", dir, "autocomplete", "--min-strokes", "0"},
			want: ExitCodeFlagParseError,
		},
		{
			name: "missing dictionary",
			args: []string{"autocomplete", "--dictionary", filepath.Join(dir, "missing.json")},
			want: ExitCodeUnknownError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, tc.args...)
			if got := exitCode(err); got != tc.want {
				t.Errorf("exitCode: want %d, got %d (%v)", tc.want, got, err)
			}
		})
	}
}

//nolint:paralleltest // Uses t.Setenv.
func TestExitCode_noConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))

	_, err := run(t, "--config-dir", t.TempDir(), "build", "--out", filepath.Join(home, "out.json"))
	if got := exitCode(err); got != ExitCodeConfigError {
		t.Errorf("exitCode: want %d, got %d (%v)", ExitCodeConfigError, got, err)
	}
}
