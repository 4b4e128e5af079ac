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
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-stenodict"
	"github.com/ianlewis/go-stenodict/plover"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFlagParseError is the exit code for a flag parsing error.
	ExitCodeFlagParseError

	// ExitCodeConfigError is the exit code for a missing or invalid
	// configuration.
	ExitCodeConfigError

	// ExitCodeUnknownError is the exit code for an unknown error.
	ExitCodeUnknownError
)

// ErrStenoutil is a parent error for all command errors.
var ErrStenoutil = errors.New("stenoutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrStenoutil)

// ErrConfig indicates that the configuration could not be loaded.
var ErrConfig = fmt.Errorf("%w: loading configuration", ErrStenoutil)

var copyrightNames = []string{
	"2021 Google LLC",
	"2024 Ian Lewis",
}

// exitCode returns the process exit code for an error returned by the app.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitCodeSuccess
	case errors.Is(err, ErrFlagParse):
		return ExitCodeFlagParseError
	case errors.Is(err, ErrConfig):
		return ExitCodeConfigError
	default:
		return ExitCodeUnknownError
	}
}

// check checks the error and panics if not nil.
func check(err error) {
	if err != nil {
		panic(err)
	}
}

// newLogger returns a logger writing to the app's error writer. Debug
// messages are only written with --verbose.
func newLogger(c *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadConfig finds the .steno configuration starting at --config-dir. If
// there is none, the first default Plover directory holding a plover.cfg
// is used.
func loadConfig(c *cli.Context, logger *slog.Logger) (*plover.Config, error) {
	conf, err := plover.LoadConfig(c.String("config-dir"))
	if errors.Is(err, plover.ErrNoConfig) {
		for _, dir := range ploverLocations() {
			if _, statErr := os.Stat(filepath.Join(dir, plover.PloverConfigFileName)); statErr == nil {
				logger.Debug("no .steno file found, using default Plover directory", "dir", dir)
				return &plover.Config{PloverAssetsDir: dir}, nil
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	logger.Debug("loaded configuration", "path", conf.Path, "assets", conf.PloverAssetsDir)
	return conf, nil
}

// loadPloverConfig loads the configuration and plover.cfg.
func loadPloverConfig(c *cli.Context, logger *slog.Logger) (*plover.Config, *plover.PloverConfig, error) {
	conf, err := loadConfig(c, logger)
	if err != nil {
		return nil, nil, err
	}
	pc, err := plover.LoadPloverConfig(conf)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	return conf, pc, nil
}

// loadMergedDictionary loads the enabled JSON dictionaries and merges them
// in priority order.
func loadMergedDictionary(c *cli.Context, logger *slog.Logger) (stenodict.Dictionary, error) {
	conf, pc, err := loadPloverConfig(c, logger)
	if err != nil {
		return nil, err
	}
	loaded, err := plover.LoadDictionaries(conf, pc.EnabledJSONDictionaries())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStenoutil, err)
	}
	for _, l := range loaded {
		logger.Debug("loaded dictionary", "path", l.Config.Path, "entries", len(l.Dictionary))
	}
	return plover.MergeDictionaries(loaded), nil
}

func printVersion(c *cli.Context) error {
	versionInfo := version.GetVersionInfo()

	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

%s`, c.App.Name, versionInfo.GitVersion, c.App.Copyright, versionInfo.String())
	return err
}

func newStenoutilApp() *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Analyze Plover steno dictionaries.",
		Description: strings.Join([]string{
			"Steno dictionary utility written in Go.",
			"http://github.com/ianlewis/go-stenodict",
		}, "\n"),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Usage:   "search for the .steno file starting in `DIR`",
				Aliases: []string{"C"},
				EnvVars: []string{"STENOUTIL_CONFIG_DIR"},
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:               "verbose",
				Usage:              "print debug messages",
				EnvVars:            []string{"STENOUTIL_VERBOSE"},
				DisableDefaultText: true,
			},
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelpCommand: true,
		OnUsageError: func(_ *cli.Context, err error, _ bool) error {
			return fmt.Errorf("%w: %w", ErrFlagParse, err)
		},
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}

			check(cli.ShowAppHelp(c))
			return nil
		},
		Commands: []*cli.Command{
			newPrepareCommand(),
			newBuildCommand(),
			newInfoCommand(),
			newGapFinderCommand(),
			newAutocompleteCommand(),
			newSegmentsCommand(),
		},
	}
}
