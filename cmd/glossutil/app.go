// Copyright 2025 Ian Lewis
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rodaine/table"
	"github.com/urfave/cli/v2"
	"sigs.k8s.io/release-utils/version"

	"github.com/ianlewis/go-glossary/internal/config"
	"github.com/ianlewis/go-glossary/internal/folding"
	"github.com/ianlewis/go-glossary/internal/logging"
)

const (
	// ExitCodeSuccess is successful error code.
	ExitCodeSuccess int = iota

	// ExitCodeFailure is the exit code when any requested unit of work
	// failed.
	ExitCodeFailure
)

// ErrGlossutil is a parent error for all command errors.
var ErrGlossutil = errors.New("glossutil")

// ErrFlagParse is a flag parsing error.
var ErrFlagParse = fmt.Errorf("%w: parsing flags", ErrGlossutil)

var copyrightNames = []string{
	"2025 Ian Lewis",
}

const (
	passMark = "✓"
	failMark = "✗"
)

func mark(ok bool) string {
	if ok {
		return passMark
	}
	return failMark
}

// env is the state shared by commands for a single run.
type env struct {
	cfg *config.Config
	log *logging.Logger
}

const envKey = "env"

func getEnv(c *cli.Context) *env {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e
	}
	return &env{
		cfg: config.Default(),
		log: logging.Discard(),
	}
}

// stringFlag returns the flag value if it was set and fallback otherwise.
func stringFlag(c *cli.Context, name, fallback string) string {
	if c.IsSet(name) {
		return c.String(name)
	}
	return fallback
}

// newTable returns a report table written to the app's writer.
func newTable(c *cli.Context, headers ...interface{}) table.Table {
	return table.New(headers...).
		WithWriter(c.App.Writer).
		WithWidthFunc(folding.Width)
}

func printVersion(c *cli.Context) error {
	info := version.GetVersionInfo()
	_, err := fmt.Fprintf(c.App.Writer, `%s %s
Copyright (c) %s

GitCommit:  %s
BuildDate:  %s
GoVersion:  %s
Platform:   %s
`,
		c.App.Name,
		info.GitVersion,
		strings.Join(copyrightNames, ", "),
		info.GitCommit,
		info.BuildDate,
		info.GoVersion,
		info.Platform,
	)
	if err != nil {
		return fmt.Errorf("printing version: %w", err)
	}
	return nil
}

// before loads the configuration and sets up logging.
func before(c *cli.Context) error {
	cfg, path, err := config.Find(c.String("config"))
	if err != nil {
		return err
	}

	logFile := stringFlag(c, "log-file", cfg.LogFile)
	log, err := logging.New(c.App.ErrWriter, logging.Options{
		Verbose: c.Bool("verbose"),
		File:    logFile,
	})
	if err != nil {
		return err
	}
	if path != "" {
		log.Debug("loaded config", "path", path)
	}

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[envKey] = &env{cfg: cfg, log: log}
	return nil
}

func after(c *cli.Context) error {
	return getEnv(c).log.Close()
}

func newGlossutilApp(w, errW io.Writer) *cli.App {
	return &cli.App{
		Name:  filepath.Base(os.Args[0]),
		Usage: "Convert and validate a computing terms glossary.",
		Description: strings.Join([]string{
			"Glossary utility written in Go.",
			"http://github.com/ianlewis/go-glossary",
		}, "\n"),
		Writer:    w,
		ErrWriter: errW,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "read configuration from `FILE`",
				Aliases: []string{"c"},
				EnvVars: []string{"GLOSSUTIL_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "print debug logs",
				Aliases: []string{"v"},
				EnvVars: []string{"GLOSSUTIL_VERBOSE"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "also write JSON logs to `FILE`",
				EnvVars: []string{"GLOSSUTIL_LOG_FILE"},
			},

			// Special flags are shown at the end.
			&cli.BoolFlag{
				Name:               "version",
				Usage:              "print version information and exit",
				Aliases:            []string{"V"},
				DisableDefaultText: true,
			},
		},
		Copyright:       strings.Join(copyrightNames, "\n"),
		HideHelpCommand: true,
		HideVersion:     true,
		Metadata:        map[string]interface{}{},
		Before:          before,
		After:           after,
		Action: func(c *cli.Context) error {
			if c.Bool("version") {
				return printVersion(c)
			}
			return cli.ShowAppHelp(c)
		},
		Commands: []*cli.Command{
			convertCommand(),
			extractCommand(),
			validateCanonicalCommand(),
			validateOutputsCommand(),
			infoCommand(),
			queryCommand(),
		},
	}
}
