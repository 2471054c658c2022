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
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-glossary"
	"github.com/ianlewis/go-glossary/canonical"
	"github.com/ianlewis/go-glossary/extract"
)

const (
	sourceFlagName      = "source"
	footnoteCapFlagName = "footnote-cap"
	notesMarkerFlagName = "notes-marker"
)

func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    sourceFlagName,
			Usage:   "Markdown source document `FILE`",
			Aliases: []string{"s"},
			EnvVars: []string{"GLOSSUTIL_SOURCE"},
		},
		&cli.IntFlag{
			Name:  footnoteCapFlagName,
			Usage: "ignore footnote definitions numbered above `N` (0 keeps all)",
		},
		&cli.StringFlag{
			Name:  notesMarkerFlagName,
			Usage: "line `PREFIX` that starts the footnote definitions",
		},
	}
}

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Aliases:   []string{"parse-readme"},
		Usage:     "regenerate the canonical data from the source document",
		ArgsUsage: " ",
		Flags:     append(sourceFlags(), dataFlag()),
		Action:    runExtract,
	}
}

// sourceOptions returns the source document path and extraction options.
func sourceOptions(c *cli.Context, e *env) (string, *extract.Options, error) {
	opts := &extract.Options{
		FootnoteCap: e.cfg.FootnoteCap,
		NotesMarker: stringFlag(c, notesMarkerFlagName, e.cfg.NotesMarker),
	}
	if c.IsSet(footnoteCapFlagName) {
		opts.FootnoteCap = c.Int(footnoteCapFlagName)
	}
	if opts.FootnoteCap < 0 {
		return "", nil, fmt.Errorf("%w: negative footnote cap %d", ErrFlagParse, opts.FootnoteCap)
	}
	return stringFlag(c, sourceFlagName, e.cfg.Source), opts, nil
}

func runExtract(c *cli.Context) error {
	e := getEnv(c)
	if c.Args().Present() {
		return fmt.Errorf("%w: unexpected arguments %q", ErrFlagParse, c.Args().Slice())
	}

	source, opts, err := sourceOptions(c, e)
	if err != nil {
		return err
	}
	e.log.Debug("reading source document", "path", source)
	g, err := extract.Extract(source, opts)
	if err != nil {
		return err
	}
	if g.Count() == 0 {
		return fmt.Errorf("%w: no terms found in %q", glossary.ErrMalformedStructure, source)
	}

	data := stringFlag(c, dataFlagName, e.cfg.Data)
	if err := canonical.Save(data, g); err != nil {
		return err
	}

	e.log.Info("extracted source document",
		"source", source,
		"data", data,
		"terms", g.Count(),
		"letters", len(g.Terms),
		"footnotes", len(g.Footnotes),
	)
	fmt.Fprintf(c.App.Writer, "Wrote %d terms in %d letter groups and %d footnotes to %s\n",
		g.Count(), len(g.Terms), len(g.Footnotes), data)
	return nil
}
