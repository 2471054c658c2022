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
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-glossary"
	"github.com/ianlewis/go-glossary/canonical"
	"github.com/ianlewis/go-glossary/render"
)

const (
	dataFlagName      = "data"
	outputDirFlagName = "output-dir"
	formatFlagName    = "format"
)

// Flags are created per command since commands mutate them while running.

func dataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    dataFlagName,
		Usage:   "canonical data `FILE`",
		Aliases: []string{"d"},
		EnvVars: []string{"GLOSSUTIL_DATA"},
	}
}

func outputDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    outputDirFlagName,
		Usage:   "write rendered files to `DIR`",
		Aliases: []string{"o"},
		EnvVars: []string{"GLOSSUTIL_OUTPUT_DIR"},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringSliceFlag{
		Name:    formatFlagName,
		Usage:   "output `FORMAT` (all, csv, markdown, html, docx, pdf, sqlite, stardict)",
		Aliases: []string{"f"},
		EnvVars: []string{"GLOSSUTIL_FORMATS"},
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "render the canonical data to output formats",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			dataFlag(),
			outputDirFlag(),
			formatFlag(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "report what would be generated without writing files",
			},
			&cli.StringFlag{
				Name:  "title",
				Usage: "document `TITLE`",
			},
			&cli.StringFlag{
				Name:    "browser",
				Usage:   "Chrome or Chromium `BINARY` used for PDF output",
				EnvVars: []string{"GLOSSUTIL_BROWSER"},
			},
			&cli.BoolFlag{
				Name:  "no-sandbox",
				Usage: "disable the browser sandbox for PDF output",
			},
		},
		Action: runConvert,
	}
}

// formats returns the requested formats, resolved against the registry.
func formats(c *cli.Context, e *env) ([]string, error) {
	names := e.cfg.Formats
	if c.IsSet(formatFlagName) {
		names = c.StringSlice(formatFlagName)
	}
	resolved := render.Resolve(names)
	if len(resolved) == 0 {
		return nil, fmt.Errorf("%w: no supported formats in %q", ErrFlagParse, names)
	}
	return resolved, nil
}

// load reads the canonical data file.
func load(c *cli.Context, e *env) (*glossary.Glossary, string, error) {
	path := stringFlag(c, dataFlagName, e.cfg.Data)
	e.log.Debug("loading canonical data", "path", path)
	g, err := canonical.Load(path)
	if err != nil {
		return nil, path, err
	}
	e.log.Info("loaded canonical data", "path", path, "terms", g.Count(), "footnotes", len(g.Footnotes))
	return g, path, nil
}

func runConvert(c *cli.Context) error {
	e := getEnv(c)
	if c.Args().Present() {
		return fmt.Errorf("%w: unexpected arguments %q", ErrFlagParse, c.Args().Slice())
	}

	names, err := formats(c, e)
	if err != nil {
		return err
	}
	g, _, err := load(c, e)
	if err != nil {
		return err
	}

	dir := stringFlag(c, outputDirFlagName, e.cfg.OutputDir)
	opts := render.Options{
		Title:       stringFlag(c, "title", e.cfg.Title),
		NotesMarker: e.cfg.NotesMarker,
		Browser:     stringFlag(c, "browser", e.cfg.Browser),
		NoSandbox:   c.Bool("no-sandbox") || e.cfg.NoSandbox,
	}

	if c.Bool("dry-run") {
		fmt.Fprintf(c.App.Writer, "Dry run: %d terms would be written to %d formats.\n", g.Count(), len(names))
		tbl := newTable(c, "Format", "Path")
		for _, name := range names {
			filename, _ := render.Filename(name)
			tbl.AddRow(name, filepath.Join(dir, filename))
		}
		tbl.Print()
		return nil
	}

	tbl := newTable(c, "", "Format", "Path")
	generated := 0
	for _, name := range names {
		filename, _ := render.Filename(name)
		path := filepath.Join(dir, filename)

		err := renderFormat(c, name, opts, g, path)
		if err != nil {
			e.log.Error("conversion failed", "format", name, "error", err)
			tbl.AddRow(failMark, name, err)
			continue
		}
		e.log.Info("converted", "format", name, "path", path, "terms", g.Count())
		tbl.AddRow(passMark, name, path)
		generated++
	}
	tbl.Print()

	fmt.Fprintf(c.App.Writer, "Conversion complete: %d/%d formats generated.\n", generated, len(names))
	if generated < len(names) {
		return fmt.Errorf("%w: %d of %d formats failed", glossary.ErrRenderer, len(names)-generated, len(names))
	}
	return nil
}

// renderFormat renders a single format. A panicking renderer is reported as
// a failure of that format only.
func renderFormat(c *cli.Context, name string, opts render.Options, g *glossary.Glossary, path string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s: %v", glossary.ErrRenderer, name, r)
		}
	}()

	r, err := render.New(name, opts)
	if err != nil {
		return err
	}
	//nolint:wrapcheck // renderer errors are reported as is.
	return r.Render(c.Context, g, path)
}
