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
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-glossary"
	"github.com/ianlewis/go-glossary/extract"
	"github.com/ianlewis/go-glossary/render"
	"github.com/ianlewis/go-glossary/validate"
)

var rule = strings.Repeat("=", 50)

func validateCanonicalCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate-canonical",
		Aliases:   []string{"validate-data-yaml"},
		Usage:     "check the canonical data for consistency",
		ArgsUsage: " ",
		Flags:     append(sourceFlags(), dataFlag()),
		Action:    runValidateCanonical,
	}
}

func printSummary(c *cli.Context, ok bool) {
	fmt.Fprintln(c.App.Writer, rule)
	if ok {
		fmt.Fprintln(c.App.Writer, "All validations passed! "+passMark)
	} else {
		fmt.Fprintln(c.App.Writer, "Some validations failed! "+failMark)
	}
	fmt.Fprintln(c.App.Writer, rule)
}

func runValidateCanonical(c *cli.Context) error {
	e := getEnv(c)
	if c.Args().Present() {
		return fmt.Errorf("%w: unexpected arguments %q", ErrFlagParse, c.Args().Slice())
	}

	source, opts, err := sourceOptions(c, e)
	if err != nil {
		return err
	}

	w := c.App.Writer
	g, path, err := load(c, e)
	fmt.Fprintf(w, "Validating %s...\n\n", path)
	if err != nil {
		// A file that cannot be loaded fails the format check.
		fmt.Fprintf(w, "1. %s:\n   [%s] %v\n\nStopping validation due to format error.\n", validate.NameFormat, failMark, err)
		return err
	}

	doc, err := extract.Open(source, opts)
	if err != nil {
		return err
	}

	results := validate.Canonical(g, doc.CountRows())
	for i, r := range results {
		fmt.Fprintf(w, "%d. %s:\n   [%s] %s\n\n", i+1, r.Name, mark(r.OK), r.Message)
		e.log.Debug("check", "name", r.Name, "ok", r.OK, "message", r.Message)
	}
	if !results[0].OK {
		fmt.Fprintln(w, "Stopping validation due to format error.")
	}

	failed := validate.Failed(results)
	printSummary(c, len(failed) == 0)
	if len(failed) > 0 {
		return fmt.Errorf("%w: %d of %d checks failed", glossary.ErrValidation, len(failed), len(results))
	}
	return nil
}

func validateOutputsCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate-outputs",
		Aliases:   []string{"validate-conversions"},
		Usage:     "check the rendered output files",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			dataFlag(),
			outputDirFlag(),
			formatFlag(),
		},
		Action: runValidateOutputs,
	}
}

func runValidateOutputs(c *cli.Context) error {
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

	w := c.App.Writer
	expected := g.Count()
	fmt.Fprintf(w, "Loaded %d terms\n\n", expected)

	// Output checks compare against the data, which must be consistent.
	integrity := validate.FootnoteIntegrity(g)
	fmt.Fprintf(w, "Validating footnote integrity...\n  [%s] %s\n\n", mark(integrity.OK), integrity.Message)
	if !integrity.OK {
		return fmt.Errorf("%w: %s", glossary.ErrValidation, integrity.Message)
	}

	dir := stringFlag(c, outputDirFlagName, e.cfg.OutputDir)
	tbl := newTable(c, "", "Format", "Result")
	failed := 0
	for _, name := range names {
		filename, _ := render.Filename(name)
		r := validate.Output(name, filepath.Join(dir, filename), expected)
		if !r.OK {
			failed++
		}
		e.log.Debug("output check", "format", name, "ok", r.OK, "message", r.Message)
		tbl.AddRow(mark(r.OK), strings.ToUpper(name), r.Message)
	}

	fmt.Fprintln(w, "Format Validation Results:")
	tbl.Print()
	fmt.Fprintln(w)

	printSummary(c, failed == 0)
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d formats failed", glossary.ErrValidation, failed, len(names))
	}
	return nil
}
