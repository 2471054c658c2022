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
)

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "print entry counts for each letter group",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			dataFlag(),
		},
		Action: runInfo,
	}
}

func runInfo(c *cli.Context) error {
	e := getEnv(c)
	if c.Args().Present() {
		return fmt.Errorf("%w: unexpected arguments %q", ErrFlagParse, c.Args().Slice())
	}

	g, path, err := load(c, e)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Data:          %s\n", path)
	fmt.Fprintf(w, "Terms:         %d\n", g.Count())
	fmt.Fprintf(w, "Letter groups: %d/%d\n", len(g.Terms), len(glossary.Letters))
	fmt.Fprintf(w, "Footnotes:     %d\n", len(g.Footnotes))
	fmt.Fprintln(w)

	tbl := newTable(c, "Letter", "Terms", "Footnoted")
	for _, group := range g.Groups() {
		footnoted := 0
		for _, entry := range group.Entries {
			if len(entry.Footnotes) > 0 {
				footnoted++
			}
		}
		tbl.AddRow(group.Letter, len(group.Entries), footnoted)
	}
	tbl.Print()
	return nil
}
