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
	"io"
	"strings"

	"github.com/k3a/html2text"
	"github.com/urfave/cli/v2"

	"github.com/ianlewis/go-glossary"
	"github.com/ianlewis/go-glossary/internal/folding"
	"github.com/ianlewis/go-glossary/internal/index"
)

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "look up terms by headword",
		ArgsUsage: "WORD...",
		Flags: []cli.Flag{
			dataFlag(),
			&cli.BoolFlag{
				Name:    "prefix",
				Usage:   "match headwords starting with WORD",
				Aliases: []string{"p"},
			},
		},
		Action: runQuery,
	}
}

// match is an entry with its letter group.
type match struct {
	key    string
	letter string
	entry  glossary.Entry
}

func newIndex(g *glossary.Glossary) (*index.Index[match], error) {
	var matches []match
	for _, group := range g.Groups() {
		for _, e := range group.Entries {
			k, err := folding.Key(e.Word)
			if err != nil {
				return nil, err
			}
			matches = append(matches, match{
				key:    k,
				letter: group.Letter,
				entry:  e,
			})
		}
	}
	return index.New(matches, func(m match) string { return m.key }), nil
}

func runQuery(c *cli.Context) error {
	e := getEnv(c)
	if !c.Args().Present() {
		return fmt.Errorf("%w: missing WORD", ErrFlagParse)
	}

	g, _, err := load(c, e)
	if err != nil {
		return err
	}
	idx, err := newIndex(g)
	if err != nil {
		return err
	}

	var missing []string
	for _, word := range c.Args().Slice() {
		k, err := folding.Key(word)
		if err != nil {
			return err
		}

		var found []match
		if c.Bool("prefix") {
			found = idx.Prefix(k)
		} else {
			found = idx.Search(k)
		}
		e.log.Debug("query", "word", word, "key", k, "matches", len(found))

		if len(found) == 0 {
			missing = append(missing, word)
			fmt.Fprintf(c.App.Writer, "No entries found for %q\n\n", word)
			continue
		}
		for _, m := range found {
			printMatch(c.App.Writer, g, m)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: no entries for %q", glossary.ErrNotFound, missing)
	}
	return nil
}

func printMatch(w io.Writer, g *glossary.Glossary, m match) {
	fmt.Fprintf(w, "%s [%s]\n", m.entry.Word, m.letter)
	fmt.Fprintf(w, "    %s\n", m.entry.Meaning)
	for _, n := range m.entry.Footnotes {
		text, ok := g.Footnotes[n]
		if !ok {
			fmt.Fprintf(w, "    [%d] (undefined)\n", n)
			continue
		}
		fmt.Fprintf(w, "    [%d] %s\n", n, footnoteText(text))
	}
	fmt.Fprintln(w)
}

// footnoteText returns footnote text for display. Footnotes taken from the
// source document may carry inline HTML tags, which are reduced to text.
// Text without tags is printed as is.
func footnoteText(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	return html2text.HTML2Text(s)
}
