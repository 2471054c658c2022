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

// Package extract implements reading glossary data from the Markdown source
// document.
//
// The source document has a level two heading per letter ("## A") followed
// by a two column table whose first two rows are the header and separator.
// Footnote references appear in the meaning column as "<sup>n</sup>".
// Footnote definitions are written as "[n] text" and end at a blank line,
// the next definition or the end of the document.
package extract

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianlewis/go-glossary"
	"github.com/ianlewis/go-glossary/internal/folding"
)

// Options are options for reading a source document.
type Options struct {
	// FootnoteCap is the largest footnote number kept. Definitions with
	// larger numbers are ignored. Zero keeps every definition.
	FootnoteCap int

	// NotesMarker is the line prefix that starts the notes part of the
	// document. It ends the last letter section.
	NotesMarker string
}

// DefaultOptions are the default options for reading a source document.
var DefaultOptions = &Options{
	FootnoteCap: 6,
	NotesMarker: "# 注释",
}

var (
	headingRegex = regexp.MustCompile(`^## ([A-Z])\s*$`)

	// rowRegex matches a two column table row. Cells may contain escaped
	// pipes.
	rowRegex = regexp.MustCompile(`^\|\s*((?:[^|\\]|\\.)+?)\s*\|\s*((?:[^|\\]|\\.)+?)\s*\|$`)

	// countRowRegex matches any table row with at least two columns.
	countRowRegex = regexp.MustCompile(`^\|.*\|.*\|$`)

	supRegex      = regexp.MustCompile(`<sup>(\d+)</sup>`)
	footnoteRegex = regexp.MustCompile(`\[(\d+)\]`)
)

var cellUnescaper = strings.NewReplacer(`\|`, "|")

// skipRows is the number of leading rows in each table that are not data.
const skipRows = 2

// Document is a source document split into letter sections.
type Document struct {
	content  string
	sections map[string][]string
}

// Parse reads a source document from r.
func Parse(r io.Reader, opts *Options) (*Document, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading source document: %w", err)
	}
	content := strings.ReplaceAll(string(b), "\r\n", "\n")

	return &Document{
		content:  content,
		sections: splitSections(strings.Split(content, "\n"), opts.NotesMarker),
	}, nil
}

// Open reads the source document at path. It returns an error wrapping
// [glossary.ErrNotFound] if the file does not exist.
func Open(path string, opts *Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: source document %q", glossary.ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	d, err := Parse(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return d, nil
}

// splitSections returns the lines belonging to each letter section. A
// section starts after the first heading for its letter and ends at the next
// letter heading, a line starting with marker, or the end of the document.
func splitSections(lines []string, marker string) map[string][]string {
	sections := map[string][]string{}
	current := ""
	for _, line := range lines {
		if m := headingRegex.FindStringSubmatch(line); m != nil {
			current = ""
			if _, seen := sections[m[1]]; !seen {
				current = m[1]
				sections[current] = []string{}
			}
			continue
		}
		if marker != "" && strings.HasPrefix(line, marker) {
			current = ""
			continue
		}
		if current != "" {
			sections[current] = append(sections[current], line)
		}
	}
	return sections
}

// Glossary returns the glossary described by the document. Letters without
// a heading or without data rows are omitted.
func (d *Document) Glossary(opts *Options) (*glossary.Glossary, error) {
	if opts == nil {
		opts = DefaultOptions
	}

	g := glossary.New()
	for _, r := range glossary.Letters {
		letter := string(r)
		rows := 0
		for _, line := range d.sections[letter] {
			m := rowRegex.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			rows++
			if rows <= skipRows {
				continue
			}

			e, err := entry(m[1], m[2])
			if err != nil {
				return nil, err
			}
			if e.Word == "" || e.Meaning == "" {
				continue
			}
			g.Add(letter, e)
		}
	}

	notes, err := footnotes(d.content, opts.FootnoteCap)
	if err != nil {
		return nil, err
	}
	g.Footnotes = notes

	return g, nil
}

// entry builds an entry from a table row, moving footnote markers from the
// meaning into the entry's footnote references.
func entry(word, meaning string) (glossary.Entry, error) {
	e := glossary.Entry{
		Word: strings.TrimSpace(cellUnescaper.Replace(word)),
	}
	meaning = cellUnescaper.Replace(meaning)

	for _, m := range supRegex.FindAllStringSubmatch(meaning, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		e.Footnotes = append(e.Footnotes, n)
	}

	var err error
	e.Meaning, err = folding.Collapse(supRegex.ReplaceAllString(meaning, ""))
	if err != nil {
		return glossary.Entry{}, fmt.Errorf("meaning of %q: %w", e.Word, err)
	}
	return e, nil
}

// footnotes finds footnote definitions in content. Numbers outside 1 to limit
// are ignored when limit is positive.
func footnotes(content string, limit int) (map[int]string, error) {
	notes := map[int]string{}
	pos := 0
	for {
		loc := footnoteRegex.FindStringSubmatchIndex(content[pos:])
		if loc == nil {
			break
		}
		num := content[pos+loc[2] : pos+loc[3]]
		start := pos + loc[1]
		for start < len(content) && isSpace(content[start]) {
			start++
		}
		if start >= len(content) {
			break
		}

		end := textEnd(content, start+1)
		pos = end

		n, err := strconv.Atoi(num)
		if err != nil || n < 1 || (limit > 0 && n > limit) {
			continue
		}
		text, err := folding.Collapse(content[start:end])
		if err != nil {
			return nil, fmt.Errorf("footnote %d: %w", n, err)
		}
		notes[n] = text
	}
	return notes, nil
}

// textEnd returns the offset of the first blank line or definition marker
// line at or after from, or the length of content.
func textEnd(content string, from int) int {
	if from > len(content) {
		return len(content)
	}
	end := len(content)
	for _, term := range []string{"\n\n", "\n["} {
		if i := strings.Index(content[from:], term); i >= 0 && from+i < end {
			end = from + i
		}
	}
	return end
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// CountRows returns the number of table data rows in the document. It counts
// every row with at least two columns in each letter section, less the header
// and separator rows, independently of how rows are turned into entries.
func (d *Document) CountRows() int {
	total := 0
	for _, r := range glossary.Letters {
		rows := 0
		for _, line := range d.sections[string(r)] {
			if countRowRegex.MatchString(line) {
				rows++
			}
		}
		total += max(0, rows-skipRows)
	}
	return total
}

// Extract reads the source document at path and returns its glossary.
func Extract(path string, opts *Options) (*glossary.Glossary, error) {
	d, err := Open(path, opts)
	if err != nil {
		return nil, err
	}
	return d.Glossary(opts)
}
