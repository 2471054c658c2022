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

package validate

import (
	"archive/zip"
	"bytes"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	// Registers the sqlite3 database/sql driver.
	_ "github.com/mattn/go-sqlite3"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ianlewis/go-glossary/internal/stardict"
	"github.com/ianlewis/go-glossary/render"
)

// File checks that path exists, is a regular file and is not empty.
func File(name, path string) Result {
	fi, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fail(name, "File not found: %s", path)
	case err != nil:
		return fail(name, "Error reading file: %v", err)
	case !fi.Mode().IsRegular():
		return fail(name, "Path is not a file: %s", path)
	case fi.Size() == 0:
		return fail(name, "File is empty: %s", path)
	}
	return pass(name, "Valid: %s file exists (%d bytes)", strings.ToUpper(name), fi.Size())
}

func termCount(name string, got, expected int) Result {
	if got != expected {
		return fail(name, "Term count mismatch: expected %d, got %d", expected, got)
	}
	return pass(name, "Valid: %d terms", got)
}

// Output checks the artifact at path rendered in the named format. expected
// is the number of entries in the rendered glossary.
func Output(format, path string, expected int) Result {
	if r := File(format, path); !r.OK {
		return r
	}

	var (
		count int
		err   error
	)
	switch format {
	case render.CSV:
		count, err = csvRows(path)
	case render.Markdown:
		count, err = markdownRows(path)
	case render.HTML:
		count, err = htmlRows(path)
	case render.SQLite:
		count, err = sqliteRows(path)
	case render.StarDict:
		count, err = stardictWords(path)
	case render.DOCX:
		if err := docxDocument(path); err != nil {
			return fail(format, "Invalid DOCX: %v", err)
		}
		return File(format, path)
	case render.PDF:
		if err := pdfMagic(path); err != nil {
			return fail(format, "Invalid PDF: %v", err)
		}
		return File(format, path)
	default:
		return File(format, path)
	}
	if err != nil {
		return fail(format, "Error reading %s: %v", strings.ToUpper(format), err)
	}
	return termCount(format, count, expected)
}

// csvRows returns the number of CSV records after the header.
func csvRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("reading csv: %w", err)
	}
	return max(0, len(records)-1), nil
}

// markdownRows returns the number of table body rows in a Markdown file.
func markdownRows(path string) (int, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading markdown: %w", err)
	}

	doc := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(src))
	count := 0
	err = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if entering && n.Kind() == extast.KindTableRow {
			count++
		}
		return gmast.WalkContinue, nil
	})
	if err != nil {
		return 0, fmt.Errorf("walking markdown: %w", err)
	}
	return count, nil
}

// htmlRows returns the number of table rows that contain data cells.
func htmlRows(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening html: %w", err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return 0, fmt.Errorf("parsing html: %w", err)
	}

	count := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr && hasChild(n, atom.Td) {
			count++
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return count, nil
}

func hasChild(n *html.Node, a atom.Atom) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return true
		}
	}
	return false
}

// sqliteRows returns the number of rows in the term table.
func sqliteRows(path string) (count int, err error) {
	db, err := sql.Open(render.SQLiteDriver, "file:"+path+"?mode=ro")
	if err != nil {
		return 0, fmt.Errorf("opening database: %w", err)
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	if err := db.QueryRow("select count(*) from term").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting terms: %w", err)
	}
	return count, nil
}

// stardictWords returns the dictionary word count after checking that the
// .ifo word count agrees with the .idx file.
func stardictWords(path string) (int, error) {
	d, err := stardict.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening dictionary: %w", err)
	}
	if got, want := int64(len(d.Entries)), d.Info.WordCount; got != want {
		return 0, fmt.Errorf("ifo wordcount %d does not match %d idx entries", want, got)
	}
	for _, e := range d.Entries {
		if _, err := d.Text(e); err != nil {
			return 0, err
		}
	}
	return len(d.Entries), nil
}

// docxDocument checks that path is a zip file with a main document part.
func docxDocument(path string) error {
	r, err := zip.OpenReader(path)
	if err != nil {
		return fmt.Errorf("opening zip: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == render.DocumentPart {
			return nil
		}
	}
	return fmt.Errorf("missing %s", render.DocumentPart)
}

var pdfHeader = []byte("%PDF-")

// pdfMagic checks that path starts with the PDF file header.
func pdfMagic(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening pdf: %w", err)
	}
	defer f.Close()

	b := make([]byte, len(pdfHeader))
	if _, err := io.ReadFull(f, b); err != nil {
		return fmt.Errorf("reading pdf header: %w", err)
	}
	if !bytes.Equal(b, pdfHeader) {
		return errors.New("missing %PDF- header")
	}
	return nil
}
