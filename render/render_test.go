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

package render_test

import (
	"archive/zip"
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/ianlewis/go-glossary"
	"github.com/ianlewis/go-glossary/extract"
	"github.com/ianlewis/go-glossary/internal/stardict"
	"github.com/ianlewis/go-glossary/internal/testutil"
	"github.com/ianlewis/go-glossary/render"
)

func renderTo(t *testing.T, format string, g *glossary.Glossary) string {
	t.Helper()

	name, ok := render.Filename(format)
	if !ok {
		t.Fatalf("Filename(%q): unknown format", format)
	}
	path := filepath.Join(t.TempDir(), "out", name)

	r, err := render.New(format, render.DefaultOptions)
	if err != nil {
		t.Fatalf("New(%q): %v", format, err)
	}
	if err := r.Render(context.Background(), g, path); err != nil {
		t.Fatalf("Render(%q): %v", format, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %q: %v", path, err)
	}
	return string(b)
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		formats  []string
		expected []string
	}{
		{
			name:     "all",
			formats:  []string{"csv", "all"},
			expected: []string{"csv", "markdown", "html", "docx", "pdf", "sqlite", "stardict"},
		},
		{
			name:     "order preserved",
			formats:  []string{"pdf", "csv"},
			expected: []string{"pdf", "csv"},
		},
		{
			name:     "duplicates and unknown",
			formats:  []string{"csv", "epub", "csv", "html"},
			expected: []string{"csv", "html"},
		},
		{
			name:    "none",
			formats: []string{"epub"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, render.Resolve(test.formats)); diff != "" {
				t.Errorf("Resolve (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	want := map[string]string{
		"csv":      "terms.csv",
		"markdown": "terms.md",
		"html":     "terms.html",
		"docx":     "terms.docx",
		"pdf":      "terms.pdf",
		"sqlite":   "terms.db",
		"stardict": "terms.ifo",
	}
	got := map[string]string{}
	for _, f := range render.Formats() {
		got[f], _ = render.Filename(f)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Filename (-want, +got):\n%s", diff)
	}

	if _, ok := render.Filename("epub"); ok {
		t.Error("Filename(epub): expected unknown format")
	}
}

func TestNew_unknown(t *testing.T) {
	t.Parallel()

	if _, err := render.New("epub", render.DefaultOptions); !errors.Is(err, glossary.ErrRenderer) {
		t.Fatalf("New: got %v, want %v", err, glossary.ErrRenderer)
	}
}

func TestCSV(t *testing.T) {
	t.Parallel()

	got := readFile(t, renderTo(t, render.CSV, testutil.Glossary()))
	want := `letter,word,meaning,footnotes
A,apple,苹果,
A,access control,访问控制,2
B,bit,二进制位,1
B,byte,字节,
C,C++,C++ 语言,
C,"cache, memory",缓存,"1,2"
I,it's,"""它是""",
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("csv (-want, +got):\n%s", diff)
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	g := &glossary.Glossary{
		Terms: map[string][]glossary.Entry{
			"B": {{Word: "bit", Meaning: "二进制位", Footnotes: []int{1, 2}}},
			"A": {{Word: "a|b", Meaning: "管道"}},
		},
		Footnotes: map[int]string{2: "two", 1: "one"},
	}

	b, err := render.MarkdownBytes(g, render.Options{Title: "Terms", NotesMarker: "# Notes"})
	if err != nil {
		t.Fatalf("MarkdownBytes: %v", err)
	}

	want := `# Terms

## A

| 英文 | 中文 |
| --- | --- |
| a\|b | 管道 |

## B

| 英文 | 中文 |
| --- | --- |
| bit | 二进制位<sup>1</sup><sup>2</sup> |

# Notes

[1] one

[2] two
`
	if diff := cmp.Diff(want, string(b)); diff != "" {
		t.Errorf("MarkdownBytes (-want, +got):\n%s", diff)
	}
}

func TestMarkdown_extract(t *testing.T) {
	t.Parallel()

	g := testutil.Glossary()
	g.Add("P", glossary.Entry{Word: "a|b", Meaning: "管道|符"})
	path := renderTo(t, render.Markdown, g)

	opts := &extract.Options{NotesMarker: render.DefaultOptions.NotesMarker}
	got, err := extract.Extract(path, opts)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if diff := cmp.Diff(g, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Extract (-want, +got):\n%s", diff)
	}
}

func TestHTML(t *testing.T) {
	t.Parallel()

	got := readFile(t, renderTo(t, render.HTML, testutil.Glossary()))
	for _, want := range []string{
		"<title>计算机专业术语对照</title>",
		"<h2>A</h2>",
		"<td>二进制位<sup>1</sup></td>",
		"<td>C++ 语言</td>",
		"<p>[2] See also [access] control lists.</p>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("html does not contain %q", want)
		}
	}
}

func TestDOCX(t *testing.T) {
	t.Parallel()

	path := renderTo(t, render.DOCX, testutil.Glossary())
	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer r.Close()

	var names []string
	var doc string
	for _, f := range r.File {
		names = append(names, f.Name)
		if f.Name != render.DocumentPart {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		b, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		doc = string(b)
	}

	if diff := cmp.Diff([]string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"}, names); diff != "" {
		t.Errorf("parts (-want, +got):\n%s", diff)
	}
	for _, want := range []string{
		">cache, memory[1][2]<",
		">it&#39;s<",
		">&#34;它是&#34;<",
		">[2] See also [access] control lists.<",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document does not contain %q", want)
		}
	}
}

func TestSQLite(t *testing.T) {
	t.Parallel()

	path := renderTo(t, render.SQLite, testutil.Glossary())
	// Rendering again replaces the database.
	r, err := render.New(render.SQLite, render.DefaultOptions)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := r.Render(context.Background(), testutil.Glossary(), path); err != nil {
		t.Fatalf("Render: %v", err)
	}

	db, err := sql.Open(render.SQLiteDriver, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	type term struct {
		Letter    string
		Position  int
		Word      string
		Footnotes string
	}
	rows, err := db.Query("select letter, position, word, footnotes from term order by id")
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	defer rows.Close()

	var got []term
	for rows.Next() {
		var tm term
		if err := rows.Scan(&tm.Letter, &tm.Position, &tm.Word, &tm.Footnotes); err != nil {
			t.Fatalf("Scan: %v", err)
		}
		got = append(got, tm)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	want := []term{
		{"A", 0, "apple", ""},
		{"A", 1, "access control", "2"},
		{"B", 0, "bit", "1"},
		{"B", 1, "byte", ""},
		{"C", 0, "C++", ""},
		{"C", 1, "cache, memory", "1,2"},
		{"I", 0, "it's", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("terms (-want, +got):\n%s", diff)
	}

	var notes int
	if err := db.QueryRow("select count(*) from footnote").Scan(&notes); err != nil {
		t.Fatalf("QueryRow: %v", err)
	}
	if got, want := notes, 2; got != want {
		t.Errorf("footnotes: got %d, want %d", got, want)
	}
}

func TestStarDict(t *testing.T) {
	t.Parallel()

	path := renderTo(t, render.StarDict, testutil.Glossary())
	d, err := stardict.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got, want := d.Info.Bookname, render.DefaultOptions.Title; got != want {
		t.Errorf("Bookname: got %q, want %q", got, want)
	}

	var words []string
	articles := map[string]string{}
	for _, e := range d.Entries {
		text, err := d.Text(e)
		if err != nil {
			t.Fatalf("Text: %v", err)
		}
		words = append(words, e.Word)
		articles[e.Word] = text
	}

	wantWords := []string{"access control", "apple", "bit", "byte", "C++", "cache, memory", "it's"}
	if diff := cmp.Diff(wantWords, words); diff != "" {
		t.Errorf("words (-want, +got):\n%s", diff)
	}
	if got, want := articles["cache, memory"], "缓存\n[1] Binary digit.\n[2] See also [access] control lists."; got != want {
		t.Errorf("article: got %q, want %q", got, want)
	}
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	for _, format := range render.Formats() {
		format := format
		if format == render.PDF {
			continue
		}
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			path := renderTo(t, format, glossary.New())
			if _, err := os.Stat(path); err != nil {
				t.Errorf("Stat: %v", err)
			}
		})
	}
}

func TestPDF(t *testing.T) {
	t.Parallel()

	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}
	if _, err := render.FindBrowser(""); err != nil {
		t.Skipf("skipping: %v", err)
	}

	got := readFile(t, renderTo(t, render.PDF, testutil.Glossary()))
	if !bytes.HasPrefix([]byte(got), []byte("%PDF-")) {
		t.Errorf("pdf header: got %q", got[:min(len(got), 8)])
	}
}
