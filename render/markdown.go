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

package render

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/ianlewis/go-glossary"
)

//go:embed templates
var templates embed.FS

var markdownTemplate = template.Must(
	template.New("terms.md.tmpl").Funcs(template.FuncMap{
		"cell": markdownCell,
		"line": oneLine,
		"sup":  superscripts,
	}).ParseFS(templates, "templates/terms.md.tmpl"),
)

var cellReplacer = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>")

// markdownCell escapes s for use in a table cell.
func markdownCell(s string) string {
	return cellReplacer.Replace(s)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// superscripts returns footnote references as superscript tags.
func superscripts(nums []int) string {
	var b strings.Builder
	for _, n := range nums {
		b.WriteString("<sup>")
		b.WriteString(strconv.Itoa(n))
		b.WriteString("</sup>")
	}
	return b.String()
}

type document struct {
	Title       string
	NotesMarker string
	Groups      []glossary.Group
	Footnotes   []glossary.Footnote
}

func newDocument(g *glossary.Glossary, opts Options) document {
	return document{
		Title:       opts.Title,
		NotesMarker: opts.NotesMarker,
		Groups:      g.Groups(),
		Footnotes:   g.SortedFootnotes(),
	}
}

// MarkdownBytes renders g as a Markdown document. The document has the same
// structure as the source document read by the extract package.
func MarkdownBytes(g *glossary.Glossary, opts Options) ([]byte, error) {
	if opts.NotesMarker == "" {
		opts.NotesMarker = DefaultOptions.NotesMarker
	}
	var b bytes.Buffer
	if err := markdownTemplate.Execute(&b, newDocument(g, opts)); err != nil {
		return nil, fmt.Errorf("executing markdown template: %w", err)
	}
	return b.Bytes(), nil
}

type markdownRenderer struct {
	opts Options
}

// Render implements Renderer.
func (r *markdownRenderer) Render(_ context.Context, g *glossary.Glossary, path string) error {
	b, err := MarkdownBytes(g, r.opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}
