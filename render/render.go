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

// Package render writes a glossary to output formats.
//
// The set of formats is fixed. Each format has a name, a default output
// filename and a [Renderer]. Renderers create the destination directory,
// emit letter groups in ascending order and footnotes in numeric order, and
// keep the authoring order of entries within a letter group.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/ianlewis/go-glossary"
)

// Format names.
const (
	CSV      = "csv"
	Markdown = "markdown"
	HTML     = "html"
	DOCX     = "docx"
	PDF      = "pdf"
	SQLite   = "sqlite"
	StarDict = "stardict"
)

// All is the format name that selects every format.
const All = "all"

// Renderer writes a glossary to a single artifact.
type Renderer interface {
	Render(ctx context.Context, g *glossary.Glossary, path string) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, g *glossary.Glossary, path string) error

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, g *glossary.Glossary, path string) error {
	return f(ctx, g, path)
}

// Options are options shared by renderers.
type Options struct {
	// Title is the document title.
	Title string

	// NotesMarker is the heading line that introduces the footnote
	// definitions in Markdown output.
	NotesMarker string

	// Browser is the path to a Chrome or Chromium binary used by the PDF
	// renderer. It is looked up when empty.
	Browser string

	// NoSandbox disables the browser sandbox. It is always disabled when
	// running in CI.
	NoSandbox bool
}

// DefaultOptions are the default renderer options.
var DefaultOptions = Options{
	Title:       "计算机专业术语对照",
	NotesMarker: "# 注释",
}

type format struct {
	name     string
	filename string
	new      func(Options) Renderer
}

var formats = []format{
	{CSV, "terms.csv", func(Options) Renderer { return RendererFunc(renderCSV) }},
	{Markdown, "terms.md", func(o Options) Renderer { return &markdownRenderer{opts: o} }},
	{HTML, "terms.html", func(o Options) Renderer { return &htmlRenderer{opts: o} }},
	{DOCX, "terms.docx", func(o Options) Renderer { return &docxRenderer{opts: o} }},
	{PDF, "terms.pdf", func(o Options) Renderer { return &pdfRenderer{opts: o} }},
	{SQLite, "terms.db", func(Options) Renderer { return RendererFunc(renderSQLite) }},
	{StarDict, "terms.ifo", func(o Options) Renderer { return &stardictRenderer{opts: o} }},
}

func lookup(name string) (format, bool) {
	i := slices.IndexFunc(formats, func(f format) bool { return f.name == name })
	if i < 0 {
		return format{}, false
	}
	return formats[i], true
}

// Formats returns the names of all formats in registry order.
func Formats() []string {
	names := make([]string, 0, len(formats))
	for _, f := range formats {
		names = append(names, f.name)
	}
	return names
}

// Filename returns the default output filename for the format.
func Filename(name string) (string, bool) {
	f, ok := lookup(name)
	return f.filename, ok
}

// Resolve expands the requested format names. "all" selects every format in
// registry order. Unknown names are dropped and duplicates are removed while
// preserving the order of first appearance.
func Resolve(names []string) []string {
	if slices.Contains(names, All) {
		return Formats()
	}
	var resolved []string
	for _, n := range names {
		if _, ok := lookup(n); ok && !slices.Contains(resolved, n) {
			resolved = append(resolved, n)
		}
	}
	return resolved
}

// New returns the renderer for the named format.
func New(name string, opts Options) (Renderer, error) {
	f, ok := lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown format %q", glossary.ErrRenderer, name)
	}
	return f.new(opts), nil
}

// createFile creates path and its parent directories.
func createFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", path, err)
	}
	return f, nil
}

// footnoteRefs returns the footnote numbers as a comma separated list.
func footnoteRefs(nums []int) string {
	var b []byte
	for i, n := range nums {
		if i > 0 {
			b = append(b, ',')
		}
		b = fmt.Appendf(b, "%d", n)
	}
	return string(b)
}
