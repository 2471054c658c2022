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
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ianlewis/go-glossary"
)

var pageTemplate = template.Must(template.ParseFS(templates, "templates/terms.html.tmpl"))

// md converts Markdown to HTML. Raw HTML is kept so footnote superscripts
// survive conversion.
var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

type page struct {
	Title string
	Body  template.HTML
}

// HTMLBytes renders g as a standalone HTML page.
func HTMLBytes(g *glossary.Glossary, opts Options) ([]byte, error) {
	src, err := MarkdownBytes(g, opts)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	if err := md.Convert(src, &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	var b bytes.Buffer
	//nolint:gosec // Glossary text is trusted input.
	if err := pageTemplate.Execute(&b, page{Title: opts.Title, Body: template.HTML(body.String())}); err != nil {
		return nil, fmt.Errorf("executing html template: %w", err)
	}
	return b.Bytes(), nil
}

type htmlRenderer struct {
	opts Options
}

// Render implements Renderer.
func (r *htmlRenderer) Render(_ context.Context, g *glossary.Glossary, path string) error {
	b, err := HTMLBytes(g, r.opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing html: %w", err)
	}
	return nil
}
