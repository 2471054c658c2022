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
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/ianlewis/go-glossary"
)

// DocumentPart is the path of the main document part in a DOCX package.
const DocumentPart = "word/document.xml"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`</Types>`

const relsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

var documentTemplate = template.Must(
	template.New("document.xml.tmpl").Funcs(template.FuncMap{
		"xml":      escapeXML,
		"brackets": brackets,
	}).ParseFS(templates, "templates/document.xml.tmpl"),
)

func escapeXML(s string) (string, error) {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return "", fmt.Errorf("escaping xml: %w", err)
	}
	return b.String(), nil
}

// brackets returns footnote references as bracketed markers, e.g. "[1][2]".
func brackets(nums []int) string {
	var b strings.Builder
	for _, n := range nums {
		b.WriteString("[" + strconv.Itoa(n) + "]")
	}
	return b.String()
}

type docxRenderer struct {
	opts Options
}

// Render implements Renderer.
func (r *docxRenderer) Render(_ context.Context, g *glossary.Glossary, path string) (err error) {
	var doc bytes.Buffer
	if err := documentTemplate.Execute(&doc, newDocument(g, r.opts)); err != nil {
		return fmt.Errorf("executing document template: %w", err)
	}

	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	zw := zip.NewWriter(f)
	parts := []struct {
		name string
		data []byte
	}{
		{"[Content_Types].xml", []byte(contentTypesXML)},
		{"_rels/.rels", []byte(relsXML)},
		{DocumentPart, doc.Bytes()},
	}
	for _, p := range parts {
		w, err := zw.Create(p.name)
		if err != nil {
			return fmt.Errorf("writing docx: %w", err)
		}
		if _, err := w.Write(p.data); err != nil {
			return fmt.Errorf("writing docx: %w", err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("writing docx: %w", err)
	}
	return nil
}
