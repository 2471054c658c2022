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
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ianlewis/go-glossary/internal/testutil"
	"github.com/ianlewis/go-glossary/render"
)

func TestOutput(t *testing.T) {
	t.Parallel()

	g := testutil.Glossary()
	dir := t.TempDir()

	for _, format := range render.Formats() {
		format := format
		if format == render.PDF {
			continue
		}
		t.Run(format, func(t *testing.T) {
			t.Parallel()

			name, _ := render.Filename(format)
			path := filepath.Join(dir, name)
			r, err := render.New(format, render.DefaultOptions)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if err := r.Render(context.Background(), g, path); err != nil {
				t.Fatalf("Render: %v", err)
			}

			if got := Output(format, path, g.Count()); !got.OK {
				t.Errorf("Output: %s", got.Message)
			}
			if got := Output(format, path, g.Count()+1); got.OK && format != render.DOCX {
				t.Errorf("Output: expected count mismatch, got %q", got.Message)
			}
		})
	}
}

func TestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.pdf")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		ok      bool
		message string
	}{
		{
			name:    "exists",
			path:    testutil.WriteFile(t, "terms.pdf", "%PDF-1.4"),
			ok:      true,
			message: "Valid: PDF file exists (8 bytes)",
		},
		{
			name:    "missing",
			path:    filepath.Join(dir, "missing.pdf"),
			message: "File not found: ",
		},
		{
			name:    "empty",
			path:    empty,
			message: "File is empty: ",
		},
		{
			name:    "directory",
			path:    dir,
			message: "Path is not a file: ",
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			r := File(render.PDF, test.path)
			if r.OK != test.ok {
				t.Errorf("OK: got %v, want %v (%s)", r.OK, test.ok, r.Message)
			}
			if !strings.HasPrefix(r.Message, test.message) {
				t.Errorf("Message: got %q, want prefix %q", r.Message, test.message)
			}
		})
	}
}

func TestOutput_invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format   string
		contents string
	}{
		{render.PDF, "not a pdf"},
		{render.DOCX, "not a zip"},
		{render.CSV, "letter,word\n\"unterminated"},
		{render.StarDict, "not an ifo"},
	}

	for _, test := range tests {
		test := test
		t.Run(test.format, func(t *testing.T) {
			t.Parallel()

			name, _ := render.Filename(test.format)
			path := testutil.WriteFile(t, name, test.contents)
			if r := Output(test.format, path, 1); r.OK {
				t.Errorf("Output: expected failure, got %q", r.Message)
			}
		})
	}
}

func TestOutput_csvCount(t *testing.T) {
	t.Parallel()

	path := testutil.WriteFile(t, "terms.csv", "letter,word,meaning,footnotes\nA,apple,苹果,\nB,\"bit\nfield\",位,1\n")
	r := Output(render.CSV, path, 2)
	if !r.OK {
		t.Fatalf("Output: %s", r.Message)
	}
	if got, want := r.Message, "Valid: 2 terms"; got != want {
		t.Errorf("Message: got %q, want %q", got, want)
	}

	r = Output(render.CSV, path, 3)
	if got, want := r.Message, "Term count mismatch: expected 3, got 2"; got != want {
		t.Errorf("Message: got %q, want %q", got, want)
	}
}
