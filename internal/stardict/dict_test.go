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

package stardict

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestWrite(t *testing.T) {
	t.Parallel()

	articles := []Article{
		{Word: "byte", Text: "字节"},
		{Word: "Apple", Text: "苹果\n\n[1] note"},
		{Word: "bit", Text: "位"},
	}

	ifoPath := filepath.Join(t.TempDir(), "out", "terms.ifo")
	info, err := Write(ifoPath, articles, Options{
		Bookname: "Glossary",
		Date:     time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := info.WordCount, int64(3); got != want {
		t.Errorf("WordCount: got %d, want %d", got, want)
	}

	d, err := Open(ifoPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff(info, d.Info); diff != "" {
		t.Errorf("Info (-want, +got):\n%s", diff)
	}
	if got, want := d.Info.Date, "2025.03.04"; got != want {
		t.Errorf("Date: got %q, want %q", got, want)
	}

	var got []Article
	for _, e := range d.Entries {
		text, err := d.Text(e)
		if err != nil {
			t.Fatalf("Text: %v", err)
		}
		got = append(got, Article{Word: e.Word, Text: text})
	}
	want := []Article{
		{Word: "Apple", Text: "苹果\n\n[1] note"},
		{Word: "bit", Text: "位"},
		{Word: "byte", Text: "字节"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("articles (-want, +got):\n%s", diff)
	}
}

func TestWrite_invalidWord(t *testing.T) {
	t.Parallel()

	ifoPath := filepath.Join(t.TempDir(), "terms.ifo")
	if _, err := Write(ifoPath, []Article{{Word: "", Text: "x"}}, Options{}); err == nil {
		t.Fatal("Write: expected error for empty headword")
	}
}

func TestFilesFor(t *testing.T) {
	t.Parallel()

	want := Files{
		Ifo:  filepath.Join("out", "terms.ifo"),
		Idx:  filepath.Join("out", "terms.idx"),
		Dict: filepath.Join("out", "terms.dict.dz"),
	}
	if diff := cmp.Diff(want, FilesFor(filepath.Join("out", "terms.ifo"))); diff != "" {
		t.Errorf("FilesFor (-want, +got):\n%s", diff)
	}
}
