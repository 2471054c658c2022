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
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ianlewis/go-dictzip"
)

// Article is a headword and its plain text article.
type Article struct {
	Word string
	Text string
}

// Options are options for writing a dictionary.
type Options struct {
	// Bookname is the dictionary title.
	Bookname string

	// Description is an optional dictionary description.
	Description string

	// Date is the dictionary date. Omitted when zero.
	Date time.Time
}

// Files holds the paths of a written dictionary.
type Files struct {
	Ifo  string
	Idx  string
	Dict string
}

// FilesFor returns the dictionary file paths for the given .ifo path.
func FilesFor(ifoPath string) Files {
	base := strings.TrimSuffix(ifoPath, filepath.Ext(ifoPath))
	return Files{
		Ifo:  base + ".ifo",
		Idx:  base + ".idx",
		Dict: base + ".dict.dz",
	}
}

// Compare compares headwords in StarDict order. Words are compared ignoring
// ASCII case first, with ties broken by a byte comparison.
func Compare(a, b string) int {
	if c := bytes.Compare(asciiLower(a), asciiLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

func asciiLower(s string) []byte {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return b
}

// Write writes articles as a dictionary whose .ifo file is at ifoPath. The
// .idx and .dict.dz files are written next to it.
func Write(ifoPath string, articles []Article, opts Options) (*Info, error) {
	sorted := slices.Clone(articles)
	slices.SortStableFunc(sorted, func(a, b Article) int {
		return Compare(a.Word, b.Word)
	})

	var dict, idx []byte
	for _, a := range sorted {
		if a.Word == "" || strings.ContainsRune(a.Word, 0) {
			return nil, fmt.Errorf("invalid headword %q", a.Word)
		}
		if err := checkOffset(len(dict) + len(a.Text)); err != nil {
			return nil, err
		}
		//nolint:gosec // offset size is bounds checked above.
		idx = AppendIndex(idx, IndexEntry{
			Word:   a.Word,
			Offset: uint32(len(dict)),
			Size:   uint32(len(a.Text)),
		})
		// With sametypesequence set the final item has no terminator.
		dict = append(dict, a.Text...)
	}

	files := FilesFor(ifoPath)
	if err := os.MkdirAll(filepath.Dir(files.Ifo), 0o755); err != nil {
		return nil, fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(files.Idx, idx, 0o644); err != nil {
		return nil, fmt.Errorf("writing idx: %w", err)
	}
	if err := writeDict(files.Dict, dict); err != nil {
		return nil, err
	}

	info := &Info{
		Version:          Version,
		Bookname:         opts.Bookname,
		WordCount:        int64(len(sorted)),
		IdxFileSize:      int64(len(idx)),
		SameTypeSequence: "m",
		Description:      opts.Description,
	}
	if !opts.Date.IsZero() {
		info.Date = opts.Date.Format("2006.01.02")
	}

	f, err := os.Create(files.Ifo)
	if err != nil {
		return nil, fmt.Errorf("writing ifo: %w", err)
	}
	if _, err := info.WriteTo(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing ifo: %w", err)
	}
	return info, nil
}

func writeDict(path string, data []byte) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing dict: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	z, err := dictzip.NewWriter(f)
	if err != nil {
		return fmt.Errorf("creating dictzip writer: %w", err)
	}
	if _, err := z.Write(data); err != nil {
		_ = z.Close()
		return fmt.Errorf("writing dict: %w", err)
	}
	if err := z.Close(); err != nil {
		return fmt.Errorf("writing dict: %w", err)
	}
	return nil
}

// Dictionary is a dictionary read back from disk.
type Dictionary struct {
	Info    *Info
	Entries []IndexEntry
	data    []byte
}

// Open reads the dictionary whose .ifo file is at ifoPath.
func Open(ifoPath string) (*Dictionary, error) {
	files := FilesFor(ifoPath)

	f, err := os.Open(files.Ifo)
	if err != nil {
		return nil, fmt.Errorf("opening ifo: %w", err)
	}
	info, err := ReadInfo(f)
	_ = f.Close()
	if err != nil {
		return nil, err
	}

	idxFile, err := os.Open(files.Idx)
	if err != nil {
		return nil, fmt.Errorf("opening idx: %w", err)
	}
	entries, err := ReadIndex(idxFile)
	_ = idxFile.Close()
	if err != nil {
		return nil, err
	}

	data, err := readDict(files.Dict)
	if err != nil {
		return nil, err
	}

	return &Dictionary{
		Info:    info,
		Entries: entries,
		data:    data,
	}, nil
}

// Text returns the article text for e.
func (d *Dictionary) Text(e IndexEntry) (string, error) {
	end := uint64(e.Offset) + uint64(e.Size)
	if end > uint64(len(d.data)) {
		return "", fmt.Errorf("%w: article for %q out of range", io.ErrUnexpectedEOF, e.Word)
	}
	return string(d.data[e.Offset:end]), nil
}

// readDict reads a .dict.dz file. Dictzip files are valid gzip files.
func readDict(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dict: %w", err)
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("creating dict gzip reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading dict: %w", err)
	}
	return data, nil
}
