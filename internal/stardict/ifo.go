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

// Package stardict implements writing glossaries as StarDict dictionaries
// and reading back the parts needed to verify them.
//
// A StarDict dictionary written by this package consists of three files:
//  1. An .ifo file that contains metadata about the dictionary.
//  2. An .idx file that lists each headword with the offset and size of its
//     article in the .dict file. Entries are sorted in StarDict order.
//  3. A .dict.dz file holding the article text compressed in the dictzip
//     format.
//
// More info on the dictionary format can be found at this URL:
// https://github.com/huzheng001/stardict-3/blob/master/dict/doc/StarDictFileFormat
package stardict

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Magic is the first line of every .ifo file.
const Magic = "StarDict's dict ifo file"

// Version is the dictionary format version written by this package.
const Version = "2.4.2"

var (
	errBadMagic       = errors.New("bad magic data")
	errMissingVersion = errors.New("missing version")
	errInvalidKey     = errors.New("invalid key")
)

var keyRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Info is the dictionary metadata stored in the .ifo file.
type Info struct {
	Version          string
	Bookname         string
	WordCount        int64
	IdxFileSize      int64
	SameTypeSequence string
	Description      string
	Date             string
}

// WriteTo writes the .ifo file contents to w.
func (i *Info) WriteTo(w io.Writer) (int64, error) {
	lines := []string{
		Magic,
		"version=" + i.Version,
		"bookname=" + oneLine(i.Bookname),
		"wordcount=" + strconv.FormatInt(i.WordCount, 10),
		"idxfilesize=" + strconv.FormatInt(i.IdxFileSize, 10),
	}
	if i.SameTypeSequence != "" {
		lines = append(lines, "sametypesequence="+i.SameTypeSequence)
	}
	if i.Description != "" {
		lines = append(lines, "description="+oneLine(i.Description))
	}
	if i.Date != "" {
		lines = append(lines, "date="+i.Date)
	}

	n, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	if err != nil {
		return int64(n), fmt.Errorf("writing ifo: %w", err)
	}
	return int64(n), nil
}

// oneLine replaces line breaks, which cannot appear in .ifo values.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", "<br>", "\n", "<br>", "\r", "<br>").Replace(s)
}

// ReadInfo reads an .ifo file from r.
func ReadInfo(r io.Reader) (*Info, error) {
	s := bufio.NewScanner(r)
	if !s.Scan() || s.Text() != Magic {
		if err := s.Err(); err != nil {
			return nil, fmt.Errorf("reading ifo: %w", err)
		}
		return nil, errBadMagic
	}

	metadata := map[string]string{}
	first := true
	for s.Scan() {
		line := s.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, _ := strings.Cut(line, "=")
		key = strings.TrimRight(key, " ")
		if !keyRegex.MatchString(key) {
			return nil, fmt.Errorf("%w: %q", errInvalidKey, key)
		}
		if first && key != "version" {
			return nil, errMissingVersion
		}
		first = false
		metadata[key] = strings.TrimLeft(value, " ")
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading ifo: %w", err)
	}
	if first {
		return nil, errMissingVersion
	}

	info := &Info{
		Version:          metadata["version"],
		Bookname:         metadata["bookname"],
		SameTypeSequence: metadata["sametypesequence"],
		Description:      metadata["description"],
		Date:             metadata["date"],
	}
	var err error
	if info.WordCount, err = strconv.ParseInt(metadata["wordcount"], 10, 64); err != nil {
		return nil, fmt.Errorf("bad wordcount: %w", err)
	}
	if info.IdxFileSize, err = strconv.ParseInt(metadata["idxfilesize"], 10, 64); err != nil {
		return nil, fmt.Errorf("bad idxfilesize: %w", err)
	}
	return info, nil
}
