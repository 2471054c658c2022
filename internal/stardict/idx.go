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
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// IndexEntry is an .idx file entry.
type IndexEntry struct {
	Word   string
	Offset uint32
	Size   uint32
}

// AppendIndex appends the encoding of e to b. Offsets are 32 bits.
func AppendIndex(b []byte, e IndexEntry) []byte {
	b = append(b, e.Word...)
	b = append(b, 0)
	b = binary.BigEndian.AppendUint32(b, e.Offset)
	b = binary.BigEndian.AppendUint32(b, e.Size)
	return b
}

// indexEntrySize is the size of an entry after the word terminator.
const indexEntrySize = 8

// Scanner scans an .idx file from start to end.
type Scanner struct {
	s *bufio.Scanner
}

// NewScanner returns a new index scanner reading from r.
func NewScanner(r io.Reader) *Scanner {
	s := &Scanner{
		s: bufio.NewScanner(r),
	}
	s.s.Split(splitIndex)
	return s
}

// Scan advances to the next index entry. It returns false if the scan stops
// either by reaching the end of the index or an error.
func (s *Scanner) Scan() bool {
	return s.s.Scan()
}

// Err returns the first error encountered.
func (s *Scanner) Err() error {
	if err := s.s.Err(); err != nil {
		return fmt.Errorf("scanning idx: %w", err)
	}
	return nil
}

// Entry returns the current index entry.
func (s *Scanner) Entry() IndexEntry {
	var e IndexEntry
	b := s.s.Bytes()
	if i := bytes.IndexByte(b, 0); i >= 0 && len(b) >= i+1+indexEntrySize {
		e.Word = string(b[:i])
		e.Offset = binary.BigEndian.Uint32(b[i+1:])
		e.Size = binary.BigEndian.Uint32(b[i+5:])
	}
	return e
}

// splitIndex splits the .idx file into entries.
func splitIndex(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, 0); i >= 0 {
		size := i + 1 + indexEntrySize
		if len(data) >= size {
			return size, data[:size], nil
		}
	}
	if atEOF {
		return 0, nil, fmt.Errorf("%w: truncated entry", io.ErrUnexpectedEOF)
	}
	// Request more data.
	return 0, nil, nil
}

// ReadIndex reads all entries of an .idx file.
func ReadIndex(r io.Reader) ([]IndexEntry, error) {
	var entries []IndexEntry
	s := NewScanner(r)
	for s.Scan() {
		entries = append(entries, s.Entry())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// checkOffset returns an error if n does not fit in a 32 bit offset.
func checkOffset(n int) error {
	if n > math.MaxUint32 {
		return fmt.Errorf("dictionary too large for 32 bit offsets: %d", n)
	}
	return nil
}
