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

// Package folding implements text transformers used to normalize glossary
// text for comparison and display.
package folding

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

// Spaces returns a transformer that drops leading and trailing whitespace and
// replaces each internal whitespace run with a single ASCII space.
func Spaces() transform.Transformer {
	return &spaceFolder{}
}

type spaceFolder struct {
	// seen is set once a non-space rune has been written.
	seen bool

	// pending is set when whitespace follows a written rune.
	pending bool
}

// Transform implements [transform.Transformer.Transform].
func (f *spaceFolder) Transform(dst, src []byte, atEOF bool) (int, int, error) {
	var nDst, nSrc int
	for nSrc < len(src) {
		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}
		r, size := utf8.DecodeRune(src[nSrc:])

		if unicode.IsSpace(r) {
			if f.seen {
				f.pending = true
			}
			nSrc += size
			continue
		}

		n := size
		if f.pending {
			n++
		}
		if nDst+n > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		if f.pending {
			dst[nDst] = ' '
			nDst++
			f.pending = false
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
		f.seen = true
	}

	return nDst, nSrc, nil
}

// Reset implements [transform.Transformer.Reset].
func (f *spaceFolder) Reset() {
	*f = spaceFolder{}
}

// Collapse trims s and collapses its internal whitespace runs.
func Collapse(s string) (string, error) {
	out, _, err := transform.String(Spaces(), s)
	if err != nil {
		return "", fmt.Errorf("folding whitespace: %w", err)
	}
	return out, nil
}

// Key returns the lookup key for s. Keys ignore case, full-width forms and
// differences in whitespace.
func Key(s string) (string, error) {
	t := transform.Chain(Spaces(), width.Fold, cases.Fold())
	out, _, err := transform.String(t, s)
	if err != nil {
		return "", fmt.Errorf("folding %q: %w", s, err)
	}
	return out, nil
}

// Width returns the number of terminal columns used to display s. East Asian
// wide and full-width runes take two columns.
func Width(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}
