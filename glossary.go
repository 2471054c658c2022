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

package glossary

import (
	"errors"
	"fmt"
	"slices"
)

// Letters are the letter group keys expected in a complete glossary.
const Letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ErrGlossary is a parent error for all glossary errors.
var ErrGlossary = errors.New("glossary")

// ErrNotFound indicates that a required input file does not exist.
var ErrNotFound = fmt.Errorf("%w: not found", ErrGlossary)

// ErrMalformedStructure indicates that data was parsed but is structurally
// empty or unusable.
var ErrMalformedStructure = fmt.Errorf("%w: malformed structure", ErrGlossary)

// ErrValidation indicates that one or more consistency checks failed.
var ErrValidation = fmt.Errorf("%w: validation failed", ErrGlossary)

// ErrRenderer indicates that one or more output renderers failed.
var ErrRenderer = fmt.Errorf("%w: renderer failed", ErrGlossary)

// Glossary is a set of terms grouped by letter along with footnote
// definitions.
type Glossary struct {
	// Terms maps a single uppercase letter to the entries in that letter
	// group in authoring order.
	Terms map[string][]Entry

	// Footnotes maps a footnote number to its text.
	Footnotes map[int]string
}

// New returns an empty Glossary with both sections present.
func New() *Glossary {
	return &Glossary{
		Terms:     map[string][]Entry{},
		Footnotes: map[int]string{},
	}
}

// Add appends the entry to the given letter group.
func (g *Glossary) Add(letter string, e Entry) {
	if g.Terms == nil {
		g.Terms = map[string][]Entry{}
	}
	g.Terms[letter] = append(g.Terms[letter], e)
}

// Count returns the total number of entries across all letter groups.
func (g *Glossary) Count() int {
	n := 0
	for _, entries := range g.Terms {
		n += len(entries)
	}
	return n
}

// Letters returns the letter group keys in ascending order.
func (g *Glossary) Letters() []string {
	letters := make([]string, 0, len(g.Terms))
	for l := range g.Terms {
		letters = append(letters, l)
	}
	slices.Sort(letters)
	return letters
}

// FootnoteNumbers returns the footnote numbers in ascending order.
func (g *Glossary) FootnoteNumbers() []int {
	nums := make([]int, 0, len(g.Footnotes))
	for n := range g.Footnotes {
		nums = append(nums, n)
	}
	slices.Sort(nums)
	return nums
}

// Group is a letter and its entries.
type Group struct {
	Letter  string
	Entries []Entry
}

// Groups returns the letter groups sorted by letter. Entry order within each
// group is preserved.
func (g *Glossary) Groups() []Group {
	var groups []Group
	for _, l := range g.Letters() {
		groups = append(groups, Group{
			Letter:  l,
			Entries: g.Terms[l],
		})
	}
	return groups
}

// Footnote is a numbered footnote definition.
type Footnote struct {
	Number int
	Text   string
}

// SortedFootnotes returns the footnote definitions sorted by number.
func (g *Glossary) SortedFootnotes() []Footnote {
	var notes []Footnote
	for _, n := range g.FootnoteNumbers() {
		notes = append(notes, Footnote{
			Number: n,
			Text:   g.Footnotes[n],
		})
	}
	return notes
}
