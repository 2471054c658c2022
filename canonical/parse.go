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

package canonical

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ianlewis/go-glossary"
)

// maxLineSize is the maximum size of a single line.
const maxLineSize = 1024 * 1024

type section int

const (
	sectionNone section = iota
	sectionTerms
	sectionFootnotes
)

// parser is the line-classification state machine. It tracks the current
// section and letter group, the entry waiting for its meaning, and the entry
// committed last so that a footnote refs line written after the meaning still
// applies to it.
type parser struct {
	g *glossary.Glossary

	section section
	letter  string

	// pending is the entry opened by a word line whose meaning has not been
	// seen yet.
	pending *glossary.Entry

	// last is the index of the last committed entry in the current letter
	// group or -1.
	last int
}

func newParser() *parser {
	return &parser{
		g:    glossary.New(),
		last: -1,
	}
}

func (p *parser) reset() {
	p.letter = ""
	p.pending = nil
	p.last = -1
}

func (p *parser) feed(l Line) {
	switch l.Kind {
	case KindTermsSection:
		p.section = sectionTerms
		p.reset()
		return
	case KindFootnotesSection:
		p.section = sectionFootnotes
		p.reset()
		return
	}

	switch p.section {
	case sectionTerms:
		p.feedTerms(l)
	case sectionFootnotes:
		if l.Kind == KindFootnote {
			p.g.Footnotes[l.Number] = l.Text
		}
	case sectionNone:
	}
}

func (p *parser) feedTerms(l Line) {
	//nolint:exhaustive // other kinds are ignored in the terms section.
	switch l.Kind {
	case KindLetter:
		p.letter = l.Letter
		if _, ok := p.g.Terms[p.letter]; !ok {
			p.g.Terms[p.letter] = []glossary.Entry{}
		}
		p.pending = nil
		p.last = -1

	case KindWord:
		// A previous entry still waiting for its meaning is dropped.
		p.pending = &glossary.Entry{Word: l.Text}
		p.last = -1

	case KindMeaning:
		if p.pending == nil {
			return
		}
		p.pending.Meaning = l.Text
		if p.letter != "" {
			p.g.Terms[p.letter] = append(p.g.Terms[p.letter], *p.pending)
			p.last = len(p.g.Terms[p.letter]) - 1
		}
		p.pending = nil

	case KindFootnoteRefs:
		switch {
		case p.pending != nil:
			p.pending.Footnotes = l.Refs
		case p.last >= 0:
			p.g.Terms[p.letter][p.last].Footnotes = l.Refs
			p.last = -1
		}
	}
}

// Parse reads a canonical file from r. Unrecognized lines are ignored. Parse
// returns an error wrapping [glossary.ErrMalformedStructure] if no entries
// were read.
func Parse(r io.Reader) (*glossary.Glossary, error) {
	p := newParser()

	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for s.Scan() {
		p.feed(Classify(s.Text()))
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("reading canonical file: %w", err)
	}

	if p.g.Count() == 0 {
		return nil, fmt.Errorf("%w: missing or empty %q section", glossary.ErrMalformedStructure, "terms")
	}

	return p.g, nil
}

// Load reads the canonical file at path. It returns an error wrapping
// [glossary.ErrNotFound] if the file does not exist.
func Load(path string) (*glossary.Glossary, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: canonical file %q", glossary.ErrNotFound, path)
		}
		return nil, fmt.Errorf("opening %q: %w", path, err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	return g, nil
}
