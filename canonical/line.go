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

// Package canonical implements reading and writing the canonical glossary
// file.
//
// The canonical file is UTF-8 text with two sections. Its layout resembles a
// small subset of YAML but it is read line by line and is not parsed as YAML:
//
//	terms:
//	  A:
//	    - word: apple
//	      meaning: 苹果
//	      footnotes: [1, 2]
//	footnotes:
//	  1: some annotation
//
// Blank lines and lines starting with '#' are ignored everywhere. Lines that
// are not recognized are skipped rather than rejected.
package canonical

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the kind of a line in a canonical file.
type Kind int

const (
	// KindIgnored is a blank or comment line.
	KindIgnored Kind = iota

	// KindTermsSection is the "terms:" section header.
	KindTermsSection

	// KindFootnotesSection is the "footnotes:" section header.
	KindFootnotesSection

	// KindLetter opens a letter group, e.g. "A:".
	KindLetter

	// KindWord opens an entry, e.g. "- word: apple".
	KindWord

	// KindMeaning sets an entry's meaning, e.g. "meaning: 苹果".
	KindMeaning

	// KindFootnoteRefs sets an entry's footnote references, e.g.
	// "footnotes: [1, 2]".
	KindFootnoteRefs

	// KindFootnote is a footnote definition, e.g. "1: text".
	KindFootnote

	// KindUnknown is a line that was not recognized.
	KindUnknown
)

var kindNames = map[Kind]string{
	KindIgnored:          "ignored",
	KindTermsSection:     "terms section",
	KindFootnotesSection: "footnotes section",
	KindLetter:           "letter",
	KindWord:             "word",
	KindMeaning:          "meaning",
	KindFootnoteRefs:     "footnote refs",
	KindFootnote:         "footnote",
	KindUnknown:          "unknown",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

const (
	termsHeader     = "terms:"
	footnotesHeader = "footnotes:"
	wordPrefix      = "- word:"
	meaningPrefix   = "meaning:"
)

var (
	letterRegex   = regexp.MustCompile(`^([A-Z]):$`)
	refsRegex     = regexp.MustCompile(`^\[(.*?)\]$`)
	footnoteRegex = regexp.MustCompile(`^([1-9]\d*):\s*(.+)$`)
)

// Line is a classified line of a canonical file.
type Line struct {
	// Kind is the kind of the line.
	Kind Kind

	// Letter is set for KindLetter lines.
	Letter string

	// Text is the unquoted value of KindWord, KindMeaning and KindFootnote
	// lines.
	Text string

	// Number is the footnote number of KindFootnote lines.
	Number int

	// Refs are the footnote numbers of KindFootnoteRefs lines. Tokens that are
	// not integers are dropped.
	Refs []int
}

// Classify determines the kind of a single line. Classification depends only
// on the line itself; whether the line applies is decided by the parser's
// current section.
func Classify(raw string) Line {
	s := strings.TrimSpace(raw)
	switch {
	case s == "" || strings.HasPrefix(s, "#"):
		return Line{Kind: KindIgnored}
	case s == termsHeader:
		return Line{Kind: KindTermsSection}
	case s == footnotesHeader:
		return Line{Kind: KindFootnotesSection}
	}

	if m := letterRegex.FindStringSubmatch(s); m != nil {
		return Line{Kind: KindLetter, Letter: m[1]}
	}

	if v, ok := strings.CutPrefix(s, wordPrefix); ok {
		return Line{Kind: KindWord, Text: Unquote(strings.TrimSpace(v))}
	}

	if v, ok := strings.CutPrefix(s, meaningPrefix); ok {
		return Line{Kind: KindMeaning, Text: Unquote(strings.TrimSpace(v))}
	}

	if v, ok := strings.CutPrefix(s, footnotesHeader); ok {
		m := refsRegex.FindStringSubmatch(strings.TrimSpace(v))
		if m == nil {
			return Line{Kind: KindUnknown}
		}
		return Line{Kind: KindFootnoteRefs, Refs: parseRefs(m[1])}
	}

	if m := footnoteRegex.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return Line{Kind: KindUnknown}
		}
		return Line{
			Kind:   KindFootnote,
			Number: n,
			Text:   Unquote(strings.TrimSpace(m[2])),
		}
	}

	return Line{Kind: KindUnknown}
}

func parseRefs(list string) []int {
	var refs []int
	for _, tok := range strings.Split(list, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(tok))
		if err != nil {
			continue
		}
		refs = append(refs, n)
	}
	return refs
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

// Unquote removes enclosing quotes from a value. A value wrapped in double
// quotes also has its escaped double quotes restored. Unbalanced quote
// characters at either end are removed independently.
func Unquote(s string) string {
	if len(s) >= 2 && s[0] == s[len(s)-1] && isQuote(s[0]) {
		inner := s[1 : len(s)-1]
		if s[0] == '"' {
			inner = strings.ReplaceAll(inner, `\"`, `"`)
		}
		return inner
	}
	if s != "" && isQuote(s[0]) {
		s = s[1:]
	}
	if s != "" && isQuote(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}
