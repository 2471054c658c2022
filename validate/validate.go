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

// Package validate implements consistency checks over a glossary and over
// the artifacts rendered from it.
//
// Each check is a pure function returning a [Result]. Checks are independent
// of one another so callers may run any subset.
package validate

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ianlewis/go-glossary"
)

// Result is the outcome of a single check.
type Result struct {
	// Name is a short name for the check.
	Name string

	// OK is true if the check passed.
	OK bool

	// Message is a human readable diagnostic.
	Message string
}

func pass(name, format string, args ...any) Result {
	return Result{Name: name, OK: true, Message: fmt.Sprintf(format, args...)}
}

func fail(name, format string, args ...any) Result {
	return Result{Name: name, OK: false, Message: fmt.Sprintf(format, args...)}
}

// Check names in the order Canonical runs them.
const (
	NameFormat            = "Format"
	NameTermCount         = "Term Count"
	NameFootnoteIntegrity = "Footnote Integrity"
	NameRequiredFields    = "Required Fields"
	NameLetterGroups      = "Letter Group Completeness"
)

// Format checks that both the terms and footnotes sections are present.
func Format(g *glossary.Glossary) Result {
	switch {
	case g == nil || g.Terms == nil:
		return fail(NameFormat, "Missing 'terms' key")
	case g.Footnotes == nil:
		return fail(NameFormat, "Missing 'footnotes' key")
	}
	return pass(NameFormat, "Format is valid")
}

// TermCount checks that the number of entries equals sourceCount, the
// number of table rows counted independently in the source document.
func TermCount(g *glossary.Glossary, sourceCount int) Result {
	count := g.Count()
	if count != sourceCount {
		return fail(NameTermCount, "Term count mismatch: data has %d, source has %d", count, sourceCount)
	}
	return pass(NameTermCount, "Term count matches: %d terms", count)
}

// FootnoteIntegrity checks that every footnote reference names a defined
// footnote. Every dangling reference is reported.
func FootnoteIntegrity(g *glossary.Glossary) Result {
	var issues []string
	for _, group := range g.Groups() {
		for _, e := range group.Entries {
			for _, n := range e.Footnotes {
				if _, ok := g.Footnotes[n]; !ok {
					issues = append(issues, fmt.Sprintf("Term '%s' references undefined footnote %d", e.Word, n))
				}
			}
		}
	}
	if len(issues) > 0 {
		return fail(NameFootnoteIntegrity, "%s", strings.Join(issues, "; "))
	}
	return pass(NameFootnoteIntegrity, "All footnote references are valid")
}

// RequiredFields checks that every entry has a word and a meaning.
func RequiredFields(g *glossary.Glossary) Result {
	var issues []string
	for _, group := range g.Groups() {
		for i, e := range group.Entries {
			if e.Word == "" {
				issues = append(issues, fmt.Sprintf("%s[%d]: missing 'word' field", group.Letter, i))
			}
			if e.Meaning == "" {
				issues = append(issues, fmt.Sprintf("%s[%d]: missing 'meaning' field", group.Letter, i))
			}
		}
	}
	if len(issues) > 0 {
		return fail(NameRequiredFields, "%s", strings.Join(issues, "; "))
	}
	return pass(NameRequiredFields, "All terms have required fields")
}

// LetterGroups checks that the letter groups are exactly A through Z.
// Missing and unexpected letters are both reported.
func LetterGroups(g *glossary.Glossary) Result {
	var missing, extra []string
	for _, r := range glossary.Letters {
		if _, ok := g.Terms[string(r)]; !ok {
			missing = append(missing, string(r))
		}
	}
	for _, l := range g.Letters() {
		if len(l) != 1 || !strings.Contains(glossary.Letters, l) {
			extra = append(extra, l)
		}
	}
	slices.Sort(extra)

	var issues []string
	if len(missing) > 0 {
		issues = append(issues, "Missing letter groups: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		issues = append(issues, "Extra letter groups: "+strings.Join(extra, ", "))
	}
	if len(issues) > 0 {
		return fail(NameLetterGroups, "%s", strings.Join(issues, "; "))
	}
	return pass(NameLetterGroups, "All A-Z letter groups present")
}

// Canonical runs all five checks in order. A failed format check stops the
// run and is the only result returned.
func Canonical(g *glossary.Glossary, sourceCount int) []Result {
	format := Format(g)
	if !format.OK {
		return []Result{format}
	}
	return []Result{
		format,
		TermCount(g, sourceCount),
		FootnoteIntegrity(g),
		RequiredFields(g),
		LetterGroups(g),
	}
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.OK {
			failed = append(failed, r)
		}
	}
	return failed
}
