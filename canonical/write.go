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
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ianlewis/go-glossary"
)

// header is written at the top of every canonical file.
var header = []string{
	"# Computing terminology cross reference data.",
	"#",
	"# Layout:",
	"#   terms:",
	"#     [A-Z]:                        # terms grouped by first letter",
	"#       - word: string              # English term",
	"#         meaning: string           # Chinese meaning",
	"#         footnotes: [number]       # referenced footnotes (optional)",
	"#   footnotes:",
	"#     [number]: string              # footnote text",
	"#",
	"# The footnotes field is omitted for terms without footnote references.",
}

var specialRegex = regexp.MustCompile("[\"'\\[\\]{},|*&#!%@`]|:\\s")

// Quote returns s in the form written to a canonical file. Values containing
// special characters are quoted: values with a single quote are wrapped in
// double quotes with internal double quotes escaped, others are wrapped in
// single quotes verbatim. Empty values and values with leading or trailing
// whitespace are wrapped in double quotes.
func Quote(s string) string {
	if specialRegex.MatchString(s) {
		if strings.Contains(s, "'") {
			return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
		}
		return "'" + s + "'"
	}
	if s == "" || strings.TrimSpace(s) != s {
		return `"` + s + `"`
	}
	return s
}

// Write writes g to w in the canonical format. Letter groups are written in
// ascending order, entries in their stored order and footnotes in ascending
// numeric order.
func Write(w io.Writer, g *glossary.Glossary) error {
	bw := bufio.NewWriter(w)
	line := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
		bw.WriteByte('\n')
	}

	for _, h := range header {
		line("%s", h)
	}
	line("")

	line("%s", termsHeader)
	for _, grp := range g.Groups() {
		line("  %s:", grp.Letter)
		for _, e := range grp.Entries {
			line("    %s %s", wordPrefix, Quote(e.Word))
			line("      %s %s", meaningPrefix, Quote(e.Meaning))
			if len(e.Footnotes) > 0 {
				refs := make([]string, 0, len(e.Footnotes))
				for _, n := range e.Footnotes {
					refs = append(refs, strconv.Itoa(n))
				}
				line("      %s [%s]", footnotesHeader, strings.Join(refs, ", "))
			}
		}
	}
	line("")

	line("%s", footnotesHeader)
	for _, fn := range g.SortedFootnotes() {
		line("  %d: %s", fn.Number, Quote(fn.Text))
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing canonical file: %w", err)
	}
	return nil
}

// Marshal returns the canonical encoding of g.
func Marshal(g *glossary.Glossary) []byte {
	var b bytes.Buffer
	// Writes to a bytes.Buffer do not fail.
	_ = Write(&b, g)
	return b.Bytes()
}

// Save writes g to the canonical file at path, creating parent directories as
// needed.
func Save(path string, g *glossary.Glossary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %q: %w", path, err)
	}
	//nolint:gosec // canonical files are meant to be world readable.
	if err := os.WriteFile(path, Marshal(g), 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}
