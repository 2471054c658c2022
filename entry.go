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
	"strconv"
	"strings"
)

// Entry is a glossary term.
type Entry struct {
	// Word is the English headword.
	Word string

	// Meaning is the Chinese meaning of the word.
	Meaning string

	// Footnotes are the numbers of the footnotes referenced by the entry in
	// order of appearance. Footnotes is nil when the entry has no references.
	Footnotes []int
}

// String returns a string representation of the Entry.
func (e Entry) String() string {
	var b strings.Builder
	b.WriteString(e.Word)
	for _, n := range e.Footnotes {
		b.WriteString("[" + strconv.Itoa(n) + "]")
	}
	b.WriteString(": ")
	b.WriteString(e.Meaning)
	return b.String()
}
