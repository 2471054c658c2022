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

// Package testutil implements fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ianlewis/go-glossary"
)

// Glossary returns a small glossary covering footnote references, quoting
// and multiple letter groups.
func Glossary() *glossary.Glossary {
	return &glossary.Glossary{
		Terms: map[string][]glossary.Entry{
			"A": {
				{Word: "apple", Meaning: "苹果"},
				{Word: "access control", Meaning: "访问控制", Footnotes: []int{2}},
			},
			"B": {
				{Word: "bit", Meaning: "二进制位", Footnotes: []int{1}},
				{Word: "byte", Meaning: "字节"},
			},
			"C": {
				{Word: "C++", Meaning: "C++ 语言"},
				{Word: "cache, memory", Meaning: "缓存", Footnotes: []int{1, 2}},
			},
			"I": {
				{Word: "it's", Meaning: `"它是"`},
			},
		},
		Footnotes: map[int]string{
			1: "Binary digit.",
			2: "See also [access] control lists.",
		},
	}
}

// Complete returns a glossary with one entry in each letter group from A to
// Z and a single footnote referenced from the first entry.
func Complete() *glossary.Glossary {
	g := glossary.New()
	for _, r := range glossary.Letters {
		l := string(r)
		g.Add(l, glossary.Entry{
			Word:    l + "-term",
			Meaning: "术语" + l,
		})
	}
	g.Terms["A"][0].Footnotes = []int{1}
	g.Footnotes[1] = "note"
	return g
}

// WriteFile writes contents to a file named name in a new temporary directory
// and returns the file path.
func WriteFile(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("writing %q: %v", path, err)
	}
	return path
}
