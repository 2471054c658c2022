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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		line     string
		expected Line
	}{
		{
			name:     "blank",
			line:     "   ",
			expected: Line{Kind: KindIgnored},
		},
		{
			name:     "comment",
			line:     "  # terms:",
			expected: Line{Kind: KindIgnored},
		},
		{
			name:     "terms header",
			line:     "terms:",
			expected: Line{Kind: KindTermsSection},
		},
		{
			name:     "indented footnotes header",
			line:     "  footnotes:  ",
			expected: Line{Kind: KindFootnotesSection},
		},
		{
			name:     "letter",
			line:     "  Q:",
			expected: Line{Kind: KindLetter, Letter: "Q"},
		},
		{
			name:     "lowercase letter",
			line:     "  q:",
			expected: Line{Kind: KindUnknown},
		},
		{
			name:     "word",
			line:     "    - word: apple",
			expected: Line{Kind: KindWord, Text: "apple"},
		},
		{
			name:     "word with colon",
			line:     "    - word: 'key: value'",
			expected: Line{Kind: KindWord, Text: "key: value"},
		},
		{
			name:     "meaning",
			line:     `      meaning: "它是"`,
			expected: Line{Kind: KindMeaning, Text: "它是"},
		},
		{
			name:     "footnote refs",
			line:     "      footnotes: [1, 2]",
			expected: Line{Kind: KindFootnoteRefs, Refs: []int{1, 2}},
		},
		{
			name:     "footnote refs with junk",
			line:     "      footnotes: [1, x, , 3]",
			expected: Line{Kind: KindFootnoteRefs, Refs: []int{1, 3}},
		},
		{
			name:     "footnote refs without brackets",
			line:     "      footnotes: 1, 2",
			expected: Line{Kind: KindUnknown},
		},
		{
			name:     "footnote",
			line:     "  12: 'see [1]'",
			expected: Line{Kind: KindFootnote, Number: 12, Text: "see [1]"},
		},
		{
			name:     "footnote zero",
			line:     "  0: text",
			expected: Line{Kind: KindUnknown},
		},
		{
			name:     "garbage",
			line:     "%%% not a line %%%",
			expected: Line{Kind: KindUnknown},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Classify(test.line)); diff != "" {
				t.Fatalf("Classify (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "plain",
			value:    "apple",
			expected: "apple",
		},
		{
			name:     "cjk",
			value:    "二进制位",
			expected: "二进制位",
		},
		{
			name:     "empty",
			value:    "",
			expected: `""`,
		},
		{
			name:     "leading space",
			value:    " x",
			expected: `" x"`,
		},
		{
			name:     "trailing space",
			value:    "x  ",
			expected: `"x  "`,
		},
		{
			name:     "leading tab",
			value:    "\tx",
			expected: "\"\tx\"",
		},
		{
			name:     "comma",
			value:    "a, b",
			expected: "'a, b'",
		},
		{
			name:     "colon space",
			value:    "key: value",
			expected: "'key: value'",
		},
		{
			name:     "colon without space",
			value:    "http://x",
			expected: "http://x",
		},
		{
			name:     "backtick",
			value:    "`code`",
			expected: "'`code`'",
		},
		{
			name:     "double quotes",
			value:    `say "hi"`,
			expected: `'say "hi"'`,
		},
		{
			name:     "single quote",
			value:    "it's",
			expected: `"it's"`,
		},
		{
			name:     "both quotes",
			value:    `it's "x"`,
			expected: `"it's \"x\""`,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := Quote(test.value)
			if diff := cmp.Diff(test.expected, got); diff != "" {
				t.Fatalf("Quote (-want, +got):\n%s", diff)
			}
			if diff := cmp.Diff(test.value, Unquote(got)); diff != "" {
				t.Fatalf("Unquote(Quote) (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestUnquote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected string
	}{
		{value: "plain", expected: "plain"},
		{value: `"double"`, expected: "double"},
		{value: "'single'", expected: "single"},
		{value: `"unbalanced`, expected: "unbalanced"},
		{value: `mixed'`, expected: "mixed"},
		{value: `"a \"b\""`, expected: `a "b"`},
		{value: `'a \"b\"'`, expected: `a \"b\"`},
		{value: `"`, expected: ""},
	}

	for _, test := range tests {
		test := test
		t.Run(test.value, func(t *testing.T) {
			t.Parallel()

			if diff := cmp.Diff(test.expected, Unquote(test.value)); diff != "" {
				t.Fatalf("Unquote (-want, +got):\n%s", diff)
			}
		})
	}
}
