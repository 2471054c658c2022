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

package index

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func identity(s string) string {
	return s
}

func TestIndex_Search(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		values   []string
		query    string
		expected []string
	}{
		{
			name:     "single result",
			values:   []string{"foo", "bar", "baz", "bar"},
			query:    "foo",
			expected: []string{"foo"},
		},
		{
			name:     "multiple results",
			values:   []string{"foo", "bar", "baz", "bar"},
			query:    "bar",
			expected: []string{"bar", "bar"},
		},
		{
			name:     "no results",
			values:   []string{"foo", "bar", "baz", "bar"},
			query:    "none",
			expected: nil,
		},
		{
			name:     "empty index",
			values:   nil,
			query:    "foo",
			expected: nil,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			idx := New(test.values, identity)
			if diff := cmp.Diff(test.expected, idx.Search(test.query)); diff != "" {
				t.Fatalf("Search (-want, +got):\n%s", diff)
			}
		})
	}
}

func TestIndex_Prefix(t *testing.T) {
	t.Parallel()

	type word struct {
		Key   string
		Value int
	}

	values := []word{
		{Key: "byte", Value: 1},
		{Key: "bit", Value: 2},
		{Key: "bitmap", Value: 3},
		{Key: "bus", Value: 4},
		{Key: "bit", Value: 5},
	}
	idx := New(values, func(w word) string {
		return strings.ToLower(w.Key)
	})

	want := []word{
		{Key: "bit", Value: 2},
		{Key: "bit", Value: 5},
		{Key: "bitmap", Value: 3},
	}
	if diff := cmp.Diff(want, idx.Prefix("bit")); diff != "" {
		t.Fatalf("Prefix (-want, +got):\n%s", diff)
	}

	if want, got := 5, idx.Len(); want != got {
		t.Fatalf("Len; want: %d, got: %d", want, got)
	}
}
