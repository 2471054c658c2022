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

// Package index implements a generic sorted in-memory index keyed by strings.
package index

import (
	"sort"
	"strings"
)

type item[V any] struct {
	key   string
	value V
}

// Index is a sorted array index. Values sharing a key keep their insertion
// order.
type Index[V any] struct {
	items []item[V]
}

// New creates an index over values using key to compute each value's key.
func New[V any](values []V, key func(V) string) *Index[V] {
	items := make([]item[V], 0, len(values))
	for _, v := range values {
		items = append(items, item[V]{
			key:   key(v),
			value: v,
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].key < items[j].key
	})

	return &Index[V]{
		items: items,
	}
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.items)
}

// Search returns the values whose key equals k.
func (idx *Index[V]) Search(k string) []V {
	return idx.match(k, func(key string) bool {
		return key == k
	})
}

// Prefix returns the values whose key starts with p.
func (idx *Index[V]) Prefix(p string) []V {
	return idx.match(p, func(key string) bool {
		return strings.HasPrefix(key, p)
	})
}

func (idx *Index[V]) match(start string, ok func(string) bool) []V {
	i := sort.Search(len(idx.items), func(i int) bool {
		return idx.items[i].key >= start
	})

	var values []V
	for ; i < len(idx.items) && ok(idx.items[i].key); i++ {
		values = append(values, idx.items[i].value)
	}
	return values
}
