// Copyright 2024 Ian Lewis
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

// Package index implements a generic read-only sorted index.
package index

import (
	"slices"
)

// Index is a generic sorted array index over values with string keys.
type Index[V any] struct {
	keys   []string
	values []V

	cmp func(string, string) int
}

// New creates an index over values. key returns the key of a value. cmp(a,
// b) should return a negative number when a < b, a positive number when a >
// b and zero when a == b or a and b are incomparable in the sense of a strict
// weak ordering. Values with equal keys keep their relative order.
func New[V any](values []V, key func(V) string, cmp func(string, string) int) *Index[V] {
	order := make([]int, len(values))
	keys := make([]string, len(values))
	for i, v := range values {
		order[i] = i
		keys[i] = key(v)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp(keys[a], keys[b])
	})

	idx := &Index[V]{
		keys:   make([]string, len(values)),
		values: make([]V, len(values)),
		cmp:    cmp,
	}
	for i, j := range order {
		idx.keys[i] = keys[j]
		idx.values[i] = values[j]
	}
	return idx
}

// Len returns the number of values in the index.
func (idx *Index[V]) Len() int {
	return len(idx.values)
}

// Search performs a binary search over the index and returns the values
// whose key compares equal to query. The returned slice must not be
// modified.
func (idx *Index[V]) Search(query string) []V {
	i, found := slices.BinarySearchFunc(idx.keys, query, idx.cmp)
	if !found {
		return nil
	}
	j := i + 1
	for j < len(idx.keys) && idx.cmp(idx.keys[j], query) == 0 {
		j++
	}
	return idx.values[i:j]
}
