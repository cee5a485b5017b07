// Copyright 2021-2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cache

// Collections is a read-through cache of collection documents keyed by id
// and by href. Pre-1.0 items inherit common properties from their
// collection; without this cache every sibling item would re-read the
// same collection JSON during migration.
type Collections struct {
	entries map[string]any
}

func NewCollections() *Collections {
	return &Collections{entries: make(map[string]any)}
}

func (c *Collections) Get(key string) (any, bool) {
	v, ok := c.entries[key]
	return v, ok
}

// Set caches v under every non-empty key given (typically the collection
// id and its href).
func (c *Collections) Set(v any, keys ...string) {
	for _, key := range keys {
		if key != "" {
			c.entries[key] = v
		}
	}
}

// GetOrRead returns the cached entry for the first key that hits, and
// otherwise invokes read once and caches its result under all keys. The
// read callback may block on I/O.
func (c *Collections) GetOrRead(read func() (any, error), keys ...string) (any, error) {
	for _, key := range keys {
		if v, ok := c.entries[key]; ok && key != "" {
			return v, nil
		}
	}
	v, err := read()
	if err != nil {
		return nil, err
	}
	c.Set(v, keys...)
	return v, nil
}

// MergeCollections unions two collection caches; first wins on collision,
// mirroring identity-cache merge precedence.
func MergeCollections(first, second *Collections) *Collections {
	merged := NewCollections()
	if second != nil {
		for k, v := range second.entries {
			merged.entries[k] = v
		}
	}
	if first != nil {
		for k, v := range first.entries {
			merged.entries[k] = v
		}
	}
	return merged
}
