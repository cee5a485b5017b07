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

// Package cache holds the keyed stores shared by every object in a STAC
// tree: the identity cache that guarantees at most one in-memory instance
// per logical document, and the read-through collection cache used for
// pre-1.0 common-property inheritance.
package cache

import (
	"github.com/rs/zerolog/log"
)

// Key addresses one logical document. Value is the document's self href
// when it has one, otherwise the '/'-joined chain of ids from the root of
// its tree down to the document. IsHref records which addressing scheme
// produced Value so an href can never collide with an id chain.
//
// Two hrefless documents that share an id chain collide and are treated
// as the same document. The addressing scheme has no disambiguation for
// that case; callers that need distinct identities must set self hrefs.
type Key struct {
	Value  string
	IsHref bool
}

// Identity maps document keys to the single in-memory object representing
// each document. A tree's root owns one Identity and shares it by
// reference with every descendant.
type Identity struct {
	objects map[Key]any
}

func NewIdentity() *Identity {
	return &Identity{objects: make(map[Key]any)}
}

// GetOrCache returns the object already cached under key, or caches obj
// and returns it. The returned value is always the canonical instance for
// the key.
func (c *Identity) GetOrCache(key Key, obj any) any {
	if existing, ok := c.objects[key]; ok {
		return existing
	}
	c.objects[key] = obj
	return obj
}

func (c *Identity) Get(key Key) (any, bool) {
	obj, ok := c.objects[key]
	return obj, ok
}

// GetByHref looks up an object by its self href.
func (c *Identity) GetByHref(href string) (any, bool) {
	return c.Get(Key{Value: href, IsHref: true})
}

func (c *Identity) Contains(key Key) bool {
	_, ok := c.objects[key]
	return ok
}

func (c *Identity) Remove(key Key) {
	delete(c.objects, key)
}

// Rekey relocates the entry at old to new. Setting or clearing a self
// href switches an object between href-based and id-chain-based
// addressing, and the cache entry must move with it or go stale.
func (c *Identity) Rekey(old, new Key) {
	if old == new {
		return
	}
	obj, ok := c.objects[old]
	if !ok {
		return
	}
	delete(c.objects, old)
	c.objects[new] = obj
	log.Debug().Str("from", old.Value).Str("to", new.Value).Msg("relocated identity cache entry")
}

func (c *Identity) Len() int {
	return len(c.objects)
}

// Merge unions two caches into a new one. On key collision first wins, so
// when a subtree is grafted onto a tree the receiving tree's identities
// take precedence over the incoming subtree's.
func Merge(first, second *Identity) *Identity {
	merged := NewIdentity()
	if second != nil {
		for k, v := range second.objects {
			merged.objects[k] = v
		}
	}
	if first != nil {
		for k, v := range first.objects {
			merged.objects[k] = v
		}
	}
	return merged
}
