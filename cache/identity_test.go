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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCacheReturnsCanonicalInstance(t *testing.T) {
	c := NewIdentity()
	key := Key{Value: "https://example.com/catalog.json", IsHref: true}

	first := &struct{ name string }{"first"}
	second := &struct{ name string }{"second"}

	got := c.GetOrCache(key, first)
	assert.Same(t, first, got)

	// the second caller gets the instance already cached, not its own
	got = c.GetOrCache(key, second)
	assert.Same(t, first, got)
	assert.Equal(t, 1, c.Len())
}

func TestHrefAndIDChainKeysDoNotCollide(t *testing.T) {
	c := NewIdentity()
	hrefObj := "by-href"
	chainObj := "by-chain"

	c.GetOrCache(Key{Value: "root/child", IsHref: true}, hrefObj)
	c.GetOrCache(Key{Value: "root/child", IsHref: false}, chainObj)

	require.Equal(t, 2, c.Len())
	got, ok := c.GetByHref("root/child")
	require.True(t, ok)
	assert.Equal(t, hrefObj, got)
}

func TestRekeyMovesEntry(t *testing.T) {
	c := NewIdentity()
	old := Key{Value: "root/item-1", IsHref: false}
	obj := "the-item"
	c.GetOrCache(old, obj)

	newKey := Key{Value: "https://example.com/item-1.json", IsHref: true}
	c.Rekey(old, newKey)

	assert.False(t, c.Contains(old))
	got, ok := c.Get(newKey)
	require.True(t, ok)
	assert.Equal(t, obj, got)
	assert.Equal(t, 1, c.Len())
}

func TestRekeyMissingEntryIsNoop(t *testing.T) {
	c := NewIdentity()
	c.Rekey(Key{Value: "absent"}, Key{Value: "anywhere"})
	assert.Equal(t, 0, c.Len())
}

func TestMergeFirstWins(t *testing.T) {
	shared := Key{Value: "https://example.com/shared.json", IsHref: true}
	onlyFirst := Key{Value: "https://example.com/first.json", IsHref: true}
	onlySecond := Key{Value: "https://example.com/second.json", IsHref: true}

	first := NewIdentity()
	first.GetOrCache(shared, "receiving")
	first.GetOrCache(onlyFirst, "first-only")

	second := NewIdentity()
	second.GetOrCache(shared, "incoming")
	second.GetOrCache(onlySecond, "second-only")

	merged := Merge(first, second)
	require.Equal(t, 3, merged.Len())

	got, _ := merged.Get(shared)
	assert.Equal(t, "receiving", got)
	got, _ = merged.Get(onlyFirst)
	assert.Equal(t, "first-only", got)
	got, _ = merged.Get(onlySecond)
	assert.Equal(t, "second-only", got)
}

func TestMergeToleratesNil(t *testing.T) {
	only := NewIdentity()
	only.GetOrCache(Key{Value: "k"}, "v")

	assert.Equal(t, 1, Merge(only, nil).Len())
	assert.Equal(t, 1, Merge(nil, only).Len())
	assert.Equal(t, 0, Merge(nil, nil).Len())
}
