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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrReadReadsOnce(t *testing.T) {
	c := NewCollections()
	reads := 0
	read := func() (any, error) {
		reads++
		return map[string]any{"id": "sentinel-2"}, nil
	}

	v, err := c.GetOrRead(read, "sentinel-2", "https://example.com/sentinel-2.json")
	require.NoError(t, err)
	assert.Equal(t, 1, reads)

	// second call hits the cache under either key
	again, err := c.GetOrRead(read, "sentinel-2", "")
	require.NoError(t, err)
	assert.Equal(t, 1, reads)
	assert.Equal(t, v, again)

	byHref, ok := c.Get("https://example.com/sentinel-2.json")
	require.True(t, ok)
	assert.Equal(t, v, byHref)
}

func TestGetOrReadPropagatesError(t *testing.T) {
	c := NewCollections()
	boom := errors.New("read failed")
	_, err := c.GetOrRead(func() (any, error) { return nil, boom }, "id")
	assert.ErrorIs(t, err, boom)

	// a failed read caches nothing
	_, ok := c.Get("id")
	assert.False(t, ok)
}

func TestSetSkipsEmptyKeys(t *testing.T) {
	c := NewCollections()
	c.Set("doc", "", "landsat")
	_, ok := c.Get("")
	assert.False(t, ok)
	v, ok := c.Get("landsat")
	require.True(t, ok)
	assert.Equal(t, "doc", v)
}

func TestMergeCollectionsFirstWins(t *testing.T) {
	first := NewCollections()
	first.Set("receiving", "shared")
	second := NewCollections()
	second.Set("incoming", "shared")
	second.Set("extra", "other")

	merged := MergeCollections(first, second)
	v, _ := merged.Get("shared")
	assert.Equal(t, "receiving", v)
	v, _ = merged.Get("other")
	assert.Equal(t, "extra", v)
}
