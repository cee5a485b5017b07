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

package stac

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeWritten(t *testing.T, io *testIO, href string) map[string]any {
	t.Helper()
	text, ok := io.written[href]
	require.True(t, ok, "expected %s to be written, got %v", href, writtenHrefs(io))
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &m))
	return m
}

func writtenHrefs(io *testIO) []string {
	out := make([]string, 0, len(io.written))
	for href := range io.written {
		out = append(out, href)
	}
	return out
}

func linkByRel(t *testing.T, m map[string]any, rel string) map[string]any {
	t.Helper()
	links, ok := m["links"].([]any)
	require.True(t, ok)
	for _, raw := range links {
		link := raw.(map[string]any)
		if link["rel"] == rel {
			return link
		}
	}
	return nil
}

func normalizedFixture(t *testing.T) (*Catalog, *testIO) {
	t.Helper()
	root, _, _ := builtTree()
	require.NoError(t, root.NormalizeHrefs("/data", bestPracticesLayout{}))
	return root, newTestIO(nil)
}

func TestSaveSelfContained(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	root, io := normalizedFixture(t)

	require.NoError(t, root.Save(SelfContained, io))
	assert.Len(t, io.written, 4)

	rootDoc := decodeWritten(t, io, "/data/catalog.json")
	assert.Nil(t, linkByRel(t, rootDoc, RelSelf))
	child := linkByRel(t, rootDoc, RelChild)
	require.NotNil(t, child)
	assert.Equal(t, "./sentinel-2/collection.json", child["href"])

	colDoc := decodeWritten(t, io, "/data/sentinel-2/collection.json")
	assert.Nil(t, linkByRel(t, colDoc, RelSelf))
	assert.Equal(t, "../catalog.json", linkByRel(t, colDoc, RelRoot)["href"])
	assert.Equal(t, "./scene-1/scene-1.json", linkByRel(t, colDoc, RelItem)["href"])

	itemDoc := decodeWritten(t, io, "/data/sentinel-2/scene-1/scene-1.json")
	assert.Equal(t, "../collection.json", linkByRel(t, itemDoc, RelParent)["href"])
}

func TestSaveAbsolutePublished(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	root, io := normalizedFixture(t)

	require.NoError(t, root.Save(AbsolutePublished, io))

	colDoc := decodeWritten(t, io, "/data/sentinel-2/collection.json")
	self := linkByRel(t, colDoc, RelSelf)
	require.NotNil(t, self)
	assert.Equal(t, "/data/sentinel-2/collection.json", self["href"])
	assert.Equal(t, "/data/catalog.json", linkByRel(t, colDoc, RelRoot)["href"])
}

func TestSaveRelativePublished(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	root, io := normalizedFixture(t)

	require.NoError(t, root.Save(RelativePublished, io))

	// only the root carries a self link
	rootDoc := decodeWritten(t, io, "/data/catalog.json")
	require.NotNil(t, linkByRel(t, rootDoc, RelSelf))
	assert.Equal(t, "/data/catalog.json", linkByRel(t, rootDoc, RelSelf)["href"])

	colDoc := decodeWritten(t, io, "/data/sentinel-2/collection.json")
	assert.Nil(t, linkByRel(t, colDoc, RelSelf))
	assert.Equal(t, "../catalog.json", linkByRel(t, colDoc, RelRoot)["href"])
}

func TestSaveRequiresHrefs(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	root, _, _ := builtTree()
	io := newTestIO(nil)
	assert.ErrorContains(t, root.Save(SelfContained, io), "no self href")
}
