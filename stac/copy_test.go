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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullCopyIsIsomorphic(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	root := NewCatalog("root", "copy fixture")
	col := NewCollection("sentinel-2", "collection", nil)
	dt, _ := time.Parse(time.RFC3339, "2020-11-03T18:30:00Z")
	a := NewItem("scene-a", nil, nil, dt)
	b := NewItem("scene-b", nil, nil, dt)
	require.NoError(t, col.AddItem(a))
	require.NoError(t, col.AddItem(b))
	require.NoError(t, root.AddChild(col))

	// non-hierarchical cross-link between siblings
	b.AddLink(NewLinkTo("source", a))

	copied, ok := FullCopy(root).(*Catalog)
	require.True(t, ok)
	assert.NotSame(t, root, copied)

	children, err := copied.Children()
	require.NoError(t, err)
	require.Len(t, children, 1)
	copiedCol := children[0].(*Collection)
	assert.NotSame(t, col, copiedCol)

	items, err := copiedCol.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)
	copiedA, copiedB := items[0], items[1]
	assert.NotSame(t, a, copiedA)
	assert.NotSame(t, b, copiedB)

	// the cross-link lands on the copied sibling, not the original: an
	// object referenced twice resolves to one cloned instance
	source := copiedB.GetSingleLink("source")
	require.NotNil(t, source)
	require.True(t, source.IsResolved())
	assert.Same(t, Object(copiedA), source.Target())

	// hierarchy links point into the copy too
	assert.Same(t, Object(copiedCol), copiedA.Parent())
	assert.Same(t, Object(copied), copiedA.Root())
}

func TestFullCopyIsDeep(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	root, _, item := builtTree()

	copied := FullCopy(root).(*Catalog)
	children, err := copied.Children()
	require.NoError(t, err)
	items, err := childCatalog(children[0]).Items()
	require.NoError(t, err)

	items[0].Properties["datetime"] = "1999-01-01T00:00:00Z"
	assert.Equal(t, "2020-11-03T18:30:00Z", item.Properties["datetime"])
}

func TestFullCopyKeepsUnresolvedLinks(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	root := NewCatalog("root", "unresolved links")
	root.AddLink(NewLink(RelChild, "child/catalog.json"))

	copied := FullCopy(root).(*Catalog)
	l := copied.GetSingleLink(RelChild)
	require.NotNil(t, l)
	assert.False(t, l.IsResolved())
	assert.Equal(t, "child/catalog.json", l.Href())
}
