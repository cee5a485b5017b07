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

package layout

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-geospatial/go-stac-catalog/stac"
)

func testItem(id string) *stac.Item {
	dt, _ := time.Parse(time.RFC3339, "2020-11-03T18:30:00Z")
	return stac.NewItem(id, nil, nil, dt)
}

func TestBestPracticesRootCatalog(t *testing.T) {
	cat := stac.NewCatalog("x", "a catalog")
	href, err := BestPractices{}.HrefFor(cat, "/a", true)
	require.NoError(t, err)
	assert.Equal(t, "/a/catalog.json", href)
}

func TestBestPracticesChildCatalog(t *testing.T) {
	cat := stac.NewCatalog("x", "a catalog")
	href, err := BestPractices{}.HrefFor(cat, "/a", false)
	require.NoError(t, err)
	assert.Equal(t, "/a/x/catalog.json", href)
}

func TestBestPracticesCollection(t *testing.T) {
	col := stac.NewCollection("c", "a collection", nil)
	href, err := BestPractices{}.HrefFor(col, "/a", false)
	require.NoError(t, err)
	assert.Equal(t, "/a/c/collection.json", href)

	href, err = BestPractices{}.HrefFor(col, "/a", true)
	require.NoError(t, err)
	assert.Equal(t, "/a/collection.json", href)
}

func TestBestPracticesItem(t *testing.T) {
	href, err := BestPractices{}.HrefFor(testItem("y"), "/a", false)
	require.NoError(t, err)
	assert.Equal(t, "/a/y/y.json", href)
}

func TestCustomDispatchesPerKind(t *testing.T) {
	strategy := Custom{
		Item: func(obj stac.Object, parentDir string, isRoot bool) (string, error) {
			return parentDir + "/flat/" + obj.Common().ID + ".json", nil
		},
	}

	href, err := strategy.HrefFor(testItem("scene-1"), "/data", false)
	require.NoError(t, err)
	assert.Equal(t, "/data/flat/scene-1.json", href)

	// no catalog callable: falls back to best practices
	href, err = strategy.HrefFor(stac.NewCatalog("cat", "d"), "/data", false)
	require.NoError(t, err)
	assert.Equal(t, "/data/cat/catalog.json", href)
}

func TestCustomEmptyResultFallsBack(t *testing.T) {
	strategy := Custom{
		Item: func(obj stac.Object, parentDir string, isRoot bool) (string, error) {
			return "", nil
		},
	}
	href, err := strategy.HrefFor(testItem("y"), "/a", false)
	require.NoError(t, err)
	assert.Equal(t, "/a/y/y.json", href)
}

func TestAsIsKeepsExistingHref(t *testing.T) {
	cat := stac.NewCatalog("cat", "d")
	cat.SetSelfHref("/elsewhere/catalog.json")

	href, err := AsIs{}.HrefFor(cat, "/ignored", true)
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/catalog.json", href)
}

func TestAsIsErrorsWithoutHref(t *testing.T) {
	_, err := AsIs{}.HrefFor(stac.NewCatalog("cat", "d"), "/a", true)
	assert.Error(t, err)
}

func TestAPILayout(t *testing.T) {
	base := "https://api.example.com/stac"

	href, err := API{}.HrefFor(stac.NewCatalog("root", "d"), base, true)
	require.NoError(t, err)
	assert.Equal(t, base, href)

	href, err = API{}.HrefFor(stac.NewCollection("sentinel-2", "d", nil), base, false)
	require.NoError(t, err)
	assert.Equal(t, base+"/collections/sentinel-2", href)
}
