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
	"fmt"
	"time"
)

// testIO serves documents from memory and records traffic.
type testIO struct {
	docs    map[string]string
	reads   int
	written map[string]string
}

func newTestIO(docs map[string]string) *testIO {
	return &testIO{docs: docs, written: map[string]string{}}
}

func (io *testIO) ReadText(href string) (string, error) {
	text, ok := io.docs[href]
	if !ok {
		return "", fmt.Errorf("read %s: not found", href)
	}
	io.reads++
	return text, nil
}

func (io *testIO) WriteText(href, content string) error {
	io.written[href] = content
	return nil
}

// fixtureDocs is a small current-version tree: a root catalog with a
// collection holding one item and an empty nested catalog.
func fixtureDocs() map[string]string {
	return map[string]string{
		"/cat/catalog.json": `{
			"type": "Catalog",
			"stac_version": "1.1.0",
			"id": "root",
			"description": "fixture root",
			"links": [
				{"rel": "child", "href": "s2/collection.json"},
				{"rel": "child", "href": "nested/catalog.json"}
			]
		}`,
		"/cat/s2/collection.json": `{
			"type": "Collection",
			"stac_version": "1.1.0",
			"id": "sentinel-2",
			"description": "fixture collection",
			"license": "CC-BY-4.0",
			"extent": {
				"spatial": {"bbox": [[-180, -90, 180, 90]]},
				"temporal": {"interval": [["2018-01-01T00:00:00Z", null]]}
			},
			"links": [
				{"rel": "item", "href": "scene-1/scene-1.json"}
			]
		}`,
		"/cat/s2/scene-1/scene-1.json": `{
			"type": "Feature",
			"stac_version": "1.1.0",
			"id": "scene-1",
			"geometry": null,
			"collection": "sentinel-2",
			"properties": {"datetime": "2020-11-03T18:30:00Z"},
			"links": []
		}`,
		"/cat/nested/catalog.json": `{
			"type": "Catalog",
			"stac_version": "1.1.0",
			"id": "nested",
			"description": "fixture nested catalog",
			"links": []
		}`,
	}
}

// builtTree assembles the same shape as fixtureDocs from constructors,
// for tests that need no IO.
func builtTree() (*Catalog, *Collection, *Item) {
	root := NewCatalog("root", "fixture root")
	col := NewCollection("sentinel-2", "fixture collection", &Extent{
		Spatial: SpatialExtent{BBoxes: [][]float64{{-180, -90, 180, 90}}},
	})
	dt, _ := time.Parse(time.RFC3339, "2020-11-03T18:30:00Z")
	item := NewItem("scene-1", nil, nil, dt)
	item.Collection = "sentinel-2"

	if err := col.AddItem(item); err != nil {
		panic(err)
	}
	if err := root.AddChild(col); err != nil {
		panic(err)
	}
	if err := root.AddChild(NewCatalog("nested", "fixture nested catalog")); err != nil {
		panic(err)
	}
	return root, col, item
}
