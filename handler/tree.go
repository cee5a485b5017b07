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

package handler

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/go-geospatial/go-stac-catalog/stac"
)

var (
	treeOnce sync.Once
	treeRoot *stac.Catalog
	treeErr  error
)

// Tree returns the root catalog the server publishes, reading it from
// the server.catalog href on first use. Reads after the first return
// the same resolved tree; link resolution during request handling is
// memoized through the tree's identity cache.
func Tree() (*stac.Catalog, error) {
	treeOnce.Do(func() {
		href := viper.GetString("server.catalog")
		if href == "" {
			treeErr = fmt.Errorf("server.catalog is not configured")
			return
		}
		obj, err := stac.ReadFile(href, nil)
		if err != nil {
			treeErr = fmt.Errorf("reading catalog %s: %w", href, err)
			return
		}
		switch root := obj.(type) {
		case *stac.Catalog:
			treeRoot = root
		case *stac.Collection:
			treeRoot = &root.Catalog
		default:
			treeErr = fmt.Errorf("%s is a %s, not a catalog", href, obj.Kind())
			return
		}
		log.Info().Str("href", href).Str("id", treeRoot.ID).Msg("loaded root catalog")
	})
	return treeRoot, treeErr
}

// findCollection walks the tree for the collection with the given id.
func findCollection(root *stac.Catalog, id string) (*stac.Collection, error) {
	var found *stac.Collection
	err := root.Walk(func(node stac.Object, children []stac.Object, items []*stac.Item) error {
		if found != nil {
			return nil
		}
		if col, ok := node.(*stac.Collection); ok && col.ID == id {
			found = col
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func findItem(col *stac.Collection, id string) (*stac.Item, error) {
	items, err := col.Items()
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, nil
}
