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

// Package layout computes canonical hrefs for STAC objects. Strategies
// are pure functions of (object, parent dir, is-root); they never
// perform I/O and report every failure synchronously.
package layout

import (
	"fmt"

	"github.com/go-geospatial/go-stac-catalog/stac"
	"github.com/go-geospatial/go-stac-catalog/stacio"
)

const (
	catalogFile    = "catalog.json"
	collectionFile = "collection.json"
)

// BestPractices lays a tree out per the STAC best-practices document:
// the root document sits directly in its directory, every other catalog
// or collection gets a directory named after its id, and items get an
// id directory holding an id-named file.
type BestPractices struct{}

func (BestPractices) HrefFor(obj stac.Object, parentDir string, isRoot bool) (string, error) {
	id := obj.Common().ID
	switch obj.Kind() {
	case stac.CatalogType:
		if isRoot {
			return stacio.JoinPath(parentDir, catalogFile), nil
		}
		return stacio.JoinPath(parentDir, id, catalogFile), nil
	case stac.CollectionType:
		if isRoot {
			return stacio.JoinPath(parentDir, collectionFile), nil
		}
		return stacio.JoinPath(parentDir, id, collectionFile), nil
	case stac.ItemType:
		return stacio.JoinPath(parentDir, id, id+".json"), nil
	}
	return "", fmt.Errorf("no layout for object kind %q", obj.Kind())
}

// HrefFunc is a user-supplied layout callable for one object kind.
// Returning "" defers to the fallback.
type HrefFunc func(obj stac.Object, parentDir string, isRoot bool) (string, error)

// Custom dispatches to per-kind callables, falling back to
// BestPractices when a callable is absent or declines.
type Custom struct {
	Catalog    HrefFunc
	Collection HrefFunc
	Item       HrefFunc

	fallback BestPractices
}

func (c Custom) HrefFor(obj stac.Object, parentDir string, isRoot bool) (string, error) {
	var fn HrefFunc
	switch obj.Kind() {
	case stac.CatalogType:
		fn = c.Catalog
	case stac.CollectionType:
		fn = c.Collection
	case stac.ItemType:
		fn = c.Item
	}
	if fn != nil {
		href, err := fn(obj, parentDir, isRoot)
		if err != nil {
			return "", err
		}
		if href != "" {
			return href, nil
		}
	}
	return c.fallback.HrefFor(obj, parentDir, isRoot)
}

// AsIs keeps whatever self href an object already has.
type AsIs struct{}

func (AsIs) HrefFor(obj stac.Object, parentDir string, isRoot bool) (string, error) {
	href := obj.Common().SelfHref()
	if href == "" {
		return "", fmt.Errorf("as-is layout requires a self href, %s %q has none",
			obj.Kind(), obj.Common().ID)
	}
	return href, nil
}

// API lays a tree out in the shape of a STAC API: collections under
// /collections/{id}, items under their collection's items/ path.
type API struct{}

func (API) HrefFor(obj stac.Object, parentDir string, isRoot bool) (string, error) {
	id := obj.Common().ID
	switch obj.Kind() {
	case stac.CatalogType:
		if isRoot {
			return parentDir, nil
		}
		return stacio.JoinPath(parentDir, id), nil
	case stac.CollectionType:
		return stacio.JoinPath(parentDir, "collections", id), nil
	case stac.ItemType:
		return stacio.JoinPath(parentDir, "items", id), nil
	}
	return "", fmt.Errorf("no layout for object kind %q", obj.Kind())
}
