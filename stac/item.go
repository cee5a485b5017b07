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
	"time"

	"github.com/go-geospatial/go-stac-catalog/migrate"
	"github.com/go-geospatial/go-stac-catalog/stacio"
)

// Item is a STAC item: a GeoJSON feature with a datetime, assets, and
// an optional owning collection.
type Item struct {
	Base
	Geometry   map[string]any
	BBox       []float64
	Properties map[string]any
	Assets     map[string]*Asset
	// Collection is the id of the collection the item belongs to.
	Collection string
}

// NewItem creates a standalone item with the given datetime.
func NewItem(id string, geometry map[string]any, bbox []float64, datetime time.Time) *Item {
	it := &Item{
		Geometry: geometry,
		BBox:     bbox,
		Properties: map[string]any{
			"datetime": datetime.UTC().Format(time.RFC3339),
		},
	}
	it.ID = id
	it.StacVersion = migrate.TargetVersion().String()
	it.init(it)
	return it
}

func (it *Item) Kind() ObjectType { return ItemType }
func (it *Item) Common() *Base    { return &it.Base }

func itemFromMap(m map[string]any) (*Item, error) {
	it := &Item{}
	it.init(it)
	if err := decodeCommon(&it.Base, m, func(k string, v any) bool {
		switch k {
		case "geometry":
			it.Geometry, _ = v.(map[string]any)
		case "bbox":
			it.BBox = toFloatSlice(v)
		case "properties":
			it.Properties, _ = v.(map[string]any)
		case "assets":
			it.Assets = assetsFromMap(v, it)
		case "collection":
			it.Collection, _ = v.(string)
		default:
			return false
		}
		return true
	}); err != nil {
		return nil, err
	}
	if it.Properties == nil {
		it.Properties = map[string]any{}
	}
	return it, nil
}

func (it *Item) ToMap() (map[string]any, error) {
	m := encodeCommon(&it.Base, ItemType)
	m["geometry"] = it.Geometry
	if it.BBox != nil {
		bbox := make([]any, len(it.BBox))
		for i, f := range it.BBox {
			bbox[i] = f
		}
		m["bbox"] = bbox
	}
	m["properties"] = it.Properties
	if it.Assets != nil {
		m["assets"] = assetsToMap(it.Assets)
	}
	if it.Collection != "" {
		m["collection"] = it.Collection
	}
	return m, nil
}

func (it *Item) Clone() Object {
	out := &Item{
		BBox:       append([]float64(nil), it.BBox...),
		Collection: it.Collection,
	}
	out.Base = it.Base.cloneBase(out)
	if it.Geometry != nil {
		out.Geometry = deepCopyAny(it.Geometry).(map[string]any)
	}
	if it.Properties != nil {
		out.Properties = deepCopyAny(it.Properties).(map[string]any)
	} else {
		out.Properties = map[string]any{}
	}
	out.Assets = cloneAssets(it.Assets, out)
	return out
}

// Datetime returns the item's datetime, falling back to start_datetime
// for items with only a range.
func (it *Item) Datetime() (time.Time, bool) {
	for _, key := range []string{"datetime", "start_datetime"} {
		if s, ok := it.Properties[key].(string); ok {
			if t, err := time.Parse(time.RFC3339, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// CollectionID returns the item's collection id, from the collection
// field or the resolved collection link.
func (it *Item) CollectionID() string {
	if it.Collection != "" {
		return it.Collection
	}
	if l := it.GetSingleLink(RelCollection); l != nil && l.IsResolved() {
		return l.Target().Common().ID
	}
	return ""
}

// Asset is a file (imagery, metadata, thumbnails) reachable from an
// item or collection. The owner back-reference is a non-owning relation
// used to absolutize relative asset hrefs.
type Asset struct {
	Href        string
	Title       string
	Description string
	MediaType   string
	Roles       []string
	ExtraFields map[string]any

	owner Object
}

func (a *Asset) Owner() Object { return a.owner }

// AbsoluteHref resolves the asset href against its owner's self href.
func (a *Asset) AbsoluteHref() string {
	if a.owner != nil {
		base := a.owner.Common().SelfHref()
		if base != "" {
			return stacio.MakeAbsoluteHref(a.Href, base)
		}
	}
	return a.Href
}

func assetFromMap(m map[string]any, owner Object) *Asset {
	a := &Asset{owner: owner}
	for k, v := range m {
		switch k {
		case "href":
			a.Href, _ = v.(string)
		case "title":
			a.Title, _ = v.(string)
		case "description":
			a.Description, _ = v.(string)
		case "type":
			a.MediaType, _ = v.(string)
		case "roles":
			a.Roles = toStringSlice(v)
		default:
			if a.ExtraFields == nil {
				a.ExtraFields = map[string]any{}
			}
			a.ExtraFields[k] = v
		}
	}
	return a
}

func (a *Asset) toMap() map[string]any {
	m := map[string]any{}
	if a.Href != "" {
		m["href"] = a.Href
	}
	if a.Title != "" {
		m["title"] = a.Title
	}
	if a.Description != "" {
		m["description"] = a.Description
	}
	if a.MediaType != "" {
		m["type"] = a.MediaType
	}
	if a.Roles != nil {
		m["roles"] = toAnySlice(a.Roles)
	}
	for k, v := range a.ExtraFields {
		m[k] = v
	}
	return m
}

func (a *Asset) clone(owner Object) *Asset {
	out := &Asset{
		Href:        a.Href,
		Title:       a.Title,
		Description: a.Description,
		MediaType:   a.MediaType,
		Roles:       append([]string(nil), a.Roles...),
		owner:       owner,
	}
	if a.ExtraFields != nil {
		out.ExtraFields = deepCopyAny(a.ExtraFields).(map[string]any)
	}
	return out
}

func assetsFromMap(v any, owner Object) map[string]*Asset {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string]*Asset, len(m))
	for key, raw := range m {
		if am, ok := raw.(map[string]any); ok {
			out[key] = assetFromMap(am, owner)
		}
	}
	return out
}

func assetsToMap(assets map[string]*Asset) map[string]any {
	out := make(map[string]any, len(assets))
	for key, a := range assets {
		out[key] = a.toMap()
	}
	return out
}

func cloneAssets(assets map[string]*Asset, owner Object) map[string]*Asset {
	if assets == nil {
		return nil
	}
	out := make(map[string]*Asset, len(assets))
	for key, a := range assets {
		out[key] = a.clone(owner)
	}
	return out
}
