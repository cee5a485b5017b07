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
	"github.com/go-geospatial/go-stac-catalog/migrate"
)

// Collection is a catalog with aggregate metadata about the items under
// it: a spatial/temporal extent, a license, and optional per-asset-type
// definitions shared by its items.
type Collection struct {
	Catalog
	License    string
	Keywords   []string
	Providers  []*Provider
	Extent     *Extent
	Summaries  map[string]any
	Assets     map[string]*Asset
	ItemAssets map[string]*Asset
}

// NewCollection creates a collection that is the root of its own tree.
func NewCollection(id, description string, extent *Extent) *Collection {
	c := &Collection{Extent: extent}
	c.ID = id
	c.Description = description
	c.StacVersion = migrate.TargetVersion().String()
	c.init(c)
	c.SetRoot(c)
	return c
}

func (c *Collection) Kind() ObjectType { return CollectionType }

func collectionFromMap(m map[string]any) (*Collection, error) {
	c := &Collection{}
	c.init(c)
	if err := decodeCommon(&c.Base, m, func(k string, v any) bool {
		switch k {
		case "title":
			c.Title, _ = v.(string)
		case "description":
			c.Description, _ = v.(string)
		case "license":
			c.License, _ = v.(string)
		case "keywords":
			c.Keywords = toStringSlice(v)
		case "providers":
			if list, ok := v.([]any); ok {
				for _, raw := range list {
					if pm, ok := raw.(map[string]any); ok {
						c.Providers = append(c.Providers, providerFromMap(pm))
					}
				}
			}
		case "extent":
			if em, ok := v.(map[string]any); ok {
				c.Extent = extentFromMap(em)
			}
		case "summaries":
			c.Summaries, _ = v.(map[string]any)
		case "assets":
			c.Assets = assetsFromMap(v, c)
		case "item_assets":
			c.ItemAssets = assetsFromMap(v, nil)
		default:
			return false
		}
		return true
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Collection) ToMap() (map[string]any, error) {
	m := encodeCommon(&c.Base, CollectionType)
	if c.Title != "" {
		m["title"] = c.Title
	}
	m["description"] = c.Description
	if c.License != "" {
		m["license"] = c.License
	}
	if c.Keywords != nil {
		m["keywords"] = toAnySlice(c.Keywords)
	}
	if c.Providers != nil {
		providers := make([]any, len(c.Providers))
		for i, p := range c.Providers {
			providers[i] = p.toMap()
		}
		m["providers"] = providers
	}
	if c.Extent != nil {
		m["extent"] = c.Extent.toMap()
	}
	if c.Summaries != nil {
		m["summaries"] = c.Summaries
	}
	if c.Assets != nil {
		m["assets"] = assetsToMap(c.Assets)
	}
	if c.ItemAssets != nil {
		m["item_assets"] = assetsToMap(c.ItemAssets)
	}
	return m, nil
}

func (c *Collection) Clone() Object {
	out := &Collection{
		License:  c.License,
		Keywords: append([]string(nil), c.Keywords...),
	}
	out.Title = c.Title
	out.Description = c.Description
	out.Base = c.Base.cloneBase(out)
	for _, p := range c.Providers {
		out.Providers = append(out.Providers, p.clone())
	}
	if c.Extent != nil {
		out.Extent = c.Extent.clone()
	}
	if c.Summaries != nil {
		out.Summaries = deepCopyAny(c.Summaries).(map[string]any)
	}
	out.Assets = cloneAssets(c.Assets, out)
	out.ItemAssets = cloneAssets(c.ItemAssets, nil)
	return out
}

// Extent is a collection's spatial and temporal coverage.
type Extent struct {
	Spatial     SpatialExtent
	Temporal    TemporalExtent
	ExtraFields map[string]any
}

type SpatialExtent struct {
	BBoxes [][]float64
}

// TemporalExtent holds closed or open-ended intervals; a nil endpoint
// means unbounded.
type TemporalExtent struct {
	Intervals [][]*string
}

func extentFromMap(m map[string]any) *Extent {
	e := &Extent{}
	for k, v := range m {
		switch k {
		case "spatial":
			if sm, ok := v.(map[string]any); ok {
				if boxes, ok := sm["bbox"].([]any); ok {
					for _, raw := range boxes {
						e.Spatial.BBoxes = append(e.Spatial.BBoxes, toFloatSlice(raw))
					}
				}
			}
		case "temporal":
			if tm, ok := v.(map[string]any); ok {
				if intervals, ok := tm["interval"].([]any); ok {
					for _, raw := range intervals {
						e.Temporal.Intervals = append(e.Temporal.Intervals, toTimeInterval(raw))
					}
				}
			}
		default:
			if e.ExtraFields == nil {
				e.ExtraFields = map[string]any{}
			}
			e.ExtraFields[k] = v
		}
	}
	return e
}

func toTimeInterval(v any) []*string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]*string, 0, len(list))
	for _, raw := range list {
		if s, ok := raw.(string); ok {
			out = append(out, &s)
		} else {
			out = append(out, nil)
		}
	}
	return out
}

func (e *Extent) toMap() map[string]any {
	boxes := make([]any, len(e.Spatial.BBoxes))
	for i, b := range e.Spatial.BBoxes {
		box := make([]any, len(b))
		for j, f := range b {
			box[j] = f
		}
		boxes[i] = box
	}
	intervals := make([]any, len(e.Temporal.Intervals))
	for i, iv := range e.Temporal.Intervals {
		interval := make([]any, len(iv))
		for j, s := range iv {
			if s != nil {
				interval[j] = *s
			}
		}
		intervals[i] = interval
	}
	m := map[string]any{
		"spatial":  map[string]any{"bbox": boxes},
		"temporal": map[string]any{"interval": intervals},
	}
	for k, v := range e.ExtraFields {
		m[k] = v
	}
	return m
}

func (e *Extent) clone() *Extent {
	out := &Extent{}
	for _, b := range e.Spatial.BBoxes {
		out.Spatial.BBoxes = append(out.Spatial.BBoxes, append([]float64(nil), b...))
	}
	for _, iv := range e.Temporal.Intervals {
		interval := make([]*string, len(iv))
		for i, s := range iv {
			if s != nil {
				v := *s
				interval[i] = &v
			}
		}
		out.Temporal.Intervals = append(out.Temporal.Intervals, interval)
	}
	if e.ExtraFields != nil {
		out.ExtraFields = deepCopyAny(e.ExtraFields).(map[string]any)
	}
	return out
}

// Provider describes an organization involved in producing or hosting a
// collection's data.
type Provider struct {
	Name        string
	Description string
	Roles       []string
	URL         string
	ExtraFields map[string]any
}

func providerFromMap(m map[string]any) *Provider {
	p := &Provider{}
	for k, v := range m {
		switch k {
		case "name":
			p.Name, _ = v.(string)
		case "description":
			p.Description, _ = v.(string)
		case "roles":
			p.Roles = toStringSlice(v)
		case "url":
			p.URL, _ = v.(string)
		default:
			if p.ExtraFields == nil {
				p.ExtraFields = map[string]any{}
			}
			p.ExtraFields[k] = v
		}
	}
	return p
}

func (p *Provider) toMap() map[string]any {
	m := map[string]any{"name": p.Name}
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.Roles != nil {
		m["roles"] = toAnySlice(p.Roles)
	}
	if p.URL != "" {
		m["url"] = p.URL
	}
	for k, v := range p.ExtraFields {
		m[k] = v
	}
	return m
}

func (p *Provider) clone() *Provider {
	out := &Provider{
		Name:        p.Name,
		Description: p.Description,
		Roles:       append([]string(nil), p.Roles...),
		URL:         p.URL,
	}
	if p.ExtraFields != nil {
		out.ExtraFields = deepCopyAny(p.ExtraFields).(map[string]any)
	}
	return out
}
