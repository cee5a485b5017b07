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

// Package migrate rewrites legacy STAC documents into the current schema
// shape. The pipeline is identify -> structural fixups -> extension
// fixups -> version field rewrite -> re-identify, and passes documents
// already at the target version through untouched.
package migrate

import (
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/go-geospatial/go-stac-catalog/cache"
	"github.com/go-geospatial/go-stac-catalog/jsonutil"
	"github.com/go-geospatial/go-stac-catalog/stacio"
	"github.com/go-geospatial/go-stac-catalog/version"
)

// DefaultVersion is the build-time target schema version.
const DefaultVersion = "1.1.0"

// TargetVersion returns the process-wide target schema version. It is
// read fresh on every migration: viper key "stac.version" first
// (override with viper.Set or a bound flag), then the STAC_VERSION
// environment variable, then DefaultVersion. This is the one piece of
// global mutable configuration in the core.
func TargetVersion() version.ID {
	if s := viper.GetString("stac.version"); s != "" {
		return version.ParseID(s)
	}
	if s := os.Getenv("STAC_VERSION"); s != "" {
		return version.ParseID(s)
	}
	return version.ParseID(DefaultVersion)
}

// Options carries the collaborators a migration may need: an IO to read
// a referenced collection and the collection cache that keeps sibling
// items from re-reading it. BaseHref locates the document being migrated
// so relative collection links can be resolved.
type Options struct {
	IO          stacio.IO
	Collections *cache.Collections
	BaseHref    string
}

// Migrate rewrites doc into the target schema shape. The input document
// is never mutated; if it is already at the target version it is
// returned as is.
func Migrate(doc map[string]any, info *version.Info, opts Options) (map[string]any, error) {
	target := TargetVersion()
	if info.Range.Contains(target) {
		return doc, nil
	}

	m := jsonutil.DeepCopyMap(doc)
	log.Debug().
		Str("type", string(info.Type)).
		Str("from", info.Range.LatestValid().String()).
		Str("to", target.String()).
		Str("href", opts.BaseHref).
		Msg("migrating document")

	var err error
	switch info.Type {
	case version.CatalogType:
		err = migrateCatalog(m)
	case version.CollectionType:
		err = migrateCollection(m, info)
	case version.ItemType:
		err = migrateItem(m, info, opts)
	case version.ItemCollectionType:
		err = migrateItemCollection(m, opts)
	default:
		err = fmt.Errorf("cannot migrate object of unknown type (href %s)", opts.BaseHref)
	}
	if err != nil {
		return nil, fmt.Errorf("migrating %s from %s to %s: %w",
			opts.BaseHref, info.Range.LatestValid(), target, err)
	}

	if err := migrateExtensions(m, info); err != nil {
		return nil, fmt.Errorf("migrating extensions of %s: %w", opts.BaseHref, err)
	}

	m["stac_version"] = target.String()

	if _, err := version.Identify(m); err != nil {
		return nil, fmt.Errorf("migration of %s produced an unidentifiable document: %w", opts.BaseHref, err)
	}
	return m, nil
}

func migrateCatalog(m map[string]any) error {
	migrateLinks(m)
	migrateExtensionField(m)
	m["type"] = string(version.CatalogType)
	return nil
}

func migrateCollection(m map[string]any, info *version.Info) error {
	migrateLinks(m)
	migrateExtensionField(m)
	migrateExtent(m)

	// collection-level asset definitions moved under item_assets in 1.0
	if assets, ok := m["assets"].(map[string]any); ok && info.Range.LatestValid().LessThan(version.ParseID("1.0.0-beta.1")) {
		if _, exists := m["item_assets"]; !exists {
			m["item_assets"] = assets
			delete(m, "assets")
		}
	}

	m["type"] = string(version.CollectionType)
	return nil
}

func migrateItem(m map[string]any, info *version.Info, opts Options) error {
	migrateLinks(m)
	migrateExtensionField(m)

	if _, ok := m["properties"].(map[string]any); !ok {
		m["properties"] = map[string]any{}
	}

	if info.Range.LatestValid().LessThan(version.ParseID("1.0.0-beta.1")) {
		if err := mergeCommonProperties(m, opts); err != nil {
			return err
		}
	}

	m["type"] = string(version.ItemType)
	return nil
}

func migrateItemCollection(m map[string]any, opts Options) error {
	migrateLinks(m)
	if features, ok := m["features"].([]any); ok {
		for i, raw := range features {
			feature, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			info, err := version.Identify(feature)
			if err != nil {
				return fmt.Errorf("feature %d: %w", i, err)
			}
			migrated, err := Migrate(feature, info, opts)
			if err != nil {
				return fmt.Errorf("feature %d: %w", i, err)
			}
			features[i] = migrated
		}
	}
	m["type"] = string(version.ItemCollectionType)
	return nil
}

// migrateLinks rewrites the legacy dict-shaped links field into the list
// form. Rels are emitted in sorted order so migration is deterministic.
func migrateLinks(m map[string]any) {
	dict, ok := m["links"].(map[string]any)
	if !ok {
		return
	}
	rels := make([]string, 0, len(dict))
	for rel := range dict {
		rels = append(rels, rel)
	}
	sort.Strings(rels)

	list := make([]any, 0, len(dict))
	for _, rel := range rels {
		switch v := dict[rel].(type) {
		case string:
			list = append(list, map[string]any{"rel": rel, "href": v})
		case map[string]any:
			link := jsonutil.DeepCopyMap(v)
			link["rel"] = rel
			list = append(list, link)
		case []any:
			for _, entry := range v {
				if link, ok := entry.(map[string]any); ok {
					link = jsonutil.DeepCopyMap(link)
					link["rel"] = rel
					list = append(list, link)
				}
			}
		}
	}
	m["links"] = list
}

// migrateExtensionField normalizes a bare-string stac_extensions field
// into the list form.
func migrateExtensionField(m map[string]any) {
	if s, ok := m["stac_extensions"].(string); ok {
		m["stac_extensions"] = []any{s}
	}
}

// migrateExtent rewrites the pre-0.8 list-shaped collection extent into
// the spatial/temporal object form.
func migrateExtent(m map[string]any) {
	extent, ok := m["extent"].(map[string]any)
	if !ok {
		return
	}
	if spatial, ok := extent["spatial"].([]any); ok {
		extent["spatial"] = map[string]any{"bbox": []any{spatial}}
	}
	if temporal, ok := extent["temporal"].([]any); ok {
		extent["temporal"] = map[string]any{"interval": []any{temporal}}
	}
}

// mergeCommonProperties implements pre-1.0 property inheritance: an item
// inherits any property it does not set itself from its referenced
// collection. The collection document is read through the collection
// cache so sibling items share one read.
func mergeCommonProperties(m map[string]any, opts Options) error {
	if opts.Collections == nil {
		return nil
	}

	collectionID, _ := m["collection"].(string)
	collectionHref := linkHref(m, "collection")
	if collectionHref != "" {
		collectionHref = stacio.MakeAbsoluteHref(collectionHref, opts.BaseHref)
	}
	if collectionID == "" && collectionHref == "" {
		return nil
	}

	entry, err := opts.Collections.GetOrRead(func() (any, error) {
		if collectionHref == "" || opts.IO == nil {
			return nil, nil
		}
		text, err := opts.IO.ReadText(collectionHref)
		if err != nil {
			return nil, err
		}
		doc, err := jsonutil.DecodeObject([]byte(text))
		if err != nil {
			return nil, err
		}
		return doc, nil
	}, collectionID, collectionHref)
	if err != nil {
		return fmt.Errorf("reading collection %s for common properties: %w", collectionHref, err)
	}

	collection, ok := entry.(map[string]any)
	if !ok {
		return nil
	}
	common, ok := collection["properties"].(map[string]any)
	if !ok {
		return nil
	}
	props, _ := m["properties"].(map[string]any)
	m["properties"] = jsonutil.MergeMaps(props, common)
	return nil
}

func linkHref(m map[string]any, rel string) string {
	links, ok := m["links"].([]any)
	if !ok {
		return ""
	}
	for _, raw := range links {
		link, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if r, _ := link["rel"].(string); r == rel {
			href, _ := link["href"].(string)
			return href
		}
	}
	return ""
}
