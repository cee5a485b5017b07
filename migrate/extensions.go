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

package migrate

import (
	"strings"

	"github.com/go-geospatial/go-stac-catalog/version"
)

// extensionFixup rewrites a document's fields for one extension and
// returns the short ids of any extensions the rewrite newly requires.
type extensionFixup func(m map[string]any, info *version.Info) ([]string, error)

// activeExtensions maps short extension ids to their migration. Fixups
// run for whatever ids remain after rename substitution, including ids
// that are dropped afterwards.
var activeExtensions = map[string]extensionFixup{
	"eo":             migrateEO,
	"datetime-range": migrateDatetimeRange,
}

// renamedExtensions substitutes a legacy short id with its successor.
// The legacy id's own migration, if any, is skipped.
var renamedExtensions = map[string]string{
	"asset":  "item-assets",
	"assets": "item-assets",
	"dtr":    "datetime-range",
}

// removedExtensions were merged into the core schema or withdrawn. Their
// migrations run, then the id is dropped and never re-added.
var removedExtensions = map[string]bool{
	"commons":          true,
	"datetime-range":   true,
	"checksum":         true,
	"single-file-stac": true,
}

// SchemaHook describes the current schema URI of an extension and the
// prior identifiers (older URIs or legacy short tokens) it supersedes,
// scoped to the object types it applies to.
type SchemaHook struct {
	Current   string
	Prior     []string
	AppliesTo []version.ObjectType // empty means every object type
}

var schemaHooks = []SchemaHook{
	{
		Current:   "https://stac-extensions.github.io/eo/v1.1.0/schema.json",
		Prior:     []string{"eo", "https://stac-extensions.github.io/eo/v1.0.0/schema.json"},
		AppliesTo: []version.ObjectType{version.ItemType},
	},
	{
		Current:   "https://stac-extensions.github.io/view/v1.0.0/schema.json",
		Prior:     []string{"view"},
		AppliesTo: []version.ObjectType{version.ItemType},
	},
	{
		Current:   "https://stac-extensions.github.io/projection/v1.1.0/schema.json",
		Prior:     []string{"proj", "projection", "https://stac-extensions.github.io/projection/v1.0.0/schema.json"},
		AppliesTo: []version.ObjectType{version.ItemType},
	},
	{
		Current:   "https://stac-extensions.github.io/sar/v1.0.0/schema.json",
		Prior:     []string{"sar"},
		AppliesTo: []version.ObjectType{version.ItemType},
	},
	{
		Current:   "https://stac-extensions.github.io/sat/v1.0.0/schema.json",
		Prior:     []string{"sat"},
		AppliesTo: []version.ObjectType{version.ItemType},
	},
	{
		Current:   "https://stac-extensions.github.io/label/v1.0.1/schema.json",
		Prior:     []string{"label", "https://stac-extensions.github.io/label/v1.0.0/schema.json"},
		AppliesTo: []version.ObjectType{version.ItemType},
	},
	{
		Current:   "https://stac-extensions.github.io/scientific/v1.0.0/schema.json",
		Prior:     []string{"scientific", "sci"},
		AppliesTo: []version.ObjectType{version.ItemType, version.CollectionType},
	},
	{
		Current:   "https://stac-extensions.github.io/item-assets/v1.0.0/schema.json",
		Prior:     []string{"item-assets"},
		AppliesTo: []version.ObjectType{version.CollectionType},
	},
	{
		Current: "https://stac-extensions.github.io/version/v1.2.0/schema.json",
		Prior:   []string{"version"},
	},
}

// migrateExtensions runs the extension migration passes: rename
// substitution, per-extension fixups, removal, addition of newly
// required extensions, then schema-hook URI replacement. The final set
// is (original + added) - (removed + renamed-away).
func migrateExtensions(m map[string]any, info *version.Info) error {
	set := extensionList(m, info)

	for i, id := range set {
		if newID, ok := renamedExtensions[shortToken(id)]; ok && isShortToken(id) {
			set[i] = newID
		}
	}

	var added []string
	for _, id := range set {
		if !isShortToken(id) {
			continue
		}
		fixup, ok := activeExtensions[id]
		if !ok {
			continue
		}
		newlyRequired, err := fixup(m, info)
		if err != nil {
			return err
		}
		added = append(added, newlyRequired...)
	}

	var out []string
	for _, id := range set {
		if isShortToken(id) && removedExtensions[id] {
			continue
		}
		out = append(out, id)
	}
	for _, id := range added {
		if !removedExtensions[id] && !containsExtension(out, id, info.Type) {
			out = append(out, id)
		}
	}

	// replace prior identifiers with current schema URIs, in place
	for i, id := range out {
		if hook := hookForPrior(id, info.Type); hook != nil {
			out[i] = hook.Current
		}
	}

	out = dedupe(out)
	if len(out) > 0 || m["stac_extensions"] != nil {
		list := make([]any, len(out))
		for i, id := range out {
			list[i] = id
		}
		m["stac_extensions"] = list
	}
	return nil
}

// extensionList gathers the working extension set: the document's own
// stac_extensions when present, otherwise the identifiers implied during
// identification.
func extensionList(m map[string]any, info *version.Info) []string {
	var out []string
	if declared, ok := m["stac_extensions"].([]any); ok {
		for _, raw := range declared {
			if s, ok := raw.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	out = append(out, info.Extensions...)
	return out
}

// isShortToken distinguishes legacy short extension ids from schema
// URIs.
func isShortToken(id string) bool {
	return !strings.Contains(id, "/")
}

func shortToken(id string) string {
	if isShortToken(id) {
		return id
	}
	return ""
}

func hookForPrior(id string, objectType version.ObjectType) *SchemaHook {
	for i := range schemaHooks {
		hook := &schemaHooks[i]
		if !hookApplies(hook, objectType) {
			continue
		}
		for _, prior := range hook.Prior {
			if prior == id {
				return hook
			}
		}
	}
	return nil
}

func hookApplies(hook *SchemaHook, objectType version.ObjectType) bool {
	if len(hook.AppliesTo) == 0 {
		return true
	}
	for _, t := range hook.AppliesTo {
		if t == objectType {
			return true
		}
	}
	return false
}

// containsExtension reports whether id (a short token) is already
// present in set, either literally or through its current schema URI.
func containsExtension(set []string, id string, objectType version.ObjectType) bool {
	hook := hookForPrior(id, objectType)
	for _, existing := range set {
		if existing == id {
			return true
		}
		if hook != nil && existing == hook.Current {
			return true
		}
	}
	return false
}

func dedupe(set []string) []string {
	seen := make(map[string]bool, len(set))
	out := set[:0]
	for _, id := range set {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// migrateEO moves the angle fields that migrated from the eo extension
// into the view extension, and eo:epsg into the projection extension.
func migrateEO(m map[string]any, _ *version.Info) ([]string, error) {
	props, ok := m["properties"].(map[string]any)
	if !ok {
		return nil, nil
	}

	var added []string
	viewMoves := map[string]string{
		"eo:off_nadir":       "view:off_nadir",
		"eo:azimuth":         "view:azimuth",
		"eo:incidence_angle": "view:incidence_angle",
		"eo:sun_azimuth":     "view:sun_azimuth",
		"eo:sun_elevation":   "view:sun_elevation",
	}
	moved := false
	for old, new := range viewMoves {
		if v, ok := props[old]; ok {
			props[new] = v
			delete(props, old)
			moved = true
		}
	}
	if moved {
		added = append(added, "view")
	}

	if v, ok := props["eo:epsg"]; ok {
		props["proj:epsg"] = v
		delete(props, "eo:epsg")
		added = append(added, "proj")
	}
	return added, nil
}

// migrateDatetimeRange lifts the dtr fields into the core start/end
// datetime properties; the extension itself was merged into core and is
// dropped afterwards.
func migrateDatetimeRange(m map[string]any, _ *version.Info) ([]string, error) {
	props, ok := m["properties"].(map[string]any)
	if !ok {
		return nil, nil
	}
	if v, ok := props["dtr:start_datetime"]; ok {
		props["start_datetime"] = v
		delete(props, "dtr:start_datetime")
	}
	if v, ok := props["dtr:end_datetime"]; ok {
		props["end_datetime"] = v
		delete(props, "dtr:end_datetime")
	}
	return nil, nil
}
