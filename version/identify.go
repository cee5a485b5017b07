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

package version

import (
	"fmt"
	"strings"
)

// ObjectType discriminates the STAC document variants. The values match
// the wire-format "type" field of current-version documents.
type ObjectType string

const (
	CatalogType        ObjectType = "Catalog"
	CollectionType     ObjectType = "Collection"
	ItemType           ObjectType = "Feature"
	ItemCollectionType ObjectType = "FeatureCollection"
	UnknownType        ObjectType = ""
)

// OldestVersion is the oldest schema revision the identifier reasons
// about; stac_version became a required field in 0.6.0.
var (
	OldestVersion          = ParseID("0.4.0")
	LastPreVersionFieldEra = ParseID("0.5.2")
	// ExplicitTypeVersion is the revision from which every object kind
	// carries an explicit "type" discriminator.
	ExplicitTypeVersion = ParseID("1.0.0-rc.1")
	// NewestKnownVersion bounds the widest plausible interval.
	NewestKnownVersion = ParseID("1.1.0")
)

// NotAStacObjectError reports a document that does not structurally
// match any STAC object variant.
type NotAStacObjectError struct {
	Href   string
	Reason string
}

func (e *NotAStacObjectError) Error() string {
	if e.Href != "" {
		return fmt.Sprintf("not a STAC object (%s): %s", e.Href, e.Reason)
	}
	return fmt.Sprintf("not a STAC object: %s", e.Reason)
}

// Info is the result of identifying a raw document: what it is, the
// interval of schema revisions it could conform to, and the extension
// identifiers it declares or implies.
type Info struct {
	Type       ObjectType
	Range      Range
	Extensions []string
}

// Identify inspects a raw JSON document and determines its object type,
// version range, and extensions. Post-1.0.0-rc.1 documents must carry an
// explicit recognized "type"; older documents are identified by shape.
func Identify(m map[string]any) (*Info, error) {
	typeField, _ := m["type"].(string)
	versionStr, hasVersion := m["stac_version"].(string)

	var declared ID
	if hasVersion {
		declared = ParseID(versionStr)
	}

	objectType, err := identifyType(m, typeField, hasVersion, declared)
	if err != nil {
		return nil, err
	}

	r := NewRange(OldestVersion, NewestKnownVersion)
	if hasVersion {
		r = SingleRange(declared)
	} else {
		narrowByShape(m, objectType, &r)
	}

	return &Info{
		Type:       objectType,
		Range:      r,
		Extensions: identifyExtensions(m, objectType),
	}, nil
}

func identifyType(m map[string]any, typeField string, hasVersion bool, declared ID) (ObjectType, error) {
	if hasVersion && !declared.LessThan(ExplicitTypeVersion) {
		switch ObjectType(typeField) {
		case CatalogType, CollectionType, ItemType, ItemCollectionType:
			return ObjectType(typeField), nil
		case UnknownType:
			return UnknownType, &NotAStacObjectError{
				Reason: fmt.Sprintf("stac_version %s requires a type field, none present", declared),
			}
		default:
			return UnknownType, &NotAStacObjectError{
				Reason: fmt.Sprintf("unrecognized type %q for stac_version %s", typeField, declared),
			}
		}
	}

	// Legacy documents: an explicit type wins when present, then
	// collection-only fields, then the catalog minimum of
	// id/description/links.
	switch typeField {
	case "Feature":
		return ItemType, nil
	case "FeatureCollection":
		return ItemCollectionType, nil
	case "Catalog":
		return CatalogType, nil
	case "Collection":
		return CollectionType, nil
	case "":
		if _, ok := m["extent"]; ok {
			return CollectionType, nil
		}
		if _, ok := m["license"]; ok {
			return CollectionType, nil
		}
		_, hasID := m["id"]
		_, hasDescription := m["description"]
		_, hasLinks := m["links"]
		if hasID && hasDescription && hasLinks {
			return CatalogType, nil
		}
		return UnknownType, &NotAStacObjectError{Reason: "no type field and no catalog/collection shape"}
	default:
		return UnknownType, &NotAStacObjectError{Reason: fmt.Sprintf("unrecognized type %q", typeField)}
	}
}

// narrowByShape tightens the version range of a document that predates
// the required stac_version field using structural evidence.
func narrowByShape(m map[string]any, objectType ObjectType, r *Range) {
	r.SetMax(LastPreVersionFieldEra)

	// dict-shaped links predate the 0.5 list form
	if _, ok := m["links"].(map[string]any); ok {
		r.SetMax(ParseID("0.4.1"))
	}
	if _, ok := m["links"].([]any); ok {
		r.SetMin(ParseID("0.5.0"))
	}
	if hasLinkRel(m, "self") {
		r.SetMin(ParseID("0.5.0"))
	}

	if objectType == ItemType {
		props, _ := m["properties"].(map[string]any)
		if hasPrefixedKey(props, "dtr:") {
			r.SetMax(ParseID("0.4.1"))
		}
		if hasPrefixedKey(props, "eo:") || hasPrefixedKey(props, "sar:") {
			r.SetMin(ParseID("0.4.1"))
		}
	}
}

func hasLinkRel(m map[string]any, rel string) bool {
	links, ok := m["links"].([]any)
	if !ok {
		return false
	}
	for _, raw := range links {
		link, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if r, _ := link["rel"].(string); r == rel {
			return true
		}
	}
	return false
}

func hasPrefixedKey(m map[string]any, prefix string) bool {
	for k := range m {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

// prefixedExtensions maps item property prefixes to the legacy short
// extension tokens they imply on documents that never declared
// stac_extensions.
var prefixedExtensions = map[string]string{
	"eo:":    "eo",
	"sar:":   "sar",
	"view:":  "view",
	"proj:":  "proj",
	"label:": "label",
	"dtr:":   "datetime-range",
}

func identifyExtensions(m map[string]any, objectType ObjectType) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	hasDeclared := false
	switch declared := m["stac_extensions"].(type) {
	case []any:
		hasDeclared = true
		for _, raw := range declared {
			if s, ok := raw.(string); ok {
				add(s)
			}
		}
	case string:
		// some 0.x documents declared a single extension as a bare string
		hasDeclared = true
		add(declared)
	}

	// prefix implication only applies to documents that never declared
	// their extensions
	if !hasDeclared && objectType == ItemType {
		props, _ := m["properties"].(map[string]any)
		for prefix, id := range prefixedExtensions {
			if hasPrefixedKey(props, prefix) {
				add(id)
			}
		}
	}

	return out
}
