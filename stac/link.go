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

	"github.com/rs/zerolog/log"

	"github.com/go-geospatial/go-stac-catalog/cache"
	"github.com/go-geospatial/go-stac-catalog/jsonutil"
	"github.com/go-geospatial/go-stac-catalog/stacio"
)

// Link relation types with structural meaning. child and item define the
// tree; everything else is free-form graph structure.
const (
	RelSelf       = "self"
	RelRoot       = "root"
	RelParent     = "parent"
	RelChild      = "child"
	RelItem       = "item"
	RelCollection = "collection"
)

const (
	MediaTypeJSON    = "application/json"
	MediaTypeGeoJSON = "application/geo+json"
)

// Link is a directed edge in the object graph. Its target is either an
// unresolved href or an in-memory object; Resolve performs the
// transition. The owner back-reference locates the tree's caches and the
// base for relative hrefs; it never implies ownership — a resolved
// target may be reachable from any number of links.
type Link struct {
	Rel         string
	MediaType   string
	Title       string
	ExtraFields map[string]any

	href   string
	target Object
	owner  Object
}

// NewLink creates an unresolved link to href.
func NewLink(rel, href string) *Link {
	return &Link{Rel: rel, href: href}
}

// NewLinkTo creates a link already resolved to target.
func NewLinkTo(rel string, target Object) *Link {
	return &Link{Rel: rel, target: target}
}

func (l *Link) Owner() Object { return l.owner }

// Href returns the link's href: the stored href for unresolved links,
// and the target's self href (falling back to the stored href) once
// resolved.
func (l *Link) Href() string {
	if l.target != nil {
		if href := l.target.Common().SelfHref(); href != "" {
			return href
		}
	}
	return l.href
}

// AbsoluteHref resolves a relative href against the owner's self href.
func (l *Link) AbsoluteHref() string {
	href := l.Href()
	if l.owner != nil {
		return stacio.MakeAbsoluteHref(href, l.owner.Common().SelfHref())
	}
	return href
}

func (l *Link) IsResolved() bool { return l.target != nil }

// Target returns the resolved object, or nil for unresolved links.
func (l *Link) Target() Object { return l.target }

// SetTarget rewrites the link to an already-resolved object.
func (l *Link) SetTarget(target Object) {
	l.target = target
}

// expectedRelKinds lists the object kinds each hierarchical rel may
// resolve to. Rels not listed accept any kind.
var expectedRelKinds = map[string][]ObjectType{
	RelChild:      {CatalogType, CollectionType},
	RelItem:       {ItemType},
	RelParent:     {CatalogType, CollectionType},
	RelRoot:       {CatalogType, CollectionType},
	RelCollection: {CollectionType},
}

// TypeMismatchError reports a link that resolved to the wrong kind of
// object for its rel.
type TypeMismatchError struct {
	Rel      string
	Href     string
	Expected []ObjectType
	Actual   ObjectType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("link rel=%q href=%q resolved to %s, expected one of %v",
		e.Rel, e.Href, e.Actual, e.Expected)
}

// Resolve returns the link's target, reading, migrating and caching the
// referenced document on first resolution. Resolution is memoized two
// ways: the link's target is rewritten in place, and the document is
// registered in the tree's identity cache so href-equal links share one
// instance. Resolving may block on I/O.
func (l *Link) Resolve() (Object, error) {
	if l.target != nil {
		return l.target, nil
	}
	if l.href == "" {
		return nil, fmt.Errorf("link rel=%q has neither href nor target", l.Rel)
	}

	var root *Base
	if l.owner != nil {
		root = l.owner.Common().rootBase()
	}
	href := l.AbsoluteHref()

	var obj Object
	if root != nil {
		if cached, ok := root.IdentityCache().GetByHref(href); ok {
			obj = cached.(Object)
			log.Debug().Str("href", href).Msg("link resolved from identity cache")
		}
	}

	if obj == nil {
		var io stacio.IO = stacio.Default
		var collections *cache.Collections
		if root != nil {
			io = root.IOForTree()
			collections = root.CollectionCache()
		}

		text, err := io.ReadText(href)
		if err != nil {
			return nil, fmt.Errorf("resolving link rel=%q: %w", l.Rel, err)
		}
		doc, err := jsonutil.DecodeObject([]byte(text))
		if err != nil {
			return nil, fmt.Errorf("resolving link rel=%q href=%q: %w", l.Rel, href, err)
		}

		obj, err = readDocument(doc, href, io, collections)
		if err != nil {
			return nil, err
		}

		if root != nil {
			obj = root.IdentityCache().
				GetOrCache(cache.Key{Value: href, IsHref: true}, obj).(Object)
			if obj.Kind() == CollectionType {
				// byproduct: sibling items migrating common properties
				// reuse the raw document without re-reading it
				collections.Set(doc, obj.Common().ID, href)
			}
		}
	}

	if expected, ok := expectedRelKinds[l.Rel]; ok && !kindIn(obj.Kind(), expected) {
		return nil, &TypeMismatchError{Rel: l.Rel, Href: href, Expected: expected, Actual: obj.Kind()}
	}

	l.target = obj
	if l.Title == "" {
		l.Title = objectTitle(obj)
	}
	if (l.Rel == RelChild || l.Rel == RelItem) && l.owner != nil {
		obj.Common().SetParent(l.owner)
		// the owner's tree root, or the owner itself when it has no root
		// link; the child must share the tree's caches and IO either way
		r := l.owner.Common().Root()
		if r == nil {
			r = l.owner.Common().rootBase().self
		}
		obj.Common().SetRoot(r)
	}
	return obj, nil
}

func kindIn(kind ObjectType, set []ObjectType) bool {
	for _, k := range set {
		if k == kind {
			return true
		}
	}
	return false
}

func objectTitle(o Object) string {
	switch t := o.(type) {
	case *Catalog:
		return t.Title
	case *Collection:
		return t.Title
	case *Item:
		if title, ok := t.Properties["title"].(string); ok {
			return title
		}
	}
	return ""
}

// Clone copies the link's metadata and state. The owner is left unset
// for the caller to re-point; a resolved target still references the
// original object.
func (l *Link) Clone() *Link {
	out := &Link{
		Rel:       l.Rel,
		MediaType: l.MediaType,
		Title:     l.Title,
		href:      l.href,
		target:    l.target,
	}
	if l.ExtraFields != nil {
		out.ExtraFields = deepCopyAny(l.ExtraFields).(map[string]any)
	}
	return out
}

// linkFromMap decodes a wire-format link object. Unknown keys are kept
// in ExtraFields.
func linkFromMap(m map[string]any) *Link {
	l := &Link{}
	for k, v := range m {
		switch k {
		case "rel":
			l.Rel, _ = v.(string)
		case "href":
			l.href, _ = v.(string)
		case "type":
			l.MediaType, _ = v.(string)
		case "title":
			l.Title, _ = v.(string)
		default:
			if l.ExtraFields == nil {
				l.ExtraFields = map[string]any{}
			}
			l.ExtraFields[k] = v
		}
	}
	return l
}

// toMap encodes the link. If relativeTo is non-empty the href is
// rewritten relative to that document's location.
func (l *Link) toMap(relativeTo string) map[string]any {
	out := map[string]any{"rel": l.Rel}
	href := l.Href()
	if relativeTo != "" && isHierarchicalRel(l.Rel) {
		href = stacio.MakeRelativeHref(l.AbsoluteHref(), relativeTo)
	}
	if href != "" {
		out["href"] = href
	}
	if l.MediaType != "" {
		out["type"] = l.MediaType
	}
	if l.Title != "" {
		out["title"] = l.Title
	}
	for k, v := range l.ExtraFields {
		out[k] = v
	}
	return out
}

func isHierarchicalRel(rel string) bool {
	switch rel {
	case RelRoot, RelParent, RelChild, RelItem, RelCollection:
		return true
	}
	return false
}
