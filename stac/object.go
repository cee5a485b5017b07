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

// Package stac models the STAC document graph: catalogs, collections and
// items connected by links that resolve lazily through a per-tree
// identity cache.
package stac

import (
	"github.com/go-geospatial/go-stac-catalog/cache"
	"github.com/go-geospatial/go-stac-catalog/stacio"
	"github.com/go-geospatial/go-stac-catalog/version"
)

// ObjectType discriminates the STAC object variants; the values are the
// wire-format "type" field.
type ObjectType = version.ObjectType

const (
	CatalogType        = version.CatalogType
	CollectionType     = version.CollectionType
	ItemType           = version.ItemType
	ItemCollectionType = version.ItemCollectionType
)

// Object is the closed set of STAC documents: *Catalog, *Collection and
// *Item. Components dispatch on Kind with exhaustive switches.
type Object interface {
	Kind() ObjectType
	Common() *Base
	ToMap() (map[string]any, error)
	// Clone copies the object and its links. Link targets still point
	// at the original graph; FullCopy re-points them into the clone.
	Clone() Object
}

// Base holds the fields and graph plumbing shared by every STAC object.
// The identity cache, collection cache and IO live on the Base of a
// tree's root and are shared by reference with all descendants.
type Base struct {
	ID          string
	StacVersion string
	// Extensions holds schema URIs, or legacy short tokens on objects
	// built from pre-1.0 documents before migration.
	Extensions  []string
	ExtraFields map[string]any

	links       []*Link
	self        Object
	io          stacio.IO
	cache       *cache.Identity
	collections *cache.Collections
}

// init wires the back-reference from the embedded Base to the object
// that owns it. Every constructor and FromMap path must call it.
func (b *Base) init(self Object) {
	b.self = self
	if b.ExtraFields == nil {
		b.ExtraFields = map[string]any{}
	}
}

// Links returns the object's links in insertion order.
func (b *Base) Links() []*Link {
	return b.links
}

func (b *Base) AddLink(l *Link) {
	l.owner = b.self
	b.links = append(b.links, l)
}

func (b *Base) AddLinks(links []*Link) {
	for _, l := range links {
		b.AddLink(l)
	}
}

// RemoveLinks drops every link with the given rel.
func (b *Base) RemoveLinks(rel string) {
	kept := b.links[:0]
	for _, l := range b.links {
		if l.Rel != rel {
			kept = append(kept, l)
		}
	}
	b.links = kept
}

// GetSingleLink returns the first link with the given rel, or nil.
func (b *Base) GetSingleLink(rel string) *Link {
	for _, l := range b.links {
		if l.Rel == rel {
			return l
		}
	}
	return nil
}

func (b *Base) GetLinks(rel string) []*Link {
	var out []*Link
	for _, l := range b.links {
		if l.Rel == rel {
			out = append(out, l)
		}
	}
	return out
}

// SelfHref returns the object's canonical href from its self link, or
// "" if none is set.
func (b *Base) SelfHref() string {
	if l := b.GetSingleLink(RelSelf); l != nil {
		return l.href
	}
	return ""
}

// SetSelfHref sets or clears (href == "") the object's self link and
// relocates the object's identity-cache entry, since the cache key
// switches between href-based and id-chain-based addressing.
func (b *Base) SetSelfHref(href string) {
	oldKey := b.cacheKey()
	b.RemoveLinks(RelSelf)
	if href != "" {
		l := NewLink(RelSelf, href)
		l.MediaType = MediaTypeJSON
		b.AddLink(l)
	}
	b.rootBase().IdentityCache().Rekey(oldKey, b.cacheKey())
}

// Root returns the resolved root of this object's tree, or nil if the
// root link is absent or unresolved.
func (b *Base) Root() Object {
	if l := b.GetSingleLink(RelRoot); l != nil && l.IsResolved() {
		return l.Target()
	}
	return nil
}

// SetRoot replaces the object's root link and propagates the new root
// to every resolved descendant, which also hands the subtree over to
// the new root's caches.
func (b *Base) SetRoot(root Object) {
	b.setRoot(root, map[*Base]bool{})
}

func (b *Base) setRoot(root Object, visited map[*Base]bool) {
	if visited[b] {
		return
	}
	visited[b] = true

	b.RemoveLinks(RelRoot)
	if root != nil {
		b.AddLink(NewLinkTo(RelRoot, root))
	}
	for _, l := range b.links {
		if (l.Rel == RelChild || l.Rel == RelItem) && l.IsResolved() {
			l.Target().Common().setRoot(root, visited)
		}
	}
}

// Parent returns the resolved parent, or nil.
func (b *Base) Parent() Object {
	if l := b.GetSingleLink(RelParent); l != nil && l.IsResolved() {
		return l.Target()
	}
	return nil
}

// SetParent replaces the object's parent link; an object has at most
// one parent even though the link graph is otherwise unconstrained.
func (b *Base) SetParent(parent Object) {
	b.RemoveLinks(RelParent)
	if parent != nil {
		b.AddLink(NewLinkTo(RelParent, parent))
	}
}

// cacheKey computes the object's identity-cache key: the self href if
// set, otherwise the '/'-joined id chain from the root of the tree down
// to this object. Hrefless objects with identical chains collide; see
// cache.Key.
func (b *Base) cacheKey() cache.Key {
	if href := b.SelfHref(); href != "" {
		return cache.Key{Value: href, IsHref: true}
	}
	ids := []string{b.ID}
	seen := map[*Base]bool{b: true}
	for cur := b; ; {
		parent := cur.Parent()
		if parent == nil {
			break
		}
		pb := parent.Common()
		if seen[pb] {
			break
		}
		seen[pb] = true
		ids = append(ids, pb.ID)
		cur = pb
	}
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	key := ids[0]
	for _, id := range ids[1:] {
		key += "/" + id
	}
	return cache.Key{Value: key}
}

// rootBase returns the Base owning the tree's shared caches: the
// resolved root's Base, or this object's own when it has no root.
func (b *Base) rootBase() *Base {
	if root := b.Root(); root != nil {
		return root.Common()
	}
	return b
}

// IdentityCache returns the tree's identity cache, allocating it on the
// root on first use.
func (b *Base) IdentityCache() *cache.Identity {
	rb := b.rootBase()
	if rb.cache == nil {
		rb.cache = cache.NewIdentity()
	}
	return rb.cache
}

// CollectionCache returns the tree's collection property cache.
func (b *Base) CollectionCache() *cache.Collections {
	rb := b.rootBase()
	if rb.collections == nil {
		rb.collections = cache.NewCollections()
	}
	return rb.collections
}

// SetIO overrides the IO used to resolve links in this object's tree.
func (b *Base) SetIO(io stacio.IO) {
	b.rootBase().io = io
}

// IOForTree returns the IO links in this tree resolve through.
func (b *Base) IOForTree() stacio.IO {
	if io := b.rootBase().io; io != nil {
		return io
	}
	return stacio.Default
}

// cloneBase copies the shared fields into a fresh Base for self. Links
// are cloned with their owner re-pointed at the clone; resolved targets
// still reference the original graph. Caches and IO are not carried
// over: a clone starts as its own tree.
func (b *Base) cloneBase(self Object) Base {
	out := Base{
		ID:          b.ID,
		StacVersion: b.StacVersion,
	}
	if b.Extensions != nil {
		out.Extensions = append([]string{}, b.Extensions...)
	}
	out.ExtraFields = deepCopyAny(b.ExtraFields).(map[string]any)
	out.init(self)
	for _, l := range b.links {
		cl := l.Clone()
		cl.owner = self
		out.links = append(out.links, cl)
	}
	return out
}

func deepCopyAny(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = deepCopyAny(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = deepCopyAny(e)
		}
		return out
	default:
		return v
	}
}
