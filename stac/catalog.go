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
	"io"

	"github.com/go-geospatial/go-stac-catalog/cache"
	"github.com/go-geospatial/go-stac-catalog/migrate"
	"github.com/go-geospatial/go-stac-catalog/stacio"
)

// Catalog is a STAC catalog: an id, a description, and links to child
// catalogs, collections and items.
type Catalog struct {
	Base
	Title       string
	Description string
}

// NewCatalog creates a catalog that is the root of its own tree.
func NewCatalog(id, description string) *Catalog {
	c := &Catalog{Description: description}
	c.ID = id
	c.StacVersion = migrate.TargetVersion().String()
	c.init(c)
	c.SetRoot(c)
	return c
}

func (c *Catalog) Kind() ObjectType { return CatalogType }
func (c *Catalog) Common() *Base    { return &c.Base }

func catalogFromMap(m map[string]any) (*Catalog, error) {
	c := &Catalog{}
	c.init(c)
	if err := decodeCommon(&c.Base, m, func(k string, v any) bool {
		switch k {
		case "title":
			c.Title, _ = v.(string)
		case "description":
			c.Description, _ = v.(string)
		default:
			return false
		}
		return true
	}); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) ToMap() (map[string]any, error) {
	m := encodeCommon(&c.Base, CatalogType)
	if c.Title != "" {
		m["title"] = c.Title
	}
	m["description"] = c.Description
	return m, nil
}

// Clone copies the catalog; link targets still reference the original
// graph (see Object.Clone).
func (c *Catalog) Clone() Object {
	out := &Catalog{Title: c.Title, Description: c.Description}
	out.Base = c.Base.cloneBase(out)
	return out
}

// AddChild grafts a child catalog or collection under c. The incoming
// subtree's caches merge into this tree's caches, with this tree's
// entries winning any key collision, and the subtree's standalone
// caches are discarded.
func (c *Catalog) AddChild(child Object) error {
	if child.Kind() == ItemType {
		return fmt.Errorf("cannot add item %q as a child catalog; use AddItem", child.Common().ID)
	}
	c.graft(child)
	c.AddLink(NewLinkTo(RelChild, child))
	return nil
}

// AddItem adds an item under c.
func (c *Catalog) AddItem(item *Item) error {
	if item == nil {
		return fmt.Errorf("cannot add nil item to catalog %q", c.ID)
	}
	c.graft(item)
	c.AddLink(NewLinkTo(RelItem, item))
	return nil
}

func (c *Catalog) graft(obj Object) {
	receiving := c.rootBase()
	incoming := obj.Common().rootBase()
	if incoming != receiving {
		receiving.cache = cache.Merge(receiving.IdentityCache(), incoming.IdentityCache())
		receiving.collections = cache.MergeCollections(receiving.CollectionCache(), incoming.CollectionCache())
	}

	root := c.Root()
	if root == nil {
		root = c.self
	}
	obj.Common().SetRoot(root)
	obj.Common().SetParent(c.self)
}

// Children resolves and returns the catalog's child catalogs and
// collections, in link order.
func (c *Catalog) Children() ([]Object, error) {
	var out []Object
	for _, l := range c.GetLinks(RelChild) {
		child, err := l.Resolve()
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

// Items resolves and returns the catalog's items, in link order.
func (c *Catalog) Items() ([]*Item, error) {
	var out []*Item
	for _, l := range c.GetLinks(RelItem) {
		obj, err := l.Resolve()
		if err != nil {
			return nil, err
		}
		item, ok := obj.(*Item)
		if !ok {
			return nil, &TypeMismatchError{Rel: RelItem, Href: l.Href(), Expected: []ObjectType{ItemType}, Actual: obj.Kind()}
		}
		out = append(out, item)
	}
	return out, nil
}

// Walk visits the catalog and every descendant catalog depth-first,
// calling visit with the node, its resolved child catalogs and its
// resolved items. Only child and item rels are followed, so
// non-hierarchical back-links cannot loop the traversal; a visited set
// guards against malformed child cycles.
func (c *Catalog) Walk(visit func(node Object, children []Object, items []*Item) error) error {
	return c.walk(visit, map[*Base]bool{})
}

func (c *Catalog) walk(visit func(node Object, children []Object, items []*Item) error, visited map[*Base]bool) error {
	if visited[&c.Base] {
		return nil
	}
	visited[&c.Base] = true

	children, err := c.Children()
	if err != nil {
		return err
	}
	items, err := c.Items()
	if err != nil {
		return err
	}
	if err := visit(c.self, children, items); err != nil {
		return err
	}
	for _, child := range children {
		if err := childCatalog(child).walk(visit, visited); err != nil {
			return err
		}
	}
	return nil
}

// childCatalog returns the *Catalog view of a child object. Children
// are catalogs or collections by the resolution contract.
func childCatalog(o Object) *Catalog {
	switch t := o.(type) {
	case *Catalog:
		return t
	case *Collection:
		return &t.Catalog
	}
	return nil
}

// HrefStrategy computes the canonical href for an object placed under a
// parent directory. Implementations live in the layout package.
type HrefStrategy interface {
	HrefFor(obj Object, parentDir string, isRoot bool) (string, error)
}

// NormalizeHrefs assigns every object in the subtree a self href
// computed by the strategy, rooted at rootDir. The whole subtree is
// resolved in the process; identity-cache entries are relocated as each
// self href is set.
func (c *Catalog) NormalizeHrefs(rootDir string, strategy HrefStrategy) error {
	return c.normalize(rootDir, strategy, true)
}

func (c *Catalog) normalize(parentDir string, strategy HrefStrategy, isRoot bool) error {
	// resolve before reassigning the self href: unresolved links
	// absolutize against the current location, not the destination
	children, err := c.Children()
	if err != nil {
		return err
	}
	items, err := c.Items()
	if err != nil {
		return err
	}

	href, err := strategy.HrefFor(c.self, parentDir, isRoot)
	if err != nil {
		return err
	}
	c.SetSelfHref(href)
	dir := stacio.Dir(href)

	for _, child := range children {
		if err := childCatalog(child).normalize(dir, strategy, false); err != nil {
			return err
		}
	}

	for _, item := range items {
		itemHref, err := strategy.HrefFor(item, dir, false)
		if err != nil {
			return err
		}
		item.SetSelfHref(itemHref)
	}
	return nil
}

// Describe writes an indented tree of the catalog's structure.
func (c *Catalog) Describe(w io.Writer) error {
	return c.describe(w, "")
}

func (c *Catalog) describe(w io.Writer, indent string) error {
	if _, err := fmt.Fprintf(w, "%s* <%s id=%s>\n", indent, c.self.Kind(), c.ID); err != nil {
		return err
	}
	items, err := c.Items()
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintf(w, "%s  * <Item id=%s>\n", indent, item.ID); err != nil {
			return err
		}
	}
	children, err := c.Children()
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := childCatalog(child).describe(w, indent+"    "); err != nil {
			return err
		}
	}
	return nil
}
