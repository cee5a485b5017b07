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
	"errors"
	"fmt"

	"github.com/go-geospatial/go-stac-catalog/cache"
	"github.com/go-geospatial/go-stac-catalog/jsonutil"
	"github.com/go-geospatial/go-stac-catalog/migrate"
	"github.com/go-geospatial/go-stac-catalog/stacio"
	"github.com/go-geospatial/go-stac-catalog/version"
)

// ReadFile reads, identifies, migrates and constructs the STAC object
// at href. A nil io uses stacio.Default. The object's self href is set
// to href and the object becomes the root of a fresh tree.
func ReadFile(href string, io stacio.IO) (Object, error) {
	if io == nil {
		io = stacio.Default
	}
	text, err := io.ReadText(href)
	if err != nil {
		return nil, err
	}
	doc, err := jsonutil.DecodeObject([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", href, err)
	}
	collections := cache.NewCollections()
	obj, err := readDocument(doc, href, io, collections)
	if err != nil {
		return nil, err
	}
	if obj.Kind() != ItemType {
		obj.Common().SetRoot(obj)
	}
	obj.Common().collections = collections
	obj.Common().SetIO(io)
	obj.Common().IdentityCache().GetOrCache(cache.Key{Value: href, IsHref: true}, obj)
	return obj, nil
}

// ReadDict identifies, migrates and constructs a STAC object from an
// already-decoded document of any supported version.
func ReadDict(doc map[string]any) (Object, error) {
	return readDocument(doc, "", stacio.Default, cache.NewCollections())
}

// readDocument is the arbitrary-version entry point: identify the
// document, migrate it to the target schema, then construct the typed
// object. Migration may itself read other documents (common-property
// inheritance), which is why the collection cache threads through.
func readDocument(doc map[string]any, href string, io stacio.IO, collections *cache.Collections) (Object, error) {
	info, err := version.Identify(doc)
	if err != nil {
		var nase *version.NotAStacObjectError
		if errors.As(err, &nase) && nase.Href == "" {
			nase.Href = href
		}
		return nil, err
	}

	migrated, err := migrate.Migrate(doc, info, migrate.Options{
		IO:          io,
		Collections: collections,
		BaseHref:    href,
	})
	if err != nil {
		return nil, err
	}

	obj, err := FromMap(migrated)
	if err != nil {
		return nil, err
	}
	if href != "" {
		obj.Common().SetSelfHref(href)
	}
	return obj, nil
}

// FromMap constructs a STAC object from a current-version document,
// dispatching on the type discriminator. Use ReadDict for documents
// that may need migration.
func FromMap(m map[string]any) (Object, error) {
	typeField, _ := m["type"].(string)
	switch ObjectType(typeField) {
	case CatalogType:
		return catalogFromMap(m)
	case CollectionType:
		return collectionFromMap(m)
	case ItemType:
		return itemFromMap(m)
	case ItemCollectionType:
		return nil, &version.NotAStacObjectError{
			Reason: "an item collection is not a standalone catalog object",
		}
	default:
		return nil, &version.NotAStacObjectError{
			Reason: fmt.Sprintf("unrecognized type %q", typeField),
		}
	}
}
