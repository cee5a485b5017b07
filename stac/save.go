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

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/go-geospatial/go-stac-catalog/stacio"
)

// SaveMode controls the href policy a tree is serialized with.
type SaveMode string

const (
	// SelfContained writes no self links and relative hierarchical
	// hrefs; the tree can be moved anywhere as a unit.
	SelfContained SaveMode = "SELF_CONTAINED"
	// AbsolutePublished writes absolute hrefs everywhere, including a
	// self link on every object.
	AbsolutePublished SaveMode = "ABSOLUTE_PUBLISHED"
	// RelativePublished writes a self link only on the root; all other
	// hrefs are relative.
	RelativePublished SaveMode = "RELATIVE_PUBLISHED"
)

// Save serializes the catalog and every descendant to their self hrefs
// through io (nil means the tree's IO). Hrefs must have been assigned,
// typically by NormalizeHrefs.
func (c *Catalog) Save(mode SaveMode, io stacio.IO) error {
	if io == nil {
		io = c.IOForTree()
	}
	isRoot := true
	return c.Walk(func(node Object, children []Object, items []*Item) error {
		nodeIsRoot := isRoot
		isRoot = false
		if err := saveObject(node, mode, nodeIsRoot, io); err != nil {
			return err
		}
		for _, item := range items {
			if err := saveObject(item, mode, false, io); err != nil {
				return err
			}
		}
		return nil
	})
}

func saveObject(obj Object, mode SaveMode, isRoot bool, io stacio.IO) error {
	dest := obj.Common().SelfHref()
	if dest == "" {
		return fmt.Errorf("cannot save %s %q: no self href set (normalize hrefs first)",
			obj.Kind(), obj.Common().ID)
	}

	m, err := obj.ToMap()
	if err != nil {
		return err
	}
	m["links"] = encodeLinks(obj, mode, isRoot)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing %s: %w", dest, err)
	}
	log.Debug().Str("href", dest).Str("mode", string(mode)).Msg("saving object")
	return io.WriteText(dest, string(data)+"\n")
}

// encodeLinks applies the save mode's href policy: whether a self link
// is written and whether hierarchical hrefs are absolute or relative.
func encodeLinks(obj Object, mode SaveMode, isRoot bool) []any {
	base := obj.Common().SelfHref()
	includeSelf := mode == AbsolutePublished || (mode == RelativePublished && isRoot)
	relative := mode != AbsolutePublished

	out := make([]any, 0, len(obj.Common().Links()))
	for _, l := range obj.Common().Links() {
		if l.Rel == RelSelf {
			if includeSelf {
				out = append(out, l.toMap(""))
			}
			continue
		}
		if relative {
			out = append(out, l.toMap(base))
		} else {
			abs := l.toMap("")
			if href := l.AbsoluteHref(); href != "" {
				abs["href"] = href
			}
			out = append(out, abs)
		}
	}
	return out
}
