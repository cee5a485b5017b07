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

package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/go-geospatial/go-stac-catalog/stac"
)

// Catalog is the landing page: the root catalog with its children
// rewritten as API child links.
// GET /
func Catalog(c *fiber.Ctx) error {
	root, err := Tree()
	if err != nil {
		return treeError(c, err)
	}
	self := getBaseURL(c)

	links := []map[string]any{
		apiLink("self", stac.MediaTypeJSON, "", self),
		apiLink("root", stac.MediaTypeJSON, "", self),
		apiLink("data", stac.MediaTypeJSON, "", fmt.Sprintf("%s/collections", self)),
		apiLink("conformance", stac.MediaTypeJSON,
			"STAC/WFS3 conformance classes implemented by this server",
			fmt.Sprintf("%s/conformance", self)),
	}

	err = root.Walk(func(node stac.Object, children []stac.Object, items []*stac.Item) error {
		if col, ok := node.(*stac.Collection); ok {
			links = append(links, apiLink("child", stac.MediaTypeJSON, col.Title,
				fmt.Sprintf("%s/collections/%s", self, col.ID)))
		}
		return nil
	})
	if err != nil {
		return treeError(c, err)
	}

	m, err := encodeForAPI(root, links)
	if err != nil {
		return treeError(c, err)
	}
	m["conformsTo"] = Conformance
	return c.JSON(m)
}

// GetConformance returns the conformance classes.
// GET /conformance
func GetConformance(c *fiber.Ctx) error {
	return c.JSON(map[string]any{"conformsTo": Conformance})
}
