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
	"github.com/rs/zerolog/log"

	"github.com/go-geospatial/go-stac-catalog/stac"
)

// Collections lists every collection in the tree.
// GET /collections
func Collections(c *fiber.Ctx) error {
	root, err := Tree()
	if err != nil {
		return treeError(c, err)
	}
	self := getBaseURL(c)

	collections := make([]map[string]any, 0)
	err = root.Walk(func(node stac.Object, children []stac.Object, items []*stac.Item) error {
		col, ok := node.(*stac.Collection)
		if !ok {
			return nil
		}
		m, err := encodeCollection(col, self)
		if err != nil {
			return err
		}
		collections = append(collections, m)
		return nil
	})
	if err != nil {
		return treeError(c, err)
	}

	return c.JSON(map[string]any{
		"collections": collections,
		"links": []any{
			apiLink("self", stac.MediaTypeJSON, "", fmt.Sprintf("%s/collections", self)),
			apiLink("root", stac.MediaTypeJSON, "", self),
			apiLink("parent", stac.MediaTypeJSON, "", self),
		},
	})
}

// Collection returns details of a specific collection.
// GET /collections/:collectionId
func Collection(c *fiber.Ctx) error {
	root, err := Tree()
	if err != nil {
		return treeError(c, err)
	}
	collectionID := c.Params("collectionId")

	col, err := findCollection(root, collectionID)
	if err != nil {
		return treeError(c, err)
	}
	if col == nil {
		log.Warn().Str("id", collectionID).Msg("collection not found")
		c.Status(fiber.ErrNotFound.Code)
		return c.JSON(Message{
			Code:        NotFoundError,
			Description: fmt.Sprintf("collection '%s' not found", collectionID),
		})
	}

	m, err := encodeCollection(col, getBaseURL(c))
	if err != nil {
		return treeError(c, err)
	}
	return c.JSON(m)
}

func encodeCollection(col *stac.Collection, baseURL string) (map[string]any, error) {
	self := fmt.Sprintf("%s/collections/%s", baseURL, col.ID)
	return encodeForAPI(col, []map[string]any{
		apiLink("self", stac.MediaTypeJSON, "", self),
		apiLink("root", stac.MediaTypeJSON, "", baseURL),
		apiLink("parent", stac.MediaTypeJSON, "", baseURL),
		apiLink("items", stac.MediaTypeGeoJSON, "", fmt.Sprintf("%s/items", self)),
	})
}
