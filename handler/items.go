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

	"github.com/go-geospatial/go-stac-catalog/common"
	"github.com/go-geospatial/go-stac-catalog/stac"
)

// Items lists a collection's items as a GeoJSON feature collection,
// paged by limit and offset.
// GET /collections/:collectionId/items
func Items(c *fiber.Ctx) error {
	root, err := Tree()
	if err != nil {
		return treeError(c, err)
	}
	collectionID := c.Params("collectionId")
	baseURL := getBaseURL(c)

	limit, err := parseLimit(c, c.Query("limit"))
	if err != nil {
		return err
	}
	offset, err := parseOffset(c, c.Query("offset"))
	if err != nil {
		return err
	}

	col, err := findCollection(root, collectionID)
	if err != nil {
		return treeError(c, err)
	}
	if col == nil {
		c.Status(fiber.ErrNotFound.Code)
		return c.JSON(Message{
			Code:        NotFoundError,
			Description: fmt.Sprintf("collection '%s' not found", collectionID),
		})
	}

	items, err := col.Items()
	if err != nil {
		return treeError(c, err)
	}

	total := len(items)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	itemsURL := fmt.Sprintf("%s/collections/%s/items", baseURL, collectionID)
	features := make([]any, 0, end-offset)
	for _, item := range items[offset:end] {
		m, err := encodeItem(item, baseURL, collectionID)
		if err != nil {
			return treeError(c, err)
		}
		features = append(features, m)
	}

	links := []any{
		apiLink("self", stac.MediaTypeGeoJSON, "", itemsURL),
		apiLink("root", stac.MediaTypeJSON, "", baseURL),
		apiLink("collection", stac.MediaTypeJSON, "", fmt.Sprintf("%s/collections/%s", baseURL, collectionID)),
	}
	if end < total {
		links = append(links, apiLink("next", stac.MediaTypeGeoJSON, "",
			fmt.Sprintf("%s?limit=%d&offset=%d", itemsURL, limit, end)))
	}

	return common.GeoJSON(c, map[string]any{
		"type":           "FeatureCollection",
		"features":       features,
		"links":          links,
		"numberMatched":  total,
		"numberReturned": len(features),
	})
}

// Item returns a single item.
// GET /collections/:collectionId/items/:itemId
func Item(c *fiber.Ctx) error {
	root, err := Tree()
	if err != nil {
		return treeError(c, err)
	}
	collectionID := c.Params("collectionId")
	itemID := c.Params("itemId")

	col, err := findCollection(root, collectionID)
	if err != nil {
		return treeError(c, err)
	}
	var item *stac.Item
	if col != nil {
		if item, err = findItem(col, itemID); err != nil {
			return treeError(c, err)
		}
	}
	if item == nil {
		log.Warn().Str("collection", collectionID).Str("item", itemID).Msg("item not found")
		c.Status(fiber.ErrNotFound.Code)
		return c.JSON(Message{
			Code:        NotFoundError,
			Description: fmt.Sprintf("item '%s' not found in collection '%s'", itemID, collectionID),
		})
	}

	m, err := encodeItem(item, getBaseURL(c), collectionID)
	if err != nil {
		return treeError(c, err)
	}
	return common.GeoJSON(c, m)
}

func encodeItem(item *stac.Item, baseURL, collectionID string) (map[string]any, error) {
	collectionURL := fmt.Sprintf("%s/collections/%s", baseURL, collectionID)
	return encodeForAPI(item, []map[string]any{
		apiLink("self", stac.MediaTypeGeoJSON, "", fmt.Sprintf("%s/items/%s", collectionURL, item.ID)),
		apiLink("root", stac.MediaTypeJSON, "", baseURL),
		apiLink("parent", stac.MediaTypeJSON, "", collectionURL),
		apiLink("collection", stac.MediaTypeJSON, "", collectionURL),
	})
}
