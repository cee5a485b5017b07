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
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/go-geospatial/go-stac-catalog/stac"
)

func getBaseURL(c *fiber.Ctx) string {
	return fmt.Sprintf("%s://%s/api/stac/v1", c.Protocol(), c.Hostname())
}

func parseLimit(c *fiber.Ctx, limitStr string) (int, error) {
	if limitStr == "" {
		return 10, nil
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		log.Error().Err(err).Str("limit", limitStr).Msg("could not convert limit to int")
		c.Status(fiber.ErrUnprocessableEntity.Code)
		return 0, c.JSON(Message{
			Code:        ParameterError,
			Description: fmt.Sprintf("limit '%s' could not be converted to int", limitStr),
		})
	}
	if limit < 1 || limit > 1000 {
		c.Status(fiber.ErrUnprocessableEntity.Code)
		return 0, c.JSON(Message{
			Code:        ParameterError,
			Description: fmt.Sprintf("limit '%s' must be between 1 and 1000", limitStr),
		})
	}
	return limit, nil
}

func parseOffset(c *fiber.Ctx, offsetStr string) (int, error) {
	if offsetStr == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil || offset < 0 {
		c.Status(fiber.ErrUnprocessableEntity.Code)
		return 0, c.JSON(Message{
			Code:        ParameterError,
			Description: fmt.Sprintf("offset '%s' must be a non-negative int", offsetStr),
		})
	}
	return offset, nil
}

func treeError(c *fiber.Ctx, err error) error {
	log.Error().Stack().Err(err).Msg("could not load or traverse catalog tree")
	c.Status(fiber.ErrInternalServerError.Code)
	return c.JSON(Message{
		Code:        CatalogLoadError,
		Description: "could not load the catalog tree",
	})
}

// apiLink is a link in an API response. Hrefs in responses are always
// API urls, never the tree's storage hrefs.
func apiLink(rel, mediaType, title, href string) map[string]any {
	l := map[string]any{
		"rel":  rel,
		"type": mediaType,
		"href": href,
	}
	if title != "" {
		l["title"] = title
	}
	return l
}

// encodeForAPI serializes an object with its stored links replaced by
// the provided API links.
func encodeForAPI(obj stac.Object, links []map[string]any) (map[string]any, error) {
	m, err := obj.ToMap()
	if err != nil {
		return nil, err
	}
	out := make([]any, 0, len(links))
	for _, l := range links {
		out = append(out, l)
	}
	m["links"] = out
	return m, nil
}
