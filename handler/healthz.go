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
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Healthz reports whether the catalog tree loaded.
func Healthz(c *fiber.Ctx) error {
	overallHealth := "OK"
	catalogHealth := "OK"

	if _, err := Tree(); err != nil {
		log.Error().Err(err).Msg("catalog tree failed to load")
		catalogHealth = "FAILED"
		overallHealth = "FAILED"
	}

	return c.JSON(map[string]string{
		"status":  overallHealth,
		"catalog": catalogHealth,
	})
}
