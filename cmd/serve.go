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

package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cache"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	json "github.com/goccy/go-json"

	"github.com/go-geospatial/go-stac-catalog/common"
	"github.com/go-geospatial/go-stac-catalog/handler"
	"github.com/go-geospatial/go-stac-catalog/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a catalog tree over a read-only STAC API",
	Long: `serve resolves the catalog at --catalog and publishes it as a STAC
API. Documents are migrated to the target STAC version as they are
read; the resolved tree is cached for the life of the process.`,
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		log.Info().Msg("initialized logging")

		// load the catalog tree early so we fail fast on a bad href
		root, err := handler.Tree()
		if err != nil {
			log.Fatal().Stack().Err(err).Msg("could not load catalog")
		}
		log.Info().Str("id", root.ID).Msg("catalog loaded")

		// Create new Fiber instance
		app := fiber.New(fiber.Config{
			JSONEncoder: json.Marshal,
			JSONDecoder: json.Unmarshal,
		})

		// shutdown cleanly on interrupt
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		go func() {
			sig := <-c // block until signal is read
			fmt.Printf("Received signal: '%s'; shutting down...\n", sig.String())
			err := app.ShutdownWithTimeout(time.Second * 5)
			if err != nil {
				log.Fatal().Err(err).Msg("app shutdown failed")
			}
		}()

		// Configure CORS
		app.Use(cors.New(cors.Config{
			AllowOrigins: "*",
			AllowMethods: "GET,HEAD",
		}))

		// configure caching
		app.Use(cache.New(cache.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.Query("refresh") == "true"
			},
			Expiration:   30 * time.Minute,
			CacheControl: true,
		}))

		// compression
		app.Use(compress.New(compress.Config{
			Level: compress.LevelBestSpeed, // 1
		}))

		prometheus := fiberprometheus.New("stac-catalog")
		prometheus.RegisterAt(app, "/metrics")
		app.Use(prometheus.Middleware)

		// Setup routes
		router.SetupRoutes(app)

		err = app.Listen(":" + viper.GetString("server.port"))
		if err != nil {
			log.Fatal().Err(err).Msg("app.Listen returned an error")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	if err := viper.BindEnv("server.port", "PORT"); err != nil {
		log.Panic().Err(err).Msg("could not bind PORT")
	}
	serveCmd.Flags().IntP("port", "p", 3000, "Port to run application server on")
	if err := viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port")); err != nil {
		log.Panic().Err(err).Msg("could not bind port")
	}

	if err := viper.BindEnv("server.catalog", "CATALOG_HREF"); err != nil {
		log.Panic().Err(err).Msg("could not bind CATALOG_HREF")
	}
	serveCmd.Flags().String("catalog", "", "Href of the root catalog to serve")
	if err := viper.BindPFlag("server.catalog", serveCmd.Flags().Lookup("catalog")); err != nil {
		log.Panic().Err(err).Msg("could not bind catalog")
	}
}
