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

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	json "github.com/goccy/go-json"

	"github.com/go-geospatial/go-stac-catalog/common"
	"github.com/go-geospatial/go-stac-catalog/jsonutil"
	"github.com/go-geospatial/go-stac-catalog/migrate"
	"github.com/go-geospatial/go-stac-catalog/stacio"
	"github.com/go-geospatial/go-stac-catalog/version"
)

var migrateOutput string

var migrateCmd = &cobra.Command{
	Use:   "migrate <href>",
	Short: "Migrate a STAC document to the target version",
	Long: `migrate reads a single STAC document, identifies the version range it
was written against, rewrites it to the target STAC version, and prints
the result (or writes it to --output).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		common.SetupLogging()
		href := args[0]

		text, err := stacio.Default.ReadText(href)
		if err != nil {
			return fmt.Errorf("reading %s: %w", href, err)
		}
		doc, err := jsonutil.DecodeObject([]byte(text))
		if err != nil {
			return fmt.Errorf("decoding %s: %w", href, err)
		}

		info, err := version.Identify(doc)
		if err != nil {
			return fmt.Errorf("identifying %s: %w", href, err)
		}
		log.Info().
			Str("type", string(info.Type)).
			Str("minVersion", info.Range.Min().String()).
			Str("maxVersion", info.Range.Max().String()).
			Msg("identified document")

		migrated, err := migrate.Migrate(doc, info, migrate.Options{
			IO:       stacio.Default,
			BaseHref: href,
		})
		if err != nil {
			return fmt.Errorf("migrating %s: %w", href, err)
		}

		data, err := json.MarshalIndent(migrated, "", "  ")
		if err != nil {
			return err
		}
		if migrateOutput == "" {
			fmt.Println(string(data))
			return nil
		}
		return stacio.Default.WriteText(migrateOutput, string(data)+"\n")
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().StringVarP(&migrateOutput, "output", "o", "", "Write the migrated document to this path instead of stdout")
}
