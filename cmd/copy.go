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

	"github.com/go-geospatial/go-stac-catalog/common"
	"github.com/go-geospatial/go-stac-catalog/layout"
	"github.com/go-geospatial/go-stac-catalog/stac"
)

var (
	copyTemplate string
	copyMode     string
)

var copyCmd = &cobra.Command{
	Use:   "copy <src-href> <dest-dir>",
	Short: "Copy a catalog tree to a new location",
	Long: `copy reads the catalog at src-href, deep-copies the whole tree,
lays it out under dest-dir and writes every document. Documents written
against older STAC revisions come out migrated to the target version.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		common.SetupLogging()
		src, destDir := args[0], args[1]

		root, err := readCatalog(src)
		if err != nil {
			return err
		}

		copied, ok := stac.FullCopy(root).(*stac.Catalog)
		if !ok {
			return fmt.Errorf("copy of %s is not a catalog", src)
		}

		var strategy stac.HrefStrategy = layout.BestPractices{}
		if copyTemplate != "" {
			strategy = layout.NewTemplate(copyTemplate)
		}
		if err := copied.NormalizeHrefs(destDir, strategy); err != nil {
			return fmt.Errorf("normalizing hrefs under %s: %w", destDir, err)
		}

		mode, err := saveMode(copyMode)
		if err != nil {
			return err
		}
		if err := copied.Save(mode, nil); err != nil {
			return fmt.Errorf("saving tree to %s: %w", destDir, err)
		}
		log.Info().Str("src", src).Str("dest", destDir).Msg("copied catalog")
		return nil
	},
}

func saveMode(name string) (stac.SaveMode, error) {
	switch name {
	case "self-contained", "":
		return stac.SelfContained, nil
	case "absolute":
		return stac.AbsolutePublished, nil
	case "relative":
		return stac.RelativePublished, nil
	}
	return "", fmt.Errorf("unknown save mode %q: use self-contained, absolute or relative", name)
}

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().StringVar(&copyTemplate, "template", "", "Layout template for hrefs, e.g. '${collection}/${year}/${id}.json'")
	copyCmd.Flags().StringVar(&copyMode, "mode", "self-contained", "Save mode: self-contained, absolute or relative")
}
