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

	"github.com/spf13/cobra"

	"github.com/go-geospatial/go-stac-catalog/common"
	"github.com/go-geospatial/go-stac-catalog/stac"
)

var describeCmd = &cobra.Command{
	Use:   "describe <href>",
	Short: "Print the structure of a catalog tree",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		common.SetupLogging()
		root, err := readCatalog(args[0])
		if err != nil {
			return err
		}
		return root.Describe(os.Stdout)
	},
}

// readCatalog reads an href and returns its *Catalog view; collections
// qualify, items do not.
func readCatalog(href string) (*stac.Catalog, error) {
	obj, err := stac.ReadFile(href, nil)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", href, err)
	}
	switch t := obj.(type) {
	case *stac.Catalog:
		return t, nil
	case *stac.Collection:
		return &t.Catalog, nil
	}
	return nil, fmt.Errorf("%s is a %s, not a catalog", href, obj.Kind())
}

func init() {
	rootCmd.AddCommand(describeCmd)
}
