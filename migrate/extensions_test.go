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

package migrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	eoSchema   = "https://stac-extensions.github.io/eo/v1.1.0/schema.json"
	viewSchema = "https://stac-extensions.github.io/view/v1.0.0/schema.json"
	projSchema = "https://stac-extensions.github.io/projection/v1.1.0/schema.json"
)

func TestMigrateEOAngleFieldsMoveToView(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	doc := map[string]any{
		"type":            "Feature",
		"stac_version":    "0.8.1",
		"id":              "scene-1",
		"geometry":        nil,
		"stac_extensions": []any{"eo"},
		"properties": map[string]any{
			"datetime":       "2019-01-01T00:00:00Z",
			"eo:off_nadir":   0.5,
			"eo:sun_azimuth": 150.2,
			"eo:epsg":        32633.0,
			"eo:cloud_cover": 10.0,
		},
		"links": []any{},
	}

	out, err := Migrate(doc, identify(t, doc), Options{})
	require.NoError(t, err)

	props := out["properties"].(map[string]any)
	assert.Equal(t, 0.5, props["view:off_nadir"])
	assert.Equal(t, 150.2, props["view:sun_azimuth"])
	assert.Equal(t, 32633.0, props["proj:epsg"])
	assert.NotContains(t, props, "eo:off_nadir")
	assert.NotContains(t, props, "eo:epsg")
	// cloud cover stays an eo property
	assert.Equal(t, 10.0, props["eo:cloud_cover"])

	exts := toStrings(t, out["stac_extensions"])
	assert.Contains(t, exts, eoSchema)
	assert.Contains(t, exts, viewSchema)
	assert.Contains(t, exts, projSchema)
	assert.NotContains(t, exts, "eo")
}

func TestMigrateDatetimeRangeMergesIntoCore(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	doc := map[string]any{
		"type":            "Feature",
		"stac_version":    "0.6.0",
		"id":              "scene-1",
		"geometry":        nil,
		"stac_extensions": []any{"dtr"},
		"properties": map[string]any{
			"dtr:start_datetime": "2018-01-01T00:00:00Z",
			"dtr:end_datetime":   "2018-01-02T00:00:00Z",
		},
		"links": []any{},
	}

	out, err := Migrate(doc, identify(t, doc), Options{})
	require.NoError(t, err)

	props := out["properties"].(map[string]any)
	assert.Equal(t, "2018-01-01T00:00:00Z", props["start_datetime"])
	assert.Equal(t, "2018-01-02T00:00:00Z", props["end_datetime"])
	assert.NotContains(t, props, "dtr:start_datetime")

	// datetime-range merged into core: the id is dropped, not replaced
	exts := toStrings(t, out["stac_extensions"])
	assert.Empty(t, exts)
}

func TestMigrateRenamesAssetExtension(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	doc := map[string]any{
		"type":            "Collection",
		"stac_version":    "0.8.1",
		"id":              "col",
		"description":     "asset definitions",
		"license":         "CC-BY-4.0",
		"extent":          map[string]any{},
		"stac_extensions": []any{"asset"},
		"links":           []any{},
	}

	out, err := Migrate(doc, identify(t, doc), Options{})
	require.NoError(t, err)

	exts := toStrings(t, out["stac_extensions"])
	assert.Equal(t, []string{"https://stac-extensions.github.io/item-assets/v1.0.0/schema.json"}, exts)
}

func TestMigrateDropsRemovedExtensions(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	doc := map[string]any{
		"type":            "Feature",
		"stac_version":    "0.9.0",
		"id":              "scene-1",
		"geometry":        nil,
		"stac_extensions": []any{"commons", "checksum", "sat"},
		"properties":      map[string]any{"datetime": "2019-01-01T00:00:00Z"},
		"links":           []any{},
	}

	out, err := Migrate(doc, identify(t, doc), Options{})
	require.NoError(t, err)

	exts := toStrings(t, out["stac_extensions"])
	assert.Equal(t, []string{"https://stac-extensions.github.io/sat/v1.0.0/schema.json"}, exts)
}

func TestMigrateKeepsUnknownSchemaURIs(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	custom := "https://example.com/custom/v2.0.0/schema.json"
	doc := map[string]any{
		"type":            "Feature",
		"stac_version":    "1.0.0",
		"id":              "scene-1",
		"geometry":        nil,
		"stac_extensions": []any{custom},
		"properties":      map[string]any{"datetime": "2019-01-01T00:00:00Z"},
		"links":           []any{},
	}

	out, err := Migrate(doc, identify(t, doc), Options{})
	require.NoError(t, err)

	exts := toStrings(t, out["stac_extensions"])
	assert.Equal(t, []string{custom}, exts)
}

func TestMigrateUpgradesPriorSchemaURI(t *testing.T) {
	t.Setenv("STAC_VERSION", "")
	doc := map[string]any{
		"type":         "Feature",
		"stac_version": "1.0.0",
		"id":           "scene-1",
		"geometry":     nil,
		"stac_extensions": []any{
			"https://stac-extensions.github.io/eo/v1.0.0/schema.json",
		},
		"properties": map[string]any{"datetime": "2019-01-01T00:00:00Z"},
		"links":      []any{},
	}

	out, err := Migrate(doc, identify(t, doc), Options{})
	require.NoError(t, err)

	exts := toStrings(t, out["stac_extensions"])
	assert.Equal(t, []string{eoSchema}, exts)
}

func toStrings(t *testing.T, v any) []string {
	t.Helper()
	list, ok := v.([]any)
	require.True(t, ok, "expected a list, got %T", v)
	out := make([]string, 0, len(list))
	for _, raw := range list {
		s, ok := raw.(string)
		require.True(t, ok)
		out = append(out, s)
	}
	return out
}
