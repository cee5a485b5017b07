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

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifyExplicitType(t *testing.T) {
	info, err := Identify(map[string]any{
		"type":         "Collection",
		"stac_version": "1.0.0",
		"id":           "sentinel-2",
	})
	require.NoError(t, err)
	assert.Equal(t, CollectionType, info.Type)
	assert.True(t, info.Range.IsSingleVersion())
	assert.Equal(t, "1.0.0", info.Range.LatestValid().String())
}

func TestIdentifyPostRCRequiresType(t *testing.T) {
	_, err := Identify(map[string]any{
		"stac_version": "1.0.0",
		"id":           "no-type",
		"description":  "missing discriminator",
		"links":        []any{},
	})
	var notStac *NotAStacObjectError
	require.ErrorAs(t, err, &notStac)
}

func TestIdentifyUnrecognizedTypeFails(t *testing.T) {
	_, err := Identify(map[string]any{
		"type":         "Sandwich",
		"stac_version": "1.1.0",
	})
	var notStac *NotAStacObjectError
	require.ErrorAs(t, err, &notStac)
	assert.Contains(t, notStac.Reason, "Sandwich")
}

func TestIdentifyLegacyCatalogByShape(t *testing.T) {
	info, err := Identify(map[string]any{
		"id":          "root",
		"description": "a legacy catalog",
		"links":       []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, CatalogType, info.Type)
}

func TestIdentifyLegacyCollectionByExtent(t *testing.T) {
	info, err := Identify(map[string]any{
		"id":          "col",
		"description": "a legacy collection",
		"extent":      []any{-180.0, -90.0, 180.0, 90.0},
		"links":       []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, CollectionType, info.Type)
}

func TestIdentifyLegacyCollectionByLicense(t *testing.T) {
	info, err := Identify(map[string]any{
		"id":          "col",
		"description": "a legacy collection",
		"license":     "CC-BY-4.0",
		"links":       []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, CollectionType, info.Type)
}

func TestIdentifyLegacyItem(t *testing.T) {
	info, err := Identify(map[string]any{
		"type":       "Feature",
		"id":         "scene-1",
		"geometry":   nil,
		"properties": map[string]any{},
		"links":      []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, ItemType, info.Type)
	// list links put the floor at 0.5.0
	assert.Equal(t, "0.5.0", info.Range.Min().String())
	assert.Equal(t, LastPreVersionFieldEra.String(), info.Range.Max().String())
}

func TestIdentifyDictLinksNarrowToOldestEra(t *testing.T) {
	info, err := Identify(map[string]any{
		"type":       "Feature",
		"id":         "scene-1",
		"properties": map[string]any{},
		"links": map[string]any{
			"self": "scene-1.json",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.4.1", info.Range.Max().String())
}

func TestIdentifyDatetimeRangePropertiesNarrowRange(t *testing.T) {
	info, err := Identify(map[string]any{
		"type": "Feature",
		"id":   "scene-1",
		"properties": map[string]any{
			"dtr:start_datetime": "2018-01-01T00:00:00Z",
		},
		"links": map[string]any{},
	})
	require.NoError(t, err)
	assert.Equal(t, "0.4.1", info.Range.Max().String())
	assert.Contains(t, info.Extensions, "datetime-range")
}

func TestIdentifyDeclaredExtensionsWin(t *testing.T) {
	info, err := Identify(map[string]any{
		"type":            "Feature",
		"stac_version":    "0.9.0",
		"id":              "scene-1",
		"stac_extensions": []any{"eo", "view"},
		"properties": map[string]any{
			"proj:epsg": 32633,
		},
		"links": []any{},
	})
	require.NoError(t, err)
	// the declared list is authoritative; proj: is not implied on top
	assert.Equal(t, []string{"eo", "view"}, info.Extensions)
}

func TestIdentifyImpliedExtensionsFromPrefixes(t *testing.T) {
	info, err := Identify(map[string]any{
		"type": "Feature",
		"id":   "scene-1",
		"properties": map[string]any{
			"eo:cloud_cover": 10.0,
			"sar:looks":      2.0,
		},
		"links": []any{},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"eo", "sar"}, info.Extensions)
	// eo: properties only exist from 0.4.1 on
	assert.Equal(t, "0.4.1", info.Range.Min().String())
}

func TestIdentifyStringExtensionField(t *testing.T) {
	info, err := Identify(map[string]any{
		"type":            "Feature",
		"stac_version":    "0.6.0",
		"id":              "scene-1",
		"stac_extensions": "eo",
		"properties":      map[string]any{},
		"links":           []any{},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"eo"}, info.Extensions)
}

func TestIdentifyNotAStacObject(t *testing.T) {
	_, err := Identify(map[string]any{"foo": "bar"})
	var notStac *NotAStacObjectError
	require.ErrorAs(t, err, &notStac)
}
