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

package jsonutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObject(t *testing.T) {
	m, err := DecodeObject([]byte(`{"id": "cat", "links": [{"rel": "self"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "cat", m["id"])
}

func TestDecodeObjectRejectsDuplicateKeys(t *testing.T) {
	_, err := DecodeObject([]byte(`{"id": "a", "id": "b"}`))
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "id", dup.Key)
	assert.Equal(t, "$", dup.Path)
}

func TestDecodeObjectRejectsNestedDuplicates(t *testing.T) {
	_, err := DecodeObject([]byte(`{"links": [{"rel": "self", "rel": "root"}]}`))
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "rel", dup.Key)
	assert.Equal(t, "$.links[0]", dup.Path)
}

func TestDeepCopyMapIsIndependent(t *testing.T) {
	orig := map[string]any{
		"properties": map[string]any{"datetime": "2020-01-01T00:00:00Z"},
		"bbox":       []any{0.0, 0.0, 1.0, 1.0},
	}
	clone := DeepCopyMap(orig)
	require.Equal(t, orig, clone)

	clone["properties"].(map[string]any)["datetime"] = "changed"
	clone["bbox"].([]any)[0] = 99.0

	assert.Equal(t, "2020-01-01T00:00:00Z", orig["properties"].(map[string]any)["datetime"])
	assert.Equal(t, 0.0, orig["bbox"].([]any)[0])
}
