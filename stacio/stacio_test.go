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

package stacio

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIOWriteCreatesDirectories(t *testing.T) {
	io := &DefaultIO{}
	dest := filepath.Join(t.TempDir(), "nested", "deeper", "catalog.json")

	require.NoError(t, io.WriteText(dest, `{"id": "cat"}`))

	text, err := io.ReadText(dest)
	require.NoError(t, err)
	assert.Equal(t, `{"id": "cat"}`, text)
}

func TestDefaultIOReadMissingFile(t *testing.T) {
	io := &DefaultIO{}
	_, err := io.ReadText(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestDefaultIOReadsURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": "remote"}`))
	}))
	defer srv.Close()

	io := &DefaultIO{Client: srv.Client()}
	text, err := io.ReadText(srv.URL + "/catalog.json")
	require.NoError(t, err)
	assert.Equal(t, `{"id": "remote"}`, text)
}

func TestDefaultIOReadURLNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	io := &DefaultIO{Client: srv.Client()}
	_, err := io.ReadText(srv.URL + "/missing.json")
	assert.ErrorContains(t, err, "unexpected status")
}

func TestDefaultIORejectsURLWrites(t *testing.T) {
	io := &DefaultIO{}
	err := io.WriteText("https://example.com/catalog.json", "{}")
	assert.ErrorContains(t, err, "not supported")
}
