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

// Message is the error/status payload returned by every handler.
type Message struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

const (
	ParameterError   = "ParameterError"
	ServerError      = "InternalServerError"
	NotFoundError    = "NotFound"
	CatalogLoadError = "CatalogLoadError"
)

// Conformance lists the conformance classes this server implements. The
// catalog is served from a static resolved tree, so only the read-only
// classes apply.
var Conformance = []string{
	"https://api.stacspec.org/v1.0.0/core",
	"https://api.stacspec.org/v1.0.0/collections",
	"https://api.stacspec.org/v1.0.0/ogcapi-features",
	"http://www.opengis.net/spec/ogcapi-features-1/1.0/conf/core",
	"http://www.opengis.net/spec/ogcapi-features-1/1.0/conf/geojson",
}
