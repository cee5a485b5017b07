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

package stac

import (
	"fmt"
)

// ValidationResult is one schema failure reported by a Validator.
type ValidationResult struct {
	Schema  string
	Message string
}

// Validator checks a fully-migrated document against the core schema
// for its type/version and each extension schema URI. Implementations
// are external; this package only assembles their inputs.
type Validator interface {
	Validate(doc map[string]any, objectType ObjectType, stacVersion string, extensionURIs []string, href string) ([]ValidationResult, error)
}

// STACValidationError carries the underlying schema failures for a
// document that did not validate.
type STACValidationError struct {
	Href   string
	ID     string
	Source []ValidationResult
}

func (e *STACValidationError) Error() string {
	return fmt.Sprintf("validation failed for %q (href %q): %d schema error(s)",
		e.ID, e.Href, len(e.Source))
}

// Validate runs obj through v, supplying the migrated document, its
// declared extension schema URIs, and its location.
func Validate(obj Object, v Validator) error {
	m, err := obj.ToMap()
	if err != nil {
		return err
	}
	b := obj.Common()
	results, err := v.Validate(m, obj.Kind(), b.StacVersion, b.Extensions, b.SelfHref())
	if err != nil {
		return err
	}
	if len(results) > 0 {
		return &STACValidationError{Href: b.SelfHref(), ID: b.ID, Source: results}
	}
	return nil
}
