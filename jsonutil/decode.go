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
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// DuplicateKeyError reports a JSON object that carries the same key
// twice. Which value wins is decoder-dependent, so the parse is
// ambiguous and rejected.
type DuplicateKeyError struct {
	Key  string
	Path string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate JSON key %q at %s", e.Key, e.Path)
}

// DecodeObject decodes data into a map, rejecting documents with
// duplicate object keys anywhere in the tree.
func DecodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := checkDuplicates(dec, "$"); err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// checkDuplicates consumes one JSON value from the token stream,
// recursing into containers and tracking the keys seen per object.
func checkDuplicates(dec *json.Decoder, path string) error {
	t, err := dec.Token()
	if err != nil {
		return err
	}
	delim, ok := t.(json.Delim)
	if !ok {
		return nil // scalar
	}

	switch delim {
	case '{':
		seen := make(map[string]bool)
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return err
			}
			key, _ := kt.(string)
			if seen[key] {
				return &DuplicateKeyError{Key: key, Path: path}
			}
			seen[key] = true
			if err := checkDuplicates(dec, path+"."+key); err != nil {
				return err
			}
		}
		_, err = dec.Token() // closing brace
		return err
	case '[':
		for i := 0; dec.More(); i++ {
			if err := checkDuplicates(dec, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
		_, err = dec.Token() // closing bracket
		return err
	}
	return nil
}

// DeepCopyMap clones a decoded JSON document so migrations can rewrite
// it without mutating the caller's copy.
func DeepCopyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch tv := v.(type) {
	case map[string]any:
		return DeepCopyMap(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
