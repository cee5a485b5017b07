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

// decodeCommon fills the shared fields of a STAC object from a decoded
// document. typed claims type-specific keys; anything unclaimed lands in
// ExtraFields so unknown fields survive a round trip.
func decodeCommon(b *Base, m map[string]any, typed func(k string, v any) bool) error {
	for k, v := range m {
		switch k {
		case "type":
			// the discriminator is implied by the Go type
		case "id":
			b.ID, _ = v.(string)
		case "stac_version":
			b.StacVersion, _ = v.(string)
		case "stac_extensions":
			b.Extensions = toStringSlice(v)
			if b.Extensions == nil {
				b.Extensions = []string{}
			}
		case "links":
			if list, ok := v.([]any); ok {
				for _, raw := range list {
					if lm, ok := raw.(map[string]any); ok {
						b.AddLink(linkFromMap(lm))
					}
				}
			}
		default:
			if !typed(k, v) {
				b.ExtraFields[k] = v
			}
		}
	}
	return nil
}

// encodeCommon writes the shared fields back out. Links keep their
// stored hrefs; Save rewrites them according to its mode.
func encodeCommon(b *Base, kind ObjectType) map[string]any {
	m := map[string]any{
		"type": string(kind),
		"id":   b.ID,
	}
	if b.StacVersion != "" {
		m["stac_version"] = b.StacVersion
	}
	if b.Extensions != nil {
		m["stac_extensions"] = toAnySlice(b.Extensions)
	}
	links := make([]any, 0, len(b.links))
	for _, l := range b.links {
		links = append(links, l.toMap(""))
	}
	m["links"] = links
	for k, v := range b.ExtraFields {
		m[k] = v
	}
	return m
}

func toStringSlice(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(list))
	for _, raw := range list {
		if s, ok := raw.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func toAnySlice(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

func toFloatSlice(v any) []float64 {
	list, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]float64, 0, len(list))
	for _, raw := range list {
		if f, ok := raw.(float64); ok {
			out = append(out, f)
		}
	}
	return out
}
