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

package layout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-geospatial/go-stac-catalog/stac"
	"github.com/go-geospatial/go-stac-catalog/stacio"
)

// TemplateError reports a template variable that could not be resolved
// against an object and had no configured default.
type TemplateError struct {
	Variable string
	ObjectID string
	Template string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("no value for ${%s} in template %q for object %q",
		e.Variable, e.Template, e.ObjectID)
}

var templateVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// LayoutTemplate substitutes ${var} placeholders out of a template
// string. Variables may be namespaced ("eo:cloud_cover") or dotted
// paths ("properties.datetime"). Each variable resolves, in order,
// against item-derived values (year/month/day/date from the datetime,
// falling back to start_datetime, and collection), the object's own
// attributes, its properties, and its extra fields; a configured
// default applies only when all of those miss.
type LayoutTemplate struct {
	template string
	vars     []string
	defaults map[string]string
}

func NewTemplate(template string) *LayoutTemplate {
	t := &LayoutTemplate{template: template}
	for _, match := range templateVarPattern.FindAllStringSubmatch(template, -1) {
		t.vars = append(t.vars, match[1])
	}
	return t
}

// WithDefaults sets fallback values per variable name.
func (t *LayoutTemplate) WithDefaults(defaults map[string]string) *LayoutTemplate {
	t.defaults = defaults
	return t
}

// Substitute resolves every placeholder against obj.
func (t *LayoutTemplate) Substitute(obj stac.Object) (string, error) {
	out := t.template
	for _, name := range t.vars {
		value, ok := t.lookup(obj, name)
		if !ok {
			if def, hasDefault := t.defaults[name]; hasDefault {
				value = def
			} else {
				return "", &TemplateError{Variable: name, ObjectID: obj.Common().ID, Template: t.template}
			}
		}
		out = strings.ReplaceAll(out, "${"+name+"}", value)
	}
	return out, nil
}

func (t *LayoutTemplate) lookup(obj stac.Object, name string) (string, bool) {
	if item, ok := obj.(*stac.Item); ok {
		if v, ok := itemDerivedVar(item, name); ok {
			return v, true
		}
	}
	if v, ok := attributeVar(obj, name); ok {
		return v, true
	}
	if item, ok := obj.(*stac.Item); ok {
		if v, ok := pathLookup(item.Properties, name); ok {
			return formatValue(v), true
		}
	}
	if v, ok := pathLookup(obj.Common().ExtraFields, name); ok {
		return formatValue(v), true
	}
	return "", false
}

// itemDerivedVar computes the date-derived variables and the
// collection id available only on items. Month and day substitute
// unpadded.
func itemDerivedVar(item *stac.Item, name string) (string, bool) {
	switch name {
	case "year", "month", "day", "date":
		dt, ok := item.Datetime()
		if !ok {
			return "", false
		}
		switch name {
		case "year":
			return fmt.Sprintf("%d", dt.Year()), true
		case "month":
			return fmt.Sprintf("%d", int(dt.Month())), true
		case "day":
			return fmt.Sprintf("%d", dt.Day()), true
		default:
			return dt.Format("2006-01-02"), true
		}
	case "collection":
		if id := item.CollectionID(); id != "" {
			return id, true
		}
		return "", false
	}
	return "", false
}

func attributeVar(obj stac.Object, name string) (string, bool) {
	switch name {
	case "id":
		return obj.Common().ID, true
	case "type":
		return string(obj.Kind()), true
	}
	return "", false
}

// pathLookup traverses m by splitting name on '.'; namespaced keys like
// "eo:cloud_cover" are plain map keys.
func pathLookup(m map[string]any, name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	parts := strings.Split(name, ".")
	var cur any = m
	for _, part := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func formatValue(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}

// HrefFor substitutes the template under parentDir. A result without a
// .json filename is treated as a directory and completed with the
// best-practices filename for the object's kind.
func (t *LayoutTemplate) HrefFor(obj stac.Object, parentDir string, isRoot bool) (string, error) {
	sub, err := t.Substitute(obj)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(sub, ".json") {
		switch obj.Kind() {
		case stac.CatalogType:
			sub = stacio.JoinPath(sub, catalogFile)
		case stac.CollectionType:
			sub = stacio.JoinPath(sub, collectionFile)
		case stac.ItemType:
			sub = stacio.JoinPath(sub, obj.Common().ID+".json")
		}
	}
	return stacio.JoinPath(parentDir, sub), nil
}
