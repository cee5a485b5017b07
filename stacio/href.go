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
	"net/url"
	"path"
	"strings"
)

// IsAbsoluteHref reports whether href is a URL or an absolute path.
func IsAbsoluteHref(href string) bool {
	return IsURL(href) || strings.HasPrefix(href, "/")
}

// Dir returns the directory portion of an href, without a trailing
// slash. URLs and POSIX paths are handled identically.
func Dir(href string) string {
	if u, err := url.Parse(href); err == nil && u.Scheme != "" {
		u.Path = path.Dir(u.Path)
		u.RawQuery = ""
		u.Fragment = ""
		return strings.TrimSuffix(u.String(), "/")
	}
	d := path.Dir(href)
	if d == "." {
		return ""
	}
	return d
}

// JoinPath joins href segments with '/' and normalizes any ".."
// components, preserving a URL scheme and host if present.
func JoinPath(base string, parts ...string) string {
	if u, err := url.Parse(base); err == nil && u.Scheme != "" {
		u.Path = path.Join(append([]string{u.Path}, parts...)...)
		return u.String()
	}
	return path.Join(append([]string{base}, parts...)...)
}

// MakeAbsoluteHref resolves href against the document located at base.
// Absolute hrefs are returned unchanged; relative hrefs resolve against
// base's directory.
func MakeAbsoluteHref(href, base string) string {
	if href == "" || base == "" || IsAbsoluteHref(href) {
		return href
	}
	return JoinPath(Dir(base), href)
}

// MakeRelativeHref rewrites href relative to the document located at
// base. If the two share no common prefix the href is returned as is.
func MakeRelativeHref(href, base string) string {
	if href == "" || base == "" {
		return href
	}
	hu, herr := url.Parse(href)
	bu, berr := url.Parse(base)
	if herr != nil || berr != nil {
		return href
	}
	if hu.Scheme != bu.Scheme || hu.Host != bu.Host {
		return href
	}

	hrefPath := hu.Path
	basePath := bu.Path
	if hu.Scheme == "" {
		hrefPath = href
		basePath = base
	}

	baseDir := path.Dir(basePath)
	hrefSegments := strings.Split(path.Clean(hrefPath), "/")
	baseSegments := strings.Split(path.Clean(baseDir), "/")

	common := 0
	for common < len(hrefSegments)-1 && common < len(baseSegments) &&
		hrefSegments[common] == baseSegments[common] {
		common++
	}

	var rel []string
	for i := common; i < len(baseSegments); i++ {
		if baseSegments[i] != "." && baseSegments[i] != "" {
			rel = append(rel, "..")
		}
	}
	rel = append(rel, hrefSegments[common:]...)
	out := strings.Join(rel, "/")
	if !strings.HasPrefix(out, ".") && !strings.HasPrefix(out, "/") {
		out = "./" + out
	}
	return out
}
