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

// Package version identifies the schema version and declared extensions
// of a raw STAC document. STAC version strings predate semver ("0.6",
// "v0.9.0", "1.0.0-beta.2"), so the comparator here tolerates missing
// segments and orders pre-release suffixes before their releases.
package version

import (
	"strconv"
	"strings"
)

// ID is an ordered STAC version identifier.
type ID struct {
	raw     string
	release [3]int
	pre     string
}

// ParseID parses a STAC version string. Unparseable numeric segments are
// treated as zero; a leading "v" is ignored.
func ParseID(s string) ID {
	id := ID{raw: s}
	v := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if i := strings.IndexAny(v, "-+"); i >= 0 {
		if v[i] == '-' {
			id.pre = v[i+1:]
		}
		v = v[:i]
	}
	for i, part := range strings.SplitN(v, ".", 3) {
		n, err := strconv.Atoi(part)
		if err != nil {
			break
		}
		id.release[i] = n
	}
	return id
}

func (a ID) String() string {
	return a.raw
}

// Compare returns -1, 0 or 1. A release orders after its own
// pre-releases ("1.0.0-rc.1" < "1.0.0"); pre-release segments compare
// numerically when both are numeric.
func (a ID) Compare(b ID) int {
	for i := 0; i < 3; i++ {
		if a.release[i] != b.release[i] {
			if a.release[i] < b.release[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case a.pre == b.pre:
		return 0
	case a.pre == "":
		return 1
	case b.pre == "":
		return -1
	}
	return comparePre(a.pre, b.pre)
}

func comparePre(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aNum := strconv.Atoi(as[i])
		bn, bNum := strconv.Atoi(bs[i])
		switch {
		case aNum == nil && bNum == nil:
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
		case aNum == nil:
			// numeric identifiers order before alphanumeric
			return -1
		case bNum == nil:
			return 1
		default:
			if c := strings.Compare(as[i], bs[i]); c != 0 {
				return c
			}
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}

func (a ID) LessThan(b ID) bool    { return a.Compare(b) < 0 }
func (a ID) GreaterThan(b ID) bool { return a.Compare(b) > 0 }
func (a ID) Equal(b ID) bool       { return a.Compare(b) == 0 }
