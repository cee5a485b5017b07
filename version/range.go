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

// Range is a closed interval of STAC versions. It starts as the widest
// plausible interval for a document and narrows as structural evidence
// accumulates; SetMin and SetMax only ever tighten it.
type Range struct {
	min ID
	max ID
}

func NewRange(min, max ID) Range {
	return Range{min: min, max: max}
}

// SingleRange is the degenerate interval for a document that declares
// its version explicitly.
func SingleRange(v ID) Range {
	return Range{min: v, max: v}
}

func (r *Range) Min() ID { return r.min }
func (r *Range) Max() ID { return r.max }

// SetMin raises the lower bound. Lower values are ignored; values above
// the upper bound clamp to it.
func (r *Range) SetMin(v ID) {
	if v.GreaterThan(r.min) {
		if v.GreaterThan(r.max) {
			r.min = r.max
			return
		}
		r.min = v
	}
}

// SetMax lowers the upper bound. Higher values are ignored; values below
// the lower bound clamp to it.
func (r *Range) SetMax(v ID) {
	if v.LessThan(r.max) {
		if v.LessThan(r.min) {
			r.max = r.min
			return
		}
		r.max = v
	}
}

// LatestValid is the newest version the document could be.
func (r *Range) LatestValid() ID {
	return r.max
}

// IsSingleVersion reports whether evidence narrowed the range to one
// exact version.
func (r *Range) IsSingleVersion() bool {
	return r.min.Equal(r.max)
}

func (r *Range) Contains(v ID) bool {
	return !v.LessThan(r.min) && !v.GreaterThan(r.max)
}
