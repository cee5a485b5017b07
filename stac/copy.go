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
	"github.com/go-geospatial/go-stac-catalog/cache"
)

// FullCopy deep-copies obj and everything reachable through its
// resolved links. Every internal cross-link in the copy, hierarchical
// or not, points into the copy: cloning goes through an identity cache
// scoped to this one copy operation, so an object referenced from two
// places resolves to the same cloned instance both times. Unresolved
// links keep their hrefs.
func FullCopy(obj Object) Object {
	return fullCopy(obj, cache.NewIdentity())
}

func fullCopy(obj Object, copied *cache.Identity) Object {
	key := obj.Common().cacheKey()
	if existing, ok := copied.Get(key); ok {
		return existing.(Object)
	}

	clone := obj.Clone()
	// register before re-pointing links so cyclic references terminate
	copied.GetOrCache(key, clone)

	for _, l := range clone.Common().links {
		if l.IsResolved() {
			l.SetTarget(fullCopy(l.Target(), copied))
		}
	}
	return clone
}
