// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pbf

import "github.com/BenWiederhake/monitor-osm-domains/model"

// ObjectLookup finds an object by (type, id) in a sorted PBF file, using a
// BlockIndex to narrow the search and a BlockCache to avoid re-decoding
// blocks across repeated lookups.
type ObjectLookup struct {
	index *BlockIndex
	cache *BlockCache
}

// NewObjectLookup builds an ObjectLookup over cache, whose underlying
// BlockIndex must be index.
func NewObjectLookup(index *BlockIndex, cache *BlockCache) *ObjectLookup {
	return &ObjectLookup{index: index, cache: cache}
}

// Visit locates needle and, if found, invokes callback with it exactly
// once before returning true. It returns false if the file, read in its
// entirety, does not contain a matching object. A non-nil error indicates
// a fatal decode or I/O failure, not a lookup miss.
func (ol *ObjectLookup) Visit(needle Needle, callback func(model.Entity)) (bool, error) {
	lo, hi := 0, ol.index.Len()
	lo, hi, _, _ = ol.index.BinarySearchGuess(needle, lo, hi)

	for hi-lo >= 2 {
		mid := binsearchMiddle(lo, hi)

		entities, err := ol.cache.read(mid)
		if err != nil {
			return false, err
		}

		if isDefinitelyBefore(needle, ol.index.starts[mid]) {
			hi = mid

			continue
		}

		switch found, overshot := ol.scanBlock(entities, needle, mid, callback); {
		case found:
			return true, nil
		case overshot:
			return false, nil
		default:
			lo = mid + 1
		}
	}

	if lo == hi {
		return false, nil
	}

	entities, err := ol.cache.read(lo)
	if err != nil {
		return false, err
	}

	found, _ := ol.scanBlock(entities, needle, lo, callback)

	return found, nil
}

// scanBlock walks entities, which must be in sorted file order, looking
// for needle. found reports a match (already delivered to callback under
// a borrow); overshot reports that an entity greater than needle was
// encountered, proving needle cannot exist anywhere in the file.
func (ol *ObjectLookup) scanBlock(entities []model.Entity, needle Needle, blockIndex int, callback func(model.Entity)) (found, overshot bool) {
	for _, e := range entities {
		en := entityNeedle(e)

		switch compareNeedle(needle, en.Type, en.ID) {
		case 0:
			ol.cache.borrow(blockIndex)
			callback(e)
			ol.cache.release(blockIndex)

			return true, false
		case -1:
			return false, true
		}
	}

	return false, false
}
