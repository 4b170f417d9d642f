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

// Package pbf is a random-access reader for sorted OSM PBF files: given a
// (type, id) pair it can fetch the matching node, way, or relation without
// decoding the whole file, by keeping a small index of block boundaries and
// a bounded cache of decoded blocks.
package pbf

import "github.com/BenWiederhake/monitor-osm-domains/model"

// Needle is the (type, id) pair an ObjectLookup or BlockIndex search is
// looking for.
type Needle struct {
	Type model.EntityType
	ID   model.ID
}

// BlockStart describes one OSMData block: where its body lives in the file
// and, once known, the identity of the smallest object it contains. Blocks
// are populated lazily, on first decode.
type BlockStart struct {
	FileOffset int64
	Datasize   int32
	Populated  bool
	FirstType  model.EntityType
	FirstID    model.ID
}

// compareNeedle orders a needle against a (type, id) pair using the file's
// sort order: type first, then id ascending.
func compareNeedle(needle Needle, t model.EntityType, id model.ID) int {
	switch {
	case needle.Type < t:
		return -1
	case needle.Type > t:
		return 1
	case needle.ID < id:
		return -1
	case needle.ID > id:
		return 1
	default:
		return 0
	}
}

// isDefinitelyBefore reports whether bs is known, from its populated first
// item, to sort strictly after needle — i.e. needle cannot be in bs or any
// later block.
func isDefinitelyBefore(needle Needle, bs BlockStart) bool {
	if !bs.Populated {
		return false
	}

	return compareNeedle(needle, bs.FirstType, bs.FirstID) < 0
}

// binsearchMiddle returns an index strictly inside [lo, hi) when hi-lo >= 2.
func binsearchMiddle(lo, hi int) int {
	return lo + (hi-lo)/2
}

// entityNeedle extracts the (type, id) pair identifying e.
func entityNeedle(e model.Entity) Needle {
	return EntityNeedle(e)
}

// EntityNeedle extracts the (type, id) pair identifying e. It panics if e
// is not one of *model.Node, *model.Way, or *model.Relation, which are the
// only concrete types the codec package ever produces.
func EntityNeedle(e model.Entity) Needle {
	switch v := e.(type) {
	case *model.Node:
		return Needle{Type: model.NODE, ID: v.ID}
	case *model.Way:
		return Needle{Type: model.WAY, ID: v.ID}
	case *model.Relation:
		return Needle{Type: model.RELATION, ID: v.ID}
	default:
		panic("pbf: entity of unrecognized concrete type")
	}
}
