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

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// newTestLookup builds an ObjectLookup over blocks whose decoded entities
// are supplied directly, bypassing any file I/O. Each argument is one
// block's entities, in file order; the index's descriptors are derived
// from the first entity of each non-empty block.
func newTestLookup(blocks [][]model.Entity) *ObjectLookup {
	starts := make([]BlockStart, len(blocks))
	entries := make(map[int]*cacheEntry, len(blocks))

	for i, entities := range blocks {
		entries[i] = &cacheEntry{entities: entities}

		if len(entities) > 0 {
			first := EntityNeedle(entities[0])
			starts[i] = BlockStart{Populated: true, FirstType: first.Type, FirstID: first.ID}
		}
	}

	index := &BlockIndex{starts: starts}
	cache := &BlockCache{
		index:   index,
		ideal:   1 << 30, // never prune during these tests
		entries: entries,
		rng:     rand.New(rand.NewSource(1)),
	}

	return NewObjectLookup(index, cache)
}

func nodes(ids ...model.ID) []model.Entity {
	out := make([]model.Entity, len(ids))
	for i, id := range ids {
		out[i] = &model.Node{ID: id}
	}

	return out
}

func TestObjectLookup_MinimalHit(t *testing.T) {
	lookup := newTestLookup([][]model.Entity{nodes(1, 2, 5)})

	var got model.Entity
	found, err := lookup.Visit(Needle{Type: model.NODE, ID: 2}, func(e model.Entity) { got = e })
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.ID(2), got.GetID())

	found, err = lookup.Visit(Needle{Type: model.NODE, ID: 3}, func(model.Entity) {})
	assert.NoError(t, err)
	assert.False(t, found)

	found, err = lookup.Visit(Needle{Type: model.NODE, ID: 5}, func(model.Entity) {})
	assert.NoError(t, err)
	assert.True(t, found)
}

func TestObjectLookup_CrossBlock(t *testing.T) {
	blockA := make([]model.Entity, 1000)
	for i := range blockA {
		blockA[i] = &model.Node{ID: model.ID(i + 1)}
	}

	blockB := make([]model.Entity, 1000)
	for i := range blockB {
		blockB[i] = &model.Node{ID: model.ID(i + 1001)}
	}

	lookup := newTestLookup([][]model.Entity{blockA, blockB})

	var got model.Entity
	found, err := lookup.Visit(Needle{Type: model.NODE, ID: 1500}, func(e model.Entity) { got = e })
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, model.ID(1500), got.GetID())
}

func TestObjectLookup_EmptyIndex(t *testing.T) {
	lookup := newTestLookup(nil)

	found, err := lookup.Visit(Needle{Type: model.NODE, ID: 1}, func(model.Entity) {})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestObjectLookup_SmallerThanEverything(t *testing.T) {
	lookup := newTestLookup([][]model.Entity{nodes(10, 20, 30)})

	found, err := lookup.Visit(Needle{Type: model.NODE, ID: 1}, func(model.Entity) {})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestObjectLookup_LargerThanEverything(t *testing.T) {
	lookup := newTestLookup([][]model.Entity{nodes(10, 20, 30)})

	found, err := lookup.Visit(Needle{Type: model.NODE, ID: 100}, func(model.Entity) {})
	assert.NoError(t, err)
	assert.False(t, found)
}

func TestObjectLookup_RepeatedVisitAgrees(t *testing.T) {
	lookup := newTestLookup([][]model.Entity{nodes(1, 2, 3), nodes(4, 5, 6)})

	for i := 0; i < 2; i++ {
		found, err := lookup.Visit(Needle{Type: model.NODE, ID: 5}, func(model.Entity) {})
		assert.NoError(t, err)
		assert.True(t, found)
	}
}
