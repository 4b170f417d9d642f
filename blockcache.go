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
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mathrand "math/rand"

	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// DefaultIdealCacheSize is the number of decoded blocks the cache tries to
// hold at steady state. At roughly 120 KiB-8 MiB of decoded entities per
// block, this targets a multi-GiB memory budget on national-extract-sized
// inputs.
const DefaultIdealCacheSize = 2048

// pruneLoadFactor is the multiple of the ideal size at which a pruning
// pass runs.
const pruneLoadFactor = 1.5

type cacheEntry struct {
	borrowCount int
	entities    []model.Entity
}

// BlockCache wraps a BlockIndex with a bounded, randomly-evicting cache of
// decoded blocks and a borrow/release reference-counting protocol that
// keeps a block pinned for as long as a caller holds a pointer into it.
type BlockCache struct {
	index   *BlockIndex
	ideal   int
	entries map[int]*cacheEntry
	rng     *mathrand.Rand
}

// NewBlockCache creates a cache over index targeting ideal decoded blocks
// at steady state.
func NewBlockCache(index *BlockIndex, ideal int) *BlockCache {
	return &BlockCache{
		index:   index,
		ideal:   ideal,
		entries: make(map[int]*cacheEntry),
		rng:     mathrand.New(mathrand.NewSource(randomSeed())),
	}
}

// randomSeed reads a seed from the OS's CSPRNG. The cache's eviction order
// is not security-sensitive; this just avoids a fixed, predictable seed.
func randomSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 1
	}

	return int64(binary.LittleEndian.Uint64(b[:])) //nolint:gosec
}

// prune runs the cache's eviction pass if its size has crossed the load
// factor, shuffling unborrowed, non-avoided entries and removing them
// until the cache is back down to its ideal size. Pinned (borrowed)
// entries are never evicted, so the cache may stay above ideal while many
// borrows are outstanding.
func (c *BlockCache) prune(avoid int) {
	if len(c.entries) < int(float64(c.ideal)*pruneLoadFactor) {
		return
	}

	evictable := make([]int, 0, len(c.entries))

	for i, e := range c.entries {
		if e.borrowCount == 0 && i != avoid {
			evictable = append(evictable, i)
		}
	}

	c.rng.Shuffle(len(evictable), func(i, j int) {
		evictable[i], evictable[j] = evictable[j], evictable[i]
	})

	for _, i := range evictable {
		if len(c.entries) <= c.ideal {
			return
		}

		delete(c.entries, i)
	}
}

// read returns the decoded entities of block i, decoding it on demand if
// it is not already cached. It does not affect borrowCount. The returned
// slice is only valid until the next cache mutation for block i.
func (c *BlockCache) read(i int) ([]model.Entity, error) {
	c.prune(i)

	e, ok := c.entries[i]
	if !ok || len(e.entities) == 0 {
		entities, err := c.index.GetParsedBlock(i)
		if err != nil {
			return nil, err
		}

		e = &cacheEntry{entities: entities}
		c.entries[i] = e
	}

	return e.entities, nil
}

// borrow increments the borrow count of block i, pinning it against
// eviction. The caller must have already confirmed block i is in the
// cache (e.g. via a preceding read).
func (c *BlockCache) borrow(i int) {
	e, ok := c.entries[i]
	if !ok {
		panic(fmt.Sprintf("pbf: borrow of uncached block %d", i))
	}

	e.borrowCount++
}

// release decrements the borrow count of block i.
func (c *BlockCache) release(i int) {
	e, ok := c.entries[i]
	if !ok || e.borrowCount == 0 {
		panic(fmt.Sprintf("pbf: unbalanced release of block %d", i))
	}

	e.borrowCount--
}

// Size reports the number of blocks currently cached, populated or not.
func (c *BlockCache) Size() int {
	return len(c.entries)
}
