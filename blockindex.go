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
	"fmt"
	"io"
	"os"

	"github.com/BenWiederhake/monitor-osm-domains/internal/codec"
	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// BlockIndex owns the open file descriptor and the vector of block
// descriptors built by the one-time sequential BlobFramer pass. It is not
// safe for concurrent use: GetParsedBlock mutates both the file cursor and
// the descriptor it reads.
type BlockIndex struct {
	file   *os.File
	header model.Header
	starts []BlockStart
}

// OpenBlockIndex opens path and runs the BlobFramer pass over it, building
// an index of every OSMData block without decompressing any of them.
func OpenBlockIndex(path string) (*BlockIndex, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pbf: open %s: %w", path, err)
	}

	starts, header, err := frameFile(f)
	if err != nil {
		f.Close()

		return nil, err
	}

	return &BlockIndex{file: f, header: header, starts: starts}, nil
}

// Close releases the underlying file descriptor.
func (bi *BlockIndex) Close() error {
	return bi.file.Close()
}

// Len returns the number of OSMData block descriptors.
func (bi *BlockIndex) Len() int {
	return len(bi.starts)
}

// Header returns the file's decoded OSMHeader block.
func (bi *BlockIndex) Header() model.Header {
	return bi.header
}

// GetParsedBlock seeks to, reads, and decompresses block i, returning the
// entities it contains in file order. If the descriptor was not yet
// populated, its first_item fields are set from the first entity.
//
// Not safe to call concurrently with itself or with any other BlockIndex
// method: it mutates the file cursor.
func (bi *BlockIndex) GetParsedBlock(i int) ([]model.Entity, error) {
	bs := &bi.starts[i]

	if _, err := bi.file.Seek(bs.FileOffset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("pbf: seek to block %d: %w", i, err)
	}

	raw := make([]byte, bs.Datasize)

	if _, err := io.ReadFull(bi.file, raw); err != nil {
		return nil, fmt.Errorf("pbf: read block %d: %w", i, err)
	}

	entities, err := codec.DecodeDataBlock(raw)
	if err != nil {
		return nil, fmt.Errorf("pbf: decode block %d: %w", i, err)
	}

	if !bs.Populated && len(entities) > 0 {
		first := entityNeedle(entities[0])
		bs.FirstType = first.Type
		bs.FirstID = first.ID
		bs.Populated = true
	}

	return entities, nil
}

// BinarySearchGuess narrows the half-open interval [lo, hi) of descriptor
// indices that might contain needle, consulting only already-populated
// descriptors — it performs no I/O. It proceeds in three stages: an
// optimistic binary search over populated descriptors, a linear
// refinement over whatever remains, and — if the remaining interval is
// still ambiguous — a blind guess at its midpoint.
//
// It returns the narrowed interval together with a candidate block index
// worth examining. ok is false iff the interval is empty or the needle is
// already known to be absent from the file.
func (bi *BlockIndex) BinarySearchGuess(needle Needle, lo, hi int) (newLo, newHi, candidate int, ok bool) {
	n := len(bi.starts)
	if hi > n {
		hi = n
	}

	if lo >= hi {
		return lo, hi, n, false
	}

	// Stage 1: optimistic binary search.
	for {
		if lo == hi-1 {
			if isDefinitelyBefore(needle, bi.starts[lo]) {
				return lo, lo, n, false
			}

			return lo, hi, lo, true
		}

		mid := binsearchMiddle(lo, hi)

		bs := bi.starts[mid]
		if !bs.Populated {
			break
		}

		if isDefinitelyBefore(needle, bs) {
			hi = mid
		} else {
			lo = mid
		}
	}

	// Stage 2: linear refinement over the remaining, still-ambiguous interval.
	for mid := lo; mid < hi; mid++ {
		bs := bi.starts[mid]
		if !bs.Populated {
			continue
		}

		if isDefinitelyBefore(needle, bs) {
			hi = mid

			break
		}

		lo = mid
	}

	switch {
	case lo == hi:
		return lo, hi, n, false
	case lo == hi-1:
		return lo, hi, lo, true
	default:
		// Stage 3: blind guess, the interval is fully unpopulated.
		return lo, hi, binsearchMiddle(lo, hi), true
	}
}
