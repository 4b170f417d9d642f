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
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// unpopulatedStarts builds n descriptors, none of them populated yet -
// the state BinarySearchGuess sees right after BlobFramer has run but
// before any block has been decoded.
func unpopulatedStarts(n int) []BlockStart {
	starts := make([]BlockStart, n)
	for i := range starts {
		starts[i] = BlockStart{FileOffset: int64(i)}
	}

	return starts
}

func TestBinarySearchGuess_EmptyInterval(t *testing.T) {
	bi := &BlockIndex{starts: unpopulatedStarts(4)}

	_, _, _, ok := bi.BinarySearchGuess(Needle{Type: model.NODE, ID: 1}, 2, 2)
	assert.False(t, ok)
}

func TestBinarySearchGuess_AllUnpopulated_BlindGuess(t *testing.T) {
	bi := &BlockIndex{starts: unpopulatedStarts(10)}

	lo, hi, candidate, ok := bi.BinarySearchGuess(Needle{Type: model.NODE, ID: 1500}, 0, 10)

	assert.True(t, ok)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 10, hi)
	assert.Equal(t, binsearchMiddle(0, 10), candidate)
}

func TestBinarySearchGuess_NeedleBeforeFirst(t *testing.T) {
	starts := unpopulatedStarts(4)
	starts[0] = BlockStart{Populated: true, FirstType: model.NODE, FirstID: 100}

	bi := &BlockIndex{starts: starts}

	_, _, _, ok := bi.BinarySearchGuess(Needle{Type: model.NODE, ID: 1}, 0, 1)
	assert.False(t, ok)
}

func TestBinarySearchGuess_NarrowsAroundPopulatedDescriptors(t *testing.T) {
	// Five blocks, descriptors 0 and 4 populated with known first items;
	// needle sits strictly between them.
	starts := unpopulatedStarts(5)
	starts[0] = BlockStart{Populated: true, FirstType: model.NODE, FirstID: 1}
	starts[4] = BlockStart{Populated: true, FirstType: model.NODE, FirstID: 1000}

	bi := &BlockIndex{starts: starts}

	lo, hi, _, ok := bi.BinarySearchGuess(Needle{Type: model.NODE, ID: 500}, 0, 5)

	assert.True(t, ok)
	assert.GreaterOrEqual(t, lo, 0)
	assert.LessOrEqual(t, hi, 5)
	assert.Less(t, lo, hi)
}

func TestBinarySearchGuess_EqualFirstItemIncludesBlock(t *testing.T) {
	starts := []BlockStart{
		{Populated: true, FirstType: model.NODE, FirstID: 5},
	}

	bi := &BlockIndex{starts: starts}

	lo, hi, candidate, ok := bi.BinarySearchGuess(Needle{Type: model.NODE, ID: 5}, 0, 1)

	assert.True(t, ok)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 1, hi)
	assert.Equal(t, 0, candidate)
}
