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

func TestCompareNeedle(t *testing.T) {
	n := Needle{Type: model.WAY, ID: 10}

	assert.Equal(t, 0, compareNeedle(n, model.WAY, 10))
	assert.Equal(t, -1, compareNeedle(n, model.RELATION, 10))
	assert.Equal(t, 1, compareNeedle(n, model.NODE, 10))
	assert.Equal(t, -1, compareNeedle(n, model.WAY, 11))
	assert.Equal(t, 1, compareNeedle(n, model.WAY, 9))
}

func TestIsDefinitelyBefore(t *testing.T) {
	n := Needle{Type: model.WAY, ID: 10}

	assert.False(t, isDefinitelyBefore(n, BlockStart{Populated: false}))
	assert.False(t, isDefinitelyBefore(n, BlockStart{Populated: true, FirstType: model.WAY, FirstID: 10}))
	assert.False(t, isDefinitelyBefore(n, BlockStart{Populated: true, FirstType: model.WAY, FirstID: 9}))
	assert.True(t, isDefinitelyBefore(n, BlockStart{Populated: true, FirstType: model.WAY, FirstID: 11}))
	assert.True(t, isDefinitelyBefore(n, BlockStart{Populated: true, FirstType: model.RELATION, FirstID: 0}))
}

func TestBinsearchMiddle(t *testing.T) {
	tests := []struct {
		lo, hi, want int
	}{
		{0, 2, 1},
		{0, 3, 1},
		{5, 7, 6},
		{3, 10, 6},
	}

	for _, tc := range tests {
		m := binsearchMiddle(tc.lo, tc.hi)
		assert.Equal(t, tc.want, m)
		assert.GreaterOrEqual(t, m, tc.lo)
		assert.Less(t, m, tc.hi)
	}
}

func TestEntityNeedle(t *testing.T) {
	assert.Equal(t, Needle{Type: model.NODE, ID: 5}, EntityNeedle(&model.Node{ID: 5}))
	assert.Equal(t, Needle{Type: model.WAY, ID: 6}, EntityNeedle(&model.Way{ID: 6}))
	assert.Equal(t, Needle{Type: model.RELATION, ID: 7}, EntityNeedle(&model.Relation{ID: 7}))
}

func TestEntityNeedlePanicsOnUnknownType(t *testing.T) {
	assert.Panics(t, func() {
		EntityNeedle(model.Node{ID: 1})
	})
}
