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

func TestLocationResolver_Node(t *testing.T) {
	lookup := newTestLookup(nil)
	resolver := NewLocationResolver(lookup)

	node := &model.Node{ID: 1, Lon: 7.5, Lat: 51.5}

	pt, ok, backrefs, err := resolver.Resolve(node)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, backrefs)
	assert.Equal(t, Point{Lon: 7.5, Lat: 51.5}, pt)
}

func TestLocationResolver_WayResolution(t *testing.T) {
	lookup := newTestLookup([][]model.Entity{
		{&model.Node{ID: 10, Lon: 1, Lat: 2}, &model.Node{ID: 11, Lon: 3, Lat: 4}},
	})
	resolver := NewLocationResolver(lookup)

	way := &model.Way{ID: 100, NodeIDs: []model.ID{9, 10, 11}}

	pt, ok, backrefs, err := resolver.Resolve(way)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, backrefs) // node 9 misses, node 10 hits
	assert.Equal(t, Point{Lon: 1, Lat: 2}, pt)
}

func TestLocationResolver_WayAllNodesUnresolvable(t *testing.T) {
	lookup := newTestLookup(nil)
	resolver := NewLocationResolver(lookup)

	way := &model.Way{ID: 100, NodeIDs: []model.ID{9, 10}}

	_, ok, backrefs, err := resolver.Resolve(way)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, backrefs)
}

func TestLocationResolver_RelationOverrideSkipsLookup(t *testing.T) {
	lookup := newTestLookup(nil)
	resolver := NewLocationResolver(lookup)

	rel := &model.Relation{ID: 20828}

	pt, ok, backrefs, err := resolver.Resolve(rel)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, backrefs)
	assert.Equal(t, overriddenRelations[20828], pt)
}

func TestLocationResolver_RelationRecursion(t *testing.T) {
	lookup := newTestLookup([][]model.Entity{
		{&model.Node{ID: 50, Lon: 8, Lat: 9}},
	})
	resolver := NewLocationResolver(lookup)

	rel := &model.Relation{
		ID: 999999, // not in the override table
		Members: []model.Member{
			{Type: model.NODE, ID: 48},
			{Type: model.NODE, ID: 49},
			{Type: model.NODE, ID: 50},
		},
	}

	pt, ok, backrefs, err := resolver.Resolve(rel)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 3, backrefs)
	assert.Equal(t, Point{Lon: 8, Lat: 9}, pt)
}

func TestLocationResolver_RelationPrefersNodesOverWaysOverRelations(t *testing.T) {
	lookup := newTestLookup([][]model.Entity{
		{
			&model.Node{ID: 70, Lon: 5, Lat: 6},
			&model.Node{ID: 80, Lon: 1, Lat: 1},
			&model.Way{ID: 60, NodeIDs: []model.ID{70}},
		},
	})
	resolver := NewLocationResolver(lookup)

	rel := &model.Relation{
		ID: 888888,
		Members: []model.Member{
			{Type: model.WAY, ID: 60},
			{Type: model.NODE, ID: 80},
		},
	}

	pt, ok, _, err := resolver.Resolve(rel)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, Point{Lon: 1, Lat: 1}, pt)
}

func TestLocationResolver_UnresolvableEverywhere(t *testing.T) {
	lookup := newTestLookup(nil)
	resolver := NewLocationResolver(lookup)

	rel := &model.Relation{
		ID:      777777,
		Members: []model.Member{{Type: model.NODE, ID: 1}},
	}

	_, ok, _, err := resolver.Resolve(rel)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestLocationResolver_ResolvePanicsOnUnknownType(t *testing.T) {
	lookup := newTestLookup(nil)
	resolver := NewLocationResolver(lookup)

	assert.Panics(t, func() {
		resolver.resolve(model.Node{ID: 1}, new(int))
	})
}
