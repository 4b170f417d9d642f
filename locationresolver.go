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
	"log/slog"

	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// ExpensiveResolutionThreshold is the number of back-references a single
// Resolve call can cross before a warning is logged, flagging the object
// as a candidate for the override table.
const ExpensiveResolutionThreshold = 1000

// Point is a (longitude, latitude) pair in degrees.
type Point struct {
	Lon model.Degrees
	Lat model.Degrees
}

// overriddenRelations maps relation ids whose resolution is known to be
// pathologically expensive (deep or cyclic member graphs) to a
// pre-computed location, short-circuiting LocationResolver entirely.
// Comments record the back-reference count observed before the override
// was added.
var overriddenRelations = map[model.ID]Point{
	20828:    {Lon: 9.424950, Lat: 54.832655},  // 1827 backrefs
	61491:    {Lon: 9.359337, Lat: 54.819907},  // 1149
	181093:   {Lon: 14.222385, Lat: 50.859423}, // 1455
	299546:   {Lon: 9.361681, Lat: 54.816516},  // 1016
	912994:   {Lon: 13.786577, Lat: 48.558202}, // 1732
	2521076:  {Lon: 6.224311, Lat: 51.359232},  // 1334
	2689634:  {Lon: 9.424950, Lat: 54.832655},  // 1309
	3088664:  {Lon: 14.214609, Lat: 53.877682}, // 1314
	7190393:  {Lon: 7.955247, Lat: 47.540841},  // >1000
	7190394:  {Lon: 7.922629, Lat: 47.544431},  // >1000
	9244345:  {Lon: 7.922629, Lat: 47.544431},  // 2391
	9351570:  {Lon: 12.952523, Lat: 47.768681}, // 1740
	9351571:  {Lon: 12.179740, Lat: 47.599290}, // 1302
	9351572:  {Lon: 12.952523, Lat: 47.768681}, // 1741
	11305708: {Lon: 6.224311, Lat: 51.359232},  // 1331
	13971563: {Lon: 7.651894, Lat: 49.044413},  // 1636
}

// LocationResolver reduces an arbitrary OSM entity to a single (lon, lat)
// pair by following member references through an ObjectLookup, preferring
// nodes over ways over relations to bound the cost of any one resolution.
type LocationResolver struct {
	lookup *ObjectLookup
}

// NewLocationResolver builds a LocationResolver driven by lookup.
func NewLocationResolver(lookup *ObjectLookup) *LocationResolver {
	return &LocationResolver{lookup: lookup}
}

// Resolve reduces obj to a point. ok is false if every path was exhausted
// without finding a location; this is not an error, callers should
// substitute a sentinel and warn. backrefs is the number of ObjectLookup
// calls this resolution consumed, for cost reporting. A non-nil error
// indicates a fatal decode or I/O failure surfaced from the underlying
// ObjectLookup.
func (r *LocationResolver) Resolve(obj model.Entity) (pt Point, ok bool, backrefs int, err error) {
	pt, ok, err = r.resolve(obj, &backrefs)
	if err != nil {
		return Point{}, false, backrefs, err
	}

	if backrefs > ExpensiveResolutionThreshold {
		needle := entityNeedle(obj)
		slog.Warn("expensive location resolution",
			"type", needle.Type, "id", needle.ID, "backrefs", backrefs, "resolved", ok, "lon", pt.Lon, "lat", pt.Lat)
	}

	return pt, ok, backrefs, nil
}

// resolve dispatches on obj's concrete type. The default case panics
// rather than returning an unresolved result, because the codec only ever
// produces *model.Node, *model.Way, or *model.Relation — reaching it would
// mean the decoder handed back something else, the same invariant
// EntityNeedle enforces.
func (r *LocationResolver) resolve(obj model.Entity, backrefs *int) (Point, bool, error) {
	switch v := obj.(type) {
	case *model.Node:
		return Point{Lon: v.Lon, Lat: v.Lat}, true, nil
	case *model.Way:
		return r.resolveWay(v, backrefs)
	case *model.Relation:
		return r.resolveRelation(v, backrefs)
	default:
		panic("pbf: entity of unrecognized concrete type")
	}
}

// resolveWay returns the location of its first node reference that
// resolves successfully.
func (r *LocationResolver) resolveWay(w *model.Way, backrefs *int) (Point, bool, error) {
	for _, nodeID := range w.NodeIDs {
		pt, ok, err := r.lookupAndResolve(model.NODE, nodeID, backrefs)
		if err != nil {
			return Point{}, false, err
		}

		if ok {
			return pt, true, nil
		}
	}

	return Point{}, false, nil
}

// resolveRelation consults the override table first, then descends its
// members in three passes — nodes, then ways, then relations — returning
// the first location found. It does not guard against cyclic member
// graphs; the override table is the intended defense against cycles that
// would otherwise run away.
func (r *LocationResolver) resolveRelation(rel *model.Relation, backrefs *int) (Point, bool, error) {
	if pt, ok := overriddenRelations[rel.ID]; ok {
		return pt, true, nil
	}

	for _, wantType := range [...]model.EntityType{model.NODE, model.WAY, model.RELATION} {
		for _, member := range rel.Members {
			if member.Type != wantType {
				continue
			}

			pt, ok, err := r.lookupAndResolve(member.Type, member.ID, backrefs)
			if err != nil {
				return Point{}, false, err
			}

			if ok {
				return pt, true, nil
			}
		}
	}

	return Point{}, false, nil
}

// lookupAndResolve performs one ObjectLookup back-reference and, if
// found, recurses into resolve.
func (r *LocationResolver) lookupAndResolve(t model.EntityType, id model.ID, backrefs *int) (Point, bool, error) {
	*backrefs++

	var (
		pt       Point
		resolved bool
		innerErr error
	)

	found, err := r.lookup.Visit(Needle{Type: t, ID: id}, func(e model.Entity) {
		pt, resolved, innerErr = r.resolve(e, backrefs)
	})
	if err != nil {
		return Point{}, false, err
	}

	if !found {
		return Point{}, false, nil
	}

	if innerErr != nil {
		return Point{}, false, innerErr
	}

	return pt, resolved, nil
}
