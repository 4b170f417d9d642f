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

package codec

import (
	"fmt"

	"github.com/BenWiederhake/monitor-osm-domains/internal/core"
	"github.com/BenWiederhake/monitor-osm-domains/internal/pb"
	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// DecodeDataBlock unmarshals a raw OSMData blob (the Blob message bytes
// exactly as they sit in the file, still compressed) into the model
// entities it contains, in block order.
func DecodeDataBlock(raw []byte) ([]model.Entity, error) {
	blob, err := pb.UnmarshalBlob(raw)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal blob: %w", err)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	data, err := unpack(buf, blob)
	if err != nil {
		return nil, fmt.Errorf("unable to unpack blob: %w", err)
	}

	return parsePrimitiveBlock(data)
}

// parsePrimitiveBlock decodes every node, way, and relation in blk. Neither
// the random-access core nor the scan driver ever inspects an entity's
// metadata (version, user, timestamp, changeset, visibility) — only its
// tags and coordinates/references — so this decoder does not bother
// reconstructing it; every decoded entity's Info field is left nil. That
// skips the dense-info delta-decoding pass entirely on a dense-node group,
// which is most of a typical block.
func parsePrimitiveBlock(buf []byte) ([]model.Entity, error) {
	blk, err := pb.UnmarshalPrimitiveBlock(buf)
	if err != nil {
		return nil, fmt.Errorf("unable to unmarshal primitive block: %w", err)
	}

	c := newBlockContext(blk)

	entities := make([]model.Entity, 0)
	for _, pg := range blk.GetPrimitivegroup() {
		entities = append(entities, c.decodeNodes(pg.GetNodes())...)
		entities = append(entities, c.decodeDenseNodes(pg.GetDense())...)
		entities = append(entities, c.decodeWays(pg.GetWays())...)
		entities = append(entities, c.decodeRelations(pg.GetRelations())...)
	}

	return entities, nil
}

// blockContext carries the per-block decoding state (string table, delta
// decoding offsets and granularity) shared by every entity decoded out of
// one PrimitiveBlock.
type blockContext struct {
	strings     []string
	granularity int32
	latOffset   int64
	lonOffset   int64
}

func newBlockContext(pb *pb.PrimitiveBlock) *blockContext {
	return &blockContext{
		strings:     pb.GetStringtable().GetS(),
		granularity: pb.GetGranularity(),
		latOffset:   pb.GetLatOffset(),
		lonOffset:   pb.GetLonOffset(),
	}
}

func (c *blockContext) decodeNodes(nodes []*pb.Node) (entities []model.Entity) {
	entities = make([]model.Entity, len(nodes))

	for i, node := range nodes {
		entities[i] = &model.Node{
			ID:   model.ID(node.GetId()),
			Tags: c.decodeTags(node.GetKeys(), node.GetVals()),
			Lat:  model.ToDegrees(c.latOffset, c.granularity, node.GetLat()),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, node.GetLon()),
		}
	}

	return entities
}

// decodeDenseNodes delta-decodes a DenseNodes group. Unlike the teacher's
// decoder, it does not also delta-decode the parallel DenseInfo arrays
// (version/uid/timestamp/changeset/user per node), since nothing in this
// tool's domain reads a node's metadata — only its tags and coordinates
// feed the URL scan and the location resolver.
func (c *blockContext) decodeDenseNodes(nodes *pb.DenseNodes) []model.Entity {
	ids := nodes.GetId()
	entities := make([]model.Entity, len(ids))

	tic := c.newTagsContext(nodes.GetKeysVals())
	lats := nodes.GetLat()
	lons := nodes.GetLon()

	var id, lat, lon int64
	for i := range ids {
		id += ids[i]
		lat += lats[i]
		lon += lons[i]

		entities[i] = &model.Node{
			ID:   model.ID(id),
			Tags: tic.decodeTags(),
			Lat:  model.ToDegrees(c.latOffset, c.granularity, lat),
			Lon:  model.ToDegrees(c.lonOffset, c.granularity, lon),
		}
	}

	return entities
}

func (c *blockContext) decodeWays(nodes []*pb.Way) []model.Entity {
	entities := make([]model.Entity, len(nodes))

	for i, node := range nodes {
		refs := node.GetRefs()
		nodeIDs := make([]model.ID, len(refs))

		var nodeID int64

		for j, delta := range refs {
			nodeID += delta
			nodeIDs[j] = model.ID(nodeID)
		}

		entities[i] = &model.Way{
			ID:      model.ID(node.GetId()),
			Tags:    c.decodeTags(node.GetKeys(), node.GetVals()),
			NodeIDs: nodeIDs,
		}
	}

	return entities
}

func (c *blockContext) decodeRelations(nodes []*pb.Relation) []model.Entity {
	entities := make([]model.Entity, len(nodes))

	for i, node := range nodes {
		entities[i] = &model.Relation{
			ID:      model.ID(node.GetId()),
			Tags:    c.decodeTags(node.GetKeys(), node.GetVals()),
			Members: c.decodeMembers(node),
		}
	}

	return entities
}

func (c *blockContext) decodeMembers(node *pb.Relation) []model.Member {
	memids := node.GetMemids()
	memtypes := node.GetTypes()
	memroles := node.GetRolesSid()
	members := make([]model.Member, len(memids))

	var memid int64

	for i := range memids {
		memid += memids[i]
		members[i] = model.Member{
			ID:   model.ID(memid),
			Type: decodeMemberType(memtypes[i]),
			Role: c.strings[memroles[i]],
		}
	}

	return members
}

func (c *blockContext) decodeTags(keyIDs, valIDs []uint32) map[string]string {
	tags := make(map[string]string, len(keyIDs))

	for i, keyID := range keyIDs {
		tags[c.strings[keyID]] = c.strings[valIDs[i]]
	}

	return tags
}

type tagsContext struct {
	strings []string
	i       int
	keyVals []int32
}

func (c *blockContext) newTagsContext(keyVals []int32) *tagsContext {
	tc := &tagsContext{strings: c.strings}

	if len(keyVals) != 0 {
		tc.keyVals = keyVals
	}

	return tc
}

func (tic *tagsContext) decodeTags() map[string]string {
	if tic.keyVals == nil {
		return map[string]string{}
	}

	tags := make(map[string]string)
	i := tic.i

	for tic.keyVals[i] > 0 {
		tags[tic.strings[tic.keyVals[i]]] = tic.strings[tic.keyVals[i+1]]
		i += 2
	}

	tic.i = i + 1

	return tags
}

// decodeMemberType converts protobuf enum Relation_MemberType to a EntityType.
func decodeMemberType(mt pb.Relation_MemberType) model.EntityType {
	switch mt {
	case pb.Relation_NODE:
		return model.NODE
	case pb.Relation_WAY:
		return model.WAY
	case pb.Relation_RELATION:
		return model.RELATION
	default:
		panic("unrecognized member type")
	}
}
