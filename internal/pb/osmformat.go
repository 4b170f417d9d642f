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

package pb

import (
	"google.golang.org/protobuf/encoding/protowire"
)

// HeaderBBox corresponds to osmformat.proto's HeaderBBox. Units are
// nanodegrees; unlike Node.lat/lon, no granularity or offset applies.
type HeaderBBox struct {
	Left, Right, Top, Bottom int64
}

func (b *HeaderBBox) GetLeft() int64 {
	if b == nil {
		return 0
	}

	return b.Left
}

func (b *HeaderBBox) GetRight() int64 {
	if b == nil {
		return 0
	}

	return b.Right
}

func (b *HeaderBBox) GetTop() int64 {
	if b == nil {
		return 0
	}

	return b.Top
}

func (b *HeaderBBox) GetBottom() int64 {
	if b == nil {
		return 0
	}

	return b.Bottom
}

// HeaderBlock corresponds to osmformat.proto's HeaderBlock.
type HeaderBlock struct {
	Bbox                              *HeaderBBox
	RequiredFeatures                  []string
	OptionalFeatures                  []string
	Writingprogram                    string
	Source                            string
	OsmosisReplicationTimestamp       *int64
	OsmosisReplicationSequenceNumber  int64
	OsmosisReplicationBaseUrl         string
}

func (h *HeaderBlock) GetRequiredFeatures() []string {
	if h == nil {
		return nil
	}

	return h.RequiredFeatures
}

func (h *HeaderBlock) GetOptionalFeatures() []string {
	if h == nil {
		return nil
	}

	return h.OptionalFeatures
}

func (h *HeaderBlock) GetWritingprogram() string {
	if h == nil {
		return ""
	}

	return h.Writingprogram
}

func (h *HeaderBlock) GetSource() string {
	if h == nil {
		return ""
	}

	return h.Source
}

func (h *HeaderBlock) GetOsmosisReplicationSequenceNumber() int64 {
	if h == nil {
		return 0
	}

	return h.OsmosisReplicationSequenceNumber
}

func (h *HeaderBlock) GetOsmosisReplicationBaseUrl() string {
	if h == nil {
		return ""
	}

	return h.OsmosisReplicationBaseUrl
}

// UnmarshalHeaderBlock decodes a HeaderBlock from its wire bytes.
func UnmarshalHeaderBlock(b []byte) (*HeaderBlock, error) {
	h := &HeaderBlock{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1: // bbox
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			bbox, err := unmarshalHeaderBBox(v)
			if err != nil {
				return nil, err
			}

			h.Bbox = bbox
			b = b[n:]
		case 4: // required_features
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.RequiredFeatures = append(h.RequiredFeatures, v)
			b = b[n:]
		case 5: // optional_features
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.OptionalFeatures = append(h.OptionalFeatures, v)
			b = b[n:]
		case 16: // writingprogram
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.Writingprogram = v
			b = b[n:]
		case 17: // source
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.Source = v
			b = b[n:]
		case 32: // osmosis_replication_timestamp
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			ts := int64(v)
			h.OsmosisReplicationTimestamp = &ts
			b = b[n:]
		case 33: // osmosis_replication_sequence_number
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.OsmosisReplicationSequenceNumber = int64(v)
			b = b[n:]
		case 34: // osmosis_replication_base_url
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.OsmosisReplicationBaseUrl = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return h, nil
}

func unmarshalHeaderBBox(b []byte) (*HeaderBBox, error) {
	bbox := &HeaderBBox{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			bbox.Left = protowire.DecodeZigZag(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			bbox.Right = protowire.DecodeZigZag(v)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			bbox.Top = protowire.DecodeZigZag(v)
			b = b[n:]
		case 4:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			bbox.Bottom = protowire.DecodeZigZag(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return bbox, nil
}

// StringTable corresponds to osmformat.proto's StringTable. Entries are
// decoded to string eagerly; OSM string tables are small relative to block
// size, so the extra allocation is not worth avoiding.
type StringTable struct {
	S []string
}

func (s *StringTable) GetS() []string {
	if s == nil {
		return nil
	}

	return s.S
}

// PrimitiveBlock corresponds to osmformat.proto's PrimitiveBlock.
type PrimitiveBlock struct {
	Stringtable     *StringTable
	Primitivegroup  []*PrimitiveGroup
	Granularity     int32
	LatOffset       int64
	LonOffset       int64
	DateGranularity int32
}

func (p *PrimitiveBlock) GetStringtable() *StringTable {
	if p == nil {
		return nil
	}

	return p.Stringtable
}

func (p *PrimitiveBlock) GetPrimitivegroup() []*PrimitiveGroup {
	if p == nil {
		return nil
	}

	return p.Primitivegroup
}

func (p *PrimitiveBlock) GetGranularity() int32 {
	if p == nil || p.Granularity == 0 {
		return 100
	}

	return p.Granularity
}

func (p *PrimitiveBlock) GetLatOffset() int64 {
	if p == nil {
		return 0
	}

	return p.LatOffset
}

func (p *PrimitiveBlock) GetLonOffset() int64 {
	if p == nil {
		return 0
	}

	return p.LonOffset
}

func (p *PrimitiveBlock) GetDateGranularity() int32 {
	if p == nil || p.DateGranularity == 0 {
		return 1000
	}

	return p.DateGranularity
}

// UnmarshalPrimitiveBlock decodes a PrimitiveBlock from its wire bytes.
func UnmarshalPrimitiveBlock(b []byte) (*PrimitiveBlock, error) {
	blk := &PrimitiveBlock{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1: // stringtable
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			st, err := unmarshalStringTable(v)
			if err != nil {
				return nil, err
			}

			blk.Stringtable = st
			b = b[n:]
		case 2: // primitivegroup
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			pg, err := unmarshalPrimitiveGroup(v)
			if err != nil {
				return nil, err
			}

			blk.Primitivegroup = append(blk.Primitivegroup, pg)
			b = b[n:]
		case 17: // granularity
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blk.Granularity = int32(v)
			b = b[n:]
		case 18: // date_granularity
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blk.DateGranularity = int32(v)
			b = b[n:]
		case 19: // lat_offset
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blk.LatOffset = int64(v)
			b = b[n:]
		case 20: // lon_offset
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blk.LonOffset = int64(v)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return blk, nil
}

func unmarshalStringTable(b []byte) (*StringTable, error) {
	st := &StringTable{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		if num == 1 {
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			st.S = append(st.S, string(v))
			b = b[n:]

			continue
		}

		n = protowire.ConsumeFieldValue(num, typ, b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]
	}

	return st, nil
}

// PrimitiveGroup corresponds to osmformat.proto's PrimitiveGroup. A group
// holds exactly one kind of primitive in practice, but the message allows
// all four to coexist.
type PrimitiveGroup struct {
	Nodes     []*Node
	Dense     *DenseNodes
	Ways      []*Way
	Relations []*Relation
}

func (g *PrimitiveGroup) GetNodes() []*Node {
	if g == nil {
		return nil
	}

	return g.Nodes
}

func (g *PrimitiveGroup) GetDense() *DenseNodes {
	if g == nil {
		return nil
	}

	return g.Dense
}

func (g *PrimitiveGroup) GetWays() []*Way {
	if g == nil {
		return nil
	}

	return g.Ways
}

func (g *PrimitiveGroup) GetRelations() []*Relation {
	if g == nil {
		return nil
	}

	return g.Relations
}

func unmarshalPrimitiveGroup(b []byte) (*PrimitiveGroup, error) {
	g := &PrimitiveGroup{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1: // nodes
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			node, err := unmarshalNode(v)
			if err != nil {
				return nil, err
			}

			g.Nodes = append(g.Nodes, node)
			b = b[n:]
		case 2: // dense
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			dense, err := unmarshalDenseNodes(v)
			if err != nil {
				return nil, err
			}

			g.Dense = dense
			b = b[n:]
		case 3: // ways
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			way, err := unmarshalWay(v)
			if err != nil {
				return nil, err
			}

			g.Ways = append(g.Ways, way)
			b = b[n:]
		case 4: // relations
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			rel, err := unmarshalRelation(v)
			if err != nil {
				return nil, err
			}

			g.Relations = append(g.Relations, rel)
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return g, nil
}

// Info corresponds to osmformat.proto's Info.
type Info struct {
	Version   int32
	Timestamp int64
	Changeset int64
	Uid       int32
	UserSid   int32
	Visible   *bool
}

func (i *Info) GetVersion() int32 {
	if i == nil {
		return -1
	}

	return i.Version
}

func (i *Info) GetTimestamp() int64 {
	if i == nil {
		return 0
	}

	return i.Timestamp
}

func (i *Info) GetChangeset() int64 {
	if i == nil {
		return 0
	}

	return i.Changeset
}

func (i *Info) GetUid() int32 {
	if i == nil {
		return 0
	}

	return i.Uid
}

func (i *Info) GetUserSid() int32 {
	if i == nil {
		return 0
	}

	return i.UserSid
}

func (i *Info) GetVisible() bool {
	if i == nil || i.Visible == nil {
		return true
	}

	return *i.Visible
}

func unmarshalInfo(b []byte) (*Info, error) {
	info := &Info{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			info.Version = int32(v)
			b = b[n:]
		case 2:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			info.Timestamp = int64(v)
			b = b[n:]
		case 3:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			info.Changeset = int64(v)
			b = b[n:]
		case 4:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			info.Uid = int32(v)
			b = b[n:]
		case 5:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			info.UserSid = int32(v)
			b = b[n:]
		case 6:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			vis := v != 0
			info.Visible = &vis
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return info, nil
}

// DenseInfo corresponds to osmformat.proto's DenseInfo: parallel delta- and
// zigzag-encoded arrays, one slot per node in the enclosing DenseNodes.
type DenseInfo struct {
	Version    []int32
	Timestamp  []int64
	Changeset  []int64
	Uid        []int32
	UserSid    []int32
	Visible    []bool
}

func (d *DenseInfo) GetVersion() []int32 {
	if d == nil {
		return nil
	}

	return d.Version
}

func (d *DenseInfo) GetTimestamp() []int64 {
	if d == nil {
		return nil
	}

	return d.Timestamp
}

func (d *DenseInfo) GetChangeset() []int64 {
	if d == nil {
		return nil
	}

	return d.Changeset
}

func (d *DenseInfo) GetUid() []int32 {
	if d == nil {
		return nil
	}

	return d.Uid
}

func (d *DenseInfo) GetUserSid() []int32 {
	if d == nil {
		return nil
	}

	return d.UserSid
}

func (d *DenseInfo) GetVisible() []bool {
	if d == nil {
		return nil
	}

	return d.Visible
}

func unmarshalDenseInfo(b []byte) (*DenseInfo, error) {
	d := &DenseInfo{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.Version = append(d.Version, int32(v))
			}

			b = b[n:]
		case 2:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.Timestamp = append(d.Timestamp, protowire.DecodeZigZag(v))
			}

			b = b[n:]
		case 3:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.Changeset = append(d.Changeset, protowire.DecodeZigZag(v))
			}

			b = b[n:]
		case 4:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.Uid = append(d.Uid, int32(protowire.DecodeZigZag(v)))
			}

			b = b[n:]
		case 5:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.UserSid = append(d.UserSid, int32(protowire.DecodeZigZag(v)))
			}

			b = b[n:]
		case 6:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.Visible = append(d.Visible, v != 0)
			}

			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return d, nil
}

// Node corresponds to osmformat.proto's Node.
type Node struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Lat  int64
	Lon  int64
}

func (n *Node) GetId() int64 {
	if n == nil {
		return 0
	}

	return n.Id
}

func (n *Node) GetKeys() []uint32 {
	if n == nil {
		return nil
	}

	return n.Keys
}

func (n *Node) GetVals() []uint32 {
	if n == nil {
		return nil
	}

	return n.Vals
}

func (n *Node) GetInfo() *Info {
	if n == nil {
		return nil
	}

	return n.Info
}

func (n *Node) GetLat() int64 {
	if n == nil {
		return 0
	}

	return n.Lat
}

func (n *Node) GetLon() int64 {
	if n == nil {
		return 0
	}

	return n.Lon
}

func unmarshalNode(b []byte) (*Node, error) {
	n := &Node{}

	for len(b) > 0 {
		num, typ, sz := protowire.ConsumeTag(b)
		if sz < 0 {
			return nil, ErrTruncated
		}

		b = b[sz:]

		switch num {
		case 1:
			v, sz := protowire.ConsumeVarint(b)
			if sz < 0 {
				return nil, ErrTruncated
			}

			n.Id = protowire.DecodeZigZag(v)
			b = b[sz:]
		case 2:
			vals, sz, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				n.Keys = append(n.Keys, uint32(v))
			}

			b = b[sz:]
		case 3:
			vals, sz, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				n.Vals = append(n.Vals, uint32(v))
			}

			b = b[sz:]
		case 4:
			v, sz := protowire.ConsumeBytes(b)
			if sz < 0 {
				return nil, ErrTruncated
			}

			info, err := unmarshalInfo(v)
			if err != nil {
				return nil, err
			}

			n.Info = info
			b = b[sz:]
		case 8:
			v, sz := protowire.ConsumeVarint(b)
			if sz < 0 {
				return nil, ErrTruncated
			}

			n.Lat = protowire.DecodeZigZag(v)
			b = b[sz:]
		case 9:
			v, sz := protowire.ConsumeVarint(b)
			if sz < 0 {
				return nil, ErrTruncated
			}

			n.Lon = protowire.DecodeZigZag(v)
			b = b[sz:]
		default:
			sz := protowire.ConsumeFieldValue(num, typ, b)
			if sz < 0 {
				return nil, ErrTruncated
			}

			b = b[sz:]
		}
	}

	return n, nil
}

// DenseNodes corresponds to osmformat.proto's DenseNodes: every array is
// delta-encoded (id, lat, lon) relative to the previous element.
type DenseNodes struct {
	Id        []int64
	Denseinfo *DenseInfo
	Lat       []int64
	Lon       []int64
	KeysVals  []int32
}

func (d *DenseNodes) GetId() []int64 {
	if d == nil {
		return nil
	}

	return d.Id
}

func (d *DenseNodes) GetDenseinfo() *DenseInfo {
	if d == nil {
		return nil
	}

	return d.Denseinfo
}

func (d *DenseNodes) GetLat() []int64 {
	if d == nil {
		return nil
	}

	return d.Lat
}

func (d *DenseNodes) GetLon() []int64 {
	if d == nil {
		return nil
	}

	return d.Lon
}

func (d *DenseNodes) GetKeysVals() []int32 {
	if d == nil {
		return nil
	}

	return d.KeysVals
}

func unmarshalDenseNodes(b []byte) (*DenseNodes, error) {
	d := &DenseNodes{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.Id = append(d.Id, protowire.DecodeZigZag(v))
			}

			b = b[n:]
		case 5:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			di, err := unmarshalDenseInfo(v)
			if err != nil {
				return nil, err
			}

			d.Denseinfo = di
			b = b[n:]
		case 8:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.Lat = append(d.Lat, protowire.DecodeZigZag(v))
			}

			b = b[n:]
		case 9:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.Lon = append(d.Lon, protowire.DecodeZigZag(v))
			}

			b = b[n:]
		case 10:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				d.KeysVals = append(d.KeysVals, int32(v))
			}

			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return d, nil
}

// Way corresponds to osmformat.proto's Way.
type Way struct {
	Id   int64
	Keys []uint32
	Vals []uint32
	Info *Info
	Refs []int64
}

func (w *Way) GetId() int64 {
	if w == nil {
		return 0
	}

	return w.Id
}

func (w *Way) GetKeys() []uint32 {
	if w == nil {
		return nil
	}

	return w.Keys
}

func (w *Way) GetVals() []uint32 {
	if w == nil {
		return nil
	}

	return w.Vals
}

func (w *Way) GetInfo() *Info {
	if w == nil {
		return nil
	}

	return w.Info
}

func (w *Way) GetRefs() []int64 {
	if w == nil {
		return nil
	}

	return w.Refs
}

func unmarshalWay(b []byte) (*Way, error) {
	w := &Way{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			w.Id = int64(v)
			b = b[n:]
		case 2:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				w.Keys = append(w.Keys, uint32(v))
			}

			b = b[n:]
		case 3:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				w.Vals = append(w.Vals, uint32(v))
			}

			b = b[n:]
		case 4:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			info, err := unmarshalInfo(v)
			if err != nil {
				return nil, err
			}

			w.Info = info
			b = b[n:]
		case 8:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				w.Refs = append(w.Refs, protowire.DecodeZigZag(v))
			}

			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return w, nil
}

// Relation_MemberType mirrors osmformat.proto's Relation.MemberType enum.
type Relation_MemberType int32 //nolint:revive

const (
	Relation_NODE     Relation_MemberType = 0 //nolint:revive
	Relation_WAY      Relation_MemberType = 1 //nolint:revive
	Relation_RELATION Relation_MemberType = 2 //nolint:revive
)

// Relation corresponds to osmformat.proto's Relation.
type Relation struct {
	Id       int64
	Keys     []uint32
	Vals     []uint32
	Info     *Info
	RolesSid []int32
	Memids   []int64
	Types    []Relation_MemberType
}

func (r *Relation) GetId() int64 {
	if r == nil {
		return 0
	}

	return r.Id
}

func (r *Relation) GetKeys() []uint32 {
	if r == nil {
		return nil
	}

	return r.Keys
}

func (r *Relation) GetVals() []uint32 {
	if r == nil {
		return nil
	}

	return r.Vals
}

func (r *Relation) GetInfo() *Info {
	if r == nil {
		return nil
	}

	return r.Info
}

func (r *Relation) GetRolesSid() []int32 {
	if r == nil {
		return nil
	}

	return r.RolesSid
}

func (r *Relation) GetMemids() []int64 {
	if r == nil {
		return nil
	}

	return r.Memids
}

func (r *Relation) GetTypes() []Relation_MemberType {
	if r == nil {
		return nil
	}

	return r.Types
}

func unmarshalRelation(b []byte) (*Relation, error) {
	r := &Relation{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			r.Id = int64(v)
			b = b[n:]
		case 2:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				r.Keys = append(r.Keys, uint32(v))
			}

			b = b[n:]
		case 3:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				r.Vals = append(r.Vals, uint32(v))
			}

			b = b[n:]
		case 4:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			info, err := unmarshalInfo(v)
			if err != nil {
				return nil, err
			}

			r.Info = info
			b = b[n:]
		case 8:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				r.RolesSid = append(r.RolesSid, int32(v))
			}

			b = b[n:]
		case 9:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				r.Memids = append(r.Memids, protowire.DecodeZigZag(v))
			}

			b = b[n:]
		case 10:
			vals, n, err := consumePackedVarint(b, typ)
			if err != nil {
				return nil, err
			}

			for _, v := range vals {
				r.Types = append(r.Types, Relation_MemberType(v))
			}

			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return r, nil
}

// consumePackedVarint consumes one occurrence of a repeated varint field,
// accepting both the packed (length-delimited) encoding that every real
// OSM PBF writer uses and the legacy unpacked (one tag per value) form.
func consumePackedVarint(b []byte, typ protowire.Type) ([]uint64, int, error) {
	if typ == protowire.BytesType {
		body, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, 0, ErrTruncated
		}

		var vals []uint64

		for len(body) > 0 {
			v, sz := protowire.ConsumeVarint(body)
			if sz < 0 {
				return nil, 0, ErrTruncated
			}

			vals = append(vals, v)
			body = body[sz:]
		}

		return vals, n, nil
	}

	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return nil, 0, ErrTruncated
	}

	return []uint64{v}, n, nil
}
