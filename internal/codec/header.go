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
	"errors"
	"fmt"
	"io"

	"github.com/BenWiederhake/monitor-osm-domains/internal/core"
	"github.com/BenWiederhake/monitor-osm-domains/internal/pb"
	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// osmHeaderBlobType is the BlobHeader.type value every valid PBF file
// starts with.
const osmHeaderBlobType = "OSMHeader"

// ErrNotHeaderBlob is returned when the first blob in a stream is not an
// OSMHeader blob.
var ErrNotHeaderBlob = errors.New("codec: first blob is not an OSMHeader blob")

// LoadHeader reads the first blob of reader and decodes it into a Header.
// It does not consume anything beyond that first blob.
func LoadHeader(reader io.Reader) (model.Header, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	header, blob, _, err := ReadBlobAt(buf, reader)
	if err != nil {
		return model.Header{}, fmt.Errorf("error reading header blob: %w", err)
	}

	if header.GetType() != osmHeaderBlobType {
		return model.Header{}, ErrNotHeaderBlob
	}

	return DecodeHeaderBlob(blob)
}

// DecodeHeaderBlob decodes an already-read OSMHeader blob into a Header.
func DecodeHeaderBlob(blob *pb.Blob) (model.Header, error) {
	buf := core.NewPooledBuffer()
	defer buf.Close()

	data, err := unpack(buf, blob)
	if err != nil {
		return model.Header{}, fmt.Errorf("error unpacking header blob: %w", err)
	}

	hb, err := pb.UnmarshalHeaderBlock(data)
	if err != nil {
		return model.Header{}, fmt.Errorf("error unmarshalling header block: %w", err)
	}

	return model.Header{
		BoundingBox:                      decodeBBox(hb.Bbox),
		RequiredFeatures:                 hb.GetRequiredFeatures(),
		OptionalFeatures:                 hb.GetOptionalFeatures(),
		WritingProgram:                   hb.GetWritingprogram(),
		Source:                           hb.GetSource(),
		OsmosisReplicationSequenceNumber: hb.GetOsmosisReplicationSequenceNumber(),
		OsmosisReplicationBaseURL:        hb.GetOsmosisReplicationBaseUrl(),
	}, nil
}

// decodeBBox converts a HeaderBBox, whose fields are nanodegrees, to a
// model.BoundingBox, whose fields are plain degrees.
func decodeBBox(bbox *pb.HeaderBBox) *model.BoundingBox {
	if bbox == nil {
		return model.InitialBoundingBox()
	}

	const nanoDegree = 1e-9

	return &model.BoundingBox{
		Top:    model.Degrees(float64(bbox.GetTop()) * nanoDegree),
		Left:   model.Degrees(float64(bbox.GetLeft()) * nanoDegree),
		Bottom: model.Degrees(float64(bbox.GetBottom()) * nanoDegree),
		Right:  model.Degrees(float64(bbox.GetRight()) * nanoDegree),
	}
}
