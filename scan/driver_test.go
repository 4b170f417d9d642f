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

package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	pbf "github.com/BenWiederhake/monitor-osm-domains"
	"github.com/BenWiederhake/monitor-osm-domains/internal/pb"
	"github.com/BenWiederhake/monitor-osm-domains/model"
)

func TestCloneBlob_Raw(t *testing.T) {
	orig := &pb.Blob{RawSize: 10, Data: &pb.Blob_Raw{Raw: []byte{1, 2, 3}}}

	clone := cloneBlob(orig)
	assert.Equal(t, orig.RawSize, clone.RawSize)
	assert.Equal(t, orig.Data, clone.Data)

	orig.Data.(*pb.Blob_Raw).Raw[0] = 0xff
	assert.NotEqual(t, orig.Data, clone.Data, "clone must not alias the source buffer")
}

func TestCloneBlob_ZlibData(t *testing.T) {
	orig := &pb.Blob{Data: &pb.Blob_ZlibData{ZlibData: []byte{9, 8, 7}}}

	clone := cloneBlob(orig)
	assert.Equal(t, orig.Data, clone.Data)

	orig.Data.(*pb.Blob_ZlibData).ZlibData[0] = 0
	assert.NotEqual(t, orig.Data, clone.Data)
}

func TestCloneBlob_LzmaData(t *testing.T) {
	orig := &pb.Blob{Data: &pb.Blob_LzmaData{LzmaData: []byte{1}}}

	clone := cloneBlob(orig)
	assert.Equal(t, orig.Data, clone.Data)

	orig.Data.(*pb.Blob_LzmaData).LzmaData[0] = 2
	assert.NotEqual(t, orig.Data, clone.Data)
}

func TestCloneBlob_Lz4Data(t *testing.T) {
	orig := &pb.Blob{Data: &pb.Blob_Lz4Data{Lz4Data: []byte{1}}}

	clone := cloneBlob(orig)
	assert.Equal(t, orig.Data, clone.Data)

	orig.Data.(*pb.Blob_Lz4Data).Lz4Data[0] = 2
	assert.NotEqual(t, orig.Data, clone.Data)
}

func TestCloneBlob_ZstdData(t *testing.T) {
	orig := &pb.Blob{Data: &pb.Blob_ZstdData{ZstdData: []byte{1}}}

	clone := cloneBlob(orig)
	assert.Equal(t, orig.Data, clone.Data)

	orig.Data.(*pb.Blob_ZstdData).ZstdData[0] = 2
	assert.NotEqual(t, orig.Data, clone.Data)
}

func TestCloneBlob_EmptyPayload(t *testing.T) {
	orig := &pb.Blob{Data: &pb.Blob_Raw{Raw: nil}}

	clone := cloneBlob(orig)
	assert.NotNil(t, clone)
	assert.Equal(t, &pb.Blob_Raw{Raw: nil}, clone.Data)
}

func TestDriver_FindingsSortedByURL(t *testing.T) {
	d := &Driver{
		findings: map[string][]Occurrence{
			"http://b.example": {{Type: model.WAY, ID: 2}},
			"http://a.example": {{Type: model.NODE, ID: 1}},
			"http://c.example": {{Type: model.RELATION, ID: 3}},
		},
	}

	findings := d.Findings()

	assert.Len(t, findings, 3)
	assert.Equal(t, "http://a.example", findings[0].URL)
	assert.Equal(t, "http://b.example", findings[1].URL)
	assert.Equal(t, "http://c.example", findings[2].URL)
}

func TestDriver_FindingsEmpty(t *testing.T) {
	d := &Driver{findings: map[string][]Occurrence{}}

	assert.Empty(t, d.Findings())
}

func TestDriver_Stats(t *testing.T) {
	d := &Driver{
		findings: map[string][]Occurrence{
			"http://example.com": {{Type: model.NODE, ID: 1}, {Type: model.NODE, ID: 1}},
		},
		numOccurrences: 2,
		numBackrefs:    17,
		mostExpensive: expensiveObject{
			needle:   pbf.Needle{Type: model.RELATION, ID: 99},
			backrefs: 12,
		},
	}

	stats := d.Stats()

	assert.Equal(t, Stats{
		NumURLs:               1,
		NumOccurrences:        2,
		NumBackrefs:           17,
		MostExpensiveType:     model.RELATION,
		MostExpensiveID:       99,
		MostExpensiveBackrefs: 12,
	}, stats)
}
