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

// Package pb holds hand-rolled wire decoders for the handful of OSM PBF
// protobuf messages (fileformat.proto and osmformat.proto) that the codec
// package needs. There is no .proto source checked into this module; the
// message shapes below mirror the public OSM PBF schema field-for-field.
package pb

import (
	"errors"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrTruncated is returned when a message ends in the middle of a field.
var ErrTruncated = errors.New("pb: truncated message")

// BlobHeader corresponds to fileformat.proto's BlobHeader.
type BlobHeader struct {
	Type      string
	Indexdata []byte
	Datasize  int32
}

func (h *BlobHeader) GetType() string {
	if h == nil {
		return ""
	}

	return h.Type
}

func (h *BlobHeader) GetDatasize() int32 {
	if h == nil {
		return 0
	}

	return h.Datasize
}

// UnmarshalBlobHeader decodes a BlobHeader from its wire bytes.
func UnmarshalBlobHeader(b []byte) (*BlobHeader, error) {
	h := &BlobHeader{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1: // type
			v, n := protowire.ConsumeString(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.Type = v
			b = b[n:]
		case 2: // indexdata
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.Indexdata = append([]byte(nil), v...)
			b = b[n:]
		case 3: // datasize
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			h.Datasize = int32(v)
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

// Blob corresponds to fileformat.proto's Blob. Data holds exactly one of
// the *Blob_Raw / *Blob_ZlibData / *Blob_LzmaData / *Blob_Lz4Data /
// *Blob_ZstdData wrapper types, mirroring a protobuf oneof.
type Blob struct {
	RawSize int32
	Data    isBlobData
}

type isBlobData interface{ isBlobData() }

type Blob_Raw struct{ Raw []byte }          //nolint:revive
type Blob_ZlibData struct{ ZlibData []byte } //nolint:revive
type Blob_LzmaData struct{ LzmaData []byte } //nolint:revive
type Blob_Lz4Data struct{ Lz4Data []byte }   //nolint:revive
type Blob_ZstdData struct{ ZstdData []byte } //nolint:revive

func (*Blob_Raw) isBlobData()      {}
func (*Blob_ZlibData) isBlobData() {}
func (*Blob_LzmaData) isBlobData() {}
func (*Blob_Lz4Data) isBlobData()  {}
func (*Blob_ZstdData) isBlobData() {}

func (b *Blob) GetRawSize() int32 {
	if b == nil {
		return 0
	}

	return b.RawSize
}

func (b *Blob) GetRaw() []byte {
	if b == nil {
		return nil
	}

	if d, ok := b.Data.(*Blob_Raw); ok {
		return d.Raw
	}

	return nil
}

func (b *Blob) GetZlibData() []byte {
	if b == nil {
		return nil
	}

	if d, ok := b.Data.(*Blob_ZlibData); ok {
		return d.ZlibData
	}

	return nil
}

func (b *Blob) GetLzmaData() []byte {
	if b == nil {
		return nil
	}

	if d, ok := b.Data.(*Blob_LzmaData); ok {
		return d.LzmaData
	}

	return nil
}

func (b *Blob) GetLz4Data() []byte {
	if b == nil {
		return nil
	}

	if d, ok := b.Data.(*Blob_Lz4Data); ok {
		return d.Lz4Data
	}

	return nil
}

func (b *Blob) GetZstdData() []byte {
	if b == nil {
		return nil
	}

	if d, ok := b.Data.(*Blob_ZstdData); ok {
		return d.ZstdData
	}

	return nil
}

// UnmarshalBlob decodes a Blob from its wire bytes.
func UnmarshalBlob(b []byte) (*Blob, error) {
	blob := &Blob{}

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, ErrTruncated
		}

		b = b[n:]

		switch num {
		case 1: // raw
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blob.Data = &Blob_Raw{Raw: append([]byte(nil), v...)}
			b = b[n:]
		case 2: // raw_size
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blob.RawSize = int32(v)
			b = b[n:]
		case 3: // zlib_data
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blob.Data = &Blob_ZlibData{ZlibData: append([]byte(nil), v...)}
			b = b[n:]
		case 4: // lzma_data
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blob.Data = &Blob_LzmaData{LzmaData: append([]byte(nil), v...)}
			b = b[n:]
		case 6: // lz4_data
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blob.Data = &Blob_Lz4Data{Lz4Data: append([]byte(nil), v...)}
			b = b[n:]
		case 7: // zstd_data
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, ErrTruncated
			}

			blob.Data = &Blob_ZstdData{ZstdData: append([]byte(nil), v...)}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, ErrTruncated
			}

			b = b[n:]
		}
	}

	return blob, nil
}
