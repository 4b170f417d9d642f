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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BenWiederhake/monitor-osm-domains/internal/codec"
	"github.com/BenWiederhake/monitor-osm-domains/internal/core"
	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// ErrBadFraming is returned whenever the blob framing of a PBF file
// violates the format's invariants: an oversized header or block, a blob
// of the wrong type, a missing datasize, or a file that ends somewhere
// other than exactly after the last block.
var ErrBadFraming = errors.New("pbf: malformed blob framing")

const (
	osmHeaderBlobType = "OSMHeader"
	osmDataBlobType   = "OSMData"
)

// frameFile performs the one-time sequential pass over f required to open
// it for random access: it reads every blob header (never a blob body,
// except for the first OSMHeader blob, whose contents are decoded into the
// returned Header), and returns a descriptor for every OSMData block in
// file order.
func frameFile(f *os.File) ([]BlockStart, model.Header, error) {
	size, err := fileSize(f)
	if err != nil {
		return nil, model.Header{}, fmt.Errorf("pbf: stat file: %w", err)
	}

	buf := core.NewPooledBuffer()
	defer buf.Close()

	header, headerBodyLen, err := codec.ReadBlobHeader(buf, f)
	if err != nil {
		return nil, model.Header{}, fmt.Errorf("%w: reading OSMHeader blob header: %v", ErrBadFraming, err)
	}

	if header.GetType() != osmHeaderBlobType || header.GetDatasize() <= 0 {
		return nil, model.Header{}, fmt.Errorf("%w: first blob is not a well-formed OSMHeader blob", ErrBadFraming)
	}

	blob, err := codec.ReadBlob(buf, f, header.GetDatasize())
	if err != nil {
		return nil, model.Header{}, fmt.Errorf("%w: reading OSMHeader blob body: %v", ErrBadFraming, err)
	}

	hdr, err := codec.DecodeHeaderBlob(blob)
	if err != nil {
		return nil, model.Header{}, fmt.Errorf("pbf: decoding OSMHeader block: %w", err)
	}

	offset := headerBodyLen + int64(header.GetDatasize())

	starts := make([]BlockStart, 0, 1000)

	for offset < size {
		dataHeader, dataHeaderLen, err := codec.ReadBlobHeader(buf, f)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}

			return nil, model.Header{}, fmt.Errorf("%w: reading OSMData blob header at offset %d: %v", ErrBadFraming, offset, err)
		}

		if dataHeader.GetType() != osmDataBlobType || dataHeader.GetDatasize() <= 0 {
			return nil, model.Header{}, fmt.Errorf("%w: blob at offset %d is not a well-formed OSMData blob", ErrBadFraming, offset)
		}

		const maxBlockSize = 20 * 1024 * 1024
		if dataHeader.GetDatasize() > maxBlockSize {
			return nil, model.Header{}, fmt.Errorf("%w: blob at offset %d declares a %d-byte body, over the %d-byte limit", ErrBadFraming, offset, dataHeader.GetDatasize(), maxBlockSize)
		}

		bodyOffset := offset + dataHeaderLen

		starts = append(starts, BlockStart{
			FileOffset: bodyOffset,
			Datasize:   dataHeader.GetDatasize(),
		})

		offset = bodyOffset + int64(dataHeader.GetDatasize())

		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return nil, model.Header{}, fmt.Errorf("pbf: seek past block body: %w", err)
		}
	}

	if offset > size {
		return nil, model.Header{}, fmt.Errorf("%w: file ends %d bytes before the last declared block boundary", ErrBadFraming, offset-size)
	}

	return starts, hdr, nil
}

func fileSize(f *os.File) (int64, error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, err
	}

	return fi.Size(), nil
}
