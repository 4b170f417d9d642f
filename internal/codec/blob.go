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

// Package codec decodes the PBF blob framing and the OSMHeader/OSMData
// primitive blocks inside it into model entities. It knows nothing about
// seeking or caching; that is the random-access reader's job.
package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/BenWiederhake/monitor-osm-domains/internal/core"
	"github.com/BenWiederhake/monitor-osm-domains/internal/pb"
)

// lengthPrefixSize is the width of the big-endian uint32 that precedes every
// BlobHeader in the file.
const lengthPrefixSize = 4

// maxBlobHeaderSize bounds the size of a BlobHeader. Headers without
// indexdata are usually 13-14 bytes; anything above this is almost
// certainly a corrupt length prefix, not a legitimate file.
const maxBlobHeaderSize = 64

// maxBlobSize bounds the size of a Blob's compressed body. Real-world
// blocks are at most a few MiB; anything above 20 MiB is suspicious.
const maxBlobSize = 20 * 1024 * 1024

// ReadBlobHeader reads the 4-byte length prefix and BlobHeader message that
// starts every blob in a PBF stream. It returns the number of bytes
// consumed from r, which callers building a byte offset index need.
func ReadBlobHeader(buf *core.PooledBuffer, r io.Reader) (*pb.BlobHeader, int64, error) {
	buf.Reset()

	var size uint32

	if err := binary.Read(r, binary.BigEndian, &size); err != nil {
		return nil, 0, err // propagate io.EOF untouched
	}

	if size == 0 || size > maxBlobHeaderSize {
		return nil, 0, fmt.Errorf("blob header size %d out of range", size)
	}

	if _, err := io.CopyN(buf, r, int64(size)); err != nil {
		return nil, 0, fmt.Errorf("error reading blob header: %w", err)
	}

	header, err := pb.UnmarshalBlobHeader(buf.Bytes())
	if err != nil {
		return nil, 0, fmt.Errorf("error unmarshalling blob header: %w", err)
	}

	return header, lengthPrefixSize + int64(size), nil
}

// ReadBlob reads a Blob message of the given size, as reported by the
// preceding BlobHeader's datasize field.
func ReadBlob(buf *core.PooledBuffer, r io.Reader, size int32) (*pb.Blob, error) {
	buf.Reset()

	if size <= 0 || size > maxBlobSize {
		return nil, fmt.Errorf("blob size %d out of range", size)
	}

	if _, err := io.CopyN(buf, r, int64(size)); err != nil {
		return nil, fmt.Errorf("error reading blob: %w", err)
	}

	blob, err := pb.UnmarshalBlob(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("error unmarshalling blob: %w", err)
	}

	return blob, nil
}

// ReadBlobAt reads a whole (header, blob) pair starting at the current
// position of r, returning the header, the decoded blob, and the number of
// bytes occupied by the pair (header framing included).
func ReadBlobAt(buf *core.PooledBuffer, r io.Reader) (*pb.BlobHeader, *pb.Blob, int64, error) {
	header, headerLen, err := ReadBlobHeader(buf, r)
	if err != nil {
		return nil, nil, 0, err
	}

	blob, err := ReadBlob(buf, r, header.GetDatasize())
	if err != nil {
		return nil, nil, 0, err
	}

	return header, blob, headerLen + int64(header.GetDatasize()), nil
}

// GenerateBlobs is an iterator over every (header, blob) pair in r, in file
// order. It stops silently at io.EOF and surfaces any other error to the
// caller as yield's third argument.
func GenerateBlobs(r io.Reader) func(yield func(*pb.BlobHeader, *pb.Blob, error) bool) {
	return func(yield func(*pb.BlobHeader, *pb.Blob, error) bool) {
		buf := core.NewPooledBuffer()
		defer buf.Close()

		for {
			header, blob, _, err := ReadBlobAt(buf, r)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					yield(nil, nil, err)
				}

				return
			}

			if !yield(header, blob, nil) {
				return
			}
		}
	}
}
