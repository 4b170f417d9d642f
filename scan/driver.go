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

// Package scan is the streaming front-end built on top of the random-access
// reader: it walks a PBF file once from front to back, picks out tags whose
// value looks like a URL, resolves a location for the object carrying that
// tag, and accumulates the results for the JSON writer.
package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sort"

	"github.com/destel/rill"

	pbf "github.com/BenWiederhake/monitor-osm-domains"
	"github.com/BenWiederhake/monitor-osm-domains/internal/codec"
	"github.com/BenWiederhake/monitor-osm-domains/internal/core"
	"github.com/BenWiederhake/monitor-osm-domains/internal/pb"
	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// blobBatchSize is the number of OSMData blobs grouped together before
// being handed to a decode worker. Small enough to keep workers busy
// throughout the file, large enough that per-batch overhead doesn't
// dominate.
const blobBatchSize = 8

// sentinelLon and sentinelLat are substituted for objects whose location
// could not be resolved by any path, so that they still end up with a
// plottable point instead of being dropped.
const (
	sentinelLon model.Degrees = 10.0
	sentinelLat model.Degrees = 50.0
)

// Occurrence is one object found carrying a URL-bearing tag.
type Occurrence struct {
	Type model.EntityType
	ID   model.ID
	Key  string
	Lon  model.Degrees
	Lat  model.Degrees
}

// expensiveObject records the single costliest resolution seen so far, for
// the end-of-run summary.
type expensiveObject struct {
	needle   pbf.Needle
	backrefs int
}

// Driver performs the streaming pass and accumulates findings keyed by URL.
// It is not safe for concurrent use.
type Driver struct {
	reader    *pbf.Reader
	allowlist map[string]struct{}

	findings       map[string][]Occurrence
	numOccurrences int
	numBackrefs    int
	mostExpensive  expensiveObject
}

// NewDriver builds a Driver that resolves locations through reader.
func NewDriver(reader *pbf.Reader) *Driver {
	return &Driver{
		reader:    reader,
		allowlist: newURLTagKeySet(),
		// A continental extract easily carries on the order of a million
		// URL tags; size the table up front to skip most rehashing.
		findings: make(map[string][]Occurrence, 100_000),
	}
}

// Run streams path front to back, decoding OSMData blocks concurrently but
// processing the decoded entities in file order, and resolving a location
// for every object that carries a URL-bearing tag. It opens its own file
// handle, independent of the one backing the Driver's Reader, since the
// two are read in interleaved, unrelated access patterns.
func (d *Driver) Run(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("scan: open %s: %w", path, err)
	}
	defer f.Close()

	progress, err := newProgressReader(f)
	if err != nil {
		return fmt.Errorf("scan: stat %s: %w", path, err)
	}
	defer progress.finish()

	batches := generateDataBatches(ctx, progress, blobBatchSize)
	decoded := rill.OrderedMap(batches, decodeConcurrency(), decodeBatch)

	for res := range decoded {
		if res.Error != nil {
			return fmt.Errorf("scan: decoding %s: %w", path, res.Error)
		}

		for _, e := range res.Value {
			if err := d.processEntity(e); err != nil {
				return err
			}
		}
	}

	return nil
}

// decodeConcurrency returns GOMAXPROCS (at least 1), so that decompression
// fans out over every available core.
func decodeConcurrency() int {
	n := runtime.GOMAXPROCS(-1)
	if n < 1 {
		return 1
	}

	return n
}

// generateDataBatches streams (header, blob) pairs from r, skipping the
// leading OSMHeader blob, and groups consecutive OSMData blobs into
// batches of size batchSize.
func generateDataBatches(ctx context.Context, r io.Reader, batchSize int) <-chan rill.Try[[]*pb.Blob] {
	ch := make(chan rill.Try[[]*pb.Blob])

	go func() {
		defer close(ch)

		buf := core.NewPooledBuffer()
		defer buf.Close()

		seenHeader := false
		batch := make([]*pb.Blob, 0, batchSize)

		flush := func() bool {
			if len(batch) == 0 {
				return true
			}

			select {
			case <-ctx.Done():
				return false
			case ch <- rill.Try[[]*pb.Blob]{Value: batch}:
				batch = make([]*pb.Blob, 0, batchSize)

				return true
			}
		}

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			header, _, err := codec.ReadBlobHeader(buf, r)
			if err != nil {
				if errors.Is(err, io.EOF) {
					flush()

					return
				}

				ch <- rill.Try[[]*pb.Blob]{Error: err}

				return
			}

			blob, err := codec.ReadBlob(buf, r, header.GetDatasize())
			if err != nil {
				ch <- rill.Try[[]*pb.Blob]{Error: err}

				return
			}

			if !seenHeader {
				seenHeader = true

				continue
			}

			batch = append(batch, cloneBlob(blob))

			if len(batch) >= batchSize && !flush() {
				return
			}
		}
	}()

	return ch
}

// cloneBlob copies a blob's payload bytes out of the PooledBuffer-backed
// slice they were decoded from, since that buffer is reused on the next
// read.
func cloneBlob(b *pb.Blob) *pb.Blob {
	clone := &pb.Blob{RawSize: b.RawSize}

	switch v := b.Data.(type) {
	case *pb.Blob_Raw:
		clone.Data = &pb.Blob_Raw{Raw: append([]byte(nil), v.Raw...)}
	case *pb.Blob_ZlibData:
		clone.Data = &pb.Blob_ZlibData{ZlibData: append([]byte(nil), v.ZlibData...)}
	case *pb.Blob_LzmaData:
		clone.Data = &pb.Blob_LzmaData{LzmaData: append([]byte(nil), v.LzmaData...)}
	case *pb.Blob_Lz4Data:
		clone.Data = &pb.Blob_Lz4Data{Lz4Data: append([]byte(nil), v.Lz4Data...)}
	case *pb.Blob_ZstdData:
		clone.Data = &pb.Blob_ZstdData{ZstdData: append([]byte(nil), v.ZstdData...)}
	}

	return clone
}

// decodeBatch unpacks and parses every blob in batch, in order.
func decodeBatch(batch []*pb.Blob) ([]model.Entity, error) {
	var entities []model.Entity

	for res := range codec.DecodeBatch(batch) {
		if res.Error != nil {
			return nil, res.Error
		}

		entities = append(entities, res.Value...)
	}

	return entities, nil
}

// processEntity inspects e's tags for URL-bearing ones and records an
// Occurrence for each. The location is resolved once, at the first
// URL-bearing tag, and reused for the rest.
func (d *Driver) processEntity(e model.Entity) error {
	tags := e.GetTags()
	if len(tags) == 0 {
		return nil
	}

	needle := pbf.EntityNeedle(e)

	var pt pbf.Point

	haveLocation := false

	for key, value := range tags {
		if !looksLikeURL(value) {
			continue
		}

		if _, ok := d.allowlist[key]; !ok {
			continue
		}

		if !haveLocation {
			if _, _, err := d.resolve(e, needle, &pt); err != nil {
				return err
			}

			haveLocation = true
		}

		d.findings[value] = append(d.findings[value], Occurrence{
			Type: needle.Type,
			ID:   needle.ID,
			Key:  key,
			Lon:  pt.Lon,
			Lat:  pt.Lat,
		})
		d.numOccurrences++
	}

	return nil
}

// resolve looks up e's location, tracking cost statistics and substituting
// the sentinel point if every resolution path was exhausted.
func (d *Driver) resolve(e model.Entity, needle pbf.Needle, pt *pbf.Point) (ok bool, backrefs int, err error) {
	*pt, ok, backrefs, err = d.reader.Resolve(e)
	if err != nil {
		return false, backrefs, err
	}

	d.numBackrefs += backrefs

	if backrefs > d.mostExpensive.backrefs {
		d.mostExpensive = expensiveObject{needle: needle, backrefs: backrefs}
	}

	if !ok {
		slog.Warn("cannot resolve object to any location", "type", needle.Type, "id", needle.ID)
		*pt = pbf.Point{Lon: sentinelLon, Lat: sentinelLat}
	}

	return ok, backrefs, nil
}

// Findings returns every accumulated (url -> occurrences) pair, sorted by
// URL so that output is deterministic across runs.
func (d *Driver) Findings() []Finding {
	out := make([]Finding, 0, len(d.findings))
	for url, occ := range d.findings {
		out = append(out, Finding{URL: url, Occurrences: occ})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })

	return out
}

// Stats summarizes a completed run, mirroring the end-of-run report the
// original extraction tool printed to help populate the override table.
type Stats struct {
	NumURLs               int
	NumOccurrences        int
	NumBackrefs           int
	MostExpensiveType     model.EntityType
	MostExpensiveID       model.ID
	MostExpensiveBackrefs int
}

// Stats returns a summary of the run so far.
func (d *Driver) Stats() Stats {
	return Stats{
		NumURLs:               len(d.findings),
		NumOccurrences:        d.numOccurrences,
		NumBackrefs:           d.numBackrefs,
		MostExpensiveType:     d.mostExpensive.needle.Type,
		MostExpensiveID:       d.mostExpensive.needle.ID,
		MostExpensiveBackrefs: d.mostExpensive.backrefs,
	}
}
