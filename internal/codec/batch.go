// Copyright 2025 the original author or authors.
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
	"log/slog"

	"github.com/destel/rill"

	"github.com/BenWiederhake/monitor-osm-domains/internal/core"
	"github.com/BenWiederhake/monitor-osm-domains/internal/pb"
	"github.com/BenWiederhake/monitor-osm-domains/model"
)

// DecodeBatch unpacks a batch of primitive blobs in file order and parses
// each into the model entities it contains, sending the per-blob results
// down out in the same order. It stops at the first blob that fails to
// unpack or parse, since a single corrupt blob invalidates the positional
// indexing ScanDriver relies on to keep its decode pipeline ordered.
func DecodeBatch(array []*pb.Blob) (out <-chan rill.Try[[]model.Entity]) {
	ch := make(chan rill.Try[[]model.Entity])
	out = ch

	buf := core.NewPooledBuffer()

	go func() {
		defer close(ch)
		defer buf.Close()

		for i, blob := range array {
			buf.Reset()

			unpacked, err := unpack(buf, blob)
			if err != nil {
				err = fmt.Errorf("unable to unpack blob %d of batch: %w", i, err)
				slog.Error("batch decode failed", "error", err)
				ch <- rill.Try[[]model.Entity]{Error: err}

				return
			}

			entities, err := parsePrimitiveBlock(unpacked)
			if err != nil {
				err = fmt.Errorf("unable to parse primitive block %d of batch: %w", i, err)
				slog.Error("batch decode failed", "error", err)
				ch <- rill.Try[[]model.Entity]{Error: err}

				return
			}

			ch <- rill.Try[[]model.Entity]{Value: entities}
		}
	}()

	return out
}
