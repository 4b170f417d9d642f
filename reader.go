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

import "github.com/BenWiederhake/monitor-osm-domains/model"

// Reader is the package's main entry point: a random-access view over one
// sorted OSM PBF file, combining a BlockIndex, a BlockCache, an
// ObjectLookup, and a LocationResolver behind a single Open/Close
// lifecycle.
type Reader struct {
	index    *BlockIndex
	cache    *BlockCache
	lookup   *ObjectLookup
	resolver *LocationResolver
}

// Open builds a Reader over the file at path, running the one-time
// sequential BlobFramer pass immediately. The returned Reader must be
// closed by the caller.
func Open(path string) (*Reader, error) {
	index, err := OpenBlockIndex(path)
	if err != nil {
		return nil, err
	}

	cache := NewBlockCache(index, DefaultIdealCacheSize)
	lookup := NewObjectLookup(index, cache)

	return &Reader{
		index:    index,
		cache:    cache,
		lookup:   lookup,
		resolver: NewLocationResolver(lookup),
	}, nil
}

// Close releases the underlying file descriptor.
func (r *Reader) Close() error {
	return r.index.Close()
}

// Resolve reduces obj to a single (lon, lat) location, following member
// references through the file's ObjectLookup as needed. See
// LocationResolver.Resolve.
func (r *Reader) Resolve(obj model.Entity) (pt Point, ok bool, backrefs int, err error) {
	return r.resolver.Resolve(obj)
}
