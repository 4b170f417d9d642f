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

// Package core holds small pieces of plumbing shared by the codec and
// random-access reader packages that don't belong in either.
package core

import (
	"bytes"
	"io"
	"sync"
)

var bufferPool = sync.Pool{
	New: func() any {
		return &bytes.Buffer{}
	},
}

// PooledBuffer is a bytes.Buffer borrowed from a package-level sync.Pool.
// Callers must call Close once they are done with it to return the backing
// buffer to the pool. This avoids re-allocating the (potentially multi-MiB)
// decompression scratch space for every blob in a file.
type PooledBuffer struct {
	buf *bytes.Buffer
}

// NewPooledBuffer borrows a buffer from the pool. The buffer is reset before
// being handed out, so it is always empty on return.
func NewPooledBuffer() *PooledBuffer {
	buf, _ := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()

	return &PooledBuffer{buf: buf}
}

// Close returns the underlying buffer to the pool. The PooledBuffer must not
// be used again afterwards.
func (p *PooledBuffer) Close() {
	if p.buf == nil {
		return
	}

	bufferPool.Put(p.buf)
	p.buf = nil
}

// Reset empties the buffer without releasing its backing array.
func (p *PooledBuffer) Reset() {
	p.buf.Reset()
}

// Bytes returns the unread portion of the buffer.
func (p *PooledBuffer) Bytes() []byte {
	return p.buf.Bytes()
}

// Len returns the number of unread bytes in the buffer.
func (p *PooledBuffer) Len() int {
	return p.buf.Len()
}

// Cap returns the capacity of the buffer's backing array.
func (p *PooledBuffer) Cap() int {
	return p.buf.Cap()
}

// Grow grows the buffer's capacity to guarantee space for n more bytes.
func (p *PooledBuffer) Grow(n int) {
	p.buf.Grow(n)
}

// Write appends b to the buffer, implementing io.Writer.
func (p *PooledBuffer) Write(b []byte) (int, error) {
	return p.buf.Write(b)
}

// ReadFrom reads from r until EOF, implementing io.ReaderFrom.
func (p *PooledBuffer) ReadFrom(r io.Reader) (int64, error) {
	return p.buf.ReadFrom(r)
}
