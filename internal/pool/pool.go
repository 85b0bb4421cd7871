/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package pool provides a sharded byte-buffer pool sized for UDP datagrams,
// avoiding a per-datagram allocation on the receive fan-in hot path.
package pool

import "sync"

// Shards is the number of independent sync.Pool instances backing a Buffers
// pool, chosen to match the per-path contention this transport expects.
const Shards = 4

// Buffers is a sharded pool of fixed-capacity byte slices.
type Buffers struct {
	size   int
	shards [Shards]sync.Pool
}

// New returns a Buffers pool whose buffers have capacity size.
func New(size int) *Buffers {
	b := &Buffers{size: size}
	for i := range b.shards {
		b.shards[i].New = func() interface{} {
			buf := make([]byte, size)
			return &buf
		}
	}
	return b
}

// Get returns a buffer of cap(size) from the shard selected by pathIndex,
// so concurrent per-path receive goroutines rarely contend on the same
// shard's internal lock.
func (b *Buffers) Get(pathIndex int) []byte {
	shard := &b.shards[pathIndex%Shards]
	buf := shard.Get().(*[]byte)
	return (*buf)[:b.size]
}

// Put returns buf to the shard selected by pathIndex for reuse.
func (b *Buffers) Put(pathIndex int, buf []byte) {
	if cap(buf) < b.size {
		return
	}
	buf = buf[:b.size]
	shard := &b.shards[pathIndex%Shards]
	shard.Put(&buf)
}
