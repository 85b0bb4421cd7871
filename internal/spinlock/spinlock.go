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

// Package spinlock provides a test-and-set mutex for critical sections that
// are expected to hold for nanoseconds, such as the per-path Stat updates:
// a goroutine park/unpark round trip would cost more than the work itself.
package spinlock

import (
	"runtime"
	"sync/atomic"
)

// Lock is a spinning mutex. The zero value is unlocked and ready to use.
type Lock struct {
	state uint32
}

// Lock blocks until the lock is acquired, yielding the processor between
// attempts instead of sleeping.
func (l *Lock) Lock() {
	for !atomic.CompareAndSwapUint32(&l.state, 0, 1) {
		runtime.Gosched()
	}
}

// Unlock releases the lock. Calling Unlock on an already-unlocked Lock is a
// programming error, same as sync.Mutex.
func (l *Lock) Unlock() {
	atomic.StoreUint32(&l.state, 0)
}
