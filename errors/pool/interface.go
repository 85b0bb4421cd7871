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

// Package pool aggregates independently produced errors - e.g. one per path
// when a Connection or Listener closes every socket - behind a single
// combined error, so Close can report every failure instead of only the
// first one.
//
// Example usage:
//
//	p := pool.New()
//	for _, conn := range conns {
//	    p.Add(conn.Close())
//	}
//	return p.Error()
package pool

// Pool collects errors from concurrent goroutines and combines them into a
// single error. A Pool is safe for concurrent use.
type Pool interface {
	// Add appends any non-nil errors to the pool. This is thread-safe and
	// may be called concurrently.
	Add(err ...error)

	// Error returns a combined error for every error added so far, or nil
	// if none were added.
	Error() error
}

// New returns an empty Pool.
func New() Pool {
	return &mod{}
}
