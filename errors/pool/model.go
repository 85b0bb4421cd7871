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

package pool

import (
	"sync"

	liberr "github.com/nabbar/multipath/errors"
)

// mod is the concrete implementation of the Pool interface: a mutex-guarded
// slice, since the pool only ever needs to append and later drain in order.
type mod struct {
	mu sync.Mutex
	e  []error
}

func (o *mod) Add(err ...error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, e := range err {
		if e != nil {
			o.e = append(o.e, e)
		}
	}
}

// Error combines every error added so far using liberr.UnknownError, which
// keeps the result compatible with errors.Is and errors.As.
func (o *mod) Error() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	return liberr.UnknownError.IfError(o.e...)
}
