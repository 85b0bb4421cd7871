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

// Package errors gives the transport a coded error type: every failure
// returned across a package boundary carries a CodeError from a registered
// range (see modules.go and transport.go) instead of an ad hoc string, so
// callers can branch on IsCode without string matching. The pool
// sub-package aggregates independently produced errors (e.g. one per path
// on Close) behind a single combined error.
package errors

import (
	"errors"
)

// Error extends the standard error with the code it was raised with.
type Error interface {
	error

	// IsCode reports whether this error was raised with the given code.
	IsCode(code CodeError) bool

	// GetCode returns the code this error was raised with.
	GetCode() CodeError

	// Unwrap exposes parent errors to errors.Is and errors.As.
	Unwrap() []error
}

type ers struct {
	c uint16
	e string
	p []error
}

func newError(code uint16, message string, parent ...error) Error {
	return &ers{
		c: code,
		e: message,
		p: filterNilErrors(parent),
	}
}

func filterNilErrors(in []error) []error {
	out := make([]error, 0, len(in))
	for _, e := range in {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

func (e *ers) Error() string {
	if len(e.p) == 0 {
		return e.e
	}

	s := e.e
	for _, p := range e.p {
		s += ": " + p.Error()
	}
	return s
}

func (e *ers) IsCode(code CodeError) bool {
	return e.c == code.Uint16()
}

func (e *ers) GetCode() CodeError {
	return CodeError(e.c)
}

func (e *ers) Unwrap() []error {
	return e.p
}

// IsCode reports whether the first Error that errors.As finds in err's chain
// (err itself or an error it wraps) carries the given code. Errors nested
// below that first Error are not examined.
func IsCode(err error, code CodeError) bool {
	var e Error
	if errors.As(err, &e) {
		return e.IsCode(code)
	}
	return false
}
