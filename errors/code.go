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

package errors

// Message builds the text for a registered CodeError.
type Message func(code CodeError) (message string)

// CodeError is a numeric error classification, grouped into per-package
// ranges by the MinPkg* constants in modules.go.
type CodeError uint16

const (
	// UnknownError is the zero code, used when no range claims an error.
	UnknownError CodeError = 0

	// UnknownMessage is returned for any code with no registered message.
	UnknownMessage = "unknown error"
)

var idMsgFct = make(map[CodeError]Message)

// RegisterIdFctMessage associates a message function with every code at or
// above minCode, up to the next registered range. Called once per range from
// that range's init().
func RegisterIdFctMessage(minCode CodeError, fct Message) {
	idMsgFct[minCode] = fct
}

// Uint16 returns the CodeError as a uint16.
func (c CodeError) Uint16() uint16 {
	return uint16(c)
}

// Message returns the registered message text for c, or UnknownMessage.
func (c CodeError) Message() string {
	if c == UnknownError {
		return UnknownMessage
	}

	if f, ok := idMsgFct[findCodeErrorInMapMessage(c)]; ok {
		if m := f(c); m != "" {
			return m
		}
	}

	return UnknownMessage
}

// Error returns a new Error carrying this code, its registered message, and
// the given parents.
func (c CodeError) Error(parent ...error) Error {
	return newError(c.Uint16(), c.Message(), parent...)
}

// IfError returns a new Error carrying this code if any of the given parents
// is non-nil; otherwise it returns nil.
func (c CodeError) IfError(parent ...error) Error {
	p := filterNilErrors(parent)
	if len(p) == 0 {
		return nil
	}
	return newError(c.Uint16(), c.Message(), p...)
}

func findCodeErrorInMapMessage(code CodeError) CodeError {
	var res CodeError

	for k := range idMsgFct {
		if k <= code && k > res {
			res = k
		}
	}

	return res
}
