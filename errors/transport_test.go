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

package errors_test

import (
	"errors"

	. "github.com/nabbar/multipath/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("transport error codes", func() {
	It("gives each setup code a distinct, non-empty message", func() {
		Expect(SetupInvalidInput.Message()).To(Equal("no path addresses given"))
		Expect(SetupSocketBind.Message()).ToNot(BeEmpty())
		Expect(SetupSocketDial.Message()).ToNot(BeEmpty())
		Expect(SetupSocketBind.Message()).ToNot(Equal(SetupSocketDial.Message()))
	})

	It("gives each receive code a distinct, non-empty message", func() {
		Expect(ReceiveDead.Message()).ToNot(BeEmpty())
		Expect(ReceiveBadPacket.Message()).ToNot(BeEmpty())
		Expect(ReceiveDead.Message()).ToNot(Equal(ReceiveBadPacket.Message()))
	})

	It("gives the send code a non-empty message", func() {
		Expect(SendSocketWrite.Message()).ToNot(BeEmpty())
	})

	It("gives each backlog outcome a distinct, non-empty message", func() {
		Expect(BacklogDropFull.Message()).ToNot(BeEmpty())
		Expect(BacklogDropTimeout.Message()).ToNot(BeEmpty())
		Expect(BacklogDropFull.Message()).ToNot(Equal(BacklogDropTimeout.Message()))
	})

	It("wraps a setup error with the propagated OS error as parent", func() {
		cause := errors.New("connection refused")
		err := SetupSocketDial.Error(cause)
		Expect(err.IsCode(SetupSocketDial)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("connection refused"))
	})
})
