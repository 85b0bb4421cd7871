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

package transport

import (
	"context"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/multipath/config"
	liberr "github.com/nabbar/multipath/errors"
	"github.com/nabbar/multipath/wire"
)

// This file is an internal (package transport) test, not transport_test,
// because it reaches into Connection.conns to inject a malformed datagram on
// an already-established path - something the public API has no way to do.
var _ = Describe("header tamper", func() {
	It("surfaces a bad-packet error on the acceptor when has_payload is invalid", func() {
		acceptAddr := &net.UDPAddr{IP: net.ParseIP("127.0.0.1"), Port: 0}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		ln, err := Bind(ctx, []net.Addr{acceptAddr}, 1, 8, WithConfig(config.Default()))
		Expect(err).ToNot(HaveOccurred())
		defer ln.Close()

		initiator, err := Connect(ctx, ln.LocalAddrs(), WithConfig(config.Default()))
		Expect(err).ToNot(HaveOccurred())
		defer initiator.Close()

		acceptCtx, acceptCancel := context.WithTimeout(ctx, 2*time.Second)
		defer acceptCancel()
		acceptor, err := ln.Accept(acceptCtx)
		Expect(err).ToNot(HaveOccurred())
		defer acceptor.Close()

		// sanity: the path works before it is tampered with
		_, err = initiator.Send([]byte("ok"))
		Expect(err).ToNot(HaveOccurred())
		buf := make([]byte, 64)
		n, err := acceptor.Recv(buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(buf[:n])).To(Equal("ok"))

		tampered := wire.EncodeHeader(wire.Init{Session: initiator.Session(), PathCount: 1}, false)
		tampered[wire.InitSize] = 0x02
		_, err = initiator.conns[0].WriteDatagram(tampered)
		Expect(err).ToNot(HaveOccurred())

		_, err = acceptor.Recv(buf)
		Expect(err).To(HaveOccurred())
		Expect(liberr.IsCode(err, liberr.ReceiveBadPacket)).To(BeTrue())
	})
})
