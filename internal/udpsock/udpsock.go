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

// Package udpsock adapts a connected *net.UDPConn (the initiator's per-path
// socket, already Dial'd to one remote address) to the read/write datagram
// shape the transport package's fan-in and fan-out use.
package udpsock

import "net"

// Conn wraps one connected UDP socket, giving it the ReadDatagram/
// WriteDatagram shape shared with the acceptor-side dispatcher's PeerConn.
type Conn struct {
	uc *net.UDPConn
}

// New wraps uc. uc must already be connected via net.DialUDP.
func New(uc *net.UDPConn) *Conn {
	return &Conn{uc: uc}
}

// ReadDatagram reads one datagram into buf, returning the number of bytes
// read. A read larger than len(buf) is truncated by the kernel, matching
// plain UDP socket semantics.
func (c *Conn) ReadDatagram(buf []byte) (int, error) {
	return c.uc.Read(buf)
}

// WriteDatagram writes buf as a single datagram to the connected peer.
func (c *Conn) WriteDatagram(buf []byte) (int, error) {
	return c.uc.Write(buf)
}

// LocalAddr returns the socket's local address.
func (c *Conn) LocalAddr() net.Addr {
	return c.uc.LocalAddr()
}

// Close closes the underlying socket.
func (c *Conn) Close() error {
	return c.uc.Close()
}
