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

package dispatch

import (
	"io"
	"net"
	"sync"
)

// PeerConn is one remote address's share of a dispatcher's listening
// socket: a virtual sub-connection fed by the dispatcher's read loop and
// written to directly via the shared socket's WriteTo.
type PeerConn struct {
	pc   net.PacketConn
	addr net.Addr
	rx   chan []byte
	done chan struct{}
	once sync.Once
}

func newPeerConn(pc net.PacketConn, addr net.Addr) *PeerConn {
	return &PeerConn{
		pc:   pc,
		addr: addr,
		rx:   make(chan []byte, 8),
		done: make(chan struct{}),
	}
}

func (p *PeerConn) deliver(datagram []byte) {
	select {
	case p.rx <- datagram:
	case <-p.done:
	}
}

// ReadDatagram blocks for the next datagram from this peer and copies it
// into buf, returning the copied length. It returns io.EOF once the peer
// has been closed.
func (p *PeerConn) ReadDatagram(buf []byte) (int, error) {
	select {
	case datagram, ok := <-p.rx:
		if !ok {
			return 0, io.EOF
		}
		return copy(buf, datagram), nil
	case <-p.done:
		return 0, io.EOF
	}
}

// WriteDatagram sends buf back to this peer's source address on the shared
// listening socket.
func (p *PeerConn) WriteDatagram(buf []byte) (int, error) {
	return p.pc.WriteTo(buf, p.addr)
}

// RemoteAddr returns the peer's source address.
func (p *PeerConn) RemoteAddr() net.Addr {
	return p.addr
}

// Close marks this peer as done; further ReadDatagram calls return io.EOF.
// It does not close the shared listening socket.
func (p *PeerConn) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}
