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

// Package dispatch demultiplexes datagrams arriving on one listening UDP
// socket into per-source-address sub-connections, so the acceptor side of
// the transport can treat each remote path the same way the initiator side
// treats its own directly-dialled sockets.
package dispatch

import (
	"context"
	"io"
	"net"
	"sync"

	"github.com/nabbar/multipath/internal/pool"
)

// Dispatcher owns one listening net.PacketConn and routes its incoming
// datagrams by source address, handing each newly-seen address's first
// datagram (and every one afterward) to a dedicated PeerConn.
type Dispatcher struct {
	pc      net.PacketConn
	bufs    *pool.Buffers
	mu      sync.Mutex
	peers   map[string]*PeerConn
	accept  chan *PeerConn
	closed  chan struct{}
	onClose sync.Once
}

// New returns a Dispatcher reading from pc. acceptBuffer bounds how many
// not-yet-Accepted new peers may queue before Run blocks.
func New(pc net.PacketConn, bufs *pool.Buffers, acceptBuffer int) *Dispatcher {
	return &Dispatcher{
		pc:     pc,
		bufs:   bufs,
		peers:  make(map[string]*PeerConn),
		accept: make(chan *PeerConn, acceptBuffer),
		closed: make(chan struct{}),
	}
}

// Run reads from the listening socket until a read fails (for example
// because Close closed the socket), routing each datagram to its source
// address's PeerConn. ctx is only checked while a newly seen peer waits to
// be handed to Accept; cancelling it does not interrupt a blocked read.
// Run always returns nil.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer d.onClose.Do(func() { close(d.closed) })

	for {
		buf := d.bufs.Get(0)
		n, addr, err := d.pc.ReadFrom(buf)
		if err != nil {
			return nil
		}

		datagram := make([]byte, n)
		copy(datagram, buf[:n])
		d.bufs.Put(0, buf)

		peer, isNew := d.peerFor(addr)
		if isNew {
			select {
			case d.accept <- peer:
			case <-ctx.Done():
				return nil
			}
		}

		peer.deliver(datagram)
	}
}

func (d *Dispatcher) peerFor(addr net.Addr) (*PeerConn, bool) {
	key := addr.String()

	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.peers[key]; ok {
		return p, false
	}

	p := newPeerConn(d.pc, addr)
	d.peers[key] = p
	return p, true
}

// Accept blocks until a new source address is seen, ctx is cancelled, or
// the dispatcher has shut down.
func (d *Dispatcher) Accept(ctx context.Context) (*PeerConn, error) {
	select {
	case p := <-d.accept:
		return p, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.closed:
		return nil, io.EOF
	}
}

// Close closes the underlying listening socket, which in turn ends Run.
func (d *Dispatcher) Close() error {
	return d.pc.Close()
}
