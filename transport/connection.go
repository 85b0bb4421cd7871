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
	"sync"

	errpool "github.com/nabbar/multipath/errors/pool"
	"github.com/nabbar/multipath/logger"
	"github.com/nabbar/multipath/metrics"
	"github.com/nabbar/multipath/wire"
)

// Connection is one logical multipath session: a set of paths fanned in
// for Recv and fanned out for Send, identified by the session id agreed
// during the handshake.
type Connection struct {
	in        *fanIn
	out       *fanOut
	conns     []pathConn
	metrics   *metrics.Recorder
	log       *logger.Logger
	session   wire.Session
	closeOnce sync.Once
}

// Session returns the session id this connection was established under.
func (c *Connection) Session() wire.Session {
	return c.session
}

// Send transmits buf as one user datagram, chosen and framed by the
// fan-out scheduler.
func (c *Connection) Send(buf []byte) (int, error) {
	return c.out.send(buf)
}

// Recv blocks for the next user datagram across every path, copying it
// into buf.
func (c *Connection) Recv(buf []byte) (int, error) {
	return c.in.recv(buf)
}

// TryRecv is Recv's non-blocking counterpart: ok is false if no datagram
// was queued.
func (c *Connection) TryRecv(buf []byte) (int, bool, error) {
	return c.in.tryRecv(buf)
}

// Split returns independently-ownable read and write halves of this
// connection, for callers that want to hand receiving and sending to
// different goroutines.
func (c *Connection) Split() (*Reader, *Writer) {
	return &Reader{c: c}, &Writer{c: c}
}

// Close shuts down every path's goroutines and sockets, returning the
// combined error of every path that failed to close. It is safe to call
// more than once.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.in.close()

		p := errpool.New()
		for _, conn := range c.conns {
			p.Add(conn.Close())
		}
		err = p.Error()

		c.metrics.ConnectionClosed()
	})
	return err
}

// Reader is the read half of a split Connection.
type Reader struct {
	c *Connection
}

// Recv delegates to the underlying Connection.
func (r *Reader) Recv(buf []byte) (int, error) {
	return r.c.Recv(buf)
}

// TryRecv delegates to the underlying Connection.
func (r *Reader) TryRecv(buf []byte) (int, bool, error) {
	return r.c.TryRecv(buf)
}

// Writer is the write half of a split Connection.
type Writer struct {
	c *Connection
}

// Send delegates to the underlying Connection.
func (w *Writer) Send(buf []byte) (int, error) {
	return w.c.Send(buf)
}

func closeAll(conns []pathConn) {
	for _, c := range conns {
		if c != nil {
			_ = c.Close()
		}
	}
}
