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
	"time"

	"golang.org/x/sync/errgroup"

	liberr "github.com/nabbar/multipath/errors"
	"github.com/nabbar/multipath/internal/pool"
	"github.com/nabbar/multipath/scheduler"
	"github.com/nabbar/multipath/wire"
)

type inboundMsg struct {
	path int
	n    int
	buf  []byte
}

// fanIn merges N per-path receive goroutines into one bounded channel,
// stamping each path's Stat and optionally stripping the wire header.
type fanIn struct {
	msgs        chan inboundMsg
	cancel      context.CancelFunc
	stats       []*scheduler.Stat
	bufs        *pool.Buffers
	stripHeader bool
}

func newFanIn(ctx context.Context, conns []pathConn, stats []*scheduler.Stat, bufs *pool.Buffers, stripHeader bool) *fanIn {
	gctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(gctx)

	f := &fanIn{
		msgs:        make(chan inboundMsg, 1),
		cancel:      cancel,
		stats:       stats,
		bufs:        bufs,
		stripHeader: stripHeader,
	}

	for i, c := range conns {
		i, c := i, c
		g.Go(func() error {
			for {
				buf := f.bufs.Get(i)
				n, err := c.ReadDatagram(buf)
				if err != nil {
					f.bufs.Put(i, buf)
					return nil
				}

				select {
				case f.msgs <- inboundMsg{path: i, n: n, buf: buf}:
				case <-gctx.Done():
					f.bufs.Put(i, buf)
					return nil
				}
			}
		})
	}

	go func() {
		_ = g.Wait()
		close(f.msgs)
	}()

	return f
}

// consume applies header-stripping framing to one inbound datagram and
// copies its payload into dst, returning the copied length. It always
// returns bufs ownership of msg.buf before returning.
func (f *fanIn) consume(msg inboundMsg, dst []byte) (int, error) {
	raw := msg.buf[:msg.n]

	if !f.stripHeader {
		n := copy(dst, raw)
		f.bufs.Put(msg.path, msg.buf)
		return n, nil
	}

	h, err := wire.DecodeHeader(raw)
	if err != nil {
		f.bufs.Put(msg.path, msg.buf)
		return 0, liberr.ReceiveBadPacket.Error(err)
	}

	if !h.HasPayload {
		f.bufs.Put(msg.path, msg.buf)
		return -1, nil
	}

	n := copy(dst, raw[wire.HeaderSize:])
	f.bufs.Put(msg.path, msg.buf)
	return n, nil
}

// recv blocks for the next user datagram, stamping the originating path's
// Stat. Handshake-continuation datagrams (has_payload=false) are silently
// skipped. It returns a ReceiveDead error once every per-path goroutine has
// exited.
func (f *fanIn) recv(dst []byte) (int, error) {
	for {
		msg, ok := <-f.msgs
		if !ok {
			return 0, liberr.ReceiveDead.Error()
		}

		f.stats[msg.path].Recv(time.Now())

		n, err := f.consume(msg, dst)
		if err != nil {
			return 0, err
		}
		if n < 0 {
			continue
		}
		return n, nil
	}
}

// tryRecv is recv's non-blocking counterpart.
func (f *fanIn) tryRecv(dst []byte) (int, bool, error) {
	for {
		select {
		case msg, ok := <-f.msgs:
			if !ok {
				return 0, false, liberr.ReceiveDead.Error()
			}

			f.stats[msg.path].Recv(time.Now())

			n, err := f.consume(msg, dst)
			if err != nil {
				return 0, false, err
			}
			if n < 0 {
				continue
			}
			return n, true, nil
		default:
			return 0, false, nil
		}
	}
}

func (f *fanIn) close() {
	f.cancel()
}
