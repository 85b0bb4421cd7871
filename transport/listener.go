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
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/nabbar/multipath/backlog"
	liberr "github.com/nabbar/multipath/errors"
	errpool "github.com/nabbar/multipath/errors/pool"
	"github.com/nabbar/multipath/internal/dispatch"
	"github.com/nabbar/multipath/internal/pool"
	"github.com/nabbar/multipath/logger"
	"github.com/nabbar/multipath/metrics"
	"github.com/nabbar/multipath/scheduler"
	"github.com/nabbar/multipath/wire"
)

// Listener accepts multipath Connections assembled from handshake
// datagrams arriving on one or more bound local addresses.
type Listener struct {
	dispatchers []*dispatch.Dispatcher
	group       *errgroup.Group
	cancel      context.CancelFunc
	completed   chan *Connection
	backlog     *backlog.Backlog
	bufs        *pool.Buffers
	log         *logger.Logger
	metrics     *metrics.Recorder
	maxPaths    int
	localAddrs  []net.Addr
	closeOnce   sync.Once
}

// Bind listens on every address in addrs and returns a Listener. Each
// accepted session may carry at most maxSessionPaths sub-connections;
// dispatcherBuffer bounds the per-dispatcher new-peer queue. The Listener's
// completed-connection queue holds up to 64 Connections.
func Bind(ctx context.Context, addrs []net.Addr, maxSessionPaths int, dispatcherBuffer int, opts ...Option) (*Listener, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if len(addrs) == 0 {
		return nil, liberr.SetupInvalidInput.Error()
	}

	gctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(gctx)

	bufs := pool.New(o.cfg.MaxPayload)
	bl := backlog.New(o.cfg.TableMax, o.metrics)

	l := &Listener{
		group:     g,
		cancel:    cancel,
		completed: make(chan *Connection, 64),
		backlog:   bl,
		bufs:      bufs,
		log:       o.log,
		metrics:   o.metrics,
		maxPaths:  maxSessionPaths,
	}

	for _, addr := range addrs {
		pc, err := net.ListenPacket(addr.Network(), addr.String())
		if err != nil {
			cancel()
			return nil, liberr.SetupSocketBind.Error(err)
		}
		l.localAddrs = append(l.localAddrs, pc.LocalAddr())

		d := dispatch.New(pc, bufs, dispatcherBuffer)
		l.dispatchers = append(l.dispatchers, d)

		g.Go(func() error { return d.Run(gctx) })
		g.Go(func() error { return l.acceptLoop(gctx, d, o) })
	}

	g.Go(func() error {
		bl.RunJanitor(gctx, o.cfg.BacklogTimeout)
		return nil
	})

	return l, nil
}

func (l *Listener) acceptLoop(ctx context.Context, d *dispatch.Dispatcher, o options) error {
	for {
		peer, err := d.Accept(ctx)
		if err != nil {
			return nil
		}
		go l.handlePeer(ctx, peer, o)
	}
}

func (l *Listener) handlePeer(ctx context.Context, peer *dispatch.PeerConn, o options) {
	buf := make([]byte, o.cfg.MaxPayload)

	n, err := peer.ReadDatagram(buf)
	if err != nil {
		_ = peer.Close()
		return
	}

	h, err := wire.DecodeHeader(buf[:n])
	if err != nil || h.Init.PathCount == 0 || h.Init.PathCount > uint64(l.maxPaths) {
		l.log.Debug("dropping malformed handshake datagram", logrus.Fields{"remote": peer.RemoteAddr().String()})
		_ = peer.Close()
		return
	}

	completed := l.backlog.Handle(h.Init.Session, peer, int(h.Init.PathCount), time.Now())
	if completed == nil {
		return
	}

	conns := make([]pathConn, len(completed))
	for i, v := range completed {
		conns[i] = v.(*dispatch.PeerConn)
	}

	stats := scheduler.NewStats(len(conns), time.Now())
	in := newFanIn(ctx, conns, stats, l.bufs, true)
	out := newFanOut(conns, stats, nil, o.cfg.ExploreProbability)
	out.metrics = l.metrics

	conn := &Connection{
		in:      in,
		out:     out,
		conns:   conns,
		metrics: l.metrics,
		log:     l.log,
		session: h.Init.Session,
	}
	l.metrics.ConnectionOpened()
	l.log.Info("multipath connection accepted", logrus.Fields{
		"session": uint64(h.Init.Session),
		"paths":   len(conns),
	})

	select {
	case l.completed <- conn:
	case <-ctx.Done():
		_ = conn.Close()
	}
}

// Accept blocks for the next fully-assembled Connection, or returns ctx's
// error if it is cancelled first. A Connection that was already queued
// when ctx is cancelled remains queued for the next Accept call.
func (l *Listener) Accept(ctx context.Context) (*Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case c := <-l.completed:
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// LocalAddrs returns the addresses this Listener actually bound, useful
// when the caller passed an address with an ephemeral port.
func (l *Listener) LocalAddrs() []net.Addr {
	return l.localAddrs
}

// Close shuts down every dispatcher and the janitor goroutine, returning
// the combined error of every failure. It is safe to call more than once.
func (l *Listener) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.cancel()

		p := errpool.New()
		for _, d := range l.dispatchers {
			p.Add(d.Close())
		}
		p.Add(l.group.Wait())
		err = p.Error()
	})
	return err
}
