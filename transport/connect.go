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

	"github.com/sirupsen/logrus"

	liberr "github.com/nabbar/multipath/errors"
	"github.com/nabbar/multipath/internal/pool"
	"github.com/nabbar/multipath/internal/udpsock"
	"github.com/nabbar/multipath/scheduler"
	"github.com/nabbar/multipath/wire"
)

// Connect dials one UDP socket per address in addrs, announces a fresh
// session id to the peer by sending a header-only handshake datagram
// (has_payload=0) on every path, and returns a Connection ready for
// Send/Recv without waiting for a reply.
func Connect(ctx context.Context, addrs []net.Addr, opts ...Option) (*Connection, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if len(addrs) == 0 {
		return nil, liberr.SetupInvalidInput.Error()
	}

	bufs := pool.New(o.cfg.MaxPayload)
	conns := make([]pathConn, len(addrs))

	for i, addr := range addrs {
		udpAddr, err := net.ResolveUDPAddr(addr.Network(), addr.String())
		if err != nil {
			closeAll(conns[:i])
			return nil, liberr.SetupInvalidInput.Error(err)
		}

		uc, err := net.DialUDP(udpAddr.Network(), nil, udpAddr)
		if err != nil {
			closeAll(conns[:i])
			return nil, liberr.SetupSocketDial.Error(err)
		}

		conns[i] = udpsock.New(uc)
	}

	session, err := wire.NewSession()
	if err != nil {
		closeAll(conns)
		return nil, liberr.SetupInvalidInput.Error(err)
	}

	init := wire.Init{Session: session, PathCount: uint64(len(conns))}
	handshake := wire.EncodeHeader(init, false)

	for _, c := range conns {
		if _, err := c.WriteDatagram(handshake); err != nil {
			closeAll(conns)
			return nil, liberr.SetupSocketDial.Error(err)
		}
	}

	stats := scheduler.NewStats(len(conns), time.Now())
	in := newFanIn(ctx, conns, stats, bufs, false)
	out := newFanOut(conns, stats, &init, o.cfg.ExploreProbability)
	out.metrics = o.metrics

	o.metrics.ConnectionOpened()
	o.log.Info("multipath connection established", logrus.Fields{
		"session": uint64(session),
		"paths":   len(conns),
	})

	return &Connection{
		in:      in,
		out:     out,
		conns:   conns,
		metrics: o.metrics,
		log:     o.log,
		session: session,
	}, nil
}
