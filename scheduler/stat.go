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

// Package scheduler implements the per-path latency estimator (Stat) and the
// probabilistic path ranker (Rank) that together pick which socket a
// datagram is sent on.
package scheduler

import (
	"time"

	"github.com/nabbar/multipath/internal/spinlock"
)

// EpsilonLatency is the floor applied to every latency estimate, preventing
// division by zero in Rank.Update.
const EpsilonLatency = time.Millisecond

// Stat is a single path's latency estimator, driven only by local send and
// receive timestamps - there is no RTT acknowledgement on this transport.
// The zero value is not valid; use NewStat.
type Stat struct {
	mu            spinlock.Lock
	lastSentStart time.Time
	lastRecv      time.Time
	prevLatency   time.Duration
}

// NewStat initialises a Stat as of now: a fresh path starts with no
// outstanding send and zero latency history.
func NewStat(now time.Time) *Stat {
	return &Stat{
		lastSentStart: now,
		lastRecv:      now,
	}
}

// Sent records a transmit at now. If a prior send-receive exchange had
// already closed (a receive arrived since the last send), the gap becomes
// the new prevLatency and the send clock restarts. If a send is still
// outstanding with no matching receive, Sent does nothing - the estimator
// does not restart the clock on a second send without an intervening
// receive, preserving the outstanding-gap interpretation of Latency.
func (s *Stat) Sent(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastRecv.Before(s.lastSentStart) {
		return
	}

	s.prevLatency = s.lastRecv.Sub(s.lastSentStart)
	s.lastSentStart = now
}

// Recv records a receive at now, unconditionally.
func (s *Stat) Recv(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRecv = now
}

// Latency returns the current latency estimate, floored at EpsilonLatency.
// If a receive has arrived since the last send, the estimate is the
// measured gap between them. Otherwise a send is outstanding with no
// matching receive, and the estimate inflates with the elapsed silence,
// which raises this path's weight in Rank.
func (s *Stat) Latency(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d time.Duration
	if s.lastSentStart.Before(s.lastRecv) {
		d = s.lastRecv.Sub(s.lastSentStart)
	} else {
		outstanding := now.Sub(s.lastSentStart)
		d = s.prevLatency
		if outstanding > d {
			d = outstanding
		}
	}

	if d < EpsilonLatency {
		return EpsilonLatency
	}
	return d
}

// Snapshot returns the latency estimate as of now without exposing the
// internal lock, for the Rank-update path to copy out of every path's Stat
// in one short pass.
func (s *Stat) Snapshot(now time.Time) time.Duration {
	return s.Latency(now)
}

// NewStats allocates n independent Stat instances, all initialised as of
// now, one per connection path.
func NewStats(n int, now time.Time) []*Stat {
	stats := make([]*Stat, n)
	for i := range stats {
		stats[i] = NewStat(now)
	}
	return stats
}
