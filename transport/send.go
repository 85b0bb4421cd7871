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
	"time"

	liberr "github.com/nabbar/multipath/errors"
	"github.com/nabbar/multipath/metrics"
	"github.com/nabbar/multipath/scheduler"
	"github.com/nabbar/multipath/wire"
)

// fanOut picks which path (or two) carry each outbound datagram, driven by
// a Rank kept fresh from the shared per-path Stats no more than once per
// scheduler.RankUpdateCooldown.
type fanOut struct {
	mu             sync.Mutex
	conns          []pathConn
	stats          []*scheduler.Stat
	rank           *scheduler.Rank
	lastRankUpdate time.Time
	init           *wire.Init
	scratch        []byte
	metrics        *metrics.Recorder
}

func newFanOut(conns []pathConn, stats []*scheduler.Stat, init *wire.Init, exploreProb float64) *fanOut {
	return &fanOut{
		conns:          conns,
		stats:          stats,
		rank:           scheduler.NewRank(len(conns), exploreProb),
		lastRankUpdate: time.Now(),
		init:           init,
	}
}

func (f *fanOut) send(buf []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := time.Now()
	if now.Sub(f.lastRankUpdate) > scheduler.RankUpdateCooldown {
		latencies := make([]time.Duration, len(f.stats))
		for i, s := range f.stats {
			l := s.Snapshot(now)
			latencies[i] = l
			f.metrics.ObservePathLatency(i, l.Seconds())
		}
		f.rank.Update(latencies)
		f.lastRankUpdate = now
	}

	out := buf
	if f.init != nil {
		header := wire.EncodeHeader(*f.init, true)
		f.scratch = append(f.scratch[:0], header...)
		f.scratch = append(f.scratch, buf...)
		out = f.scratch
	}

	exploit := f.rank.ChooseExploit()

	if explore, ok := f.rank.ChooseExplore(exploit); ok {
		if _, err := f.conns[explore].WriteDatagram(out); err != nil {
			return 0, liberr.SendSocketWrite.Error(err)
		}
		f.stats[explore].Sent(now)
	}

	n, err := f.conns[exploit].WriteDatagram(out)
	if err != nil {
		return 0, liberr.SendSocketWrite.Error(err)
	}
	f.stats[exploit].Sent(now)

	return n, nil
}
