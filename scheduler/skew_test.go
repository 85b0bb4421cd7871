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

package scheduler_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/multipath/scheduler"
)

var _ = Describe("path-failure skew", func() {
	It("raises a silent path's latency and steers explore traffic to the survivor", func() {
		t0 := time.Now()
		stats := scheduler.NewStats(2, t0)

		// Path 1 keeps exchanging normally at a small, stable latency.
		stats[1].Sent(t0)
		stats[1].Recv(t0.Add(2 * time.Millisecond))

		// Path 0 sends once and never hears back: its peer has gone silent.
		stats[0].Sent(t0)

		later := t0.Add(500 * time.Millisecond)
		deadLatency := stats[0].Snapshot(later)
		aliveLatency := stats[1].Snapshot(later)
		Expect(deadLatency).To(BeNumerically(">", aliveLatency))

		r := scheduler.NewRank(2, scheduler.DefaultExploreProb)
		r.Update([]time.Duration{deadLatency, aliveLatency})

		exploitDead := 0
		const trials = 2000
		for i := 0; i < trials; i++ {
			if r.ChooseExploit() == 0 {
				exploitDead++
			}
		}
		// The latency-weighted probe sample should favor the silent path in
		// the large majority of draws.
		Expect(exploitDead).To(BeNumerically(">", trials*9/10))

		// Whenever explore fires, it must land on the one surviving
		// alternative, so user traffic keeps reaching the peer.
		for i := 0; i < trials; i++ {
			idx, ok := r.ChooseExplore(0)
			if ok {
				Expect(idx).To(Equal(1))
			}
		}
	})
})
