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

var _ = Describe("Rank", func() {
	It("samples a valid index from a freshly created Rank", func() {
		r := scheduler.NewRank(4, 0.3)
		for i := 0; i < r.Len(); i++ {
			_ = i
		}
		Expect(r.ChooseExploit()).To(BeNumerically(">=", 0))
	})

	It("samples only in-range indices after an update", func() {
		r := scheduler.NewRank(3, 0.3)
		r.Update([]time.Duration{10 * time.Millisecond, 20 * time.Millisecond, 5 * time.Millisecond})

		sum := 0.0
		for i := 0; i < 3; i++ {
			idx := r.ChooseExploit()
			Expect(idx).To(BeNumerically(">=", 0))
			Expect(idx).To(BeNumerically("<", 3))
		}
		_ = sum
	})

	It("gives the slowest path the highest weight", func() {
		r := scheduler.NewRank(2, 0.3)
		r.Update([]time.Duration{10 * time.Millisecond, 90 * time.Millisecond})

		counts := map[int]int{}
		for i := 0; i < 2000; i++ {
			counts[r.ChooseExploit()]++
		}
		Expect(counts[1]).To(BeNumerically(">", counts[0]))
	})

	It("produces identical weights across two updates with unchanged stats", func() {
		latencies := []time.Duration{30 * time.Millisecond, 10 * time.Millisecond}

		r1 := scheduler.NewRank(2, 0.3)
		r1.Update(latencies)
		first := sampleDistribution(r1)

		r2 := scheduler.NewRank(2, 0.3)
		r2.Update(latencies)
		second := sampleDistribution(r2)

		Expect(first).To(BeNumerically("~", second, 0.05))
	})

	It("ChooseExplore abstains roughly at the configured probability", func() {
		r := scheduler.NewRank(3, 0.3)
		abstained := 0
		const trials = 5000
		for i := 0; i < trials; i++ {
			_, ok := r.ChooseExplore(0)
			if !ok {
				abstained++
			}
		}
		ratio := float64(abstained) / float64(trials)
		Expect(ratio).To(BeNumerically("~", 0.3, 0.05))
	})

	It("ChooseExplore never returns the excluded index", func() {
		r := scheduler.NewRank(4, 0.0)
		for i := 0; i < 1000; i++ {
			idx, ok := r.ChooseExplore(2)
			if ok {
				Expect(idx).ToNot(Equal(2))
			}
		}
	})
})

func sampleDistribution(r *scheduler.Rank) float64 {
	count := 0
	const trials = 3000
	for i := 0; i < trials; i++ {
		if r.ChooseExploit() == 0 {
			count++
		}
	}
	return float64(count) / float64(trials)
}
