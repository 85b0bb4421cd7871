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

package scheduler

import (
	"math/rand"
	"time"
)

// RankUpdateCooldown bounds how often Rank.Update is allowed to recompute
// the weight distribution; callers snapshot their own "last update" time
// and only call Update after this much has elapsed.
const RankUpdateCooldown = time.Second

// DefaultExploreProb is the chance, per send, that ChooseExplore abstains
// instead of returning an alternate path.
const DefaultExploreProb = 0.3

// Rank holds a probability distribution over a connection's paths, weighted
// by latency so that slower paths carry higher weight.
//
// choose_exploit samples this latency-weighted distribution - it is, despite
// the name retained from the design this is based on, the sample biased
// toward the path most in need of a fresh probe. choose_explore is the
// uniform alternate-path sample that actually carries most live traffic away
// from a misbehaving path. Both paths are written to when explore fires, so
// user data keeps flowing on the healthy path regardless of which sampler a
// reader calls "the real" one.
type Rank struct {
	weights     []float64
	exploreProb float64
	rng         *rand.Rand
}

// NewRank returns a Rank over n paths, initialised to a uniform 1/n
// distribution.
func NewRank(n int, exploreProb float64) *Rank {
	w := make([]float64, n)
	if n > 0 {
		u := 1.0 / float64(n)
		for i := range w {
			w[i] = u
		}
	}

	if exploreProb <= 0 {
		exploreProb = DefaultExploreProb
	}

	return &Rank{
		weights:     w,
		exploreProb: exploreProb,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Len returns the number of paths this Rank covers.
func (r *Rank) Len() int {
	return len(r.weights)
}

// Update recomputes each path's weight as latency_i / sum(latency), each
// latency floored at EpsilonLatency by the caller's Stat.Latency call.
// After Update, the weights sum to 1.
func (r *Rank) Update(latencies []time.Duration) {
	var sum time.Duration
	for _, l := range latencies {
		if l < EpsilonLatency {
			l = EpsilonLatency
		}
		sum += l
	}

	if sum <= 0 {
		return
	}

	for i, l := range latencies {
		if l < EpsilonLatency {
			l = EpsilonLatency
		}
		r.weights[i] = l.Seconds() / sum.Seconds()
	}
}

// ChooseExploit draws a random index from the latency-weighted distribution:
// draw r in [0,1), scan prefix sums, return the first index whose
// cumulative weight exceeds r, falling back to the last index on numerical
// shortfall. Calling this on a zero-length Rank is a configuration error the
// caller must have already rejected at Connect/Bind time.
func (r *Rank) ChooseExploit() int {
	remaining := r.rng.Float64()
	for i, w := range r.weights {
		if remaining < w {
			return i
		}
		remaining -= w
	}
	return len(r.weights) - 1
}

// ChooseExplore returns a uniformly random path index other than except,
// with probability 1-exploreProb; with probability exploreProb it abstains
// (returns ok=false), meaning no exploration fires this tick.
func (r *Rank) ChooseExplore(except int) (index int, ok bool) {
	if r.rng.Float64() < r.exploreProb {
		return 0, false
	}

	n := len(r.weights)
	if n < 2 {
		return 0, false
	}

	next := r.rng.Intn(n - 1)
	if next >= except {
		next++
	}
	return next, true
}
