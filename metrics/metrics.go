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

// Package metrics exposes optional Prometheus instrumentation for the
// transport. A nil *Recorder disables collection without branching at call
// sites: every method is nil-receiver safe.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome names a backlog admission result, mirroring the codes registered
// in the errors package's transport backlog taxonomy.
type Outcome string

const (
	OutcomeAssembled      Outcome = "assembled"
	OutcomeDroppedFull    Outcome = "dropped_full"
	OutcomeDroppedTimeout Outcome = "dropped_timeout"
)

// Recorder wraps the Prometheus collectors this transport exercises. The
// zero value is not usable directly; use New or a nil *Recorder.
type Recorder struct {
	pathLatency *prometheus.GaugeVec
	backlog     *prometheus.CounterVec
	connections prometheus.Gauge
}

// New creates a Recorder and registers its collectors against reg. Passing
// prometheus.DefaultRegisterer matches the common embedding pattern.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		pathLatency: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "multipath_path_latency_seconds",
			Help: "Estimated one-way latency of a connection path, in seconds.",
		}, []string{"path"}),
		backlog: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "multipath_backlog_total",
			Help: "Backlog admission outcomes by result.",
		}, []string{"outcome"}),
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "multipath_connections",
			Help: "Number of live multipath connections.",
		}),
	}

	for _, c := range []prometheus.Collector{r.pathLatency, r.backlog, r.connections} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// ObservePathLatency records the current latency estimate for one path.
func (r *Recorder) ObservePathLatency(pathIndex int, seconds float64) {
	if r == nil {
		return
	}
	r.pathLatency.WithLabelValues(strconv.Itoa(pathIndex)).Set(seconds)
}

// IncBacklog counts one backlog admission outcome.
func (r *Recorder) IncBacklog(o Outcome) {
	if r == nil {
		return
	}
	r.backlog.WithLabelValues(string(o)).Inc()
}

// ConnectionOpened increments the live-connection gauge.
func (r *Recorder) ConnectionOpened() {
	if r == nil {
		return
	}
	r.connections.Inc()
}

// ConnectionClosed decrements the live-connection gauge.
func (r *Recorder) ConnectionClosed() {
	if r == nil {
		return
	}
	r.connections.Dec()
}
