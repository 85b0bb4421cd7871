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
	"github.com/nabbar/multipath/config"
	"github.com/nabbar/multipath/logger"
	"github.com/nabbar/multipath/metrics"
)

type options struct {
	log     *logger.Logger
	metrics *metrics.Recorder
	cfg     config.Config
}

func defaultOptions() options {
	return options{
		log: logger.Discard(),
		cfg: config.Default(),
	}
}

// Option configures a Connect or Bind call.
type Option func(*options)

// WithLogger routes Connect/Bind/Connection/Listener diagnostics through l.
// The zero option leaves logging discarded.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics registers path latency, backlog outcome and connection-count
// observations against rec. The zero option disables collection.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(o *options) { o.metrics = rec }
}

// WithConfig overrides the default Config (table size, timeouts, explore
// probability, payload size, dispatcher buffering).
func WithConfig(cfg config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}
