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

// Package backlog implements the acceptor's bounded session-assembly table:
// it groups the N independently-arriving handshake datagrams of one session
// into a single completed list, tolerating any arrival order, and bounds
// memory under flooding by capping the number of in-progress sessions.
package backlog

import (
	"context"
	"sync"
	"time"

	libatm "github.com/nabbar/multipath/atomic"
	"github.com/nabbar/multipath/metrics"
	"github.com/nabbar/multipath/wire"
)

// entry is one session's in-progress assembly. Its own mutex guards appends
// so that concurrent acceptor goroutines assembling different sessions
// never contend on a single table-wide lock.
type entry struct {
	mu         sync.Mutex
	values     []interface{}
	expectedN  int
	lastUpdate time.Time
}

// Backlog is a bounded mapping from session id to a partial assembly of
// that session's sub-connections. It is safe for concurrent use by every
// acceptor goroutine. The table itself is a typed wrapper over sync.Map
// (github.com/nabbar/multipath/atomic); a short-lived mutex serializes only
// the admission-control decision for a session not yet seen.
type Backlog struct {
	admit    sync.Mutex
	table    libatm.MapTyped[wire.Session, *entry]
	tableMax int
	metrics  *metrics.Recorder
}

// New returns an empty Backlog admitting at most tableMax concurrent
// in-progress sessions.
func New(tableMax int, rec *metrics.Recorder) *Backlog {
	return &Backlog{
		table:    libatm.NewMapTyped[wire.Session, *entry](),
		tableMax: tableMax,
		metrics:  rec,
	}
}

// Handle appends value to session's partial assembly. If this completes the
// assembly (its length reaches expectedN), the completed, now-removed list
// is returned; otherwise Handle returns nil. If no entry for session exists
// and the table is already at capacity, value is dropped (admission
// control) and Handle returns nil without creating an entry.
func (b *Backlog) Handle(session wire.Session, value interface{}, expectedN int, now time.Time) []interface{} {
	e, ok := b.table.Load(session)
	if !ok {
		b.admit.Lock()
		if e, ok = b.table.Load(session); !ok {
			if b.Len() >= b.tableMax {
				b.admit.Unlock()
				b.metrics.IncBacklog(metrics.OutcomeDroppedFull)
				return nil
			}
			e = &entry{expectedN: expectedN, lastUpdate: now}
			b.table.Store(session, e)
		}
		b.admit.Unlock()
	}

	e.mu.Lock()
	e.values = append(e.values, value)
	e.lastUpdate = now
	done := len(e.values) >= e.expectedN
	var completed []interface{}
	if done {
		completed = e.values
	}
	e.mu.Unlock()

	if !done {
		return nil
	}

	b.table.LoadAndDelete(session)
	b.metrics.IncBacklog(metrics.OutcomeAssembled)
	return completed
}

// Clean removes every entry whose last update is older than timeout, as of
// now. It is meant to be called periodically by a janitor goroutine.
func (b *Backlog) Clean(timeout time.Duration, now time.Time) {
	var stale []wire.Session

	b.table.Range(func(session wire.Session, e *entry) bool {
		e.mu.Lock()
		old := now.Sub(e.lastUpdate) > timeout
		e.mu.Unlock()

		if old {
			stale = append(stale, session)
		}
		return true
	})

	for _, session := range stale {
		if _, ok := b.table.LoadAndDelete(session); ok {
			b.metrics.IncBacklog(metrics.OutcomeDroppedTimeout)
		}
	}
}

// Len reports the number of sessions currently in progress, for tests and
// diagnostics.
func (b *Backlog) Len() int {
	n := 0
	b.table.Range(func(wire.Session, *entry) bool {
		n++
		return true
	})
	return n
}

// RunJanitor calls Clean every timeout/2 until ctx is cancelled. The caller
// runs this in its own goroutine, typically supervised by an errgroup
// alongside the acceptor's receive loops.
func (b *Backlog) RunJanitor(ctx context.Context, timeout time.Duration) {
	interval := timeout / 2
	if interval <= 0 {
		interval = timeout
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			b.Clean(timeout, now)
		}
	}
}
