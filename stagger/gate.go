// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package stagger

import (
	"sync"
	"time"
)

// A Gate confirms or discards a worker start after the worker's
// stagger delay has elapsed, as circumstances may have changed since
// the schedule was computed.
//
// Implementations of Gate must be safe for concurrent use by multiple
// goroutines.
type Gate interface {
	// Start returns true if the worker at the given stagger rank
	// should invoke its backend, and false if it should be discarded.
	// A discarded worker is treated as cancelled: it never reaches
	// the backend and contributes nothing to failure accounting.
	Start(rank int) bool
}

// AlwaysStart is a gate that starts every scheduled worker.
var AlwaysStart = alwaysGate(0)

type alwaysGate int

func (g alwaysGate) Start(_ int) bool {
	return true
}

// A Limit specifies the maximum number of worker starts allowed per
// unit time.
type Limit struct {
	MaxStarts int
	Period    time.Duration
}

// NewThrottleGate constructs a gate which throttles worker starts
// based on one or more limits.
//
// For example, the following gate would discard any worker start if
// more than 3 workers have started in the last second, or more than
// 10 have started in the last minute:
//
//	g := stagger.NewThrottleGate(
//		stagger.Limit{MaxStarts: 3, Period: time.Second},
//		stagger.Limit{MaxStarts: 10, Period: time.Minute})
//
// A throttle gate only affects workers whose stagger delay has
// elapsed; it cannot prevent the rank 0 worker of a fresh race from
// being scheduled.
func NewThrottleGate(limits ...Limit) Gate {
	g := &throttleGate{
		limits: make([]limitQueue, len(limits)),
	}
	for i, l := range limits {
		g.limits[i] = newLimitQueue(l.Period, l.MaxStarts)
	}
	return g
}

type throttleGate struct {
	limits []limitQueue
	lock   sync.Mutex
}

func (g *throttleGate) Start(_ int) bool {
	g.lock.Lock()
	defer g.lock.Unlock()
	now := time.Now()
	start := true
	for i := range g.limits {
		start = start && g.limits[i].accept(&now)
	}
	return start
}

// limitQueue is a fixed-capacity ring of start timestamps. A start is
// accepted only if fewer than cap starts remain unexpired within the
// queue's period.
type limitQueue struct {
	antiPeriod time.Duration
	a          []time.Time
	start, len int
}

func newLimitQueue(period time.Duration, cap int) limitQueue {
	return limitQueue{
		antiPeriod: -period,
		a:          make([]time.Time, cap),
	}
}

func (q *limitQueue) accept(t *time.Time) bool {
	cutoff := t.Add(q.antiPeriod)
	// Remove all samples added at or before cutoff.
	n := q.start + q.len
	if n > len(q.a) {
		n = len(q.a)
	}
	for i := q.start; i < n; i++ {
		if !cutoff.Before(q.a[i]) {
			q.start++
			q.len--
		}
	}
	if q.start >= len(q.a) {
		q.start = 0
		n = q.len
		for j := 0; j < n; j++ {
			if !cutoff.Before(q.a[j]) {
				q.start++
				q.len--
			}
		}
	}
	// If there's room for the sample, add it in.
	if q.len < len(q.a) {
		i := (q.start + q.len) % len(q.a)
		q.a[i] = *t
		q.len++
		return true
	}
	// Otherwise, don't accept the sample.
	return false
}
