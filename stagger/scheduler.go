// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package stagger

import "time"

// A Scheduler computes the start delay for each worker in a race
// attempt, given the worker's stagger rank (its zero-based position
// in the plan's backend list).
//
// Implementations of Scheduler must be safe for concurrent use by
// multiple goroutines, and must be deterministic: the racing client
// may consult the schedule more than once per attempt and expects the
// same answer each time.
type Scheduler interface {
	// Delay returns the start delay for the worker at the given
	// stagger rank. Rank 0 must always produce a zero delay.
	Delay(rank int) time.Duration
}

// Immediate is a scheduler that starts every worker at once, with no
// stagger. It turns the staggered race into a plain race.
var Immediate = Linear(0)

// Linear constructs a scheduler implementing the canonical staggered
// schedule: the worker at rank i starts after i times the given
// interval. The schedule is deterministic and strictly increasing for
// a positive interval — no jitter, no randomization.
//
// Linear panics if interval is negative.
func Linear(interval time.Duration) Scheduler {
	if interval < 0 {
		panic("flowrace/stagger: negative interval")
	}
	return linear(interval)
}

type linear time.Duration

func (s linear) Delay(rank int) time.Duration {
	if rank < 0 {
		return 0
	}
	return time.Duration(rank) * time.Duration(s)
}

// Static constructs a scheduler based on an explicit offset table.
// The worker at rank 0 starts immediately; the worker at rank i (for
// i >= 1) starts after offsets[i-1]. Ranks beyond the end of the
// table reuse the final offset, so an undersized table delays every
// trailing worker by the same amount rather than starting it
// immediately.
//
// An empty table behaves like Immediate.
func Static(offsets ...time.Duration) Scheduler {
	o := make([]time.Duration, len(offsets))
	copy(o, offsets)
	return static(o)
}

type static []time.Duration

func (s static) Delay(rank int) time.Duration {
	if rank < 1 || len(s) == 0 {
		return 0
	}
	if rank > len(s) {
		rank = len(s)
	}
	return s[rank-1]
}
