// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/flowrace/race"
)

// A Policy controls if and how the worker cohort is retried after a
// failed attempt. After every failed attempt, a Policy decides
// whether another attempt should be made and, if so, how long the
// cooldown should be before the cohort is raced again.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
//
// A Policy is composed of the Decider and Waiter interfaces. While
// you can implement Policy yourself, it may be more convenient to use
// one of the built-in retry policies, DefaultPolicy or Never, or to
// construct your policy with the NewPolicy constructor using existing
// Decider and Waiter implementations.
type Policy interface {
	Decider
	Waiter
}

// DefaultPolicy is a general-purpose retry policy suitable for common
// use cases. It is a composition of DefaultDecider for retry
// decisions (up to 3 total attempts) and DefaultWaiter for the
// cooldown (a fixed 2 seconds).
var DefaultPolicy Policy = policy{DefaultDecider, DefaultWaiter}

// Never is a policy that never retries. It is useful if you want a
// single staggered race attempt with no cohort retry.
var Never Policy = policy{Times(0), DefaultWaiter}

type policy struct {
	decider Decider
	waiter  Waiter
}

// NewPolicy composes a Decider and a Waiter into a retry Policy.
func NewPolicy(d Decider, w Waiter) Policy {
	return policy{decider: d, waiter: w}
}

func (p policy) Decide(e *race.Execution) bool {
	return p.decider.Decide(e)
}

func (p policy) Wait(e *race.Execution) time.Duration {
	return p.waiter.Wait(e)
}
