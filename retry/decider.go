// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"time"

	"github.com/gogama/flowrace/fault"
	"github.com/gogama/flowrace/race"
)

// A Decider decides if a failed attempt should be followed by another
// attempt of the whole cohort.
//
// Implementations of Decider must be safe for concurrent use by
// multiple goroutines.
//
// Use the built-in constructors Times and Before, and the built-in
// deciders AllFailed and AnyTransient; or implement your own Decider.
// Use DeciderFunc to convert an ordinary function into a Decider, and
// to compose deciders logically using DeciderFunc.And and
// DeciderFunc.Or.
type Decider interface {
	Decide(e *race.Execution) bool
}

// The DeciderFunc type is an adapter to allow the use of ordinary
// functions as retry deciders. It implements the Decider interface,
// and also provides the logical composition methods And and Or.
//
// Every DeciderFunc must be safe for concurrent use by multiple
// goroutines.
type DeciderFunc func(e *race.Execution) bool

// DefaultTimes is the number of times DefaultPolicy will retry the
// cohort, for a total of DefaultTimes+1 attempts.
const DefaultTimes = 2

// DefaultDecider is a general-purpose retry decider suitable for
// common use cases. It allows up to DefaultTimes retries (i.e. up to
// 3 total attempts) whenever an attempt produced no usable result.
var DefaultDecider = Times(DefaultTimes).And(AllFailed)

// AllFailed is a decider that indicates a retry if the current
// attempt produced no successful outcome. Because the racing client
// only consults the retry policy after a failed attempt, AllFailed
// holds at every decision point; it exists to state the blanket-retry
// policy explicitly and to compose with bounding deciders such as
// Times and Before.
var AllFailed DeciderFunc = allFailed

// AnyTransient is a decider that indicates a retry only if at least
// one outcome in the failed attempt was a timeout or an empty
// payload. Compose it with Times to avoid re-racing a cohort whose
// every backend returned a hard transport error.
var AnyTransient DeciderFunc = anyTransient

// Decide returns true if the cohort should be retried, and false
// otherwise, after examining the current race execution state.
func (f DeciderFunc) Decide(e *race.Execution) bool {
	return f(e)
}

// And composes two retry deciders into a new decider which returns
// true if both sub-deciders return true, and false otherwise.
//
// Short-circuit logic is used, so g will not be evaluated if f
// returns false.
func (f DeciderFunc) And(g DeciderFunc) DeciderFunc {
	return func(e *race.Execution) bool {
		return f(e) && g(e)
	}
}

// Or composes two retry deciders into a new decider which returns
// true if either of the two sub-deciders returns true, but false if
// they both return false.
//
// Short-circuit logic is used, so g will not be evaluated if f
// returns true.
func (f DeciderFunc) Or(g DeciderFunc) DeciderFunc {
	return func(e *race.Execution) bool {
		return f(e) || g(e)
	}
}

// Times constructs a retry decider which allows up to n retries of
// the cohort, or n+1 total attempts. Because execution attempt
// numbers are one-based, the returned decider returns true while
// e.Attempt is at most n, and false otherwise.
func Times(n int) DeciderFunc {
	return func(e *race.Execution) bool {
		return e.Attempt <= n
	}
}

// Before constructs a retry decider allowing retries until a certain
// amount of time has elapsed since the start of the race. The
// returned decider returns true while the race duration is less than
// d, and false afterward.
func Before(d time.Duration) DeciderFunc {
	return func(e *race.Execution) bool {
		return e.Duration() < d
	}
}

func allFailed(e *race.Execution) bool {
	return e.Winner == nil
}

func anyTransient(e *race.Execution) bool {
	for i := range e.Outcomes {
		switch e.Outcomes[i].Fault {
		case fault.Timeout, fault.Empty:
			return true
		}
	}
	return false
}
