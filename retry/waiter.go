// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math/rand"
	"sync"
	"time"

	"github.com/gogama/flowrace/race"
)

// A Waiter specifies how long to wait after a failed attempt before
// racing the whole cohort again.
//
// Implementations of Waiter must be safe for concurrent use by
// multiple goroutines.
//
// The racing client will not call the Waiter on a retry policy if the
// policy Decider returned false.
//
// This package provides two Waiter constructors: NewFixedWaiter for a
// constant inter-attempt cooldown, and NewExpWaiter for jittered
// exponential backoff. In addition it provides a concrete instance
// suitable for typical use, DefaultWaiter.
type Waiter interface {
	Wait(e *race.Execution) time.Duration
}

// DefaultWaiter is the default cooldown policy: a fixed wait of 2
// seconds between attempts.
var DefaultWaiter = NewFixedWaiter(2 * time.Second)

// NewFixedWaiter constructs a Waiter that always returns the given
// duration.
//
// Use NewFixedWaiter to obtain a constant inter-attempt cooldown.
func NewFixedWaiter(d time.Duration) Waiter {
	return fixedWaiter(d)
}

type fixedWaiter time.Duration

func (w fixedWaiter) Wait(_ *race.Execution) time.Duration {
	return time.Duration(w)
}

// NewExpWaiter constructs a Waiter implementing an exponential
// backoff formula with optional jitter.
//
// The formula implemented is the "Full Jitter" approach described in:
// https://aws.amazon.com/blogs/architecture/exponential-backoff-and-jitter.
//
// Parameters base and max control the exponential calculation of the
// ceiling:
//
//	ceil := min(base * 2**(attempt-1), max)
//
// where attempt is the one-based number of the attempt that just
// failed. Base and max must be positive values, and max must be at
// least equal to base.
//
// Parameter jitter is used to generate a random number between 0 and
// ceil. To make a waiter that does not jitter and simply returns ceil
// after each attempt, pass nil for jitter. Otherwise you may specify
// either a random number generator seed value (as a time.Time, int,
// or int64) or a random number generator (as a rand.Source).
func NewExpWaiter(base, max time.Duration, jitter interface{}) Waiter {
	if base < 1 {
		panic("flowrace/retry: base must be positive")
	}
	if max < base {
		panic("flowrace/retry: max must be at least base")
	}
	r := jitterToRand(jitter)
	return &jitterExpWaiter{
		base: base,
		max:  max,
		rand: r,
	}
}

type jitterExpWaiter struct {
	base time.Duration
	max  time.Duration
	rand *rand.Rand
	lock sync.Mutex
}

func (w *jitterExpWaiter) Wait(e *race.Execution) time.Duration {
	retries := e.Attempt - 1
	if retries < 0 {
		retries = 0
	}
	exp := int64(1) << retries
	if exp < 1 {
		exp = 1<<63 - 1
	}

	ceil := int64(w.base) * exp
	if ceil < int64(w.base) || int64(w.max) < ceil {
		ceil = int64(w.max)
	}

	duration := ceil
	if ceil > 0 {
		w.lock.Lock()
		defer w.lock.Unlock()
		if w.rand != nil {
			duration = w.rand.Int63n(ceil)
		}
	}

	return time.Duration(duration)
}

func jitterToRand(jitter interface{}) *rand.Rand {
	var s rand.Source
	switch j := jitter.(type) {
	case nil:
		return nil
	case time.Time:
		s = rand.NewSource(j.UnixNano())
	case int:
		s = rand.NewSource(int64(j))
	case int64:
		s = rand.NewSource(j)
	case *rand.Rand:
		if j == nil {
			panic("flowrace/retry: jitter may not be a typed nil")
		}
		return j
	case rand.Source:
		s = j
	default:
		panic("flowrace/retry: invalid jitter type")
	}
	return rand.New(s)
}
