// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import "time"

// A Policy defines a timeout policy which may be plugged into an
// invoker to direct how to set the deadline on each backend
// invocation. The racing core imposes no deadline of its own, so the
// invoker's timeout policy is the only bound on a single call.
//
// Implementations of Policy must be safe for concurrent use by
// multiple goroutines.
type Policy interface {
	// Timeout returns the deadline to set on the next invocation of a
	// backend, given the number of invocations of that backend which
	// have already ended in a timeout.
	Timeout(timeouts int) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed
// timeout of 2 minutes on each invocation, generous enough for slow
// flow executions while still bounding a hung backend.
var DefaultPolicy Policy = Fixed(2 * time.Minute)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that uses the same value for
// every invocation. The return value is a timeout policy that always
// returns the value d.
func Fixed(d time.Duration) Policy {
	return policy([]time.Duration{d})
}

// Adaptive constructs a timeout policy that varies the next timeout
// value if previous invocations of the same backend timed out.
//
// Parameter usual is the timeout the policy returns while a backend
// has no recorded timeouts. Parameter after contains the timeouts the
// policy returns once the backend has timed out: after the first
// timeout, after[0] is returned; after the second, after[1], and so
// on. If a backend has timed out more times than after has elements,
// the last element of after is returned.
//
// Consider the following timeout policy:
//
//	p := Adaptive(10*time.Second, 30*time.Second, 2*time.Minute)
//
// The policy p will use 10 seconds as the usual timeout, but a
// backend that timed out once gets 30 seconds on its next invocation,
// and a backend that timed out more than once gets 2 minutes.
func Adaptive(usual time.Duration, after ...time.Duration) Policy {
	p := make([]time.Duration, 1, 1+len(after))
	p[0] = usual
	return policy(append(p, after...))
}

type policy []time.Duration

func (p policy) Timeout(timeouts int) time.Duration {
	if timeouts < 0 {
		timeouts = 0
	}
	if timeouts > len(p)-1 {
		timeouts = len(p) - 1
	}

	return p[timeouts]
}
