// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"time"

	"github.com/gogama/flowrace/fault"
)

// An Outcome records the terminal state of one worker within one
// attempt. A worker that reached its backend produces exactly one
// Outcome with Cancelled false; a worker cancelled during its stagger
// delay produces an Outcome with Cancelled true and never touches the
// backend.
type Outcome struct {
	// Backend identifies the backend the worker was assigned.
	Backend Backend

	// Rank is the worker's zero-based position in the plan's backend
	// list, which determined its start delay.
	Rank int

	// OK is true if the invocation succeeded with a usable, non-empty
	// payload.
	OK bool

	// Payload is the backend's response text. It is empty unless OK
	// is true.
	Payload string

	// Latency is the duration of the backend invocation itself,
	// excluding the worker's stagger delay. It is zero for cancelled
	// workers.
	Latency time.Duration

	// Cancelled is true if the worker aborted during its stagger
	// delay because a winner was already declared. Cancelled outcomes
	// contribute nothing to either the race result or failure
	// accounting.
	Cancelled bool

	// Fault categorizes the failure when OK is false and Cancelled is
	// false. It is fault.None otherwise.
	Fault fault.Category

	// Err is the error returned by the invoker, if any.
	Err error
}

// A Result is the terminal output of a winning attempt.
type Result struct {
	// Payload is the winning backend's response text.
	Payload string

	// Winner identifies the backend whose worker won the race.
	Winner Backend

	// Elapsed is the time from the start of the winning attempt to
	// the declaration of the winner, including the winner's stagger
	// delay.
	Elapsed time.Duration
}
