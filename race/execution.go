// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"context"
	"time"
)

// An Execution represents the state of a single Plan execution.
//
// When a race is requested, an Execution is created for it. The
// Execution is updated as the race progresses (for example when a
// worker outcome is observed, or when the cohort is retried) and is
// ultimately returned as the return value of the race.
//
// Retry policies, stagger policies, and event handlers may set values
// on an Execution using its SetValue method and read them back using
// the Value method. However, they should treat the structure's
// exported field values as immutable and leave them unmodified, as
// the execution state is vital to the correct functioning of the race
// logic.
type Execution struct {
	// Plan specifies the race plan being executed. It is never nil.
	Plan *Plan

	// Start is the start time of the race. It is assigned a non-zero
	// value when the race starts, and this value remains constant
	// thereafter.
	Start time.Time

	// End is the end time of the race. It contains the zero value
	// until the race ends, when it is set to the current time.
	End time.Time

	// Attempt is the one-based number of the current attempt, where
	// an attempt is one execution of the full worker cohort under one
	// correlation identifier. It is 1 on the initial attempt, 2 on
	// the first retry, and so on.
	Attempt int

	// Correlation is the correlation identifier grouping all worker
	// invocations of the current attempt. Every retried attempt
	// receives a fresh value.
	Correlation string

	// Outcomes lists the non-cancelled worker outcomes observed so
	// far in the current attempt. While an attempt is in flight the
	// list is in completion order; when an attempt ends in failure it
	// is sorted by stagger rank. It is reset at the start of each
	// retried attempt.
	Outcomes []Outcome

	// Outcome points at the most recently observed worker outcome,
	// including cancelled outcomes that are excluded from Outcomes.
	// It is intended for event handlers and is nil outside worker
	// events.
	Outcome *Outcome

	// Winner points at the winning outcome of the current attempt, or
	// is nil if no winner has been declared.
	Winner *Outcome

	// Result is the terminal result of the race. It is nil until a
	// winner is declared and remains nil if the race exhausts all
	// attempts.
	Result *Result

	// Racing is the count of workers in flight in the current
	// attempt. The value is zero before and after an attempt.
	Racing int

	// Workers counts the workers launched across all attempts of the
	// race, including cancelled workers.
	Workers int

	// Err is the error state of the race. During a failed attempt it
	// holds an *AttemptError; it is cleared when the cohort is
	// retried. Once the race has Ended, Err is either nil (a winner
	// was found) or an *Exhausted error, and has the same value as
	// the error returned by the racing client.
	Err error

	// data contains arbitrary user data attached via SetValue.
	data context.Context
}

// Duration returns the duration of the race.
//
// If the race has not yet started, the duration is zero. If the race
// has Ended, the duration returned is equal to End minus Start.
// Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the race has started.
func (e *Execution) Started() bool {
	return e.Start != (time.Time{})
}

// Ended indicates whether the race has ended. If the return value is
// true, there will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return e.End != (time.Time{})
}

// Successes returns the number of outcomes in the current attempt
// with OK true.
func (e *Execution) Successes() int {
	var n int
	for i := range e.Outcomes {
		if e.Outcomes[i].OK {
			n++
		}
	}
	return n
}

// SetValue allows event handlers to store arbitrary data in the race
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue: it may not be nil; it must be comparable; and it
// should not be of type string or any other built-in type, to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for
// key, or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
