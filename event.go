// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flowrace

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Racer to extend it with custom
// functionality, for example console progress output or metrics.
//
// Although each worker executes on its own goroutine, Racer
// dispatches every event to the handler chain on the goroutine that
// invoked Race. Thus even while several workers are racing, the
// events for one race are serialized and do not themselves race.
type Event int

const (
	// BeforeRaceStart identifies the event that occurs before the
	// race starts.
	//
	// When Racer fires BeforeRaceStart, the execution is non-nil but
	// the only field that has been set is the plan.
	BeforeRaceStart Event = iota
	// BeforeAttempt identifies the event that occurs before each
	// attempt of the worker cohort.
	//
	// When Racer fires BeforeAttempt, the execution's attempt number
	// and correlation identifier are set for the attempt that is
	// about to start, and its outcome list is empty.
	BeforeAttempt
	// AfterWorker identifies the event that occurs each time the
	// scheduler observes a worker outcome, in completion order.
	//
	// When Racer fires AfterWorker, the execution's Outcome field
	// points at the observed outcome. Cancelled outcomes fire the
	// event too, even though they are excluded from the execution's
	// outcome list. If the observed outcome has just been declared
	// the winner, the execution's Winner and Result fields are set
	// before the event fires.
	//
	// Workers whose invocations are still in flight when the race
	// returns never fire AfterWorker; their outcomes are discarded.
	AfterWorker
	// AfterAttempt identifies the event that occurs after an attempt
	// ends, whether it produced a winner or failed.
	//
	// When Racer fires AfterAttempt for a failed attempt, the
	// execution's Err field holds an *race.AttemptError and its
	// outcome list is sorted by stagger rank. The event runs before
	// the retry policy is consulted for a retry decision.
	AfterAttempt
	// AfterRaceEnd identifies the event that occurs after the race
	// ends.
	//
	// When Racer fires AfterRaceEnd, the execution's end time is set
	// and either its Result field is non-nil (a winner was found) or
	// its Err field holds an *race.Exhausted error.
	AfterRaceEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of event types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeRaceStart",
	"BeforeAttempt",
	"AfterWorker",
	"AfterAttempt",
	"AfterRaceEnd",
}

// Events returns a slice containing all events which can occur during
// a race, in the order in which they would first occur.
func Events() []Event {
	return []Event{
		BeforeRaceStart,
		BeforeAttempt,
		AfterWorker,
		AfterAttempt,
		AfterRaceEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
