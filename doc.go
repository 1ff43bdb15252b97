// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package flowrace races one logical query across an ordered list of
redundant, interchangeable backends, staggering worker starts to
minimize simultaneous backend load, and returns the first usable
response.

Create a Racer with an Invoker to begin racing.

	racer := &flowrace.Racer{Invoker: invoker}
	p, err := race.NewPlan("what is the airspeed of an unladen swallow?",
		[]race.Backend{"flow-1", "flow-2", "flow-3"})
	...
	e, err := racer.Race(p)
	if err == nil {
		fmt.Println(e.Result.Winner, e.Result.Payload)
	}

The worker at rank 0 starts immediately; each later worker starts one
stagger interval after the previous one, and is cancelled before it
ever reaches its backend if an earlier worker has already produced a
usable response. The first success in completion order wins — a
later-staggered worker that answers faster than an earlier one
legitimately takes the race. If every worker fails or returns an
empty payload, the whole cohort is retried under a fresh correlation
identifier, up to the attempt budget of the retry policy.

For control over the stagger schedule, use package stagger:

	racer := &flowrace.Racer{
		Invoker: invoker,
		Stagger: stagger.Linear(7 * time.Second),
	}

For control over cohort retries and the cooldown between attempts,
create a custom retry policy using components from package retry:

	racer := &flowrace.Racer{
		Invoker:     invoker,
		RetryPolicy: retry.NewPolicy(retry.Times(2), retry.NewFixedWaiter(2*time.Second)),
	}

To hook into the fine-grained details of the race, install a handler
into the appropriate handler chain:

	handlers := &flowrace.HandlerGroup{}
	handlers.PushBack(flowrace.AfterWorker, flowrace.HandlerFunc(
		func(_ flowrace.Event, e *race.Execution) {
			o := e.Outcome
			log.Printf("worker %s finished: ok=%t", o.Backend, o.OK)
		}))
	racer := &flowrace.Racer{
		Invoker:  invoker,
		Handlers: handlers,
	}

Package langflow provides a concrete Invoker for Langflow flow
endpoints; any implementation of the Invoker interface works.
*/
package flowrace
