// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flowrace

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/gogama/flowrace/fault"
	"github.com/gogama/flowrace/race"
	"github.com/gogama/flowrace/stagger"
)

// winnerGrace bounds how long a finished attempt waits for workers
// that were still in their stagger delay when the winner was
// declared. Delayed workers wake immediately on cancellation, so the
// bound is only reached if a worker slipped into its invocation at
// the instant of winner declaration; such a worker is left to finish
// on its own and its outcome is discarded.
const winnerGrace = 500 * time.Millisecond

// runAttempt races the full worker cohort once under the execution's
// current correlation identifier. On success it sets e.Winner and
// e.Result; on failure it sets e.Err to an *race.AttemptError whose
// outcomes are sorted by stagger rank.
func (r *Racer) runAttempt(e *race.Execution, sched stagger.Scheduler, gate stagger.Gate, handlers *HandlerGroup, log *zap.Logger) {
	p := e.Plan
	handlers.run(BeforeAttempt, e)

	// The attempt context is the winner signal: it is fresh for every
	// attempt, cancelled exactly once by the scheduler upon observing
	// the first success, and never reset. Workers still in their
	// stagger delay wake on it immediately instead of polling.
	ctx, cancel := context.WithCancel(p.Context())
	defer cancel()

	n := len(p.Backends)
	outcomes := make(chan race.Outcome, n)
	var delaying atomic.Int32
	start := time.Now()

	for i, b := range p.Backends {
		go work(ctx, r.Invoker, sched, gate, p.Query, e.Correlation, i, b, outcomes, &delaying)
	}
	e.Workers += n
	e.Racing = n

	var graceC <-chan time.Time
	remaining := n
Observe:
	for remaining > 0 {
		if e.Winner != nil && delaying.Load() == 0 {
			// Every worker has either reported or moved past its
			// delay into an invocation we will not wait on.
			break
		}
		select {
		case o := <-outcomes:
			remaining--
			e.Racing--
			e.Outcome = &o
			if o.Cancelled {
				handlers.run(AfterWorker, e)
				continue
			}
			e.Outcomes = append(e.Outcomes, o)
			if o.OK && e.Winner == nil {
				// First success in completion order wins, regardless
				// of stagger order. Cancel the attempt so workers
				// still delaying abort before reaching their
				// backends; a later success that raced past the
				// signal is recorded but ignored.
				cancel()
				w := o
				e.Winner = &w
				e.Result = &race.Result{
					Payload: o.Payload,
					Winner:  o.Backend,
					Elapsed: time.Since(start),
				}
				log.Debug("winner declared",
					zap.String("backend", string(o.Backend)),
					zap.Int("rank", o.Rank),
					zap.Duration("latency", o.Latency),
					zap.Duration("elapsed", e.Result.Elapsed))
				grace := time.NewTimer(winnerGrace)
				defer grace.Stop()
				graceC = grace.C
			}
			handlers.run(AfterWorker, e)
		case <-graceC:
			break Observe
		case <-p.Context().Done():
			break Observe
		}
	}
	e.Racing = 0
	e.Outcome = nil

	if e.Winner == nil && p.Context().Err() == nil {
		sort.Slice(e.Outcomes, func(i, j int) bool {
			return e.Outcomes[i].Rank < e.Outcomes[j].Rank
		})
		e.Err = &race.AttemptError{
			Attempt:  e.Attempt,
			Outcomes: e.Outcomes,
		}
	}
	handlers.run(AfterAttempt, e)
}

// work is one worker: it waits out its stagger delay (interruptibly),
// invokes the backend exactly once, and reports exactly one outcome.
// A worker never cancels the attempt itself; declaring the winner is
// the scheduler's job.
func work(ctx context.Context, inv Invoker, sched stagger.Scheduler, gate stagger.Gate, query, correlation string, rank int, backend race.Backend, outcomes chan<- race.Outcome, delaying *atomic.Int32) {
	if delay := sched.Delay(rank); delay > 0 {
		delaying.Add(1)
		t := time.NewTimer(delay)
		select {
		case <-t.C:
			delaying.Add(-1)
		case <-ctx.Done():
			t.Stop()
			delaying.Add(-1)
			outcomes <- race.Outcome{Backend: backend, Rank: rank, Cancelled: true}
			return
		}
	}

	// The winner may have been declared in the instant the delay
	// elapsed, and the rank 0 worker may start into an already
	// cancelled plan. Checking here keeps such workers off their
	// backends; a worker that slips past anyway is allowed to finish
	// and its outcome is discarded by the scheduler.
	if ctx.Err() != nil {
		outcomes <- race.Outcome{Backend: backend, Rank: rank, Cancelled: true}
		return
	}

	if !gate.Start(rank) {
		outcomes <- race.Outcome{Backend: backend, Rank: rank, Cancelled: true}
		return
	}

	start := time.Now()
	payload, err := inv.Invoke(ctx, backend, query, correlation)
	latency := time.Since(start)

	o := race.Outcome{Backend: backend, Rank: rank, Latency: latency}
	if err == nil && strings.TrimSpace(payload) == "" {
		// Invokers are supposed to report this themselves, but an
		// all-whitespace payload must never win a race.
		err = fault.ErrEmpty
	}
	if err != nil {
		o.Err = err
		o.Fault = fault.Categorize(err)
	} else {
		o.OK = true
		o.Payload = payload
	}
	outcomes <- o
}
