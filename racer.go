// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flowrace

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/gogama/flowrace/race"
	"github.com/gogama/flowrace/retry"
	"github.com/gogama/flowrace/stagger"
)

// DefaultStaggerInterval is the stagger interval used when a Racer
// has no explicit stagger scheduler: each later worker starts 7
// seconds after the previous one.
const DefaultStaggerInterval = 7 * time.Second

var emptyHandlers = HandlerGroup{}

// A Racer runs staggered races: it issues one logical query to an
// ordered list of redundant, interchangeable backends, returns the
// first usable response, and retries the whole cohort under a bounded
// attempt budget if no worker produces one.
//
// The zero value of Racer is not usable; at minimum the Invoker field
// must be set. All other fields have usable defaults. Racer is safe
// for concurrent use by multiple goroutines, and is higher-level than
// an Invoker: the Invoker is responsible for all details of one
// backend call, while Racer owns the stagger schedule, the
// race-to-first-success semantics, cooperative cancellation of
// not-yet-started workers, and cohort retry.
type Racer struct {
	// Invoker specifies the mechanics of calling one backend. It is
	// the only required field; Race panics if it is nil.
	Invoker Invoker

	// Stagger computes the start delay of each worker from its rank
	// in the plan's backend list.
	//
	// If Stagger is nil, stagger.Linear(DefaultStaggerInterval) is
	// used.
	Stagger stagger.Scheduler

	// Gate, if non-nil, confirms each worker start after its stagger
	// delay has elapsed. A gated-out worker is treated as cancelled.
	//
	// If Gate is nil, every scheduled worker starts.
	Gate stagger.Gate

	// RetryPolicy decides when to re-race the whole cohort after a
	// failed attempt and how long to cool down first.
	//
	// If RetryPolicy is nil, retry.DefaultPolicy is used.
	RetryPolicy retry.Policy

	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a race.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup

	// Correlations mints the correlation identifier for each attempt.
	// Every retried attempt receives a fresh identifier so that
	// backends treat it as an independent conversation.
	//
	// If Correlations is nil, random UUIDs are used.
	Correlations func() string

	// Logger receives debug-level progress logging. If nil, logging
	// is disabled.
	Logger *zap.Logger
}

// Race executes a race plan and returns the results, following the
// stagger, gate, and retry policies set on the Racer.
//
// The returned Execution is never nil. If the returned error is nil,
// the Execution's Result field names the winning backend and carries
// its payload. If every attempt allowed by the retry policy failed,
// the returned error (and the Execution's Err field) is an
// *race.Exhausted; if the plan's context was cancelled or expired
// mid-race, it is the context's error.
//
// Individual worker failures never surface as errors from Race: they
// are data, collected on the Execution's outcome list.
func (r *Racer) Race(p *race.Plan) (*race.Execution, error) {
	if r.Invoker == nil {
		panic("flowrace: nil invoker")
	}

	e := &race.Execution{
		Plan: p,
	}

	sched := r.scheduler()
	gate := r.gate()
	log := r.logger()

	retryPolicy := r.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.DefaultPolicy
	}

	handlers := r.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeRaceStart, e)
	e.Start = time.Now()
	e.Attempt = 1
	e.Correlation = p.Correlation
	if e.Correlation == "" {
		e.Correlation = r.correlation()
	}

RetryLoop:
	for {
		r.runAttempt(e, sched, gate, handlers, log)
		if e.Result != nil {
			break
		}
		if planCtxErr := p.Context().Err(); planCtxErr != nil {
			e.Err = planCtxErr
			break
		}
		if retryPolicy.Decide(e) {
			wait := retryPolicy.Wait(e)
			log.Debug("attempt failed, cooling down",
				zap.Int("attempt", e.Attempt),
				zap.Duration("cooldown", wait))
			timer := time.NewTimer(wait)
			select {
			case <-timer.C:
			case <-p.Context().Done():
				timer.Stop()
				e.Err = p.Context().Err()
				break RetryLoop
			}
			e.Err = nil
			e.Outcome = nil
			e.Outcomes = nil
			e.Winner = nil
			e.Attempt++
			e.Correlation = r.correlation()
		} else {
			e.Err = &race.Exhausted{
				Attempts: e.Attempt,
				Workers:  e.Attempt * len(p.Backends),
			}
			log.Debug("race exhausted",
				zap.Int("attempts", e.Attempt),
				zap.Int("workers", e.Attempt*len(p.Backends)))
			break
		}
	}

	e.End = time.Now()
	handlers.run(AfterRaceEnd, e)
	return e, e.Err
}

func (r *Racer) scheduler() stagger.Scheduler {
	if r.Stagger == nil {
		return stagger.Linear(DefaultStaggerInterval)
	}
	return r.Stagger
}

func (r *Racer) gate() stagger.Gate {
	if r.Gate == nil {
		return stagger.AlwaysStart
	}
	return r.Gate
}

func (r *Racer) correlation() string {
	if r.Correlations == nil {
		return uuid.NewString()
	}
	return r.Correlations()
}

func (r *Racer) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}
