// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package flowrace

import (
	"context"

	"github.com/gogama/flowrace/race"
)

// An Invoker performs one call against one backend. It is the
// capability the racing client consumes: the client knows nothing
// about the backend protocol and works against any Invoker
// implementation. Package langflow provides one for Langflow flow
// endpoints.
//
// Implementations of Invoker must be safe for concurrent use by
// multiple goroutines, because every worker in an attempt shares the
// same Invoker.
type Invoker interface {
	// Invoke sends the query to the named backend, tagging the call
	// with the correlation identifier of the current attempt, and
	// returns the backend's response text.
	//
	// Invoke must return a non-empty payload or a non-nil error,
	// never both and never neither. A call that transported
	// successfully but yielded an empty or unparseable payload must
	// return an error wrapping fault.ErrEmpty. The racing client
	// classifies every returned error with fault.Categorize; it never
	// retries an individual invocation, so Invoke should not retry
	// internally either.
	//
	// The supplied context is cancelled when the attempt ends, and
	// Invoke should honor that cancellation where the underlying
	// transport allows. Cancellation is advisory: a call already in
	// flight when a winner is declared may run to completion, and its
	// result is simply discarded.
	Invoke(ctx context.Context, backend race.Backend, query, correlation string) (string, error)
}

// The InvokerFunc type is an adapter to allow the use of ordinary
// functions as invokers.
type InvokerFunc func(ctx context.Context, backend race.Backend, query, correlation string) (string, error)

// Invoke calls f(ctx, backend, query, correlation).
func (f InvokerFunc) Invoke(ctx context.Context, backend race.Backend, query, correlation string) (string, error) {
	return f(ctx, backend, query, correlation)
}

// Requester is the interface that wraps the basic Race method. It is
// the capability the racing client exposes to drivers.
//
// Race executes a race plan and returns the final execution state
// (and error, if any). Racer implements the Requester interface, and
// any other Requester implementation must behave substantially the
// same as Racer.Race.
type Requester interface {
	Race(p *race.Plan) (*race.Execution, error)
}
