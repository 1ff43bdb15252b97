// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"context"
	"errors"
)

const nilCtxMsg = "flowrace/race: nil context"

// A Backend is an opaque identifier naming one interchangeable
// backend capable of answering a query. The position of a Backend in
// a Plan's backend list determines its stagger rank: the backend at
// index 0 starts first, the backend at index 1 starts one stagger
// interval later, and so on.
type Backend string

// A Plan contains one logical query to be raced against an ordered
// list of redundant backends.
//
// The logical query described by a Plan will typically result in a
// single backend invocation, but may result in several, because
// multiple backends may be raced in one attempt and a failed attempt
// may be retried with the whole cohort.
//
// Like the http.Request structure from net/http, a Plan has a context
// which controls the overall race and can be used to cancel an
// inflight race at any time.
type Plan struct {
	// Query is the text of the logical request sent to every backend.
	Query string

	// Backends is the ordered list of interchangeable backends to
	// race. List order determines stagger rank.
	Backends []Backend

	// Correlation optionally seeds the correlation identifier used
	// for the first attempt. If empty, the executing Requester mints
	// one. Retried attempts always receive a freshly minted
	// correlation identifier regardless of this field, so that each
	// attempt is an independent conversation from the backends'
	// perspective.
	Correlation string

	// ctx allows the entire race to be cancelled. It should only be
	// modified by copying the whole Plan using WithContext.
	ctx context.Context
}

// NewPlan wraps NewPlanWithContext using the background context.
func NewPlan(query string, backends []Backend) (*Plan, error) {
	return NewPlanWithContext(context.Background(), query, backends)
}

// NewPlanWithContext returns a new Plan given a query and an ordered,
// non-empty backend list. The backend list is copied, so the caller
// may reuse its slice.
func NewPlanWithContext(ctx context.Context, query string, backends []Backend) (*Plan, error) {
	if ctx == nil {
		return nil, errors.New(nilCtxMsg)
	}
	if query == "" {
		return nil, errors.New("flowrace/race: empty query")
	}
	if len(backends) < 1 {
		return nil, errors.New("flowrace/race: no backends")
	}
	b := make([]Backend, len(backends))
	copy(b, backends)
	return &Plan{
		ctx:      ctx,
		Query:    query,
		Backends: b,
	}, nil
}

// Context returns the plan's context. The returned value is never
// nil; it defaults to the background context.
func (p *Plan) Context() context.Context {
	if p.ctx != nil {
		return p.ctx
	}
	return context.Background()
}

// WithContext returns a shallow copy of the plan with its context
// changed to ctx. The provided ctx must be non-nil.
func (p *Plan) WithContext(ctx context.Context) *Plan {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	p2 := new(Plan)
	*p2 = *p
	p2.ctx = ctx
	return p2
}
