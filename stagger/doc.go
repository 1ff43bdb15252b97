// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package stagger provides start-delay policies for the staggered race.

While racing redundant backends is a powerful feature for smoothing
over pockets of bad response times, naively starting every racer at
once raises costs, raises the risk of browning out the backends, and
wastes work when the first backend would have answered anyway.
Staggering the starts bounds the simultaneous load: each later worker
starts only after a configured offset, and is cancelled before it
ever reaches its backend if an earlier worker has already won.

The main concepts are:

  - A Scheduler computes each worker's start delay from its stagger
    rank, the worker's zero-based position in the plan's backend
    list. Use Linear for the canonical rank-times-interval schedule,
    Static for an explicit offset table, or Immediate for no stagger
    at all.

  - A Gate decides, once a worker's delay has elapsed, whether the
    worker should really start, as circumstances may have changed in
    the meantime. Use NewThrottleGate to cap worker starts per unit
    time across races.

The racing client treats a gated-out worker exactly like one
cancelled during its delay: it records no backend call and is
excluded from failure accounting.
*/
package stagger
