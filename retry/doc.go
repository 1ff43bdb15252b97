// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package retry provides cohort retry policies for the racing client.
// A policy decides, after an attempt in which every worker failed or
// was cancelled, whether to race the whole cohort again, and how long
// to cool down first. Note that retry operates on whole attempts:
// individual workers are never retried, and by default a retried
// attempt re-races every backend, including backends that returned a
// hard error on the previous attempt (compose AnyTransient into your
// decider to change that).
package retry
