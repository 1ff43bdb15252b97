// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package race provides the data model shared by the flowrace racing
client: the logical race plan, the mutable execution state threaded
through a race, the per-worker outcome record, and the terminal result
and error types.

Construct a Plan with NewPlan and pass it to a Requester (typically
flowrace.Racer) for execution. The Requester creates an Execution for
the plan, updates it as attempts are made, and returns it when the
race ends.
*/
package race
