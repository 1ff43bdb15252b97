// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import "fmt"

// An AttemptError records the failure of one attempt: every worker in
// the cohort either failed or was cancelled, so the attempt produced
// no winner. It is recoverable — the racing client may retry the
// whole cohort under a fresh correlation identifier — and is exposed
// on Execution.Err between a failed attempt and the retry decision so
// that event handlers can observe it.
type AttemptError struct {
	// Attempt is the one-based number of the failed attempt.
	Attempt int

	// Outcomes lists the non-cancelled outcomes of the failed
	// attempt, sorted by stagger rank.
	Outcomes []Outcome
}

func (err *AttemptError) Error() string {
	var ok int
	for i := range err.Outcomes {
		if err.Outcomes[i].OK {
			ok++
		}
	}
	return fmt.Sprintf("flowrace: attempt %d failed: %d of %d workers succeeded",
		err.Attempt, ok, len(err.Outcomes))
}

// An Exhausted error is the terminal failure of a race: every attempt
// allowed by the retry policy failed. It is never retried further.
type Exhausted struct {
	// Attempts is the number of attempts made.
	Attempts int

	// Workers is the total number of workers attempted across all
	// attempts, equal to Attempts times the backend count.
	Workers int
}

func (err *Exhausted) Error() string {
	return fmt.Sprintf("flowrace: all %d attempts failed (%d workers attempted)",
		err.Attempts, err.Workers)
}
