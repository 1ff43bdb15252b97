// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package fault

import "errors"

// ErrEmpty is the sentinel error an invoker returns when the backend
// call itself succeeded but the response payload was empty, blank, or
// unparseable. The race treats an empty payload exactly like a failed
// invocation: the worker's outcome is not usable and cannot win.
//
// Invokers should wrap ErrEmpty (with fmt.Errorf and the %w verb) so
// that the cause is preserved while Categorize still reports Empty.
var ErrEmpty = errors.New("flowrace/fault: empty payload")

// A Category is the failure category of a particular invocation
// error, as reported by function Categorize.
//
// The category None means no failure occurred. All other categories
// describe one worker's unsuccessful invocation; none of them is
// fatal to an attempt on its own, because worker errors are collected
// as data rather than propagated.
type Category int

const (
	// None indicates a nil error.
	None Category = iota
	// Timeout indicates the invocation exceeded its deadline. The
	// backend may be going through a temporary period of slowness, or
	// a later attempt may succeed with a longer deadline.
	//
	// Categorize returns Timeout if the error or any of its wrapped
	// causes has a Timeout() function that reports true. Both
	// context.DeadlineExceeded and net/url timeout errors satisfy
	// this test.
	Timeout
	// Empty indicates the invocation transported successfully but the
	// backend returned an empty or unparseable payload.
	//
	// Categorize returns Empty if the error or any of its wrapped
	// causes is ErrEmpty.
	Empty
	// Transport indicates any other invocation failure: connection
	// errors, non-2XX protocol responses, and so on.
	Transport
)

var categoryNames = []string{
	"None",
	"Timeout",
	"Empty",
	"Transport",
}

// String returns the name of the category.
func (c Category) String() string {
	if c < None || c > Transport {
		return "Unknown"
	}
	return categoryNames[int(c)]
}

// Categorize returns the failure category of the given error. A nil
// error produces None; every non-nil error produces one of Timeout,
// Empty, or Transport.
//
// In assessing the error, Categorize looks at wrapped cause errors
// contained within err, not just err itself. Categorize never checks
// whether an error has a Temporary() function that returns true, as
// the semantics of Temporary() aren't entirely clear.
func Categorize(err error) Category {
	if err == nil {
		return None
	}

	if errors.Is(err, ErrEmpty) {
		return Empty
	}

	var hasTimeout hasTimeout
	if errors.As(err, &hasTimeout) && hasTimeout.Timeout() {
		return Timeout
	}

	return Transport
}

type hasTimeout interface {
	Timeout() bool
}
