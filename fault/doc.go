// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package fault classifies backend invocation errors into the three
// failure categories the race cares about: Timeout, Empty, and
// Transport. The racing client uses Categorize to label each failed
// worker outcome; it never branches on concrete error types itself.
package fault
