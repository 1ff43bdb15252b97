// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package stats accumulates per-session race statistics for the CLI.
package stats

import (
	"fmt"
	"strings"
	"sync"
	"time"

	hdrhistogram "github.com/HdrHistogram/hdrhistogram-go"
)

// Session accumulates query counts and winning-race latencies for one
// interactive session. It is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	queries int
	wins    int
	total   time.Duration
	hist    *hdrhistogram.Histogram
}

// New returns an empty session. Latencies are tracked from 1ms to 10
// minutes at three significant figures, which comfortably covers flow
// execution times.
func New() *Session {
	return &Session{
		hist: hdrhistogram.New(1, int64(10*time.Minute/time.Millisecond), 3),
	}
}

// Record adds one finished query. For won races, elapsed is the
// race's duration and is added to the latency histogram; for
// exhausted races only the failure is counted.
func (s *Session) Record(elapsed time.Duration, won bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries++
	if !won {
		return
	}
	s.wins++
	s.total += elapsed
	_ = s.hist.RecordValue(int64(elapsed / time.Millisecond))
}

// Queries returns the number of recorded queries.
func (s *Session) Queries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queries
}

// Wins returns the number of recorded winning races.
func (s *Session) Wins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wins
}

// Summary renders a multi-line session report. It returns the empty
// string if no queries were recorded.
func (s *Session) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.queries == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total queries:   %d\n", s.queries)
	fmt.Fprintf(&b, "Successful:      %d (%.1f%%)\n",
		s.wins, 100*float64(s.wins)/float64(s.queries))
	if s.wins > 0 {
		mean := s.total / time.Duration(s.wins)
		fmt.Fprintf(&b, "Mean response:   %s\n", mean.Round(10*time.Millisecond))
		fmt.Fprintf(&b, "p50 response:    %dms\n", s.hist.ValueAtQuantile(50))
		fmt.Fprintf(&b, "p95 response:    %dms\n", s.hist.ValueAtQuantile(95))
		fmt.Fprintf(&b, "Max response:    %dms\n", s.hist.Max())
	}
	return b.String()
}
