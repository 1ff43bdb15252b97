// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package stats

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionEmpty(t *testing.T) {
	s := New()
	assert.Equal(t, 0, s.Queries())
	assert.Equal(t, 0, s.Wins())
	assert.Equal(t, "", s.Summary())
}

func TestSessionRecord(t *testing.T) {
	s := New()
	s.Record(100*time.Millisecond, true)
	s.Record(0, false)
	s.Record(300*time.Millisecond, true)

	assert.Equal(t, 3, s.Queries())
	assert.Equal(t, 2, s.Wins())

	summary := s.Summary()
	assert.Contains(t, summary, "Total queries:   3")
	assert.Contains(t, summary, "Successful:      2 (66.7%)")
	assert.Contains(t, summary, "Mean response:   200ms")
	assert.Contains(t, summary, "p50 response:")
	assert.Contains(t, summary, "p95 response:")
}

func TestSessionAllFailed(t *testing.T) {
	s := New()
	s.Record(0, false)
	s.Record(0, false)

	summary := s.Summary()
	assert.Contains(t, summary, "Total queries:   2")
	assert.Contains(t, summary, "Successful:      0 (0.0%)")
	assert.NotContains(t, summary, "Mean response")
}

func TestSessionConcurrent(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				s.Record(50*time.Millisecond, j%2 == 0)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, s.Queries())
	assert.Equal(t, 400, s.Wins())
}
