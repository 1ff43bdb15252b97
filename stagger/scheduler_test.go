// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package stagger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestLinear(t *testing.T) {
	t.Run("Negative Interval", func(t *testing.T) {
		assert.PanicsWithValue(t, "flowrace/stagger: negative interval", func() {
			Linear(-time.Second)
		})
	})
	t.Run("Zero Interval", func(t *testing.T) {
		s := Linear(0)
		assert.Equal(t, time.Duration(0), s.Delay(0))
		assert.Equal(t, time.Duration(0), s.Delay(1))
		assert.Equal(t, time.Duration(0), s.Delay(1000))
	})
	t.Run("Canonical Schedule", func(t *testing.T) {
		s := Linear(7 * time.Second)
		assert.Equal(t, time.Duration(0), s.Delay(0))
		assert.Equal(t, 7*time.Second, s.Delay(1))
		assert.Equal(t, 14*time.Second, s.Delay(2))
		assert.Equal(t, 21*time.Second, s.Delay(3))
	})
	t.Run("Negative Rank", func(t *testing.T) {
		s := Linear(time.Second)
		assert.Equal(t, time.Duration(0), s.Delay(-1))
	})
	t.Run("Properties", func(t *testing.T) {
		rapid.Check(t, func(t *rapid.T) {
			interval := time.Duration(rapid.Int64Range(1, int64(time.Minute)).Draw(t, "interval"))
			rank := rapid.IntRange(0, 10000).Draw(t, "rank")
			s := Linear(interval)
			assert.Equal(t, time.Duration(rank)*interval, s.Delay(rank))
			assert.Equal(t, time.Duration(0), s.Delay(0))
			// Strictly increasing for a positive interval.
			assert.Greater(t, s.Delay(rank+1), s.Delay(rank))
		})
	})
}

func TestStatic(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		s := Static()
		assert.Equal(t, time.Duration(0), s.Delay(0))
		assert.Equal(t, time.Duration(0), s.Delay(1000))
	})
	t.Run("Size=1", func(t *testing.T) {
		s := Static(time.Hour)
		assert.Equal(t, time.Duration(0), s.Delay(0))
		assert.Equal(t, time.Hour, s.Delay(1))
		assert.Equal(t, time.Hour, s.Delay(2))
	})
	t.Run("Size=2", func(t *testing.T) {
		s := Static(time.Millisecond, time.Second)
		assert.Equal(t, time.Duration(0), s.Delay(0))
		assert.Equal(t, time.Millisecond, s.Delay(1))
		assert.Equal(t, time.Second, s.Delay(2))
		assert.Equal(t, time.Second, s.Delay(1000))
	})
	t.Run("Copies Offsets", func(t *testing.T) {
		offsets := []time.Duration{time.Second}
		s := Static(offsets...)
		offsets[0] = time.Hour
		assert.Equal(t, time.Second, s.Delay(1))
	})
}

func TestImmediate(t *testing.T) {
	for rank := 0; rank < 5; rank++ {
		assert.Equal(t, time.Duration(0), Immediate.Delay(rank))
	}
}
