// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package retry

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/flowrace/race"
)

func TestDefaultWaiter(t *testing.T) {
	for attempt := 1; attempt <= 5; attempt++ {
		assert.Equal(t, 2*time.Second, DefaultWaiter.Wait(&race.Execution{Attempt: attempt}))
	}
}

func TestNewFixedWaiter(t *testing.T) {
	w := NewFixedWaiter(250 * time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, w.Wait(&race.Execution{Attempt: 1}))
	assert.Equal(t, 250*time.Millisecond, w.Wait(&race.Execution{Attempt: 100}))
}

func TestNewExpWaiter(t *testing.T) {
	base, max := 1*time.Millisecond, 1*time.Hour
	t.Run("invalid base", func(t *testing.T) {
		assert.Panics(t, func() {
			NewExpWaiter(time.Duration(-1), max, nil)
		}, "negative base")
		assert.Panics(t, func() {
			NewExpWaiter(time.Duration(0), max, nil)
		}, "zero base")
	})
	t.Run("invalid max", func(t *testing.T) {
		assert.Panics(t, func() {
			NewExpWaiter(time.Duration(2), time.Duration(1), nil)
		}, "max less than base")
	})
	t.Run("invalid jitter", func(t *testing.T) {
		assert.Panics(t, func() {
			NewExpWaiter(base, max, float64(1))
		}, "float64")
		var nilRand *rand.Rand
		assert.Panics(t, func() {
			NewExpWaiter(base, max, nilRand)
		}, "nil *rand.Rand")
	})
	t.Run("no jitter", func(t *testing.T) {
		j := newJitterExpWaiter(t, base, max, nil)
		assert.Nil(t, j.rand)
		for attempt := 1; attempt <= 10; attempt++ {
			ceil := 1 << (attempt - 1)
			assert.Equal(t, time.Duration(ceil)*time.Millisecond, j.Wait(&race.Execution{Attempt: attempt}))
		}
		assert.Equal(t, max, j.Wait(&race.Execution{Attempt: 26}))
		assert.Equal(t, max, j.Wait(&race.Execution{Attempt: 1000}))
		assert.Equal(t, max, j.Wait(&race.Execution{Attempt: math.MaxInt32}))
	})
	t.Run("with jitter", func(t *testing.T) {
		jitters := []struct {
			name  string
			value interface{}
		}{
			{"time.Time", time.Now()},
			{"int", 12345},
			{"int64", int64(12345)},
			{"rand.Source", rand.NewSource(12345)},
			{"*rand.Rand", rand.New(rand.NewSource(12345))},
		}
		for _, jitter := range jitters {
			t.Run(jitter.name, func(t *testing.T) {
				j := newJitterExpWaiter(t, base, max, jitter.value)
				require.NotNil(t, j.rand)
				for attempt := 1; attempt <= 10; attempt++ {
					ceil := time.Duration(1<<(attempt-1)) * time.Millisecond
					wait := j.Wait(&race.Execution{Attempt: attempt})
					assert.GreaterOrEqual(t, wait, time.Duration(0))
					assert.Less(t, wait, ceil+1)
				}
			})
		}
	})
}

func newJitterExpWaiter(t *testing.T, base, max time.Duration, jitter interface{}) *jitterExpWaiter {
	w := NewExpWaiter(base, max, jitter)
	require.IsType(t, &jitterExpWaiter{}, w)
	return w.(*jitterExpWaiter)
}
