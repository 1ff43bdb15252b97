// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package race

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		p, err := NewPlan("what is two plus two", []Backend{"a", "b"})
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "what is two plus two", p.Query)
		assert.Equal(t, []Backend{"a", "b"}, p.Backends)
		assert.Equal(t, "", p.Correlation)
		assert.Equal(t, context.Background(), p.Context())
	})
	t.Run("Empty Query", func(t *testing.T) {
		p, err := NewPlan("", []Backend{"a"})
		assert.Nil(t, p)
		assert.EqualError(t, err, "flowrace/race: empty query")
	})
	t.Run("No Backends", func(t *testing.T) {
		p, err := NewPlan("q", nil)
		assert.Nil(t, p)
		assert.EqualError(t, err, "flowrace/race: no backends")

		p, err = NewPlan("q", []Backend{})
		assert.Nil(t, p)
		assert.EqualError(t, err, "flowrace/race: no backends")
	})
	t.Run("Copies Backends", func(t *testing.T) {
		backends := []Backend{"a", "b"}
		p, err := NewPlan("q", backends)
		require.NoError(t, err)
		backends[0] = "mutated"
		assert.Equal(t, Backend("a"), p.Backends[0])
	})
}

func TestNewPlanWithContext(t *testing.T) {
	t.Run("Nil Context", func(t *testing.T) {
		var ctx context.Context
		p, err := NewPlanWithContext(ctx, "q", []Backend{"a"})
		assert.Nil(t, p)
		assert.EqualError(t, err, "flowrace/race: nil context")
	})
	t.Run("Valid", func(t *testing.T) {
		type key struct{}
		ctx := context.WithValue(context.Background(), key{}, "v")
		p, err := NewPlanWithContext(ctx, "q", []Backend{"a"})
		require.NoError(t, err)
		assert.Same(t, ctx, p.Context())
	})
}

func TestPlanContext(t *testing.T) {
	t.Run("Zero Value", func(t *testing.T) {
		p := &Plan{}
		assert.Equal(t, context.Background(), p.Context())
	})
}

func TestPlanWithContext(t *testing.T) {
	t.Run("Nil Context", func(t *testing.T) {
		p, err := NewPlan("q", []Backend{"a"})
		require.NoError(t, err)
		assert.PanicsWithValue(t, "flowrace/race: nil context", func() {
			var ctx context.Context
			p.WithContext(ctx)
		})
	})
	t.Run("Copies Plan", func(t *testing.T) {
		p, err := NewPlan("q", []Backend{"a", "b"})
		require.NoError(t, err)
		p.Correlation = "seed"
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		p2 := p.WithContext(ctx)
		assert.NotSame(t, p, p2)
		assert.Same(t, ctx, p2.Context())
		assert.Equal(t, context.Background(), p.Context())
		assert.Equal(t, p.Query, p2.Query)
		assert.Equal(t, p.Backends, p2.Backends)
		assert.Equal(t, "seed", p2.Correlation)
	})
}
