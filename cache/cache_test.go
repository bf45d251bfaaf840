// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultsKey(t *testing.T) {
	assert.Equal(t, "vote-web:results:b1", ResultsKey("b1"))
	assert.NotEqual(t, ResultsKey("b1"), ResultsKey("b2"))
}

func TestNop(t *testing.T) {
	ctx := context.Background()
	var c Nop

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))

	var got string
	assert.ErrorIs(t, c.Get(ctx, "k", &got), ErrMiss)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestNewUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := New(ctx, WithAddress("127.0.0.1:1"))
	assert.Error(t, err)
}

// Runs against a real Redis when REDIS_ADDR is set
func TestCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	c, err := New(ctx, WithAddress(addr), WithDB(15))
	require.NoError(t, err)
	defer c.Close()

	type payload struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	}

	key := ResultsKey("cache-test")
	require.NoError(t, c.Set(ctx, key, payload{Name: "a", Score: 2.5}, time.Minute))

	var got payload
	require.NoError(t, c.Get(ctx, key, &got))
	assert.Equal(t, payload{Name: "a", Score: 2.5}, got)

	require.NoError(t, c.Delete(ctx, key))
	assert.ErrorIs(t, c.Get(ctx, key, &got), ErrMiss)
}
