// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/coopernurse/vote-web/cache"
	"github.com/coopernurse/vote-web/cliparse"
	"github.com/coopernurse/vote-web/models"
	"github.com/coopernurse/vote-web/testutil"
	"github.com/coopernurse/vote-web/views"
)

// memoryCache is an in-process ResultCache that counts its calls
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	hits    int
	sets    int
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string, dest any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	if !ok {
		return cache.ErrMiss
	}
	c.hits++
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	c.sets++
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.deletes++
	return nil
}

func (c *memoryCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

type testEnv struct {
	db      *sql.DB
	cfg     cliparse.Config
	cache   *memoryCache
	ballots *BallotHandler
	voting  *VotingHandler
	results *ResultsHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pages, err := views.New("")
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}

	env := &testEnv{
		db:    testutil.SetupTestDB(t),
		cfg:   testutil.GetTestConfig(),
		cache: newMemoryCache(),
	}
	env.ballots = NewBallotHandler(env.db, env.cfg, pages, env.cache)
	env.voting = NewVotingHandler(env.db, env.cfg, pages, env.cache)
	env.results = NewResultsHandler(env.db, env.cfg, pages, env.cache)
	return env
}

// lunchBallot is the two-voter example: a wins with mean 2.5, then b
func lunchBallot(t *testing.T, env *testEnv) models.Ballot {
	t.Helper()

	ballot := testutil.CreateTestBallot(t, env.db, "lunch", "Team lunch",
		testutil.RangeQuestion("q1", "Where to eat?", 5, "a", "b", "c"))
	testutil.SubmitTestVote(t, env.db, ballot.ID, "v1", map[string]string{
		"range_q1_a":     "4",
		"range_q1_b":     "1",
		"question_qtext": "spicy please",
	})
	testutil.SubmitTestVote(t, env.db, ballot.ID, "v2", map[string]string{
		"range_q1_a": "1",
		"range_q1_b": "2",
	})
	return ballot
}
