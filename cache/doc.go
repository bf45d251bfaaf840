// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cache stores tallied ballot results in Redis.

	c, err := cache.New(ctx, cache.WithAddress(cfg.RedisAddr))

Values are JSON encoded. Get returns ErrMiss when the key is absent.
Results are keyed by ResultsKey(ballotID) and deleted whenever the ballot
or one of its votes is saved.

Nop is used when no Redis address is configured.
*/
package cache
