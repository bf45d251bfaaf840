// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and stores ballots and votes.

# Connecting

Open builds a pooled *sql.DB with functional options and retries the
initial ping:

	conn, err := db.Open(
		db.WithDriver("sqlite"),
		db.WithDataSource("vote.db"),
		db.WithMaxOpenConns(1),
	)

DriverName maps DATABASE_TYPE (sqlite, postgres) to the registered driver
(modernc.org/sqlite or github.com/lib/pq).

# Schema Creation

CreateSchema runs the embedded goose migrations in migrations/:

	if err := db.CreateSchema(ctx, conn, cfg.DatabaseType); err != nil {
		log.Fatal(err)
	}

Safe to call on every start - applied versions are recorded in
goose_db_version.

# Tables

  - ballot: one row per ballot, full definition as a JSON payload
  - vote: one row per (ballot_id, id), answers as a JSON payload plus
    ip_hash and user_agent

Timestamps are unix nanoseconds. Votes are read back ordered by created_at,
so a voter who re-submits keeps their original place.

# Queries

	db.PutBallot(ctx, conn, &ballot)
	db.GetBallot(ctx, conn, id)          // ErrNotFound if missing
	db.PutVote(ctx, conn, vote, meta)    // reports whether it replaced a vote
	db.VotesForBallot(ctx, conn, ballotID)
	db.CountVotes(ctx, conn, ballotID)
*/
package db
