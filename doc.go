// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the vote-web server.

vote-web lets anyone create a ballot, share a voting link, and see the
results. Rated questions are tallied with reweighted range voting (RRV);
free-text questions are listed as submitted.

# Starting the Server

The only required setting is the cookie signing secret:

	COOKIE_SECRET=change-me go run .

Or with flags:

	go run . -p 8080 -t postgres -d "postgres://..." --cookie-secret dev

A .env file in the working directory is loaded first if present.

# Configuration

Required settings:

  - COOKIE_SECRET (--cookie-secret): Secret for voter cookie signatures and IP hashes

Optional settings:

  - PORT (-p): Server port (default: 8080)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL or MAPDB_FILE (-d): Connection string or SQLite file (default: vote.db)
  - REDIS_ADDR (--redis): Enables the shared results cache
  - RESULTS_CACHE_TTL (--cache-ttl): Lifetime of cached results (default: 1m)
  - PUBLIC_BASE_URL (--base-url): Origin used in share links
  - TEMPLATE_DIR (--templates): Reload templates from disk, ignored when PROD=true
  - PROD: Set to true to always use the embedded templates

# Architecture

  - tally: RRV winner selection, independent of HTTP and storage
  - handlers: HTML pages and JSON API for ballots, votes, and results
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, body limits, JSON helpers
  - views: Embedded html/template pages
  - models: Ballot, vote, and result types
  - auth: Voter cookies and identifiers
  - db: Connection pool, migrations, and ballot/vote storage
  - cache: Redis results cache
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
