// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines the HTTP routes.

	mux := router.NewRouter(db, cfg, pages, resultCache)

# Endpoints

Health:

	GET /health

Pages:

	GET  /              - Home
	GET  /ballot        - New ballot editor
	GET  /ballot/{id}   - Edit ballot
	POST /ballot        - Save ballot
	GET  /vote/{id}     - Vote form
	POST /vote/{id}     - Save vote
	GET  /results/{id}  - Results

JSON API (CORS enabled, OPTIONS preflight under /api/):

	POST /api/ballots                  - Create or update a ballot
	GET  /api/ballots/{id}             - Ballot definition
	POST /api/ballots/{id}/votes       - Submit a vote
	GET  /api/ballots/{id}/results     - Tallied results
	GET  /api/ballots/{id}/vote-count  - Number of votes

Every route except /health is wrapped with request logging and a body size
limit.
*/
package router
