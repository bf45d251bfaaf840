// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP handlers for ballots, votes and results.

# Handler Types

Each handler is a struct built from the database, config, page renderer and
results cache:

  - BallotHandler: home page and the ballot editor, plus the JSON ballot API
  - VotingHandler: vote form and vote submission (form and JSON)
  - ResultsHandler: tallied results and vote counts

	ballotHandler := handlers.NewBallotHandler(db, cfg, pages, resultCache)

# Ballots

	GET  /ballot          → CreateBallot (blank editor)
	GET  /ballot/{id}     → EditBallot
	POST /ballot          → SaveBallot (303 to /ballot/{id}?saved=1)
	POST /api/ballots     → SaveBallotJSON
	GET  /api/ballots/{id} → GetBallotJSON

The editor posts one row per question. Text rows use question_<pos> and
question_id_<pos>; rated rows use range_question_<pos>, range_id_<pos>,
range_options_<pos> (one option per line) and range_max_<pos>. Blank rows are
skipped and missing ids are generated. Ids may only contain letters, digits
and '-'.

# Voting

	GET  /vote/{id}               → VoteForm
	POST /vote/{id}               → SaveVote
	POST /api/ballots/{id}/votes  → SubmitVoteJSON

Voters are identified by a signed per-ballot cookie (see package auth). Voting
again with the same cookie replaces the earlier vote. Answers are keyed
question_<questionId> and range_<questionId>_<option>; empty values are
abstentions. A rating outside 0..MaxRating or for an undeclared option is
rejected with 400.

A ballot without a name or without rated questions is treated as not found.

# Results

	GET /results/{id}                → ViewResults
	GET /api/ballots/{id}/results    → GetResults
	GET /api/ballots/{id}/vote-count → GetVoteCount

The ballot and its votes load concurrently, concurrent requests for the same
ballot share one tally, and the result is cached until the next ballot or vote
save for that ballot.
*/
package handlers
