// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for vote-web.

# Ballot Types

A ballot is a named list of questions:

  - Ballot: id, name, updated_at, questions, range_questions
  - Question: free-text question (id, question)
  - RangeQuestion: rate-each-option question (id, question, options, max_rating)

# Vote Types

  - Vote: raw answers keyed by form key (question_<id>, range_<questionId>_<option>)
  - RangeVote: one voter's integer ratings for a single range question

A missing rating is an abstention, not a zero.

# Result Types

Produced by the tally package and safe to serialize:

  - RangeWinner: option, mean
  - RangeQuestionResult: question, winners (strongest first), error
  - QuestionResult: question text, collected answers
  - BallotResult: ballot, questions, range_questions, vote_count

# Request/Response Types

  - SubmitVoteRequest: answers (map[string]string)
  - SaveBallotResponse: ballot_id, vote_url
  - SubmitVoteResponse: vote_id, message
  - VoteCountResponse: vote_count
  - ErrorResponse: error, message

# Constants

Rating scale:

	DefaultMaxRating = 5
	MaxAllowedRating = 100

Answer key prefixes:

	QuestionKeyPrefix = "question_"
	RangeKeyPrefix    = "range_"
*/
package models
