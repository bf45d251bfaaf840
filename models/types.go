// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Rating scale constants
const (
	DefaultMaxRating = 5
	MaxAllowedRating = 100
)

// Answer key prefixes used by vote submissions
const (
	QuestionKeyPrefix = "question_"
	RangeKeyPrefix    = "range_"
)

// Request types

type SubmitVoteRequest struct {
	Answers map[string]string `json:"answers"`
}

// Response types

type SaveBallotResponse struct {
	BallotID string `json:"ballot_id"`
	VoteURL  string `json:"vote_url"`
}

type SubmitVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type VoteCountResponse struct {
	VoteCount int `json:"vote_count"`
}

// Domain types

type Ballot struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Questions      []Question      `json:"questions"`
	RangeQuestions []RangeQuestion `json:"range_questions"`
}

// Free-text question; answers are listed verbatim in results
type Question struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}

// RangeQuestion asks voters to rate each option on a 0..MaxRating scale
type RangeQuestion struct {
	ID        string   `json:"id"`
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	MaxRating int      `json:"max_rating"`
}

// Vote is one voter's raw submission for a ballot.
// answer key -> value, e.g. "question_<id>" or "range_<questionId>_<option>"
type Vote struct {
	ID       string            `json:"id"`
	BallotID string            `json:"ballot_id"`
	Answers  map[string]string `json:"answers"`
}

// RangeVote holds one voter's ratings for a single range question.
// Options the voter skipped are absent from Ratings.
type RangeVote struct {
	ID         string         `json:"id"`
	BallotID   string         `json:"ballot_id"`
	QuestionID string         `json:"question_id"`
	Ratings    map[string]int `json:"ratings"`
}

// Result types

type RangeWinner struct {
	Option string  `json:"option"`
	Mean   float64 `json:"mean"`
}

type RangeQuestionResult struct {
	Question RangeQuestion `json:"question"`
	Winners  []RangeWinner `json:"winners"`
	Error    string        `json:"error,omitempty"`
}

type QuestionResult struct {
	Question string   `json:"question"`
	Answers  []string `json:"answers"`
}

type BallotResult struct {
	Ballot         Ballot                `json:"ballot"`
	Questions      []QuestionResult      `json:"questions"`
	RangeQuestions []RangeQuestionResult `json:"range_questions"`
	VoteCount      int                   `json:"vote_count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
