// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import "github.com/coopernurse/vote-web/models"

// Blank rows appended to the ballot editor
const (
	BlankQuestions      = 2
	BlankRangeQuestions = 2
)

type HomeData struct {
	Title string
}

// BallotData drives the ballot editor. Questions and RangeQuestions
// already include the blank rows.
type BallotData struct {
	Title          string
	Ballot         models.Ballot
	Questions      []models.Question
	RangeQuestions []models.RangeQuestion
	VoteURL        string
	Saved          bool
}

// NewBallotData pads the ballot's questions with blank rows
func NewBallotData(ballot models.Ballot, voteURL string, saved bool) BallotData {
	questions := append([]models.Question{}, ballot.Questions...)
	for range BlankQuestions {
		questions = append(questions, models.Question{})
	}

	rangeQuestions := append([]models.RangeQuestion{}, ballot.RangeQuestions...)
	for range BlankRangeQuestions {
		rangeQuestions = append(rangeQuestions, models.RangeQuestion{MaxRating: models.DefaultMaxRating})
	}

	title := "New ballot"
	if ballot.Name != "" {
		title = "Edit " + ballot.Name
	}

	return BallotData{
		Title:          title,
		Ballot:         ballot,
		Questions:      questions,
		RangeQuestions: rangeQuestions,
		VoteURL:        voteURL,
		Saved:          saved,
	}
}

type VoteData struct {
	Title  string
	Ballot models.Ballot
	// Previous answers keyed the same way as the form fields
	Answers map[string]string
}

type VoteSavedData struct {
	Title   string
	Ballot  models.Ballot
	Updated bool
}

type ResultsData struct {
	Title  string
	Result models.BallotResult
}

type ErrorData struct {
	Title   string
	Message string
}
