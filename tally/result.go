// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"fmt"
	"log/slog"

	"github.com/coopernurse/vote-web/models"
)

// TallyRangeQuestion computes the winners for one range question.
// A failure is recorded on the result so sibling questions still tally.
func TallyRangeQuestion(question models.RangeQuestion, votes []models.RangeVote) models.RangeQuestionResult {
	winners, err := RangeWinners(question, votes)
	if err != nil {
		slog.Warn("range question tally failed", "question_id", question.ID, "error", err)
		return models.RangeQuestionResult{
			Question: question,
			Winners:  []models.RangeWinner{},
			Error:    err.Error(),
		}
	}
	return models.RangeQuestionResult{Question: question, Winners: winners}
}

// ToBallotResult tallies every question on the ballot from the raw votes.
// Votes are only read, never modified. A vote with a malformed rating is
// left out of the range tallies; its free-text answers still count.
func ToBallotResult(ballot models.Ballot, votes []models.Vote) (models.BallotResult, error) {
	rangeVotesByQuestionID, err := GroupRangeVotesByQuestion(wellFormedVotes(votes))
	if err != nil {
		return models.BallotResult{}, fmt.Errorf("failed to group range votes: %w", err)
	}

	questions := make([]models.QuestionResult, 0, len(ballot.Questions))
	for _, question := range ballot.Questions {
		key := models.QuestionKeyPrefix + question.ID
		answers := []string{}
		for _, vote := range votes {
			if answer, ok := vote.Answers[key]; ok {
				answers = append(answers, answer)
			}
		}
		questions = append(questions, models.QuestionResult{
			Question: question.Question,
			Answers:  answers,
		})
	}

	rangeQuestions := make([]models.RangeQuestionResult, 0, len(ballot.RangeQuestions))
	for _, question := range ballot.RangeQuestions {
		rangeQuestions = append(rangeQuestions, TallyRangeQuestion(question, rangeVotesByQuestionID[question.ID]))
	}

	return models.BallotResult{
		Ballot:         ballot,
		Questions:      questions,
		RangeQuestions: rangeQuestions,
		VoteCount:      len(votes),
	}, nil
}

// wellFormedVotes drops votes whose range ratings do not parse
func wellFormedVotes(votes []models.Vote) []models.Vote {
	valid := make([]models.Vote, 0, len(votes))
	for _, vote := range votes {
		if _, err := rangeRatings(vote); err != nil {
			slog.Warn("skipping vote with malformed rating", "ballot_id", vote.BallotID, "vote_id", vote.ID, "error", err)
			continue
		}
		valid = append(valid, vote)
	}
	return valid
}
