// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/coopernurse/vote-web/models"
)

var ErrMalformedRating = errors.New("malformed rating")

// ParseRangeKey splits a "range_<questionId>_<option>" answer key.
// The option is everything after the second underscore and may itself
// contain underscores.
func ParseRangeKey(key string) (questionID, option string, ok bool) {
	rest, found := strings.CutPrefix(key, models.RangeKeyPrefix)
	if !found {
		return "", "", false
	}
	questionID, option, found = strings.Cut(rest, "_")
	if !found || questionID == "" {
		return "", "", false
	}
	return questionID, option, true
}

// ParseRating parses a rating value as a base-10 integer
func ParseRating(value string) (int, error) {
	rating, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedRating, value)
	}
	return rating, nil
}

// GroupRangeVotesByQuestion groups each voter's range ratings by question id.
// Voters appear in the order their votes were supplied. A single bad rating
// fails the whole call.
func GroupRangeVotesByQuestion(votes []models.Vote) (map[string][]models.RangeVote, error) {
	byQuestionID := make(map[string][]models.RangeVote)
	for _, vote := range votes {
		ratingsByQuestionID, err := rangeRatings(vote)
		if err != nil {
			return nil, err
		}
		for questionID, ratings := range ratingsByQuestionID {
			byQuestionID[questionID] = append(byQuestionID[questionID], models.RangeVote{
				ID:         vote.ID,
				BallotID:   vote.BallotID,
				QuestionID: questionID,
				Ratings:    ratings,
			})
		}
	}
	return byQuestionID, nil
}

// rangeRatings decodes the range answers of one vote record
func rangeRatings(vote models.Vote) (map[string]map[string]int, error) {
	ratingsByQuestionID := make(map[string]map[string]int)
	for key, value := range vote.Answers {
		questionID, option, ok := ParseRangeKey(key)
		if !ok {
			continue
		}
		rating, err := ParseRating(value)
		if err != nil {
			return nil, fmt.Errorf("vote %s key %s: %w", vote.ID, key, err)
		}
		ratings, seen := ratingsByQuestionID[questionID]
		if !seen {
			ratings = make(map[string]int)
			ratingsByQuestionID[questionID] = ratings
		}
		ratings[option] = rating
	}
	return ratingsByQuestionID, nil
}
