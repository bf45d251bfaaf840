// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"errors"
	"fmt"
	"slices"

	"github.com/coopernurse/vote-web/models"
)

var ErrInvalidScale = errors.New("invalid rating scale")

// WinnerSet is an ordered set of options already declared winners.
// It is never modified in place; With returns a new set.
type WinnerSet []string

func (s WinnerSet) Contains(option string) bool {
	return slices.Contains(s, option)
}

// With returns a copy of s with option appended
func (s WinnerSet) With(option string) WinnerSet {
	if s.Contains(option) {
		return s
	}
	next := make(WinnerSet, len(s), len(s)+1)
	copy(next, s)
	return append(next, option)
}

// BallotWeights returns each voter's weight keyed by vote id:
//
//	weight = maxRating / (maxRating + sum of the voter's ratings of winners)
//
// A voter who rated none of the winners keeps weight 1.
func BallotWeights(maxRating int, won WinnerSet, votes []models.RangeVote) (map[string]float64, error) {
	if err := checkScale(maxRating); err != nil {
		return nil, err
	}
	weightsByVoteID := make(map[string]float64, len(votes))
	for _, vote := range votes {
		weightsByVoteID[vote.ID] = voterWeight(float64(maxRating), won, vote)
	}
	return weightsByVoteID, nil
}

func voterWeight(maxRating float64, won WinnerSet, vote models.RangeVote) float64 {
	sumWinnerRatings := 0.0
	for _, option := range won {
		if rating, ok := vote.Ratings[option]; ok {
			sumWinnerRatings += float64(rating)
		}
	}
	return maxRating / (maxRating + sumWinnerRatings)
}

func checkScale(maxRating int) error {
	if maxRating <= 0 {
		return fmt.Errorf("%w: max rating %d", ErrInvalidScale, maxRating)
	}
	return nil
}
