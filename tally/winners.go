// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"github.com/coopernurse/vote-web/models"
)

// OptionMeans computes the weighted mean rating of every option not yet in
// won, in the order the options are declared on the question.
//
// Only voters who rated an option count towards its mean, and options
// nobody rated are left out entirely rather than scored as zero.
func OptionMeans(question models.RangeQuestion, won WinnerSet, votes []models.RangeVote) ([]models.RangeWinner, error) {
	if err := checkScale(question.MaxRating); err != nil {
		return nil, err
	}

	maxRating := float64(question.MaxRating)
	weights := make([]float64, len(votes))
	for i, vote := range votes {
		weights[i] = voterWeight(maxRating, won, vote)
	}

	var means []models.RangeWinner
	for _, option := range question.Options {
		if won.Contains(option) {
			continue
		}
		sum := 0.0
		count := 0
		for i, vote := range votes {
			rating, ok := vote.Ratings[option]
			if !ok {
				continue
			}
			sum += float64(rating) * weights[i]
			count++
		}
		if count == 0 {
			continue
		}
		means = append(means, models.RangeWinner{
			Option: option,
			Mean:   sum / float64(count),
		})
	}
	return means, nil
}

// NextRangeWinner picks the option with the highest weighted mean given the
// winners so far. Ties go to the option declared first. ok is false when no
// remaining option has any rating.
func NextRangeWinner(question models.RangeQuestion, won WinnerSet, votes []models.RangeVote) (winner models.RangeWinner, ok bool, err error) {
	means, err := OptionMeans(question, won, votes)
	if err != nil {
		return models.RangeWinner{}, false, err
	}
	if len(means) == 0 {
		return models.RangeWinner{}, false, nil
	}

	winner = means[0]
	for _, candidate := range means[1:] {
		if candidate.Mean > winner.Mean {
			winner = candidate
		}
	}
	return winner, true, nil
}

// RangeWinners runs reweighted range voting over a question, returning
// winners strongest first. The list is shorter than the option list when
// voters stop rating the remaining options.
func RangeWinners(question models.RangeQuestion, votes []models.RangeVote) ([]models.RangeWinner, error) {
	if err := checkScale(question.MaxRating); err != nil {
		return nil, err
	}

	winners := []models.RangeWinner{}
	var won WinnerSet
	for len(won) < len(question.Options) {
		winner, ok, err := NextRangeWinner(question, won, votes)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		winners = append(winners, winner)
		won = won.With(winner.Option)
	}
	return winners, nil
}
