// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally implements reweighted range voting (RRV).

Voters rate each option of a range question on a 0..max_rating scale.
Winners are chosen one at a time: the option with the highest weighted mean
rating wins, then voters who rated that winner highly are down-weighted
before the next round.

# Grouping

Raw votes carry answers keyed by "range_<questionId>_<option>":

	byQuestion, err := tally.GroupRangeVotesByQuestion(votes)

A non-integer rating fails with ErrMalformedRating.

# Weights

Each voter's weight for the next round is

	maxRating / (maxRating + sum of the voter's ratings of winners so far)

so a voter who rated none of the winners keeps weight 1:

	weights, err := tally.BallotWeights(5, tally.WinnerSet{"a"}, votes)

# Winner Selection

	winners, err := tally.RangeWinners(question, votes)

Each round scans the remaining options in declared order. The mean divides
by the number of voters who rated the option, so abstentions do not dilute
it, and unrated options are not candidates. Ties go to the option declared
first. The loop stops when every option has won or no remaining option has
a rating.

A max_rating of zero or less fails with ErrInvalidScale.

# Ballot Results

	result, err := tally.ToBallotResult(ballot, votes)

Collects free-text answers and runs RRV for every range question. A
question that fails to tally carries its error in RangeQuestionResult.Error;
the other questions are unaffected. A vote with a malformed rating is logged
and left out of every range tally, but its free-text answers are kept.

All functions are pure: they keep no state between calls and never modify
their inputs, so concurrent tallies need no coordination.
*/
package tally
