// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/coopernurse/vote-web/auth"
	"github.com/coopernurse/vote-web/models"
	"github.com/coopernurse/vote-web/tally"
)

// errInvalidInput marks errors caused by the submitted form or JSON. The
// message is safe to show to the user.
var errInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidInput, fmt.Sprintf(format, args...))
}

// Ballot editor field names; <pos> is the row number in the form
const (
	fieldBallotID      = "ballotId"
	fieldName          = "name"
	fieldQuestion      = "question_"
	fieldQuestionID    = "question_id_"
	fieldRangeQuestion = "range_question_"
	fieldRangeID       = "range_id_"
	fieldRangeOptions  = "range_options_"
	fieldRangeMax      = "range_max_"
)

const maxIDLength = 64

// validID accepts letters, digits and '-'. Ids end up in URLs and in
// "range_<questionId>_<option>" answer keys, so '_' is not allowed.
func validID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
		default:
			return false
		}
	}
	return true
}

func idOrNew(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return auth.NewID(), nil
	}
	if !validID(id) {
		return "", invalid("id %q may only contain letters, digits and '-'", id)
	}
	return id, nil
}

// formPositions returns the sorted row numbers of fields named prefix+<pos>
func formPositions(form url.Values, prefix string) []int {
	var positions []int
	for key := range form {
		rest, ok := strings.CutPrefix(key, prefix)
		if !ok {
			continue
		}
		pos, err := strconv.Atoi(rest)
		if err != nil || pos < 0 {
			continue
		}
		positions = append(positions, pos)
	}
	slices.Sort(positions)
	return positions
}

// splitOptions reads one option per line, dropping blanks and repeats
func splitOptions(text string) []string {
	options := []string{}
	for line := range strings.Lines(text) {
		option := strings.TrimSpace(line)
		if option == "" || slices.Contains(options, option) {
			continue
		}
		options = append(options, option)
	}
	return options
}

// toBallot reads the ballot editor form. Rows left blank are skipped.
func toBallot(form url.Values) (models.Ballot, error) {
	ballot := models.Ballot{
		ID:   form.Get(fieldBallotID),
		Name: form.Get(fieldName),
	}

	for _, pos := range formPositions(form, fieldQuestion) {
		p := strconv.Itoa(pos)
		ballot.Questions = append(ballot.Questions, models.Question{
			ID:       form.Get(fieldQuestionID + p),
			Question: form.Get(fieldQuestion + p),
		})
	}

	for _, pos := range formPositions(form, fieldRangeQuestion) {
		p := strconv.Itoa(pos)
		q := models.RangeQuestion{
			ID:       form.Get(fieldRangeID + p),
			Question: form.Get(fieldRangeQuestion + p),
			Options:  splitOptions(form.Get(fieldRangeOptions + p)),
		}
		if raw := strings.TrimSpace(form.Get(fieldRangeMax + p)); raw != "" {
			maxRating, err := strconv.Atoi(raw)
			if err != nil {
				return models.Ballot{}, invalid("highest rating %q is not a whole number", raw)
			}
			// 0 means "use the default" to normalizeBallot, so catch it here
			if maxRating < 1 {
				return models.Ballot{}, invalid("highest rating must be between 1 and %d", models.MaxAllowedRating)
			}
			q.MaxRating = maxRating
		}
		ballot.RangeQuestions = append(ballot.RangeQuestions, q)
	}

	return normalizeBallot(ballot)
}

// normalizeBallot trims text, assigns missing ids and checks rating scales.
// Questions with no text are dropped. Form and JSON input both pass through
// here.
func normalizeBallot(in models.Ballot) (models.Ballot, error) {
	id, err := idOrNew(in.ID)
	if err != nil {
		return models.Ballot{}, err
	}

	out := models.Ballot{
		ID:             id,
		Name:           strings.TrimSpace(in.Name),
		Questions:      []models.Question{},
		RangeQuestions: []models.RangeQuestion{},
	}
	if out.Name == "" {
		return models.Ballot{}, invalid("name is required")
	}

	seen := map[string]bool{}
	for _, q := range in.Questions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		qid, err := idOrNew(q.ID)
		if err != nil {
			return models.Ballot{}, err
		}
		if seen[qid] {
			return models.Ballot{}, invalid("duplicate question id %q", qid)
		}
		seen[qid] = true
		out.Questions = append(out.Questions, models.Question{ID: qid, Question: text})
	}

	seen = map[string]bool{}
	for _, q := range in.RangeQuestions {
		text := strings.TrimSpace(q.Question)
		if text == "" {
			continue
		}
		qid, err := idOrNew(q.ID)
		if err != nil {
			return models.Ballot{}, err
		}
		if seen[qid] {
			return models.Ballot{}, invalid("duplicate question id %q", qid)
		}
		seen[qid] = true

		maxRating := q.MaxRating
		if maxRating == 0 {
			maxRating = models.DefaultMaxRating
		}
		if maxRating < 1 || maxRating > models.MaxAllowedRating {
			return models.Ballot{}, invalid("highest rating for %q must be between 1 and %d", text, models.MaxAllowedRating)
		}

		options := splitOptions(strings.Join(q.Options, "\n"))
		if len(options) == 0 {
			return models.Ballot{}, invalid("question %q needs at least one option", text)
		}

		out.RangeQuestions = append(out.RangeQuestions, models.RangeQuestion{
			ID:        qid,
			Question:  text,
			Options:   options,
			MaxRating: maxRating,
		})
	}

	return out, nil
}

// formAnswers collects the answer fields of a submitted vote form
func formAnswers(form url.Values) map[string]string {
	answers := map[string]string{}
	for key := range form {
		if strings.HasPrefix(key, models.QuestionKeyPrefix) || strings.HasPrefix(key, models.RangeKeyPrefix) {
			answers[key] = form.Get(key)
		}
	}
	return answers
}

// validateAnswers checks answers against the ballot and returns the ones
// to store. Empty values are abstentions and are dropped. Ratings must be
// whole numbers from 0 to the question's highest rating, for a declared
// option.
func validateAnswers(ballot models.Ballot, answers map[string]string) (map[string]string, error) {
	clean := map[string]string{}
	for key, value := range answers {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		if questionID, option, ok := tally.ParseRangeKey(key); ok {
			i := slices.IndexFunc(ballot.RangeQuestions, func(q models.RangeQuestion) bool {
				return q.ID == questionID
			})
			if i < 0 {
				return nil, invalid("unknown question %q", questionID)
			}
			q := ballot.RangeQuestions[i]
			if !slices.Contains(q.Options, option) {
				return nil, invalid("unknown option %q for %q", option, q.Question)
			}
			rating, err := tally.ParseRating(value)
			if err != nil {
				return nil, invalid("rating for %q must be a whole number", option)
			}
			if rating < 0 || rating > q.MaxRating {
				return nil, invalid("rating for %q must be between 0 and %d", option, q.MaxRating)
			}
			clean[key] = strconv.Itoa(rating)
			continue
		}

		if questionID, ok := strings.CutPrefix(key, models.QuestionKeyPrefix); ok {
			known := slices.ContainsFunc(ballot.Questions, func(q models.Question) bool {
				return q.ID == questionID
			})
			if !known {
				return nil, invalid("unknown question %q", questionID)
			}
			clean[key] = value
			continue
		}

		return nil, invalid("unexpected answer %q", key)
	}
	return clean, nil
}
