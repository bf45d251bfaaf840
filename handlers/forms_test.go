// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/url"
	"reflect"
	"testing"

	"github.com/coopernurse/vote-web/models"
)

func TestValidID(t *testing.T) {
	testCases := []struct {
		id   string
		want bool
	}{
		{"q1", true},
		{"01J9ZX4W8Q-abc", true},
		{"", false},
		{"q_1", false},
		{"has space", false},
		{"a/b", false},
		{string(make([]byte, maxIDLength+1)), false},
	}

	for _, tc := range testCases {
		if got := validID(tc.id); got != tc.want {
			t.Errorf("validID(%q) = %v, want %v", tc.id, got, tc.want)
		}
	}
}

func TestSplitOptions(t *testing.T) {
	got := splitOptions("  tacos \r\n\npizza\ntacos\n  \nsushi")
	want := []string{"tacos", "pizza", "sushi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if got := splitOptions(""); got == nil || len(got) != 0 {
		t.Errorf("Expected empty non-nil slice, got %#v", got)
	}
}

func TestToBallot(t *testing.T) {
	form := url.Values{
		"ballotId":           {"lunch"},
		"name":               {"  Team lunch "},
		"question_0":         {"Comments?"},
		"question_id_0":      {"t1"},
		"question_1":         {""},
		"question_id_1":      {""},
		"range_question_1":   {"Dessert?"},
		"range_id_1":         {""},
		"range_options_1":    {"cake\npie"},
		"range_max_1":        {""},
		"range_question_0":   {"Where to eat?"},
		"range_id_0":         {"q1"},
		"range_options_0":    {"tacos\npizza\ntacos"},
		"range_max_0":        {"3"},
		"range_question_2":   {""},
		"range_options_2":    {""},
		"range_max_2":        {"5"},
		"range_question_abc": {"ignored"},
	}

	ballot, err := toBallot(form)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if ballot.ID != "lunch" || ballot.Name != "Team lunch" {
		t.Errorf("Unexpected ballot header: %q %q", ballot.ID, ballot.Name)
	}

	if len(ballot.Questions) != 1 || ballot.Questions[0] != (models.Question{ID: "t1", Question: "Comments?"}) {
		t.Errorf("Unexpected questions: %+v", ballot.Questions)
	}

	if len(ballot.RangeQuestions) != 2 {
		t.Fatalf("Expected 2 range questions, got %d", len(ballot.RangeQuestions))
	}

	// Row order follows the form positions
	first := ballot.RangeQuestions[0]
	if first.ID != "q1" || first.MaxRating != 3 || !reflect.DeepEqual(first.Options, []string{"tacos", "pizza"}) {
		t.Errorf("Unexpected first range question: %+v", first)
	}

	second := ballot.RangeQuestions[1]
	if second.ID == "" {
		t.Error("Expected a generated id for the new question")
	}
	if second.MaxRating != models.DefaultMaxRating {
		t.Errorf("Expected default max rating, got %d", second.MaxRating)
	}
}

func TestToBallotGeneratesBallotID(t *testing.T) {
	ballot, err := toBallot(url.Values{"name": {"Lunch"}})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !validID(ballot.ID) {
		t.Errorf("Expected a valid generated id, got %q", ballot.ID)
	}
	if ballot.Questions == nil || ballot.RangeQuestions == nil {
		t.Error("Expected empty question lists, not nil")
	}
}

func TestToBallotErrors(t *testing.T) {
	base := func() url.Values {
		return url.Values{
			"ballotId":         {"lunch"},
			"name":             {"Lunch"},
			"range_question_0": {"Where?"},
			"range_id_0":       {"q1"},
			"range_options_0":  {"a\nb"},
			"range_max_0":      {"5"},
		}
	}

	testCases := []struct {
		name   string
		modify func(url.Values)
	}{
		{"missing name", func(f url.Values) { f.Set("name", " ") }},
		{"underscore in ballot id", func(f url.Values) { f.Set("ballotId", "my_ballot") }},
		{"underscore in question id", func(f url.Values) { f.Set("range_id_0", "q_1") }},
		{"max rating not a number", func(f url.Values) { f.Set("range_max_0", "five") }},
		{"max rating zero", func(f url.Values) { f.Set("range_max_0", "0") }},
		{"max rating negative", func(f url.Values) { f.Set("range_max_0", "-3") }},
		{"max rating too high", func(f url.Values) { f.Set("range_max_0", "101") }},
		{"no options", func(f url.Values) { f.Set("range_options_0", "\n \n") }},
		{"duplicate question id", func(f url.Values) {
			f.Set("range_question_1", "Again?")
			f.Set("range_id_1", "q1")
			f.Set("range_options_1", "x")
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			form := base()
			tc.modify(form)

			_, err := toBallot(form)
			if !errors.Is(err, errInvalidInput) {
				t.Errorf("Expected invalid input error, got %v", err)
			}
		})
	}
}

func TestFormAnswers(t *testing.T) {
	form := url.Values{
		"ballotId":       {"lunch"},
		"range_q1_tacos": {"3"},
		"question_t1":    {"hi"},
		"submit":         {"Vote"},
	}

	got := formAnswers(form)
	want := map[string]string{"range_q1_tacos": "3", "question_t1": "hi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestValidateAnswers(t *testing.T) {
	ballot := models.Ballot{
		ID:        "lunch",
		Name:      "Lunch",
		Questions: []models.Question{{ID: "t1", Question: "Comments?"}},
		RangeQuestions: []models.RangeQuestion{
			{ID: "q1", Question: "Where?", Options: []string{"tacos", "fish_tacos"}, MaxRating: 3},
		},
	}

	t.Run("valid answers", func(t *testing.T) {
		got, err := validateAnswers(ballot, map[string]string{
			"range_q1_tacos":      " 3 ",
			"range_q1_fish_tacos": "0",
			"question_t1":         " none ",
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		want := map[string]string{
			"range_q1_tacos":      "3",
			"range_q1_fish_tacos": "0",
			"question_t1":         "none",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Expected %v, got %v", want, got)
		}
	})

	t.Run("empty values are abstentions", func(t *testing.T) {
		got, err := validateAnswers(ballot, map[string]string{
			"range_q1_tacos": "",
			"question_t1":    "  ",
		})
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(got) != 0 {
			t.Errorf("Expected no stored answers, got %v", got)
		}
	})

	invalidCases := map[string]map[string]string{
		"rating above max":  {"range_q1_tacos": "4"},
		"negative rating":   {"range_q1_tacos": "-1"},
		"fractional rating": {"range_q1_tacos": "2.5"},
		"unknown option":    {"range_q1_pizza": "1"},
		"unknown question":  {"range_q9_tacos": "1"},
		"unknown text":      {"question_t9": "hello"},
		"unexpected key":    {"range_q1": "1"},
	}
	for name, answers := range invalidCases {
		t.Run(name, func(t *testing.T) {
			if _, err := validateAnswers(ballot, answers); !errors.Is(err, errInvalidInput) {
				t.Errorf("Expected invalid input error, got %v", err)
			}
		})
	}
}
