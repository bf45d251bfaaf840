// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/coopernurse/vote-web/auth"
	"github.com/coopernurse/vote-web/cliparse"
	"github.com/coopernurse/vote-web/db"
	"github.com/coopernurse/vote-web/models"
)

// SetupTestDB opens a private in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// A single connection keeps every query on the same in-memory database
	conn, err := db.Open(
		db.WithDriver("sqlite"),
		db.WithDataSource(":memory:"),
		db.WithMaxOpenConns(1),
		db.WithConnMaxLifetime(0),
		db.WithRetry(1, 0),
	)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(context.Background(), conn, db.TypeSQLite); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3318,
		DatabaseURL:   ":memory:",
		DatabaseType:  db.TypeSQLite,
		CookieSecret:  "test-cookie-secret",
		ResultsTTL:    time.Minute,
		PublicBaseURL: "http://vote.test",
	}
}

// RangeQuestion builds a range question rated 0..maxRating
func RangeQuestion(id, question string, maxRating int, options ...string) models.RangeQuestion {
	return models.RangeQuestion{
		ID:        id,
		Question:  question,
		Options:   options,
		MaxRating: maxRating,
	}
}

// CreateTestBallot stores a ballot with the given range questions and one
// free-text question "qtext"
func CreateTestBallot(t *testing.T, conn *sql.DB, id, name string, rangeQuestions ...models.RangeQuestion) models.Ballot {
	t.Helper()

	ballot := models.Ballot{
		ID:             id,
		Name:           name,
		Questions:      []models.Question{{ID: "qtext", Question: "Comments?"}},
		RangeQuestions: rangeQuestions,
	}
	if err := db.PutBallot(context.Background(), conn, &ballot); err != nil {
		t.Fatalf("Failed to create test ballot: %v", err)
	}

	return ballot
}

// SubmitTestVote stores a vote directly, bypassing validation
func SubmitTestVote(t *testing.T, conn *sql.DB, ballotID, voteID string, answers map[string]string) {
	t.Helper()

	vote := models.Vote{ID: voteID, BallotID: ballotID, Answers: answers}
	if _, err := db.PutVote(context.Background(), conn, vote, db.VoteMeta{}); err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}
}

// VoterCookie returns a signed voter cookie for the ballot
func VoterCookie(cfg cliparse.Config, ballotID, voterID string) *http.Cookie {
	return &http.Cookie{
		Name:  auth.VoterCookieName(ballotID),
		Value: auth.SignVoterID(ballotID, voterID, cfg.CookieSecret),
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body any, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// MakeFormRequest creates a url-encoded form POST
func MakeFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// ResponseCookie finds a cookie set on the response
func ResponseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
