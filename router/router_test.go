// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/coopernurse/vote-web/auth"
	"github.com/coopernurse/vote-web/cache"
	"github.com/coopernurse/vote-web/models"
	"github.com/coopernurse/vote-web/testutil"
	"github.com/coopernurse/vote-web/views"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	t.Helper()

	pages, err := views.New("")
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}
	db := testutil.SetupTestDB(t)
	testutil.CreateTestBallot(t, db, "lunch", "Team lunch",
		testutil.RangeQuestion("q1", "Where to eat?", 5, "a", "b"))

	return NewRouter(db, testutil.GetTestConfig(), pages, cache.Nop{})
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Create a ballot") {
		t.Error("Expected the home page")
	}

	// Only the exact root is the home page
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/ballot", http.StatusOK},
		{"GET", "/ballot/lunch", http.StatusOK},
		{"GET", "/ballot/missing", http.StatusNotFound},
		{"GET", "/vote/lunch", http.StatusOK},
		{"GET", "/vote/missing", http.StatusNotFound},
		{"GET", "/results/lunch", http.StatusOK},
		{"GET", "/api/ballots/lunch", http.StatusOK},
		{"GET", "/api/ballots/lunch/results", http.StatusOK},
		{"GET", "/api/ballots/lunch/vote-count", http.StatusOK},
		{"GET", "/api/ballots/missing/vote-count", http.StatusNotFound},
		{"POST", "/api/ballots", http.StatusBadRequest},
		{"POST", "/api/ballots/lunch/votes", http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != tc.status {
				t.Errorf("Expected %d, got %d. Body: %s", tc.status, w.Code, w.Body.String())
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/vote/lunch"},
		{"DELETE", "/api/ballots/lunch"},
		{"POST", "/results/lunch"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestCORSOnlyOnAPI(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("OPTIONS", "/api/ballots/lunch/votes", nil)
	req.Header.Set("Origin", "https://example.com")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected preflight 200, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "https://example.com" {
		t.Error("Expected CORS headers on the API")
	}

	req = httptest.NewRequest("GET", "/results/lunch", nil)
	req.Header.Set("Origin", "https://example.com")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("HTML pages should not send CORS headers")
	}
}

func TestVoteThroughRouter(t *testing.T) {
	mux := newTestRouter(t)
	cfg := testutil.GetTestConfig()

	req := testutil.MakeFormRequest("/vote/lunch", url.Values{"range_q1_a": {"4"}, "range_q1_b": {"1"}})
	req.AddCookie(testutil.VoterCookie(cfg, "lunch", "v1"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("POST", "/api/ballots/lunch/votes", models.SubmitVoteRequest{
		Answers: map[string]string{"range_q1_a": "1", "range_q1_b": "2"},
	}, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)
	if testutil.ResponseCookie(w, auth.VoterCookieName("lunch")) == nil {
		t.Error("Expected a voter cookie for the new API voter")
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/ballots/lunch/results", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var result models.BallotResult
	testutil.AssertJSON(t, w, &result)
	winners := result.RangeQuestions[0].Winners
	if len(winners) != 2 || winners[0].Option != "a" || winners[0].Mean != 2.5 {
		t.Errorf("Unexpected winners %+v", winners)
	}
}

func TestBallotEditorRoundTrip(t *testing.T) {
	mux := newTestRouter(t)

	form := url.Values{
		"ballotId":         {"dinner"},
		"name":             {"Dinner"},
		"range_question_0": {"Cuisine"},
		"range_id_0":       {"c1"},
		"range_options_0":  {"thai\nitalian"},
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeFormRequest("/ballot", form))
	testutil.AssertStatus(t, w, http.StatusSeeOther)

	location := w.Header().Get("Location")
	if location != "/ballot/dinner?saved=1" {
		t.Fatalf("Unexpected redirect %q", location)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", location, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "http://vote.test/vote/dinner") {
		t.Error("Expected the share link after saving")
	}
}
