// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/coopernurse/vote-web/cache"
	"github.com/coopernurse/vote-web/cliparse"
	"github.com/coopernurse/vote-web/db"
	"github.com/coopernurse/vote-web/models"
	"github.com/coopernurse/vote-web/views"
)

// ResultCache stores tallied results between requests.
// Satisfied by *cache.Cache and cache.Nop.
type ResultCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// errBallotNotFound covers unknown ballots and ballots that cannot be voted
// on yet (no name or no range questions)
var errBallotNotFound = errors.New("ballot not found")

// ballotReady reports whether the ballot can be voted on and tallied
func ballotReady(ballot models.Ballot) bool {
	return ballot.Name != "" && len(ballot.RangeQuestions) > 0
}

func loadReadyBallot(ctx context.Context, conn *sql.DB, id string) (models.Ballot, error) {
	ballot, err := db.GetBallot(ctx, conn, id)
	if errors.Is(err, db.ErrNotFound) {
		return models.Ballot{}, errBallotNotFound
	}
	if err != nil {
		return models.Ballot{}, err
	}
	if !ballotReady(ballot) {
		return models.Ballot{}, errBallotNotFound
	}
	return ballot, nil
}

// invalidateResults drops the cached result after a ballot or vote changes.
// A failed delete is logged; the entry still expires after the TTL.
func invalidateResults(ctx context.Context, results ResultCache, ballotID string) {
	if err := results.Delete(ctx, cache.ResultsKey(ballotID)); err != nil {
		slog.Warn("failed to invalidate cached results", "ballot_id", ballotID, "error", err)
	}
}

func renderPage(w http.ResponseWriter, pages *views.Renderer, status int, page string, data any) {
	if err := pages.Render(w, status, page, data); err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func renderError(w http.ResponseWriter, pages *views.Renderer, status int, message string) {
	renderPage(w, pages, status, views.PageError, views.ErrorData{
		Title:   http.StatusText(status),
		Message: message,
	})
}

func renderNotFound(w http.ResponseWriter, pages *views.Renderer) {
	renderPage(w, pages, http.StatusNotFound, views.PageBallotNotFound, views.ErrorData{
		Title: "Ballot not found",
	})
}

// voteURL is the link voters open. PublicBaseURL wins over the request host.
func voteURL(cfg cliparse.Config, r *http.Request, ballotID string) string {
	base := strings.TrimRight(cfg.PublicBaseURL, "/")
	if base == "" {
		scheme := "http"
		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		base = fmt.Sprintf("%s://%s", scheme, r.Host)
	}
	return base + "/vote/" + ballotID
}
