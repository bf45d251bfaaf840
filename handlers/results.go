// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/coopernurse/vote-web/cache"
	"github.com/coopernurse/vote-web/cliparse"
	"github.com/coopernurse/vote-web/db"
	"github.com/coopernurse/vote-web/middleware"
	"github.com/coopernurse/vote-web/models"
	"github.com/coopernurse/vote-web/tally"
	"github.com/coopernurse/vote-web/views"
)

type ResultsHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	pages   *views.Renderer
	results ResultCache
	group   singleflight.Group
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config, pages *views.Renderer, results ResultCache) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg, pages: pages, results: results}
}

// ViewResults handles GET /results/{id}
func (h *ResultsHandler) ViewResults(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := h.ballotResult(r.Context(), id)
	if errors.Is(err, errBallotNotFound) {
		renderNotFound(w, h.pages)
		return
	}
	if err != nil {
		renderError(w, h.pages, http.StatusInternalServerError, "Could not tally the votes")
		return
	}

	renderPage(w, h.pages, http.StatusOK, views.PageResults, views.ResultsData{
		Title:  result.Ballot.Name,
		Result: result,
	})
}

// GetResults handles GET /api/ballots/{id}/results
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	result, err := h.ballotResult(r.Context(), id)
	if errors.Is(err, errBallotNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to tally votes")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// GetVoteCount handles GET /api/ballots/{id}/vote-count
func (h *ResultsHandler) GetVoteCount(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	_, err := db.GetBallot(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	}
	if err != nil {
		slog.Error("failed to load ballot", "ballot_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	count, err := db.CountVotes(r.Context(), h.db, id)
	if err != nil {
		slog.Error("failed to count votes", "ballot_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoteCountResponse{VoteCount: count})
}

// ballotResult serves the cached result when there is one. Otherwise
// concurrent requests for the same ballot share a single tally.
func (h *ResultsHandler) ballotResult(ctx context.Context, id string) (models.BallotResult, error) {
	key := cache.ResultsKey(id)

	var result models.BallotResult
	err := h.results.Get(ctx, key, &result)
	if err == nil {
		return result, nil
	}
	if !errors.Is(err, cache.ErrMiss) {
		slog.Warn("failed to read cached results", "ballot_id", id, "error", err)
	}

	v, err, shared := h.group.Do(id, func() (any, error) {
		// Followers wait on this call, so it must outlive the first caller
		return h.computeResult(context.WithoutCancel(ctx), id)
	})
	if err != nil {
		return models.BallotResult{}, err
	}
	if shared {
		slog.Debug("shared results computation", "ballot_id", id)
	}
	return v.(models.BallotResult), nil
}

func (h *ResultsHandler) computeResult(ctx context.Context, id string) (models.BallotResult, error) {
	var ballot models.Ballot
	var votes []models.Vote

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		ballot, err = loadReadyBallot(gctx, h.db, id)
		return err
	})
	g.Go(func() error {
		var err error
		votes, err = db.VotesForBallot(gctx, h.db, id)
		return err
	})
	if err := g.Wait(); err != nil {
		if !errors.Is(err, errBallotNotFound) {
			slog.Error("failed to load ballot for results", "ballot_id", id, "error", err)
		}
		return models.BallotResult{}, err
	}

	result, err := tally.ToBallotResult(ballot, votes)
	if err != nil {
		slog.Error("failed to tally ballot", "ballot_id", id, "error", err)
		return models.BallotResult{}, err
	}

	if err := h.results.Set(ctx, cache.ResultsKey(id), result, h.cfg.ResultsTTL); err != nil {
		slog.Warn("failed to cache results", "ballot_id", id, "error", err)
	}

	slog.Info("ballot tallied", "ballot_id", id, "votes", result.VoteCount)
	return result, nil
}
