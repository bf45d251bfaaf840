// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coopernurse/vote-web/auth"
	"github.com/coopernurse/vote-web/cliparse"
	"github.com/coopernurse/vote-web/db"
	"github.com/coopernurse/vote-web/middleware"
	"github.com/coopernurse/vote-web/models"
	"github.com/coopernurse/vote-web/views"
)

type VotingHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	pages   *views.Renderer
	results ResultCache
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config, pages *views.Renderer, results ResultCache) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg, pages: pages, results: results}
}

// VoteForm handles GET /vote/{id}
// Prefills the voter's earlier answers when their cookie matches a stored vote
func (h *VotingHandler) VoteForm(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ballot, err := loadReadyBallot(r.Context(), h.db, id)
	if errors.Is(err, errBallotNotFound) {
		renderNotFound(w, h.pages)
		return
	}
	if err != nil {
		slog.Error("failed to load ballot", "ballot_id", id, "error", err)
		renderError(w, h.pages, http.StatusInternalServerError, "Could not load the ballot")
		return
	}

	// Only ballots that can be voted on hand out a voter cookie
	voterID := auth.VoterID(w, r, id, h.cfg.CookieSecret)

	answers := map[string]string{}
	previous, err := db.GetVote(r.Context(), h.db, id, voterID)
	switch {
	case err == nil:
		answers = previous.Answers
	case !errors.Is(err, db.ErrNotFound):
		slog.Warn("failed to load previous vote", "ballot_id", id, "error", err)
	}

	renderPage(w, h.pages, http.StatusOK, views.PageVote, views.VoteData{
		Title:   ballot.Name,
		Ballot:  ballot,
		Answers: answers,
	})
}

// SaveVote handles POST /vote/{id}
func (h *VotingHandler) SaveVote(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := r.ParseForm(); err != nil {
		renderError(w, h.pages, http.StatusBadRequest, "Could not read the form")
		return
	}

	ballot, err := loadReadyBallot(r.Context(), h.db, id)
	if errors.Is(err, errBallotNotFound) {
		renderNotFound(w, h.pages)
		return
	}
	if err != nil {
		slog.Error("failed to load ballot", "ballot_id", id, "error", err)
		renderError(w, h.pages, http.StatusInternalServerError, "Could not load the ballot")
		return
	}

	answers, err := validateAnswers(ballot, formAnswers(r.PostForm))
	if err != nil {
		renderError(w, h.pages, http.StatusBadRequest, err.Error())
		return
	}

	voterID := auth.VoterID(w, r, id, h.cfg.CookieSecret)
	updated, err := h.saveVote(r.Context(), r, ballot.ID, voterID, answers)
	if err != nil {
		renderError(w, h.pages, http.StatusInternalServerError, "Could not save your vote")
		return
	}

	renderPage(w, h.pages, http.StatusOK, views.PageVoteSaved, views.VoteSavedData{
		Title:   ballot.Name,
		Ballot:  ballot,
		Updated: updated,
	})
}

// SubmitVoteJSON handles POST /api/ballots/{id}/votes
// Returns 201 for a first vote and 200 when the voter's cookie replaces one
func (h *VotingHandler) SubmitVoteJSON(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ballot, err := loadReadyBallot(r.Context(), h.db, id)
	if errors.Is(err, errBallotNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	}
	if err != nil {
		slog.Error("failed to load ballot", "ballot_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	answers, err := validateAnswers(ballot, req.Answers)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	voterID := auth.VoterID(w, r, id, h.cfg.CookieSecret)
	updated, err := h.saveVote(r.Context(), r, ballot.ID, voterID, answers)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if updated {
		middleware.JSONResponse(w, http.StatusOK, models.SubmitVoteResponse{
			VoteID:  voterID,
			Message: "Vote updated",
		})
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoteID:  voterID,
		Message: "Vote recorded",
	})
}

func (h *VotingHandler) saveVote(ctx context.Context, r *http.Request, ballotID, voterID string, answers map[string]string) (bool, error) {
	vote := models.Vote{ID: voterID, BallotID: ballotID, Answers: answers}
	meta := db.VoteMeta{
		IPHash:    auth.HashIP(middleware.GetClientIP(r), h.cfg.CookieSecret),
		UserAgent: r.UserAgent(),
	}

	updated, err := db.PutVote(ctx, h.db, vote, meta)
	if err != nil {
		slog.Error("failed to save vote", "ballot_id", ballotID, "error", err)
		return false, err
	}
	invalidateResults(ctx, h.results, ballotID)

	slog.Info("vote saved", "ballot_id", ballotID, "updated", updated, "answers", len(answers))
	return updated, nil
}
