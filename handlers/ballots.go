// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coopernurse/vote-web/cliparse"
	"github.com/coopernurse/vote-web/db"
	"github.com/coopernurse/vote-web/middleware"
	"github.com/coopernurse/vote-web/models"
	"github.com/coopernurse/vote-web/views"
)

type BallotHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	pages   *views.Renderer
	results ResultCache
}

func NewBallotHandler(db *sql.DB, cfg cliparse.Config, pages *views.Renderer, results ResultCache) *BallotHandler {
	return &BallotHandler{db: db, cfg: cfg, pages: pages, results: results}
}

// HomePage handles GET /
func (h *BallotHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.pages, http.StatusOK, views.PageHome, views.HomeData{Title: "Range voting"})
}

// CreateBallot handles GET /ballot
func (h *BallotHandler) CreateBallot(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.pages, http.StatusOK, views.PageBallot, views.NewBallotData(models.Ballot{}, "", false))
}

// EditBallot handles GET /ballot/{id}
func (h *BallotHandler) EditBallot(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ballot, err := db.GetBallot(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		renderNotFound(w, h.pages)
		return
	}
	if err != nil {
		slog.Error("failed to load ballot", "ballot_id", id, "error", err)
		renderError(w, h.pages, http.StatusInternalServerError, "Could not load the ballot")
		return
	}

	saved := r.URL.Query().Get("saved") == "1"
	renderPage(w, h.pages, http.StatusOK, views.PageBallot, views.NewBallotData(ballot, voteURL(h.cfg, r, id), saved))
}

// SaveBallot handles POST /ballot
// Redirects to the editor so a refresh does not resubmit the form
func (h *BallotHandler) SaveBallot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderError(w, h.pages, http.StatusBadRequest, "Could not read the form")
		return
	}

	ballot, err := toBallot(r.PostForm)
	if err != nil {
		renderError(w, h.pages, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.save(r, &ballot); err != nil {
		renderError(w, h.pages, http.StatusInternalServerError, "Could not save the ballot")
		return
	}

	http.Redirect(w, r, "/ballot/"+ballot.ID+"?saved=1", http.StatusSeeOther)
}

// SaveBallotJSON handles POST /api/ballots
func (h *BallotHandler) SaveBallotJSON(w http.ResponseWriter, r *http.Request) {
	var req models.Ballot
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ballot, err := normalizeBallot(req)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.save(r, &ballot); err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SaveBallotResponse{
		BallotID: ballot.ID,
		VoteURL:  voteURL(h.cfg, r, ballot.ID),
	})
}

// GetBallotJSON handles GET /api/ballots/{id}
func (h *BallotHandler) GetBallotJSON(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ballot, err := db.GetBallot(r.Context(), h.db, id)
	if errors.Is(err, db.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Ballot not found")
		return
	}
	if err != nil {
		slog.Error("failed to load ballot", "ballot_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ballot)
}

func (h *BallotHandler) save(r *http.Request, ballot *models.Ballot) error {
	if err := db.PutBallot(r.Context(), h.db, ballot); err != nil {
		slog.Error("failed to save ballot", "ballot_id", ballot.ID, "error", err)
		return err
	}
	invalidateResults(r.Context(), h.results, ballot.ID)

	slog.Info("ballot saved",
		"ballot_id", ballot.ID,
		"questions", len(ballot.Questions),
		"range_questions", len(ballot.RangeQuestions),
	)
	return nil
}
