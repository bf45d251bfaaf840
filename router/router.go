// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/coopernurse/vote-web/cliparse"
	"github.com/coopernurse/vote-web/handlers"
	"github.com/coopernurse/vote-web/middleware"
	"github.com/coopernurse/vote-web/views"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, pages *views.Renderer, results handlers.ResultCache) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	ballotHandler := handlers.NewBallotHandler(db, cfg, pages, results)
	votingHandler := handlers.NewVotingHandler(db, cfg, pages, results)
	resultsHandler := handlers.NewResultsHandler(db, cfg, pages, results)

	page := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.LimitBody(h))
	}
	api := func(h http.HandlerFunc) http.Handler {
		return middleware.CORS(middleware.WithLogging(middleware.LimitBody(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// HTML pages
	mux.HandleFunc("GET /{$}", page(ballotHandler.HomePage))
	mux.HandleFunc("GET /ballot", page(ballotHandler.CreateBallot))
	mux.HandleFunc("GET /ballot/{id}", page(ballotHandler.EditBallot))
	mux.HandleFunc("POST /ballot", page(ballotHandler.SaveBallot))
	mux.HandleFunc("GET /vote/{id}", page(votingHandler.VoteForm))
	mux.HandleFunc("POST /vote/{id}", page(votingHandler.SaveVote))
	mux.HandleFunc("GET /results/{id}", page(resultsHandler.ViewResults))

	// JSON API
	mux.Handle("POST /api/ballots", api(ballotHandler.SaveBallotJSON))
	mux.Handle("GET /api/ballots/{id}", api(ballotHandler.GetBallotJSON))
	mux.Handle("POST /api/ballots/{id}/votes", api(votingHandler.SubmitVoteJSON))
	mux.Handle("GET /api/ballots/{id}/results", api(resultsHandler.GetResults))
	mux.Handle("GET /api/ballots/{id}/vote-count", api(resultsHandler.GetVoteCount))

	// CORS answers preflight requests before the wrapped handler runs
	mux.Handle("OPTIONS /api/", middleware.CORS(http.NotFoundHandler()))

	return mux
}
