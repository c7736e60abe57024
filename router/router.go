// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/danielhkuo/tokenpoll/cliparse"
	"github.com/danielhkuo/tokenpoll/handlers"
	"github.com/danielhkuo/tokenpoll/middleware"
	"github.com/danielhkuo/tokenpoll/views"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	r := chi.NewRouter()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Admin
	r.Get("/admin", middleware.WithLogging(adminHandler.ListPolls))
	r.Post("/admin/create", middleware.WithLogging(adminHandler.CreatePoll))
	r.Get("/admin/poll/{id}", middleware.WithLogging(adminHandler.GetPoll))
	r.Post("/admin/poll/{id}/status", middleware.WithLogging(adminHandler.SetStatus))
	r.Get("/admin/poll/{id}/export", middleware.WithLogging(adminHandler.ExportCSV))

	// Voting (token holders)
	r.Get("/t/{code}", middleware.WithLogging(votingHandler.Landing))
	r.Post("/vote", middleware.WithLogging(votingHandler.SubmitVote))
	r.Get("/thanks/{pollId}", middleware.WithLogging(votingHandler.Thanks))

	// Public
	r.Get("/results/{pollId}", middleware.WithLogging(resultsHandler.GetResults))
	r.Get("/qr", middleware.WithLogging(resultsHandler.QRCode))

	r.Get("/", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		views.Render(w, http.StatusOK, views.PageIndex, views.IndexPage{BaseURL: cfg.BaseURL})
	}))

	return r
}
