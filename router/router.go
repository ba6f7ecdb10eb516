// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/mailer"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, mail mailer.Sender) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(db, cfg, mail)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)

	voter := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(cfg.JWTSecret, models.RoleVoter, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireRole(cfg.JWTSecret, models.RoleAdmin, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter authentication (public)
	mux.HandleFunc("POST /api/user/register", middleware.WithLogging(sessionHandler.Register))
	mux.HandleFunc("POST /api/user/login", middleware.WithLogging(sessionHandler.RequestOTP))
	mux.HandleFunc("POST /api/user/verify", middleware.WithLogging(sessionHandler.VerifyOTP))

	// Voting (requires voter session)
	mux.HandleFunc("GET /api/candidates", voter(votingHandler.ListCandidates))
	mux.HandleFunc("POST /api/vote", voter(votingHandler.SubmitVote))

	// Results (public, gated by the unlock timestamp)
	mux.HandleFunc("GET /api/results", middleware.WithLogging(resultsHandler.GetResults))

	// Admin operations
	mux.HandleFunc("POST /api/admin/login", middleware.WithLogging(sessionHandler.AdminLogin))
	mux.HandleFunc("POST /api/admin/toggle-voting", admin(adminHandler.ToggleVoting))
	mux.HandleFunc("POST /api/admin/add-candidate", admin(adminHandler.AddCandidate))
	mux.HandleFunc("GET /api/admin/dashboard-data", admin(adminHandler.Dashboard))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ballotbox API v1"))
	})

	return mux
}
