// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /api/results
// Locked until the configured unlock time, independently of whether an
// admin has closed voting. Ordering is vote count descending with
// insertion order breaking ties.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	if !h.cfg.ResultsUnlockAt.IsZero() && time.Now().Before(h.cfg.ResultsUnlockAt) {
		middleware.ErrorResponse(w, http.StatusForbidden,
			"Results are locked until the election period ends (unlocks "+
				humanize.Time(h.cfg.ResultsUnlockAt)+")")
		return
	}

	rows, err := h.db.Query(`
		SELECT name, party, vote_count
		FROM candidate
		ORDER BY vote_count DESC, position
	`)
	if err != nil {
		slog.Error("failed to query results", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	results := []models.CandidateResult{}
	for rows.Next() {
		var res models.CandidateResult
		if err := rows.Scan(&res.Name, &res.Party, &res.VoteCount); err != nil {
			slog.Error("failed to scan result", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		results = append(results, res)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Results: results,
	})
}
