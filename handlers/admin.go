// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// ToggleVoting handles POST /api/admin/toggle-voting
func (h *AdminHandler) ToggleVoting(w http.ResponseWriter, r *http.Request) {
	isOpen, err := ToggleElection(h.db)
	if err != nil {
		slog.Error("failed to toggle election", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("election toggled", "is_open", isOpen)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleElectionResponse{
		IsOpen: isOpen,
	})
}

// AddCandidate handles POST /api/admin/add-candidate
func (h *AdminHandler) AddCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.AddCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Party == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "party is required")
		return
	}

	candidateID := uuid.NewString()

	// position records insertion order for stable result ties
	_, err := h.db.Exec(`
		INSERT INTO candidate (id, name, party, vote_count, position, created_at)
		VALUES ($1, $2, $3, 0, (SELECT COALESCE(MAX(position), 0) + 1 FROM candidate), $4)
	`, candidateID, req.Name, req.Party, time.Now())

	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add candidate")
		return
	}

	slog.Info("candidate added", "candidate_id", candidateID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.AddCandidateResponse{
		CandidateID: candidateID,
	})
}

// Dashboard handles GET /api/admin/dashboard-data
// Admins see live tallies regardless of the public results unlock.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	isOpen, err := ElectionOpen(h.db)
	if err != nil {
		slog.Error("failed to read election state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var voterCount, votesCast int64
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&voterCount); err != nil {
		slog.Error("failed to count voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM vote`).Scan(&votesCast); err != nil {
		slog.Error("failed to count votes", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, name, party, vote_count, position, created_at
		FROM candidate
		ORDER BY vote_count DESC, position
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.VoteCount, &c.Position, &c.CreatedAt); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, c)
	}

	unlockStatus := "unlocked"
	if !h.cfg.ResultsUnlockAt.IsZero() && time.Now().Before(h.cfg.ResultsUnlockAt) {
		unlockStatus = "unlocks " + humanize.Time(h.cfg.ResultsUnlockAt)
	}

	middleware.JSONResponse(w, http.StatusOK, models.DashboardResponse{
		IsOpen:        isOpen,
		VoterCount:    voterCount,
		VotesCast:     votesCast,
		Candidates:    candidates,
		ResultsUnlock: unlockStatus,
	})
}
