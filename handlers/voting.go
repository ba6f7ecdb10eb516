// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// ListCandidates handles GET /api/candidates
// Returns the ballot without tallies; counts stay hidden until the
// results unlock.
func (h *VotingHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, party FROM candidate ORDER BY position
	`)
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	candidates := []models.BallotCandidate{}
	for rows.Next() {
		var c models.BallotCandidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Party); err != nil {
			slog.Error("failed to scan candidate", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates = append(candidates, c)
	}

	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// SubmitVote handles POST /api/vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	claims := middleware.SessionFromContext(r.Context())
	if claims == nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	voterID := claims.Subject

	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)

	outcome, err := CastVote(h.db, h.cfg.DatabaseType, voterID, req.CandidateID, ipHash, r.UserAgent())
	if err != nil {
		if errors.Is(err, ErrVoterNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
			return
		}
		slog.Error("vote transaction failed", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	switch outcome {
	case VoteAccepted:
		slog.Info("vote cast", "voter_id", voterID, "candidate_id", req.CandidateID)
		middleware.JSONResponse(w, http.StatusOK, models.CastVoteResponse{
			Message: "Vote cast successfully",
		})
	case VoteAlreadyVoted:
		middleware.ErrorResponse(w, http.StatusConflict, "You have already voted")
	case VoteElectionClosed:
		middleware.ErrorResponse(w, http.StatusForbidden, "Voting is currently closed")
	case VoteInvalidCandidate:
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid candidate")
	default:
		slog.Error("unknown vote outcome", "outcome", int(outcome))
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Internal error")
	}
}
