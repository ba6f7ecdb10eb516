// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/mailer"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
)

type SessionHandler struct {
	db   *sql.DB
	cfg  cliparse.Config
	mail mailer.Sender
}

func NewSessionHandler(db *sql.DB, cfg cliparse.Config, mail mailer.Sender) *SessionHandler {
	return &SessionHandler{db: db, cfg: cfg, mail: mail}
}

// Register handles POST /api/user/register
func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid email is required")
		return
	}

	voterID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO voter (id, name, email, phone, has_voted, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
	`, voterID, req.Name, req.Email, req.Phone, time.Now())

	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: voter.email") ||
			strings.Contains(err.Error(), "voter_email_key") {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("voter registered", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{
		VoterID: voterID,
		Message: "Registration successful. Use your voter ID and email to log in.",
	})
}

// RequestOTP handles POST /api/user/login
// Issues a fresh OTP without invalidating earlier outstanding codes;
// any unexpired, unused code remains accepted at verification.
func (h *SessionHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.RequestOTPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoterID == "" || req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id and email are required")
		return
	}

	// Identity and email must match a registered voter
	var voter models.Voter
	err := h.db.QueryRow(`
		SELECT id, name, email, phone, has_voted, created_at
		FROM voter WHERE id = $1 AND email = $2
	`, req.VoterID, req.Email).Scan(
		&voter.ID, &voter.Name, &voter.Email, &voter.Phone, &voter.HasVoted, &voter.CreatedAt)

	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	code, err := auth.GenerateOTPCode()
	if err != nil {
		slog.Error("failed to generate OTP", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue code")
		return
	}

	rec := models.OTPRecord{
		ID:        uuid.NewString(),
		VoterID:   voter.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(h.cfg.OTPTTL),
		CreatedAt: time.Now(),
	}

	// The code must be durable before delivery is attempted
	_, err = h.db.Exec(`
		INSERT INTO otp (id, voter_id, code, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, FALSE, $5)
	`, rec.ID, rec.VoterID, rec.Code, rec.ExpiresAt, rec.CreatedAt)

	if err != nil {
		slog.Error("failed to insert OTP", "error", err, "voter_id", voter.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to issue code")
		return
	}

	// A stored-but-undelivered code is harmless; the voter just
	// requests another one
	if err := h.mail.Send(voter.Email, rec.Code); err != nil {
		slog.Warn("OTP delivery failed", "error", err, "voter_id", voter.ID)
	}

	slog.Info("OTP issued", "voter_id", voter.ID)

	middleware.JSONResponse(w, http.StatusOK, models.RequestOTPResponse{
		Message: "A one-time passcode has been sent to your email.",
	})
}

// VerifyOTP handles POST /api/user/verify
// A matching, unused, unexpired code is consumed and exchanged for a
// voter session credential. No-match, already-used, and expired all
// produce the same response.
func (h *SessionHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoterID == "" || req.OTPCode == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id and otp_code are required")
		return
	}

	// Consume in one guarded update so a retried code can never be
	// accepted twice. The guard is repeated outside the subselect: on
	// postgres read committed, a concurrent verify that loses the row
	// lock re-evaluates only the outer WHERE after the winner commits,
	// so the is_used and expiry checks must live there too.
	res, err := h.db.Exec(`
		UPDATE otp SET is_used = TRUE
		WHERE id = (
			SELECT id FROM otp
			WHERE voter_id = $1 AND code = $2 AND is_used = FALSE AND expires_at > $3
			ORDER BY created_at DESC
			LIMIT 1
		) AND is_used = FALSE AND expires_at > $3
	`, req.VoterID, req.OTPCode, time.Now())

	if err != nil {
		slog.Error("failed to consume OTP", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	consumed, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read consume result", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if consumed == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid or expired code")
		return
	}

	token, err := auth.MintSession(req.VoterID, models.RoleVoter, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to mint session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("voter session issued", "voter_id", req.VoterID)

	middleware.JSONResponse(w, http.StatusOK, models.VerifyOTPResponse{
		Token:   token,
		Message: "Login successful",
	})
}

// AdminLogin handles POST /api/admin/login
func (h *SessionHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req models.AdminLoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Username == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username and password are required")
		return
	}

	var admin models.Admin
	err := h.db.QueryRow(`
		SELECT username, password_hash, created_at FROM admin WHERE username = $1
	`, req.Username).Scan(&admin.Username, &admin.PasswordHash, &admin.CreatedAt)

	// Unknown username and wrong password produce the same response
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		slog.Error("failed to query admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(admin.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := auth.MintSession(admin.Username, models.RoleAdmin, h.cfg.JWTSecret)
	if err != nil {
		slog.Error("failed to mint session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("admin session issued", "username", req.Username)

	middleware.JSONResponse(w, http.StatusOK, models.AdminLoginResponse{
		Token: token,
	})
}
