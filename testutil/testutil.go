// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/ballotbox/auth"
	"github.com/danielhkuo/ballotbox/cliparse"
	dbschema "github.com/danielhkuo/ballotbox/db"
)

// SetupTestDB creates a fresh SQLite database with the full schema.
// MaxOpenConns(1) matches production SQLite behavior: one writer,
// concurrent transactions serialize on connection checkout.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ballotbox_test.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := dbschema.CreateSchema(db); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	if err := dbschema.SeedElectionState(db, false); err != nil {
		t.Fatalf("Failed to seed election state: %v", err)
	}

	return db
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3001,
		DatabaseURL:  "ballotbox_test.db",
		DatabaseType: "sqlite",
		JWTSecret:    "test-jwt-secret",
		IPHashSalt:   "test-ip-salt",
		OTPTTL:       5 * time.Minute,
	}
}

// SetElectionOpen forces the election state flag
func SetElectionOpen(t *testing.T, db *sql.DB, open bool) {
	t.Helper()

	_, err := db.Exec(`UPDATE election_state SET is_open = $1 WHERE id = 1`, open)
	if err != nil {
		t.Fatalf("Failed to set election state: %v", err)
	}
}

// CreateTestVoter registers a voter and returns the voter ID
func CreateTestVoter(t *testing.T, db *sql.DB, name, email string) string {
	t.Helper()

	voterID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO voter (id, name, email, phone, has_voted, created_at)
		VALUES ($1, $2, $3, '', FALSE, $4)
	`, voterID, name, email, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterID
}

// CreateTestCandidate adds a candidate and returns its ID
func CreateTestCandidate(t *testing.T, db *sql.DB, name, party string) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO candidate (id, name, party, vote_count, position, created_at)
		VALUES ($1, $2, $3, 0, (SELECT COALESCE(MAX(position), 0) + 1 FROM candidate), $4)
	`, candidateID, name, party, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CreateTestOTP inserts an OTP record for a voter
func CreateTestOTP(t *testing.T, db *sql.DB, voterID, code string, expiresAt time.Time, used bool) string {
	t.Helper()

	otpID := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO otp (id, voter_id, code, expires_at, is_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, otpID, voterID, code, expiresAt, used, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test OTP: %v", err)
	}

	return otpID
}

// SeedTestAdmin stores an admin account with a bcrypt-hashed password
func SeedTestAdmin(t *testing.T, db *sql.DB, username, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}
	if err := dbschema.SeedAdmin(db, username, hash); err != nil {
		t.Fatalf("Failed to seed test admin: %v", err)
	}
}

// MintVoterToken creates a voter session token for test requests
func MintVoterToken(t *testing.T, cfg cliparse.Config, voterID string) string {
	t.Helper()

	token, err := auth.MintSession(voterID, "voter", cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Failed to mint voter token: %v", err)
	}
	return token
}

// MintAdminToken creates an admin session token for test requests
func MintAdminToken(t *testing.T, cfg cliparse.Config, username string) string {
	t.Helper()

	token, err := auth.MintSession(username, "admin", cfg.JWTSecret)
	if err != nil {
		t.Fatalf("Failed to mint admin token: %v", err)
	}
	return token
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
