// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"time"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SeedElectionState inserts the singleton election_state row if it does
// not exist yet. The open flag only applies on first deployment; an
// existing row is never overwritten.
func SeedElectionState(db *sql.DB, open bool) error {
	_, err := db.Exec(`
		INSERT INTO election_state (id, is_open)
		VALUES (1, $1)
		ON CONFLICT (id) DO NOTHING
	`, open)
	if err != nil {
		return fmt.Errorf("failed to seed election state: %w", err)
	}

	return nil
}

// SeedAdmin inserts an admin record if none exists for the username.
// An existing record is never overwritten, so rotating the configured
// password requires deleting the row first.
func SeedAdmin(db *sql.DB, username, passwordHash string) error {
	_, err := db.Exec(`
		INSERT INTO admin (username, password_hash, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`, username, passwordHash, time.Now())
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	return nil
}

const schema = `
-- Voters
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    phone TEXT,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voter_email ON voter(email);

-- One-time passcodes. Rows are never deleted (audit trail); consumed
-- codes keep is_used = TRUE forever.
CREATE TABLE IF NOT EXISTS otp (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    code TEXT NOT NULL,
    expires_at TIMESTAMP NOT NULL,
    is_used BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_otp_voter_id ON otp(voter_id);

-- Candidates. position preserves insertion order for stable result
-- ordering when vote counts tie.
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT NOT NULL,
    vote_count INTEGER NOT NULL DEFAULT 0 CHECK (vote_count >= 0),
    position INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Election state: exactly one row, id pinned to 1.
CREATE TABLE IF NOT EXISTS election_state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    is_open BOOLEAN NOT NULL
);

-- Admin accounts
CREATE TABLE IF NOT EXISTS admin (
    username TEXT PRIMARY KEY,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Vote audit rows. The UNIQUE constraint on voter_id is the schema-level
-- backstop for at-most-one-vote-per-voter.
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL UNIQUE REFERENCES voter(id),
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    cast_at TIMESTAMP NOT NULL,
    ip_hash TEXT,
    user_agent TEXT
);

CREATE INDEX IF NOT EXISTS idx_vote_candidate_id ON vote(candidate_id);
`
