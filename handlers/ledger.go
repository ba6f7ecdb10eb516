// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/ballotbox/models"
)

// VoteOutcome classifies how a cast-vote transaction ended
type VoteOutcome int

const (
	VoteAccepted VoteOutcome = iota
	VoteAlreadyVoted
	VoteElectionClosed
	VoteInvalidCandidate
)

// ErrVoterNotFound means the authenticated subject has no voter row,
// e.g. a credential minted before the voter record was removed.
var ErrVoterNotFound = errors.New("voter not found")

// CastVote records one vote for a voter inside a single transaction:
// election-state check, eligibility check, candidate check, has_voted
// flag set, tally increment, audit row. Any failure rolls the whole
// thing back; the four outcomes are terminal rejections, a non-nil
// error is an infrastructure failure the caller may retry.
//
// Concurrent calls for the same voter commit at most one vote. On
// postgres the eligibility read takes a row lock (FOR UPDATE) so the
// loser blocks until the winner commits, then sees has_voted = TRUE.
// SQLite has no row locks; there the UNIQUE constraint on vote.voter_id
// rejects the loser at insert or commit time.
func CastVote(db *sql.DB, dbType, voterID, candidateID, ipHash, userAgent string) (VoteOutcome, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Election must be open
	var isOpen bool
	if err := tx.QueryRow(`SELECT is_open FROM election_state WHERE id = 1`).Scan(&isOpen); err != nil {
		return 0, fmt.Errorf("failed to read election state: %w", err)
	}
	if !isOpen {
		return VoteElectionClosed, nil
	}

	// Eligibility check. First committer wins: a concurrent attempt for
	// the same voter either blocks here (postgres) or fails the audit
	// insert below (sqlite).
	eligibilityQuery := `SELECT has_voted FROM voter WHERE id = $1`
	if dbType == "postgres" {
		eligibilityQuery += ` FOR UPDATE`
	}

	var hasVoted bool
	err = tx.QueryRow(eligibilityQuery, voterID).Scan(&hasVoted)
	if err == sql.ErrNoRows {
		return 0, ErrVoterNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read voter eligibility: %w", err)
	}
	if hasVoted {
		return VoteAlreadyVoted, nil
	}

	// Candidate must exist
	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM candidate WHERE id = $1)`, candidateID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("failed to check candidate: %w", err)
	}
	if !exists {
		return VoteInvalidCandidate, nil
	}

	// Mark the voter as having voted
	if _, err := tx.Exec(`UPDATE voter SET has_voted = TRUE WHERE id = $1`, voterID); err != nil {
		return 0, fmt.Errorf("failed to mark voter: %w", err)
	}

	// In-place increment: no read-modify-write, so votes for the same
	// candidate from different voters never lose updates
	if _, err := tx.Exec(`UPDATE candidate SET vote_count = vote_count + 1 WHERE id = $1`, candidateID); err != nil {
		return 0, fmt.Errorf("failed to increment tally: %w", err)
	}

	// Append the audit row. Empty request metadata is stored as NULL.
	rec := models.VoteRecord{
		ID:          uuid.NewString(),
		VoterID:     voterID,
		CandidateID: candidateID,
		CastAt:      time.Now(),
	}
	if ipHash != "" {
		rec.IPHash = &ipHash
	}
	if userAgent != "" {
		rec.UserAgent = &userAgent
	}

	_, err = tx.Exec(`
		INSERT INTO vote (id, voter_id, candidate_id, cast_at, ip_hash, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, rec.ID, rec.VoterID, rec.CandidateID, rec.CastAt, rec.IPHash, rec.UserAgent)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a same-voter race; the winner's audit row is already in
			return VoteAlreadyVoted, nil
		}
		return 0, fmt.Errorf("failed to append vote record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return VoteAlreadyVoted, nil
		}
		return 0, fmt.Errorf("failed to commit vote: %w", err)
	}

	return VoteAccepted, nil
}

// isUniqueViolation matches the duplicate-key errors both drivers
// produce for the vote.voter_id constraint
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed: vote.voter_id") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
