// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and deployment seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - voter: Registered voters with the has_voted eligibility flag
  - otp: One-time passcodes (expiry, used flag, never deleted)
  - candidate: Ballot entries with vote_count tallies
  - election_state: Single-row open/closed flag (id pinned to 1)
  - admin: Admin accounts with bcrypt password hashes
  - vote: Append-only audit rows, UNIQUE on voter_id

# Seeding

SeedElectionState and SeedAdmin are insert-if-absent: they establish the
singleton election state row and the configured admin account on first
deployment and never overwrite existing rows.

# Constraints

Two constraints carry correctness weight: election_state's CHECK (id = 1)
guarantees a single authoritative row, and vote's UNIQUE (voter_id) makes
a second committed vote for the same voter impossible regardless of
application-level races.
*/
package db
