// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers and the vote ledger.

# Handler Types

Each handler is a struct with database and config dependencies:

  - SessionHandler: Registration, OTP login, session minting
  - VotingHandler: Candidate listing and vote submission
  - AdminHandler: Election toggle, candidate management, dashboard
  - ResultsHandler: Public results with the unlock gate

Handlers are created via constructor functions that accept *sql.DB and
Config (SessionHandler also takes a mailer.Sender):

	votingHandler := handlers.NewVotingHandler(db, cfg)

# Authentication Flow

Voters authenticate with a one-time passcode:

	POST /api/user/register → Register (returns voter_id)
	POST /api/user/login    → RequestOTP (emails a 6-digit code)
	POST /api/user/verify   → VerifyOTP (consumes code, returns token)

Admins authenticate with a password:

	POST /api/admin/login → AdminLogin (returns token)

Tokens are Bearer credentials in the Authorization header.

# Vote Ledger

The core transaction is implemented in ledger.go:

	outcome, err := CastVote(db, dbType, voterID, candidateID, ipHash, userAgent)

One transaction covers the election-state check, the eligibility check,
the has_voted flag, the tally increment, and the audit row. Outcomes are
VoteAccepted, VoteAlreadyVoted, VoteElectionClosed, VoteInvalidCandidate;
a non-nil error means the transaction rolled back with no effects.

# Election State

election.go holds the open/closed flag operations:

	isOpen, err := ElectionOpen(db)
	isOpen, err := ToggleElection(db)

Toggle is a single UPDATE ... RETURNING statement, so readers never see
a torn state.

# Results

Public results (GET /api/results) stay locked until the configured
unlock timestamp. The admin dashboard bypasses that gate.
*/
package handlers
