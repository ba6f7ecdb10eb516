// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotbox API server.

Ballotbox is a single-election voting service: voters authenticate with
an emailed one-time passcode, receive a short-lived session token, and
cast exactly one vote. An admin opens and closes the election and manages
the candidate list.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=votes.db JWT_SECRET=... IP_HASH_SALT=... \
	ADMIN_USERNAME=admin ADMIN_PASSWORD=... go run main.go

Or with flags:

	go run main.go -p 3001 -d votes.db -t sqlite

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - JWT_SECRET (-jwt-secret): Secret for session token signing
  - IP_HASH_SALT (-ip-salt): Salt for audit-row IP hashing
  - ADMIN_USERNAME / ADMIN_PASSWORD: Admin account seeded at startup

Optional settings:

  - PORT (-p): Server port (default: 3001)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - OTP_TTL_MINUTES (-otp-ttl): OTP expiry (default: 5)
  - RESULTS_UNLOCK_AT (-results-unlock): RFC3339 time gating public results
  - ELECTION_OPEN_AT_START (-open-at-start): Initial election state
  - SMTP_ADDR / SMTP_FROM: OTP email delivery (logged when unset)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers plus the vote ledger and election state
  - router: Route definitions using Go 1.22+ routing
  - middleware: Session auth, CORS, logging, JSON helpers
  - models: Request/response and domain types
  - auth: Session credentials, OTP codes, password hashing
  - mailer: OTP delivery channel (SMTP or log)
  - db: Schema creation and seeding
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
