// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3001)
  - DatabaseURL: Connection string or SQLite path (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - JWTSecret: Session signing secret (required)
  - IPHashSalt: Salt for audit-row IP hashing (required)
  - AdminUsername / AdminPassword: Admin account seeded at startup (required)
  - OTPTTL: OTP expiry window (default: 5 minutes)
  - ResultsUnlockAt: Absolute time before which results are locked
  - OpenAtStart: Initial election state on first deployment
  - SMTPAddr / SMTPFrom: Optional SMTP delivery for OTP codes

# CLI Flags

	-p              Server port
	-d              Database URL
	-t              Database type
	-jwt-secret     Session signing secret
	-ip-salt        IP hash salt
	-admin-user     Admin username
	-admin-pass     Admin password
	-otp-ttl        OTP expiry in minutes
	-results-unlock Results unlock time (RFC3339)
	-open-at-start  Open the election on first deployment
	-smtp-addr      SMTP server address
	-smtp-from      SMTP from address

# Environment Variables

Flags fall back to environment variables: PORT, DATABASE_URL,
DATABASE_TYPE, JWT_SECRET, IP_HASH_SALT, ADMIN_USERNAME, ADMIN_PASSWORD,
OTP_TTL_MINUTES, RESULTS_UNLOCK_AT, ELECTION_OPEN_AT_START, SMTP_ADDR,
SMTP_FROM. Secrets should come from the environment in production.
*/
package cliparse
