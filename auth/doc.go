// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session credentials, OTP codes, and password hashing.

# Session Credentials

Sessions are HS256-signed JWTs carrying a subject and a role:

	token, err := auth.MintSession(voterID, models.RoleVoter, secret)
	claims, err := auth.VerifySession(token, secret)

Credentials are self-contained and verifiable without a database lookup.
They expire after SessionTTL (1 hour) and there is no revocation list, so
the TTL is deliberately short. VerifySession pins the signing algorithm
to HS256 and collapses every failure mode to ErrInvalidSession.

# OTP Codes

One-time passcodes are 6 random numeric digits:

	code, err := auth.GenerateOTPCode()

Generation uses crypto/rand. Expiry and single-use enforcement live in
the database, not here.

# Passwords

Admin passwords use bcrypt:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(hash, password)

CheckPassword returns ErrInvalidPassword on any mismatch.

# IP Hashing

For privacy-preserving audit rows:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
