// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTTL is how long a minted session credential stays valid.
// There is no server-side revocation: a leaked token is usable until
// this expiry, so keep it short.
const SessionTTL = time.Hour

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionClaims is the payload of a session credential: the subject
// (voter ID or admin username) plus a role.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// MintSession creates a signed session credential for the subject.
// The credential is self-contained and verifiable without a store lookup.
func MintSession(subject, role, secret string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signed, nil
}

// VerifySession validates a session credential and returns its claims.
// All failure modes (bad signature, expired, malformed, wrong algorithm)
// collapse to ErrInvalidSession.
func VerifySession(tokenString, secret string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
