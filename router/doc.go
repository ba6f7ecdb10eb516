// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballotbox API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, mail)

# Endpoints

Health:

	GET /health

Voter authentication (public):

	POST /api/user/register - Register a voter
	POST /api/user/login    - Request an OTP
	POST /api/user/verify   - Exchange OTP for a session token

Voting (requires a voter Bearer token):

	GET  /api/candidates - List the ballot
	POST /api/vote       - Cast the one allowed vote

Results (public, locked until the configured unlock time):

	GET /api/results

Admin (login is public; the rest require an admin Bearer token):

	POST /api/admin/login
	POST /api/admin/toggle-voting
	POST /api/admin/add-candidate
	GET  /api/admin/dashboard

All routes are wrapped with request logging; protected routes go through
middleware.RequireRole.
*/
package router
