// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: name, email, phone
  - RequestOTPRequest: voter_id, email
  - VerifyOTPRequest: voter_id, otp_code
  - AdminLoginRequest: username, password
  - CastVoteRequest: candidate_id
  - AddCandidateRequest: name, party

# Response Types

Types for JSON responses:

  - RegisterVoterResponse: voter_id, message
  - VerifyOTPResponse: token, message
  - AdminLoginResponse: token
  - ToggleElectionResponse: is_open
  - ResultsResponse: ordered candidate tallies
  - DashboardResponse: election state plus tallies for admins
  - ErrorResponse: error, message

# Domain Types

Database-backed entities:

  - Voter: registered voter with the has_voted eligibility flag
  - OTPRecord: one-time passcode with expiry and used flag
  - Candidate: ballot entry with its vote_count tally
  - VoteRecord: immutable audit row for a committed vote

Sensitive fields (OTP codes, IP hashes, user agents) are excluded from
JSON serialization with the "-" tag.
*/
package models
