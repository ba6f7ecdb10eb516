// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/testutil"
)

func TestListCandidates(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	testutil.CreateTestCandidate(t, db, "Candidate A", "Party A")
	testutil.CreateTestCandidate(t, db, "Candidate B", "Party B")

	voterID := testutil.CreateTestVoter(t, db, "Eve", "eve@example.com")
	token := testutil.MintVoterToken(t, cfg, voterID)

	protected := middleware.RequireRole(cfg.JWTSecret, models.RoleVoter, handler.ListCandidates)

	req := testutil.MakeRequest("GET", "/api/candidates", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	w := httptest.NewRecorder()
	protected(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	rawBody := append([]byte(nil), w.Body.Bytes()...)

	var candidates []models.BallotCandidate
	testutil.AssertJSON(t, w, &candidates)

	if len(candidates) != 2 {
		t.Fatalf("Expected 2 candidates, got %d", len(candidates))
	}
	// Insertion order
	if candidates[0].Name != "Candidate A" || candidates[1].Name != "Candidate B" {
		t.Errorf("Unexpected candidate order: %s, %s", candidates[0].Name, candidates[1].Name)
	}

	// The ballot payload carries no tally or position fields
	var raw []map[string]interface{}
	if err := json.Unmarshal(rawBody, &raw); err != nil {
		t.Fatalf("Failed to decode raw ballot: %v", err)
	}
	for _, field := range []string{"vote_count", "position", "created_at"} {
		if _, present := raw[0][field]; present {
			t.Errorf("Ballot entry leaks %q", field)
		}
	}

	// No token
	req = testutil.MakeRequest("GET", "/api/candidates", nil, nil)
	w = httptest.NewRecorder()
	protected(w, req)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestSubmitVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)
	protected := middleware.RequireRole(cfg.JWTSecret, models.RoleVoter, handler.SubmitVote)

	testutil.SetElectionOpen(t, db, true)

	candidateA := testutil.CreateTestCandidate(t, db, "Candidate A", "Party A")
	candidateB := testutil.CreateTestCandidate(t, db, "Candidate B", "Party B")

	voterID := testutil.CreateTestVoter(t, db, "Frank", "frank@example.com")
	token := testutil.MintVoterToken(t, cfg, voterID)

	vote := func(token, candidateID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/api/vote", models.CastVoteRequest{
			CandidateID: candidateID,
		}, map[string]string{"Authorization": "Bearer " + token})
		w := httptest.NewRecorder()
		protected(w, req)
		return w
	}

	// Accepted
	w := vote(token, candidateA)
	testutil.AssertStatus(t, w, http.StatusOK)

	var countA int64
	db.QueryRow(`SELECT vote_count FROM candidate WHERE id = $1`, candidateA).Scan(&countA)
	if countA != 1 {
		t.Errorf("Expected count 1, got %d", countA)
	}

	// Second attempt, different candidate
	w = vote(token, candidateB)
	testutil.AssertStatus(t, w, http.StatusConflict)

	// Invalid candidate from a fresh voter
	voter2 := testutil.CreateTestVoter(t, db, "Grace", "grace@example.com")
	token2 := testutil.MintVoterToken(t, cfg, voter2)
	w = vote(token2, "no-such-candidate")
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Missing candidate_id
	w = vote(token2, "")
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// Closed election
	testutil.SetElectionOpen(t, db, false)
	w = vote(token2, candidateA)
	testutil.AssertStatus(t, w, http.StatusForbidden)

	// Count unchanged through all the rejections
	db.QueryRow(`SELECT vote_count FROM candidate WHERE id = $1`, candidateA).Scan(&countA)
	if countA != 1 {
		t.Errorf("Expected count still 1, got %d", countA)
	}

	// Credential for a deleted voter
	ghost := testutil.MintVoterToken(t, cfg, "no-such-voter")
	testutil.SetElectionOpen(t, db, true)
	w = vote(ghost, candidateA)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	// No credential at all
	req := testutil.MakeRequest("POST", "/api/vote", models.CastVoteRequest{CandidateID: candidateA}, nil)
	rec := httptest.NewRecorder()
	protected(rec, req)
	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
}
