package models

import "time"

// Session roles
const (
	RoleVoter = "voter"
	RoleAdmin = "admin"
)

// Request types

type RegisterVoterRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type RequestOTPRequest struct {
	VoterID string `json:"voter_id"`
	Email   string `json:"email"`
}

type VerifyOTPRequest struct {
	VoterID string `json:"voter_id"`
	OTPCode string `json:"otp_code"`
}

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CastVoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

type AddCandidateRequest struct {
	Name  string `json:"name"`
	Party string `json:"party"`
}

// Response types

type RegisterVoterResponse struct {
	VoterID string `json:"voter_id"`
	Message string `json:"message"`
}

type RequestOTPResponse struct {
	Message string `json:"message"`
}

type VerifyOTPResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
}

type CastVoteResponse struct {
	Message string `json:"message"`
}

type AddCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
}

type ToggleElectionResponse struct {
	IsOpen bool `json:"is_open"`
}

// BallotCandidate is the public ballot entry: no tally, no position
type BallotCandidate struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Party string `json:"party"`
}

type CandidateResult struct {
	Name      string `json:"name"`
	Party     string `json:"party"`
	VoteCount int64  `json:"vote_count"`
}

type ResultsResponse struct {
	Results []CandidateResult `json:"results"`
}

type DashboardResponse struct {
	IsOpen        bool        `json:"is_open"`
	VoterCount    int64       `json:"voter_count"`
	VotesCast     int64       `json:"votes_cast"`
	Candidates    []Candidate `json:"candidates"`
	ResultsUnlock string      `json:"results_unlock"`
}

// Domain types

type Voter struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	HasVoted  bool      `json:"has_voted"`
	CreatedAt time.Time `json:"created_at"`
}

type OTPRecord struct {
	ID        string    `json:"id"`
	VoterID   string    `json:"voter_id"`
	Code      string    `json:"-"` // Never expose in JSON
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

type Candidate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Party     string    `json:"party"`
	VoteCount int64     `json:"vote_count"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

type ElectionState struct {
	ID     int  `json:"id"`
	IsOpen bool `json:"is_open"`
}

type Admin struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type VoteRecord struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"voter_id"`
	CandidateID string    `json:"candidate_id"`
	CastAt      time.Time `json:"cast_at"`
	IPHash      *string   `json:"-"` // Never expose in JSON
	UserAgent   *string   `json:"-"` // Never expose in JSON
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
