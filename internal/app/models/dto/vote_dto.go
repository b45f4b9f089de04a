package dto

import "time"

// VoteResponse confirms a cast vote.
type VoteResponse struct {
	ID            int64     `json:"id"`
	CandidatureID int64     `json:"candidatureId"`
	VoterID       int64     `json:"voterId"`
	CreatedAt     time.Time `json:"createdAt"`
	TotalVotes    int       `json:"totalVotes"`
	Rank          int       `json:"rank"`
}

// HasVotedResponse reports the authenticated voter's vote state.
type HasVotedResponse struct {
	CandidatureID int64 `json:"candidatureId"`
	HasVoted      bool  `json:"hasVoted"`
}

// StandingResponse is one row of a category ranking.
type StandingResponse struct {
	Rank          int       `json:"rank"`
	CandidatureID int64     `json:"candidatureId"`
	CandidateName string    `json:"candidateName,omitempty"`
	Votes         int       `json:"votes"`
	SubmittedAt   time.Time `json:"submittedAt"`
}

// CategoryStandingsResponse is the full ranking of one category.
type CategoryStandingsResponse struct {
	CategoryID   int64              `json:"categoryId"`
	CategoryName string             `json:"categoryName"`
	CategorySlug string             `json:"categorySlug"`
	TotalVotes   int                `json:"totalVotes"`
	Standings    []StandingResponse `json:"standings"`
}
